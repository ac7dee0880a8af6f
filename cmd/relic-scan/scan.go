package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/ensigniasec/relic-scan/internal/clock"
	"github.com/ensigniasec/relic-scan/internal/reveal"
	"github.com/ensigniasec/relic-scan/internal/scan"
	"github.com/ensigniasec/relic-scan/internal/storage"
	"github.com/ensigniasec/relic-scan/internal/tui"
)

const (
	headlessFrameInterval = time.Second / 30
	progressBarWidth      = 30
)

//nolint:gochecknoglobals // Cobra requires package-level vars for flag bindings in current structure.
var (
	scanDuration time.Duration
	scanSeed     uint64
	tuiMode      bool
	skipReveal   bool
)

//nolint:gochecknoinits // Cobra command wiring performed in init in current structure.
func init() {
	scanCmd.Flags().DurationVar(&scanDuration, "duration", 0, "Scan length, e.g. 1.5s (defaults to the scan_duration setting)")
	scanCmd.Flags().Uint64Var(&scanSeed, "seed", 0, "Seed for the appraisal generator; the same seed yields the same appraisal")
	scanCmd.Flags().BoolVar(&tuiMode, "tui", false, "Run the scan inside the interactive terminal")
	scanCmd.Flags().BoolVar(&skipReveal, "skip-reveal", false, "Print the report without playing the reveal sequence")
}

//nolint:gochecknoglobals // Cobra command is defined at package scope in current structure.
var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Scan an artifact and print its appraisal",
	Long:  "Run a timed artifact scan, play the reveal sequence and print the appraisal. Progress and reveal cues go to stderr; the report goes to stdout.",
	Run: func(cmd *cobra.Command, args []string) {
		// Check for conflicting flags
		if jsonOutput && tuiMode {
			logrus.Fatal("Cannot use --json and --tui flags together")
		}
		configureLogging(jsonOutput || tuiMode)

		st, err := storage.NewOrExistingStorage(settingsFile)
		if err != nil {
			logrus.Fatalf("Unable to open or create settings: %v", err)
		}
		settings := st.Data.Settings
		if cmd.Flags().Changed("duration") {
			if scanDuration <= 0 {
				logrus.Fatalf("Invalid --duration %s: must be positive", scanDuration)
			}
			settings.ScanDuration = storage.Duration(scanDuration)
		}
		seed := scanSeed
		if !cmd.Flags().Changed("seed") {
			seed = uint64(time.Now().UnixNano()) //nolint:gosec // not security sensitive
		}
		gen := scan.NewMockGenerator(seed)

		if tuiMode {
			opts := tui.Options{
				Generator: gen,
				Settings:  settings,
				StartPage: "/scan",
				AutoScan:  true,
			}
			if err := tui.Run(cmd.Context(), opts); err != nil {
				logrus.Fatalf("TUI mode failed: %v", err)
			}
			return
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()

		a, err := runHeadless(ctx, gen, settings.ScanDuration.Std(), os.Stderr)
		if err != nil {
			logrus.Fatal(err)
		}
		if err := scan.PrintAppraisal(os.Stdout, a, jsonOutput); err != nil {
			logrus.Fatal(err)
		}
	},
}

// errScanFailed wraps the message a failed scan leaves in the store.
var errScanFailed = errors.New("scan failed")

// runHeadless drives a scan from a ticker and, unless output is JSON, plays
// the reveal cues to status. It returns the completed appraisal.
func runHeadless(ctx context.Context, gen scan.Generator, duration time.Duration, status io.Writer) (scan.AppraisalData, error) {
	store := scan.NewStore()
	driver := scan.NewDriver(store, gen, duration)

	interactive := !jsonOutput
	if interactive {
		bar := progress.New(progress.WithDefaultGradient(), progress.WithWidth(progressBarWidth))
		lastPct := -1
		unsubscribe := store.Subscribe(func(s scan.Snapshot) {
			if s.State != scan.Scanning {
				return
			}
			pct := int(s.Progress * 100) //nolint:mnd // percent
			if pct == lastPct {
				return
			}
			lastPct = pct
			fmt.Fprintf(status, "\rScanning %s", bar.ViewAs(s.Progress))
		})
		defer unsubscribe()
	}

	ticker := time.NewTicker(headlessFrameInterval)
	defer ticker.Stop()
	if err := driver.Run(ctx, ticker.C); err != nil {
		return scan.AppraisalData{}, err
	}
	if interactive {
		fmt.Fprintln(status)
	}

	snap := store.Snapshot()
	switch snap.State {
	case scan.Complete:
	case scan.Failed:
		return scan.AppraisalData{}, fmt.Errorf("%w: %s", errScanFailed, snap.Err)
	default:
		return scan.AppraisalData{}, fmt.Errorf("%w: ended while %s", errScanFailed, snap.State)
	}

	if interactive && !skipReveal {
		if err := playReveal(ctx, status); err != nil {
			return scan.AppraisalData{}, err
		}
	}
	return *snap.Appraisal, nil
}

// playReveal writes each reveal cue to w as it fires and returns once the
// sequence completes or ctx is done.
func playReveal(ctx context.Context, w io.Writer) error {
	loop := clock.NewLoop(1)
	defer loop.Close()

	start := loop.Now()
	handlers := reveal.Handlers{}
	for _, cue := range reveal.DefaultCues() {
		handlers[cue.Name] = func() {
			fmt.Fprintf(w, "  T+%.1fs  %s\n", loop.Now().Sub(start).Seconds(), cue.Name)
		}
	}
	done := make(chan struct{})
	seq := reveal.New(loop, reveal.DefaultCues(), handlers, func() { close(done) })
	seq.Play()
	for {
		select {
		case fn := <-loop.Fired():
			fn()
		case <-done:
			return nil
		case <-ctx.Done():
			seq.Kill()
			return ctx.Err()
		}
	}
}
