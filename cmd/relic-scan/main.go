package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/ensigniasec/relic-scan/internal/orbit"
	"github.com/ensigniasec/relic-scan/internal/storage"
	"github.com/ensigniasec/relic-scan/internal/tui"
)

//nolint:gochecknoglobals // Cobra requires package-level vars for flag bindings in current structure.
var (
	// Version metadata populated at build time via -ldflags.
	releaseVersion = "dev"
	commit         = "none"
	date           = "unknown"

	// Used for flags.
	settingsFile = storage.DefaultPath
	verbose      bool
	jsonOutput   bool
	startPage    string

	rootCmd = &cobra.Command{
		Use:   "relic-scan",
		Short: "An orbital-dial terminal for scanning and appraising artifacts.",
		Long:  `relic-scan runs a simulated artifact scan and reveals a graded appraisal. The interactive mode navigates between pages on a rotating dial driven by the keyboard, mouse wheel or drag.`,
	}
)

//nolint:gochecknoinits // Cobra command wiring performed in init in current structure.
func init() {
	// Route logs to stderr to avoid polluting stdout, especially for --json output.
	logrus.SetOutput(os.Stderr)

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable detailed logging output")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output results in JSON format instead of rich text")
	rootCmd.PersistentFlags().
		StringVar(&settingsFile, "settings-file", storage.DefaultPath, "Path to the settings file")

	orbitCmd.Flags().StringVar(&startPage, "page", orbit.NodeHome, "Page to open first: home, scan, history or settings")

	rootCmd.AddCommand(orbitCmd)
	rootCmd.AddCommand(scanCmd)
	rootCmd.AddCommand(settingsCmd)

	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	settingsCmd.AddCommand(settingsResetCmd)

	// Built-in version flag: set version string and a custom template.
	rootCmd.Version = releaseVersion
	rootCmd.Annotations = map[string]string{"commit": commit, "date": date}
	rootCmd.SetVersionTemplate("{{printf \"%s %s\\ncommit: %s\\ndate: %s\\n\" .DisplayName .Version (index .Annotations \"commit\") (index .Annotations \"date\")}}")
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		logrus.Fatal(err)
	}
}

// configureLogging sets the log level: debug with --verbose, warnings only
// when stdout carries JSON or the terminal belongs to the TUI.
func configureLogging(quiet bool) {
	switch {
	case verbose:
		logrus.SetLevel(logrus.DebugLevel)
	case quiet:
		logrus.SetLevel(logrus.WarnLevel)
	}
}

// routeForPage maps a --page value to a catalog route.
func routeForPage(name string) (string, error) {
	for _, n := range orbit.DefaultCatalog() {
		if n.ID == name {
			return n.Route, nil
		}
	}
	return "", fmt.Errorf("unknown page %q", name)
}

//nolint:gochecknoglobals // Cobra command is defined at package scope in current structure.
var orbitCmd = &cobra.Command{
	Use:   "orbit",
	Short: "Open the interactive orbital navigation terminal",
	Long:  "Open the interactive terminal. Rotate the dial with the arrow keys, the mouse wheel or a drag and press enter to open the node at the top.",
	Run: func(cmd *cobra.Command, args []string) {
		configureLogging(true)
		route, err := routeForPage(startPage)
		if err != nil {
			logrus.Fatal(err)
		}
		st, err := storage.NewOrExistingStorage(settingsFile)
		if err != nil {
			logrus.Fatalf("Unable to open or create settings: %v", err)
		}
		opts := tui.Options{
			Storage:   st,
			Settings:  st.Data.Settings,
			StartPage: route,
		}
		if err := tui.Run(cmd.Context(), opts); err != nil {
			logrus.Fatalf("TUI mode failed: %v", err)
		}
	},
}

func main() {
	Execute()
}
