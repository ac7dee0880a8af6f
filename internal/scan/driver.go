package scan

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
)

// DefaultDuration is the reference scan length.
const DefaultDuration = 2500 * time.Millisecond

// Generator produces the appraisal for a completed scan.
type Generator interface {
	Generate() (AppraisalData, error)
}

// GeneratorFunc adapts a function to Generator.
type GeneratorFunc func() (AppraisalData, error)

// Generate calls f.
func (f GeneratorFunc) Generate() (AppraisalData, error) { return f() }

// Driver advances a Store from frame timestamps. Progress is recomputed from
// the first frame's time on every frame, never accumulated, and completion
// fires at most once per Start.
//
// A Driver is not safe for concurrent use; feed frames and call Cancel from
// the same goroutine.
type Driver struct {
	store    *Store
	gen      Generator
	duration time.Duration

	active    bool
	started   bool
	startTime time.Time
}

// NewDriver returns a Driver for store. A non-positive duration falls back to DefaultDuration.
func NewDriver(store *Store, gen Generator, duration time.Duration) *Driver {
	if duration <= 0 {
		duration = DefaultDuration
	}
	return &Driver{store: store, gen: gen, duration: duration}
}

// Duration returns the configured scan length.
func (d *Driver) Duration() time.Duration { return d.duration }

// Start begins a new scan run, abandoning any run already in the store.
// The clock starts at the next frame.
func (d *Driver) Start() {
	d.store.Restart()
	d.active = true
	d.started = false
	d.startTime = time.Time{}
}

// Active reports whether the driver still wants frames.
func (d *Driver) Active() bool { return d.active }

// Cancel stops the run without completing it. It is idempotent and safe to
// call after the run has finished.
func (d *Driver) Cancel() {
	if d.active {
		logrus.Debug("scan: progress driver cancelled")
	}
	d.active = false
}

// Frame processes one frame at now and reports whether another frame should
// be scheduled. Frames after Cancel or completion are ignored.
func (d *Driver) Frame(now time.Time) (more bool) {
	if !d.active {
		return false
	}
	if !d.started {
		d.started = true
		d.startTime = now
	}
	elapsed := now.Sub(d.startTime)
	if elapsed < 0 {
		elapsed = 0
	}
	progress := min(elapsed.Seconds()/d.duration.Seconds(), 1)
	d.store.SetProgress(progress)
	if progress < 1 {
		return true
	}

	// Deactivate before calling out so a re-entrant frame cannot complete twice.
	d.active = false
	d.complete()
	return false
}

func (d *Driver) complete() {
	if d.gen == nil {
		d.store.FailScan("no appraisal generator configured")
		return
	}
	data, err := d.gen.Generate()
	if err != nil {
		logrus.Debugf("scan: appraisal generation failed: %v", err)
		d.store.FailScan(err.Error())
		return
	}
	if err := d.store.CompleteScan(data); err != nil {
		logrus.Debugf("scan: %v", err)
		d.store.FailScan(err.Error())
	}
}

// Run starts a scan and feeds it from frames until it completes, ctx is done
// or frames is closed. Cancellation never completes the scan.
func (d *Driver) Run(ctx context.Context, frames <-chan time.Time) error {
	d.Start()
	defer d.Cancel()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case now, ok := <-frames:
			if !ok {
				return nil
			}
			// Prefer cancellation when both are ready.
			if ctx.Err() != nil {
				return ctx.Err()
			}
			if !d.Frame(now) {
				return nil
			}
		}
	}
}
