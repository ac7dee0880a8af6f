package tui

import (
	"time"

	"github.com/sirupsen/logrus"

	"github.com/ensigniasec/relic-scan/internal/clock"
	"github.com/ensigniasec/relic-scan/internal/orbit"
	"github.com/ensigniasec/relic-scan/internal/reveal"
	"github.com/ensigniasec/relic-scan/internal/scan"
	"github.com/ensigniasec/relic-scan/internal/storage"
)

// page is the screen shown next to the dial.
type page int

const (
	pageHome page = iota
	pageScan
	pageHistory
	pageSettings
)

func pageForRoute(route string) (page, bool) {
	switch route {
	case "/":
		return pageHome, true
	case "/scan":
		return pageScan, true
	case "/history":
		return pageHistory, true
	case "/settings":
		return pageSettings, true
	default:
		return pageHome, false
	}
}

// revealStage tracks which result panels the reveal sequence has uncovered.
type revealStage struct {
	complete   bool
	grade      bool
	price      bool
	shockwave  bool
	metrics    bool
	buttons    bool
	priceStart time.Time
	shockStart time.Time
}

// session owns the domain objects behind the model. Bubble Tea copies Model
// on every update, so everything mutated from callbacks lives here.
type session struct {
	sched    clock.Scheduler
	nav      *orbit.Navigator
	gestures *orbit.Gestures
	keyboard *orbit.Keyboard
	store    *scan.Store
	driver   *scan.Driver
	gen      scan.Generator
	history  *scan.History
	storage  *storage.Storage
	settings storage.Settings

	page     page
	sequence *reveal.Sequencer
	stage    revealStage
	unsubs   []func()
}

func newSession(sched clock.Scheduler, gen scan.Generator, st *storage.Storage, settings storage.Settings) *session {
	s := &session{
		sched:    sched,
		nav:      orbit.NewNavigator(orbit.DefaultCatalog()),
		store:    scan.NewStore(),
		gen:      gen,
		history:  scan.NewHistory(scan.DefaultHistoryLimit),
		storage:  st,
		settings: settings,
	}
	s.keyboard = orbit.NewKeyboard(s.nav, orbit.RouterFunc(s.navigate))
	s.gestures = s.newGestures()
	s.driver = scan.NewDriver(s.store, gen, settings.ScanDuration.Std())
	s.unsubs = append(s.unsubs,
		s.history.Track(s.store),
		s.store.Subscribe(s.onScan),
	)
	return s
}

func (s *session) newGestures() *orbit.Gestures {
	return orbit.NewGestures(s.nav, s.sched,
		orbit.WithSensitivity(s.settings.RotationSensitivity),
		orbit.WithWheelDebounce(s.settings.WheelDebounce.Std()),
	)
}

func (s *session) navigate(route string) {
	p, ok := pageForRoute(route)
	if !ok {
		logrus.Debugf("tui: no page for route %q", route)
		return
	}
	s.page = p
}

// startScan begins a fresh run with the current scan duration. A run already
// in progress is left alone.
func (s *session) startScan() bool {
	if s.driver.Active() {
		return false
	}
	s.driver = scan.NewDriver(s.store, s.gen, s.settings.ScanDuration.Std())
	s.driver.Start()
	return true
}

func (s *session) resetScan() {
	s.driver.Cancel()
	s.store.Reset()
}

// onScan starts the reveal when a run completes and tears it down when the
// store leaves the complete state.
func (s *session) onScan(snap scan.Snapshot) {
	if snap.State != scan.Complete {
		s.stopReveal()
		return
	}
	if s.sequence != nil {
		return
	}
	s.stage = revealStage{}
	s.sequence = reveal.New(s.sched, reveal.DefaultCues(), s.revealHandlers(), s.store.ShowResults)
	s.sequence.Play()
}

func (s *session) stopReveal() {
	if s.sequence != nil {
		s.sequence.Kill()
		s.sequence = nil
	}
	s.stage = revealStage{}
}

func (s *session) revealHandlers() reveal.Handlers {
	skip := s.settings.ReducedMotion
	return reveal.Handlers{
		reveal.CueScanComplete: func() { s.stage.complete = true },
		reveal.CueGradeStamp:   func() { s.stage.grade = true },
		reveal.CuePriceCounter: func() {
			s.stage.price = true
			s.stage.priceStart = s.sched.Now()
			if skip {
				s.stage.priceStart = s.sched.Now().Add(-priceCountDuration)
			}
		},
		reveal.CueShockwave: func() {
			if skip {
				return
			}
			s.stage.shockwave = true
			s.stage.shockStart = s.sched.Now()
		},
		reveal.CueMetrics: func() { s.stage.metrics = true },
		reveal.CueButtons: func() { s.stage.buttons = true },
	}
}

// revealing reports whether any reveal animation still needs frames.
func (s *session) revealing(now time.Time) bool {
	if s.sequence != nil && !s.sequence.Done() {
		return true
	}
	if s.stage.price && now.Sub(s.stage.priceStart) < priceCountDuration {
		return true
	}
	return s.stage.shockwave && now.Sub(s.stage.shockStart) < shockwaveDuration
}

// applySettings swaps in new settings, persisting them when storage is set.
// Live objects pick up the change: the gesture translator is rebuilt and the
// next scan uses the new duration.
func (s *session) applySettings(next storage.Settings) error {
	s.settings = next
	if !s.gestures.Dragging() {
		s.gestures.Close()
		s.gestures = s.newGestures()
	}
	if s.storage == nil {
		return nil
	}
	s.storage.Data.Settings = next
	return s.storage.Save()
}

// close stops every pending timer and detaches subscriptions.
func (s *session) close() {
	s.driver.Cancel()
	s.gestures.Close()
	s.stopReveal()
	for _, fn := range s.unsubs {
		fn()
	}
	s.unsubs = nil
}
