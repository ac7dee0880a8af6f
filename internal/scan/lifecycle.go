// Package scan holds the scan lifecycle state machine, the frame-driven
// progress driver and the mock appraisal generator.
package scan

import (
	"errors"
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/ensigniasec/relic-scan/internal/validate"
)

// State is the lifecycle phase of a scan.
type State int

const (
	Idle State = iota
	Scanning
	Complete
	Failed
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Scanning:
		return "scanning"
	case Complete:
		return "complete"
	case Failed:
		return "error"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// ErrInvalidAppraisal is returned by CompleteScan for data that is not fully populated.
var ErrInvalidAppraisal = errors.New("invalid appraisal data")

// Snapshot is the observable scan state.
type Snapshot struct {
	State State `json:"state"`
	// Progress is in [0, 1] and never decreases within one run.
	Progress    float64        `json:"progress"`
	Appraisal   *AppraisalData `json:"appraisal,omitempty"`
	Err         string         `json:"error,omitempty"`
	ShowResults bool           `json:"show_results"`
}

// Store is the scan lifecycle state machine:
//
//	idle --StartScan--> scanning --CompleteScan--> complete --StartScan--> scanning
//	scanning --FailScan--> error
//	any --Reset--> idle
//
// Calls made in the wrong state are ignored and logged at debug level.
type Store struct {
	mu   sync.Mutex
	snap Snapshot
	subs []func(Snapshot)
}

// NewStore returns an idle Store.
func NewStore() *Store {
	return &Store{}
}

// Snapshot returns the current state.
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snap
}

// Subscribe registers fn to receive every change. Subscribers run
// synchronously, in registration order, after the change is applied.
func (s *Store) Subscribe(fn func(Snapshot)) (unsubscribe func()) {
	s.mu.Lock()
	s.subs = append(s.subs, fn)
	idx := len(s.subs) - 1
	s.mu.Unlock()
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if idx < len(s.subs) {
			// Left as a hole so later indexes stay valid.
			s.subs[idx] = nil
		}
	}
}

// StartScan begins a new run from idle or complete, discarding the previous
// result. It is ignored while scanning and in the error state, which only
// Reset leaves.
func (s *Store) StartScan() {
	s.transition("start", func(snap *Snapshot) bool {
		if snap.State != Idle && snap.State != Complete {
			return false
		}
		*snap = Snapshot{State: Scanning}
		return true
	})
}

// Restart is Reset followed by StartScan as a single transition. It abandons
// a run in progress or an error and is legal in every state.
func (s *Store) Restart() {
	s.transition("restart", func(snap *Snapshot) bool {
		*snap = Snapshot{State: Scanning}
		return true
	})
}

// SetProgress records progress p, clamped to [0, 1]. Values below the current
// progress are ignored so that progress never moves backwards in a run.
func (s *Store) SetProgress(p float64) {
	s.transition("progress", func(snap *Snapshot) bool {
		if snap.State != Scanning || p != p { // p != p filters NaN
			return false
		}
		p = min(max(p, 0), 1)
		if p <= snap.Progress {
			return p == snap.Progress
		}
		snap.Progress = p
		return true
	})
}

// CompleteScan stores data and moves to complete with progress 1. It returns
// ErrInvalidAppraisal, leaving the state untouched, when data fails validation.
func (s *Store) CompleteScan(data AppraisalData) error {
	if err := validate.Struct(data); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidAppraisal, err)
	}
	s.transition("complete", func(snap *Snapshot) bool {
		if snap.State != Scanning {
			return false
		}
		snap.State = Complete
		snap.Progress = 1
		snap.Appraisal = &data
		snap.Err = ""
		return true
	})
	return nil
}

// FailScan moves a running scan to the error state with a human-readable message.
func (s *Store) FailScan(message string) {
	s.transition("fail", func(snap *Snapshot) bool {
		if snap.State != Scanning {
			return false
		}
		snap.State = Failed
		snap.Err = message
		return true
	})
}

// ShowResults marks the result card visible once a scan is complete.
func (s *Store) ShowResults() {
	s.transition("show results", func(snap *Snapshot) bool {
		if snap.State != Complete {
			return false
		}
		snap.ShowResults = true
		return true
	})
}

// HideResults hides the result card.
func (s *Store) HideResults() {
	s.transition("hide results", func(snap *Snapshot) bool {
		snap.ShowResults = false
		return true
	})
}

// Reset returns to idle from any state.
func (s *Store) Reset() {
	s.transition("reset", func(snap *Snapshot) bool {
		*snap = Snapshot{}
		return true
	})
}

// transition applies fn and notifies subscribers when it reports the
// transition as legal and the snapshot changed.
func (s *Store) transition(name string, fn func(*Snapshot) bool) {
	s.mu.Lock()
	prev := s.snap
	if !fn(&s.snap) {
		s.mu.Unlock()
		logrus.Debugf("scan: ignoring %s while %s", name, prev.State)
		return
	}
	next := s.snap
	subs := append([]func(Snapshot)(nil), s.subs...)
	s.mu.Unlock()

	if snapshotsEqual(prev, next) {
		return
	}
	if prev.State != next.State {
		logrus.Debugf("scan: %s -> %s", prev.State, next.State)
	}
	for _, fn := range subs {
		if fn != nil {
			fn(next)
		}
	}
}

func snapshotsEqual(a, b Snapshot) bool {
	return a.State == b.State && a.Progress == b.Progress && a.Appraisal == b.Appraisal &&
		a.Err == b.Err && a.ShowResults == b.ShowResults
}
