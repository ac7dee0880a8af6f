// Package reveal schedules the timed cues that choreograph a scan result
// presentation.
package reveal

import (
	"sort"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/ensigniasec/relic-scan/internal/clock"
)

// Reference cue names.
const (
	CueScanComplete = "scanComplete"
	CueGradeStamp   = "gradeStamp"
	CuePriceCounter = "priceCounter"
	CueShockwave    = "shockwave"
	CueMetrics      = "metrics"
	CueButtons      = "buttons"
)

// Cue fires the handler registered under Name at Offset after Play.
type Cue struct {
	Offset time.Duration
	Name   string
}

// DefaultCues returns the reference reveal timing.
func DefaultCues() []Cue {
	return []Cue{
		{0, CueScanComplete},
		{300 * time.Millisecond, CueGradeStamp},
		{700 * time.Millisecond, CuePriceCounter},
		{1500 * time.Millisecond, CueShockwave},
		{1800 * time.Millisecond, CueMetrics},
		{2000 * time.Millisecond, CueButtons},
	}
}

// Handlers maps cue names to callbacks. Cues without a handler still count
// toward the sequence but do nothing.
type Handlers map[string]func()

// Sequencer plays a fixed list of cues once.
//
// A Sequencer is single use: construct a fresh one per reveal. Calling Play
// twice on the same instance is undefined. Play, Kill and the scheduler's
// callbacks must all run on the same goroutine.
type Sequencer struct {
	sched      clock.Scheduler
	cues       []Cue
	handlers   Handlers
	onComplete func()

	start  time.Time
	next   int
	timer  clock.Timer
	killed bool
	done   bool
}

// New returns a Sequencer for cues, ordered by offset with ties kept in the
// given order. onComplete runs after the last cue and may be nil.
func New(sched clock.Scheduler, cues []Cue, handlers Handlers, onComplete func()) *Sequencer {
	sorted := append([]Cue(nil), cues...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Offset < sorted[j].Offset })
	return &Sequencer{
		sched:      sched,
		cues:       sorted,
		handlers:   handlers,
		onComplete: onComplete,
	}
}

// Play starts the sequence with the current time as its epoch.
func (s *Sequencer) Play() {
	if s.killed {
		return
	}
	s.start = s.sched.Now()
	s.scheduleNext()
}

// scheduleNext arms a timer for the next cue relative to the epoch, so a late
// callback does not push back the cues after it.
func (s *Sequencer) scheduleNext() {
	if s.next >= len(s.cues) {
		s.finish()
		return
	}
	cue := s.cues[s.next]
	wait := s.start.Add(cue.Offset).Sub(s.sched.Now())
	s.timer = s.sched.AfterFunc(max(wait, 0), func() { s.fire(cue) })
}

func (s *Sequencer) fire(cue Cue) {
	// Kill cannot recall a callback the host already queued.
	if s.killed {
		return
	}
	s.timer = nil
	s.next++
	logrus.Debugf("reveal: T+%.1fs %s", cue.Offset.Seconds(), cue.Name)
	if fn := s.handlers[cue.Name]; fn != nil {
		fn()
	}
	// A handler may kill the sequence.
	if s.killed {
		return
	}
	s.scheduleNext()
}

func (s *Sequencer) finish() {
	s.done = true
	logrus.Debug("reveal: sequence complete")
	if s.onComplete != nil {
		s.onComplete()
	}
}

// Kill prevents every cue that has not fired yet, and the completion
// callback, from firing. It is idempotent and safe after completion.
func (s *Sequencer) Kill() {
	s.killed = true
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}

// Done reports whether the completion callback has run.
func (s *Sequencer) Done() bool { return s.done }

// Fired reports how many cues have fired.
func (s *Sequencer) Fired() int { return s.next }
