//nolint:testpackage // White-box tests require access to unexported identifiers in this package.
package reveal

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/ensigniasec/relic-scan/internal/clock"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type firing struct {
	name string
	at   time.Duration
}

// recorder builds handlers that log each cue with its virtual offset.
func recorder(f *clock.Fake, start time.Time) (Handlers, func(), *[]firing) {
	var log []firing
	handlers := Handlers{}
	for _, c := range DefaultCues() {
		name := c.Name
		handlers[name] = func() { log = append(log, firing{name, f.Now().Sub(start)}) }
	}
	onComplete := func() { log = append(log, firing{"complete", f.Now().Sub(start)}) }
	return handlers, onComplete, &log
}

func TestSequencer_FiresInOrderAtOffsets(t *testing.T) {
	start := time.Unix(0, 0)
	f := clock.NewFake(start)
	handlers, onComplete, log := recorder(f, start)

	seq := New(f, DefaultCues(), handlers, onComplete)
	seq.Play()

	f.Advance(1999 * time.Millisecond)
	assert.Len(t, *log, 5)
	assert.False(t, seq.Done(), "terminal callback never before the last cue")

	f.Advance(time.Millisecond)
	want := []firing{
		{CueScanComplete, 0},
		{CueGradeStamp, 300 * time.Millisecond},
		{CuePriceCounter, 700 * time.Millisecond},
		{CueShockwave, 1500 * time.Millisecond},
		{CueMetrics, 1800 * time.Millisecond},
		{CueButtons, 2000 * time.Millisecond},
		{"complete", 2000 * time.Millisecond},
	}
	assert.Equal(t, want, *log)
	assert.True(t, seq.Done())
	assert.Equal(t, 6, seq.Fired())
	assert.Zero(t, f.Pending())
}

func TestSequencer_KillStopsRemainingCues(t *testing.T) {
	start := time.Unix(0, 0)
	f := clock.NewFake(start)
	handlers, onComplete, log := recorder(f, start)

	seq := New(f, DefaultCues(), handlers, onComplete)
	seq.Play()

	f.Advance(time.Second)
	seq.Kill()
	seq.Kill()
	f.Advance(5 * time.Second)

	names := make([]string, 0, len(*log))
	for _, e := range *log {
		names = append(names, e.name)
	}
	assert.Equal(t, []string{CueScanComplete, CueGradeStamp, CuePriceCounter}, names)
	assert.False(t, seq.Done())
	assert.Zero(t, f.Pending())
}

func TestSequencer_KillBeforePlay(t *testing.T) {
	f := clock.NewFake(time.Unix(0, 0))
	fired := false
	seq := New(f, DefaultCues(), Handlers{CueScanComplete: func() { fired = true }}, func() { fired = true })
	seq.Kill()
	seq.Play()
	f.Advance(3 * time.Second)
	assert.False(t, fired)
}

func TestSequencer_KillFromHandler(t *testing.T) {
	f := clock.NewFake(time.Unix(0, 0))
	var seq *Sequencer
	var fired []string
	handlers := Handlers{
		CueGradeStamp:   func() { fired = append(fired, CueGradeStamp); seq.Kill() },
		CuePriceCounter: func() { fired = append(fired, CuePriceCounter) },
	}
	seq = New(f, DefaultCues(), handlers, func() { fired = append(fired, "complete") })
	seq.Play()
	f.Advance(3 * time.Second)
	assert.Equal(t, []string{CueGradeStamp}, fired)
}

func TestSequencer_QueuedCallbackAfterKillIsDropped(t *testing.T) {
	sched := &capturingScheduler{Fake: clock.NewFake(time.Unix(0, 0))}
	fired := 0
	seq := New(sched, []Cue{{0, "a"}}, Handlers{"a": func() { fired++ }}, func() { fired++ })
	seq.Play()
	require.Len(t, sched.fns, 1)

	seq.Kill()
	sched.fns[0]()
	assert.Zero(t, fired)
}

func TestSequencer_SortsCuesAndKeepsTies(t *testing.T) {
	f := clock.NewFake(time.Unix(0, 0))
	var order []string
	h := Handlers{}
	for _, n := range []string{"late", "tie1", "tie2", "early"} {
		name := n
		h[name] = func() { order = append(order, name) }
	}
	seq := New(f, []Cue{
		{time.Second, "late"},
		{500 * time.Millisecond, "tie1"},
		{500 * time.Millisecond, "tie2"},
		{0, "early"},
	}, h, nil)
	seq.Play()
	f.Advance(2 * time.Second)
	assert.Equal(t, []string{"early", "tie1", "tie2", "late"}, order)
	assert.True(t, seq.Done())
}

func TestSequencer_EmptyCueListCompletesImmediately(t *testing.T) {
	f := clock.NewFake(time.Unix(0, 0))
	done := false
	seq := New(f, nil, nil, func() { done = true })
	seq.Play()
	assert.True(t, done)
	assert.True(t, seq.Done())
}

func TestSequencer_MissingHandlersStillAdvance(t *testing.T) {
	f := clock.NewFake(time.Unix(0, 0))
	done := false
	seq := New(f, DefaultCues(), Handlers{}, func() { done = true })
	seq.Play()
	f.Advance(2 * time.Second)
	assert.True(t, done)
}

type capturingScheduler struct {
	*clock.Fake
	fns []func()
}

func (c *capturingScheduler) AfterFunc(d time.Duration, fn func()) clock.Timer {
	c.fns = append(c.fns, fn)
	return c.Fake.AfterFunc(d, func() {})
}
