package orbit

import (
	"time"

	"github.com/ensigniasec/relic-scan/internal/clock"
)

// Reference gesture tuning.
const (
	DefaultRotationSensitivity = 0.5
	DefaultWheelDebounce       = 150 * time.Millisecond
)

// gestureState tracks one drag or single-finger swipe.
type gestureState struct {
	startX     float64
	currentX   float64
	isDragging bool
}

// Gestures converts wheel, pointer-drag and touch input into rotations.
// It must be driven from a single goroutine, the same one that runs the
// scheduler's callbacks.
type Gestures struct {
	nav         *Navigator
	sched       clock.Scheduler
	sensitivity float64
	debounce    time.Duration

	g          gestureState
	wheelTimer clock.Timer
	wheelSeq   uint64
}

// GestureOption customizes Gestures.
type GestureOption func(*Gestures)

// WithSensitivity sets degrees of rotation per unit of wheel delta or pointer travel.
func WithSensitivity(s float64) GestureOption {
	return func(g *Gestures) {
		if isFinite(s) && s > 0 {
			g.sensitivity = s
		}
	}
}

// WithWheelDebounce sets how long the wheel must be idle before the dial snaps.
func WithWheelDebounce(d time.Duration) GestureOption {
	return func(g *Gestures) {
		if d >= 0 {
			g.debounce = d
		}
	}
}

// NewGestures wires a translator to nav using sched for the wheel debounce.
func NewGestures(nav *Navigator, sched clock.Scheduler, opts ...GestureOption) *Gestures {
	g := &Gestures{
		nav:         nav,
		sched:       sched,
		sensitivity: DefaultRotationSensitivity,
		debounce:    DefaultWheelDebounce,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Wheel applies one wheel event and restarts the snap debounce. It always
// reports true: the host must not scroll in response to the event.
func (g *Gestures) Wheel(deltaY float64) (preventDefault bool) {
	if !isFinite(deltaY) {
		return true
	}
	g.nav.RotateBy(deltaY * g.sensitivity)
	g.nav.SetRotating(true)
	g.restartWheelTimer()
	return true
}

func (g *Gestures) restartWheelTimer() {
	g.stopWheelTimer()
	g.wheelSeq++
	seq := g.wheelSeq
	g.wheelTimer = g.sched.AfterFunc(g.debounce, func() {
		// A stop can lose the race with a callback that is already queued.
		if seq != g.wheelSeq {
			return
		}
		g.wheelTimer = nil
		g.nav.SnapToNearest()
	})
}

func (g *Gestures) stopWheelTimer() {
	if g.wheelTimer != nil {
		g.wheelTimer.Stop()
		g.wheelTimer = nil
	}
}

// PointerDown starts a drag at x.
func (g *Gestures) PointerDown(x float64) {
	if !isFinite(x) {
		return
	}
	g.begin(x)
}

// PointerMove rotates by the travel since the last move while dragging.
func (g *Gestures) PointerMove(x float64) {
	if !g.g.isDragging || !isFinite(x) {
		return
	}
	g.move(x)
}

// PointerUp ends a drag and snaps the dial.
func (g *Gestures) PointerUp() {
	g.end()
}

// TouchStart starts a swipe when exactly one touch point is down.
func (g *Gestures) TouchStart(touchXs []float64) {
	if len(touchXs) != 1 || !isFinite(touchXs[0]) {
		return
	}
	g.begin(touchXs[0])
}

// TouchMove rotates while a single-finger swipe is in progress.
func (g *Gestures) TouchMove(touchXs []float64) {
	if !g.g.isDragging || len(touchXs) != 1 || !isFinite(touchXs[0]) {
		return
	}
	g.move(touchXs[0])
}

// TouchEnd ends a swipe and snaps the dial.
func (g *Gestures) TouchEnd() {
	g.end()
}

// Dragging reports whether a drag or swipe is in progress.
func (g *Gestures) Dragging() bool { return g.g.isDragging }

// Close cancels a pending wheel snap. It is idempotent.
func (g *Gestures) Close() {
	g.stopWheelTimer()
	g.wheelSeq++
}

func (g *Gestures) begin(x float64) {
	g.g = gestureState{startX: x, currentX: x, isDragging: true}
	g.nav.SetDragging(true)
}

func (g *Gestures) move(x float64) {
	// Inverted so that dragging left turns the dial toward higher angles.
	delta := -(x - g.g.startX) * g.sensitivity
	g.g.currentX = x
	g.nav.RotateBy(delta)
	// Incremental: each move only contributes its own travel.
	g.g.startX = x
	g.nav.SetRotating(true)
}

func (g *Gestures) end() {
	if !g.g.isDragging {
		return
	}
	g.g = gestureState{}
	g.nav.SetDragging(false)
	g.nav.SnapToNearest()
}
