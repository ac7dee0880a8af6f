package clock

import (
	"sync"
	"time"
)

// Loop is a wall-clock Scheduler that hands callbacks back to its owner
// instead of running them on timer goroutines. The owner receives from Fired
// and runs each callback itself, which keeps every callback on one goroutine.
type Loop struct {
	fired     chan func()
	done      chan struct{}
	closeOnce sync.Once
}

// NewLoop returns a Loop whose Fired channel buffers up to buffer callbacks.
func NewLoop(buffer int) *Loop {
	return &Loop{
		fired: make(chan func(), buffer),
		done:  make(chan struct{}),
	}
}

// Now returns the wall-clock time.
func (l *Loop) Now() time.Time { return time.Now() }

// AfterFunc arms a timer that delivers fn on Fired after d. A timer that
// fires after Close drops fn.
func (l *Loop) AfterFunc(d time.Duration, fn func()) Timer {
	return time.AfterFunc(d, func() {
		select {
		case l.fired <- fn:
		case <-l.done:
		}
	})
}

// Fired delivers callbacks whose timers have expired.
func (l *Loop) Fired() <-chan func() { return l.fired }

// Done is closed by Close.
func (l *Loop) Done() <-chan struct{} { return l.done }

// Close releases timers blocked on an owner that has stopped receiving. It is idempotent.
func (l *Loop) Close() {
	l.closeOnce.Do(func() { close(l.done) })
}
