package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoop_DeliversCallbacksToOwner(t *testing.T) {
	l := NewLoop(1)
	defer l.Close()

	ran := false
	l.AfterFunc(time.Millisecond, func() { ran = true })

	select {
	case fn := <-l.Fired():
		assert.False(t, ran, "callback must not run on the timer goroutine")
		fn()
		assert.True(t, ran)
	case <-time.After(2 * time.Second):
		t.Fatal("callback not delivered")
	}
}

func TestLoop_StopPreventsDelivery(t *testing.T) {
	l := NewLoop(1)
	defer l.Close()

	tm := l.AfterFunc(time.Hour, func() {})
	require.True(t, tm.Stop())
	assert.False(t, tm.Stop())
}

func TestLoop_CloseReleasesBlockedTimers(t *testing.T) {
	// Unbuffered and never drained: the timer goroutine blocks until Close.
	l := NewLoop(0)
	l.AfterFunc(0, func() {})
	time.Sleep(10 * time.Millisecond)

	l.Close()
	l.Close()
	select {
	case <-l.Done():
	default:
		t.Fatal("Done not closed")
	}
}
