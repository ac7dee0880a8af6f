package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/ensigniasec/relic-scan/internal/clock"
)

// listenForTimers returns a Tea command that waits for the next fired timer,
// so scheduler callbacks run on the update goroutine like any other message.
func listenForTimers(l *clock.Loop) tea.Cmd {
	return func() tea.Msg {
		select {
		case fn := <-l.Fired():
			return timerFiredMsg{fn: fn}
		case <-l.Done():
			return nil
		}
	}
}
