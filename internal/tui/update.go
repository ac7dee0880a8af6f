package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) { // nolint:ireturn
	switch x := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = x.Width, x.Height
		return m, nil

	case tea.KeyMsg:
		var cmd tea.Cmd
		m, cmd = m.handleKey(x)
		if m.quitting {
			return m, cmd
		}
		return m, tea.Batch(cmd, m.ensureFrames())

	case tea.MouseMsg:
		m.handleMouse(x)
		return m, m.ensureFrames()

	case startScanMsg:
		m.startScan()
		return m, m.ensureFrames()

	case frameMsg:
		m.ticking = false
		m.s.driver.Frame(time.Time(x))
		m.stepDial()
		m.syncHistoryItems()
		return m, m.ensureFrames()

	case timerFiredMsg:
		if x.fn != nil {
			x.fn()
		}
		m.syncHistoryItems()
		if m.timers == nil {
			return m, m.ensureFrames()
		}
		return m, tea.Batch(listenForTimers(m.timers), m.ensureFrames())

	case statusMsg:
		m.status = x
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(x)
		return m, cmd
	}

	return m, nil
}
