package tui

import (
	"fmt"
	"math"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/ensigniasec/relic-scan/internal/orbit"
	"github.com/ensigniasec/relic-scan/internal/storage"
)

// handleKey processes key bindings and returns updated model and command.
func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	// Navigation keys go to the orbit keyboard translator first.
	if k := m.keys.orbitKey(msg); k != orbit.KeyUnknown {
		m.s.keyboard.HandleKey(k, false)
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.helpVisible = !m.helpVisible
		return m, nil

	case key.Matches(msg, m.keys.Scan):
		m.s.page = pageScan
		m.s.nav.SetActiveNode(orbit.NodeScan)
		m.startScan()
		return m, nil

	case key.Matches(msg, m.keys.Reset):
		m.s.resetScan()
		return m, nil
	}

	switch m.s.page {
	case pageHistory:
		var cmd tea.Cmd
		m.historyList, cmd = m.historyList.Update(msg)
		return m, cmd
	case pageSettings:
		return m.handleSettingsKey(msg)
	case pageHome, pageScan:
	}
	return m, nil
}

func (m *Model) startScan() {
	if !m.s.startScan() {
		m.status = statusMsg{text: "scan already in progress"}
		return
	}
	m.status = statusMsg{}
}

// handleMouse routes wheel and left-button drag events to the gesture translator.
func (m *Model) handleMouse(msg tea.MouseMsg) {
	x := float64(msg.X * dragCellPixels)
	switch msg.Button { //nolint:exhaustive // other buttons are ignored
	case tea.MouseButtonWheelUp:
		m.s.gestures.Wheel(-m.s.settings.WheelStep)
	case tea.MouseButtonWheelDown:
		m.s.gestures.Wheel(m.s.settings.WheelStep)
	case tea.MouseButtonLeft:
		switch msg.Action {
		case tea.MouseActionPress:
			m.s.gestures.PointerDown(x)
		case tea.MouseActionMotion:
			m.s.gestures.PointerMove(x)
		case tea.MouseActionRelease:
			m.s.gestures.PointerUp()
		}
	case tea.MouseButtonNone:
		// Some terminals report the release of a drag without a button.
		if msg.Action == tea.MouseActionRelease && m.s.gestures.Dragging() {
			m.s.gestures.PointerUp()
		}
	}
}

// settingRow is one adjustable line on the settings page.
type settingRow struct {
	key    string
	label  string
	adjust func(s *storage.Settings, dir float64)
}

func settingRows() []settingRow {
	return []settingRow{
		{storage.KeyRotationSensitivity, "Rotation sensitivity", func(s *storage.Settings, dir float64) {
			s.RotationSensitivity = clampRound(s.RotationSensitivity+dir*sensitivityStep, sensitivityMin, sensitivityMax)
		}},
		{storage.KeyScanDuration, "Scan duration", func(s *storage.Settings, dir float64) {
			d := s.ScanDuration.Std() + time.Duration(dir)*scanDurationStep
			s.ScanDuration = storage.Duration(min(max(d, scanDurationMin), scanDurationMax))
		}},
		{storage.KeyWheelDebounce, "Wheel debounce", func(s *storage.Settings, dir float64) {
			d := s.WheelDebounce.Std() + time.Duration(dir)*wheelDebounceStep
			s.WheelDebounce = storage.Duration(min(max(d, 0), wheelDebounceMax))
		}},
		{storage.KeyWheelStep, "Wheel step", func(s *storage.Settings, dir float64) {
			s.WheelStep = clampRound(s.WheelStep+dir*wheelStepStep, wheelStepMin, wheelStepMax)
		}},
		{storage.KeyReducedMotion, "Reduced motion", func(s *storage.Settings, _ float64) {
			s.ReducedMotion = !s.ReducedMotion
		}},
	}
}

// clampRound clamps v to [lo, hi] and drops float noise past one decimal.
func clampRound(v, lo, hi float64) float64 {
	return math.Round(min(max(v, lo), hi)*10) / 10 //nolint:mnd // one decimal place
}

func (m Model) handleSettingsKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	rows := settingRows()
	var dir float64
	switch {
	case key.Matches(msg, m.keys.Prev):
		m.settingsIndex = (m.settingsIndex + len(rows) - 1) % len(rows)
		return m, nil
	case key.Matches(msg, m.keys.Next):
		m.settingsIndex = (m.settingsIndex + 1) % len(rows)
		return m, nil
	case key.Matches(msg, m.keys.Increase):
		dir = 1
	case key.Matches(msg, m.keys.Decrease):
		dir = -1
	default:
		return m, nil
	}

	row := rows[m.settingsIndex]
	next := m.s.settings
	row.adjust(&next, dir)
	if next == m.s.settings {
		return m, nil
	}
	if err := m.s.applySettings(next); err != nil {
		m.status = statusMsg{text: fmt.Sprintf("save failed: %v", err), isErr: true}
		return m, nil
	}
	value, _ := next.Get(row.key)
	m.status = statusMsg{text: fmt.Sprintf("%s set to %s", row.label, value)}
	return m, nil
}

// syncHistoryItems rebuilds the list items when new appraisals were recorded.
func (m *Model) syncHistoryItems() {
	entries := m.s.history.Entries()
	if len(entries) == 0 || entries[0].ID == m.historyHead {
		return
	}
	items := make([]list.Item, 0, len(entries))
	for _, a := range entries {
		items = append(items, historyItem{a: a})
	}
	m.historyList.SetItems(items)
	m.historyHead = entries[0].ID
}
