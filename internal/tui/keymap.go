package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/ensigniasec/relic-scan/internal/orbit"
)

// keyMap defines global key bindings used across the TUI.
type keyMap struct {
	Left     key.Binding
	Right    key.Binding
	Up       key.Binding
	Down     key.Binding
	Tab      key.Binding
	Enter    key.Binding
	Space    key.Binding
	Scan     key.Binding
	Reset    key.Binding
	Prev     key.Binding
	Next     key.Binding
	Increase key.Binding
	Decrease key.Binding
	Help     key.Binding
	Quit     key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Left: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "rotate left"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "rotate right"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "rotate left"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "rotate right"),
		),
		Tab: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next node"),
		),
		Enter: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "open"),
		),
		Space: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "open"),
		),
		Scan: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "scan"),
		),
		Reset: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "reset scan"),
		),
		Prev: key.NewBinding(
			key.WithKeys("["),
			key.WithHelp("[", "previous row"),
		),
		Next: key.NewBinding(
			key.WithKeys("]"),
			key.WithHelp("]", "next row"),
		),
		Increase: key.NewBinding(
			key.WithKeys("+", "="),
			key.WithHelp("+", "increase"),
		),
		Decrease: key.NewBinding(
			key.WithKeys("-", "_"),
			key.WithHelp("-", "decrease"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "toggle help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q/esc", "quit"),
		),
	}
}

// orbitKey maps a bound key to the navigation key it stands for.
func (k keyMap) orbitKey(msg tea.KeyMsg) orbit.Key {
	switch {
	case key.Matches(msg, k.Left):
		return orbit.KeyLeft
	case key.Matches(msg, k.Right):
		return orbit.KeyRight
	case key.Matches(msg, k.Up):
		return orbit.KeyUp
	case key.Matches(msg, k.Down):
		return orbit.KeyDown
	case key.Matches(msg, k.Tab):
		return orbit.KeyTab
	case key.Matches(msg, k.Enter):
		return orbit.KeyEnter
	case key.Matches(msg, k.Space):
		return orbit.KeySpace
	default:
		return orbit.KeyUnknown
	}
}
