package tui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ensigniasec/relic-scan/internal/scan"
)

// historyItem is the list item backing one past appraisal.
type historyItem struct {
	a scan.AppraisalData
}

// List item interface methods.
func (it historyItem) Title() string       { return it.a.ArtifactName }
func (it historyItem) Description() string { return it.a.ArtifactType }
func (it historyItem) FilterValue() string { return it.a.ArtifactName + " " + string(it.a.Grade) }

// historyDelegate renders historyItem rows with a right-justified grade badge and value.
type historyDelegate struct{}

func (d historyDelegate) Height() int                             { return 1 }
func (d historyDelegate) Spacing() int                            { return 0 }
func (d historyDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }

func (d historyDelegate) Render(w io.Writer, m list.Model, index int, listItem list.Item) {
	it, ok := listItem.(historyItem)
	if !ok {
		return
	}
	selected := index == m.Index()
	leftPrefix := "  "
	lineStyle := lipgloss.NewStyle()
	if selected {
		leftPrefix = "> "
		lineStyle = lineStyle.Foreground(lipgloss.Color(colorAccent)).Bold(true)
	}

	left := fmt.Sprintf("%s%02d. %s %s", leftPrefix, index+1, it.a.Timestamp.Format("15:04:05"), it.a.ArtifactName)
	right := scan.FormatCredits(it.a.Value) + " " + gradeBadge(it.a.Grade)

	padding := m.Width() - lipgloss.Width(left) - lipgloss.Width(right)
	if padding < 1 {
		padding = 1
	}
	_, _ = fmt.Fprint(w, lineStyle.Render(left)+spaces(padding)+right)
}

func spaces(n int) string {
	if n <= 0 {
		return ""
	}
	return lipgloss.NewStyle().Width(n).Render("")
}

func gradeBadge(g scan.Grade) string {
	info := g.Info()
	return lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(info.Color)).Render(info.Label)
}
