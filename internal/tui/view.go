package tui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/ensigniasec/relic-scan/internal/orbit"
	"github.com/ensigniasec/relic-scan/internal/scan"
)

const (
	colorAccent = "#00f3ff"
	colorMuted  = "241"
	colorDim    = "240"
	colorError  = "#ff0040"
	colorFlash  = "#ccff00"
)

func (m Model) View() string {
	if m.quitting {
		return "Shutting down...\n"
	}

	left := renderDial(m)
	leftWidth := lipgloss.Width(left)
	leftHeight := lipgloss.Height(left)
	gap := 2

	right := renderMainContent(m)
	height := max(leftHeight, lipgloss.Height(right)+2)

	rightStyled := lipgloss.NewStyle().Height(height).Render(
		pinFooter(right, renderFooter(m), height),
	)

	// If we have a window width, size the right column but cap it.
	if m.width > 0 && m.width > leftWidth+gap {
		available := min(max(m.width-leftWidth-gap, 1), rightViewportMax)
		rightStyled = lipgloss.NewStyle().MarginLeft(gap).Width(available).Height(height).Render(
			pinFooter(right, renderFooter(m), height),
		)
		return lipgloss.JoinHorizontal(lipgloss.Top, left, rightStyled)
	}

	// Fallback to vertical stacking if we don't yet know the window or it's too small.
	var b strings.Builder
	b.WriteString(left)
	b.WriteString("\n")
	b.WriteString(rightStyled)
	return b.String()
}

// renderDial draws the node ring rotated so the navigation angle points up.
func renderDial(m Model) string {
	grid := make([][]rune, dialHeight)
	for i := range grid {
		grid[i] = []rune(strings.Repeat(" ", dialWidth))
	}
	cx, cy := float64(dialWidth/2), float64(dialRadius)

	// Ring.
	for a := 0.0; a < 360; a += 15 {
		x, y := dialPoint(a, cx, cy)
		grid[y][x] = '·'
	}
	// Pointer from the hub toward the top of the ring.
	grid[int(cy)][int(cx)] = '◉'
	grid[int(cy)-1][int(cx)] = '│'

	active, _ := m.s.nav.ActiveNode()
	for _, n := range m.s.nav.Catalog() {
		x, y := dialPoint(n.Angle-m.dialAngle, cx, cy)
		label := n.Label
		if n.ID == active.ID {
			label = "[" + label + "]"
		}
		start := min(max(x-len(label)/2, 0), dialWidth-len(label))
		copy(grid[y][start:], []rune(label))
	}

	lines := make([]string, len(grid))
	for i, row := range grid {
		lines[i] = string(row)
	}
	dial := lipgloss.NewStyle().Foreground(lipgloss.Color(colorAccent)).Render(strings.Join(lines, "\n"))

	state := m.s.nav.State()
	caption := fmt.Sprintf("%5.1f°", state.CurrentAngle)
	switch {
	case state.IsDragging:
		caption += " dragging"
	case state.IsRotating:
		caption += " rotating"
	}
	caption = lipgloss.NewStyle().Foreground(lipgloss.Color(colorMuted)).Render(caption)

	return lipgloss.NewStyle().Padding(1, 1).Render(dial + "\n\n" + caption)
}

// dialPoint maps a dial angle, 0° at the top and clockwise, to a grid cell.
func dialPoint(angle, cx, cy float64) (col, row int) {
	x, y := orbit.NodePosition(angle-90, dialRadius, 0, 0) //nolint:mnd // quarter turn puts 0° at the top
	col = int(math.Round(cx + x*dialCellRatio))
	row = int(math.Round(cy + y))
	return min(max(col, 0), dialWidth-1), min(max(row, 0), dialHeight-1)
}

func renderMainContent(m Model) string {
	var b strings.Builder
	if m.helpVisible {
		b.WriteString(renderHelp(m))
		b.WriteString("\n\n")
	}
	b.WriteString(renderHeader(m))
	b.WriteString("\n\n")

	switch m.s.page {
	case pageHome:
		b.WriteString(renderHome(m))
	case pageScan:
		b.WriteString(renderScan(m))
	case pageHistory:
		b.WriteString(renderHistory(m))
	case pageSettings:
		b.WriteString(renderSettings(m))
	}
	return b.String()
}

func renderHeader(m Model) string {
	title := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(colorAccent)).Render("RELIC-SCAN")
	names := map[page]string{pageHome: "home", pageScan: "scan", pageHistory: "history", pageSettings: "settings"}
	sub := lipgloss.NewStyle().Foreground(lipgloss.Color(colorMuted)).Render("/ " + names[m.s.page])
	return title + " " + sub
}

func renderHome(m Model) string {
	muted := lipgloss.NewStyle().Foreground(lipgloss.Color(colorMuted))
	lines := []string{
		"Artifact appraisal terminal.",
		"",
		muted.Render("Rotate the dial with the arrow keys, the mouse wheel or a drag,"),
		muted.Render("then press enter to open the node at the top."),
	}
	if n := m.s.history.Len(); n > 0 {
		lines = append(lines, "", fmt.Sprintf("%d appraisal(s) this session.", n))
	}
	return strings.Join(lines, "\n")
}

func renderScan(m Model) string {
	snap := m.s.store.Snapshot()
	var b strings.Builder

	switch snap.State {
	case scan.Idle:
		b.WriteString("Place an artifact on the pad and press s to scan.\n")
		b.WriteString(m.progress.ViewAs(0))
	case scan.Scanning:
		fmt.Fprintf(&b, "%s Scanning... %3.0f%%\n", m.spinner.View(), snap.Progress*100) //nolint:mnd // percent
		b.WriteString(m.progress.ViewAs(snap.Progress))
	case scan.Failed:
		b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(colorError)).Render("Scan failed: " + snap.Err))
		b.WriteString("\n\n")
		b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(colorMuted)).Render("x: reset • s: try again"))
	case scan.Complete:
		b.WriteString(m.progress.ViewAs(1))
		b.WriteString("\n\n")
		b.WriteString(renderReveal(m, snap))
	}
	return b.String()
}

// renderReveal shows the result panels the reveal sequence has uncovered so far.
func renderReveal(m Model, snap scan.Snapshot) string {
	st := m.s.stage
	a := snap.Appraisal
	if a == nil || !st.complete {
		return ""
	}
	now := m.s.sched.Now()
	var b strings.Builder

	headline := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(colorAccent))
	if st.shockwave && now.Sub(st.shockStart) < shockwaveDuration {
		headline = headline.Foreground(lipgloss.Color(colorFlash)).Reverse(true)
	}
	b.WriteString(headline.Render("SCAN COMPLETE"))
	b.WriteString("\n")
	fmt.Fprintf(&b, "%s (%s)\n\n", a.ArtifactName, a.ArtifactType)

	if st.grade {
		info := a.Grade.Info()
		stamp := lipgloss.NewStyle().
			Border(lipgloss.ThickBorder()).
			BorderForeground(lipgloss.Color(info.Color)).
			Foreground(lipgloss.Color(info.Color)).
			Bold(true).
			Padding(0, 2).
			Render(info.Label)
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Center, stamp, "  "+info.Description))
		b.WriteString("\n")
	}
	if st.price {
		frac := min(float64(now.Sub(st.priceStart))/float64(priceCountDuration), 1)
		fmt.Fprintf(&b, "Estimated value: %s\n", scan.FormatCredits(a.Value*frac))
		fmt.Fprintf(&b, "Confidence:      %.0f%%\n", a.Confidence)
	}
	if st.metrics {
		b.WriteString("\n")
		for _, r := range scan.MetricRows(a.Metrics) {
			fmt.Fprintf(&b, "%-14s %s %5.1f\n", r.Name, scan.MetricBar(r.Value, metricBarWidth), r.Value)
		}
	}
	if st.buttons {
		btn := lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color(colorAccent)).Padding(0, 1)
		b.WriteString("\n")
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, btn.Render("s  scan again"), " ", btn.Render("x  reset")))
	}
	return b.String()
}

func renderHistory(m Model) string {
	if m.s.history.Len() == 0 {
		return lipgloss.NewStyle().Foreground(lipgloss.Color(colorDim)).Render("No appraisals yet. Completed scans will appear here.")
	}
	return m.historyList.View()
}

func renderSettings(m Model) string {
	var b strings.Builder
	for i, row := range settingRows() {
		value, _ := m.s.settings.Get(row.key)
		prefix := "  "
		style := lipgloss.NewStyle()
		if i == m.settingsIndex {
			prefix = "> "
			style = style.Foreground(lipgloss.Color(colorAccent)).Bold(true)
		}
		b.WriteString(style.Render(fmt.Sprintf("%s%-22s %s", prefix, row.label, value)))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	where := "changes apply to this session only"
	if m.s.storage != nil {
		where = "saved to " + m.s.storage.Path
	}
	b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(colorMuted)).Render("[/]: select • +/-: adjust • " + where))
	return b.String()
}

func pinFooter(content string, footer string, totalHeight int) string {
	// Ensure content + footer equals totalHeight by padding content with newlines.
	contentLines := strings.Count(content, "\n")
	footerLines := strings.Count(footer, "\n") + 1
	minSpacing := 1
	needed := max(totalHeight-(contentLines+footerLines+minSpacing), 0)
	var b strings.Builder
	b.WriteString(content)
	b.WriteString(strings.Repeat("\n", minSpacing+needed))
	b.WriteString(footer)
	return b.String()
}

func renderFooter(m Model) string {
	if m.status.text != "" {
		color := colorMuted
		if m.status.isErr {
			color = colorError
		}
		return lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Render(m.status.text)
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(colorMuted)).Render("←/→: rotate • tab: next • enter: open • s: scan • x: reset • ?: help • q: quit")
}

func renderHelp(m Model) string {
	border := lipgloss.NewStyle().Border(lipgloss.NormalBorder()).Padding(0, 1).Foreground(lipgloss.Color(colorAccent))
	content := []string{"Help", ""}
	for _, b := range []struct{ k, d string }{
		{m.keys.Left.Help().Key + " " + m.keys.Up.Help().Key, "rotate one node left"},
		{m.keys.Right.Help().Key + " " + m.keys.Down.Help().Key, "rotate one node right"},
		{m.keys.Tab.Help().Key, m.keys.Tab.Help().Desc},
		{"enter/space", "open the node at the top"},
		{"wheel/drag", "spin the dial; it snaps when you let go"},
		{m.keys.Scan.Help().Key, "start a scan"},
		{m.keys.Reset.Help().Key, m.keys.Reset.Help().Desc},
		{"[ ]", "move through history or settings"},
		{"+ -", "adjust the selected setting"},
		{m.keys.Quit.Help().Key, m.keys.Quit.Help().Desc},
	} {
		content = append(content, fmt.Sprintf("%-12s %s", b.k, b.d))
	}
	return border.Render(strings.Join(content, "\n"))
}
