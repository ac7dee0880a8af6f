package scan

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const (
	reportWidth = 48
	barWidth    = 20
)

// PrintAppraisal writes a to w as indented JSON or as a human-readable report.
func PrintAppraisal(w io.Writer, a AppraisalData, jsonOutput bool) error {
	if jsonOutput {
		output, err := json.MarshalIndent(a, "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, string(output))
		return err
	}

	info := a.Grade.Info()
	gradeStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(info.Color))

	var b strings.Builder
	b.WriteString(strings.Repeat("=", reportWidth) + "\n")
	b.WriteString("RELIC-SCAN APPRAISAL\n")
	b.WriteString(strings.Repeat("=", reportWidth) + "\n")
	fmt.Fprintf(&b, "Artifact:   %s (%s)\n", a.ArtifactName, a.ArtifactType)
	fmt.Fprintf(&b, "Scanned:    %s\n", a.Timestamp.Format("2006-01-02 15:04:05 MST"))
	fmt.Fprintf(&b, "Grade:      %s  %s\n", gradeStyle.Render(info.Label), info.Description)
	fmt.Fprintf(&b, "Value:      %s\n", FormatCredits(a.Value))
	fmt.Fprintf(&b, "Confidence: %.0f%%\n", a.Confidence)
	b.WriteString(strings.Repeat("-", reportWidth) + "\n")
	for _, m := range MetricRows(a.Metrics) {
		fmt.Fprintf(&b, "%-14s %s %5.1f\n", m.Name, MetricBar(m.Value, barWidth), m.Value)
	}
	b.WriteString(strings.Repeat("=", reportWidth) + "\n")
	_, err := io.WriteString(w, b.String())
	return err
}

// MetricRow is one labelled metric.
type MetricRow struct {
	Name  string
	Value float64
}

// MetricRows returns the metrics in display order.
func MetricRows(m Metrics) []MetricRow {
	return []MetricRow{
		{"Authenticity", m.Authenticity},
		{"Craftsmanship", m.Craftsmanship},
		{"Preservation", m.Preservation},
		{"Provenance", m.Provenance},
	}
}

// MetricBar renders v in [0, 100] as a bar of width cells.
func MetricBar(v float64, width int) string {
	filled := int(v/100*float64(width) + 0.5) //nolint:mnd // percent
	filled = min(width, max(0, filled))
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}

// FormatCredits renders a value with thousands separators, e.g. "₡1,250".
func FormatCredits(v float64) string {
	n := int64(v + 0.5)
	s := fmt.Sprintf("%d", n)
	var out []byte
	for i := range len(s) {
		if i > 0 && (len(s)-i)%3 == 0 {
			out = append(out, ',')
		}
		out = append(out, s[i])
	}
	return "₡" + string(out)
}
