package scan

// GradeInfo is the presentation metadata for a tier.
type GradeInfo struct {
	Label       string
	Description string
	// Color is a hex color usable with lipgloss.Color.
	Color string
}

const (
	colorAcidGreen    = "#ccff00"
	colorElectricCyan = "#00f3ff"
	colorMint         = "#00ff88"
	colorWarning      = "#ff6b00"
	colorError        = "#ff0040"
)

// Info returns the label, description and color of g.
func (g Grade) Info() GradeInfo {
	switch g {
	case GradeS:
		return GradeInfo{Label: "S-TIER", Description: "Exceptional quality", Color: colorAcidGreen}
	case GradeA:
		return GradeInfo{Label: "A-TIER", Description: "Excellent quality", Color: colorElectricCyan}
	case GradeB:
		return GradeInfo{Label: "B-TIER", Description: "Good quality", Color: colorMint}
	case GradeC:
		return GradeInfo{Label: "C-TIER", Description: "Fair quality", Color: colorWarning}
	case GradeD:
		return GradeInfo{Label: "D-TIER", Description: "Poor quality", Color: colorError}
	case GradeF:
		return GradeInfo{Label: "F-TIER", Description: "Worthless", Color: colorError}
	default:
		return GradeInfo{Label: "?-TIER", Description: "Unknown", Color: colorError}
	}
}
