package styles

import "github.com/charmbracelet/lipgloss"

var (
	Subtle    = lipgloss.AdaptiveColor{Light: "#D9DCCF", Dark: "#383838"}
	Highlight = lipgloss.AdaptiveColor{Light: "#006C8E", Dark: "#00BAFF"}
	Special   = lipgloss.AdaptiveColor{Light: "#0A8F76", Dark: "#3DE7C9"}

	BrandColor = lipgloss.Color("#00BAFF")
	BaseColor  = lipgloss.Color("#444")

	TitleStyle = lipgloss.NewStyle().
			MarginLeft(1).
			MarginRight(5).
			Padding(0, 1).
			Italic(true).
			Foreground(lipgloss.Color("#FFF7DB"))

	HeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(BrandColor).
			Align(lipgloss.Left).
			Padding(0, 2)

	StatusStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFF"))

	FooterStyle = lipgloss.NewStyle().
			PaddingLeft(2).
			Foreground(lipgloss.Color("#555"))
)

// ColorForStatus colours a health status.
func ColorForStatus(status string) lipgloss.Style {
	switch status {
	case "WARN":
		return StatusStyle.Foreground(lipgloss.Color("220"))
	case "CRIT":
		return StatusStyle.Foreground(lipgloss.Color("196"))
	}
	return StatusStyle.Foreground(lipgloss.Color("46"))
}
