package views

import (
	"fmt"

	"datav/ui/tui/state"
	"datav/ui/tui/styles"

	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"
)

// ChromeHeight is the number of rows the page header and footer take.
const ChromeHeight = 2

// PageView frames a widget page with a status header and a key hint footer.
type PageView struct{}

func (v PageView) Render(s state.AppState, props ViewProps) string {
	status := s.Snapshot.Status
	if status == "" {
		status = "…"
	}
	info := fmt.Sprintf(" %s • %s", styles.ColorForStatus(status).Render(status), lastUpdate(s))
	if s.Paused {
		info += " • " + lipgloss.NewStyle().Foreground(lipgloss.Color("220")).Render("PAUSED")
	}
	title := props.SpinnerView + " " + s.CurrentPage.Title()
	header := styles.HeaderStyle.Padding(0, 1).Render(title) + info
	header = lipgloss.NewStyle().MaxWidth(props.Width).Render(header)

	hint := "[Space] Pause • [B] Back • [Q] Quit"
	if s.Err != nil {
		hint = styles.ColorForStatus("CRIT").Render("sample failed: "+s.Err.Error()) + " • " + hint
	}
	footer := lipgloss.NewStyle().MaxWidth(props.Width).Render(styles.FooterStyle.Render(hint))

	body := lipgloss.NewStyle().
		Width(props.Width).
		Height(max(props.Height-ChromeHeight, 0)).
		MaxHeight(max(props.Height-ChromeHeight, 0)).
		Render(props.Body)

	return zone.Scan(lipgloss.JoinVertical(lipgloss.Left, header, body, footer))
}

func lastUpdate(s state.AppState) string {
	if s.LastUpdate.IsZero() {
		return "waiting for the first sample"
	}
	return "updated " + s.LastUpdate.Format("15:04:05")
}
