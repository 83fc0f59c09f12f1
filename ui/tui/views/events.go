package views

import (
	"fmt"
	"strings"

	"datav/ui/tui/state"
	"datav/ui/tui/styles"

	"github.com/charmbracelet/lipgloss"
)

// EventLogView lists board clicks, hovers, pauses and sample errors.
type EventLogView struct{}

// VisibleEvents returns the window of lines shown at scrollY and the
// clamped scroll position.
func VisibleEvents(lines []string, height, scrollY int) ([]string, int) {
	if height < 1 {
		height = 1
	}
	total := len(lines)
	if scrollY > total-height {
		scrollY = total - height
	}
	if scrollY < 0 {
		scrollY = 0
	}
	end := min(scrollY+height, total)
	return lines[scrollY:end], scrollY
}

func (v EventLogView) Render(s state.AppState, props ViewProps) string {
	header := styles.HeaderStyle.Width(props.Width).Render("Event Log")

	availableHeight := props.Height - lipgloss.Height(header) - 4
	visible, scrollY := VisibleEvents(s.Events, availableHeight, props.ScrollY)

	content := strings.Join(visible, "\n")
	if len(s.Events) == 0 {
		content = lipgloss.NewStyle().Foreground(styles.Subtle).Render("Nothing yet. Click a board row or press space.")
	}

	box := lipgloss.NewStyle().
		Width(max(props.Width-4, 1)).
		Height(max(availableHeight, 1)).
		Padding(0, 1).
		Render(content)

	footerText := fmt.Sprintf("Scroll: %d/%d • Press 'b' to go back", scrollY, len(s.Events))
	if len(s.Events) > availableHeight {
		footerText += " • Use ↑/↓ to scroll"
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		lipgloss.NewStyle().Padding(1, 2).Render(box),
		styles.FooterStyle.Render(footerText),
	)
}
