package views

import (
	"fmt"
	"math"

	"datav/ui/tui/state"
	"datav/ui/tui/styles"

	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"
)

// MenuZone is the bubblezone id of menu entry i.
func MenuZone(i int) string { return fmt.Sprintf("menu_%d", i) }

type MenuView struct{}

func (v MenuView) Render(s state.AppState, props ViewProps) string {
	header := styles.HeaderStyle.Padding(1, 2).Width(props.Width).Render("DATAV // TERMINAL DASHBOARD WIDGETS")

	var menuItems []string
	listStartY := 6

	for i, page := range state.Pages {
		// the spring-driven cursor lights entries it passes over
		dist := math.Abs(float64(i) - props.AnimCursor)
		selectionStrength := 0.0
		if dist < 1.0 {
			selectionStrength = 1.0 - dist
		}

		itemCenterY := listStartY + (i * 3) + 1
		mouseDistY := math.Abs(float64(props.MouseY - itemCenterY))

		borderColor := styles.BaseColor
		if mouseDistY < 10 && 1.0-(mouseDistY/10.0) > 0.5 {
			borderColor = lipgloss.Color("#aaa")
		}
		if selectionStrength > 0.1 || i == props.MenuCursor {
			borderColor = styles.BrandColor
		}

		popOut := int(selectionStrength * 2)
		boxStyle := lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(borderColor).
			Padding(0, 1).
			MarginLeft(2 + popOut).
			Width(40)

		if i == props.MenuCursor {
			boxStyle = boxStyle.Bold(true).Foreground(lipgloss.Color("#FFF"))
		} else {
			boxStyle = boxStyle.Foreground(lipgloss.Color("#AAA"))
		}

		text := fmt.Sprintf("%02d. %s", i+1, page.Title())
		menuItems = append(menuItems, zone.Mark(MenuZone(i), boxStyle.Render(text)))
	}

	menuList := lipgloss.JoinVertical(lipgloss.Left, menuItems...)
	menuContent := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().Bold(true).PaddingLeft(2).Foreground(styles.BrandColor).Render("WIDGET GALLERY"),
		copyStyle.Render("Every page is fed by live samples of this machine."),
		menuList,
	)

	controls := lipgloss.NewStyle().Foreground(lipgloss.Color("#333")).
		Render("[↑/↓] Navigate • [Enter] Select • [Space] Pause • [Q] Quit")

	body := lipgloss.JoinVertical(lipgloss.Left,
		menuBoxStyle.Render(menuContent),
		lipgloss.NewStyle().PaddingLeft(2).Render(controls),
	)

	return zone.Scan(lipgloss.JoinVertical(lipgloss.Left, header, body))
}

var (
	menuBoxStyle = lipgloss.NewStyle().
			Padding(1, 0).
			MarginTop(1)

	copyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888")).
			Italic(true).
			MarginBottom(1).
			PaddingLeft(2)
)
