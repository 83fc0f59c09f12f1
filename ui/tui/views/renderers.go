package views

import (
	"datav/ui/tui/state"
)

func RenderMenu(width, height, cursor int, animCursor float64, mouseX, mouseY int) string {
	v := MenuView{}
	return v.Render(state.AppState{}, ViewProps{
		Width:      width,
		Height:     height,
		MenuCursor: cursor,
		AnimCursor: animCursor,
		MouseX:     mouseX,
		MouseY:     mouseY,
	})
}

func RenderPage(s state.AppState, spinnerView, body string, width, height int) string {
	v := PageView{}
	return v.Render(s, ViewProps{
		Width:       width,
		Height:      height,
		SpinnerView: spinnerView,
		Body:        body,
	})
}

func RenderEvents(s state.AppState, width, height, scrollY int) string {
	v := EventLogView{}
	return v.Render(s, ViewProps{
		Width:   width,
		Height:  height,
		ScrollY: scrollY,
	})
}
