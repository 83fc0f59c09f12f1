package components

import (
	"strings"

	"github.com/NimbleMarkets/ntcharts/canvas"
	"github.com/NimbleMarkets/ntcharts/linechart"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"datav/internal/geom"
)

// plot is a braille surface without axes. World units are centred on the
// box: one cell is one unit wide and two units tall, so circles stay round.
type plot struct {
	lc   linechart.Model
	w, h int
}

func newPlot(w, h int) plot {
	hw, hh := float64(w)/2, float64(h)
	return plot{
		lc: linechart.New(w, h, -hw, hw, -hh, hh, linechart.WithXYSteps(0, 0)),
		w:  w,
		h:  h,
	}
}

// fromRelative maps a point given as fractions of the box (y growing
// downwards) to world units.
func (p *plot) fromRelative(fx, fy float64) geom.Point {
	return geom.Point{
		X: -float64(p.w)/2 + fx*float64(p.w),
		Y: float64(p.h) - fy*2*float64(p.h),
	}
}

// radius is the largest circle that fits the box.
func (p *plot) radius() float64 {
	return min(float64(p.w)/2, float64(p.h))
}

func (p *plot) polyline(pts []geom.Point, style lipgloss.Style) {
	for i := 1; i < len(pts); i++ {
		p.lc.DrawBrailleLineWithStyle(
			canvas.Float64Point{X: pts[i-1].X, Y: pts[i-1].Y},
			canvas.Float64Point{X: pts[i].X, Y: pts[i].Y},
			style,
		)
	}
}

func (p *plot) Clear() { p.lc.Clear() }

func (p *plot) View() string { return p.lc.View() }

// overlay writes text over line starting at display column col, keeping the
// styling of what is left visible on both sides.
func overlay(line, text string, col int) string {
	if col < 0 {
		col = 0
	}
	left := ansi.Truncate(line, col, "")
	if pad := col - ansi.StringWidth(left); pad > 0 {
		left += strings.Repeat(" ", pad)
	}
	right := ansi.TruncateLeft(line, col+ansi.StringWidth(text), "")
	return left + text + right
}
