package components

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/mattn/go-runewidth"
)

const ellipsis = "…"

// fit truncates s to width display cells and pads it according to align.
func fit(s string, width int, align string) string {
	if width <= 0 {
		return ""
	}
	s = runewidth.Truncate(s, width, ellipsis)
	switch align {
	case "right":
		return runewidth.FillLeft(s, width)
	case "center":
		gap := width - runewidth.StringWidth(s)
		left := gap / 2
		return strings.Repeat(" ", left) + runewidth.FillRight(s, width-left)
	default:
		return runewidth.FillRight(s, width)
	}
}

func position(align string) lipgloss.Position {
	switch align {
	case "center":
		return lipgloss.Center
	case "right":
		return lipgloss.Right
	}
	return lipgloss.Left
}

// formatNumber renders v with toFixed decimals.
func formatNumber(v float64, toFixed int) string {
	if toFixed < 0 {
		toFixed = 0
	}
	return strconv.FormatFloat(v, 'f', toFixed, 64)
}

// withValue substitutes {value} in format.
func withValue(format string, v string) string {
	if format == "" {
		return v
	}
	return strings.ReplaceAll(format, "{value}", v)
}

// blend mixes two hex colours in Lab space. Unparseable colours fall back to
// the other end.
func blend(from, to string, t float64) lipgloss.Color {
	a, errA := colorful.Hex(from)
	b, errB := colorful.Hex(to)
	switch {
	case errA != nil && errB != nil:
		return lipgloss.Color(from)
	case errA != nil:
		return lipgloss.Color(to)
	case errB != nil:
		return lipgloss.Color(from)
	}
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	return lipgloss.Color(a.BlendLab(b, t).Clamped().Hex())
}

// gradient returns n colours evenly spread over stops.
func gradient(stops []string, n int) []lipgloss.Color {
	out := make([]lipgloss.Color, n)
	if n == 0 {
		return out
	}
	switch len(stops) {
	case 0:
		for i := range out {
			out[i] = lipgloss.Color("#ffffff")
		}
		return out
	case 1:
		for i := range out {
			out[i] = lipgloss.Color(stops[0])
		}
		return out
	}
	for i := range out {
		t := 0.0
		if n > 1 {
			t = float64(i) / float64(n-1)
		}
		seg := t * float64(len(stops)-1)
		k := int(seg)
		if k >= len(stops)-1 {
			k = len(stops) - 2
		}
		out[i] = blend(stops[k], stops[k+1], seg-float64(k))
	}
	return out
}

// paletteColor picks colour i from palette, cycling.
func paletteColor(palette []string, i int) lipgloss.Color {
	if len(palette) == 0 {
		return lipgloss.Color("#ffffff")
	}
	return lipgloss.Color(palette[i%len(palette)])
}
