package console

import (
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"

	"datav/internal/carousel"
)

const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorCyan   = "\033[36m"

	cellWidth = 14
)

// Print writes one carousel frame as a compact plain-text table. Rows whose
// height collapsed to zero are shown as a thin rule so the transition stays
// visible in a log.
func Print(w io.Writer, header []string, frame carousel.Frame[[]string]) {
	color := colorFor(frame.Phase)
	fmt.Fprintf(w, "%s■ cycle %d · window %d · %s%s\n", colorCyan, frame.Cycle, frame.WindowStart, color+frame.Phase.String(), colorReset)

	if len(header) > 0 {
		fmt.Fprintf(w, "  %s%s%s\n", colorCyan, joinCells(header), colorReset)
	}

	for i, row := range frame.Rows {
		height := 1
		if i < len(frame.Heights) {
			height = frame.Heights[i]
		}
		if height == 0 {
			fmt.Fprintf(w, "  %s%s%s\n", colorYellow, strings.Repeat("·", cellWidth), colorReset)
			continue
		}
		fmt.Fprintf(w, "  %s  (#%d)\n", joinCells(row.Data), row.Index+1)
	}
	fmt.Fprintln(w)
}

// joinCells pads every cell to a fixed display width.
func joinCells(cells []string) string {
	parts := make([]string, len(cells))
	for i, c := range cells {
		parts[i] = runewidth.FillRight(runewidth.Truncate(c, cellWidth, "…"), cellWidth)
	}
	return strings.Join(parts, " ")
}

func colorFor(phase carousel.Phase) string {
	switch phase {
	case carousel.Advancing:
		return colorYellow
	case carousel.Paused, carousel.Destroyed:
		return colorRed
	default:
		return colorGreen
	}
}
