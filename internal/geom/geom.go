// Package geom computes the derived layout numbers widgets draw with. All
// functions guard against empty or zero-sized inputs and never divide by
// zero.
package geom

import (
	"math"
	"math/rand/v2"
)

type Point struct {
	X, Y float64
}

// Distance is the euclidean distance between a and b.
func Distance(a, b Point) float64 {
	return math.Hypot(a.X-b.X, a.Y-b.Y)
}

// Lerp returns the point at fraction t along a->b.
func Lerp(a, b Point, t float64) Point {
	return Point{X: a.X + (b.X-a.X)*t, Y: a.Y + (b.Y-a.Y)*t}
}

// DecorationPoints lays rowNum rows of rowPoints points evenly inside a w*h
// box, row by row, leaving one gap of margin on every side.
func DecorationPoints(w, h float64, rowPoints, rowNum int) []Point {
	if rowPoints <= 0 || rowNum <= 0 {
		return nil
	}
	hGap := w / float64(rowPoints+1)
	vGap := h / float64(rowNum+1)
	out := make([]Point, 0, rowPoints*rowNum)
	for i := 0; i < rowNum; i++ {
		for j := 0; j < rowPoints; j++ {
			out = append(out, Point{X: hGap * float64(j+1), Y: vGap * float64(i+1)})
		}
	}
	return out
}

// ColumnWidths splits total cells over columns. Leading columns take their
// fixed width from overrides; the rest share what is left evenly, with any
// remainder going to the leftmost shared columns.
func ColumnWidths(total, columns int, overrides []int) []int {
	if columns <= 0 {
		return nil
	}
	widths := make([]int, columns)
	used := 0
	fixed := 0
	for i, w := range overrides {
		if i >= columns {
			break
		}
		if w < 0 {
			w = 0
		}
		widths[i] = w
		used += w
		fixed++
	}
	shared := columns - fixed
	if shared == 0 {
		return widths
	}
	rest := total - used
	if rest < 0 {
		rest = 0
	}
	avg, extra := rest/shared, rest%shared
	for i := fixed; i < columns; i++ {
		widths[i] = avg
		if extra > 0 {
			widths[i]++
			extra--
		}
	}
	return widths
}

// RowHeight is the settled height of one carousel row. A box too small to
// fit anything yields 0.
func RowHeight(height, headerHeight int, hasHeader bool, rowNum int) int {
	if hasHeader {
		height -= headerHeight
	}
	if height <= 0 || rowNum <= 0 {
		return 0
	}
	return height / rowNum
}

// RandomExtend returns an integer in [lo, hi].
func RandomExtend(rng *rand.Rand, lo, hi int) int {
	if hi < lo {
		lo, hi = hi, lo
	}
	if rng == nil {
		return lo + rand.IntN(hi-lo+1)
	}
	return lo + rng.IntN(hi-lo+1)
}

// Clamp bounds v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

// QuadBezier returns the point at t on the quadratic curve a->ctrl->b.
func QuadBezier(a, ctrl, b Point, t float64) Point {
	u := 1 - t
	return Point{
		X: u*u*a.X + 2*u*t*ctrl.X + t*t*b.X,
		Y: u*u*a.Y + 2*u*t*ctrl.Y + t*t*b.Y,
	}
}

// ArcControl returns the control point that bows the segment a->b sideways
// by its length divided by curvature. A curvature of 0 keeps the line
// straight.
func ArcControl(a, b Point, curvature float64) Point {
	mid := Lerp(a, b, 0.5)
	if curvature <= 0 {
		return mid
	}
	d := Distance(a, b)
	if d == 0 {
		return mid
	}
	off := d / curvature
	// unit normal of a->b
	nx, ny := -(b.Y-a.Y)/d, (b.X-a.X)/d
	return Point{X: mid.X + nx*off, Y: mid.Y + ny*off}
}

// Arc samples the elliptical arc around c from angle a0 to a1 (radians,
// counter-clockwise from the positive x axis). At least two points are
// returned.
func Arc(c Point, rx, ry, a0, a1 float64, steps int) []Point {
	if steps < 1 {
		steps = 1
	}
	out := make([]Point, steps+1)
	for i := range out {
		a := a0 + (a1-a0)*float64(i)/float64(steps)
		out[i] = Point{X: c.X + rx*math.Cos(a), Y: c.Y + ry*math.Sin(a)}
	}
	return out
}

// Sectors splits a full turn into arcs proportional to values, starting at
// the top and running clockwise. Negative values count as zero; an all-zero
// input yields equal sectors.
func Sectors(values []float64) [][2]float64 {
	if len(values) == 0 {
		return nil
	}
	sum := 0.0
	for _, v := range values {
		if v > 0 {
			sum += v
		}
	}
	out := make([][2]float64, len(values))
	start := math.Pi / 2
	for i, v := range values {
		share := 1 / float64(len(values))
		if sum > 0 {
			share = math.Max(v, 0) / sum
		}
		end := start - share*2*math.Pi
		out[i] = [2]float64{start, end}
		start = end
	}
	return out
}
