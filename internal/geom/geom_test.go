package geom

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestColumnWidths(t *testing.T) {
	tests := []struct {
		name      string
		total     int
		columns   int
		overrides []int
		expected  []int
	}{
		{"even split", 30, 3, nil, []int{10, 10, 10}},
		{"remainder to the left", 32, 3, nil, []int{11, 11, 10}},
		{"leading override", 30, 3, []int{6}, []int{6, 12, 12}},
		{"all overridden", 30, 2, []int{4, 5}, []int{4, 5}},
		{"extra overrides ignored", 30, 2, []int{4, 5, 6}, []int{4, 5}},
		{"overflow clamps shared to zero", 10, 3, []int{8, 8}, []int{8, 8, 0}},
		{"no columns", 30, 0, nil, nil},
		{"zero width", 0, 2, nil, []int{0, 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ColumnWidths(tt.total, tt.columns, tt.overrides))
		})
	}
}

func TestRowHeight(t *testing.T) {
	tests := []struct {
		height, header int
		hasHeader      bool
		rowNum         int
		expected       int
	}{
		{11, 1, true, 5, 2},
		{11, 1, false, 5, 2},
		{10, 1, true, 5, 1},
		{1, 1, true, 5, 0},
		{0, 0, false, 5, 0},
		{10, 0, false, 0, 0},
	}
	for _, tt := range tests {
		if got := RowHeight(tt.height, tt.header, tt.hasHeader, tt.rowNum); got != tt.expected {
			t.Errorf("Expected %d for %+v, got %d", tt.expected, tt, got)
		}
	}
}

func TestDecorationPoints(t *testing.T) {
	pts := DecorationPoints(40, 9, 3, 2)
	require.Len(t, pts, 6)
	assert.Equal(t, Point{10, 3}, pts[0])
	assert.Equal(t, Point{30, 3}, pts[2])
	assert.Equal(t, Point{10, 6}, pts[3])

	assert.Nil(t, DecorationPoints(10, 10, 0, 3))
}

func TestDistanceAndLerp(t *testing.T) {
	assert.InDelta(t, 5.0, Distance(Point{0, 0}, Point{3, 4}), 1e-9)
	assert.Equal(t, Point{1.5, 2}, Lerp(Point{0, 0}, Point{3, 4}, 0.5))
}

func TestQuadBezierEndpoints(t *testing.T) {
	a, b := Point{0, 0}, Point{10, 0}
	ctrl := ArcControl(a, b, 5)
	assert.Equal(t, a, QuadBezier(a, ctrl, b, 0))
	assert.Equal(t, b, QuadBezier(a, ctrl, b, 1))
	assert.InDelta(t, 2.0, ctrl.Y, 1e-9)

	assert.Equal(t, Point{5, 0}, ArcControl(a, b, 0))
	assert.Equal(t, a, ArcControl(a, a, 5))
}

func TestRandomExtendStaysInRange(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	for i := 0; i < 200; i++ {
		v := RandomExtend(rng, 20, 30)
		assert.GreaterOrEqual(t, v, 20)
		assert.LessOrEqual(t, v, 30)
	}
	assert.Equal(t, 7, RandomExtend(rng, 7, 7))
	v := RandomExtend(nil, 9, 3)
	assert.True(t, v >= 3 && v <= 9)
}

func TestArc(t *testing.T) {
	pts := Arc(Point{}, 2, 1, 0, math.Pi, 2)
	want := []Point{{2, 0}, {0, 1}, {-2, 0}}
	if len(pts) != len(want) {
		t.Fatalf("Expected %d points, got %d", len(want), len(pts))
	}
	for i := range want {
		if math.Abs(pts[i].X-want[i].X) > 1e-9 || math.Abs(pts[i].Y-want[i].Y) > 1e-9 {
			t.Errorf("Expected %v at %d, got %v", want[i], i, pts[i])
		}
	}
	if got := Arc(Point{}, 1, 1, 0, 1, 0); len(got) != 2 {
		t.Errorf("Expected 2 points for zero steps, got %d", len(got))
	}
}

func TestSectors(t *testing.T) {
	tests := []struct {
		name   string
		values []float64
		shares []float64
	}{
		{"proportional", []float64{1, 3}, []float64{0.25, 0.75}},
		{"all zero", []float64{0, 0}, []float64{0.5, 0.5}},
		{"negative as zero", []float64{-1, 2}, []float64{0, 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Sectors(tt.values)
			for i, s := range tt.shares {
				share := (got[i][0] - got[i][1]) / (2 * math.Pi)
				if math.Abs(share-s) > 1e-9 {
					t.Errorf("Expected share %v for sector %d, got %v", s, i, share)
				}
			}
			last := got[len(got)-1][1]
			if math.Abs(last-(math.Pi/2-2*math.Pi)) > 1e-9 {
				t.Errorf("Expected sectors to close the circle, ended at %v", last)
			}
		})
	}
	if Sectors(nil) != nil {
		t.Error("Expected nil for no values")
	}
}
