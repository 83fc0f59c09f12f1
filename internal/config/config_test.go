package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMergeKeepsDefaultsForMissingKeys(t *testing.T) {
	base := DefaultScrollBoard()
	got := base.Merge(&ScrollBoardPatch{RowNum: Ptr(8)})

	assert.Equal(t, 8, got.RowNum)
	assert.Equal(t, base.HeaderBGC, got.HeaderBGC)
	assert.Equal(t, base.WaitTime, got.WaitTime)
	assert.Equal(t, "single", got.Carousel)
	assert.True(t, got.HoverPause)
}

func TestMergeIsPure(t *testing.T) {
	base := DefaultScrollBoard()
	base.Header = []string{"a", "b"}
	patch := &ScrollBoardPatch{Align: []string{"left"}}

	got := base.Merge(patch)
	got.Header[0] = "changed"
	got.Align[0] = "right"

	assert.Equal(t, "a", base.Header[0])
	assert.Equal(t, "left", patch.Align[0])
	assert.Nil(t, base.Align)
}

func TestMergeReplacesSlicesWholesale(t *testing.T) {
	base := DefaultWaterLevelPond()
	got := base.Merge(&WaterLevelPondPatch{Colors: []string{"#ff0000"}})
	assert.Equal(t, []string{"#ff0000"}, got.Colors)

	got = base.Merge(&WaterLevelPondPatch{Colors: []string{}})
	assert.Empty(t, got.Colors)
}

func TestColorPairMergesKeyWise(t *testing.T) {
	base := DefaultBorderBox()
	got := base.Merge(&BorderBoxPatch{Color: &ColorPairPatch{Secondary: Ptr("#000000")}})

	assert.Equal(t, base.Color.Primary, got.Color.Primary)
	assert.Equal(t, "#000000", got.Color.Secondary)
}

func TestMergeNilPatch(t *testing.T) {
	assert.Equal(t, DefaultDecoration(), DefaultDecoration().Merge(nil))
	assert.Equal(t, DefaultLineChart(), DefaultLineChart().Merge(nil))
	assert.Equal(t, DefaultPercentPond(), DefaultPercentPond().Merge(nil))
}

func TestFormattersSurviveMerge(t *testing.T) {
	f := func(i Item) string { return i.Name }
	got := DefaultScrollRankingBoard().Merge(&ScrollRankingBoardPatch{ValueFormatter: f})
	require.NotNil(t, got.ValueFormatter)
	assert.Equal(t, "x", got.ValueFormatter(Item{Name: "x"}))
}

func TestDurations(t *testing.T) {
	assert.Equal(t, 2*time.Second, DefaultScrollBoard().Wait())
	assert.Equal(t, 3*time.Second, DefaultActiveRingChart().Gap())

	c := DefaultScrollBoard()
	c.WaitTime = -5
	assert.Equal(t, time.Duration(0), c.Wait())
}

func TestParseIgnoresUnknownKeys(t *testing.T) {
	data := []byte(`
title: Ops
refresh_ms: 500
whatever: 1
scroll_board:
  row_num: 3
  carousel: page
  header: [Name, CPU]
  bogus_key: true
border_box:
  color:
    secondary: "#112233"
`)
	f, err := Parse(data)
	require.NoError(t, err)

	d, err := Resolve(f)
	require.NoError(t, err)

	assert.Equal(t, "Ops", d.Title)
	assert.Equal(t, 500*time.Millisecond, d.Refresh)
	assert.Equal(t, 3, d.ScrollBoard.RowNum)
	assert.Equal(t, "page", d.ScrollBoard.Carousel)
	assert.Equal(t, []string{"Name", "CPU"}, d.ScrollBoard.Header)
	assert.Equal(t, "#00BAFF", d.ScrollBoard.HeaderBGC)
	assert.Equal(t, "#4fd2dd", d.BorderBox.Color.Primary)
	assert.Equal(t, "#112233", d.BorderBox.Color.Secondary)
}

func TestResolveRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name string
		file File
	}{
		{"zero rows", File{ScrollBoard: &ScrollBoardPatch{RowNum: Ptr(0)}}},
		{"bad carousel", File{RankingBoard: &ScrollRankingBoardPatch{Carousel: Ptr("diagonal")}}},
		{"bad align", File{ScrollBoard: &ScrollBoardPatch{Align: []string{"justify"}}}},
		{"percent over 100", File{PercentPond: &PercentPondPatch{Value: Ptr(120.0)}}},
		{"bad shape", File{WaterLevel: &WaterLevelPondPatch{Shape: Ptr("hexagon")}}},
		{"bad colour", File{Capsule: &CapsuleChartPatch{Colors: []string{"not-a-colour"}}}},
		{"unnamed point", File{FlyLine: flyLineWithPoint("")}},
		{"inverted range", File{LineChart: &LineChartPatch{Min: Ptr(10.0), Max: Ptr(5.0)}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := tt.file
			_, err := Resolve(&f)
			assert.Error(t, err)
		})
	}
}

func flyLineWithPoint(name string) *FlyLineChartPatch {
	return &FlyLineChartPatch{Points: []FlyPoint{{Name: name}}}
}

func TestDefaultsAreValid(t *testing.T) {
	d, err := Resolve(nil)
	require.NoError(t, err)
	assert.Equal(t, time.Second, d.Refresh)

	d, err = Resolve(&File{})
	require.NoError(t, err)
	assert.Equal(t, "datav", d.Title)
}

func TestLoad(t *testing.T) {
	d, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 5, d.ScrollBoard.RowNum)

	d, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, 5, d.ScrollBoard.RowNum)

	path := filepath.Join(t.TempDir(), "dash.yaml")
	require.NoError(t, os.WriteFile(path, []byte("ranking_board:\n  unit: MB\n"), 0o600))
	d, err = Load(path)
	require.NoError(t, err)
	assert.Equal(t, "MB", d.RankingBoard.Unit)

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("scroll_board: [unclosed"), 0o600))
	_, err = Load(bad)
	assert.Error(t, err)
}
