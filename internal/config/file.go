package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// File is the optional dashboard YAML. Every section is a patch over the
// widget defaults; unknown keys are ignored.
type File struct {
	Title        string                   `yaml:"title,omitempty"`
	RefreshMs    *int                     `yaml:"refresh_ms,omitempty"`
	ScrollBoard  *ScrollBoardPatch        `yaml:"scroll_board,omitempty"`
	RankingBoard *ScrollRankingBoardPatch `yaml:"ranking_board,omitempty"`
	ActiveRing   *ActiveRingChartPatch    `yaml:"active_ring,omitempty"`
	DigitalFlop  *DigitalFlopPatch        `yaml:"digital_flop,omitempty"`
	WaterLevel   *WaterLevelPondPatch     `yaml:"water_level,omitempty"`
	PercentPond  *PercentPondPatch        `yaml:"percent_pond,omitempty"`
	Capsule      *CapsuleChartPatch       `yaml:"capsule,omitempty"`
	Conical      *ConicalColumnChartPatch `yaml:"conical,omitempty"`
	FlyLine      *FlyLineChartPatch       `yaml:"fly_line,omitempty"`
	BorderBox    *BorderBoxPatch          `yaml:"border_box,omitempty"`
	Decoration   *DecorationPatch         `yaml:"decoration,omitempty"`
	LineChart    *LineChartPatch          `yaml:"line_chart,omitempty"`
}

// Dashboard is the resolved configuration of every widget.
type Dashboard struct {
	Title        string
	Refresh      time.Duration
	ScrollBoard  ScrollBoard
	RankingBoard ScrollRankingBoard
	ActiveRing   ActiveRingChart
	DigitalFlop  DigitalFlop
	WaterLevel   WaterLevelPond
	PercentPond  PercentPond
	Capsule      CapsuleChart
	Conical      ConicalColumnChart
	FlyLine      FlyLineChart
	BorderBox    BorderBox
	Decoration   Decoration
	LineChart    LineChart
}

const defaultRefreshMs = 1000

func Defaults() Dashboard {
	return Dashboard{
		Title:        "datav",
		Refresh:      millis(defaultRefreshMs),
		ScrollBoard:  DefaultScrollBoard(),
		RankingBoard: DefaultScrollRankingBoard(),
		ActiveRing:   DefaultActiveRingChart(),
		DigitalFlop:  DefaultDigitalFlop(),
		WaterLevel:   DefaultWaterLevelPond(),
		PercentPond:  DefaultPercentPond(),
		Capsule:      DefaultCapsuleChart(),
		Conical:      DefaultConicalColumnChart(),
		FlyLine:      DefaultFlyLineChart(),
		BorderBox:    DefaultBorderBox(),
		Decoration:   DefaultDecoration(),
		LineChart:    DefaultLineChart(),
	}
}

// Parse decodes dashboard YAML.
func Parse(data []byte) (*File, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse dashboard config: %w", err)
	}
	return &f, nil
}

// LoadOptional reads path if it is set and exists.
func LoadOptional(path string) (*File, error) {
	if strings.TrimSpace(path) == "" {
		return &File{}, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &File{}, nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return Parse(data)
}

// Resolve merges f over the defaults and validates the result.
func Resolve(f *File) (*Dashboard, error) {
	d := Defaults()
	if f == nil {
		return &d, nil
	}

	if title := strings.TrimSpace(f.Title); title != "" {
		d.Title = title
	}
	if f.RefreshMs != nil {
		d.Refresh = millis(*f.RefreshMs)
	}
	d.ScrollBoard = d.ScrollBoard.Merge(f.ScrollBoard)
	d.RankingBoard = d.RankingBoard.Merge(f.RankingBoard)
	d.ActiveRing = d.ActiveRing.Merge(f.ActiveRing)
	d.DigitalFlop = d.DigitalFlop.Merge(f.DigitalFlop)
	d.WaterLevel = d.WaterLevel.Merge(f.WaterLevel)
	d.PercentPond = d.PercentPond.Merge(f.PercentPond)
	d.Capsule = d.Capsule.Merge(f.Capsule)
	d.Conical = d.Conical.Merge(f.Conical)
	d.FlyLine = d.FlyLine.Merge(f.FlyLine)
	d.BorderBox = d.BorderBox.Merge(f.BorderBox)
	d.Decoration = d.Decoration.Merge(f.Decoration)
	d.LineChart = d.LineChart.Merge(f.LineChart)

	sections := []struct {
		name string
		v    any
	}{
		{"scroll_board", d.ScrollBoard},
		{"ranking_board", d.RankingBoard},
		{"active_ring", d.ActiveRing},
		{"digital_flop", d.DigitalFlop},
		{"water_level", d.WaterLevel},
		{"percent_pond", d.PercentPond},
		{"capsule", d.Capsule},
		{"conical", d.Conical},
		{"fly_line", d.FlyLine},
		{"border_box", d.BorderBox},
		{"decoration", d.Decoration},
		{"line_chart", d.LineChart},
	}
	for _, s := range sections {
		if err := Validate(s.v); err != nil {
			return nil, fmt.Errorf("invalid %s config: %w", s.name, err)
		}
	}
	return &d, nil
}

// Load reads, merges and validates a dashboard file. An empty or missing
// path yields the defaults.
func Load(path string) (*Dashboard, error) {
	f, err := LoadOptional(path)
	if err != nil {
		return nil, err
	}
	return Resolve(f)
}
