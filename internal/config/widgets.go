package config

import "time"

// ScrollBoard configures a scrolling table.
type ScrollBoard struct {
	Header       []string   `yaml:"header"`
	Data         [][]string `yaml:"data"`
	RowNum       int        `yaml:"row_num" validate:"min=1"`
	HeaderBGC    string     `yaml:"header_bgc" validate:"omitempty,iscolor"`
	OddRowBGC    string     `yaml:"odd_row_bgc" validate:"omitempty,iscolor"`
	EvenRowBGC   string     `yaml:"even_row_bgc" validate:"omitempty,iscolor"`
	WaitTime     int        `yaml:"wait_time" validate:"min=0"`
	HeaderHeight int        `yaml:"header_height" validate:"min=0"`
	ColumnWidth  []int      `yaml:"column_width" validate:"dive,min=0"`
	Align        []string   `yaml:"align" validate:"dive,oneof=left center right"`
	Index        bool       `yaml:"index"`
	IndexHeader  string     `yaml:"index_header"`
	Carousel     string     `yaml:"carousel" validate:"oneof=single page"`
	HoverPause   bool       `yaml:"hover_pause"`
}

type ScrollBoardPatch struct {
	Header       []string   `yaml:"header"`
	Data         [][]string `yaml:"data"`
	RowNum       *int       `yaml:"row_num"`
	HeaderBGC    *string    `yaml:"header_bgc"`
	OddRowBGC    *string    `yaml:"odd_row_bgc"`
	EvenRowBGC   *string    `yaml:"even_row_bgc"`
	WaitTime     *int       `yaml:"wait_time"`
	HeaderHeight *int       `yaml:"header_height"`
	ColumnWidth  []int      `yaml:"column_width"`
	Align        []string   `yaml:"align"`
	Index        *bool      `yaml:"index"`
	IndexHeader  *string    `yaml:"index_header"`
	Carousel     *string    `yaml:"carousel"`
	HoverPause   *bool      `yaml:"hover_pause"`
}

func DefaultScrollBoard() ScrollBoard {
	return ScrollBoard{
		RowNum:       5,
		HeaderBGC:    "#00BAFF",
		OddRowBGC:    "#003B51",
		EvenRowBGC:   "#0A2732",
		WaitTime:     2000,
		HeaderHeight: 1,
		IndexHeader:  "#",
		Carousel:     "single",
		HoverPause:   true,
	}
}

func (c ScrollBoard) Merge(p *ScrollBoardPatch) ScrollBoard {
	out := c
	out.Header = pickSlice(c.Header, nil)
	out.Data = pickSlice(c.Data, nil)
	out.ColumnWidth = pickSlice(c.ColumnWidth, nil)
	out.Align = pickSlice(c.Align, nil)
	if p == nil {
		return out
	}
	out.Header = pickSlice(c.Header, p.Header)
	out.Data = pickSlice(c.Data, p.Data)
	out.RowNum = pick(c.RowNum, p.RowNum)
	out.HeaderBGC = pick(c.HeaderBGC, p.HeaderBGC)
	out.OddRowBGC = pick(c.OddRowBGC, p.OddRowBGC)
	out.EvenRowBGC = pick(c.EvenRowBGC, p.EvenRowBGC)
	out.WaitTime = pick(c.WaitTime, p.WaitTime)
	out.HeaderHeight = pick(c.HeaderHeight, p.HeaderHeight)
	out.ColumnWidth = pickSlice(c.ColumnWidth, p.ColumnWidth)
	out.Align = pickSlice(c.Align, p.Align)
	out.Index = pick(c.Index, p.Index)
	out.IndexHeader = pick(c.IndexHeader, p.IndexHeader)
	out.Carousel = pick(c.Carousel, p.Carousel)
	out.HoverPause = pick(c.HoverPause, p.HoverPause)
	return out
}

func (c ScrollBoard) Wait() time.Duration { return millis(c.WaitTime) }

// ScrollRankingBoard configures a scrolling ranking list.
type ScrollRankingBoard struct {
	Data       []Item `yaml:"data"`
	RowNum     int    `yaml:"row_num" validate:"min=1"`
	WaitTime   int    `yaml:"wait_time" validate:"min=0"`
	Carousel   string `yaml:"carousel" validate:"oneof=single page"`
	Unit       string `yaml:"unit"`
	Sort       bool   `yaml:"sort"`
	HoverPause bool   `yaml:"hover_pause"`
	BarColor   string `yaml:"bar_color" validate:"omitempty,iscolor"`
	// ValueFormatter turns a value into its label. It cannot come from YAML.
	ValueFormatter func(Item) string `yaml:"-"`
}

type ScrollRankingBoardPatch struct {
	Data           []Item            `yaml:"data"`
	RowNum         *int              `yaml:"row_num"`
	WaitTime       *int              `yaml:"wait_time"`
	Carousel       *string           `yaml:"carousel"`
	Unit           *string           `yaml:"unit"`
	Sort           *bool             `yaml:"sort"`
	HoverPause     *bool             `yaml:"hover_pause"`
	BarColor       *string           `yaml:"bar_color"`
	ValueFormatter func(Item) string `yaml:"-"`
}

func DefaultScrollRankingBoard() ScrollRankingBoard {
	return ScrollRankingBoard{
		RowNum:     5,
		WaitTime:   2000,
		Carousel:   "single",
		Sort:       true,
		HoverPause: true,
		BarColor:   "#1370fb",
	}
}

func (c ScrollRankingBoard) Merge(p *ScrollRankingBoardPatch) ScrollRankingBoard {
	out := c
	out.Data = pickSlice(c.Data, nil)
	if p == nil {
		return out
	}
	out.Data = pickSlice(c.Data, p.Data)
	out.RowNum = pick(c.RowNum, p.RowNum)
	out.WaitTime = pick(c.WaitTime, p.WaitTime)
	out.Carousel = pick(c.Carousel, p.Carousel)
	out.Unit = pick(c.Unit, p.Unit)
	out.Sort = pick(c.Sort, p.Sort)
	out.HoverPause = pick(c.HoverPause, p.HoverPause)
	out.BarColor = pick(c.BarColor, p.BarColor)
	if p.ValueFormatter != nil {
		out.ValueFormatter = p.ValueFormatter
	}
	return out
}

func (c ScrollRankingBoard) Wait() time.Duration { return millis(c.WaitTime) }

// ActiveRingChart configures the donut with a rotating highlight. Radii are
// fractions of the smaller half-dimension of the widget.
type ActiveRingChart struct {
	Radius          float64  `yaml:"radius" validate:"gt=0,lte=1"`
	ActiveRadius    float64  `yaml:"active_radius" validate:"gt=0,lte=1"`
	Data            []Item   `yaml:"data"`
	LineWidth       int      `yaml:"line_width" validate:"min=1"`
	ActiveTimeGap   int      `yaml:"active_time_gap" validate:"min=0"`
	Colors          []string `yaml:"colors" validate:"dive,iscolor"`
	FlopColor       string   `yaml:"flop_color" validate:"omitempty,iscolor"`
	FlopToFixed     int      `yaml:"flop_to_fixed" validate:"min=0,max=10"`
	FlopUnit        string   `yaml:"flop_unit"`
	ShowOriginValue bool     `yaml:"show_origin_value"`
}

type ActiveRingChartPatch struct {
	Radius          *float64 `yaml:"radius"`
	ActiveRadius    *float64 `yaml:"active_radius"`
	Data            []Item   `yaml:"data"`
	LineWidth       *int     `yaml:"line_width"`
	ActiveTimeGap   *int     `yaml:"active_time_gap"`
	Colors          []string `yaml:"colors"`
	FlopColor       *string  `yaml:"flop_color"`
	FlopToFixed     *int     `yaml:"flop_to_fixed"`
	FlopUnit        *string  `yaml:"flop_unit"`
	ShowOriginValue *bool    `yaml:"show_origin_value"`
}

// DefaultPalette is the series palette shared by ring and capsule charts.
var DefaultPalette = []string{"#37a2da", "#32c5e9", "#67e0e3", "#9fe6b8", "#ffdb5c", "#ff9f7f", "#fb7293"}

func DefaultActiveRingChart() ActiveRingChart {
	return ActiveRingChart{
		Radius:        0.5,
		ActiveRadius:  0.55,
		Data:          []Item{{Name: "", Value: 0}},
		LineWidth:     2,
		ActiveTimeGap: 3000,
		FlopColor:     "#ffffff",
	}
}

func (c ActiveRingChart) Merge(p *ActiveRingChartPatch) ActiveRingChart {
	out := c
	out.Data = pickSlice(c.Data, nil)
	out.Colors = pickSlice(c.Colors, nil)
	if p == nil {
		return out
	}
	out.Radius = pick(c.Radius, p.Radius)
	out.ActiveRadius = pick(c.ActiveRadius, p.ActiveRadius)
	out.Data = pickSlice(c.Data, p.Data)
	out.LineWidth = pick(c.LineWidth, p.LineWidth)
	out.ActiveTimeGap = pick(c.ActiveTimeGap, p.ActiveTimeGap)
	out.Colors = pickSlice(c.Colors, p.Colors)
	out.FlopColor = pick(c.FlopColor, p.FlopColor)
	out.FlopToFixed = pick(c.FlopToFixed, p.FlopToFixed)
	out.FlopUnit = pick(c.FlopUnit, p.FlopUnit)
	out.ShowOriginValue = pick(c.ShowOriginValue, p.ShowOriginValue)
	return out
}

func (c ActiveRingChart) Gap() time.Duration { return millis(c.ActiveTimeGap) }

// Palette returns Colors, or the default palette when none are set.
func (c ActiveRingChart) Palette() []string {
	if len(c.Colors) > 0 {
		return c.Colors
	}
	return DefaultPalette
}

// DigitalFlop configures an animated number label.
type DigitalFlop struct {
	Number    []float64 `yaml:"number"`
	Content   string    `yaml:"content"`
	ToFixed   int       `yaml:"to_fixed" validate:"min=0,max=10"`
	TextAlign string    `yaml:"text_align" validate:"oneof=left center right"`
	RowGap    int       `yaml:"row_gap" validate:"min=0"`
	Color     string    `yaml:"color" validate:"omitempty,iscolor"`
	// Formatter overrides the {nt} rendering of each number.
	Formatter func(float64) string `yaml:"-"`
}

type DigitalFlopPatch struct {
	Number    []float64            `yaml:"number"`
	Content   *string              `yaml:"content"`
	ToFixed   *int                 `yaml:"to_fixed"`
	TextAlign *string              `yaml:"text_align"`
	RowGap    *int                 `yaml:"row_gap"`
	Color     *string              `yaml:"color"`
	Formatter func(float64) string `yaml:"-"`
}

func DefaultDigitalFlop() DigitalFlop {
	return DigitalFlop{
		TextAlign: "center",
		Color:     "#3de7c9",
	}
}

func (c DigitalFlop) Merge(p *DigitalFlopPatch) DigitalFlop {
	out := c
	out.Number = pickSlice(c.Number, nil)
	if p == nil {
		return out
	}
	out.Number = pickSlice(c.Number, p.Number)
	out.Content = pick(c.Content, p.Content)
	out.ToFixed = pick(c.ToFixed, p.ToFixed)
	out.TextAlign = pick(c.TextAlign, p.TextAlign)
	out.RowGap = pick(c.RowGap, p.RowGap)
	out.Color = pick(c.Color, p.Color)
	if p.Formatter != nil {
		out.Formatter = p.Formatter
	}
	return out
}

// WaterLevelPond configures the wave gauge.
type WaterLevelPond struct {
	Data        []float64 `yaml:"data"`
	Shape       string    `yaml:"shape" validate:"oneof=rect roundRect round"`
	WaveNum     int       `yaml:"wave_num" validate:"min=0"`
	WaveHeight  int       `yaml:"wave_height" validate:"min=0"`
	WaveOpacity float64   `yaml:"wave_opacity" validate:"min=0,max=1"`
	Colors      []string  `yaml:"colors" validate:"dive,iscolor"`
	Formatter   string    `yaml:"formatter"`
}

type WaterLevelPondPatch struct {
	Data        []float64 `yaml:"data"`
	Shape       *string   `yaml:"shape"`
	WaveNum     *int      `yaml:"wave_num"`
	WaveHeight  *int      `yaml:"wave_height"`
	WaveOpacity *float64  `yaml:"wave_opacity"`
	Colors      []string  `yaml:"colors"`
	Formatter   *string   `yaml:"formatter"`
}

func DefaultWaterLevelPond() WaterLevelPond {
	return WaterLevelPond{
		Shape:       "rect",
		WaveNum:     3,
		WaveHeight:  1,
		WaveOpacity: 0.4,
		Colors:      []string{"#3DE7C9", "#00BAFF"},
		Formatter:   "{value}%",
	}
}

func (c WaterLevelPond) Merge(p *WaterLevelPondPatch) WaterLevelPond {
	out := c
	out.Data = pickSlice(c.Data, nil)
	out.Colors = pickSlice(c.Colors, nil)
	if p == nil {
		return out
	}
	out.Data = pickSlice(c.Data, p.Data)
	out.Shape = pick(c.Shape, p.Shape)
	out.WaveNum = pick(c.WaveNum, p.WaveNum)
	out.WaveHeight = pick(c.WaveHeight, p.WaveHeight)
	out.WaveOpacity = pick(c.WaveOpacity, p.WaveOpacity)
	out.Colors = pickSlice(c.Colors, p.Colors)
	out.Formatter = pick(c.Formatter, p.Formatter)
	return out
}

// PercentPond configures the dashed progress bar.
type PercentPond struct {
	Value         float64  `yaml:"value" validate:"min=0,max=100"`
	Colors        []string `yaml:"colors" validate:"dive,iscolor"`
	BorderWidth   int      `yaml:"border_width" validate:"min=0"`
	BorderGap     int      `yaml:"border_gap" validate:"min=0"`
	LineDash      [2]int   `yaml:"line_dash"`
	TextColor     string   `yaml:"text_color" validate:"omitempty,iscolor"`
	BorderRadius  int      `yaml:"border_radius" validate:"min=0"`
	LocalGradient bool     `yaml:"local_gradient"`
	Formatter     string   `yaml:"formatter"`
}

type PercentPondPatch struct {
	Value         *float64 `yaml:"value"`
	Colors        []string `yaml:"colors"`
	BorderWidth   *int     `yaml:"border_width"`
	BorderGap     *int     `yaml:"border_gap"`
	LineDash      *[2]int  `yaml:"line_dash"`
	TextColor     *string  `yaml:"text_color"`
	BorderRadius  *int     `yaml:"border_radius"`
	LocalGradient *bool    `yaml:"local_gradient"`
	Formatter     *string  `yaml:"formatter"`
}

func DefaultPercentPond() PercentPond {
	return PercentPond{
		Colors:       []string{"#3DE7C9", "#00BAFF"},
		BorderWidth:  1,
		BorderGap:    0,
		LineDash:     [2]int{5, 1},
		TextColor:    "#ffffff",
		BorderRadius: 1,
		Formatter:    "{value}%",
	}
}

func (c PercentPond) Merge(p *PercentPondPatch) PercentPond {
	out := c
	out.Colors = pickSlice(c.Colors, nil)
	if p == nil {
		return out
	}
	out.Value = pick(c.Value, p.Value)
	out.Colors = pickSlice(c.Colors, p.Colors)
	out.BorderWidth = pick(c.BorderWidth, p.BorderWidth)
	out.BorderGap = pick(c.BorderGap, p.BorderGap)
	out.LineDash = pick(c.LineDash, p.LineDash)
	out.TextColor = pick(c.TextColor, p.TextColor)
	out.BorderRadius = pick(c.BorderRadius, p.BorderRadius)
	out.LocalGradient = pick(c.LocalGradient, p.LocalGradient)
	out.Formatter = pick(c.Formatter, p.Formatter)
	return out
}

// CapsuleChart configures horizontal capsule bars.
type CapsuleChart struct {
	Data      []Item   `yaml:"data"`
	Colors    []string `yaml:"colors" validate:"dive,iscolor"`
	Unit      string   `yaml:"unit"`
	ShowValue bool     `yaml:"show_value"`
}

type CapsuleChartPatch struct {
	Data      []Item   `yaml:"data"`
	Colors    []string `yaml:"colors"`
	Unit      *string  `yaml:"unit"`
	ShowValue *bool    `yaml:"show_value"`
}

func DefaultCapsuleChart() CapsuleChart {
	return CapsuleChart{Colors: append([]string(nil), DefaultPalette...)}
}

func (c CapsuleChart) Merge(p *CapsuleChartPatch) CapsuleChart {
	out := c
	out.Data = pickSlice(c.Data, nil)
	out.Colors = pickSlice(c.Colors, nil)
	if p == nil {
		return out
	}
	out.Data = pickSlice(c.Data, p.Data)
	out.Colors = pickSlice(c.Colors, p.Colors)
	out.Unit = pick(c.Unit, p.Unit)
	out.ShowValue = pick(c.ShowValue, p.ShowValue)
	return out
}

// ConicalColumnChart configures the descending column chart.
type ConicalColumnChart struct {
	Data        []Item `yaml:"data"`
	ColumnColor string `yaml:"column_color" validate:"omitempty,iscolor"`
	TextColor   string `yaml:"text_color" validate:"omitempty,iscolor"`
	ShowValue   bool   `yaml:"show_value"`
}

type ConicalColumnChartPatch struct {
	Data        []Item  `yaml:"data"`
	ColumnColor *string `yaml:"column_color"`
	TextColor   *string `yaml:"text_color"`
	ShowValue   *bool   `yaml:"show_value"`
}

func DefaultConicalColumnChart() ConicalColumnChart {
	return ConicalColumnChart{
		ColumnColor: "#00c2ff",
		TextColor:   "#ffffff",
	}
}

func (c ConicalColumnChart) Merge(p *ConicalColumnChartPatch) ConicalColumnChart {
	out := c
	out.Data = pickSlice(c.Data, nil)
	if p == nil {
		return out
	}
	out.Data = pickSlice(c.Data, p.Data)
	out.ColumnColor = pick(c.ColumnColor, p.ColumnColor)
	out.TextColor = pick(c.TextColor, p.TextColor)
	out.ShowValue = pick(c.ShowValue, p.ShowValue)
	return out
}

// FlyPoint is a named location. With Relative set coordinates are fractions
// of the widget size.
type FlyPoint struct {
	Name       string     `yaml:"name" validate:"required"`
	Coordinate [2]float64 `yaml:"coordinate"`
}

type FlyLine struct {
	Source string `yaml:"source" validate:"required"`
	Target string `yaml:"target" validate:"required"`
	Color  string `yaml:"color" validate:"omitempty,iscolor"`
	// Duration is the flight time in milliseconds; 0 picks one at random
	// from the chart's duration range.
	Duration int `yaml:"duration" validate:"min=0"`
}

// FlyLineChart configures the fly-line map.
type FlyLineChart struct {
	Points     []FlyPoint `yaml:"points" validate:"dive"`
	Lines      []FlyLine  `yaml:"lines" validate:"dive"`
	LineColor  string     `yaml:"line_color" validate:"omitempty,iscolor"`
	OrbitColor string     `yaml:"orbit_color" validate:"omitempty,iscolor"`
	Duration   [2]int     `yaml:"duration"`
	ShowOrbit  bool       `yaml:"show_orbit"`
	ShowText   bool       `yaml:"show_text"`
	TextColor  string     `yaml:"text_color" validate:"omitempty,iscolor"`
	Curvature  float64    `yaml:"curvature" validate:"min=0"`
	Relative   bool       `yaml:"relative"`
}

type FlyLineChartPatch struct {
	Points     []FlyPoint `yaml:"points"`
	Lines      []FlyLine  `yaml:"lines"`
	LineColor  *string    `yaml:"line_color"`
	OrbitColor *string    `yaml:"orbit_color"`
	Duration   *[2]int    `yaml:"duration"`
	ShowOrbit  *bool      `yaml:"show_orbit"`
	ShowText   *bool      `yaml:"show_text"`
	TextColor  *string    `yaml:"text_color"`
	Curvature  *float64   `yaml:"curvature"`
	Relative   *bool      `yaml:"relative"`
}

func DefaultFlyLineChart() FlyLineChart {
	return FlyLineChart{
		LineColor:  "#ffde93",
		OrbitColor: "#67e0e3",
		Duration:   [2]int{2000, 3000},
		ShowText:   true,
		TextColor:  "#ffdb5c",
		Curvature:  5,
		Relative:   true,
	}
}

func (c FlyLineChart) Merge(p *FlyLineChartPatch) FlyLineChart {
	out := c
	out.Points = pickSlice(c.Points, nil)
	out.Lines = pickSlice(c.Lines, nil)
	if p == nil {
		return out
	}
	out.Points = pickSlice(c.Points, p.Points)
	out.Lines = pickSlice(c.Lines, p.Lines)
	out.LineColor = pick(c.LineColor, p.LineColor)
	out.OrbitColor = pick(c.OrbitColor, p.OrbitColor)
	out.Duration = pick(c.Duration, p.Duration)
	out.ShowOrbit = pick(c.ShowOrbit, p.ShowOrbit)
	out.ShowText = pick(c.ShowText, p.ShowText)
	out.TextColor = pick(c.TextColor, p.TextColor)
	out.Curvature = pick(c.Curvature, p.Curvature)
	out.Relative = pick(c.Relative, p.Relative)
	return out
}

// BorderBox configures a decorative frame.
type BorderBox struct {
	Variant         int       `yaml:"variant" validate:"min=1,max=13"`
	Color           ColorPair `yaml:"color"`
	BackgroundColor string    `yaml:"background_color" validate:"omitempty,iscolor"`
	Title           string    `yaml:"title"`
	Reverse         bool      `yaml:"reverse"`
}

type BorderBoxPatch struct {
	Variant         *int            `yaml:"variant"`
	Color           *ColorPairPatch `yaml:"color"`
	BackgroundColor *string         `yaml:"background_color"`
	Title           *string         `yaml:"title"`
	Reverse         *bool           `yaml:"reverse"`
}

func DefaultBorderBox() BorderBox {
	return BorderBox{
		Variant: 1,
		Color:   ColorPair{Primary: "#4fd2dd", Secondary: "#235fa7"},
	}
}

func (c BorderBox) Merge(p *BorderBoxPatch) BorderBox {
	if p == nil {
		return c
	}
	out := c
	out.Variant = pick(c.Variant, p.Variant)
	out.Color = c.Color.Merge(p.Color)
	out.BackgroundColor = pick(c.BackgroundColor, p.BackgroundColor)
	out.Title = pick(c.Title, p.Title)
	out.Reverse = pick(c.Reverse, p.Reverse)
	return out
}

// Decoration configures an animated ornament.
type Decoration struct {
	Variant int       `yaml:"variant" validate:"min=1,max=12"`
	Color   ColorPair `yaml:"color"`
	Reverse bool      `yaml:"reverse"`
	Dur     int       `yaml:"dur" validate:"min=0"`
}

type DecorationPatch struct {
	Variant *int            `yaml:"variant"`
	Color   *ColorPairPatch `yaml:"color"`
	Reverse *bool           `yaml:"reverse"`
	Dur     *int            `yaml:"dur"`
}

func DefaultDecoration() Decoration {
	return Decoration{
		Variant: 1,
		Color:   ColorPair{Primary: "#7acaec", Secondary: "#ffffff"},
		Dur:     1200,
	}
}

func (c Decoration) Merge(p *DecorationPatch) Decoration {
	if p == nil {
		return c
	}
	out := c
	out.Variant = pick(c.Variant, p.Variant)
	out.Color = c.Color.Merge(p.Color)
	out.Reverse = pick(c.Reverse, p.Reverse)
	out.Dur = pick(c.Dur, p.Dur)
	return out
}

func (c Decoration) Period() time.Duration { return millis(c.Dur) }

// LineChart configures a rolling series chart.
type LineChart struct {
	Title     string  `yaml:"title"`
	MaxPoints int     `yaml:"max_points" validate:"min=2"`
	Min       float64 `yaml:"min"`
	Max       float64 `yaml:"max" validate:"gtfield=Min"`
	Color     string  `yaml:"color" validate:"omitempty,iscolor"`
}

type LineChartPatch struct {
	Title     *string  `yaml:"title"`
	MaxPoints *int     `yaml:"max_points"`
	Min       *float64 `yaml:"min"`
	Max       *float64 `yaml:"max"`
	Color     *string  `yaml:"color"`
}

func DefaultLineChart() LineChart {
	return LineChart{
		MaxPoints: 60,
		Min:       0,
		Max:       100,
		Color:     "#00BAFF",
	}
}

func (c LineChart) Merge(p *LineChartPatch) LineChart {
	if p == nil {
		return c
	}
	out := c
	out.Title = pick(c.Title, p.Title)
	out.MaxPoints = pick(c.MaxPoints, p.MaxPoints)
	out.Min = pick(c.Min, p.Min)
	out.Max = pick(c.Max, p.Max)
	out.Color = pick(c.Color, p.Color)
	return out
}
