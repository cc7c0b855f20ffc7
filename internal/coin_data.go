package internal

import (
	"fmt"
	"strings"
	"time"
)

// Timeframe is the history window in days.
type Timeframe int

const (
	Timeframe1D   Timeframe = 1
	Timeframe7D   Timeframe = 7
	Timeframe30D  Timeframe = 30
	Timeframe365D Timeframe = 365
)

// Timeframes lists the selectable windows in button order.
var Timeframes = []Timeframe{Timeframe1D, Timeframe7D, Timeframe30D, Timeframe365D}

func (t Timeframe) Days() int { return int(t) }

func (t Timeframe) Label() string {
	switch t {
	case Timeframe1D:
		return "1d"
	case Timeframe7D:
		return "1w"
	case Timeframe30D:
		return "1m"
	case Timeframe365D:
		return "1y"
	}
	return fmt.Sprintf("%dd", int(t))
}

func (t Timeframe) Valid() bool {
	for _, tf := range Timeframes {
		if tf == t {
			return true
		}
	}
	return false
}

func ParseTimeframe(days int) (Timeframe, error) {
	tf := Timeframe(days)
	if !tf.Valid() {
		return 0, fmt.Errorf("unsupported timeframe: %d days", days)
	}
	return tf, nil
}

// ChartStyle selects how the series is drawn.
type ChartStyle int

const (
	ChartLine ChartStyle = iota
	ChartBar
)

// ChartStyles lists the styles in the order the settings toggle shows them.
var ChartStyles = []ChartStyle{ChartLine, ChartBar}

func (s ChartStyle) String() string {
	if s == ChartBar {
		return "bar"
	}
	return "line"
}

// Label is the settings button text.
func (s ChartStyle) Label() string {
	if s == ChartBar {
		return "Bar Chart"
	}
	return "Line Chart"
}

func ParseChartStyle(s string) (ChartStyle, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "line":
		return ChartLine, nil
	case "bar":
		return ChartBar, nil
	}
	return ChartLine, fmt.Errorf("unsupported chart style: %q", s)
}

// View is one of the mutually exclusive dashboard sections.
type View int

const (
	ViewSummary View = iota
	ViewChart
	ViewStatistics
	ViewAnalysis
	ViewSettings
)

// Views lists the tabs in display order.
var Views = []View{ViewSummary, ViewChart, ViewStatistics, ViewAnalysis, ViewSettings}

func (v View) String() string {
	switch v {
	case ViewSummary:
		return "Summary"
	case ViewChart:
		return "Chart"
	case ViewStatistics:
		return "Statistics"
	case ViewAnalysis:
		return "Analysis"
	case ViewSettings:
		return "Settings"
	}
	return fmt.Sprintf("View(%d)", int(v))
}

func (v View) Valid() bool { return v >= ViewSummary && v <= ViewSettings }

func ParseView(s string) (View, error) {
	for _, v := range Views {
		if strings.EqualFold(v.String(), strings.TrimSpace(s)) {
			return v, nil
		}
	}
	return ViewChart, fmt.Errorf("unsupported view: %q", s)
}

type PricePoint struct {
	Price     float64   `json:"price"`
	Timestamp time.Time `json:"timestamp"`
}

// Analytics is derived wholesale from one fetched series.
type Analytics struct {
	High          float64
	Low           float64
	TotalVolume   float64
	BaseValue     float64
	LatestPrice   float64
	PercentChange float64
}

// SpotSnapshot maps a quote currency (lowercase) to the current spot price.
type SpotSnapshot map[string]float64

func (s SpotSnapshot) Price(currency string) (float64, bool) {
	p, ok := s[strings.ToLower(currency)]
	return p, ok
}

// MarketChart is the raw history returned by the upstream.
type MarketChart struct {
	Prices  []PricePoint
	Volumes []PricePoint
}
