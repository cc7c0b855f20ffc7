package internal

import (
	"fmt"
	"strings"
)

// Labels carries the display names the render needs.
type Labels struct {
	AssetName string
	Currency  string
}

func (l Labels) currencyCode() string { return strings.ToUpper(l.Currency) }

// Toggle is a clickable control. Action is dispatched when it is clicked.
type Toggle struct {
	Label  string
	Active bool
	Action Event
}

type Header struct {
	Price    string
	Change   string
	Base     string
	Positive bool
}

// Frame is everything drawn for one state.
type Frame struct {
	Header     Header
	Timeframes []Toggle
	Tabs       []Toggle
	Body       Section
}

// Section is the body of a frame. Exactly one implementation is active.
type Section interface{ section() }

type SummarySection struct {
	Loading bool
	Text    string
}

// ChartSection is Loading until a series has been loaded.
type ChartSection struct {
	Loading  bool
	Style    ChartStyle
	Series   []PricePoint
	Download Toggle
}

type StatisticsSection struct {
	High string
	Low  string
}

type AnalysisSection struct {
	Text string
}

type SettingsSection struct {
	Prompt string
	Styles []Toggle
}

// ErrorSection replaces the whole frame after a primary fetch failure.
type ErrorSection struct {
	Message string
	Refresh Toggle
}

func (SummarySection) section()    {}
func (ChartSection) section()      {}
func (StatisticsSection) section() {}
func (AnalysisSection) section()   {}
func (SettingsSection) section()   {}
func (ErrorSection) section()      {}

// Render maps a state to its frame. It has no side effects.
func Render(s State, l Labels) Frame {
	if s.Err != "" {
		return Frame{Body: ErrorSection{
			Message: s.Err,
			Refresh: Toggle{Label: "Refresh", Action: Reload{}},
		}}
	}

	f := Frame{
		Header: renderHeader(s.Analytics, l),
		Tabs:   renderTabs(s.View),
	}
	if s.View == ViewChart {
		f.Timeframes = renderTimeframes(s.Timeframe)
	}

	switch s.View {
	case ViewSummary:
		f.Body = renderSummary(s.Spot, l)
	case ViewChart:
		f.Body = ChartSection{
			Loading:  !s.Loaded,
			Style:    s.Style,
			Series:   s.Series,
			Download: Toggle{Label: "Download Data", Action: ExportRequested{}},
		}
	case ViewStatistics:
		f.Body = StatisticsSection{
			High: fmt.Sprintf("Highest Price: $%s", FormatAmount(s.Analytics.High)),
			Low:  fmt.Sprintf("Lowest Price: $%s", FormatAmount(s.Analytics.Low)),
		}
	case ViewAnalysis:
		f.Body = AnalysisSection{Text: fmt.Sprintf(
			"The total trading volume is %s %s in the last %d days.",
			FormatAmount(s.Analytics.TotalVolume), l.currencyCode(), s.Timeframe.Days(),
		)}
	case ViewSettings:
		f.Body = renderSettings(s.Style)
	default:
		panic(fmt.Sprintf("render: unknown view %d", int(s.View)))
	}
	return f
}

func renderHeader(a Analytics, l Labels) Header {
	return Header{
		Price:    fmt.Sprintf("$%s %s", FormatAmount(a.LatestPrice), l.currencyCode()),
		Change:   FormatPercent(a.PercentChange),
		Base:     fmt.Sprintf("(%s %s)", FormatAmount(a.BaseValue), l.currencyCode()),
		Positive: NonNegative(a.PercentChange),
	}
}

func renderTabs(active View) []Toggle {
	tabs := make([]Toggle, 0, len(Views))
	for _, v := range Views {
		tabs = append(tabs, Toggle{Label: v.String(), Active: v == active, Action: SelectView{View: v}})
	}
	return tabs
}

func renderTimeframes(active Timeframe) []Toggle {
	out := make([]Toggle, 0, len(Timeframes))
	for _, tf := range Timeframes {
		out = append(out, Toggle{Label: tf.Label(), Active: tf == active, Action: SelectTimeframe{Timeframe: tf}})
	}
	return out
}

func renderSummary(spot SpotSnapshot, l Labels) SummarySection {
	price, ok := spot.Price(l.Currency)
	if !ok {
		return SummarySection{Loading: true, Text: "Loading..."}
	}
	return SummarySection{Text: fmt.Sprintf("%s is currently priced at $%s %s.",
		l.AssetName, FormatAmount(price), l.currencyCode())}
}

func renderSettings(active ChartStyle) SettingsSection {
	styles := make([]Toggle, 0, len(ChartStyles))
	for _, st := range ChartStyles {
		styles = append(styles, Toggle{Label: st.Label(), Active: st == active, Action: SelectStyle{Style: st}})
	}
	return SettingsSection{Prompt: "Select Chart Type:", Styles: styles}
}
