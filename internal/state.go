package internal

// Selection is the user-controlled part of the dashboard.
type Selection struct {
	Timeframe Timeframe
	Style     ChartStyle
	View      View
}

// State is an immutable snapshot of the dashboard. Reduce never mutates its
// input; slices held here are treated as read-only.
type State struct {
	Selection
	Defaults Selection

	Series    []PricePoint
	Analytics Analytics
	Loaded    bool

	// Spot is nil until an auxiliary fetch succeeds.
	Spot SpotSnapshot

	Err string

	// Latest generation issued per channel; results stamped with anything else are stale.
	SeriesGen uint64
	SpotGen   uint64
}

// NewState returns the state before anything has been fetched. Dispatch
// Reload to issue the first requests.
func NewState(defaults Selection) State {
	return State{Selection: defaults, Defaults: defaults}
}

type Event interface{ isEvent() }

type (
	SelectTimeframe struct{ Timeframe Timeframe }
	SelectView      struct{ View View }
	SelectStyle     struct{ Style ChartStyle }

	SeriesLoaded struct {
		Gen    uint64
		Result SeriesResult
	}
	SeriesFailed struct {
		Gen uint64
		Err error
	}
	SpotLoaded struct {
		Gen      uint64
		Snapshot SpotSnapshot
	}
	SpotFailed struct {
		Gen uint64
		Err error
	}

	ExportRequested struct{}

	// Reload discards everything and starts over from the defaults.
	Reload struct{}
)

func (SelectTimeframe) isEvent() {}
func (SelectView) isEvent()      {}
func (SelectStyle) isEvent()     {}
func (SeriesLoaded) isEvent()    {}
func (SeriesFailed) isEvent()    {}
func (SpotLoaded) isEvent()      {}
func (SpotFailed) isEvent()      {}
func (ExportRequested) isEvent() {}
func (Reload) isEvent()          {}

type Command interface{ isCommand() }

type (
	FetchSeriesCmd struct {
		Gen       uint64
		Timeframe Timeframe
	}
	FetchSpotCmd struct {
		Gen  uint64
		View View
	}
	ExportCmd struct {
		Series    []PricePoint
		Timeframe Timeframe
	}
)

func (FetchSeriesCmd) isCommand() {}
func (FetchSpotCmd) isCommand()   {}
func (ExportCmd) isCommand()      {}

// Reduce applies one event and returns the next state plus the side effects to run.
func Reduce(s State, ev Event) (State, []Command) {
	if s.Err != "" {
		if _, ok := ev.(Reload); !ok {
			return s, nil
		}
	}

	switch e := ev.(type) {
	case SelectTimeframe:
		if !e.Timeframe.Valid() || e.Timeframe == s.Timeframe {
			return s, nil
		}
		s.Timeframe = e.Timeframe
		return s.issueSeries()

	case SelectView:
		if !e.View.Valid() || e.View == s.View {
			return s, nil
		}
		s.View = e.View
		if e.View == ViewChart {
			return s, nil
		}
		return s.issueSpot()

	case SelectStyle:
		if e.Style != ChartLine && e.Style != ChartBar {
			return s, nil
		}
		s.Style = e.Style
		return s, nil

	case SeriesLoaded:
		if e.Gen != s.SeriesGen {
			return s, nil
		}
		s.Series = e.Result.Series
		s.Analytics = e.Result.Analytics
		s.Loaded = true
		return s, nil

	case SeriesFailed:
		if e.Gen != s.SeriesGen {
			return s, nil
		}
		s.Err = FetchErrorMessage
		return s, nil

	case SpotLoaded:
		if e.Gen != s.SpotGen {
			return s, nil
		}
		s.Spot = e.Snapshot
		return s, nil

	case SpotFailed:
		return s, nil

	case ExportRequested:
		if s.View != ViewChart {
			return s, nil
		}
		return s, []Command{ExportCmd{Series: s.Series, Timeframe: s.Timeframe}}

	case Reload:
		next := State{
			Selection: s.Defaults,
			Defaults:  s.Defaults,
			SeriesGen: s.SeriesGen,
			SpotGen:   s.SpotGen,
		}
		next, cmds := next.issueSeries()
		if next.View != ViewChart {
			var spot []Command
			next, spot = next.issueSpot()
			cmds = append(cmds, spot...)
		}
		return next, cmds
	}
	return s, nil
}

func (s State) issueSeries() (State, []Command) {
	s.SeriesGen++
	return s, []Command{FetchSeriesCmd{Gen: s.SeriesGen, Timeframe: s.Timeframe}}
}

func (s State) issueSpot() (State, []Command) {
	s.SpotGen++
	return s, []Command{FetchSpotCmd{Gen: s.SpotGen, View: s.View}}
}
