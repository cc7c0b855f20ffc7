package internal

import (
	"context"
	"fmt"
)

// FetchErrorMessage is the only failure text users ever see.
const FetchErrorMessage = "Oooops... error fetching data, possibly due to too many requests!"

// Source is the upstream market-data service.
type Source interface {
	FetchMarketChart(ctx context.Context, tf Timeframe) (MarketChart, error)
	FetchSpotPrice(ctx context.Context) (SpotSnapshot, error)
}

type SeriesResult struct {
	Series    []PricePoint
	Analytics Analytics
}

// FetchError is a primary series failure. Network, status and payload
// problems all collapse into it.
type FetchError struct {
	Timeframe Timeframe
	Err       error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch series %dd: %v", e.Timeframe.Days(), e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// FetchSeries loads the history window and derives its analytics.
func FetchSeries(ctx context.Context, src Source, tf Timeframe) (SeriesResult, error) {
	chart, err := src.FetchMarketChart(ctx, tf)
	if err != nil {
		return SeriesResult{}, &FetchError{Timeframe: tf, Err: err}
	}
	return SeriesResult{
		Series:    chart.Prices,
		Analytics: Derive(chart.Prices, chart.Volumes),
	}, nil
}

// FetchAuxiliary loads the spot snapshot shown by non-chart views. Callers
// log a failure and carry on.
func FetchAuxiliary(ctx context.Context, src Source, view View) (SpotSnapshot, error) {
	snap, err := src.FetchSpotPrice(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch auxiliary for %s: %w", view, err)
	}
	return snap, nil
}
