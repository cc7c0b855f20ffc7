package internal

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// SeriesExporter saves a series snapshot somewhere local.
type SeriesExporter interface {
	Export(series []PricePoint, tf Timeframe) (string, error)
}

// Dashboard owns the state and runs the effects Reduce asks for. Dispatch,
// Poll and State must be called from the UI goroutine only; fetches run on
// their own goroutines and hand results back through Poll.
type Dashboard struct {
	state    State
	src      Source
	exporter SeriesExporter
	log      *zap.Logger

	ctx     context.Context
	cancel  context.CancelFunc
	results chan Event
	wg      sync.WaitGroup

	lastExport string
	exportErr  error
}

func NewDashboard(ctx context.Context, src Source, exporter SeriesExporter, defaults Selection, logger *zap.Logger) *Dashboard {
	ctx, cancel := context.WithCancel(ctx)
	return &Dashboard{
		state:    NewState(defaults),
		src:      src,
		exporter: exporter,
		log:      logger,
		ctx:      ctx,
		cancel:   cancel,
		results:  make(chan Event, 32),
	}
}

// Start issues the initial fetches.
func (d *Dashboard) Start() { d.Dispatch(Reload{}) }

func (d *Dashboard) State() State { return d.state }

// LastExport reports the most recent export outcome.
func (d *Dashboard) LastExport() (string, error) { return d.lastExport, d.exportErr }

func (d *Dashboard) Dispatch(ev Event) {
	d.logStale(ev)

	next, cmds := Reduce(d.state, ev)
	d.state = next
	if _, ok := ev.(Reload); ok {
		d.lastExport, d.exportErr = "", nil
	}

	for _, cmd := range cmds {
		d.run(cmd)
	}
}

// Poll applies every finished fetch result and returns how many it applied.
func (d *Dashboard) Poll() int {
	n := 0
	for {
		select {
		case ev := <-d.results:
			d.Dispatch(ev)
			n++
		default:
			return n
		}
	}
}


// Close aborts in-flight fetches. Only used on shutdown.
func (d *Dashboard) Close() {
	d.cancel()
	d.wg.Wait()
}

func (d *Dashboard) run(cmd Command) {
	switch c := cmd.(type) {
	case FetchSeriesCmd:
		d.spawn(func(reqID string) Event {
			d.log.Debug("fetching series",
				zap.String("request_id", reqID),
				zap.Uint64("gen", c.Gen),
				zap.Int("days", c.Timeframe.Days()),
			)
			res, err := FetchSeries(d.ctx, d.src, c.Timeframe)
			if err != nil {
				d.log.Warn("series fetch failed",
					zap.String("request_id", reqID),
					zap.Uint64("gen", c.Gen),
					zap.Error(err),
				)
				return SeriesFailed{Gen: c.Gen, Err: err}
			}
			return SeriesLoaded{Gen: c.Gen, Result: res}
		})

	case FetchSpotCmd:
		d.spawn(func(reqID string) Event {
			snap, err := FetchAuxiliary(d.ctx, d.src, c.View)
			if err != nil {
				d.log.Warn("auxiliary fetch failed",
					zap.String("request_id", reqID),
					zap.Stringer("view", c.View),
					zap.Error(err),
				)
				return SpotFailed{Gen: c.Gen, Err: err}
			}
			return SpotLoaded{Gen: c.Gen, Snapshot: snap}
		})

	case ExportCmd:
		path, err := d.exporter.Export(c.Series, c.Timeframe)
		if err != nil {
			d.log.Error("export failed", zap.Error(err))
		}
		d.lastExport, d.exportErr = path, err
	}
}

func (d *Dashboard) spawn(fetch func(reqID string) Event) {
	reqID := uuid.NewString()
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		ev := fetch(reqID)
		if errors.Is(d.ctx.Err(), context.Canceled) {
			return
		}
		select {
		case d.results <- ev:
		case <-d.ctx.Done():
		}
	}()
}

func (d *Dashboard) logStale(ev Event) {
	switch e := ev.(type) {
	case SeriesLoaded:
		if e.Gen != d.state.SeriesGen {
			d.log.Debug("discarding stale series", zap.Uint64("gen", e.Gen), zap.Uint64("current", d.state.SeriesGen))
		}
	case SeriesFailed:
		if e.Gen != d.state.SeriesGen {
			d.log.Debug("discarding stale series failure", zap.Uint64("gen", e.Gen), zap.Uint64("current", d.state.SeriesGen))
		}
	case SpotLoaded:
		if e.Gen != d.state.SpotGen {
			d.log.Debug("discarding stale spot snapshot", zap.Uint64("gen", e.Gen), zap.Uint64("current", d.state.SpotGen))
		}
	}
}
