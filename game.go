package main

import (
	"context"
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"go.uber.org/zap"

	"github.com/temidaradev/ebichart/internal"
)

type Game struct {
	ctx    context.Context
	dash   *internal.Dashboard
	labels internal.Labels
	log    *zap.Logger

	fontFace        text.Face
	deviceScale     float64
	solidColorImage *ebiten.Image

	width, height int
	frame         internal.Frame
	layout        internal.Layout
	plot          internal.Plot
	cursor        image.Point
}

func NewGame(ctx context.Context, dash *internal.Dashboard, labels internal.Labels, face text.Face, deviceScale float64, logger *zap.Logger) *Game {
	return &Game{
		ctx:         ctx,
		dash:        dash,
		labels:      labels,
		log:         logger,
		fontFace:    face,
		deviceScale: deviceScale,
	}
}

func (g *Game) initSolidColorImage() {
	if g.solidColorImage == nil {
		g.solidColorImage = ebiten.NewImage(1, 1)
		g.solidColorImage.Fill(color.White)
	}
}

func (g *Game) measure(s string) (float64, float64) {
	return text.Measure(s, g.fontFace, -1)
}

// refresh rebuilds the frame, layout and plot from the current state.
func (g *Game) refresh() {
	g.frame = internal.Render(g.dash.State(), g.labels)
	g.layout = internal.ComputeLayout(g.frame, g.width, g.height, g.deviceScale, g.measure)
	if sec, ok := g.frame.Body.(internal.ChartSection); ok {
		g.plot = internal.NewPlot(sec.Series, g.layout.Chart, sec.Style)
	} else {
		g.plot = internal.Plot{}
	}
}

func (g *Game) Update() error {
	if g.ctx.Err() != nil {
		return ebiten.Termination
	}

	g.dash.Poll()
	g.refresh()

	mx, my := ebiten.CursorPosition()
	g.cursor = image.Pt(mx, my)

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		if ev, ok := g.layout.HitTest(mx, my); ok {
			g.log.Debug("control clicked", zap.String("event", eventName(ev)))
			g.dash.Dispatch(ev)
			g.refresh()
		}
	}
	return nil
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (screenWidth, screenHeight int) {
	g.width = int(float64(outsideWidth) * g.deviceScale)
	g.height = int(float64(outsideHeight) * g.deviceScale)
	return g.width, g.height
}

func eventName(ev internal.Event) string {
	switch e := ev.(type) {
	case internal.SelectTimeframe:
		return "timeframe:" + e.Timeframe.Label()
	case internal.SelectView:
		return "view:" + e.View.String()
	case internal.SelectStyle:
		return "style:" + e.Style.String()
	case internal.ExportRequested:
		return "export"
	case internal.Reload:
		return "reload"
	}
	return "other"
}
