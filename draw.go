package main

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/temidaradev/esset/v2"

	"github.com/temidaradev/ebichart/internal"
)

var (
	colorBackground = color.RGBA{25, 25, 25, 255}
	colorPanel      = color.RGBA{50, 50, 50, 255}
	colorText       = color.RGBA{255, 255, 255, 255}
	colorMuted      = color.RGBA{150, 150, 150, 255}
	colorAccent     = color.RGBA{74, 144, 226, 255}
	colorInactive   = color.RGBA{80, 80, 80, 255}
	colorUp         = color.RGBA{0, 200, 0, 255}
	colorDown       = color.RGBA{255, 60, 60, 255}
	colorGrid       = color.RGBA{70, 70, 70, 255}
)

func (g *Game) Draw(screen *ebiten.Image) {
	g.initSolidColorImage()
	screen.Fill(colorBackground)

	if sec, ok := g.frame.Body.(internal.ErrorSection); ok {
		g.drawText(screen, sec.Message, g.layout.Body.Min, colorDown)
		g.drawBoxes(screen, g.layout.Buttons)
		return
	}

	g.drawHeader(screen)
	g.drawBoxes(screen, g.layout.Timeframes)
	g.drawBoxes(screen, g.layout.Tabs)

	at := g.layout.Body.Min
	switch sec := g.frame.Body.(type) {
	case internal.SummarySection:
		clr := colorText
		if sec.Loading {
			clr = colorMuted
		}
		g.drawText(screen, sec.Text, at, clr)
	case internal.ChartSection:
		g.drawChart(screen, sec.Loading)
		g.drawBoxes(screen, g.layout.Buttons)
		g.drawExportStatus(screen)
	case internal.StatisticsSection:
		g.drawText(screen, sec.High, at, colorText)
		g.drawText(screen, sec.Low, g.nextLine(at), colorText)
	case internal.AnalysisSection:
		g.drawText(screen, sec.Text, at, colorText)
	case internal.SettingsSection:
		g.drawText(screen, sec.Prompt, at, colorText)
		g.drawBoxes(screen, g.layout.Buttons)
	}
}

func (g *Game) drawHeader(screen *ebiten.Image) {
	h := g.frame.Header
	g.drawText(screen, h.Price, g.layout.PriceAt, colorText)

	changeColor := colorDown
	if h.Positive {
		changeColor = colorUp
	}
	g.drawText(screen, h.Change, g.layout.ChangeAt, changeColor)
	w, _ := g.measure(h.Change + " ")
	g.drawText(screen, h.Base, g.layout.ChangeAt.Add(image.Pt(int(w), 0)), colorMuted)
}

func (g *Game) drawBoxes(screen *ebiten.Image, boxes []internal.Box) {
	for _, b := range boxes {
		fill := colorInactive
		if b.Active {
			fill = colorAccent
		}
		r := b.Rect
		vector.DrawFilledRect(screen, float32(r.Min.X), float32(r.Min.Y), float32(r.Dx()), float32(r.Dy()), fill, false)

		w, h := g.measure(b.Label)
		x := float64(r.Min.X) + (float64(r.Dx())-w)/2
		y := float64(r.Min.Y) + (float64(r.Dy())-h)/2
		esset.DrawText(screen, b.Label, 0, x, y, g.fontFace, colorText)
	}
}

func (g *Game) drawChart(screen *ebiten.Image, loading bool) {
	r := g.layout.Chart
	if r.Empty() {
		return
	}
	vector.DrawFilledRect(screen, float32(r.Min.X), float32(r.Min.Y), float32(r.Dx()), float32(r.Dy()), colorPanel, false)

	p := g.plot
	if len(p.Marks) == 0 {
		message := "No history data yet."
		if loading {
			message = "Loading..."
		}
		w, h := g.measure(message)
		x := float64(r.Min.X) + (float64(r.Dx())-w)/2
		y := float64(r.Min.Y) + (float64(r.Dy())-h)/2
		esset.DrawText(screen, message, 0, x, y, g.fontFace, colorMuted)
		return
	}

	for _, t := range p.Ticks {
		vector.StrokeLine(screen, t.X, float32(r.Min.Y), t.X, float32(r.Max.Y), 1, colorGrid, false)
		w, _ := g.measure(t.Label)
		esset.DrawText(screen, t.Label, 0, float64(t.X)-w/2, float64(g.layout.TickBand.Min.Y), g.fontFace, colorMuted)
	}

	switch p.Style {
	case internal.ChartBar:
		for _, m := range p.Marks {
			vector.DrawFilledRect(screen, m.X-m.Width/2, m.Y, m.Width, float32(r.Max.Y)-m.Y, colorAccent, false)
		}
	default:
		g.drawLine(screen, p)
	}

	if idx, ok := g.hoveredIndex(); ok {
		g.drawTooltip(screen, idx)
	}
}

func (g *Game) drawLine(screen *ebiten.Image, p internal.Plot) {
	if len(p.Marks) == 1 {
		m := p.Marks[0]
		vector.DrawFilledCircle(screen, m.X, m.Y, 3.0*float32(g.deviceScale), colorAccent, false)
		return
	}

	area := &vector.Path{}
	area.MoveTo(p.Marks[0].X, float32(p.Rect.Max.Y))
	for _, m := range p.Marks {
		area.LineTo(m.X, m.Y)
	}
	area.LineTo(p.Marks[len(p.Marks)-1].X, float32(p.Rect.Max.Y))
	area.Close()
	vs, is := area.AppendVerticesAndIndicesForFilling(nil, nil)
	g.drawVertices(screen, vs, is, color.RGBA{74, 144, 226, 70})

	line := &vector.Path{}
	line.MoveTo(p.Marks[0].X, p.Marks[0].Y)
	for _, m := range p.Marks[1:] {
		line.LineTo(m.X, m.Y)
	}
	vs, is = line.AppendVerticesAndIndicesForStroke(nil, nil, &vector.StrokeOptions{
		Width:    2.0 * float32(g.deviceScale),
		LineJoin: vector.LineJoinRound,
	})
	g.drawVertices(screen, vs, is, colorAccent)

	last := p.Marks[len(p.Marks)-1]
	vector.DrawFilledCircle(screen, last.X, last.Y, 3.0*float32(g.deviceScale), color.RGBA{255, 255, 0, 255}, false)
}

func (g *Game) drawVertices(screen *ebiten.Image, vs []ebiten.Vertex, is []uint16, clr color.RGBA) {
	for i := range vs {
		vs[i].SrcX = 0.5
		vs[i].SrcY = 0.5
		vs[i].ColorR = float32(clr.R) / 255
		vs[i].ColorG = float32(clr.G) / 255
		vs[i].ColorB = float32(clr.B) / 255
		vs[i].ColorA = float32(clr.A) / 255
	}
	op := &ebiten.DrawTrianglesOptions{AntiAlias: true}
	screen.DrawTriangles(vs, is, g.solidColorImage, op)
}

func (g *Game) hoveredIndex() (int, bool) {
	if !g.cursor.In(g.layout.Chart) {
		return 0, false
	}
	return g.plot.Nearest(g.cursor.X)
}

func (g *Game) drawTooltip(screen *ebiten.Image, idx int) {
	sec, ok := g.frame.Body.(internal.ChartSection)
	if !ok || idx >= len(sec.Series) {
		return
	}
	m := g.plot.Marks[idx]
	r := g.layout.Chart
	vector.StrokeLine(screen, m.X, float32(r.Min.Y), m.X, float32(r.Max.Y), 1, colorMuted, false)
	vector.DrawFilledCircle(screen, m.X, m.Y, 4.0*float32(g.deviceScale), colorText, false)

	label := internal.TooltipLabel(sec.Series[idx])
	w, h := g.measure(label)
	pad := 6 * g.deviceScale
	x := float64(m.X) + pad
	if x+w+2*pad > float64(r.Max.X) {
		x = float64(m.X) - w - 3*pad
	}
	y := float64(r.Min.Y) + pad
	vector.DrawFilledRect(screen, float32(x), float32(y), float32(w+2*pad), float32(h+2*pad), color.RGBA{0, 0, 0, 200}, false)
	esset.DrawText(screen, label, 0, x+pad, y+pad, g.fontFace, colorText)
}

func (g *Game) drawExportStatus(screen *ebiten.Image) {
	path, err := g.dash.LastExport()
	if (path == "" && err == nil) || len(g.layout.Buttons) == 0 {
		return
	}
	msg, clr := "Saved to "+path, colorMuted
	if err != nil {
		msg, clr = "Export failed", colorDown
	}
	btn := g.layout.Buttons[0].Rect
	g.drawText(screen, msg, image.Pt(btn.Max.X+int(10*g.deviceScale), btn.Min.Y), clr)
}

func (g *Game) drawText(screen *ebiten.Image, s string, at image.Point, clr color.RGBA) {
	esset.DrawText(screen, s, 0, float64(at.X), float64(at.Y), g.fontFace, clr)
}

func (g *Game) nextLine(at image.Point) image.Point {
	return at.Add(image.Pt(0, int(g.layout.LineHeight*1.5)))
}
