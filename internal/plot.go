package internal

import (
	"image"
	"math"
	"time"
)

const maxDayTicks = 8

// Mark is one projected point. For bars, X is the bar centre and the bar
// spans Y..Rect.Max.Y with the given Width.
type Mark struct {
	X, Y  float32
	Width float32
}

type Tick struct {
	X     float32
	Label string
}

// Plot is a series projected into a screen rectangle. The y range follows
// the data and is not forced through zero.
type Plot struct {
	Rect     image.Rectangle
	Style    ChartStyle
	Min, Max float64
	Start    time.Time
	End      time.Time
	Marks    []Mark
	Ticks    []Tick
}

func NewPlot(series []PricePoint, rect image.Rectangle, style ChartStyle) Plot {
	p := Plot{Rect: rect, Style: style}
	if len(series) == 0 || rect.Empty() {
		return p
	}

	p.Min, p.Max = series[0].Price, series[0].Price
	for _, pt := range series {
		p.Min = math.Min(p.Min, pt.Price)
		p.Max = math.Max(p.Max, pt.Price)
	}
	if p.Max == p.Min {
		half := math.Abs(p.Min) * 0.01
		if half == 0 {
			half = 1
		}
		p.Min -= half
		p.Max += half
	}
	p.Start = series[0].Timestamp
	p.End = series[len(series)-1].Timestamp

	var width float32
	if style == ChartBar {
		width = float32(float64(rect.Dx()) / float64(len(series)) * 0.8)
		if width < 1 {
			width = 1
		}
	}

	p.Marks = make([]Mark, len(series))
	for i, pt := range series {
		p.Marks[i] = Mark{X: p.xFor(pt.Timestamp), Y: p.yFor(pt.Price), Width: width}
	}
	p.Ticks = p.dayTicks()
	return p
}

func (p Plot) xFor(t time.Time) float32 {
	span := p.End.Sub(p.Start)
	if span <= 0 {
		return float32(p.Rect.Min.X) + float32(p.Rect.Dx())/2
	}
	frac := float64(t.Sub(p.Start)) / float64(span)
	return float32(float64(p.Rect.Min.X) + frac*float64(p.Rect.Dx()))
}

func (p Plot) yFor(v float64) float32 {
	frac := (v - p.Min) / (p.Max - p.Min)
	return float32(float64(p.Rect.Max.Y) - frac*float64(p.Rect.Dy()))
}

// dayTicks places a label at UTC midnights inside the window, thinned so at
// most maxDayTicks are shown.
func (p Plot) dayTicks() []Tick {
	start := p.Start.UTC()
	first := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC)
	if first.Before(start) {
		first = first.AddDate(0, 0, 1)
	}
	end := p.End.UTC()
	if first.After(end) {
		return nil
	}

	days := int(end.Sub(first).Hours()/24) + 1
	step := int(math.Ceil(float64(days) / maxDayTicks))
	if step < 1 {
		step = 1
	}

	var ticks []Tick
	for d := first; !d.After(end); d = d.AddDate(0, 0, step) {
		ticks = append(ticks, Tick{X: p.xFor(d), Label: d.Format("Jan 2")})
	}
	return ticks
}

// Nearest returns the index of the mark closest to screen x.
func (p Plot) Nearest(x int) (int, bool) {
	if len(p.Marks) == 0 {
		return 0, false
	}
	best, bestDist := 0, math.Inf(1)
	for i, m := range p.Marks {
		d := math.Abs(float64(m.X) - float64(x))
		if d < bestDist {
			best, bestDist = i, d
		}
	}
	return best, true
}
