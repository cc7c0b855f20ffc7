package internal

import (
	"image"
	"math"
)

// MeasureFunc returns the drawn width and height of a string.
type MeasureFunc func(s string) (w, h float64)

// Box is a placed Toggle.
type Box struct {
	Rect image.Rectangle
	Toggle
}

// Layout is where each piece of a frame goes on screen.
type Layout struct {
	LineHeight float64

	PriceAt  image.Point
	ChangeAt image.Point

	Timeframes []Box
	Tabs       []Box
	// Buttons are the controls inside the body: download, chart styles, refresh.
	Buttons []Box

	Body image.Rectangle
	// Chart is empty unless the body is a ChartSection.
	Chart image.Rectangle
	// TickBand sits under Chart and holds the day labels.
	TickBand image.Rectangle
}

// ComputeLayout places the frame on a width x height screen.
func ComputeLayout(f Frame, width, height int, scale float64, measure MeasureFunc) Layout {
	if scale <= 0 {
		scale = 1
	}
	_, lineH := measure("Ag")
	pad := 20 * scale
	gap := 10 * scale
	btnPad := 8 * scale

	l := Layout{LineHeight: lineH}
	button := func(t Toggle, x, y float64) Box {
		w, _ := measure(t.Label)
		return Box{
			Rect:   image.Rect(int(x), int(y), int(math.Ceil(x+w+2*btnPad)), int(math.Ceil(y+lineH+btnPad))),
			Toggle: t,
		}
	}
	row := func(ts []Toggle, x, y float64) []Box {
		boxes := make([]Box, 0, len(ts))
		for _, t := range ts {
			b := button(t, x, y)
			boxes = append(boxes, b)
			x = float64(b.Rect.Max.X) + gap
		}
		return boxes
	}

	if errSec, ok := f.Body.(ErrorSection); ok {
		l.Body = image.Rect(int(pad), int(pad), width-int(pad), height-int(pad))
		l.Buttons = []Box{button(errSec.Refresh, pad, pad+lineH*2)}
		return l
	}

	l.PriceAt = image.Pt(int(pad), int(pad))
	l.ChangeAt = image.Pt(int(pad), int(pad+lineH*1.5))

	if len(f.Timeframes) > 0 {
		total := 0.0
		for _, t := range f.Timeframes {
			w, _ := measure(t.Label)
			total += w + 2*btnPad
		}
		total += gap * float64(len(f.Timeframes)-1)
		l.Timeframes = row(f.Timeframes, float64(width)-pad-total, pad)
	}

	tabsY := pad + lineH*3 + gap
	l.Tabs = row(f.Tabs, pad, tabsY)

	bodyTop := tabsY + lineH + btnPad + 2*gap
	l.Body = image.Rect(int(pad), int(bodyTop), width-int(pad), height-int(pad))

	switch sec := f.Body.(type) {
	case ChartSection:
		btnH := lineH + btnPad
		tickH := lineH + gap
		chartBottom := float64(height) - pad - btnH - gap - tickH
		if chartBottom < bodyTop {
			chartBottom = bodyTop
		}
		l.Chart = image.Rect(int(pad), int(bodyTop), width-int(pad), int(chartBottom))
		l.TickBand = image.Rect(int(pad), int(chartBottom), width-int(pad), int(chartBottom+tickH))
		l.Buttons = []Box{button(sec.Download, pad, chartBottom+tickH+gap)}
	case SettingsSection:
		l.Buttons = row(sec.Styles, pad, bodyTop+lineH*1.5)
	}
	return l
}

// HitTest returns the action of the control under (x, y).
func (l Layout) HitTest(x, y int) (Event, bool) {
	p := image.Pt(x, y)
	for _, group := range [][]Box{l.Timeframes, l.Tabs, l.Buttons} {
		for _, b := range group {
			if p.In(b.Rect) {
				return b.Action, true
			}
		}
	}
	return nil, false
}
