package internal

import (
	"image"
	"testing"
	"time"
)

var plotRect = image.Rect(0, 0, 100, 100)

func TestNewPlot_ProjectsByTimeAndRange(t *testing.T) {
	series := []PricePoint{
		{Timestamp: jan1, Price: 100},
		{Timestamp: jan1.Add(6 * time.Hour), Price: 150},
		{Timestamp: jan2, Price: 200},
	}
	p := NewPlot(series, plotRect, ChartLine)

	if p.Min != 100 || p.Max != 200 {
		t.Errorf("range = %v..%v, want 100..200 (not through zero)", p.Min, p.Max)
	}
	want := []Mark{{X: 0, Y: 100}, {X: 25, Y: 50}, {X: 100, Y: 0}}
	for i, m := range p.Marks {
		if m != want[i] {
			t.Errorf("mark %d = %+v, want %+v", i, m, want[i])
		}
	}
}

func TestNewPlot_FlatAndSingleSeries(t *testing.T) {
	flat := NewPlot([]PricePoint{{Timestamp: jan1, Price: 100}, {Timestamp: jan2, Price: 100}}, plotRect, ChartLine)
	if flat.Marks[0].Y != 50 || flat.Marks[1].Y != 50 {
		t.Errorf("flat series should sit mid-chart: %+v", flat.Marks)
	}

	single := NewPlot([]PricePoint{{Timestamp: jan1, Price: 5}}, plotRect, ChartBar)
	if len(single.Marks) != 1 || single.Marks[0].X != 50 {
		t.Errorf("single point should be centred: %+v", single.Marks)
	}

	empty := NewPlot(nil, plotRect, ChartLine)
	if len(empty.Marks) != 0 {
		t.Error("empty series has no marks")
	}
	if _, ok := empty.Nearest(10); ok {
		t.Error("Nearest on empty plot should report false")
	}
}

func TestNewPlot_BarWidth(t *testing.T) {
	series := make([]PricePoint, 10)
	for i := range series {
		series[i] = PricePoint{Timestamp: jan1.Add(time.Duration(i) * time.Hour), Price: float64(i + 1)}
	}
	p := NewPlot(series, plotRect, ChartBar)
	if p.Marks[0].Width != 8 {
		t.Errorf("bar width = %v, want 8", p.Marks[0].Width)
	}
	if line := NewPlot(series, plotRect, ChartLine); line.Marks[0].Width != 0 {
		t.Error("line marks have no width")
	}
}

func TestPlot_DayTicks(t *testing.T) {
	week := []PricePoint{{Timestamp: jan1, Price: 1}, {Timestamp: jan1.AddDate(0, 0, 7), Price: 2}}
	p := NewPlot(week, image.Rect(0, 0, 700, 100), ChartLine)
	if len(p.Ticks) != 8 {
		t.Fatalf("expected 8 daily ticks, got %d", len(p.Ticks))
	}
	if p.Ticks[0].Label != "Jan 1" || p.Ticks[0].X != 0 || p.Ticks[1].X != 100 {
		t.Errorf("first ticks = %+v", p.Ticks[:2])
	}

	year := []PricePoint{{Timestamp: jan1.Add(3 * time.Hour), Price: 1}, {Timestamp: jan1.AddDate(1, 0, 0), Price: 2}}
	yp := NewPlot(year, image.Rect(0, 0, 700, 100), ChartLine)
	if len(yp.Ticks) == 0 || len(yp.Ticks) > maxDayTicks {
		t.Errorf("year ticks = %d, want 1..%d", len(yp.Ticks), maxDayTicks)
	}
	if yp.Ticks[0].Label != "Jan 2" {
		t.Errorf("first tick should be the first midnight inside the window, got %s", yp.Ticks[0].Label)
	}
}

func TestPlot_Nearest(t *testing.T) {
	series := []PricePoint{
		{Timestamp: jan1, Price: 1},
		{Timestamp: jan1.Add(12 * time.Hour), Price: 2},
		{Timestamp: jan2, Price: 3},
	}
	p := NewPlot(series, plotRect, ChartLine)
	tests := map[int]int{0: 0, 20: 0, 40: 1, 60: 1, 90: 2, 500: 2}
	for x, want := range tests {
		if got, ok := p.Nearest(x); !ok || got != want {
			t.Errorf("Nearest(%d) = %d, want %d", x, got, want)
		}
	}
}
