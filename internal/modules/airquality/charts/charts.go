// Package charts renders the dashboard aggregates as SVG charts.
package charts

import (
	"fmt"
	"io"
	"math"
	"time"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"airquality-server/internal/modules/airquality/analysis"
	"airquality-server/internal/modules/airquality/types"
)

const (
	width    = 960
	height   = 420
	barWidth = 80
)

var (
	barColor   = drawing.ColorFromHex("1f77b4")
	trendDash  = []float64{6, 4}
	seriesLine = chart.Style{StrokeColor: barColor, StrokeWidth: 1.5}
)

// PollutantBars draws one bar per ranked pollutant, in ranking order.
func PollutantBars(w io.Writer, r analysis.PollutantRanking) error {
	var (
		bars []chart.Value
		max  float64
	)
	for _, m := range r.Means {
		if !m.Valid {
			continue
		}
		v := m.Mean.Float()
		bars = append(bars, chart.Value{
			Label: m.Pollutant,
			Value: v,
			Style: chart.Style{FillColor: barColor, StrokeColor: barColor},
		})
		max = math.Max(max, v)
	}
	if len(bars) == 0 {
		return types.ErrInsufficientData
	}
	if max <= 0 {
		max = 1
	}

	graph := chart.BarChart{
		Title:    "Average Pollutant Concentrations Across All Sites",
		Width:    width,
		Height:   height,
		BarWidth: barWidth,
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16},
		},
		YAxis: chart.YAxis{
			Name:  "Average Concentration (μg/m³)",
			Range: &chart.ContinuousRange{Min: 0, Max: max * 1.1},
		},
		Bars: bars,
	}
	if err := graph.Render(chart.SVG, w); err != nil {
		return fmt.Errorf("render pollutant chart: %w", err)
	}
	return nil
}

// TrendLine draws the grouped series of one pollutant with its fitted line
// dashed on top. At most maxPoints series points are drawn; gaps are skipped.
func TrendLine(w io.Writer, p analysis.PollutantTrend, maxPoints int) error {
	if p.Trend == analysis.TrendInsufficient || len(p.Series) < 2 {
		return types.ErrInsufficientData
	}

	var (
		xs     []time.Time
		ys     []float64
		lo, hi = math.Inf(1), math.Inf(-1)
	)
	for _, i := range Decimate(len(p.Series), maxPoints) {
		pt := p.Series[i]
		if !pt.Value.Defined() {
			continue
		}
		xs = append(xs, pt.Time)
		ys = append(ys, pt.Value.Float())
		lo, hi = math.Min(lo, pt.Value.Float()), math.Max(hi, pt.Value.Float())
	}
	if len(xs) < 2 {
		return types.ErrInsufficientData
	}

	last := len(p.Series) - 1
	fitted := []float64{p.Fitted(0), p.Fitted(last)}
	for _, v := range fitted {
		lo, hi = math.Min(lo, v), math.Max(hi, v)
	}
	if hi-lo == 0 {
		lo, hi = lo-1, hi+1
	}

	graph := chart.Chart{
		Title:  fmt.Sprintf("Long-term Trend in %s Levels", p.Pollutant),
		Width:  width,
		Height: height,
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16},
		},
		XAxis: chart.XAxis{
			Name:           "Date",
			ValueFormatter: chart.TimeDateValueFormatter,
		},
		YAxis: chart.YAxis{
			Name:  fmt.Sprintf("%s Concentration (μg/m³)", p.Pollutant),
			Range: &chart.ContinuousRange{Min: lo, Max: hi},
		},
		Series: []chart.Series{
			chart.TimeSeries{
				Name:    p.Pollutant,
				XValues: xs,
				YValues: ys,
				Style:   seriesLine,
			},
			chart.TimeSeries{
				Name:    "Trend",
				XValues: []time.Time{p.Series[0].Time, p.Series[last].Time},
				YValues: fitted,
				Style: chart.Style{
					StrokeColor:     drawing.ColorRed,
					StrokeWidth:     2,
					StrokeDashArray: trendDash,
				},
			},
		},
	}
	graph.Elements = []chart.Renderable{chart.Legend(&graph)}

	if err := graph.Render(chart.SVG, w); err != nil {
		return fmt.Errorf("render %s trend chart: %w", p.Pollutant, err)
	}
	return nil
}

// Decimate returns the indices of an n-point series to draw with at most max
// points: every stride-th index, always including the last one.
func Decimate(n, max int) []int {
	if n <= 0 {
		return nil
	}
	if max < 2 || n <= max {
		out := make([]int, n)
		for i := range out {
			out[i] = i
		}
		return out
	}
	stride := int(math.Ceil(float64(n-1) / float64(max-1)))
	out := make([]int, 0, max)
	for i := 0; i < n-1; i += stride {
		out = append(out, i)
	}
	return append(out, n-1)
}
