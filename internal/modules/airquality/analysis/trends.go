package analysis

import (
	"math"
	"sort"
	"time"

	"gonum.org/v1/gonum/stat"

	"airquality-server/internal/modules/airquality/types"
)

type Trend string

const (
	TrendImproving    Trend = "improving"
	TrendWorsening    Trend = "worsening"
	TrendStable       Trend = "no clear trend"
	TrendInsufficient Trend = "insufficient data"
)

// Classify maps a fitted slope to a trend. Only an exact zero is stable.
func Classify(slope float64) Trend {
	switch {
	case math.IsNaN(slope):
		return TrendInsufficient
	case slope < 0:
		return TrendImproving
	case slope > 0:
		return TrendWorsening
	default:
		return TrendStable
	}
}

// SeriesPoint is the mean of one pollutant over all rows sharing a timestamp.
// Value is NaN when every row at that timestamp is missing the pollutant.
type SeriesPoint struct {
	Time  time.Time `json:"time" yaml:"time"`
	Value Number    `json:"value" yaml:"value"`
}

type PollutantTrend struct {
	Pollutant string        `json:"pollutant" yaml:"pollutant"`
	Series    []SeriesPoint `json:"series,omitempty" yaml:"series,omitempty"`
	Slope     Number        `json:"slope" yaml:"slope"`
	Intercept Number        `json:"intercept" yaml:"intercept"`
	Trend     Trend         `json:"trend" yaml:"trend"`
}

// Fitted returns the trend-line value at series position i.
func (p PollutantTrend) Fitted(i int) float64 {
	return float64(p.Intercept) + float64(p.Slope)*float64(i)
}

// TrendReport holds one fitted trend per pollutant, in the fixed pollutant order.
type TrendReport struct {
	Pollutants []PollutantTrend `json:"pollutants" yaml:"pollutants"`
}

func AnalyzeTrends(t *types.Table) TrendReport {
	report := TrendReport{Pollutants: make([]PollutantTrend, 0, len(types.Pollutants))}
	for _, name := range types.Pollutants {
		report.Pollutants = append(report.Pollutants, AnalyzeTrend(t, name))
	}
	return report
}

// AnalyzeTrend groups one pollutant by timestamp and fits a line through the
// grouped means, using each mean's position in the series as x.
func AnalyzeTrend(t *types.Table, pollutant string) PollutantTrend {
	series := GroupByTime(t, pollutant)
	pt := PollutantTrend{Pollutant: pollutant, Series: series}

	intercept, slope, err := FitLine(series)
	if err != nil {
		pt.Slope, pt.Intercept = Number(math.NaN()), Number(math.NaN())
		pt.Trend = TrendInsufficient
		return pt
	}
	pt.Slope, pt.Intercept = Number(slope), Number(intercept)
	pt.Trend = Classify(slope)
	return pt
}

// GroupByTime averages a column over rows with the same timestamp, ignoring
// missing values, in ascending time order.
func GroupByTime(t *types.Table, column string) []SeriesPoint {
	type acc struct {
		at    time.Time
		sum   float64
		count int
	}
	groups := make(map[int64]*acc)
	for _, r := range t.Rows() {
		key := r.Time.Unix()
		g, ok := groups[key]
		if !ok {
			g = &acc{at: r.Time}
			groups[key] = g
		}
		if v, _ := r.Value(column); !math.IsNaN(v) {
			g.sum += v
			g.count++
		}
	}

	keys := make([]int64, 0, len(groups))
	for k := range groups {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })

	out := make([]SeriesPoint, len(keys))
	for i, k := range keys {
		g := groups[k]
		v := math.NaN()
		if g.count > 0 {
			v = g.sum / float64(g.count)
		}
		out[i] = SeriesPoint{Time: g.at, Value: Number(v)}
	}
	return out
}

// FitLine is a degree-1 least-squares fit of the series values against their
// positions. Gaps are left out of the fit without shifting later positions.
func FitLine(series []SeriesPoint) (intercept, slope float64, err error) {
	xs := make([]float64, 0, len(series))
	ys := make([]float64, 0, len(series))
	for i, p := range series {
		if math.IsNaN(float64(p.Value)) {
			continue
		}
		xs = append(xs, float64(i))
		ys = append(ys, float64(p.Value))
	}
	if len(xs) < 2 {
		return 0, 0, types.ErrInsufficientData
	}
	intercept, slope = stat.LinearRegression(xs, ys, nil, false)
	return intercept, slope, nil
}

func (r TrendReport) names(trend Trend) []string {
	var out []string
	for _, p := range r.Pollutants {
		if p.Trend == trend {
			out = append(out, p.Pollutant)
		}
	}
	return out
}

func (r TrendReport) Improving() []string    { return r.names(TrendImproving) }
func (r TrendReport) Worsening() []string    { return r.names(TrendWorsening) }
func (r TrendReport) Stable() []string       { return r.names(TrendStable) }
func (r TrendReport) Insufficient() []string { return r.names(TrendInsufficient) }

// Find returns the trend for a pollutant name.
func (r TrendReport) Find(pollutant string) (PollutantTrend, bool) {
	for _, p := range r.Pollutants {
		if p.Pollutant == pollutant {
			return p, true
		}
	}
	return PollutantTrend{}, false
}
