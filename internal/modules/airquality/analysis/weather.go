package analysis

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"airquality-server/internal/modules/airquality/types"
)

// CorrelationMatrix holds pairwise Pearson coefficients. Values[i][j] is the
// coefficient of Columns[i] and Columns[j]; it is symmetric.
type CorrelationMatrix struct {
	Columns []string   `json:"columns" yaml:"columns"`
	Values  [][]Number `json:"values" yaml:"values"`
}

// Correlate computes the Pearson matrix of the named columns using, for each
// pair, only the rows where both values are present. A pair with fewer than
// two such rows, or with a constant side, is NaN. The diagonal is 1 for every
// column that varies.
func Correlate(t *types.Table, columns []string) CorrelationMatrix {
	n := len(columns)
	vectors := make([][]float64, n)
	for i, name := range columns {
		vectors[i] = t.Column(name)
	}

	values := make([][]Number, n)
	for i := range values {
		values[i] = make([]Number, n)
	}
	for i := 0; i < n; i++ {
		values[i][i] = Number(selfCorrelation(vectors[i]))
		for j := i + 1; j < n; j++ {
			r := Number(pearson(vectors[i], vectors[j]))
			values[i][j] = r
			values[j][i] = r
		}
	}
	return CorrelationMatrix{Columns: columns, Values: values}
}

// At returns the coefficient for two column names, or NaN if either is absent.
func (m CorrelationMatrix) At(a, b string) float64 {
	i, j := indexOf(m.Columns, a), indexOf(m.Columns, b)
	if i < 0 || j < 0 {
		return math.NaN()
	}
	return float64(m.Values[i][j])
}

func selfCorrelation(x []float64) float64 {
	values := present(x)
	if len(values) < 2 || stat.Variance(values, nil) == 0 {
		return math.NaN()
	}
	return 1
}

func pearson(a, b []float64) float64 {
	if len(a) != len(b) {
		return math.NaN()
	}
	x := make([]float64, 0, len(a))
	y := make([]float64, 0, len(b))
	for i := range a {
		if math.IsNaN(a[i]) || math.IsNaN(b[i]) {
			continue
		}
		x = append(x, a[i])
		y = append(y, b[i])
	}
	if len(x) < 2 {
		return math.NaN()
	}
	r := stat.Correlation(x, y, nil)
	if math.IsNaN(r) || math.IsInf(r, 0) {
		return math.NaN()
	}
	return math.Max(-1, math.Min(1, r))
}

// StrongestCorrelation is the weather/pollutant pair with the largest |r|.
type StrongestCorrelation struct {
	Factor      string `json:"factor" yaml:"factor"`
	Pollutant   string `json:"pollutant" yaml:"pollutant"`
	Correlation Number `json:"correlation" yaml:"correlation"`
}

// WeatherImpact is the weather-factor by pollutant block of the matrix.
type WeatherImpact struct {
	Factors    []string   `json:"factors" yaml:"factors"`
	Pollutants []string   `json:"pollutants" yaml:"pollutants"`
	Matrix     [][]Number `json:"matrix" yaml:"matrix"`
	// Strongest is nil when every cell is NaN.
	Strongest *StrongestCorrelation `json:"strongest" yaml:"strongest"`
}

func AnalyzeWeather(t *types.Table) WeatherImpact {
	full := Correlate(t, types.MeasurementColumns())

	sub := make([][]Number, len(types.WeatherFactors))
	for i, factor := range types.WeatherFactors {
		sub[i] = make([]Number, len(types.Pollutants))
		for j, pollutant := range types.Pollutants {
			sub[i][j] = Number(full.At(factor, pollutant))
		}
	}

	impact := WeatherImpact{
		Factors:    types.WeatherFactors,
		Pollutants: types.Pollutants,
		Matrix:     sub,
	}
	if row, col, ok := strongestCell(sub); ok {
		impact.Strongest = &StrongestCorrelation{
			Factor:      types.WeatherFactors[row],
			Pollutant:   types.Pollutants[col],
			Correlation: sub[row][col],
		}
	}
	return impact
}

// strongestCell picks the column holding the largest |r|, then the row with
// the largest |r| in that column. NaN cells are skipped; the first of equal
// values wins.
func strongestCell(m [][]Number) (row, col int, ok bool) {
	if len(m) == 0 {
		return 0, 0, false
	}
	best := -1.0
	col = -1
	for j := range m[0] {
		if v := columnMaxAbs(m, j); v > best {
			best, col = v, j
		}
	}
	if col < 0 {
		return 0, 0, false
	}

	best = -1.0
	for i := range m {
		if v := float64(m[i][col]); !math.IsNaN(v) && math.Abs(v) > best {
			best, row = math.Abs(v), i
		}
	}
	return row, col, true
}

// columnMaxAbs returns the largest |r| in column j, or -1 if all are NaN.
func columnMaxAbs(m [][]Number, j int) float64 {
	best := -1.0
	for i := range m {
		v := float64(m[i][j])
		if !math.IsNaN(v) && math.Abs(v) > best {
			best = math.Abs(v)
		}
	}
	return best
}

func indexOf(xs []string, s string) int {
	for i, x := range xs {
		if x == s {
			return i
		}
	}
	return -1
}
