package analysis

import (
	"math"
	"strconv"
)

// Number is a float64 that encodes NaN and ±Inf as null in JSON and YAML.
type Number float64

func (n Number) Float() float64 { return float64(n) }

// Defined reports whether n is a finite value.
func (n Number) Defined() bool {
	f := float64(n)
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

func (n Number) MarshalJSON() ([]byte, error) {
	if !n.Defined() {
		return []byte("null"), nil
	}
	return strconv.AppendFloat(nil, float64(n), 'g', -1, 64), nil
}

func (n Number) MarshalYAML() (any, error) {
	if !n.Defined() {
		return nil, nil
	}
	return float64(n), nil
}

// present returns the non-NaN values of xs.
func present(xs []float64) []float64 {
	out := make([]float64, 0, len(xs))
	for _, x := range xs {
		if !math.IsNaN(x) {
			out = append(out, x)
		}
	}
	return out
}
