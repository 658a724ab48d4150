package analysis

import (
	"math"

	"airquality-server/internal/modules/airquality/types"
)

// obs builds an observation with every measurement missing except those given.
func obs(no int, station string, values map[string]float64) types.Observation {
	o := types.Observation{No: no, Station: station}
	for _, name := range types.MeasurementColumns() {
		o.SetValue(name, math.NaN())
	}
	for name, v := range values {
		o.SetValue(name, v)
	}
	return o
}

// seriesTable builds one row per value of column at consecutive indices.
func seriesTable(column string, values ...float64) *types.Table {
	rows := make([]types.Observation, len(values))
	for i, v := range values {
		rows[i] = obs(i+1, "Aotizhongxin", map[string]float64{column: v})
	}
	return types.NewTable(rows)
}

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}
