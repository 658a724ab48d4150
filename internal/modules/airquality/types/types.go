package types

import (
	"errors"
	"math"
	"time"
)

var (
	// ErrDataUnavailable is returned when the dataset cannot be read or parsed.
	ErrDataUnavailable = errors.New("data unavailable")
	// ErrInsufficientData is returned when an aggregate has too few values to be computed.
	ErrInsufficientData = errors.New("insufficient data")
	ErrUnknownPage      = errors.New("unknown page")
	ErrUnknownPollutant = errors.New("unknown pollutant")
)

// Epoch is the timestamp of the observation with sequence index 1.
var Epoch = time.Date(2013, time.March, 1, 0, 0, 0, 0, time.UTC)

const (
	ColumnNo      = "No"
	ColumnStation = "station"
)

// Pollutants is the fixed pollutant column order used by every view.
var Pollutants = []string{"PM2.5", "PM10", "SO2", "NO2", "CO", "O3"}

// IsPollutant reports whether name is one of the fixed pollutant columns.
func IsPollutant(name string) bool {
	for _, p := range Pollutants {
		if p == name {
			return true
		}
	}
	return false
}

// WeatherFactors is the fixed weather column order used by the weather view.
var WeatherFactors = []string{"TEMP", "PRES", "DEWP", "RAIN", "WSPM"}

// MeasurementColumns returns pollutants followed by weather factors.
func MeasurementColumns() []string {
	out := make([]string, 0, len(Pollutants)+len(WeatherFactors))
	out = append(out, Pollutants...)
	return append(out, WeatherFactors...)
}

// TimeForIndex derives the observation timestamp from its 1-based sequence index.
func TimeForIndex(no int) time.Time {
	return Epoch.Add(time.Duration(no-1) * time.Hour)
}

// Observation is one hourly record. Missing measurements are NaN.
type Observation struct {
	No      int       `json:"no"`
	Station string    `json:"station"`
	Time    time.Time `json:"time"`

	PM25 float64 `json:"pm25"`
	PM10 float64 `json:"pm10"`
	SO2  float64 `json:"so2"`
	NO2  float64 `json:"no2"`
	CO   float64 `json:"co"`
	O3   float64 `json:"o3"`

	Temp float64 `json:"temp"`
	Pres float64 `json:"pres"`
	Dewp float64 `json:"dewp"`
	Rain float64 `json:"rain"`
	Wspm float64 `json:"wspm"`
}

// Value returns the measurement stored under the dataset column name.
func (o Observation) Value(column string) (float64, bool) {
	switch column {
	case "PM2.5":
		return o.PM25, true
	case "PM10":
		return o.PM10, true
	case "SO2":
		return o.SO2, true
	case "NO2":
		return o.NO2, true
	case "CO":
		return o.CO, true
	case "O3":
		return o.O3, true
	case "TEMP":
		return o.Temp, true
	case "PRES":
		return o.Pres, true
	case "DEWP":
		return o.Dewp, true
	case "RAIN":
		return o.Rain, true
	case "WSPM":
		return o.Wspm, true
	default:
		return math.NaN(), false
	}
}

// SetValue stores v under the dataset column name. Unknown columns are ignored.
func (o *Observation) SetValue(column string, v float64) {
	switch column {
	case "PM2.5":
		o.PM25 = v
	case "PM10":
		o.PM10 = v
	case "SO2":
		o.SO2 = v
	case "NO2":
		o.NO2 = v
	case "CO":
		o.CO = v
	case "O3":
		o.O3 = v
	case "TEMP":
		o.Temp = v
	case "PRES":
		o.Pres = v
	case "DEWP":
		o.Dewp = v
	case "RAIN":
		o.Rain = v
	case "WSPM":
		o.Wspm = v
	}
}

// Table is the loaded dataset. It must not be modified after NewTable returns.
type Table struct {
	rows    []Observation
	columns map[string][]float64
}

// NewTable attaches derived timestamps and builds per-column vectors.
func NewTable(rows []Observation) *Table {
	t := &Table{
		rows:    rows,
		columns: make(map[string][]float64, len(Pollutants)+len(WeatherFactors)),
	}
	for i := range t.rows {
		t.rows[i].Time = TimeForIndex(t.rows[i].No)
	}
	for _, name := range MeasurementColumns() {
		col := make([]float64, len(rows))
		for i, r := range t.rows {
			col[i], _ = r.Value(name)
		}
		t.columns[name] = col
	}
	return t
}

func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.rows)
}

// Rows returns the observations in load order. Callers must not modify them.
func (t *Table) Rows() []Observation {
	if t == nil {
		return nil
	}
	return t.rows
}

// Column returns the vector for a measurement column, or nil if unknown.
func (t *Table) Column(name string) []float64 {
	if t == nil {
		return nil
	}
	return t.columns[name]
}
