package analysis

import (
	"time"

	"airquality-server/internal/modules/airquality/types"
)

// Overview is the headline metrics block of the home view.
type Overview struct {
	Records  int       `json:"records" yaml:"records"`
	Stations int       `json:"stations" yaml:"stations"`
	Start    time.Time `json:"start" yaml:"start"`
	End      time.Time `json:"end" yaml:"end"`
	// HasRange is false for an empty table; Start and End are then zero.
	HasRange bool `json:"has_range" yaml:"has_range"`
}

func Summarize(t *types.Table) Overview {
	o := Overview{Records: t.Len()}
	stations := make(map[string]struct{})
	for i, r := range t.Rows() {
		stations[r.Station] = struct{}{}
		if i == 0 || r.Time.Before(o.Start) {
			o.Start = r.Time
		}
		if i == 0 || r.Time.After(o.End) {
			o.End = r.Time
		}
	}
	o.Stations = len(stations)
	o.HasRange = o.Records > 0
	return o
}
