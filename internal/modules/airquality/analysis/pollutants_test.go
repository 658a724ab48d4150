package analysis

import (
	"encoding/json"
	"math"
	"reflect"
	"testing"

	"airquality-server/internal/modules/airquality/types"
)

func constantTable() *types.Table {
	values := map[string]float64{"PM2.5": 10, "PM10": 20, "SO2": 5, "NO2": 5, "CO": 5, "O3": 5}
	return types.NewTable([]types.Observation{
		obs(1, "A", values),
		obs(2, "A", values),
		obs(3, "B", values),
	})
}

func TestRankPollutants_constantColumns(t *testing.T) {
	ranking := RankPollutants(constantTable())

	var order []string
	for _, m := range ranking.Means {
		order = append(order, m.Pollutant)
	}
	want := []string{"PM10", "PM2.5", "SO2", "NO2", "CO", "O3"}
	if !reflect.DeepEqual(order, want) {
		t.Errorf("order = %v; want %v", order, want)
	}
	if got := ranking.Means[0].Mean.Float(); got != 20 {
		t.Errorf("PM10 mean = %v; want 20", got)
	}
	if got := ranking.Means[1].Mean.Float(); got != 10 {
		t.Errorf("PM2.5 mean = %v; want 10", got)
	}
}

func TestRankPollutants_ignoresMissing(t *testing.T) {
	table := types.NewTable([]types.Observation{
		obs(1, "A", map[string]float64{"PM2.5": 10, "CO": 1}),
		obs(2, "A", map[string]float64{"CO": 3}),
		obs(3, "A", map[string]float64{"PM2.5": 20}),
	})

	ranking := RankPollutants(table)
	byName := map[string]PollutantMean{}
	for _, m := range ranking.Means {
		byName[m.Pollutant] = m
	}
	if got := byName["PM2.5"]; got.Mean.Float() != 15 || got.Samples != 2 || !got.Valid {
		t.Errorf("PM2.5 = %+v; want mean 15 over 2 samples", got)
	}
	if got := byName["O3"]; got.Valid || !math.IsNaN(got.Mean.Float()) {
		t.Errorf("O3 = %+v; want invalid NaN mean", got)
	}

	if n := len(ranking.Top(3)); n != 2 {
		t.Errorf("len(Top(3)) = %d; want 2", n)
	}
	last := ranking.Means[len(ranking.Means)-1]
	if last.Valid {
		t.Errorf("last entry %s is valid; want invalid pollutants ranked last", last.Pollutant)
	}
}

func TestRankPollutants_deterministic(t *testing.T) {
	table := constantTable()
	first := RankPollutants(table)
	for i := 0; i < 5; i++ {
		if got := RankPollutants(table); !reflect.DeepEqual(got, first) {
			t.Fatalf("run %d = %+v; want %+v", i, got, first)
		}
	}
}

func TestNumber_marshalsNaNAsNull(t *testing.T) {
	b, err := json.Marshal([]Number{1.5, Number(math.NaN()), Number(math.Inf(1))})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if got := string(b); got != "[1.5,null,null]" {
		t.Errorf("json = %s; want [1.5,null,null]", got)
	}
}

func TestSummarize(t *testing.T) {
	table := types.NewTable([]types.Observation{
		obs(3, "A", nil),
		obs(1, "B", nil),
		obs(35064, "A", nil),
	})
	o := Summarize(table)
	if o.Records != 3 || o.Stations != 2 || !o.HasRange {
		t.Fatalf("overview = %+v", o)
	}
	if got := o.Start.Format("2006-01-02"); got != "2013-03-01" {
		t.Errorf("start = %s; want 2013-03-01", got)
	}
	if got := o.End.Format("2006-01-02"); got != "2017-02-28" {
		t.Errorf("end = %s; want 2017-02-28", got)
	}

	if empty := Summarize(types.NewTable(nil)); empty.HasRange || empty.Records != 0 {
		t.Errorf("empty overview = %+v", empty)
	}
}
