package types

import (
	"math"
	"testing"
	"time"
)

func TestTimeForIndex(t *testing.T) {
	tests := []struct {
		no   int
		want time.Time
	}{
		{no: 1, want: time.Date(2013, 3, 1, 0, 0, 0, 0, time.UTC)},
		{no: 2, want: time.Date(2013, 3, 1, 1, 0, 0, 0, time.UTC)},
		{no: 25, want: time.Date(2013, 3, 2, 0, 0, 0, 0, time.UTC)},
		{no: 35064, want: time.Date(2017, 2, 28, 23, 0, 0, 0, time.UTC)},
	}
	for _, tt := range tests {
		if got := TimeForIndex(tt.no); !got.Equal(tt.want) {
			t.Errorf("TimeForIndex(%d) = %v; want %v", tt.no, got, tt.want)
		}
	}
}

func TestNewTable_derivesTimestampsAndColumns(t *testing.T) {
	rows := make([]Observation, 0, 5)
	for k := 1; k <= 5; k++ {
		o := Observation{No: k, Station: "Aotizhongxin"}
		for _, c := range MeasurementColumns() {
			o.SetValue(c, float64(k))
		}
		rows = append(rows, o)
	}
	tbl := NewTable(rows)

	if tbl.Len() != 5 {
		t.Fatalf("Len() = %d; want 5", tbl.Len())
	}
	for _, r := range tbl.Rows() {
		want := Epoch.Add(time.Duration(r.No-1) * time.Hour)
		if !r.Time.Equal(want) {
			t.Errorf("row %d: Time = %v; want %v", r.No, r.Time, want)
		}
	}
	for _, c := range MeasurementColumns() {
		col := tbl.Column(c)
		if len(col) != 5 {
			t.Fatalf("Column(%q) len = %d; want 5", c, len(col))
		}
		if col[4] != 5 {
			t.Errorf("Column(%q)[4] = %v; want 5", c, col[4])
		}
	}
	if tbl.Column("HUMIDITY") != nil {
		t.Error("Column(unknown) should be nil")
	}
}

func TestObservationValue_unknownColumn(t *testing.T) {
	v, ok := Observation{}.Value("wd")
	if ok {
		t.Fatal("Value(\"wd\") ok = true; want false")
	}
	if !math.IsNaN(v) {
		t.Errorf("Value(\"wd\") = %v; want NaN", v)
	}
}

func TestParsePage(t *testing.T) {
	tests := []struct {
		in     string
		want   Page
		wantOK bool
	}{
		{in: "", want: PageHome, wantOK: true},
		{in: "home", want: PageHome, wantOK: true},
		{in: "Trends", want: PageTrends, wantOK: true},
		{in: "Pollutant Analysis", want: PagePollutants, wantOK: true},
		{in: "weather impact", want: PageWeather, wantOK: true},
		{in: " Long-term Trends ", want: PageTrends, wantOK: true},
		{in: "forecast", want: PageHome, wantOK: false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParsePage(tt.in)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("ParsePage(%q) = (%q, %v); want (%q, %v)", tt.in, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}
