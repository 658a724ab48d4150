package analysis

import (
	"errors"
	"strings"
	"testing"

	"airquality-server/internal/modules/airquality/types"
)

func TestPollutantNarrative(t *testing.T) {
	n, err := PollutantNarrative(RankPollutants(constantTable()))
	if err != nil {
		t.Fatalf("PollutantNarrative: %v", err)
	}
	want := "The pollutant with the highest average concentration is PM10 at 20.00 μg/m³."
	if n.Highlight != want {
		t.Errorf("highlight = %q; want %q", n.Highlight, want)
	}
	if !strings.Contains(n.Conclusion[1], "PM2.5 (10.00 μg/m³) and SO2 (5.00 μg/m³)") {
		t.Errorf("conclusion[1] = %q", n.Conclusion[1])
	}
}

func TestPollutantNarrative_fewerThanThree(t *testing.T) {
	table := types.NewTable([]types.Observation{obs(1, "A", map[string]float64{"CO": 700})})
	n, err := PollutantNarrative(RankPollutants(table))
	if err != nil {
		t.Fatalf("PollutantNarrative: %v", err)
	}
	if strings.Contains(strings.Join(n.Conclusion, " "), "followed by") {
		t.Errorf("conclusion mentions followers with a single pollutant: %v", n.Conclusion)
	}

	_, err = PollutantNarrative(RankPollutants(types.NewTable(nil)))
	if !errors.Is(err, types.ErrInsufficientData) {
		t.Errorf("empty ranking error = %v; want ErrInsufficientData", err)
	}
}

func TestWeatherNarrative(t *testing.T) {
	impact := WeatherImpact{Strongest: &StrongestCorrelation{Factor: "DEWP", Pollutant: "O3", Correlation: -0.456}}
	n, err := WeatherNarrative(impact)
	if err != nil {
		t.Fatalf("WeatherNarrative: %v", err)
	}
	want := "The weather condition with the strongest influence on air quality is DEWP. It has a correlation of -0.46 with O3."
	if n.Highlight != want {
		t.Errorf("highlight = %q; want %q", n.Highlight, want)
	}
	if len(n.StaticNotes) != 2 {
		t.Errorf("len(StaticNotes) = %d; want 2", len(n.StaticNotes))
	}

	if _, err := WeatherNarrative(WeatherImpact{}); !errors.Is(err, types.ErrInsufficientData) {
		t.Errorf("no strongest error = %v; want ErrInsufficientData", err)
	}
}

func TestTrendMessage(t *testing.T) {
	tests := []struct {
		trend Trend
		want  string
	}{
		{TrendImproving, "The trend for NO2 is improving (decreasing) over time."},
		{TrendWorsening, "The trend for NO2 is worsening (increasing) over time."},
		{TrendStable, "There is no clear trend for NO2 over time."},
		{TrendInsufficient, "There is not enough data to fit a trend for NO2."},
	}
	for _, tt := range tests {
		if got := TrendMessage(PollutantTrend{Pollutant: "NO2", Trend: tt.trend}); got != tt.want {
			t.Errorf("TrendMessage(%q) = %q; want %q", tt.trend, got, tt.want)
		}
	}
}

func TestTrendNarrative_branches(t *testing.T) {
	tests := []struct {
		name        string
		trends      []Trend
		wantEffort  string
		wantConcern string
		wantLines   []string
	}{
		{
			name:        "improving and worsening",
			trends:      []Trend{TrendImproving, TrendWorsening},
			wantEffort:  "partially successful",
			wantConcern: "However, there are still concerns",
			wantLines:   []string{"Improving Trends: PM2.5", "Worsening Trends: PM10", "Stable Trends: No pollutants show stable trends"},
		},
		{
			name:        "nothing improving or worsening",
			trends:      []Trend{TrendStable, TrendStable},
			wantEffort:  "facing challenges",
			wantConcern: "The stability in some pollutant levels",
			wantLines:   []string{"Improving Trends: No pollutants show clear improvement", "Worsening Trends: No pollutants show clear worsening", "Stable Trends: PM2.5, PM10"},
		},
		{
			name:        "insufficient listed separately",
			trends:      []Trend{TrendImproving, TrendInsufficient},
			wantEffort:  "partially successful",
			wantConcern: "The stability in some pollutant levels",
			wantLines:   []string{"Insufficient Data: PM10"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			report := TrendReport{}
			for i, trend := range tt.trends {
				report.Pollutants = append(report.Pollutants, PollutantTrend{Pollutant: types.Pollutants[i], Trend: trend})
			}
			text := strings.Join(TrendNarrative(report).Conclusion, "\n")
			if !strings.Contains(text, "efforts have been "+tt.wantEffort) {
				t.Errorf("missing effort %q in:\n%s", tt.wantEffort, text)
			}
			if !strings.Contains(text, tt.wantConcern) {
				t.Errorf("missing concern %q in:\n%s", tt.wantConcern, text)
			}
			for _, line := range tt.wantLines {
				if !strings.Contains(text, line) {
					t.Errorf("missing line %q in:\n%s", line, text)
				}
			}
		})
	}
}
