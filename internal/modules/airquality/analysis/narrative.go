package analysis

import (
	"fmt"
	"strings"

	"airquality-server/internal/modules/airquality/types"
)

// Narrative is the text block shown under a chart.
type Narrative struct {
	Highlight  string   `json:"highlight" yaml:"highlight"`
	Conclusion []string `json:"conclusion" yaml:"conclusion"`
	// StaticNotes are fixed observations that do not depend on the data.
	StaticNotes []string `json:"static_notes,omitempty" yaml:"static_notes,omitempty"`
}

const unit = "μg/m³"

// PollutantNarrative describes the ranking. It returns ErrInsufficientData
// when no pollutant has a mean.
func PollutantNarrative(r PollutantRanking) (Narrative, error) {
	top := r.Top(3)
	if len(top) == 0 {
		return Narrative{}, types.ErrInsufficientData
	}
	first := top[0]
	n := Narrative{
		Highlight: fmt.Sprintf("The pollutant with the highest average concentration is %s at %.2f %s.",
			first.Pollutant, first.Mean.Float(), unit),
	}
	n.Conclusion = append(n.Conclusion, fmt.Sprintf(
		"The analysis reveals that %s is the most prevalent pollutant in Beijing's air, with an average concentration of %.2f %s.",
		first.Pollutant, first.Mean.Float(), unit))
	if len(top) > 1 {
		followers := make([]string, 0, len(top)-1)
		for _, m := range top[1:] {
			followers = append(followers, fmt.Sprintf("%s (%.2f %s)", m.Pollutant, m.Mean.Float(), unit))
		}
		n.Conclusion = append(n.Conclusion, fmt.Sprintf(
			"This is followed by %s, indicating a significant presence of particulate matter and gases in the air.",
			strings.Join(followers, " and ")))
	}
	n.Conclusion = append(n.Conclusion,
		"The high levels of these pollutants suggest potential risks to public health and the need for targeted air quality management strategies.",
		"Further investigation into the sources of these pollutants and their spatial distribution across Beijing could provide valuable insights for policymakers and environmental agencies.",
	)
	return n, nil
}

var weatherStaticNotes = []string{
	"Temperature shows a strong positive correlation with O3, indicating higher ozone levels during warmer periods.",
	"Wind speed generally has a negative correlation with most pollutants, suggesting its role in dispersing air pollutants.",
}

// WeatherNarrative describes the strongest weather/pollutant pair. It returns
// ErrInsufficientData when no correlation could be computed.
func WeatherNarrative(w WeatherImpact) (Narrative, error) {
	s := w.Strongest
	if s == nil {
		return Narrative{}, types.ErrInsufficientData
	}
	r := s.Correlation.Float()
	return Narrative{
		Highlight: fmt.Sprintf("The weather condition with the strongest influence on air quality is %s. It has a correlation of %.2f with %s.",
			s.Factor, r, s.Pollutant),
		Conclusion: []string{
			fmt.Sprintf("The analysis shows that %s has the strongest influence on air quality, particularly on %s levels.", s.Factor, s.Pollutant),
			fmt.Sprintf("This %s-%s relationship (correlation: %.2f) suggests that changes in %s significantly affect the concentration of %s in the air.",
				s.Factor, s.Pollutant, r, s.Factor, s.Pollutant),
			"These findings highlight the complex interplay between weather conditions and air quality, emphasizing the need to consider meteorological factors in air quality forecasting and management strategies.",
		},
		StaticNotes: append([]string(nil), weatherStaticNotes...),
	}, nil
}

// TrendMessage is the one-line verdict shown under a pollutant's chart.
func TrendMessage(p PollutantTrend) string {
	switch p.Trend {
	case TrendImproving:
		return fmt.Sprintf("The trend for %s is improving (decreasing) over time.", p.Pollutant)
	case TrendWorsening:
		return fmt.Sprintf("The trend for %s is worsening (increasing) over time.", p.Pollutant)
	case TrendStable:
		return fmt.Sprintf("There is no clear trend for %s over time.", p.Pollutant)
	default:
		return fmt.Sprintf("There is not enough data to fit a trend for %s.", p.Pollutant)
	}
}

// TrendNarrative summarizes the report. The wording depends only on whether
// the improving and worsening lists are empty.
func TrendNarrative(r TrendReport) Narrative {
	improving, worsening, stable := r.Improving(), r.Worsening(), r.Stable()

	n := Narrative{
		Highlight: "The long-term trend analysis of air pollutants in Beijing reveals a mixed picture:",
		Conclusion: []string{
			"Improving Trends: " + listOr(improving, "No pollutants show clear improvement"),
			"Worsening Trends: " + listOr(worsening, "No pollutants show clear worsening"),
			"Stable Trends: " + listOr(stable, "No pollutants show stable trends"),
		},
	}
	if insufficient := r.Insufficient(); len(insufficient) > 0 {
		n.Conclusion = append(n.Conclusion, "Insufficient Data: "+strings.Join(insufficient, ", "))
	}

	effort := "facing challenges"
	if len(improving) > 0 {
		effort = "partially successful"
	}
	concern := "The stability in some pollutant levels indicates a need for more aggressive measures to achieve significant improvements."
	if len(worsening) > 0 {
		concern = "However, there are still concerns with increasing levels of some pollutants."
	}
	n.Conclusion = append(n.Conclusion,
		fmt.Sprintf("Air quality management efforts have been %s in reducing certain pollutants.", effort),
		concern,
		"Factors such as changes in industrial activities, transportation patterns, and environmental policies may have contributed to these trends.",
		"Continued monitoring and targeted interventions are crucial for improving overall air quality in Beijing.",
	)
	return n
}

func listOr(items []string, fallback string) string {
	if len(items) == 0 {
		return fallback
	}
	return strings.Join(items, ", ")
}
