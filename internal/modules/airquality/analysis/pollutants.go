package analysis

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"

	"airquality-server/internal/modules/airquality/types"
)

type PollutantMean struct {
	Pollutant string `json:"pollutant" yaml:"pollutant"`
	Mean      Number `json:"mean" yaml:"mean"`
	// Samples is the number of non-missing values the mean was taken over.
	Samples int  `json:"samples" yaml:"samples"`
	Valid   bool `json:"valid" yaml:"valid"`
}

// PollutantRanking orders pollutants by descending mean. Pollutants with no
// values come last, in the fixed pollutant order.
type PollutantRanking struct {
	Means []PollutantMean `json:"means" yaml:"means"`
}

func RankPollutants(t *types.Table) PollutantRanking {
	means := make([]PollutantMean, 0, len(types.Pollutants))
	for _, name := range types.Pollutants {
		values := present(t.Column(name))
		m := PollutantMean{Pollutant: name, Samples: len(values)}
		if len(values) > 0 {
			m.Mean = Number(stat.Mean(values, nil))
			m.Valid = true
		} else {
			m.Mean = Number(math.NaN())
		}
		means = append(means, m)
	}

	sort.SliceStable(means, func(i, j int) bool {
		if means[i].Valid != means[j].Valid {
			return means[i].Valid
		}
		return means[i].Valid && means[i].Mean > means[j].Mean
	})
	return PollutantRanking{Means: means}
}

// Top returns up to n ranked pollutants that have a mean.
func (r PollutantRanking) Top(n int) []PollutantMean {
	var out []PollutantMean
	for _, m := range r.Means {
		if !m.Valid || len(out) == n {
			break
		}
		out = append(out, m)
	}
	return out
}
