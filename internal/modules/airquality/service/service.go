package service

import (
	"context"
	"fmt"
	"log/slog"

	"airquality-server/internal/modules/airquality/analysis"
	"airquality-server/internal/modules/airquality/types"
)

// TableLoader supplies the memoized dataset.
type TableLoader interface {
	Load(ctx context.Context) (*types.Table, error)
}

// TrendMessage is the verdict line under one pollutant chart.
type TrendMessage struct {
	Pollutant string         `json:"pollutant" yaml:"pollutant"`
	Trend     analysis.Trend `json:"trend" yaml:"trend"`
	Message   string         `json:"message" yaml:"message"`
}

// RenderedView is everything one dashboard page shows. Only the aggregate
// of the routed page is set.
type RenderedView struct {
	Page  types.Page `json:"page" yaml:"page"`
	Title string     `json:"title" yaml:"title"`

	Overview *analysis.Overview         `json:"overview,omitempty" yaml:"overview,omitempty"`
	Ranking  *analysis.PollutantRanking `json:"ranking,omitempty" yaml:"ranking,omitempty"`
	Weather  *analysis.WeatherImpact    `json:"weather,omitempty" yaml:"weather,omitempty"`
	Trends   *analysis.TrendReport      `json:"trends,omitempty" yaml:"trends,omitempty"`

	TrendMessages []TrendMessage      `json:"trend_messages,omitempty" yaml:"trend_messages,omitempty"`
	Narrative     *analysis.Narrative `json:"narrative,omitempty" yaml:"narrative,omitempty"`

	// Insufficient is set when the page's narrative could not be computed
	// from the data. The page is still rendered.
	Insufficient bool `json:"insufficient" yaml:"insufficient"`
}

var pageTitles = map[types.Page]string{
	types.PageHome:       "Beijing Air Quality Analysis",
	types.PagePollutants: "Pollutant Concentration Analysis",
	types.PageWeather:    "Weather Impact on Air Quality",
	types.PageTrends:     "Long-term Air Quality Trends",
}

type Router struct {
	loader TableLoader
	views  map[types.Page]func(*types.Table, *RenderedView)
}

func NewRouter(loader TableLoader) *Router {
	r := &Router{loader: loader}
	r.views = map[types.Page]func(*types.Table, *RenderedView){
		types.PageHome:       buildHome,
		types.PagePollutants: buildPollutants,
		types.PageWeather:    buildWeather,
		types.PageTrends:     buildTrends,
	}
	return r
}

// Route computes the selected page only.
func (r *Router) Route(ctx context.Context, page types.Page) (*RenderedView, error) {
	build, ok := r.views[page]
	if !ok {
		return nil, fmt.Errorf("%w: %q", types.ErrUnknownPage, page)
	}
	table, err := r.loader.Load(ctx)
	if err != nil {
		return nil, err
	}
	view := &RenderedView{Page: page, Title: pageTitles[page]}
	build(table, view)
	return view, nil
}

// Trend fits a single pollutant, for the per-pollutant chart.
func (r *Router) Trend(ctx context.Context, pollutant string) (analysis.PollutantTrend, error) {
	if !types.IsPollutant(pollutant) {
		return analysis.PollutantTrend{}, fmt.Errorf("%w: %q", types.ErrUnknownPollutant, pollutant)
	}
	table, err := r.loader.Load(ctx)
	if err != nil {
		return analysis.PollutantTrend{}, err
	}
	return analysis.AnalyzeTrend(table, pollutant), nil
}

// Records returns the number of loaded observations.
func (r *Router) Records(ctx context.Context) (int, error) {
	table, err := r.loader.Load(ctx)
	if err != nil {
		return 0, err
	}
	return table.Len(), nil
}

func buildHome(t *types.Table, v *RenderedView) {
	overview := analysis.Summarize(t)
	v.Overview = &overview
}

func buildPollutants(t *types.Table, v *RenderedView) {
	ranking := analysis.RankPollutants(t)
	v.Ranking = &ranking
	narrative, err := analysis.PollutantNarrative(ranking)
	if err != nil {
		slog.Warn("pollutant narrative unavailable", "error", err)
		v.Insufficient = true
		return
	}
	v.Narrative = &narrative
}

func buildWeather(t *types.Table, v *RenderedView) {
	impact := analysis.AnalyzeWeather(t)
	v.Weather = &impact
	narrative, err := analysis.WeatherNarrative(impact)
	if err != nil {
		slog.Warn("weather narrative unavailable", "error", err)
		v.Insufficient = true
		return
	}
	v.Narrative = &narrative
}

func buildTrends(t *types.Table, v *RenderedView) {
	report := analysis.AnalyzeTrends(t)
	v.Trends = &report
	for _, p := range report.Pollutants {
		v.TrendMessages = append(v.TrendMessages, TrendMessage{
			Pollutant: p.Pollutant,
			Trend:     p.Trend,
			Message:   analysis.TrendMessage(p),
		})
	}
	narrative := analysis.TrendNarrative(report)
	v.Narrative = &narrative
	v.Insufficient = len(report.Insufficient()) == len(report.Pollutants)
}

// WithoutSeries returns a copy of the view with trend series dropped, for
// compact machine-readable output.
func (v *RenderedView) WithoutSeries() *RenderedView {
	if v == nil || v.Trends == nil {
		return v
	}
	out := *v
	report := analysis.TrendReport{Pollutants: make([]analysis.PollutantTrend, len(v.Trends.Pollutants))}
	for i, p := range v.Trends.Pollutants {
		p.Series = nil
		report.Pollutants[i] = p
	}
	out.Trends = &report
	return &out
}
