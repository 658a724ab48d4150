package controller

import (
	"context"
	"net/http"

	"airquality-server/internal/modules/airquality/analysis"
	"airquality-server/internal/modules/airquality/service"
	"airquality-server/internal/modules/airquality/types"
	"airquality-server/internal/modules/airquality/views"
)

// DashboardRouter computes page views and single-pollutant trends.
type DashboardRouter interface {
	Route(ctx context.Context, page types.Page) (*service.RenderedView, error)
	Trend(ctx context.Context, pollutant string) (analysis.PollutantTrend, error)
}

type Options struct {
	Sidebar        views.Sidebar
	ChartMaxPoints int
}

type AirQualityController interface {
	RegisterRoutes(mux *http.ServeMux)
}

type airQualityControllerImpl struct {
	router DashboardRouter
	opts   Options
}

func NewAirQualityController(router DashboardRouter, opts Options) AirQualityController {
	return &airQualityControllerImpl{router: router, opts: opts}
}

func (c *airQualityControllerImpl) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /", c.handleDashboard)
	mux.HandleFunc("GET /charts/pollutants.svg", c.handlePollutantChart)
	mux.HandleFunc("GET /charts/trends/{pollutant}", c.handleTrendChart)
	mux.HandleFunc("GET /api/v1/{view}", c.handleAPI)
	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServerFS(views.StaticFS())))
}
