package controller

import (
	"bytes"
	"errors"
	"log/slog"
	"net/http"

	"airquality-server/internal/modules/airquality/charts"
	"airquality-server/internal/modules/airquality/types"
	"airquality-server/internal/modules/airquality/views"
	"airquality-server/internal/utils"
)

func (c *airQualityControllerImpl) handleDashboard(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	page, notice := parsePageQuery(r)
	if notice != "" {
		slog.Warn("dashboard: unknown page, showing home", "page", r.URL.Query().Get("page"))
	}

	view, err := c.router.Route(r.Context(), page)
	if err != nil {
		slog.Error("dashboard: route failed", "page", page, "error", err)
		utils.WriteError(w, statusFor(err), "failed to load dataset")
		return
	}

	data := views.NewPageData(view, c.opts.Sidebar)
	data.Notice = notice

	var buf bytes.Buffer
	if err := views.RenderPage(&buf, data); err != nil {
		slog.Error("dashboard template render failed", "page", page, "error", err)
		utils.WriteError(w, http.StatusInternalServerError, "failed to render page")
		return
	}
	utils.WriteHTML(w, http.StatusOK, buf.Bytes())
}

func (c *airQualityControllerImpl) handlePollutantChart(w http.ResponseWriter, r *http.Request) {
	view, err := c.router.Route(r.Context(), types.PagePollutants)
	if err != nil {
		slog.Error("pollutant chart: route failed", "error", err)
		utils.WriteError(w, statusFor(err), "failed to load dataset")
		return
	}

	var buf bytes.Buffer
	if err := charts.PollutantBars(&buf, *view.Ranking); err != nil {
		c.writeChartError(w, "pollutants", err)
		return
	}
	utils.WriteSVG(w, http.StatusOK, buf.Bytes())
}

func (c *airQualityControllerImpl) handleTrendChart(w http.ResponseWriter, r *http.Request) {
	pollutant := r.PathValue("pollutant")
	trend, err := c.router.Trend(r.Context(), pollutant)
	if err != nil {
		if errors.Is(err, types.ErrUnknownPollutant) {
			utils.WriteError(w, http.StatusNotFound, err.Error())
			return
		}
		slog.Error("trend chart: route failed", "pollutant", pollutant, "error", err)
		utils.WriteError(w, statusFor(err), "failed to load dataset")
		return
	}

	var buf bytes.Buffer
	if err := charts.TrendLine(&buf, trend, c.opts.ChartMaxPoints); err != nil {
		c.writeChartError(w, pollutant, err)
		return
	}
	utils.WriteSVG(w, http.StatusOK, buf.Bytes())
}

func (c *airQualityControllerImpl) writeChartError(w http.ResponseWriter, chart string, err error) {
	if errors.Is(err, types.ErrInsufficientData) {
		utils.WriteError(w, http.StatusNotFound, "not enough data to draw chart")
		return
	}
	slog.Error("chart render failed", "chart", chart, "error", err)
	utils.WriteError(w, http.StatusInternalServerError, "failed to render chart")
}

func (c *airQualityControllerImpl) handleAPI(w http.ResponseWriter, r *http.Request) {
	page, ok := apiPage(r.PathValue("view"))
	if !ok {
		utils.WriteError(w, http.StatusNotFound, "unknown view (allowed: overview, pollutants, weather, trends)")
		return
	}
	series, err := wantSeries(r)
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	view, err := c.router.Route(r.Context(), page)
	if err != nil {
		slog.Error("api: route failed", "page", page, "error", err)
		utils.WriteError(w, statusFor(err), "failed to load dataset")
		return
	}
	if !series {
		view = view.WithoutSeries()
	}
	utils.WriteJSON(w, http.StatusOK, view)
}
