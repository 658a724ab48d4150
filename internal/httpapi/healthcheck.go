package httpapi

import (
	"context"
	"log/slog"
	"net/http"

	"airquality-server/internal/utils"
)

// datasetCounter reports how many observations are loaded.
type datasetCounter interface {
	Records(ctx context.Context) (int, error)
}

type healthchecker interface {
	handleHealthz(w http.ResponseWriter, r *http.Request)
}

type healthcheckerImpl struct {
	dataset datasetCounter
}

func NewHealthchecker(dataset datasetCounter) healthchecker {
	return &healthcheckerImpl{dataset: dataset}
}

func (h *healthcheckerImpl) handleHealthz(w http.ResponseWriter, r *http.Request) {
	n, err := h.dataset.Records(r.Context())
	if err != nil {
		slog.Error("failed to check dataset", "error", err)
		utils.WriteError(w, http.StatusServiceUnavailable, "dataset not loaded")
		return
	}
	utils.WriteJSON(w, http.StatusOK, map[string]any{"status": "ok", "records": n})
}

func registerHealthcheck(mux *http.ServeMux, dataset datasetCounter) {
	healthchecker := NewHealthchecker(dataset)
	mux.HandleFunc("GET /healthz", healthchecker.handleHealthz)
}
