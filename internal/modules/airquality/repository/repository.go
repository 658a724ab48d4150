package repository

import (
	"context"

	"airquality-server/internal/modules/airquality/types"
)

// ObservationRepository reads the full hourly observation set from a source.
// Implementations return errors wrapping types.ErrDataUnavailable.
type ObservationRepository interface {
	LoadObservations(ctx context.Context) ([]types.Observation, error)
}

// ObservationStore is a writable observation source backed by SQLite.
type ObservationStore interface {
	ObservationRepository
	ReplaceObservations(ctx context.Context, rows []types.Observation) error
	CountObservations(ctx context.Context) (int, error)
}
