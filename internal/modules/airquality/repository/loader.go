package repository

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"airquality-server/internal/modules/airquality/types"
)

// Loader reads the dataset once per process. Every later Load returns the
// same *types.Table, or the same error, without touching the source again.
// A call whose context is done when the read fails is not remembered, so a
// later call reads the source again.
type Loader struct {
	repo ObservationRepository

	mu    sync.Mutex
	done  bool
	table *types.Table
	err   error
}

func NewLoader(repo ObservationRepository) *Loader {
	return &Loader{repo: repo}
}

func (l *Loader) Load(ctx context.Context) (*types.Table, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.done {
		return l.table, l.err
	}

	start := time.Now()
	rows, err := l.repo.LoadObservations(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return nil, err
		}
		l.done, l.err = true, err
		return nil, err
	}
	l.done, l.table = true, types.NewTable(rows)
	slog.Info("dataset loaded", "records", l.table.Len(), "duration_ms", time.Since(start).Milliseconds())
	return l.table, nil
}
