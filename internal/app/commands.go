package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"airquality-server/internal/config"
	"airquality-server/internal/modules/airquality/repository"
	"airquality-server/internal/modules/airquality/service"
	"airquality-server/internal/modules/airquality/types"
)

// Migrate applies pending schema migrations to the SQLite store.
func Migrate(ctx context.Context, cfg config.Config) error {
	conn, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	closeDB(conn)
	return nil
}

// Import copies the CSV dataset into the SQLite store, replacing its rows,
// and returns the number of observations stored afterwards.
func Import(ctx context.Context, cfg config.Config) (int, error) {
	start := time.Now()
	rows, err := repository.NewCSVRepository(cfg.DataPath).LoadObservations(ctx)
	if err != nil {
		return 0, err
	}

	conn, err := openStore(ctx, cfg)
	if err != nil {
		return 0, err
	}
	defer closeDB(conn)

	store := repository.NewSQLiteRepository(conn)
	if err := store.ReplaceObservations(ctx, rows); err != nil {
		return 0, fmt.Errorf("import: %w", err)
	}
	stored, err := store.CountObservations(ctx)
	if err != nil {
		return 0, fmt.Errorf("import: count: %w", err)
	}
	if stored != len(rows) {
		return stored, fmt.Errorf("import: stored %d observations, read %d", stored, len(rows))
	}
	slog.Info("dataset imported",
		"records", stored,
		"from", cfg.DataPath,
		"to", cfg.SQLitePath,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return stored, nil
}

// Report computes one page from the configured source without serving it.
func Report(ctx context.Context, cfg config.Config, page types.Page) (*service.RenderedView, error) {
	source, closeSource, err := openSource(ctx, cfg)
	if err != nil {
		return nil, err
	}
	defer closeSource()

	return service.NewRouter(repository.NewLoader(source)).Route(ctx, page)
}
