package app

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"airquality-server/internal/config"
	db "airquality-server/internal/db"
	"airquality-server/internal/migrate"
	"airquality-server/internal/modules/airquality/repository"
)

// openSource returns the configured observation source and a func releasing it.
func openSource(ctx context.Context, cfg config.Config) (repository.ObservationRepository, func(), error) {
	switch cfg.DataSource {
	case config.DataSourceSQLite:
		conn, err := openStore(ctx, cfg)
		if err != nil {
			return nil, nil, err
		}
		return repository.NewSQLiteRepository(conn), func() { closeDB(conn) }, nil
	default:
		return repository.NewCSVRepository(cfg.DataPath), func() {}, nil
	}
}

// openStore opens the SQLite database and applies pending migrations.
func openStore(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	conn, err := db.Open(cfg)
	if err != nil {
		return nil, err
	}
	if _, err := migrate.Run(ctx, conn); err != nil {
		closeDB(conn)
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return conn, nil
}

func closeDB(conn *sql.DB) {
	if err := db.Close(conn); err != nil {
		slog.Error("db close", "error", err)
	}
}
