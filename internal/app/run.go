package app

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"airquality-server/internal/config"
	httpapi "airquality-server/internal/httpapi"
	airquality "airquality-server/internal/modules/airquality"
	"airquality-server/internal/modules/airquality/controller"
	"airquality-server/internal/modules/airquality/repository"
	"airquality-server/internal/modules/airquality/service"
	"airquality-server/internal/modules/airquality/views"
)

// Run loads the dataset, then serves the dashboard until ctx is cancelled.
// A dataset that cannot be loaded aborts startup.
func Run(ctx context.Context, cfg config.Config) error {
	slog.Info("config loaded",
		"appEnv", cfg.AppEnv,
		"logLevel", cfg.LogLevel.String(),
		"httpAddr", cfg.HTTPAddr,
		"dataSource", cfg.DataSource,
		"dataPath", cfg.DataPath,
		"sqlitePath", cfg.SQLitePath,
		"chartMaxPoints", cfg.ChartMaxPoints,
	)

	source, closeSource, err := openSource(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeSource()

	loader := repository.NewLoader(source)
	if _, err := loader.Load(ctx); err != nil {
		return err
	}

	if err := views.LoadTemplates(); err != nil {
		return err
	}

	router := service.NewRouter(loader)
	mux := httpapi.NewMux(router)
	airquality.RegisterFeature(mux, router, controller.Options{
		Sidebar: views.Sidebar{
			AuthorName:    cfg.AuthorName,
			DataSourceURL: cfg.DataSourceURL,

			AuthorEmail:      cfg.AuthorEmail,
			AuthorProfile:    cfg.AuthorProfile,
			AuthorProfileURL: cfg.AuthorProfileURL,
		},
		ChartMaxPoints: cfg.ChartMaxPoints,
	})

	srv := httpapi.NewServer(cfg, mux)

	errCh := make(chan error, 1)
	go func() {
		slog.Info("http listening", "addr", cfg.HTTPAddr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	slog.Info("http shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}

	err = <-errCh
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return ctx.Err()
}
