package main

import (
	"context"
	"errors"
	"log/slog"

	"github.com/spf13/cobra"

	"airquality-server/internal/app"
	"airquality-server/internal/config"
)

func newServeCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the dashboard over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context(), c.cfg)
		},
	}
}

func runServe(ctx context.Context, cfg config.Config) error {
	slog.Info("starting",
		"version", version,
		"env", cfg.AppEnv,
		"log_level", cfg.LogLevel.String(),
	)

	err := app.Run(ctx, cfg)
	if err != nil && !errors.Is(err, context.Canceled) {
		slog.Error("run failed", "err", err)
		return err
	}

	slog.Info("shutting down")
	return nil
}
