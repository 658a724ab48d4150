package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"airquality-server/internal/config"
	"airquality-server/internal/logging"
)

// cli carries state shared by subcommands once the root has run.
type cli struct {
	cfg config.Config

	// flag overrides
	dataSource string
	dataPath   string
	logLevel   string
}

func newRootCmd() *cobra.Command {
	c := &cli{}
	root := &cobra.Command{
		Use:           appName,
		Short:         "Beijing air quality dashboard",
		Long:          "Serves the Beijing air quality dashboard and computes its views from the station dataset.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return c.setup(cmd)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context(), c.cfg)
		},
	}

	f := root.PersistentFlags()
	f.StringVar(&c.dataSource, "source", "", "observation source: csv or sqlite (overrides DATA_SOURCE)")
	f.StringVar(&c.dataPath, "data", "", "path to the CSV dataset (overrides DATA_PATH)")
	f.StringVar(&c.logLevel, "log-level", "", "debug, info, warn or error (overrides LOG_LEVEL)")

	root.AddCommand(
		newServeCmd(c),
		newMigrateCmd(c),
		newImportCmd(c),
		newReportCmd(c),
	)
	return root
}

func (c *cli) setup(cmd *cobra.Command) error {
	cfg, err := config.LoadFromEnv()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	f := cmd.Flags()
	if f.Changed("source") {
		switch c.dataSource {
		case config.DataSourceCSV, config.DataSourceSQLite:
			cfg.DataSource = c.dataSource
		default:
			return fmt.Errorf("invalid --source %q (allowed: csv, sqlite)", c.dataSource)
		}
	}
	if f.Changed("data") {
		cfg.DataPath = c.dataPath
	}
	if f.Changed("log-level") {
		level, err := config.ParseLogLevel(c.logLevel)
		if err != nil {
			return err
		}
		cfg.LogLevel = level
	}

	c.cfg = cfg
	slog.SetDefault(logging.New(cfg, version, appName))
	return nil
}
