package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"airquality-server/internal/app"
)

func newMigrateCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending SQLite schema migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return app.Migrate(cmd.Context(), c.cfg)
		},
	}
}

func newImportCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "import",
		Short: "Copy the CSV dataset into the SQLite store",
		Long:  "Reads the CSV dataset and replaces every observation in the SQLite store with its rows.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			n, err := app.Import(cmd.Context(), c.cfg)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "imported %d observations into %s\n", n, c.cfg.SQLitePath)
			return nil
		},
	}
}
