package main

import (
	"facility-survey/internal/common/config"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func newMigrateCmd(cfg **config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations",
		RunE: func(c *cobra.Command, args []string) error {
			color.Yellow("Applying migrations (%s)...", (*cfg).DBDriver)

			repo, err := openRepository(c.Context(), *cfg)
			if err != nil {
				return err
			}
			defer repo.Close()

			color.Green("Database is up to date.")
			return nil
		},
	}
}
