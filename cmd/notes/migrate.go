package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"notekeeper/internal/notes/db"
)

const (
	LogMigrationsUp   = "notes migrations applied"
	LogMigrationsDown = "notes migrations rolled back"
)

func newMigrateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the Postgres schema of the notes store",
	}

	up := &cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			cfg, log, err := setup(ctx)
			if err != nil {
				return err
			}
			if err := db.Migrate(ctx, &cfg.Postgres); err != nil {
				return err
			}
			log.Info(ctx, LogMigrationsUp)
			return nil
		},
	}

	var steps int
	down := &cobra.Command{
		Use:   "down",
		Short: "Roll back the last migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			cfg, log, err := setup(ctx)
			if err != nil {
				return err
			}
			if err := db.Rollback(ctx, &cfg.Postgres, steps); err != nil {
				return err
			}
			log.Info(ctx, LogMigrationsDown, zap.Int("steps", steps))
			return nil
		},
	}
	down.Flags().IntVarP(&steps, "steps", "n", 1, "number of migrations to roll back")

	cmd.AddCommand(up, down)
	return cmd
}
