package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"notekeeper/internal/notes/config"
	"notekeeper/pkg/logger"
)

// Константы для сообщений об ошибках.
const (
	ErrLoadConfig           = "failed to load configuration"
	ErrInitLoggerWithConfig = "failed to initialize logger with configuration settings"
)

var configPath string

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "notes",
		Short: "REST service for short text notes",
		Long: `notes serves a CRUD API over /api/notes backed by an in-memory,
Postgres or Redis store. Without a subcommand it starts the HTTP server.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(*cobra.Command, []string) error {
			if configPath == "" {
				return nil
			}
			return os.Setenv(config.EnvConfigPath, configPath)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context())
		},
	}

	root.PersistentFlags().StringVarP(&configPath, "config", "c", "",
		"path to a config file (overrides "+config.EnvConfigPath+")")

	root.AddCommand(newServeCommand(), newMigrateCommand())

	return root
}

// setup загружает конфигурацию и пересоздает глобальный logger по ее настройкам.
func setup(ctx context.Context) (*config.Config, *logger.Logger, error) {
	log := logger.Log(ctx)

	cfg, err := config.Load(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", ErrLoadConfig, err)
	}

	finalLogger, err := logger.NewLogger(cfg.Logging.Environment(), cfg.Logging.Level)
	if err != nil {
		log.Error(ctx, ErrInitLoggerWithConfig, zap.Error(err))
		return nil, nil, fmt.Errorf("%s: %w", ErrInitLoggerWithConfig, err)
	}
	_ = log.Sync()
	logger.SetGlobalLogger(finalLogger)

	return cfg, finalLogger, nil
}
