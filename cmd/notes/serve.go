package main

import (
	"context"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	httpserver "notekeeper/internal/notes/adapters/http"
	"notekeeper/internal/notes/app"
	"notekeeper/internal/notes/storage"
	"notekeeper/pkg/shutdown"
)

// Константы для сообщений сервиса.
const (
	LogServiceStarted      = "note service started"
	LogServiceShutdownDone = "note service shutdown complete"
	LogClosingStorage      = "closing note storage"
	LogStoppingHTTP        = "stopping HTTP server"
	LogInitStorage         = "initializing storage"
	LogInitUseCases        = "initializing use cases"
	LogInitHTTPServer      = "initializing HTTP server"
	LogStartingHTTP        = "starting HTTP server"

	ErrInitStorage     = "failed to initialize storage"
	ErrStartHTTPServer = "failed to start HTTP server"
)

const appName = "notekeeper"

func newServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context())
		},
	}
}

func runServe(ctx context.Context) error {
	cfg, log, err := setup(ctx)
	if err != nil {
		return err
	}

	log.Info(ctx, LogServiceStarted,
		zap.String("environment", string(cfg.Logging.Environment())),
		zap.String("log_level", cfg.Logging.Level),
		zap.String("storage_driver", cfg.Storage.Driver),
		zap.String("startup_time", time.Now().Format(time.RFC3339)))

	log.Info(ctx, LogInitStorage)
	store, err := storage.Open(ctx, cfg)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrInitStorage, err)
	}

	log.Info(ctx, LogInitUseCases)
	noteUseCase := app.NewNoteUseCase(store.NoteRepository())

	log.Info(ctx, LogInitHTTPServer)
	fiberApp := httpserver.NewApp(fiber.Config{
		AppName:      appName,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		BodyLimit:    cfg.HTTP.BodyLimit,
	})
	httpserver.SetupRouter(fiberApp, noteUseCase)

	serveCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	log.Info(ctx, LogStartingHTTP, zap.String("address", cfg.HTTP.GetAddress()))
	go func() {
		if err := fiberApp.Listen(cfg.HTTP.GetAddress(), fiber.ListenConfig{DisableStartupMessage: true}); err != nil {
			log.Error(ctx, ErrStartHTTPServer, zap.Error(err))
			cancel()
		}
	}()

	shutdown.Wait(serveCtx, cfg.Shutdown.GetTimeout(),
		func(ctx context.Context) error {
			log.Info(ctx, LogStoppingHTTP)
			return fiberApp.ShutdownWithContext(ctx)
		},
		func(ctx context.Context) error {
			log.Info(ctx, LogClosingStorage)
			return store.Close(ctx)
		},
	)

	log.Info(ctx, LogServiceShutdownDone)
	return nil
}
