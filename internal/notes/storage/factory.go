// Package storage собирает хранилище заметок для выбранного драйвера.
package storage

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"notekeeper/internal/notes/adapters/memory"
	"notekeeper/internal/notes/adapters/postgres"
	redisadapter "notekeeper/internal/notes/adapters/redis"
	"notekeeper/internal/notes/config"
	"notekeeper/internal/notes/db"
	"notekeeper/internal/notes/ports/repositories"
	"notekeeper/pkg/db/redis"
	"notekeeper/pkg/logger"
	"notekeeper/pkg/retry"
)

// Константы для сообщений logger.
const (
	LogOpeningStorage = "opening note storage"
	LogClosingStorage = "closing note storage"
)

// Константы для сообщений об ошибках.
const (
	ErrOpenPostgres = "failed to open postgres storage"
	ErrOpenRedis    = "failed to open redis storage"
)

// Store хранит репозиторий заметок и освобождает ресурсы драйвера.
type Store struct {
	noteRepo repositories.NoteRepository
	closeFn  func(ctx context.Context) error
}

// Open создает хранилище для cfg.Storage.Driver. Подключение к внешнему
// хранилищу повторяется согласно cfg.Storage.
func Open(ctx context.Context, cfg *config.Config) (*Store, error) {
	logger.Log(ctx).Info(ctx, LogOpeningStorage, zap.String("driver", cfg.Storage.Driver))

	switch cfg.Storage.Driver {
	case config.DriverMemory:
		return &Store{noteRepo: memory.NewNoteRepository()}, nil

	case config.DriverPostgres:
		var database *db.DB
		err := retry.Do(ctx, config.DriverPostgres, cfg.Storage.RetryConfig(), func(ctx context.Context) error {
			var err error
			database, err = db.New(ctx, &cfg.Postgres)
			return err
		})
		if err != nil {
			return nil, fmt.Errorf("%s: %w", ErrOpenPostgres, err)
		}
		return &Store{
			noteRepo: postgres.NewNoteRepository(database.Pool()),
			closeFn: func(ctx context.Context) error {
				database.Close(ctx)
				return nil
			},
		}, nil

	case config.DriverRedis:
		var client *redis.Client
		err := retry.Do(ctx, config.DriverRedis, cfg.Storage.RetryConfig(), func(ctx context.Context) error {
			var err error
			client, err = redis.NewClient(ctx, cfg.Redis.ClientConfig())
			return err
		})
		if err != nil {
			return nil, fmt.Errorf("%s: %w", ErrOpenRedis, err)
		}
		return &Store{
			noteRepo: redisadapter.NewNoteRepository(client.RawClient(), cfg.Redis.KeyPrefix),
			closeFn:  client.Close,
		}, nil

	default:
		return nil, fmt.Errorf("%w: %q", config.ErrUnknownDriver, cfg.Storage.Driver)
	}
}

// NoteRepository возвращает репозиторий заметок.
func (s *Store) NoteRepository() repositories.NoteRepository {
	return s.noteRepo
}

// Close освобождает соединения драйвера.
func (s *Store) Close(ctx context.Context) error {
	logger.Log(ctx).Info(ctx, LogClosingStorage)
	if s.closeFn == nil {
		return nil
	}
	return s.closeFn(ctx)
}
