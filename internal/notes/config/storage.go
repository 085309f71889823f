package config

import (
	"time"

	"notekeeper/pkg/retry"
)

// Драйверы хранилища заметок.
const (
	DriverMemory   = "memory"
	DriverPostgres = "postgres"
	DriverRedis    = "redis"
)

// StorageConfig выбирает реализацию хранилища заметок.
type StorageConfig struct {
	Driver          string        `yaml:"driver" env:"NOTES_STORAGE_DRIVER" env-default:"memory"`
	ConnectAttempts int           `yaml:"connect_attempts" env:"NOTES_STORAGE_CONNECT_ATTEMPTS" env-default:"5"`
	ConnectBackoff  time.Duration `yaml:"connect_backoff" env:"NOTES_STORAGE_CONNECT_BACKOFF" env-default:"500ms"`
}

// RetryConfig возвращает настройки повторного подключения к хранилищу.
func (s *StorageConfig) RetryConfig() retry.Config {
	cfg := retry.DefaultConfig()
	cfg.MaxAttempts = s.ConnectAttempts
	if s.ConnectBackoff > 0 {
		cfg.InitialBackoff = s.ConnectBackoff
		cfg.MaxBackoff = 10 * s.ConnectBackoff
	}
	return cfg
}
