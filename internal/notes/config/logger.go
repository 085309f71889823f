package config

import (
	"errors"
	"fmt"

	"notekeeper/pkg/logger"
)

// ErrUnknownLogEnv возвращается для NOTES_LOGGER_MODE вне development|production.
var ErrUnknownLogEnv = errors.New("unknown logger mode")

// LoggingConfig управляет логами сервиса заметок: NOTES_LOGGER_LEVEL задает
// минимальный уровень, NOTES_LOGGER_MODE - цветной консольный (development)
// или JSON (production) вывод.
type LoggingConfig struct {
	Level string `yaml:"level" env:"NOTES_LOGGER_LEVEL" env-default:"info"`
	Env   string `yaml:"mode" env:"NOTES_LOGGER_MODE" env-default:"development"`
}

// Environment переводит NOTES_LOGGER_MODE в режим logger.
func (l *LoggingConfig) Environment() logger.Environment {
	return logger.Environment(l.Env)
}

func (l *LoggingConfig) validate() error {
	switch l.Environment() {
	case logger.Development, logger.Production:
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrUnknownLogEnv, l.Env)
	}
}
