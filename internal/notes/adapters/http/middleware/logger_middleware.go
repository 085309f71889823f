package middleware

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"notekeeper/pkg/logger"
)

// NewLoggerMiddleware создает новое промежуточное ПО для логирования HTTP запросов.
// statusOf определяет итоговый статус, если обработчик вернул ошибку.
func NewLoggerMiddleware(statusOf func(error) int) fiber.Handler {
	return func(ctx fiber.Ctx) error {
		requestCtx := RequestContext(ctx)
		start := time.Now()

		log := logger.Log(requestCtx).With(
			zap.String("path", ctx.OriginalURL()),
			zap.String("method", ctx.Method()),
			zap.String("ip", ctx.IP()),
			zap.String("user_agent", ctx.Get(fiber.HeaderUserAgent, "Unknown")),
		)

		log.Debug(requestCtx, "Request started")

		err := ctx.Next()

		status := ctx.Response().StatusCode()
		if err != nil {
			status = statusOf(err)
		}

		logFields := []zap.Field{
			zap.Int("status", status),
			zap.Duration("latency", time.Since(start)),
			zap.Int("content_length", len(ctx.Response().Body())),
		}

		if err != nil {
			log.Warn(requestCtx, "Request failed", append(logFields, zap.Error(err))...)
			return fmt.Errorf("request processing error: %w", err)
		}

		log.Info(requestCtx, "Request completed", logFields...)
		return nil
	}
}
