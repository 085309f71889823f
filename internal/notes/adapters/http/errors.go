package http

import (
	"errors"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"notekeeper/internal/notes/adapters/http/middleware"
	"notekeeper/internal/notes/app"
	"notekeeper/internal/notes/app/dto"
	"notekeeper/pkg/logger"
)

// resolveError сопоставляет ошибку со статусом и сообщением для клиента.
func resolveError(err error) (int, string) {
	var appErr *app.Error
	if errors.As(err, &appErr) {
		switch {
		case errors.Is(appErr, app.ErrValidation):
			return fiber.StatusBadRequest, appErr.Message
		case errors.Is(appErr, app.ErrNotFound):
			return fiber.StatusNotFound, appErr.Message
		default:
			return fiber.StatusInternalServerError, app.MsgInternalError
		}
	}

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return fiberErr.Code, fiberErr.Message
	}

	return fiber.StatusInternalServerError, app.MsgInternalError
}

// StatusOf возвращает HTTP-статус для ошибки.
func StatusOf(err error) int {
	status, _ := resolveError(err)
	return status
}

// ErrorHandler - централизованный обработчик ошибок: логирует ошибку
// и отправляет конверт { success: false, message }.
func ErrorHandler(ctx fiber.Ctx, err error) error {
	requestCtx := middleware.RequestContext(ctx)
	status, message := resolveError(err)

	fields := []zap.Field{
		zap.Int("status_code", status),
		zap.String("method", ctx.Method()),
		zap.String("path", ctx.OriginalURL()),
		zap.Error(err),
	}
	log := logger.Log(requestCtx)
	if status >= fiber.StatusInternalServerError {
		log.Error(requestCtx, message, fields...)
	} else {
		log.Warn(requestCtx, message, fields...)
	}

	return ctx.Status(status).JSON(dto.Failure(message))
}
