// Package middleware содержит промежуточное ПО для HTTP обработчиков.
package middleware

import (
	"context"

	"github.com/gofiber/fiber/v3"

	"notekeeper/pkg/logger"
)

// HeaderRequestID - заголовок с идентификатором запроса.
const HeaderRequestID = "X-Request-ID"

const requestContextKey = "requestContext"

// NewRequestIDMiddleware берет идентификатор запроса из заголовка или генерирует новый,
// кладет его и привязанный к нему logger в контекст запроса и возвращает id клиенту.
func NewRequestIDMiddleware() fiber.Handler {
	return func(ctx fiber.Ctx) error {
		requestCtx := logger.WithRequestLogger(ctx.Context(), ctx.Get(HeaderRequestID))

		id, _ := logger.GetRequestID(requestCtx)
		ctx.Set(HeaderRequestID, id)
		ctx.Locals(requestContextKey, requestCtx)

		return ctx.Next()
	}
}

// RequestContext возвращает контекст запроса с идентификатором запроса.
func RequestContext(ctx fiber.Ctx) context.Context {
	if requestCtx, ok := ctx.Locals(requestContextKey).(context.Context); ok {
		return requestCtx
	}
	return ctx.Context() // Запасной вариант
}
