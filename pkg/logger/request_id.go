package logger

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type requestIDKeyType struct{}

var requestIDKey = requestIDKeyType{}

// NewRequestIDContext кладет идентификатор запроса в ctx; пустой id генерируется.
func NewRequestIDContext(ctx context.Context, requestID string) context.Context {
	if requestID == "" {
		requestID = GenerateRequestID()
	}
	return context.WithValue(ctx, requestIDKey, requestID)
}

// GetRequestID извлекает идентификатор запроса из контекста.
func GetRequestID(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(requestIDKey).(string)
	return id, ok
}

// GenerateRequestID генерирует новый идентификатор запроса (UUID v4).
func GenerateRequestID() string {
	return uuid.NewString()
}

// WithRequestID возвращает logger, к каждой записи которого уже привязан
// request_id из ctx. Без идентификатора в ctx возвращается сам l.
func (l *Logger) WithRequestID(ctx context.Context) *Logger {
	id, ok := GetRequestID(ctx)
	if !ok {
		return l
	}
	bound := l.With(zap.String(RequestID, id))
	bound.requestIDBound = true
	return bound
}

// WithRequestLogger возвращает ctx с идентификатором запроса и logger,
// привязанным к этому идентификатору. Log(ctx) затем вернет именно его.
func WithRequestLogger(ctx context.Context, requestID string) context.Context {
	ctx = NewRequestIDContext(ctx, requestID)
	return NewContext(ctx, Log(ctx).WithRequestID(ctx))
}
