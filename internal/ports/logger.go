package ports

import "context"

// Logger: минимальный контракт логгера; ctx нужен для request_id/trace_id.
type Logger interface {
	Infof(ctx context.Context, format string, args ...any)  // Infof: информационные сообщения.
	Warnf(ctx context.Context, format string, args ...any)  // Warnf: ожидаемые отказы (валидация, not found).
	Errorf(ctx context.Context, format string, args ...any) // Errorf: сбои.
}
