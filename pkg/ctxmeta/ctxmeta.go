// Пакет ctxmeta: метаданные запроса в context.Context (request_id, trace/span id).
// HTTP-слой, консьюмер и логгер зависят от него, но не друг от друга.
package ctxmeta

import "context"

type ctxKey string

const (
	KeyRequestID ctxKey = "request_id"
)

// WithRequestID кладёт request_id в контекст (если пусто, ничего не делает).
func WithRequestID(ctx context.Context, requestID string) context.Context {
	if ctx == nil || requestID == "" {
		return ctx
	}
	return context.WithValue(ctx, KeyRequestID, requestID)
}

// RequestIDFromContext достаёт request_id из контекста.
func RequestIDFromContext(ctx context.Context) (string, bool) {
	if ctx == nil {
		return "", false
	}
	if v, ok := ctx.Value(KeyRequestID).(string); ok && v != "" {
		return v, true
	}
	return "", false
}

// Fields: известные метаданные контекста парами ключ/значение для структурного логгера.
// Отсутствующие значения пропускаются.
func Fields(ctx context.Context) []any {
	if ctx == nil {
		return nil
	}
	var out []any
	if rid, ok := RequestIDFromContext(ctx); ok {
		out = append(out, "request_id", rid)
	}
	if tid, ok := TraceIDFromContext(ctx); ok {
		out = append(out, "trace_id", tid)
	}
	if sid, ok := SpanIDFromContext(ctx); ok {
		out = append(out, "span_id", sid)
	}
	return out
}
