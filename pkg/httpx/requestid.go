package httpx

import (
	"github.com/Gunvolt24/purchase-order/pkg/ctxmeta"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const (
	// HeaderRequestID: заголовок корреляции запроса.
	HeaderRequestID = "X-Request-ID"

	maxRequestIDLen = 128
)

// RequestIDMiddleware берёт X-Request-ID клиента, если он пригоден для логов,
// иначе выдаёт новый UUID. Значение попадает в контекст, в ответ и в атрибуты span'а.
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(HeaderRequestID)
		if !validRequestID(requestID) {
			requestID = uuid.NewString()
		}
		c.Header(HeaderRequestID, requestID)

		ctx := ctxmeta.WithRequestID(c.Request.Context(), requestID)
		if span := trace.SpanFromContext(ctx); span.IsRecording() {
			span.SetAttributes(attribute.String("http.request_id", requestID))
		}
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// validRequestID: непустой, не длиннее maxRequestIDLen, только печатный ASCII.
func validRequestID(id string) bool {
	if id == "" || len(id) > maxRequestIDLen {
		return false
	}
	for i := 0; i < len(id); i++ {
		if id[i] < 0x21 || id[i] > 0x7e {
			return false
		}
	}
	return true
}
