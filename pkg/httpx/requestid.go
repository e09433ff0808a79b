package httpx

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Gunvolt24/market_arb/pkg/ctxmeta"
)

// HeaderRequestID — заголовок сквозного идентификатора запроса.
const HeaderRequestID = "X-Request-ID"

// maxRequestIDLen — длиннее клиентский идентификатор не принимается, генерируется свой.
const maxRequestIDLen = 128

// RequestIDMiddleware — X-Request-ID клиента (или новый UUID) в контекст и в ответный заголовок.
// Тот же идентификатор уходит в заголовок сообщения с результатом сравнения в Kafka.
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := strings.TrimSpace(c.GetHeader(HeaderRequestID))
		if requestID == "" || len(requestID) > maxRequestIDLen {
			requestID = uuid.New().String()
		}
		c.Header(HeaderRequestID, requestID)

		ctx := ctxmeta.WithRequestID(c.Request.Context(), requestID)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// SessionMiddleware — кладёт параметр пути :id в контекст как session_id (для логов).
func SessionMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if id := c.Param("id"); id != "" {
			c.Request = c.Request.WithContext(ctxmeta.WithSessionID(c.Request.Context(), id))
		}
		c.Next()
	}
}
