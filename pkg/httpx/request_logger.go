package httpx

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Gunvolt24/market_arb/internal/ports"
	"github.com/Gunvolt24/market_arb/pkg/ctxmeta"
)

// quietRoutes — служебные маршруты, которые опрашиваются постоянно и не логируются.
var quietRoutes = map[string]struct{}{
	"/metrics": {},
	"/ping":    {},
}

// RequestLogger — access log: одна строка на запрос; 5xx пишутся как Warn.
func RequestLogger(log ports.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if _, quiet := quietRoutes[route]; quiet {
			return
		}
		if route == "" {
			route = c.Request.URL.Path
		}

		ctx := c.Request.Context()
		rid, _ := ctxmeta.RequestIDFromContext(ctx)
		sid, _ := ctxmeta.SessionIDFromContext(ctx)
		trace, _ := ctxmeta.TraceIDFromContext(ctx)

		logf := log.Infof
		if c.Writer.Status() >= http.StatusInternalServerError {
			logf = log.Warnf
		}
		logf(ctx, "%s %s -> %d in %s rid=%s session=%s trace=%s bytes=%d",
			c.Request.Method, route, c.Writer.Status(), time.Since(start),
			rid, sid, trace, c.Writer.Size(),
		)
	}
}
