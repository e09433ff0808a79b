package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/Gunvolt24/market_arb/pkg/httpx"
)

// NewRouter — gin-роутер API сравнения рынков.
// otelServiceName пуст — трейсинг HTTP не подключается.
func NewRouter(h *Handler, otelServiceName string) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	if otelServiceName != "" {
		r.Use(otelgin.Middleware(otelServiceName))
	}
	r.Use(httpx.RequestIDMiddleware())
	r.Use(httpx.RequestLogger(h.log))

	r.GET("/ping", func(c *gin.Context) { c.String(200, "pong") })
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.NoRoute(func(c *gin.Context) { c.JSON(http.StatusNotFound, gin.H{"error": "route not found"}) })

	r.POST("/sessions", h.newSession)

	s := r.Group("/sessions/:id", httpx.SessionMiddleware())
	s.DELETE("", h.endSession)
	s.POST("/fetch", h.fetchLocation)
	s.POST("/recalculate", h.recalculate)
	s.POST("/compare", h.compare)
	s.GET("/opportunities", h.opportunities)

	return r
}
