package httpx_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Gunvolt24/market_arb/pkg/ctxmeta"
	"github.com/Gunvolt24/market_arb/pkg/httpx"
)

func TestRequestIDMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name      string
		header    string
		want      string // пусто — ожидается сгенерированный UUID
		generated bool
	}{
		{name: "missing", generated: true},
		{name: "provided", header: "custom-id-42", want: "custom-id-42"},
		{name: "trimmed", header: "  rid-7  ", want: "rid-7"},
		{name: "too long", header: strings.Repeat("x", 200), generated: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotID string
			var ok bool

			r := gin.New()
			r.Use(httpx.RequestIDMiddleware())
			r.GET("/", func(c *gin.Context) {
				gotID, ok = ctxmeta.RequestIDFromContext(c.Request.Context())
				c.Status(http.StatusNoContent)
			})

			req := httptest.NewRequest(http.MethodGet, "/", http.NoBody)
			if tt.header != "" {
				req.Header.Set(httpx.HeaderRequestID, tt.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			rid := w.Header().Get(httpx.HeaderRequestID)
			if tt.generated {
				if _, err := uuid.Parse(rid); err != nil {
					t.Fatalf("X-Request-ID должен быть UUID, got=%q err=%v", rid, err)
				}
			} else if rid != tt.want {
				t.Fatalf("X-Request-ID: got=%q want=%q", rid, tt.want)
			}
			if !ok || gotID != rid {
				t.Fatalf("request id в контексте должен совпадать с заголовком: ctx=%q ok=%v header=%q", gotID, ok, rid)
			}
		})
	}
}

func TestSessionMiddleware_PutsPathIDIntoContext(t *testing.T) {
	gin.SetMode(gin.TestMode)

	var got string
	var ok bool

	r := gin.New()
	r.GET("/sessions/:id/opportunities", httpx.SessionMiddleware(), func(c *gin.Context) {
		got, ok = ctxmeta.SessionIDFromContext(c.Request.Context())
		c.Status(http.StatusNoContent)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/sessions/abc/opportunities", http.NoBody))

	if !ok || got != "abc" {
		t.Fatalf("session id: got=%q ok=%v", got, ok)
	}
}
