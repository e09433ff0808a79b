package rest

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Gunvolt24/market_arb/internal/domain"
	"github.com/Gunvolt24/market_arb/pkg/validate"
)

// StatusFor — HTTP-статус для доменной ошибки.
func StatusFor(err error) int {
	var (
		authErr  *domain.AuthRequiredError
		busyErr  *domain.AlreadyFetchingError
		fetchErr *domain.FetchError
		storeErr *domain.StorageError
	)
	switch {
	case errors.Is(err, validate.ErrInvalidRequest), errors.Is(err, domain.ErrSessionRequired):
		return http.StatusBadRequest
	case errors.As(err, &authErr):
		return http.StatusUnauthorized
	case errors.As(err, &busyErr):
		return http.StatusConflict
	case errors.As(err, &fetchErr):
		return http.StatusBadGateway
	case errors.As(err, &storeErr):
		return http.StatusServiceUnavailable
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

// writeError — JSON {"error": ...}; детали внутренних ошибок наружу не отдаются.
func (h *Handler) writeError(c *gin.Context, op string, err error) {
	status := StatusFor(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		h.log.Errorf(c.Request.Context(), "%s failed err=%v", op, err)
		msg = "internal server error"
	} else {
		h.log.Warnf(c.Request.Context(), "%s failed status=%d err=%v", op, status, err)
	}
	c.JSON(status, gin.H{"error": msg})
}
