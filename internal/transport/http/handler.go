package rest

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Gunvolt24/market_arb/internal/domain"
	"github.com/Gunvolt24/market_arb/internal/ports"
	"github.com/Gunvolt24/market_arb/pkg/httpx"
	"github.com/Gunvolt24/market_arb/pkg/validate"
)

const (
	defaultLimit = 100
	maxLimit     = 1000
)

// Handler — HTTP-обработчики поверх ComparisonService.
type Handler struct {
	service   ports.ComparisonService
	validator *validate.RequestValidator
	log       ports.Logger
	timeout   time.Duration
}

// NewHandler — timeout <= 0 означает «без собственного таймаута».
func NewHandler(service ports.ComparisonService, validator *validate.RequestValidator, log ports.Logger, timeout time.Duration) *Handler {
	return &Handler{service: service, validator: validator, log: log, timeout: timeout}
}

type fetchRequest struct {
	Location domain.Location `json:"location"`
	Token    string          `json:"token,omitempty"`
}

type fetchResponse struct {
	Location domain.Location `json:"location"`
	Orders   int             `json:"orders"`
}

type opportunitiesResponse struct {
	SessionID     domain.SessionID     `json:"session_id"`
	Count         int                  `json:"count"`
	Opportunities []domain.Opportunity `json:"opportunities"`
}

func (h *Handler) ctx(c *gin.Context) (context.Context, context.CancelFunc) {
	if h.timeout > 0 {
		return context.WithTimeout(c.Request.Context(), h.timeout)
	}
	return context.WithCancel(c.Request.Context())
}

func (h *Handler) newSession(c *gin.Context) {
	id := h.service.NewSession(c.Request.Context())
	c.JSON(http.StatusCreated, gin.H{"session_id": id})
}

func (h *Handler) endSession(c *gin.Context) {
	session, err := domain.ParseSessionID(c.Param("id"))
	if err != nil {
		h.writeError(c, "end session", err)
		return
	}
	if err := h.service.EndSession(c.Request.Context(), session); err != nil {
		h.writeError(c, "end session", err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) fetchLocation(c *gin.Context) {
	session, err := domain.ParseSessionID(c.Param("id"))
	if err != nil {
		h.writeError(c, "fetch", err)
		return
	}

	var req fetchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeError(c, "fetch", fmt.Errorf("%w: %v", validate.ErrInvalidRequest, err))
		return
	}
	if err := h.validator.ValidateLocation(&req.Location); err != nil {
		h.writeError(c, "fetch", err)
		return
	}
	token := req.Token
	if token == "" {
		token = httpx.BearerToken(c)
	}

	ctx, cancel := h.ctx(c)
	defer cancel()

	n, err := h.service.FetchLocation(ctx, session, req.Location, token)
	if err != nil {
		h.writeError(c, "fetch", err)
		return
	}
	c.JSON(http.StatusOK, fetchResponse{Location: req.Location, Orders: n})
}

// comparisonRequest — тело recalculate/compare; сессия берётся из пути.
func (h *Handler) comparisonRequest(c *gin.Context) (domain.SessionID, *domain.ComparisonRequest, error) {
	session, err := domain.ParseSessionID(c.Param("id"))
	if err != nil {
		return "", nil, err
	}
	raw, err := io.ReadAll(c.Request.Body)
	if err != nil {
		return "", nil, fmt.Errorf("%w: read body: %v", validate.ErrInvalidRequest, err)
	}
	req, err := validate.RequestFromJSON(h.validator, raw)
	if err != nil {
		return "", nil, err
	}
	if req.SessionID != "" && req.SessionID != session {
		return "", nil, fmt.Errorf("%w: session_id in body does not match path", validate.ErrInvalidRequest)
	}
	if req.Token == "" {
		req.Token = httpx.BearerToken(c)
	}
	return session, req, nil
}

func (h *Handler) recalculate(c *gin.Context) {
	session, req, err := h.comparisonRequest(c)
	if err != nil {
		h.writeError(c, "recalculate", err)
		return
	}

	ctx, cancel := h.ctx(c)
	defer cancel()

	opps, err := h.service.Recalculate(ctx, session, req.Source, req.Dest, req.Filter)
	if err != nil {
		h.writeError(c, "recalculate", err)
		return
	}
	c.JSON(http.StatusOK, opportunitiesResponse{SessionID: session, Count: len(opps), Opportunities: opps})
}

func (h *Handler) compare(c *gin.Context) {
	session, req, err := h.comparisonRequest(c)
	if err != nil {
		h.writeError(c, "compare", err)
		return
	}

	ctx, cancel := h.ctx(c)
	defer cancel()

	opps, err := h.service.Compare(ctx, session, req.Source, req.Dest, req.Filter, req.Token)
	if err != nil {
		h.writeError(c, "compare", err)
		return
	}
	c.JSON(http.StatusOK, opportunitiesResponse{SessionID: session, Count: len(opps), Opportunities: opps})
}

func (h *Handler) opportunities(c *gin.Context) {
	session, err := domain.ParseSessionID(c.Param("id"))
	if err != nil {
		h.writeError(c, "opportunities", err)
		return
	}
	source, err := httpx.ParseLocation(c, "source")
	if err != nil {
		h.writeError(c, "opportunities", fmt.Errorf("%w: %v", validate.ErrInvalidRequest, err))
		return
	}
	dest, err := httpx.ParseLocation(c, "dest")
	if err != nil {
		h.writeError(c, "opportunities", fmt.Errorf("%w: %v", validate.ErrInvalidRequest, err))
		return
	}
	limit, offset := httpx.ParseLimitOffset(c, defaultLimit, maxLimit)

	opps, err := h.service.Opportunities(c.Request.Context(), session, source, dest, limit, offset)
	if err != nil {
		h.writeError(c, "opportunities", err)
		return
	}
	c.JSON(http.StatusOK, opportunitiesResponse{SessionID: session, Count: len(opps), Opportunities: opps})
}
