package usecase

import (
	"context"
	"errors"
	"net/http"

	"github.com/Gunvolt24/market_arb/internal/domain"
	"github.com/Gunvolt24/market_arb/internal/ports"
	"github.com/Gunvolt24/market_arb/pkg/validate"
)

// RequestHandler — обработка запросов сравнения из очереди: разбор, сравнение, публикация результата.
type RequestHandler struct {
	svc       ports.ComparisonService
	publisher ports.ResultPublisher
	validator *validate.RequestValidator
	log       ports.Logger
}

// NewRequestHandler — DI-конструктор.
func NewRequestHandler(
	svc ports.ComparisonService,
	publisher ports.ResultPublisher,
	validator *validate.RequestValidator,
	log ports.Logger,
) *RequestHandler {
	return &RequestHandler{svc: svc, publisher: publisher, validator: validator, log: log}
}

// HandleMessage — обработать одно сообщение (raw JSON).
// Шаги:
//  1. строгий разбор и валидация (вернёт validate.ErrInvalidRequest при проблемах);
//  2. сравнение в указанной или новой сессии;
//  3. публикация результата; постоянные ошибки сравнения публикуются в поле error;
//  4. одноразовая сессия (без session_id в запросе) очищается.
//
// Временные ошибки (хранилище, таймаут, 5xx, публикация) возвращаются: сообщение будет обработано повторно.
func (h *RequestHandler) HandleMessage(ctx context.Context, raw []byte) error {
	req, err := validate.RequestFromJSON(h.validator, raw)
	if err != nil {
		h.log.Warnf(ctx, "invalid comparison request err=%v", err)
		return err
	}

	session, ephemeral := req.SessionID, false
	if session == "" {
		session, ephemeral = h.svc.NewSession(ctx), true
	}
	if ephemeral {
		defer func() {
			if endErr := h.svc.EndSession(context.WithoutCancel(ctx), session); endErr != nil {
				h.log.Warnf(ctx, "end session failed session=%s err=%v", session, endErr)
			}
		}()
	}

	result := domain.ComparisonResult{SessionID: session, Source: req.Source, Dest: req.Dest}
	opps, err := h.svc.Compare(ctx, session, req.Source, req.Dest, req.Filter, req.Token)
	switch {
	case err == nil:
		result.Opportunities = opps
	case permanent(err):
		h.log.Warnf(ctx, "comparison failed permanently session=%s err=%v", session, err)
		result.Error = err.Error()
		result.Opportunities = []domain.Opportunity{}
	default:
		h.log.Errorf(ctx, "comparison failed session=%s err=%v", session, err)
		return err
	}

	if err := h.publisher.Publish(ctx, result); err != nil {
		h.log.Errorf(ctx, "publish result failed session=%s err=%v", session, err)
		return err
	}
	h.log.Infof(ctx, "comparison published session=%s source=%s dest=%s opportunities=%d",
		session, req.Source, req.Dest, len(result.Opportunities))
	return nil
}

// permanent — повтор того же запроса приведёт к той же ошибке.
func permanent(err error) bool {
	var authErr *domain.AuthRequiredError
	if errors.As(err, &authErr) {
		return true
	}
	var fe *domain.FetchError
	if errors.As(err, &fe) {
		return fe.Status >= http.StatusBadRequest && fe.Status < http.StatusInternalServerError &&
			fe.Status != http.StatusTooManyRequests && fe.Status != 420
	}
	return false
}
