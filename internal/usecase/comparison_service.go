package usecase

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/Gunvolt24/market_arb/internal/calc"
	"github.com/Gunvolt24/market_arb/internal/domain"
	"github.com/Gunvolt24/market_arb/internal/filter"
	"github.com/Gunvolt24/market_arb/internal/ports"
	"github.com/Gunvolt24/market_arb/internal/staging"
	"github.com/Gunvolt24/market_arb/pkg/metrics"
	"github.com/Gunvolt24/market_arb/pkg/telemetry"
)

// Fetcher — полная постраничная загрузка стакана локации во временное хранилище.
type Fetcher interface {
	FetchAll(ctx context.Context, session domain.SessionID, loc domain.Location, token string) (int, error)
}

// Enricher — прикрепление метаданных предметов к возможностям.
type Enricher interface {
	Enrich(ctx context.Context, opps []domain.Opportunity) ([]domain.Opportunity, error)
}

// ComparisonService — прикладная логика сравнения рынков (без знаний о транспорте).
type ComparisonService struct {
	store     ports.ChunkStore // временное хранилище сессии
	fetcher   Fetcher
	enricher  Enricher
	log       ports.Logger
	chunkSize int
	tracer    trace.Tracer
}

var _ ports.ComparisonService = (*ComparisonService)(nil)

// NewComparisonService — DI-конструктор.
func NewComparisonService(
	store ports.ChunkStore,
	fetcher Fetcher,
	enricher Enricher,
	log ports.Logger,
	chunkSize int,
) *ComparisonService {
	return &ComparisonService{
		store:     store,
		fetcher:   fetcher,
		enricher:  enricher,
		log:       log,
		chunkSize: staging.ClampChunkSize(chunkSize),
		tracer:    telemetry.Tracer("usecase"),
	}
}

// NewSession — новый явный идентификатор сессии.
func (s *ComparisonService) NewSession(ctx context.Context) domain.SessionID {
	id := domain.NewSessionID()
	s.log.Infof(ctx, "session started session=%s", id)
	return id
}

// EndSession — удалить все данные сессии из временного хранилища.
func (s *ComparisonService) EndSession(ctx context.Context, session domain.SessionID) error {
	if session == "" {
		return domain.ErrSessionRequired
	}
	if err := s.store.ClearSession(ctx, session); err != nil {
		s.log.Errorf(ctx, "clear session failed session=%s err=%v", session, err)
		return err
	}
	s.log.Infof(ctx, "session cleared session=%s", session)
	return nil
}

// FetchLocation — проксирование в оркестратор; ошибки не переоборачиваются.
func (s *ComparisonService) FetchLocation(
	ctx context.Context,
	session domain.SessionID,
	loc domain.Location,
	token string,
) (int, error) {
	if session == "" {
		return 0, domain.ErrSessionRequired
	}
	return s.fetcher.FetchAll(ctx, session, loc, token)
}

// Recalculate — расчёт по уже загруженным заявкам обеих локаций:
//  1. чтение sell-заявок из хранилища;
//  2. Calculate с профит-фильтрами;
//  3. обогащение метаданными;
//  4. остальные фильтры и сортировка;
//  5. сохранение результата под ключом opportunities:<src>:<dst>.
func (s *ComparisonService) Recalculate(
	ctx context.Context,
	session domain.SessionID,
	source, dest domain.Location,
	cfg domain.FilterConfiguration,
) ([]domain.Opportunity, error) {
	if session == "" {
		return nil, domain.ErrSessionRequired
	}

	ctx, span := s.tracer.Start(ctx, "usecase.Recalculate", trace.WithAttributes(
		attribute.String("session", session.String()),
		attribute.String("source", source.Key()),
		attribute.String("dest", dest.Key()),
	))
	defer span.End()

	start := time.Now()
	sourceOrders, err := staging.GetAll[domain.Order](ctx, s.store, session, staging.OrdersKey(source))
	if err != nil {
		return nil, s.fail(ctx, span, "read source orders", err)
	}
	destOrders, err := staging.GetAll[domain.Order](ctx, s.store, session, staging.OrdersKey(dest))
	if err != nil {
		return nil, s.fail(ctx, span, "read dest orders", err)
	}

	opps := calc.Calculate(domain.SellOrders(sourceOrders), domain.SellOrders(destOrders), cfg)

	enriched, err := s.enricher.Enrich(ctx, opps)
	if err != nil {
		return nil, s.fail(ctx, span, "enrich", err)
	}

	result := filter.Apply(enriched, cfg)

	w := staging.NewWriter[domain.Opportunity](s.store, session, staging.OpportunitiesKey(source, dest), s.chunkSize)
	if err := w.Reset(ctx); err != nil {
		return nil, s.fail(ctx, span, "reset opportunities", err)
	}
	if err := w.Write(ctx, result); err != nil {
		return nil, s.fail(ctx, span, "stage opportunities", err)
	}

	for i := range result {
		metrics.OpportunitiesProduced.WithLabelValues(string(result[i].Status)).Inc()
	}
	span.SetAttributes(attribute.Int("opportunities", len(result)))
	s.log.Infof(ctx, "recalculated session=%s source=%s dest=%s source_orders=%d dest_orders=%d opportunities=%d took=%s",
		session, source, dest, len(sourceOrders), len(destOrders), len(result), time.Since(start))
	return result, nil
}

// Compare — параллельная перезагрузка обеих локаций и пересчёт.
// Ошибка любой загрузки прерывает вторую между страницами и возвращается как есть.
func (s *ComparisonService) Compare(
	ctx context.Context,
	session domain.SessionID,
	source, dest domain.Location,
	cfg domain.FilterConfiguration,
	token string,
) ([]domain.Opportunity, error) {
	if session == "" {
		return nil, domain.ErrSessionRequired
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		_, err := s.fetcher.FetchAll(gctx, session, source, token)
		return err
	})
	if dest != source {
		g.Go(func() error {
			_, err := s.fetcher.FetchAll(gctx, session, dest, token)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		s.log.Warnf(ctx, "compare fetch failed session=%s source=%s dest=%s err=%v", session, source, dest, err)
		return nil, err
	}

	return s.Recalculate(ctx, session, source, dest, cfg)
}

// Opportunities — страница последнего сохранённого результата.
// Чанки читаются в произвольном порядке, поэтому результат сортируется заново перед limit/offset.
// limit <= 0 — без ограничения.
func (s *ComparisonService) Opportunities(
	ctx context.Context,
	session domain.SessionID,
	source, dest domain.Location,
	limit, offset int,
) ([]domain.Opportunity, error) {
	if session == "" {
		return nil, domain.ErrSessionRequired
	}
	all, err := staging.GetAll[domain.Opportunity](ctx, s.store, session, staging.OpportunitiesKey(source, dest))
	if err != nil {
		s.log.Errorf(ctx, "read opportunities failed session=%s err=%v", session, err)
		return nil, err
	}
	filter.Sort(all)
	return page(all, limit, offset), nil
}

func (s *ComparisonService) fail(ctx context.Context, span trace.Span, step string, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, step)
	s.log.Errorf(ctx, "recalculate: %s failed err=%v", step, err)
	return err
}

func page[T any](items []T, limit, offset int) []T {
	if offset < 0 {
		offset = 0
	}
	if offset >= len(items) {
		return []T{}
	}
	items = items[offset:]
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}
