// Пакет fetch — оркестратор постраничной загрузки стакана локации во временное хранилище.
package fetch

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/time/rate"

	"github.com/Gunvolt24/market_arb/internal/auth"
	"github.com/Gunvolt24/market_arb/internal/domain"
	"github.com/Gunvolt24/market_arb/internal/ports"
	"github.com/Gunvolt24/market_arb/internal/staging"
	"github.com/Gunvolt24/market_arb/pkg/clock"
	"github.com/Gunvolt24/market_arb/pkg/metrics"
	"github.com/Gunvolt24/market_arb/pkg/telemetry"
)

// NewRequestLimiter — фиксированный интервал между запросами к API (nil при interval <= 0).
func NewRequestLimiter(interval time.Duration) *rate.Limiter {
	if interval <= 0 {
		return nil
	}
	return rate.NewLimiter(rate.Every(interval), 1)
}

// Config — параметры оркестратора.
type Config struct {
	Policy PagePolicy
	// RequestInterval — минимальный интервал между запросами (0 — без паузы).
	RequestInterval time.Duration
	// Limiter — общий с клиентом метаданных лимитер; если задан, RequestInterval не используется.
	Limiter   *rate.Limiter
	ChunkSize int
	// Stations — таблица station → region; nil — DefaultStations().
	Stations map[int64]int64
	Clock    clock.Clock
	// OnPage — наблюдатель за сохранёнными страницами (прогресс, потоковое чтение).
	OnPage func(ctx context.Context, page domain.OrderPage)
}

// Orchestrator — полная загрузка стакана локации: страницы строго по возрастанию,
// каждая сохраняется сразу после получения.
type Orchestrator struct {
	api   ports.OrderBookAPI
	store ports.ChunkStore
	log   ports.Logger

	policy    PagePolicy
	limiter   *rate.Limiter
	chunkSize int
	stations  map[int64]int64
	clock     clock.Clock
	onPage    func(ctx context.Context, page domain.OrderPage)

	locks  *keyLocks
	tracer trace.Tracer
}

func NewOrchestrator(api ports.OrderBookAPI, store ports.ChunkStore, log ports.Logger, cfg Config) *Orchestrator {
	if cfg.Clock == nil {
		cfg.Clock = clock.Real{}
	}
	if cfg.Stations == nil {
		cfg.Stations = DefaultStations()
	}
	limiter := cfg.Limiter
	if limiter == nil {
		limiter = NewRequestLimiter(cfg.RequestInterval)
	}
	return &Orchestrator{
		api:       api,
		store:     store,
		log:       log,
		policy:    cfg.Policy.withDefaults(),
		limiter:   limiter,
		chunkSize: staging.ClampChunkSize(cfg.ChunkSize),
		stations:  cfg.Stations,
		clock:     cfg.Clock,
		onPage:    cfg.OnPage,
		locks:     newKeyLocks(),
		tracer:    telemetry.Tracer("fetch"),
	}
}

// target — куда реально ходить за страницами и какой станцией фильтровать результат.
type target struct {
	api     domain.Location
	station int64
	token   string
}

func (o *Orchestrator) resolve(loc domain.Location, token string) (target, error) {
	switch loc.Kind {
	case domain.KindRegion:
		return target{api: loc}, nil
	case domain.KindStructure:
		if err := auth.ValidateToken(token); err != nil {
			return target{}, err
		}
		return target{api: loc, token: token}, nil
	case domain.KindStation:
		region, ok := o.stations[loc.ID]
		if !ok {
			return target{}, &domain.FetchError{LocationID: loc.ID, Page: 0, Status: 404, Err: ErrUnknownStation}
		}
		return target{api: domain.Location{ID: region, Kind: domain.KindRegion}, station: loc.ID}, nil
	default:
		return target{}, &domain.FetchError{LocationID: loc.ID, Page: 0, Status: 400, Err: fmt.Errorf("%w %q", ErrUnknownKind, loc.Kind)}
	}
}

// FetchAll — загрузить все страницы локации в сессию; возвращает число сохранённых заявок.
// Повторная загрузка той же локации заменяет ранее сохранённые страницы.
// Ошибки домена возвращаются без обёрток; уже сохранённые страницы остаются в хранилище.
func (o *Orchestrator) FetchAll(ctx context.Context, session domain.SessionID, loc domain.Location, token string) (int, error) {
	tgt, err := o.resolve(loc, token)
	if err != nil {
		return 0, err
	}

	release, err := o.locks.acquire(loc.Key())
	if err != nil {
		return 0, err
	}
	defer release()

	ctx, span := o.tracer.Start(ctx, "fetch.FetchAll", trace.WithAttributes(
		attribute.String("location", loc.Key()),
		attribute.String("session", session.String()),
	))
	defer span.End()

	count, pages, err := o.run(ctx, session, loc, tgt)
	span.SetAttributes(attribute.Int("orders", count), attribute.Int("pages", pages))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		o.log.Errorf(ctx, "fetch %s failed after %d pages (%d orders staged): %v", loc, pages, count, err)
		return count, err
	}
	o.log.Infof(ctx, "fetch %s done: %d pages, %d orders staged", loc, pages, count)
	return count, nil
}

func (o *Orchestrator) run(ctx context.Context, session domain.SessionID, loc domain.Location, tgt target) (int, int, error) {
	w := staging.NewWriter[domain.Order](o.store, session, staging.OrdersKey(loc), o.chunkSize)
	if err := w.Reset(ctx); err != nil {
		return 0, 0, err
	}

	kind := string(loc.Kind)
	st := LoopState{Page: 1}
	pages := 0

	for {
		if err := ctx.Err(); err != nil {
			return w.Written(), pages, err
		}
		if err := o.throttle(ctx); err != nil {
			return w.Written(), pages, err
		}

		// начатый запрос страницы доводится до конца даже при отмене
		resp, err := o.api.FetchOrdersPage(context.WithoutCancel(ctx), tgt.api, st.Page, tgt.token)
		if err != nil {
			metrics.FetchPages.WithLabelValues(kind, "error").Inc()
			return w.Written(), pages, &domain.FetchError{LocationID: loc.ID, Page: st.Page, Status: 0, Err: err}
		}

		step := o.policy.Next(&st, resp)
		switch step.Action {
		case ActionRetry:
			metrics.FetchPages.WithLabelValues(kind, "rate_limited").Inc()
			metrics.RateLimitWaitSeconds.Add(step.Delay.Seconds())
			o.log.Warnf(ctx, "fetch %s page %d: %s (status %d), retrying in %s",
				loc, st.Page, step.Reason, resp.Status, step.Delay)
			if err := o.clock.Sleep(ctx, step.Delay); err != nil {
				return w.Written(), pages, err
			}
			continue

		case ActionFail:
			metrics.FetchPages.WithLabelValues(kind, "error").Inc()
			return w.Written(), pages, &domain.FetchError{LocationID: loc.ID, Page: st.Page, Status: resp.Status, Err: step.Err}

		case ActionStop:
			if step.Warn {
				metrics.FetchPages.WithLabelValues(kind, "empty").Inc()
				o.log.Warnf(ctx, "fetch %s stopped at page %d: %s", loc, st.Page, step.Reason)
			} else {
				metrics.FetchPages.WithLabelValues(kind, "end").Inc()
			}
			return w.Written(), pages, nil

		case ActionSkip:
			metrics.FetchPages.WithLabelValues(kind, "empty").Inc()

		case ActionStage:
			metrics.FetchPages.WithLabelValues(kind, "data").Inc()
			orders := resp.Orders
			if tgt.station != 0 {
				orders = onlyStation(orders, tgt.station)
			}
			if err := w.Write(ctx, orders); err != nil {
				return w.Written(), pages, err
			}
			metrics.OrdersStaged.WithLabelValues(kind).Add(float64(len(orders)))
			if o.onPage != nil {
				o.onPage(ctx, domain.OrderPage{SessionID: session, LocationID: loc.ID, PageIndex: st.Page, Orders: orders})
			}
		}
		pages++

		if pause := o.policy.Pause(resp); pause > 0 {
			o.log.Warnf(ctx, "fetch %s: error limit remain %d, pausing %s", loc, resp.ErrorLimitRemain, pause)
			if err := o.clock.Sleep(ctx, pause); err != nil {
				return w.Written(), pages, err
			}
		}

		if done, stop := o.policy.Done(&st); done {
			if stop.Warn {
				o.log.Warnf(ctx, "fetch %s stopped at page %d: %s", loc, st.Page, stop.Reason)
			}
			return w.Written(), pages, nil
		}
		st.Page++
	}
}

// throttle — фиксированная пауза между запросами; время берётся из clock, чтобы тесты не спали.
func (o *Orchestrator) throttle(ctx context.Context) error {
	if o.limiter == nil {
		return nil
	}
	now := o.clock.Now()
	r := o.limiter.ReserveN(now, 1)
	if !r.OK() {
		return nil
	}
	delay := r.DelayFrom(now)
	if delay <= 0 {
		return nil
	}
	return o.clock.Sleep(ctx, delay)
}

// Busy — идёт ли сейчас загрузка локации.
func (o *Orchestrator) Busy(loc domain.Location) bool {
	return o.locks.held(loc.Key())
}

func onlyStation(orders []domain.Order, station int64) []domain.Order {
	out := make([]domain.Order, 0, len(orders))
	for i := range orders {
		if orders[i].LocationID == station {
			out = append(out, orders[i])
		}
	}
	return out
}
