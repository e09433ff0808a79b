package calc

import (
	"context"
	"sort"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/Gunvolt24/market_arb/internal/domain"
	"github.com/Gunvolt24/market_arb/pkg/clock"
	"github.com/Gunvolt24/market_arb/pkg/telemetry"
)

// ItemLookup — источник метаданных, который сам превращает сбои в заглушки.
type ItemLookup interface {
	Lookup(ctx context.Context, itemID int64) domain.ItemInfo
}

// EnrichConfig — размер пачки, пауза между пачками и параллелизм внутри пачки.
type EnrichConfig struct {
	BatchSize  int
	BatchDelay time.Duration
	Workers    int
	Clock      clock.Clock
}

// Enricher — пакетное обогащение возможностей метаданными предметов.
type Enricher struct {
	items  ItemLookup
	cfg    EnrichConfig
	tracer trace.Tracer
}

func NewEnricher(items ItemLookup, cfg EnrichConfig) *Enricher {
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 50
	}
	if cfg.Workers <= 0 {
		cfg.Workers = 8
	}
	if cfg.Clock == nil {
		cfg.Clock = clock.Real{}
	}
	return &Enricher{items: items, cfg: cfg, tracer: telemetry.Tracer("calc")}
}

// Enrich — новая последовательность с прикреплёнными метаданными; вход не меняется.
// Каждый различный ItemID запрашивается один раз. Ошибка возможна только при отмене контекста.
func (e *Enricher) Enrich(ctx context.Context, opps []domain.Opportunity) ([]domain.Opportunity, error) {
	ids := distinctItems(opps)

	ctx, span := e.tracer.Start(ctx, "calc.Enrich", trace.WithAttributes(
		attribute.Int("items", len(ids)),
	))
	defer span.End()

	infos := make(map[int64]domain.ItemInfo, len(ids))
	for start := 0; start < len(ids); start += e.cfg.BatchSize {
		if start > 0 && e.cfg.BatchDelay > 0 {
			if err := e.cfg.Clock.Sleep(ctx, e.cfg.BatchDelay); err != nil {
				return nil, err
			}
		}
		batch := ids[start:min(start+e.cfg.BatchSize, len(ids))]
		results, err := e.lookupBatch(ctx, batch)
		if err != nil {
			return nil, err
		}
		for i, id := range batch {
			infos[id] = results[i]
		}
	}

	out := make([]domain.Opportunity, len(opps))
	for i := range opps {
		out[i] = opps[i].WithItem(infos[opps[i].ItemID])
	}
	return out, nil
}

func (e *Enricher) lookupBatch(ctx context.Context, batch []int64) ([]domain.ItemInfo, error) {
	results := make([]domain.ItemInfo, len(batch))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.cfg.Workers)
	for i, id := range batch {
		i, id := i, id
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = e.items.Lookup(gctx, id)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func distinctItems(opps []domain.Opportunity) []int64 {
	seen := make(map[int64]struct{}, len(opps))
	ids := make([]int64, 0, len(opps))
	for i := range opps {
		if _, ok := seen[opps[i].ItemID]; ok {
			continue
		}
		seen[opps[i].ItemID] = struct{}{}
		ids = append(ids, opps[i].ItemID)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
