package usecase_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/golang/mock/gomock"

	"github.com/Gunvolt24/market_arb/internal/domain"
	"github.com/Gunvolt24/market_arb/internal/ports"
	"github.com/Gunvolt24/market_arb/internal/ports/mocks"
	"github.com/Gunvolt24/market_arb/internal/staging"
	"github.com/Gunvolt24/market_arb/internal/store/memory"
	"github.com/Gunvolt24/market_arb/internal/usecase"
	"github.com/Gunvolt24/market_arb/pkg/clock"
)

type noopLogger struct{}

func (noopLogger) Infof(context.Context, string, ...any)  {}
func (noopLogger) Warnf(context.Context, string, ...any)  {}
func (noopLogger) Errorf(context.Context, string, ...any) {}

var (
	jita  = domain.Location{ID: 10000002, Kind: domain.KindRegion}
	amarr = domain.Location{ID: 10000043, Kind: domain.KindRegion}
)

// stagingFetcher — подмена оркестратора: кладёт заранее заданные заявки в хранилище.
type stagingFetcher struct {
	store  ports.ChunkStore
	orders map[domain.Location][]domain.Order
	errs   map[domain.Location]error

	mu    sync.Mutex
	calls []domain.Location
}

func (f *stagingFetcher) FetchAll(ctx context.Context, session domain.SessionID, loc domain.Location, _ string) (int, error) {
	f.mu.Lock()
	f.calls = append(f.calls, loc)
	f.mu.Unlock()

	if err := f.errs[loc]; err != nil {
		return 0, err
	}
	w := staging.NewWriter[domain.Order](f.store, session, staging.OrdersKey(loc), staging.MinChunkSize)
	if err := w.Reset(ctx); err != nil {
		return 0, err
	}
	if err := w.Write(ctx, f.orders[loc]); err != nil {
		return 0, err
	}
	return w.Written(), nil
}

func (f *stagingFetcher) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

// namingEnricher — прикрепляет имя "item-<id>".
type namingEnricher struct{}

func (namingEnricher) Enrich(_ context.Context, opps []domain.Opportunity) ([]domain.Opportunity, error) {
	out := make([]domain.Opportunity, len(opps))
	for i := range opps {
		out[i] = opps[i].WithItem(domain.ItemInfo{ItemID: opps[i].ItemID, Name: "item", GroupID: domain.Int(opps[i].ItemID)})
	}
	return out, nil
}

func marketFixture(store ports.ChunkStore) *stagingFetcher {
	return &stagingFetcher{
		store: store,
		orders: map[domain.Location][]domain.Order{
			jita: {
				{OrderID: 1, ItemID: 34, Price: 100, VolumeRemaining: 10},
				{OrderID: 2, ItemID: 34, Price: 500, VolumeRemaining: 1, IsBuyOrder: true},
				{OrderID: 3, ItemID: 35, Price: 20, VolumeRemaining: 10},
				{OrderID: 4, ItemID: 99, Price: 7, VolumeRemaining: 3},
			},
			amarr: {
				{OrderID: 5, ItemID: 34, Price: 150, VolumeRemaining: 4},
				{OrderID: 6, ItemID: 35, Price: 25, VolumeRemaining: 5},
				{OrderID: 7, ItemID: 99, Price: 1, VolumeRemaining: 1, IsBuyOrder: true},
			},
		},
		errs: map[domain.Location]error{},
	}
}

func TestCompare_EndToEnd(t *testing.T) {
	store := memory.NewChunkStore(0)
	fetcher := marketFixture(store)
	svc := usecase.NewComparisonService(store, fetcher, namingEnricher{}, noopLogger{}, 500)
	ctx := context.Background()
	session := svc.NewSession(ctx)

	cfg := domain.FilterConfiguration{MinProfit: domain.Float(0), IncludeMissingAtDestination: true}
	got, err := svc.Compare(ctx, session, jita, amarr, cfg, "")
	if err != nil {
		t.Fatalf("compare: %v", err)
	}
	if fetcher.callCount() != 2 {
		t.Fatalf("expected both locations fetched, got %d", fetcher.callCount())
	}
	if len(got) != 3 {
		t.Fatalf("want 3 opportunities, got %+v", got)
	}
	// 34: +50, 35: +5, 99: только buy-заявка в точке назначения → missing
	if got[0].ItemID != 34 || *got[0].Profit != 50 || *got[0].ProfitPercent != 50 || got[0].ItemName != "item" {
		t.Fatalf("unexpected first: %+v", got[0])
	}
	if got[1].ItemID != 35 || got[2].ItemID != 99 || got[2].Status != domain.StatusMissingAtDestination {
		t.Fatalf("unexpected order: %+v", got)
	}

	page, err := svc.Opportunities(ctx, session, jita, amarr, 1, 1)
	if err != nil {
		t.Fatalf("opportunities: %v", err)
	}
	if len(page) != 1 || page[0].ItemID != 35 {
		t.Fatalf("unexpected page: %+v", page)
	}
}

func TestRecalculate_NoRefetch(t *testing.T) {
	store := memory.NewChunkStore(0)
	fetcher := marketFixture(store)
	svc := usecase.NewComparisonService(store, fetcher, namingEnricher{}, noopLogger{}, 500)
	ctx := context.Background()
	session := svc.NewSession(ctx)

	if _, err := svc.Compare(ctx, session, jita, amarr, domain.FilterConfiguration{}, ""); err != nil {
		t.Fatalf("compare: %v", err)
	}
	calls := fetcher.callCount()

	got, err := svc.Recalculate(ctx, session, jita, amarr, domain.FilterConfiguration{MinProfit: domain.Float(10)})
	if err != nil {
		t.Fatalf("recalculate: %v", err)
	}
	if fetcher.callCount() != calls {
		t.Fatalf("recalculate must not fetch")
	}
	if len(got) != 1 || got[0].ItemID != 34 {
		t.Fatalf("unexpected: %+v", got)
	}

	stored, err := svc.Opportunities(ctx, session, jita, amarr, 0, 0)
	if err != nil || len(stored) != 1 {
		t.Fatalf("stored result not replaced: %+v err=%v", stored, err)
	}
}

func TestCompare_FetchErrorPropagated(t *testing.T) {
	store := memory.NewChunkStore(0)
	fetcher := marketFixture(store)
	fetcher.errs[amarr] = &domain.FetchError{LocationID: amarr.ID, Page: 2, Status: 503}
	svc := usecase.NewComparisonService(store, fetcher, namingEnricher{}, noopLogger{}, 500)
	ctx := context.Background()

	_, err := svc.Compare(ctx, svc.NewSession(ctx), jita, amarr, domain.FilterConfiguration{}, "")
	var fe *domain.FetchError
	if !errors.As(err, &fe) || fe.Status != 503 {
		t.Fatalf("want FetchError 503, got %v", err)
	}
}

func TestEndSession_ClearsData(t *testing.T) {
	store := memory.NewChunkStore(0)
	svc := usecase.NewComparisonService(store, marketFixture(store), namingEnricher{}, noopLogger{}, 500)
	ctx := context.Background()
	session := svc.NewSession(ctx)

	if _, err := svc.Compare(ctx, session, jita, amarr, domain.FilterConfiguration{}, ""); err != nil {
		t.Fatalf("compare: %v", err)
	}
	if err := svc.EndSession(ctx, session); err != nil {
		t.Fatalf("end session: %v", err)
	}
	if store.Len() != 0 {
		t.Fatalf("chunks left after EndSession: %d", store.Len())
	}
	got, err := svc.Opportunities(ctx, session, jita, amarr, 10, 0)
	if err != nil || len(got) != 0 {
		t.Fatalf("want empty, got %+v err=%v", got, err)
	}
}

func TestSessionRequired(t *testing.T) {
	store := memory.NewChunkStore(0)
	svc := usecase.NewComparisonService(store, marketFixture(store), namingEnricher{}, noopLogger{}, 500)
	ctx := context.Background()

	if _, err := svc.FetchLocation(ctx, "", jita, ""); !errors.Is(err, domain.ErrSessionRequired) {
		t.Fatalf("fetch: %v", err)
	}
	if _, err := svc.Recalculate(ctx, "", jita, amarr, domain.FilterConfiguration{}); !errors.Is(err, domain.ErrSessionRequired) {
		t.Fatalf("recalculate: %v", err)
	}
	if err := svc.EndSession(ctx, ""); !errors.Is(err, domain.ErrSessionRequired) {
		t.Fatalf("end: %v", err)
	}
}

func TestRecalculate_StorageErrorPropagated(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mocks.NewMockChunkStore(ctrl)
	storeErr := &domain.StorageError{Op: "get", Err: errors.New("connection refused")}
	store.EXPECT().GetChunks(gomock.Any(), gomock.Any(), staging.OrdersKey(jita)).Return(nil, storeErr)

	svc := usecase.NewComparisonService(store, &stagingFetcher{}, namingEnricher{}, noopLogger{}, 500)
	_, err := svc.Recalculate(context.Background(), domain.NewSessionID(), jita, amarr, domain.FilterConfiguration{})

	var se *domain.StorageError
	if !errors.As(err, &se) || se != storeErr {
		t.Fatalf("want the original StorageError, got %v", err)
	}
}

func TestSweeper_RemovesExpired(t *testing.T) {
	fc := clock.NewFake(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	store := memory.NewChunkStore(0, memory.WithClock(fc))
	ctx := context.Background()

	if err := store.PutChunk(ctx, "old", "orders:region:1", 0, []byte("[]")); err != nil {
		t.Fatalf("put: %v", err)
	}
	fc.Advance(23 * time.Hour)
	if err := store.PutChunk(ctx, "fresh", "orders:region:1", 0, []byte("[]")); err != nil {
		t.Fatalf("put: %v", err)
	}
	fc.Advance(2 * time.Hour)

	sw := usecase.NewSweeper(store, noopLogger{}, 24*time.Hour, time.Hour, fc)
	n, err := sw.SweepOnce(ctx)
	if err != nil || n != 1 {
		t.Fatalf("want 1 swept, got %d err=%v", n, err)
	}
	if store.Len() != 1 {
		t.Fatalf("fresh chunk must survive, len=%d", store.Len())
	}
}

func TestOpportunities_SortedAcrossChunks(t *testing.T) {
	const items = 1000
	store := memory.NewChunkStore(0)
	fetcher := &stagingFetcher{store: store, orders: map[domain.Location][]domain.Order{}, errs: map[domain.Location]error{}}
	for i := 1; i <= items; i++ {
		id := int64(i)
		fetcher.orders[jita] = append(fetcher.orders[jita],
			domain.Order{OrderID: id, ItemID: id, Price: 1000, VolumeRemaining: 1})
		fetcher.orders[amarr] = append(fetcher.orders[amarr],
			domain.Order{OrderID: items + id, ItemID: id, Price: 1000 + float64(i), VolumeRemaining: 1})
	}
	// 100 на чанк → результат лежит в 10 чанках
	svc := usecase.NewComparisonService(store, fetcher, namingEnricher{}, noopLogger{}, 100)
	ctx := context.Background()
	session := svc.NewSession(ctx)

	if _, err := svc.Compare(ctx, session, jita, amarr, domain.FilterConfiguration{}, ""); err != nil {
		t.Fatalf("compare: %v", err)
	}

	for read := 0; read < 20; read++ {
		top, err := svc.Opportunities(ctx, session, jita, amarr, 10, 0)
		if err != nil {
			t.Fatalf("opportunities: %v", err)
		}
		if len(top) != 10 || top[0].ItemID != items || top[9].ItemID != items-9 {
			t.Fatalf("read %d: top page not ordered by profit: first=%d last=%d", read, top[0].ItemID, top[len(top)-1].ItemID)
		}
	}

	seen := make(map[int64]bool, items)
	prev := int64(items + 1)
	for offset := 0; offset < items; offset += 10 {
		pg, err := svc.Opportunities(ctx, session, jita, amarr, 10, offset)
		if err != nil {
			t.Fatalf("offset %d: %v", offset, err)
		}
		for _, o := range pg {
			if seen[o.ItemID] || o.ItemID >= prev {
				t.Fatalf("offset %d: item %d repeated or out of order (prev %d)", offset, o.ItemID, prev)
			}
			seen[o.ItemID] = true
			prev = o.ItemID
		}
	}
	if len(seen) != items {
		t.Fatalf("paging covered %d of %d items", len(seen), items)
	}
}
