package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/Gunvolt24/market_arb/config"
	cachemem "github.com/Gunvolt24/market_arb/internal/cache/memory"
	"github.com/Gunvolt24/market_arb/internal/calc"
	"github.com/Gunvolt24/market_arb/internal/catalog"
	"github.com/Gunvolt24/market_arb/internal/esi"
	"github.com/Gunvolt24/market_arb/internal/fetch"
	"github.com/Gunvolt24/market_arb/internal/ports"
	"github.com/Gunvolt24/market_arb/internal/repo/postgres"
	storemem "github.com/Gunvolt24/market_arb/internal/store/memory"
	"github.com/Gunvolt24/market_arb/internal/usecase"
	"github.com/Gunvolt24/market_arb/pkg/clock"
)

// Pipeline — доменный слой, общий для сервера и CLI.
type Pipeline struct {
	Store   ports.ChunkStore
	Catalog *catalog.Catalog
	Fetcher *fetch.Orchestrator
	Service *usecase.ComparisonService
}

// NewPipeline — сборка загрузки, расчёта и обогащения поверх готового хранилища.
func NewPipeline(cfg *config.Config, store ports.ChunkStore, log ports.Logger, clk clock.Clock) *Pipeline {
	if clk == nil {
		clk = clock.Real{}
	}

	// один лимитер на все запросы к ESI: страницы стакана и метаданные предметов
	limiter := fetch.NewRequestLimiter(cfg.ESI.RequestInterval)

	api := esi.NewClient(esi.Config{
		BaseURL:   cfg.ESI.BaseURL,
		UserAgent: cfg.ESI.UserAgent,
		Timeout:   cfg.ESI.Timeout,
		Limiter:   limiter,
	})

	items := catalog.New(
		cachemem.NewLRUCacheTTL(cfg.Cache.Capacity, clk),
		api, log, cfg.Cache.TTL, cfg.Cache.PlaceholderTTL,
	)

	orchestrator := fetch.NewOrchestrator(api, store, log, fetch.Config{
		Policy: fetch.PagePolicy{
			MaxPages:            cfg.ESI.MaxPages,
			MaxConsecutiveEmpty: cfg.ESI.MaxEmptyPages,
			MaxRateLimitRetries: cfg.ESI.MaxRateLimitRetries,
			DefaultResetDelay:   cfg.ESI.DefaultResetDelay,
			ErrorLimitFloor:     cfg.ESI.ErrorLimitFloor,
		},
		Limiter:   limiter,
		ChunkSize: cfg.Store.ChunkSize,
		Clock:     clk,
	})

	enricher := calc.NewEnricher(items, calc.EnrichConfig{
		BatchSize:  cfg.Enrich.BatchSize,
		BatchDelay: cfg.Enrich.BatchDelay,
		Workers:    cfg.Enrich.Workers,
		Clock:      clk,
	})

	return &Pipeline{
		Store:   store,
		Catalog: items,
		Fetcher: orchestrator,
		Service: usecase.NewComparisonService(store, orchestrator, enricher, log, cfg.Store.ChunkSize),
	}
}

// OpenStore — временное хранилище по cfg.Store.Backend (memory | postgres).
// Для postgres перед открытием пула применяются миграции.
func OpenStore(ctx context.Context, cfg *config.Config, log ports.Logger, clk clock.Clock) (ports.ChunkStore, func(), error) {
	if clk == nil {
		clk = clock.Real{}
	}
	switch strings.ToLower(strings.TrimSpace(cfg.Store.Backend)) {
	case "", "memory":
		log.Infof(ctx, "staging store: memory max_chunks=%d", cfg.Store.MaxChunks)
		return storemem.NewChunkStore(cfg.Store.MaxChunks, storemem.WithClock(clk)), func() {}, nil

	case "postgres":
		if err := postgres.Migrate(ctx, cfg.Postgres.DSN); err != nil {
			return nil, func() {}, fmt.Errorf("migrate staging store: %w", err)
		}
		pool, err := postgres.NewPool(ctx, cfg.Postgres.DSN, cfg.Postgres.MaxConns)
		if err != nil {
			return nil, func() {}, err
		}
		log.Infof(ctx, "staging store: postgres max_conns=%d", cfg.Postgres.MaxConns)
		return postgres.NewChunkStore(pool), pool.Close, nil

	default:
		return nil, func() {}, fmt.Errorf("unknown store backend %q", cfg.Store.Backend)
	}
}
