package usecase

import (
	"context"
	"time"

	"github.com/Gunvolt24/market_arb/internal/ports"
	"github.com/Gunvolt24/market_arb/pkg/clock"
	"github.com/Gunvolt24/market_arb/pkg/metrics"
)

// Sweeper — периодическая очистка чанков брошенных сессий.
type Sweeper struct {
	store    ports.ChunkStore
	log      ports.Logger
	maxAge   time.Duration
	interval time.Duration
	clock    clock.Clock
}

// NewSweeper — maxAge: возраст, после которого чанк считается брошенным; interval: период проверки.
func NewSweeper(store ports.ChunkStore, log ports.Logger, maxAge, interval time.Duration, c clock.Clock) *Sweeper {
	if c == nil {
		c = clock.Real{}
	}
	if interval <= 0 {
		interval = time.Hour
	}
	return &Sweeper{store: store, log: log, maxAge: maxAge, interval: interval, clock: c}
}

// SweepOnce — один проход: удалить всё старше maxAge.
func (s *Sweeper) SweepOnce(ctx context.Context) (int64, error) {
	n, err := s.store.SweepExpired(ctx, s.clock.Now().Add(-s.maxAge))
	if err != nil {
		s.log.Errorf(ctx, "sweep failed err=%v", err)
		return 0, err
	}
	if n > 0 {
		metrics.ChunksSwept.Add(float64(n))
		s.log.Infof(ctx, "swept %d expired chunks", n)
	}
	return n, nil
}

// Run — цикл до отмены контекста. Ошибки прохода логируются, цикл продолжается.
func (s *Sweeper) Run(ctx context.Context) {
	if s.maxAge <= 0 {
		s.log.Warnf(ctx, "sweeper disabled: max age <= 0")
		return
	}
	for {
		if err := s.clock.Sleep(ctx, s.interval); err != nil {
			return
		}
		_, _ = s.SweepOnce(ctx)
	}
}
