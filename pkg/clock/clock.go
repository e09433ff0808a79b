// Пакет clock — абстракция времени, чтобы ожидания (rate limit, паузы между пачками)
// можно было подменять в тестах.
package clock

import (
	"context"
	"sync"
	"time"
)

// Clock — текущее время и ожидание, прерываемое контекстом.
type Clock interface {
	Now() time.Time
	Sleep(ctx context.Context, d time.Duration) error
}

// Real — системные часы.
type Real struct{}

func (Real) Now() time.Time { return time.Now().UTC() }

// Sleep — ждёт d или отмены контекста (тогда возвращает ctx.Err()).
func (Real) Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// Fake — управляемые часы: Sleep не блокирует, а сдвигает время и запоминает задержку.
type Fake struct {
	mu     sync.Mutex
	now    time.Time
	sleeps []time.Duration
}

// NewFake — часы, стартующие с start (нулевое значение → текущее время).
func NewFake(start time.Time) *Fake {
	if start.IsZero() {
		start = time.Now().UTC()
	}
	return &Fake{now: start}
}

func (f *Fake) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

func (f *Fake) Sleep(ctx context.Context, d time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.now = f.now.Add(d)
	f.sleeps = append(f.sleeps, d)
	return nil
}

// Advance — сдвинуть время вперёд.
func (f *Fake) Advance(d time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.now = f.now.Add(d)
}

// Sleeps — копия всех запрошенных задержек в порядке вызова.
func (f *Fake) Sleeps() []time.Duration {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]time.Duration(nil), f.sleeps...)
}
