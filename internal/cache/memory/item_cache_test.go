package memory

import (
	"context"
	"testing"
	"time"

	"github.com/Gunvolt24/market_arb/internal/domain"
	"github.com/Gunvolt24/market_arb/pkg/clock"
)

func newItem(id int64) domain.ItemInfo {
	return domain.ItemInfo{ItemID: id, Name: "Tritanium", GroupID: domain.Int(18)}
}

func TestSetGet_HitMiss(t *testing.T) {
	c := NewLRUCacheTTL(2, nil)
	ctx := context.Background()

	// miss
	if _, ok := c.Get(ctx, 34); ok {
		t.Fatalf("expected miss before Set")
	}

	// hit после Set
	_ = c.Set(ctx, newItem(34), time.Hour)
	got, ok := c.Get(ctx, 34)
	if !ok || got.ItemID != 34 || got.Name != "Tritanium" {
		t.Fatalf("expected hit for 34, got %+v ok=%v", got, ok)
	}
}

func TestTTL_PerEntry(t *testing.T) {
	fc := clock.NewFake(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	c := NewLRUCacheTTL(4, fc)
	ctx := context.Background()

	_ = c.Set(ctx, newItem(34), 24*time.Hour)
	_ = c.Set(ctx, domain.PlaceholderItem(35), 5*time.Minute)

	fc.Advance(10 * time.Minute)

	if _, ok := c.Get(ctx, 35); ok {
		t.Fatalf("placeholder must expire after its short TTL")
	}
	if _, ok := c.Get(ctx, 34); !ok {
		t.Fatalf("real metadata must survive")
	}
}

func TestTTL_ZeroMeansNoExpiry(t *testing.T) {
	fc := clock.NewFake(time.Time{})
	c := NewLRUCacheTTL(1, fc)
	ctx := context.Background()

	_ = c.Set(ctx, newItem(1), 0)
	fc.Advance(1000 * time.Hour)
	if _, ok := c.Get(ctx, 1); !ok {
		t.Fatalf("entry without TTL must not expire")
	}
}

func TestLRUEviction(t *testing.T) {
	c := NewLRUCacheTTL(2, nil)
	ctx := context.Background()

	_ = c.Set(ctx, newItem(1), 0)
	_ = c.Set(ctx, newItem(2), 0)
	// 1 сделать «свежим»
	if _, ok := c.Get(ctx, 1); !ok {
		t.Fatalf("expected hit for 1")
	}
	// Добавляем 3 — вытеснит 2 (самый старый)
	_ = c.Set(ctx, newItem(3), 0)

	if _, ok := c.Get(ctx, 2); ok {
		t.Fatalf("expected 2 to be evicted")
	}
	if _, ok := c.Get(ctx, 1); !ok || c.Len() != 2 {
		t.Fatalf("expected 1 & 3 to stay in cache")
	}
}

func TestCloneImmutability(t *testing.T) {
	c := NewLRUCacheTTL(1, nil)
	ctx := context.Background()
	_ = c.Set(ctx, newItem(7), 0)

	// меняем то, что вернул Get — не должно влиять на кэш
	i1, _ := c.Get(ctx, 7)
	*i1.GroupID = 999

	i2, _ := c.Get(ctx, 7)
	if *i2.GroupID != 18 {
		t.Fatalf("cache should return clones, not pointers to internal value")
	}
}

func TestSet_IgnoresInvalidID(t *testing.T) {
	c := NewLRUCacheTTL(1, nil)
	_ = c.Set(context.Background(), domain.ItemInfo{Name: "no id"}, time.Hour)
	if c.Len() != 0 {
		t.Fatalf("item without id must be ignored")
	}
}
