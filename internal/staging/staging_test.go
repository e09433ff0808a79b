package staging

import (
	"context"
	"errors"
	"sort"
	"testing"

	"github.com/Gunvolt24/market_arb/internal/domain"
	"github.com/Gunvolt24/market_arb/internal/store/memory"
)

func TestClampChunkSize(t *testing.T) {
	t.Parallel()
	cases := []struct{ in, want int }{
		{0, DefaultChunkSize},
		{-5, DefaultChunkSize},
		{10, MinChunkSize},
		{250, 250},
		{5000, MaxChunkSize},
	}
	for _, tc := range cases {
		if got := ClampChunkSize(tc.in); got != tc.want {
			t.Fatalf("ClampChunkSize(%d)=%d, want %d", tc.in, got, tc.want)
		}
	}
}

func TestSplit(t *testing.T) {
	t.Parallel()
	parts := Split([]int{1, 2, 3, 4, 5}, 2)
	if len(parts) != 3 || len(parts[0]) != 2 || len(parts[2]) != 1 {
		t.Fatalf("unexpected split: %v", parts)
	}
	if Split([]int{}, 2) != nil {
		t.Fatalf("empty input must give nil")
	}
}

func TestKeys(t *testing.T) {
	t.Parallel()
	src := domain.Location{ID: 10000002, Kind: domain.KindRegion}
	dst := domain.Location{ID: 60008494, Kind: domain.KindStation}

	if got := OrdersKey(src); got != "orders:region:10000002" {
		t.Fatalf("OrdersKey=%q", got)
	}
	if got := OpportunitiesKey(src, dst); got != "opportunities:region:10000002:station:60008494" {
		t.Fatalf("OpportunitiesKey=%q", got)
	}
}

// Объединение всех записанных чанков совпадает как мультимножество независимо от порядка записи.
func TestPutChunk_GetAll_MultisetRoundTrip(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := memory.NewChunkStore(0)

	chunks := map[int][]int{
		2: {5, 6},
		0: {1, 2, 2},
		1: {3, 4},
	}
	for _, id := range []int{2, 0, 1} {
		if err := PutChunk(ctx, store, "s", "k", id, chunks[id]); err != nil {
			t.Fatalf("PutChunk(%d): %v", id, err)
		}
	}

	got, err := GetAll[int](ctx, store, "s", "k")
	if err != nil {
		t.Fatalf("GetAll: %v", err)
	}
	sort.Ints(got)
	want := []int{1, 2, 2, 3, 4, 5, 6}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}

func TestGetAll_Empty(t *testing.T) {
	t.Parallel()
	got, err := GetAll[domain.Order](context.Background(), memory.NewChunkStore(0), "s", "none")
	if err != nil || got == nil || len(got) != 0 {
		t.Fatalf("want empty non-nil slice, got %v err=%v", got, err)
	}
}

func TestGetAll_CorruptChunk(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := memory.NewChunkStore(0)
	_ = store.PutChunk(ctx, "s", "k", 0, []byte("{not json"))

	_, err := GetAll[int](ctx, store, "s", "k")
	var se *domain.StorageError
	if !errors.As(err, &se) || se.Op != "decode" {
		t.Fatalf("want decode StorageError, got %v", err)
	}
}

func TestWriter_ChunksAndReset(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := memory.NewChunkStore(0)

	items := make([]int, 250)
	for i := range items {
		items[i] = i
	}

	w := NewWriter[int](store, "s", "k", 100)
	if err := w.Write(ctx, items); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if err := w.Write(ctx, items[:10]); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if w.Chunks() != 4 || w.Written() != 260 {
		t.Fatalf("chunks=%d written=%d", w.Chunks(), w.Written())
	}

	got, _ := GetAll[int](ctx, store, "s", "k")
	if len(got) != 260 {
		t.Fatalf("GetAll len=%d, want 260", len(got))
	}

	if err := w.Reset(ctx); err != nil {
		t.Fatalf("Reset: %v", err)
	}
	got, _ = GetAll[int](ctx, store, "s", "k")
	if len(got) != 0 || w.Written() != 0 {
		t.Fatalf("after Reset: len=%d written=%d", len(got), w.Written())
	}
}

func TestWriter_StoreFullKeepsPartialData(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := memory.NewChunkStore(1)

	w := NewWriter[int](store, "s", "k", 100)
	items := make([]int, 150)
	err := w.Write(ctx, items)
	if !errors.Is(err, domain.ErrStoreFull) {
		t.Fatalf("want ErrStoreFull, got %v", err)
	}
	got, _ := GetAll[int](ctx, store, "s", "k")
	if len(got) != 100 {
		t.Fatalf("first chunk must stay, got len=%d", len(got))
	}
}
