// Пакет staging — типизированный слой поверх ports.ChunkStore:
// разбиение коллекций на чанки, JSON-сериализация и сборка коллекции обратно.
package staging

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Gunvolt24/market_arb/internal/domain"
	"github.com/Gunvolt24/market_arb/internal/ports"
)

const (
	MinChunkSize     = 100
	MaxChunkSize     = 1000
	DefaultChunkSize = 500
)

// ClampChunkSize — размер чанка в допустимых границах (0 → значение по умолчанию).
func ClampChunkSize(n int) int {
	switch {
	case n <= 0:
		return DefaultChunkSize
	case n < MinChunkSize:
		return MinChunkSize
	case n > MaxChunkSize:
		return MaxChunkSize
	default:
		return n
	}
}

// OrdersKey — ключ коллекции заявок локации.
func OrdersKey(loc domain.Location) string {
	return "orders:" + loc.Key()
}

// OpportunitiesKey — ключ коллекции результата сравнения пары локаций.
func OpportunitiesKey(source, dest domain.Location) string {
	return fmt.Sprintf("opportunities:%s:%s", source.Key(), dest.Key())
}

// PutChunk — сериализует items и пишет один чанк. Повторная запись chunkID перезаписывает его.
func PutChunk[T any](ctx context.Context, store ports.ChunkStore, session domain.SessionID,
	key string, chunkID int, items []T) error {
	if items == nil {
		items = []T{}
	}
	payload, err := json.Marshal(items)
	if err != nil {
		return &domain.StorageError{Op: "encode", Err: err}
	}
	return store.PutChunk(ctx, session, key, chunkID, payload)
}

// GetAll — собирает коллекцию из всех чанков ключа. Порядок элементов не гарантируется.
func GetAll[T any](ctx context.Context, store ports.ChunkStore, session domain.SessionID, key string) ([]T, error) {
	chunks, err := store.GetChunks(ctx, session, key)
	if err != nil {
		return nil, err
	}
	out := make([]T, 0)
	for _, payload := range chunks {
		var part []T
		if err := json.Unmarshal(payload, &part); err != nil {
			return nil, &domain.StorageError{Op: "decode", Err: err}
		}
		out = append(out, part...)
	}
	return out, nil
}

// Split — нарезка на куски не длиннее size. Исходный слайс не копируется.
func Split[T any](items []T, size int) [][]T {
	if len(items) == 0 {
		return nil
	}
	if size <= 0 {
		size = len(items)
	}
	out := make([][]T, 0, (len(items)+size-1)/size)
	for start := 0; start < len(items); start += size {
		end := min(start+size, len(items))
		out = append(out, items[start:end])
	}
	return out
}

// Writer — последовательная запись коллекции: каждая порция режется на чанки,
// номера чанков растут монотонно в пределах одного Writer.
type Writer[T any] struct {
	store     ports.ChunkStore
	session   domain.SessionID
	key       string
	chunkSize int
	next      int
	written   int
}

func NewWriter[T any](store ports.ChunkStore, session domain.SessionID, key string, chunkSize int) *Writer[T] {
	return &Writer[T]{
		store:     store,
		session:   session,
		key:       key,
		chunkSize: ClampChunkSize(chunkSize),
	}
}

// Reset — удалить всё, что лежит под ключом, и начать нумерацию заново.
func (w *Writer[T]) Reset(ctx context.Context) error {
	if err := w.store.DeleteCollection(ctx, w.session, w.key); err != nil {
		return err
	}
	w.next, w.written = 0, 0
	return nil
}

// Write — записать порцию; при ошибке уже записанные чанки остаются в хранилище.
func (w *Writer[T]) Write(ctx context.Context, items []T) error {
	for _, part := range Split(items, w.chunkSize) {
		if err := PutChunk(ctx, w.store, w.session, w.key, w.next, part); err != nil {
			return err
		}
		w.next++
		w.written += len(part)
	}
	return nil
}

// Written — сколько элементов записано с момента создания или Reset.
func (w *Writer[T]) Written() int { return w.written }

// Chunks — сколько чанков записано.
func (w *Writer[T]) Chunks() int { return w.next }
