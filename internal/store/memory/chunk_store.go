package memory

import (
	"context"
	"sync"
	"time"

	"github.com/Gunvolt24/market_arb/internal/domain"
	"github.com/Gunvolt24/market_arb/pkg/clock"
	"github.com/Gunvolt24/market_arb/pkg/metrics"
)

type chunk struct {
	payload   []byte
	createdAt time.Time
}

// collection — чанки одного ключа коллекции по номеру.
type collection map[int]chunk

// ChunkStore — in-process реализация ports.ChunkStore.
// maxChunks ограничивает общее число чанков (0 — без ограничения).
type ChunkStore struct {
	maxChunks int
	clock     clock.Clock

	mu       sync.RWMutex
	sessions map[domain.SessionID]map[string]collection
	total    int
}

// Option — настройка ChunkStore.
type Option func(*ChunkStore)

// WithClock — источник времени для отметок записи (для тестов sweep).
func WithClock(c clock.Clock) Option {
	return func(s *ChunkStore) { s.clock = c }
}

func NewChunkStore(maxChunks int, opts ...Option) *ChunkStore {
	s := &ChunkStore{
		maxChunks: maxChunks,
		clock:     clock.Real{},
		sessions:  make(map[domain.SessionID]map[string]collection),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *ChunkStore) PutChunk(_ context.Context, session domain.SessionID, key string, chunkID int, payload []byte) error {
	now := s.clock.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	coll := s.collectionLocked(session, key)
	if _, exists := coll[chunkID]; !exists {
		if s.maxChunks > 0 && s.total >= s.maxChunks {
			metrics.StoreOps.WithLabelValues("put", "error").Inc()
			return &domain.StorageError{Op: "put", Err: domain.ErrStoreFull}
		}
		s.total++
	}
	coll[chunkID] = chunk{payload: append([]byte(nil), payload...), createdAt: now}
	metrics.StoreOps.WithLabelValues("put", "ok").Inc()
	return nil
}

func (s *ChunkStore) GetChunks(_ context.Context, session domain.SessionID, key string) ([][]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	coll := s.sessions[session][key]
	out := make([][]byte, 0, len(coll))
	for _, c := range coll {
		out = append(out, append([]byte(nil), c.payload...))
	}
	metrics.StoreOps.WithLabelValues("get", "ok").Inc()
	return out, nil
}

func (s *ChunkStore) DeleteCollection(_ context.Context, session domain.SessionID, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if keys, ok := s.sessions[session]; ok {
		s.total -= len(keys[key])
		delete(keys, key)
		if len(keys) == 0 {
			delete(s.sessions, session)
		}
	}
	metrics.StoreOps.WithLabelValues("delete", "ok").Inc()
	return nil
}

func (s *ChunkStore) ClearSession(_ context.Context, session domain.SessionID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, coll := range s.sessions[session] {
		s.total -= len(coll)
	}
	delete(s.sessions, session)
	metrics.StoreOps.WithLabelValues("clear", "ok").Inc()
	return nil
}

func (s *ChunkStore) SweepExpired(_ context.Context, olderThan time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var removed int64
	for session, keys := range s.sessions {
		for key, coll := range keys {
			for id, c := range coll {
				if c.createdAt.Before(olderThan) {
					delete(coll, id)
					removed++
				}
			}
			if len(coll) == 0 {
				delete(keys, key)
			}
		}
		if len(keys) == 0 {
			delete(s.sessions, session)
		}
	}
	s.total -= int(removed)
	metrics.StoreOps.WithLabelValues("sweep", "ok").Inc()
	return removed, nil
}

// Len — общее число чанков во всех сессиях.
func (s *ChunkStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.total
}

func (s *ChunkStore) collectionLocked(session domain.SessionID, key string) collection {
	keys, ok := s.sessions[session]
	if !ok {
		keys = make(map[string]collection)
		s.sessions[session] = keys
	}
	coll, ok := keys[key]
	if !ok {
		coll = make(collection)
		keys[key] = coll
	}
	return coll
}
