package postgres

import (
	"context"
	"time"

	"github.com/Gunvolt24/market_arb/internal/domain"
	"github.com/Gunvolt24/market_arb/internal/ports"
	"github.com/Gunvolt24/market_arb/pkg/metrics"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Проверка, что ChunkStore удовлетворяет интерфейсу ports.ChunkStore.
var _ ports.ChunkStore = (*ChunkStore)(nil)

// ChunkStore — временное хранилище чанков на Postgres (таблица staged_chunks, payload в JSONB).
// Любая ошибка драйвера возвращается как *domain.StorageError.
type ChunkStore struct {
	pool *pgxpool.Pool
}

// NewChunkStore - конструктор ChunkStore.
func NewChunkStore(pool *pgxpool.Pool) *ChunkStore { return &ChunkStore{pool: pool} }

// PutChunk — идемпотентный upsert по (session_id, collection_key, chunk_id).
func (s *ChunkStore) PutChunk(ctx context.Context, session domain.SessionID, key string, chunkID int, payload []byte) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO staged_chunks (session_id, collection_key, chunk_id, payload, created_at)
		VALUES ($1, $2, $3, $4, now())
		ON CONFLICT (session_id, collection_key, chunk_id) DO UPDATE SET
			payload = EXCLUDED.payload,
			created_at = EXCLUDED.created_at
	`, string(session), key, chunkID, payload)
	return storageErr("put", err)
}

// GetChunks — все чанки коллекции. Порядок — по chunk_id, но вызывающие на него не опираются.
func (s *ChunkStore) GetChunks(ctx context.Context, session domain.SessionID, key string) ([][]byte, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT payload
		FROM staged_chunks
		WHERE session_id = $1 AND collection_key = $2
		ORDER BY chunk_id
	`, string(session), key)
	if err != nil {
		return nil, storageErr("get", err)
	}
	defer rows.Close()

	out := make([][]byte, 0)
	for rows.Next() {
		var payload []byte
		if err := rows.Scan(&payload); err != nil {
			return nil, storageErr("get", err)
		}
		out = append(out, payload)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr("get", err)
	}
	metrics.StoreOps.WithLabelValues("get", "ok").Inc()
	return out, nil
}

func (s *ChunkStore) DeleteCollection(ctx context.Context, session domain.SessionID, key string) error {
	_, err := s.pool.Exec(ctx, `
		DELETE FROM staged_chunks WHERE session_id = $1 AND collection_key = $2
	`, string(session), key)
	return storageErr("delete", err)
}

func (s *ChunkStore) ClearSession(ctx context.Context, session domain.SessionID) error {
	_, err := s.pool.Exec(ctx, `DELETE FROM staged_chunks WHERE session_id = $1`, string(session))
	return storageErr("clear", err)
}

func (s *ChunkStore) SweepExpired(ctx context.Context, olderThan time.Time) (int64, error) {
	tag, err := s.pool.Exec(ctx, `DELETE FROM staged_chunks WHERE created_at < $1`, olderThan)
	if err != nil {
		return 0, storageErr("sweep", err)
	}
	metrics.StoreOps.WithLabelValues("sweep", "ok").Inc()
	return tag.RowsAffected(), nil
}

// storageErr — оборачивает ошибку драйвера в StorageError и считает метрику.
func storageErr(op string, err error) error {
	metrics.StoreOps.WithLabelValues(op, metrics.StoreResult(err)).Inc()
	if err == nil {
		return nil
	}
	return &domain.StorageError{Op: op, Err: err}
}
