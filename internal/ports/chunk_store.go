package ports

import (
	"context"
	"time"

	"github.com/Gunvolt24/market_arb/internal/domain"
)

// ChunkStore — временное хранилище чанков, разделённое по сессиям.
// Ключ чанка: (sessionID, collectionKey, chunkID). Повторная запись того же chunkID перезаписывает его.
// Все ошибки бэкенда возвращаются как *domain.StorageError; ретраев внутри нет.
type ChunkStore interface {
	// PutChunk — записать один чанк (payload уже сериализован).
	PutChunk(ctx context.Context, session domain.SessionID, key string, chunkID int, payload []byte) error

	// GetChunks — все чанки коллекции в порядке, определяемом реализацией.
	GetChunks(ctx context.Context, session domain.SessionID, key string) ([][]byte, error)

	// DeleteCollection — удалить все чанки одной коллекции в сессии.
	DeleteCollection(ctx context.Context, session domain.SessionID, key string) error

	// ClearSession — удалить все чанки сессии.
	ClearSession(ctx context.Context, session domain.SessionID) error

	// SweepExpired — удалить чанки, записанные раньше olderThan; возвращает число удалённых.
	SweepExpired(ctx context.Context, olderThan time.Time) (int64, error)
}
