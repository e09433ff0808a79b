package ports

import (
	"context"
	"time"

	"github.com/Gunvolt24/market_arb/internal/domain"
)

// ItemCache — кэш метаданных предметов.
// Требования к реализации: потокобезопасность; TTL задаётся на каждую запись.
type ItemCache interface {
	// Get — (info, true) при попадании, (zero, false) при промахе/истечении.
	Get(ctx context.Context, itemID int64) (domain.ItemInfo, bool)

	// Set — сохранить запись на время ttl.
	Set(ctx context.Context, info domain.ItemInfo, ttl time.Duration) error
}
