// Пакет catalog — разрешение метаданных предметов: кэш → удалённый API → заглушка.
package catalog

import (
	"context"
	"errors"
	"time"

	"github.com/Gunvolt24/market_arb/internal/domain"
	"github.com/Gunvolt24/market_arb/internal/ports"
)

const (
	DefaultTTL            = 24 * time.Hour
	DefaultPlaceholderTTL = 5 * time.Minute
)

// Catalog — источник ItemInfo. Никогда не возвращает ошибку: при сбое отдаёт заглушку,
// которая кэшируется на короткий срок, чтобы повторить запрос позже, но не на каждом обращении.
type Catalog struct {
	cache ports.ItemCache
	api   ports.ItemAPI
	log   ports.Logger

	ttl            time.Duration
	placeholderTTL time.Duration
}

func New(cache ports.ItemCache, api ports.ItemAPI, log ports.Logger, ttl, placeholderTTL time.Duration) *Catalog {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if placeholderTTL <= 0 {
		placeholderTTL = DefaultPlaceholderTTL
	}
	return &Catalog{
		cache:          cache,
		api:            api,
		log:            log,
		ttl:            ttl,
		placeholderTTL: placeholderTTL,
	}
}

// Lookup — метаданные предмета.
func (c *Catalog) Lookup(ctx context.Context, itemID int64) domain.ItemInfo {
	if info, ok := c.cache.Get(ctx, itemID); ok {
		return info
	}

	info, err := c.api.FetchItem(ctx, itemID)
	if err != nil || info == nil {
		if err != nil && !errors.Is(err, domain.ErrItemNotFound) {
			c.log.Warnf(ctx, "item %d lookup failed: %v", itemID, err)
		}
		ph := domain.PlaceholderItem(itemID)
		if ctx.Err() != nil {
			// сбой из-за отмены вызывающего, а не удалённого API: в кэш не кладём
			return ph
		}
		if setErr := c.cache.Set(ctx, ph, c.placeholderTTL); setErr != nil {
			c.log.Warnf(ctx, "cache.Set placeholder item=%d err=%v", itemID, setErr)
		}
		return ph
	}

	if info.ItemID == 0 {
		info.ItemID = itemID
	}
	if setErr := c.cache.Set(ctx, *info, c.ttl); setErr != nil {
		c.log.Warnf(ctx, "cache.Set item=%d err=%v", itemID, setErr)
	}
	return *info
}
