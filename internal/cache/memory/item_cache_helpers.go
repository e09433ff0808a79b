package memory

import (
	"container/list"
	"time"

	"github.com/Gunvolt24/market_arb/internal/domain"
	"github.com/Gunvolt24/market_arb/pkg/metrics"
)

// evictLRU — удаляет наименее используемый элемент.
func (c *LRUCacheTTL) evictLRU() {
	if back := c.ll.Back(); back != nil {
		c.removeElement(back)
		metrics.CacheOps.WithLabelValues("evicted").Inc()
		metrics.CacheSize.Set(float64(c.ll.Len()))
	}
}

// removeElement — удаляет элемент из списка и индекса.
func (c *LRUCacheTTL) removeElement(elem *list.Element) {
	if elem == nil {
		return
	}
	if ent, ok := elem.Value.(*entry); ok {
		delete(c.index, ent.id)
	}
	c.ll.Remove(elem)
}

// pruneExpiredFromBack — удаляет просроченные элементы из хвоста до первого актуального.
// TTL у записей разный, поэтому это чистка «по возможности», а не полная.
func (c *LRUCacheTTL) pruneExpiredFromBack(now time.Time) {
	for {
		back := c.ll.Back()
		if back == nil {
			return
		}
		ent, ok := back.Value.(*entry)
		if !ok || !isExpired(ent, now) {
			return
		}
		c.removeElement(back)
		metrics.CacheOps.WithLabelValues("expired").Inc()
		metrics.CacheSize.Set(float64(c.ll.Len()))
	}
}

func isExpired(ent *entry, now time.Time) bool {
	if ent.expiresAt.IsZero() {
		return false
	}
	return now.After(ent.expiresAt)
}

func expiryFrom(now time.Time, ttl time.Duration) time.Time {
	if ttl <= 0 {
		return time.Time{}
	}
	return now.Add(ttl)
}

// cloneItem — копия с собственными указателями, чтобы внешние изменения не попадали в кэш.
func cloneItem(info domain.ItemInfo) domain.ItemInfo {
	out := info
	if info.GroupID != nil {
		out.GroupID = domain.Int(*info.GroupID)
	}
	if info.CategoryID != nil {
		out.CategoryID = domain.Int(*info.CategoryID)
	}
	return out
}
