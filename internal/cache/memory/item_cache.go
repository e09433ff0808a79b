package memory

import (
	"container/list"
	"context"
	"sync"
	"time"

	"github.com/Gunvolt24/market_arb/internal/domain"
	"github.com/Gunvolt24/market_arb/internal/ports"
	"github.com/Gunvolt24/market_arb/pkg/clock"
	"github.com/Gunvolt24/market_arb/pkg/metrics"
)

var _ ports.ItemCache = (*LRUCacheTTL)(nil)

type entry struct {
	id        int64
	info      domain.ItemInfo
	expiresAt time.Time // нулевое значение — без истечения
}

// LRUCacheTTL — LRU-кэш метаданных предметов с TTL на каждую запись.
// Настоящие метаданные живут долго, заглушки — недолго, поэтому TTL задаёт вызывающий.
type LRUCacheTTL struct {
	capacity int
	clock    clock.Clock

	ll    *list.List
	index map[int64]*list.Element

	mu sync.Mutex
}

func NewLRUCacheTTL(capacity int, c clock.Clock) *LRUCacheTTL {
	if capacity <= 0 {
		capacity = 1
	}
	if c == nil {
		c = clock.Real{}
	}
	return &LRUCacheTTL{
		capacity: capacity,
		clock:    c,
		ll:       list.New(),
		index:    make(map[int64]*list.Element),
	}
}

func (c *LRUCacheTTL) Get(_ context.Context, id int64) (domain.ItemInfo, bool) {
	now := c.clock.Now()

	c.mu.Lock()
	defer c.mu.Unlock()

	elem, ok := c.index[id]
	if !ok {
		metrics.CacheOps.WithLabelValues("miss").Inc()
		return domain.ItemInfo{}, false
	}
	ent := elem.Value.(*entry)
	if isExpired(ent, now) {
		metrics.CacheOps.WithLabelValues("expired").Inc()
		c.removeElement(elem)
		metrics.CacheSize.Set(float64(len(c.index)))
		return domain.ItemInfo{}, false
	}
	c.ll.MoveToFront(elem)

	metrics.CacheOps.WithLabelValues("hit").Inc()
	return cloneItem(ent.info), true
}

// Set — сохранить запись на ttl (ttl <= 0 — без истечения).
func (c *LRUCacheTTL) Set(_ context.Context, info domain.ItemInfo, ttl time.Duration) error {
	if info.ItemID <= 0 {
		return nil
	}
	now := c.clock.Now()

	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.index[info.ItemID]; ok {
		ent := elem.Value.(*entry)
		ent.info = cloneItem(info)
		ent.expiresAt = expiryFrom(now, ttl)
		c.ll.MoveToFront(elem)
		return nil
	}

	c.pruneExpiredFromBack(now)

	elem := c.ll.PushFront(&entry{
		id:        info.ItemID,
		info:      cloneItem(info),
		expiresAt: expiryFrom(now, ttl),
	})
	c.index[info.ItemID] = elem
	metrics.CacheSize.Set(float64(len(c.index)))

	if c.ll.Len() > c.capacity {
		c.evictLRU()
	}
	return nil
}

// Len — число записей (включая ещё не вычищенные просроченные).
func (c *LRUCacheTTL) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ll.Len()
}
