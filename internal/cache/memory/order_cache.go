package memory

import (
	"container/list"
	"context"
	"sync"
	"time"

	"github.com/Gunvolt24/purchase-order/internal/domain"
	"github.com/Gunvolt24/purchase-order/internal/ports"
	"github.com/Gunvolt24/purchase-order/pkg/metrics"
)

var _ ports.OrderCache = (*LRUCacheTTL)(nil)

type entry struct {
	poID      int
	summary   *domain.OrderSummary
	expiresAt time.Time
}

// LRUCacheTTL: LRU-кэш заказов с TTL (sliding: попадание продлевает срок).
// при ttl <= 0 записи не истекают.
type LRUCacheTTL struct {
	capacity int
	ttl      time.Duration
	now      func() time.Time

	ll    *list.List
	index map[int]*list.Element

	mu sync.Mutex
}

func NewLRUCacheTTL(capacity int, ttl time.Duration) *LRUCacheTTL {
	if capacity <= 0 {
		capacity = 1
	}
	return &LRUCacheTTL{
		capacity: capacity,
		ttl:      ttl,
		now:      time.Now,
		ll:       list.New(),
		index:    make(map[int]*list.Element),
	}
}

func (c *LRUCacheTTL) Get(_ context.Context, poID int) (*domain.OrderSummary, bool) {
	now := c.now()

	c.mu.Lock()
	defer c.mu.Unlock()

	elem, ok := c.index[poID]
	if !ok {
		metrics.CacheOps.WithLabelValues("miss").Inc()
		return nil, false
	}
	ent := elem.Value.(*entry)
	if c.isExpired(ent, now) {
		metrics.CacheOps.WithLabelValues("expired").Inc()
		c.removeElement(elem)
		metrics.CacheSize.Set(float64(len(c.index)))
		return nil, false
	}
	c.ll.MoveToFront(elem)
	ent.expiresAt = c.expiryFrom(now)

	metrics.CacheOps.WithLabelValues("hit").Inc()
	return ent.summary.Clone(), true
}

func (c *LRUCacheTTL) Set(_ context.Context, summary *domain.OrderSummary) error {
	if summary == nil || summary.PoID <= 0 {
		return nil
	}
	now := c.now()

	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.index[summary.PoID]; ok {
		ent := elem.Value.(*entry)
		ent.summary = summary.Clone()
		ent.expiresAt = c.expiryFrom(now)
		c.ll.MoveToFront(elem)
		return nil
	}

	c.pruneExpiredFromBack(now)

	elem := c.ll.PushFront(&entry{
		poID:      summary.PoID,
		summary:   summary.Clone(),
		expiresAt: c.expiryFrom(now),
	})
	c.index[summary.PoID] = elem
	metrics.CacheSize.Set(float64(len(c.index)))

	if c.ll.Len() > c.capacity {
		c.evictLRU()
	}
	return nil
}

// WarmUp: список идёт от новых к старым, поэтому вставляем с конца:
// самые свежие заказы окажутся в голове LRU.
func (c *LRUCacheTTL) WarmUp(ctx context.Context, summaries []*domain.OrderSummary) error {
	for i := len(summaries) - 1; i >= 0; i-- {
		if err := c.Set(ctx, summaries[i]); err != nil {
			return err
		}
	}
	return nil
}

// Len: текущее число записей (включая ещё не вычищенные истёкшие).
func (c *LRUCacheTTL) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ll.Len()
}
