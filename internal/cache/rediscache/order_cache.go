package rediscache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/Gunvolt24/purchase-order/internal/domain"
	"github.com/Gunvolt24/purchase-order/internal/ports"
	"github.com/Gunvolt24/purchase-order/pkg/metrics"
	"github.com/redis/go-redis/v9"
)

var _ ports.OrderCache = (*OrderCache)(nil)

// client: часть *redis.Client, которая нужна кэшу.
type client interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Close() error
}

// OrderCache: кэш заказов в Redis: JSON по ключу "<prefix>:po:<poId>".
// Ошибки Redis при чтении считаются промахом: источник истины, хранилище.
type OrderCache struct {
	client      client
	keyPrefix string
	ttl         time.Duration
}

// NewOrderCache: кэш поверх нового клиента Redis по адресу addr.
func NewOrderCache(addr, keyPrefix string, ttl time.Duration) *OrderCache {
	return newOrderCache(redis.NewClient(&redis.Options{Addr: addr}), keyPrefix, ttl)
}

func newOrderCache(c client, keyPrefix string, ttl time.Duration) *OrderCache {
	return &OrderCache{client: c, keyPrefix: keyPrefix, ttl: ttl}
}

func (c *OrderCache) Get(ctx context.Context, poID int) (*domain.OrderSummary, bool) {
	raw, err := c.client.Get(ctx, c.key(poID)).Bytes()
	if err != nil {
		// redis.Nil: ключа нет; остальное, недоступность Redis.
		metrics.CacheOps.WithLabelValues("miss").Inc()
		return nil, false
	}

	var summary domain.OrderSummary
	if err := json.Unmarshal(raw, &summary); err != nil {
		metrics.CacheOps.WithLabelValues("miss").Inc()
		return nil, false
	}
	metrics.CacheOps.WithLabelValues("hit").Inc()
	return &summary, true
}

func (c *OrderCache) Set(ctx context.Context, summary *domain.OrderSummary) error {
	if summary == nil || summary.PoID <= 0 {
		return nil
	}
	raw, err := json.Marshal(summary)
	if err != nil {
		return fmt.Errorf("marshal summary: %w", err)
	}
	if err := c.client.Set(ctx, c.key(summary.PoID), raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set po_id=%d: %w", summary.PoID, err)
	}
	return nil
}

// WarmUp: записывает все заказы; первая ошибка не прерывает остальные.
func (c *OrderCache) WarmUp(ctx context.Context, summaries []*domain.OrderSummary) error {
	var errs []error
	for _, s := range summaries {
		if err := c.Set(ctx, s); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Close: закрыть соединение с Redis.
func (c *OrderCache) Close() error { return c.client.Close() }

func (c *OrderCache) key(poID int) string {
	return c.keyPrefix + ":po:" + strconv.Itoa(poID)
}
