package outbox

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Gunvolt24/purchase-order/internal/ports"
	"github.com/Gunvolt24/purchase-order/pkg/metrics"
)

const (
	defaultInterval  = time.Second
	defaultBatchSize = 100
)

// Config: параметры опроса outbox.
type Config struct {
	PollInterval time.Duration
	BatchSize    int
}

// Relay переносит события побочных записей из хранилища во внешний брокер.
// Доставка at-least-once: событие помечается опубликованным только после успешной отправки.
type Relay struct {
	store     ports.OutboxStore
	publisher ports.EventPublisher
	log       ports.Logger
	interval  time.Duration
	batchSize int
}

func NewRelay(store ports.OutboxStore, publisher ports.EventPublisher, log ports.Logger, cfg Config) *Relay {
	interval := cfg.PollInterval
	if interval <= 0 {
		interval = defaultInterval
	}
	batch := cfg.BatchSize
	if batch <= 0 {
		batch = defaultBatchSize
	}
	return &Relay{
		store:     store,
		publisher: publisher,
		log:       log,
		interval:  interval,
		batchSize: batch,
	}
}

// Run: цикл опроса до отмены контекста. Ошибки пачки логируются, пачка повторяется на следующем тике.
func (r *Relay) Run(ctx context.Context) error {
	r.log.Infof(ctx, "outbox relay started interval=%s batch=%d", r.interval, r.batchSize)

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		if n, err := r.PublishPending(ctx); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			r.log.Warnf(ctx, "outbox relay: published=%d: %v", n, err)
		} else if n > 0 {
			r.log.Infof(ctx, "outbox relay: published=%d", n)
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// PublishPending публикует одну пачку событий и возвращает число опубликованных.
// Первая ошибка отправки останавливает пачку, чтобы не нарушить порядок событий.
func (r *Relay) PublishPending(ctx context.Context) (int, error) {
	events, err := r.store.PendingEvents(ctx, r.batchSize)
	if err != nil {
		return 0, fmt.Errorf("load pending events: %w", err)
	}
	if len(events) == 0 {
		return 0, nil
	}

	published := make([]string, 0, len(events))
	var publishErr error
	for _, ev := range events {
		if err := r.publisher.Publish(ctx, ev); err != nil {
			metrics.OutboxFailed.WithLabelValues(string(ev.Kind)).Inc()
			publishErr = fmt.Errorf("publish event %s (po %d): %w", ev.ID, ev.PoID, err)
			break
		}
		metrics.OutboxPublished.WithLabelValues(string(ev.Kind)).Inc()
		published = append(published, ev.ID)
	}

	if len(published) > 0 {
		// Отправленное, но не помеченное событие уйдёт повторно на следующем тике.
		if err := r.store.MarkPublished(ctx, published); err != nil {
			return 0, errors.Join(publishErr, fmt.Errorf("mark published: %w", err))
		}
	}
	return len(published), publishErr
}
