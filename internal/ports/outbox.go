package ports

import (
	"context"

	"github.com/Gunvolt24/purchase-order/internal/domain"
)

// OutboxStore: события побочных записей, сохранённые вместе с заказом.
type OutboxStore interface {
	PendingEvents(ctx context.Context, limit int) ([]domain.OrderEvent, error)
	MarkPublished(ctx context.Context, ids []string) error
}

// EventPublisher: доставка событий во внешние домены (клиенты, отгрузка).
type EventPublisher interface {
	Publish(ctx context.Context, event domain.OrderEvent) error
	Close() error
}
