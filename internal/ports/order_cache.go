package ports

import (
	"context"

	"github.com/Gunvolt24/purchase-order/internal/domain"
)

// OrderCache: кэш созданных заказов по poId.
// Требования к реализации: потокобезопасность; возврат копий сущности.
type OrderCache interface {
	// Get: (summary, true) при попадании, (nil, false) при промахе/истечении.
	Get(ctx context.Context, poID int) (*domain.OrderSummary, bool)

	// Set: сохранить/обновить заказ в кэше.
	Set(ctx context.Context, summary *domain.OrderSummary) error

	// WarmUp: массовая загрузка кэша при старте.
	WarmUp(ctx context.Context, summaries []*domain.OrderSummary) error
}
