package ports

import (
	"context"

	"github.com/Gunvolt24/purchase-order/internal/domain"
)

// OrderStore: граница хранения заказов.
// Пара (значение, ошибка), явный результат: (summary, nil) успех, (nil, nil) отсутствие/отказ, (_, err) сбой.
type OrderStore interface {
	// FindByID: заказ по poId; (nil, nil), если заказа нет.
	FindByID(ctx context.Context, poID int) (*domain.OrderSummary, error)

	// Persist: атомарно: активация членства, лист отгрузки и сам заказ.
	// (nil, nil), хранилище отказалось выполнить запись.
	Persist(ctx context.Context, req *domain.OrderRequest, eff domain.Effects) (*domain.OrderSummary, error)
}

// RecentOrders: необязательная возможность хранилища (прогрев кэша).
type RecentOrders interface {
	LastN(ctx context.Context, n int) ([]*domain.OrderSummary, error)
}
