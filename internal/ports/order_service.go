package ports

import (
	"context"

	"github.com/Gunvolt24/purchase-order/internal/domain"
)

// PurchaseOrderService: то, что транспорт знает о прикладном слое.
type PurchaseOrderService interface {
	GetByID(ctx context.Context, poID int) domain.Outcome
	Process(ctx context.Context, req *domain.OrderRequest) domain.Outcome
}
