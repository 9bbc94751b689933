package ports

import (
	"context"

	"github.com/Gunvolt24/purchase-order/internal/domain"
)

type OrderValidator interface {
	Validate(ctx context.Context, req *domain.OrderRequest) domain.ValidationOutcome
}
