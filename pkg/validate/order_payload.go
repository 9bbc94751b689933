package validate

import (
	"errors"
	"fmt"

	"github.com/Gunvolt24/purchase-order/internal/domain"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// ErrMalformedOrder: в теле заказа нет обязательного поля.
var ErrMalformedOrder = errors.New("purchase order payload is malformed")

// OrderLineItemPayload: позиция заказа на входе. Указатели отличают отсутствующее поле от нулевого значения.
type OrderLineItemPayload struct {
	ID             *int             `json:"id" binding:"required"`
	Title          *string          `json:"title" binding:"required"`
	Price          *decimal.Decimal `json:"price" binding:"required"`
	IsPhysicalItem *bool            `json:"isPhysicalItem" binding:"required"`
}

// OrderPayload: заказ на входе HTTP, Kafka и CLI.
// Теги binding проверяет gin при ShouldBindJSON и RequiredFields для остальных входов.
type OrderPayload struct {
	CustomerID *int                   `json:"customerId" binding:"required"`
	Items      []OrderLineItemPayload `json:"items" binding:"required,dive"`
}

// тот же тег, что у валидатора gin
var payloadValidator = func() *validator.Validate {
	v := validator.New()
	v.SetTagName("binding")
	return v
}()

// RequiredFields проверяет наличие обязательных полей.
func (p *OrderPayload) RequiredFields() error {
	if err := payloadValidator.Struct(p); err != nil {
		return fmt.Errorf("%w: %w", ErrMalformedOrder, err)
	}
	return nil
}

// ToDomain: вызывать только после успешной проверки обязательных полей.
func (p *OrderPayload) ToDomain() *domain.OrderRequest {
	req := &domain.OrderRequest{
		CustomerID: *p.CustomerID,
		Items:      make([]domain.OrderLineItem, 0, len(p.Items)),
	}
	for _, it := range p.Items {
		req.Items = append(req.Items, domain.OrderLineItem{
			ID:             *it.ID,
			Title:          *it.Title,
			Price:          *it.Price,
			IsPhysicalItem: *it.IsPhysicalItem,
		})
	}
	return req
}
