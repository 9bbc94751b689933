package validate

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Gunvolt24/purchase-order/internal/domain"
	"github.com/Gunvolt24/purchase-order/internal/ports"
)

// Проверка, что OrderValidator удовлетворяет интерфейсу OrderValidator.
var _ ports.OrderValidator = (*OrderValidator)(nil)

// ErrInvalidOrder: базовая (sentinel error) ошибка валидации.
var ErrInvalidOrder = errors.New("purchase order validation failed")

const codeGreaterThan = "GreaterThanValidator"

// OrderValidator: структура для валидации заказа на покупку.
type OrderValidator struct{}

// NewOrderValidator: конструктор OrderValidator.
func NewOrderValidator() *OrderValidator { return &OrderValidator{} }

// Validate: проверяет запрос по всем правилам (без короткого замыкания).
// Пустой результат: запрос валиден. Сам валидатор не падает: nil-запрос
// нарушает оба правила.
func (v *OrderValidator) Validate(_ context.Context, req *domain.OrderRequest) domain.ValidationOutcome {
	var (
		customerID int
		itemsCount int
	)
	if req != nil {
		customerID = req.CustomerID
		itemsCount = len(req.Items)
	}

	var failures domain.ValidationOutcome
	if f, ok := greaterThanZero("CustomerId", "Customer Id", customerID); !ok {
		failures = append(failures, f)
	}
	if f, ok := greaterThanZero("Items.Count", "Items Count", itemsCount); !ok {
		failures = append(failures, f)
	}
	return failures
}

// greaterThanZero: правило "значение > 0".
func greaterThanZero(field, display string, value int) (domain.ValidationFailure, bool) {
	if value > 0 {
		return domain.ValidationFailure{}, true
	}
	return domain.ValidationFailure{
		Field:    field,
		Code:     codeGreaterThan,
		Message:  fmt.Sprintf("'%s' must be greater than '0'.", display),
		Severity: domain.SeverityError,
	}, false
}

// AsError: превращает невалидный результат в ошибку, обёрнутую ErrInvalidOrder.
// Для валидного результата возвращает nil.
func AsError(outcome domain.ValidationOutcome) error {
	if outcome.IsValid() {
		return nil
	}
	msgs := make([]string, 0, len(outcome))
	for _, f := range outcome {
		msgs = append(msgs, f.Field+": "+f.Message)
	}
	return fmt.Errorf("%w: %s", ErrInvalidOrder, strings.Join(msgs, "; "))
}
