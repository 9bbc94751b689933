package validate

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/Gunvolt24/purchase-order/internal/domain"
	"github.com/Gunvolt24/purchase-order/internal/ports"
)

// DecodeOrderRequest: строгий разбор заказа: неизвестные поля и хвост после объекта запрещены,
// обязательные поля проверяются так же, как в HTTP.
func DecodeOrderRequest(raw []byte) (*domain.OrderRequest, error) {
	var payload OrderPayload
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&payload); err != nil {
		return nil, fmt.Errorf("invalid json: %w", err)
	}
	// гарантируем отсутствие данных после объекта
	if err := dec.Decode(new(struct{})); err != io.EOF {
		return nil, fmt.Errorf("invalid json: trailing data")
	}
	if err := payload.RequiredFields(); err != nil {
		return nil, err
	}
	return payload.ToDomain(), nil
}

// ValidateOrderFromJSON: разбор и валидация заказа из JSON.
// Невалидный заказ возвращается ошибкой, обёрнутой ErrInvalidOrder.
func ValidateOrderFromJSON(ctx context.Context, validator ports.OrderValidator, raw []byte) (*domain.OrderRequest, error) {
	req, err := DecodeOrderRequest(raw)
	if err != nil {
		return nil, err
	}
	if err := AsError(validator.Validate(ctx, req)); err != nil {
		return nil, err
	}
	return req, nil
}
