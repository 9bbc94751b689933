package validate

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"testing"
)

func TestValidateOrderFromJSON_OK(t *testing.T) {
	ctx := context.Background()
	validator := NewOrderValidator()

	req, err := ValidateOrderFromJSON(ctx, validator, []byte(minimalValidRequestJSON(5)))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if req.CustomerID != 5 {
		t.Fatalf("unexpected customer id: %d", req.CustomerID)
	}
	if len(req.Items) != 2 || req.Items[1].Title != "Aliens - Special Edition" {
		t.Fatalf("unexpected items: %+v", req.Items)
	}
	if got := req.Total().String(); got != "4.44" {
		t.Fatalf("unexpected total: %s", got)
	}
}

func TestValidateOrderFromJSON_UnknownField(t *testing.T) {
	ctx := context.Background()
	validator := NewOrderValidator()

	raw := `{"unknown":"x",` + minimalValidRequestJSON(5)[1:]
	_, err := ValidateOrderFromJSON(ctx, validator, []byte(raw))
	if err == nil || !strings.Contains(err.Error(), "invalid json") {
		t.Fatalf("expected invalid json error, got: %v", err)
	}
}

func TestValidateOrderFromJSON_TrailingData(t *testing.T) {
	ctx := context.Background()
	validator := NewOrderValidator()

	raw := minimalValidRequestJSON(5) + "{}"
	_, err := ValidateOrderFromJSON(ctx, validator, []byte(raw))
	if err == nil || !strings.Contains(err.Error(), "trailing data") {
		t.Fatalf("expected trailing data error, got: %v", err)
	}
}

func TestValidateOrderFromJSON_DomainError(t *testing.T) {
	ctx := context.Background()
	validator := NewOrderValidator()

	// Не валиден: customerId = 0
	_, err := ValidateOrderFromJSON(ctx, validator, []byte(minimalValidRequestJSON(0)))
	if !errors.Is(err, ErrInvalidOrder) {
		t.Fatalf("expected ErrInvalidOrder, got: %v", err)
	}
}

// ---- helpers ----

func TestValidateOrderFromJSON_MissingRequired(t *testing.T) {
	ctx := context.Background()
	validator := NewOrderValidator()

	cases := map[string]string{
		"customerId":           `{"items":[{"id":1,"title":"A","price":1,"isPhysicalItem":false}]}`,
		"items":                `{"customerId":5}`,
		"items null":           `{"customerId":5,"items":null}`,
		"item price and flags": `{"customerId":5,"items":[{"title":"Book Club Membership"}]}`,
	}
	for name, raw := range cases {
		if _, err := ValidateOrderFromJSON(ctx, validator, []byte(raw)); !errors.Is(err, ErrMalformedOrder) {
			t.Fatalf("%s: expected ErrMalformedOrder, got: %v", name, err)
		}
	}
}

func TestOrderPayload_ZeroValuesArePresent(t *testing.T) {
	// нулевые значения присутствуют: решение принимает доменная валидация, а не разбор
	req, err := DecodeOrderRequest([]byte(`{"customerId":0,"items":[{"id":0,"title":"","price":0,"isPhysicalItem":false}]}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if req.CustomerID != 0 || len(req.Items) != 1 || !req.Items[0].Price.IsZero() {
		t.Fatalf("unexpected request: %+v", req)
	}
}

func minimalValidRequestJSON(customerID int) string {
	return `{
  "customerId": ` + strconv.Itoa(customerID) + `,
  "items": [
    {"id": 1, "title": "Book Club Membership", "price": 1.11, "isPhysicalItem": false},
    {"id": 3, "title": "Aliens - Special Edition", "price": 3.33, "isPhysicalItem": true}
  ]
}`
}
