//go:build integration

package testutil

import (
	"crypto/rand"
	"encoding/binary"
	"encoding/hex"

	"github.com/Gunvolt24/purchase-order/internal/domain"
	"github.com/shopspring/decimal"
)

func randHex(n int) string {
	b := make([]byte, n)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}

func UniqSuffix() string { return randHex(6) }

// UniqCustomerID: случайный положительный id клиента.
func UniqCustomerID() int {
	var b [4]byte
	_, _ = rand.Read(b[:])
	return int(binary.BigEndian.Uint32(b[:])%1_000_000) + 1
}

// MakeOrderRequest: мини-генератор валидного заказа: одна физическая позиция.
func MakeOrderRequest(opts ...func(*domain.OrderRequest)) domain.OrderRequest {
	r := domain.OrderRequest{
		CustomerID: UniqCustomerID(),
		Items: []domain.OrderLineItem{
			{ID: 3, Title: "Aliens - Special Edition", Price: decimal.RequireFromString("3.33"), IsPhysicalItem: true},
		},
	}
	for _, fn := range opts {
		fn(&r)
	}
	return r
}

func WithCustomer(id int) func(*domain.OrderRequest) {
	return func(r *domain.OrderRequest) { r.CustomerID = id }
}

// WithMembership: добавить позицию-членство (Book Club / Video Club).
func WithMembership(title string) func(*domain.OrderRequest) {
	return func(r *domain.OrderRequest) {
		r.Items = append(r.Items, domain.OrderLineItem{
			ID: 100 + len(r.Items), Title: title, Price: decimal.RequireFromString("1.11"),
		})
	}
}

// WithItems: n физических позиций с ценами 0.10, 0.20, ...
func WithItems(n int) func(*domain.OrderRequest) {
	return func(r *domain.OrderRequest) {
		r.Items = make([]domain.OrderLineItem, 0, n)
		for i := 0; i < n; i++ {
			r.Items = append(r.Items, domain.OrderLineItem{
				ID:             1000 + i,
				Title:          "Item-" + UniqSuffix(),
				Price:          decimal.New(int64(10*(i+1)), -2),
				IsPhysicalItem: true,
			})
		}
	}
}
