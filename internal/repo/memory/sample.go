package memory

import (
	"github.com/Gunvolt24/purchase-order/internal/domain"
	"github.com/shopspring/decimal"
)

// Демонстрационный каталог.
var sampleCatalog = []domain.OrderLineItem{
	{ID: 1, Title: domain.BookClubMembership, Price: decimal.RequireFromString("1.11")},
	{ID: 2, Title: domain.VideoClubMembership, Price: decimal.RequireFromString("2.22")},
	{ID: 3, Title: "Aliens - Special Edition", Price: decimal.RequireFromString("3.33"), IsPhysicalItem: true},
	{ID: 4, Title: "Star Wars - A New Hope", Price: decimal.RequireFromString("4.44"), IsPhysicalItem: true},
	{ID: 5, Title: "C# 13 For Professionals", Price: decimal.RequireFromString("5.55"), IsPhysicalItem: true},
	{ID: 6, Title: "HTML 5 For Beginners", Price: decimal.RequireFromString("6.66"), IsPhysicalItem: true},
}

// Демонстрационные заказы (poId 1..5). Итоги взяты как есть, без пересчёта.
var sampleOrders = []domain.OrderSummary{
	{PoID: 1, CustomerID: 1, Items: []string{"Book Club Membership", "Aliens - Special Edition"}, Total: decimal.RequireFromString("44.44")},
	{PoID: 2, CustomerID: 2, Items: []string{"Video Club Membership", "Star Wars - A New Hope", "HTML 5 For Beginners"}, Total: decimal.RequireFromString("13.32")},
	{PoID: 3, CustomerID: 3, Items: []string{"Aliens - Special Edition", "C# 13 For Professionals"}, Total: decimal.RequireFromString("8.88")},
	{PoID: 4, CustomerID: 4, Items: []string{"Star Wars - A New Hope", "C# 13 For Professionals", "HTML 5 For Beginners"}, Total: decimal.RequireFromString("16.65")},
	{PoID: 5, CustomerID: 5, Items: []string{"Book Club Membership", "Video Club Membership", "HTML 5 For Beginners", "Aliens - Special Edition"}, Total: decimal.RequireFromString("13.32")},
}

// Catalog: копия демонстрационного каталога.
func Catalog() []domain.OrderLineItem {
	return append([]domain.OrderLineItem(nil), sampleCatalog...)
}

// SampleRequest: пример запроса: клиент 5, позиции 1, 2, 3 и 6 каталога.
func SampleRequest() *domain.OrderRequest {
	byID := make(map[int]domain.OrderLineItem, len(sampleCatalog))
	for _, it := range sampleCatalog {
		byID[it.ID] = it
	}
	return &domain.OrderRequest{
		CustomerID: 5,
		Items:      []domain.OrderLineItem{byID[1], byID[2], byID[3], byID[6]},
	}
}

// SampleOrders: копии демонстрационных заказов 1..5.
func SampleOrders() []*domain.OrderSummary {
	out := make([]*domain.OrderSummary, 0, len(sampleOrders))
	for i := range sampleOrders {
		out = append(out, sampleOrders[i].Clone())
	}
	return out
}
