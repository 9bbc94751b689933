package domain

import "github.com/shopspring/decimal"

func init() {
	// Денежные суммы отдаём числом (4.44), а не строкой ("4.44").
	decimal.MarshalJSONWithoutQuotes = true
}

// OrderLineItem: позиция заказа (товар каталога).
type OrderLineItem struct {
	ID             int             `json:"id"`
	Title          string          `json:"title"`
	Price          decimal.Decimal `json:"price"`
	IsPhysicalItem bool            `json:"isPhysicalItem"`
}

// OrderRequest: входящий заказ на покупку.
type OrderRequest struct {
	CustomerID int             `json:"customerId"`
	Items      []OrderLineItem `json:"items"`
}

// Titles: названия позиций в порядке запроса.
func (r *OrderRequest) Titles() []string {
	titles := make([]string, 0, len(r.Items))
	for i := range r.Items {
		titles = append(titles, r.Items[i].Title)
	}
	return titles
}

// Total: точная сумма цен позиций (без округления).
func (r *OrderRequest) Total() decimal.Decimal {
	total := decimal.Zero
	for i := range r.Items {
		total = total.Add(r.Items[i].Price)
	}
	return total
}

// OrderSummary: созданный заказ (read-модель ответа).
type OrderSummary struct {
	PoID       int             `json:"poId"`
	CustomerID int             `json:"customerId"`
	Items      []string        `json:"items"`
	Total      decimal.Decimal `json:"total"`
}

// Clone: глубокая копия (для кэшей и хранилищ).
func (s *OrderSummary) Clone() *OrderSummary {
	if s == nil {
		return nil
	}
	cloned := *s
	if s.Items != nil {
		cloned.Items = append([]string(nil), s.Items...)
	}
	return &cloned
}
