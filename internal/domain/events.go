package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// EventKind: тип события побочной записи заказа.
type EventKind string

const (
	EventMembershipActivated   EventKind = "membership.activated"
	EventShippingSlipRequested EventKind = "shipping_slip.requested"
)

// OrderEvent: запись outbox, создаётся в одной атомарной операции с заказом.
type OrderEvent struct {
	ID         string          `json:"id"`
	Kind       EventKind       `json:"kind"`
	PoID       int             `json:"poId"`
	CustomerID int             `json:"customerId"`
	Payload    json.RawMessage `json:"payload"`
	CreatedAt  time.Time       `json:"createdAt"`
}

// MembershipActivated: полезная нагрузка EventMembershipActivated.
type MembershipActivated struct {
	CustomerID  int              `json:"customerId"`
	Memberships []MembershipType `json:"memberships"`
}

// ShippingSlipRequested: полезная нагрузка EventShippingSlipRequested.
type ShippingSlipRequested struct {
	PoID       int   `json:"poId"`
	CustomerID int   `json:"customerId"`
	ItemIDs    []int `json:"itemIds"`
}

// SideEffectEvents: события побочных записей заказа: активация членства (если есть)
// и лист отгрузки (если есть физические товары).
func SideEffectEvents(poID, customerID int, eff Effects, now time.Time) ([]OrderEvent, error) {
	events := make([]OrderEvent, 0, 2)

	if len(eff.Memberships) > 0 {
		payload, err := json.Marshal(MembershipActivated{CustomerID: customerID, Memberships: eff.Memberships})
		if err != nil {
			return nil, err
		}
		events = append(events, OrderEvent{
			ID: uuid.NewString(), Kind: EventMembershipActivated,
			PoID: poID, CustomerID: customerID, Payload: payload, CreatedAt: now,
		})
	}

	if len(eff.PhysicalItemIDs) > 0 {
		payload, err := json.Marshal(ShippingSlipRequested{PoID: poID, CustomerID: customerID, ItemIDs: eff.PhysicalItemIDs})
		if err != nil {
			return nil, err
		}
		events = append(events, OrderEvent{
			ID: uuid.NewString(), Kind: EventShippingSlipRequested,
			PoID: poID, CustomerID: customerID, Payload: payload, CreatedAt: now,
		})
	}

	return events, nil
}
