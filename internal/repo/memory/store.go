package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/Gunvolt24/purchase-order/internal/domain"
	"github.com/Gunvolt24/purchase-order/internal/ports"
)

var (
	_ ports.OrderStore   = (*Store)(nil)
	_ ports.RecentOrders = (*Store)(nil)
	_ ports.OutboxStore  = (*Store)(nil)
)

// ShippingSlip: лист отгрузки физических позиций заказа.
type ShippingSlip struct {
	PoID       int
	CustomerID int
	ItemIDs    []int
}

// Store: хранилище заказов в памяти. Все побочные записи заказа
// (членство, лист отгрузки, события) выполняются под одной блокировкой.
type Store struct {
	mu          sync.RWMutex
	orders      map[int]*domain.OrderSummary
	ids         []int // порядок вставки, для LastN
	nextID      int
	memberships map[int][]domain.MembershipType
	slips       []ShippingSlip
	events      []domain.OrderEvent // только неопубликованные, в порядке создания
	now         func() time.Time
}

// NewStore: пустое хранилище, poId начинаются с 1.
func NewStore() *Store {
	return &Store{
		orders:      make(map[int]*domain.OrderSummary),
		nextID:      1,
		memberships: make(map[int][]domain.MembershipType),
		now:         time.Now,
	}
}

// NewSeededStore: хранилище с демонстрационными заказами 1..5; новые poId продолжаются с 6.
func NewSeededStore() *Store {
	s := NewStore()
	for i := range sampleOrders {
		o := sampleOrders[i].Clone()
		s.orders[o.PoID] = o
		s.ids = append(s.ids, o.PoID)
		if o.PoID >= s.nextID {
			s.nextID = o.PoID + 1
		}
	}
	return s
}

// FindByID: (nil, nil), если заказа нет.
func (s *Store) FindByID(ctx context.Context, poID int) (*domain.OrderSummary, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	o, ok := s.orders[poID]
	if !ok {
		return nil, nil
	}
	return o.Clone(), nil
}

// Persist: выдаёт poId и атомарно записывает заказ, членство, лист отгрузки и события.
// Пустой запрос отклоняется: (nil, nil).
func (s *Store) Persist(ctx context.Context, req *domain.OrderRequest, eff domain.Effects) (*domain.OrderSummary, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if req == nil {
		return nil, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	poID := s.nextID
	events, err := domain.SideEffectEvents(poID, req.CustomerID, eff, s.now().UTC())
	if err != nil {
		return nil, err
	}

	summary := &domain.OrderSummary{
		PoID:       poID,
		CustomerID: req.CustomerID,
		Items:      req.Titles(),
		Total:      req.Total(),
	}
	s.nextID++
	s.orders[poID] = summary
	s.ids = append(s.ids, poID)

	for _, m := range eff.Memberships {
		if !hasMembership(s.memberships[req.CustomerID], m) {
			s.memberships[req.CustomerID] = append(s.memberships[req.CustomerID], m)
		}
	}
	if len(eff.PhysicalItemIDs) > 0 {
		s.slips = append(s.slips, ShippingSlip{
			PoID:       poID,
			CustomerID: req.CustomerID,
			ItemIDs:    append([]int(nil), eff.PhysicalItemIDs...),
		})
	}
	s.events = append(s.events, events...)

	return summary.Clone(), nil
}

// LastN: последние n заказов, новые первыми.
func (s *Store) LastN(ctx context.Context, n int) ([]*domain.OrderSummary, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	if n <= 0 {
		return []*domain.OrderSummary{}, nil
	}
	if n > len(s.ids) {
		n = len(s.ids)
	}
	out := make([]*domain.OrderSummary, 0, n)
	for i := len(s.ids) - 1; i >= len(s.ids)-n; i-- {
		out = append(out, s.orders[s.ids[i]].Clone())
	}
	return out, nil
}

// PendingEvents: неопубликованные события в порядке создания.
func (s *Store) PendingEvents(ctx context.Context, limit int) ([]domain.OrderEvent, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	n := len(s.events)
	if limit > 0 && limit < n {
		n = limit
	}
	out := make([]domain.OrderEvent, n)
	copy(out, s.events[:n])
	return out, nil
}

// MarkPublished: убрать опубликованные события из очереди (неизвестные id игнорируются).
func (s *Store) MarkPublished(ctx context.Context, ids []string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(ids) == 0 {
		return nil
	}
	done := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		done[id] = struct{}{}
	}
	kept := s.events[:0]
	for _, ev := range s.events {
		if _, ok := done[ev.ID]; !ok {
			kept = append(kept, ev)
		}
	}
	clear(s.events[len(kept):])
	s.events = kept
	return nil
}

// Memberships: активированные членства клиента (отсортированы).
func (s *Store) Memberships(customerID int) []domain.MembershipType {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := append([]domain.MembershipType(nil), s.memberships[customerID]...)
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// ShippingSlips: копия всех листов отгрузки.
func (s *Store) ShippingSlips() []ShippingSlip {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]ShippingSlip, 0, len(s.slips))
	for _, sl := range s.slips {
		sl.ItemIDs = append([]int(nil), sl.ItemIDs...)
		out = append(out, sl)
	}
	return out
}

func hasMembership(list []domain.MembershipType, m domain.MembershipType) bool {
	for _, x := range list {
		if x == m {
			return true
		}
	}
	return false
}
