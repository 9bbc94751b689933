package memory_test

import (
	"context"
	"encoding/json"
	"sync"
	"testing"

	"github.com/Gunvolt24/purchase-order/internal/domain"
	"github.com/Gunvolt24/purchase-order/internal/repo/memory"
	"github.com/Gunvolt24/purchase-order/internal/usecase"
	"github.com/stretchr/testify/require"
)

func TestSeededStore_FindByID(t *testing.T) {
	ctx := context.Background()
	s := memory.NewSeededStore()

	got, err := s.FindByID(ctx, 2)
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Equal(t, 2, got.CustomerID)
	require.Equal(t, []string{"Video Club Membership", "Star Wars - A New Hope", "HTML 5 For Beginners"}, got.Items)
	require.Equal(t, "13.32", got.Total.String())

	missing, err := s.FindByID(ctx, 999)
	require.NoError(t, err)
	require.Nil(t, missing)
}

func TestStore_FindByID_ReturnsCopy(t *testing.T) {
	ctx := context.Background()
	s := memory.NewSeededStore()

	got, err := s.FindByID(ctx, 1)
	require.NoError(t, err)
	got.Items[0] = "mutated"

	again, err := s.FindByID(ctx, 1)
	require.NoError(t, err)
	require.Equal(t, "Book Club Membership", again.Items[0])
}

func TestStore_Persist_SideWrites(t *testing.T) {
	ctx := context.Background()
	s := memory.NewSeededStore()

	req := memory.SampleRequest()
	eff := usecase.DeriveEffects(req)

	got, err := s.Persist(ctx, req, eff)
	require.NoError(t, err)
	require.Equal(t, 6, got.PoID)
	require.Equal(t, "13.32", got.Total.String())

	require.Equal(t, []domain.MembershipType{domain.MembershipBook, domain.MembershipVideo}, s.Memberships(5))

	slips := s.ShippingSlips()
	require.Len(t, slips, 1)
	require.Equal(t, memory.ShippingSlip{PoID: 6, CustomerID: 5, ItemIDs: []int{3, 6}}, slips[0])

	events, err := s.PendingEvents(ctx, 10)
	require.NoError(t, err)
	require.Len(t, events, 2)
	require.Equal(t, domain.EventMembershipActivated, events[0].Kind)
	require.Equal(t, domain.EventShippingSlipRequested, events[1].Kind)

	var slip domain.ShippingSlipRequested
	require.NoError(t, json.Unmarshal(events[1].Payload, &slip))
	require.Equal(t, []int{3, 6}, slip.ItemIDs)

	found, err := s.FindByID(ctx, 6)
	require.NoError(t, err)
	require.Equal(t, got, found)
}

func TestStore_Persist_NoSideWrites(t *testing.T) {
	ctx := context.Background()
	s := memory.NewStore()

	req := &domain.OrderRequest{CustomerID: 9, Items: []domain.OrderLineItem{memory.Catalog()[0]}}
	req.Items[0].Title = "Gift card"

	got, err := s.Persist(ctx, req, usecase.DeriveEffects(req))
	require.NoError(t, err)
	require.Equal(t, 1, got.PoID)
	require.Empty(t, s.Memberships(9))
	require.Empty(t, s.ShippingSlips())

	events, err := s.PendingEvents(ctx, 0)
	require.NoError(t, err)
	require.Empty(t, events)
}

func TestStore_Persist_DeclinesNil(t *testing.T) {
	got, err := memory.NewStore().Persist(context.Background(), nil, domain.Effects{})
	require.NoError(t, err)
	require.Nil(t, got)
}

func TestStore_Persist_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := memory.NewStore().Persist(ctx, memory.SampleRequest(), domain.Effects{})
	require.ErrorIs(t, err, context.Canceled)
}

func TestStore_Persist_ConcurrentUniqueIDs(t *testing.T) {
	ctx := context.Background()
	s := memory.NewSeededStore()

	const n = 50
	ids := make(chan int, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			req := memory.SampleRequest()
			got, err := s.Persist(ctx, req, usecase.DeriveEffects(req))
			if err == nil && got != nil {
				ids <- got.PoID
			}
		}()
	}
	wg.Wait()
	close(ids)

	seen := make(map[int]bool, n)
	for id := range ids {
		require.False(t, seen[id], "duplicate po id %d", id)
		require.GreaterOrEqual(t, id, 6)
		seen[id] = true
	}
	require.Len(t, seen, n)
	require.Len(t, s.ShippingSlips(), n)
}

func TestStore_LastN(t *testing.T) {
	ctx := context.Background()
	s := memory.NewSeededStore()

	got, err := s.LastN(ctx, 2)
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.Equal(t, 5, got[0].PoID)
	require.Equal(t, 4, got[1].PoID)

	all, err := s.LastN(ctx, 100)
	require.NoError(t, err)
	require.Len(t, all, 5)

	none, err := s.LastN(ctx, 0)
	require.NoError(t, err)
	require.Empty(t, none)
}

func TestStore_Outbox_MarkPublished(t *testing.T) {
	ctx := context.Background()
	s := memory.NewStore()

	req := memory.SampleRequest()
	_, err := s.Persist(ctx, req, usecase.DeriveEffects(req))
	require.NoError(t, err)

	first, err := s.PendingEvents(ctx, 1)
	require.NoError(t, err)
	require.Len(t, first, 1)

	require.NoError(t, s.MarkPublished(ctx, []string{first[0].ID, "unknown"}))

	rest, err := s.PendingEvents(ctx, 10)
	require.NoError(t, err)
	require.Len(t, rest, 1)
	require.NotEqual(t, first[0].ID, rest[0].ID)
}

func TestStore_Outbox_PublishedEventsArePruned(t *testing.T) {
	ctx := context.Background()
	s := memory.NewStore()

	for i := 0; i < 3; i++ {
		req := memory.SampleRequest()
		_, err := s.Persist(ctx, req, usecase.DeriveEffects(req))
		require.NoError(t, err)
	}
	require.Equal(t, 6, s.QueuedEvents())

	for s.QueuedEvents() > 0 {
		batch, err := s.PendingEvents(ctx, 4)
		require.NoError(t, err)
		ids := make([]string, 0, len(batch))
		for _, ev := range batch {
			ids = append(ids, ev.ID)
		}
		require.NoError(t, s.MarkPublished(ctx, ids))
	}

	req := memory.SampleRequest()
	created, err := s.Persist(ctx, req, usecase.DeriveEffects(req))
	require.NoError(t, err)

	pending, err := s.PendingEvents(ctx, 0)
	require.NoError(t, err)
	require.Len(t, pending, 2)
	for _, ev := range pending {
		require.Equal(t, created.PoID, ev.PoID)
	}
	require.Equal(t, domain.EventMembershipActivated, pending[0].Kind)
}
