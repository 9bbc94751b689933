package outbox_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"

	"github.com/Gunvolt24/purchase-order/internal/domain"
	"github.com/Gunvolt24/purchase-order/internal/outbox"
	"github.com/Gunvolt24/purchase-order/internal/ports/mocks"
	"github.com/Gunvolt24/purchase-order/pkg/metrics"
)

type nopLogger struct{}

func (nopLogger) Infof(context.Context, string, ...any)  {}
func (nopLogger) Warnf(context.Context, string, ...any)  {}
func (nopLogger) Errorf(context.Context, string, ...any) {}

func events() []domain.OrderEvent {
	return []domain.OrderEvent{
		{ID: "e1", Kind: domain.EventMembershipActivated, PoID: 6, CustomerID: 5},
		{ID: "e2", Kind: domain.EventShippingSlipRequested, PoID: 6, CustomerID: 5},
	}
}

func TestPublishPending_AllPublishedAndMarked(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mocks.NewMockOutboxStore(ctrl)
	pub := mocks.NewMockEventPublisher(ctrl)

	before := testutil.ToFloat64(metrics.OutboxPublished.WithLabelValues(string(domain.EventShippingSlipRequested)))

	evs := events()
	gomock.InOrder(
		store.EXPECT().PendingEvents(gomock.Any(), 10).Return(evs, nil),
		pub.EXPECT().Publish(gomock.Any(), evs[0]).Return(nil),
		pub.EXPECT().Publish(gomock.Any(), evs[1]).Return(nil),
		store.EXPECT().MarkPublished(gomock.Any(), []string{"e1", "e2"}).Return(nil),
	)

	r := outbox.NewRelay(store, pub, nopLogger{}, outbox.Config{BatchSize: 10})
	n, err := r.PublishPending(context.Background())
	require.NoError(t, err)
	require.Equal(t, 2, n)

	after := testutil.ToFloat64(metrics.OutboxPublished.WithLabelValues(string(domain.EventShippingSlipRequested)))
	require.Equal(t, before+1, after)
}

func TestPublishPending_Empty_NoMark(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mocks.NewMockOutboxStore(ctrl)
	pub := mocks.NewMockEventPublisher(ctrl)

	store.EXPECT().PendingEvents(gomock.Any(), 100).Return(nil, nil)

	r := outbox.NewRelay(store, pub, nopLogger{}, outbox.Config{})
	n, err := r.PublishPending(context.Background())
	require.NoError(t, err)
	require.Zero(t, n)
}

func TestPublishPending_StopsOnFirstFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mocks.NewMockOutboxStore(ctrl)
	pub := mocks.NewMockEventPublisher(ctrl)

	boom := errors.New("broker unavailable")
	evs := events()
	gomock.InOrder(
		store.EXPECT().PendingEvents(gomock.Any(), gomock.Any()).Return(evs, nil),
		pub.EXPECT().Publish(gomock.Any(), evs[0]).Return(nil),
		pub.EXPECT().Publish(gomock.Any(), evs[1]).Return(boom),
		// помечаем только то, что ушло
		store.EXPECT().MarkPublished(gomock.Any(), []string{"e1"}).Return(nil),
	)

	r := outbox.NewRelay(store, pub, nopLogger{}, outbox.Config{})
	n, err := r.PublishPending(context.Background())
	require.ErrorIs(t, err, boom)
	require.Equal(t, 1, n)
}

func TestPublishPending_FirstFails_NothingMarked(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mocks.NewMockOutboxStore(ctrl)
	pub := mocks.NewMockEventPublisher(ctrl)

	boom := errors.New("broker unavailable")
	evs := events()
	store.EXPECT().PendingEvents(gomock.Any(), gomock.Any()).Return(evs, nil)
	pub.EXPECT().Publish(gomock.Any(), evs[0]).Return(boom)
	// MarkPublished не ожидается

	r := outbox.NewRelay(store, pub, nopLogger{}, outbox.Config{})
	n, err := r.PublishPending(context.Background())
	require.ErrorIs(t, err, boom)
	require.Zero(t, n)
}

func TestPublishPending_StoreErrors(t *testing.T) {
	t.Run("pending", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		store := mocks.NewMockOutboxStore(ctrl)
		pub := mocks.NewMockEventPublisher(ctrl)

		boom := errors.New("db down")
		store.EXPECT().PendingEvents(gomock.Any(), gomock.Any()).Return(nil, boom)

		_, err := outbox.NewRelay(store, pub, nopLogger{}, outbox.Config{}).PublishPending(context.Background())
		require.ErrorIs(t, err, boom)
	})

	t.Run("mark", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		store := mocks.NewMockOutboxStore(ctrl)
		pub := mocks.NewMockEventPublisher(ctrl)

		boom := errors.New("db down")
		evs := events()[:1]
		store.EXPECT().PendingEvents(gomock.Any(), gomock.Any()).Return(evs, nil)
		pub.EXPECT().Publish(gomock.Any(), evs[0]).Return(nil)
		store.EXPECT().MarkPublished(gomock.Any(), []string{"e1"}).Return(boom)

		n, err := outbox.NewRelay(store, pub, nopLogger{}, outbox.Config{}).PublishPending(context.Background())
		require.ErrorIs(t, err, boom)
		require.Zero(t, n)
	})
}

func TestRun_PollsUntilCancel(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mocks.NewMockOutboxStore(ctrl)
	pub := mocks.NewMockEventPublisher(ctrl)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	calls := 0
	store.EXPECT().PendingEvents(gomock.Any(), gomock.Any()).
		DoAndReturn(func(context.Context, int) ([]domain.OrderEvent, error) {
			calls++
			if calls == 3 {
				cancel()
			}
			return nil, nil
		}).MinTimes(3)

	r := outbox.NewRelay(store, pub, nopLogger{}, outbox.Config{PollInterval: 5 * time.Millisecond})

	errCh := make(chan error, 1)
	go func() { errCh <- r.Run(ctx) }()

	select {
	case err := <-errCh:
		require.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("timeout waiting for Run to stop")
	}
}
