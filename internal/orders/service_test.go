package orders

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ravikiran1811/foodie-hub/internal/acl"
	"github.com/ravikiran1811/foodie-hub/internal/platform/httpx"
	"github.com/ravikiran1811/foodie-hub/internal/shared"
)

type memStore struct {
	orders map[int64]*Order
	nextID int64
}

func newMemStore() *memStore {
	return &memStore{orders: make(map[int64]*Order), nextID: 1}
}

func (m *memStore) Create(_ context.Context, order Order, _ string) (*Order, error) {
	order.ID = m.nextID
	m.nextID++
	for i := range order.Items {
		order.Items[i].OrderID = order.ID
	}
	stored := order
	m.orders[order.ID] = &stored
	return &order, nil
}

func (m *memStore) Get(_ context.Context, id int64) (*Order, error) {
	order, ok := m.orders[id]
	if !ok {
		return nil, httpx.ErrNotFound
	}
	copied := *order
	return &copied, nil
}

func (m *memStore) ListByUser(_ context.Context, userID int64) ([]Order, error) {
	var out []Order
	for _, order := range m.orders {
		if order.UserID == userID {
			out = append(out, *order)
		}
	}
	return out, nil
}

func (m *memStore) ListAll(_ context.Context) ([]Order, error) {
	var out []Order
	for _, order := range m.orders {
		out = append(out, *order)
	}
	return out, nil
}

func (m *memStore) UpdateStatus(_ context.Context, id int64, status Status, _ string) error {
	order, ok := m.orders[id]
	if !ok {
		return httpx.ErrNotFound
	}
	order.Status = status
	return nil
}

// grantAuthorizer allows exactly the capabilities in its set.
type grantAuthorizer struct {
	granted map[string]bool
}

func (a *grantAuthorizer) Authorize(_ context.Context, _ int64, cap acl.Capability) error {
	if a.granted[cap.String()] {
		return nil
	}
	return &acl.DeniedError{Capability: cap}
}

type failingAuthorizer struct{}

func (failingAuthorizer) Authorize(context.Context, int64, acl.Capability) error {
	return errors.New("store unavailable")
}

func newTestService(store Store, auth acl.Authorizer) *Service {
	return NewService(store, auth, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func member(id int64) *shared.Principal {
	return &shared.Principal{ID: id, RoleID: 3, Country: shared.CountryIndia}
}

func seedOrders(t *testing.T, store *memStore) {
	t.Helper()
	for _, o := range []Order{
		{UserID: 1, RestaurantID: 1, Status: StatusPending, TotalCents: 1000},
		{UserID: 1, RestaurantID: 2, Status: StatusConfirmed, TotalCents: 2000},
		{UserID: 2, RestaurantID: 1, Status: StatusPending, TotalCents: 3000},
	} {
		_, err := store.Create(context.Background(), o, "seed")
		require.NoError(t, err)
	}
}

func TestCreateStartsPendingWithComputedTotal(t *testing.T) {
	store := newMemStore()
	svc := newTestService(store, &grantAuthorizer{})

	order, err := svc.Create(context.Background(), member(1), 7, []OrderItem{
		{MenuItemID: 1, Quantity: 2, PriceCents: 450},
		{MenuItemID: 2, Quantity: 1, PriceCents: 900},
	})
	require.NoError(t, err)
	assert.Equal(t, StatusPending, order.Status)
	assert.Equal(t, int64(1800), order.TotalCents)
	assert.Equal(t, int64(1), order.UserID)
}

func TestListOwnOrdersWithoutExport(t *testing.T) {
	store := newMemStore()
	seedOrders(t, store)
	svc := newTestService(store, &grantAuthorizer{})

	list, err := svc.List(context.Background(), member(1))
	require.NoError(t, err)
	require.Len(t, list, 2)
	for _, o := range list {
		assert.Equal(t, int64(1), o.UserID)
	}
}

func TestListAllOrdersWithExport(t *testing.T) {
	store := newMemStore()
	seedOrders(t, store)
	auth := &grantAuthorizer{granted: map[string]bool{
		acl.Cap(shared.CategoryOrders, shared.ActionExport).String(): true,
	}}
	svc := newTestService(store, auth)

	list, err := svc.List(context.Background(), member(1))
	require.NoError(t, err)
	assert.Len(t, list, 3)
}

func TestListFailsWhenWideningCannotBeDecided(t *testing.T) {
	store := newMemStore()
	seedOrders(t, store)
	svc := newTestService(store, failingAuthorizer{})

	_, err := svc.List(context.Background(), member(1))
	require.Error(t, err)
}

func TestGetForeignOrderIsNotFoundWithoutExport(t *testing.T) {
	store := newMemStore()
	seedOrders(t, store)
	svc := newTestService(store, &grantAuthorizer{})

	_, err := svc.Get(context.Background(), member(1), 3)
	require.ErrorIs(t, err, httpx.ErrNotFound)
}

func TestStatusTransitions(t *testing.T) {
	store := newMemStore()
	seedOrders(t, store)
	svc := newTestService(store, &grantAuthorizer{})

	order, err := svc.UpdateStatus(context.Background(), 9, 1, StatusConfirmed)
	require.NoError(t, err)
	assert.Equal(t, StatusConfirmed, order.Status)

	_, err = svc.UpdateStatus(context.Background(), 9, 1, StatusDelivered)
	var transition *InvalidTransitionError
	require.ErrorAs(t, err, &transition)
	assert.Equal(t, StatusConfirmed, transition.From)
	assert.Equal(t, StatusDelivered, transition.To)
}

func TestCancelDeliveredOrderRejected(t *testing.T) {
	store := newMemStore()
	svc := newTestService(store, &grantAuthorizer{})
	created, err := store.Create(context.Background(), Order{UserID: 1, Status: StatusDelivered}, "seed")
	require.NoError(t, err)

	_, err = svc.Cancel(context.Background(), 9, created.ID)
	var transition *InvalidTransitionError
	require.ErrorAs(t, err, &transition)
}

func TestCancelPendingOrder(t *testing.T) {
	store := newMemStore()
	seedOrders(t, store)
	svc := newTestService(store, &grantAuthorizer{})

	order, err := svc.Cancel(context.Background(), 1, 1)
	require.NoError(t, err)
	assert.Equal(t, StatusCancelled, order.Status)
}
