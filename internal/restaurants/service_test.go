package restaurants

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ravikiran1811/foodie-hub/internal/platform/httpx"
	"github.com/ravikiran1811/foodie-hub/internal/shared"
)

type memStore struct {
	restaurants []Restaurant
	menus       map[int64][]MenuItem
}

func (m *memStore) ListByCountry(_ context.Context, country shared.Country) ([]Restaurant, error) {
	var out []Restaurant
	for _, r := range m.restaurants {
		if r.Country == country && r.IsActive {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *memStore) GetInCountry(_ context.Context, id int64, country shared.Country) (*Restaurant, error) {
	for _, r := range m.restaurants {
		if r.ID == id && r.Country == country {
			rest := r
			return &rest, nil
		}
	}
	return nil, httpx.ErrNotFound
}

func (m *memStore) ListMenu(_ context.Context, restaurantID int64) ([]MenuItem, error) {
	return m.menus[restaurantID], nil
}

func newTestStore() *memStore {
	return &memStore{
		restaurants: []Restaurant{
			{ID: 1, Name: "Spice Garden", Country: shared.CountryIndia, IsActive: true},
			{ID: 2, Name: "Tandoor House", Country: shared.CountryIndia, IsActive: true},
			{ID: 3, Name: "Burger Barn", Country: shared.CountryAmerica, IsActive: true},
			{ID: 4, Name: "Closed Kitchen", Country: shared.CountryIndia, IsActive: false},
		},
		menus: map[int64][]MenuItem{
			3: {{ID: 10, RestaurantID: 3, Name: "Double Cheeseburger", PriceCents: 899, IsAvailable: true}},
		},
	}
}

func TestListIsCountryScoped(t *testing.T) {
	svc := NewService(newTestStore())

	list, err := svc.List(context.Background(), shared.CountryIndia)
	require.NoError(t, err)
	require.Len(t, list, 2)
	for _, r := range list {
		assert.Equal(t, shared.CountryIndia, r.Country)
	}

	list, err = svc.List(context.Background(), shared.CountryAmerica)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Burger Barn", list[0].Name)
}

func TestGetForeignCountryIsNotFound(t *testing.T) {
	svc := NewService(newTestStore())

	// The American row exists, but to an Indian caller it does not.
	_, err := svc.Get(context.Background(), 3, shared.CountryIndia)
	require.ErrorIs(t, err, httpx.ErrNotFound)

	rest, err := svc.Get(context.Background(), 3, shared.CountryAmerica)
	require.NoError(t, err)
	assert.Equal(t, "Burger Barn", rest.Name)
}

func TestMenuOfForeignRestaurantIsNotFound(t *testing.T) {
	svc := NewService(newTestStore())

	_, err := svc.Menu(context.Background(), 3, shared.CountryIndia)
	require.ErrorIs(t, err, httpx.ErrNotFound)

	menu, err := svc.Menu(context.Background(), 3, shared.CountryAmerica)
	require.NoError(t, err)
	require.Len(t, menu, 1)
	assert.Equal(t, "Double Cheeseburger", menu[0].Name)
}

func TestListOmitsInactive(t *testing.T) {
	svc := NewService(newTestStore())

	list, err := svc.List(context.Background(), shared.CountryIndia)
	require.NoError(t, err)
	for _, r := range list {
		assert.True(t, r.IsActive)
	}
}
