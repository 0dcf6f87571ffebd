package restaurants

import (
	"context"

	"github.com/ravikiran1811/foodie-hub/internal/shared"
)

// Service scopes every restaurant read to the caller's country. The scope is
// data partitioning, orthogonal to role grants: a caller with full read
// grants still only sees their own country's rows.
type Service struct {
	store Store
}

// NewService constructs a Service.
func NewService(store Store) *Service {
	return &Service{store: store}
}

func (s *Service) List(ctx context.Context, country shared.Country) ([]Restaurant, error) {
	return s.store.ListByCountry(ctx, country)
}

func (s *Service) Get(ctx context.Context, id int64, country shared.Country) (*Restaurant, error) {
	return s.store.GetInCountry(ctx, id, country)
}

// Menu lists the dishes of a restaurant. The restaurant is looked up within
// the caller's country first so a foreign restaurant's menu is as invisible
// as the restaurant itself.
func (s *Service) Menu(ctx context.Context, restaurantID int64, country shared.Country) ([]MenuItem, error) {
	if _, err := s.store.GetInCountry(ctx, restaurantID, country); err != nil {
		return nil, err
	}
	return s.store.ListMenu(ctx, restaurantID)
}
