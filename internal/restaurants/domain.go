package restaurants

import (
	"time"

	"github.com/ravikiran1811/foodie-hub/internal/shared"
)

// Restaurant is a storefront visible only inside its own country.
type Restaurant struct {
	ID        int64          `json:"id"`
	Name      string         `json:"name"`
	Address   string         `json:"address"`
	Country   shared.Country `json:"country"`
	IsActive  bool           `json:"isActive"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
}

// MenuItem is a dish offered by a restaurant.
type MenuItem struct {
	ID           int64  `json:"id"`
	RestaurantID int64  `json:"restaurantId"`
	Name         string `json:"name"`
	Description  string `json:"description"`
	PriceCents   int64  `json:"priceCents"`
	IsAvailable  bool   `json:"isAvailable"`
}
