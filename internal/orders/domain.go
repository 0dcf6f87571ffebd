package orders

import (
	"fmt"
	"time"
)

// Status is the order lifecycle state.
type Status string

const (
	StatusPending   Status = "PENDING"
	StatusConfirmed Status = "CONFIRMED"
	StatusPreparing Status = "PREPARING"
	StatusDelivered Status = "DELIVERED"
	StatusCancelled Status = "CANCELLED"
)

// transitions lists the legal next states per state. Terminal states have no
// entry.
var transitions = map[Status][]Status{
	StatusPending:   {StatusConfirmed, StatusCancelled},
	StatusConfirmed: {StatusPreparing, StatusCancelled},
	StatusPreparing: {StatusDelivered},
}

// CanTransition reports whether moving from into to is a legal step.
func CanTransition(from, to Status) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusPreparing, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

// Order is a placed order with its line items.
type Order struct {
	ID           int64       `json:"id"`
	UserID       int64       `json:"userId"`
	RestaurantID int64       `json:"restaurantId"`
	Status       Status      `json:"status"`
	TotalCents   int64       `json:"totalCents"`
	Items        []OrderItem `json:"items,omitempty"`
	CreatedAt    time.Time   `json:"createdAt"`
	UpdatedAt    time.Time   `json:"updatedAt"`
}

// OrderItem is a single line of an order.
type OrderItem struct {
	ID         int64 `json:"id"`
	OrderID    int64 `json:"orderId"`
	MenuItemID int64 `json:"menuItemId"`
	Quantity   int64 `json:"quantity"`
	PriceCents int64 `json:"priceCents"`
}

// InvalidTransitionError reports an illegal lifecycle step.
type InvalidTransitionError struct {
	From Status
	To   Status
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("cannot move order from %s to %s", e.From, e.To)
}
