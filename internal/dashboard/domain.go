package dashboard

import "time"

// Stats is the aggregate snapshot shown on the operator dashboard.
type Stats struct {
	TotalOrders     int64     `json:"totalOrders"`
	PendingOrders   int64     `json:"pendingOrders"`
	DeliveredOrders int64     `json:"deliveredOrders"`
	RevenueCents    int64     `json:"revenueCents"`
	ActiveUsers     int64     `json:"activeUsers"`
	GeneratedAt     time.Time `json:"generatedAt"`
}

// RecentOrder is one row of the live order feed.
type RecentOrder struct {
	ID             int64     `json:"id"`
	RestaurantName string    `json:"restaurantName"`
	Status         string    `json:"status"`
	TotalCents     int64     `json:"totalCents"`
	CreatedAt      time.Time `json:"createdAt"`
}
