package dashboard

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Store abstracts dashboard aggregation queries.
type Store interface {
	CollectStats(ctx context.Context) (*Stats, error)
	RecentOrders(ctx context.Context, limit int) ([]RecentOrder, error)
}

// Repository is the PostgreSQL-backed Store.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a Repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

func (r *Repository) CollectStats(ctx context.Context) (*Stats, error) {
	var s Stats
	err := r.pool.QueryRow(ctx, `
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE status = 'PENDING'),
			COUNT(*) FILTER (WHERE status = 'DELIVERED'),
			COALESCE(SUM(total_cents) FILTER (WHERE status = 'DELIVERED'), 0),
			(SELECT COUNT(DISTINCT user_id) FROM orders WHERE created_at > NOW() - INTERVAL '30 days')
		FROM orders`).
		Scan(&s.TotalOrders, &s.PendingOrders, &s.DeliveredOrders, &s.RevenueCents, &s.ActiveUsers)
	if err != nil {
		return nil, err
	}
	s.GeneratedAt = time.Now().UTC()
	return &s, nil
}

func (r *Repository) RecentOrders(ctx context.Context, limit int) ([]RecentOrder, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT o.id, r.name, o.status, o.total_cents, o.created_at
		FROM orders o
		JOIN restaurants r ON r.id = o.restaurant_id
		ORDER BY o.created_at DESC
		LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []RecentOrder
	for rows.Next() {
		var o RecentOrder
		if err := rows.Scan(&o.ID, &o.RestaurantName, &o.Status, &o.TotalCents, &o.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, rows.Err()
}
