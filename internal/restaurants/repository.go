package restaurants

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ravikiran1811/foodie-hub/internal/platform/httpx"
	"github.com/ravikiran1811/foodie-hub/internal/shared"
)

// Store abstracts restaurant persistence. Every read takes the caller's
// country; rows outside it are invisible, not forbidden.
type Store interface {
	ListByCountry(ctx context.Context, country shared.Country) ([]Restaurant, error)
	GetInCountry(ctx context.Context, id int64, country shared.Country) (*Restaurant, error)
	ListMenu(ctx context.Context, restaurantID int64) ([]MenuItem, error)
}

// Repository is the PostgreSQL-backed Store.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a Repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

func (r *Repository) ListByCountry(ctx context.Context, country shared.Country) ([]Restaurant, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, name, address, country, is_active, created_at, updated_at
		FROM restaurants
		WHERE country = $1 AND is_active
		ORDER BY name`, country)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Restaurant
	for rows.Next() {
		var rest Restaurant
		if err := rows.Scan(&rest.ID, &rest.Name, &rest.Address, &rest.Country, &rest.IsActive, &rest.CreatedAt, &rest.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, rest)
	}
	return out, rows.Err()
}

func (r *Repository) GetInCountry(ctx context.Context, id int64, country shared.Country) (*Restaurant, error) {
	var rest Restaurant
	err := r.pool.QueryRow(ctx, `
		SELECT id, name, address, country, is_active, created_at, updated_at
		FROM restaurants
		WHERE id = $1 AND country = $2`, id, country).
		Scan(&rest.ID, &rest.Name, &rest.Address, &rest.Country, &rest.IsActive, &rest.CreatedAt, &rest.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, httpx.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &rest, nil
}

func (r *Repository) ListMenu(ctx context.Context, restaurantID int64) ([]MenuItem, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, restaurant_id, name, description, price_cents, is_available
		FROM menu_items
		WHERE restaurant_id = $1 AND is_available
		ORDER BY name`, restaurantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []MenuItem
	for rows.Next() {
		var item MenuItem
		if err := rows.Scan(&item.ID, &item.RestaurantID, &item.Name, &item.Description, &item.PriceCents, &item.IsAvailable); err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	return out, rows.Err()
}
