package payments

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ravikiran1811/foodie-hub/internal/platform/httpx"
)

// Store abstracts payment method persistence.
type Store interface {
	Insert(ctx context.Context, m Method, actor string) (*Method, error)
	ListByUser(ctx context.Context, userID int64) ([]Method, error)
	Deactivate(ctx context.Context, id, userID int64, actor string) error
}

// Repository is the PostgreSQL-backed Store.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a Repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

func (r *Repository) Insert(ctx context.Context, m Method, actor string) (*Method, error) {
	err := r.pool.QueryRow(ctx, `
		INSERT INTO payment_methods (user_id, type, label, last_4_digits, is_active, created_by, updated_by)
		VALUES ($1, $2, $3, $4, TRUE, $5, $5)
		RETURNING id, is_active, created_at, updated_at`,
		m.UserID, m.Type, m.Label, m.Last4, actor).
		Scan(&m.ID, &m.IsActive, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *Repository) ListByUser(ctx context.Context, userID int64) ([]Method, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, user_id, type, label, last_4_digits, is_active, created_at, updated_at
		FROM payment_methods
		WHERE user_id = $1 AND is_active
		ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Method
	for rows.Next() {
		var m Method
		if err := rows.Scan(&m.ID, &m.UserID, &m.Type, &m.Label, &m.Last4, &m.IsActive, &m.CreatedAt, &m.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

// Deactivate soft-deletes a method. Scoped to the owning user so one account
// can never remove another's instrument.
func (r *Repository) Deactivate(ctx context.Context, id, userID int64, actor string) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE payment_methods SET is_active = FALSE, updated_by = $3, updated_at = NOW()
		WHERE id = $1 AND user_id = $2 AND is_active`, id, userID, actor)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return httpx.ErrNotFound
	}
	return nil
}
