package acl

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ravikiran1811/foodie-hub/internal/platform/db"
)

// Store is the entitlement store contract consumed by the Service. All
// lookups join grants to categories and actions so callers work with keys;
// raw IDs only appear on the administration write path.
type Store interface {
	GrantExists(ctx context.Context, roleID int64, categoryKey, actionKey string) (bool, error)
	ListRoleGrants(ctx context.Context, roleID int64) ([]Grant, error)
	ListCategories(ctx context.Context) ([]Category, error)
	ListActions(ctx context.Context) ([]Action, error)
	ListRoles(ctx context.Context) ([]Role, error)
	GetRole(ctx context.Context, id int64) (Role, error)
	ReplaceGrants(ctx context.Context, roleID int64, pairs []GrantPair, actor string) (int, error)
	InsertGrant(ctx context.Context, roleID, categoryID, actionID int64, actor string) (bool, error)
	DeleteGrant(ctx context.Context, roleID, categoryID, actionID int64) (int64, error)
	ListLinks(ctx context.Context) ([]CategoryActionLink, error)
}

// Repository provides PostgreSQL backed persistence for the entitlement
// store.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

var _ Store = (*Repository)(nil)

// GrantExists reports whether a true grant row exists for the role matched
// by category/action keys. A pair with no category-action link denies here
// too, since no grant row can reference it.
func (r *Repository) GrantExists(ctx context.Context, roleID int64, categoryKey, actionKey string) (bool, error) {
	const query = `
		SELECT EXISTS (
			SELECT 1
			FROM role_grants rg
			JOIN acl_categories c ON c.id = rg.category_id
			JOIN acl_actions a ON a.id = rg.action_id
			WHERE rg.role_id = $1
			  AND c.category_key = $2
			  AND a.action_key = $3
			  AND rg.is_allowed
		)`
	var exists bool
	if err := r.pool.QueryRow(ctx, query, roleID, categoryKey, actionKey).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

// ListRoleGrants returns all currently-true grants for a role with their
// category and action keys resolved.
func (r *Repository) ListRoleGrants(ctx context.Context, roleID int64) ([]Grant, error) {
	const query = `
		SELECT rg.role_id, rg.category_id, rg.action_id, c.category_key, a.action_key, rg.is_allowed
		FROM role_grants rg
		JOIN acl_categories c ON c.id = rg.category_id
		JOIN acl_actions a ON a.id = rg.action_id
		WHERE rg.role_id = $1 AND rg.is_allowed
		ORDER BY c.category_key, a.action_key`
	rows, err := r.pool.Query(ctx, query, roleID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var grants []Grant
	for rows.Next() {
		var g Grant
		if err := rows.Scan(&g.RoleID, &g.CategoryID, &g.ActionID, &g.CategoryKey, &g.ActionKey, &g.IsAllowed); err != nil {
			return nil, err
		}
		grants = append(grants, g)
	}
	return grants, rows.Err()
}

// ListCategories returns reference data ordered alphabetically by display
// name.
func (r *Repository) ListCategories(ctx context.Context) ([]Category, error) {
	const query = `
		SELECT id, name, category_key, description, created_at, updated_at
		FROM acl_categories
		ORDER BY name`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []Category
	for rows.Next() {
		var c Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Key, &c.Description, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

// ListActions returns reference data ordered by action key.
func (r *Repository) ListActions(ctx context.Context) ([]Action, error) {
	const query = `
		SELECT id, name, action_key, description, created_at, updated_at
		FROM acl_actions
		ORDER BY action_key`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var actions []Action
	for rows.Next() {
		var a Action
		if err := rows.Scan(&a.ID, &a.Name, &a.Key, &a.Description, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, err
		}
		actions = append(actions, a)
	}
	return actions, rows.Err()
}

// ListRoles returns all roles ordered by ID.
func (r *Repository) ListRoles(ctx context.Context) ([]Role, error) {
	const query = `SELECT id, name, description, created_at, updated_at FROM roles ORDER BY id`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var roles []Role
	for rows.Next() {
		var role Role
		if err := rows.Scan(&role.ID, &role.Name, &role.Description, &role.CreatedAt, &role.UpdatedAt); err != nil {
			return nil, err
		}
		roles = append(roles, role)
	}
	return roles, rows.Err()
}

// GetRole fetches a role by ID.
func (r *Repository) GetRole(ctx context.Context, id int64) (Role, error) {
	const query = `SELECT id, name, description, created_at, updated_at FROM roles WHERE id = $1`
	var role Role
	err := r.pool.QueryRow(ctx, query, id).Scan(&role.ID, &role.Name, &role.Description, &role.CreatedAt, &role.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Role{}, ErrRoleNotFound
		}
		return Role{}, err
	}
	return role, nil
}

// ReplaceGrants atomically swaps the role's full grant set: delete all, then
// insert one true row per pair, in a single transaction. A concurrent
// GrantExists observes either the complete old set or the complete new set.
func (r *Repository) ReplaceGrants(ctx context.Context, roleID int64, pairs []GrantPair, actor string) (int, error) {
	count := 0
	err := db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		var id int64
		if err := tx.QueryRow(ctx, `SELECT id FROM roles WHERE id = $1`, roleID).Scan(&id); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return ErrRoleNotFound
			}
			return err
		}

		if _, err := tx.Exec(ctx, `DELETE FROM role_grants WHERE role_id = $1`, roleID); err != nil {
			return err
		}

		const insert = `
			INSERT INTO role_grants (role_id, category_id, action_id, is_allowed, created_by, updated_by)
			VALUES ($1, $2, $3, TRUE, $4, $4)`
		for _, pair := range pairs {
			if _, err := tx.Exec(ctx, insert, roleID, pair.CategoryID, pair.ActionID, actor); err != nil {
				return err
			}
			count++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return count, nil
}

// InsertGrant inserts a single true grant row. Returns false when an
// identical row already exists.
func (r *Repository) InsertGrant(ctx context.Context, roleID, categoryID, actionID int64, actor string) (bool, error) {
	const query = `
		INSERT INTO role_grants (role_id, category_id, action_id, is_allowed, created_by, updated_by)
		VALUES ($1, $2, $3, TRUE, $4, $4)
		ON CONFLICT ON CONSTRAINT role_grants_triple_key DO NOTHING`
	tag, err := r.pool.Exec(ctx, query, roleID, categoryID, actionID, actor)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// DeleteGrant removes a single grant row and reports affected rows.
func (r *Repository) DeleteGrant(ctx context.Context, roleID, categoryID, actionID int64) (int64, error) {
	const query = `DELETE FROM role_grants WHERE role_id = $1 AND category_id = $2 AND action_id = $3`
	tag, err := r.pool.Exec(ctx, query, roleID, categoryID, actionID)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

// ListLinks returns all category-action applicability declarations.
func (r *Repository) ListLinks(ctx context.Context) ([]CategoryActionLink, error) {
	const query = `SELECT category_id, action_id FROM acl_category_actions ORDER BY category_id, action_id`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var links []CategoryActionLink
	for rows.Next() {
		var l CategoryActionLink
		if err := rows.Scan(&l.CategoryID, &l.ActionID); err != nil {
			return nil, err
		}
		links = append(links, l)
	}
	return links, rows.Err()
}
