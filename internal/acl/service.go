package acl

import (
	"context"
	"log/slog"
	"strconv"
)

// Service orchestrates authorization decisions, permission projections and
// grant administration over one entitlement store.
type Service struct {
	store  Store
	logger *slog.Logger
}

// NewService constructs a Service backed by the provided store.
func NewService(store Store, logger *slog.Logger) *Service {
	return &Service{store: store, logger: logger}
}

// Authorize is the access decision engine. It allows iff a true grant row
// exists for the principal's role and the required capability, and reports
// denial as a structured error carrying the missing pair. It is read-only
// and never recovers from a denial locally.
func (s *Service) Authorize(ctx context.Context, roleID int64, cap Capability) error {
	if roleID == 0 {
		return ErrUnauthenticated
	}
	granted, err := s.store.GrantExists(ctx, roleID, cap.Category, cap.Action)
	if err != nil {
		// Store failures propagate as infrastructure errors, never as an
		// allow or a deny.
		return err
	}
	if !granted {
		return &DeniedError{Capability: cap}
	}
	return nil
}

// Resolve builds the sparse client-facing permission document for a role:
// one node per category holding at least one true grant, keyed by category
// key, with a boolean per granted action key. Categories without grants are
// omitted entirely.
func (s *Service) Resolve(ctx context.Context, roleID int64) (PermissionDocument, error) {
	grants, err := s.store.ListRoleGrants(ctx, roleID)
	if err != nil {
		return nil, err
	}

	doc := make(PermissionDocument)
	for _, g := range grants {
		node, ok := doc[g.CategoryKey]
		if !ok {
			node = PermissionNode{"parent": g.CategoryKey}
			doc[g.CategoryKey] = node
		}
		node[g.ActionKey] = true
	}
	return doc, nil
}

// ResolveFull builds the exhaustive matrix for the administration UI: every
// known category crossed with every known action, each cell true only if a
// true grant row exists for that exact pair. Both projections derive from
// the same grant rows; there is no second cache to drift.
func (s *Service) ResolveFull(ctx context.Context, roleID int64) (Matrix, error) {
	role, err := s.store.GetRole(ctx, roleID)
	if err != nil {
		return Matrix{}, err
	}

	categories, err := s.store.ListCategories(ctx)
	if err != nil {
		return Matrix{}, err
	}
	actions, err := s.store.ListActions(ctx)
	if err != nil {
		return Matrix{}, err
	}
	grants, err := s.store.ListRoleGrants(ctx, roleID)
	if err != nil {
		return Matrix{}, err
	}

	granted := make(map[string]struct{}, len(grants))
	for _, g := range grants {
		granted[g.CategoryKey+"\x00"+g.ActionKey] = struct{}{}
	}

	matrix := Matrix{
		Role:        role,
		Permissions: make(map[string]map[string]bool, len(categories)),
		Categories:  categories,
		Actions:     actions,
	}
	for _, c := range categories {
		cells := make(map[string]bool, len(actions))
		for _, a := range actions {
			_, ok := granted[c.Key+"\x00"+a.Key]
			cells[a.Key] = ok
		}
		matrix.Permissions[c.Key] = cells
	}
	return matrix, nil
}

// ListRoles returns all roles.
func (s *Service) ListRoles(ctx context.Context) ([]Role, error) {
	return s.store.ListRoles(ctx)
}

// CategoriesAndActions returns the reference data needed to render the
// grant matrix editor.
func (s *Service) CategoriesAndActions(ctx context.Context) ([]Category, []Action, error) {
	categories, err := s.store.ListCategories(ctx)
	if err != nil {
		return nil, nil, err
	}
	actions, err := s.store.ListActions(ctx)
	if err != nil {
		return nil, nil, err
	}
	return categories, actions, nil
}

// ReplaceGrants atomically replaces the role's entire grant set with the
// supplied pairs. Not a merge. Fails with ErrRoleNotFound before touching
// any row; no partial replacement is ever persisted.
func (s *Service) ReplaceGrants(ctx context.Context, roleID int64, pairs []GrantPair, actorID int64) (int, error) {
	count, err := s.store.ReplaceGrants(ctx, roleID, pairs, actorName(actorID))
	if err != nil {
		return 0, err
	}
	s.logger.Info("role grants replaced",
		slog.Int64("role_id", roleID),
		slog.Int("count", count),
		slog.Int64("actor_id", actorID))
	return count, nil
}

// AddGrant inserts a single true grant. Idempotent: an identical existing
// grant yields AlreadyExists rather than an error, and leaves the store
// unchanged.
func (s *Service) AddGrant(ctx context.Context, roleID, categoryID, actionID, actorID int64) (AddOutcome, error) {
	inserted, err := s.store.InsertGrant(ctx, roleID, categoryID, actionID, actorName(actorID))
	if err != nil {
		return AlreadyExists, err
	}
	if !inserted {
		return AlreadyExists, nil
	}
	s.logger.Info("grant added",
		slog.Int64("role_id", roleID),
		slog.Int64("category_id", categoryID),
		slog.Int64("action_id", actionID),
		slog.Int64("actor_id", actorID))
	return Added, nil
}

// RemoveGrant deletes a single grant row. Fails with ErrGrantNotFound when
// no such grant existed; the store is left unchanged in that case.
func (s *Service) RemoveGrant(ctx context.Context, roleID, categoryID, actionID int64) error {
	affected, err := s.store.DeleteGrant(ctx, roleID, categoryID, actionID)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrGrantNotFound
	}
	s.logger.Info("grant removed",
		slog.Int64("role_id", roleID),
		slog.Int64("category_id", categoryID),
		slog.Int64("action_id", actionID))
	return nil
}

func actorName(actorID int64) string {
	return strconv.FormatInt(actorID, 10)
}
