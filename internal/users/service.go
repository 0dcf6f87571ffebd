package users

import (
	"context"
	"log/slog"
	"strconv"

	"github.com/ravikiran1811/foodie-hub/internal/acl"
)

// Service implements user administration. Role assignment is the only
// mutation: an account's entitlements change by repointing its role
// reference, never by editing per-user grants.
type Service struct {
	store  Store
	logger *slog.Logger
}

// NewService constructs a Service.
func NewService(store Store, logger *slog.Logger) *Service {
	return &Service{store: store, logger: logger}
}

func (s *Service) List(ctx context.Context) ([]User, error) {
	return s.store.List(ctx)
}

func (s *Service) Get(ctx context.Context, id int64) (*User, error) {
	return s.store.Get(ctx, id)
}

// AssignRole moves a user onto another role. The change takes effect on the
// next access decision; outstanding tokens need no reissue because decisions
// read the role from the store.
func (s *Service) AssignRole(ctx context.Context, userID, roleID, actorID int64) error {
	ok, err := s.store.RoleExists(ctx, roleID)
	if err != nil {
		return err
	}
	if !ok {
		return acl.ErrRoleNotFound
	}
	if err := s.store.UpdateRole(ctx, userID, roleID, strconv.FormatInt(actorID, 10)); err != nil {
		return err
	}
	s.logger.Info("user role assigned",
		slog.Int64("user_id", userID),
		slog.Int64("role_id", roleID),
		slog.Int64("actor_id", actorID))
	return nil
}
