package payments

import (
	"context"
	"log/slog"
	"strconv"
)

// Service manages a user's stored payment methods.
type Service struct {
	store  Store
	logger *slog.Logger
}

// NewService constructs a Service.
func NewService(store Store, logger *slog.Logger) *Service {
	return &Service{store: store, logger: logger}
}

func (s *Service) Add(ctx context.Context, userID int64, mtype MethodType, label, last4 string) (*Method, error) {
	method, err := s.store.Insert(ctx, Method{
		UserID: userID,
		Type:   mtype,
		Label:  label,
		Last4:  last4,
	}, strconv.FormatInt(userID, 10))
	if err != nil {
		return nil, err
	}
	s.logger.Info("payment method added",
		slog.Int64("user_id", userID),
		slog.String("type", string(mtype)))
	return method, nil
}

func (s *Service) List(ctx context.Context, userID int64) ([]Method, error) {
	return s.store.ListByUser(ctx, userID)
}

// Remove soft-deletes: the row stays for order history, the instrument stops
// being offered.
func (s *Service) Remove(ctx context.Context, userID, id int64) error {
	if err := s.store.Deactivate(ctx, id, userID, strconv.FormatInt(userID, 10)); err != nil {
		return err
	}
	s.logger.Info("payment method removed",
		slog.Int64("user_id", userID),
		slog.Int64("method_id", id))
	return nil
}
