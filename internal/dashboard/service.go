package dashboard

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	statsCacheKey = "dashboard:stats"
	statsCacheTTL = 30 * time.Second

	recentOrdersLimit = 20
)

// Service serves dashboard reads. Stats are cached briefly in redis since
// the aggregation scans the whole orders table; the recent-order feed is
// always live. Permission documents are never cached here, only aggregates.
type Service struct {
	store  Store
	rdb    *redis.Client
	logger *slog.Logger
}

// NewService constructs a Service.
func NewService(store Store, rdb *redis.Client, logger *slog.Logger) *Service {
	return &Service{store: store, rdb: rdb, logger: logger}
}

// Stats returns the cached snapshot, recomputing it at most every 30s. Cache
// failures degrade to a live read.
func (s *Service) Stats(ctx context.Context) (*Stats, error) {
	raw, err := s.rdb.Get(ctx, statsCacheKey).Bytes()
	if err == nil {
		var cached Stats
		if err := json.Unmarshal(raw, &cached); err == nil {
			return &cached, nil
		}
	} else if !errors.Is(err, redis.Nil) {
		s.logger.Warn("stats cache read failed", slog.Any("error", err))
	}

	stats, err := s.store.CollectStats(ctx)
	if err != nil {
		return nil, err
	}
	if encoded, err := json.Marshal(stats); err == nil {
		if err := s.rdb.Set(ctx, statsCacheKey, encoded, statsCacheTTL).Err(); err != nil {
			s.logger.Warn("stats cache write failed", slog.Any("error", err))
		}
	}
	return stats, nil
}

// Refresh recomputes the snapshot and overwrites the cache unconditionally.
// Used by the background warmup job so interactive reads mostly hit cache.
func (s *Service) Refresh(ctx context.Context) error {
	stats, err := s.store.CollectStats(ctx)
	if err != nil {
		return err
	}
	encoded, err := json.Marshal(stats)
	if err != nil {
		return err
	}
	return s.rdb.Set(ctx, statsCacheKey, encoded, statsCacheTTL).Err()
}

func (s *Service) RecentOrders(ctx context.Context) ([]RecentOrder, error) {
	return s.store.RecentOrders(ctx, recentOrdersLimit)
}
