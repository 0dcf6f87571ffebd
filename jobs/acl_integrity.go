package jobs

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"

	"github.com/ravikiran1811/foodie-hub/internal/acl"
)

// GrantIntegrityJob reports grant rows whose category/action pair carries no
// applicability link. Such grants still authorize at decision time; the scan
// only surfaces them so an operator can relink or remove the pair. It never
// mutates the store.
type GrantIntegrityJob struct {
	Store  acl.Store
	Logger *slog.Logger
}

// NewGrantIntegrityJob wires dependencies for the scan handler.
func NewGrantIntegrityJob(store acl.Store, logger *slog.Logger) *GrantIntegrityJob {
	return &GrantIntegrityJob{Store: store, Logger: logger}
}

// Handle processes integrity scan tasks.
func (j *GrantIntegrityJob) Handle(ctx context.Context, _ *asynq.Task) error {
	if j == nil || j.Store == nil {
		return errors.New("grant integrity: handler not configured")
	}
	logger := j.logger()
	start := time.Now()

	scanCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	links, err := j.Store.ListLinks(scanCtx)
	if err != nil {
		logger.Error("load category-action links", slog.Any("error", err))
		return err
	}
	linked := make(map[[2]int64]bool, len(links))
	for _, l := range links {
		linked[[2]int64{l.CategoryID, l.ActionID}] = true
	}

	roles, err := j.Store.ListRoles(scanCtx)
	if err != nil {
		logger.Error("load roles", slog.Any("error", err))
		return err
	}

	orphans := 0
	for _, role := range roles {
		grants, err := j.Store.ListRoleGrants(scanCtx, role.ID)
		if err != nil {
			logger.Error("load role grants", slog.Int64("role_id", role.ID), slog.Any("error", err))
			return err
		}
		for _, g := range grants {
			if linked[[2]int64{g.CategoryID, g.ActionID}] {
				continue
			}
			orphans++
			logger.Warn("grant references unlinked pair",
				slog.Int64("role_id", g.RoleID),
				slog.String("category", g.CategoryKey),
				slog.String("action", g.ActionKey))
		}
	}

	logger.Info("grant integrity scan completed",
		slog.Int("roles", len(roles)),
		slog.Int("orphans", orphans),
		slog.Duration("duration", time.Since(start)))
	return nil
}

func (j *GrantIntegrityJob) logger() *slog.Logger {
	if j.Logger != nil {
		return j.Logger.With(slog.String("job", TaskGrantIntegrityScan))
	}
	return slog.Default().With(slog.String("job", TaskGrantIntegrityScan))
}
