package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/rosterd/rosterd/pkg/core/model"
	"github.com/rosterd/rosterd/pkg/db"
)

// DeleteVersionStore defines the database operations needed to remove a
// version.
type DeleteVersionStore interface {
	GetVersion(ctx context.Context, version int) (*db.VersionRow, error)
	DeleteVersion(ctx context.Context, version int, cascade bool) error
}

// DeleteVersion removes a version and, with cascade, its assignments.
// PUBLISHED versions are protected: deleting one requires force, since the
// published schedule is what the shop floor works from.
func DeleteVersion(ctx context.Context, store DeleteVersionStore, logger *zap.Logger, version int, cascade, force bool) error {
	row, err := store.GetVersion(ctx, version)
	if err != nil {
		return fmt.Errorf("failed to load version %d: %w", version, err)
	}

	if model.VersionStatus(row.Status) == model.VersionPublished && !force {
		return fmt.Errorf("version %d is PUBLISHED - refusing to delete without force", version)
	}

	if err := store.DeleteVersion(ctx, version, cascade); err != nil {
		return fmt.Errorf("failed to delete version %d: %w", version, err)
	}

	logger.Info("Version deleted",
		zap.Int("version", version),
		zap.Bool("cascade", cascade),
		zap.String("status", row.Status))

	return nil
}
