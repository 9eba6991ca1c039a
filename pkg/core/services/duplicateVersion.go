package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/rosterd/rosterd/pkg/db"
)

// DuplicateVersionStore defines the database operations needed to copy a
// version.
type DuplicateVersionStore interface {
	GetVersion(ctx context.Context, version int) (*db.VersionRow, error)
	DuplicateVersion(ctx context.Context, sourceVersion int, notes string) (int, error)
}

// DuplicateVersion copies an existing version into a fresh DRAFT with a new
// version number. The copy records its source so edits can be traced back.
func DuplicateVersion(ctx context.Context, store DuplicateVersionStore, logger *zap.Logger, sourceVersion int, notes string) (int, error) {
	source, err := store.GetVersion(ctx, sourceVersion)
	if err != nil {
		return 0, fmt.Errorf("failed to load version %d: %w", sourceVersion, err)
	}

	if notes == "" {
		notes = fmt.Sprintf("duplicated from version %d", source.Version)
	}

	newVersion, err := store.DuplicateVersion(ctx, sourceVersion, notes)
	if err != nil {
		return 0, fmt.Errorf("failed to duplicate version %d: %w", sourceVersion, err)
	}

	logger.Info("Version duplicated",
		zap.Int("source_version", sourceVersion),
		zap.Int("new_version", newVersion))

	return newVersion, nil
}
