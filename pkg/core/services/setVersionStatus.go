package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/rosterd/rosterd/pkg/core/model"
	"github.com/rosterd/rosterd/pkg/db"
)

// ErrInvalidStatus is returned when a requested lifecycle transition is not
// permitted.
var ErrInvalidStatus = errors.New("INVALID_STATUS")

// VersionLifecycleStore defines the database operations for version status
// changes.
type VersionLifecycleStore interface {
	GetVersion(ctx context.Context, version int) (*db.VersionRow, error)
	UpdateVersionStatus(ctx context.Context, version int, status string) error
	UpdateVersionNotes(ctx context.Context, version int, notes string) error
	ListPublishedOverlapping(ctx context.Context, rangeStart, rangeEnd time.Time) ([]db.VersionRow, error)
}

// SetVersionStatus transitions a version through its lifecycle. Only
// DRAFT->PUBLISHED, DRAFT->ARCHIVED and PUBLISHED->ARCHIVED are allowed.
// Publishing a version whose horizon overlaps an already PUBLISHED one
// succeeds but returns advisory warnings naming the overlaps.
func SetVersionStatus(ctx context.Context, store VersionLifecycleStore, logger *zap.Logger, version int, status model.VersionStatus) ([]string, error) {
	if !status.IsValid() {
		return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidStatus, status)
	}

	row, err := store.GetVersion(ctx, version)
	if err != nil {
		return nil, fmt.Errorf("failed to load version %d: %w", version, err)
	}

	current := model.VersionStatus(row.Status)
	if !current.CanTransitionTo(status) {
		return nil, fmt.Errorf("%w: cannot transition version %d from %s to %s", ErrInvalidStatus, version, current, status)
	}

	var warnings []string
	if status == model.VersionPublished {
		overlapping, err := store.ListPublishedOverlapping(ctx, row.DateRangeStart, row.DateRangeEnd)
		if err != nil {
			return nil, fmt.Errorf("failed to check published overlaps: %w", err)
		}
		for _, other := range overlapping {
			if other.Version == version {
				continue
			}
			warnings = append(warnings, fmt.Sprintf("published version %d already covers %s..%s",
				other.Version, other.DateRangeStart.Format("2006-01-02"), other.DateRangeEnd.Format("2006-01-02")))
		}
	}

	if err := store.UpdateVersionStatus(ctx, version, string(status)); err != nil {
		return nil, fmt.Errorf("failed to update version %d status: %w", version, err)
	}

	logger.Info("Version status updated",
		zap.Int("version", version),
		zap.String("from", string(current)),
		zap.String("to", string(status)),
		zap.Int("overlap_warnings", len(warnings)))

	return warnings, nil
}

// SetVersionNotes replaces a version's notes. Notes stay editable in every
// lifecycle state, including PUBLISHED.
func SetVersionNotes(ctx context.Context, store VersionLifecycleStore, logger *zap.Logger, version int, notes string) error {
	if _, err := store.GetVersion(ctx, version); err != nil {
		return fmt.Errorf("failed to load version %d: %w", version, err)
	}
	if err := store.UpdateVersionNotes(ctx, version, notes); err != nil {
		return fmt.Errorf("failed to update version %d notes: %w", version, err)
	}
	logger.Debug("Version notes updated", zap.Int("version", version))
	return nil
}
