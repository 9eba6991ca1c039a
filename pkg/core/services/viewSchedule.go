package services

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/rosterd/rosterd/pkg/core/model"
	"github.com/rosterd/rosterd/pkg/db"
)

// ViewScheduleStore defines the read queries for inspecting stored schedules.
type ViewScheduleStore interface {
	GetAssignments(ctx context.Context, rangeStart, rangeEnd time.Time, version *int) ([]db.AssignmentRow, error)
	GetVersion(ctx context.Context, version int) (*db.VersionRow, error)
	ListVersions(ctx context.Context) ([]db.VersionRow, error)
}

// ViewSchedule returns the assignments within a date range, optionally
// filtered to one version, ordered by date, start time and employee.
func ViewSchedule(ctx context.Context, store ViewScheduleStore, logger *zap.Logger, rangeStart, rangeEnd time.Time, version *int) ([]model.Assignment, error) {
	if version != nil {
		if _, err := store.GetVersion(ctx, *version); err != nil {
			return nil, fmt.Errorf("failed to load version %d: %w", *version, err)
		}
	}

	rows, err := store.GetAssignments(ctx, model.DateOnly(rangeStart), model.DateOnly(rangeEnd), version)
	if err != nil {
		return nil, fmt.Errorf("failed to load assignments: %w", err)
	}

	assignments := make([]model.Assignment, 0, len(rows))
	for _, row := range rows {
		a, err := assignmentFromRow(row)
		if err != nil {
			return nil, err
		}
		assignments = append(assignments, a)
	}

	logger.Debug("Schedule loaded",
		zap.Time("range_start", rangeStart),
		zap.Time("range_end", rangeEnd),
		zap.Int("assignments", len(assignments)))

	return assignments, nil
}

// ListVersions returns metadata for every schedule version, newest first as
// ordered by the store.
func ListVersions(ctx context.Context, store ViewScheduleStore, logger *zap.Logger) ([]model.VersionMeta, error) {
	rows, err := store.ListVersions(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list versions: %w", err)
	}

	versions := make([]model.VersionMeta, len(rows))
	for i, row := range rows {
		versions[i] = versionFromRow(row)
	}

	logger.Debug("Versions listed", zap.Int("count", len(versions)))

	return versions, nil
}
