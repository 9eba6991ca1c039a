package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/rosterd/rosterd/internal/config"
	"github.com/rosterd/rosterd/pkg/core/model"
	"github.com/rosterd/rosterd/pkg/core/scheduler"
	"github.com/rosterd/rosterd/pkg/db"
)

// GenerateOptions tunes one GenerateSchedule call.
type GenerateOptions struct {
	CreateEmptySchedules bool
	Notes                string
	BaseVersion          *int

	// DryRun skips version allocation and persistence entirely.
	DryRun bool
}

// GenerationResult is the complete outcome of a generation request. The
// service never fails across its boundary: fatal conditions land in Errors
// and leave the assignment set empty.
type GenerationResult struct {
	Version     int                 `json:"version"`
	Assignments []model.Assignment  `json:"assignments"`
	Warnings    []scheduler.Warning `json:"warnings"`
	Errors      []string            `json:"errors"`
	Metrics     scheduler.Metrics   `json:"metrics"`
	LoadNotes   []string            `json:"load_notes,omitempty"`
}

// GenerateScheduleStore defines the database operations needed to generate
// and persist a schedule.
type GenerateScheduleStore interface {
	db.SnapshotStore
	AllocateVersion(ctx context.Context, rangeStart, rangeEnd time.Time, notes string, baseVersion *int) (int, error)
	PersistAssignments(ctx context.Context, version int, rangeStart, rangeEnd time.Time, rows []db.AssignmentRow) error
	UpdateVersionStatus(ctx context.Context, version int, status string) error
	UpdateVersionNotes(ctx context.Context, version int, notes string) error
}

// GenerateSchedule runs one full generation: acquire the horizon, load the
// snapshot, allocate a DRAFT version, run the engine and persist the result
// atomically. Input and persistence failures abort and are reported in the
// result; constraint and coverage findings surface as warnings.
func GenerateSchedule(
	ctx context.Context,
	store GenerateScheduleStore,
	cfg *config.Config,
	logger *zap.Logger,
	horizonStart, horizonEnd time.Time,
	opts GenerateOptions,
) (*GenerationResult, error) {
	result := &GenerationResult{}

	if horizonEnd.Before(horizonStart) {
		result.Errors = append(result.Errors, fmt.Sprintf("invalid horizon: end %s before start %s",
			horizonEnd.Format("2006-01-02"), horizonStart.Format("2006-01-02")))
		return result, nil
	}

	release, err := guard.Acquire(model.DateOnly(horizonStart), model.DateOnly(horizonEnd))
	if err != nil {
		if errors.Is(err, ErrConcurrentGeneration) {
			result.Errors = append(result.Errors, err.Error())
			return result, nil
		}
		return nil, err
	}
	defer release()

	logger.Debug("Starting schedule generation",
		zap.String("start", horizonStart.Format("2006-01-02")),
		zap.String("end", horizonEnd.Format("2006-01-02")),
		zap.Bool("dry_run", opts.DryRun),
		zap.Bool("create_empty", opts.CreateEmptySchedules))

	snap, loadWarnings, err := LoadSnapshot(ctx, store, cfg, logger, horizonStart, horizonEnd)
	if err != nil {
		logger.Error("Snapshot load failed", zap.Error(err))
		result.Errors = append(result.Errors, err.Error())
		return result, nil
	}
	result.LoadNotes = loadWarnings

	version := 0
	if !opts.DryRun {
		version, err = store.AllocateVersion(ctx, snap.HorizonStart, snap.HorizonEnd, opts.Notes, opts.BaseVersion)
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("failed to allocate version: %v", err))
			return result, nil
		}
		logger.Debug("Allocated draft version", zap.Int("version", version))
	}

	engineResult, err := scheduler.Generate(ctx, snap, logger, scheduler.Options{
		CreateEmptySchedules: opts.CreateEmptySchedules,
	})
	if err != nil {
		// Cancellation or an invalid grid: archive the dangling draft and
		// return an empty result.
		if version > 0 {
			archiveVersion(context.WithoutCancel(ctx), store, logger, version, fmt.Sprintf("generation aborted: %v", err))
		}
		result.Errors = append(result.Errors, fmt.Sprintf("generation aborted: %v", err))
		return result, nil
	}

	result.Warnings = engineResult.Warnings
	result.Metrics = engineResult.Metrics
	result.Version = version

	for i := range engineResult.Assignments {
		engineResult.Assignments[i].Version = version
	}

	if opts.DryRun {
		result.Assignments = engineResult.Assignments
		return result, nil
	}

	rows := make([]db.AssignmentRow, len(engineResult.Assignments))
	for i, a := range engineResult.Assignments {
		rows[i] = assignmentToRow(a)
	}

	if err := store.PersistAssignments(ctx, version, snap.HorizonStart, snap.HorizonEnd, rows); err != nil {
		logger.Error("Persistence failed, archiving version",
			zap.Int("version", version), zap.Error(err))
		archiveVersion(context.WithoutCancel(ctx), store, logger, version, fmt.Sprintf("persistence failed: %v", err))
		result.Version = 0
		result.Errors = append(result.Errors, fmt.Sprintf("failed to persist assignments: %v", err))
		return result, nil
	}

	result.Assignments = engineResult.Assignments

	logger.Info("Schedule generated",
		zap.Int("version", version),
		zap.Int("assignments", len(result.Assignments)),
		zap.Int("warnings", len(result.Warnings)))

	return result, nil
}

// archiveVersion marks a failed draft ARCHIVED with an explanatory note.
// Best effort: a failure here is logged, not propagated.
func archiveVersion(ctx context.Context, store GenerateScheduleStore, logger *zap.Logger, version int, note string) {
	if err := store.UpdateVersionStatus(ctx, version, string(model.VersionArchived)); err != nil {
		logger.Error("Failed to archive version", zap.Int("version", version), zap.Error(err))
		return
	}
	if err := store.UpdateVersionNotes(ctx, version, note); err != nil {
		logger.Error("Failed to record archive note", zap.Int("version", version), zap.Error(err))
	}
}
