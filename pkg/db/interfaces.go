package db

import (
	"context"
	"errors"
	"time"
)

// ErrVersionNotFound is returned when a version number has no metadata row.
var ErrVersionNotFound = errors.New("version not found")

// SnapshotStore defines the read-only input queries the resource loader
// needs. All input tables are read-only from the engine's perspective.
type SnapshotStore interface {
	GetActiveEmployees(ctx context.Context) ([]EmployeeRow, error)
	GetShiftTemplates(ctx context.Context) ([]ShiftTemplateRow, error)
	GetCoverage(ctx context.Context) ([]CoverageRow, error)
	GetAvailability(ctx context.Context) ([]AvailabilityRow, error)
	GetAbsencesBetween(ctx context.Context, start, end time.Time) ([]AbsenceRow, error)
	GetSettings(ctx context.Context) ([]SettingRow, error)
}

// VersionStore defines the write side: version metadata lifecycle and atomic
// assignment persistence. The store is the single writer.
type VersionStore interface {
	// AllocateVersion assigns max(version)+1 and inserts a DRAFT metadata
	// row for the horizon.
	AllocateVersion(ctx context.Context, rangeStart, rangeEnd time.Time, notes string, baseVersion *int) (int, error)

	// PersistAssignments replaces the version's assignments within the
	// horizon in a single transaction; failure rolls back entirely.
	PersistAssignments(ctx context.Context, version int, rangeStart, rangeEnd time.Time, rows []AssignmentRow) error

	GetVersion(ctx context.Context, version int) (*VersionRow, error)
	ListVersions(ctx context.Context) ([]VersionRow, error)

	// UpdateVersionStatus writes the status without lifecycle checks; the
	// service layer owns transition rules.
	UpdateVersionStatus(ctx context.Context, version int, status string) error
	UpdateVersionNotes(ctx context.Context, version int, notes string) error

	// DuplicateVersion allocates a new DRAFT with the source's horizon and
	// copies all assignments under the new version number.
	DuplicateVersion(ctx context.Context, sourceVersion int, notes string) (int, error)

	// DeleteVersion removes the metadata row; cascade also removes its
	// assignments, otherwise the delete is refused while assignments exist.
	DeleteVersion(ctx context.Context, version int, cascade bool) error

	GetAssignments(ctx context.Context, rangeStart, rangeEnd time.Time, version *int) ([]AssignmentRow, error)

	// ListPublishedOverlapping returns PUBLISHED versions whose horizon
	// intersects the given range, for the advisory overlap warning.
	ListPublishedOverlapping(ctx context.Context, rangeStart, rangeEnd time.Time) ([]VersionRow, error)
}

// Database is the full store contract; the pgx-backed postgres.DB
// implements it.
type Database interface {
	SnapshotStore
	VersionStore
}
