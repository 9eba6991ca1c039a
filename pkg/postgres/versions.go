package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/rosterd/rosterd/pkg/db"
)

// AllocateVersion assigns the next version number and inserts a DRAFT
// metadata row for the horizon. The SELECT locks concurrent allocators out
// via the unique primary key: a losing insert fails and rolls back.
func (d *DB) AllocateVersion(ctx context.Context, rangeStart, rangeEnd time.Time, notes string, baseVersion *int) (int, error) {
	tx, err := d.pool.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var version int
	err = tx.QueryRow(ctx, `SELECT COALESCE(MAX(version), 0) + 1 FROM version_meta`).Scan(&version)
	if err != nil {
		return 0, fmt.Errorf("failed to allocate version number: %w", err)
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO version_meta (version, status, date_range_start, date_range_end, base_version, notes)
		VALUES ($1, 'DRAFT', $2, $3, $4, $5)
	`, version, rangeStart, rangeEnd, baseVersion, notes)
	if err != nil {
		return 0, fmt.Errorf("failed to insert version metadata: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("failed to commit version allocation: %w", err)
	}

	return version, nil
}

// GetVersion retrieves one version metadata row
func (d *DB) GetVersion(ctx context.Context, version int) (*db.VersionRow, error) {
	row := d.pool.QueryRow(ctx, `
		SELECT version, status, date_range_start, date_range_end, created_at, updated_at, base_version, notes
		FROM version_meta
		WHERE version = $1
	`, version)

	var v db.VersionRow
	err := row.Scan(&v.Version, &v.Status, &v.DateRangeStart, &v.DateRangeEnd, &v.CreatedAt, &v.UpdatedAt, &v.BaseVersion, &v.Notes)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, db.ErrVersionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query version %d: %w", version, err)
	}

	return &v, nil
}

// ListVersions retrieves all version metadata rows, newest first
func (d *DB) ListVersions(ctx context.Context) ([]db.VersionRow, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT version, status, date_range_start, date_range_end, created_at, updated_at, base_version, notes
		FROM version_meta
		ORDER BY version DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query versions: %w", err)
	}
	defer rows.Close()

	var versions []db.VersionRow
	for rows.Next() {
		var v db.VersionRow
		if err := rows.Scan(&v.Version, &v.Status, &v.DateRangeStart, &v.DateRangeEnd, &v.CreatedAt, &v.UpdatedAt, &v.BaseVersion, &v.Notes); err != nil {
			return nil, fmt.Errorf("failed to scan version: %w", err)
		}
		versions = append(versions, v)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating versions: %w", err)
	}

	return versions, nil
}

// UpdateVersionStatus writes a new status; the assignment rows of the
// version follow the status so published schedules read consistently.
func (d *DB) UpdateVersionStatus(ctx context.Context, version int, status string) error {
	tx, err := d.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx, `
		UPDATE version_meta SET status = $2, updated_at = NOW() WHERE version = $1
	`, version, status)
	if err != nil {
		return fmt.Errorf("failed to update version status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return db.ErrVersionNotFound
	}

	_, err = tx.Exec(ctx, `UPDATE assignment SET status = $2 WHERE version = $1`, version, status)
	if err != nil {
		return fmt.Errorf("failed to update assignment status: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit status update: %w", err)
	}

	return nil
}

// UpdateVersionNotes updates the free-text notes of a version
func (d *DB) UpdateVersionNotes(ctx context.Context, version int, notes string) error {
	tag, err := d.pool.Exec(ctx, `
		UPDATE version_meta SET notes = $2, updated_at = NOW() WHERE version = $1
	`, version, notes)
	if err != nil {
		return fmt.Errorf("failed to update version notes: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return db.ErrVersionNotFound
	}
	return nil
}

// DuplicateVersion allocates a new DRAFT version with the source's horizon
// and copies all assignments under the new number, in one transaction.
func (d *DB) DuplicateVersion(ctx context.Context, sourceVersion int, notes string) (int, error) {
	source, err := d.GetVersion(ctx, sourceVersion)
	if err != nil {
		return 0, err
	}

	tx, err := d.pool.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var version int
	err = tx.QueryRow(ctx, `SELECT COALESCE(MAX(version), 0) + 1 FROM version_meta`).Scan(&version)
	if err != nil {
		return 0, fmt.Errorf("failed to allocate version number: %w", err)
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO version_meta (version, status, date_range_start, date_range_end, base_version, notes)
		VALUES ($1, 'DRAFT', $2, $3, $4, $5)
	`, version, source.DateRangeStart, source.DateRangeEnd, sourceVersion, notes)
	if err != nil {
		return 0, fmt.Errorf("failed to insert duplicated version: %w", err)
	}

	rows, err := tx.Query(ctx, `
		SELECT date, employee_id, shift_template_id, start_time, end_time, break_minutes, availability_category, notes
		FROM assignment
		WHERE version = $1
	`, sourceVersion)
	if err != nil {
		return 0, fmt.Errorf("failed to query source assignments: %w", err)
	}

	var copies []db.AssignmentRow
	for rows.Next() {
		var a db.AssignmentRow
		if err := rows.Scan(&a.Date, &a.EmployeeID, &a.ShiftTemplateID, &a.StartTime, &a.EndTime, &a.BreakMinutes, &a.Availability, &a.Notes); err != nil {
			rows.Close()
			return 0, fmt.Errorf("failed to scan source assignment: %w", err)
		}
		copies = append(copies, a)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return 0, fmt.Errorf("error iterating source assignments: %w", err)
	}

	for _, a := range copies {
		_, err := tx.Exec(ctx, `
			INSERT INTO assignment (id, version, date, employee_id, shift_template_id, start_time, end_time, break_minutes, status, availability_category, notes)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, 'DRAFT', $9, $10)
		`, uuid.NewString(), version, a.Date, a.EmployeeID, a.ShiftTemplateID, a.StartTime, a.EndTime, a.BreakMinutes, a.Availability, a.Notes)
		if err != nil {
			return 0, fmt.Errorf("failed to copy assignment: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("failed to commit duplication: %w", err)
	}

	return version, nil
}

// DeleteVersion removes a version's metadata row. With cascade the
// assignments go first; without it the delete fails while assignment rows
// still reference the version.
func (d *DB) DeleteVersion(ctx context.Context, version int, cascade bool) error {
	tx, err := d.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if cascade {
		_, err = tx.Exec(ctx, `DELETE FROM assignment WHERE version = $1`, version)
		if err != nil {
			return fmt.Errorf("failed to delete assignments: %w", err)
		}
	}

	tag, err := tx.Exec(ctx, `DELETE FROM version_meta WHERE version = $1`, version)
	if err != nil {
		return fmt.Errorf("failed to delete version: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return db.ErrVersionNotFound
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit version delete: %w", err)
	}

	return nil
}

// ListPublishedOverlapping returns PUBLISHED versions whose horizon
// intersects the given range.
func (d *DB) ListPublishedOverlapping(ctx context.Context, rangeStart, rangeEnd time.Time) ([]db.VersionRow, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT version, status, date_range_start, date_range_end, created_at, updated_at, base_version, notes
		FROM version_meta
		WHERE status = 'PUBLISHED' AND date_range_start <= $2 AND date_range_end >= $1
		ORDER BY version
	`, rangeStart, rangeEnd)
	if err != nil {
		return nil, fmt.Errorf("failed to query published versions: %w", err)
	}
	defer rows.Close()

	var versions []db.VersionRow
	for rows.Next() {
		var v db.VersionRow
		if err := rows.Scan(&v.Version, &v.Status, &v.DateRangeStart, &v.DateRangeEnd, &v.CreatedAt, &v.UpdatedAt, &v.BaseVersion, &v.Notes); err != nil {
			return nil, fmt.Errorf("failed to scan version: %w", err)
		}
		versions = append(versions, v)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating versions: %w", err)
	}

	return versions, nil
}
