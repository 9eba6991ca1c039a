package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/rosterd/rosterd/pkg/db"
)

// PersistAssignments replaces a version's assignments within the horizon in
// a single transaction: existing rows for the version in the range are
// deleted, then the new set is inserted. Any failure rolls back entirely so
// no partial schedule is ever visible.
func (d *DB) PersistAssignments(ctx context.Context, version int, rangeStart, rangeEnd time.Time, assignments []db.AssignmentRow) error {
	tx, err := d.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `
		DELETE FROM assignment WHERE version = $1 AND date BETWEEN $2 AND $3
	`, version, rangeStart, rangeEnd)
	if err != nil {
		return fmt.Errorf("failed to clear existing assignments: %w", err)
	}

	for _, a := range assignments {
		_, err := tx.Exec(ctx, `
			INSERT INTO assignment (id, version, date, employee_id, shift_template_id, start_time, end_time, break_minutes, status, availability_category, notes)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		`, a.ID, version, a.Date, a.EmployeeID, a.ShiftTemplateID, a.StartTime, a.EndTime, a.BreakMinutes, a.Status, a.Availability, a.Notes)
		if err != nil {
			return fmt.Errorf("failed to insert assignment: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit assignments: %w", err)
	}

	return nil
}

// GetAssignments retrieves assignments within a date range, optionally
// restricted to one version.
func (d *DB) GetAssignments(ctx context.Context, rangeStart, rangeEnd time.Time, version *int) ([]db.AssignmentRow, error) {
	query := `
		SELECT id, version, date, employee_id, shift_template_id, start_time, end_time, break_minutes, status, availability_category, notes
		FROM assignment
		WHERE date BETWEEN $1 AND $2
	`
	args := []any{rangeStart, rangeEnd}
	if version != nil {
		query += ` AND version = $3`
		args = append(args, *version)
	}
	query += ` ORDER BY date, start_time, employee_id`

	rows, err := d.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query assignments: %w", err)
	}
	defer rows.Close()

	var assignments []db.AssignmentRow
	for rows.Next() {
		var a db.AssignmentRow
		if err := rows.Scan(&a.ID, &a.Version, &a.Date, &a.EmployeeID, &a.ShiftTemplateID, &a.StartTime, &a.EndTime, &a.BreakMinutes, &a.Status, &a.Availability, &a.Notes); err != nil {
			return nil, fmt.Errorf("failed to scan assignment: %w", err)
		}
		assignments = append(assignments, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating assignments: %w", err)
	}

	return assignments, nil
}
