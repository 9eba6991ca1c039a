package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/rosterd/rosterd/pkg/db"
)

// GetActiveEmployees retrieves all active employee records
func (d *DB) GetActiveEmployees(ctx context.Context) ([]db.EmployeeRow, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT id, name, employee_group, contracted_hours, is_keyholder, is_active,
		       preferred_days, avoid_days, preferred_shifts, avoid_shifts
		FROM employee
		WHERE is_active = TRUE
		ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query employees: %w", err)
	}
	defer rows.Close()

	var employees []db.EmployeeRow
	for rows.Next() {
		var e db.EmployeeRow
		if err := rows.Scan(&e.ID, &e.Name, &e.EmployeeGroup, &e.ContractedHours, &e.IsKeyholder, &e.IsActive,
			&e.PreferredDays, &e.AvoidDays, &e.PreferredShifts, &e.AvoidShifts); err != nil {
			return nil, fmt.Errorf("failed to scan employee: %w", err)
		}
		employees = append(employees, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating employees: %w", err)
	}

	return employees, nil
}

// GetShiftTemplates retrieves all shift template records
func (d *DB) GetShiftTemplates(ctx context.Context) ([]db.ShiftTemplateRow, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT id, start_time, end_time, shift_type, active_days
		FROM shift_template
		ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query shift templates: %w", err)
	}
	defer rows.Close()

	var templates []db.ShiftTemplateRow
	for rows.Next() {
		var t db.ShiftTemplateRow
		if err := rows.Scan(&t.ID, &t.StartTime, &t.EndTime, &t.ShiftType, &t.ActiveDays); err != nil {
			return nil, fmt.Errorf("failed to scan shift template: %w", err)
		}
		templates = append(templates, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating shift templates: %w", err)
	}

	return templates, nil
}

// GetCoverage retrieves all coverage requirement records
func (d *DB) GetCoverage(ctx context.Context) ([]db.CoverageRow, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT id, day_index, start_time, end_time, min_employees, max_employees,
		       allowed_groups, requires_keyholder, keyholder_before_minutes, keyholder_after_minutes
		FROM coverage
		ORDER BY day_index, start_time
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query coverage: %w", err)
	}
	defer rows.Close()

	var coverage []db.CoverageRow
	for rows.Next() {
		var c db.CoverageRow
		if err := rows.Scan(&c.ID, &c.DayIndex, &c.StartTime, &c.EndTime, &c.MinEmployees, &c.MaxEmployees,
			&c.AllowedGroups, &c.RequiresKeyholder, &c.KeyholderBeforeMinutes, &c.KeyholderAfterMinutes); err != nil {
			return nil, fmt.Errorf("failed to scan coverage row: %w", err)
		}
		coverage = append(coverage, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating coverage: %w", err)
	}

	return coverage, nil
}

// GetAvailability retrieves all recurring availability records
func (d *DB) GetAvailability(ctx context.Context) ([]db.AvailabilityRow, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT employee_id, day_of_week, hour, category
		FROM availability
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query availability: %w", err)
	}
	defer rows.Close()

	var slots []db.AvailabilityRow
	for rows.Next() {
		var s db.AvailabilityRow
		if err := rows.Scan(&s.EmployeeID, &s.DayOfWeek, &s.Hour, &s.Category); err != nil {
			return nil, fmt.Errorf("failed to scan availability row: %w", err)
		}
		slots = append(slots, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating availability: %w", err)
	}

	return slots, nil
}

// GetAbsencesBetween retrieves absences intersecting the given date range
func (d *DB) GetAbsencesBetween(ctx context.Context, start, end time.Time) ([]db.AbsenceRow, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT employee_id, start_date, end_date, kind
		FROM absence
		WHERE start_date <= $2 AND end_date >= $1
	`, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to query absences: %w", err)
	}
	defer rows.Close()

	var absences []db.AbsenceRow
	for rows.Next() {
		var a db.AbsenceRow
		if err := rows.Scan(&a.EmployeeID, &a.StartDate, &a.EndDate, &a.Kind); err != nil {
			return nil, fmt.Errorf("failed to scan absence: %w", err)
		}
		absences = append(absences, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating absences: %w", err)
	}

	return absences, nil
}

// GetSettings retrieves all settings rows
func (d *DB) GetSettings(ctx context.Context) ([]db.SettingRow, error) {
	rows, err := d.pool.Query(ctx, `SELECT key, value FROM settings`)
	if err != nil {
		return nil, fmt.Errorf("failed to query settings: %w", err)
	}
	defer rows.Close()

	var settings []db.SettingRow
	for rows.Next() {
		var s db.SettingRow
		if err := rows.Scan(&s.Key, &s.Value); err != nil {
			return nil, fmt.Errorf("failed to scan setting: %w", err)
		}
		settings = append(settings, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating settings: %w", err)
	}

	return settings, nil
}
