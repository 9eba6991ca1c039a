package services

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/rosterd/rosterd/internal/config"
	"github.com/rosterd/rosterd/pkg/core/model"
	"github.com/rosterd/rosterd/pkg/db"
)

// LoadSnapshot materializes a consistent, read-only view of all scheduling
// inputs for the horizon. Fatal conditions (unreachable store, empty roster,
// no templates, no coverage, misaligned interval granularity) return an
// error; data-quality findings come back as warnings.
func LoadSnapshot(ctx context.Context, store db.SnapshotStore, cfg *config.Config, logger *zap.Logger, horizonStart, horizonEnd time.Time) (*model.Snapshot, []string, error) {
	var warnings []string

	logger.Debug("Loading snapshot",
		zap.Time("horizon_start", horizonStart),
		zap.Time("horizon_end", horizonEnd))

	employeeRows, err := store.GetActiveEmployees(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load employees: %w", err)
	}
	if len(employeeRows) == 0 {
		return nil, nil, fmt.Errorf("no active employees - cannot generate a schedule")
	}

	templateRows, err := store.GetShiftTemplates(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load shift templates: %w", err)
	}
	if len(templateRows) == 0 {
		return nil, nil, fmt.Errorf("no shift templates defined - cannot generate a schedule")
	}

	coverageRows, err := store.GetCoverage(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load coverage: %w", err)
	}
	if len(coverageRows) == 0 {
		return nil, nil, fmt.Errorf("no coverage requirements defined - cannot generate a schedule")
	}

	availabilityRows, err := store.GetAvailability(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load availability: %w", err)
	}

	absenceRows, err := store.GetAbsencesBetween(ctx, horizonStart, horizonEnd)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load absences: %w", err)
	}

	settingRows, err := store.GetSettings(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load settings: %w", err)
	}

	settings := model.DefaultSettings()
	for _, row := range settingRows {
		if err := settings.Apply(row.Key, row.Value); err != nil {
			warnings = append(warnings, fmt.Sprintf("settings: %v", err))
		}
	}

	snap := &model.Snapshot{
		HorizonStart: model.DateOnly(horizonStart),
		HorizonEnd:   model.DateOnly(horizonEnd),
		Settings:     settings,
	}

	for _, row := range employeeRows {
		employee := employeeFromRow(row)
		if !employee.Group.IsValid() {
			warnings = append(warnings, fmt.Sprintf("employee %s has unknown group %q", employee.ID, employee.Group))
		}
		if band, ok := settings.ContractedHoursBands[employee.Group]; ok {
			if employee.ContractedHours < band.Min || employee.ContractedHours > band.Max {
				warnings = append(warnings, fmt.Sprintf("employee %s: contracted hours %.1f outside [%.1f, %.1f] for group %s",
					employee.ID, employee.ContractedHours, band.Min, band.Max, employee.Group))
			}
		}
		snap.Employees = append(snap.Employees, employee)
	}

	for _, row := range templateRows {
		template, err := templateFromRow(row)
		if err != nil {
			return nil, nil, err
		}
		if d := template.Duration(); d <= 0 || d > 10*time.Hour {
			warnings = append(warnings, fmt.Sprintf("shift template %s: duration %.1fh outside (0, 10] - skipped", template.ID, d.Hours()))
			continue
		}
		if len(template.ActiveDays) == 0 {
			warnings = append(warnings, fmt.Sprintf("shift template %s has no active days and can never be instantiated", template.ID))
		}
		snap.Templates = append(snap.Templates, template)
	}
	if len(snap.Templates) == 0 {
		return nil, nil, fmt.Errorf("no usable shift templates after validation")
	}

	for _, row := range coverageRows {
		coverage, err := coverageFromRow(row)
		if err != nil {
			return nil, nil, err
		}
		// Interval misalignment can mask sub-interval needs, so a granularity
		// that does not divide a coverage row is a load failure, not a warning.
		length := int(coverage.End) - int(coverage.Start)
		if length%settings.IntervalMinutes != 0 {
			return nil, nil, fmt.Errorf("coverage row %s: length %dmin not divisible by interval granularity %dmin",
				coverage.ID, length, settings.IntervalMinutes)
		}
		snap.Coverage = append(snap.Coverage, coverage)
	}

	for _, row := range availabilityRows {
		snap.Slots = append(snap.Slots, model.AvailabilitySlot{
			EmployeeID: row.EmployeeID,
			DayOfWeek:  row.DayOfWeek,
			Hour:       row.Hour,
			Category:   model.AvailabilityCategory(row.Category),
		})
	}

	for _, row := range absenceRows {
		snap.Absences = append(snap.Absences, model.Absence{
			EmployeeID: row.EmployeeID,
			Start:      row.StartDate,
			End:        row.EndDate,
			Kind:       model.AbsenceKind(row.Kind),
		})
	}

	if cfg != nil {
		closed, err := cfg.ClosedDatesBetween(snap.HorizonStart, snap.HorizonEnd)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to expand closed days: %w", err)
		}
		snap.ClosedDates = closed
	}

	warnings = append(warnings, uncoveredWeekdayWarnings(snap)...)

	snap.BuildIndexes()

	logger.Debug("Snapshot loaded",
		zap.Int("employees", len(snap.Employees)),
		zap.Int("templates", len(snap.Templates)),
		zap.Int("coverage_rows", len(snap.Coverage)),
		zap.Int("absences", len(snap.Absences)),
		zap.Int("availability_slots", len(snap.Slots)),
		zap.Int("warnings", len(warnings)))

	return snap, warnings, nil
}

// uncoveredWeekdayWarnings reports horizon weekdays with no coverage rows.
func uncoveredWeekdayWarnings(snap *model.Snapshot) []string {
	covered := make(map[int]bool)
	for _, c := range snap.Coverage {
		covered[c.DayIndex] = true
	}

	seen := make(map[int]bool)
	var warnings []string
	for _, date := range snap.Dates() {
		weekday := model.Weekday(date)
		if covered[weekday] || seen[weekday] || snap.IsClosed(date) {
			continue
		}
		seen[weekday] = true
		warnings = append(warnings, fmt.Sprintf("no coverage defined for weekday %d (first occurrence %s)",
			weekday, date.Format("2006-01-02")))
	}
	return warnings
}
