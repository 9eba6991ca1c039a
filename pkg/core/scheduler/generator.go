package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/rosterd/rosterd/pkg/core/model"
	"github.com/rosterd/rosterd/pkg/core/timeutil"
)

// WarningKind classifies generation warnings.
type WarningKind string

const (
	WarningCoverageShortfall WarningKind = "COVERAGE_SHORTFALL"
	WarningEmptyActiveDays   WarningKind = "EMPTY_ACTIVE_DAYS"
	WarningNoCoverage        WarningKind = "NO_COVERAGE_FOR_DAY"
)

// shortfallReasonLimit bounds the rejection reasons attached to a warning.
const shortfallReasonLimit = 3

// Warning is a non-fatal finding of a generation run.
type Warning struct {
	Kind      WarningKind
	Date      time.Time
	Interval  timeutil.Clock
	Shortfall int
	Message   string
	Reasons   []string
}

// Metrics summarizes a generation run.
type Metrics struct {
	AssignmentCount int
	EmployeeHours   map[string]float64
	TypeCounts      map[model.ShiftType]int
	FairnessScore   float64
	ViolationSkips  map[ViolationKind]int
}

// Options tunes one generation run.
type Options struct {
	// CreateEmptySchedules pre-emits a placeholder row per (employee, date)
	// for dates on which the employee received no real shift.
	CreateEmptySchedules bool
}

// Result is the outcome of the in-memory generation pass. Version and
// persistence are layered on by the service.
type Result struct {
	Assignments []model.Assignment
	Warnings    []Warning
	Metrics     Metrics
}

// Generate drives the day-by-day, interval-by-interval assignment loop over
// a snapshot. Assignments are emitted in (date, interval, selection) order.
// The context is checked between dates; on cancellation the context error is
// returned and no partial result.
func Generate(ctx context.Context, snap *model.Snapshot, logger *zap.Logger, opts Options) (*Result, error) {
	grid, err := timeutil.NewGrid(snap.Settings.IntervalMinutes)
	if err != nil {
		return nil, fmt.Errorf("invalid interval granularity: %w", err)
	}

	state := NewRunState(snap, grid)
	distributor := NewDistributor(snap, grid, state)
	result := &Result{}

	logger.Debug("Starting generation",
		zap.Time("horizon_start", snap.HorizonStart),
		zap.Time("horizon_end", snap.HorizonEnd),
		zap.Int("employees", len(snap.Employees)),
		zap.Int("templates", len(snap.Templates)),
		zap.Int("interval_minutes", grid.IntervalMinutes()))

	for _, date := range snap.Dates() {
		if err := ctx.Err(); err != nil {
			logger.Warn("Generation cancelled", zap.Time("date", date))
			return nil, err
		}

		if snap.IsClosed(date) {
			logger.Debug("Skipping closed day", zap.String("date", date.Format("2006-01-02")))
			continue
		}

		dayAssignments, dayWarnings := generateDay(snap, distributor, state, grid, date, logger)
		result.Assignments = append(result.Assignments, dayAssignments...)
		result.Warnings = append(result.Warnings, dayWarnings...)

		if opts.CreateEmptySchedules {
			result.Assignments = append(result.Assignments, emptyPlaceholders(snap, date, dayAssignments)...)
		}
	}

	result.Metrics = buildMetrics(snap, state, result.Assignments)

	logger.Info("Generation finished",
		zap.Int("assignments", result.Metrics.AssignmentCount),
		zap.Int("warnings", len(result.Warnings)),
		zap.Float64("fairness", result.Metrics.FairnessScore))

	return result, nil
}

// generateDay fills one date: build the need table, walk intervals in
// chronological order, satisfy keyholder needs first, and warn on unmet
// minima.
func generateDay(snap *model.Snapshot, distributor *Distributor, state *RunState, grid timeutil.Grid, date time.Time, logger *zap.Logger) ([]model.Assignment, []Warning) {
	var assignments []model.Assignment
	var warnings []Warning

	coverage := snap.CoverageForDay(model.Weekday(date))
	if len(coverage) == 0 {
		return nil, nil
	}

	needs := BuildDayNeeds(coverage, grid)
	state.SetDayNeeds(date, needs)
	templates := DayTemplates(snap, date)

	logger.Debug("Generating day",
		zap.String("date", date.Format("2006-01-02")),
		zap.Int("coverage_rows", len(coverage)),
		zap.Int("intervals", len(needs)),
		zap.Int("templates", len(templates)))

	for _, need := range needs {
		intervalAssignments, intervalWarnings := fillInterval(distributor, state, date, need, templates)
		assignments = append(assignments, intervalAssignments...)
		warnings = append(warnings, intervalWarnings...)
	}

	return assignments, warnings
}

// fillInterval runs the selection loop for one interval until its minimum is
// met (with a keyholder when required), its maximum is reached, or no
// feasible candidate remains.
func fillInterval(distributor *Distributor, state *RunState, date time.Time, need IntervalNeed, templates []model.ShiftTemplate) ([]model.Assignment, []Warning) {
	var assignments []model.Assignment
	var rejections []Rejection

	interval := state.Interval(date, need.Start)

	for {
		assigned := len(interval.Assigned)
		keyholderMissing := need.RequiresKeyholder && !interval.KeyholderPresent

		if assigned >= need.MaxEmployees {
			break
		}
		if assigned >= need.MinEmployees && !keyholderMissing {
			break
		}

		assignment, picked := distributor.Pick(date, need, templates, keyholderMissing)
		rejections = append(rejections, picked...)
		if assignment == nil && keyholderMissing && assigned < need.MinEmployees {
			// No keyholder can take the spot; fill the remaining minimum
			// from the general pool and leave the keyholder gap to warn on.
			assignment, picked = distributor.Pick(date, need, templates, false)
			rejections = append(rejections, picked...)
		}
		if assignment == nil {
			break
		}

		assignments = append(assignments, *assignment)
	}

	var warnings []Warning
	assigned := len(interval.Assigned)
	if assigned < need.MinEmployees {
		warnings = append(warnings, Warning{
			Kind:      WarningCoverageShortfall,
			Date:      model.DateOnly(date),
			Interval:  need.Start,
			Shortfall: need.MinEmployees - assigned,
			Message: fmt.Sprintf("%s %s: %d of %d required employees assigned",
				date.Format("2006-01-02"), need.Start, assigned, need.MinEmployees),
			Reasons: formatRejections(rejections, shortfallReasonLimit),
		})
	}
	if need.RequiresKeyholder && !interval.KeyholderPresent {
		warnings = append(warnings, Warning{
			Kind:      WarningCoverageShortfall,
			Date:      model.DateOnly(date),
			Interval:  need.Start,
			Shortfall: 1,
			Message: fmt.Sprintf("%s %s: no keyholder assigned to a keyholder-required interval",
				date.Format("2006-01-02"), need.Start),
			Reasons: formatRejections(rejections, shortfallReasonLimit),
		})
	}

	return assignments, warnings
}

// emptyPlaceholders emits a placeholder row for each active employee who
// received no real assignment on the date.
func emptyPlaceholders(snap *model.Snapshot, date time.Time, dayAssignments []model.Assignment) []model.Assignment {
	covered := make(map[string]bool, len(dayAssignments))
	for _, a := range dayAssignments {
		covered[a.EmployeeID] = true
	}

	var placeholders []model.Assignment
	for _, e := range snap.Employees {
		if !e.IsActive || covered[e.ID] {
			continue
		}
		placeholders = append(placeholders, model.Assignment{
			ID:           uuid.NewString(),
			Date:         model.DateOnly(date),
			EmployeeID:   e.ID,
			Status:       model.AssignmentDraft,
			Availability: CategoryFor(snap, e.ID, date, 0),
		})
	}
	return placeholders
}

func buildMetrics(snap *model.Snapshot, state *RunState, assignments []model.Assignment) Metrics {
	metrics := Metrics{
		EmployeeHours:  make(map[string]float64),
		TypeCounts:     make(map[model.ShiftType]int),
		ViolationSkips: state.ViolationSkips(),
	}

	for _, a := range assignments {
		if a.IsPlaceholder() {
			continue
		}
		metrics.AssignmentCount++
		metrics.EmployeeHours[a.EmployeeID] += a.EndAt().Sub(a.StartAt()).Hours()
		if template, ok := snap.TemplateByID(*a.ShiftTemplateID); ok {
			metrics.TypeCounts[template.ShiftType]++
		}
	}

	metrics.FairnessScore = fairnessScore(snap, metrics.EmployeeHours)
	return metrics
}

// fairnessScore maps the spread of assigned-to-contracted hour ratios into
// (0, 1]; 1 means every contracted employee carries an equal relative load.
func fairnessScore(snap *model.Snapshot, hours map[string]float64) float64 {
	var ratios []float64
	for _, e := range snap.Employees {
		if !e.IsActive || e.ContractedHours <= 0 {
			continue
		}
		ratios = append(ratios, hours[e.ID]/e.ContractedHours)
	}
	if len(ratios) == 0 {
		return 1
	}

	mean := 0.0
	for _, r := range ratios {
		mean += r
	}
	mean /= float64(len(ratios))

	variance := 0.0
	for _, r := range ratios {
		variance += (r - mean) * (r - mean)
	}
	variance /= float64(len(ratios))

	return 1 / (1 + variance)
}
