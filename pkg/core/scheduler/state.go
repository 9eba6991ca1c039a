package scheduler

import (
	"time"

	"github.com/rosterd/rosterd/pkg/core/model"
	"github.com/rosterd/rosterd/pkg/core/timeutil"
)

// EmployeeState is the per-employee running tally for one generation run.
type EmployeeState struct {
	// WeeklyHours holds assigned shift hours keyed by week start.
	WeeklyHours map[time.Time]float64

	// TypeCounts counts assigned shifts per shift-type category.
	TypeCounts map[model.ShiftType]int

	WeekendCount int
	LastAssigned time.Time
	Streak       int
	TotalShifts  int

	// Assignments accumulates the run's real assignments for this employee,
	// in emission order; the checker consumes them as prior assignments.
	Assignments []model.Assignment
}

// IntervalState is the staffing already placed on one interval of one date.
type IntervalState struct {
	Assigned         map[string]bool
	KeyholderPresent bool
	GroupCounts      map[model.EmployeeGroup]int
}

type intervalKey struct {
	date     time.Time
	interval timeutil.Clock
}

// RunState is the generator-private distribution state. It is owned by a
// single run and never shared.
type RunState struct {
	grid      timeutil.Grid
	employees map[string]*EmployeeState
	intervals map[intervalKey]*IntervalState

	// templateUse caps repeated instantiation of the same template on the
	// same interval.
	templateUse map[templateUseKey]int

	// dayNeeds holds the need tables of days already prepared, so the
	// overstaffing penalty can see staffing targets of covered intervals.
	dayNeeds map[time.Time]map[timeutil.Clock]IntervalNeed

	// violationSkips aggregates constraint rejections for the run metrics.
	violationSkips map[ViolationKind]int
}

type templateUseKey struct {
	date       time.Time
	interval   timeutil.Clock
	templateID string
}

// NewRunState creates empty running state for a run over the snapshot's
// employees.
func NewRunState(snap *model.Snapshot, grid timeutil.Grid) *RunState {
	state := &RunState{
		grid:        grid,
		employees:   make(map[string]*EmployeeState, len(snap.Employees)),
		intervals:   make(map[intervalKey]*IntervalState),
		templateUse: make(map[templateUseKey]int),
		dayNeeds:    make(map[time.Time]map[timeutil.Clock]IntervalNeed),

		violationSkips: make(map[ViolationKind]int),
	}
	for _, e := range snap.Employees {
		state.employees[e.ID] = &EmployeeState{
			WeeklyHours: make(map[time.Time]float64),
			TypeCounts:  make(map[model.ShiftType]int),
		}
	}
	return state
}

// Employee returns the running tally for an employee.
func (s *RunState) Employee(id string) *EmployeeState {
	return s.employees[id]
}

// Interval returns the staffing state of an interval, creating it on first
// access.
func (s *RunState) Interval(date time.Time, interval timeutil.Clock) *IntervalState {
	key := intervalKey{model.DateOnly(date), interval}
	state, ok := s.intervals[key]
	if !ok {
		state = &IntervalState{
			Assigned:    make(map[string]bool),
			GroupCounts: make(map[model.EmployeeGroup]int),
		}
		s.intervals[key] = state
	}
	return state
}

// SetDayNeeds registers the need table of a prepared day.
func (s *RunState) SetDayNeeds(date time.Time, needs []IntervalNeed) {
	table := make(map[timeutil.Clock]IntervalNeed, len(needs))
	for _, need := range needs {
		table[need.Start] = need
	}
	s.dayNeeds[model.DateOnly(date)] = table
}

// NeedAt returns the staffing need of an interval on a prepared day.
func (s *RunState) NeedAt(date time.Time, interval timeutil.Clock) (IntervalNeed, bool) {
	need, ok := s.dayNeeds[model.DateOnly(date)][interval]
	return need, ok
}

// TemplateUse returns how many assignments of the template already cover the
// interval on the date.
func (s *RunState) TemplateUse(date time.Time, interval timeutil.Clock, templateID string) int {
	return s.templateUse[templateUseKey{model.DateOnly(date), interval, templateID}]
}

// Record applies an approved assignment to the running state: the employee
// tallies and every interval the shift covers, including next-day intervals
// of overnight shifts.
func (s *RunState) Record(employee model.Employee, template model.ShiftTemplate, assignment model.Assignment) {
	es := s.employees[employee.ID]
	date := model.DateOnly(assignment.Date)

	hours := assignment.EndAt().Sub(assignment.StartAt()).Hours()
	es.WeeklyHours[model.WeekStart(date)] += hours
	es.TypeCounts[template.ShiftType]++
	if model.Weekday(date) >= 5 {
		es.WeekendCount++
	}
	if !es.LastAssigned.IsZero() && date.Equal(es.LastAssigned.AddDate(0, 0, 1)) {
		es.Streak++
	} else {
		es.Streak = 1
	}
	es.LastAssigned = date
	es.TotalShifts++
	es.Assignments = append(es.Assignments, assignment)

	sameDay, nextDay := s.grid.ShiftIntervals(template.Start, template.End)
	for _, interval := range sameDay {
		s.markInterval(date, interval, employee, template)
	}
	for _, interval := range nextDay {
		s.markInterval(date.AddDate(0, 0, 1), interval, employee, template)
	}
}

func (s *RunState) markInterval(date time.Time, interval timeutil.Clock, employee model.Employee, template model.ShiftTemplate) {
	state := s.Interval(date, interval)
	state.Assigned[employee.ID] = true
	if employee.IsKeyholder {
		state.KeyholderPresent = true
	}
	state.GroupCounts[employee.Group]++
	s.templateUse[templateUseKey{model.DateOnly(date), interval, template.ID}]++
}

// ViolationSkips returns how many candidates each violation kind rejected
// during the run.
func (s *RunState) ViolationSkips() map[ViolationKind]int {
	return s.violationSkips
}

// WeeklyHoursFor returns the hours already assigned to the employee in the
// week containing the date.
func (s *RunState) WeeklyHoursFor(employeeID string, date time.Time) float64 {
	es, ok := s.employees[employeeID]
	if !ok {
		return 0
	}
	return es.WeeklyHours[model.WeekStart(date)]
}
