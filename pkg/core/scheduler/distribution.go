package scheduler

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/rosterd/rosterd/pkg/core/model"
	"github.com/rosterd/rosterd/pkg/core/timeutil"
)

// Candidate is one scored (employee, template) pair for an interval.
type Candidate struct {
	Employee  model.Employee
	Template  model.ShiftTemplate
	Score     float64
	Breakdown ScoreBreakdown
	Category  model.AvailabilityCategory
}

// Rejection records why a candidate was passed over, for shortfall warnings.
type Rejection struct {
	EmployeeID string
	TemplateID string
	Reason     string
}

// Distributor scores candidates and picks at most one per call, recording
// each decision in the running state. One distributor serves one run.
type Distributor struct {
	snap  *model.Snapshot
	grid  timeutil.Grid
	state *RunState
}

// NewDistributor creates a distributor over the snapshot and running state.
func NewDistributor(snap *model.Snapshot, grid timeutil.Grid, state *RunState) *Distributor {
	return &Distributor{snap: snap, grid: grid, state: state}
}

// State exposes the running state for the orchestrator's metrics pass.
func (d *Distributor) State() *RunState {
	return d.state
}

// covers reports whether an instantiation of the template on the target date
// staffs the target interval. A wrapping template only covers its same-day
// head; its tail intervals belong to the next date and are staffed by an
// instantiation on the previous date, which Record marks forward.
func (d *Distributor) covers(template model.ShiftTemplate, interval timeutil.Clock) bool {
	if template.End <= template.Start {
		return interval >= template.Start
	}
	return timeutil.SpanContains(template.Start, template.End, interval)
}

// Pick selects the best feasible (employee, template) for the interval and
// commits it, returning the resulting assignment. keyholderOnly restricts
// the pool to keyholders, used to satisfy keyholder needs first. A nil
// assignment with rejections means no feasible candidate remained.
func (d *Distributor) Pick(date time.Time, need IntervalNeed, templates []model.ShiftTemplate, keyholderOnly bool) (*model.Assignment, []Rejection) {
	interval := d.state.Interval(date, need.Start)

	candidates := d.enumerate(date, need, templates, keyholderOnly, interval)
	d.rank(candidates, date)

	var rejections []Rejection
	for _, candidate := range candidates {
		assignment := d.buildAssignment(date, candidate)
		violations := CheckAssignment(d.snap, candidate.Employee.ID, assignment.StartAt(), assignment.EndAt(), d.state.Employee(candidate.Employee.ID).Assignments)
		if len(violations) > 0 {
			for _, v := range violations {
				d.state.violationSkips[v.Kind]++
			}
			rejections = append(rejections, Rejection{
				EmployeeID: candidate.Employee.ID,
				TemplateID: candidate.Template.ID,
				Reason:     violations[0].String(),
			})
			continue
		}

		d.state.Record(candidate.Employee, candidate.Template, assignment)
		return &assignment, rejections
	}

	return nil, rejections
}

// enumerate produces the scored candidate list for the interval, dropping
// pairs that can never be selected.
func (d *Distributor) enumerate(date time.Time, need IntervalNeed, templates []model.ShiftTemplate, keyholderOnly bool, interval *IntervalState) []Candidate {
	var candidates []Candidate

	for _, template := range templates {
		if !d.covers(template, need.Start) {
			continue
		}
		// Per-interval template cap: one template may staff the interval up
		// to the interval's maximum headcount.
		if d.state.TemplateUse(date, need.Start, template.ID) >= need.MaxEmployees {
			continue
		}

		for _, employee := range d.snap.Employees {
			if !employee.IsActive {
				continue
			}
			if keyholderOnly && !employee.IsKeyholder {
				continue
			}
			if interval.Assigned[employee.ID] {
				continue
			}

			breakdown := Score(d.snap, employee, template, date, need, d.state)
			total := breakdown.Total()
			if math.IsInf(total, -1) || total < d.snap.Settings.MinScore {
				continue
			}

			candidates = append(candidates, Candidate{
				Employee:  employee,
				Template:  template,
				Score:     total,
				Breakdown: breakdown,
				Category:  CategoryFor(d.snap, employee.ID, date, need.Start),
			})
		}
	}

	return candidates
}

// rank orders candidates best-first: score, then lower assigned weekly
// hours, then fewer shifts this run, then stable employee id order.
func (d *Distributor) rank(candidates []Candidate, date time.Time) {
	sort.SliceStable(candidates, func(i, j int) bool {
		a, b := candidates[i], candidates[j]
		if a.Score != b.Score {
			return a.Score > b.Score
		}
		aHours := d.state.WeeklyHoursFor(a.Employee.ID, date)
		bHours := d.state.WeeklyHoursFor(b.Employee.ID, date)
		if aHours != bHours {
			return aHours < bHours
		}
		aShifts := d.state.Employee(a.Employee.ID).TotalShifts
		bShifts := d.state.Employee(b.Employee.ID).TotalShifts
		if aShifts != bShifts {
			return aShifts < bShifts
		}
		if a.Employee.ID != b.Employee.ID {
			return a.Employee.ID < b.Employee.ID
		}
		return a.Template.ID < b.Template.ID
	})
}

func (d *Distributor) buildAssignment(date time.Time, candidate Candidate) model.Assignment {
	templateID := candidate.Template.ID
	return model.Assignment{
		ID:              uuid.NewString(),
		Date:            model.DateOnly(date),
		EmployeeID:      candidate.Employee.ID,
		ShiftTemplateID: &templateID,
		Start:           candidate.Template.Start,
		End:             candidate.Template.End,
		BreakMinutes:    candidate.Template.BreakMinutes(),
		Status:          model.AssignmentDraft,
		Availability:    candidate.Category,
	}
}

// DayTemplates filters the snapshot's templates to those active on the
// date's weekday.
func DayTemplates(snap *model.Snapshot, date time.Time) []model.ShiftTemplate {
	weekday := model.Weekday(date)
	var active []model.ShiftTemplate
	for _, t := range snap.Templates {
		if t.IsActiveOn(weekday) {
			active = append(active, t)
		}
	}
	return active
}

// formatRejections renders the top-n rejection reasons for a shortfall
// warning.
func formatRejections(rejections []Rejection, n int) []string {
	if len(rejections) > n {
		rejections = rejections[:n]
	}
	reasons := make([]string, len(rejections))
	for i, r := range rejections {
		reasons[i] = fmt.Sprintf("%s/%s: %s", r.EmployeeID, r.TemplateID, r.Reason)
	}
	return reasons
}
