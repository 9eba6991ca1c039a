package scheduler

import (
	"math"
	"time"

	"github.com/rosterd/rosterd/pkg/core/model"
	"github.com/rosterd/rosterd/pkg/core/timeutil"
)

// ScoreBreakdown carries the individual components of a candidate score so
// selection decisions stay explainable.
type ScoreBreakdown struct {
	Availability float64
	Keyholder    float64
	Group        float64
	Desirability float64
	History      float64
	Preference   float64
	Overstaffing float64
}

// Total sums the components.
func (b ScoreBreakdown) Total() float64 {
	return b.Availability + b.Keyholder + b.Group + b.Desirability + b.History + b.Preference + b.Overstaffing
}

// Score rates an (employee, template) pair for a target interval on a date.
// Higher is better; an unavailable employee scores negative infinity.
func Score(snap *model.Snapshot, employee model.Employee, template model.ShiftTemplate, date time.Time, need IntervalNeed, state *RunState) ScoreBreakdown {
	category := CategoryFor(snap, employee.ID, date, need.Start)

	return ScoreBreakdown{
		Availability: availabilityScore(category, snap.Settings),
		Keyholder:    keyholderScore(need, employee),
		Group:        groupScore(need, employee),
		Desirability: desirabilityScore(snap.Settings, template),
		History:      historyScore(state, employee, template),
		Preference:   preferenceScore(employee, template, date),
		Overstaffing: overstaffingScore(state, template, date, need),
	}
}

// availabilityScore maps the availability category to its base score.
// PREFERRED additionally earns the configured preferred-availability bonus.
func availabilityScore(category model.AvailabilityCategory, settings model.Settings) float64 {
	switch category {
	case model.CategoryFixed:
		return ScoreFixed
	case model.CategoryPreferred:
		return ScorePreferred * (1 + settings.PreferredAvailabilityBonus)
	case model.CategoryAvailable:
		return ScoreAvailable
	default:
		return math.Inf(-1)
	}
}

// keyholderScore shapes intervals that require a keyholder: a strong bonus
// for keyholders and a near-prohibitive penalty for everyone else.
func keyholderScore(need IntervalNeed, employee model.Employee) float64 {
	if !need.RequiresKeyholder {
		return 0
	}
	if employee.IsKeyholder {
		return WeightKeyholderMatch
	}
	return WeightKeyholderMissing
}

// groupScore prefers employees admitted by a group-restricted interval.
func groupScore(need IntervalNeed, employee model.Employee) float64 {
	if !need.Restricted() {
		return 0
	}
	if employee.Group == "" {
		return WeightGroupUnknown
	}
	if need.AllowsGroup(employee.Group) {
		return WeightGroupMatch
	}
	return WeightGroupMismatch
}

// desirabilityScore penalizes templates of undesirable shift types so they
// spread across the pool rather than pile on whoever scores highest.
func desirabilityScore(settings model.Settings, template model.ShiftTemplate) float64 {
	return -settings.Desirability(template.ShiftType) * WeightDesirability
}

// historyScore reduces the score of employees who already carry a
// disproportionate share of this shift type, or of shifts in this run.
func historyScore(state *RunState, employee model.Employee, template model.ShiftTemplate) float64 {
	es := state.Employee(employee.ID)
	if es == nil {
		return 0
	}
	return -float64(es.TypeCounts[template.ShiftType])*WeightHistorySameType -
		float64(es.TotalShifts)*WeightHistoryRunTotal
}

// preferenceScore honors explicit preferred/avoid day and shift-type lists.
func preferenceScore(employee model.Employee, template model.ShiftTemplate, date time.Time) float64 {
	weekday := model.Weekday(date)
	score := 0.0

	if containsInt(employee.PreferredDays, weekday) {
		score += WeightPreferredDay
	}
	if containsInt(employee.AvoidDays, weekday) {
		score -= WeightAvoidDay
	}
	if containsType(employee.PreferredShiftTypes, template.ShiftType) {
		score += WeightPreferredType
	}
	if containsType(employee.AvoidShiftTypes, template.ShiftType) {
		score -= WeightAvoidType
	}
	return score
}

// overstaffingScore penalizes each other interval the candidate shift covers
// that is already staffed to its target, to avoid collateral over-allocation.
func overstaffingScore(state *RunState, template model.ShiftTemplate, date time.Time, need IntervalNeed) float64 {
	sameDay, nextDay := state.grid.ShiftIntervals(template.Start, template.End)

	overstaffed := 0
	for _, interval := range sameDay {
		if interval == need.Start {
			continue
		}
		if isFullyStaffed(state, date, interval) {
			overstaffed++
		}
	}
	next := date.AddDate(0, 0, 1)
	for _, interval := range nextDay {
		if isFullyStaffed(state, next, interval) {
			overstaffed++
		}
	}

	return float64(overstaffed) * WeightOverstaffed
}

// isFullyStaffed reports whether the interval's minimum headcount is already
// met. Intervals without a prepared need table carry no target and never
// count as overstaffed.
func isFullyStaffed(state *RunState, date time.Time, interval timeutil.Clock) bool {
	need, ok := state.NeedAt(date, interval)
	if !ok || need.MinEmployees == 0 {
		return false
	}
	return len(state.Interval(date, interval).Assigned) >= need.MinEmployees
}

func containsInt(list []int, v int) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}

func containsType(list []model.ShiftType, v model.ShiftType) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
