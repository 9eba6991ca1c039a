package scheduler

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rosterd/rosterd/pkg/core/model"
	"github.com/rosterd/rosterd/pkg/core/timeutil"
)

func newTestState(snap *model.Snapshot) *RunState {
	grid, err := timeutil.NewGrid(snap.Settings.IntervalMinutes)
	if err != nil {
		panic(err)
	}
	return NewRunState(snap, grid)
}

func TestAvailabilityScore(t *testing.T) {
	settings := model.DefaultSettings()

	assert.Equal(t, ScoreFixed, availabilityScore(model.CategoryFixed, settings))
	assert.Equal(t, ScoreAvailable, availabilityScore(model.CategoryAvailable, settings))
	// PREFERRED carries the configured bonus on top of its base.
	assert.InDelta(t, 60.0, availabilityScore(model.CategoryPreferred, settings), 1e-9)
	assert.True(t, math.IsInf(availabilityScore(model.CategoryUnavailable, settings), -1))
}

func TestKeyholderScore(t *testing.T) {
	need := IntervalNeed{Start: timeutil.NewClock(9, 0), RequiresKeyholder: true}

	assert.Equal(t, WeightKeyholderMatch, keyholderScore(need, model.Employee{IsKeyholder: true}))
	assert.Equal(t, WeightKeyholderMissing, keyholderScore(need, model.Employee{}))

	need.RequiresKeyholder = false
	assert.Zero(t, keyholderScore(need, model.Employee{}))
}

func TestGroupScore(t *testing.T) {
	need := IntervalNeed{AllowedGroups: []model.EmployeeGroup{model.GroupTeamLead}}

	assert.Equal(t, WeightGroupMatch, groupScore(need, model.Employee{Group: model.GroupTeamLead}))
	assert.Equal(t, WeightGroupMismatch, groupScore(need, model.Employee{Group: model.GroupMiniJob}))
	assert.Equal(t, WeightGroupUnknown, groupScore(need, model.Employee{}))

	// Unrestricted intervals score neutral for every group.
	assert.Zero(t, groupScore(IntervalNeed{}, model.Employee{Group: model.GroupMiniJob}))
}

func TestDesirabilityScore(t *testing.T) {
	settings := model.DefaultSettings()

	late := model.ShiftTemplate{ShiftType: model.ShiftLate}
	middle := model.ShiftTemplate{ShiftType: model.ShiftMiddle}

	assert.Equal(t, -10.0, desirabilityScore(settings, late))
	assert.Zero(t, desirabilityScore(settings, middle))
}

func TestHistoryScore(t *testing.T) {
	snap := testSnapshot([]model.Employee{
		{ID: "e1", Group: model.GroupFullTime, IsActive: true},
	}, model.DefaultSettings())
	state := newTestState(snap)

	template := model.ShiftTemplate{ID: "t1", ShiftType: model.ShiftLate}
	employee := snap.Employees[0]

	assert.Zero(t, historyScore(state, employee, template))

	es := state.Employee("e1")
	es.TypeCounts[model.ShiftLate] = 2
	es.TotalShifts = 3

	assert.Equal(t, -(2*WeightHistorySameType + 3*WeightHistoryRunTotal), historyScore(state, employee, template))
}

func TestPreferenceScore(t *testing.T) {
	template := model.ShiftTemplate{ShiftType: model.ShiftEarly}

	employee := model.Employee{
		PreferredDays:       []int{0},
		PreferredShiftTypes: []model.ShiftType{model.ShiftEarly},
	}
	assert.Equal(t, WeightPreferredDay+WeightPreferredType, preferenceScore(employee, template, monday))

	avoider := model.Employee{
		AvoidDays:       []int{0},
		AvoidShiftTypes: []model.ShiftType{model.ShiftEarly},
	}
	assert.Equal(t, -(WeightAvoidDay + WeightAvoidType), preferenceScore(avoider, template, monday))
}

func TestOverstaffingScore(t *testing.T) {
	snap := testSnapshot([]model.Employee{
		{ID: "e1", Group: model.GroupFullTime, IsKeyholder: true, IsActive: true},
		{ID: "e2", Group: model.GroupFullTime, IsActive: true},
	}, model.DefaultSettings())
	state := newTestState(snap)

	needs := []IntervalNeed{
		{Start: timeutil.NewClock(9, 0), MinEmployees: 1, MaxEmployees: 2},
		{Start: timeutil.NewClock(10, 0), MinEmployees: 1, MaxEmployees: 2},
	}
	state.SetDayNeeds(monday, needs)

	template := model.ShiftTemplate{ID: "t1", Start: timeutil.NewClock(9, 0), End: timeutil.NewClock(11, 0)}

	// Nothing staffed yet: no penalty.
	assert.Zero(t, overstaffingScore(state, template, monday, needs[0]))

	// Staff the 10:00 interval to its minimum; a 09:00-11:00 candidate now
	// collaterally overstaffs it.
	state.Record(snap.Employees[0], template, model.Assignment{
		ID:         "a1",
		Date:       monday,
		EmployeeID: "e1",
		Start:      template.Start,
		End:        template.End,
	})

	score := overstaffingScore(state, template, monday, needs[0])
	require.Equal(t, WeightOverstaffed, score)
}

func TestScore_TotalCombinesComponents(t *testing.T) {
	snap := testSnapshot([]model.Employee{
		{ID: "e1", Group: model.GroupFullTime, IsKeyholder: true, IsActive: true},
	}, model.DefaultSettings())
	state := newTestState(snap)

	need := IntervalNeed{Start: timeutil.NewClock(9, 0), MinEmployees: 1, MaxEmployees: 1, RequiresKeyholder: true}
	template := model.ShiftTemplate{ID: "t1", Start: timeutil.NewClock(9, 0), End: timeutil.NewClock(13, 0), ShiftType: model.ShiftMiddle}

	breakdown := Score(snap, snap.Employees[0], template, monday, need, state)

	assert.Equal(t, ScoreAvailable, breakdown.Availability)
	assert.Equal(t, WeightKeyholderMatch, breakdown.Keyholder)
	assert.Equal(t, ScoreAvailable+WeightKeyholderMatch, breakdown.Total())
}
