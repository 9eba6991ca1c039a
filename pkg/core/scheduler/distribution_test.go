package scheduler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rosterd/rosterd/pkg/core/model"
	"github.com/rosterd/rosterd/pkg/core/timeutil"
)

func allDays() map[int]bool {
	return map[int]bool{0: true, 1: true, 2: true, 3: true, 4: true, 5: true, 6: true}
}

func TestPick_EmployeeIDBreaksTies(t *testing.T) {
	snap := testSnapshot([]model.Employee{
		{ID: "e2", Group: model.GroupFullTime, ContractedHours: 40, IsActive: true},
		{ID: "e1", Group: model.GroupFullTime, ContractedHours: 40, IsActive: true},
	}, model.DefaultSettings())
	snap.Templates = []model.ShiftTemplate{
		{ID: "t1", Start: timeutil.NewClock(9, 0), End: timeutil.NewClock(13, 0), ShiftType: model.ShiftMiddle, ActiveDays: allDays()},
	}
	snap.BuildIndexes()

	state := newTestState(snap)
	distributor := NewDistributor(snap, state.grid, state)

	need := IntervalNeed{Start: timeutil.NewClock(9, 0), MinEmployees: 1, MaxEmployees: 2}
	state.SetDayNeeds(monday, []IntervalNeed{need})

	assignment, rejections := distributor.Pick(monday, need, snap.Templates, false)
	require.NotNil(t, assignment)
	assert.Empty(t, rejections)
	assert.Equal(t, "e1", assignment.EmployeeID)
}

func TestPick_LowerWeeklyHoursWins(t *testing.T) {
	snap := testSnapshot([]model.Employee{
		{ID: "e1", Group: model.GroupFullTime, ContractedHours: 40, IsActive: true},
		{ID: "e2", Group: model.GroupFullTime, ContractedHours: 40, IsActive: true},
	}, model.DefaultSettings())
	long := model.ShiftTemplate{ID: "long", Start: timeutil.NewClock(9, 0), End: timeutil.NewClock(17, 0), ShiftType: model.ShiftMiddle, ActiveDays: allDays()}
	short := model.ShiftTemplate{ID: "short", Start: timeutil.NewClock(9, 0), End: timeutil.NewClock(13, 0), ShiftType: model.ShiftMiddle, ActiveDays: allDays()}
	snap.Templates = []model.ShiftTemplate{long, short}
	snap.BuildIndexes()

	state := newTestState(snap)
	distributor := NewDistributor(snap, state.grid, state)

	// Same run history for both (one middle shift each), but e1 carries
	// eight assigned hours this week against e2's four.
	state.Record(snap.Employees[0], long, model.Assignment{
		ID: "a1", Date: monday, EmployeeID: "e1", ShiftTemplateID: &long.ID, Start: long.Start, End: long.End,
	})
	state.Record(snap.Employees[1], short, model.Assignment{
		ID: "a2", Date: monday, EmployeeID: "e2", ShiftTemplateID: &short.ID, Start: short.Start, End: short.End,
	})

	wednesday := monday.AddDate(0, 0, 2)
	need := IntervalNeed{Start: timeutil.NewClock(9, 0), MinEmployees: 1, MaxEmployees: 2}
	state.SetDayNeeds(wednesday, []IntervalNeed{need})

	assignment, _ := distributor.Pick(wednesday, need, []model.ShiftTemplate{short}, false)
	require.NotNil(t, assignment)
	assert.Equal(t, "e2", assignment.EmployeeID)
}

func TestPick_KeyholderShapingBeatsHigherBaseScore(t *testing.T) {
	// Two non-keyholders carry preferred availability, the keyholder only
	// plain availability; the keyholder must still win the keyholder-required
	// interval.
	snap := testSnapshot([]model.Employee{
		{ID: "kh", Group: model.GroupFullTime, ContractedHours: 40, IsKeyholder: true, IsActive: true},
		{ID: "nk1", Group: model.GroupFullTime, ContractedHours: 40, IsActive: true},
		{ID: "nk2", Group: model.GroupFullTime, ContractedHours: 40, IsActive: true},
	}, model.DefaultSettings())
	snap.Slots = []model.AvailabilitySlot{
		{EmployeeID: "nk1", DayOfWeek: 0, Hour: 9, Category: model.CategoryPreferred},
		{EmployeeID: "nk2", DayOfWeek: 0, Hour: 9, Category: model.CategoryPreferred},
	}
	snap.Templates = []model.ShiftTemplate{
		{ID: "t1", Start: timeutil.NewClock(9, 0), End: timeutil.NewClock(13, 0), ShiftType: model.ShiftMiddle, ActiveDays: allDays()},
	}
	snap.BuildIndexes()

	state := newTestState(snap)
	distributor := NewDistributor(snap, state.grid, state)

	need := IntervalNeed{Start: timeutil.NewClock(9, 0), MinEmployees: 1, MaxEmployees: 3, RequiresKeyholder: true}
	state.SetDayNeeds(monday, []IntervalNeed{need})

	assignment, _ := distributor.Pick(monday, need, snap.Templates, false)
	require.NotNil(t, assignment)
	assert.Equal(t, "kh", assignment.EmployeeID)
}

func TestPick_ChecksConstraintsAndFallsThrough(t *testing.T) {
	// e1 would win on score but already stands at the contracted-hours limit;
	// the distributor must fall through to e2 and record the rejection.
	snap := testSnapshot([]model.Employee{
		{ID: "e1", Group: model.GroupPartTime, ContractedHours: 10, IsActive: true},
		{ID: "e2", Group: model.GroupFullTime, ContractedHours: 40, IsActive: true},
	}, model.DefaultSettings())
	snap.Slots = []model.AvailabilitySlot{
		{EmployeeID: "e1", DayOfWeek: 2, Hour: 9, Category: model.CategoryFixed},
	}
	template := model.ShiftTemplate{ID: "t1", Start: timeutil.NewClock(9, 0), End: timeutil.NewClock(17, 0), ShiftType: model.ShiftMiddle, ActiveDays: allDays()}
	snap.Templates = []model.ShiftTemplate{template}
	snap.BuildIndexes()

	state := newTestState(snap)
	distributor := NewDistributor(snap, state.grid, state)

	// 8h on Monday puts e1 at 8 of 12 allowed hours; another 8h breaks it.
	state.Record(snap.Employees[0], template, model.Assignment{
		ID: "a1", Date: monday, EmployeeID: "e1", ShiftTemplateID: &template.ID, Start: template.Start, End: template.End,
	})

	wednesday := monday.AddDate(0, 0, 2)
	need := IntervalNeed{Start: timeutil.NewClock(9, 0), MinEmployees: 1, MaxEmployees: 2}
	state.SetDayNeeds(wednesday, []IntervalNeed{need})

	assignment, rejections := distributor.Pick(wednesday, need, snap.Templates, false)
	require.NotNil(t, assignment)
	assert.Equal(t, "e2", assignment.EmployeeID)

	require.NotEmpty(t, rejections)
	assert.Equal(t, "e1", rejections[0].EmployeeID)
	assert.Contains(t, rejections[0].Reason, string(ViolationMaxWeeklyHoursContrct))
	assert.Equal(t, 1, state.ViolationSkips()[ViolationMaxWeeklyHoursContrct])
}

func TestPick_UnavailableNeverEnumerated(t *testing.T) {
	snap := testSnapshot([]model.Employee{
		{ID: "e1", Group: model.GroupFullTime, ContractedHours: 40, IsActive: true},
	}, model.DefaultSettings())
	snap.Slots = []model.AvailabilitySlot{
		{EmployeeID: "e1", DayOfWeek: 0, Hour: 9, Category: model.CategoryUnavailable},
	}
	snap.Templates = []model.ShiftTemplate{
		{ID: "t1", Start: timeutil.NewClock(9, 0), End: timeutil.NewClock(13, 0), ShiftType: model.ShiftMiddle, ActiveDays: allDays()},
	}
	snap.BuildIndexes()

	state := newTestState(snap)
	distributor := NewDistributor(snap, state.grid, state)

	need := IntervalNeed{Start: timeutil.NewClock(9, 0), MinEmployees: 1, MaxEmployees: 1}
	state.SetDayNeeds(monday, []IntervalNeed{need})

	assignment, rejections := distributor.Pick(monday, need, snap.Templates, false)
	assert.Nil(t, assignment)
	assert.Empty(t, rejections)
}

func TestPick_KeyholderOnlyFiltersPool(t *testing.T) {
	snap := testSnapshot([]model.Employee{
		{ID: "e1", Group: model.GroupFullTime, ContractedHours: 40, IsActive: true},
	}, model.DefaultSettings())
	snap.Templates = []model.ShiftTemplate{
		{ID: "t1", Start: timeutil.NewClock(9, 0), End: timeutil.NewClock(13, 0), ShiftType: model.ShiftMiddle, ActiveDays: allDays()},
	}
	snap.BuildIndexes()

	state := newTestState(snap)
	distributor := NewDistributor(snap, state.grid, state)

	need := IntervalNeed{Start: timeutil.NewClock(9, 0), MinEmployees: 1, MaxEmployees: 1, RequiresKeyholder: true}
	state.SetDayNeeds(monday, []IntervalNeed{need})

	assignment, _ := distributor.Pick(monday, need, snap.Templates, true)
	assert.Nil(t, assignment)
}

func TestPick_InactiveEmployeeSkipped(t *testing.T) {
	snap := testSnapshot([]model.Employee{
		{ID: "e1", Group: model.GroupFullTime, ContractedHours: 40, IsActive: false},
	}, model.DefaultSettings())
	snap.Templates = []model.ShiftTemplate{
		{ID: "t1", Start: timeutil.NewClock(9, 0), End: timeutil.NewClock(13, 0), ShiftType: model.ShiftMiddle, ActiveDays: allDays()},
	}
	snap.BuildIndexes()

	state := newTestState(snap)
	distributor := NewDistributor(snap, state.grid, state)

	need := IntervalNeed{Start: timeutil.NewClock(9, 0), MinEmployees: 1, MaxEmployees: 1}
	assignment, _ := distributor.Pick(monday, need, snap.Templates, false)
	assert.Nil(t, assignment)
}

func TestPick_MinScoreFloorFiltersCandidates(t *testing.T) {
	settings := model.DefaultSettings()
	settings.MinScore = 500
	snap := testSnapshot([]model.Employee{
		{ID: "e1", Group: model.GroupFullTime, ContractedHours: 40, IsActive: true},
	}, settings)
	snap.Templates = []model.ShiftTemplate{
		{ID: "t1", Start: timeutil.NewClock(9, 0), End: timeutil.NewClock(13, 0), ShiftType: model.ShiftMiddle, ActiveDays: allDays()},
	}
	snap.BuildIndexes()

	state := newTestState(snap)
	distributor := NewDistributor(snap, state.grid, state)

	need := IntervalNeed{Start: timeutil.NewClock(9, 0), MinEmployees: 1, MaxEmployees: 1}
	assignment, _ := distributor.Pick(monday, need, snap.Templates, false)
	assert.Nil(t, assignment)
}

func TestPick_BuildsDraftAssignmentWithBreak(t *testing.T) {
	snap := testSnapshot([]model.Employee{
		{ID: "e1", Group: model.GroupFullTime, ContractedHours: 40, IsActive: true},
	}, model.DefaultSettings())
	snap.Templates = []model.ShiftTemplate{
		{ID: "t1", Start: timeutil.NewClock(9, 0), End: timeutil.NewClock(17, 0), ShiftType: model.ShiftMiddle, ActiveDays: allDays()},
	}
	snap.BuildIndexes()

	state := newTestState(snap)
	distributor := NewDistributor(snap, state.grid, state)

	need := IntervalNeed{Start: timeutil.NewClock(9, 0), MinEmployees: 1, MaxEmployees: 1}
	state.SetDayNeeds(monday, []IntervalNeed{need})

	assignment, _ := distributor.Pick(monday, need, snap.Templates, false)
	require.NotNil(t, assignment)
	assert.NotEmpty(t, assignment.ID)
	assert.Equal(t, model.AssignmentDraft, assignment.Status)
	assert.Equal(t, 30, assignment.BreakMinutes)
	assert.Equal(t, model.CategoryAvailable, assignment.Availability)
	require.NotNil(t, assignment.ShiftTemplateID)
	assert.Equal(t, "t1", *assignment.ShiftTemplateID)
}
