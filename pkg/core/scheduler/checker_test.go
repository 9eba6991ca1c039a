package scheduler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rosterd/rosterd/pkg/core/model"
	"github.com/rosterd/rosterd/pkg/core/timeutil"
)

// monday is an arbitrary Monday anchoring the test weeks.
var monday = time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

func testSnapshot(employees []model.Employee, settings model.Settings) *model.Snapshot {
	snap := &model.Snapshot{
		HorizonStart: monday,
		HorizonEnd:   monday.AddDate(0, 0, 6),
		Employees:    employees,
		Settings:     settings,
	}
	snap.BuildIndexes()
	return snap
}

func workedShift(date time.Time, start, end timeutil.Clock) model.Assignment {
	templateID := "t1"
	return model.Assignment{
		ID:              "a-" + date.Format("0102") + "-" + start.String(),
		Date:            date,
		EmployeeID:      "e1",
		ShiftTemplateID: &templateID,
		Start:           start,
		End:             end,
	}
}

func violationKinds(violations []Violation) []ViolationKind {
	kinds := make([]ViolationKind, len(violations))
	for i, v := range violations {
		kinds[i] = v.Kind
	}
	return kinds
}

func TestCheckAssignment_CleanPass(t *testing.T) {
	snap := testSnapshot([]model.Employee{
		{ID: "e1", Group: model.GroupFullTime, ContractedHours: 40, IsActive: true},
	}, model.DefaultSettings())

	violations := CheckAssignment(snap, "e1",
		timeutil.NewClock(9, 0).At(monday),
		timeutil.NewClock(17, 0).At(monday),
		nil)
	assert.Empty(t, violations)
}

func TestCheckAssignment_InvalidShift(t *testing.T) {
	snap := testSnapshot([]model.Employee{
		{ID: "e1", Group: model.GroupFullTime, IsActive: true},
	}, model.DefaultSettings())

	violations := CheckAssignment(snap, "e1",
		timeutil.NewClock(17, 0).At(monday),
		timeutil.NewClock(9, 0).At(monday),
		nil)
	require.Len(t, violations, 1)
	assert.Equal(t, ViolationShiftInvalid, violations[0].Kind)
}

func TestCheckAssignment_UnknownEmployee(t *testing.T) {
	snap := testSnapshot(nil, model.DefaultSettings())

	violations := CheckAssignment(snap, "ghost",
		timeutil.NewClock(9, 0).At(monday),
		timeutil.NewClock(17, 0).At(monday),
		nil)
	require.Len(t, violations, 1)
	assert.Equal(t, ViolationResourceError, violations[0].Kind)
}

func TestCheckAssignment_ConsecutiveDays(t *testing.T) {
	settings := model.DefaultSettings()
	settings.MaxConsecutiveDays = 3
	snap := testSnapshot([]model.Employee{
		{ID: "e1", Group: model.GroupFullTime, ContractedHours: 40, IsActive: true},
	}, settings)

	// Worked Tuesday through Thursday; Friday would be day four.
	prior := []model.Assignment{
		workedShift(monday.AddDate(0, 0, 1), timeutil.NewClock(9, 0), timeutil.NewClock(13, 0)),
		workedShift(monday.AddDate(0, 0, 2), timeutil.NewClock(9, 0), timeutil.NewClock(13, 0)),
		workedShift(monday.AddDate(0, 0, 3), timeutil.NewClock(9, 0), timeutil.NewClock(13, 0)),
	}

	violations := CheckAssignment(snap, "e1",
		timeutil.NewClock(9, 0).At(monday.AddDate(0, 0, 4)),
		timeutil.NewClock(13, 0).At(monday.AddDate(0, 0, 4)),
		prior)
	assert.Contains(t, violationKinds(violations), ViolationMaxConsecutiveDays)
}

func TestCheckAssignment_ConsecutiveDaysBrokenStreak(t *testing.T) {
	settings := model.DefaultSettings()
	settings.MaxConsecutiveDays = 3
	snap := testSnapshot([]model.Employee{
		{ID: "e1", Group: model.GroupFullTime, ContractedHours: 40, IsActive: true},
	}, settings)

	// A free Wednesday resets the streak.
	prior := []model.Assignment{
		workedShift(monday, timeutil.NewClock(9, 0), timeutil.NewClock(13, 0)),
		workedShift(monday.AddDate(0, 0, 1), timeutil.NewClock(9, 0), timeutil.NewClock(13, 0)),
		workedShift(monday.AddDate(0, 0, 3), timeutil.NewClock(9, 0), timeutil.NewClock(13, 0)),
	}

	violations := CheckAssignment(snap, "e1",
		timeutil.NewClock(9, 0).At(monday.AddDate(0, 0, 4)),
		timeutil.NewClock(13, 0).At(monday.AddDate(0, 0, 4)),
		prior)
	assert.NotContains(t, violationKinds(violations), ViolationMaxConsecutiveDays)
}

func TestCheckAssignment_RestAfterOvernightShift(t *testing.T) {
	snap := testSnapshot([]model.Employee{
		{ID: "e1", Group: model.GroupFullTime, ContractedHours: 40, IsActive: true},
	}, model.DefaultSettings())

	// Overnight 22:00-06:00 Monday into Tuesday, then 08:00 Tuesday leaves
	// only two hours of rest.
	prior := []model.Assignment{
		workedShift(monday, timeutil.NewClock(22, 0), timeutil.NewClock(6, 0)),
	}

	tuesday := monday.AddDate(0, 0, 1)
	violations := CheckAssignment(snap, "e1",
		timeutil.NewClock(8, 0).At(tuesday),
		timeutil.NewClock(16, 0).At(tuesday),
		prior)
	require.Contains(t, violationKinds(violations), ViolationMinRestBefore)

	for _, v := range violations {
		if v.Kind == ViolationMinRestBefore {
			assert.InDelta(t, 2.0, v.Observed, 1e-9)
			assert.InDelta(t, 11.0, v.Limit, 1e-9)
		}
	}
}

func TestCheckAssignment_RestBeforeSubsequentShift(t *testing.T) {
	snap := testSnapshot([]model.Employee{
		{ID: "e1", Group: model.GroupFullTime, ContractedHours: 40, IsActive: true},
	}, model.DefaultSettings())

	// An already-placed Tuesday 06:00 shift leaves too little rest after a
	// candidate Monday evening shift.
	tuesday := monday.AddDate(0, 0, 1)
	prior := []model.Assignment{
		workedShift(tuesday, timeutil.NewClock(6, 0), timeutil.NewClock(14, 0)),
	}

	violations := CheckAssignment(snap, "e1",
		timeutil.NewClock(14, 0).At(monday),
		timeutil.NewClock(22, 0).At(monday),
		prior)
	assert.Contains(t, violationKinds(violations), ViolationMinRestAfter)
}

func TestCheckAssignment_RestChecksDisabled(t *testing.T) {
	settings := model.DefaultSettings()
	settings.EnforceRestPeriods = false
	snap := testSnapshot([]model.Employee{
		{ID: "e1", Group: model.GroupFullTime, ContractedHours: 40, IsActive: true},
	}, settings)

	prior := []model.Assignment{
		workedShift(monday, timeutil.NewClock(22, 0), timeutil.NewClock(6, 0)),
	}

	tuesday := monday.AddDate(0, 0, 1)
	violations := CheckAssignment(snap, "e1",
		timeutil.NewClock(8, 0).At(tuesday),
		timeutil.NewClock(16, 0).At(tuesday),
		prior)
	assert.NotContains(t, violationKinds(violations), ViolationMinRestBefore)
	assert.NotContains(t, violationKinds(violations), ViolationMinRestAfter)
}

func TestCheckAssignment_DailyHoursCap(t *testing.T) {
	snap := testSnapshot([]model.Employee{
		{ID: "e1", Group: model.GroupFullTime, ContractedHours: 40, IsActive: true},
	}, model.DefaultSettings())

	// Ten hours against the default 8h daily cap.
	violations := CheckAssignment(snap, "e1",
		timeutil.NewClock(8, 0).At(monday),
		timeutil.NewClock(18, 0).At(monday),
		nil)
	assert.Contains(t, violationKinds(violations), ViolationMaxDailyHours)
}

func TestCheckAssignment_WeeklyGroupCap(t *testing.T) {
	settings := model.DefaultSettings()
	settings.MaxHoursPerGroup[model.GroupMiniJob] = 12
	snap := testSnapshot([]model.Employee{
		{ID: "e1", Group: model.GroupMiniJob, IsActive: true},
	}, settings)

	prior := []model.Assignment{
		workedShift(monday, timeutil.NewClock(9, 0), timeutil.NewClock(17, 0)),
	}

	violations := CheckAssignment(snap, "e1",
		timeutil.NewClock(9, 0).At(monday.AddDate(0, 0, 2)),
		timeutil.NewClock(17, 0).At(monday.AddDate(0, 0, 2)),
		prior)
	assert.Contains(t, violationKinds(violations), ViolationMaxWeeklyHoursGroup)
}

func TestCheckAssignment_ContractedHoursCap(t *testing.T) {
	// Contracted 20h at factor 1.2 caps the week at 24h. Three 8h shifts
	// exactly reach the limit; a fourth exceeds it.
	snap := testSnapshot([]model.Employee{
		{ID: "e1", Group: model.GroupPartTime, ContractedHours: 20, IsActive: true},
	}, model.DefaultSettings())

	prior := []model.Assignment{
		workedShift(monday, timeutil.NewClock(9, 0), timeutil.NewClock(17, 0)),
		workedShift(monday.AddDate(0, 0, 2), timeutil.NewClock(9, 0), timeutil.NewClock(17, 0)),
	}

	// Third shift lands exactly on 24h and passes.
	third := CheckAssignment(snap, "e1",
		timeutil.NewClock(9, 0).At(monday.AddDate(0, 0, 4)),
		timeutil.NewClock(17, 0).At(monday.AddDate(0, 0, 4)),
		prior)
	assert.NotContains(t, violationKinds(third), ViolationMaxWeeklyHoursContrct)

	// Fourth shift in the same week breaks the cap.
	prior = append(prior, workedShift(monday.AddDate(0, 0, 4), timeutil.NewClock(9, 0), timeutil.NewClock(17, 0)))
	fourth := CheckAssignment(snap, "e1",
		timeutil.NewClock(9, 0).At(monday.AddDate(0, 0, 5)),
		timeutil.NewClock(17, 0).At(monday.AddDate(0, 0, 5)),
		prior)
	assert.Contains(t, violationKinds(fourth), ViolationMaxWeeklyHoursContrct)
}

func TestCheckAssignment_NewWeekResetsContractedCap(t *testing.T) {
	snap := testSnapshot([]model.Employee{
		{ID: "e1", Group: model.GroupPartTime, ContractedHours: 20, IsActive: true},
	}, model.DefaultSettings())

	prior := []model.Assignment{
		workedShift(monday, timeutil.NewClock(9, 0), timeutil.NewClock(17, 0)),
		workedShift(monday.AddDate(0, 0, 2), timeutil.NewClock(9, 0), timeutil.NewClock(17, 0)),
		workedShift(monday.AddDate(0, 0, 4), timeutil.NewClock(9, 0), timeutil.NewClock(17, 0)),
	}

	// The following Monday starts a fresh week.
	nextMonday := monday.AddDate(0, 0, 7)
	violations := CheckAssignment(snap, "e1",
		timeutil.NewClock(9, 0).At(nextMonday),
		timeutil.NewClock(17, 0).At(nextMonday),
		prior)
	assert.NotContains(t, violationKinds(violations), ViolationMaxWeeklyHoursContrct)
}

func TestCheckAssignment_PlaceholdersIgnored(t *testing.T) {
	settings := model.DefaultSettings()
	settings.MaxConsecutiveDays = 1
	snap := testSnapshot([]model.Employee{
		{ID: "e1", Group: model.GroupFullTime, ContractedHours: 40, IsActive: true},
	}, settings)

	// A placeholder row on Monday is not a worked day.
	prior := []model.Assignment{
		{ID: "p1", Date: monday, EmployeeID: "e1"},
	}

	violations := CheckAssignment(snap, "e1",
		timeutil.NewClock(9, 0).At(monday.AddDate(0, 0, 1)),
		timeutil.NewClock(17, 0).At(monday.AddDate(0, 0, 1)),
		prior)
	assert.Empty(t, violations)
}
