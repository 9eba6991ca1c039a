package scheduler

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rosterd/rosterd/pkg/core/model"
	"github.com/rosterd/rosterd/pkg/core/timeutil"
)

func TestCategoryFor_AbsenceWins(t *testing.T) {
	snap := testSnapshot([]model.Employee{
		{ID: "e1", Group: model.GroupFullTime, IsActive: true},
	}, model.DefaultSettings())
	snap.Absences = []model.Absence{
		{EmployeeID: "e1", Start: monday, End: monday, Kind: model.AbsenceSick},
	}
	// A FIXED record on the same interval must not override the absence.
	snap.Slots = []model.AvailabilitySlot{
		{EmployeeID: "e1", DayOfWeek: 0, Hour: 9, Category: model.CategoryFixed},
	}
	snap.BuildIndexes()

	assert.Equal(t, model.CategoryUnavailable, CategoryFor(snap, "e1", monday, timeutil.NewClock(9, 0)))
}

func TestCategoryFor_ExplicitSlot(t *testing.T) {
	snap := testSnapshot([]model.Employee{
		{ID: "e1", Group: model.GroupFullTime, IsActive: true},
	}, model.DefaultSettings())
	snap.Slots = []model.AvailabilitySlot{
		{EmployeeID: "e1", DayOfWeek: 0, Hour: 9, Category: model.CategoryPreferred},
		{EmployeeID: "e1", DayOfWeek: 0, Hour: 10, Category: model.CategoryUnavailable},
	}
	snap.BuildIndexes()

	assert.Equal(t, model.CategoryPreferred, CategoryFor(snap, "e1", monday, timeutil.NewClock(9, 0)))
	assert.Equal(t, model.CategoryUnavailable, CategoryFor(snap, "e1", monday, timeutil.NewClock(10, 0)))
}

func TestCategoryFor_DefaultsToAvailable(t *testing.T) {
	snap := testSnapshot([]model.Employee{
		{ID: "e1", Group: model.GroupFullTime, IsActive: true},
	}, model.DefaultSettings())

	assert.Equal(t, model.CategoryAvailable, CategoryFor(snap, "e1", monday, timeutil.NewClock(9, 0)))
}

func TestCategoryFor_SlotOnOtherWeekdayIgnored(t *testing.T) {
	snap := testSnapshot([]model.Employee{
		{ID: "e1", Group: model.GroupFullTime, IsActive: true},
	}, model.DefaultSettings())
	snap.Slots = []model.AvailabilitySlot{
		{EmployeeID: "e1", DayOfWeek: 1, Hour: 9, Category: model.CategoryUnavailable},
	}
	snap.BuildIndexes()

	assert.Equal(t, model.CategoryAvailable, CategoryFor(snap, "e1", monday, timeutil.NewClock(9, 0)))
}
