package scheduler

import (
	"time"

	"github.com/rosterd/rosterd/pkg/core/model"
	"github.com/rosterd/rosterd/pkg/core/timeutil"
)

// CategoryFor resolves the availability of an employee for an interval on a
// concrete date. Resolution order, first match wins:
//
//  1. An absence covering the date makes the employee UNAVAILABLE.
//  2. An explicit record for (weekday, hour) decides.
//  3. Missing data means AVAILABLE.
func CategoryFor(snap *model.Snapshot, employeeID string, date time.Time, intervalStart timeutil.Clock) model.AvailabilityCategory {
	if snap.IsAbsent(employeeID, date) {
		return model.CategoryUnavailable
	}

	if cat, ok := snap.SlotCategory(employeeID, model.Weekday(date), intervalStart.Hour()); ok {
		return cat
	}

	return model.CategoryAvailable
}
