package scheduler

import (
	"fmt"
	"time"

	"github.com/rosterd/rosterd/pkg/core/model"
	"github.com/rosterd/rosterd/pkg/core/timeutil"
)

// CheckAssignment validates a candidate assignment for an employee against
// the labor rules, given that employee's prior assignments. An empty result
// means the candidate is acceptable.
//
// The checker is a pure function of its inputs. Candidate start and end are
// absolute instants with overnight wrap already applied; prior placeholder
// rows are ignored.
func CheckAssignment(snap *model.Snapshot, employeeID string, newStart, newEnd time.Time, prior []model.Assignment) []Violation {
	var violations []Violation

	duration := newEnd.Sub(newStart)
	if duration <= 0 {
		violations = append(violations, Violation{
			Kind:     ViolationShiftInvalid,
			Message:  fmt.Sprintf("shift end %s is not after start %s", newEnd.Format(time.RFC3339), newStart.Format(time.RFC3339)),
			Observed: duration.Hours(),
		})
		return violations
	}

	employee, ok := snap.EmployeeByID(employeeID)
	if !ok {
		violations = append(violations, Violation{
			Kind:    ViolationResourceError,
			Message: fmt.Sprintf("unknown employee %q", employeeID),
		})
		return violations
	}

	worked := filterWorked(prior)
	settings := snap.Settings

	if v, ok := checkConsecutiveDays(settings, newStart, worked); ok {
		violations = append(violations, v)
	}
	if settings.EnforceRestPeriods {
		if v, ok := checkRestBefore(settings, newStart, worked); ok {
			violations = append(violations, v)
		}
		if v, ok := checkRestAfter(settings, newStart, newEnd, worked); ok {
			violations = append(violations, v)
		}
	}
	if v, ok := checkDailyHours(settings, employee, duration); ok {
		violations = append(violations, v)
	}

	weekly := weeklyHours(newStart, worked) + duration.Hours()
	if groupCap, capped := settings.WeeklyGroupCap(employee.Group); capped && weekly > groupCap {
		violations = append(violations, Violation{
			Kind:     ViolationMaxWeeklyHoursGroup,
			Message:  fmt.Sprintf("weekly hours %.1f exceed the %.1fh cap for group %s", weekly, groupCap, employee.Group),
			Limit:    groupCap,
			Observed: weekly,
		})
	}
	if employee.ContractedHours > 0 {
		limit := employee.ContractedHours * settings.ContractedHoursLimitFactor
		if weekly > limit {
			violations = append(violations, Violation{
				Kind:     ViolationMaxWeeklyHoursContrct,
				Message:  fmt.Sprintf("weekly hours %.1f exceed %.1fh (%.1f contracted x %.2f)", weekly, limit, employee.ContractedHours, settings.ContractedHoursLimitFactor),
				Limit:    limit,
				Observed: weekly,
			})
		}
	}

	return violations
}

// filterWorked drops empty placeholder rows; only real shifts constrain.
func filterWorked(prior []model.Assignment) []model.Assignment {
	worked := make([]model.Assignment, 0, len(prior))
	for _, a := range prior {
		if !a.IsPlaceholder() {
			worked = append(worked, a)
		}
	}
	return worked
}

func checkConsecutiveDays(settings model.Settings, newStart time.Time, worked []model.Assignment) (Violation, bool) {
	workedDates := make(map[time.Time]bool, len(worked))
	for _, a := range worked {
		workedDates[model.DateOnly(a.Date)] = true
	}

	// Count the unbroken streak ending on the new date, walking backward.
	streak := 1
	for d := model.DateOnly(newStart).AddDate(0, 0, -1); workedDates[d]; d = d.AddDate(0, 0, -1) {
		streak++
	}

	if streak <= settings.MaxConsecutiveDays {
		return Violation{}, false
	}
	return Violation{
		Kind:     ViolationMaxConsecutiveDays,
		Message:  fmt.Sprintf("assignment would make %d consecutive working days (max %d)", streak, settings.MaxConsecutiveDays),
		Limit:    float64(settings.MaxConsecutiveDays),
		Observed: float64(streak),
	}, true
}

func checkRestBefore(settings model.Settings, newStart time.Time, worked []model.Assignment) (Violation, bool) {
	var prevEnd time.Time
	for _, a := range worked {
		end := a.EndAt()
		if end.Before(newStart) && end.After(prevEnd) {
			prevEnd = end
		}
	}
	if prevEnd.IsZero() {
		return Violation{}, false
	}

	rest := timeutil.RestHours(prevEnd, newStart)
	if rest >= settings.MinRestHours {
		return Violation{}, false
	}
	return Violation{
		Kind:     ViolationMinRestBefore,
		Message:  fmt.Sprintf("only %.1fh rest since previous shift ending %s (min %.1fh)", rest, prevEnd.Format("2006-01-02 15:04"), settings.MinRestHours),
		Limit:    settings.MinRestHours,
		Observed: rest,
	}, true
}

func checkRestAfter(settings model.Settings, newStart, newEnd time.Time, worked []model.Assignment) (Violation, bool) {
	var nextStart time.Time
	for _, a := range worked {
		start := a.StartAt()
		if start.After(newStart) && (nextStart.IsZero() || start.Before(nextStart)) {
			nextStart = start
		}
	}
	if nextStart.IsZero() {
		return Violation{}, false
	}

	rest := timeutil.RestHours(newEnd, nextStart)
	if rest >= settings.MinRestHours {
		return Violation{}, false
	}
	return Violation{
		Kind:     ViolationMinRestAfter,
		Message:  fmt.Sprintf("only %.1fh rest before next shift starting %s (min %.1fh)", rest, nextStart.Format("2006-01-02 15:04"), settings.MinRestHours),
		Limit:    settings.MinRestHours,
		Observed: rest,
	}, true
}

func checkDailyHours(settings model.Settings, employee model.Employee, duration time.Duration) (Violation, bool) {
	cap := settings.DailyCap(employee.Group)
	hours := duration.Hours()
	if hours <= cap {
		return Violation{}, false
	}
	return Violation{
		Kind:     ViolationMaxDailyHours,
		Message:  fmt.Sprintf("shift length %.1fh exceeds the %.1fh daily cap for group %s", hours, cap, employee.Group),
		Limit:    cap,
		Observed: hours,
	}, true
}

// weeklyHours sums the shift lengths of prior assignments falling in the
// Monday-Sunday week containing the candidate start.
func weeklyHours(newStart time.Time, worked []model.Assignment) float64 {
	weekStart := model.WeekStart(newStart)
	weekEnd := weekStart.AddDate(0, 0, 7)

	total := 0.0
	for _, a := range worked {
		d := model.DateOnly(a.Date)
		if d.Before(weekStart) || !d.Before(weekEnd) {
			continue
		}
		total += a.EndAt().Sub(a.StartAt()).Hours()
	}
	return total
}
