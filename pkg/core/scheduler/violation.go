package scheduler

import "fmt"

// ViolationKind identifies the rule a candidate assignment broke.
type ViolationKind string

const (
	ViolationShiftInvalid          ViolationKind = "SHIFT_INVALID"
	ViolationResourceError         ViolationKind = "RESOURCE_ERROR"
	ViolationMaxConsecutiveDays    ViolationKind = "MAX_CONSECUTIVE_DAYS"
	ViolationMinRestBefore         ViolationKind = "MIN_REST_BEFORE"
	ViolationMinRestAfter          ViolationKind = "MIN_REST_AFTER"
	ViolationMaxDailyHours         ViolationKind = "MAX_DAILY_HOURS"
	ViolationMaxWeeklyHoursGroup   ViolationKind = "MAX_WEEKLY_HOURS_GROUP"
	ViolationMaxWeeklyHoursContrct ViolationKind = "MAX_WEEKLY_HOURS_CONTRACT"
)

// Violation describes one broken rule: the kind, a human-readable message,
// the configured limit and the value actually observed.
type Violation struct {
	Kind     ViolationKind
	Message  string
	Limit    float64
	Observed float64
}

func (v Violation) String() string {
	return fmt.Sprintf("%s: %s (limit %g, observed %g)", v.Kind, v.Message, v.Limit, v.Observed)
}
