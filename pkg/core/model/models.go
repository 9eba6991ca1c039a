package model

import (
	"encoding/json"
	"time"

	"github.com/rosterd/rosterd/pkg/core/timeutil"
)

// EmployeeGroup is the contract class of an employee.
type EmployeeGroup string

const (
	GroupFullTime EmployeeGroup = "full_time"
	GroupPartTime EmployeeGroup = "part_time"
	GroupMiniJob  EmployeeGroup = "mini_job"
	GroupTeamLead EmployeeGroup = "team_lead"
)

func (g EmployeeGroup) IsValid() bool {
	switch g {
	case GroupFullTime, GroupPartTime, GroupMiniJob, GroupTeamLead:
		return true
	}
	return false
}

// AvailabilityCategory classifies an employee's availability for an interval.
type AvailabilityCategory string

const (
	CategoryAvailable   AvailabilityCategory = "AVAILABLE"
	CategoryPreferred   AvailabilityCategory = "PREFERRED"
	CategoryFixed       AvailabilityCategory = "FIXED"
	CategoryUnavailable AvailabilityCategory = "UNAVAILABLE"
)

// ShiftType classifies a shift template by its position in the day.
type ShiftType string

const (
	ShiftEarly  ShiftType = "early"
	ShiftMiddle ShiftType = "middle"
	ShiftLate   ShiftType = "late"
)

// Employee represents one roster member. The roster is immutable during a
// generation run.
type Employee struct {
	ID              string
	Name            string
	Group           EmployeeGroup
	ContractedHours float64 // weekly target
	IsKeyholder     bool
	IsActive        bool

	// Soft scheduling preferences, consulted by the scorer only.
	PreferredShiftTypes []ShiftType
	AvoidShiftTypes     []ShiftType
	PreferredDays       []int // weekday indices, 0=Monday
	AvoidDays           []int
}

// ShiftTemplate describes a shift that may be instantiated on its active
// weekdays. End may wrap past midnight.
type ShiftTemplate struct {
	ID         string
	Start      timeutil.Clock
	End        timeutil.Clock
	ShiftType  ShiftType
	ActiveDays map[int]bool // canonical set, 0=Monday .. 6=Sunday
}

// Duration returns the shift length, normalizing overnight wrap.
func (t ShiftTemplate) Duration() time.Duration {
	return timeutil.ShiftDuration(t.Start, t.End)
}

// RequiresBreak reports whether the shift is long enough to legally require
// a break (over 6 hours).
func (t ShiftTemplate) RequiresBreak() bool {
	return t.Duration() > 6*time.Hour
}

// BreakMinutes returns the required break length: 30 minutes over 6 hours,
// 45 minutes over 9 hours.
func (t ShiftTemplate) BreakMinutes() int {
	d := t.Duration()
	switch {
	case d > 9*time.Hour:
		return 45
	case d > 6*time.Hour:
		return 30
	default:
		return 0
	}
}

// IsActiveOn reports whether the template may be instantiated on the given
// weekday index (0=Monday).
func (t ShiftTemplate) IsActiveOn(weekday int) bool {
	return t.ActiveDays[weekday]
}

// CoverageRequirement is a per-weekday staffing target for a time span.
// Coverage rows never wrap past midnight.
type CoverageRequirement struct {
	ID                     string
	DayIndex               int // 0=Monday .. 6=Sunday
	Start                  timeutil.Clock
	End                    timeutil.Clock
	MinEmployees           int
	MaxEmployees           int
	AllowedGroups          []EmployeeGroup // empty = any group
	RequiresKeyholder      bool
	KeyholderBeforeMinutes int
	KeyholderAfterMinutes  int
}

// AllowsGroup reports whether the coverage row admits the given group.
func (c CoverageRequirement) AllowsGroup(g EmployeeGroup) bool {
	if len(c.AllowedGroups) == 0 {
		return true
	}
	for _, allowed := range c.AllowedGroups {
		if allowed == g {
			return true
		}
	}
	return false
}

// AvailabilitySlot is an employee's recurring weekly availability statement
// for one hour of one weekday.
type AvailabilitySlot struct {
	EmployeeID string
	DayOfWeek  int // 0=Monday .. 6=Sunday
	Hour       int // 0-23
	Category   AvailabilityCategory
}

// AbsenceKind distinguishes absence records.
type AbsenceKind string

const (
	AbsenceVacation AbsenceKind = "vacation"
	AbsenceSick     AbsenceKind = "sick"
)

// Absence masks an employee's availability to UNAVAILABLE for a contiguous
// date range (inclusive bounds).
type Absence struct {
	EmployeeID string
	Start      time.Time
	End        time.Time
	Kind       AbsenceKind
}

// Covers reports whether the absence spans the given date.
func (a Absence) Covers(date time.Time) bool {
	d := DateOnly(date)
	return !d.Before(DateOnly(a.Start)) && !d.After(DateOnly(a.End))
}

// DateOnly strips the time-of-day component of an instant.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// AssignmentStatus is the lifecycle status an assignment inherits from its
// version.
type AssignmentStatus string

const (
	AssignmentDraft     AssignmentStatus = "DRAFT"
	AssignmentPublished AssignmentStatus = "PUBLISHED"
	AssignmentArchived  AssignmentStatus = "ARCHIVED"
)

// Assignment is one (employee, shift, date) decision. A nil ShiftTemplateID
// marks an empty placeholder row emitted when create-empty-schedules is set.
// Assignments are immutable once their version is published.
type Assignment struct {
	ID              string
	Version         int
	Date            time.Time
	EmployeeID      string
	ShiftTemplateID *string
	Start           timeutil.Clock
	End             timeutil.Clock
	BreakMinutes    int
	Status          AssignmentStatus
	Availability    AvailabilityCategory
	Notes           string
}

// IsPlaceholder reports whether the assignment is an empty-schedule marker.
func (a Assignment) IsPlaceholder() bool {
	return a.ShiftTemplateID == nil
}

// MarshalJSON renders the assignment in the external wire form: dates as
// "YYYY-MM-DD", clocks as "HH:MM".
func (a Assignment) MarshalJSON() ([]byte, error) {
	type wire struct {
		ID              string               `json:"id"`
		Version         int                  `json:"version"`
		Date            string               `json:"date"`
		EmployeeID      string               `json:"employee_id"`
		ShiftTemplateID *string              `json:"shift_template_id"`
		Start           timeutil.Clock       `json:"start_time"`
		End             timeutil.Clock       `json:"end_time"`
		BreakMinutes    int                  `json:"break_minutes"`
		Status          AssignmentStatus     `json:"status"`
		Availability    AvailabilityCategory `json:"availability_category"`
		Notes           string               `json:"notes,omitempty"`
	}
	return json.Marshal(wire{
		ID:              a.ID,
		Version:         a.Version,
		Date:            a.Date.Format("2006-01-02"),
		EmployeeID:      a.EmployeeID,
		ShiftTemplateID: a.ShiftTemplateID,
		Start:           a.Start,
		End:             a.End,
		BreakMinutes:    a.BreakMinutes,
		Status:          a.Status,
		Availability:    a.Availability,
		Notes:           a.Notes,
	})
}

// DurationHours returns the worked hours of the assignment, break excluded.
func (a Assignment) DurationHours() float64 {
	if a.IsPlaceholder() {
		return 0
	}
	worked := timeutil.ShiftDuration(a.Start, a.End) - time.Duration(a.BreakMinutes)*time.Minute
	return worked.Hours()
}

// StartAt returns the assignment start as an absolute instant.
func (a Assignment) StartAt() time.Time {
	return a.Start.At(a.Date)
}

// EndAt returns the assignment end as an absolute instant, rolling overnight
// shifts into the next day.
func (a Assignment) EndAt() time.Time {
	end := a.End.At(a.Date)
	if a.End <= a.Start {
		end = end.AddDate(0, 0, 1)
	}
	return end
}

// VersionStatus is the lifecycle status of a schedule version.
type VersionStatus string

const (
	VersionDraft     VersionStatus = "DRAFT"
	VersionPublished VersionStatus = "PUBLISHED"
	VersionArchived  VersionStatus = "ARCHIVED"
)

func (s VersionStatus) IsValid() bool {
	return s == VersionDraft || s == VersionPublished || s == VersionArchived
}

// CanTransitionTo reports whether the lifecycle permits moving to the given
// status. Allowed: DRAFT->PUBLISHED, DRAFT->ARCHIVED, PUBLISHED->ARCHIVED.
func (s VersionStatus) CanTransitionTo(next VersionStatus) bool {
	switch s {
	case VersionDraft:
		return next == VersionPublished || next == VersionArchived
	case VersionPublished:
		return next == VersionArchived
	default:
		return false
	}
}

// VersionMeta is the metadata row of one schedule version.
type VersionMeta struct {
	Version        int
	Status         VersionStatus
	DateRangeStart time.Time
	DateRangeEnd   time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
	BaseVersion    *int
	Notes          string
}

// MarshalJSON renders the version metadata with "YYYY-MM-DD" horizon dates.
func (m VersionMeta) MarshalJSON() ([]byte, error) {
	type wire struct {
		Version        int           `json:"version"`
		Status         VersionStatus `json:"status"`
		DateRangeStart string        `json:"date_range_start"`
		DateRangeEnd   string        `json:"date_range_end"`
		CreatedAt      time.Time     `json:"created_at"`
		UpdatedAt      time.Time     `json:"updated_at"`
		BaseVersion    *int          `json:"base_version"`
		Notes          string        `json:"notes,omitempty"`
	}
	return json.Marshal(wire{
		Version:        m.Version,
		Status:         m.Status,
		DateRangeStart: m.DateRangeStart.Format("2006-01-02"),
		DateRangeEnd:   m.DateRangeEnd.Format("2006-01-02"),
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
		BaseVersion:    m.BaseVersion,
		Notes:          m.Notes,
	})
}

// Weekday returns the Monday-based weekday index (0=Monday .. 6=Sunday) of a
// date, the convention used by active days, coverage and availability rows.
func Weekday(date time.Time) int {
	return (int(date.Weekday()) + 6) % 7
}

// WeekStart returns the Monday 00:00 starting the ISO week containing the
// date. Weeks align Monday-Sunday regardless of the horizon start; a Sunday
// belongs to the week of the preceding Monday.
func WeekStart(date time.Time) time.Time {
	d := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	return d.AddDate(0, 0, -Weekday(d))
}
