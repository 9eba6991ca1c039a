package db

import "time"

// EmployeeRow is an employee record as stored.
type EmployeeRow struct {
	ID              string
	Name            string
	EmployeeGroup   string
	ContractedHours float64
	IsKeyholder     bool
	IsActive        bool
	PreferredDays   []int
	AvoidDays       []int
	PreferredShifts []string
	AvoidShifts     []string
}

// ShiftTemplateRow is a shift template record as stored. ActiveDays keeps
// the raw wire encoding (JSON list, CSV string or weekday-bool map); the
// loader normalizes it.
type ShiftTemplateRow struct {
	ID         string
	StartTime  string // HH:MM or HH:MM:SS
	EndTime    string
	ShiftType  string
	ActiveDays string
}

// CoverageRow is a coverage requirement record as stored.
type CoverageRow struct {
	ID                     string
	DayIndex               int
	StartTime              string
	EndTime                string
	MinEmployees           int
	MaxEmployees           int
	AllowedGroups          []string
	RequiresKeyholder      bool
	KeyholderBeforeMinutes int
	KeyholderAfterMinutes  int
}

// AvailabilityRow is a recurring weekly availability record as stored.
type AvailabilityRow struct {
	EmployeeID string
	DayOfWeek  int
	Hour       int
	Category   string
}

// AbsenceRow is an absence record as stored.
type AbsenceRow struct {
	EmployeeID string
	StartDate  time.Time
	EndDate    time.Time
	Kind       string
}

// SettingRow is one settings key/value pair as stored.
type SettingRow struct {
	Key   string
	Value string
}

// AssignmentRow is an assignment record as stored. A nil ShiftTemplateID
// marks an empty placeholder.
type AssignmentRow struct {
	ID              string
	Version         int
	Date            time.Time
	EmployeeID      string
	ShiftTemplateID *string
	StartTime       string
	EndTime         string
	BreakMinutes    int
	Status          string
	Availability    string
	Notes           string
}

// VersionRow is a version metadata record as stored.
type VersionRow struct {
	Version        int
	Status         string
	DateRangeStart time.Time
	DateRangeEnd   time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
	BaseVersion    *int
	Notes          string
}
