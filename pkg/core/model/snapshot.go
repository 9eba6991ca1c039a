package model

import "time"

// Snapshot is the consistent, read-only view of all scheduling inputs for
// one horizon. Entities live in flat slices; lookups go through id-keyed
// indexes, and assignments reference entities by id only.
type Snapshot struct {
	HorizonStart time.Time
	HorizonEnd   time.Time

	Employees []Employee
	Templates []ShiftTemplate
	Coverage  []CoverageRequirement
	Absences  []Absence
	Slots     []AvailabilitySlot
	Settings  Settings

	// ClosedDates are horizon dates on which the site is closed; coverage
	// does not apply there and no shifts are generated.
	ClosedDates map[time.Time]bool

	employeeByID map[string]int
	templateByID map[string]int
	// coverageByDay and slotIndex are derived once so the per-interval loops
	// stay allocation-free.
	coverageByDay map[int][]int
	slotIndex     map[slotKey]AvailabilityCategory
	absencesByEmp map[string][]int
}

type slotKey struct {
	employeeID string
	dayOfWeek  int
	hour       int
}

// BuildIndexes populates the snapshot's lookup indexes. It must be called
// once after the slices are filled and before the snapshot is handed to the
// generator.
func (s *Snapshot) BuildIndexes() {
	s.employeeByID = make(map[string]int, len(s.Employees))
	for i, e := range s.Employees {
		s.employeeByID[e.ID] = i
	}

	s.templateByID = make(map[string]int, len(s.Templates))
	for i, t := range s.Templates {
		s.templateByID[t.ID] = i
	}

	s.coverageByDay = make(map[int][]int)
	for i, c := range s.Coverage {
		s.coverageByDay[c.DayIndex] = append(s.coverageByDay[c.DayIndex], i)
	}

	s.slotIndex = make(map[slotKey]AvailabilityCategory, len(s.Slots))
	for _, slot := range s.Slots {
		s.slotIndex[slotKey{slot.EmployeeID, slot.DayOfWeek, slot.Hour}] = slot.Category
	}

	s.absencesByEmp = make(map[string][]int)
	for i, a := range s.Absences {
		s.absencesByEmp[a.EmployeeID] = append(s.absencesByEmp[a.EmployeeID], i)
	}
}

// EmployeeByID returns the employee with the given id.
func (s *Snapshot) EmployeeByID(id string) (Employee, bool) {
	i, ok := s.employeeByID[id]
	if !ok {
		return Employee{}, false
	}
	return s.Employees[i], true
}

// TemplateByID returns the shift template with the given id.
func (s *Snapshot) TemplateByID(id string) (ShiftTemplate, bool) {
	i, ok := s.templateByID[id]
	if !ok {
		return ShiftTemplate{}, false
	}
	return s.Templates[i], true
}

// CoverageForDay returns the coverage rows for a Monday-based weekday index.
func (s *Snapshot) CoverageForDay(weekday int) []CoverageRequirement {
	indexes := s.coverageByDay[weekday]
	rows := make([]CoverageRequirement, len(indexes))
	for i, idx := range indexes {
		rows[i] = s.Coverage[idx]
	}
	return rows
}

// SlotCategory returns the explicit availability record for the given
// weekday and hour, if one exists.
func (s *Snapshot) SlotCategory(employeeID string, dayOfWeek, hour int) (AvailabilityCategory, bool) {
	cat, ok := s.slotIndex[slotKey{employeeID, dayOfWeek, hour}]
	return cat, ok
}

// IsAbsent reports whether the employee has an absence covering the date.
func (s *Snapshot) IsAbsent(employeeID string, date time.Time) bool {
	for _, idx := range s.absencesByEmp[employeeID] {
		if s.Absences[idx].Covers(date) {
			return true
		}
	}
	return false
}

// IsClosed reports whether the site is closed on the date.
func (s *Snapshot) IsClosed(date time.Time) bool {
	return s.ClosedDates[DateOnly(date)]
}

// Dates returns every date of the horizon in chronological order.
func (s *Snapshot) Dates() []time.Time {
	var dates []time.Time
	for d := DateOnly(s.HorizonStart); !d.After(DateOnly(s.HorizonEnd)); d = d.AddDate(0, 0, 1) {
		dates = append(dates, d)
	}
	return dates
}
