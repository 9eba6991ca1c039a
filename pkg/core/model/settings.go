package model

import (
	"fmt"
	"strconv"
	"strings"
)

// HoursBand is the allowed weekly contracted-hours range for a group.
type HoursBand struct {
	Min float64
	Max float64
}

// Settings are the scheduling parameters the engine consumes. Defaults live
// in code; rows of the settings table overlay them at load time.
type Settings struct {
	MaxConsecutiveDays         int
	MinRestHours               float64
	EnforceRestPeriods         bool
	ContractedHoursLimitFactor float64
	MaxHoursPerGroup           map[EmployeeGroup]float64 // weekly cap, absent = uncapped
	MaxDailyHours              map[EmployeeGroup]float64 // absent = DefaultMaxDailyHours
	IntervalMinutes            int
	PreferredAvailabilityBonus float64
	MinScore                   float64
	ShiftTypeDesirability      map[ShiftType]float64
	ContractedHoursBands       map[EmployeeGroup]HoursBand
}

// DefaultMaxDailyHours applies to groups without an explicit daily cap.
const DefaultMaxDailyHours = 8.0

// DefaultSettings returns the engine defaults.
func DefaultSettings() Settings {
	return Settings{
		MaxConsecutiveDays:         7,
		MinRestHours:               11,
		EnforceRestPeriods:         true,
		ContractedHoursLimitFactor: 1.2,
		MaxHoursPerGroup:           map[EmployeeGroup]float64{},
		MaxDailyHours:              map[EmployeeGroup]float64{},
		IntervalMinutes:            60,
		PreferredAvailabilityBonus: 0.2,
		MinScore:                   0,
		ShiftTypeDesirability: map[ShiftType]float64{
			ShiftEarly:  1,
			ShiftMiddle: 0,
			ShiftLate:   2,
		},
		ContractedHoursBands: map[EmployeeGroup]HoursBand{
			GroupFullTime: {Min: 35, Max: 48},
			GroupPartTime: {Min: 10, Max: 35},
			GroupMiniJob:  {Min: 0, Max: 12},
			GroupTeamLead: {Min: 35, Max: 48},
		},
	}
}

// DailyCap returns the daily-hours cap for a group.
func (s Settings) DailyCap(g EmployeeGroup) float64 {
	if cap, ok := s.MaxDailyHours[g]; ok {
		return cap
	}
	return DefaultMaxDailyHours
}

// WeeklyGroupCap returns the configured weekly cap for a group, or false
// when the group is uncapped.
func (s Settings) WeeklyGroupCap(g EmployeeGroup) (float64, bool) {
	cap, ok := s.MaxHoursPerGroup[g]
	return cap, ok
}

// Desirability returns the base desirability penalty weight for a shift
// type. Unknown types score neutral.
func (s Settings) Desirability(t ShiftType) float64 {
	return s.ShiftTypeDesirability[t]
}

// Apply overlays one settings-table row onto the settings. Unknown keys are
// reported so the loader can warn without failing the run.
func (s *Settings) Apply(key, value string) error {
	switch {
	case key == "max_consecutive_days":
		return setInt(&s.MaxConsecutiveDays, key, value)
	case key == "min_rest_hours":
		return setFloat(&s.MinRestHours, key, value)
	case key == "enforce_rest_periods":
		return setBool(&s.EnforceRestPeriods, key, value)
	case key == "contracted_hours_limit_factor":
		return setFloat(&s.ContractedHoursLimitFactor, key, value)
	case key == "interval_minutes":
		return setInt(&s.IntervalMinutes, key, value)
	case key == "preferred_availability_bonus":
		return setFloat(&s.PreferredAvailabilityBonus, key, value)
	case key == "min_score":
		return setFloat(&s.MinScore, key, value)
	case strings.HasPrefix(key, "max_hours_per_group."):
		group := EmployeeGroup(strings.TrimPrefix(key, "max_hours_per_group."))
		var hours float64
		if err := setFloat(&hours, key, value); err != nil {
			return err
		}
		s.MaxHoursPerGroup[group] = hours
		return nil
	case strings.HasPrefix(key, "employee_types.") && strings.HasSuffix(key, ".max_daily_hours"):
		group := EmployeeGroup(strings.TrimSuffix(strings.TrimPrefix(key, "employee_types."), ".max_daily_hours"))
		var hours float64
		if err := setFloat(&hours, key, value); err != nil {
			return err
		}
		s.MaxDailyHours[group] = hours
		return nil
	case strings.HasPrefix(key, "shift_type_desirability."):
		shiftType := ShiftType(strings.TrimPrefix(key, "shift_type_desirability."))
		var weight float64
		if err := setFloat(&weight, key, value); err != nil {
			return err
		}
		s.ShiftTypeDesirability[shiftType] = weight
		return nil
	default:
		return fmt.Errorf("unknown settings key %q", key)
	}
}

func setInt(dst *int, key, value string) error {
	v, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return fmt.Errorf("settings key %s: %w", key, err)
	}
	*dst = v
	return nil
}

func setFloat(dst *float64, key, value string) error {
	v, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return fmt.Errorf("settings key %s: %w", key, err)
	}
	*dst = v
	return nil
}

func setBool(dst *bool, key, value string) error {
	v, err := strconv.ParseBool(strings.TrimSpace(value))
	if err != nil {
		return fmt.Errorf("settings key %s: %w", key, err)
	}
	*dst = v
	return nil
}
