package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSettings_ApplyScalarKeys(t *testing.T) {
	s := DefaultSettings()

	require.NoError(t, s.Apply("max_consecutive_days", "5"))
	require.NoError(t, s.Apply("min_rest_hours", "12.5"))
	require.NoError(t, s.Apply("enforce_rest_periods", "false"))
	require.NoError(t, s.Apply("contracted_hours_limit_factor", "1.1"))
	require.NoError(t, s.Apply("interval_minutes", "30"))
	require.NoError(t, s.Apply("min_score", "25"))

	assert.Equal(t, 5, s.MaxConsecutiveDays)
	assert.Equal(t, 12.5, s.MinRestHours)
	assert.False(t, s.EnforceRestPeriods)
	assert.Equal(t, 1.1, s.ContractedHoursLimitFactor)
	assert.Equal(t, 30, s.IntervalMinutes)
	assert.Equal(t, 25.0, s.MinScore)
}

func TestSettings_ApplyDottedKeys(t *testing.T) {
	s := DefaultSettings()

	require.NoError(t, s.Apply("max_hours_per_group.mini_job", "12"))
	require.NoError(t, s.Apply("employee_types.full_time.max_daily_hours", "9"))
	require.NoError(t, s.Apply("shift_type_desirability.late", "3"))

	cap, ok := s.WeeklyGroupCap(GroupMiniJob)
	require.True(t, ok)
	assert.Equal(t, 12.0, cap)
	assert.Equal(t, 9.0, s.DailyCap(GroupFullTime))
	assert.Equal(t, 3.0, s.Desirability(ShiftLate))
}

func TestSettings_ApplyUnknownKey(t *testing.T) {
	s := DefaultSettings()
	err := s.Apply("no_such_setting", "1")
	assert.ErrorContains(t, err, "unknown settings key")
}

func TestSettings_ApplyBadValue(t *testing.T) {
	s := DefaultSettings()
	assert.Error(t, s.Apply("max_consecutive_days", "many"))
	assert.Error(t, s.Apply("min_rest_hours", ""))
}

func TestSettings_DailyCapDefault(t *testing.T) {
	s := DefaultSettings()
	assert.Equal(t, DefaultMaxDailyHours, s.DailyCap(GroupPartTime))

	_, capped := s.WeeklyGroupCap(GroupFullTime)
	assert.False(t, capped)
}
