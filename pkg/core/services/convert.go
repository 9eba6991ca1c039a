package services

import (
	"fmt"

	"github.com/rosterd/rosterd/pkg/core/model"
	"github.com/rosterd/rosterd/pkg/core/timeutil"
	"github.com/rosterd/rosterd/pkg/db"
)

func employeeFromRow(row db.EmployeeRow) model.Employee {
	return model.Employee{
		ID:                  row.ID,
		Name:                row.Name,
		Group:               model.EmployeeGroup(row.EmployeeGroup),
		ContractedHours:     row.ContractedHours,
		IsKeyholder:         row.IsKeyholder,
		IsActive:            row.IsActive,
		PreferredDays:       row.PreferredDays,
		AvoidDays:           row.AvoidDays,
		PreferredShiftTypes: shiftTypes(row.PreferredShifts),
		AvoidShiftTypes:     shiftTypes(row.AvoidShifts),
	}
}

func templateFromRow(row db.ShiftTemplateRow) (model.ShiftTemplate, error) {
	start, err := timeutil.ParseClock(row.StartTime)
	if err != nil {
		return model.ShiftTemplate{}, fmt.Errorf("shift template %s: %w", row.ID, err)
	}
	end, err := timeutil.ParseClock(row.EndTime)
	if err != nil {
		return model.ShiftTemplate{}, fmt.Errorf("shift template %s: %w", row.ID, err)
	}
	activeDays, err := model.NormalizeActiveDays(row.ActiveDays)
	if err != nil {
		return model.ShiftTemplate{}, fmt.Errorf("shift template %s: %w", row.ID, err)
	}

	return model.ShiftTemplate{
		ID:         row.ID,
		Start:      start,
		End:        end,
		ShiftType:  model.ShiftType(row.ShiftType),
		ActiveDays: activeDays,
	}, nil
}

func coverageFromRow(row db.CoverageRow) (model.CoverageRequirement, error) {
	start, err := timeutil.ParseClock(row.StartTime)
	if err != nil {
		return model.CoverageRequirement{}, fmt.Errorf("coverage row %s: %w", row.ID, err)
	}
	end, err := timeutil.ParseClock(row.EndTime)
	if err != nil {
		return model.CoverageRequirement{}, fmt.Errorf("coverage row %s: %w", row.ID, err)
	}
	if end <= start {
		return model.CoverageRequirement{}, fmt.Errorf("coverage row %s: end %s not after start %s", row.ID, end, start)
	}
	if row.MinEmployees < 0 || row.MaxEmployees < row.MinEmployees {
		return model.CoverageRequirement{}, fmt.Errorf("coverage row %s: invalid headcount bounds [%d, %d]", row.ID, row.MinEmployees, row.MaxEmployees)
	}

	groups := make([]model.EmployeeGroup, len(row.AllowedGroups))
	for i, g := range row.AllowedGroups {
		groups[i] = model.EmployeeGroup(g)
	}

	return model.CoverageRequirement{
		ID:                     row.ID,
		DayIndex:               row.DayIndex,
		Start:                  start,
		End:                    end,
		MinEmployees:           row.MinEmployees,
		MaxEmployees:           row.MaxEmployees,
		AllowedGroups:          groups,
		RequiresKeyholder:      row.RequiresKeyholder,
		KeyholderBeforeMinutes: row.KeyholderBeforeMinutes,
		KeyholderAfterMinutes:  row.KeyholderAfterMinutes,
	}, nil
}

func assignmentToRow(a model.Assignment) db.AssignmentRow {
	return db.AssignmentRow{
		ID:              a.ID,
		Version:         a.Version,
		Date:            a.Date,
		EmployeeID:      a.EmployeeID,
		ShiftTemplateID: a.ShiftTemplateID,
		StartTime:       a.Start.String(),
		EndTime:         a.End.String(),
		BreakMinutes:    a.BreakMinutes,
		Status:          string(a.Status),
		Availability:    string(a.Availability),
		Notes:           a.Notes,
	}
}

func assignmentFromRow(row db.AssignmentRow) (model.Assignment, error) {
	start, err := timeutil.ParseClock(row.StartTime)
	if err != nil {
		return model.Assignment{}, fmt.Errorf("assignment %s: %w", row.ID, err)
	}
	end, err := timeutil.ParseClock(row.EndTime)
	if err != nil {
		return model.Assignment{}, fmt.Errorf("assignment %s: %w", row.ID, err)
	}

	return model.Assignment{
		ID:              row.ID,
		Version:         row.Version,
		Date:            model.DateOnly(row.Date),
		EmployeeID:      row.EmployeeID,
		ShiftTemplateID: row.ShiftTemplateID,
		Start:           start,
		End:             end,
		BreakMinutes:    row.BreakMinutes,
		Status:          model.AssignmentStatus(row.Status),
		Availability:    model.AvailabilityCategory(row.Availability),
		Notes:           row.Notes,
	}, nil
}

func versionFromRow(row db.VersionRow) model.VersionMeta {
	return model.VersionMeta{
		Version:        row.Version,
		Status:         model.VersionStatus(row.Status),
		DateRangeStart: row.DateRangeStart,
		DateRangeEnd:   row.DateRangeEnd,
		CreatedAt:      row.CreatedAt,
		UpdatedAt:      row.UpdatedAt,
		BaseVersion:    row.BaseVersion,
		Notes:          row.Notes,
	}
}

func shiftTypes(values []string) []model.ShiftType {
	if len(values) == 0 {
		return nil
	}
	types := make([]model.ShiftType, len(values))
	for i, v := range values {
		types[i] = model.ShiftType(v)
	}
	return types
}
