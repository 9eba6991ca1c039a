package scheduler

import (
	"sort"

	"github.com/rosterd/rosterd/pkg/core/model"
	"github.com/rosterd/rosterd/pkg/core/timeutil"
)

// IntervalNeed is the aggregated staffing target for one interval of a day.
type IntervalNeed struct {
	Start             timeutil.Clock
	MinEmployees      int
	MaxEmployees      int
	RequiresKeyholder bool
	AllowedGroups     []model.EmployeeGroup // empty = any
}

// AllowsGroup reports whether the interval admits the given group.
func (n IntervalNeed) AllowsGroup(g model.EmployeeGroup) bool {
	if len(n.AllowedGroups) == 0 {
		return true
	}
	for _, allowed := range n.AllowedGroups {
		if allowed == g {
			return true
		}
	}
	return false
}

// Restricted reports whether the interval limits eligible groups.
func (n IntervalNeed) Restricted() bool {
	return len(n.AllowedGroups) > 0
}

// BuildDayNeeds derives the interval need table for one day from its
// coverage rows. Overlapping rows merge by taking the strongest minimum and
// the widest maximum; group restrictions merge by union, and any
// unrestricted row lifts the restriction for the interval. Keyholder
// pre-open and post-close minutes extend the keyholder requirement to the
// intervals they reach into.
func BuildDayNeeds(rows []model.CoverageRequirement, grid timeutil.Grid) []IntervalNeed {
	needs := make(map[timeutil.Clock]*IntervalNeed)

	get := func(start timeutil.Clock) *IntervalNeed {
		need, ok := needs[start]
		if !ok {
			need = &IntervalNeed{Start: start}
			needs[start] = need
		}
		return need
	}

	unrestricted := make(map[timeutil.Clock]bool)

	for _, row := range rows {
		for _, start := range grid.IntervalsBetween(row.Start, row.End) {
			need := get(start)
			if row.MinEmployees > need.MinEmployees {
				need.MinEmployees = row.MinEmployees
			}
			if row.MaxEmployees > need.MaxEmployees {
				need.MaxEmployees = row.MaxEmployees
			}
			if row.RequiresKeyholder {
				need.RequiresKeyholder = true
			}
			if len(row.AllowedGroups) == 0 {
				unrestricted[start] = true
			} else {
				need.AllowedGroups = mergeGroups(need.AllowedGroups, row.AllowedGroups)
			}
		}

		// Keyholder presence before opening and after closing reaches into
		// the neighbouring intervals.
		if row.RequiresKeyholder && row.KeyholderBeforeMinutes > 0 {
			preOpen := row.Start.Add(-row.KeyholderBeforeMinutes)
			if preOpen < row.Start {
				for _, start := range grid.IntervalsBetween(preOpen, row.Start) {
					get(start).RequiresKeyholder = true
				}
			}
		}
		if row.RequiresKeyholder && row.KeyholderAfterMinutes > 0 {
			postClose := row.End.Add(row.KeyholderAfterMinutes)
			if postClose > row.End {
				for _, start := range grid.IntervalsBetween(row.End, postClose) {
					get(start).RequiresKeyholder = true
				}
			}
		}
	}

	result := make([]IntervalNeed, 0, len(needs))
	for start, need := range needs {
		if unrestricted[start] {
			need.AllowedGroups = nil
		}
		if need.MaxEmployees < need.MinEmployees {
			need.MaxEmployees = need.MinEmployees
		}
		// Pure keyholder-extension intervals carry no headcount of their own
		// but still must admit the keyholder.
		if need.RequiresKeyholder && need.MaxEmployees == 0 {
			need.MaxEmployees = 1
		}
		result = append(result, *need)
	}

	sort.Slice(result, func(i, j int) bool { return result[i].Start < result[j].Start })
	return result
}

func mergeGroups(existing, add []model.EmployeeGroup) []model.EmployeeGroup {
	seen := make(map[model.EmployeeGroup]bool, len(existing))
	for _, g := range existing {
		seen[g] = true
	}
	for _, g := range add {
		if !seen[g] {
			existing = append(existing, g)
			seen[g] = true
		}
	}
	return existing
}
