package coverage

import (
	"fmt"
	"sort"
	"time"

	"roster/internal/domain/org"
)

const clockLayout = "15:04"

// ShiftDurationHours computes the length of a shift from its HH:MM bounds.
// An end time at or before the start time is treated as crossing midnight,
// so 22:00-02:00 yields 4 hours.
func ShiftDurationHours(startTime, endTime string) (float64, error) {
	start, err := time.Parse(clockLayout, startTime)
	if err != nil {
		return 0, fmt.Errorf("invalid shift start time %q: %w", startTime, err)
	}
	end, err := time.Parse(clockLayout, endTime)
	if err != nil {
		return 0, fmt.Errorf("invalid shift end time %q: %w", endTime, err)
	}

	d := end.Sub(start)
	if d <= 0 {
		d += 24 * time.Hour
	}
	return d.Hours(), nil
}

// RankContext carries the organisational facts the ranking needs. Working and
// Exclude are sets of employee IDs; employees in either never appear in the
// result.
type RankContext struct {
	ShiftStoreID            string
	ShiftDepartmentID       string
	ShiftGlobalDepartmentID string
	DepartmentGlobalIndex   map[string]string
	Heads                   map[string]struct{}
	Working                 map[string]struct{}
	Exclude                 map[string]struct{}
}

// RankCandidates filters the active roster down to employees free on the
// shift's day and orders them by affinity tier:
//
//	1: same store, same department as the shift
//	2: different store, department under the same global department
//	3: head of the shift's global department
//	4: everyone else
//
// The sort is stable, so within a tier the incoming roster order (employee
// number) is preserved.
func RankCandidates(roster []org.Employee, rc RankContext) []Candidate {
	out := make([]Candidate, 0, len(roster))
	for _, e := range roster {
		if _, busy := rc.Working[e.ID]; busy {
			continue
		}
		if _, skip := rc.Exclude[e.ID]; skip {
			continue
		}
		out = append(out, Candidate{
			EmployeeID:   e.ID,
			FirstName:    e.FirstName,
			LastName:     e.LastName,
			StoreID:      e.StoreID,
			DepartmentID: e.DepartmentID,
			Tier:         candidateTier(e, rc),
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Tier < out[j].Tier })
	return out
}

func candidateTier(e org.Employee, rc RankContext) int {
	if e.StoreID == rc.ShiftStoreID && e.DepartmentID == rc.ShiftDepartmentID {
		return 1
	}
	if rc.ShiftGlobalDepartmentID != "" && e.StoreID != rc.ShiftStoreID &&
		rc.DepartmentGlobalIndex[e.DepartmentID] == rc.ShiftGlobalDepartmentID {
		return 2
	}
	if _, head := rc.Heads[e.ID]; head {
		return 3
	}
	return 4
}
