package coverage

import (
	"testing"

	"roster/internal/domain/org"
)

func TestShiftDurationHours(t *testing.T) {
	tests := []struct {
		name    string
		start   string
		end     string
		want    float64
		wantErr bool
	}{
		{name: "regular day shift", start: "09:00", end: "17:00", want: 8},
		{name: "half hour granularity", start: "08:30", end: "12:00", want: 3.5},
		{name: "overnight shift wraps past midnight", start: "22:00", end: "02:00", want: 4},
		{name: "ends exactly at midnight", start: "16:00", end: "00:00", want: 8},
		{name: "equal bounds treated as full day", start: "08:00", end: "08:00", want: 24},
		{name: "garbage start", start: "9am", end: "17:00", wantErr: true},
		{name: "garbage end", start: "09:00", end: "late", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ShiftDurationHours(tt.start, tt.end)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %v hours", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Fatalf("duration = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRankCandidatesTiers(t *testing.T) {
	roster := []org.Employee{
		{ID: "e1", StoreID: "s1", DepartmentID: "d1"},
		{ID: "e2", StoreID: "s2", DepartmentID: "d2"},
		{ID: "e3", StoreID: "s1", DepartmentID: "d3"},
		{ID: "e4", StoreID: "s2", DepartmentID: "d4"},
		{ID: "e5", StoreID: "s1", DepartmentID: "d1"},
	}
	rc := RankContext{
		ShiftStoreID:            "s1",
		ShiftDepartmentID:       "d1",
		ShiftGlobalDepartmentID: "g1",
		DepartmentGlobalIndex:   map[string]string{"d1": "g1", "d2": "g1", "d3": "g2", "d4": "g2"},
		Heads:                   map[string]struct{}{"e3": {}},
	}

	got := RankCandidates(roster, rc)
	if len(got) != 5 {
		t.Fatalf("expected 5 candidates, got %d", len(got))
	}

	wantOrder := []string{"e1", "e5", "e2", "e3", "e4"}
	wantTiers := []int{1, 1, 2, 3, 4}
	for i, c := range got {
		if c.EmployeeID != wantOrder[i] {
			t.Errorf("position %d: got %s, want %s", i, c.EmployeeID, wantOrder[i])
		}
		if c.Tier != wantTiers[i] {
			t.Errorf("candidate %s: tier = %d, want %d", c.EmployeeID, c.Tier, wantTiers[i])
		}
	}
}

func TestRankCandidatesSkipsWorkingAndExcluded(t *testing.T) {
	roster := []org.Employee{
		{ID: "busy", StoreID: "s1", DepartmentID: "d1"},
		{ID: "reporter", StoreID: "s1", DepartmentID: "d1"},
		{ID: "free", StoreID: "s1", DepartmentID: "d1"},
	}
	got := RankCandidates(roster, RankContext{
		ShiftStoreID:      "s1",
		ShiftDepartmentID: "d1",
		Working:           map[string]struct{}{"busy": {}},
		Exclude:           map[string]struct{}{"reporter": {}},
	})

	if len(got) != 1 || got[0].EmployeeID != "free" {
		t.Fatalf("expected only the free employee, got %+v", got)
	}
}

func TestRankCandidatesSameStoreDifferentDepartmentIsNotTierTwo(t *testing.T) {
	// Tier 2 requires a different store; a sibling department in the same
	// store falls through to tier 4 unless its employee heads the global
	// department.
	roster := []org.Employee{{ID: "e1", StoreID: "s1", DepartmentID: "d2"}}
	got := RankCandidates(roster, RankContext{
		ShiftStoreID:            "s1",
		ShiftDepartmentID:       "d1",
		ShiftGlobalDepartmentID: "g1",
		DepartmentGlobalIndex:   map[string]string{"d1": "g1", "d2": "g1"},
	})

	if got[0].Tier != 4 {
		t.Fatalf("tier = %d, want 4", got[0].Tier)
	}
}
