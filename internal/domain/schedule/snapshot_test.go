package schedule

import (
	"testing"
	"time"
)

func TestWorkingIDsOnUnionsShiftsAcrossSchedules(t *testing.T) {
	date := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	schedules := []Schedule{
		{
			Days: []Day{{
				Date: "2024-06-01",
				Shifts: []Shift{
					{Name: "Morning", StartTime: "08:00", EndTime: "14:00", EmployeeIDs: []string{"e1", "e2"}},
					{Name: "Evening", StartTime: "14:00", EndTime: "22:00", EmployeeIDs: []string{"e3"}},
				},
			}},
		},
		{
			Days: []Day{{
				Date: "2024-06-01",
				Shifts: []Shift{
					{Name: "Morning", StartTime: "08:00", EndTime: "14:00", EmployeeIDs: []string{"e2", "e4"}},
				},
			}},
		},
	}

	working := workingIDsOn(schedules, date)
	if len(working) != 4 {
		t.Fatalf("expected 4 working employees, got %d", len(working))
	}
	for _, id := range []string{"e1", "e2", "e3", "e4"} {
		if _, ok := working[id]; !ok {
			t.Fatalf("expected %s in working set", id)
		}
	}
}

func TestWorkingIDsOnSkipsDayOffShifts(t *testing.T) {
	date := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	schedules := []Schedule{
		{
			Days: []Day{{
				Date: "2024-06-01",
				Shifts: []Shift{
					{Name: "Day Off", EmployeeIDs: []string{"e1"}},
					{Name: "do", EmployeeIDs: []string{"e2"}},
					{Name: "-", EmployeeIDs: []string{"e3"}},
					{Name: "Evening", EmployeeIDs: []string{"e4"}},
				},
			}},
		},
	}

	working := workingIDsOn(schedules, date)
	if len(working) != 1 {
		t.Fatalf("expected only 1 working employee, got %d", len(working))
	}
	if _, ok := working["e4"]; !ok {
		t.Fatal("expected e4 in working set")
	}
}

func TestWorkingIDsOnIgnoresOtherDates(t *testing.T) {
	schedules := []Schedule{
		{
			Days: []Day{{
				Date:   "2024-06-02",
				Shifts: []Shift{{Name: "Morning", EmployeeIDs: []string{"e1"}}},
			}},
		},
	}

	working := workingIDsOn(schedules, time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC))
	if len(working) != 0 {
		t.Fatalf("expected empty working set, got %d", len(working))
	}
}

func TestApplyMutationAddsRosterNoteAndAbsence(t *testing.T) {
	sched := &Schedule{
		ID: "s1",
		Days: []Day{{
			Date: "2024-06-01",
			Shifts: []Shift{
				{Name: "Evening", StartTime: "18:00", EndTime: "23:00", EmployeeIDs: []string{"e1"}},
			},
		}},
	}

	m := CoverageMutation{
		DayDate:            time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		ShiftStart:         "18:00",
		ShiftEnd:           "23:00",
		CoveringEmployeeID: "e2",
		Note:               CoverageNote{OriginalEmployeeID: "e1", CoveringEmployeeID: "e2", CompensationType: "extra_hour", Amount: 5},
		Absence:            AbsenceMarker{EmployeeID: "e1", Date: "2024-06-01", Type: "sickness", Status: "pending"},
	}

	if !applyMutation(sched, m) {
		t.Fatal("expected mutation to apply")
	}

	shift := sched.Days[0].Shifts[0]
	if len(shift.EmployeeIDs) != 2 || shift.EmployeeIDs[1] != "e2" {
		t.Fatalf("expected e2 added to roster, got %v", shift.EmployeeIDs)
	}
	if len(shift.CoverageNotes) != 1 || shift.CoverageNotes[0].CoveringEmployeeID != "e2" {
		t.Fatalf("expected coverage note, got %v", shift.CoverageNotes)
	}
	if len(sched.Absences) != 1 || sched.Absences[0].EmployeeID != "e1" {
		t.Fatalf("expected absence marker, got %v", sched.Absences)
	}
}

func TestApplyMutationRosterAddIsIdempotent(t *testing.T) {
	sched := &Schedule{
		Days: []Day{{
			Date: "2024-06-01",
			Shifts: []Shift{
				{Name: "Evening", StartTime: "18:00", EndTime: "23:00", EmployeeIDs: []string{"e1", "e2"}},
			},
		}},
	}

	m := CoverageMutation{
		DayDate:            time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		ShiftStart:         "18:00",
		ShiftEnd:           "23:00",
		CoveringEmployeeID: "e2",
	}

	if !applyMutation(sched, m) {
		t.Fatal("expected mutation to apply")
	}
	if got := len(sched.Days[0].Shifts[0].EmployeeIDs); got != 2 {
		t.Fatalf("expected roster unchanged at 2, got %d", got)
	}
}

func TestApplyMutationMissingShift(t *testing.T) {
	sched := &Schedule{
		Days: []Day{{
			Date:   "2024-06-01",
			Shifts: []Shift{{Name: "Morning", StartTime: "08:00", EndTime: "14:00"}},
		}},
	}

	m := CoverageMutation{
		DayDate:    time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		ShiftStart: "18:00",
		ShiftEnd:   "23:00",
	}

	if applyMutation(sched, m) {
		t.Fatal("expected mutation to be skipped for missing shift")
	}
	if len(sched.Absences) != 0 {
		t.Fatal("expected no absence marker when shift is missing")
	}
}
