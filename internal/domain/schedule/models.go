package schedule

import "time"

const (
	StatusDraft     = "draft"
	StatusPublished = "published"
	StatusRejected  = "rejected"
)

const DateLayout = "2006-01-02"

// Schedule is stored as a document: the day/shift tree lives in a jsonb
// column and is mutated read-modify-write (last writer wins, matching the
// rest of the scheduling system).
type Schedule struct {
	ID           string          `json:"id"`
	StoreID      string          `json:"storeId"`
	DepartmentID string          `json:"departmentId"`
	Name         string          `json:"name"`
	Status       string          `json:"status"`
	Days         []Day           `json:"days"`
	Absences     []AbsenceMarker `json:"absences,omitempty"`
	CreatedAt    time.Time       `json:"createdAt"`
}

type Day struct {
	Date   string  `json:"date"`
	Shifts []Shift `json:"shifts"`
}

type Shift struct {
	Name          string         `json:"name"`
	StartTime     string         `json:"startTime"`
	EndTime       string         `json:"endTime"`
	EmployeeIDs   []string       `json:"employeeIds"`
	CoverageNotes []CoverageNote `json:"coverageNotes,omitempty"`
}

// CoverageNote is the annotation finalize appends to a shift when a covering
// employee is added to its roster.
type CoverageNote struct {
	OriginalEmployeeID string  `json:"originalEmployeeId"`
	CoveringEmployeeID string  `json:"coveringEmployeeId"`
	CompensationType   string  `json:"compensationType"`
	Amount             float64 `json:"amount"`
}

type AbsenceMarker struct {
	EmployeeID string `json:"employeeId"`
	Date       string `json:"date"`
	Type       string `json:"type"`
	Status     string `json:"status"`
	Reason     string `json:"reason,omitempty"`
}

// CoverageMutation describes the schedule-side effect of finalizing a
// coverage request: roster addition, shift annotation and absence marker.
type CoverageMutation struct {
	DayDate            time.Time
	ShiftStart         string
	ShiftEnd           string
	CoveringEmployeeID string
	Note               CoverageNote
	Absence            AbsenceMarker
}
