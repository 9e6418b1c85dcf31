package coverage

import (
	"fmt"
	"time"
)

// ShiftRef pins a coverage request to one shift occurrence. Immutable after
// the report that creates the request.
type ShiftRef struct {
	ScheduleID   string    `json:"scheduleId"`
	DayDate      time.Time `json:"dayDate"`
	ShiftName    string    `json:"shiftName"`
	StartTime    string    `json:"startTime"`
	EndTime      string    `json:"endTime"`
	StoreID      string    `json:"storeId"`
	DepartmentID string    `json:"departmentId"`
}

func (r ShiftRef) Key() string {
	return fmt.Sprintf("%s|%s|%s|%s", r.ScheduleID, r.DayDate.Format("2006-01-02"), r.StartTime, r.EndTime)
}

type CoverageRequest struct {
	ID                 string     `json:"id"`
	OriginalShift      ShiftRef   `json:"originalShift"`
	OriginalEmployeeID string     `json:"originalEmployeeId"`
	Reason             string     `json:"reason,omitempty"`
	Attachments        []string   `json:"attachments,omitempty"`
	Status             string     `json:"status"`
	Candidates         []string   `json:"candidates"`
	HRMessage          string     `json:"hrMessage,omitempty"`
	OfferSentAt        *time.Time `json:"offerSentAt,omitempty"`
	AcceptedBy         string     `json:"acceptedBy,omitempty"`
	AcceptedAt         *time.Time `json:"acceptedAt,omitempty"`
	CompensationType   string     `json:"compensationType,omitempty"`
	CreatedAt          time.Time  `json:"createdAt"`
}

func (r *CoverageRequest) HasCandidate(employeeID string) bool {
	for _, id := range r.Candidates {
		if id == employeeID {
			return true
		}
	}
	return false
}

func (r *CoverageRequest) Terminal() bool {
	return r.Status == StatusCovered || r.Status == StatusCancelled
}

// Candidate is one entry of the resolver's ranked pool. Lower tier sorts
// first.
type Candidate struct {
	EmployeeID   string `json:"employeeId"`
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName"`
	StoreID      string `json:"storeId"`
	DepartmentID string `json:"departmentId"`
	Tier         int    `json:"tier"`
}

type CompensationInput struct {
	Type   string  `json:"type"`
	Amount float64 `json:"amount,omitempty"`
}

type AbsenceInput struct {
	Type                string `json:"type"`
	Justification       string `json:"justification,omitempty"`
	JustificationStatus string `json:"justificationStatus"`
}

type ListFilter struct {
	StoreID string
	Status  string
	From    time.Time
	To      time.Time
}
