package compensation

import "time"

// DefaultVacationAllotment is the yearly allotment a vacation balance starts
// with when the first credit initializes it.
const DefaultVacationAllotment = 22

type ExtraHourGrant struct {
	ID         string    `json:"id"`
	EmployeeID string    `json:"employeeId"`
	Hours      float64   `json:"hours"`
	SourceRef  string    `json:"sourceRef,omitempty"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"createdAt"`
}

const GrantStatusApproved = "approved"

type VacationBalance struct {
	EmployeeID string    `json:"employeeId"`
	Allotment  float64   `json:"allotment"`
	Remaining  float64   `json:"remaining"`
	UpdatedAt  time.Time `json:"updatedAt"`
}
