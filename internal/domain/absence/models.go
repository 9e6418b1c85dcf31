package absence

import "time"

// Record is the official ledger entry written when HR finalizes coverage for
// a reported absence.
type Record struct {
	ID            string    `json:"id"`
	EmployeeID    string    `json:"employeeId"`
	Date          time.Time `json:"date"`
	Type          string    `json:"type"`
	Justification string    `json:"justification"`
	Reason        string    `json:"reason,omitempty"`
	Attachments   []string  `json:"attachments,omitempty"`
	ShiftRef      string    `json:"shiftRef,omitempty"`
	ApprovedBy    string    `json:"approvedBy,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
}

const (
	JustificationPending   = "pending"
	JustificationJustified = "justified"
	JustificationRejected  = "unjustified"
)
