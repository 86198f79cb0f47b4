package leave

import (
	"errors"
	"time"
)

type Status string

const (
	StatusPending  Status = "Pending"
	StatusApproved Status = "Approved"
	StatusRejected Status = "Rejected"
)

// Request is a leave-of-absence request. Approved and Rejected are
// terminal.
type Request struct {
	ID         string    `json:"id"`
	EmployeeID string    `json:"employeeId"`
	StartDate  string    `json:"startDate"`
	EndDate    string    `json:"endDate"`
	Reason     string    `json:"reason"`
	Status     Status    `json:"status"`
	CreatedAt  time.Time `json:"createdAt"`
}

func (r *Request) Decided() bool {
	return r.Status != StatusPending
}

// Domain errors
var (
	ErrNotFound = errors.New("leave request not found")
	ErrDecided  = errors.New("leave request has already been decided")
)
