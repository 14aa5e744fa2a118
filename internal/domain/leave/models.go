package leave

import "time"

// Request is a leave request filed by an employee. It stays in
// requested until a staff member approves or rejects it; both outcomes
// are terminal.
type Request struct {
	ID         string     `json:"id"`
	EmployeeID string     `json:"employeeId"`
	Kind       string     `json:"kind"`
	StartDate  time.Time  `json:"startDate"`
	EndDate    time.Time  `json:"endDate"`
	Reason     string     `json:"reason,omitempty"`
	Status     string     `json:"status"`
	DecidedBy  *string    `json:"decidedBy,omitempty"`
	DecidedAt  *time.Time `json:"decidedAt,omitempty"`
	CreatedAt  time.Time  `json:"createdAt"`
}

type CreateInput struct {
	EmployeeID string
	Kind       string
	StartDate  time.Time
	EndDate    time.Time
	Reason     string
}

type ListFilter struct {
	EmployeeID string
	Status     string
	Limit      int
	Offset     int
}
