package attendance

import "time"

// Record is one employee's presence for one work day. Departure is
// nil until the employee clocks out.
type Record struct {
	ID         string     `json:"id"`
	EmployeeID string     `json:"employeeId"`
	WorkDay    time.Time  `json:"workDay"`
	Arrival    time.Time  `json:"arrival"`
	Departure  *time.Time `json:"departure,omitempty"`
	CreatedAt  time.Time  `json:"createdAt"`
}

type CreateInput struct {
	EmployeeID string
	WorkDay    time.Time
	Arrival    time.Time
	Departure  *time.Time
}

type ListFilter struct {
	EmployeeID string
	From       *time.Time
	To         *time.Time
	Limit      int
	Offset     int
}
