package training

import "time"

// Training is a course offered to employees.
type Training struct {
	ID            string     `json:"id"`
	Title         string     `json:"title"`
	Description   string     `json:"description,omitempty"`
	Trainer       string     `json:"trainer,omitempty"`
	StartDate     *time.Time `json:"startDate,omitempty"`
	EndDate       *time.Time `json:"endDate,omitempty"`
	DurationHours int        `json:"durationHours"`
	Capacity      int        `json:"capacity"`
	CreatedAt     time.Time  `json:"createdAt"`
}

// Enrollment links one employee to one training. The pair is unique.
// Result holds the outcome HR records on completion or cancellation.
type Enrollment struct {
	ID         string    `json:"id"`
	TrainingID string    `json:"trainingId"`
	EmployeeID string    `json:"employeeId"`
	EnrolledOn time.Time `json:"enrolledOn"`
	Status     string    `json:"status"`
	Result     string    `json:"result,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
}
