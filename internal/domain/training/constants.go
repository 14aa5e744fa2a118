package training

const (
	StatusEnrolled  = "enrolled"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
)

var Statuses = []string{StatusEnrolled, StatusCompleted, StatusCancelled}
