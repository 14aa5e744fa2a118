package attendance

import "errors"

var (
	ErrNotFound               = errors.New("attendance record not found")
	ErrDuplicateAttendance    = errors.New("attendance already recorded for this day")
	ErrDepartureBeforeArrival = errors.New("departure before arrival")
)
