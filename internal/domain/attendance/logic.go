package attendance

import "time"

// ValidateTimes rejects a departure earlier than the arrival. Equal
// timestamps are allowed; some badge systems emit both in one swipe.
func ValidateTimes(arrival time.Time, departure *time.Time) error {
	if departure != nil && departure.Before(arrival) {
		return ErrDepartureBeforeArrival
	}
	return nil
}
