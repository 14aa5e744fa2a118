package attendance

import (
	"errors"
	"testing"
	"time"
)

func TestValidateTimes(t *testing.T) {
	arrival := time.Date(2024, 6, 10, 9, 0, 0, 0, time.UTC)

	if err := ValidateTimes(arrival, nil); err != nil {
		t.Fatalf("open record rejected: %v", err)
	}

	departure := arrival.Add(8 * time.Hour)
	if err := ValidateTimes(arrival, &departure); err != nil {
		t.Fatalf("valid departure rejected: %v", err)
	}

	same := arrival
	if err := ValidateTimes(arrival, &same); err != nil {
		t.Fatalf("equal timestamps rejected: %v", err)
	}

	early := arrival.Add(-time.Minute)
	if err := ValidateTimes(arrival, &early); !errors.Is(err, ErrDepartureBeforeArrival) {
		t.Fatalf("expected ErrDepartureBeforeArrival, got %v", err)
	}
}
