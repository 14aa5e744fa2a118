package leave

import (
	"errors"
	"testing"
	"time"
)

func day(s string) time.Time {
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestValidateCreate(t *testing.T) {
	valid := CreateInput{Kind: KindPaid, StartDate: day("2024-06-10"), EndDate: day("2024-06-14")}
	if err := ValidateCreate(valid); err != nil {
		t.Fatalf("valid request rejected: %v", err)
	}

	single := CreateInput{Kind: KindSick, StartDate: day("2024-06-10"), EndDate: day("2024-06-10")}
	if err := ValidateCreate(single); err != nil {
		t.Fatalf("single-day request rejected: %v", err)
	}

	backwards := CreateInput{Kind: KindPaid, StartDate: day("2024-06-14"), EndDate: day("2024-06-10")}
	if err := ValidateCreate(backwards); !errors.Is(err, ErrInvalidRange) {
		t.Fatalf("expected ErrInvalidRange, got %v", err)
	}

	unknown := CreateInput{Kind: "sabbatical", StartDate: day("2024-06-10"), EndDate: day("2024-06-14")}
	if err := ValidateCreate(unknown); !errors.Is(err, ErrInvalidKind) {
		t.Fatalf("expected ErrInvalidKind, got %v", err)
	}
}

func TestDecidable(t *testing.T) {
	if !Decidable(StatusRequested) {
		t.Fatal("requested must be decidable")
	}
	if Decidable(StatusApproved) || Decidable(StatusRejected) {
		t.Fatal("approved and rejected are terminal")
	}
}

func TestDays(t *testing.T) {
	req := Request{StartDate: day("2024-06-10"), EndDate: day("2024-06-14")}
	if got := req.Days(); got != 5 {
		t.Fatalf("expected 5 days, got %d", got)
	}

	req = Request{StartDate: day("2024-06-10"), EndDate: day("2024-06-10")}
	if got := req.Days(); got != 1 {
		t.Fatalf("expected 1 day, got %d", got)
	}
}
