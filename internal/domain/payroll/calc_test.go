package payroll

import (
	"testing"

	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestNetSalary(t *testing.T) {
	net := NetSalary(dec("3000"), decimal.Zero, decimal.Zero, dec("300"), dec("200"))
	if !net.Equal(dec("2500")) {
		t.Fatalf("expected net 2500, got %s", net)
	}

	net = NetSalary(dec("3000"), dec("150"), decimal.Zero, dec("300"), dec("200"))
	if !net.Equal(dec("2650")) {
		t.Fatalf("expected net 2650, got %s", net)
	}

	net = NetSalary(dec("3000"), dec("150"), dec("80.50"), dec("300"), dec("200"))
	if !net.Equal(dec("2730.50")) {
		t.Fatalf("expected net 2730.50, got %s", net)
	}
}

func TestValidPeriod(t *testing.T) {
	for month := 1; month <= 12; month++ {
		if !ValidPeriod(month) {
			t.Fatalf("month %d should be valid", month)
		}
	}
	for _, month := range []int{0, 13, -1, 100} {
		if ValidPeriod(month) {
			t.Fatalf("month %d should be invalid", month)
		}
	}
}

func TestValidateTransition(t *testing.T) {
	if err := ValidateTransition(StatusDraft, StatusValidated); err != nil {
		t.Fatalf("draft -> validated should be allowed: %v", err)
	}
	if err := ValidateTransition(StatusValidated, StatusIssued); err != nil {
		t.Fatalf("validated -> issued should be allowed: %v", err)
	}

	rejected := [][2]string{
		{StatusDraft, StatusIssued},      // skips validated
		{StatusDraft, StatusDraft},       // no-op
		{StatusValidated, StatusDraft},   // backward
		{StatusIssued, StatusValidated},  // backward
		{StatusIssued, StatusIssued},     // terminal no-op
		{StatusValidated, StatusValidated},
	}
	for _, pair := range rejected {
		if err := ValidateTransition(pair[0], pair[1]); err == nil {
			t.Fatalf("%s -> %s should be rejected", pair[0], pair[1])
		}
	}
}

func TestEditable(t *testing.T) {
	if !Editable(StatusDraft) {
		t.Fatal("draft sheets must be editable")
	}
	if Editable(StatusValidated) || Editable(StatusIssued) {
		t.Fatal("validated and issued sheets must be frozen")
	}
}
