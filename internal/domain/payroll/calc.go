package payroll

import "github.com/shopspring/decimal"

// NetSalary applies the payroll identity:
// net = gross + bonuses + benefits - contributions - tax.
func NetSalary(gross, bonuses, benefits, contributions, tax decimal.Decimal) decimal.Decimal {
	return gross.Add(bonuses).Add(benefits).Sub(contributions).Sub(tax)
}

// ValidPeriod reports whether month is a calendar month.
func ValidPeriod(month int) bool {
	return month >= 1 && month <= 12
}

// ValidateTransition enforces the forward-only sheet lifecycle:
// draft -> validated -> issued. Everything else, including no-ops and
// backward moves, is rejected.
func ValidateTransition(current, target string) error {
	switch {
	case current == StatusDraft && target == StatusValidated:
		return nil
	case current == StatusValidated && target == StatusIssued:
		return nil
	default:
		return ErrInvalidTransition
	}
}

// Editable reports whether link mutations and deletion are allowed.
// Only draft sheets are editable; validated and issued sheets are
// frozen for audit.
func Editable(status string) bool {
	return status == StatusDraft
}
