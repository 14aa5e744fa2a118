package payroll

import "errors"

var (
	ErrNotFound          = errors.New("payroll sheet not found")
	ErrDuplicatePeriod   = errors.New("payroll sheet already exists for this employee and period")
	ErrInvalidPeriod     = errors.New("month must be between 1 and 12")
	ErrSheetNotEditable  = errors.New("payroll sheet is no longer editable")
	ErrInvalidTransition = errors.New("invalid payroll sheet status transition")
	ErrAmountMismatch    = errors.New("cached totals disagree with linked amounts")
	ErrNotIssued         = errors.New("payroll sheet has not been issued")
)
