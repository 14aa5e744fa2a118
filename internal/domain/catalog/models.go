package catalog

import "github.com/shopspring/decimal"

// BenefitType is a catalog entry for a kind of in-kind compensation
// (health insurance, meal vouchers). Amount is the nominal monthly
// amount, used as a default when the benefit is attached to a sheet.
type BenefitType struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
}

// BonusType has no nominal amount; the amount is decided per payroll
// sheet at attach time.
type BonusType struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}
