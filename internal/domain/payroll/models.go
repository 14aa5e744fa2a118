package payroll

import (
	"time"

	"github.com/shopspring/decimal"
)

// Sheet is the monthly payroll record for one employee. TotalBonuses
// and TotalBenefits are denormalized caches over the sheet's links and
// are recomputed on every link mutation.
type Sheet struct {
	ID                  string          `json:"id"`
	EmployeeID          string          `json:"employeeId"`
	Month               int             `json:"month"`
	Year                int             `json:"year"`
	Status              string          `json:"status"`
	GrossSalary         decimal.Decimal `json:"grossSalary"`
	TotalBonuses        decimal.Decimal `json:"totalBonuses"`
	TotalBenefits       decimal.Decimal `json:"totalBenefits"`
	SocialContributions decimal.Decimal `json:"socialContributions"`
	IncomeTax           decimal.Decimal `json:"incomeTax"`
	NetSalary           decimal.Decimal `json:"netSalary"`
	CreatedAt           time.Time       `json:"createdAt"`
	Bonuses             []BonusLine     `json:"bonuses,omitempty"`
	Benefits            []BenefitLine   `json:"benefits,omitempty"`
}

// BonusLine ties one bonus type to a sheet with the amount granted for
// that month.
type BonusLine struct {
	BonusTypeID string          `json:"bonusTypeId"`
	Name        string          `json:"name"`
	Amount      decimal.Decimal `json:"amount"`
}

// BenefitLine ties one benefit type to a sheet. The amount overrides
// the catalog's nominal amount for that month.
type BenefitLine struct {
	BenefitTypeID string          `json:"benefitTypeId"`
	Name          string          `json:"name"`
	Amount        decimal.Decimal `json:"amount"`
}

type CreateInput struct {
	EmployeeID          string
	Month               int
	Year                int
	GrossSalary         decimal.Decimal
	SocialContributions decimal.Decimal
	IncomeTax           decimal.Decimal
}

type ListFilter struct {
	EmployeeID string
	Year       int
	Limit      int
	Offset     int
}
