package payroll

import (
	"context"
	"strconv"

	"github.com/shopspring/decimal"

	"staffdesk/internal/platform/querier"
)

type Store struct {
	DB querier.Querier
}

func NewStore(db querier.Querier) *Store {
	return &Store{DB: db}
}

const sheetColumns = `
    id, employee_id, month, year, status,
    gross_salary, total_bonuses, total_benefits,
    social_contributions, income_tax, net_salary, created_at`

func (s *Store) scanSheet(row interface{ Scan(...any) error }) (Sheet, error) {
	var sheet Sheet
	err := row.Scan(&sheet.ID, &sheet.EmployeeID, &sheet.Month, &sheet.Year, &sheet.Status,
		&sheet.GrossSalary, &sheet.TotalBonuses, &sheet.TotalBenefits,
		&sheet.SocialContributions, &sheet.IncomeTax, &sheet.NetSalary, &sheet.CreatedAt)
	return sheet, err
}

func (s *Store) InsertSheet(ctx context.Context, in CreateInput, net decimal.Decimal) (Sheet, error) {
	row := s.DB.QueryRow(ctx, `
    INSERT INTO payroll_sheets (employee_id, month, year, gross_salary, social_contributions, income_tax, net_salary)
    VALUES ($1,$2,$3,$4,$5,$6,$7)
    RETURNING`+sheetColumns+`
  `, in.EmployeeID, in.Month, in.Year, in.GrossSalary, in.SocialContributions, in.IncomeTax, net)
	sheet, err := s.scanSheet(row)
	if querier.IsUniqueViolation(err, "payroll_sheets_employee_id_month_year_key") {
		return Sheet{}, ErrDuplicatePeriod
	}
	return sheet, err
}

func (s *Store) GetSheet(ctx context.Context, sheetID string) (Sheet, error) {
	row := s.DB.QueryRow(ctx, `
    SELECT`+sheetColumns+`
    FROM payroll_sheets
    WHERE id = $1
  `, sheetID)
	return s.scanSheet(row)
}

// GetSheetForUpdate locks the sheet row for the duration of the
// enclosing transaction so that the status check and the link mutation
// form one atomic unit.
func (s *Store) GetSheetForUpdate(ctx context.Context, sheetID string) (Sheet, error) {
	row := s.DB.QueryRow(ctx, `
    SELECT`+sheetColumns+`
    FROM payroll_sheets
    WHERE id = $1
    FOR UPDATE
  `, sheetID)
	return s.scanSheet(row)
}

func (s *Store) ListSheets(ctx context.Context, filter ListFilter) ([]Sheet, error) {
	query := `
    SELECT` + sheetColumns + `
    FROM payroll_sheets
    WHERE 1=1`
	var args []any
	if filter.EmployeeID != "" {
		args = append(args, filter.EmployeeID)
		query += ` AND employee_id = $1`
	}
	if filter.Year != 0 {
		args = append(args, filter.Year)
		query += ` AND year = $` + strconv.Itoa(len(args))
	}
	query += ` ORDER BY year DESC, month DESC`
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += ` LIMIT $` + strconv.Itoa(len(args))
	}
	if filter.Offset > 0 {
		args = append(args, filter.Offset)
		query += ` OFFSET $` + strconv.Itoa(len(args))
	}

	rows, err := s.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sheets []Sheet
	for rows.Next() {
		sheet, err := s.scanSheet(rows)
		if err != nil {
			return nil, err
		}
		sheets = append(sheets, sheet)
	}
	return sheets, rows.Err()
}

func (s *Store) UpsertBonusLink(ctx context.Context, sheetID, bonusTypeID string, amount decimal.Decimal) error {
	_, err := s.DB.Exec(ctx, `
    INSERT INTO sheet_bonuses (sheet_id, bonus_type_id, amount)
    VALUES ($1,$2,$3)
    ON CONFLICT (sheet_id, bonus_type_id)
    DO UPDATE SET amount = EXCLUDED.amount
  `, sheetID, bonusTypeID, amount)
	return err
}

func (s *Store) UpsertBenefitLink(ctx context.Context, sheetID, benefitTypeID string, amount decimal.Decimal) error {
	_, err := s.DB.Exec(ctx, `
    INSERT INTO sheet_benefits (sheet_id, benefit_type_id, amount)
    VALUES ($1,$2,$3)
    ON CONFLICT (sheet_id, benefit_type_id)
    DO UPDATE SET amount = EXCLUDED.amount
  `, sheetID, benefitTypeID, amount)
	return err
}

func (s *Store) DeleteBonusLink(ctx context.Context, sheetID, bonusTypeID string) (bool, error) {
	tag, err := s.DB.Exec(ctx, "DELETE FROM sheet_bonuses WHERE sheet_id = $1 AND bonus_type_id = $2", sheetID, bonusTypeID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (s *Store) DeleteBenefitLink(ctx context.Context, sheetID, benefitTypeID string) (bool, error) {
	tag, err := s.DB.Exec(ctx, "DELETE FROM sheet_benefits WHERE sheet_id = $1 AND benefit_type_id = $2", sheetID, benefitTypeID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (s *Store) SumBonuses(ctx context.Context, sheetID string) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := s.DB.QueryRow(ctx, "SELECT COALESCE(SUM(amount), 0) FROM sheet_bonuses WHERE sheet_id = $1", sheetID).Scan(&total)
	return total, err
}

func (s *Store) SumBenefits(ctx context.Context, sheetID string) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := s.DB.QueryRow(ctx, "SELECT COALESCE(SUM(amount), 0) FROM sheet_benefits WHERE sheet_id = $1", sheetID).Scan(&total)
	return total, err
}

func (s *Store) UpdateTotals(ctx context.Context, sheetID string, bonuses, benefits, net decimal.Decimal) error {
	_, err := s.DB.Exec(ctx, `
    UPDATE payroll_sheets
    SET total_bonuses = $1, total_benefits = $2, net_salary = $3
    WHERE id = $4
  `, bonuses, benefits, net, sheetID)
	return err
}

func (s *Store) UpdateStatus(ctx context.Context, sheetID, status string, net decimal.Decimal) error {
	_, err := s.DB.Exec(ctx, `
    UPDATE payroll_sheets SET status = $1, net_salary = $2 WHERE id = $3
  `, status, net, sheetID)
	return err
}

func (s *Store) DeleteSheet(ctx context.Context, sheetID string) error {
	_, err := s.DB.Exec(ctx, "DELETE FROM payroll_sheets WHERE id = $1", sheetID)
	return err
}

func (s *Store) ListBonusLines(ctx context.Context, sheetID string) ([]BonusLine, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT sb.bonus_type_id, bt.name, sb.amount
    FROM sheet_bonuses sb
    JOIN bonus_types bt ON sb.bonus_type_id = bt.id
    WHERE sb.sheet_id = $1
    ORDER BY bt.name
  `, sheetID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var lines []BonusLine
	for rows.Next() {
		var line BonusLine
		if err := rows.Scan(&line.BonusTypeID, &line.Name, &line.Amount); err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}
	return lines, rows.Err()
}

func (s *Store) ListBenefitLines(ctx context.Context, sheetID string) ([]BenefitLine, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT sb.benefit_type_id, bt.name, sb.amount
    FROM sheet_benefits sb
    JOIN benefit_types bt ON sb.benefit_type_id = bt.id
    WHERE sb.sheet_id = $1
    ORDER BY bt.name
  `, sheetID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var lines []BenefitLine
	for rows.Next() {
		var line BenefitLine
		if err := rows.Scan(&line.BenefitTypeID, &line.Name, &line.Amount); err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}
	return lines, rows.Err()
}
