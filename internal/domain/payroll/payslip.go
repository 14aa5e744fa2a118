package payroll

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jackc/pgx/v5"
	"github.com/jung-kurt/gofpdf"
)

// RenderPayslip writes the PDF payslip for an issued sheet into dir
// and returns the file path. Draft and validated sheets are rejected;
// only issued sheets are payable documents.
func (e *Engine) RenderPayslip(ctx context.Context, sheetID, dir string) (string, error) {
	sheet, err := e.GetSheet(ctx, sheetID)
	if err != nil {
		return "", err
	}
	if sheet.Status != StatusIssued {
		return "", ErrNotIssued
	}

	var firstName, lastName, employeeNumber string
	err = e.pool.QueryRow(ctx, `
    SELECT first_name, last_name, employee_number
    FROM employees
    WHERE user_id = $1
  `, sheet.EmployeeID).Scan(&firstName, &lastName, &employeeNumber)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	filePath := filepath.Join(dir, sheet.ID+".pdf")

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(40, 10, "Payslip")
	pdf.Ln(12)
	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Employee: %s %s (%s)", firstName, lastName, employeeNumber))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Period: %02d/%d", sheet.Month, sheet.Year))
	pdf.Ln(10)
	pdf.Cell(0, 8, fmt.Sprintf("Gross salary: %s", sheet.GrossSalary.StringFixed(2)))
	pdf.Ln(7)

	for _, line := range sheet.Bonuses {
		pdf.Cell(0, 8, fmt.Sprintf("Bonus - %s: %s", line.Name, line.Amount.StringFixed(2)))
		pdf.Ln(7)
	}
	for _, line := range sheet.Benefits {
		pdf.Cell(0, 8, fmt.Sprintf("Benefit - %s: %s", line.Name, line.Amount.StringFixed(2)))
		pdf.Ln(7)
	}

	pdf.Cell(0, 8, fmt.Sprintf("Social contributions: -%s", sheet.SocialContributions.StringFixed(2)))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Income tax: -%s", sheet.IncomeTax.StringFixed(2)))
	pdf.Ln(10)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Net salary: %s", sheet.NetSalary.StringFixed(2)))

	if err := pdf.OutputFileAndClose(filePath); err != nil {
		return "", err
	}
	return filePath, nil
}
