package payroll

const (
	StatusDraft     = "draft"
	StatusValidated = "validated"
	StatusIssued    = "issued"
)
