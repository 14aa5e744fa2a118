package payrollhandler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"staffdesk/internal/domain/auth"
	"staffdesk/internal/domain/catalog"
	"staffdesk/internal/domain/payroll"
	"staffdesk/internal/transport/http/api"
	"staffdesk/internal/transport/http/middleware"
	"staffdesk/internal/transport/http/shared"
)

type Handler struct {
	Engine     *payroll.Engine
	Catalog    *catalog.Store
	PayslipDir string
}

func NewHandler(engine *payroll.Engine, catalogStore *catalog.Store, payslipDir string) *Handler {
	return &Handler{Engine: engine, Catalog: catalogStore, PayslipDir: payslipDir}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	staff := middleware.RequireRole(auth.Staff()...)
	r.Route("/payroll", func(r chi.Router) {
		r.With(middleware.RequireAuth).Get("/my-sheets", h.handleListOwn)
		r.With(staff).Post("/sheets", h.handleCreate)
		r.With(staff).Get("/sheets", h.handleList)
		r.With(middleware.RequireAuth).Get("/sheets/{sheetID}", h.handleGet)
		r.With(staff).Delete("/sheets/{sheetID}", h.handleDelete)
		r.With(staff).Post("/sheets/{sheetID}/bonuses", h.handleAttachBonus)
		r.With(staff).Delete("/sheets/{sheetID}/bonuses/{typeID}", h.handleDetachBonus)
		r.With(staff).Post("/sheets/{sheetID}/benefits", h.handleAttachBenefit)
		r.With(staff).Delete("/sheets/{sheetID}/benefits/{typeID}", h.handleDetachBenefit)
		r.With(staff).Post("/sheets/{sheetID}/validate", h.handleValidate)
		r.With(staff).Post("/sheets/{sheetID}/issue", h.handleIssue)
		r.With(middleware.RequireAuth).Get("/sheets/{sheetID}/payslip", h.handlePayslip)
	})
}

// failSheet maps lifecycle errors onto the API error codes.
func failSheet(w http.ResponseWriter, err error, requestID string) {
	switch {
	case errors.Is(err, payroll.ErrNotFound):
		api.Fail(w, http.StatusNotFound, "not_found", "payroll sheet not found", requestID)
	case errors.Is(err, payroll.ErrDuplicatePeriod):
		api.Fail(w, http.StatusConflict, "duplicate_period", "a sheet already exists for this employee and period", requestID)
	case errors.Is(err, payroll.ErrInvalidPeriod):
		api.Fail(w, http.StatusBadRequest, "invalid_period", "month must be between 1 and 12", requestID)
	case errors.Is(err, payroll.ErrSheetNotEditable):
		api.Fail(w, http.StatusConflict, "sheet_not_editable", "sheet is no longer editable", requestID)
	case errors.Is(err, payroll.ErrInvalidTransition):
		api.Fail(w, http.StatusConflict, "invalid_transition", "status transition not allowed", requestID)
	case errors.Is(err, payroll.ErrAmountMismatch):
		api.Fail(w, http.StatusConflict, "amount_mismatch", "cached totals do not match the attached lines", requestID)
	case errors.Is(err, payroll.ErrNotIssued):
		api.Fail(w, http.StatusConflict, "sheet_not_issued", "payslip is only available for issued sheets", requestID)
	default:
		api.Fail(w, http.StatusInternalServerError, "payroll_failed", "payroll operation failed", requestID)
	}
}

type createPayload struct {
	EmployeeID          string `json:"employeeId"`
	Month               int    `json:"month"`
	Year                int    `json:"year"`
	GrossSalary         string `json:"grossSalary"`
	SocialContributions string `json:"socialContributions"`
	IncomeTax           string `json:"incomeTax"`
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	var payload createPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", requestID)
		return
	}

	v := shared.NewValidator()
	v.Required("employeeId", payload.EmployeeID, "is required")
	if payload.Year < 2000 || payload.Year > 2200 {
		v.Add("year", "must be a plausible year")
	}
	input := payroll.CreateInput{
		EmployeeID: payload.EmployeeID,
		Month:      payload.Month,
		Year:       payload.Year,
	}
	input.GrossSalary = parseAmount(v, "grossSalary", payload.GrossSalary, true)
	input.SocialContributions = parseAmount(v, "socialContributions", payload.SocialContributions, false)
	input.IncomeTax = parseAmount(v, "incomeTax", payload.IncomeTax, false)
	if v.Reject(w, requestID) {
		return
	}

	sheet, err := h.Engine.CreateSheet(r.Context(), input)
	if err != nil {
		failSheet(w, err, requestID)
		return
	}
	api.Created(w, sheet, requestID)
}

func parseAmount(v *shared.Validator, field, raw string, required bool) decimal.Decimal {
	if raw == "" {
		if required {
			v.Add(field, "is required")
		}
		return decimal.Zero
	}
	amount, err := decimal.NewFromString(raw)
	if err != nil {
		v.Add(field, "must be a decimal amount")
		return decimal.Zero
	}
	if amount.IsNegative() {
		v.Add(field, "must not be negative")
		return decimal.Zero
	}
	return amount
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	filter := payroll.ListFilter{EmployeeID: r.URL.Query().Get("employeeId")}
	if raw := r.URL.Query().Get("year"); raw != "" {
		year, err := strconv.Atoi(raw)
		if err != nil {
			api.Fail(w, http.StatusBadRequest, "validation_error", "year must be a number", requestID)
			return
		}
		filter.Year = year
	}
	pag := shared.ParsePagination(r, 100, 500)
	filter.Limit = pag.Limit
	filter.Offset = pag.Offset

	sheets, err := h.Engine.ListSheets(r.Context(), filter)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "payroll_failed", "failed to list sheets", requestID)
		return
	}
	api.Success(w, sheets, requestID)
}

func (h *Handler) handleListOwn(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	user, _ := middleware.GetUser(r.Context())

	pag := shared.ParsePagination(r, 100, 500)
	sheets, err := h.Engine.ListSheets(r.Context(), payroll.ListFilter{
		EmployeeID: user.UserID,
		Limit:      pag.Limit,
		Offset:     pag.Offset,
	})
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "payroll_failed", "failed to list sheets", requestID)
		return
	}
	api.Success(w, sheets, requestID)
}

// loadVisibleSheet enforces that employees only reach their own
// sheets; staff reach all of them.
func (h *Handler) loadVisibleSheet(w http.ResponseWriter, r *http.Request) (payroll.Sheet, bool) {
	requestID := middleware.GetRequestID(r.Context())
	user, _ := middleware.GetUser(r.Context())

	sheet, err := h.Engine.GetSheet(r.Context(), chi.URLParam(r, "sheetID"))
	if err != nil {
		failSheet(w, err, requestID)
		return payroll.Sheet{}, false
	}
	if !auth.Allowed(user.RoleName, auth.Staff()...) && sheet.EmployeeID != user.UserID {
		api.Fail(w, http.StatusNotFound, "not_found", "payroll sheet not found", requestID)
		return payroll.Sheet{}, false
	}
	return sheet, true
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	sheet, ok := h.loadVisibleSheet(w, r)
	if !ok {
		return
	}
	api.Success(w, sheet, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	if err := h.Engine.DeleteSheet(r.Context(), chi.URLParam(r, "sheetID")); err != nil {
		failSheet(w, err, requestID)
		return
	}
	api.NoContent(w)
}

type attachBonusPayload struct {
	BonusTypeID string `json:"bonusTypeId"`
	Amount      string `json:"amount"`
}

func (h *Handler) handleAttachBonus(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	var payload attachBonusPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", requestID)
		return
	}
	v := shared.NewValidator()
	v.Required("bonusTypeId", payload.BonusTypeID, "is required")
	amount := parseAmount(v, "amount", payload.Amount, true)
	if v.Reject(w, requestID) {
		return
	}

	sheet, err := h.Engine.AttachBonus(r.Context(), chi.URLParam(r, "sheetID"), payload.BonusTypeID, amount)
	if err != nil {
		failSheet(w, err, requestID)
		return
	}
	api.Success(w, sheet, requestID)
}

type attachBenefitPayload struct {
	BenefitTypeID string `json:"benefitTypeId"`
	Amount        string `json:"amount,omitempty"`
}

// handleAttachBenefit falls back to the catalog default amount when
// none is supplied.
func (h *Handler) handleAttachBenefit(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	var payload attachBenefitPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", requestID)
		return
	}
	v := shared.NewValidator()
	v.Required("benefitTypeId", payload.BenefitTypeID, "is required")
	amount := parseAmount(v, "amount", payload.Amount, false)
	if v.Reject(w, requestID) {
		return
	}

	if payload.Amount == "" {
		bt, err := h.Catalog.GetBenefitType(r.Context(), payload.BenefitTypeID)
		if errors.Is(err, pgx.ErrNoRows) {
			api.Fail(w, http.StatusNotFound, "not_found", "benefit type not found", requestID)
			return
		}
		if err != nil {
			api.Fail(w, http.StatusInternalServerError, "payroll_failed", "failed to load benefit type", requestID)
			return
		}
		amount = bt.Amount
	}

	sheet, err := h.Engine.AttachBenefit(r.Context(), chi.URLParam(r, "sheetID"), payload.BenefitTypeID, amount)
	if err != nil {
		failSheet(w, err, requestID)
		return
	}
	api.Success(w, sheet, requestID)
}

func (h *Handler) handleDetachBonus(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	sheet, err := h.Engine.DetachBonus(r.Context(), chi.URLParam(r, "sheetID"), chi.URLParam(r, "typeID"))
	if err != nil {
		failSheet(w, err, requestID)
		return
	}
	api.Success(w, sheet, requestID)
}

func (h *Handler) handleDetachBenefit(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	sheet, err := h.Engine.DetachBenefit(r.Context(), chi.URLParam(r, "sheetID"), chi.URLParam(r, "typeID"))
	if err != nil {
		failSheet(w, err, requestID)
		return
	}
	api.Success(w, sheet, requestID)
}

func (h *Handler) handleValidate(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, payroll.StatusValidated)
}

func (h *Handler) handleIssue(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, payroll.StatusIssued)
}

func (h *Handler) transition(w http.ResponseWriter, r *http.Request, target string) {
	requestID := middleware.GetRequestID(r.Context())
	sheet, err := h.Engine.Transition(r.Context(), chi.URLParam(r, "sheetID"), target)
	if err != nil {
		failSheet(w, err, requestID)
		return
	}
	api.Success(w, sheet, requestID)
}

func (h *Handler) handlePayslip(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	if _, ok := h.loadVisibleSheet(w, r); !ok {
		return
	}

	path, err := h.Engine.RenderPayslip(r.Context(), chi.URLParam(r, "sheetID"), h.PayslipDir)
	if err != nil {
		failSheet(w, err, requestID)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="payslip.pdf"`)
	http.ServeFile(w, r, path)
}
