package employeehandler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"staffdesk/internal/domain/auth"
	"staffdesk/internal/domain/directory"
	"staffdesk/internal/transport/http/api"
	"staffdesk/internal/transport/http/middleware"
	"staffdesk/internal/transport/http/shared"
)

type Handler struct {
	Store *directory.Store
}

func NewHandler(store *directory.Store) *Handler {
	return &Handler{Store: store}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/employees", func(r chi.Router) {
		r.With(middleware.RequireAuth).Get("/me", h.handleGetSelf)
		r.With(middleware.RequireRole(auth.Staff()...)).Get("/", h.handleList)
		r.With(middleware.RequireRole(auth.Staff()...)).Get("/{employeeID}", h.handleGet)
		r.With(middleware.RequireRole(auth.Staff()...)).Put("/{employeeID}", h.handleUpdate)
		r.With(middleware.RequireRole(auth.RoleAdmin)).Delete("/{employeeID}", h.handleDelete)
	})
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	pag := shared.ParsePagination(r, 100, 500)
	employees, err := h.Store.ListEmployees(r.Context(), pag.Limit, pag.Offset)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "employees_list_failed", "failed to list employees", requestID)
		return
	}
	api.Success(w, employees, requestID)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	h.writeEmployee(w, r, chi.URLParam(r, "employeeID"))
}

// handleGetSelf serves the authenticated employee's own record, any
// role.
func (h *Handler) handleGetSelf(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())
	h.writeEmployee(w, r, user.UserID)
}

func (h *Handler) writeEmployee(w http.ResponseWriter, r *http.Request, employeeID string) {
	requestID := middleware.GetRequestID(r.Context())
	emp, err := h.Store.GetEmployee(r.Context(), employeeID)
	if errors.Is(err, pgx.ErrNoRows) {
		api.Fail(w, http.StatusNotFound, "not_found", "employee not found", requestID)
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "employee_get_failed", "failed to load employee", requestID)
		return
	}
	api.Success(w, emp, requestID)
}

type employeePayload struct {
	EmployeeNumber string `json:"employeeNumber"`
	FirstName      string `json:"firstName"`
	LastName       string `json:"lastName"`
	BirthDate      string `json:"birthDate,omitempty"`
	Phone          string `json:"phone,omitempty"`
	Department     string `json:"department,omitempty"`
	Position       string `json:"position,omitempty"`
	BaseSalary     string `json:"baseSalary,omitempty"`
	HireDate       string `json:"hireDate,omitempty"`
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	var payload employeePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", requestID)
		return
	}

	v := shared.NewValidator()
	v.Required("employeeNumber", payload.EmployeeNumber, "is required")
	emp := directory.Employee{
		UserID:         chi.URLParam(r, "employeeID"),
		EmployeeNumber: payload.EmployeeNumber,
		FirstName:      payload.FirstName,
		LastName:       payload.LastName,
		Phone:          payload.Phone,
		Department:     payload.Department,
		Position:       payload.Position,
	}
	if payload.BaseSalary != "" {
		salary, err := decimal.NewFromString(payload.BaseSalary)
		if err != nil {
			v.Add("baseSalary", "must be a decimal amount")
		} else {
			emp.BaseSalary = salary
		}
	}
	if payload.BirthDate != "" {
		if d, ok := v.Date("birthDate", payload.BirthDate); ok {
			emp.BirthDate = &d
		}
	}
	if payload.HireDate != "" {
		if d, ok := v.Date("hireDate", payload.HireDate); ok {
			emp.HireDate = &d
		}
	}
	if v.Reject(w, requestID) {
		return
	}

	err := h.Store.UpdateEmployee(r.Context(), emp)
	switch {
	case errors.Is(err, directory.ErrNotFound):
		api.Fail(w, http.StatusNotFound, "not_found", "employee not found", requestID)
	case errors.Is(err, directory.ErrDuplicateEmployeeNumber):
		api.Fail(w, http.StatusConflict, "duplicate_employee_number", "employee number already taken", requestID)
	case err != nil:
		api.Fail(w, http.StatusInternalServerError, "employee_update_failed", "failed to update employee", requestID)
	default:
		api.Success(w, emp, requestID)
	}
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	err := h.Store.DeleteEmployee(r.Context(), chi.URLParam(r, "employeeID"))
	if errors.Is(err, directory.ErrNotFound) {
		api.Fail(w, http.StatusNotFound, "not_found", "employee not found", requestID)
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "employee_delete_failed", "failed to delete employee", requestID)
		return
	}
	api.NoContent(w)
}
