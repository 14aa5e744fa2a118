package adminhandler

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

// Handler owns user and role administration. Every route is
// admin-only.
type Handler struct {
	Store   *directory.Store
	Service *directory.Service
}

func NewHandler(store *directory.Store, service *directory.Service) *Handler {
	return &Handler{Store: store, Service: service}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/admin", func(r chi.Router) {
		r.Use(middleware.RequireRole(auth.RoleAdmin))
		r.Get("/users", h.handleListUsers)
		r.Get("/users/{userID}", h.handleGetUser)
		r.Post("/users", h.handleCreateUser)
		r.Put("/users/{userID}", h.handleUpdateUser)
		r.Delete("/users/{userID}", h.handleDeleteUser)
		r.Get("/roles", h.handleListRoles)
		r.Post("/roles", h.handleCreateRole)
		r.Put("/roles/{roleID}", h.handleUpdateRole)
		r.Delete("/roles/{roleID}", h.handleDeleteRole)
	})
}

func (h *Handler) handleListUsers(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	users, err := h.Store.ListUsers(r.Context())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "users_list_failed", "failed to list users", requestID)
		return
	}
	api.Success(w, users, requestID)
}

func (h *Handler) handleGetUser(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	user, err := h.Store.GetUser(r.Context(), chi.URLParam(r, "userID"))
	if errors.Is(err, pgx.ErrNoRows) {
		api.Fail(w, http.StatusNotFound, "not_found", "user not found", requestID)
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "user_get_failed", "failed to load user", requestID)
		return
	}
	api.Success(w, user, requestID)
}

type createUserPayload struct {
	Username string           `json:"username"`
	Email    string           `json:"email"`
	Password string           `json:"password"`
	RoleID   string           `json:"roleId"`
	Employee *employeePayload `json:"employee,omitempty"`
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

func (p *employeePayload) toEmployee(v *shared.Validator) directory.Employee {
	emp := directory.Employee{
		EmployeeNumber: p.EmployeeNumber,
		FirstName:      p.FirstName,
		LastName:       p.LastName,
		Phone:          p.Phone,
		Department:     p.Department,
		Position:       p.Position,
	}
	v.Required("employee.employeeNumber", p.EmployeeNumber, "is required")
	if p.BaseSalary != "" {
		salary, err := decimal.NewFromString(p.BaseSalary)
		if err != nil {
			v.Add("employee.baseSalary", "must be a decimal amount")
		} else {
			emp.BaseSalary = salary
		}
	}
	if p.BirthDate != "" {
		if d, ok := v.Date("employee.birthDate", p.BirthDate); ok {
			emp.BirthDate = &d
		}
	}
	if p.HireDate != "" {
		if d, ok := v.Date("employee.hireDate", p.HireDate); ok {
			emp.HireDate = &d
		}
	}
	return emp
}

func (h *Handler) handleCreateUser(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	var payload createUserPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", requestID)
		return
	}

	v := shared.NewValidator()
	v.Required("username", payload.Username, "is required")
	v.Required("password", payload.Password, "is required")
	v.Required("roleId", payload.RoleID, "is required")

	input := directory.NewUserInput{
		Username: payload.Username,
		Email:    payload.Email,
		Password: payload.Password,
		RoleID:   payload.RoleID,
	}
	if payload.Employee != nil {
		emp := payload.Employee.toEmployee(v)
		input.Employee = &emp
	}
	if v.Reject(w, requestID) {
		return
	}

	userID, err := h.Service.ProvisionUser(r.Context(), input)
	switch {
	case errors.Is(err, directory.ErrDuplicateUsername):
		api.Fail(w, http.StatusConflict, "duplicate_username", "username already taken", requestID)
		return
	case errors.Is(err, directory.ErrDuplicateEmployeeNumber):
		api.Fail(w, http.StatusConflict, "duplicate_employee_number", "employee number already taken", requestID)
		return
	case err != nil:
		api.Fail(w, http.StatusInternalServerError, "user_create_failed", "failed to create user", requestID)
		return
	}
	api.Created(w, map[string]string{"id": userID}, requestID)
}

type updateUserPayload struct {
	Email  string `json:"email"`
	RoleID string `json:"roleId"`
}

func (h *Handler) handleUpdateUser(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	var payload updateUserPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", requestID)
		return
	}
	v := shared.NewValidator()
	v.Required("roleId", payload.RoleID, "is required")
	if v.Reject(w, requestID) {
		return
	}

	err := h.Store.UpdateUser(r.Context(), chi.URLParam(r, "userID"), payload.Email, payload.RoleID)
	if errors.Is(err, directory.ErrNotFound) {
		api.Fail(w, http.StatusNotFound, "not_found", "user not found", requestID)
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "user_update_failed", "failed to update user", requestID)
		return
	}
	api.Success(w, map[string]string{"id": chi.URLParam(r, "userID")}, requestID)
}

func (h *Handler) handleDeleteUser(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	err := h.Store.DeleteUser(r.Context(), chi.URLParam(r, "userID"))
	if errors.Is(err, directory.ErrNotFound) {
		api.Fail(w, http.StatusNotFound, "not_found", "user not found", requestID)
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "user_delete_failed", "failed to delete user", requestID)
		return
	}
	api.NoContent(w)
}

func (h *Handler) handleListRoles(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	roles, err := h.Store.ListRoles(r.Context())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "roles_list_failed", "failed to list roles", requestID)
		return
	}
	api.Success(w, roles, requestID)
}

type rolePayload struct {
	Name string `json:"name"`
}

func (h *Handler) handleCreateRole(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	var payload rolePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", requestID)
		return
	}
	v := shared.NewValidator()
	v.Required("name", payload.Name, "is required")
	if v.Reject(w, requestID) {
		return
	}

	id, err := h.Store.CreateRole(r.Context(), payload.Name)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "role_create_failed", "failed to create role", requestID)
		return
	}
	api.Created(w, map[string]string{"id": id}, requestID)
}

func (h *Handler) handleUpdateRole(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	var payload rolePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", requestID)
		return
	}

	err := h.Store.UpdateRole(r.Context(), chi.URLParam(r, "roleID"), payload.Name)
	if errors.Is(err, directory.ErrNotFound) {
		api.Fail(w, http.StatusNotFound, "not_found", "role not found", requestID)
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "role_update_failed", "failed to update role", requestID)
		return
	}
	api.Success(w, map[string]string{"id": chi.URLParam(r, "roleID")}, requestID)
}

func (h *Handler) handleDeleteRole(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	err := h.Store.DeleteRole(r.Context(), chi.URLParam(r, "roleID"))
	switch {
	case errors.Is(err, directory.ErrNotFound):
		api.Fail(w, http.StatusNotFound, "not_found", "role not found", requestID)
	case errors.Is(err, directory.ErrRoleInUse):
		api.Fail(w, http.StatusConflict, "role_in_use", "role is assigned to users", requestID)
	case err != nil:
		api.Fail(w, http.StatusInternalServerError, "role_delete_failed", "failed to delete role", requestID)
	default:
		api.NoContent(w)
	}
}
