package leavehandler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"staffdesk/internal/domain/auth"
	"staffdesk/internal/domain/leave"
	"staffdesk/internal/transport/http/api"
	"staffdesk/internal/transport/http/middleware"
	"staffdesk/internal/transport/http/shared"
)

type Handler struct {
	Store *leave.Store
}

func NewHandler(store *leave.Store) *Handler {
	return &Handler{Store: store}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	staff := middleware.RequireRole(auth.Staff()...)
	r.Route("/leave", func(r chi.Router) {
		r.With(middleware.RequireAuth).Post("/requests", h.handleCreate)
		r.With(middleware.RequireAuth).Get("/requests", h.handleList)
		r.With(middleware.RequireAuth).Get("/requests/{requestID}", h.handleGet)
		r.With(middleware.RequireAuth).Delete("/requests/{requestID}", h.handleWithdraw)
		r.With(staff).Post("/requests/{requestID}/approve", h.handleApprove)
		r.With(staff).Post("/requests/{requestID}/reject", h.handleReject)
	})
}

func failLeave(w http.ResponseWriter, err error, requestID string) {
	switch {
	case errors.Is(err, leave.ErrNotFound):
		api.Fail(w, http.StatusNotFound, "not_found", "leave request not found", requestID)
	case errors.Is(err, leave.ErrAlreadyDecided):
		api.Fail(w, http.StatusConflict, "leave_already_decided", "leave request was already decided", requestID)
	default:
		api.Fail(w, http.StatusInternalServerError, "leave_failed", "leave operation failed", requestID)
	}
}

type createPayload struct {
	Kind      string `json:"kind"`
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
	Reason    string `json:"reason,omitempty"`
}

// handleCreate files a request on behalf of the authenticated
// employee; the employee id is never taken from the payload.
func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	user, _ := middleware.GetUser(r.Context())

	var payload createPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", requestID)
		return
	}

	v := shared.NewValidator()
	v.Enum("kind", payload.Kind, leave.Kinds, "must be one of paid, unpaid, sick, other")
	start, startOK := v.Date("startDate", payload.StartDate)
	end, endOK := v.Date("endDate", payload.EndDate)
	if startOK && endOK {
		v.DateOrder("startDate", start, "endDate", end)
	}
	if v.Reject(w, requestID) {
		return
	}

	input := leave.CreateInput{
		EmployeeID: user.UserID,
		Kind:       payload.Kind,
		StartDate:  start,
		EndDate:    end,
		Reason:     payload.Reason,
	}
	if err := leave.ValidateCreate(input); err != nil {
		api.Fail(w, http.StatusBadRequest, "validation_error", err.Error(), requestID)
		return
	}

	req, err := h.Store.Create(r.Context(), input)
	if err != nil {
		failLeave(w, err, requestID)
		return
	}
	api.Created(w, req, requestID)
}

// handleList returns all requests for staff and only the caller's own
// requests for employees.
func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	user, _ := middleware.GetUser(r.Context())

	filter := leave.ListFilter{Status: r.URL.Query().Get("status")}
	if auth.Allowed(user.RoleName, auth.Staff()...) {
		filter.EmployeeID = r.URL.Query().Get("employeeId")
	} else {
		filter.EmployeeID = user.UserID
	}
	pag := shared.ParsePagination(r, 100, 500)
	filter.Limit = pag.Limit
	filter.Offset = pag.Offset

	requests, err := h.Store.List(r.Context(), filter)
	if err != nil {
		failLeave(w, err, requestID)
		return
	}
	api.Success(w, requests, requestID)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	user, _ := middleware.GetUser(r.Context())

	req, err := h.Store.Get(r.Context(), chi.URLParam(r, "requestID"))
	if err != nil {
		failLeave(w, err, requestID)
		return
	}
	if !auth.Allowed(user.RoleName, auth.Staff()...) && req.EmployeeID != user.UserID {
		api.Fail(w, http.StatusNotFound, "not_found", "leave request not found", requestID)
		return
	}
	api.Success(w, req, requestID)
}

// handleWithdraw lets an employee pull back an undecided request.
func (h *Handler) handleWithdraw(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	user, _ := middleware.GetUser(r.Context())

	req, err := h.Store.Get(r.Context(), chi.URLParam(r, "requestID"))
	if err != nil {
		failLeave(w, err, requestID)
		return
	}
	if !auth.Allowed(user.RoleName, auth.Staff()...) && req.EmployeeID != user.UserID {
		api.Fail(w, http.StatusNotFound, "not_found", "leave request not found", requestID)
		return
	}

	if err := h.Store.Delete(r.Context(), req.ID); err != nil {
		failLeave(w, err, requestID)
		return
	}
	api.NoContent(w)
}

func (h *Handler) handleApprove(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, leave.StatusApproved)
}

func (h *Handler) handleReject(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, leave.StatusRejected)
}

func (h *Handler) decide(w http.ResponseWriter, r *http.Request, status string) {
	requestID := middleware.GetRequestID(r.Context())
	user, _ := middleware.GetUser(r.Context())

	req, err := h.Store.Decide(r.Context(), chi.URLParam(r, "requestID"), status, user.UserID)
	if err != nil {
		failLeave(w, err, requestID)
		return
	}
	api.Success(w, req, requestID)
}
