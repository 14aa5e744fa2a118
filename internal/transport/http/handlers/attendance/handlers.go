package attendancehandler

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"staffdesk/internal/domain/attendance"
	"staffdesk/internal/domain/auth"
	"staffdesk/internal/transport/http/api"
	"staffdesk/internal/transport/http/middleware"
	"staffdesk/internal/transport/http/shared"
)

type Handler struct {
	Store *attendance.Store
}

func NewHandler(store *attendance.Store) *Handler {
	return &Handler{Store: store}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	staff := middleware.RequireRole(auth.Staff()...)
	r.Route("/attendance", func(r chi.Router) {
		r.With(staff).Post("/", h.handleCreate)
		r.With(middleware.RequireAuth).Get("/", h.handleList)
		r.With(staff).Put("/{recordID}/departure", h.handleSetDeparture)
		r.With(staff).Delete("/{recordID}", h.handleDelete)
	})
}

func failAttendance(w http.ResponseWriter, err error, requestID string) {
	switch {
	case errors.Is(err, attendance.ErrNotFound):
		api.Fail(w, http.StatusNotFound, "not_found", "attendance record not found", requestID)
	case errors.Is(err, attendance.ErrDuplicateAttendance):
		api.Fail(w, http.StatusConflict, "duplicate_attendance", "attendance already recorded for this day", requestID)
	case errors.Is(err, attendance.ErrDepartureBeforeArrival):
		api.Fail(w, http.StatusBadRequest, "validation_error", "departure must not precede arrival", requestID)
	default:
		api.Fail(w, http.StatusInternalServerError, "attendance_failed", "attendance operation failed", requestID)
	}
}

type createPayload struct {
	EmployeeID string `json:"employeeId"`
	WorkDay    string `json:"workDay"`
	Arrival    string `json:"arrival"`
	Departure  string `json:"departure,omitempty"`
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
	workDay, _ := v.Date("workDay", payload.WorkDay)
	var arrival time.Time
	if parsed, err := time.Parse(time.RFC3339, payload.Arrival); err != nil {
		v.Add("arrival", "must be an RFC3339 timestamp")
	} else {
		arrival = parsed
	}
	var departure *time.Time
	if payload.Departure != "" {
		parsed, err := time.Parse(time.RFC3339, payload.Departure)
		if err != nil {
			v.Add("departure", "must be an RFC3339 timestamp")
		} else {
			departure = &parsed
		}
	}
	if v.Reject(w, requestID) {
		return
	}
	if err := attendance.ValidateTimes(arrival, departure); err != nil {
		failAttendance(w, err, requestID)
		return
	}

	rec, err := h.Store.Create(r.Context(), attendance.CreateInput{
		EmployeeID: payload.EmployeeID,
		WorkDay:    workDay,
		Arrival:    arrival,
		Departure:  departure,
	})
	if err != nil {
		failAttendance(w, err, requestID)
		return
	}
	api.Created(w, rec, requestID)
}

// handleList scopes employees to their own records; staff may filter
// by employee and date range.
func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	user, _ := middleware.GetUser(r.Context())

	filter := attendance.ListFilter{}
	if auth.Allowed(user.RoleName, auth.Staff()...) {
		filter.EmployeeID = r.URL.Query().Get("employeeId")
	} else {
		filter.EmployeeID = user.UserID
	}
	if raw := r.URL.Query().Get("from"); raw != "" {
		if parsed, err := shared.ParseDate(raw); err == nil {
			filter.From = &parsed
		}
	}
	if raw := r.URL.Query().Get("to"); raw != "" {
		if parsed, err := shared.ParseDate(raw); err == nil {
			filter.To = &parsed
		}
	}
	pag := shared.ParsePagination(r, 100, 500)
	filter.Limit = pag.Limit
	filter.Offset = pag.Offset

	records, err := h.Store.List(r.Context(), filter)
	if err != nil {
		failAttendance(w, err, requestID)
		return
	}
	api.Success(w, records, requestID)
}

type departurePayload struct {
	Departure string `json:"departure"`
}

func (h *Handler) handleSetDeparture(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	var payload departurePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", requestID)
		return
	}
	departure, err := time.Parse(time.RFC3339, payload.Departure)
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "validation_error", "departure must be an RFC3339 timestamp", requestID)
		return
	}

	rec, err := h.Store.Get(r.Context(), chi.URLParam(r, "recordID"))
	if err != nil {
		failAttendance(w, err, requestID)
		return
	}
	if err := attendance.ValidateTimes(rec.Arrival, &departure); err != nil {
		failAttendance(w, err, requestID)
		return
	}

	updated, err := h.Store.SetDeparture(r.Context(), rec.ID, &departure)
	if err != nil {
		failAttendance(w, err, requestID)
		return
	}
	api.Success(w, updated, requestID)
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	if err := h.Store.Delete(r.Context(), chi.URLParam(r, "recordID")); err != nil {
		failAttendance(w, err, requestID)
		return
	}
	api.NoContent(w)
}
