package traininghandler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"staffdesk/internal/domain/auth"
	"staffdesk/internal/domain/training"
	"staffdesk/internal/transport/http/api"
	"staffdesk/internal/transport/http/middleware"
	"staffdesk/internal/transport/http/shared"
)

type Handler struct {
	Store *training.Store
}

func NewHandler(store *training.Store) *Handler {
	return &Handler{Store: store}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	staff := middleware.RequireRole(auth.Staff()...)
	r.Route("/trainings", func(r chi.Router) {
		r.With(middleware.RequireAuth).Get("/", h.handleList)
		r.With(middleware.RequireAuth).Get("/{trainingID}", h.handleGet)
		r.With(staff).Post("/", h.handleCreate)
		r.With(staff).Put("/{trainingID}", h.handleUpdate)
		r.With(staff).Delete("/{trainingID}", h.handleDelete)
		r.With(middleware.RequireAuth).Post("/{trainingID}/enroll", h.handleEnroll)
		r.With(middleware.RequireAuth).Delete("/{trainingID}/enroll", h.handleWithdraw)
		r.With(staff).Get("/{trainingID}/enrollments", h.handleListEnrollments)
		r.With(staff).Put("/enrollments/{enrollmentID}", h.handleSetEnrollmentStatus)
	})
	r.With(middleware.RequireAuth).Get("/my-trainings", h.handleListOwn)
}

func failTraining(w http.ResponseWriter, err error, requestID string) {
	switch {
	case errors.Is(err, training.ErrNotFound):
		api.Fail(w, http.StatusNotFound, "not_found", "training not found", requestID)
	case errors.Is(err, training.ErrAlreadyEnrolled):
		api.Fail(w, http.StatusConflict, "already_enrolled", "employee is already enrolled", requestID)
	case errors.Is(err, training.ErrInvalidStatus):
		api.Fail(w, http.StatusBadRequest, "validation_error", "unknown enrollment status", requestID)
	default:
		api.Fail(w, http.StatusInternalServerError, "training_failed", "training operation failed", requestID)
	}
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	pag := shared.ParsePagination(r, 100, 500)
	trainings, err := h.Store.List(r.Context(), pag.Limit, pag.Offset)
	if err != nil {
		failTraining(w, err, requestID)
		return
	}
	api.Success(w, trainings, requestID)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	tr, err := h.Store.Get(r.Context(), chi.URLParam(r, "trainingID"))
	if err != nil {
		failTraining(w, err, requestID)
		return
	}
	api.Success(w, tr, requestID)
}

type trainingPayload struct {
	Title         string `json:"title"`
	Description   string `json:"description,omitempty"`
	Trainer       string `json:"trainer,omitempty"`
	StartDate     string `json:"startDate,omitempty"`
	EndDate       string `json:"endDate,omitempty"`
	DurationHours string `json:"durationHours,omitempty"`
	Capacity      string `json:"capacity,omitempty"`
}

func (h *Handler) decodeTraining(w http.ResponseWriter, r *http.Request, requestID string) (training.Training, bool) {
	var payload trainingPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", requestID)
		return training.Training{}, false
	}

	v := shared.NewValidator()
	v.Required("title", payload.Title, "is required")
	tr := training.Training{
		Title:       payload.Title,
		Description: payload.Description,
		Trainer:     payload.Trainer,
	}
	if payload.StartDate != "" {
		if d, ok := v.Date("startDate", payload.StartDate); ok {
			tr.StartDate = &d
		}
	}
	if payload.EndDate != "" {
		if d, ok := v.Date("endDate", payload.EndDate); ok {
			tr.EndDate = &d
		}
	}
	if tr.StartDate != nil && tr.EndDate != nil {
		v.DateOrder("startDate", *tr.StartDate, "endDate", *tr.EndDate)
	}
	if payload.DurationHours != "" {
		hours, err := strconv.Atoi(payload.DurationHours)
		if err != nil || hours < 0 {
			v.Add("durationHours", "must be a non-negative number")
		} else {
			tr.DurationHours = hours
		}
	}
	if payload.Capacity != "" {
		capacity, err := strconv.Atoi(payload.Capacity)
		if err != nil || capacity < 0 {
			v.Add("capacity", "must be a non-negative number")
		} else {
			tr.Capacity = capacity
		}
	}
	if v.Reject(w, requestID) {
		return training.Training{}, false
	}
	return tr, true
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	tr, ok := h.decodeTraining(w, r, requestID)
	if !ok {
		return
	}
	created, err := h.Store.Create(r.Context(), tr)
	if err != nil {
		failTraining(w, err, requestID)
		return
	}
	api.Created(w, created, requestID)
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	tr, ok := h.decodeTraining(w, r, requestID)
	if !ok {
		return
	}
	tr.ID = chi.URLParam(r, "trainingID")
	updated, err := h.Store.Update(r.Context(), tr)
	if err != nil {
		failTraining(w, err, requestID)
		return
	}
	api.Success(w, updated, requestID)
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	if err := h.Store.Delete(r.Context(), chi.URLParam(r, "trainingID")); err != nil {
		failTraining(w, err, requestID)
		return
	}
	api.NoContent(w)
}

// handleEnroll signs the authenticated employee up for a training.
func (h *Handler) handleEnroll(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	user, _ := middleware.GetUser(r.Context())

	enrollment, err := h.Store.Enroll(r.Context(), chi.URLParam(r, "trainingID"), user.UserID)
	if err != nil {
		failTraining(w, err, requestID)
		return
	}
	api.Created(w, enrollment, requestID)
}

func (h *Handler) handleWithdraw(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	user, _ := middleware.GetUser(r.Context())

	if err := h.Store.Withdraw(r.Context(), chi.URLParam(r, "trainingID"), user.UserID); err != nil {
		failTraining(w, err, requestID)
		return
	}
	api.NoContent(w)
}

func (h *Handler) handleListEnrollments(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	enrollments, err := h.Store.ListEnrollments(r.Context(), chi.URLParam(r, "trainingID"))
	if err != nil {
		failTraining(w, err, requestID)
		return
	}
	api.Success(w, enrollments, requestID)
}

func (h *Handler) handleListOwn(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	user, _ := middleware.GetUser(r.Context())

	enrollments, err := h.Store.ListEmployeeEnrollments(r.Context(), user.UserID)
	if err != nil {
		failTraining(w, err, requestID)
		return
	}
	api.Success(w, enrollments, requestID)
}

type enrollmentStatusPayload struct {
	Status string `json:"status"`
	Result string `json:"result,omitempty"`
}

func (h *Handler) handleSetEnrollmentStatus(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	var payload enrollmentStatusPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", requestID)
		return
	}

	enrollment, err := h.Store.SetEnrollmentStatus(r.Context(), chi.URLParam(r, "enrollmentID"), payload.Status, payload.Result)
	if err != nil {
		failTraining(w, err, requestID)
		return
	}
	api.Success(w, enrollment, requestID)
}
