package announcementhandler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"staffdesk/internal/domain/announcement"
	"staffdesk/internal/domain/auth"
	"staffdesk/internal/transport/http/api"
	"staffdesk/internal/transport/http/middleware"
	"staffdesk/internal/transport/http/shared"
)

type Handler struct {
	Store *announcement.Store
}

func NewHandler(store *announcement.Store) *Handler {
	return &Handler{Store: store}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	staff := middleware.RequireRole(auth.Staff()...)
	r.Route("/announcements", func(r chi.Router) {
		r.With(middleware.RequireAuth).Get("/", h.handleList)
		r.With(middleware.RequireAuth).Get("/{announcementID}", h.handleGet)
		r.With(staff).Post("/", h.handleCreate)
		r.With(staff).Put("/{announcementID}", h.handleUpdate)
		r.With(staff).Delete("/{announcementID}", h.handleDelete)
	})
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	pag := shared.ParsePagination(r, 100, 500)
	list, err := h.Store.List(r.Context(), pag.Limit, pag.Offset)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "announcements_failed", "failed to list announcements", requestID)
		return
	}
	api.Success(w, list, requestID)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	a, err := h.Store.Get(r.Context(), chi.URLParam(r, "announcementID"))
	if errors.Is(err, announcement.ErrNotFound) {
		api.Fail(w, http.StatusNotFound, "not_found", "announcement not found", requestID)
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "announcements_failed", "failed to load announcement", requestID)
		return
	}
	api.Success(w, a, requestID)
}

type announcementPayload struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	user, _ := middleware.GetUser(r.Context())

	var payload announcementPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", requestID)
		return
	}
	v := shared.NewValidator()
	v.Required("title", payload.Title, "is required")
	v.Required("body", payload.Body, "is required")
	if v.Reject(w, requestID) {
		return
	}

	a, err := h.Store.Create(r.Context(), payload.Title, payload.Body, user.UserID)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "announcements_failed", "failed to create announcement", requestID)
		return
	}
	api.Created(w, a, requestID)
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	var payload announcementPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", requestID)
		return
	}
	v := shared.NewValidator()
	v.Required("title", payload.Title, "is required")
	v.Required("body", payload.Body, "is required")
	if v.Reject(w, requestID) {
		return
	}

	a, err := h.Store.Update(r.Context(), chi.URLParam(r, "announcementID"), payload.Title, payload.Body)
	if errors.Is(err, announcement.ErrNotFound) {
		api.Fail(w, http.StatusNotFound, "not_found", "announcement not found", requestID)
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "announcements_failed", "failed to update announcement", requestID)
		return
	}
	api.Success(w, a, requestID)
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	err := h.Store.Delete(r.Context(), chi.URLParam(r, "announcementID"))
	if errors.Is(err, announcement.ErrNotFound) {
		api.Fail(w, http.StatusNotFound, "not_found", "announcement not found", requestID)
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "announcements_failed", "failed to delete announcement", requestID)
		return
	}
	api.NoContent(w)
}
