package cataloghandler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"staffdesk/internal/domain/auth"
	"staffdesk/internal/domain/catalog"
	"staffdesk/internal/transport/http/api"
	"staffdesk/internal/transport/http/middleware"
	"staffdesk/internal/transport/http/shared"
)

type Handler struct {
	Store *catalog.Store
}

func NewHandler(store *catalog.Store) *Handler {
	return &Handler{Store: store}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	staff := middleware.RequireRole(auth.Staff()...)
	r.Route("/catalog", func(r chi.Router) {
		r.Use(staff)
		r.Get("/benefit-types", h.handleListBenefitTypes)
		r.Post("/benefit-types", h.handleCreateBenefitType)
		r.Put("/benefit-types/{typeID}", h.handleUpdateBenefitType)
		r.Delete("/benefit-types/{typeID}", h.handleDeleteBenefitType)
		r.Get("/bonus-types", h.handleListBonusTypes)
		r.Post("/bonus-types", h.handleCreateBonusType)
		r.Put("/bonus-types/{typeID}", h.handleUpdateBonusType)
		r.Delete("/bonus-types/{typeID}", h.handleDeleteBonusType)
	})
}

type benefitTypePayload struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Amount      string `json:"amount"`
}

func (h *Handler) handleListBenefitTypes(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	types, err := h.Store.ListBenefitTypes(r.Context())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "benefit_types_failed", "failed to list benefit types", requestID)
		return
	}
	api.Success(w, types, requestID)
}

func (h *Handler) decodeBenefitType(w http.ResponseWriter, r *http.Request, requestID string) (catalog.BenefitType, bool) {
	var payload benefitTypePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", requestID)
		return catalog.BenefitType{}, false
	}

	v := shared.NewValidator()
	v.Required("name", payload.Name, "is required")
	bt := catalog.BenefitType{Name: payload.Name, Description: payload.Description}
	if payload.Amount == "" {
		v.Add("amount", "is required")
	} else if amount, err := decimal.NewFromString(payload.Amount); err != nil {
		v.Add("amount", "must be a decimal amount")
	} else {
		bt.Amount = amount
	}
	if v.Reject(w, requestID) {
		return catalog.BenefitType{}, false
	}
	return bt, true
}

func (h *Handler) handleCreateBenefitType(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	bt, ok := h.decodeBenefitType(w, r, requestID)
	if !ok {
		return
	}
	id, err := h.Store.CreateBenefitType(r.Context(), bt)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "benefit_type_create_failed", "failed to create benefit type", requestID)
		return
	}
	api.Created(w, map[string]string{"id": id}, requestID)
}

func (h *Handler) handleUpdateBenefitType(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	bt, ok := h.decodeBenefitType(w, r, requestID)
	if !ok {
		return
	}
	bt.ID = chi.URLParam(r, "typeID")
	err := h.Store.UpdateBenefitType(r.Context(), bt)
	if errors.Is(err, catalog.ErrNotFound) {
		api.Fail(w, http.StatusNotFound, "not_found", "benefit type not found", requestID)
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "benefit_type_update_failed", "failed to update benefit type", requestID)
		return
	}
	api.Success(w, bt, requestID)
}

func (h *Handler) handleDeleteBenefitType(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	err := h.Store.DeleteBenefitType(r.Context(), chi.URLParam(r, "typeID"))
	switch {
	case errors.Is(err, catalog.ErrNotFound):
		api.Fail(w, http.StatusNotFound, "not_found", "benefit type not found", requestID)
	case errors.Is(err, catalog.ErrInUse):
		api.Fail(w, http.StatusConflict, "type_in_use", "benefit type is referenced by payroll sheets", requestID)
	case err != nil:
		api.Fail(w, http.StatusInternalServerError, "benefit_type_delete_failed", "failed to delete benefit type", requestID)
	default:
		api.NoContent(w)
	}
}

type bonusTypePayload struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

func (h *Handler) handleListBonusTypes(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	types, err := h.Store.ListBonusTypes(r.Context())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "bonus_types_failed", "failed to list bonus types", requestID)
		return
	}
	api.Success(w, types, requestID)
}

func (h *Handler) handleCreateBonusType(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	var payload bonusTypePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", requestID)
		return
	}
	v := shared.NewValidator()
	v.Required("name", payload.Name, "is required")
	if v.Reject(w, requestID) {
		return
	}

	id, err := h.Store.CreateBonusType(r.Context(), catalog.BonusType{Name: payload.Name, Description: payload.Description})
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "bonus_type_create_failed", "failed to create bonus type", requestID)
		return
	}
	api.Created(w, map[string]string{"id": id}, requestID)
}

func (h *Handler) handleUpdateBonusType(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	var payload bonusTypePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", requestID)
		return
	}

	bt := catalog.BonusType{ID: chi.URLParam(r, "typeID"), Name: payload.Name, Description: payload.Description}
	err := h.Store.UpdateBonusType(r.Context(), bt)
	if errors.Is(err, catalog.ErrNotFound) {
		api.Fail(w, http.StatusNotFound, "not_found", "bonus type not found", requestID)
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "bonus_type_update_failed", "failed to update bonus type", requestID)
		return
	}
	api.Success(w, bt, requestID)
}

func (h *Handler) handleDeleteBonusType(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	err := h.Store.DeleteBonusType(r.Context(), chi.URLParam(r, "typeID"))
	switch {
	case errors.Is(err, catalog.ErrNotFound):
		api.Fail(w, http.StatusNotFound, "not_found", "bonus type not found", requestID)
	case errors.Is(err, catalog.ErrInUse):
		api.Fail(w, http.StatusConflict, "type_in_use", "bonus type is referenced by payroll sheets", requestID)
	case err != nil:
		api.Fail(w, http.StatusInternalServerError, "bonus_type_delete_failed", "failed to delete bonus type", requestID)
	default:
		api.NoContent(w)
	}
}
