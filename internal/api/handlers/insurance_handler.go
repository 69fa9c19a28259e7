package handlers

import (
	"context"
	"net/http"

	"github.com/zatekoja/doseordering/internal/domain/entities"
)

// InsuranceService defines the interface for insurance plan operations
type InsuranceService interface {
	CreatePlan(ctx context.Context, plan *entities.InsurancePlan) error
	GetPlan(ctx context.Context, id string) (*entities.InsurancePlan, error)
	ListPlans(ctx context.Context) ([]*entities.InsurancePlan, error)
	UpdatePlan(ctx context.Context, plan *entities.InsurancePlan) error
	DeletePlan(ctx context.Context, id string) error
	Summary(ctx context.Context) (*entities.InsuranceSummary, error)
}

// InsuranceHandler handles insurance requests
type InsuranceHandler struct {
	service InsuranceService
}

// NewInsuranceHandler creates a new insurance handler
func NewInsuranceHandler(service InsuranceService) *InsuranceHandler {
	return &InsuranceHandler{
		service: service,
	}
}

// ListPlans handles GET /api/insurances
func (h *InsuranceHandler) ListPlans(w http.ResponseWriter, r *http.Request) {
	plans, err := h.service.ListPlans(r.Context())
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"insurances": plans,
		"count":      len(plans),
	})
}

// GetPlan handles GET /api/insurances/{id}
func (h *InsuranceHandler) GetPlan(w http.ResponseWriter, r *http.Request) {
	plan, err := h.service.GetPlan(r.Context(), r.PathValue("id"))
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, plan)
}

// GetSummary handles GET /api/insurances/summary
func (h *InsuranceHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.service.Summary(r.Context())
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, summary)
}

// CreatePlan handles POST /api/insurances
func (h *InsuranceHandler) CreatePlan(w http.ResponseWriter, r *http.Request) {
	var plan entities.InsurancePlan
	if err := decodeJSON(r, &plan); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	if err := h.service.CreatePlan(r.Context(), &plan); err != nil {
		respondWithServiceError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, plan)
}

// UpdatePlan handles PUT /api/insurances/{id}
func (h *InsuranceHandler) UpdatePlan(w http.ResponseWriter, r *http.Request) {
	var plan entities.InsurancePlan
	if err := decodeJSON(r, &plan); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}
	plan.ID = r.PathValue("id")

	if err := h.service.UpdatePlan(r.Context(), &plan); err != nil {
		respondWithServiceError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, plan)
}

// DeletePlan handles DELETE /api/insurances/{id}
func (h *InsuranceHandler) DeletePlan(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeletePlan(r.Context(), r.PathValue("id")); err != nil {
		respondWithServiceError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
