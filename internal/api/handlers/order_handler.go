package handlers

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/zatekoja/doseordering/internal/domain/entities"
)

// OrderService defines the interface for dose order calculation
type OrderService interface {
	CalculatePlan(ctx context.Context, filter entities.DateFilter) (*entities.OrderPlan, error)
	ExportPlan(ctx context.Context, filter entities.DateFilter, w io.Writer) (string, error)
}

// OrderHandler handles dose ordering requests
type OrderHandler struct {
	service OrderService
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(service OrderService) *OrderHandler {
	return &OrderHandler{
		service: service,
	}
}

// CalculateRecommendations handles POST /api/orders/recommendations
func (h *OrderHandler) CalculateRecommendations(w http.ResponseWriter, r *http.Request) {
	var filter entities.DateFilter
	// an empty body means all dates
	if err := decodeJSON(r, &filter); err != nil && err != io.EOF {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	plan, err := h.service.CalculatePlan(r.Context(), filter)
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, plan)
}

// ExportRecommendations handles GET /api/orders/export
func (h *OrderHandler) ExportRecommendations(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	name, err := h.service.ExportPlan(r.Context(), dateFilterFromQuery(r), &buf)
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}

	writeAttachment(w, name, buf.Bytes())
}

func writeAttachment(w http.ResponseWriter, name string, body []byte) {
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	w.WriteHeader(http.StatusOK)
	w.Write(body)
}
