package handlers

import (
	"bytes"
	"context"
	"io"
	"net/http"

	"github.com/zatekoja/doseordering/internal/domain/entities"
	"github.com/zatekoja/doseordering/internal/domain/repositories"
)

// DoseCreditService defines the interface for dose credit operations
type DoseCreditService interface {
	CreateCredit(ctx context.Context, credit *entities.DoseCredit) error
	UpdateCredit(ctx context.Context, credit *entities.DoseCredit) error
	DeleteCredit(ctx context.Context, id string) error
	ListCredits(ctx context.Context, filter repositories.DoseCreditFilter) ([]*entities.DoseCredit, error)
	Summary(ctx context.Context) (*entities.DoseCreditSummary, error)
	ExportCredits(ctx context.Context, filter repositories.DoseCreditFilter, w io.Writer) (string, error)
}

// DoseCreditHandler handles dose credit requests
type DoseCreditHandler struct {
	service DoseCreditService
}

// NewDoseCreditHandler creates a new dose credit handler
func NewDoseCreditHandler(service DoseCreditService) *DoseCreditHandler {
	return &DoseCreditHandler{service: service}
}

func creditFilterFromQuery(r *http.Request) repositories.DoseCreditFilter {
	q := r.URL.Query()
	return repositories.DoseCreditFilter{
		Status: entities.DoseCreditStatus(q.Get("status")),
		Reason: q.Get("reason"),
	}
}

// ListCredits handles GET /api/dose-credits
func (h *DoseCreditHandler) ListCredits(w http.ResponseWriter, r *http.Request) {
	credits, err := h.service.ListCredits(r.Context(), creditFilterFromQuery(r))
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"dose_credits": credits,
		"count":        len(credits),
	})
}

// GetSummary handles GET /api/dose-credits/summary
func (h *DoseCreditHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.service.Summary(r.Context())
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, summary)
}

// CreateCredit handles POST /api/dose-credits
func (h *DoseCreditHandler) CreateCredit(w http.ResponseWriter, r *http.Request) {
	var credit entities.DoseCredit
	if err := decodeJSON(r, &credit); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	if err := h.service.CreateCredit(r.Context(), &credit); err != nil {
		respondWithServiceError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, credit)
}

// UpdateCredit handles PUT /api/dose-credits/{id}
func (h *DoseCreditHandler) UpdateCredit(w http.ResponseWriter, r *http.Request) {
	var credit entities.DoseCredit
	if err := decodeJSON(r, &credit); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}
	credit.ID = r.PathValue("id")

	if err := h.service.UpdateCredit(r.Context(), &credit); err != nil {
		respondWithServiceError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, credit)
}

// DeleteCredit handles DELETE /api/dose-credits/{id}
func (h *DoseCreditHandler) DeleteCredit(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteCredit(r.Context(), r.PathValue("id")); err != nil {
		respondWithServiceError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ExportCredits handles GET /api/dose-credits/export
func (h *DoseCreditHandler) ExportCredits(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	name, err := h.service.ExportCredits(r.Context(), creditFilterFromQuery(r), &buf)
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}

	writeAttachment(w, name, buf.Bytes())
}
