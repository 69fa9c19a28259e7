package handlers

import (
	"bytes"
	"context"
	"io"
	"net/http"

	"github.com/zatekoja/doseordering/internal/domain/entities"
)

// RegisterService defines the operations of one compliance register
type RegisterService[T any] interface {
	Create(ctx context.Context, record *T) error
	Get(ctx context.Context, id string) (*T, error)
	List(ctx context.Context, category string) ([]*T, error)
	Update(ctx context.Context, id string, record *T) error
	Delete(ctx context.Context, id string) error
	Summary(ctx context.Context) (*entities.RegisterSummary, error)
	Export(ctx context.Context, w io.Writer) (string, error)
}

// RegisterEndpoints is a compliance register handler as seen by the router
type RegisterEndpoints interface {
	Path() string
	List(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Create(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
	GetSummary(w http.ResponseWriter, r *http.Request)
	Export(w http.ResponseWriter, r *http.Request)
}

// RegisterHandler handles the requests of one compliance register mounted
// at /api/regulatory/{path}
type RegisterHandler[T any] struct {
	path    string
	service RegisterService[T]
}

// NewRegisterHandler creates a handler for the register served at path
func NewRegisterHandler[T any](path string, service RegisterService[T]) *RegisterHandler[T] {
	return &RegisterHandler[T]{path: path, service: service}
}

// Path returns the URL segment of the register
func (h *RegisterHandler[T]) Path() string {
	return h.path
}

// List handles GET /api/regulatory/{path}?category=
func (h *RegisterHandler[T]) List(w http.ResponseWriter, r *http.Request) {
	records, err := h.service.List(r.Context(), r.URL.Query().Get("category"))
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"records": records,
		"count":   len(records),
	})
}

// Get handles GET /api/regulatory/{path}/{id}
func (h *RegisterHandler[T]) Get(w http.ResponseWriter, r *http.Request) {
	record, err := h.service.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, record)
}

// Create handles POST /api/regulatory/{path}
func (h *RegisterHandler[T]) Create(w http.ResponseWriter, r *http.Request) {
	var record T
	if err := decodeJSON(r, &record); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	if err := h.service.Create(r.Context(), &record); err != nil {
		respondWithServiceError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, record)
}

// Update handles PUT /api/regulatory/{path}/{id}
func (h *RegisterHandler[T]) Update(w http.ResponseWriter, r *http.Request) {
	var record T
	if err := decodeJSON(r, &record); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	if err := h.service.Update(r.Context(), r.PathValue("id"), &record); err != nil {
		respondWithServiceError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, record)
}

// Delete handles DELETE /api/regulatory/{path}/{id}
func (h *RegisterHandler[T]) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), r.PathValue("id")); err != nil {
		respondWithServiceError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// GetSummary handles GET /api/regulatory/{path}/summary
func (h *RegisterHandler[T]) GetSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.service.Summary(r.Context())
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, summary)
}

// Export handles GET /api/regulatory/{path}/export
func (h *RegisterHandler[T]) Export(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	name, err := h.service.Export(r.Context(), &buf)
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}

	writeAttachment(w, name, buf.Bytes())
}
