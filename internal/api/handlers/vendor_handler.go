package handlers

import (
	"bytes"
	"context"
	"io"
	"net/http"

	"github.com/zatekoja/doseordering/internal/domain/entities"
)

// VendorService defines the interface for vendor catalog operations
type VendorService interface {
	CreateVendor(ctx context.Context, vendor *entities.Vendor) error
	GetVendor(ctx context.Context, id string) (*entities.Vendor, error)
	ListVendors(ctx context.Context) ([]*entities.Vendor, error)
	UpdateVendor(ctx context.Context, vendor *entities.Vendor) error
	DeleteVendor(ctx context.Context, id string) error
	ExportVendors(ctx context.Context, w io.Writer) (string, error)
}

// VendorHandler handles vendor requests
type VendorHandler struct {
	service VendorService
}

// NewVendorHandler creates a new vendor handler
func NewVendorHandler(service VendorService) *VendorHandler {
	return &VendorHandler{service: service}
}

// ListVendors handles GET /api/vendors
func (h *VendorHandler) ListVendors(w http.ResponseWriter, r *http.Request) {
	vendors, err := h.service.ListVendors(r.Context())
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"vendors": vendors,
		"count":   len(vendors),
	})
}

// GetVendor handles GET /api/vendors/{id}
func (h *VendorHandler) GetVendor(w http.ResponseWriter, r *http.Request) {
	vendor, err := h.service.GetVendor(r.Context(), r.PathValue("id"))
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, vendor)
}

// CreateVendor handles POST /api/vendors
func (h *VendorHandler) CreateVendor(w http.ResponseWriter, r *http.Request) {
	var vendor entities.Vendor
	if err := decodeJSON(r, &vendor); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	if err := h.service.CreateVendor(r.Context(), &vendor); err != nil {
		respondWithServiceError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, vendor)
}

// UpdateVendor handles PUT /api/vendors/{id}
func (h *VendorHandler) UpdateVendor(w http.ResponseWriter, r *http.Request) {
	var vendor entities.Vendor
	if err := decodeJSON(r, &vendor); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}
	vendor.ID = r.PathValue("id")

	if err := h.service.UpdateVendor(r.Context(), &vendor); err != nil {
		respondWithServiceError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, vendor)
}

// DeleteVendor handles DELETE /api/vendors/{id}
func (h *VendorHandler) DeleteVendor(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteVendor(r.Context(), r.PathValue("id")); err != nil {
		respondWithServiceError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ExportVendors handles GET /api/vendors/export
func (h *VendorHandler) ExportVendors(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	name, err := h.service.ExportVendors(r.Context(), &buf)
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}

	writeAttachment(w, name, buf.Bytes())
}
