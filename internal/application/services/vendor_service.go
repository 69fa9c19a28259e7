package services

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/zatekoja/doseordering/internal/domain/entities"
	"github.com/zatekoja/doseordering/internal/domain/providers"
	"github.com/zatekoja/doseordering/internal/domain/repositories"
	"github.com/zatekoja/doseordering/internal/infrastructure/observability"
	apperrors "github.com/zatekoja/doseordering/pkg/errors"
)

// VendorService manages supplier price lists
type VendorService struct {
	repo     repositories.VendorRepository
	exporter providers.ReportExporter
	metrics  *observability.Metrics
}

// NewVendorService creates a new vendor service
func NewVendorService(repo repositories.VendorRepository, exporter providers.ReportExporter, metrics *observability.Metrics) *VendorService {
	return &VendorService{
		repo:     repo,
		exporter: exporter,
		metrics:  metrics,
	}
}

// CreateVendor adds a vendor. Vendor names must be unique; the repository
// rejects a duplicate name with a conflict.
func (s *VendorService) CreateVendor(ctx context.Context, vendor *entities.Vendor) error {
	if err := validateVendor(vendor); err != nil {
		return err
	}

	if vendor.ID == "" {
		vendor.ID = uuid.New().String()
	}
	now := time.Now()
	vendor.CreatedAt = now
	vendor.UpdatedAt = now

	if err := s.repo.Create(ctx, vendor); err != nil {
		return fmt.Errorf("failed to save vendor: %w", err)
	}

	observability.LoggerFromContext(ctx).Info().
		Str("vendor_id", vendor.ID).
		Str("vendor", vendor.Name).
		Int("isotopes", len(vendor.Pricing)).
		Msg("vendor added")
	return nil
}

// GetVendor retrieves a vendor by ID
func (s *VendorService) GetVendor(ctx context.Context, id string) (*entities.Vendor, error) {
	return s.repo.GetByID(ctx, id)
}

// ListVendors returns vendors in the order they were added
func (s *VendorService) ListVendors(ctx context.Context) ([]*entities.Vendor, error) {
	return s.repo.List(ctx)
}

// UpdateVendor replaces a vendor's terms and price list
func (s *VendorService) UpdateVendor(ctx context.Context, vendor *entities.Vendor) error {
	if err := validateVendor(vendor); err != nil {
		return err
	}
	existing, err := s.repo.GetByID(ctx, vendor.ID)
	if err != nil {
		return err
	}

	vendor.CreatedAt = existing.CreatedAt
	vendor.UpdatedAt = time.Now()
	return s.repo.Update(ctx, vendor)
}

// ExportVendors writes every vendor's terms and price list and returns the file name
func (s *VendorService) ExportVendors(ctx context.Context, w io.Writer) (string, error) {
	if s.exporter == nil {
		return "", apperrors.NewInternalError("report exporter not configured", nil)
	}
	vendors, err := s.repo.List(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to load vendors: %w", err)
	}
	if err := s.exporter.WriteVendorReport(w, vendors); err != nil {
		return "", apperrors.NewInternalError("failed to export vendor report", err)
	}
	observability.RecordExport(ctx, s.metrics, "vendors")
	return s.exporter.VendorReportFilename(), nil
}

// DeleteVendor removes a vendor
func (s *VendorService) DeleteVendor(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

func validateVendor(v *entities.Vendor) error {
	v.Name = strings.TrimSpace(v.Name)
	if v.Name == "" {
		return apperrors.NewValidationError("vendor name is required")
	}
	for substance, price := range v.Pricing {
		if strings.TrimSpace(substance) == "" {
			return apperrors.NewValidationError("isotope name is required in pricing")
		}
		if price < 0 {
			return apperrors.NewValidationError(fmt.Sprintf("price for %s must not be negative", substance))
		}
	}
	return nil
}
