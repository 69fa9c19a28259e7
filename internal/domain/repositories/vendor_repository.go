package repositories

import (
	"context"

	"github.com/zatekoja/doseordering/internal/domain/entities"
)

// VendorRepository defines the interface for vendor price list operations.
// List must return vendors in insertion order. Create and Update must reject a
// name already held by another vendor, ignoring case, with a conflict error.
type VendorRepository interface {
	Create(ctx context.Context, vendor *entities.Vendor) error
	GetByID(ctx context.Context, id string) (*entities.Vendor, error)
	Update(ctx context.Context, vendor *entities.Vendor) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]*entities.Vendor, error)
}
