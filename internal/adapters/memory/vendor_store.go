package memory

import (
	"context"
	"strings"

	"github.com/zatekoja/doseordering/internal/domain/entities"
	"github.com/zatekoja/doseordering/internal/domain/repositories"
)

// VendorStore implements the VendorRepository interface in memory.
// Vendors are listed in the order they were added.
type VendorStore struct {
	store *orderedStore[entities.Vendor]
}

// NewVendorStore creates an empty vendor list. Vendor names are unique,
// ignoring case and surrounding spaces.
func NewVendorStore() *VendorStore {
	return &VendorStore{
		store: newOrderedStore("vendor", cloneVendor).uniqueBy("name", vendorNameKey),
	}
}

func vendorNameKey(v *entities.Vendor) string {
	return strings.ToLower(strings.TrimSpace(v.Name))
}

var _ repositories.VendorRepository = (*VendorStore)(nil)

func (s *VendorStore) Create(ctx context.Context, vendor *entities.Vendor) error {
	return s.store.create(vendor.ID, vendor)
}

func (s *VendorStore) GetByID(ctx context.Context, id string) (*entities.Vendor, error) {
	return s.store.get(id)
}

func (s *VendorStore) Update(ctx context.Context, vendor *entities.Vendor) error {
	return s.store.update(vendor.ID, vendor)
}

func (s *VendorStore) Delete(ctx context.Context, id string) error {
	return s.store.delete(id)
}

func (s *VendorStore) List(ctx context.Context) ([]*entities.Vendor, error) {
	return s.store.list(nil), nil
}

func cloneVendor(v *entities.Vendor) *entities.Vendor {
	c := *v
	if v.Pricing != nil {
		c.Pricing = make(map[string]float64, len(v.Pricing))
		for k, p := range v.Pricing {
			c.Pricing[k] = p
		}
	}
	return &c
}
