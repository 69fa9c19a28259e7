package entities

import (
	"sort"
	"time"
)

// Vendor represents a radiopharmaceutical supplier and its price list.
// A substance missing from Pricing is not available from the vendor.
type Vendor struct {
	ID             string             `json:"id" yaml:"id"`
	Name           string             `json:"name" yaml:"name"`
	PaymentTerms   string             `json:"payment_terms" yaml:"payment_terms"`
	DeliveryWindow string             `json:"delivery_window" yaml:"delivery_window"`
	Pricing        map[string]float64 `json:"pricing" yaml:"pricing"`
	CreatedAt      time.Time          `json:"created_at" yaml:"-"`
	UpdatedAt      time.Time          `json:"updated_at" yaml:"-"`
}

// PriceFor returns the listed unit price for a substance
func (v *Vendor) PriceFor(substance string) (float64, bool) {
	price, ok := v.Pricing[substance]
	return price, ok
}

// AvailableSubstances returns the priced substances in name order
func (v *Vendor) AvailableSubstances() []string {
	names := make([]string, 0, len(v.Pricing))
	for name := range v.Pricing {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
