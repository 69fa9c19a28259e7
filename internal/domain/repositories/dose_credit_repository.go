package repositories

import (
	"context"

	"github.com/zatekoja/doseordering/internal/domain/entities"
)

// DoseCreditRepository defines the interface for dose credit operations
type DoseCreditRepository interface {
	Create(ctx context.Context, credit *entities.DoseCredit) error
	GetByID(ctx context.Context, id string) (*entities.DoseCredit, error)
	Update(ctx context.Context, credit *entities.DoseCredit) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter DoseCreditFilter) ([]*entities.DoseCredit, error)
}

// DoseCreditFilter defines filters for listing dose credits
type DoseCreditFilter struct {
	Status entities.DoseCreditStatus
	Reason string
}

// Match reports whether a credit passes the filter
func (f DoseCreditFilter) Match(c *entities.DoseCredit) bool {
	switch f.Status {
	case entities.DoseCreditStatusPending:
		if c.IsReceived() {
			return false
		}
	case entities.DoseCreditStatusReceived:
		if !c.IsReceived() {
			return false
		}
	}
	if f.Reason != "" && f.Reason != "all" && c.Reason != f.Reason {
		return false
	}
	return true
}
