package memory

import (
	"context"

	"github.com/zatekoja/doseordering/internal/domain/entities"
	"github.com/zatekoja/doseordering/internal/domain/repositories"
)

// DoseCreditStore implements the DoseCreditRepository interface in memory
type DoseCreditStore struct {
	store *orderedStore[entities.DoseCredit]
}

// NewDoseCreditStore creates an empty credit ledger
func NewDoseCreditStore() *DoseCreditStore {
	return &DoseCreditStore{
		store: newOrderedStore("dose credit", func(c *entities.DoseCredit) *entities.DoseCredit {
			cp := *c
			return &cp
		}),
	}
}

var _ repositories.DoseCreditRepository = (*DoseCreditStore)(nil)

func (s *DoseCreditStore) Create(ctx context.Context, credit *entities.DoseCredit) error {
	return s.store.create(credit.ID, credit)
}

func (s *DoseCreditStore) GetByID(ctx context.Context, id string) (*entities.DoseCredit, error) {
	return s.store.get(id)
}

func (s *DoseCreditStore) Update(ctx context.Context, credit *entities.DoseCredit) error {
	return s.store.update(credit.ID, credit)
}

func (s *DoseCreditStore) Delete(ctx context.Context, id string) error {
	return s.store.delete(id)
}

func (s *DoseCreditStore) List(ctx context.Context, filter repositories.DoseCreditFilter) ([]*entities.DoseCredit, error) {
	return s.store.list(filter.Match), nil
}
