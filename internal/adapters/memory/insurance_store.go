package memory

import (
	"context"

	"github.com/zatekoja/doseordering/internal/domain/entities"
	"github.com/zatekoja/doseordering/internal/domain/repositories"
)

// InsuranceStore implements the InsuranceRepository interface in memory
type InsuranceStore struct {
	store *orderedStore[entities.InsurancePlan]
}

// NewInsuranceStore creates an empty plan list
func NewInsuranceStore() *InsuranceStore {
	return &InsuranceStore{
		store: newOrderedStore("insurance plan", func(p *entities.InsurancePlan) *entities.InsurancePlan {
			c := *p
			return &c
		}),
	}
}

var _ repositories.InsuranceRepository = (*InsuranceStore)(nil)

func (s *InsuranceStore) Create(ctx context.Context, plan *entities.InsurancePlan) error {
	return s.store.create(plan.ID, plan)
}

func (s *InsuranceStore) GetByID(ctx context.Context, id string) (*entities.InsurancePlan, error) {
	return s.store.get(id)
}

func (s *InsuranceStore) Update(ctx context.Context, plan *entities.InsurancePlan) error {
	return s.store.update(plan.ID, plan)
}

func (s *InsuranceStore) Delete(ctx context.Context, id string) error {
	return s.store.delete(id)
}

func (s *InsuranceStore) List(ctx context.Context) ([]*entities.InsurancePlan, error) {
	return s.store.list(nil), nil
}
