package repositories

import (
	"context"

	"github.com/zatekoja/doseordering/internal/domain/entities"
)

// InsuranceRepository defines the interface for insurance plan operations
type InsuranceRepository interface {
	Create(ctx context.Context, plan *entities.InsurancePlan) error
	GetByID(ctx context.Context, id string) (*entities.InsurancePlan, error)
	Update(ctx context.Context, plan *entities.InsurancePlan) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]*entities.InsurancePlan, error)
}
