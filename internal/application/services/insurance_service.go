package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/zatekoja/doseordering/internal/domain/entities"
	"github.com/zatekoja/doseordering/internal/domain/repositories"
	apperrors "github.com/zatekoja/doseordering/pkg/errors"
)

// InsuranceService manages payer reimbursement rates
type InsuranceService struct {
	repo repositories.InsuranceRepository
}

// NewInsuranceService creates a new insurance service
func NewInsuranceService(repo repositories.InsuranceRepository) *InsuranceService {
	return &InsuranceService{repo: repo}
}

// CreatePlan adds an insurance plan
func (s *InsuranceService) CreatePlan(ctx context.Context, plan *entities.InsurancePlan) error {
	if err := validatePlan(plan); err != nil {
		return err
	}
	if plan.ID == "" {
		plan.ID = uuid.New().String()
	}
	now := time.Now()
	plan.CreatedAt = now
	plan.UpdatedAt = now

	if err := s.repo.Create(ctx, plan); err != nil {
		return fmt.Errorf("failed to save insurance plan: %w", err)
	}
	return nil
}

// GetPlan retrieves an insurance plan by ID
func (s *InsuranceService) GetPlan(ctx context.Context, id string) (*entities.InsurancePlan, error) {
	return s.repo.GetByID(ctx, id)
}

// ListPlans returns all insurance plans
func (s *InsuranceService) ListPlans(ctx context.Context) ([]*entities.InsurancePlan, error) {
	return s.repo.List(ctx)
}

// UpdatePlan replaces an insurance plan
func (s *InsuranceService) UpdatePlan(ctx context.Context, plan *entities.InsurancePlan) error {
	if err := validatePlan(plan); err != nil {
		return err
	}
	existing, err := s.repo.GetByID(ctx, plan.ID)
	if err != nil {
		return err
	}
	plan.CreatedAt = existing.CreatedAt
	plan.UpdatedAt = time.Now()
	return s.repo.Update(ctx, plan)
}

// DeletePlan removes an insurance plan
func (s *InsuranceService) DeletePlan(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

// Summary reports average, highest and lowest reimbursement. With no plans
// every figure is zero.
func (s *InsuranceService) Summary(ctx context.Context) (*entities.InsuranceSummary, error) {
	plans, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load insurance plans: %w", err)
	}

	summary := &entities.InsuranceSummary{PlanCount: len(plans)}
	if len(plans) == 0 {
		return summary, nil
	}

	var sum float64
	summary.HighestReimbursement = plans[0].ReimbursementPercentage
	summary.LowestReimbursement = plans[0].ReimbursementPercentage
	for _, p := range plans {
		sum += p.ReimbursementPercentage
		if p.ReimbursementPercentage > summary.HighestReimbursement {
			summary.HighestReimbursement = p.ReimbursementPercentage
		}
		if p.ReimbursementPercentage < summary.LowestReimbursement {
			summary.LowestReimbursement = p.ReimbursementPercentage
		}
	}
	summary.AverageReimbursement = sum / float64(len(plans))

	return summary, nil
}

func validatePlan(p *entities.InsurancePlan) error {
	p.Name = strings.TrimSpace(p.Name)
	if p.Name == "" {
		return apperrors.NewValidationError("insurance name is required")
	}
	if p.ReimbursementPercentage < 0 || p.ReimbursementPercentage > 100 {
		return apperrors.NewValidationError("reimbursement percentage must be between 0 and 100")
	}
	return nil
}
