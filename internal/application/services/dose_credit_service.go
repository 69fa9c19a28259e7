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

// DoseCreditService tracks refund claims for unused doses
type DoseCreditService struct {
	repo     repositories.DoseCreditRepository
	exporter providers.ReportExporter
	metrics  *observability.Metrics
}

// NewDoseCreditService creates a new dose credit service
func NewDoseCreditService(repo repositories.DoseCreditRepository, exporter providers.ReportExporter, metrics *observability.Metrics) *DoseCreditService {
	return &DoseCreditService{
		repo:     repo,
		exporter: exporter,
		metrics:  metrics,
	}
}

// CreateCredit files a new credit. SubmittedDate defaults to today.
func (s *DoseCreditService) CreateCredit(ctx context.Context, credit *entities.DoseCredit) error {
	if credit.SubmittedDate == "" {
		credit.SubmittedDate = time.Now().Format(entities.DateLayout)
	}
	if err := validateCredit(credit); err != nil {
		return err
	}
	if credit.ID == "" {
		credit.ID = uuid.New().String()
	}
	now := time.Now()
	credit.CreatedAt = now
	credit.UpdatedAt = now

	if err := s.repo.Create(ctx, credit); err != nil {
		return fmt.Errorf("failed to save dose credit: %w", err)
	}

	observability.LoggerFromContext(ctx).Info().
		Str("credit_id", credit.ID).
		Str("isotope", credit.Substance).
		Str("reason", credit.Reason).
		Msg("dose credit filed")
	return nil
}

// UpdateCredit replaces a credit, typically to record its received date
func (s *DoseCreditService) UpdateCredit(ctx context.Context, credit *entities.DoseCredit) error {
	if err := validateCredit(credit); err != nil {
		return err
	}
	existing, err := s.repo.GetByID(ctx, credit.ID)
	if err != nil {
		return err
	}
	credit.CreatedAt = existing.CreatedAt
	credit.UpdatedAt = time.Now()
	return s.repo.Update(ctx, credit)
}

// DeleteCredit removes a credit
func (s *DoseCreditService) DeleteCredit(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

// ListCredits returns credits matching the filter
func (s *DoseCreditService) ListCredits(ctx context.Context, filter repositories.DoseCreditFilter) ([]*entities.DoseCredit, error) {
	switch filter.Status {
	case "", entities.DoseCreditStatusAll, entities.DoseCreditStatusPending, entities.DoseCreditStatusReceived:
	default:
		return nil, apperrors.NewValidationError(fmt.Sprintf("unknown credit status %q", filter.Status))
	}
	return s.repo.List(ctx, filter)
}

// Summary counts all credits by state and lists the distinct reasons in
// first-seen order
func (s *DoseCreditService) Summary(ctx context.Context) (*entities.DoseCreditSummary, error) {
	credits, err := s.repo.List(ctx, repositories.DoseCreditFilter{})
	if err != nil {
		return nil, fmt.Errorf("failed to load dose credits: %w", err)
	}
	return summarizeCredits(credits), nil
}

// ExportCredits writes the filtered credits with ledger-wide totals and
// returns the file name
func (s *DoseCreditService) ExportCredits(ctx context.Context, filter repositories.DoseCreditFilter, w io.Writer) (string, error) {
	if s.exporter == nil {
		return "", apperrors.NewInternalError("report exporter not configured", nil)
	}
	credits, err := s.ListCredits(ctx, filter)
	if err != nil {
		return "", err
	}
	summary, err := s.Summary(ctx)
	if err != nil {
		return "", err
	}
	if err := s.exporter.WriteDoseCreditReport(w, credits, *summary); err != nil {
		return "", apperrors.NewInternalError("failed to export dose credit report", err)
	}
	observability.RecordExport(ctx, s.metrics, "dose_credits")
	return s.exporter.DoseCreditReportFilename(), nil
}

func summarizeCredits(credits []*entities.DoseCredit) *entities.DoseCreditSummary {
	summary := &entities.DoseCreditSummary{Total: len(credits), Reasons: []string{}}
	seen := make(map[string]bool)
	for _, c := range credits {
		if c.IsReceived() {
			summary.Received++
		} else {
			summary.Pending++
		}
		if c.Reason != "" && !seen[c.Reason] {
			seen[c.Reason] = true
			summary.Reasons = append(summary.Reasons, c.Reason)
		}
	}
	return summary
}

func validateCredit(c *entities.DoseCredit) error {
	if strings.TrimSpace(c.PatientName) == "" {
		return apperrors.NewValidationError("patient name is required")
	}
	if strings.TrimSpace(c.Substance) == "" {
		return apperrors.NewValidationError("isotope is required")
	}
	if strings.TrimSpace(c.Reason) == "" {
		return apperrors.NewValidationError("reason for credit is required")
	}
	if err := validateDate("submitted_date", c.SubmittedDate); err != nil {
		return err
	}
	if c.ReceivedDate != "" {
		if err := validateDate("received_date", c.ReceivedDate); err != nil {
			return err
		}
	}
	if c.ScheduleDate != "" {
		if err := validateDate("schedule_date", c.ScheduleDate); err != nil {
			return err
		}
	}
	return nil
}
