package compliance

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/zatekoja/doseordering/internal/domain/entities"
	"github.com/zatekoja/doseordering/internal/domain/providers"
	"github.com/zatekoja/doseordering/internal/domain/repositories"
	"github.com/zatekoja/doseordering/internal/infrastructure/observability"
	apperrors "github.com/zatekoja/doseordering/pkg/errors"
)

// Service manages the records of one register
type Service[T any] struct {
	register *Register[T]
	repo     repositories.RecordRepository[T]
	exporter providers.ReportExporter
	metrics  *observability.Metrics
	now      func() time.Time

	// keyMu serializes writes of registers with an UpsertKey
	keyMu sync.Mutex
}

// NewService creates a service for register backed by repo
func NewService[T any](register *Register[T], repo repositories.RecordRepository[T], exporter providers.ReportExporter, metrics *observability.Metrics) *Service[T] {
	return &Service[T]{
		register: register,
		repo:     repo,
		exporter: exporter,
		metrics:  metrics,
		now:      time.Now,
	}
}

// Register returns the register the service manages
func (s *Service[T]) Register() *Register[T] {
	return s.register
}

func (s *Service[T]) today() string {
	return s.now().Format(entities.DateLayout)
}

// Create validates and stores a record, assigning an id when it has none.
// For registers keyed per subject the record replaces the existing one and
// takes over its id.
func (s *Service[T]) Create(ctx context.Context, record *T) error {
	if err := s.register.Prepare(record, s.today()); err != nil {
		return err
	}
	id := s.register.ID(record)

	if s.register.UpsertKey != nil {
		s.keyMu.Lock()
		defer s.keyMu.Unlock()

		existing, err := s.findByKey(ctx, s.register.UpsertKey(record))
		if err != nil {
			return err
		}
		if existing != nil {
			*id = *s.register.ID(existing)
			if err := s.repo.Update(ctx, record); err != nil {
				return fmt.Errorf("failed to save %s: %w", s.register.Name, err)
			}
			s.logSaved(ctx, *id, "replaced")
			return nil
		}
	}

	if *id == "" {
		*id = uuid.New().String()
	}
	if err := s.repo.Create(ctx, record); err != nil {
		return fmt.Errorf("failed to save %s: %w", s.register.Name, err)
	}
	s.logSaved(ctx, *id, "recorded")
	return nil
}

// Get retrieves a record by ID
func (s *Service[T]) Get(ctx context.Context, id string) (*T, error) {
	return s.repo.GetByID(ctx, id)
}

// List returns the register in insertion order, optionally limited to one
// category such as "Red" or "Check In"
func (s *Service[T]) List(ctx context.Context, category string) ([]*T, error) {
	records, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s records: %w", s.register.Name, err)
	}
	if category == "" {
		return records, nil
	}
	filtered := make([]*T, 0, len(records))
	for _, r := range records {
		if s.register.Category(r) == category {
			filtered = append(filtered, r)
		}
	}
	return filtered, nil
}

// Update replaces the record with the given id
func (s *Service[T]) Update(ctx context.Context, id string, record *T) error {
	if id == "" {
		return apperrors.NewValidationError(s.register.Name + " id is required")
	}
	*s.register.ID(record) = id
	if err := s.register.Prepare(record, s.today()); err != nil {
		return err
	}

	if s.register.UpsertKey != nil {
		s.keyMu.Lock()
		defer s.keyMu.Unlock()

		other, err := s.findByKey(ctx, s.register.UpsertKey(record))
		if err != nil {
			return err
		}
		if other != nil && *s.register.ID(other) != id {
			return apperrors.NewConflictError(fmt.Sprintf("another %s already uses this key", s.register.Name))
		}
	}
	return s.repo.Update(ctx, record)
}

// Delete removes a record
func (s *Service[T]) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

// Summary counts the whole register by category
func (s *Service[T]) Summary(ctx context.Context) (*entities.RegisterSummary, error) {
	records, err := s.List(ctx, "")
	if err != nil {
		return nil, err
	}
	return s.register.Summarize(records), nil
}

// Export writes the register workbook and returns its file name
func (s *Service[T]) Export(ctx context.Context, w io.Writer) (string, error) {
	if s.exporter == nil {
		return "", apperrors.NewInternalError("report exporter not configured", nil)
	}
	records, err := s.List(ctx, "")
	if err != nil {
		return "", err
	}
	report := s.register.Report(records, s.register.Summarize(records))
	if err := s.exporter.WriteRegisterReport(w, report); err != nil {
		return "", apperrors.NewInternalError(fmt.Sprintf("failed to export %s report", s.register.Name), err)
	}
	observability.RecordExport(ctx, s.metrics, s.register.Path)
	return s.exporter.RegisterReportFilename(s.register.FilePrefix), nil
}

func (s *Service[T]) findByKey(ctx context.Context, key string) (*T, error) {
	records, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s records: %w", s.register.Name, err)
	}
	for _, r := range records {
		if s.register.UpsertKey(r) == key {
			return r, nil
		}
	}
	return nil, nil
}

func (s *Service[T]) logSaved(ctx context.Context, id, action string) {
	observability.LoggerFromContext(ctx).Info().
		Str("register", s.register.Path).
		Str("record_id", id).
		Msg(s.register.Name + " " + action)
}
