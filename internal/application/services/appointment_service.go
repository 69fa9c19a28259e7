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

// AppointmentService manages the scan schedule
type AppointmentService struct {
	repo     repositories.AppointmentRepository
	exporter providers.ReportExporter
	metrics  *observability.Metrics
}

// NewAppointmentService creates a new appointment service
func NewAppointmentService(repo repositories.AppointmentRepository, exporter providers.ReportExporter, metrics *observability.Metrics) *AppointmentService {
	return &AppointmentService{
		repo:     repo,
		exporter: exporter,
		metrics:  metrics,
	}
}

// CreateAppointment adds an appointment to the schedule. New appointments
// without a status start as Scheduled.
func (s *AppointmentService) CreateAppointment(ctx context.Context, appointment *entities.Appointment) error {
	if appointment.Status == "" {
		appointment.Status = entities.AppointmentStatusScheduled
	}
	if err := validateAppointment(appointment); err != nil {
		return err
	}

	if appointment.ID == "" {
		appointment.ID = uuid.New().String()
	}
	now := time.Now()
	appointment.CreatedAt = now
	appointment.UpdatedAt = now

	if err := s.repo.Create(ctx, appointment); err != nil {
		return fmt.Errorf("failed to save appointment: %w", err)
	}

	observability.LoggerFromContext(ctx).Info().
		Str("appointment_id", appointment.ID).
		Str("isotope", appointment.Substance).
		Str("status", string(appointment.Status)).
		Msg("appointment scheduled")
	return nil
}

// GetAppointment retrieves an appointment by ID
func (s *AppointmentService) GetAppointment(ctx context.Context, id string) (*entities.Appointment, error) {
	return s.repo.GetByID(ctx, id)
}

// ListAppointments returns the schedule in insertion order
func (s *AppointmentService) ListAppointments(ctx context.Context, filter repositories.AppointmentFilter) ([]*entities.Appointment, error) {
	if filter.Status != "" && !filter.Status.IsValid() {
		return nil, apperrors.NewValidationError(fmt.Sprintf("unknown status %q", filter.Status))
	}
	if filter.Dates != nil {
		normalized, err := NormalizeDateFilter(*filter.Dates)
		if err != nil {
			return nil, err
		}
		filter.Dates = &normalized
	}
	return s.repo.List(ctx, filter)
}

// Summary counts the whole schedule by status
func (s *AppointmentService) Summary(ctx context.Context) (*entities.ScheduleSummary, error) {
	appointments, err := s.repo.List(ctx, repositories.AppointmentFilter{})
	if err != nil {
		return nil, fmt.Errorf("failed to load schedule: %w", err)
	}
	summary := entities.SummarizeSchedule(appointments)
	return &summary, nil
}

// ExportSchedule writes the filtered appointments with schedule-wide status
// counts and returns the file name
func (s *AppointmentService) ExportSchedule(ctx context.Context, filter repositories.AppointmentFilter, w io.Writer) (string, error) {
	if s.exporter == nil {
		return "", apperrors.NewInternalError("report exporter not configured", nil)
	}
	appointments, err := s.ListAppointments(ctx, filter)
	if err != nil {
		return "", err
	}
	summary, err := s.Summary(ctx)
	if err != nil {
		return "", err
	}
	if err := s.exporter.WriteScheduleReport(w, appointments, *summary); err != nil {
		return "", apperrors.NewInternalError("failed to export schedule report", err)
	}
	observability.RecordExport(ctx, s.metrics, "schedule")
	return s.exporter.ScheduleReportFilename(), nil
}

// UpdateAppointment replaces an existing appointment
func (s *AppointmentService) UpdateAppointment(ctx context.Context, appointment *entities.Appointment) error {
	if err := validateAppointment(appointment); err != nil {
		return err
	}

	existing, err := s.repo.GetByID(ctx, appointment.ID)
	if err != nil {
		return err
	}
	appointment.CreatedAt = existing.CreatedAt
	appointment.UpdatedAt = time.Now()

	return s.repo.Update(ctx, appointment)
}

// UpdateStatus moves an appointment to a new status
func (s *AppointmentService) UpdateStatus(ctx context.Context, id string, status entities.AppointmentStatus) (*entities.Appointment, error) {
	if !status.IsValid() {
		return nil, apperrors.NewValidationError(fmt.Sprintf("unknown status %q", status))
	}

	appointment, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	previous := appointment.Status
	appointment.Status = status
	appointment.UpdatedAt = time.Now()
	if err := s.repo.Update(ctx, appointment); err != nil {
		return nil, err
	}

	observability.LoggerFromContext(ctx).Info().
		Str("appointment_id", id).
		Str("from", string(previous)).
		Str("to", string(status)).
		Msg("appointment status changed")
	return appointment, nil
}

// DeleteAppointment removes an appointment from the schedule
func (s *AppointmentService) DeleteAppointment(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

func validateAppointment(a *entities.Appointment) error {
	if strings.TrimSpace(a.PatientName) == "" {
		return apperrors.NewValidationError("patient name is required")
	}
	if strings.TrimSpace(a.Substance) == "" {
		return apperrors.NewValidationError("isotope is required")
	}
	if err := validateDate("date", a.Date); err != nil {
		return err
	}
	if !a.Status.IsValid() {
		return apperrors.NewValidationError(fmt.Sprintf("unknown status %q", a.Status))
	}
	return nil
}
