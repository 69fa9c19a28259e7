package services

import (
	"context"
	"fmt"
	"io"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/zatekoja/doseordering/internal/application/ordering"
	"github.com/zatekoja/doseordering/internal/domain/entities"
	"github.com/zatekoja/doseordering/internal/domain/providers"
	"github.com/zatekoja/doseordering/internal/domain/repositories"
	"github.com/zatekoja/doseordering/internal/infrastructure/observability"
	apperrors "github.com/zatekoja/doseordering/pkg/errors"
)

// OrderService calculates dose orders from the live schedule, vendor and insurance data
type OrderService struct {
	appointments repositories.AppointmentRepository
	vendors      repositories.VendorRepository
	insurances   repositories.InsuranceRepository
	exporter     providers.ReportExporter
	metrics      *observability.Metrics
}

// NewOrderService creates a new order service
func NewOrderService(
	appointments repositories.AppointmentRepository,
	vendors repositories.VendorRepository,
	insurances repositories.InsuranceRepository,
	exporter providers.ReportExporter,
	metrics *observability.Metrics,
) *OrderService {
	return &OrderService{
		appointments: appointments,
		vendors:      vendors,
		insurances:   insurances,
		exporter:     exporter,
		metrics:      metrics,
	}
}

// CalculatePlan returns the order plan for the confirmed appointments in the filter
func (s *OrderService) CalculatePlan(ctx context.Context, filter entities.DateFilter) (*entities.OrderPlan, error) {
	ctx, span := observability.StartSpan(ctx, "OrderService.CalculatePlan")
	defer span.End()

	filter, err := NormalizeDateFilter(filter)
	if err != nil {
		observability.RecordError(span, err)
		return nil, err
	}

	appointments, err := s.appointments.List(ctx, repositories.AppointmentFilter{})
	if err != nil {
		observability.RecordError(span, err)
		return nil, fmt.Errorf("failed to load schedule: %w", err)
	}
	vendors, err := s.vendors.List(ctx)
	if err != nil {
		observability.RecordError(span, err)
		return nil, fmt.Errorf("failed to load vendors: %w", err)
	}

	var opts []ordering.Option
	if s.insurances != nil {
		plans, err := s.insurances.List(ctx)
		if err != nil {
			observability.RecordError(span, err)
			return nil, fmt.Errorf("failed to load insurance plans: %w", err)
		}
		opts = append(opts, ordering.WithInsurances(plans))
	}

	start := time.Now()
	plan := ordering.Recommend(appointments, vendors, filter, opts...)
	elapsed := time.Since(start)

	observability.RecordPlanMetric(ctx, s.metrics, string(filter.Kind), len(plan.Recommendations), len(plan.Unpriced), elapsed)
	observability.SetSpanAttributes(span,
		attribute.String("ordering.filter", string(filter.Kind)),
		attribute.Int("ordering.recommendations", len(plan.Recommendations)),
		attribute.Int("ordering.total_quantity", plan.Summary.TotalQuantity),
	)

	logger := observability.LoggerFromContext(ctx)
	if len(plan.Unpriced) > 0 {
		logger.Warn().
			Strs("isotopes", plan.Unpriced).
			Msg("confirmed demand has no vendor price; isotopes left out of the order")
	}
	logger.Info().
		Str("filter", filter.Label()).
		Int("recommendations", len(plan.Recommendations)).
		Int("total_quantity", plan.Summary.TotalQuantity).
		Float64("total_cost", plan.Summary.TotalCost).
		Bool("no_appointments", plan.NoAppointments).
		Dur("elapsed", elapsed).
		Msg("order plan calculated")

	return &plan, nil
}

// ExportPlan calculates the order plan and writes its workbook, returning the file name
func (s *OrderService) ExportPlan(ctx context.Context, filter entities.DateFilter, w io.Writer) (string, error) {
	if s.exporter == nil {
		return "", apperrors.NewInternalError("report exporter not configured", nil)
	}

	plan, err := s.CalculatePlan(ctx, filter)
	if err != nil {
		return "", err
	}
	return s.WritePlan(ctx, plan, w)
}

// WritePlan writes the workbook of an already calculated plan and returns its file name
func (s *OrderService) WritePlan(ctx context.Context, plan *entities.OrderPlan, w io.Writer) (string, error) {
	if s.exporter == nil {
		return "", apperrors.NewInternalError("report exporter not configured", nil)
	}
	if plan == nil {
		return "", apperrors.NewValidationError("order plan is required")
	}

	if err := s.exporter.WriteOrderReport(w, plan); err != nil {
		return "", apperrors.NewInternalError("failed to export order report", err)
	}
	observability.RecordExport(ctx, s.metrics, "orders")

	return s.exporter.OrderReportFilename(), nil
}

// NormalizeDateFilter defaults an empty kind to all dates and validates the
// dates a filter needs. A range missing either bound is kept as is and
// matches every date.
func NormalizeDateFilter(f entities.DateFilter) (entities.DateFilter, error) {
	switch f.Kind {
	case "", entities.DateFilterAll:
		return entities.AllDates(), nil
	case entities.DateFilterSingle:
		if f.Date == "" {
			return f, apperrors.NewValidationError("date is required for a single-date filter")
		}
		if err := validateDate("date", f.Date); err != nil {
			return f, err
		}
		return entities.SingleDate(f.Date), nil
	case entities.DateFilterRange:
		for name, value := range map[string]string{"start": f.Start, "end": f.End} {
			if value == "" {
				continue
			}
			if err := validateDate(name, value); err != nil {
				return f, err
			}
		}
		return entities.DateRange(f.Start, f.End), nil
	default:
		return f, apperrors.NewValidationError(fmt.Sprintf("unknown date filter %q", f.Kind))
	}
}

func validateDate(field, value string) error {
	if _, err := time.Parse(entities.DateLayout, value); err != nil {
		return apperrors.NewValidationError(fmt.Sprintf("%s must be a YYYY-MM-DD date", field))
	}
	return nil
}
