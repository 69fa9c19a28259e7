package services_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/zatekoja/doseordering/internal/adapters/memory"
	"github.com/zatekoja/doseordering/internal/application/ordering"
	"github.com/zatekoja/doseordering/internal/application/services"
	"github.com/zatekoja/doseordering/internal/domain/entities"
	apperrors "github.com/zatekoja/doseordering/pkg/errors"
)

type MockReportExporter struct {
	mock.Mock
}

func (m *MockReportExporter) OrderReportFilename() string {
	return m.Called().String(0)
}

func (m *MockReportExporter) WriteOrderReport(w io.Writer, plan *entities.OrderPlan) error {
	args := m.Called(w, plan)
	return args.Error(0)
}

func (m *MockReportExporter) DoseCreditReportFilename() string {
	return m.Called().String(0)
}

func (m *MockReportExporter) WriteDoseCreditReport(w io.Writer, credits []*entities.DoseCredit, summary entities.DoseCreditSummary) error {
	args := m.Called(w, credits, summary)
	return args.Error(0)
}

func (m *MockReportExporter) ScheduleReportFilename() string {
	return m.Called().String(0)
}

func (m *MockReportExporter) WriteScheduleReport(w io.Writer, appointments []*entities.Appointment, summary entities.ScheduleSummary) error {
	args := m.Called(w, appointments, summary)
	return args.Error(0)
}

func (m *MockReportExporter) VendorReportFilename() string {
	return m.Called().String(0)
}

func (m *MockReportExporter) WriteVendorReport(w io.Writer, vendors []*entities.Vendor) error {
	args := m.Called(w, vendors)
	return args.Error(0)
}

func (m *MockReportExporter) RegisterReportFilename(prefix string) string {
	return m.Called(prefix).String(0)
}

func (m *MockReportExporter) WriteRegisterReport(w io.Writer, report *entities.RegisterReport) error {
	args := m.Called(w, report)
	return args.Error(0)
}

type orderFixture struct {
	appointments *memory.AppointmentStore
	vendors      *memory.VendorStore
	insurances   *memory.InsuranceStore
}

func newOrderFixture(t *testing.T) orderFixture {
	t.Helper()
	ctx := context.Background()
	f := orderFixture{
		appointments: memory.NewAppointmentStore(),
		vendors:      memory.NewVendorStore(),
		insurances:   memory.NewInsuranceStore(),
	}

	for _, a := range []*entities.Appointment{
		{ID: "SCH001", PatientName: "John Doe", Date: "2025-11-10", Substance: "FDG", Insurance: "Blue Cross", Status: entities.AppointmentStatusConfirmed},
		{ID: "SCH002", PatientName: "Jane Smith", Date: "2025-11-10", Substance: "Ga68", Insurance: "Aetna", Status: entities.AppointmentStatusPendingAuthorization},
		{ID: "SCH004", PatientName: "Emily Davis", Date: "2025-11-12", Substance: "NaF", Insurance: "Cigna", Status: entities.AppointmentStatusConfirmed},
		{ID: "SCH005", PatientName: "Michael Brown", Date: "2025-11-12", Substance: "FDG", Insurance: "Medicare", Status: entities.AppointmentStatusConfirmed},
		{ID: "SCH006", PatientName: "Sarah Wilson", Date: "2025-11-13", Substance: "Axumin", Insurance: "Humana", Status: entities.AppointmentStatusConfirmed},
	} {
		require.NoError(t, f.appointments.Create(ctx, a))
	}
	for _, v := range []*entities.Vendor{
		{ID: "V001", Name: "Cardinal Health", Pricing: map[string]float64{"FDG": 500, "NaF": 450}},
		{ID: "V007", Name: "NorthStar", Pricing: map[string]float64{"FDG": 495, "NaF": 445}},
	} {
		require.NoError(t, f.vendors.Create(ctx, v))
	}
	for _, p := range []*entities.InsurancePlan{
		{ID: "INS001", Name: "Blue Cross", ReimbursementPercentage: 92},
		{ID: "INS004", Name: "Cigna", ReimbursementPercentage: 90},
		{ID: "INS006", Name: "Medicare", ReimbursementPercentage: 80},
	} {
		require.NoError(t, f.insurances.Create(ctx, p))
	}
	return f
}

func TestOrderService_CalculatePlan(t *testing.T) {
	t.Run("uses live schedule, vendors and insurance", func(t *testing.T) {
		f := newOrderFixture(t)
		service := services.NewOrderService(f.appointments, f.vendors, f.insurances, nil, nil)

		plan, err := service.CalculatePlan(context.Background(), entities.AllDates())

		require.NoError(t, err)
		require.Len(t, plan.Recommendations, 2)
		fdg := plan.Recommendations[0]
		assert.Equal(t, "FDG", fdg.Substance)
		assert.Equal(t, 2, fdg.Quantity)
		assert.Equal(t, "NorthStar", fdg.Vendor)
		assert.Equal(t, 990.0, fdg.TotalCost)
		assert.InDelta(t, 86.0, fdg.AvgReimbursement, 1e-9)
		assert.Equal(t, []string{"Axumin"}, plan.Unpriced)
		assert.Equal(t, 4, plan.Summary.ConfirmedAppointments)
	})

	t.Run("single date", func(t *testing.T) {
		f := newOrderFixture(t)
		service := services.NewOrderService(f.appointments, f.vendors, f.insurances, nil, nil)

		plan, err := service.CalculatePlan(context.Background(), entities.SingleDate("2025-11-10"))

		require.NoError(t, err)
		require.Len(t, plan.Recommendations, 1)
		assert.Equal(t, 1, plan.Recommendations[0].Quantity)
	})

	t.Run("no confirmed appointments in range", func(t *testing.T) {
		f := newOrderFixture(t)
		service := services.NewOrderService(f.appointments, f.vendors, nil, nil, nil)

		plan, err := service.CalculatePlan(context.Background(), entities.DateRange("2025-12-01", "2025-12-31"))

		require.NoError(t, err)
		assert.True(t, plan.NoAppointments)
		assert.Equal(t, ordering.NoAppointmentsNotice, plan.Notice)
		assert.Empty(t, plan.Recommendations)
	})

	t.Run("empty kind means all dates", func(t *testing.T) {
		f := newOrderFixture(t)
		service := services.NewOrderService(f.appointments, f.vendors, nil, nil, nil)

		plan, err := service.CalculatePlan(context.Background(), entities.DateFilter{})

		require.NoError(t, err)
		assert.Equal(t, entities.DateFilterAll, plan.Filter.Kind)
		assert.Equal(t, 3, plan.Summary.TotalQuantity)
	})

	t.Run("rejects bad filters", func(t *testing.T) {
		f := newOrderFixture(t)
		service := services.NewOrderService(f.appointments, f.vendors, nil, nil, nil)

		for _, filter := range []entities.DateFilter{
			{Kind: entities.DateFilterSingle},
			{Kind: entities.DateFilterSingle, Date: "10/11/2025"},
			{Kind: entities.DateFilterRange, Start: "2025-11-01", End: "soon"},
			{Kind: "week"},
		} {
			_, err := service.CalculatePlan(context.Background(), filter)
			assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation), "filter %+v", filter)
		}
	})

	t.Run("does not modify stored data", func(t *testing.T) {
		f := newOrderFixture(t)
		service := services.NewOrderService(f.appointments, f.vendors, f.insurances, nil, nil)
		ctx := context.Background()

		first, err := service.CalculatePlan(ctx, entities.AllDates())
		require.NoError(t, err)
		second, err := service.CalculatePlan(ctx, entities.AllDates())
		require.NoError(t, err)

		assert.Equal(t, first, second)
		v, err := f.vendors.GetByID(ctx, "V001")
		require.NoError(t, err)
		assert.Equal(t, map[string]float64{"FDG": 500, "NaF": 450}, v.Pricing)
	})
}

func TestOrderService_ExportPlan(t *testing.T) {
	t.Run("writes report and returns file name", func(t *testing.T) {
		f := newOrderFixture(t)
		exporter := new(MockReportExporter)
		service := services.NewOrderService(f.appointments, f.vendors, f.insurances, exporter, nil)

		var buf bytes.Buffer
		exporter.On("WriteOrderReport", &buf, mock.MatchedBy(func(p *entities.OrderPlan) bool {
			return len(p.Recommendations) == 2
		})).Return(nil)
		exporter.On("OrderReportFilename").Return("dose-ordering-2025-11-09.xlsx")

		name, err := service.ExportPlan(context.Background(), entities.AllDates(), &buf)

		require.NoError(t, err)
		assert.Equal(t, "dose-ordering-2025-11-09.xlsx", name)
		exporter.AssertExpectations(t)
	})

	t.Run("wraps exporter failure", func(t *testing.T) {
		f := newOrderFixture(t)
		exporter := new(MockReportExporter)
		service := services.NewOrderService(f.appointments, f.vendors, nil, exporter, nil)

		exporter.On("WriteOrderReport", mock.Anything, mock.Anything).Return(errors.New("disk full"))

		_, err := service.ExportPlan(context.Background(), entities.AllDates(), io.Discard)

		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeInternal))
		assert.Contains(t, err.Error(), "disk full")
	})

	t.Run("requires exporter", func(t *testing.T) {
		f := newOrderFixture(t)
		service := services.NewOrderService(f.appointments, f.vendors, nil, nil, nil)

		_, err := service.ExportPlan(context.Background(), entities.AllDates(), io.Discard)

		assert.Error(t, err)
	})
}

func TestOrderService_WritePlan(t *testing.T) {
	t.Run("writes the given plan without recalculating", func(t *testing.T) {
		appointments := new(MockAppointmentRepository)
		exporter := new(MockReportExporter)
		service := services.NewOrderService(appointments, memory.NewVendorStore(), nil, exporter, nil)
		plan := &entities.OrderPlan{
			Filter: entities.SingleDate("2025-11-10"),
			Recommendations: []entities.OrderRecommendation{
				{Substance: "FDG", Quantity: 1, Vendor: "NorthStar", UnitPrice: 495, TotalCost: 495},
			},
		}

		var buf bytes.Buffer
		exporter.On("WriteOrderReport", &buf, mock.MatchedBy(func(p *entities.OrderPlan) bool {
			return p == plan
		})).Return(nil).Once()
		exporter.On("OrderReportFilename").Return("dose-ordering-2025-11-09.xlsx")

		name, err := service.WritePlan(context.Background(), plan, &buf)

		require.NoError(t, err)
		assert.Equal(t, "dose-ordering-2025-11-09.xlsx", name)
		exporter.AssertExpectations(t)
		appointments.AssertNotCalled(t, "List", mock.Anything, mock.Anything)
	})

	t.Run("rejects a missing plan", func(t *testing.T) {
		service := services.NewOrderService(nil, nil, nil, new(MockReportExporter), nil)

		_, err := service.WritePlan(context.Background(), nil, io.Discard)

		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation))
	})
}
