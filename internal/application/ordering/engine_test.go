package ordering

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zatekoja/doseordering/internal/domain/entities"
)

func appt(id, substance, date string, status entities.AppointmentStatus) *entities.Appointment {
	return &entities.Appointment{
		ID:          id,
		PatientName: "Patient " + id,
		Date:        date,
		ScanTime:    "09:00 AM",
		Substance:   substance,
		Insurance:   "Blue Cross",
		Status:      status,
	}
}

func vendor(name string, pricing map[string]float64) *entities.Vendor {
	return &entities.Vendor{ID: name, Name: name, Pricing: pricing}
}

func TestRecommend_ScenarioA_CheapestVendor(t *testing.T) {
	appointments := []*entities.Appointment{
		appt("1", "FDG", "2025-11-10", entities.AppointmentStatusConfirmed),
		appt("2", "FDG", "2025-11-10", entities.AppointmentStatusConfirmed),
		appt("3", "FDG", "2025-11-10", entities.AppointmentStatusConfirmed),
	}
	vendors := []*entities.Vendor{
		vendor("V1", map[string]float64{"FDG": 500}),
		vendor("V2", map[string]float64{"FDG": 480}),
	}

	plan := Recommend(appointments, vendors, entities.AllDates())

	require.Len(t, plan.Recommendations, 1)
	rec := plan.Recommendations[0]
	assert.Equal(t, "FDG", rec.Substance)
	assert.Equal(t, 3, rec.Quantity)
	assert.Equal(t, "V2", rec.Vendor)
	assert.Equal(t, 480.0, rec.UnitPrice)
	assert.Equal(t, 1440.0, rec.TotalCost)
	assert.False(t, plan.NoAppointments)
	assert.Empty(t, plan.Notice)
}

func TestRecommend_ScenarioB_NoConfirmedAppointments(t *testing.T) {
	appointments := []*entities.Appointment{
		appt("1", "FDG", "2025-11-10", entities.AppointmentStatusPendingAuthorization),
	}
	vendors := []*entities.Vendor{vendor("V1", map[string]float64{"FDG": 500})}

	plan := Recommend(appointments, vendors, entities.AllDates())

	assert.Empty(t, plan.Recommendations)
	assert.True(t, plan.NoAppointments)
	assert.Equal(t, NoAppointmentsNotice, plan.Notice)
	assert.Equal(t, 0, plan.Summary.ConfirmedAppointments)
}

func TestRecommend_ScenarioC_UnpricedSubstanceOmitted(t *testing.T) {
	appointments := []*entities.Appointment{
		appt("1", "NaF", "2025-11-10", entities.AppointmentStatusConfirmed),
	}
	vendors := []*entities.Vendor{vendor("V1", map[string]float64{"FDG": 500})}

	plan := Recommend(appointments, vendors, entities.AllDates())

	assert.Empty(t, plan.Recommendations)
	assert.False(t, plan.NoAppointments)
	assert.Equal(t, []string{"NaF"}, plan.Unpriced)
}

func TestRecommend_ScenarioD_RangeExcludesLaterDates(t *testing.T) {
	appointments := []*entities.Appointment{
		appt("1", "FDG", "2025-11-01", entities.AppointmentStatusConfirmed),
		appt("2", "FDG", "2025-11-10", entities.AppointmentStatusConfirmed),
		appt("3", "FDG", "2025-11-15", entities.AppointmentStatusConfirmed),
	}
	vendors := []*entities.Vendor{vendor("V1", map[string]float64{"FDG": 500})}

	plan := Recommend(appointments, vendors, entities.DateRange("2025-11-01", "2025-11-10"))

	require.Len(t, plan.Recommendations, 1)
	assert.Equal(t, 2, plan.Recommendations[0].Quantity)
	assert.Equal(t, 3, plan.Summary.ConfirmedAppointments)
}

func TestRecommend_SingleDate(t *testing.T) {
	appointments := []*entities.Appointment{
		appt("1", "FDG", "2025-11-10", entities.AppointmentStatusConfirmed),
		appt("2", "FDG", "2025-11-11", entities.AppointmentStatusConfirmed),
	}
	vendors := []*entities.Vendor{vendor("V1", map[string]float64{"FDG": 500})}

	plan := Recommend(appointments, vendors, entities.SingleDate("2025-11-11"))
	require.Len(t, plan.Recommendations, 1)
	assert.Equal(t, 1, plan.Recommendations[0].Quantity)

	plan = Recommend(appointments, vendors, entities.SingleDate("2025-11-12"))
	assert.True(t, plan.NoAppointments)
}

func TestRecommend_RangeMissingBoundKeepsEverything(t *testing.T) {
	appointments := []*entities.Appointment{
		appt("1", "FDG", "2025-10-01", entities.AppointmentStatusConfirmed),
		appt("2", "FDG", "2025-12-01", entities.AppointmentStatusConfirmed),
	}
	vendors := []*entities.Vendor{vendor("V1", map[string]float64{"FDG": 500})}

	plan := Recommend(appointments, vendors, entities.DateRange("2025-11-01", ""))

	require.Len(t, plan.Recommendations, 1)
	assert.Equal(t, 2, plan.Recommendations[0].Quantity)
}

func TestRecommend_GroupingAndSortOrder(t *testing.T) {
	appointments := []*entities.Appointment{
		appt("1", "NaF", "2025-11-10", entities.AppointmentStatusConfirmed),
		appt("2", "Ga68", "2025-11-10", entities.AppointmentStatusConfirmed),
		appt("3", "FDG", "2025-11-10", entities.AppointmentStatusConfirmed),
		appt("4", "FDG", "2025-11-10", entities.AppointmentStatusConfirmed),
		appt("5", "Ga68", "2025-11-10", entities.AppointmentStatusCanceled),
		appt("6", "Rb82", "2025-11-10", entities.AppointmentStatusScheduled),
	}
	vendors := []*entities.Vendor{
		vendor("V1", map[string]float64{"NaF": 450, "Ga68": 600, "FDG": 500, "Rb82": 480}),
	}

	plan := Recommend(appointments, vendors, entities.AllDates())

	require.Len(t, plan.Recommendations, 3)
	// FDG has the most demand; NaF and Ga68 tie and keep first-seen order.
	assert.Equal(t, "FDG", plan.Recommendations[0].Substance)
	assert.Equal(t, 2, plan.Recommendations[0].Quantity)
	assert.Equal(t, "NaF", plan.Recommendations[1].Substance)
	assert.Equal(t, "Ga68", plan.Recommendations[2].Substance)
	assert.Equal(t, 1, plan.Recommendations[2].Quantity)

	for _, rec := range plan.Recommendations {
		assert.NotEqual(t, "Rb82", rec.Substance)
	}
	assert.Equal(t, 4, plan.Summary.TotalQuantity)
	assert.Equal(t, 1000.0+450+600, plan.Summary.TotalCost)
}

func TestRecommend_TieKeepsFirstVendor(t *testing.T) {
	appointments := []*entities.Appointment{
		appt("1", "FDG", "2025-11-10", entities.AppointmentStatusConfirmed),
	}
	vendors := []*entities.Vendor{
		vendor("Cardinal Health", map[string]float64{"FDG": 495}),
		vendor("NorthStar", map[string]float64{"FDG": 495}),
		vendor("PetNet", map[string]float64{"FDG": 510}),
	}

	plan := Recommend(appointments, vendors, entities.AllDates())
	require.Len(t, plan.Recommendations, 1)
	assert.Equal(t, "Cardinal Health", plan.Recommendations[0].Vendor)

	reversed := []*entities.Vendor{vendors[1], vendors[0], vendors[2]}
	plan = Recommend(appointments, reversed, entities.AllDates())
	assert.Equal(t, "NorthStar", plan.Recommendations[0].Vendor)
}

func TestRecommend_ZeroPriceIsAListedPrice(t *testing.T) {
	appointments := []*entities.Appointment{
		appt("1", "FDG", "2025-11-10", entities.AppointmentStatusConfirmed),
	}
	vendors := []*entities.Vendor{
		vendor("V1", map[string]float64{"FDG": 500}),
		vendor("Sample", map[string]float64{"FDG": 0}),
	}

	plan := Recommend(appointments, vendors, entities.AllDates())

	require.Len(t, plan.Recommendations, 1)
	assert.Equal(t, "Sample", plan.Recommendations[0].Vendor)
	assert.Equal(t, 0.0, plan.Recommendations[0].TotalCost)
}

func TestRecommend_CheapestVendorProperty(t *testing.T) {
	appointments := []*entities.Appointment{
		appt("1", "FDG", "2025-11-10", entities.AppointmentStatusConfirmed),
		appt("2", "NaF", "2025-11-10", entities.AppointmentStatusConfirmed),
		appt("3", "Rb82", "2025-11-10", entities.AppointmentStatusConfirmed),
	}
	vendors := []*entities.Vendor{
		vendor("Cardinal Health", map[string]float64{"FDG": 500, "NaF": 450}),
		vendor("Curium", map[string]float64{"Rb82": 480, "FDG": 500}),
		vendor("NorthStar", map[string]float64{"Rb82": 475, "NaF": 445, "FDG": 495}),
		vendor("Lantheus", map[string]float64{"NaF": 450, "FDG": 505}),
	}

	plan := Recommend(appointments, vendors, entities.AllDates())
	require.Len(t, plan.Recommendations, 3)

	for _, rec := range plan.Recommendations {
		for _, v := range vendors {
			if p, ok := v.PriceFor(rec.Substance); ok {
				assert.LessOrEqual(t, rec.UnitPrice, p, "%s from %s", rec.Substance, v.Name)
			}
		}
		assert.Equal(t, rec.UnitPrice*float64(rec.Quantity), rec.TotalCost)
		assert.Equal(t, "NorthStar", rec.Vendor)
	}
}

func TestRecommend_ReimbursementEnrichment(t *testing.T) {
	a1 := appt("1", "FDG", "2025-11-10", entities.AppointmentStatusConfirmed)
	a2 := appt("2", "FDG", "2025-11-10", entities.AppointmentStatusConfirmed)
	a2.Insurance = "Medicare"
	a3 := appt("3", "FDG", "2025-11-10", entities.AppointmentStatusConfirmed)
	a3.Insurance = "Unknown Payer"
	vendors := []*entities.Vendor{vendor("V1", map[string]float64{"FDG": 100})}
	plans := []*entities.InsurancePlan{
		{Name: "Blue Cross", ReimbursementPercentage: 92},
		{Name: "Medicare", ReimbursementPercentage: 80},
	}

	plan := Recommend([]*entities.Appointment{a1, a2, a3}, vendors, entities.AllDates(), WithInsurances(plans))

	require.Len(t, plan.Recommendations, 1)
	rec := plan.Recommendations[0]
	assert.InDelta(t, (92.0+80.0+0.0)/3, rec.AvgReimbursement, 1e-9)
	assert.InDelta(t, (rec.AvgReimbursement/100)*300-300, rec.ProfitMargin, 1e-9)
	assert.InDelta(t, rec.ProfitMargin, plan.Summary.TotalProfitMargin, 1e-9)
}

func TestRecommend_WithoutInsurancesLeavesMarginZero(t *testing.T) {
	appointments := []*entities.Appointment{
		appt("1", "FDG", "2025-11-10", entities.AppointmentStatusConfirmed),
	}
	vendors := []*entities.Vendor{vendor("V1", map[string]float64{"FDG": 100})}

	plan := Recommend(appointments, vendors, entities.AllDates())

	require.Len(t, plan.Recommendations, 1)
	assert.Zero(t, plan.Recommendations[0].AvgReimbursement)
	assert.Zero(t, plan.Recommendations[0].ProfitMargin)
}

func TestRecommend_IsPure(t *testing.T) {
	appointments := []*entities.Appointment{
		appt("1", "NaF", "2025-11-12", entities.AppointmentStatusConfirmed),
		appt("2", "FDG", "2025-11-10", entities.AppointmentStatusConfirmed),
		appt("3", "FDG", "2025-11-11", entities.AppointmentStatusPendingAuthorization),
	}
	vendors := []*entities.Vendor{
		vendor("V1", map[string]float64{"FDG": 500, "NaF": 450}),
		vendor("V2", map[string]float64{"FDG": 480}),
	}

	apptSnapshot := make([]entities.Appointment, len(appointments))
	for i, a := range appointments {
		apptSnapshot[i] = *a
	}
	v1Pricing := map[string]float64{"FDG": 500, "NaF": 450}

	first := Recommend(appointments, vendors, entities.AllDates())
	second := Recommend(appointments, vendors, entities.AllDates())

	assert.Equal(t, first, second)
	for i, a := range appointments {
		assert.Equal(t, apptSnapshot[i], *a)
	}
	assert.Equal(t, v1Pricing, vendors[0].Pricing)
	assert.Len(t, appointments, 3)
}

func TestRecommend_NilEntriesIgnored(t *testing.T) {
	appointments := []*entities.Appointment{
		nil,
		appt("1", "FDG", "2025-11-10", entities.AppointmentStatusConfirmed),
	}
	vendors := []*entities.Vendor{nil, vendor("V1", map[string]float64{"FDG": 500})}

	plan := Recommend(appointments, vendors, entities.AllDates())

	require.Len(t, plan.Recommendations, 1)
	assert.Equal(t, "V1", plan.Recommendations[0].Vendor)
}
