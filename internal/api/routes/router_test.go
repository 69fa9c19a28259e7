package routes_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zatekoja/doseordering/internal/adapters/export"
	"github.com/zatekoja/doseordering/internal/adapters/memory"
	"github.com/zatekoja/doseordering/internal/adapters/seed"
	"github.com/zatekoja/doseordering/internal/api/handlers"
	"github.com/zatekoja/doseordering/internal/api/routes"
	"github.com/zatekoja/doseordering/internal/application/compliance"
	"github.com/zatekoja/doseordering/internal/application/services"
	"github.com/zatekoja/doseordering/internal/domain/entities"
	"github.com/zatekoja/doseordering/internal/server"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	repos := seed.Repositories{
		Appointments: memory.NewAppointmentStore(),
		Vendors:      memory.NewVendorStore(),
		Insurances:   memory.NewInsuranceStore(),
		DoseCredits:  memory.NewDoseCreditStore(),
		Compliance:   memory.NewComplianceStores(),
	}
	catalog, err := seed.Default()
	require.NoError(t, err)
	require.NoError(t, catalog.Apply(context.Background(), repos))

	exporter := export.NewExporter()
	router := routes.NewRouter(
		handlers.NewOrderHandler(services.NewOrderService(repos.Appointments, repos.Vendors, repos.Insurances, exporter, nil)),
		handlers.NewAppointmentHandler(services.NewAppointmentService(repos.Appointments, exporter, nil)),
		handlers.NewVendorHandler(services.NewVendorService(repos.Vendors, exporter, nil)),
		handlers.NewInsuranceHandler(services.NewInsuranceService(repos.Insurances)),
		handlers.NewDoseCreditHandler(services.NewDoseCreditService(repos.DoseCredits, exporter, nil)),
		server.RegisterHandlers(compliance.NewServices(repos.Compliance, exporter, nil)),
		nil,
	)

	server := httptest.NewServer(router.SetupRoutes())
	t.Cleanup(server.Close)
	return server
}

func postPlan(t *testing.T, server *httptest.Server, body string) entities.OrderPlan {
	t.Helper()
	resp, err := http.Post(server.URL+"/api/orders/recommendations", "application/json", bytes.NewBufferString(body))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var plan entities.OrderPlan
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&plan))
	return plan
}

func TestRouter_Health(t *testing.T) {
	server := newTestServer(t)

	resp, err := http.Get(server.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRouter_Recommendations(t *testing.T) {
	server := newTestServer(t)

	t.Run("all dates over the demo schedule", func(t *testing.T) {
		plan := postPlan(t, server, `{"range":"all"}`)

		require.NotEmpty(t, plan.Recommendations)
		assert.False(t, plan.NoAppointments)
		for i := 1; i < len(plan.Recommendations); i++ {
			assert.GreaterOrEqual(t, plan.Recommendations[i-1].Quantity, plan.Recommendations[i].Quantity)
		}
		for _, rec := range plan.Recommendations {
			assert.Equal(t, rec.UnitPrice*float64(rec.Quantity), rec.TotalCost)
		}
	})

	t.Run("date with nothing booked", func(t *testing.T) {
		plan := postPlan(t, server, `{"range":"single","date":"1999-01-01"}`)

		assert.True(t, plan.NoAppointments)
		assert.Empty(t, plan.Recommendations)
	})

	t.Run("invalid date", func(t *testing.T) {
		resp, err := http.Post(server.URL+"/api/orders/recommendations", "application/json", bytes.NewBufferString(`{"range":"single","date":"someday"}`))
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestRouter_ConfirmingAppointmentChangesPlan(t *testing.T) {
	server := newTestServer(t)

	before := postPlan(t, server, `{}`)

	body := `{"patient_name":"New Patient","date":"2030-01-15","isotope":"F18 FDG (Fluorodeoxyglucose)","insurance":"Medicare","status":"Pending Auth"}`
	resp, err := http.Post(server.URL+"/api/appointments", "application/json", bytes.NewBufferString(body))
	require.NoError(t, err)
	var created entities.Appointment
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&created))
	resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	req, err := http.NewRequest(http.MethodPatch, server.URL+"/api/appointments/"+created.ID+"/status", bytes.NewBufferString(`{"status":"Confirmed"}`))
	require.NoError(t, err)
	resp, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	after := postPlan(t, server, `{}`)
	assert.Equal(t, before.Summary.ConfirmedAppointments+1, after.Summary.ConfirmedAppointments)

	single := postPlan(t, server, `{"range":"single","date":"2030-01-15"}`)
	require.Len(t, single.Recommendations, 1)
	assert.Equal(t, 1, single.Recommendations[0].Quantity)
}

func TestRouter_OrderExport(t *testing.T) {
	server := newTestServer(t)

	resp, err := http.Get(server.URL + "/api/orders/export?range=all")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, export.ContentType, resp.Header.Get("Content-Type"))
	assert.Equal(t, "no-store", resp.Header.Get("Cache-Control"))
}

func TestRouter_UnknownVendor(t *testing.T) {
	server := newTestServer(t)

	resp, err := http.Get(server.URL + "/api/vendors/does-not-exist")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func getJSON(t *testing.T, url string, v interface{}) {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, json.NewDecoder(resp.Body).Decode(v))
}

func TestRouter_AppointmentSummaryAndFilters(t *testing.T) {
	server := newTestServer(t)

	var summary entities.ScheduleSummary
	getJSON(t, server.URL+"/api/appointments/summary", &summary)
	assert.Equal(t, 32, summary.Total)
	assert.Equal(t, summary.Total, summary.Confirmed+summary.PendingAuthorization+summary.Scheduled+summary.Canceled)
	assert.Contains(t, summary.Insurances, "Medicare")

	var list struct {
		Appointments []entities.Appointment `json:"appointments"`
	}
	getJSON(t, server.URL+"/api/appointments?insurance=Medicare", &list)
	require.NotEmpty(t, list.Appointments)
	for _, a := range list.Appointments {
		assert.Equal(t, "Medicare", a.Insurance)
	}

	getJSON(t, server.URL+"/api/appointments?patient=john+doe", &list)
	require.NotEmpty(t, list.Appointments)
	for _, a := range list.Appointments {
		assert.Contains(t, strings.ToLower(a.PatientName), "john doe")
	}
}

func TestRouter_ReferenceExports(t *testing.T) {
	server := newTestServer(t)

	for path, prefix := range map[string]string{
		"/api/appointments/export?status=Confirmed": "schedule-",
		"/api/vendors/export":                       "vendor-management-",
		"/api/regulatory/waste-bins/export":         "waste-management-",
	} {
		t.Run(path, func(t *testing.T) {
			resp, err := http.Get(server.URL + path)
			require.NoError(t, err)
			defer resp.Body.Close()

			require.Equal(t, http.StatusOK, resp.StatusCode)
			assert.Equal(t, export.ContentType, resp.Header.Get("Content-Type"))
			assert.Contains(t, resp.Header.Get("Content-Disposition"), prefix)
		})
	}
}

func TestRouter_RegulatoryRegisters(t *testing.T) {
	server := newTestServer(t)

	var surveys struct {
		Records []entities.DailyAreaSurvey `json:"records"`
		Count   int                       `json:"count"`
	}
	getJSON(t, server.URL+"/api/regulatory/daily-surveys", &surveys)
	assert.Equal(t, 3, surveys.Count)

	var summary entities.RegisterSummary
	getJSON(t, server.URL+"/api/regulatory/waste-bins/summary", &summary)
	assert.Equal(t, 3, summary.Total)
	assert.Equal(t, 1, summary.Attention)

	t.Run("dosimeter filing replaces the technologist's record", func(t *testing.T) {
		body := `{"technologist":"MK","monthly_dose":20,"quarterly_dose":60,"yearly_dose":210}`
		resp, err := http.Post(server.URL+"/api/regulatory/dosimeters", "application/json", bytes.NewBufferString(body))
		require.NoError(t, err)
		var filed entities.Dosimeter
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&filed))
		resp.Body.Close()
		require.Equal(t, http.StatusCreated, resp.StatusCode)
		assert.Equal(t, "DM001", filed.ID)
		assert.Equal(t, entities.ComplianceRed, filed.Status)

		var dosimeters struct {
			Count int `json:"count"`
		}
		getJSON(t, server.URL+"/api/regulatory/dosimeters", &dosimeters)
		assert.Equal(t, 4, dosimeters.Count)
	})

	t.Run("unknown record", func(t *testing.T) {
		resp, err := http.Get(server.URL + "/api/regulatory/sealed-sources/SS999")
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}
