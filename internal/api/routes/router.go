package routes

import (
	"net/http"

	"github.com/zatekoja/doseordering/internal/api/handlers"
	"github.com/zatekoja/doseordering/internal/api/middleware"
	"github.com/zatekoja/doseordering/internal/infrastructure/observability"
)

// Router holds all route handlers
type Router struct {
	mux *http.ServeMux

	orderHandler       *handlers.OrderHandler
	appointmentHandler *handlers.AppointmentHandler
	vendorHandler      *handlers.VendorHandler
	insuranceHandler   *handlers.InsuranceHandler
	doseCreditHandler  *handlers.DoseCreditHandler
	registerHandlers   []handlers.RegisterEndpoints

	metrics *observability.Metrics
}

// NewRouter creates a new router
func NewRouter(
	orderHandler *handlers.OrderHandler,
	appointmentHandler *handlers.AppointmentHandler,
	vendorHandler *handlers.VendorHandler,
	insuranceHandler *handlers.InsuranceHandler,
	doseCreditHandler *handlers.DoseCreditHandler,
	registerHandlers []handlers.RegisterEndpoints,
	metrics *observability.Metrics,
) *Router {
	return &Router{
		mux: http.NewServeMux(),

		orderHandler:       orderHandler,
		appointmentHandler: appointmentHandler,
		vendorHandler:      vendorHandler,
		insuranceHandler:   insuranceHandler,
		doseCreditHandler:  doseCreditHandler,
		registerHandlers:   registerHandlers,

		metrics: metrics,
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes() http.Handler {
	// Health check endpoint
	r.mux.HandleFunc("GET /health", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			return
		}
	})

	// Order endpoints
	r.mux.HandleFunc("POST /api/orders/recommendations", r.orderHandler.CalculateRecommendations)
	r.mux.HandleFunc("GET /api/orders/export", r.orderHandler.ExportRecommendations)

	// Appointment endpoints
	r.mux.HandleFunc("GET /api/appointments", r.appointmentHandler.ListAppointments)
	r.mux.HandleFunc("POST /api/appointments", r.appointmentHandler.CreateAppointment)
	r.mux.HandleFunc("GET /api/appointments/summary", r.appointmentHandler.GetSummary)
	r.mux.HandleFunc("GET /api/appointments/export", r.appointmentHandler.ExportSchedule)
	r.mux.HandleFunc("GET /api/appointments/{id}", r.appointmentHandler.GetAppointment)
	r.mux.HandleFunc("PUT /api/appointments/{id}", r.appointmentHandler.UpdateAppointment)
	r.mux.HandleFunc("PATCH /api/appointments/{id}/status", r.appointmentHandler.UpdateStatus)
	r.mux.HandleFunc("DELETE /api/appointments/{id}", r.appointmentHandler.DeleteAppointment)

	// Vendor endpoints
	r.mux.HandleFunc("GET /api/vendors", r.vendorHandler.ListVendors)
	r.mux.HandleFunc("POST /api/vendors", r.vendorHandler.CreateVendor)
	r.mux.HandleFunc("GET /api/vendors/export", r.vendorHandler.ExportVendors)
	r.mux.HandleFunc("GET /api/vendors/{id}", r.vendorHandler.GetVendor)
	r.mux.HandleFunc("PUT /api/vendors/{id}", r.vendorHandler.UpdateVendor)
	r.mux.HandleFunc("DELETE /api/vendors/{id}", r.vendorHandler.DeleteVendor)

	// Insurance endpoints
	r.mux.HandleFunc("GET /api/insurances", r.insuranceHandler.ListPlans)
	r.mux.HandleFunc("POST /api/insurances", r.insuranceHandler.CreatePlan)
	r.mux.HandleFunc("GET /api/insurances/summary", r.insuranceHandler.GetSummary)
	r.mux.HandleFunc("GET /api/insurances/{id}", r.insuranceHandler.GetPlan)
	r.mux.HandleFunc("PUT /api/insurances/{id}", r.insuranceHandler.UpdatePlan)
	r.mux.HandleFunc("DELETE /api/insurances/{id}", r.insuranceHandler.DeletePlan)

	// Dose credit endpoints
	r.mux.HandleFunc("GET /api/dose-credits", r.doseCreditHandler.ListCredits)
	r.mux.HandleFunc("POST /api/dose-credits", r.doseCreditHandler.CreateCredit)
	r.mux.HandleFunc("GET /api/dose-credits/summary", r.doseCreditHandler.GetSummary)
	r.mux.HandleFunc("GET /api/dose-credits/export", r.doseCreditHandler.ExportCredits)
	r.mux.HandleFunc("PUT /api/dose-credits/{id}", r.doseCreditHandler.UpdateCredit)
	r.mux.HandleFunc("DELETE /api/dose-credits/{id}", r.doseCreditHandler.DeleteCredit)

	// Regulatory register endpoints
	for _, h := range r.registerHandlers {
		r.registerRegulatory(h)
	}

	// Apply middleware in reverse order (last middleware wraps first)
	var handler http.Handler = r.mux
	handler = middleware.LoggingMiddleware(handler)
	handler = middleware.ObservabilityMiddleware(r.metrics)(handler)
	handler = middleware.ResponseOptimization(handler)

	// CORS wraps everything so preflight requests short-circuit early
	handler = middleware.CORSMiddleware(handler)

	return handler
}

func (r *Router) registerRegulatory(h handlers.RegisterEndpoints) {
	base := "/api/regulatory/" + h.Path()
	r.mux.HandleFunc("GET "+base, h.List)
	r.mux.HandleFunc("POST "+base, h.Create)
	r.mux.HandleFunc("GET "+base+"/summary", h.GetSummary)
	r.mux.HandleFunc("GET "+base+"/export", h.Export)
	r.mux.HandleFunc("GET "+base+"/{id}", h.Get)
	r.mux.HandleFunc("PUT "+base+"/{id}", h.Update)
	r.mux.HandleFunc("DELETE "+base+"/{id}", h.Delete)
}
