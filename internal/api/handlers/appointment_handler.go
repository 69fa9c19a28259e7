package handlers

import (
	"bytes"
	"context"
	"io"
	"net/http"

	"github.com/zatekoja/doseordering/internal/domain/entities"
	"github.com/zatekoja/doseordering/internal/domain/repositories"
)

// AppointmentService defines the interface for schedule operations
type AppointmentService interface {
	CreateAppointment(ctx context.Context, appointment *entities.Appointment) error
	GetAppointment(ctx context.Context, id string) (*entities.Appointment, error)
	ListAppointments(ctx context.Context, filter repositories.AppointmentFilter) ([]*entities.Appointment, error)
	UpdateAppointment(ctx context.Context, appointment *entities.Appointment) error
	UpdateStatus(ctx context.Context, id string, status entities.AppointmentStatus) (*entities.Appointment, error)
	DeleteAppointment(ctx context.Context, id string) error
	Summary(ctx context.Context) (*entities.ScheduleSummary, error)
	ExportSchedule(ctx context.Context, filter repositories.AppointmentFilter, w io.Writer) (string, error)
}

// AppointmentHandler handles appointment requests
type AppointmentHandler struct {
	service AppointmentService
}

// NewAppointmentHandler creates a new appointment handler
func NewAppointmentHandler(service AppointmentService) *AppointmentHandler {
	return &AppointmentHandler{
		service: service,
	}
}

func appointmentFilterFromQuery(r *http.Request) repositories.AppointmentFilter {
	q := r.URL.Query()
	filter := repositories.AppointmentFilter{
		Status:      entities.AppointmentStatus(q.Get("status")),
		Substance:   q.Get("isotope"),
		Insurance:   q.Get("insurance"),
		PatientName: q.Get("patient"),
	}
	if q.Get("range") != "" || q.Get("date") != "" {
		dates := dateFilterFromQuery(r)
		filter.Dates = &dates
	}
	return filter
}

// ListAppointments handles GET /api/appointments
func (h *AppointmentHandler) ListAppointments(w http.ResponseWriter, r *http.Request) {
	appointments, err := h.service.ListAppointments(r.Context(), appointmentFilterFromQuery(r))
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"appointments": appointments,
		"count":        len(appointments),
	})
}

// GetSummary handles GET /api/appointments/summary
func (h *AppointmentHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.service.Summary(r.Context())
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, summary)
}

// ExportSchedule handles GET /api/appointments/export
func (h *AppointmentHandler) ExportSchedule(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	name, err := h.service.ExportSchedule(r.Context(), appointmentFilterFromQuery(r), &buf)
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}

	writeAttachment(w, name, buf.Bytes())
}

// GetAppointment handles GET /api/appointments/{id}
func (h *AppointmentHandler) GetAppointment(w http.ResponseWriter, r *http.Request) {
	appointment, err := h.service.GetAppointment(r.Context(), r.PathValue("id"))
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, appointment)
}

// CreateAppointment handles POST /api/appointments
func (h *AppointmentHandler) CreateAppointment(w http.ResponseWriter, r *http.Request) {
	var appointment entities.Appointment
	if err := decodeJSON(r, &appointment); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	if err := h.service.CreateAppointment(r.Context(), &appointment); err != nil {
		respondWithServiceError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, appointment)
}

// UpdateAppointment handles PUT /api/appointments/{id}
func (h *AppointmentHandler) UpdateAppointment(w http.ResponseWriter, r *http.Request) {
	var appointment entities.Appointment
	if err := decodeJSON(r, &appointment); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}
	appointment.ID = r.PathValue("id")

	if err := h.service.UpdateAppointment(r.Context(), &appointment); err != nil {
		respondWithServiceError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, appointment)
}

// UpdateStatus handles PATCH /api/appointments/{id}/status
func (h *AppointmentHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Status entities.AppointmentStatus `json:"status"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	appointment, err := h.service.UpdateStatus(r.Context(), r.PathValue("id"), req.Status)
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, appointment)
}

// DeleteAppointment handles DELETE /api/appointments/{id}
func (h *AppointmentHandler) DeleteAppointment(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteAppointment(r.Context(), r.PathValue("id")); err != nil {
		respondWithServiceError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
