package repositories

import (
	"context"
	"strings"

	"github.com/zatekoja/doseordering/internal/domain/entities"
)

// AppointmentRepository defines the interface for schedule data operations
type AppointmentRepository interface {
	// Create adds an appointment to the schedule
	Create(ctx context.Context, appointment *entities.Appointment) error

	// GetByID retrieves an appointment by ID
	GetByID(ctx context.Context, id string) (*entities.Appointment, error)

	// Update replaces an appointment
	Update(ctx context.Context, appointment *entities.Appointment) error

	// Delete removes an appointment
	Delete(ctx context.Context, id string) error

	// List retrieves appointments in schedule order
	List(ctx context.Context, filter AppointmentFilter) ([]*entities.Appointment, error)
}

// AppointmentFilter defines filters for listing appointments. PatientName
// matches any part of the name, ignoring case; the other fields match exactly.
type AppointmentFilter struct {
	Status      entities.AppointmentStatus
	Substance   string
	Insurance   string
	PatientName string
	Dates       *entities.DateFilter
}

// Match reports whether an appointment passes the filter
func (f AppointmentFilter) Match(a *entities.Appointment) bool {
	if f.Status != "" && a.Status != f.Status {
		return false
	}
	if f.Substance != "" && a.Substance != f.Substance {
		return false
	}
	if f.Insurance != "" && a.Insurance != f.Insurance {
		return false
	}
	if f.PatientName != "" && !strings.Contains(strings.ToLower(a.PatientName), strings.ToLower(f.PatientName)) {
		return false
	}
	if f.Dates != nil && !f.Dates.Matches(a.Date) {
		return false
	}
	return true
}
