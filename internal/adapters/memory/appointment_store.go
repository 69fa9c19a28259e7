package memory

import (
	"context"

	"github.com/zatekoja/doseordering/internal/domain/entities"
	"github.com/zatekoja/doseordering/internal/domain/repositories"
)

// AppointmentStore implements the AppointmentRepository interface in memory
type AppointmentStore struct {
	store *orderedStore[entities.Appointment]
}

// NewAppointmentStore creates an empty schedule
func NewAppointmentStore() *AppointmentStore {
	return &AppointmentStore{
		store: newOrderedStore("appointment", cloneAppointment),
	}
}

var _ repositories.AppointmentRepository = (*AppointmentStore)(nil)

func (s *AppointmentStore) Create(ctx context.Context, appointment *entities.Appointment) error {
	return s.store.create(appointment.ID, appointment)
}

func (s *AppointmentStore) GetByID(ctx context.Context, id string) (*entities.Appointment, error) {
	return s.store.get(id)
}

func (s *AppointmentStore) Update(ctx context.Context, appointment *entities.Appointment) error {
	return s.store.update(appointment.ID, appointment)
}

func (s *AppointmentStore) Delete(ctx context.Context, id string) error {
	return s.store.delete(id)
}

func (s *AppointmentStore) List(ctx context.Context, filter repositories.AppointmentFilter) ([]*entities.Appointment, error) {
	return s.store.list(filter.Match), nil
}

func cloneAppointment(a *entities.Appointment) *entities.Appointment {
	c := *a
	if a.PatientID != nil {
		id := *a.PatientID
		c.PatientID = &id
	}
	return &c
}
