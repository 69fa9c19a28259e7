package memory

import (
	"context"

	"github.com/zatekoja/doseordering/internal/domain/entities"
	"github.com/zatekoja/doseordering/internal/domain/repositories"
)

// RecordStore implements RecordRepository in memory for flat record types.
type RecordStore[T any] struct {
	store *orderedStore[T]
	id    func(*T) string
}

// NewRecordStore creates an empty register. id reads a record's identifier.
func NewRecordStore[T any](kind string, id func(*T) string) *RecordStore[T] {
	return &RecordStore[T]{
		store: newOrderedStore(kind, shallowClone[T]),
		id:    id,
	}
}

var _ repositories.RecordRepository[entities.ActionItem] = (*RecordStore[entities.ActionItem])(nil)

func (s *RecordStore[T]) Create(ctx context.Context, record *T) error {
	return s.store.create(s.id(record), record)
}

func (s *RecordStore[T]) GetByID(ctx context.Context, id string) (*T, error) {
	return s.store.get(id)
}

func (s *RecordStore[T]) Update(ctx context.Context, record *T) error {
	return s.store.update(s.id(record), record)
}

func (s *RecordStore[T]) Delete(ctx context.Context, id string) error {
	return s.store.delete(id)
}

func (s *RecordStore[T]) List(ctx context.Context) ([]*T, error) {
	return s.store.list(nil), nil
}

// shallowClone copies records without reference fields
func shallowClone[T any](v *T) *T {
	c := *v
	return &c
}

// NewComplianceStores creates an empty store for every compliance register
func NewComplianceStores() repositories.ComplianceRepositories {
	return repositories.ComplianceRepositories{
		ActionItems:   NewRecordStore("action item", func(r *entities.ActionItem) string { return r.ID }),
		DailySurveys:  NewRecordStore("daily area survey", func(r *entities.DailyAreaSurvey) string { return r.ID }),
		WeeklySurveys: NewRecordStore("weekly area survey", func(r *entities.WeeklyAreaSurvey) string { return r.ID }),
		Dosimeters:    NewRecordStore("dosimeter", func(r *entities.Dosimeter) string { return r.ID }),
		InstrumentQC:  NewRecordStore("instrument qc record", func(r *entities.InstrumentQC) string { return r.ID }),
		PatientDoses:  NewRecordStore("patient dose", func(r *entities.PatientDose) string { return r.ID }),
		SealedSources: NewRecordStore("sealed source", func(r *entities.SealedSource) string { return r.ID }),
		TracerMoves:   NewRecordStore("tracer movement", func(r *entities.TracerMovement) string { return r.ID }),
		WasteBins:     NewRecordStore("waste bin", func(r *entities.WasteBin) string { return r.ID }),
	}
}
