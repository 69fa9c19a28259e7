package repositories

import (
	"context"

	"github.com/zatekoja/doseordering/internal/domain/entities"
)

// RecordRepository defines the operations shared by the compliance registers.
// List must return records in insertion order.
type RecordRepository[T any] interface {
	Create(ctx context.Context, record *T) error
	GetByID(ctx context.Context, id string) (*T, error)
	Update(ctx context.Context, record *T) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]*T, error)
}

// ComplianceRepositories holds one repository per compliance register
type ComplianceRepositories struct {
	ActionItems   RecordRepository[entities.ActionItem]
	DailySurveys  RecordRepository[entities.DailyAreaSurvey]
	WeeklySurveys RecordRepository[entities.WeeklyAreaSurvey]
	Dosimeters    RecordRepository[entities.Dosimeter]
	InstrumentQC  RecordRepository[entities.InstrumentQC]
	PatientDoses  RecordRepository[entities.PatientDose]
	SealedSources RecordRepository[entities.SealedSource]
	TracerMoves   RecordRepository[entities.TracerMovement]
	WasteBins     RecordRepository[entities.WasteBin]
}
