package compliance

import (
	"github.com/zatekoja/doseordering/internal/domain/entities"
	"github.com/zatekoja/doseordering/internal/domain/providers"
	"github.com/zatekoja/doseordering/internal/domain/repositories"
	"github.com/zatekoja/doseordering/internal/infrastructure/observability"
)

// Services holds one service per compliance register
type Services struct {
	ActionItems   *Service[entities.ActionItem]
	DailySurveys  *Service[entities.DailyAreaSurvey]
	WeeklySurveys *Service[entities.WeeklyAreaSurvey]
	Dosimeters    *Service[entities.Dosimeter]
	InstrumentQC  *Service[entities.InstrumentQC]
	PatientDoses  *Service[entities.PatientDose]
	SealedSources *Service[entities.SealedSource]
	TracerMoves   *Service[entities.TracerMovement]
	WasteBins     *Service[entities.WasteBin]
}

// NewServices wires every register to its repository
func NewServices(repos repositories.ComplianceRepositories, exporter providers.ReportExporter, metrics *observability.Metrics) *Services {
	return &Services{
		ActionItems:   NewService(ActionItems, repos.ActionItems, exporter, metrics),
		DailySurveys:  NewService(DailySurveys, repos.DailySurveys, exporter, metrics),
		WeeklySurveys: NewService(WeeklySurveys, repos.WeeklySurveys, exporter, metrics),
		Dosimeters:    NewService(Dosimeters, repos.Dosimeters, exporter, metrics),
		InstrumentQC:  NewService(InstrumentQC, repos.InstrumentQC, exporter, metrics),
		PatientDoses:  NewService(PatientDoses, repos.PatientDoses, exporter, metrics),
		SealedSources: NewService(SealedSources, repos.SealedSources, exporter, metrics),
		TracerMoves:   NewService(TracerMoves, repos.TracerMoves, exporter, metrics),
		WasteBins:     NewService(WasteBins, repos.WasteBins, exporter, metrics),
	}
}
