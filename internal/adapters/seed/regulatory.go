package seed

import (
	"context"
	"fmt"

	"github.com/zatekoja/doseordering/internal/domain/entities"
	"github.com/zatekoja/doseordering/internal/domain/repositories"
)

func (r *Regulatory) validate() error {
	return firstError(
		checkRecords("action item", r.ActionItems, func(a *entities.ActionItem) string { return a.ID },
			func(a *entities.ActionItem) error {
				if a.Completed != (a.Status == entities.ActionStatusCompleted) {
					return fmt.Errorf("completed must follow status %q", a.Status)
				}
				return nil
			}),
		checkRecords("daily survey", r.DailySurveys, func(s *entities.DailyAreaSurvey) string { return s.ID },
			func(s *entities.DailyAreaSurvey) error { return checkLevel(s.Status, entities.SurveyLevel(s.DoseRate)) }),
		checkRecords("weekly survey", r.WeeklySurveys, func(s *entities.WeeklyAreaSurvey) string { return s.ID },
			func(s *entities.WeeklyAreaSurvey) error { return checkLevel(s.Status, entities.SurveyLevel(s.MaxReading)) }),
		checkRecords("dosimeter", r.Dosimeters, func(d *entities.Dosimeter) string { return d.ID },
			func(d *entities.Dosimeter) error { return checkLevel(d.Status, entities.DosimeterLevel(d.YearlyDose)) }),
		checkRecords("instrument qc", r.InstrumentQC, func(q *entities.InstrumentQC) string { return q.ID }, nil),
		checkRecords("patient dose", r.PatientDoses, func(d *entities.PatientDose) string { return d.ID }, nil),
		checkRecords("sealed source", r.SealedSources, func(s *entities.SealedSource) string { return s.ID }, nil),
		checkRecords("tracer movement", r.TracerMoves, func(m *entities.TracerMovement) string { return m.ID }, nil),
		checkRecords("waste bin", r.WasteBins, func(b *entities.WasteBin) string { return b.ID }, nil),
	)
}

func (r *Regulatory) apply(ctx context.Context, repos repositories.ComplianceRepositories) error {
	steps := []func() error{
		func() error {
			return applyRecords(ctx, "action item", repos.ActionItems, r.ActionItems, func(a *entities.ActionItem) string { return a.ID })
		},
		func() error {
			return applyRecords(ctx, "daily survey", repos.DailySurveys, r.DailySurveys, func(s *entities.DailyAreaSurvey) string { return s.ID })
		},
		func() error {
			return applyRecords(ctx, "weekly survey", repos.WeeklySurveys, r.WeeklySurveys, func(s *entities.WeeklyAreaSurvey) string { return s.ID })
		},
		func() error {
			return applyRecords(ctx, "dosimeter", repos.Dosimeters, r.Dosimeters, func(d *entities.Dosimeter) string { return d.ID })
		},
		func() error {
			return applyRecords(ctx, "instrument qc", repos.InstrumentQC, r.InstrumentQC, func(q *entities.InstrumentQC) string { return q.ID })
		},
		func() error {
			return applyRecords(ctx, "patient dose", repos.PatientDoses, r.PatientDoses, func(d *entities.PatientDose) string { return d.ID })
		},
		func() error {
			return applyRecords(ctx, "sealed source", repos.SealedSources, r.SealedSources, func(s *entities.SealedSource) string { return s.ID })
		},
		func() error {
			return applyRecords(ctx, "tracer movement", repos.TracerMoves, r.TracerMoves, func(m *entities.TracerMovement) string { return m.ID })
		},
		func() error {
			return applyRecords(ctx, "waste bin", repos.WasteBins, r.WasteBins, func(b *entities.WasteBin) string { return b.ID })
		},
	}
	for _, step := range steps {
		if err := step(); err != nil {
			return err
		}
	}
	return nil
}

// Count returns the number of regulatory records in the catalog
func (r *Regulatory) Count() int {
	return len(r.ActionItems) + len(r.DailySurveys) + len(r.WeeklySurveys) +
		len(r.Dosimeters) + len(r.InstrumentQC) + len(r.PatientDoses) +
		len(r.SealedSources) + len(r.TracerMoves) + len(r.WasteBins)
}

func checkRecords[T any](kind string, records []*T, id func(*T) string, check func(*T) error) error {
	for i, rec := range records {
		if rec == nil {
			return fmt.Errorf("%s %d: empty entry", kind, i)
		}
		if id(rec) == "" {
			return fmt.Errorf("%s %d: id is required", kind, i)
		}
		if check == nil {
			continue
		}
		if err := check(rec); err != nil {
			return fmt.Errorf("%s %s: %w", kind, id(rec), err)
		}
	}
	return nil
}

func checkLevel(got, want entities.ComplianceLevel) error {
	if got != want {
		return fmt.Errorf("status %q does not match reading, expected %q", got, want)
	}
	return nil
}

func applyRecords[T any](ctx context.Context, kind string, repo repositories.RecordRepository[T], records []*T, id func(*T) string) error {
	if len(records) == 0 {
		return nil
	}
	if repo == nil {
		return fmt.Errorf("seed %s: no store configured", kind)
	}
	for _, rec := range records {
		if err := repo.Create(ctx, rec); err != nil {
			return fmt.Errorf("seed %s %s: %w", kind, id(rec), err)
		}
	}
	return nil
}

func firstError(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
