// Package compliance keeps the radiation safety registers of the department:
// action items, area surveys, dosimeters, instrument QC, patient doses,
// sealed sources, tracer movements and waste bins.
package compliance

import (
	"fmt"
	"strings"
	"time"

	"github.com/zatekoja/doseordering/internal/domain/entities"
	apperrors "github.com/zatekoja/doseordering/pkg/errors"
)

// Register describes one kind of compliance record: how it is validated,
// grouped and reported.
type Register[T any] struct {
	// Name is the singular record name used in messages, Path the URL
	// segment under /api/regulatory and FilePrefix the start of the report
	// file name. Title and Sheet head the exported workbook.
	Name       string
	Path       string
	FilePrefix string
	Title      string
	Sheet      string

	Headers []string
	Row     func(*T) []interface{}

	ID func(*T) *string

	// Prepare validates a record and fills defaults and derived fields
	Prepare func(r *T, today string) error

	// Category is the bucket a record is counted in. Buckets fixes the
	// bucket order; registers with open-ended categories leave it empty.
	Category func(*T) string
	Buckets  []string

	// Attention flags records needing follow-up. AttentionLabel, when set,
	// adds the count to the report totals.
	Attention      func(*T) bool
	AttentionLabel string

	// Quantity is the amount summed in the summary, nil when the register
	// measures nothing. QuantityByCategory reports one total per bucket.
	Quantity           func(*T) float64
	QuantityLabel      string
	QuantityByCategory bool

	// UpsertKey, when set, makes Create replace the record sharing the key
	UpsertKey func(*T) string
}

// Summarize counts records per category
func (g *Register[T]) Summarize(records []*T) *entities.RegisterSummary {
	summary := &entities.RegisterSummary{
		Register: g.Path,
		Total:    len(records),
		Counts:   make(map[string]int, len(g.Buckets)),
	}
	for _, b := range g.Buckets {
		summary.Counts[b] = 0
	}
	if g.Quantity != nil {
		summary.Quantities = make(map[string]float64)
	}

	for _, r := range records {
		category := g.Category(r)
		summary.Counts[category]++
		if g.Attention != nil && g.Attention(r) {
			summary.Attention++
		}
		if g.Quantity != nil {
			q := g.Quantity(r)
			summary.Quantities[category] += q
			summary.TotalQuantity += q
		}
	}
	return summary
}

// Report lays records out for the workbook exporter
func (g *Register[T]) Report(records []*T, summary *entities.RegisterSummary) *entities.RegisterReport {
	report := &entities.RegisterReport{
		Title:   g.Title,
		Sheet:   g.Sheet,
		Headers: g.Headers,
		Rows:    make([][]interface{}, 0, len(records)),
	}
	for _, r := range records {
		report.Rows = append(report.Rows, g.Row(r))
	}

	for _, b := range g.Buckets {
		report.Totals = append(report.Totals, []interface{}{b, summary.Counts[b]})
	}
	if g.AttentionLabel != "" {
		report.Totals = append(report.Totals, []interface{}{g.AttentionLabel, summary.Attention})
	}
	if g.Quantity != nil {
		if g.QuantityByCategory {
			for _, b := range g.Buckets {
				report.Totals = append(report.Totals, []interface{}{b + " Total " + g.QuantityLabel, summary.Quantities[b]})
			}
		}
		report.Totals = append(report.Totals, []interface{}{"Total " + g.QuantityLabel, summary.TotalQuantity})
	}
	return report
}

func required(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return apperrors.NewValidationError(field + " is required")
	}
	return nil
}

func nonNegative(field string, value float64) error {
	if value < 0 {
		return apperrors.NewValidationError(field + " must not be negative")
	}
	return nil
}

func positive(field string, value float64) error {
	if value <= 0 {
		return apperrors.NewValidationError(field + " must be greater than zero")
	}
	return nil
}

// dateOrToday defaults an empty date to today and checks the format
func dateOrToday(field string, value *string, today string) error {
	if *value == "" {
		*value = today
	}
	if _, err := time.Parse(entities.DateLayout, *value); err != nil {
		return apperrors.NewValidationError(fmt.Sprintf("%s must be a YYYY-MM-DD date", field))
	}
	return nil
}

func oneOf(field, value string, allowed []string) error {
	for _, a := range allowed {
		if value == a {
			return nil
		}
	}
	return apperrors.NewValidationError(fmt.Sprintf("%s must be one of %s", field, strings.Join(allowed, ", ")))
}

// firstError returns the first non-nil error
func firstError(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
