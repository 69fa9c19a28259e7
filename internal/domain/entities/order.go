package entities

import (
	"fmt"
)

// DateFilterKind selects which appointment dates feed an order
type DateFilterKind string

const (
	DateFilterAll    DateFilterKind = "all"
	DateFilterSingle DateFilterKind = "single"
	DateFilterRange  DateFilterKind = "range"
)

// DateFilter restricts appointments by calendar date. Bounds are inclusive
// and compared as ISO date strings.
type DateFilter struct {
	Kind  DateFilterKind `json:"range"`
	Date  string         `json:"date,omitempty"`
	Start string         `json:"start,omitempty"`
	End   string         `json:"end,omitempty"`
}

// AllDates returns a filter that keeps every appointment
func AllDates() DateFilter {
	return DateFilter{Kind: DateFilterAll}
}

// SingleDate returns a filter that keeps appointments on one day
func SingleDate(date string) DateFilter {
	return DateFilter{Kind: DateFilterSingle, Date: date}
}

// DateRange returns a filter that keeps appointments between start and end
func DateRange(start, end string) DateFilter {
	return DateFilter{Kind: DateFilterRange, Start: start, End: end}
}

// Matches reports whether an appointment date passes the filter.
// A range with a missing bound behaves like All.
func (f DateFilter) Matches(date string) bool {
	switch f.Kind {
	case DateFilterSingle:
		return date == f.Date
	case DateFilterRange:
		if f.Start == "" || f.End == "" {
			return true
		}
		return date >= f.Start && date <= f.End
	default:
		return true
	}
}

// Label renders the filter for report headers
func (f DateFilter) Label() string {
	switch f.Kind {
	case DateFilterSingle:
		return f.Date
	case DateFilterRange:
		if f.Start == "" || f.End == "" {
			return "All Dates"
		}
		return fmt.Sprintf("%s to %s", f.Start, f.End)
	default:
		return "All Dates"
	}
}

// OrderRecommendation is the suggested purchase for one substance
type OrderRecommendation struct {
	Substance        string  `json:"isotope"`
	Quantity         int     `json:"quantity"`
	Vendor           string  `json:"vendor"`
	UnitPrice        float64 `json:"unit_price"`
	TotalCost        float64 `json:"total_cost"`
	AvgReimbursement float64 `json:"avg_reimbursement"`
	ProfitMargin     float64 `json:"profit_margin"`
}

// OrderSummary totals a set of recommendations
type OrderSummary struct {
	TotalQuantity         int     `json:"total_quantity"`
	TotalCost             float64 `json:"total_cost"`
	TotalProfitMargin     float64 `json:"total_profit_margin"`
	ConfirmedAppointments int     `json:"confirmed_appointments"`
}

// OrderPlan is what the ordering page renders and exports
type OrderPlan struct {
	Filter          DateFilter            `json:"filter"`
	Recommendations []OrderRecommendation `json:"recommendations"`
	Summary         OrderSummary          `json:"summary"`
	NoAppointments  bool                  `json:"no_appointments"`
	Notice          string                `json:"notice,omitempty"`
	Unpriced        []string              `json:"unpriced,omitempty"`
}
