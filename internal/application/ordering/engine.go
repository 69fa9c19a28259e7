// Package ordering turns the confirmed schedule and vendor price lists into a
// per-isotope purchase plan.
package ordering

import (
	"sort"

	"github.com/zatekoja/doseordering/internal/domain/entities"
)

// NoAppointmentsNotice is shown when no confirmed appointment passes the date filter
const NoAppointmentsNotice = "No confirmed appointments found for the selected date range"

// Option configures a Recommend call
type Option func(*options)

type options struct {
	insurances []*entities.InsurancePlan
}

// WithInsurances enables reimbursement and profit margin enrichment
func WithInsurances(plans []*entities.InsurancePlan) Option {
	return func(o *options) {
		o.insurances = plans
	}
}

type demand struct {
	substance  string
	quantity   int
	insurances []string
}

// Recommend builds the order plan for the given schedule. It is a pure
// function: inputs are only read and the same inputs give the same plan.
//
// Substances nobody prices are left out of Recommendations and listed in
// Unpriced. Vendors are scanned in slice order and the first vendor with the
// lowest price wins a tie.
func Recommend(appointments []*entities.Appointment, vendors []*entities.Vendor, filter entities.DateFilter, opts ...Option) entities.OrderPlan {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}

	plan := entities.OrderPlan{
		Filter:          filter,
		Recommendations: []entities.OrderRecommendation{},
	}

	groups, confirmed := groupDemand(appointments, filter)
	plan.Summary.ConfirmedAppointments = confirmed

	if len(groups) == 0 {
		plan.NoAppointments = true
		plan.Notice = NoAppointmentsNotice
		return plan
	}

	reimbursement := reimbursementByPlan(o.insurances)

	for _, g := range groups {
		vendor, unitPrice, ok := cheapestVendor(vendors, g.substance)
		if !ok {
			plan.Unpriced = append(plan.Unpriced, g.substance)
			continue
		}

		totalCost := unitPrice * float64(g.quantity)
		rec := entities.OrderRecommendation{
			Substance: g.substance,
			Quantity:  g.quantity,
			Vendor:    vendor,
			UnitPrice: unitPrice,
			TotalCost: totalCost,
		}
		if reimbursement != nil {
			rec.AvgReimbursement = averageReimbursement(g.insurances, reimbursement)
			rec.ProfitMargin = (rec.AvgReimbursement/100)*totalCost - totalCost
		}
		plan.Recommendations = append(plan.Recommendations, rec)
	}

	sort.SliceStable(plan.Recommendations, func(i, j int) bool {
		return plan.Recommendations[i].Quantity > plan.Recommendations[j].Quantity
	})

	for _, rec := range plan.Recommendations {
		plan.Summary.TotalQuantity += rec.Quantity
		plan.Summary.TotalCost += rec.TotalCost
		plan.Summary.TotalProfitMargin += rec.ProfitMargin
	}

	return plan
}

// groupDemand counts confirmed appointments per substance in first-seen order.
// It also returns the number of confirmed appointments before date filtering.
func groupDemand(appointments []*entities.Appointment, filter entities.DateFilter) ([]*demand, int) {
	var groups []*demand
	index := make(map[string]*demand)
	confirmed := 0

	for _, a := range appointments {
		if a == nil || !a.IsConfirmed() {
			continue
		}
		confirmed++
		if !filter.Matches(a.Date) {
			continue
		}

		g, ok := index[a.Substance]
		if !ok {
			g = &demand{substance: a.Substance}
			index[a.Substance] = g
			groups = append(groups, g)
		}
		g.quantity++
		g.insurances = append(g.insurances, a.Insurance)
	}

	return groups, confirmed
}

func cheapestVendor(vendors []*entities.Vendor, substance string) (string, float64, bool) {
	var (
		name  string
		price float64
		found bool
	)
	for _, v := range vendors {
		if v == nil {
			continue
		}
		p, ok := v.PriceFor(substance)
		if !ok {
			continue
		}
		if !found || p < price {
			name, price, found = v.Name, p, true
		}
	}
	return name, price, found
}

func reimbursementByPlan(plans []*entities.InsurancePlan) map[string]float64 {
	if plans == nil {
		return nil
	}
	m := make(map[string]float64, len(plans))
	for _, p := range plans {
		if p != nil {
			m[p.Name] = p.ReimbursementPercentage
		}
	}
	return m
}

// averageReimbursement treats an unknown insurance as 0% reimbursed
func averageReimbursement(insurances []string, reimbursement map[string]float64) float64 {
	if len(insurances) == 0 {
		return 0
	}
	var sum float64
	for _, name := range insurances {
		sum += reimbursement[name]
	}
	return sum / float64(len(insurances))
}
