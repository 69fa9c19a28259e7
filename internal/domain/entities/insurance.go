package entities

import (
	"time"
)

// InsurancePlan represents a payer and the share of dose cost it reimburses
type InsurancePlan struct {
	ID                      string    `json:"id" yaml:"id"`
	Name                    string    `json:"name" yaml:"name"`
	ReimbursementPercentage float64   `json:"reimbursement_percentage" yaml:"reimbursement_percentage"`
	ContactEmail            string    `json:"contact_email" yaml:"contact_email"`
	ContactPhone            string    `json:"contact_phone" yaml:"contact_phone"`
	CreatedAt               time.Time `json:"created_at" yaml:"-"`
	UpdatedAt               time.Time `json:"updated_at" yaml:"-"`
}

// InsuranceSummary aggregates reimbursement across all plans
type InsuranceSummary struct {
	PlanCount            int     `json:"plan_count"`
	AverageReimbursement float64 `json:"average_reimbursement"`
	HighestReimbursement float64 `json:"highest_reimbursement"`
	LowestReimbursement  float64 `json:"lowest_reimbursement"`
}
