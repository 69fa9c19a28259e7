package entities

import (
	"time"
)

// DoseCreditStatus filters credits by whether the vendor has issued them
type DoseCreditStatus string

const (
	DoseCreditStatusAll      DoseCreditStatus = "all"
	DoseCreditStatusPending  DoseCreditStatus = "pending"
	DoseCreditStatusReceived DoseCreditStatus = "received"
)

// DoseCredit is a refund claim filed with a vendor for an unused dose
type DoseCredit struct {
	ID            string    `json:"id" yaml:"id"`
	SubmittedDate string    `json:"submitted_date" yaml:"submitted_date"`
	ReceivedDate  string    `json:"received_date,omitempty" yaml:"received_date,omitempty"`
	Substance     string    `json:"isotope_name" yaml:"isotope_name"`
	PatientName   string    `json:"patient_name" yaml:"patient_name"`
	PatientID     string    `json:"patient_id" yaml:"patient_id"`
	ScheduleDate  string    `json:"schedule_date" yaml:"schedule_date"`
	Reason        string    `json:"reason_for_credit" yaml:"reason_for_credit"`
	CreatedAt     time.Time `json:"created_at" yaml:"-"`
	UpdatedAt     time.Time `json:"updated_at" yaml:"-"`
}

// IsReceived reports whether the credit has been issued
func (c *DoseCredit) IsReceived() bool {
	return c.ReceivedDate != ""
}

// DoseCreditSummary counts credits by state
type DoseCreditSummary struct {
	Total    int      `json:"total"`
	Pending  int      `json:"pending"`
	Received int      `json:"received"`
	Reasons  []string `json:"reasons"`
}

// StandardCreditReasons are the reasons offered when filing a credit
var StandardCreditReasons = []string{
	"Dose decay - patient rescheduled",
	"Patient no-show",
	"Dose preparation error",
	"Equipment malfunction",
	"Patient cancellation",
	"Dose contamination",
	"Expired dose",
	"Other",
}
