package entities

import (
	"time"
)

// AppointmentStatus represents the status of a scheduled scan
type AppointmentStatus string

const (
	AppointmentStatusConfirmed            AppointmentStatus = "Confirmed"
	AppointmentStatusPendingAuthorization AppointmentStatus = "Pending Auth"
	AppointmentStatusScheduled            AppointmentStatus = "Scheduled"
	AppointmentStatusCanceled             AppointmentStatus = "Canceled"
)

// IsValid reports whether s is one of the known statuses
func (s AppointmentStatus) IsValid() bool {
	switch s {
	case AppointmentStatusConfirmed,
		AppointmentStatusPendingAuthorization,
		AppointmentStatusScheduled,
		AppointmentStatusCanceled:
		return true
	}
	return false
}

// DateLayout is the calendar date format used throughout the schedule
const DateLayout = "2006-01-02"

// Appointment represents a patient scan on the schedule.
// Date is an ISO calendar date (YYYY-MM-DD) so that string comparison
// orders appointments chronologically.
type Appointment struct {
	ID          string            `json:"id" yaml:"id"`
	PatientName string            `json:"patient_name" yaml:"patient_name"`
	PatientID   *string           `json:"patient_id,omitempty" yaml:"patient_id,omitempty"`
	Date        string            `json:"date" yaml:"date"`
	ScanTime    string            `json:"scan_time" yaml:"scan_time"`
	Substance   string            `json:"isotope" yaml:"isotope"`
	Insurance   string            `json:"insurance" yaml:"insurance"`
	Status      AppointmentStatus `json:"status" yaml:"status"`
	CreatedAt   time.Time         `json:"created_at" yaml:"-"`
	UpdatedAt   time.Time         `json:"updated_at" yaml:"-"`
}

// IsConfirmed reports whether the appointment is a firm demand signal
func (a *Appointment) IsConfirmed() bool {
	return a.Status == AppointmentStatusConfirmed
}

// ScheduleSummary counts the whole schedule by status and lists the distinct
// insurances and isotopes in the order they first appear.
type ScheduleSummary struct {
	Total                int      `json:"total"`
	Confirmed            int      `json:"confirmed"`
	PendingAuthorization int      `json:"pending_auth"`
	Scheduled            int      `json:"scheduled"`
	Canceled             int      `json:"canceled"`
	Insurances           []string `json:"insurances"`
	Isotopes             []string `json:"isotopes"`
}

// SummarizeSchedule counts appointments by status
func SummarizeSchedule(appointments []*Appointment) ScheduleSummary {
	summary := ScheduleSummary{
		Total:      len(appointments),
		Insurances: []string{},
		Isotopes:   []string{},
	}
	seenInsurance := make(map[string]bool)
	seenIsotope := make(map[string]bool)
	for _, a := range appointments {
		switch a.Status {
		case AppointmentStatusConfirmed:
			summary.Confirmed++
		case AppointmentStatusPendingAuthorization:
			summary.PendingAuthorization++
		case AppointmentStatusScheduled:
			summary.Scheduled++
		case AppointmentStatusCanceled:
			summary.Canceled++
		}
		if a.Insurance != "" && !seenInsurance[a.Insurance] {
			seenInsurance[a.Insurance] = true
			summary.Insurances = append(summary.Insurances, a.Insurance)
		}
		if a.Substance != "" && !seenIsotope[a.Substance] {
			seenIsotope[a.Substance] = true
			summary.Isotopes = append(summary.Isotopes, a.Substance)
		}
	}
	return summary
}
