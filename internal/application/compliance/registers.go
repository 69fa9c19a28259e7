package compliance

import (
	"strings"

	"github.com/zatekoja/doseordering/internal/domain/entities"
	apperrors "github.com/zatekoja/doseordering/pkg/errors"
)

// ActionItems tracks compliance tasks. Completed follows the status.
var ActionItems = &Register[entities.ActionItem]{
	Name:       "action item",
	Path:       "action-items",
	FilePrefix: "action-items",
	Title:      "Action Items Report",
	Sheet:      "Action Items",
	Headers:    []string{"ID", "Due Date", "Title", "Priority", "Assignee", "Status", "Completed"},
	Row: func(a *entities.ActionItem) []interface{} {
		completed := "No"
		if a.Completed {
			completed = "Yes"
		}
		return []interface{}{a.ID, a.DueDate, a.Title, string(a.Priority), a.Assignee, string(a.Status), completed}
	},
	ID: func(a *entities.ActionItem) *string { return &a.ID },
	Prepare: func(a *entities.ActionItem, today string) error {
		a.Title = strings.TrimSpace(a.Title)
		if a.Priority == "" {
			a.Priority = entities.ActionPriorityMedium
		}
		if a.Status == "" {
			a.Status = entities.ActionStatusPending
		}
		if !a.Priority.IsValid() {
			return apperrors.NewValidationError("priority must be one of Low, Medium, High, Critical")
		}
		if !a.Status.IsValid() {
			return oneOf("status", string(a.Status), entities.ActionStatuses)
		}
		a.Completed = a.Status == entities.ActionStatusCompleted
		return firstError(
			required("title", a.Title),
			dateOrToday("due_date", &a.DueDate, today),
		)
	},
	Category:       func(a *entities.ActionItem) string { return string(a.Status) },
	Buckets:        entities.ActionStatuses,
	Attention:      func(a *entities.ActionItem) bool { return a.IsOpenCritical() },
	AttentionLabel: "Critical Items",
}

// DailySurveys records daily survey meter readings in mR/hr
var DailySurveys = &Register[entities.DailyAreaSurvey]{
	Name:       "daily area survey",
	Path:       "daily-surveys",
	FilePrefix: "daily-area-survey",
	Title:      "Daily Area Survey Report",
	Sheet:      "Daily Survey",
	Headers:    []string{"ID", "Date", "Location", "Dose Rate", "Units", "Status", "Technologist"},
	Row: func(s *entities.DailyAreaSurvey) []interface{} {
		return []interface{}{s.ID, s.Date, s.Location, s.DoseRate, s.Units, string(s.Status), s.Technologist}
	},
	ID: func(s *entities.DailyAreaSurvey) *string { return &s.ID },
	Prepare: func(s *entities.DailyAreaSurvey, today string) error {
		if s.Units == "" {
			s.Units = "mR/hr"
		}
		s.Status = entities.SurveyLevel(s.DoseRate)
		return firstError(
			dateOrToday("date", &s.Date, today),
			required("location", s.Location),
			nonNegative("dose_rate", s.DoseRate),
		)
	},
	Category:  func(s *entities.DailyAreaSurvey) string { return string(s.Status) },
	Buckets:   entities.ComplianceLevels,
	Attention: func(s *entities.DailyAreaSurvey) bool { return s.Status == entities.ComplianceRed },
}

// WeeklySurveys records the weekly maximum and average per location. The
// status follows the maximum reading.
var WeeklySurveys = &Register[entities.WeeklyAreaSurvey]{
	Name:       "weekly area survey",
	Path:       "weekly-surveys",
	FilePrefix: "weekly-area-survey",
	Title:      "Weekly Area Survey Report",
	Sheet:      "Weekly Survey",
	Headers:    []string{"ID", "Week", "Location", "Max Reading (mR/hr)", "Avg Reading (mR/hr)", "Status", "Technologist"},
	Row: func(s *entities.WeeklyAreaSurvey) []interface{} {
		return []interface{}{s.ID, s.Week, s.Location, s.MaxReading, s.AvgReading, string(s.Status), s.Technologist}
	},
	ID: func(s *entities.WeeklyAreaSurvey) *string { return &s.ID },
	Prepare: func(s *entities.WeeklyAreaSurvey, today string) error {
		s.Status = entities.SurveyLevel(s.MaxReading)
		if err := firstError(
			dateOrToday("week", &s.Week, today),
			required("location", s.Location),
			nonNegative("max_reading", s.MaxReading),
			nonNegative("avg_reading", s.AvgReading),
		); err != nil {
			return err
		}
		if s.AvgReading > s.MaxReading {
			return apperrors.NewValidationError("avg_reading must not exceed max_reading")
		}
		return nil
	},
	Category:  func(s *entities.WeeklyAreaSurvey) string { return string(s.Status) },
	Buckets:   entities.ComplianceLevels,
	Attention: func(s *entities.WeeklyAreaSurvey) bool { return s.Status == entities.ComplianceRed },
}

// Dosimeters keeps one exposure record per technologist; filing a new
// reading for a technologist replaces the previous one.
var Dosimeters = &Register[entities.Dosimeter]{
	Name:       "dosimeter",
	Path:       "dosimeters",
	FilePrefix: "dosimeter-tracker",
	Title:      "Dosimeter Tracker Report",
	Sheet:      "Dosimeters",
	Headers:    []string{"ID", "Technologist", "Monthly Dose (mrem)", "Quarterly Dose (mrem)", "Yearly Dose (mrem)", "Status", "Last Update"},
	Row: func(d *entities.Dosimeter) []interface{} {
		return []interface{}{d.ID, d.Technologist, d.MonthlyDose, d.QuarterlyDose, d.YearlyDose, string(d.Status), d.LastUpdate}
	},
	ID: func(d *entities.Dosimeter) *string { return &d.ID },
	Prepare: func(d *entities.Dosimeter, today string) error {
		d.Technologist = strings.TrimSpace(d.Technologist)
		d.Status = entities.DosimeterLevel(d.YearlyDose)
		d.LastUpdate = today
		return firstError(
			required("technologist", d.Technologist),
			nonNegative("monthly_dose", d.MonthlyDose),
			nonNegative("quarterly_dose", d.QuarterlyDose),
			nonNegative("yearly_dose", d.YearlyDose),
		)
	},
	Category:  func(d *entities.Dosimeter) string { return string(d.Status) },
	Buckets:   entities.ComplianceLevels,
	Attention: func(d *entities.Dosimeter) bool { return d.Status == entities.ComplianceRed },
	UpsertKey: func(d *entities.Dosimeter) string { return strings.ToLower(d.Technologist) },
}

// InstrumentQC logs quality control tests of hot lab instruments
var InstrumentQC = &Register[entities.InstrumentQC]{
	Name:       "instrument qc record",
	Path:       "instrument-qc",
	FilePrefix: "hot-lab-instruments-qc",
	Title:      "Hot Lab Instruments QC Report",
	Sheet:      "QC Records",
	Headers:    []string{"ID", "Date", "Instrument", "Test Type", "Result", "Technologist", "Comments"},
	Row: func(q *entities.InstrumentQC) []interface{} {
		return []interface{}{q.ID, q.Date, q.Instrument, q.TestType, string(q.Result), q.Technologist, q.Comments}
	},
	ID: func(q *entities.InstrumentQC) *string { return &q.ID },
	Prepare: func(q *entities.InstrumentQC, today string) error {
		if q.Result == "" {
			q.Result = entities.QCPass
		}
		return firstError(
			dateOrToday("date", &q.Date, today),
			required("instrument", q.Instrument),
			required("test_type", q.TestType),
			required("technologist", q.Technologist),
			oneOf("result", string(q.Result), entities.QCResults),
		)
	},
	Category:  func(q *entities.InstrumentQC) string { return string(q.Result) },
	Buckets:   entities.QCResults,
	Attention: func(q *entities.InstrumentQC) bool { return q.Result == entities.QCFail },
}

// PatientDoses logs administered activity, counted per isotope
var PatientDoses = &Register[entities.PatientDose]{
	Name:       "patient dose",
	Path:       "patient-doses",
	FilePrefix: "patient-dose-log",
	Title:      "Patient Dose Log",
	Sheet:      "Patient Doses",
	Headers:    []string{"ID", "Date", "Patient Name", "Isotope", "Dose (mCi)", "Technologist"},
	Row: func(p *entities.PatientDose) []interface{} {
		return []interface{}{p.ID, p.Date, p.PatientName, p.Isotope, p.Dose, p.Technologist}
	},
	ID: func(p *entities.PatientDose) *string { return &p.ID },
	Prepare: func(p *entities.PatientDose, today string) error {
		return firstError(
			dateOrToday("date", &p.Date, today),
			required("patient_name", p.PatientName),
			required("isotope", p.Isotope),
			positive("dose", p.Dose),
		)
	},
	Category:      func(p *entities.PatientDose) string { return p.Isotope },
	Quantity:      func(p *entities.PatientDose) float64 { return p.Dose },
	QuantityLabel: "Dose (mCi)",
}

// SealedSources is the sealed source inventory, counted per storage location
var SealedSources = &Register[entities.SealedSource]{
	Name:       "sealed source",
	Path:       "sealed-sources",
	FilePrefix: "sealed-source-inventory",
	Title:      "Sealed Source Inventory Report",
	Sheet:      "Sealed Sources",
	Headers:    []string{"ID", "Isotope", "Activity (µCi)", "Location", "Last Inventory", "Technologist"},
	Row: func(s *entities.SealedSource) []interface{} {
		return []interface{}{s.ID, s.Isotope, s.Activity, s.Location, s.LastInventory, s.Technologist}
	},
	ID: func(s *entities.SealedSource) *string { return &s.ID },
	Prepare: func(s *entities.SealedSource, today string) error {
		return firstError(
			required("isotope", s.Isotope),
			required("location", s.Location),
			positive("activity", s.Activity),
			dateOrToday("last_inventory", &s.LastInventory, today),
		)
	},
	Category:      func(s *entities.SealedSource) string { return s.Location },
	Quantity:      func(s *entities.SealedSource) float64 { return s.Activity },
	QuantityLabel: "Activity (µCi)",
}

// TracerMoves logs tracers checked in from and out to vendors
var TracerMoves = &Register[entities.TracerMovement]{
	Name:       "tracer movement",
	Path:       "tracers",
	FilePrefix: "tracer-check-inout",
	Title:      "Tracer Check In/Out Report",
	Sheet:      "Tracer Check In-Out",
	Headers:    []string{"ID", "Date", "Isotope", "Activity (mCi)", "Type", "Vendor", "Technologist"},
	Row: func(t *entities.TracerMovement) []interface{} {
		return []interface{}{t.ID, t.Date, t.Isotope, t.Activity, string(t.Type), t.Vendor, t.Technologist}
	},
	ID: func(t *entities.TracerMovement) *string { return &t.ID },
	Prepare: func(t *entities.TracerMovement, today string) error {
		if t.Type == "" {
			t.Type = entities.TracerCheckIn
		}
		return firstError(
			dateOrToday("date", &t.Date, today),
			required("isotope", t.Isotope),
			required("vendor", t.Vendor),
			positive("activity", t.Activity),
			oneOf("type", string(t.Type), entities.TracerDirections),
		)
	},
	Category:           func(t *entities.TracerMovement) string { return string(t.Type) },
	Buckets:            entities.TracerDirections,
	Quantity:           func(t *entities.TracerMovement) float64 { return t.Activity },
	QuantityLabel:      "Activity (mCi)",
	QuantityByCategory: true,
}

// WasteBins tracks radioactive waste containers
var WasteBins = &Register[entities.WasteBin]{
	Name:       "waste bin",
	Path:       "waste-bins",
	FilePrefix: "waste-management",
	Title:      "Waste Management Report",
	Sheet:      "Waste Management",
	Headers:    []string{"ID", "Bin Name", "Bin Number", "Location", "Volume (L)", "Activity (µCi)", "Status", "Last Update", "Technologist"},
	Row: func(b *entities.WasteBin) []interface{} {
		return []interface{}{b.ID, b.BinName, b.BinNumber, b.Location, b.Volume, b.Activity, string(b.Status), b.LastUpdate, b.Technologist}
	},
	ID: func(b *entities.WasteBin) *string { return &b.ID },
	Prepare: func(b *entities.WasteBin, today string) error {
		if b.Status == "" {
			b.Status = entities.WasteBinActive
		}
		b.LastUpdate = today
		return firstError(
			required("bin_name", b.BinName),
			required("bin_number", b.BinNumber),
			nonNegative("volume", b.Volume),
			nonNegative("activity", b.Activity),
			oneOf("status", string(b.Status), entities.WasteBinStatuses),
		)
	},
	Category:      func(b *entities.WasteBin) string { return string(b.Status) },
	Buckets:       entities.WasteBinStatuses,
	Attention:     func(b *entities.WasteBin) bool { return b.Status == entities.WasteBinFull },
	Quantity:      func(b *entities.WasteBin) float64 { return b.Activity },
	QuantityLabel: "Activity (µCi)",
}
