package entities

// Records kept for radiation safety compliance. Each record type lives in its
// own register; a register summary counts records per category.

// ComplianceLevel grades a radiation reading against its action levels
type ComplianceLevel string

const (
	ComplianceGreen  ComplianceLevel = "Green"
	ComplianceYellow ComplianceLevel = "Yellow"
	ComplianceRed    ComplianceLevel = "Red"
)

// ComplianceLevels lists the levels from best to worst
var ComplianceLevels = []string{string(ComplianceGreen), string(ComplianceYellow), string(ComplianceRed)}

// Area survey action levels in mR/hr
const (
	SurveyYellowLevel = 2.0
	SurveyRedLevel    = 5.0
)

// Yearly dosimeter action levels in mrem
const (
	DosimeterYellowLevel = 100.0
	DosimeterRedLevel    = 200.0
)

// SurveyLevel grades an area survey reading in mR/hr
func SurveyLevel(reading float64) ComplianceLevel {
	return gradeReading(reading, SurveyYellowLevel, SurveyRedLevel)
}

// DosimeterLevel grades a technologist's yearly dose in mrem
func DosimeterLevel(yearly float64) ComplianceLevel {
	return gradeReading(yearly, DosimeterYellowLevel, DosimeterRedLevel)
}

func gradeReading(v, yellow, red float64) ComplianceLevel {
	switch {
	case v < yellow:
		return ComplianceGreen
	case v < red:
		return ComplianceYellow
	default:
		return ComplianceRed
	}
}

// ActionPriority ranks an action item
type ActionPriority string

const (
	ActionPriorityLow      ActionPriority = "Low"
	ActionPriorityMedium   ActionPriority = "Medium"
	ActionPriorityHigh     ActionPriority = "High"
	ActionPriorityCritical ActionPriority = "Critical"
)

// IsValid reports whether p is a known priority
func (p ActionPriority) IsValid() bool {
	switch p {
	case ActionPriorityLow, ActionPriorityMedium, ActionPriorityHigh, ActionPriorityCritical:
		return true
	}
	return false
}

// ActionStatus tracks an action item's progress
type ActionStatus string

const (
	ActionStatusPending    ActionStatus = "Pending"
	ActionStatusInProgress ActionStatus = "In Progress"
	ActionStatusCompleted  ActionStatus = "Completed"
)

// ActionStatuses lists the action item statuses in workflow order
var ActionStatuses = []string{string(ActionStatusPending), string(ActionStatusInProgress), string(ActionStatusCompleted)}

// IsValid reports whether s is a known status
func (s ActionStatus) IsValid() bool {
	switch s {
	case ActionStatusPending, ActionStatusInProgress, ActionStatusCompleted:
		return true
	}
	return false
}

// ActionItem is a compliance task with a due date
type ActionItem struct {
	ID        string         `json:"id" yaml:"id"`
	DueDate   string         `json:"due_date" yaml:"due_date"`
	Title     string         `json:"title" yaml:"title"`
	Priority  ActionPriority `json:"priority" yaml:"priority"`
	Assignee  string         `json:"assignee" yaml:"assignee"`
	Status    ActionStatus   `json:"status" yaml:"status"`
	Completed bool           `json:"completed" yaml:"completed"`
}

// IsOpenCritical reports whether a critical item is still outstanding
func (a *ActionItem) IsOpenCritical() bool {
	return a.Priority == ActionPriorityCritical && !a.Completed
}

// DailyAreaSurvey is one survey meter reading of a location
type DailyAreaSurvey struct {
	ID           string          `json:"id" yaml:"id"`
	Date         string          `json:"date" yaml:"date"`
	Location     string          `json:"location" yaml:"location"`
	DoseRate     float64         `json:"dose_rate" yaml:"dose_rate"`
	Units        string          `json:"units" yaml:"units"`
	Status       ComplianceLevel `json:"status" yaml:"status"`
	Technologist string          `json:"technologist" yaml:"technologist"`
}

// WeeklyAreaSurvey summarizes a week of readings for a location
type WeeklyAreaSurvey struct {
	ID           string          `json:"id" yaml:"id"`
	Week         string          `json:"week" yaml:"week"`
	Location     string          `json:"location" yaml:"location"`
	MaxReading   float64         `json:"max_reading" yaml:"max_reading"`
	AvgReading   float64         `json:"avg_reading" yaml:"avg_reading"`
	Status       ComplianceLevel `json:"status" yaml:"status"`
	Technologist string          `json:"technologist" yaml:"technologist"`
}

// Dosimeter holds a technologist's accumulated exposure in mrem. There is
// one record per technologist.
type Dosimeter struct {
	ID            string          `json:"id" yaml:"id"`
	Technologist  string          `json:"technologist" yaml:"technologist"`
	MonthlyDose   float64         `json:"monthly_dose" yaml:"monthly_dose"`
	QuarterlyDose float64         `json:"quarterly_dose" yaml:"quarterly_dose"`
	YearlyDose    float64         `json:"yearly_dose" yaml:"yearly_dose"`
	Status        ComplianceLevel `json:"status" yaml:"status"`
	LastUpdate    string          `json:"last_update" yaml:"last_update"`
}

// QCResult is the outcome of an instrument quality control test
type QCResult string

const (
	QCPass QCResult = "Pass"
	QCFail QCResult = "Fail"
)

// QCResults lists the possible results
var QCResults = []string{string(QCPass), string(QCFail)}

// InstrumentQC is a quality control test of a hot lab instrument
type InstrumentQC struct {
	ID           string   `json:"id" yaml:"id"`
	Date         string   `json:"date" yaml:"date"`
	Instrument   string   `json:"instrument" yaml:"instrument"`
	TestType     string   `json:"test_type" yaml:"test_type"`
	Result       QCResult `json:"result" yaml:"result"`
	Technologist string   `json:"technologist" yaml:"technologist"`
	Comments     string   `json:"comments,omitempty" yaml:"comments,omitempty"`
}

// PatientDose logs the activity administered to a patient, in mCi
type PatientDose struct {
	ID           string  `json:"id" yaml:"id"`
	Date         string  `json:"date" yaml:"date"`
	PatientName  string  `json:"patient_name" yaml:"patient_name"`
	Isotope      string  `json:"isotope" yaml:"isotope"`
	Dose         float64 `json:"dose" yaml:"dose"`
	Technologist string  `json:"technologist" yaml:"technologist"`
}

// SealedSource is a calibration or check source held on site, activity in µCi
type SealedSource struct {
	ID            string  `json:"id" yaml:"id"`
	Isotope       string  `json:"isotope" yaml:"isotope"`
	Activity      float64 `json:"activity" yaml:"activity"`
	Location      string  `json:"location" yaml:"location"`
	LastInventory string  `json:"last_inventory" yaml:"last_inventory"`
	Technologist  string  `json:"technologist" yaml:"technologist"`
}

// TracerDirection says whether a tracer arrived or left
type TracerDirection string

const (
	TracerCheckIn  TracerDirection = "Check In"
	TracerCheckOut TracerDirection = "Check Out"
)

// TracerDirections lists both directions
var TracerDirections = []string{string(TracerCheckIn), string(TracerCheckOut)}

// TracerMovement records a tracer checked in from or out to a vendor, activity in mCi
type TracerMovement struct {
	ID           string          `json:"id" yaml:"id"`
	Date         string          `json:"date" yaml:"date"`
	Isotope      string          `json:"isotope" yaml:"isotope"`
	Activity     float64         `json:"activity" yaml:"activity"`
	Type         TracerDirection `json:"type" yaml:"type"`
	Technologist string          `json:"technologist" yaml:"technologist"`
	Vendor       string          `json:"vendor" yaml:"vendor"`
}

// WasteBinStatus says whether a bin still accepts waste
type WasteBinStatus string

const (
	WasteBinActive WasteBinStatus = "Active"
	WasteBinFull   WasteBinStatus = "Full"
)

// WasteBinStatuses lists both bin states
var WasteBinStatuses = []string{string(WasteBinActive), string(WasteBinFull)}

// WasteBin is a radioactive waste container, volume in L and activity in µCi
type WasteBin struct {
	ID           string         `json:"id" yaml:"id"`
	BinName      string         `json:"bin_name" yaml:"bin_name"`
	BinNumber    string         `json:"bin_number" yaml:"bin_number"`
	Location     string         `json:"location" yaml:"location"`
	Volume       float64        `json:"volume" yaml:"volume"`
	Activity     float64        `json:"activity" yaml:"activity"`
	Status       WasteBinStatus `json:"status" yaml:"status"`
	LastUpdate   string         `json:"last_update" yaml:"last_update"`
	Technologist string         `json:"technologist" yaml:"technologist"`
}

// RegisterSummary counts the records of one register by category.
// Attention counts records that need follow-up, such as Red readings,
// failed QC or full bins. Quantities sum the register's measured amount
// (activity or dose) per category.
type RegisterSummary struct {
	Register      string             `json:"register"`
	Total         int                `json:"total"`
	Counts        map[string]int     `json:"counts"`
	Attention     int                `json:"attention"`
	Quantities    map[string]float64 `json:"quantities,omitempty"`
	TotalQuantity float64            `json:"total_quantity,omitempty"`
}

// RegisterReport is the tabular form of a register handed to the exporter
type RegisterReport struct {
	Title   string
	Sheet   string
	Headers []string
	Rows    [][]interface{}
	Totals  [][]interface{}
}
