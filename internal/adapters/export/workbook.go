// Package export writes the order, schedule, vendor, dose credit and
// compliance register reports as xlsx workbooks.
package export

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/zatekoja/doseordering/internal/domain/entities"
)

const (
	// OrdersSheet is the sheet holding the order report
	OrdersSheet = "Orders"
	// DoseCreditsSheet is the sheet holding the dose credit report
	DoseCreditsSheet = "Dose Credits"
	// ScheduleSheet is the sheet holding the schedule report
	ScheduleSheet = "Schedule"
	// VendorsSheet is the sheet holding the vendor report
	VendorsSheet = "Vendors"

	// ContentType is the MIME type of the generated workbooks
	ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

	currencyFormat = "$#,##0.00"
	percentFormat  = "0.0\"%\""
)

// Exporter renders reports into workbooks
type Exporter struct {
	now func() time.Time
}

// NewExporter creates an exporter stamped with the wall clock
func NewExporter() *Exporter {
	return &Exporter{now: time.Now}
}

// NewExporterWithClock creates an exporter with a fixed clock
func NewExporterWithClock(now func() time.Time) *Exporter {
	return &Exporter{now: now}
}

// OrderReportFilename names the order workbook after the generation day
func (e *Exporter) OrderReportFilename() string {
	return fmt.Sprintf("dose-ordering-%s.xlsx", e.now().Format(entities.DateLayout))
}

// DoseCreditReportFilename names the credit workbook after the generation day
func (e *Exporter) DoseCreditReportFilename() string {
	return fmt.Sprintf("dose-credits-%s.xlsx", e.now().Format(entities.DateLayout))
}

// ScheduleReportFilename names the schedule workbook after the generation day
func (e *Exporter) ScheduleReportFilename() string {
	return fmt.Sprintf("schedule-%s.xlsx", e.now().Format(entities.DateLayout))
}

// VendorReportFilename names the vendor workbook after the generation day
func (e *Exporter) VendorReportFilename() string {
	return fmt.Sprintf("vendor-management-%s.xlsx", e.now().Format(entities.DateLayout))
}

// RegisterReportFilename names a compliance register workbook, for example
// "waste-management-2025-11-09.xlsx"
func (e *Exporter) RegisterReportFilename(prefix string) string {
	return fmt.Sprintf("%s-%s.xlsx", prefix, e.now().Format(entities.DateLayout))
}

// WriteOrderReport writes the order plan: title block, one row per
// recommendation, then the totals.
func (e *Exporter) WriteOrderReport(w io.Writer, plan *entities.OrderPlan) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", OrdersSheet); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}

	sw := newSheetWriter(f, OrdersSheet)
	sw.row("Dose Ordering Report")
	sw.row("Generated: " + e.now().Format(time.RFC1123))
	sw.row("Date Filter: " + plan.Filter.Label())
	sw.row("Based on Confirmed Appointments Only")
	if plan.NoAppointments {
		sw.row(plan.Notice)
	}
	sw.row()
	sw.row("Isotope", "Quantity", "Vendor", "Unit Price", "Total Cost", "Avg Reimbursement %", "Profit Margin")

	first := sw.next
	for _, rec := range plan.Recommendations {
		sw.row(rec.Substance, rec.Quantity, rec.Vendor, rec.UnitPrice, rec.TotalCost, rec.AvgReimbursement, rec.ProfitMargin)
	}
	last := sw.next - 1

	sw.row()
	sw.row("Total Quantity", plan.Summary.TotalQuantity)
	costRow := sw.next
	sw.row("Total Order Cost", plan.Summary.TotalCost)
	sw.row("Total Profit Margin", plan.Summary.TotalProfitMargin)
	for _, u := range plan.Unpriced {
		sw.row("No vendor price", u)
	}

	if last >= first {
		sw.style("D", first, "E", last, currencyFormat)
		sw.style("F", first, "F", last, percentFormat)
		sw.style("G", first, "G", last, currencyFormat)
	}
	sw.style("B", costRow, "B", costRow+1, currencyFormat)

	if sw.err != nil {
		return fmt.Errorf("failed to write order report: %w", sw.err)
	}
	return writeTo(f, w)
}

// WriteDoseCreditReport writes the given credits and the ledger counts
func (e *Exporter) WriteDoseCreditReport(w io.Writer, credits []*entities.DoseCredit, summary entities.DoseCreditSummary) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", DoseCreditsSheet); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}

	sw := newSheetWriter(f, DoseCreditsSheet)
	sw.row("Dose Credit Report")
	sw.row("Generated: " + e.now().Format(time.RFC1123))
	sw.row()
	sw.row("ID", "Patient ID", "Patient Name", "Isotope", "Schedule Date", "Submitted Date", "Received Date", "Reason for Credit", "Status")
	for _, c := range credits {
		received, status := "Pending", "Pending"
		if c.IsReceived() {
			received, status = c.ReceivedDate, "Received"
		}
		sw.row(c.ID, c.PatientID, c.PatientName, c.Substance, c.ScheduleDate, c.SubmittedDate, received, c.Reason, status)
	}
	sw.row()
	sw.row("Total Credits", summary.Total)
	sw.row("Pending", summary.Pending)
	sw.row("Received", summary.Received)

	if sw.err != nil {
		return fmt.Errorf("failed to write dose credit report: %w", sw.err)
	}
	return writeTo(f, w)
}

// WriteScheduleReport writes the given appointments followed by the status
// counts of the whole schedule
func (e *Exporter) WriteScheduleReport(w io.Writer, appointments []*entities.Appointment, summary entities.ScheduleSummary) error {
	f, sw, err := newReport(ScheduleSheet)
	if err != nil {
		return err
	}
	defer f.Close()

	sw.row("Schedule Report")
	sw.row("Generated: " + e.now().Format(time.RFC1123))
	sw.row()
	sw.row("ID", "Patient Name", "Date", "Scan Time", "Isotope", "Insurance", "Status")
	for _, a := range appointments {
		sw.row(a.ID, a.PatientName, a.Date, a.ScanTime, a.Substance, a.Insurance, string(a.Status))
	}
	sw.row()
	sw.row(string(entities.AppointmentStatusConfirmed), summary.Confirmed)
	sw.row(string(entities.AppointmentStatusPendingAuthorization), summary.PendingAuthorization)
	sw.row(string(entities.AppointmentStatusScheduled), summary.Scheduled)
	sw.row(string(entities.AppointmentStatusCanceled), summary.Canceled)

	if sw.err != nil {
		return fmt.Errorf("failed to write schedule report: %w", sw.err)
	}
	return writeTo(f, w)
}

// WriteVendorReport writes one row per vendor. Isotopes and prices are
// joined into single cells in isotope name order.
func (e *Exporter) WriteVendorReport(w io.Writer, vendors []*entities.Vendor) error {
	f, sw, err := newReport(VendorsSheet)
	if err != nil {
		return err
	}
	defer f.Close()

	sw.row("Vendor Management Report")
	sw.row("Generated: " + e.now().Format(time.RFC1123))
	sw.row()
	sw.row("ID", "Vendor Name", "Payment Terms", "Delivery Window", "Available Isotopes", "Pricing")
	for _, v := range vendors {
		isotopes := v.AvailableSubstances()
		prices := make([]string, 0, len(isotopes))
		for _, iso := range isotopes {
			prices = append(prices, fmt.Sprintf("%s: $%.2f", iso, v.Pricing[iso]))
		}
		sw.row(v.ID, v.Name, v.PaymentTerms, v.DeliveryWindow, strings.Join(isotopes, "; "), strings.Join(prices, "; "))
	}

	if sw.err != nil {
		return fmt.Errorf("failed to write vendor report: %w", sw.err)
	}
	return writeTo(f, w)
}

// WriteRegisterReport writes a compliance register: title block, header,
// one row per record, then the totals
func (e *Exporter) WriteRegisterReport(w io.Writer, report *entities.RegisterReport) error {
	f, sw, err := newReport(report.Sheet)
	if err != nil {
		return err
	}
	defer f.Close()

	sw.row(report.Title)
	sw.row("Generated: " + e.now().Format(time.RFC1123))
	sw.row()
	sw.row(toCells(report.Headers)...)
	for _, r := range report.Rows {
		sw.row(r...)
	}
	if len(report.Totals) > 0 {
		sw.row()
		for _, t := range report.Totals {
			sw.row(t...)
		}
	}

	if sw.err != nil {
		return fmt.Errorf("failed to write %s report: %w", strings.ToLower(report.Title), sw.err)
	}
	return writeTo(f, w)
}

// newReport creates a workbook whose only sheet is named sheet
func newReport(sheet string) (*excelize.File, *sheetWriter, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		f.Close()
		return nil, nil, fmt.Errorf("failed to name sheet: %w", err)
	}
	return f, newSheetWriter(f, sheet), nil
}

func toCells(values []string) []interface{} {
	cells := make([]interface{}, len(values))
	for i, v := range values {
		cells[i] = v
	}
	return cells
}

func writeTo(f *excelize.File, w io.Writer) error {
	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

// sheetWriter appends rows and keeps the first error
type sheetWriter struct {
	f     *excelize.File
	sheet string
	next  int
	err   error
}

func newSheetWriter(f *excelize.File, sheet string) *sheetWriter {
	return &sheetWriter{f: f, sheet: sheet, next: 1}
}

func (s *sheetWriter) row(values ...interface{}) {
	defer func() { s.next++ }()
	if s.err != nil || len(values) == 0 {
		return
	}
	cell, err := excelize.CoordinatesToCellName(1, s.next)
	if err != nil {
		s.err = err
		return
	}
	s.err = s.f.SetSheetRow(s.sheet, cell, &values)
}

func (s *sheetWriter) style(fromCol string, fromRow int, toCol string, toRow int, numFmt string) {
	if s.err != nil {
		return
	}
	format := numFmt
	id, err := s.f.NewStyle(&excelize.Style{CustomNumFmt: &format})
	if err != nil {
		s.err = err
		return
	}
	s.err = s.f.SetCellStyle(s.sheet, fmt.Sprintf("%s%d", fromCol, fromRow), fmt.Sprintf("%s%d", toCol, toRow), id)
}
