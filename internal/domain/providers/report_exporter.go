package providers

import (
	"io"

	"github.com/zatekoja/doseordering/internal/domain/entities"
)

// ReportExporter defines the interface for spreadsheet report rendering
type ReportExporter interface {
	// OrderReportFilename names the order report file
	OrderReportFilename() string

	// WriteOrderReport renders an order plan
	WriteOrderReport(w io.Writer, plan *entities.OrderPlan) error

	// DoseCreditReportFilename names the dose credit report file
	DoseCreditReportFilename() string

	// WriteDoseCreditReport renders a list of dose credits with ledger totals
	WriteDoseCreditReport(w io.Writer, credits []*entities.DoseCredit, summary entities.DoseCreditSummary) error

	// ScheduleReportFilename names the schedule report file
	ScheduleReportFilename() string

	// WriteScheduleReport renders appointments with schedule-wide status counts
	WriteScheduleReport(w io.Writer, appointments []*entities.Appointment, summary entities.ScheduleSummary) error

	// VendorReportFilename names the vendor report file
	VendorReportFilename() string

	// WriteVendorReport renders vendors with their price lists
	WriteVendorReport(w io.Writer, vendors []*entities.Vendor) error

	// RegisterReportFilename names a compliance register report file
	RegisterReportFilename(prefix string) string

	// WriteRegisterReport renders a compliance register
	WriteRegisterReport(w io.Writer, report *entities.RegisterReport) error
}
