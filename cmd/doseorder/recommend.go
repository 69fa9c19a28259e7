package main

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/zatekoja/doseordering/internal/domain/entities"
	"github.com/zatekoja/doseordering/internal/server"
	"github.com/zatekoja/doseordering/pkg/config"
)

// autoExportName makes a bare --export use the generated report name
const autoExportName = "auto"

func newRecommendCmd(cfg func() *config.Config) *cobra.Command {
	var (
		date, start, end string
		exportPath       string
	)

	cmd := &cobra.Command{
		Use:   "recommend",
		Short: "Print order recommendations for confirmed appointments",
		Example: `  doseorder recommend
  doseorder recommend --date 2025-11-10
  doseorder recommend --start 2025-11-10 --end 2025-11-14 --export`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			filter := entities.AllDates()
			switch {
			case date != "":
				filter = entities.SingleDate(date)
			case start != "" || end != "":
				filter = entities.DateRange(start, end)
			}

			c := cfg()
			app, err := server.New(cmd.Context(), c)
			if err != nil {
				return err
			}

			plan, err := app.Orders.CalculatePlan(cmd.Context(), filter)
			if err != nil {
				return err
			}
			printPlan(cmd.OutOrStdout(), plan)

			if exportPath == "" {
				return nil
			}
			var buf bytes.Buffer
			name, err := app.Orders.WritePlan(cmd.Context(), plan, &buf)
			if err != nil {
				return err
			}
			path := exportPath
			if path == autoExportName {
				path = filepath.Join(c.App.ExportDir, name)
			}
			if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
				return fmt.Errorf("failed to write report: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "\nReport written to %s\n", path)
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "single date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&start, "start", "", "range start (YYYY-MM-DD, inclusive)")
	cmd.Flags().StringVar(&end, "end", "", "range end (YYYY-MM-DD, inclusive)")
	cmd.Flags().StringVar(&exportPath, "export", "", "write an xlsx report to this path (bare flag uses EXPORT_DIR)")
	cmd.Flags().Lookup("export").NoOptDefVal = autoExportName
	cmd.MarkFlagsMutuallyExclusive("date", "start")
	cmd.MarkFlagsMutuallyExclusive("date", "end")

	return cmd
}

// planStyles are the terminal styles of the recommend output. Colors are
// dropped when out is not a terminal.
type planStyles struct {
	Title  lipgloss.Style
	Header lipgloss.Style
	Cell   lipgloss.Style
	Number lipgloss.Style
	Border lipgloss.Style
	Warn   lipgloss.Style
}

func newPlanStyles(out io.Writer) planStyles {
	r := lipgloss.NewRenderer(out)
	return planStyles{
		Title:  r.NewStyle().Bold(true),
		Header: r.NewStyle().Bold(true).Foreground(lipgloss.Color("#8BC34A")).Padding(0, 1),
		Cell:   r.NewStyle().Padding(0, 1),
		Number: r.NewStyle().Padding(0, 1).Align(lipgloss.Right),
		Border: r.NewStyle().Foreground(lipgloss.Color("#2a3850")),
		Warn:   r.NewStyle().Foreground(lipgloss.Color("#FFC107")),
	}
}

var planHeaders = []string{"ISOTOPE", "QTY", "VENDOR", "UNIT PRICE", "TOTAL COST", "AVG REIMB %", "PROFIT MARGIN"}

// planTable renders one row per recommendation; text columns are left aligned
func planTable(styles planStyles, plan *entities.OrderPlan) *table.Table {
	rows := make([][]string, 0, len(plan.Recommendations))
	for _, rec := range plan.Recommendations {
		rows = append(rows, []string{
			rec.Substance,
			strconv.Itoa(rec.Quantity),
			rec.Vendor,
			fmt.Sprintf("%.2f", rec.UnitPrice),
			fmt.Sprintf("%.2f", rec.TotalCost),
			fmt.Sprintf("%.1f", rec.AvgReimbursement),
			fmt.Sprintf("%.2f", rec.ProfitMargin),
		})
	}

	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(styles.Border).
		Headers(planHeaders...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return styles.Header
			case col == 0 || col == 2:
				return styles.Cell
			default:
				return styles.Number
			}
		})
}

func printPlan(out io.Writer, plan *entities.OrderPlan) {
	styles := newPlanStyles(out)

	fmt.Fprintln(out, styles.Title.Render("Date Filter: "+plan.Filter.Label()))
	if plan.NoAppointments {
		fmt.Fprintln(out, plan.Notice)
		return
	}

	fmt.Fprintln(out, planTable(styles, plan).Render())

	fmt.Fprintf(out, "\nTotal Quantity: %d\n", plan.Summary.TotalQuantity)
	fmt.Fprintf(out, "Total Order Cost: %.2f\n", plan.Summary.TotalCost)
	fmt.Fprintf(out, "Total Profit Margin: %.2f\n", plan.Summary.TotalProfitMargin)
	for _, s := range plan.Unpriced {
		fmt.Fprintln(out, styles.Warn.Render("No vendor price: "+s))
	}
}
