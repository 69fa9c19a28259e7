package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zatekoja/doseordering/internal/domain/entities"
)

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	out, _, err := runCLIWithLog(t, args...)
	return out, err
}

// runCLIWithLog also returns what the command logged to stderr
func runCLIWithLog(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv("APP_ENV", "test")

	var out, errOut bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestRecommend_AllDates(t *testing.T) {
	out, err := runCLI(t, "recommend")

	require.NoError(t, err)
	assert.Contains(t, out, "Date Filter: All Dates")
	assert.Contains(t, out, "ISOTOPE")
	assert.Contains(t, out, "Total Order Cost:")
}

func TestRecommend_NoAppointments(t *testing.T) {
	out, err := runCLI(t, "recommend", "--date", "1999-01-01")

	require.NoError(t, err)
	assert.Contains(t, out, "Date Filter: 1999-01-01")
	assert.NotContains(t, out, "ISOTOPE")
}

func TestRecommend_InvalidDate(t *testing.T) {
	_, err := runCLI(t, "recommend", "--date", "01/01/1999")

	assert.Error(t, err)
}

func TestRecommend_DateAndRangeConflict(t *testing.T) {
	_, err := runCLI(t, "recommend", "--date", "2025-11-10", "--start", "2025-11-10")

	assert.Error(t, err)
}

func TestRecommend_Export(t *testing.T) {
	path := filepath.Join(t.TempDir(), "orders.xlsx")

	out, err := runCLI(t, "recommend", "--start", "2025-11-10", "--end", "2025-11-14", "--export="+path)

	require.NoError(t, err)
	assert.Contains(t, out, "Report written to "+path)
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.NotZero(t, info.Size())
}

func TestRecommend_ExportToDir(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("EXPORT_DIR", dir)

	_, err := runCLI(t, "recommend", "--export")

	require.NoError(t, err)
	matches, err := filepath.Glob(filepath.Join(dir, "dose-ordering-*.xlsx"))
	require.NoError(t, err)
	assert.Len(t, matches, 1)
}

func TestRecommend_ExportReusesPrintedPlan(t *testing.T) {
	path := filepath.Join(t.TempDir(), "orders.xlsx")

	_, logged, err := runCLIWithLog(t, "recommend", "--export="+path)

	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(logged, "order plan calculated"))
	_, err = os.Stat(path)
	assert.NoError(t, err)
}

func TestPrintPlan_Table(t *testing.T) {
	plan := &entities.OrderPlan{
		Filter: entities.SingleDate("2025-11-10"),
		Recommendations: []entities.OrderRecommendation{
			{Substance: "FDG", Quantity: 2, Vendor: "NorthStar", UnitPrice: 495, TotalCost: 990, AvgReimbursement: 86, ProfitMargin: -139.6},
			{Substance: "NaF", Quantity: 1, Vendor: "NorthStar", UnitPrice: 445, TotalCost: 445},
		},
		Summary:  entities.OrderSummary{TotalQuantity: 3, TotalCost: 1435},
		Unpriced: []string{"Axumin"},
	}

	var out bytes.Buffer
	printPlan(&out, plan)
	text := out.String()

	assert.Contains(t, text, "Date Filter: 2025-11-10")
	assert.NotContains(t, text, "\x1b[", "no escape codes outside a terminal")

	lines := strings.Split(text, "\n")
	var header, fdg string
	for _, line := range lines {
		switch {
		case strings.Contains(line, "ISOTOPE"):
			header = line
		case strings.Contains(line, "FDG"):
			fdg = line
		}
	}
	require.NotEmpty(t, header)
	require.NotEmpty(t, fdg)
	for _, h := range planHeaders {
		assert.Contains(t, header, h)
	}
	for _, cell := range []string{"2", "NorthStar", "495.00", "990.00", "86.0", "-139.60"} {
		assert.Contains(t, fdg, cell)
	}
	assert.Contains(t, text, "Total Order Cost: 1435.00")
	assert.Contains(t, text, "No vendor price: Axumin")
}
