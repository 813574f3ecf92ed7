// Package export builds XLSX report workbooks for a selected year.
package export

import (
	"context"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/MrJamesThe3rd/tally/internal/report"
	"github.com/MrJamesThe3rd/tally/internal/transaction"
)

type Service struct {
	txs     *transaction.Service
	reports *report.Service
}

func NewService(txSvc *transaction.Service, reportSvc *report.Service) *Service {
	return &Service{txs: txSvc, reports: reportSvc}
}

// YearWorkbook builds a workbook with three sheets: the annual summary,
// the monthly series and every transaction of the year.
func (s *Service) YearWorkbook(ctx context.Context, year int) ([]byte, error) {
	summary, err := s.reports.AnnualSummary(ctx, year)
	if err != nil {
		return nil, fmt.Errorf("building summary: %w", err)
	}

	monthly, err := s.reports.MonthlyTotals(ctx, year)
	if err != nil {
		return nil, fmt.Errorf("building monthly totals: %w", err)
	}

	txs, err := s.txs.List(ctx, transaction.ListFilter{Year: &year})
	if err != nil {
		return nil, fmt.Errorf("listing transactions: %w", err)
	}

	xlsx := excelize.NewFile()

	_ = xlsx.SetAppProps(&excelize.AppProperties{
		Application: "tally",
	})

	sheet := xlsx.GetSheetName(xlsx.GetActiveSheetIndex())
	writeSummary(xlsx, sheet, year, summary)
	_ = xlsx.SetSheetName(sheet, "Summary")

	if _, err := xlsx.NewSheet("Monthly"); err != nil {
		return nil, err
	}

	writeMonthly(xlsx, "Monthly", monthly)

	if _, err := xlsx.NewSheet("Transactions"); err != nil {
		return nil, err
	}

	writeTransactions(xlsx, "Transactions", txs)

	xlsx.SetActiveSheet(0)

	buf, err := xlsx.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("writing workbook: %w", err)
	}

	return buf.Bytes(), nil
}

// euros converts cents to a spreadsheet-friendly number. Display only;
// all arithmetic happens in cents before this point.
func euros(cents int64) float64 {
	return float64(cents) / 100
}

func writeSummary(xlsx *excelize.File, sheet string, year int, summary report.AnnualSummary) {
	rows := []struct {
		label string
		value any
	}{
		{"Year", year},
		{"Total Income", euros(summary.TotalIncome)},
		{"Total Expenses", euros(summary.TotalExpenses)},
		{"Net Flow", euros(summary.NetFlow)},
		{"Weekly Average", euros(summary.WeeklyAverage)},
	}

	for i, row := range rows {
		_ = xlsx.SetCellValue(sheet, fmt.Sprintf("A%d", i+1), row.label)
		_ = xlsx.SetCellValue(sheet, fmt.Sprintf("B%d", i+1), row.value)
	}

	_ = xlsx.SetColWidth(sheet, "A", "A", 18)
}

func writeMonthly(xlsx *excelize.File, sheet string, monthly []report.MonthlyTotal) {
	headers := []string{"Month", "Income", "Expenses", "Net"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = xlsx.SetCellValue(sheet, cell, h)
	}

	for i, m := range monthly {
		row := i + 2
		_ = xlsx.SetCellValue(sheet, fmt.Sprintf("A%d", row), m.Month.String())
		_ = xlsx.SetCellValue(sheet, fmt.Sprintf("B%d", row), euros(m.Income))
		_ = xlsx.SetCellValue(sheet, fmt.Sprintf("C%d", row), euros(m.Expenses))
		_ = xlsx.SetCellValue(sheet, fmt.Sprintf("D%d", row), euros(m.Net))
	}

	_ = xlsx.SetColWidth(sheet, "A", "A", 12)
}

func writeTransactions(xlsx *excelize.File, sheet string, txs []*transaction.Transaction) {
	headers := []string{"ID", "Date", "Type", "Amount", "Category"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = xlsx.SetCellValue(sheet, cell, h)
	}

	for i, tx := range txs {
		row := i + 2
		_ = xlsx.SetCellValue(sheet, fmt.Sprintf("A%d", row), tx.ID)
		_ = xlsx.SetCellValue(sheet, fmt.Sprintf("B%d", row), tx.Date.Format(time.DateOnly))
		_ = xlsx.SetCellValue(sheet, fmt.Sprintf("C%d", row), tx.Type)
		_ = xlsx.SetCellValue(sheet, fmt.Sprintf("D%d", row), euros(tx.Amount))
		_ = xlsx.SetCellValue(sheet, fmt.Sprintf("E%d", row), string(tx.Category))
	}

	_ = xlsx.SetColWidth(sheet, "B", "B", 12)
	_ = xlsx.SetColWidth(sheet, "C", "C", 30)
	_ = xlsx.SetColWidth(sheet, "E", "E", 22)
}
