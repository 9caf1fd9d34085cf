package export

import (
	"fmt"
	"io"
	"time"

	"github.com/xuri/excelize/v2"

	"bizexpense/internal/core"
)

const (
	expensesSheet = "Expenses"
	summarySheet  = "Summary"
)

// XLSXFilename names a report after now's UTC date.
func XLSXFilename(now time.Time) string {
	return "biz_expenses_" + now.UTC().Format(core.DateLayout) + ".xlsx"
}

// WriteXLSX writes a workbook with the expense rows on one sheet and the
// dashboard summary (category totals and monthly series) on a second.
func WriteXLSX(w io.Writer, expenses []core.Expense, summary core.Summary) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", expensesSheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"162A0A"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return fmt.Errorf("create header style: %w", err)
	}

	header := make([]any, len(CSVHeader))
	for i, h := range CSVHeader {
		header[i] = h
	}
	if err := f.SetSheetRow(expensesSheet, "A1", &header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	if err := f.SetCellStyle(expensesSheet, "A1", "F1", headerStyle); err != nil {
		return fmt.Errorf("style header: %w", err)
	}

	for i, e := range expenses {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := []any{
			e.Date.String(),
			e.Amount.Float(),
			string(e.Category),
			e.Description,
			string(e.PaymentMethod),
			yesNo(e.IsTaxDeductible),
		}
		if err := f.SetSheetRow(expensesSheet, cell, &row); err != nil {
			return fmt.Errorf("write row %d: %w", i+2, err)
		}
	}
	if err := f.SetColWidth(expensesSheet, "A", "F", 18); err != nil {
		return fmt.Errorf("set column width: %w", err)
	}

	if err := writeSummarySheet(f, summary, headerStyle); err != nil {
		return err
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func writeSummarySheet(f *excelize.File, summary core.Summary, headerStyle int) error {
	if _, err := f.NewSheet(summarySheet); err != nil {
		return fmt.Errorf("create summary sheet: %w", err)
	}

	rows := [][]any{
		{"Category", "Total (INR)"},
	}
	for _, ca := range summary.CategoryTotals {
		rows = append(rows, []any{string(ca.Category), ca.Amount.Float()})
	}
	rows = append(rows, []any{}, []any{fmt.Sprintf("Month (%d)", summary.Year), "Total (INR)"})
	monthHeader := len(rows)
	for m, total := range summary.Monthly {
		rows = append(rows, []any{time.Month(m + 1).String(), total.Float()})
	}
	rows = append(rows,
		[]any{},
		[]any{"Monthly Record " + summary.Stats.Period, summary.Stats.MonthTotal.Float()},
		[]any{"Annual Disbursement", summary.Stats.GrandTotal.Float()},
		[]any{"Transaction Audit", summary.Stats.Count},
		[]any{"Budget Utilization (%)", summary.Stats.Utilization},
	)

	for i, row := range rows {
		if len(row) == 0 {
			continue
		}
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(summarySheet, cell, &row); err != nil {
			return fmt.Errorf("write summary row %d: %w", i+1, err)
		}
	}
	for _, r := range []int{1, monthHeader} {
		if err := f.SetCellStyle(summarySheet, fmt.Sprintf("A%d", r), fmt.Sprintf("B%d", r), headerStyle); err != nil {
			return fmt.Errorf("style summary header: %w", err)
		}
	}
	return f.SetColWidth(summarySheet, "A", "B", 24)
}
