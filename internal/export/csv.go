// Package export renders the displayed expense list as CSV or as an XLSX report.
package export

import (
	"bufio"
	"io"
	"strings"
	"time"

	"bizexpense/internal/core"
)

// CSVHeader is the fixed header row.
var CSVHeader = []string{"Date", "Amount (INR)", "Category", "Description", "Payment Method", "Tax Deductible"}

// WriteCSV writes one row per expense, in the order given. Only the
// description is quoted, always, with embedded quotes doubled; rows are
// separated by "\n" with no trailing newline.
func WriteCSV(w io.Writer, expenses []core.Expense) error {
	bw := bufio.NewWriter(w)
	if _, err := bw.WriteString(strings.Join(CSVHeader, ",")); err != nil {
		return err
	}
	for _, e := range expenses {
		if err := bw.WriteByte('\n'); err != nil {
			return err
		}
		if _, err := bw.WriteString(CSVRow(e)); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// CSVRow renders one expense as a data row.
func CSVRow(e core.Expense) string {
	return strings.Join([]string{
		e.Date.String(),
		e.Amount.String(),
		string(e.Category),
		`"` + strings.ReplaceAll(e.Description, `"`, `""`) + `"`,
		string(e.PaymentMethod),
		yesNo(e.IsTaxDeductible),
	}, ",")
}

// CSVFilename names an export after now's UTC date.
func CSVFilename(now time.Time) string {
	return "biz_expenses_" + now.UTC().Format(core.DateLayout) + ".csv"
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}
