package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/tally-dev/tally/internal/analytics"
)

// MonthlyHeader is the header row of the monthly series CSV.
var MonthlyHeader = []string{"year", "month", "label", "revenue", "expenses", "profit"}

// MarshalMonth converts one month to a CSV row. Amounts keep two decimals.
func MarshalMonth(m analytics.MonthSummary) []string {
	return []string{
		strconv.Itoa(m.Year),
		fmt.Sprintf("%02d", int(m.Month)),
		m.Label,
		m.Revenue.StringFixed(2),
		m.Expenses.StringFixed(2),
		m.Profit.StringFixed(2),
	}
}

// WriteMonthlySeries writes series as CSV, oldest month first.
func WriteMonthlySeries(w io.Writer, series []analytics.MonthSummary) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(MonthlyHeader); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for i, m := range series {
		if err := cw.Write(MarshalMonth(m)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	cw.Flush()
	return cw.Error()
}
