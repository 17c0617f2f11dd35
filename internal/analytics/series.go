package analytics

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/tally-dev/tally/internal/model"
)

// MonthSummary is one calendar month of the revenue/expense series.
type MonthSummary struct {
	Year     int
	Month    time.Month
	Label    string // "Jan 2006"
	Revenue  decimal.Decimal
	Expenses decimal.Decimal
	Profit   decimal.Decimal
}

type monthKey struct {
	year  int
	month time.Month
}

// MonthlySeries returns monthCount calendar months ending with now's month,
// oldest first. Revenue sums paid payments bucketed by effective date (paid
// date, else expected date); expenses are bucketed by their date.
func MonthlySeries(payments []model.Payment, expenses []model.Expense, monthCount int, now time.Time) []MonthSummary {
	if monthCount <= 0 {
		return []MonthSummary{}
	}

	series := make([]MonthSummary, monthCount)
	index := make(map[monthKey]int, monthCount)
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -(monthCount - 1), 0)
	for i := range series {
		m := first.AddDate(0, i, 0)
		series[i] = MonthSummary{
			Year:     m.Year(),
			Month:    m.Month(),
			Label:    m.Format("Jan 2006"),
			Revenue:  decimal.Zero,
			Expenses: decimal.Zero,
		}
		index[monthKey{m.Year(), m.Month()}] = i
	}

	for _, p := range payments {
		if !p.IsPaid {
			continue
		}
		d := p.EffectiveDate()
		if d.IsZero() {
			continue
		}
		if i, ok := index[monthKey{d.Year(), d.Month()}]; ok {
			series[i].Revenue = series[i].Revenue.Add(p.Amount)
		}
	}

	for _, e := range expenses {
		if e.Date.IsZero() {
			continue
		}
		if i, ok := index[monthKey{e.Date.Year(), e.Date.Month()}]; ok {
			series[i].Expenses = series[i].Expenses.Add(e.Amount)
		}
	}

	for i := range series {
		series[i].Profit = series[i].Revenue.Sub(series[i].Expenses)
	}
	return series
}

// GrowthRate is the revenue change of the last month of series against the
// month before, in percent. It is zero when there is no previous revenue.
func GrowthRate(series []MonthSummary) decimal.Decimal {
	if len(series) < 2 {
		return decimal.Zero
	}
	prev := series[len(series)-2].Revenue
	cur := series[len(series)-1].Revenue
	if prev.Sign() <= 0 {
		return decimal.Zero
	}
	return percent(cur.Sub(prev), prev).Round(2)
}
