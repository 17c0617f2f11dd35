// Package analytics derives every summary number tally shows from a
// model.Document.
//
// All functions are pure: they never modify their inputs, never fail, and
// recompute from the records they are given on every call. Empty inputs give
// zero or empty results. Records missing a date the computation needs are
// skipped. Percentages never divide by zero; a zero denominator resolves to
// 0 (or 100 where a goal target is zero).
package analytics

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

// percent returns part/whole*100, or zero when whole is zero.
func percent(part, whole decimal.Decimal) decimal.Decimal {
	if whole.IsZero() {
		return decimal.Zero
	}
	return part.Div(whole).Mul(hundred)
}

func sum[T any](records []T, amount func(T) decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, r := range records {
		total = total.Add(amount(r))
	}
	return total
}
