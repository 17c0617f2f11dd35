package analytics

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/tally-dev/tally/internal/model"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func date(y int, m time.Month, d int) model.Date {
	return model.NewDate(y, m, d)
}

func at(y int, m time.Month, d, h, min int) time.Time {
	return time.Date(y, m, d, h, min, 0, 0, time.UTC)
}

func paid(amount string, on model.Date) model.Payment {
	return model.Payment{Amount: dec(amount), IsPaid: true, PaidDate: on}
}

func unpaid(amount string, expected model.Date) model.Payment {
	return model.Payment{Amount: dec(amount), ExpectedDate: expected}
}

func expense(amount string, cat model.ExpenseCategory, on model.Date) model.Expense {
	return model.Expense{Amount: dec(amount), Category: cat, Date: on}
}
