package analytics

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/tally-dev/tally/internal/model"
)

// OverduePayment is an unpaid payment whose expected date has passed.
type OverduePayment struct {
	model.Payment
	DaysOverdue int // always >= 1
}

// PaymentPartition splits payments into three disjoint sets.
type PaymentPartition struct {
	Paid    []model.Payment
	Pending []model.Payment
	Overdue []OverduePayment
}

// PartitionPayments puts every payment in exactly one of paid, overdue
// (unpaid, expected before today) or pending (unpaid, expected today, later,
// or with no expected date). Days overdue count whole calendar days between
// the expected date and now's date.
func PartitionPayments(payments []model.Payment, now time.Time) PaymentPartition {
	today := model.DateOf(now)
	part := PaymentPartition{
		Paid:    []model.Payment{},
		Pending: []model.Payment{},
		Overdue: []OverduePayment{},
	}
	for _, p := range payments {
		switch {
		case p.IsPaid:
			part.Paid = append(part.Paid, p)
		case !p.ExpectedDate.IsZero() && p.ExpectedDate.Before(today):
			part.Overdue = append(part.Overdue, OverduePayment{
				Payment:     p,
				DaysOverdue: today.DaysSince(p.ExpectedDate),
			})
		default:
			part.Pending = append(part.Pending, p)
		}
	}
	return part
}

// PaidTotal sums the paid set.
func (pp PaymentPartition) PaidTotal() decimal.Decimal {
	return sum(pp.Paid, paymentAmount)
}

// PendingTotal sums the pending set.
func (pp PaymentPartition) PendingTotal() decimal.Decimal {
	return sum(pp.Pending, paymentAmount)
}

// OverdueTotal sums the overdue set.
func (pp PaymentPartition) OverdueTotal() decimal.Decimal {
	return sum(pp.Overdue, func(o OverduePayment) decimal.Decimal { return o.Amount })
}

// Len is the number of partitioned payments.
func (pp PaymentPartition) Len() int {
	return len(pp.Paid) + len(pp.Pending) + len(pp.Overdue)
}

func paymentAmount(p model.Payment) decimal.Decimal { return p.Amount }

func paidPayments(payments []model.Payment) []model.Payment {
	var out []model.Payment
	for _, p := range payments {
		if p.IsPaid {
			out = append(out, p)
		}
	}
	return out
}
