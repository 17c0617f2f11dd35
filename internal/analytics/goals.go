package analytics

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/tally-dev/tally/internal/model"
)

// GoalStatus is a goal with its progress recomputed from the document.
type GoalStatus struct {
	Goal      model.Goal
	Current   decimal.Decimal
	Progress  decimal.Decimal // percent in [0, 100], two decimals
	DaysLeft  int             // calendar days from now's local date; negative once passed, 0 without a deadline
	Completed bool
	Expired   bool
}

// CurrentAmount recomputes the value a goal measures:
//
//	revenue   sum of paid payments
//	clients   number of active clients
//	projects  number of completed projects
//	savings   paid payments minus all expenses (may be negative)
func CurrentAmount(goal model.Goal, doc *model.Document) decimal.Decimal {
	if doc == nil {
		return decimal.Zero
	}
	switch goal.Type {
	case model.GoalRevenue:
		return sum(paidPayments(doc.Payments), paymentAmount)
	case model.GoalClients:
		n := 0
		for _, c := range doc.Clients {
			if c.IsActive() {
				n++
			}
		}
		return decimal.NewFromInt(int64(n))
	case model.GoalProjects:
		n := 0
		for _, p := range doc.Projects {
			if p.IsCompleted() {
				n++
			}
		}
		return decimal.NewFromInt(int64(n))
	case model.GoalSavings:
		paid := sum(paidPayments(doc.Payments), paymentAmount)
		spent := sum(doc.Expenses, func(e model.Expense) decimal.Decimal { return e.Amount })
		return paid.Sub(spent)
	}
	return decimal.Zero
}

// GoalProgress recomputes a goal's current amount and derives its progress.
// A goal is completed whenever current >= target, even past its deadline;
// only an incomplete goal with a passed deadline is expired. A target of zero
// or less counts as 100% reached unless the current amount is negative.
func GoalProgress(goal model.Goal, doc *model.Document, now time.Time) GoalStatus {
	current := CurrentAmount(goal, doc)
	st := GoalStatus{
		Goal:      goal,
		Current:   current,
		Completed: current.GreaterThanOrEqual(goal.TargetAmount),
	}

	switch {
	case goal.TargetAmount.Sign() <= 0:
		if current.Sign() >= 0 {
			st.Progress = hundred
		} else {
			st.Progress = decimal.Zero
		}
	default:
		p := percent(current, goal.TargetAmount)
		if p.GreaterThan(hundred) {
			p = hundred
		}
		if p.IsNegative() {
			p = decimal.Zero
		}
		st.Progress = p.Round(2)
	}

	if !goal.Deadline.IsZero() {
		st.DaysLeft = goal.Deadline.DaysSince(model.DateOf(now))
		st.Expired = !st.Completed && st.DaysLeft < 0
	}
	return st
}

// Goals computes the status of every goal in the document.
func Goals(doc *model.Document, now time.Time) []GoalStatus {
	if doc == nil {
		return []GoalStatus{}
	}
	out := make([]GoalStatus, 0, len(doc.Goals))
	for _, g := range doc.Goals {
		out = append(out, GoalProgress(g, doc, now))
	}
	return out
}
