package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/tally-dev/tally/internal/model"
)

func TestGoalProgress_RevenueScenario(t *testing.T) {
	now := at(2024, time.June, 15, 0, 0)
	doc := model.NewDocument()
	doc.Payments = []model.Payment{
		paid("1000", date(2024, time.June, 1)),
		unpaid("500", date(2024, time.June, 30)),
	}
	goal := model.Goal{Type: model.GoalRevenue, TargetAmount: dec("1200"), Deadline: date(2024, time.December, 31)}

	st := GoalProgress(goal, doc, now)
	assert.True(t, st.Current.Equal(dec("1000")), "current = %s", st.Current)
	assert.True(t, st.Progress.Equal(dec("83.33")), "progress = %s", st.Progress)
	assert.False(t, st.Completed)
	assert.False(t, st.Expired)
	assert.Equal(t, 199, st.DaysLeft)
}

func TestCurrentAmount_ByType(t *testing.T) {
	doc := model.NewDocument()
	doc.Payments = []model.Payment{paid("800", date(2024, time.May, 1)), unpaid("200", date(2024, time.May, 1))}
	doc.Expenses = []model.Expense{expense("1000", model.ExpenseOther, date(2024, time.May, 2))}
	doc.Clients = []model.Client{{Status: model.ClientActive}, {Status: model.ClientInactive}, {}}
	doc.Projects = []model.Project{{Status: model.ProjectPaid}, {Status: model.ProjectDelivered}, {Status: model.ProjectPaid}}

	tests := []struct {
		typ  model.GoalType
		want string
	}{
		{model.GoalRevenue, "800"},
		{model.GoalClients, "2"},
		{model.GoalProjects, "2"},
		{model.GoalSavings, "-200"},
		{model.GoalType("unknown"), "0"},
	}
	for _, tt := range tests {
		got := CurrentAmount(model.Goal{Type: tt.typ}, doc)
		assert.True(t, got.Equal(dec(tt.want)), "%s: got %s", tt.typ, got)
	}
	assert.True(t, CurrentAmount(model.Goal{Type: model.GoalRevenue}, nil).IsZero())
}

func TestGoalProgress_Clamped(t *testing.T) {
	now := at(2024, time.June, 15, 0, 0)
	doc := model.NewDocument()
	doc.Payments = []model.Payment{paid("5000", date(2024, time.June, 1))}
	doc.Expenses = []model.Expense{expense("9000", model.ExpenseOther, date(2024, time.June, 1))}

	over := GoalProgress(model.Goal{Type: model.GoalRevenue, TargetAmount: dec("1000")}, doc, now)
	assert.True(t, over.Progress.Equal(dec("100")))
	assert.True(t, over.Completed)

	negative := GoalProgress(model.Goal{Type: model.GoalSavings, TargetAmount: dec("1000")}, doc, now)
	assert.True(t, negative.Current.Equal(dec("-4000")))
	assert.True(t, negative.Progress.Equal(dec("0")))
	assert.False(t, negative.Completed)
}

func TestGoalProgress_ZeroTarget(t *testing.T) {
	now := at(2024, time.June, 15, 0, 0)
	doc := model.NewDocument()

	st := GoalProgress(model.Goal{Type: model.GoalRevenue}, doc, now)
	assert.True(t, st.Progress.Equal(dec("100")))
	assert.True(t, st.Completed)

	doc.Expenses = []model.Expense{expense("10", model.ExpenseOther, date(2024, time.June, 1))}
	st = GoalProgress(model.Goal{Type: model.GoalSavings}, doc, now)
	assert.True(t, st.Progress.IsZero(), "negative current against zero target")
	assert.False(t, st.Completed)
}

func TestGoalProgress_Monotonic(t *testing.T) {
	now := at(2024, time.June, 15, 0, 0)
	goal := model.Goal{Type: model.GoalRevenue, TargetAmount: dec("3000")}
	doc := model.NewDocument()

	prev := GoalProgress(goal, doc, now).Progress
	for i := 0; i < 20; i++ {
		doc.Payments = append(doc.Payments, paid("250", date(2024, time.June, 1)))
		cur := GoalProgress(goal, doc, now).Progress
		assert.True(t, cur.GreaterThanOrEqual(prev), "step %d: %s < %s", i, cur, prev)
		assert.True(t, cur.GreaterThanOrEqual(dec("0")) && cur.LessThanOrEqual(dec("100")))
		prev = cur
	}
	assert.True(t, prev.Equal(dec("100")))
}

func TestGoalProgress_Deadlines(t *testing.T) {
	now := at(2024, time.June, 15, 10, 0)
	doc := model.NewDocument()
	doc.Payments = []model.Payment{paid("100", date(2024, time.June, 1))}

	tests := []struct {
		name          string
		target        string
		deadline      model.Date
		wantDaysLeft  int
		wantCompleted bool
		wantExpired   bool
	}{
		{"future incomplete", "500", date(2024, time.June, 20), 5, false, false},
		{"past incomplete", "500", date(2024, time.June, 1), -14, false, true},
		{"past but completed", "50", date(2024, time.June, 1), -14, true, false},
		{"no deadline", "500", model.Date{}, 0, false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := GoalProgress(model.Goal{Type: model.GoalRevenue, TargetAmount: dec(tt.target), Deadline: tt.deadline}, doc, now)
			assert.Equal(t, tt.wantDaysLeft, st.DaysLeft)
			assert.Equal(t, tt.wantCompleted, st.Completed)
			assert.Equal(t, tt.wantExpired, st.Expired)
		})
	}
}

func TestGoalProgress_DaysLeftUsesLocalDay(t *testing.T) {
	hawaii := time.FixedZone("HST", -10*60*60)
	doc := model.NewDocument()
	goal := model.Goal{Type: model.GoalRevenue, TargetAmount: dec("500"), Deadline: date(2024, time.June, 16)}

	// 20:00 on the 15th in Honolulu is already the 16th in UTC.
	st := GoalProgress(goal, doc, time.Date(2024, time.June, 15, 20, 0, 0, 0, hawaii))
	assert.Equal(t, 1, st.DaysLeft)
	assert.False(t, st.Expired)

	st = GoalProgress(goal, doc, time.Date(2024, time.June, 16, 23, 0, 0, 0, hawaii))
	assert.Equal(t, 0, st.DaysLeft, "deadline day itself")
	assert.False(t, st.Expired)

	st = GoalProgress(goal, doc, time.Date(2024, time.June, 17, 1, 0, 0, 0, hawaii))
	assert.Equal(t, -1, st.DaysLeft)
	assert.True(t, st.Expired)
}

func TestGoals(t *testing.T) {
	doc := model.NewDocument()
	doc.Goals = []model.Goal{{ID: "a", Type: model.GoalClients, TargetAmount: dec("1")}, {ID: "b", Type: model.GoalProjects, TargetAmount: dec("1")}}
	doc.Clients = []model.Client{{Status: model.ClientActive}}

	got := Goals(doc, time.Now())
	assert.Len(t, got, 2)
	assert.True(t, got[0].Completed)
	assert.False(t, got[1].Completed)
	assert.Empty(t, Goals(nil, time.Now()))
}
