package report

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tally-dev/tally/internal/analytics"
	"github.com/tally-dev/tally/internal/model"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestMoney(t *testing.T) {
	p := New(nil, "EUR")
	tests := []struct{ in, want string }{
		{"0", "0.00 EUR"},
		{"1234.5", "1,234.50 EUR"},
		{"1000000", "1,000,000.00 EUR"},
		{"-1234.567", "-1,234.57 EUR"},
		{"-0.5", "-0.50 EUR"},
		{"0.005", "0.01 EUR"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, p.Money(dec(tt.in)), tt.in)
	}
	assert.Equal(t, "12.00", New(nil, "").Money(dec("12")))
}

func TestBar(t *testing.T) {
	assert.Equal(t, "["+strings.Repeat(".", barWidth)+"]", bar(dec("0")))
	assert.Equal(t, "["+strings.Repeat("#", barWidth)+"]", bar(dec("100")))
	assert.Equal(t, "["+strings.Repeat("#", 10)+strings.Repeat(".", 10)+"]", bar(dec("50")))
	assert.Equal(t, "["+strings.Repeat("#", barWidth)+"]", bar(dec("250")))
}

func TestOverview(t *testing.T) {
	doc := model.NewDocument()
	doc.Payments = []model.Payment{
		{Amount: dec("1200"), IsPaid: true, PaidDate: model.NewDate(2024, time.June, 3)},
		{Amount: dec("400"), ExpectedDate: model.NewDate(2024, time.July, 1)},
	}
	now := time.Date(2024, time.June, 15, 12, 0, 0, 0, time.UTC)

	var buf bytes.Buffer
	New(&buf, "EUR").Overview(analytics.Overview(doc, now), analytics.FinanceOverview(doc))
	out := buf.String()
	assert.Contains(t, out, "Overview · Jun 2024")
	assert.Contains(t, out, "Revenue this month")
	assert.Contains(t, out, "1,200.00 EUR")
	assert.Contains(t, out, "400.00 EUR")
	assert.Contains(t, out, "Profit margin         100%")
}

func TestBreakdownShares(t *testing.T) {
	var buf bytes.Buffer
	groups := []analytics.GroupTotal{{Key: "software", Total: dec("75")}, {Key: "office", Total: dec("25")}}
	New(&buf, "").Breakdown("Expenses by category", groups, nil)

	out := buf.String()
	assert.Contains(t, out, "software")
	assert.Contains(t, out, "75.00  75%")
	assert.Contains(t, out, "25.00  25%")

	buf.Reset()
	New(&buf, "").Breakdown("Empty", nil, nil)
	assert.Contains(t, buf.String(), "(none)")
}

func TestRanking(t *testing.T) {
	var buf bytes.Buffer
	groups := []analytics.GroupTotal{{Key: "p1", Total: dec("3.5")}, {Key: "p2", Total: dec("1")}}
	names := map[string]string{"p1": "Site", "p2": "Logo"}
	New(&buf, "EUR").Ranking("Time per project", groups, func(k string) string { return names[k] }, true)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[1], "1st Site")
	assert.Contains(t, lines[1], "3.50h")
	assert.Contains(t, lines[2], "2nd Logo")
}

func TestPaymentsListsOverdue(t *testing.T) {
	now := time.Date(2024, time.June, 15, 12, 0, 0, 0, time.UTC)
	part := analytics.PartitionPayments([]model.Payment{
		{ProjectID: "p1", Amount: dec("300"), ExpectedDate: model.NewDate(2024, time.June, 5)},
		{Amount: dec("100"), IsPaid: true, PaidDate: model.NewDate(2024, time.June, 1)},
	}, now)

	var buf bytes.Buffer
	New(&buf, "").Payments(part, func(string) string { return "Site" })
	out := buf.String()
	assert.Contains(t, out, "Overdue (1)")
	assert.Contains(t, out, "2024-06-05")
	assert.Contains(t, out, "Site, 10 days late")
}

func TestGoals(t *testing.T) {
	goals := []analytics.GoalStatus{
		{Goal: model.Goal{Title: "Revenue", Type: model.GoalRevenue, TargetAmount: dec("1000")}, Current: dec("1000"), Progress: dec("100"), Completed: true},
		{Goal: model.Goal{Title: "Clients", Type: model.GoalClients, TargetAmount: dec("10"), Deadline: model.NewDate(2024, time.December, 31)}, Current: dec("4"), Progress: dec("40"), DaysLeft: 30},
	}
	var buf bytes.Buffer
	New(&buf, "EUR").Goals(goals)
	out := buf.String()
	assert.Contains(t, out, "done")
	assert.Contains(t, out, "1,000.00 EUR / 1,000.00 EUR")
	assert.Contains(t, out, "4 / 10")
	assert.Contains(t, out, "30 days left")
}

func TestWriteMonthlySeries(t *testing.T) {
	now := time.Date(2024, time.June, 15, 0, 0, 0, 0, time.UTC)
	series := analytics.MonthlySeries([]model.Payment{
		{Amount: dec("1000.5"), IsPaid: true, PaidDate: model.NewDate(2024, time.May, 3)},
	}, []model.Expense{
		{Amount: dec("200"), Date: model.NewDate(2024, time.June, 2)},
	}, 2, now)

	var buf bytes.Buffer
	require.NoError(t, WriteMonthlySeries(&buf, series))
	want := "year,month,label,revenue,expenses,profit\n" +
		"2024,05,May 2024,1000.50,0.00,1000.50\n" +
		"2024,06,Jun 2024,0.00,200.00,-200.00\n"
	assert.Equal(t, want, buf.String())
}
