// Package report renders analytics results as terminal text and CSV.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"

	"github.com/tally-dev/tally/internal/analytics"
	"github.com/tally-dev/tally/internal/model"
)

const (
	labelWidth = 22
	barWidth   = 20
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#5f9fb0"))
	mutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6c757d"))
	goodStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#2e9e5b"))
	badStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#d16d7a")).Bold(true)
)

// Printer writes reports for one currency.
type Printer struct {
	w        io.Writer
	currency string
}

// New returns a Printer writing to w. Amounts are suffixed with currency.
func New(w io.Writer, currency string) *Printer {
	return &Printer{w: w, currency: currency}
}

// Money formats d with thousands separators and two decimals.
func (p *Printer) Money(d decimal.Decimal) string {
	r := d.Round(2)
	whole := r.Truncate(0)
	s := humanize.Comma(whole.IntPart()) + r.Sub(whole).Abs().StringFixed(2)[1:]
	if r.IsNegative() && whole.IsZero() {
		s = "-" + s
	}
	if p.currency == "" {
		return s
	}
	return s + " " + p.currency
}

// Hours formats a decimal hour count.
func Hours(h decimal.Decimal) string {
	return h.Round(2).StringFixed(2) + "h"
}

// Percent formats a percentage with up to two decimals.
func Percent(d decimal.Decimal) string {
	return d.Round(2).String() + "%"
}

func (p *Printer) title(s string) {
	fmt.Fprintln(p.w, titleStyle.Render(s))
}

func (p *Printer) row(label, value string) {
	fmt.Fprintln(p.w, pad(label)+value)
}

// pad left-aligns s in the label column without wrapping long labels.
func pad(s string) string {
	if w := lipgloss.Width(s); w < labelWidth {
		return s + strings.Repeat(" ", labelWidth-w)
	}
	return s + " "
}

func (p *Printer) blank() {
	fmt.Fprintln(p.w)
}

func (p *Printer) none() {
	fmt.Fprintln(p.w, mutedStyle.Render("  (none)"))
}

func signed(p *Printer, d decimal.Decimal) string {
	s := p.Money(d)
	if d.IsNegative() {
		return badStyle.Render(s)
	}
	return s
}

// bar draws progress in [0, 100] as a fixed-width gauge.
func bar(progress decimal.Decimal) string {
	filled := int(progress.Mul(decimal.NewFromInt(barWidth)).Div(decimal.NewFromInt(100)).IntPart())
	if filled < 0 {
		filled = 0
	}
	if filled > barWidth {
		filled = barWidth
	}
	return "[" + strings.Repeat("#", filled) + strings.Repeat(".", barWidth-filled) + "]"
}

// Overview prints the dashboard headline numbers.
func (p *Printer) Overview(d analytics.Dashboard, f analytics.Finances) {
	p.title("Overview · " + d.Month.Label)
	p.row("Revenue this month", p.Money(d.Month.Revenue))
	p.row("Expenses this month", p.Money(d.Month.Expenses))
	p.row("Profit this month", signed(p, d.Month.Profit))
	p.row("Pending payments", p.Money(d.Pending))
	p.blank()
	p.row("Total revenue", p.Money(f.Revenue))
	p.row("Total expenses", p.Money(f.Expenses))
	p.row("Net profit", signed(p, f.Profit))
	p.row("Profit margin", Percent(f.ProfitMargin))
	p.blank()
	p.row("Active projects", humanize.Comma(int64(d.ActiveProjects)))
	p.row("Active clients", humanize.Comma(int64(d.ActiveClients)))
	p.row("Open tasks", humanize.Comma(int64(d.OpenTasks)))
	p.row("Pending invoices", humanize.Comma(int64(d.PendingInvoices)))
	p.row("Equipment value", p.Money(d.EquipmentValue))
	p.row("Goals reached", fmt.Sprintf("%d of %d", d.GoalsCompleted, d.GoalsTotal))
}

// Monthly prints the revenue/expense series, oldest first, and the growth
// of the newest month over the one before.
func (p *Printer) Monthly(series []analytics.MonthSummary) {
	p.title("Monthly")
	if len(series) == 0 {
		p.none()
		return
	}
	fmt.Fprintf(p.w, "%-10s %16s %16s %16s\n", "Month", "Revenue", "Expenses", "Profit")
	for _, m := range series {
		fmt.Fprintf(p.w, "%-10s %16s %16s %16s\n", m.Label, p.Money(m.Revenue), p.Money(m.Expenses), p.Money(m.Profit))
	}
	p.row("Growth", Percent(analytics.GrowthRate(series)))
}

// Breakdown prints groups with their share of the grand total.
func (p *Printer) Breakdown(title string, groups []analytics.GroupTotal, label func(key string) string) {
	p.title(title)
	if len(groups) == 0 {
		p.none()
		return
	}
	total := decimal.Zero
	for _, g := range groups {
		total = total.Add(g.Total)
	}
	for _, g := range groups {
		share := decimal.Zero
		if !total.IsZero() {
			share = g.Total.Div(total).Mul(decimal.NewFromInt(100)).Round(1)
		}
		name := g.Key
		if label != nil {
			name = label(g.Key)
		}
		p.row(name, fmt.Sprintf("%s  %s", p.Money(g.Total), mutedStyle.Render(Percent(share))))
	}
}

// Ranking prints groups as a numbered list; amounts are hours when hours is
// set.
func (p *Printer) Ranking(title string, groups []analytics.GroupTotal, label func(key string) string, hours bool) {
	p.title(title)
	if len(groups) == 0 {
		p.none()
		return
	}
	for i, g := range groups {
		name := g.Key
		if label != nil {
			name = label(g.Key)
		}
		value := p.Money(g.Total)
		if hours {
			value = Hours(g.Total)
		}
		p.row(fmt.Sprintf("%s %s", humanize.Ordinal(i+1), name), value)
	}
}

// Payments prints the paid/pending/overdue partition.
func (p *Printer) Payments(part analytics.PaymentPartition, project func(id string) string) {
	p.title("Payments")
	p.row(fmt.Sprintf("Paid (%d)", len(part.Paid)), p.Money(part.PaidTotal()))
	p.row(fmt.Sprintf("Pending (%d)", len(part.Pending)), p.Money(part.PendingTotal()))
	p.row(fmt.Sprintf("Overdue (%d)", len(part.Overdue)), p.Money(part.OverdueTotal()))
	for _, o := range part.Overdue {
		fmt.Fprintf(p.w, "  %s %s  %s  %s\n",
			badStyle.Render("!"), o.ExpectedDate, p.Money(o.Amount),
			mutedStyle.Render(fmt.Sprintf("%s, %d days late", project(o.ProjectID), o.DaysOverdue)))
	}
}

// Goals prints each goal with a progress bar.
func (p *Printer) Goals(goals []analytics.GoalStatus) {
	p.title("Goals")
	if len(goals) == 0 {
		p.none()
		return
	}
	for _, g := range goals {
		state := ""
		switch {
		case g.Completed:
			state = goodStyle.Render("done")
		case g.Expired:
			state = badStyle.Render("expired")
		case !g.Goal.Deadline.IsZero():
			state = fmt.Sprintf("%d days left", g.DaysLeft)
		}
		fmt.Fprintf(p.w, "%s %s %6s  %s / %s  %s\n",
			pad(g.Goal.Title), bar(g.Progress), Percent(g.Progress),
			p.goalAmount(g.Goal.Type, g.Current), p.goalAmount(g.Goal.Type, g.Goal.TargetAmount), state)
	}
}

func (p *Printer) goalAmount(t model.GoalType, d decimal.Decimal) string {
	if t == model.GoalClients || t == model.GoalProjects {
		return d.String()
	}
	return p.Money(d)
}

// Agenda prints what needs attention today.
func (p *Printer) Agenda(a analytics.Agenda, project func(id string) string) {
	p.title("Today · " + a.Today.String())
	tasks := func(label string, ts []model.Task) {
		if len(ts) == 0 {
			return
		}
		fmt.Fprintln(p.w, label)
		for _, t := range ts {
			fmt.Fprintf(p.w, "  - %s %s\n", t.Title, mutedStyle.Render("due "+t.DueDate.String()))
		}
	}
	tasks(badStyle.Render("Overdue tasks"), a.OverdueTasks)
	tasks("Due today", a.DueToday)
	tasks("Upcoming", a.Upcoming)
	if len(a.Deliveries) > 0 {
		fmt.Fprintln(p.w, "Deliveries")
		for _, pr := range a.Deliveries {
			fmt.Fprintf(p.w, "  - %s\n", pr.Name)
		}
	}
	if len(a.PaymentsDue) > 0 {
		fmt.Fprintln(p.w, "Payments expected")
		for _, pay := range a.PaymentsDue {
			fmt.Fprintf(p.w, "  - %s %s\n", p.Money(pay.Amount), mutedStyle.Render(project(pay.ProjectID)))
		}
	}
	p.row("Hours logged", Hours(a.HoursToday))
}

// Time prints tracked hours and billable revenue.
func (p *Printer) Time(ts analytics.TimeSummary, project func(id string) string) {
	p.title("Time")
	p.row("Hours", Hours(ts.Hours))
	p.row("Billable hours", Hours(ts.BillableHours))
	p.row("Billable revenue", p.Money(ts.Revenue))
	for _, r := range ts.Running {
		p.row("Running", fmt.Sprintf("%s  %s", project(r.Entry.ProjectID), r.Elapsed.Truncate(1e9)))
	}
}

// Equipment prints the equipment totals.
func (p *Printer) Equipment(t analytics.EquipmentTotals) {
	p.title("Equipment")
	p.row("Items", fmt.Sprintf("%d (%d active)", t.Count, t.ActiveCount))
	p.row("Invested", p.Money(t.Invested))
	p.row("Current value", p.Money(t.CurrentValue))
	p.row("Depreciation", fmt.Sprintf("%s  %s", p.Money(t.Depreciation), mutedStyle.Render(Percent(t.DepreciationPercent))))
	p.row("Maintenance", fmt.Sprintf("%s over %d visits", p.Money(t.MaintenanceCost), t.MaintenanceCount))
}

// Clients prints recomputed client totals.
func (p *Printer) Clients(totals []analytics.ClientTotal) {
	p.title("Clients")
	if len(totals) == 0 {
		p.none()
		return
	}
	for _, c := range totals {
		status := string(c.Client.Status)
		if status == "" {
			status = string(model.ClientActive)
		}
		p.row(c.Client.Name, fmt.Sprintf("%s  %s", p.Money(c.TotalPaid),
			mutedStyle.Render(fmt.Sprintf("%s, %d projects, %s", status, c.ProjectsCount, c.Client.ID))))
	}
}

// Proposals prints proposal totals and win rate.
func (p *Printer) Proposals(s analytics.Proposals) {
	p.title("Proposals")
	p.row("Sent", humanize.Comma(int64(s.Count)))
	p.row("Total proposed", p.Money(s.TotalProposed))
	p.row("Accepted", p.Money(s.AcceptedAmount))
	p.row("Win rate", Percent(s.WinRate))
}

// Invoices prints invoice totals.
func (p *Printer) Invoices(s analytics.Invoices) {
	p.title("Invoices")
	p.row("Invoices", humanize.Comma(int64(s.Count)))
	p.row("Billed", p.Money(s.Billed))
	p.row("Outstanding", p.Money(s.Outstanding))
	p.row("Drafts", humanize.Comma(int64(s.Drafts)))
}

// Expenses prints expense totals.
func (p *Printer) Expenses(s analytics.ExpenseSums) {
	p.title("Expenses")
	p.row("Count", humanize.Comma(int64(s.Count)))
	p.row("Total", p.Money(s.Total))
	p.row("Deductible", p.Money(s.Deductible))
	p.row("Tax", p.Money(s.Tax))
}
