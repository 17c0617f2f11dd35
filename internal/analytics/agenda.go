package analytics

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tally-dev/tally/internal/model"
)

// upcomingLimit caps the upcoming task list.
const upcomingLimit = 5

// Agenda is what needs attention on a given day.
type Agenda struct {
	Today        model.Date
	OverdueTasks []model.Task
	DueToday     []model.Task
	Upcoming     []model.Task // soonest first
	Deliveries   []model.Project
	PaymentsDue  []model.Payment // unpaid, expected today
	HoursToday   decimal.Decimal
}

// DayAgenda collects open tasks by due date, projects due today, payments
// expected today and hours logged today.
func DayAgenda(doc *model.Document, now time.Time) Agenda {
	today := model.DateOf(now)
	a := Agenda{
		Today:        today,
		OverdueTasks: []model.Task{},
		DueToday:     []model.Task{},
		Upcoming:     []model.Task{},
		Deliveries:   []model.Project{},
		PaymentsDue:  []model.Payment{},
		HoursToday:   decimal.Zero,
	}
	if doc == nil {
		return a
	}

	for _, t := range doc.Tasks {
		if t.Completed || t.DueDate.IsZero() {
			continue
		}
		switch {
		case t.DueDate.Before(today):
			a.OverdueTasks = append(a.OverdueTasks, t)
		case t.DueDate.Equal(today):
			a.DueToday = append(a.DueToday, t)
		default:
			a.Upcoming = append(a.Upcoming, t)
		}
	}
	sort.SliceStable(a.Upcoming, func(i, j int) bool {
		return a.Upcoming[i].DueDate.Before(a.Upcoming[j].DueDate)
	})
	if len(a.Upcoming) > upcomingLimit {
		a.Upcoming = a.Upcoming[:upcomingLimit]
	}

	for _, p := range doc.Projects {
		if p.Deadline.Equal(today) {
			a.Deliveries = append(a.Deliveries, p)
		}
	}
	for _, p := range doc.Payments {
		if !p.IsPaid && p.ExpectedDate.Equal(today) {
			a.PaymentsDue = append(a.PaymentsDue, p)
		}
	}
	a.HoursToday = HoursToday(doc.TimeEntries, now)
	return a
}

// Dashboard is the headline numbers for the current month.
type Dashboard struct {
	Month           MonthSummary
	Pending         decimal.Decimal // every unpaid payment
	ActiveProjects  int
	ActiveClients   int
	OpenTasks       int
	EquipmentValue  decimal.Decimal // current value of active equipment
	PendingInvoices int
	GoalsCompleted  int
	GoalsTotal      int
}

// Overview computes the dashboard for now's month.
func Overview(doc *model.Document, now time.Time) Dashboard {
	if doc == nil {
		doc = model.NewDocument()
	}
	d := Dashboard{
		Month:          MonthlySeries(doc.Payments, doc.Expenses, 1, now)[0],
		Pending:        decimal.Zero,
		EquipmentValue: EquipmentSummary(doc.Equipment).ActiveValue,
		GoalsTotal:     len(doc.Goals),
	}
	for _, p := range doc.Payments {
		if !p.IsPaid {
			d.Pending = d.Pending.Add(p.Amount)
		}
	}
	for _, p := range doc.Projects {
		if p.Status == model.ProjectInProgress {
			d.ActiveProjects++
		}
	}
	for _, c := range doc.Clients {
		if c.IsActive() {
			d.ActiveClients++
		}
	}
	for _, t := range doc.Tasks {
		if !t.Completed {
			d.OpenTasks++
		}
	}
	for _, inv := range doc.Invoices {
		if inv.Status == model.InvoiceSent || inv.Status == model.InvoiceOverdue {
			d.PendingInvoices++
		}
	}
	for _, g := range Goals(doc, now) {
		if g.Completed {
			d.GoalsCompleted++
		}
	}
	return d
}
