// Package check inspects a document for problems the analytics tolerate
// silently. It never modifies the document.
package check

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/tally-dev/tally/internal/model"
)

// Severity ranks an issue.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Issue describes a single problem with one record.
type Issue struct {
	Severity    Severity
	Entity      string
	ID          string
	Description string
}

func (i Issue) Error() string {
	return fmt.Sprintf("%s %s [%s]: %s", i.Severity, i.Entity, i.ID, i.Description)
}

// Errors returns only the error-severity issues.
func Errors(issues []Issue) []Issue {
	var out []Issue
	for _, i := range issues {
		if i.Severity == SeverityError {
			out = append(out, i)
		}
	}
	return out
}

type checker struct {
	issues []Issue
}

func (c *checker) add(sev Severity, entity, id, format string, args ...any) {
	c.issues = append(c.issues, Issue{
		Severity:    sev,
		Entity:      entity,
		ID:          id,
		Description: fmt.Sprintf(format, args...),
	})
}

func (c *checker) unique(entity string, ids []string) {
	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		if id == "" {
			c.add(SeverityError, entity, id, "missing id")
			continue
		}
		if seen[id] {
			c.add(SeverityError, entity, id, "duplicate id")
		}
		seen[id] = true
	}
}

func (c *checker) name(entity, id, field, value string) {
	if value == "" {
		c.add(SeverityError, entity, id, "%s is empty", field)
	}
}

func (c *checker) nonNegative(entity, id, field string, d decimal.Decimal) {
	if d.IsNegative() {
		c.add(SeverityError, entity, id, "%s %s is negative", field, d)
	}
}

func (c *checker) cents(entity, id, field string, d decimal.Decimal) {
	if !d.Equal(d.Round(2)) {
		c.add(SeverityWarning, entity, id, "%s %s has more than 2 decimal places", field, d)
	}
}

// ref warns about a non-empty reference that resolves to nothing. Orphaned
// references are legal; analytics skip them.
func (c *checker) ref(entity, id, field, target string, known map[string]bool) {
	if target != "" && !known[target] {
		c.add(SeverityWarning, entity, id, "%s %q not found", field, target)
	}
}

func ids[T any](records []T, id func(T) string) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = id(r)
	}
	return out
}

func set(ids []string) map[string]bool {
	m := make(map[string]bool, len(ids))
	for _, id := range ids {
		m[id] = true
	}
	return m
}

// Document returns every issue found in doc, in a stable order.
func Document(doc *model.Document) []Issue {
	if doc == nil {
		return nil
	}
	var c checker

	clientIDs := ids(doc.Clients, func(r model.Client) string { return r.ID })
	projectIDs := ids(doc.Projects, func(r model.Project) string { return r.ID })
	c.unique("client", clientIDs)
	c.unique("project", projectIDs)
	c.unique("task", ids(doc.Tasks, func(r model.Task) string { return r.ID }))
	c.unique("payment", ids(doc.Payments, func(r model.Payment) string { return r.ID }))
	c.unique("time entry", ids(doc.TimeEntries, func(r model.TimeEntry) string { return r.ID }))
	c.unique("expense", ids(doc.Expenses, func(r model.Expense) string { return r.ID }))
	c.unique("equipment", ids(doc.Equipment, func(r model.EquipmentItem) string { return r.ID }))
	c.unique("invoice", ids(doc.Invoices, func(r model.Invoice) string { return r.ID }))
	c.unique("proposal", ids(doc.Proposals, func(r model.Proposal) string { return r.ID }))
	c.unique("goal", ids(doc.Goals, func(r model.Goal) string { return r.ID }))
	clients, projects := set(clientIDs), set(projectIDs)

	for _, r := range doc.Clients {
		c.name("client", r.ID, "name", r.Name)
		if !r.Status.Valid() {
			c.add(SeverityError, "client", r.ID, "unknown status %q", r.Status)
		}
	}
	for _, r := range doc.Projects {
		c.name("project", r.ID, "name", r.Name)
		c.ref("project", r.ID, "client", r.ClientID, clients)
		if !r.Status.Valid() {
			c.add(SeverityError, "project", r.ID, "unknown status %q", r.Status)
		}
		c.nonNegative("project", r.ID, "budget", r.Budget)
	}
	for _, r := range doc.Tasks {
		c.name("task", r.ID, "title", r.Title)
		c.ref("task", r.ID, "project", r.ProjectID, projects)
		if r.Priority != "" && !r.Priority.Valid() {
			c.add(SeverityError, "task", r.ID, "unknown priority %q", r.Priority)
		}
	}
	for _, r := range doc.Payments {
		c.ref("payment", r.ID, "project", r.ProjectID, projects)
		c.nonNegative("payment", r.ID, "amount", r.Amount)
		c.cents("payment", r.ID, "amount", r.Amount)
		if r.EffectiveDate().IsZero() {
			c.add(SeverityWarning, "payment", r.ID, "no date; left out of monthly figures")
		}
	}
	running := 0
	for _, r := range doc.TimeEntries {
		c.ref("time entry", r.ID, "project", r.ProjectID, projects)
		if r.IsRunning() {
			running++
			if running > 1 {
				c.add(SeverityError, "time entry", r.ID, "another time entry is already running")
			}
		}
		if !r.End.IsZero() && !r.Start.IsZero() && r.End.Before(r.Start.Time) {
			c.add(SeverityError, "time entry", r.ID, "ends before it starts")
		}
		if r.HourlyRate != nil {
			c.nonNegative("time entry", r.ID, "hourly rate", *r.HourlyRate)
		}
	}
	for _, r := range doc.Expenses {
		c.name("expense", r.ID, "description", r.Description)
		c.ref("expense", r.ID, "project", r.ProjectID, projects)
		if !r.Category.Valid() {
			c.add(SeverityError, "expense", r.ID, "unknown category %q", r.Category)
		}
		c.nonNegative("expense", r.ID, "amount", r.Amount)
		c.cents("expense", r.ID, "amount", r.Amount)
	}
	for _, r := range doc.Equipment {
		c.name("equipment", r.ID, "name", r.Name)
		if !r.Category.Valid() {
			c.add(SeverityError, "equipment", r.ID, "unknown category %q", r.Category)
		}
		if !r.Status.Valid() {
			c.add(SeverityError, "equipment", r.ID, "unknown status %q", r.Status)
		}
		c.nonNegative("equipment", r.ID, "purchase price", r.PurchasePrice)
		c.nonNegative("equipment", r.ID, "current value", r.CurrentValue)
		for _, m := range r.MaintenanceHistory {
			c.nonNegative("equipment", r.ID, "maintenance cost", m.Cost)
		}
	}
	for _, r := range doc.Invoices {
		c.checkInvoice(r, clients, projects)
	}
	for _, r := range doc.Proposals {
		c.name("proposal", r.ID, "title", r.Title)
		c.ref("proposal", r.ID, "client", r.ClientID, clients)
		if !r.Status.Valid() {
			c.add(SeverityError, "proposal", r.ID, "unknown status %q", r.Status)
		}
		c.nonNegative("proposal", r.ID, "amount", r.Amount)
	}
	for _, r := range doc.Goals {
		c.name("goal", r.ID, "title", r.Title)
		if !r.Type.Valid() {
			c.add(SeverityError, "goal", r.ID, "unknown type %q", r.Type)
		}
		c.nonNegative("goal", r.ID, "target", r.TargetAmount)
	}
	return c.issues
}

func (c *checker) checkInvoice(inv model.Invoice, clients, projects map[string]bool) {
	c.ref("invoice", inv.ID, "client", inv.ClientID, clients)
	c.ref("invoice", inv.ID, "project", inv.ProjectID, projects)
	if inv.InvoiceNumber == "" {
		c.add(SeverityError, "invoice", inv.ID, "invoice number is empty")
	}
	if !inv.Status.Valid() {
		c.add(SeverityError, "invoice", inv.ID, "unknown status %q", inv.Status)
	}

	subtotal := decimal.Zero
	for i, it := range inv.Items {
		c.nonNegative("invoice", inv.ID, fmt.Sprintf("item %d quantity", i+1), it.Quantity)
		c.nonNegative("invoice", inv.ID, fmt.Sprintf("item %d rate", i+1), it.Rate)
		if want := it.Quantity.Mul(it.Rate); !it.Amount.Equal(want) {
			c.add(SeverityError, "invoice", inv.ID, "item %d amount %s != quantity x rate %s",
				i+1, it.Amount.StringFixed(2), want.StringFixed(2))
		}
		subtotal = subtotal.Add(it.Amount)
	}
	if !inv.Subtotal.Equal(subtotal) {
		c.add(SeverityError, "invoice", inv.ID, "subtotal %s != sum of items %s",
			inv.Subtotal.StringFixed(2), subtotal.StringFixed(2))
	}
	if want := inv.Subtotal.Add(inv.Tax); !inv.Total.Equal(want) {
		c.add(SeverityError, "invoice", inv.ID, "total %s != subtotal + tax %s",
			inv.Total.StringFixed(2), want.StringFixed(2))
	}
}
