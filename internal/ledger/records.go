package ledger

import (
	"context"
	"fmt"

	"github.com/tally-dev/tally/internal/id"
	"github.com/tally-dev/tally/internal/model"
)

// collection describes one entity list of the document.
type collection[T any] struct {
	entity   string
	prefix   string
	list     func(doc *model.Document) *[]T
	id       func(rec *T) *string
	label    func(rec T) string
	prepare  func(s *Service, rec *T) // fills defaults on add
	validate func(rec T) error
}

func (c collection[T]) find(doc *model.Document, recID string) int {
	list := *c.list(doc)
	for i := range list {
		if *c.id(&list[i]) == recID {
			return i
		}
	}
	return -1
}

func addRecord[T any](ctx context.Context, s *Service, c collection[T], rec T) (T, error) {
	if *c.id(&rec) == "" {
		*c.id(&rec) = s.newID(c.prefix)
	}
	if c.prepare != nil {
		c.prepare(s, &rec)
	}
	if c.validate != nil {
		if err := c.validate(rec); err != nil {
			return rec, err
		}
	}
	_, err := s.Mutate(ctx, "add", func(doc *model.Document) (Change, error) {
		if c.find(doc, *c.id(&rec)) >= 0 {
			return Change{}, invalid("%s %q already exists", c.entity, *c.id(&rec))
		}
		list := c.list(doc)
		*list = append(*list, rec)
		return Change{Entity: c.entity, EntityID: *c.id(&rec), Details: c.label(rec)}, nil
	})
	return rec, err
}

func updateRecord[T any](ctx context.Context, s *Service, c collection[T], rec T) error {
	if c.validate != nil {
		if err := c.validate(rec); err != nil {
			return err
		}
	}
	recID := *c.id(&rec)
	_, err := s.Mutate(ctx, "update", func(doc *model.Document) (Change, error) {
		i := c.find(doc, recID)
		if i < 0 {
			return Change{}, notFound(c.entity, recID)
		}
		(*c.list(doc))[i] = rec
		return Change{Entity: c.entity, EntityID: recID, Details: c.label(rec)}, nil
	})
	return err
}

// editRecord applies fn to the stored record in place.
func editRecord[T any](ctx context.Context, s *Service, c collection[T], action, recID string, fn func(rec *T) error) (T, error) {
	var out T
	_, err := s.Mutate(ctx, action, func(doc *model.Document) (Change, error) {
		i := c.find(doc, recID)
		if i < 0 {
			return Change{}, notFound(c.entity, recID)
		}
		rec := (*c.list(doc))[i]
		if err := fn(&rec); err != nil {
			return Change{}, err
		}
		if c.validate != nil {
			if err := c.validate(rec); err != nil {
				return Change{}, err
			}
		}
		(*c.list(doc))[i] = rec
		out = rec
		return Change{Entity: c.entity, EntityID: recID, Details: c.label(rec)}, nil
	})
	return out, err
}

// deleteRecord removes one record. References to it elsewhere are left in
// place.
func deleteRecord[T any](ctx context.Context, s *Service, c collection[T], recID string) error {
	_, err := s.Mutate(ctx, "delete", func(doc *model.Document) (Change, error) {
		i := c.find(doc, recID)
		if i < 0 {
			return Change{}, notFound(c.entity, recID)
		}
		list := c.list(doc)
		rec := (*list)[i]
		*list = append((*list)[:i], (*list)[i+1:]...)
		return Change{Entity: c.entity, EntityID: recID, Details: c.label(rec)}, nil
	})
	return err
}

func getRecord[T any](ctx context.Context, s *Service, c collection[T], recID string) (T, error) {
	var zero T
	doc, err := s.Document(ctx)
	if err != nil {
		return zero, err
	}
	i := c.find(doc, recID)
	if i < 0 {
		return zero, notFound(c.entity, recID)
	}
	return (*c.list(doc))[i], nil
}

var clients = collection[model.Client]{
	entity: "client",
	prefix: id.Client,
	list:   func(d *model.Document) *[]model.Client { return &d.Clients },
	id:     func(r *model.Client) *string { return &r.ID },
	label:  func(r model.Client) string { return r.Name },
	prepare: func(_ *Service, r *model.Client) {
		if r.Status == "" {
			r.Status = model.ClientActive
		}
	},
	validate: func(r model.Client) error {
		if r.Name == "" {
			return invalid("client name is required")
		}
		if !r.Status.Valid() {
			return invalid("unknown client status %q", r.Status)
		}
		return nil
	},
}

var projects = collection[model.Project]{
	entity: "project",
	prefix: id.Project,
	list:   func(d *model.Document) *[]model.Project { return &d.Projects },
	id:     func(r *model.Project) *string { return &r.ID },
	label:  func(r model.Project) string { return r.Name },
	prepare: func(_ *Service, r *model.Project) {
		if r.Status == "" {
			r.Status = model.ProjectPlanned
		}
		r.Status = model.NormalizeProjectStatus(string(r.Status))
	},
	validate: func(r model.Project) error {
		if r.Name == "" {
			return invalid("project name is required")
		}
		if !r.Status.Valid() {
			return invalid("unknown project status %q", r.Status)
		}
		if r.Budget.IsNegative() {
			return invalid("budget cannot be negative")
		}
		return nil
	},
}

var tasks = collection[model.Task]{
	entity: "task",
	prefix: id.Task,
	list:   func(d *model.Document) *[]model.Task { return &d.Tasks },
	id:     func(r *model.Task) *string { return &r.ID },
	label:  func(r model.Task) string { return r.Title },
	prepare: func(s *Service, r *model.Task) {
		if r.Priority == "" {
			r.Priority = model.PriorityMedium
		}
		if r.CreatedAt.IsZero() {
			r.CreatedAt = model.At(s.now())
		}
	},
	validate: func(r model.Task) error {
		if r.Title == "" {
			return invalid("task title is required")
		}
		if !r.Priority.Valid() {
			return invalid("unknown priority %q", r.Priority)
		}
		return nil
	},
}

var payments = collection[model.Payment]{
	entity: "payment",
	prefix: id.Payment,
	list:   func(d *model.Document) *[]model.Payment { return &d.Payments },
	id:     func(r *model.Payment) *string { return &r.ID },
	label: func(r model.Payment) string {
		state := "expected"
		if r.IsPaid {
			state = "paid"
		}
		return fmt.Sprintf("%s %s", r.Amount.StringFixed(2), state)
	},
	prepare: func(s *Service, r *model.Payment) {
		if r.IsPaid && r.PaidDate.IsZero() {
			r.PaidDate = s.Today()
		}
	},
	validate: func(r model.Payment) error {
		if r.Amount.IsNegative() {
			return invalid("payment amount cannot be negative")
		}
		return nil
	},
}

var timeEntries = collection[model.TimeEntry]{
	entity: "time entry",
	prefix: id.TimeEntry,
	list:   func(d *model.Document) *[]model.TimeEntry { return &d.TimeEntries },
	id:     func(r *model.TimeEntry) *string { return &r.ID },
	label: func(r model.TimeEntry) string {
		if r.IsRunning() {
			return "running since " + r.Start.Format("2006-01-02 15:04")
		}
		return r.Duration().String()
	},
	validate: func(r model.TimeEntry) error {
		if r.Start.IsZero() && r.DurationSeconds <= 0 {
			return invalid("time entry needs a start or a duration")
		}
		if !r.End.IsZero() && r.End.Before(r.Start.Time) {
			return invalid("time entry ends before it starts")
		}
		if r.HourlyRate != nil && r.HourlyRate.IsNegative() {
			return invalid("hourly rate cannot be negative")
		}
		return nil
	},
}

var expenses = collection[model.Expense]{
	entity: "expense",
	prefix: id.Expense,
	list:   func(d *model.Document) *[]model.Expense { return &d.Expenses },
	id:     func(r *model.Expense) *string { return &r.ID },
	label:  func(r model.Expense) string { return fmt.Sprintf("%s %s", r.Description, r.Amount.StringFixed(2)) },
	prepare: func(s *Service, r *model.Expense) {
		if r.Category == "" {
			r.Category = model.ExpenseOther
		}
		if r.Date.IsZero() {
			r.Date = s.Today()
		}
	},
	validate: func(r model.Expense) error {
		if r.Description == "" {
			return invalid("expense description is required")
		}
		if !r.Category.Valid() {
			return invalid("unknown expense category %q", r.Category)
		}
		if r.Amount.IsNegative() {
			return invalid("expense amount cannot be negative")
		}
		return nil
	},
}

var equipment = collection[model.EquipmentItem]{
	entity: "equipment",
	prefix: id.Equipment,
	list:   func(d *model.Document) *[]model.EquipmentItem { return &d.Equipment },
	id:     func(r *model.EquipmentItem) *string { return &r.ID },
	label:  func(r model.EquipmentItem) string { return r.Name },
	prepare: func(s *Service, r *model.EquipmentItem) {
		if r.Category == "" {
			r.Category = model.EquipmentOther
		}
		if r.Status == "" {
			r.Status = model.EquipmentActive
		}
		if r.PurchaseDate.IsZero() {
			r.PurchaseDate = s.Today()
		}
		if r.MaintenanceHistory == nil {
			r.MaintenanceHistory = []model.MaintenanceRecord{}
		}
	},
	validate: func(r model.EquipmentItem) error {
		if r.Name == "" {
			return invalid("equipment name is required")
		}
		if !r.Category.Valid() {
			return invalid("unknown equipment category %q", r.Category)
		}
		if !r.Status.Valid() {
			return invalid("unknown equipment status %q", r.Status)
		}
		if r.PurchasePrice.IsNegative() || r.CurrentValue.IsNegative() {
			return invalid("equipment values cannot be negative")
		}
		return nil
	},
}

var invoices = collection[model.Invoice]{
	entity: "invoice",
	prefix: id.Invoice,
	list:   func(d *model.Document) *[]model.Invoice { return &d.Invoices },
	id:     func(r *model.Invoice) *string { return &r.ID },
	label:  func(r model.Invoice) string { return fmt.Sprintf("%s %s", r.InvoiceNumber, r.Total.StringFixed(2)) },
	validate: func(r model.Invoice) error {
		if !r.Status.Valid() {
			return invalid("unknown invoice status %q", r.Status)
		}
		return nil
	},
}

var proposals = collection[model.Proposal]{
	entity: "proposal",
	prefix: id.Proposal,
	list:   func(d *model.Document) *[]model.Proposal { return &d.Proposals },
	id:     func(r *model.Proposal) *string { return &r.ID },
	label:  func(r model.Proposal) string { return r.Title },
	prepare: func(s *Service, r *model.Proposal) {
		if r.Status == "" {
			r.Status = model.ProposalDraft
		}
		if r.CreatedDate.IsZero() {
			r.CreatedDate = s.Today()
		}
	},
	validate: func(r model.Proposal) error {
		if r.Title == "" {
			return invalid("proposal title is required")
		}
		if !r.Status.Valid() {
			return invalid("unknown proposal status %q", r.Status)
		}
		if r.Amount.IsNegative() {
			return invalid("proposal amount cannot be negative")
		}
		return nil
	},
}

var goals = collection[model.Goal]{
	entity: "goal",
	prefix: id.Goal,
	list:   func(d *model.Document) *[]model.Goal { return &d.Goals },
	id:     func(r *model.Goal) *string { return &r.ID },
	label:  func(r model.Goal) string { return r.Title },
	validate: func(r model.Goal) error {
		if r.Title == "" {
			return invalid("goal title is required")
		}
		if !r.Type.Valid() {
			return invalid("unknown goal type %q", r.Type)
		}
		return nil
	},
}
