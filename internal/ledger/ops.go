package ledger

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/shopspring/decimal"

	"github.com/tally-dev/tally/internal/analytics"
	"github.com/tally-dev/tally/internal/id"
	"github.com/tally-dev/tally/internal/importer"
	"github.com/tally-dev/tally/internal/log"
	"github.com/tally-dev/tally/internal/model"
	"github.com/tally-dev/tally/internal/store"
)

// MarkPaymentPaid flags a payment as received on the given date, or today
// when on is zero.
func (s *Service) MarkPaymentPaid(ctx context.Context, paymentID string, on model.Date) (model.Payment, error) {
	if on.IsZero() {
		on = s.Today()
	}
	return editRecord(ctx, s, payments, "pay", paymentID, func(p *model.Payment) error {
		p.IsPaid = true
		p.PaidDate = on
		return nil
	})
}

// SetProjectStatus moves a project to status. The older active/completed
// names are accepted.
func (s *Service) SetProjectStatus(ctx context.Context, projectID, status string) (model.Project, error) {
	st := model.NormalizeProjectStatus(status)
	if !st.Valid() {
		return model.Project{}, invalid("unknown project status %q", status)
	}
	return editRecord(ctx, s, projects, "status", projectID, func(p *model.Project) error {
		p.Status = st
		return nil
	})
}

// ToggleTask flips a task between open and completed.
func (s *Service) ToggleTask(ctx context.Context, taskID string) (model.Task, error) {
	return editRecord(ctx, s, tasks, "toggle", taskID, func(t *model.Task) error {
		t.Completed = !t.Completed
		return nil
	})
}

// SetInvoiceStatus moves an invoice to status.
func (s *Service) SetInvoiceStatus(ctx context.Context, invoiceID string, status model.InvoiceStatus) (model.Invoice, error) {
	if !status.Valid() {
		return model.Invoice{}, invalid("unknown invoice status %q", status)
	}
	return editRecord(ctx, s, invoices, "status", invoiceID, func(inv *model.Invoice) error {
		inv.Status = status
		return nil
	})
}

// SetProposalStatus moves a proposal to status.
func (s *Service) SetProposalStatus(ctx context.Context, proposalID string, status model.ProposalStatus) (model.Proposal, error) {
	if !status.Valid() {
		return model.Proposal{}, invalid("unknown proposal status %q", status)
	}
	return editRecord(ctx, s, proposals, "status", proposalID, func(p *model.Proposal) error {
		p.Status = status
		return nil
	})
}

// StartTimerParams describes a new running time entry.
type StartTimerParams struct {
	ProjectID   string
	Description string
	Billable    bool
	HourlyRate  *decimal.Decimal
}

// StartTimer opens a time entry at the current time. Only one entry may run
// at a time.
func (s *Service) StartTimer(ctx context.Context, params StartTimerParams) (model.TimeEntry, error) {
	entry := model.TimeEntry{
		ID:          s.newID(id.TimeEntry),
		ProjectID:   params.ProjectID,
		Start:       model.At(s.now()),
		Billable:    params.Billable,
		HourlyRate:  params.HourlyRate,
		Description: params.Description,
	}
	_, err := s.Mutate(ctx, "start", func(doc *model.Document) (Change, error) {
		for _, e := range doc.TimeEntries {
			if e.IsRunning() {
				return Change{}, fmt.Errorf("%w (%s)", ErrTimerRunning, e.ID)
			}
		}
		doc.TimeEntries = append(doc.TimeEntries, entry)
		return Change{Entity: timeEntries.entity, EntityID: entry.ID, Details: "timer started for " + projectName(doc, entry.ProjectID)}, nil
	})
	if err != nil {
		return model.TimeEntry{}, err
	}
	return entry, nil
}

// StopTimer closes the running time entry at the current time.
func (s *Service) StopTimer(ctx context.Context) (model.TimeEntry, error) {
	var stopped model.TimeEntry
	_, err := s.Mutate(ctx, "stop", func(doc *model.Document) (Change, error) {
		for i := range doc.TimeEntries {
			e := &doc.TimeEntries[i]
			if !e.IsRunning() {
				continue
			}
			now := s.now()
			if now.Before(e.Start.Time) {
				now = e.Start.Time
			}
			e.End = model.At(now)
			stopped = *e
			return Change{Entity: timeEntries.entity, EntityID: e.ID, Details: fmt.Sprintf("%s on %s", e.Duration(), projectName(doc, e.ProjectID))}, nil
		}
		return Change{}, ErrNoTimer
	})
	if err != nil {
		return model.TimeEntry{}, err
	}
	return stopped, nil
}

// AddMaintenance appends a maintenance record to an equipment item.
func (s *Service) AddMaintenance(ctx context.Context, equipmentID string, rec model.MaintenanceRecord) (model.MaintenanceRecord, error) {
	if rec.ID == "" {
		rec.ID = s.newID(id.Maintenance)
	}
	if rec.Date.IsZero() {
		rec.Date = s.Today()
	}
	if rec.Cost.IsNegative() {
		return rec, invalid("maintenance cost cannot be negative")
	}
	_, err := editRecord(ctx, s, equipment, "maintain", equipmentID, func(item *model.EquipmentItem) error {
		item.MaintenanceHistory = append(item.MaintenanceHistory, rec)
		return nil
	})
	return rec, err
}

// InvoiceParams describes a new invoice. Amounts and totals are computed.
type InvoiceParams struct {
	ClientID  string
	ProjectID string
	Items     []model.InvoiceItem
	IssueDate model.Date // defaults to today
	DueDate   model.Date // defaults to 30 days after issue
	Notes     string
}

// invoiceTermDays is the default payment term.
const invoiceTermDays = 30

// CreateInvoice numbers the invoice within its issue year and computes item
// amounts, subtotal, tax at the settings tax rate and total. New invoices
// are drafts.
func (s *Service) CreateInvoice(ctx context.Context, params InvoiceParams) (model.Invoice, error) {
	if len(params.Items) == 0 {
		return model.Invoice{}, invalid("an invoice needs at least one item")
	}
	for i, it := range params.Items {
		if it.Quantity.IsNegative() || it.Rate.IsNegative() {
			return model.Invoice{}, invalid("item %d: quantity and rate cannot be negative", i+1)
		}
	}
	issue := params.IssueDate
	if issue.IsZero() {
		issue = s.Today()
	}
	due := params.DueDate
	if due.IsZero() {
		due = model.Date{Time: issue.AddDate(0, 0, invoiceTermDays)}
	}

	var inv model.Invoice
	_, err := s.Mutate(ctx, "add", func(doc *model.Document) (Change, error) {
		numbers := make([]string, len(doc.Invoices))
		for i, existing := range doc.Invoices {
			numbers[i] = existing.InvoiceNumber
		}
		totals := analytics.InvoiceTotals(params.Items, doc.Settings.TaxRate)
		inv = model.Invoice{
			ID:            s.newID(id.Invoice),
			InvoiceNumber: id.NextInvoiceNumber(numbers, issue.Year()),
			ClientID:      params.ClientID,
			ProjectID:     params.ProjectID,
			Items:         totals.Items,
			Subtotal:      totals.Subtotal,
			Tax:           totals.Tax,
			Total:         totals.Total,
			IssueDate:     issue,
			DueDate:       due,
			Status:        model.InvoiceDraft,
			Notes:         params.Notes,
		}
		doc.Invoices = append(doc.Invoices, inv)
		return Change{Entity: invoices.entity, EntityID: inv.ID, Details: invoices.label(inv)}, nil
	})
	if err != nil {
		return model.Invoice{}, err
	}
	return inv, nil
}

// SaveSettings replaces the document settings.
func (s *Service) SaveSettings(ctx context.Context, settings model.Settings) error {
	if settings.TaxRate.IsNegative() || settings.HourlyRate.IsNegative() {
		return invalid("rates cannot be negative")
	}
	if settings.Currency == "" {
		return invalid("currency is required")
	}
	_, err := s.Mutate(ctx, "update", func(doc *model.Document) (Change, error) {
		doc.Settings = settings
		return Change{Entity: "settings", Details: settings.BusinessName}, nil
	})
	return err
}

// ExportSnapshot returns the whole document as JSON.
func (s *Service) ExportSnapshot(ctx context.Context) ([]byte, error) {
	doc, err := s.Document(ctx)
	if err != nil {
		return nil, err
	}
	return store.Export(doc)
}

// ImportSnapshot replaces the whole document with the snapshot in data. An
// invalid snapshot leaves the stored document untouched.
func (s *Service) ImportSnapshot(ctx context.Context, data []byte) (*model.Document, error) {
	doc, err := store.Import(data)
	if err != nil {
		return nil, err
	}
	_, err = s.Mutate(ctx, "import", func(current *model.Document) (Change, error) {
		*current = *doc
		return Change{Entity: "document", Details: fmt.Sprintf("%d clients, %d projects, %d payments",
			len(doc.Clients), len(doc.Projects), len(doc.Payments))}, nil
	})
	if err != nil {
		return nil, err
	}
	return doc, nil
}

// BankFile is the outcome of importing one statement file.
type BankFile struct {
	Name         string
	Transactions int
	importer.Result
}

// ImportBank parses every CSV in the workspace import directory with the
// parser for format, records the transactions in one save and moves the
// files to import/processed. Files already imported are recognized by
// transaction reference.
func (s *Service) ImportBank(ctx context.Context, format string) ([]BankFile, error) {
	parser := importer.DefaultRegistry().Get(format)
	if parser == nil {
		return nil, invalid("unknown bank format %q", format)
	}
	files, err := importer.Scan(s.root)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, nil
	}

	parsed := make([][]importer.Transaction, len(files))
	for i, f := range files {
		fh, err := os.Open(f.Path)
		if err != nil {
			return nil, fmt.Errorf("opening %s: %w", f.Name, err)
		}
		txns, err := parser.Parse(fh)
		fh.Close()
		if err != nil {
			return nil, fmt.Errorf("parsing %s: %w", f.Name, err)
		}
		parsed[i] = txns
	}

	out := make([]BankFile, len(files))
	_, err = s.Mutate(ctx, "import", func(doc *model.Document) (Change, error) {
		var expenses, payments int
		for i, f := range files {
			res := importer.Apply(doc, parsed[i], s.newID)
			out[i] = BankFile{Name: f.Name, Transactions: len(parsed[i]), Result: res}
			expenses += res.Expenses
			payments += res.Payments
		}
		return Change{Entity: "bank", Details: fmt.Sprintf("%d files, %d expenses, %d payments",
			len(files), expenses, payments)}, nil
	})
	if err != nil {
		return nil, err
	}

	for _, f := range files {
		if err := importer.MarkProcessed(s.root, f.Name); err != nil {
			s.logger.Warn("could not move imported file", log.FieldPath, f.Path, log.FieldError, err)
		}
	}
	return out, nil
}

func projectName(doc *model.Document, projectID string) string {
	if p, ok := doc.ProjectByID(projectID); ok {
		return p.Name
	}
	if projectID == "" {
		return "no project"
	}
	return projectID
}

// IsNotFound reports whether err means a missing record.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound) || errors.Is(err, store.ErrNotFound)
}
