package ledger

import (
	"context"

	"github.com/tally-dev/tally/internal/model"
)

// AddClient stores a new client, assigning an id when it has none.
func (s *Service) AddClient(ctx context.Context, rec model.Client) (model.Client, error) {
	return addRecord(ctx, s, clients, rec)
}

// UpdateClient replaces the client with the same id.
func (s *Service) UpdateClient(ctx context.Context, rec model.Client) error {
	return updateRecord(ctx, s, clients, rec)
}

// DeleteClient removes the client with the given id. Projects, invoices and
// proposals that reference it are kept.
func (s *Service) DeleteClient(ctx context.Context, id string) error {
	return deleteRecord(ctx, s, clients, id)
}

// GetClient returns the client with the given id.
func (s *Service) GetClient(ctx context.Context, id string) (model.Client, error) {
	return getRecord(ctx, s, clients, id)
}

// AddProject stores a new project, assigning an id when it has none.
func (s *Service) AddProject(ctx context.Context, rec model.Project) (model.Project, error) {
	return addRecord(ctx, s, projects, rec)
}

// UpdateProject replaces the project with the same id.
func (s *Service) UpdateProject(ctx context.Context, rec model.Project) error {
	return updateRecord(ctx, s, projects, rec)
}

// DeleteProject removes the project with the given id. Its tasks, payments
// and time entries are kept.
func (s *Service) DeleteProject(ctx context.Context, id string) error {
	return deleteRecord(ctx, s, projects, id)
}

// GetProject returns the project with the given id.
func (s *Service) GetProject(ctx context.Context, id string) (model.Project, error) {
	return getRecord(ctx, s, projects, id)
}

// AddTask stores a new task, assigning an id when it has none.
func (s *Service) AddTask(ctx context.Context, rec model.Task) (model.Task, error) {
	return addRecord(ctx, s, tasks, rec)
}

// UpdateTask replaces the task with the same id.
func (s *Service) UpdateTask(ctx context.Context, rec model.Task) error {
	return updateRecord(ctx, s, tasks, rec)
}

// DeleteTask removes the task with the given id.
func (s *Service) DeleteTask(ctx context.Context, id string) error {
	return deleteRecord(ctx, s, tasks, id)
}

// GetTask returns the task with the given id.
func (s *Service) GetTask(ctx context.Context, id string) (model.Task, error) {
	return getRecord(ctx, s, tasks, id)
}

// AddPayment stores a new payment, assigning an id when it has none.
func (s *Service) AddPayment(ctx context.Context, rec model.Payment) (model.Payment, error) {
	return addRecord(ctx, s, payments, rec)
}

// UpdatePayment replaces the payment with the same id.
func (s *Service) UpdatePayment(ctx context.Context, rec model.Payment) error {
	return updateRecord(ctx, s, payments, rec)
}

// DeletePayment removes the payment with the given id.
func (s *Service) DeletePayment(ctx context.Context, id string) error {
	return deleteRecord(ctx, s, payments, id)
}

// GetPayment returns the payment with the given id.
func (s *Service) GetPayment(ctx context.Context, id string) (model.Payment, error) {
	return getRecord(ctx, s, payments, id)
}

// AddTimeEntry stores a new time entry, assigning an id when it has none.
func (s *Service) AddTimeEntry(ctx context.Context, rec model.TimeEntry) (model.TimeEntry, error) {
	return addRecord(ctx, s, timeEntries, rec)
}

// UpdateTimeEntry replaces the time entry with the same id.
func (s *Service) UpdateTimeEntry(ctx context.Context, rec model.TimeEntry) error {
	return updateRecord(ctx, s, timeEntries, rec)
}

// DeleteTimeEntry removes the time entry with the given id.
func (s *Service) DeleteTimeEntry(ctx context.Context, id string) error {
	return deleteRecord(ctx, s, timeEntries, id)
}

// GetTimeEntry returns the time entry with the given id.
func (s *Service) GetTimeEntry(ctx context.Context, id string) (model.TimeEntry, error) {
	return getRecord(ctx, s, timeEntries, id)
}

// AddExpense stores a new expense, assigning an id when it has none.
func (s *Service) AddExpense(ctx context.Context, rec model.Expense) (model.Expense, error) {
	return addRecord(ctx, s, expenses, rec)
}

// UpdateExpense replaces the expense with the same id.
func (s *Service) UpdateExpense(ctx context.Context, rec model.Expense) error {
	return updateRecord(ctx, s, expenses, rec)
}

// DeleteExpense removes the expense with the given id.
func (s *Service) DeleteExpense(ctx context.Context, id string) error {
	return deleteRecord(ctx, s, expenses, id)
}

// GetExpense returns the expense with the given id.
func (s *Service) GetExpense(ctx context.Context, id string) (model.Expense, error) {
	return getRecord(ctx, s, expenses, id)
}

// AddEquipment stores a new equipment item, assigning an id when it has none.
func (s *Service) AddEquipment(ctx context.Context, rec model.EquipmentItem) (model.EquipmentItem, error) {
	return addRecord(ctx, s, equipment, rec)
}

// UpdateEquipment replaces the equipment item with the same id.
func (s *Service) UpdateEquipment(ctx context.Context, rec model.EquipmentItem) error {
	return updateRecord(ctx, s, equipment, rec)
}

// DeleteEquipment removes the equipment item with the given id.
func (s *Service) DeleteEquipment(ctx context.Context, id string) error {
	return deleteRecord(ctx, s, equipment, id)
}

// GetEquipment returns the equipment item with the given id.
func (s *Service) GetEquipment(ctx context.Context, id string) (model.EquipmentItem, error) {
	return getRecord(ctx, s, equipment, id)
}

// AddInvoice stores a new invoice, assigning an id when it has none.
func (s *Service) AddInvoice(ctx context.Context, rec model.Invoice) (model.Invoice, error) {
	return addRecord(ctx, s, invoices, rec)
}

// UpdateInvoice replaces the invoice with the same id. Totals are stored as
// given; use CreateInvoice to compute them from the items.
func (s *Service) UpdateInvoice(ctx context.Context, rec model.Invoice) error {
	return updateRecord(ctx, s, invoices, rec)
}

// DeleteInvoice removes the invoice with the given id.
func (s *Service) DeleteInvoice(ctx context.Context, id string) error {
	return deleteRecord(ctx, s, invoices, id)
}

// GetInvoice returns the invoice with the given id.
func (s *Service) GetInvoice(ctx context.Context, id string) (model.Invoice, error) {
	return getRecord(ctx, s, invoices, id)
}

// AddProposal stores a new proposal, assigning an id when it has none.
func (s *Service) AddProposal(ctx context.Context, rec model.Proposal) (model.Proposal, error) {
	return addRecord(ctx, s, proposals, rec)
}

// UpdateProposal replaces the proposal with the same id.
func (s *Service) UpdateProposal(ctx context.Context, rec model.Proposal) error {
	return updateRecord(ctx, s, proposals, rec)
}

// DeleteProposal removes the proposal with the given id.
func (s *Service) DeleteProposal(ctx context.Context, id string) error {
	return deleteRecord(ctx, s, proposals, id)
}

// GetProposal returns the proposal with the given id.
func (s *Service) GetProposal(ctx context.Context, id string) (model.Proposal, error) {
	return getRecord(ctx, s, proposals, id)
}

// AddGoal stores a new goal, assigning an id when it has none.
func (s *Service) AddGoal(ctx context.Context, rec model.Goal) (model.Goal, error) {
	return addRecord(ctx, s, goals, rec)
}

// UpdateGoal replaces the goal with the same id.
func (s *Service) UpdateGoal(ctx context.Context, rec model.Goal) error {
	return updateRecord(ctx, s, goals, rec)
}

// DeleteGoal removes the goal with the given id.
func (s *Service) DeleteGoal(ctx context.Context, id string) error {
	return deleteRecord(ctx, s, goals, id)
}

// GetGoal returns the goal with the given id.
func (s *Service) GetGoal(ctx context.Context, id string) (model.Goal, error) {
	return getRecord(ctx, s, goals, id)
}
