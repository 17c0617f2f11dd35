package ledger

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tally-dev/tally/internal/activity"
	"github.com/tally-dev/tally/internal/config"
	"github.com/tally-dev/tally/internal/gitops"
	"github.com/tally-dev/tally/internal/model"
	"github.com/tally-dev/tally/internal/store"
)

type testEnv struct {
	svc  *Service
	root string
	now  time.Time
}

func (e *testEnv) advance(d time.Duration) { e.now = e.now.Add(d) }

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	root := t.TempDir()
	cfg := config.Default("Studio Nord")
	env := &testEnv{root: root, now: time.Date(2024, 6, 15, 10, 0, 0, 0, time.UTC)}
	seq := 0
	st := store.NewFileStore(cfg.StoragePath(root), nil)
	env.svc = NewService(root, cfg, st,
		WithClock(func() time.Time { return env.now }),
		WithIDs(func(prefix string) string {
			seq++
			return fmt.Sprintf("%s_%d", prefix, seq)
		}),
	)
	t.Cleanup(func() { _ = env.svc.Close() })
	return env
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestAddClientSavesAndLogs(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	c, err := env.svc.AddClient(ctx, model.Client{Name: "Acme"})
	require.NoError(t, err)
	assert.Equal(t, "cli_1", c.ID)
	assert.Equal(t, model.ClientActive, c.Status)

	doc, err := env.svc.Document(ctx)
	require.NoError(t, err)
	require.Len(t, doc.Clients, 1)
	assert.Equal(t, "Acme", doc.Clients[0].Name)

	entries, err := activity.Read(env.root)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "add", entries[0].Action)
	assert.Equal(t, "client", entries[0].Entity)
	assert.Equal(t, "cli_1", entries[0].EntityID)
	assert.Equal(t, "Acme", entries[0].Details)
	assert.Empty(t, entries[0].CommitHash)
}

func TestMutateFailureSavesNothing(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.svc.AddClient(ctx, model.Client{})
	assert.ErrorIs(t, err, ErrInvalid)

	_, err = os.Stat(env.svc.Config().StoragePath(env.root))
	assert.True(t, os.IsNotExist(err))

	entries, err := activity.Read(env.root)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestNotFound(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.svc.GetProject(ctx, "prj_missing")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.True(t, IsNotFound(err))

	err = env.svc.DeleteClient(ctx, "cli_missing")
	assert.ErrorIs(t, err, ErrNotFound)

	err = env.svc.UpdateTask(ctx, model.Task{ID: "tsk_missing", Title: "x", Priority: model.PriorityLow})
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = env.svc.MarkPaymentPaid(ctx, "pay_missing", model.Date{})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteClientKeepsReferences(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	c, err := env.svc.AddClient(ctx, model.Client{Name: "Acme"})
	require.NoError(t, err)
	p, err := env.svc.AddProject(ctx, model.Project{Name: "Site", ClientID: c.ID, Budget: dec("1200")})
	require.NoError(t, err)
	assert.Equal(t, model.ProjectPlanned, p.Status)

	require.NoError(t, env.svc.DeleteClient(ctx, c.ID))

	doc, err := env.svc.Document(ctx)
	require.NoError(t, err)
	assert.Empty(t, doc.Clients)
	require.Len(t, doc.Projects, 1)
	assert.Equal(t, c.ID, doc.Projects[0].ClientID)
}

func TestUpdateProject(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	p, err := env.svc.AddProject(ctx, model.Project{Name: "Site", Status: "active"})
	require.NoError(t, err)
	assert.Equal(t, model.ProjectInProgress, p.Status)

	p.Name = "Website"
	require.NoError(t, env.svc.UpdateProject(ctx, p))

	p.Status = "bogus"
	assert.ErrorIs(t, env.svc.UpdateProject(ctx, p), ErrInvalid)

	got, err := env.svc.GetProject(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Website", got.Name)
	assert.Equal(t, model.ProjectInProgress, got.Status)

	got, err = env.svc.SetProjectStatus(ctx, p.ID, "completed")
	require.NoError(t, err)
	assert.Equal(t, model.ProjectPaid, got.Status)

	_, err = env.svc.SetProjectStatus(ctx, p.ID, "archived")
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestMarkPaymentPaid(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	p, err := env.svc.AddPayment(ctx, model.Payment{
		Amount:       dec("500"),
		ExpectedDate: model.NewDate(2024, time.June, 30),
	})
	require.NoError(t, err)
	assert.False(t, p.IsPaid)

	paid, err := env.svc.MarkPaymentPaid(ctx, p.ID, model.Date{})
	require.NoError(t, err)
	assert.True(t, paid.IsPaid)
	assert.Equal(t, "2024-06-15", paid.PaidDate.String())
	assert.Equal(t, "2024-06-30", paid.ExpectedDate.String())

	_, err = env.svc.AddPayment(ctx, model.Payment{Amount: dec("-1")})
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestToggleTask(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	task, err := env.svc.AddTask(ctx, model.Task{Title: "Send draft"})
	require.NoError(t, err)
	assert.Equal(t, model.PriorityMedium, task.Priority)
	assert.True(t, env.now.Equal(task.CreatedAt.Time))

	task, err = env.svc.ToggleTask(ctx, task.ID)
	require.NoError(t, err)
	assert.True(t, task.Completed)
	task, err = env.svc.ToggleTask(ctx, task.ID)
	require.NoError(t, err)
	assert.False(t, task.Completed)
}

func TestTimerFlow(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.svc.StopTimer(ctx)
	assert.ErrorIs(t, err, ErrNoTimer)

	started, err := env.svc.StartTimer(ctx, StartTimerParams{ProjectID: "prj_x", Description: "layout", Billable: true})
	require.NoError(t, err)
	assert.True(t, started.IsRunning())

	_, err = env.svc.StartTimer(ctx, StartTimerParams{ProjectID: "prj_y"})
	assert.ErrorIs(t, err, ErrTimerRunning)

	env.advance(90 * time.Minute)
	stopped, err := env.svc.StopTimer(ctx)
	require.NoError(t, err)
	assert.Equal(t, started.ID, stopped.ID)
	assert.False(t, stopped.IsRunning())
	assert.Equal(t, 90*time.Minute, stopped.Duration())

	doc, err := env.svc.Document(ctx)
	require.NoError(t, err)
	require.Len(t, doc.TimeEntries, 1)
	assert.Equal(t, 90*time.Minute, doc.TimeEntries[0].Duration())
}

func TestAddMaintenance(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	item, err := env.svc.AddEquipment(ctx, model.EquipmentItem{Name: "Laptop", PurchasePrice: dec("2000"), CurrentValue: dec("1500")})
	require.NoError(t, err)
	assert.Equal(t, model.EquipmentActive, item.Status)

	rec, err := env.svc.AddMaintenance(ctx, item.ID, model.MaintenanceRecord{Description: "Battery", Cost: dec("120")})
	require.NoError(t, err)
	assert.Equal(t, "2024-06-15", rec.Date.String())
	assert.NotEmpty(t, rec.ID)

	got, err := env.svc.GetEquipment(ctx, item.ID)
	require.NoError(t, err)
	require.Len(t, got.MaintenanceHistory, 1)
	assert.Equal(t, "Battery", got.MaintenanceHistory[0].Description)

	_, err = env.svc.AddMaintenance(ctx, "eqp_missing", model.MaintenanceRecord{Description: "x"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCreateInvoice(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	params := InvoiceParams{
		ClientID: "cli_1",
		Items: []model.InvoiceItem{
			{Description: "Design", Quantity: dec("10"), Rate: dec("50")},
			{Description: "Hosting", Quantity: dec("2"), Rate: dec("25.50")},
		},
	}
	inv, err := env.svc.CreateInvoice(ctx, params)
	require.NoError(t, err)
	assert.Equal(t, "INV-2024-001", inv.InvoiceNumber)
	assert.Equal(t, model.InvoiceDraft, inv.Status)
	assert.True(t, inv.Items[0].Amount.Equal(dec("500")))
	assert.True(t, inv.Subtotal.Equal(dec("551")))
	assert.True(t, inv.Tax.Equal(dec("126.73")), inv.Tax.String())
	assert.True(t, inv.Total.Equal(dec("677.73")))
	assert.Equal(t, "2024-06-15", inv.IssueDate.String())
	assert.Equal(t, "2024-07-15", inv.DueDate.String())

	second, err := env.svc.CreateInvoice(ctx, params)
	require.NoError(t, err)
	assert.Equal(t, "INV-2024-002", second.InvoiceNumber)

	params.IssueDate = model.NewDate(2025, time.January, 2)
	third, err := env.svc.CreateInvoice(ctx, params)
	require.NoError(t, err)
	assert.Equal(t, "INV-2025-001", third.InvoiceNumber)

	sent, err := env.svc.SetInvoiceStatus(ctx, inv.ID, model.InvoiceSent)
	require.NoError(t, err)
	assert.Equal(t, model.InvoiceSent, sent.Status)

	_, err = env.svc.SetInvoiceStatus(ctx, inv.ID, "lost")
	assert.ErrorIs(t, err, ErrInvalid)

	_, err = env.svc.CreateInvoice(ctx, InvoiceParams{ClientID: "cli_1"})
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestProposalStatus(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	p, err := env.svc.AddProposal(ctx, model.Proposal{Title: "Rebrand", Amount: dec("3000")})
	require.NoError(t, err)
	assert.Equal(t, model.ProposalDraft, p.Status)
	assert.Equal(t, "2024-06-15", p.CreatedDate.String())

	p, err = env.svc.SetProposalStatus(ctx, p.ID, model.ProposalAccepted)
	require.NoError(t, err)
	assert.Equal(t, model.ProposalAccepted, p.Status)
}

func TestSaveSettings(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	s := model.DefaultSettings()
	s.BusinessName = "Studio Nord"
	s.TaxRate = dec("20")
	require.NoError(t, env.svc.SaveSettings(ctx, s))

	doc, err := env.svc.Document(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Studio Nord", doc.Settings.BusinessName)
	assert.True(t, doc.Settings.TaxRate.Equal(dec("20")))

	s.Currency = ""
	assert.ErrorIs(t, env.svc.SaveSettings(ctx, s), ErrInvalid)
}

func TestSnapshotImportExport(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.svc.AddClient(ctx, model.Client{Name: "Acme"})
	require.NoError(t, err)

	data, err := env.svc.ExportSnapshot(ctx)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"name": "Acme"`)

	_, err = env.svc.ImportSnapshot(ctx, []byte("not json"))
	assert.ErrorIs(t, err, store.ErrInvalidSnapshot)
	doc, err := env.svc.Document(ctx)
	require.NoError(t, err)
	assert.Len(t, doc.Clients, 1)

	imported, err := env.svc.ImportSnapshot(ctx, []byte(`{"clients": [{"id": "c9", "name": "Globex"}, {"id": "c10", "name": "Initech"}]}`))
	require.NoError(t, err)
	assert.Len(t, imported.Clients, 2)

	doc, err = env.svc.Document(ctx)
	require.NoError(t, err)
	require.Len(t, doc.Clients, 2)
	assert.Equal(t, "Globex", doc.Clients[0].Name)
	assert.NotNil(t, doc.Payments)
}

func TestImportBank(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	csvData, err := os.ReadFile(filepath.Join("..", "importer", "testdata", "chase_checking.csv"))
	require.NoError(t, err)
	importDir := filepath.Join(env.root, "import")
	require.NoError(t, os.MkdirAll(importDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(importDir, "june.csv"), csvData, 0o644))

	files, err := env.svc.ImportBank(ctx, "chase")
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, "june.csv", files[0].Name)
	assert.Equal(t, 6, files[0].Transactions)
	assert.Equal(t, 4, files[0].Expenses)
	assert.Equal(t, 1, files[0].Payments)
	assert.Equal(t, 1, files[0].Skipped)

	_, err = os.Stat(filepath.Join(importDir, "processed", "june.csv"))
	assert.NoError(t, err)

	// The same statement dropped in again only yields duplicates.
	require.NoError(t, os.WriteFile(filepath.Join(importDir, "again.csv"), csvData, 0o644))
	files, err = env.svc.ImportBank(ctx, "chase")
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, 5, files[0].Duplicates)
	assert.Zero(t, files[0].Expenses)

	doc, err := env.svc.Document(ctx)
	require.NoError(t, err)
	assert.Len(t, doc.Expenses, 4)
	assert.Len(t, doc.Payments, 1)

	files, err = env.svc.ImportBank(ctx, "chase")
	require.NoError(t, err)
	assert.Empty(t, files)

	_, err = env.svc.ImportBank(ctx, "hsbc")
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestHistory(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.svc.AddClient(ctx, model.Client{Name: "Acme"})
	require.NoError(t, err)
	env.advance(time.Minute)
	_, err = env.svc.AddClient(ctx, model.Client{Name: "Globex"})
	require.NoError(t, err)

	rows, err := env.svc.History(1)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Globex", rows[0].Details)
}

func TestMutateCommitsToGit(t *testing.T) {
	if !gitops.Available() {
		t.Skip("git not installed")
	}
	env := newTestEnv(t)
	ctx := context.Background()
	require.NoError(t, gitops.Init(env.root))

	_, err := env.svc.AddClient(ctx, model.Client{Name: "Acme"})
	require.NoError(t, err)

	commits, err := gitops.Log(env.root, 1)
	require.NoError(t, err)
	require.Len(t, commits, 1)
	assert.Equal(t, "add client: Acme", commits[0].Subject)
	assert.Equal(t, "Tally", commits[0].Author)

	entries, err := activity.Read(env.root)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, commits[0].Hash, entries[0].CommitHash)
}
