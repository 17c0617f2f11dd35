package store

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tally-dev/tally/internal/config"
	"github.com/tally-dev/tally/internal/model"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func sampleDocument() *model.Document {
	rate := dec("80")
	doc := model.NewDocument()
	doc.Settings.BusinessName = "Studio Nord"
	doc.Clients = []model.Client{{ID: "cli_1", Name: "Acme", Status: model.ClientActive}}
	doc.Projects = []model.Project{{
		ID: "prj_1", Name: "Site", ClientID: "cli_1", Status: model.ProjectInProgress,
		Budget: dec("4000.50"), Deadline: model.NewDate(2024, time.July, 1),
	}}
	doc.Tasks = []model.Task{{ID: "tsk_1", Title: "Wireframes", ProjectID: "prj_1", Priority: model.PriorityHigh, DueDate: model.NewDate(2024, time.June, 20)}}
	doc.Payments = []model.Payment{
		{ID: "pay_1", ProjectID: "prj_1", Amount: dec("1000.5"), IsPaid: true, PaidDate: model.NewDate(2024, time.June, 3)},
		{ID: "pay_2", ProjectID: "prj_1", Amount: dec("500"), ExpectedDate: model.NewDate(2024, time.July, 3)},
	}
	doc.TimeEntries = []model.TimeEntry{{
		ID: "tim_1", ProjectID: "prj_1", Billable: true, HourlyRate: &rate,
		Start: model.At(time.Date(2024, time.June, 3, 9, 0, 0, 0, time.UTC)),
		End:   model.At(time.Date(2024, time.June, 3, 11, 0, 0, 0, time.UTC)),
	}}
	doc.Expenses = []model.Expense{{ID: "exp_1", Description: "Figma", Amount: dec("15"), Category: model.ExpenseSoftware, Date: model.NewDate(2024, time.June, 1)}}
	doc.Equipment = []model.EquipmentItem{{
		ID: "eqp_1", Name: "Laptop", Category: model.EquipmentComputer, Status: model.EquipmentActive,
		PurchasePrice: dec("2000"), CurrentValue: dec("1500"),
		MaintenanceHistory: []model.MaintenanceRecord{{ID: "mnt_1", Description: "Battery", Cost: dec("120")}},
	}}
	doc.Invoices = []model.Invoice{{
		ID: "inv_1", InvoiceNumber: "INV-2024-001", ClientID: "cli_1", Status: model.InvoiceSent,
		Items:    []model.InvoiceItem{{Description: "Design", Quantity: dec("10"), Rate: dec("50"), Amount: dec("500")}},
		Subtotal: dec("500"), Tax: dec("115"), Total: dec("615"),
	}}
	doc.Proposals = []model.Proposal{{ID: "prp_1", Title: "Redesign", ClientID: "cli_1", Amount: dec("3000"), Status: model.ProposalSent, Deliverables: []string{"mockups"}}}
	doc.Goals = []model.Goal{{ID: "gol_1", Title: "10k", Type: model.GoalRevenue, TargetAmount: dec("10000"), Deadline: model.NewDate(2024, time.December, 31)}}
	return doc
}

func TestExportImportRoundTrip(t *testing.T) {
	first, err := Export(sampleDocument())
	require.NoError(t, err)

	doc, err := Import(first)
	require.NoError(t, err)

	second, err := Export(doc)
	require.NoError(t, err)
	assert.Equal(t, string(first), string(second))

	assert.Equal(t, "Studio Nord", doc.Settings.BusinessName)
	require.Len(t, doc.Payments, 2)
	assert.True(t, doc.Payments[0].Amount.Equal(dec("1000.50")))
	require.NotNil(t, doc.TimeEntries[0].HourlyRate)
	assert.True(t, doc.TimeEntries[0].HourlyRate.Equal(dec("80")))
}

func TestExportShape(t *testing.T) {
	data, err := Export(model.NewDocument())
	require.NoError(t, err)
	s := string(data)
	for _, key := range []string{`"clients": []`, `"timeEntries": []`, `"settings": {`} {
		assert.Contains(t, s, key)
	}
	assert.True(t, strings.HasSuffix(s, "}\n"))
}

func TestImportRejectsInvalid(t *testing.T) {
	for _, in := range []string{"", "not json", "[]", "null", `{"clients": [`, `{"clients": "x"}`} {
		doc, err := Import([]byte(in))
		assert.ErrorIs(t, err, ErrInvalidSnapshot, "input %q", in)
		assert.Nil(t, doc)
	}
}

func TestImportFillsMissing(t *testing.T) {
	doc, err := Import([]byte(`{"clients": [{"id": "c1", "name": "Acme"}], "payments": null}`))
	require.NoError(t, err)
	require.Len(t, doc.Clients, 1)
	assert.NotNil(t, doc.Payments)
	assert.Empty(t, doc.Projects)
	assert.Equal(t, "EUR", doc.Settings.Currency)
}

func TestImportLegacyShape(t *testing.T) {
	legacy := `{
		"projects": [{"id": "p1", "name": "Old", "status": "completed", "expectedValue": 900, "deliveryDate": "2024-05-01"}],
		"payments": [{"id": "x", "projectId": "p1", "amount": 900, "status": "paid", "date": "2024-05-02"}]
	}`
	doc, err := Import([]byte(legacy))
	require.NoError(t, err)
	assert.Equal(t, model.ProjectPaid, doc.Projects[0].Status)
	assert.True(t, doc.Projects[0].Budget.Equal(dec("900")))
	assert.True(t, doc.Payments[0].IsPaid)
	assert.Equal(t, "2024-05-02", doc.Payments[0].PaidDate.String())
}

func TestFileStore(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	s := NewFileStore(filepath.Join(dir, "data", "tally.json"), nil)

	_, err := s.Load(ctx)
	require.ErrorIs(t, err, ErrNotFound)

	doc := sampleDocument()
	require.NoError(t, s.Save(ctx, doc))
	_, err = os.Stat(s.BackupPath())
	assert.ErrorIs(t, err, os.ErrNotExist, "no backup before the second save")

	doc.Clients = append(doc.Clients, model.Client{ID: "cli_2", Name: "Globex"})
	require.NoError(t, s.Save(ctx, doc))

	got, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Len(t, got.Clients, 2)

	prev, err := Import(mustRead(t, s.BackupPath()))
	require.NoError(t, err)
	assert.Len(t, prev.Clients, 1)

	entries, err := os.ReadDir(filepath.Join(dir, "data"))
	require.NoError(t, err)
	for _, e := range entries {
		assert.False(t, strings.HasSuffix(e.Name(), ".tmp"), "leftover %s", e.Name())
	}
	assert.Len(t, entries, 2)
}

func TestFileStoreCorrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tally.json")
	require.NoError(t, os.WriteFile(path, []byte("{oops"), 0o644))

	_, err := NewFileStore(path, nil).Load(context.Background())
	assert.ErrorIs(t, err, ErrInvalidSnapshot)
}

func mustRead(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return data
}

func TestSQLiteStore(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "data", "tally.db")

	s, err := OpenSQLite(path, nil)
	require.NoError(t, err)

	_, err = s.Load(ctx)
	require.ErrorIs(t, err, ErrNotFound)

	doc := sampleDocument()
	require.NoError(t, s.Save(ctx, doc))
	doc.Settings.BusinessName = "Second"
	require.NoError(t, s.Save(ctx, doc))
	doc.Settings.BusinessName = "Third"
	require.NoError(t, s.Save(ctx, doc))

	got, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Third", got.Settings.BusinessName)

	revs, err := s.Revisions(ctx, 2)
	require.NoError(t, err)
	require.Len(t, revs, 2)
	assert.Greater(t, revs[0].ID, revs[1].ID)
	assert.False(t, revs[0].SavedAt.IsZero())
	assert.Positive(t, revs[0].Size)

	all, err := s.Revisions(ctx, 0)
	require.NoError(t, err)
	require.Len(t, all, 3)

	first, err := s.LoadRevision(ctx, all[2].ID)
	require.NoError(t, err)
	assert.Equal(t, "Studio Nord", first.Settings.BusinessName)

	_, err = s.LoadRevision(ctx, 999)
	assert.ErrorIs(t, err, ErrNotFound)
	require.NoError(t, s.Close())

	// Reopening runs migrations again without touching existing rows.
	s, err = OpenSQLite(path, nil)
	require.NoError(t, err)
	defer s.Close()
	got, err = s.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Third", got.Settings.BusinessName)
}

func TestSQLiteStoreRevisionSizeInBytes(t *testing.T) {
	ctx := context.Background()
	s, err := OpenSQLite(filepath.Join(t.TempDir(), "tally.db"), nil)
	require.NoError(t, err)
	defer s.Close()

	doc := sampleDocument()
	doc.Settings.BusinessName = "Café Ørsted 東京"
	require.NoError(t, s.Save(ctx, doc))
	data, err := Export(doc)
	require.NoError(t, err)

	revs, err := s.Revisions(ctx, 1)
	require.NoError(t, err)
	require.Len(t, revs, 1)
	assert.Equal(t, len(data), revs[0].Size)
}

func TestOpenSelectsBackend(t *testing.T) {
	root := t.TempDir()
	cfg := config.Default("x")

	s, err := Open(root, cfg, nil)
	require.NoError(t, err)
	fs, ok := s.(*FileStore)
	require.True(t, ok)
	assert.Equal(t, filepath.Join(root, "data", "tally.json"), fs.Path())

	cfg.Storage.Backend = config.BackendSQLite
	s, err = Open(root, cfg, nil)
	require.NoError(t, err)
	defer s.Close()
	_, ok = s.(*SQLiteStore)
	assert.True(t, ok)

	cfg.Storage.Backend = "memory"
	_, err = Open(root, cfg, nil)
	assert.Error(t, err)
}

func TestLoadOrNew(t *testing.T) {
	s := NewFileStore(filepath.Join(t.TempDir(), "tally.json"), nil)
	doc, err := LoadOrNew(context.Background(), s)
	require.NoError(t, err)
	assert.Empty(t, doc.Clients)
	assert.Equal(t, model.DefaultSettings(), doc.Settings)
}
