package importer

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/tally-dev/tally/internal/id"
	"github.com/tally-dev/tally/internal/model"
)

// Transaction is one row of a bank statement.
type Transaction struct {
	Date        model.Date
	Description string
	Amount      decimal.Decimal // negative for money out
	Reference   string
	Type        string
}

// Parser converts a bank CSV file into Transactions.
type Parser interface {
	Parse(r io.Reader) ([]Transaction, error)
	Format() string
}

// Registry holds parsers by format name, case-insensitively.
type Registry struct {
	parsers map[string]Parser
}

// NewRegistry creates an empty parser registry.
func NewRegistry() *Registry {
	return &Registry{parsers: make(map[string]Parser)}
}

// Register adds a parser. Panics on duplicate format.
func (r *Registry) Register(p Parser) {
	key := strings.ToLower(p.Format())
	if _, ok := r.parsers[key]; ok {
		panic("duplicate parser format: " + key)
	}
	r.parsers[key] = p
}

// Get returns the parser for format, or nil.
func (r *Registry) Get(format string) Parser {
	return r.parsers[strings.ToLower(format)]
}

// Formats lists the registered format names, sorted.
func (r *Registry) Formats() []string {
	names := make([]string, 0, len(r.parsers))
	for k := range r.parsers {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// DefaultRegistry returns a registry with all built-in layouts.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	for _, l := range []Layout{Chase, Simple} {
		r.Register(NewCSVParser(l))
	}
	return r
}

// Statement is a CSV file waiting in the import directory.
type Statement struct {
	Name string
	Path string
	Size int64
}

const (
	importDir    = "import"
	processedDir = "processed"
)

// Dir returns the import directory of the workspace at root.
func Dir(root string) string { return filepath.Join(root, importDir) }

// Scan returns the CSV files waiting in <root>/import, by name. A missing
// directory has nothing waiting.
func Scan(root string) ([]Statement, error) {
	entries, err := os.ReadDir(Dir(root))
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading import dir: %w", err)
	}

	var out []Statement
	for _, e := range entries {
		if !e.Type().IsRegular() || !strings.EqualFold(filepath.Ext(e.Name()), ".csv") {
			continue
		}
		info, err := e.Info()
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", e.Name(), err)
		}
		out = append(out, Statement{Name: e.Name(), Path: filepath.Join(Dir(root), e.Name()), Size: info.Size()})
	}
	return out, nil
}

// MarkProcessed moves a statement into import/processed. An earlier file
// with the same name is kept; the new one gets a numeric suffix.
func MarkProcessed(root, name string) error {
	dst := filepath.Join(Dir(root), processedDir)
	if err := os.MkdirAll(dst, 0o755); err != nil {
		return fmt.Errorf("creating processed dir: %w", err)
	}
	target := filepath.Join(dst, name)
	ext := filepath.Ext(name)
	for n := 2; ; n++ {
		if _, err := os.Stat(target); errors.Is(err, os.ErrNotExist) {
			break
		}
		target = filepath.Join(dst, fmt.Sprintf("%s-%d%s", strings.TrimSuffix(name, ext), n, ext))
	}
	if err := os.Rename(filepath.Join(Dir(root), name), target); err != nil {
		return fmt.Errorf("moving %s to processed: %w", name, err)
	}
	return nil
}

// Result counts what Apply did.
type Result struct {
	Expenses   int
	Payments   int
	Duplicates int
	Skipped    int // zero amounts
}

// Apply adds txns to doc. Money out becomes an expense in the "other"
// category, money in becomes a paid payment with no project. Transactions
// whose reference is already recorded on an expense or payment are
// duplicates and left out. newID mints record ids.
func Apply(doc *model.Document, txns []Transaction, newID func(prefix string) string) Result {
	seen := make(map[string]bool)
	for _, e := range doc.Expenses {
		if e.Reference != "" {
			seen[e.Reference] = true
		}
	}
	for _, p := range doc.Payments {
		if p.Reference != "" {
			seen[p.Reference] = true
		}
	}

	var res Result
	for _, txn := range txns {
		if txn.Reference != "" && seen[txn.Reference] {
			res.Duplicates++
			continue
		}
		switch txn.Amount.Sign() {
		case -1:
			doc.Expenses = append(doc.Expenses, model.Expense{
				ID:          newID(id.Expense),
				Description: txn.Description,
				Amount:      txn.Amount.Neg(),
				Category:    model.ExpenseOther,
				Date:        txn.Date,
				Reference:   txn.Reference,
			})
			res.Expenses++
		case 1:
			doc.Payments = append(doc.Payments, model.Payment{
				ID:           newID(id.Payment),
				Amount:       txn.Amount,
				IsPaid:       true,
				ExpectedDate: txn.Date,
				PaidDate:     txn.Date,
				Description:  txn.Description,
				Reference:    txn.Reference,
			})
			res.Payments++
		default:
			res.Skipped++
			continue
		}
		if txn.Reference != "" {
			seen[txn.Reference] = true
		}
	}
	return res
}
