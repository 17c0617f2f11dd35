package importer

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tally-dev/tally/internal/model"
)

// Layout says which columns of a bank export hold which values. Column
// indexes are zero based; Type is -1 when the export has no type column.
type Layout struct {
	Name        string
	DateFormat  string
	Fields      int // exact column count, 0 for any
	Date        int
	Description int
	Amount      int
	Type        int
}

// Chase is the Chase checking account export:
// Details,Posting Date,Description,Amount,Type,Balance,Check or Slip #
var Chase = Layout{
	Name:        "chase",
	DateFormat:  "01/02/2006",
	Fields:      7,
	Date:        1,
	Description: 2,
	Amount:      3,
	Type:        4,
}

// Simple is a plain date,description,amount export with ISO dates.
var Simple = Layout{
	Name:        "simple",
	DateFormat:  model.DateFormat,
	Fields:      3,
	Date:        0,
	Description: 1,
	Amount:      2,
	Type:        -1,
}

// CSVParser reads statements in one Layout. The first row is a header.
type CSVParser struct {
	layout Layout
}

// NewCSVParser returns a parser for l.
func NewCSVParser(l Layout) *CSVParser {
	return &CSVParser{layout: l}
}

// Format returns the layout name.
func (p *CSVParser) Format() string { return p.layout.Name }

// Parse reads every row after the header.
func (p *CSVParser) Parse(r io.Reader) ([]Transaction, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = p.layout.Fields
	if p.layout.Fields == 0 {
		cr.FieldsPerRecord = -1
	}

	var txns []Transaction
	for line := 1; ; line++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading %s CSV: %w", p.layout.Name, err)
		}
		if line == 1 {
			continue
		}
		txn, err := p.row(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", line, err)
		}
		txns = append(txns, txn)
	}
	return txns, nil
}

func (p *CSVParser) row(rec []string) (Transaction, error) {
	l := p.layout
	if n := max(l.Date, l.Description, l.Amount, l.Type); n >= len(rec) {
		return Transaction{}, fmt.Errorf("expected at least %d columns, got %d", n+1, len(rec))
	}
	raw := strings.TrimSpace(rec[l.Date])
	date, err := time.Parse(l.DateFormat, raw)
	if err != nil {
		return Transaction{}, fmt.Errorf("parsing date %q: %w", raw, err)
	}
	amount, err := decimal.NewFromString(strings.TrimSpace(rec[l.Amount]))
	if err != nil {
		return Transaction{}, fmt.Errorf("parsing amount %q: %w", rec[l.Amount], err)
	}

	desc := strings.TrimSpace(rec[l.Description])
	txn := Transaction{
		Date:        model.DateOf(date),
		Description: desc,
		Amount:      amount,
		Reference:   reference(l.Name, date, desc, amount),
	}
	if l.Type >= 0 {
		txn.Type = strings.TrimSpace(rec[l.Type])
	}
	return txn, nil
}

// reference identifies a bank row across imports, e.g.
// chase_20250103_GITHUBPROS_-4.00.
func reference(format string, date time.Time, desc string, amount decimal.Decimal) string {
	var b strings.Builder
	for _, r := range desc {
		if b.Len() == 10 {
			break
		}
		if r >= 'A' && r <= 'Z' || r >= 'a' && r <= 'z' || r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return fmt.Sprintf("%s_%s_%s_%s", format, date.Format("20060102"), b.String(), amount.StringFixed(2))
}
