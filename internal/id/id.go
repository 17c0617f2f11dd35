package id

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// Entity prefixes keep ids readable in exported documents.
const (
	Client      = "cli"
	Project     = "prj"
	Task        = "tsk"
	Payment     = "pay"
	TimeEntry   = "tim"
	Equipment   = "eqp"
	Maintenance = "mnt"
	Invoice     = "inv"
	Expense     = "exp"
	Proposal    = "prp"
	Goal        = "gol"
)

// New returns a unique id like "cli_0190a3c4-...". The uuid is version 7, so
// ids sort by creation time.
func New(prefix string) string {
	u, err := uuid.NewV7()
	if err != nil {
		u = uuid.New()
	}
	return prefix + "_" + u.String()
}

// Prefix returns the entity prefix of an id, or "" for ids without one
// (for example timestamp ids from older documents).
func Prefix(id string) string {
	i := strings.IndexByte(id, '_')
	if i <= 0 {
		return ""
	}
	return id[:i]
}

// FormatInvoiceNumber returns an invoice number like "INV-2025-001".
func FormatInvoiceNumber(year, seq int) string {
	return fmt.Sprintf("INV-%04d-%03d", year, seq)
}

// ParseInvoiceNumber parses "INV-2025-001" into year and seq.
func ParseInvoiceNumber(number string) (year, seq int, err error) {
	parts := strings.SplitN(number, "-", 3)
	if len(parts) != 3 || parts[0] != "INV" {
		return 0, 0, fmt.Errorf("invalid invoice number format: %q", number)
	}

	year, err = strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, fmt.Errorf("invalid year in invoice number %q: %w", number, err)
	}

	seq, err = strconv.Atoi(parts[2])
	if err != nil {
		return 0, 0, fmt.Errorf("invalid sequence in invoice number %q: %w", number, err)
	}

	return year, seq, nil
}

// NextInvoiceNumber returns the number following the highest one issued in
// year. Numbers that do not parse are ignored.
func NextInvoiceNumber(existing []string, year int) string {
	maxSeq := 0
	for _, n := range existing {
		y, seq, err := ParseInvoiceNumber(n)
		if err != nil || y != year {
			continue
		}
		if seq > maxSeq {
			maxSeq = seq
		}
	}
	return FormatInvoiceNumber(year, maxSeq+1)
}
