// Package activity keeps an append-only CSV record of workspace changes in
// <root>/logs/activity-log.csv.
package activity

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Entry is one row in the activity log.
type Entry struct {
	Timestamp  time.Time
	Action     string
	Entity     string
	EntityID   string
	Details    string
	CommitHash string
}

// columns is the on-disk column order.
var columns = []string{"timestamp", "action", "entity", "entity_id", "details", "commit_hash"}

// Header is the first line of activity-log.csv.
var Header = strings.Join(columns, ",")

const colTimestamp = 0

// Path returns the log file location under root.
func Path(root string) string {
	return filepath.Join(root, "logs", "activity-log.csv")
}

// MarshalEntry converts an Entry to a CSV row. Timestamps are written in UTC.
func MarshalEntry(e Entry) []string {
	return []string{
		e.Timestamp.UTC().Format(time.RFC3339),
		e.Action,
		e.Entity,
		e.EntityID,
		e.Details,
		e.CommitHash,
	}
}

// UnmarshalEntry converts a CSV row to an Entry.
func UnmarshalEntry(record []string) (Entry, error) {
	if len(record) != len(columns) {
		return Entry{}, fmt.Errorf("expected %d fields, got %d", len(columns), len(record))
	}
	ts, err := time.Parse(time.RFC3339, record[colTimestamp])
	if err != nil {
		return Entry{}, fmt.Errorf("parsing timestamp %q: %w", record[colTimestamp], err)
	}
	return Entry{
		Timestamp:  ts,
		Action:     record[1],
		Entity:     record[2],
		EntityID:   record[3],
		Details:    record[4],
		CommitHash: record[5],
	}, nil
}

// Append adds entries to the log. The file and its header are created on
// first use.
func Append(root string, entries ...Entry) (err error) {
	path := Path(root)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating logs dir: %w", err)
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("opening activity log: %w", err)
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	info, err := f.Stat()
	if err != nil {
		return fmt.Errorf("stat activity log: %w", err)
	}

	cw := csv.NewWriter(f)
	if info.Size() == 0 {
		if err := cw.Write(columns); err != nil {
			return fmt.Errorf("writing header: %w", err)
		}
	}
	for i, e := range entries {
		if err := cw.Write(MarshalEntry(e)); err != nil {
			return fmt.Errorf("writing entry %d: %w", i, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// Read returns all entries, oldest first. A missing log reads as empty.
func Read(root string) ([]Entry, error) {
	f, err := os.Open(Path(root))
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("opening activity log: %w", err)
	}
	defer f.Close()
	return readEntries(f)
}

// Tail returns the last n entries, newest first. n <= 0 returns them all.
func Tail(root string, n int) ([]Entry, error) {
	entries, err := Read(root)
	if err != nil {
		return nil, err
	}
	out := make([]Entry, 0, len(entries))
	for i := len(entries) - 1; i >= 0 && (n <= 0 || len(out) < n); i-- {
		out = append(out, entries[i])
	}
	return out, nil
}

func readEntries(r io.Reader) ([]Entry, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = len(columns)

	var entries []Entry
	for line := 1; ; line++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			return entries, nil
		}
		if err != nil {
			return nil, fmt.Errorf("reading activity log CSV: %w", err)
		}
		if line == 1 && rec[colTimestamp] == columns[colTimestamp] {
			continue
		}
		e, err := UnmarshalEntry(rec)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		entries = append(entries, e)
	}
}
