package model

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// TimeEntry is a tracked work interval. An entry with neither an end nor a
// duration is still running.
type TimeEntry struct {
	ID              string           `json:"id"`
	ProjectID       string           `json:"projectId"`
	Start           Timestamp        `json:"start"`
	End             Timestamp        `json:"end"`
	DurationSeconds int64            `json:"durationSeconds,omitempty"`
	Billable        bool             `json:"billable"`
	HourlyRate      *decimal.Decimal `json:"hourlyRate,omitempty"` // overrides the settings rate
	Description     string           `json:"description,omitempty"`
}

// IsRunning reports whether the entry is an open interval.
func (e TimeEntry) IsRunning() bool {
	return e.End.IsZero() && e.DurationSeconds <= 0
}

// Duration returns the closed length of the entry, or zero while running.
func (e TimeEntry) Duration() time.Duration {
	if !e.End.IsZero() {
		if e.Start.IsZero() || e.End.Before(e.Start.Time) {
			return 0
		}
		return e.End.Sub(e.Start.Time)
	}
	if e.DurationSeconds > 0 {
		return time.Duration(e.DurationSeconds) * time.Second
	}
	return 0
}

// UnmarshalJSON also accepts the older startTime/endTime (epoch ms) and
// duration (seconds) keys.
func (e *TimeEntry) UnmarshalJSON(data []byte) error {
	type plain TimeEntry
	var aux struct {
		plain
		StartTime Timestamp `json:"startTime"`
		EndTime   Timestamp `json:"endTime"`
		Duration  int64     `json:"duration"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	*e = TimeEntry(aux.plain)
	if e.Start.IsZero() {
		e.Start = aux.StartTime
	}
	if e.End.IsZero() {
		e.End = aux.EndTime
	}
	if e.DurationSeconds == 0 && aux.Duration > 0 {
		e.DurationSeconds = aux.Duration
	}
	return nil
}
