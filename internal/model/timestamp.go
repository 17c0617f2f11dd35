package model

import (
	"bytes"
	"encoding/json"
	"time"
)

// Timestamp is an instant. On the wire it is RFC 3339; epoch milliseconds are
// accepted on input. The zero Timestamp is written as null.
type Timestamp struct {
	time.Time
}

// At wraps t in UTC, dropping the monotonic clock reading.
func At(t time.Time) Timestamp {
	return Timestamp{Time: t.UTC().Round(0)}
}

// MarshalJSON writes RFC 3339 with nanoseconds, or null when unset.
func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(t.Format(time.RFC3339Nano))
}

// UnmarshalJSON accepts null, an RFC 3339 string or epoch milliseconds.
// Anything unparseable decodes as unset.
func (t *Timestamp) UnmarshalJSON(data []byte) error {
	*t = Timestamp{}
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	var ms int64
	if err := json.Unmarshal(data, &ms); err == nil {
		t.Time = time.UnixMilli(ms).UTC()
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return nil
	}
	if parsed, err := time.Parse(time.RFC3339Nano, s); err == nil {
		t.Time = parsed
	}
	return nil
}
