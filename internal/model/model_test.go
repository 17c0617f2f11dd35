package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		in   string
		want Date
	}{
		{"2024-06-10", NewDate(2024, time.June, 10)},
		{"2024-06-10T15:04:05Z", NewDate(2024, time.June, 10)},
		{"2024-06-10T23:30:00.000Z", NewDate(2024, time.June, 10)},
	}
	for _, tt := range tests {
		got, err := ParseDate(tt.in)
		require.NoError(t, err, tt.in)
		assert.True(t, tt.want.Equal(got), "ParseDate(%q) = %s", tt.in, got)
	}

	_, err := ParseDate("10/06/2024")
	require.Error(t, err)
}

func TestDateJSON(t *testing.T) {
	var d Date
	require.NoError(t, json.Unmarshal([]byte(`"2024-06-10"`), &d))
	assert.Equal(t, "2024-06-10", d.String())

	out, err := json.Marshal(d)
	require.NoError(t, err)
	assert.JSONEq(t, `"2024-06-10"`, string(out))

	// Empty, null and garbage all mean "not set".
	for _, in := range []string{`""`, `null`, `"not a date"`} {
		d = NewDate(2020, time.January, 1)
		require.NoError(t, json.Unmarshal([]byte(in), &d), in)
		assert.True(t, d.IsZero(), in)
	}

	out, err = json.Marshal(Date{})
	require.NoError(t, err)
	assert.Equal(t, `""`, string(out))

	require.Error(t, json.Unmarshal([]byte(`42`), &d))
}

func TestDateHelpers(t *testing.T) {
	d := NewDate(2024, time.June, 10)
	assert.True(t, d.InMonth(2024, time.June))
	assert.False(t, d.InMonth(2023, time.June))
	assert.False(t, Date{}.InMonth(1, time.January))
	assert.Equal(t, 5, NewDate(2024, time.June, 15).DaysSince(d))
	assert.True(t, d.Before(NewDate(2024, time.June, 11)))

	local := time.Date(2024, time.June, 10, 23, 59, 0, 0, time.FixedZone("x", 5*3600))
	assert.True(t, DateOf(local).Equal(d))
}

func TestTimestampJSON(t *testing.T) {
	var ts Timestamp
	require.NoError(t, json.Unmarshal([]byte(`1718445600000`), &ts))
	assert.Equal(t, time.Date(2024, time.June, 15, 10, 0, 0, 0, time.UTC), ts.Time)

	require.NoError(t, json.Unmarshal([]byte(`"2024-06-15T10:00:00Z"`), &ts))
	assert.Equal(t, 10, ts.Hour())

	out, err := json.Marshal(Timestamp{})
	require.NoError(t, err)
	assert.Equal(t, "null", string(out))
}

func TestPaymentLegacyStatus(t *testing.T) {
	tests := []struct {
		name         string
		in           string
		wantPaid     bool
		wantExpected string
		wantPaidDate string
	}{
		{"canonical", `{"id":"p1","amount":10,"isPaid":true,"expectedDate":"2024-05-01","paidDate":"2024-05-03"}`, true, "2024-05-01", "2024-05-03"},
		{"legacy paid", `{"id":"p1","amount":10,"status":"paid","date":"2024-05-03"}`, true, "", "2024-05-03"},
		{"legacy pending", `{"id":"p1","amount":10,"status":"pending","date":"2024-05-03"}`, false, "2024-05-03", ""},
		{"legacy overdue", `{"id":"p1","amount":10,"status":"overdue","date":"2024-04-03"}`, false, "2024-04-03", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var p Payment
			require.NoError(t, json.Unmarshal([]byte(tt.in), &p))
			assert.Equal(t, tt.wantPaid, p.IsPaid)
			assert.Equal(t, tt.wantExpected, p.ExpectedDate.String())
			assert.Equal(t, tt.wantPaidDate, p.PaidDate.String())
			assert.True(t, p.Amount.Equal(decimal.NewFromInt(10)))
		})
	}
}

func TestPaymentEffectiveDate(t *testing.T) {
	p := Payment{ExpectedDate: NewDate(2024, time.May, 31), PaidDate: NewDate(2024, time.June, 2)}
	assert.Equal(t, "2024-06-02", p.EffectiveDate().String())

	p.PaidDate = Date{}
	assert.Equal(t, "2024-05-31", p.EffectiveDate().String())
}

func TestProjectLegacyFields(t *testing.T) {
	var p Project
	in := `{"id":"x","name":"Site","clientId":"c","status":"completed","expectedValue":1200,"deliveryDate":"2024-07-01"}`
	require.NoError(t, json.Unmarshal([]byte(in), &p))
	assert.Equal(t, ProjectPaid, p.Status)
	assert.True(t, p.IsCompleted())
	assert.True(t, p.Budget.Equal(decimal.NewFromInt(1200)))
	assert.Equal(t, "2024-07-01", p.Deadline.String())

	require.NoError(t, json.Unmarshal([]byte(`{"id":"y","status":"active","budget":5}`), &p))
	assert.Equal(t, ProjectInProgress, p.Status)
	assert.True(t, p.Budget.Equal(decimal.NewFromInt(5)))
	assert.True(t, p.IsOpen())
}

func TestTaskLegacyDeadline(t *testing.T) {
	var task Task
	require.NoError(t, json.Unmarshal([]byte(`{"id":"t","title":"Ship","deadline":"2024-06-15","completed":false}`), &task))
	assert.Equal(t, "2024-06-15", task.DueDate.String())
}

func TestTimeEntryLegacyFields(t *testing.T) {
	var e TimeEntry
	in := `{"id":"e","projectId":"p","startTime":1718445600000,"endTime":1718452800000,"billable":true}`
	require.NoError(t, json.Unmarshal([]byte(in), &e))
	assert.False(t, e.IsRunning())
	assert.Equal(t, 2*time.Hour, e.Duration())

	require.NoError(t, json.Unmarshal([]byte(`{"id":"e","projectId":"p","duration":5400}`), &e))
	assert.Equal(t, 90*time.Minute, e.Duration())

	require.NoError(t, json.Unmarshal([]byte(`{"id":"e","projectId":"p","start":"2024-06-15T10:00:00Z"}`), &e))
	assert.True(t, e.IsRunning())
	assert.Equal(t, time.Duration(0), e.Duration())
}

func TestClientIsActive(t *testing.T) {
	assert.True(t, Client{Status: ClientActive}.IsActive())
	assert.True(t, Client{}.IsActive(), "missing status counts as active")
	assert.False(t, Client{Status: ClientInactive}.IsActive())
}

func TestNewDocument(t *testing.T) {
	doc := NewDocument()
	assert.Equal(t, "EUR", doc.Settings.Currency)
	assert.True(t, doc.Settings.TaxRate.Equal(decimal.NewFromInt(23)))
	assert.True(t, doc.Settings.HourlyRate.Equal(decimal.NewFromInt(50)))
	assert.NotNil(t, doc.Clients)
	assert.NotNil(t, doc.Goals)

	out, err := json.Marshal(doc)
	require.NoError(t, err)
	assert.Contains(t, string(out), `"clients":[]`)
	assert.Contains(t, string(out), `"taxRate":23`)
}
