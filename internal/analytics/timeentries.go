package analytics

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/tally-dev/tally/internal/model"
)

var hourNanos = decimal.NewFromInt(int64(time.Hour))

// RunningEntry is an open time entry and how long it has been running.
type RunningEntry struct {
	Entry   model.TimeEntry
	Elapsed time.Duration
}

// TimeSummary totals tracked time.
type TimeSummary struct {
	Hours         decimal.Decimal // all closed entries
	BillableHours decimal.Decimal
	Revenue       decimal.Decimal // billable hours x rate
	Running       []RunningEntry
}

// Hours returns the closed length of e in hours; running entries are zero.
func Hours(e model.TimeEntry) decimal.Decimal {
	return decimal.NewFromInt(int64(e.Duration())).Div(hourNanos)
}

// HoursAndRevenue totals closed entries. Billable entries earn their own
// hourly rate, or defaultHourlyRate when they have none. Running entries add
// nothing to the totals and are reported with their elapsed time, which is
// always measured from the stored start so repeated calls never drift.
func HoursAndRevenue(entries []model.TimeEntry, defaultHourlyRate decimal.Decimal, now time.Time) TimeSummary {
	ts := TimeSummary{
		Hours:         decimal.Zero,
		BillableHours: decimal.Zero,
		Revenue:       decimal.Zero,
		Running:       []RunningEntry{},
	}
	for _, e := range entries {
		if e.IsRunning() {
			var elapsed time.Duration
			if !e.Start.IsZero() && now.After(e.Start.Time) {
				elapsed = now.Sub(e.Start.Time)
			}
			ts.Running = append(ts.Running, RunningEntry{Entry: e, Elapsed: elapsed})
			continue
		}
		h := Hours(e)
		ts.Hours = ts.Hours.Add(h)
		if !e.Billable {
			continue
		}
		rate := defaultHourlyRate
		if e.HourlyRate != nil {
			rate = *e.HourlyRate
		}
		ts.BillableHours = ts.BillableHours.Add(h)
		ts.Revenue = ts.Revenue.Add(h.Mul(rate))
	}
	return ts
}

// HoursToday sums closed entries that started on now's calendar day.
func HoursToday(entries []model.TimeEntry, now time.Time) decimal.Decimal {
	today := model.DateOf(now)
	total := decimal.Zero
	for _, e := range entries {
		if e.IsRunning() || e.Start.IsZero() {
			continue
		}
		if model.DateOf(e.Start.In(now.Location())).Equal(today) {
			total = total.Add(Hours(e))
		}
	}
	return total
}

// TimePerProject ranks projects by closed hours.
func TimePerProject(entries []model.TimeEntry, n int) []GroupTotal {
	return TopN(entries,
		func(e model.TimeEntry) string { return e.ProjectID },
		Hours,
		n)
}
