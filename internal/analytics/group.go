package analytics

import (
	"sort"

	"github.com/shopspring/decimal"
)

// GroupTotal is the summed amount of one group.
type GroupTotal struct {
	Key   string
	Total decimal.Decimal
}

// groupTotals sums amount per key, remembering the order keys first appear.
func groupTotals[T any](records []T, key func(T) string, amount func(T) decimal.Decimal) []GroupTotal {
	index := make(map[string]int)
	var groups []GroupTotal
	for _, r := range records {
		k := key(r)
		i, ok := index[k]
		if !ok {
			i = len(groups)
			index[k] = i
			groups = append(groups, GroupTotal{Key: k, Total: decimal.Zero})
		}
		groups[i].Total = groups[i].Total.Add(amount(r))
	}
	return groups
}

func nonZero(groups []GroupTotal) []GroupTotal {
	out := make([]GroupTotal, 0, len(groups))
	for _, g := range groups {
		if !g.Total.IsZero() {
			out = append(out, g)
		}
	}
	return out
}

// BreakdownBy groups records by key and sums amount per group. Groups whose
// total is exactly zero are left out. Groups keep the order in which their
// key first appears in records.
func BreakdownBy[T any](records []T, key func(T) string, amount func(T) decimal.Decimal) []GroupTotal {
	return nonZero(groupTotals(records, key, amount))
}

// TopN sums amount per key and returns at most n groups, largest total
// first. Equal totals keep first-seen order. Zero totals are dropped.
func TopN[T any](records []T, key func(T) string, amount func(T) decimal.Decimal, n int) []GroupTotal {
	if n <= 0 {
		return []GroupTotal{}
	}
	groups := nonZero(groupTotals(records, key, amount))
	sort.SliceStable(groups, func(i, j int) bool {
		return groups[i].Total.GreaterThan(groups[j].Total)
	})
	if len(groups) > n {
		groups = groups[:n]
	}
	return groups
}
