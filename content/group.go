// Package content holds grouping helpers and the load cache shared by the
// blog and photography stores.
package content

import (
	"sort"
	"time"
)

const DateLayout = "2006-01-02"

// DateGroup is a (year, month) bucket. Month is 1-12; items whose date could
// not be parsed land in the Year 0 / Month 0 bucket named "Unknown".
type DateGroup[T any] struct {
	Year      int    `json:"year"`
	Month     int    `json:"month"`
	MonthName string `json:"monthName"`
	Items     []T    `json:"items"`
}

type KeyGroup[T any] struct {
	Key   string `json:"key"`
	Items []T    `json:"items"`
}

// ParseDate accepts a bare YYYY-MM-DD date or a full RFC 3339 timestamp.
func ParseDate(s string) (time.Time, bool) {
	if t, err := time.Parse(DateLayout, s); err == nil {
		return t, true
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, true
	}
	return time.Time{}, false
}

// GroupByDate buckets items by year and month, newest bucket first. Item
// order inside a bucket follows the input.
func GroupByDate[T any](items []T, dateOf func(T) string) []DateGroup[T] {
	type ym struct{ y, m int }
	index := make(map[ym]int)
	var groups []DateGroup[T]

	for _, it := range items {
		key := ym{}
		name := "Unknown"
		if t, ok := ParseDate(dateOf(it)); ok {
			key = ym{t.Year(), int(t.Month())}
			name = t.Month().String()
		}
		i, ok := index[key]
		if !ok {
			i = len(groups)
			index[key] = i
			groups = append(groups, DateGroup[T]{Year: key.y, Month: key.m, MonthName: name})
		}
		groups[i].Items = append(groups[i].Items, it)
	}

	sort.SliceStable(groups, func(a, b int) bool {
		if groups[a].Year != groups[b].Year {
			return groups[a].Year > groups[b].Year
		}
		return groups[a].Month > groups[b].Month
	})
	return groups
}

// GroupByKey buckets items by keyOf, largest bucket first; equal sizes keep
// first-seen order.
func GroupByKey[T any](items []T, keyOf func(T) string) []KeyGroup[T] {
	index := make(map[string]int)
	var groups []KeyGroup[T]
	for _, it := range items {
		k := keyOf(it)
		i, ok := index[k]
		if !ok {
			i = len(groups)
			index[k] = i
			groups = append(groups, KeyGroup[T]{Key: k})
		}
		groups[i].Items = append(groups[i].Items, it)
	}
	sort.SliceStable(groups, func(a, b int) bool {
		return len(groups[a].Items) > len(groups[b].Items)
	})
	return groups
}

func Filter[T any](items []T, keep func(T) bool) []T {
	out := make([]T, 0, len(items))
	for _, it := range items {
		if keep(it) {
			out = append(out, it)
		}
	}
	return out
}
