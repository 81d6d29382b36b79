// Package query holds the in-memory list machinery shared by every
// domain: AND-combined filtering, single-key stable sorting with a
// priority rank table, and fixed-size pagination with page clamping.
package query

import (
	"sort"
	"strings"
)

// PageSize is the fixed page size for every list endpoint.
const PageSize = 10

// Filter is one predicate; an item survives only if every filter
// passes. Nil filters are skipped, so "no constraint" is representable.
type Filter[T any] func(T) bool

// Apply returns the items passing every non-nil filter.
func Apply[T any](items []T, filters ...Filter[T]) []T {
	out := make([]T, 0, len(items))
	for _, item := range items {
		ok := true
		for _, f := range filters {
			if f == nil {
				continue
			}
			if !f(item) {
				ok = false
				break
			}
		}
		if ok {
			out = append(out, item)
		}
	}
	return out
}

// InSet builds a membership filter over a multi-select list.
// An empty set means no constraint.
func InSet[T any](values []string, key func(T) string) Filter[T] {
	if len(values) == 0 {
		return nil
	}
	set := make(map[string]bool, len(values))
	for _, v := range values {
		set[strings.ToLower(strings.TrimSpace(v))] = true
	}
	return func(item T) bool {
		return set[strings.ToLower(key(item))]
	}
}

// Equals builds a single-value equality filter; empty value means no
// constraint.
func Equals[T any](value string, key func(T) string) Filter[T] {
	if value == "" {
		return nil
	}
	value = strings.ToLower(value)
	return func(item T) bool {
		return strings.ToLower(key(item)) == value
	}
}

// Search builds a case-insensitive substring filter over several
// fields; empty term means no constraint.
func Search[T any](term string, fields func(T) []string) Filter[T] {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return nil
	}
	return func(item T) bool {
		for _, f := range fields(item) {
			if strings.Contains(strings.ToLower(f), term) {
				return true
			}
		}
		return false
	}
}

// priorityRank orders enum-like priority fields. Sorting these
// alphabetically is a known bug class ("high" < "low" as strings), so
// every priority sort goes through the rank table.
var priorityRank = map[string]int{
	"low":      1,
	"medium":   2,
	"high":     3,
	"critical": 4,
}

// PriorityRank returns the rank of a priority value, 0 for unknown.
func PriorityRank(p string) int {
	return priorityRank[strings.ToLower(strings.TrimSpace(p))]
}

// SortStable sorts items by a string key, case-insensitive, keeping
// input order for equal keys.
func SortStable[T any](items []T, key func(T) string, desc bool) {
	sort.SliceStable(items, func(i, j int) bool {
		a := strings.ToLower(key(items[i]))
		b := strings.ToLower(key(items[j]))
		if desc {
			return a > b
		}
		return a < b
	})
}

// SortByRank sorts items by an integer rank (e.g. PriorityRank),
// stable over equal ranks.
func SortByRank[T any](items []T, rank func(T) int, desc bool) {
	sort.SliceStable(items, func(i, j int) bool {
		if desc {
			return rank(items[i]) > rank(items[j])
		}
		return rank(items[i]) < rank(items[j])
	})
}

// Paginate slices one fixed-size page out of items. A page beyond the
// end clamps down to the last page; page numbers are 1-based. Returns
// the page slice, the effective page and the total page count.
func Paginate[T any](items []T, page int) ([]T, int, int) {
	totalPages := (len(items) + PageSize - 1) / PageSize
	if totalPages == 0 {
		totalPages = 1
	}
	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}
	start := (page - 1) * PageSize
	end := start + PageSize
	if start > len(items) {
		start = len(items)
	}
	if end > len(items) {
		end = len(items)
	}
	return items[start:end], page, totalPages
}
