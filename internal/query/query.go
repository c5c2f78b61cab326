// Package query selects subsets of a transaction list. Filters never modify
// their input; Apply returns a new slice.
package query

import (
	"sort"
	"strings"
	"time"

	"github.com/moneylens/moneylens/internal/model"
)

// AllCategories is the category selection that matches everything.
const AllCategories = "All"

// Filter reports whether a transaction belongs in the result.
type Filter func(model.Transaction) bool

// Apply returns the transactions accepted by every filter, in input order.
// Nil filters are ignored.
func Apply(txns []model.Transaction, filters ...Filter) []model.Transaction {
	out := make([]model.Transaction, 0, len(txns))
next:
	for _, t := range txns {
		for _, f := range filters {
			if f != nil && !f(t) {
				continue next
			}
		}
		out = append(out, t)
	}
	return out
}

// DateRange keeps transactions dated from..to inclusive. A zero bound is open.
func DateRange(from, to time.Time) Filter {
	if from.IsZero() && to.IsZero() {
		return nil
	}
	return func(t model.Transaction) bool {
		if !from.IsZero() && t.Date.Before(from) {
			return false
		}
		if !to.IsZero() && t.Date.After(to) {
			return false
		}
		return true
	}
}

// InCategory keeps transactions of one category. "" and AllCategories match everything.
func InCategory(c string) Filter {
	if c == "" || c == AllCategories {
		return nil
	}
	return func(t model.Transaction) bool {
		return string(t.Category) == c
	}
}

// Search keeps transactions whose description, merchant or category contains
// q, ignoring case and surrounding whitespace. An empty query matches everything.
func Search(q string) Filter {
	q = strings.ToLower(strings.TrimSpace(q))
	if q == "" {
		return nil
	}
	return func(t model.Transaction) bool {
		return strings.Contains(strings.ToLower(t.Description), q) ||
			strings.Contains(strings.ToLower(t.Merchant), q) ||
			strings.Contains(strings.ToLower(string(t.Category)), q)
	}
}

// Span returns the earliest and latest transaction dates. ok is false for an empty list.
func Span(txns []model.Transaction) (first, last time.Time, ok bool) {
	for i, t := range txns {
		if i == 0 || t.Date.Before(first) {
			first = t.Date
		}
		if i == 0 || t.Date.After(last) {
			last = t.Date
		}
	}
	return first, last, len(txns) > 0
}

// Categories returns the distinct categories present, sorted by label.
func Categories(txns []model.Transaction) []model.Category {
	seen := make(map[model.Category]bool)
	var out []model.Category
	for _, t := range txns {
		if !seen[t.Category] {
			seen[t.Category] = true
			out = append(out, t.Category)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
