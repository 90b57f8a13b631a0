package domain

import (
	"sort"

	"github.com/shopspring/decimal"
)

// SelectionSet tracks which loans the user has marked for renegotiation.
// It is pure state: no side effects, no network access.
type SelectionSet map[string]bool

func NewSelectionSet() SelectionSet {
	return SelectionSet{}
}

// Toggle flips the flag for loanID, inserting it as selected when absent.
func (s SelectionSet) Toggle(loanID string) {
	s[loanID] = !s[loanID]
}

// SelectedIDs returns the ids currently marked, sorted for deterministic
// request bodies.
func (s SelectionSet) SelectedIDs() []string {
	ids := make([]string, 0, len(s))
	for id, selected := range s {
		if selected {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids
}

// IsEmpty reports whether no loan is currently selected.
func (s SelectionSet) IsEmpty() bool {
	for _, selected := range s {
		if selected {
			return false
		}
	}
	return true
}

// Prune drops every key that no longer corresponds to a loan in the
// registry snapshot. Called on every registry refresh.
func (s SelectionSet) Prune(loans []Loan) {
	known := make(map[string]struct{}, len(loans))
	for _, l := range loans {
		known[l.ID] = struct{}{}
	}
	for id := range s {
		if _, ok := known[id]; !ok {
			delete(s, id)
		}
	}
}

// Total derives the aggregate outstanding balance of the selected loans.
// Ids in the set that are absent from the registry are ignored. The sum
// is carried in decimal so repeated aggregation stays exact.
func (s SelectionSet) Total(loans []Loan) float64 {
	sum := decimal.Zero
	for _, l := range loans {
		if s[l.ID] {
			sum = sum.Add(decimal.NewFromFloat(l.OutstandingBalance))
		}
	}
	return sum.InexactFloat64()
}
