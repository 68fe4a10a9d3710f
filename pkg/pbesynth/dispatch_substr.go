package pbesynth

import (
	"strings"
	"sync"
)

// occurrence is the [start, end) position of a string's first occurrence
// within one row of the expected output. Found is false when the string
// does not occur in that row at all.
type occurrence struct {
	start, end int
	found      bool
}

func occurrencesAgainst(expected []string, v Value) []occurrence {
	occs := make([]occurrence, len(expected))
	for i := range expected {
		if i >= v.Len() {
			continue
		}
		needle := v.Strs[i]
		if needle == "" {
			occs[i] = occurrence{start: 0, end: 0, found: true}
			continue
		}
		idx := strings.Index(expected[i], needle)
		if idx < 0 {
			occs[i] = occurrence{found: false}
			continue
		}
		occs[i] = occurrence{start: idx, end: idx + len(needle), found: true}
	}
	return occs
}

// insideAll reports whether inner's occurrence lies within outer's
// occurrence on every row where both are found, and both agree on which
// rows are found (spec §4.2: "whose occurrence interval lies inside v's
// occurrence interval on each row").
func insideAll(inner, outer []occurrence) bool {
	if len(inner) != len(outer) {
		return false
	}
	any := false
	for i := range inner {
		if inner[i].found != outer[i].found {
			return false
		}
		if !inner[i].found {
			continue
		}
		any = true
		if inner[i].start < outer[i].start || inner[i].end > outer[i].end {
			return false
		}
	}
	return any
}

// SubstrIndex is the occurrence-interval dispatcher of spec §4.2, built
// only for string-typed non-terminals whose target output is known. It
// carries the Expected output it was built against (spec §9 design note:
// "implementations must not confuse indices across sub-problems").
//
// Grounded on original_source/src/forward/data/substr.rs.
type SubstrIndex struct {
	mu       sync.Mutex
	expected []string
	entries  []substrEntry
	waiters  []substrWaiter
}

type substrEntry struct {
	expr  *Expr
	value Value
	occ   []occurrence
}

type substrWaiter struct {
	query Value
	occ   []occurrence
	seen  map[uint64]struct{}
	fn    func(candidate Value, expr *Expr)
}

// NewSubstrIndex builds a SubstrIndex over the given expected output rows.
func NewSubstrIndex(expected []string) *SubstrIndex {
	return &SubstrIndex{expected: expected}
}

// Update records a newly adopted string value and wakes any waiter whose
// query interval covers this value's occurrence (spec §4.2: "any channels
// waiting on ranges that cover this interval are woken").
func (s *SubstrIndex) Update(expr *Expr, v Value) {
	occ := occurrencesAgainst(s.expected, v)

	s.mu.Lock()
	s.entries = append(s.entries, substrEntry{expr: expr, value: v, occ: occ})
	var toNotify []struct {
		w *substrWaiter
	}
	for i := range s.waiters {
		w := &s.waiters[i]
		if !insideAll(occ, w.occ) {
			continue
		}
		key := v.Key()
		if _, ok := w.seen[key]; ok {
			continue
		}
		w.seen[key] = struct{}{}
		toNotify = append(toNotify, struct{ w *substrWaiter }{w})
	}
	s.mu.Unlock()

	for _, t := range toNotify {
		t.w.fn(v, expr)
	}
}

// TryAt registers fn to be called, now and in the future, with every
// previously- or newly-adopted string value whose occurrence interval
// lies inside query's occurrence interval in the expected output.
// Matches spec §4.2's try_at(v, f): "finds all previously enumerated
// string values ... invoking f on each ... a fresh channel is registered
// for future matches."
func (s *SubstrIndex) TryAt(query Value, fn func(candidate Value, expr *Expr)) {
	qocc := occurrencesAgainst(s.expected, query)

	s.mu.Lock()
	w := substrWaiter{query: query, occ: qocc, seen: map[uint64]struct{}{}, fn: fn}
	var initial []substrEntry
	for _, e := range s.entries {
		if insideAll(e.occ, qocc) {
			initial = append(initial, e)
			w.seen[e.value.Key()] = struct{}{}
		}
	}
	s.waiters = append(s.waiters, w)
	s.mu.Unlock()

	for _, e := range initial {
		fn(e.value, e.expr)
	}
}
