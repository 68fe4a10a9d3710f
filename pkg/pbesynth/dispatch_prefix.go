package pbesynth

import (
	"strings"
	"sync"

	iradix "github.com/hashicorp/go-immutable-radix"
)

// PrefixIndex is the row-wise trie dispatcher of spec §4.2, used by
// backward concatenation deduction to find partial completions: given a
// target string, which already-enumerated values are row-wise prefixes of
// it, and which are row-wise superfixes (extensions) of it.
//
// Grounded on original_source/src/forward/data/prefix.rs. Superfix lookup
// is backed by github.com/hashicorp/go-immutable-radix (one persistent
// radix tree per example row): its SeekPrefix iterator is exactly "every
// previously indexed key that starts with the query", i.e. every
// row-wise superfix, and insertion into an immutable radix tree gives us
// the same append-only semantics this dispatcher needs; lookups still
// hold the index mutex while they iterate.
type PrefixIndex struct {
	mu      sync.Mutex
	trees   []*iradix.Tree // one per example row
	entries []ExprValue    // only values indexed here are infixes of the expected output
	nrows   int
}

// NewPrefixIndex builds an empty PrefixIndex over nrows example rows.
func NewPrefixIndex(nrows int) *PrefixIndex {
	trees := make([]*iradix.Tree, nrows)
	for i := range trees {
		trees[i] = iradix.New()
	}
	return &PrefixIndex{trees: trees, nrows: nrows}
}

// Update indexes v (a Str-typed Value) if it is, on every row, an infix
// (substring occurrence) of that row's expected output; expected is
// passed in by the caller (Data) since PrefixIndex itself doesn't retain
// the expected output separately from SubstrIndex.
func (p *PrefixIndex) Update(expr *Expr, v Value, expected []string) {
	for i, s := range v.Strs {
		if i < len(expected) && !strings.Contains(expected[i], s) {
			return
		}
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	idx := len(p.entries)
	p.entries = append(p.entries, ExprValue{Expr: expr, Value: v})
	for i, s := range v.Strs {
		if i >= len(p.trees) {
			continue
		}
		existing, found := p.trees[i].Get([]byte(s))
		var ids []int
		if found {
			ids = existing.([]int)
		}
		ids = append(ids, idx)
		tree, _, _ := p.trees[i].Insert([]byte(s), ids)
		p.trees[i] = tree
	}
}

// Superfixes returns every indexed value that is, on every row, an
// extension of query (query[i] is a prefix of the indexed value's row
// i). Uses the radix tree's SeekPrefix iterator on row 0 as the candidate
// source, then verifies the remaining rows directly.
func (p *PrefixIndex) Superfixes(query Value) []ExprValue {
	p.mu.Lock()
	defer p.mu.Unlock()

	if len(p.trees) == 0 || query.Len() == 0 {
		return nil
	}
	seen := map[int]bool{}
	it := p.trees[0].Root().Iterator()
	it.SeekPrefix([]byte(query.Strs[0]))
	var out []ExprValue
	for {
		_, raw, ok := it.Next()
		if !ok {
			break
		}
		for _, idx := range raw.([]int) {
			if seen[idx] {
				continue
			}
			seen[idx] = true
			cand := p.entries[idx]
			if rowWiseExtension(cand.Value, query) {
				out = append(out, cand)
			}
		}
	}
	return out
}

// Prefixes returns every indexed value that is, on every row, a prefix of
// query's row. The radix tree does not expose "every stored key that is a
// prefix of X" directly (only LongestPrefix), so this walks the retained
// entries list directly; acceptable since Prefixes is a backward-deduction
// lookup, not a per-offer update (spec §4.1's "cheap, no O(n) scan"
// requirement binds Update, not query-time lookups).
func (p *PrefixIndex) Prefixes(query Value) []ExprValue {
	p.mu.Lock()
	defer p.mu.Unlock()

	var out []ExprValue
	for _, cand := range p.entries {
		if rowWiseExtension(query, cand.Value) {
			out = append(out, cand)
		}
	}
	return out
}

// rowWiseExtension reports whether, for every row, short[i] is a prefix of
// long[i].
func rowWiseExtension(long, short Value) bool {
	if long.Len() != short.Len() {
		return false
	}
	for i := range short.Strs {
		if !strings.HasPrefix(long.Strs[i], short.Strs[i]) {
			return false
		}
	}
	return true
}
