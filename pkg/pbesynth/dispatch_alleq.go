package pbesynth

import "sync"

// AllEq is the per-non-terminal observational-equivalence table of
// spec §3/§4.2: a mapping from Value to either a ready canonical Expr or a
// pending cell with awaiting tasks. Once a key is set it never changes
// (spec invariant 1).
//
// Grounded on original_source/src/forward/data/all_eq.rs and gokando's
// SLG tabling semantics in pkg/minikanren/pldb_slg.go/slg_engine.go: a call
// pattern is answered at most once, and every later caller for the same
// pattern reuses the recorded answer instead of recomputing it.
//
// Values are keyed first by their hashstructure hash (cheap to compute and
// to compare) and then, within any bucket sharing that hash, by the full
// slot-sequence Equal comparison spec §3 requires: two distinct Values
// that happen to collide on the 64-bit hash get distinct buckets entries,
// not a single merged one.
type AllEq struct {
	mu      sync.Mutex
	buckets map[uint64][]alleqEntry
}

type alleqEntry struct {
	value Value
	cell  *ValueCell
}

// NewAllEq returns an empty AllEq table.
func NewAllEq() *AllEq {
	return &AllEq{buckets: make(map[uint64][]alleqEntry)}
}

// lookupOrInsert returns the cell bucketed under v, inserting a fresh
// Absent cell keyed by v itself if no entry in the hash bucket actually
// Equals v. Must be called with a.mu held.
func (a *AllEq) lookupOrInsert(v Value) (*ValueCell, bool) {
	key := v.Key()
	bucket := a.buckets[key]
	for _, e := range bucket {
		if e.value.Equal(v) {
			return e.cell, false
		}
	}
	c := NewValueCell()
	a.buckets[key] = append(bucket, alleqEntry{value: v, cell: c})
	return c, true
}

// Acquire returns the cell for v, creating a Pending one if v is new.
// Mirrors all_eq.rs's acquire: Absent -> Pending(+self), Pending ->
// Pending(+self), Ready -> Ready (the returned cell is already set).
func (a *AllEq) Acquire(v Value) *ValueCell {
	a.mu.Lock()
	defer a.mu.Unlock()
	c, _ := a.lookupOrInsert(v)
	return c
}

// AcquireIsFirst is Acquire plus a flag telling the caller whether it is
// the task responsible for actually deducing v (true) or merely an
// onlooker that should await the existing cell (false). This is the Go
// rendering of all_eq.rs's acquire_is_first, and is what gives spec
// invariant 4 ("at-most-one deducer task per (nt, v)") its enforcement
// point.
func (a *AllEq) AcquireIsFirst(v Value) (*ValueCell, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.lookupOrInsert(v)
}

// Set performs the "offer" test of spec §4.1 step 2: if v is new, adopt e
// as the canonical witness and return it; if v already has a ready
// witness, discard e and return nil; if v has a pending cell, fulfil it
// with e and return e.
func (a *AllEq) Set(v Value, e *Expr) *Expr {
	a.mu.Lock()
	c, _ := a.lookupOrInsert(v)
	a.mu.Unlock()

	if c.Set(e) {
		return e
	}
	return nil
}

// SetRef unconditionally fulfils any pending listeners for v and records
// Ready if not already set, used for the new_ev staging-list "reference
// only" adoptions of spec §4.1 step 1 (they have already been paid for,
// so they bypass the offer test but still need to be announced).
func (a *AllEq) SetRef(v Value, e *Expr) {
	a.mu.Lock()
	c, _ := a.lookupOrInsert(v)
	a.mu.Unlock()
	c.Set(e)
}

// Get returns the ready expr for v; callers must know v is already Ready
// (spec §4.2 "get(v) requires Ready").
func (a *AllEq) Get(v Value) (*Expr, bool) {
	a.mu.Lock()
	key := v.Key()
	var c *ValueCell
	for _, e := range a.buckets[key] {
		if e.value.Equal(v) {
			c = e.cell
			break
		}
	}
	a.mu.Unlock()
	if c == nil {
		return nil, false
	}
	return c.TryGet()
}
