package pbesynth

import "sync"

// Data is the per-non-terminal store of spec §3: all-eq, size, and
// (conditionally) substr/prefix/len, plus the new_ev staging list.
//
// Grounded on original_source/src/forward/data/mod.rs.
type Data struct {
	NT int

	AllEq  *AllEq
	Size   *SizeIndex
	Substr *SubstrIndex // non-nil only for the string-typed non-terminal whose target is known
	Prefix *PrefixIndex // non-nil only alongside Substr
	Len    *LenIndex    // non-nil only for list-typed non-terminals

	expected []string // cached from Substr's owner, used by Prefix.Update's infix check

	mu     sync.Mutex
	newEV  []ExprValue
	scratch []ExprValue
}

// NewData builds the Data store for non-terminal nt. expected is the
// target output rows when this non-terminal's type is Str and the target
// is known (the start non-terminal, or a decomposition sub-target);
// passing a nil expected disables substr/prefix indexing for this store,
// matching spec §9's "indices carry the expected output they were built
// against".
func NewData(nt int, ty Type, nrows int, expected []string) *Data {
	d := &Data{
		NT:       nt,
		AllEq:    NewAllEq(),
		Size:     NewSizeIndex(),
		expected: expected,
	}
	if ty == TypeStr && expected != nil {
		d.Substr = NewSubstrIndex(expected)
		d.Prefix = NewPrefixIndex(nrows)
	}
	if ty == TypeListInt || ty == TypeListStr {
		d.Len = NewLenIndex()
	}
	return d
}

// Offer implements the four ordered steps of spec §4.1:
//  1. drain new_ev into all-eq as reference-only adoptions;
//  2. attempt to adopt (e, v) into all-eq;
//  3. on adoption, update substr/prefix/len;
//  4. collect the adopted pair into the per-size scratch list.
//
// Returns the adopted Expr, or nil if (e, v) was discarded (a duplicate
// observational-equivalence class).
func (d *Data) Offer(e *Expr, v Value) *Expr {
	d.mu.Lock()
	staged := d.newEV
	d.newEV = nil
	d.mu.Unlock()
	for _, sv := range staged {
		d.AllEq.SetRef(sv.Value, sv.Expr)
	}

	adopted := d.AllEq.Set(v, e)
	if adopted == nil {
		return nil
	}

	if d.Substr != nil {
		d.Substr.Update(adopted, v)
	}
	if d.Prefix != nil {
		d.Prefix.Update(adopted, v, d.expected)
	}
	if d.Len != nil {
		d.Len.Update(adopted, v)
	}

	d.mu.Lock()
	d.scratch = append(d.scratch, ExprValue{Expr: adopted, Value: v})
	d.mu.Unlock()

	return adopted
}

// StageReference adds a (expr, value) pair to the new_ev staging list; it
// has already been paid for (enumerated and costed) but bypasses the
// offer test on its next drain, per spec §3's new_ev description.
func (d *Data) StageReference(e *Expr, v Value) {
	d.mu.Lock()
	d.newEV = append(d.newEV, ExprValue{Expr: e, Value: v})
	d.mu.Unlock()
}

// FlushSize appends everything collected into the scratch list this pass
// into the size bucket for `size`, and clears the scratch list. Called
// once at the end of a (size, nt) enumeration pass (spec §4.1).
func (d *Data) FlushSize(size int) {
	d.mu.Lock()
	batch := d.scratch
	d.scratch = nil
	d.mu.Unlock()
	d.Size.Add(size, batch)
}
