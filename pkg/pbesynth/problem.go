package pbesynth

// Problem is (nt, target-value, used-cost) per spec §3: a request to
// deduce an expression at non-terminal Nt whose evaluation equals Value.
// UsedCost increments across certain decomposition boundaries and is used
// to cut excessive recursion in decomposition deducers.
//
// Builder methods mirror original_source/src/backward/mod.rs's
// with_value/with_nt/inccost: value receivers returning a modified copy,
// the idiomatic Go rendering of the Rust `mut self -> Self` builder style.
type Problem struct {
	Nt       int
	Value    Value
	UsedCost int
}

// RootProblem builds a Problem with UsedCost 0, the entry point of a fresh
// top-level deduction.
func RootProblem(nt int, value Value) Problem {
	return Problem{Nt: nt, Value: value, UsedCost: 0}
}

// WithValue returns a copy of p targeting a different Value at the same
// non-terminal.
func (p Problem) WithValue(v Value) Problem {
	p.Value = v
	return p
}

// WithNt returns a copy of p targeting a different (non-terminal, value)
// pair.
func (p Problem) WithNt(nt int, v Value) Problem {
	p.Nt = nt
	p.Value = v
	return p
}

// IncCost returns a copy of p with UsedCost incremented by one.
func (p Problem) IncCost() Problem {
	p.UsedCost++
	return p
}
