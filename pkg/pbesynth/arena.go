package pbesynth

import "sync"

// Arena is an append-only record of every Expr built through its Const,
// Var and Op* methods during a search. Each recorded Expr stays reachable
// until the Arena (and therefore the owning Executor) is dropped,
// satisfying spec §3 invariant 3, and Len reports how many were built.
//
// The real engine this spec was distilled from uses a bump allocator
// (original_source/src/galloc.rs) because Rust has no tracing GC; the
// arena allocator is an explicit spec §1 non-goal precisely because Go's
// GC already gives "outlives the engine" for free, so Arena does no memory
// management of its own.
type Arena struct {
	mu    sync.Mutex
	exprs []*Expr
}

// NewArena constructs an empty Arena.
func NewArena() *Arena {
	return &Arena{}
}

// Const allocates and records a Const leaf.
func (a *Arena) Const(v Value) *Expr { return a.keep(NewConst(v)) }

// Var allocates and records a Var leaf.
func (a *Arena) Var(i int) *Expr { return a.keep(NewVar(i)) }

// Op1 allocates and records a unary application.
func (a *Arena) Op1(op *Operator, x *Expr) *Expr { return a.keep(NewOp1(op, x)) }

// Op2 allocates and records a binary application.
func (a *Arena) Op2(op *Operator, x, y *Expr) *Expr { return a.keep(NewOp2(op, x, y)) }

// Op3 allocates and records a ternary application.
func (a *Arena) Op3(op *Operator, x, y, z *Expr) *Expr { return a.keep(NewOp3(op, x, y, z)) }

func (a *Arena) keep(e *Expr) *Expr {
	a.mu.Lock()
	a.exprs = append(a.exprs, e)
	a.mu.Unlock()
	return e
}

// Len returns the number of expressions ever allocated through this Arena,
// exposed for tests and for Executor.Stats.
func (a *Arena) Len() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.exprs)
}

// scratchPool holds reusable []ExprValue backing arrays, handed out by
// getScratch and taken back by putScratch. Data and the enumerator do not
// draw from it: Data keeps its own scratch slice per non-terminal.
var scratchPool = sync.Pool{
	New: func() interface{} {
		s := make([]ExprValue, 0, 64)
		return &s
	},
}

func getScratch() *[]ExprValue {
	return scratchPool.Get().(*[]ExprValue)
}

func putScratch(s *[]ExprValue) {
	*s = (*s)[:0]
	scratchPool.Put(s)
}
