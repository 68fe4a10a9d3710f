package pbesynth

import "context"

// Deducer is the backward half of spec §4: given a Problem (a target Value
// at a non-terminal), try to construct a witnessing Expr without waiting
// for forward enumeration to stumble on it directly, and report the
// result (if any) by calling cell.Set. A Deducer that cannot make progress
// simply returns without calling Set; the cell may still be fulfilled
// later by forward enumeration reaching the same value (Data.Offer ->
// AllEq.Set), which is why deducers never need to signal "no solution
// exists" explicitly.
//
// Each non-terminal gets exactly one Deducer, chosen by its Type at
// Executor construction time (deduce_simple.go's deducerFor).
type Deducer interface {
	Deduce(ctx context.Context, ex *Executor, p Problem, cell *ValueCell)
}

// Executor owns everything one synthesis search needs: the example
// context, the grammar, one Data store per non-terminal, a shared Arena,
// configuration, and the per-non-terminal Deducers. It is the Go rendering
// of original_source/src/forward/executor.rs's Executor, with the
// "problem memo table" folded into each Data's AllEq (a Problem and an
// all-eq entry are keyed identically: (nt, value)).
type Executor struct {
	Context *Context
	Grammar *Grammar
	Data    []*Data
	Arena   *Arena
	Config  ExecutorConfig
	Ops     map[string]*Operator

	Deducers []Deducer
}

// NewExecutor builds an Executor over cctx/g, allocating one Data store
// per non-terminal (the start non-terminal gets substr/prefix indexing
// keyed on the target output; every list-typed non-terminal gets len
// indexing) and wiring deducers via deducerFor.
func NewExecutor(cctx *Context, g *Grammar, cfg ExecutorConfig) (*Executor, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	ex := &Executor{
		Context: cctx,
		Grammar: g,
		Arena:   NewArena(),
		Config:  cfg,
		Ops:     StdOperators(),
	}
	nrows := cctx.NumExamples()
	ex.Data = make([]*Data, g.Len())
	ex.Deducers = make([]Deducer, g.Len())
	for i, nt := range g.NonTerminals {
		var expected []string
		if i == 0 && nt.Type == TypeStr && cctx.Target.Ty == TypeStr {
			expected = cctx.Target.Strs
		}
		ex.Data[i] = NewData(i, nt.Type, nrows, expected)
		ex.Deducers[i] = deducerFor(nt, g, i)
	}
	return ex, nil
}

// SpawnTask looks up (nt, v) against that non-terminal's AllEq table; if
// it is new, this call is the one responsible for running a deducer
// against it (spec invariant 4). Every caller, first or not, receives a
// Task handle for the eventual answer.
func (ex *Executor) SpawnTask(ctx context.Context, nt int, v Value) *Task {
	cell, first := ex.Data[nt].AllEq.AcquireIsFirst(v)
	if !first {
		return &Task{cell: cell}
	}
	go func() {
		p := RootProblem(nt, v)
		ex.Deducers[nt].Deduce(ctx, ex, p, cell)
	}()
	return &Task{cell: cell}
}

// BlockOn awaits t, unwinding early if ctx is cancelled (spec §5
// Cancellation).
func (ex *Executor) BlockOn(ctx context.Context, t *Task) (*Expr, error) {
	return t.Await(ctx)
}

// Stats summarises one completed or in-progress Run, for CLI/demo output.
type Stats struct {
	ExprCount  int
	SizeReached int
}

// Run drives the size-stratified outer loop of spec §4.1: at each size,
// enumerate every non-terminal's productions of that size, flush them to
// their Size buckets, then check whether the root problem (Nt 0, target
// output) has resolved. It returns as soon as the root task is Ready, or
// once ctx is cancelled, or once the configured SizeLimit is exceeded
// without a solution (spec §7 "Enumeration exhausted").
func (ex *Executor) Run(ctx context.Context) (*Expr, Stats, error) {
	return ex.RunAt(ctx, 0, ex.Context.Target)
}

// RunAt generalizes Run to an arbitrary root (nt, target) pair, used by
// deduce_liststr.go's map-bridge to re-run the same grammar against a
// flattened nested context whose natural start symbol isn't non-terminal
// 0.
func (ex *Executor) RunAt(ctx context.Context, nt int, target Value) (*Expr, Stats, error) {
	ctx, cancel := context.WithCancelCause(ctx)
	defer cancel(nil)

	root := ex.SpawnTask(ctx, nt, target)
	go func() {
		e, err := root.Await(ctx)
		if err == nil && e != nil {
			cancel(errSolved)
		}
	}()

	seeds := ex.collectSeeds()

	size := 1
	for {
		select {
		case <-ctx.Done():
			stats := ex.stats(size - 1)
			if isSolved(ctx) {
				e, _ := root.TryGet()
				return e, stats, nil
			}
			return nil, stats, context.Cause(ctx)
		default:
		}

		if ex.Config.SizeLimit > 0 && size > ex.Config.SizeLimit {
			return nil, ex.stats(size - 1), errSizeLimitReached
		}

		for i := range ex.Grammar.NonTerminals {
			ex.enumerateNT(i, size)
		}
		for _, sd := range seeds[size] {
			ex.Data[sd.NT].Offer(sd.Expr, sd.Value)
		}
		for i := range ex.Grammar.NonTerminals {
			ex.Data[i].FlushSize(size)
		}

		if e, ok := root.TryGet(); ok {
			cancel(errSolved)
			return e, ex.stats(size), nil
		}
		size++
	}
}

func (ex *Executor) stats(size int) Stats {
	return Stats{ExprCount: ex.Arena.Len(), SizeReached: size}
}
