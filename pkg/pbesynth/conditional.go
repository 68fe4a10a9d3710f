package pbesynth

import (
	"context"

	"github.com/gitrdm/pbesynth/internal/parallel"
)

// TreeHoles is the input a conditional-learning collaborator would need to
// grow an if-then-else decision tree over a set of examples that a single
// expression couldn't unify: for each row, which branch value (by Expr it
// would need to witness) the tree has to route that row into.
//
// Grounded on spec §9's Design Notes naming the decision-tree pass an
// external collaborator interface; no tree-growing logic lives in this
// engine (spec.md non-goal), only the shape the collaborator consumes and
// produces.
type TreeHoles struct {
	// Subset restricts which example rows this hole covers; nil means
	// every row in the active Context.
	Subset []int

	// Branches is, per distinct branch value observed across Subset, the
	// rows routed to that branch.
	Branches map[string][]int
}

// ConditionalLearner is the interface boundary spec §6 describes: given a
// TreeHoles partition, find boolean-typed predicate expressions that
// separate the branches, each over only the restricted row subset a
// nested Executor was given. This engine never implements the learning
// itself; SolveTopWithLimit below is the stub a real collaborator would
// replace.
type ConditionalLearner interface {
	// SolveTopWithLimit asks for the single best-scoring condition
	// expression splitting holes, blocking until ctx is cancelled or one
	// is found. ok is false if no splitting predicate exists within
	// whatever size/time budget the collaborator enforces internally.
	SolveTopWithLimit(ctx context.Context, holes TreeHoles) (cond *Expr, ok bool)

	// Conditions streams every boolean-typed expression the collaborator
	// has enumerated so far, in case a caller wants to evaluate more than
	// just the top-scoring one (spec §9's open question about whether a
	// single best split or a ranked stream is more useful stays open;
	// both shapes are exposed so a future collaborator can pick).
	Conditions() <-chan *Expr
}

// noLearner is the zero-value ConditionalLearner: it always reports no
// solution and an already-closed Conditions channel. Wiring a real
// decision-tree learner behind this interface is out of scope (spec.md
// explicit non-goal), but the restricted-subset Executor machinery that
// RestrictedContext and SolveBranches below build on is not, since nested
// map-synthesis (deduce_liststr.go) needs the same "run a fresh Executor
// over a narrowed Context" capability regardless of who supplies the
// condition.
type noLearner struct{}

func (noLearner) SolveTopWithLimit(ctx context.Context, holes TreeHoles) (*Expr, bool) {
	return nil, false
}

func (noLearner) Conditions() <-chan *Expr {
	ch := make(chan *Expr)
	close(ch)
	return ch
}

// DefaultConditionalLearner is the stub collaborator wired in until an
// external decision-tree implementation is substituted.
var DefaultConditionalLearner ConditionalLearner = noLearner{}

// RestrictedContext narrows cctx down to the rows in subset, the shape
// both the conditional-learning loop (one Executor per branch hypothesis)
// and TreeHoles.Branches need when asking for a branch-local witness.
func RestrictedContext(cctx *Context, subset []int) *Context {
	inputs := make([]Value, len(cctx.Inputs))
	for i, v := range cctx.Inputs {
		inputs[i] = restrictValue(v, subset)
	}
	return &Context{Inputs: inputs, Target: restrictValue(cctx.Target, subset)}
}

func restrictValue(v Value, subset []int) Value {
	switch v.Ty {
	case TypeInt:
		out := make([]int64, len(subset))
		for i, row := range subset {
			out[i] = v.Ints[row]
		}
		return IntValue(out)
	case TypeFloat:
		out := make([]float64, len(subset))
		for i, row := range subset {
			out[i] = v.Floats[row]
		}
		return FloatValue(out)
	case TypeBool:
		out := make([]bool, len(subset))
		for i, row := range subset {
			out[i] = v.Bools[row]
		}
		return BoolValue(out)
	case TypeStr:
		out := make([]string, len(subset))
		for i, row := range subset {
			out[i] = v.Strs[row]
		}
		return StrValue(out)
	case TypeListInt:
		out := make([][]int64, len(subset))
		for i, row := range subset {
			out[i] = v.ListInts[row]
		}
		return ListIntValue(out)
	case TypeListStr:
		out := make([][]string, len(subset))
		for i, row := range subset {
			out[i] = v.ListStrs[row]
		}
		return ListStrValue(out)
	default:
		return Value{}
	}
}

// SolveBranches runs one Executor per TreeHoles branch concurrently via an
// internal/parallel.Supervisor, each restricted to that branch's Subset.
// This is the "restricted-example-subset engines for the conditional-
// learning loop" half of spec §9's outer-supervisor collaborator. The
// map-bridge in deduce_liststr.go does not go through a Supervisor: it
// runs one nested engine at a time, inline, over a flattened element
// context instead of a row subset.
func SolveBranches(ctx context.Context, g *Grammar, cfg ExecutorConfig, cctx *Context, holes TreeHoles, sup *parallel.Supervisor) map[string]*Expr {
	branches := make([]string, 0, len(holes.Branches))
	for b := range holes.Branches {
		branches = append(branches, b)
	}

	jobs := make([]parallel.Job, len(branches))
	for i, b := range branches {
		rows := holes.Branches[b]
		jobs[i] = func(ctx context.Context) (interface{}, error) {
			branchCtx := RestrictedContext(cctx, rows)
			ex, err := NewExecutor(branchCtx, g, cfg)
			if err != nil {
				return nil, err
			}
			e, _, err := ex.Run(ctx)
			if err != nil {
				return nil, err
			}
			return e, nil
		}
	}

	results := sup.RunAll(ctx, jobs)
	out := make(map[string]*Expr, len(branches))
	for i, b := range branches {
		if results[i].Err == nil {
			if e, ok := results[i].Value.(*Expr); ok {
				out[b] = e
			}
		}
	}
	return out
}
