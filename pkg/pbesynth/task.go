package pbesynth

import "context"

// Task is a handle to a deducer computation for one Problem. Per spec §4.4
// "spawn_task(nt, v): look up (nt, v) in the problem table; if absent,
// spawn a deducer task for it and store the handle. Returns a shareable
// handle." Many callers may hold the same *Task; exactly one goroutine
// runs its body (started by executor.go's SpawnTask), and ValueCell
// fan-out gives every waiter the same answer once it resolves.
type Task struct {
	cell *ValueCell
}

// Spawn starts fn on its own goroutine and returns a Task handle for its
// eventual result. fn is expected to itself race against/derive from
// exec's term dispatchers and call cell.Set exactly once when it resolves
// (deduce_*.go's deducers all follow this shape).
func Spawn(ctx context.Context, fn func(ctx context.Context, cell *ValueCell)) *Task {
	cell := NewValueCell()
	go fn(ctx, cell)
	return &Task{cell: cell}
}

// Await blocks until the task resolves or ctx is cancelled.
func (t *Task) Await(ctx context.Context) (*Expr, error) {
	return t.cell.Await(ctx)
}

// TryGet returns the task's result without blocking.
func (t *Task) TryGet() (*Expr, bool) {
	return t.cell.TryGet()
}

// raceInto is a tiny helper implementing spec §4.3's "race (A) against
// (B), return the first resolved" (the select_ret combinator of
// original_source/src/utils.rs). Each candidate is a goroutine that, on
// success, tries to Set the shared cell; only the first one to call Set
// wins, and ValueCell.Set's exactly-once semantics make the rest harmless
// no-ops whose goroutines simply exit. The deducers in deduce_*.go do not
// call it; they start their candidate goroutines directly.
func raceInto(ctx context.Context, cell *ValueCell, candidates ...func(ctx context.Context) (*Expr, bool)) {
	for _, c := range candidates {
		c := c
		go func() {
			e, ok := c(ctx)
			if ok && e != nil {
				cell.Set(e)
			}
		}()
	}
}
