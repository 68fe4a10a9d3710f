// Package pbesynth implements a hybrid forward/backward program synthesizer
// for programming-by-example problems over a string/number/date grammar.
//
// Given a Grammar of operators, a Context of input->output examples, and a
// target output Value, Executor searches for the cheapest Expr in the
// grammar whose evaluation on the example inputs equals the target.
//
// The search interleaves two passes that share the same per-non-terminal
// indices (Data):
//
//   - a bottom-up enumerator (enumerator.go) that stratifies candidate
//     expressions by cost and offers every newly observed (Expr, Value)
//     pair to the owning non-terminal's Data;
//   - demand-driven deducers (deduce_*.go) that, given a target Value at a
//     non-terminal, either wait for the enumerator to produce a matching
//     value or decompose the target structurally and recurse.
//
// Deducers run as goroutines synchronized through ValueCell and the term
// dispatchers in dispatch_*.go; the enumerator itself remains a single,
// un-parallelized loop driven by Executor.Run. See DESIGN.md for the
// grounding of each file and the rationale for that concurrency choice.
package pbesynth
