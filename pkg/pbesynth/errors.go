package pbesynth

import (
	"context"

	"github.com/pkg/errors"
	goerrors "gopkg.in/src-d/go-errors.v1"
)

// Error kinds for spec §7. Type mismatches and partial-operator failures
// during eval are never wrapped in one of these: they are reported inline
// as a (Value, bool) result and silently discarded by the enumerator
// (spec §7: "not an error"). Only the genuinely fatal or control-flow
// conditions get a typed Kind, following the same gopkg.in/src-d/go-errors.v1
// pattern go-mysql-server uses for its own SQL error kinds
// (errors.NewKind("...")).
var (
	// ErrGrammarMisuse is fatal: an operator name in a production rule is
	// not present in the operator table. Aborts construction.
	ErrGrammarMisuse = goerrors.NewKind("grammar misuse: %s")

	// ErrConfigMisuse is fatal: a configuration value is nonsensical (e.g.
	// a negative size_limit; a size_limit of 0 is accepted and means no
	// limit). Aborts construction.
	ErrConfigMisuse = goerrors.NewKind("configuration misuse: %s")
)

// errSolved is the sentinel cause used with context.CancelCause to unwind
// the enumeration loop once the top task is ready (spec §4.1 "Fails with a
// fatal solved signal ... which unwinds the enumeration loop", §5
// Cancellation). It is not a real failure: Executor.RunAt checks for it
// explicitly and reports success, not an error, to its caller.
var errSolved = errors.New("pbesynth: solved")

// errSizeLimitReached marks that enumeration exhausted the configured
// size_limit without the top task resolving (spec §7 "Enumeration
// exhausted").
var errSizeLimitReached = errors.New("pbesynth: size limit reached")

// isSolved reports whether ctx was cancelled because the top task
// resolved, as opposed to any other cancellation (e.g. a caller-supplied
// deadline).
func isSolved(ctx context.Context) bool {
	return errors.Is(context.Cause(ctx), errSolved)
}

// wrapErr is a thin alias over github.com/pkg/errors.Wrap, kept as a
// package-local name so callers outside this file don't need their own
// "errors" import alias.
func wrapErr(err error, msg string) error {
	return errors.Wrap(err, msg)
}
