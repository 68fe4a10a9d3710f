package pbesynth

import "context"

// deducerFor chooses the Deducer a non-terminal gets at Executor
// construction time, mirroring original_source/src/backward/mod.rs's
// per-Type deducer dispatch (DeduceCfg::get_deducer).
func deducerFor(nt *NonTerminal, g *Grammar, idx int) Deducer {
	switch nt.Type {
	case TypeStr:
		return &StrDeducer{}
	case TypeInt:
		return &IntDeducer{}
	case TypeListStr, TypeListInt:
		return &ListDeducer{}
	default:
		return &SimpleDeducer{}
	}
}

// SimpleDeducer makes no proactive attempt to construct a witness: it
// relies entirely on forward enumeration eventually offering a matching
// value into this non-terminal's AllEq table, which fulfils any pending
// cell directly (AllEq.Set). It is the correct (and only sound) choice
// for non-terminals with no known decomposition shape, e.g. Bool and
// Float, matching original_source/src/backward/simple.rs's no-op
// deducer.
type SimpleDeducer struct{}

// Deduce does nothing: the cell remains Pending until forward enumeration
// reaches the requested value.
func (d *SimpleDeducer) Deduce(ctx context.Context, ex *Executor, p Problem, cell *ValueCell) {}
