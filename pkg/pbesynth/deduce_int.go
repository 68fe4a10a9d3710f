package pbesynth

import "context"

// IntDeducer implements spec §4.3's length-bridge: given a target Int
// vector, check whether some already- (or eventually-) enumerated
// list-typed value has exactly that vector as its per-row length, and if
// so witness the target as list.len(that value) rather than waiting for
// forward enumeration to build the same integers arithmetically.
//
// Grounded on original_source/src/backward/int.rs's IntDeducer, which
// bridges Int problems to the len dispatcher the same way StrDeducer
// bridges Str problems to the substr/prefix dispatchers.
type IntDeducer struct{}

func (d *IntDeducer) Deduce(ctx context.Context, ex *Executor, p Problem, cell *ValueCell) {
	lens := make([]int, p.Value.Len())
	for i, x := range p.Value.Ints {
		if x < 0 {
			// a negative target length can never be a list length; this
			// problem has no length-bridge witness, leave the cell for
			// forward enumeration (e.g. int.-).
			return
		}
		lens[i] = int(x)
	}

	listOp, ok := ex.findListLenChild(p.Nt)
	if !ok {
		return
	}

	ch := ex.Data[listOp.childNT].Len.Channel(lens)
	for {
		if vs := ch.Values(); len(vs) > 0 {
			e := ex.Arena.Op1(listOp.op, vs[0].Expr)
			cell.Set(e)
			return
		}
		if err := ch.WaitForNext(ctx); err != nil {
			return
		}
	}
}

type lenBridgeOp struct {
	op      *Operator
	childNT int
}

// findListLenChild scans nt's production rules for a list.len application,
// returning the operator and the child non-terminal index it is applied
// to.
func (ex *Executor) findListLenChild(nt int) (lenBridgeOp, bool) {
	n := ex.Grammar.NonTerminals[nt]
	for _, r := range n.Rules {
		if r.Kind == RuleOp && r.Op.Name == "list.len" {
			return lenBridgeOp{op: r.Op, childNT: r.Children[0]}, true
		}
	}
	return lenBridgeOp{}, false
}
