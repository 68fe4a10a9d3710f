package pbesynth

// enumerateNT generates every size-k expression at non-terminal nt from
// an Executor's already-published smaller sizes, offering each to its Data
// store. Matches spec §4.1's per-rule-kind enumeration contract; grounded
// on original_source/src/forward/executor.rs's Executor::enumerate.
func (ex *Executor) enumerateNT(nt, size int) {
	n := ex.Grammar.NonTerminals[nt]
	d := ex.Data[nt]

	for _, r := range n.Rules {
		switch r.Kind {
		case RuleConst:
			if size != 1 {
				continue
			}
			v := BroadcastConst(r.ConstTy, ex.Context.NumExamples(), r.ConstScal)
			e := ex.Arena.Const(v)
			d.Offer(e, v)

		case RuleVar:
			if size != 1 {
				continue
			}
			v := ex.Context.Column(r.VarIndex)
			e := ex.Arena.Var(r.VarIndex)
			d.Offer(e, v)

		case RuleOp:
			if !r.Op.Enum {
				continue
			}
			switch r.Op.Arity {
			case Arity1:
				ex.enumerateOp1(d, r, size)
			case Arity2:
				ex.enumerateOp2(d, r, size)
			case Arity3:
				ex.enumerateOp3(d, r, size)
			}
		}
	}
}

func (ex *Executor) enumerateOp1(d *Data, r ProdRule, size int) {
	childSize := size - r.Op.Cost
	if childSize < 1 {
		return
	}
	a := ex.Data[r.Children[0]].Size.GetAll(childSize)
	for _, av := range a {
		v, ok := TryEval(r.Op, []Value{av.Value})
		if !ok {
			continue
		}
		e := ex.Arena.Op1(r.Op, av.Expr)
		d.Offer(e, v)
	}
}

func (ex *Executor) enumerateOp2(d *Data, r ProdRule, size int) {
	budget := size - r.Op.Cost
	if budget < 2 {
		return
	}
	capA, capB := budget, budget
	if r.Op.ReplCap > 0 {
		// A binary operator with a ReplCap restricts its second operand's
		// sub-cost to that constant rather than the full remaining budget.
		// No binary operator in StdOperators sets one; str.replace is
		// ternary and is capped in enumerateOp3.
		capB = r.Op.ReplCap
	}
	for costA := 1; costA <= budget-1; costA++ {
		costB := budget - costA
		if costB < 1 || costA > capA || costB > capB {
			continue
		}
		as := ex.Data[r.Children[0]].Size.GetAll(costA)
		bs := ex.Data[r.Children[1]].Size.GetAll(costB)
		for _, av := range as {
			for _, bv := range bs {
				v, ok := TryEval(r.Op, []Value{av.Value, bv.Value})
				if !ok {
					continue
				}
				e := ex.Arena.Op2(r.Op, av.Expr, bv.Expr)
				d.Offer(e, v)
			}
		}
	}
}

func (ex *Executor) enumerateOp3(d *Data, r ProdRule, size int) {
	budget := size - r.Op.Cost
	if budget < 3 {
		return
	}
	bcCap := budget
	if r.Op.ReplCap > 0 {
		bcCap = r.Op.ReplCap
		if ex.Config.EnumReplaceCost > 0 {
			bcCap = ex.Config.EnumReplaceCost
		}
	}
	for costA := 1; costA <= budget-2; costA++ {
		rem := budget - costA
		for costB := 1; costB <= rem-1; costB++ {
			costC := rem - costB
			if costC < 1 || costB > bcCap || costC > bcCap {
				continue
			}
			as := ex.Data[r.Children[0]].Size.GetAll(costA)
			bs := ex.Data[r.Children[1]].Size.GetAll(costB)
			cs := ex.Data[r.Children[2]].Size.GetAll(costC)
			for _, av := range as {
				for _, bv := range bs {
					for _, cv := range cs {
						v, ok := TryEval(r.Op, []Value{av.Value, bv.Value, cv.Value})
						if !ok {
							continue
						}
						e := ex.Arena.Op3(r.Op, av.Expr, bv.Expr, cv.Expr)
						d.Offer(e, v)
					}
				}
			}
		}
	}
}
