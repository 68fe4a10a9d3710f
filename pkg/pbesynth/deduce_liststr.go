package pbesynth

import "context"

// ListDeducer implements spec §4.3's map-bridge: when a list-typed target
// can be explained as applying one per-element function to an input list
// of the same per-row shape, solve that (much smaller, flattened)
// per-element synthesis problem with a nested Executor over the same
// grammar, then wrap the result as a list.map application.
//
// Grounded on original_source/src/backward/list.rs's ListDeducer, which
// bridges a List problem to a freshly spawned nested engine the same way
// the conditional-learning collaborator of conditional.go spawns a
// restricted engine per branch.
type ListDeducer struct{}

func (d *ListDeducer) Deduce(ctx context.Context, ex *Executor, p Problem, cell *ValueCell) {
	target := p.Value
	if _, ok := elementType(target.Ty); !ok {
		return
	}

	for i, col := range ex.Context.Inputs {
		if _, ok := elementType(col.Ty); !ok {
			continue
		}
		if !sameShape(col, target) {
			continue
		}
		if e := d.tryMapFrom(ctx, ex, col, target, i); e != nil {
			cell.Set(e)
			return
		}
	}
}

// sameShape reports whether two list-typed Values have identical per-row
// lengths, the precondition for a position-wise map between them.
func sameShape(a, b Value) bool {
	al, bl := a.InnerLengths(), b.InnerLengths()
	if al == nil || bl == nil || len(al) != len(bl) {
		return false
	}
	for i := range al {
		if al[i] != bl[i] {
			return false
		}
	}
	return true
}

func elementType(listTy Type) (Type, bool) {
	switch listTy {
	case TypeListStr:
		return TypeStr, true
	case TypeListInt:
		return TypeInt, true
	default:
		return 0, false
	}
}

// tryMapFrom attempts to witness target as list.map(f, Var(srcVar)) for
// some per-element expression f, by flattening both the candidate source
// list and the target list row-major into one big per-element example
// vector and handing that to a nested Executor rooted at whichever
// non-terminal produces the element type. The nested Executor runs inline
// on this goroutine with the parent's ExecutorConfig and ctx; it has no
// size or time budget of its own.
func (d *ListDeducer) tryMapFrom(ctx context.Context, ex *Executor, src, target Value, srcVar int) *Expr {
	flatIn, ok := flattenList(src)
	if !ok {
		return nil
	}
	flatOut, ok := flattenList(target)
	if !ok {
		return nil
	}
	if flatIn.Len() != flatOut.Len() || flatIn.Len() == 0 {
		return nil
	}

	elemTy, _ := elementType(target.Ty)
	elemNT := -1
	for i, nt := range ex.Grammar.NonTerminals {
		if nt.Type == elemTy {
			elemNT = i
			break
		}
	}
	if elemNT < 0 {
		return nil
	}

	nestedCtx := &Context{Inputs: []Value{flatIn}, Target: flatOut}
	nested, err := NewExecutor(nestedCtx, ex.Grammar, ex.Config)
	if err != nil {
		return nil
	}

	elemExpr, _, err := nested.RunAt(ctx, elemNT, flatOut)
	if err != nil || elemExpr == nil {
		return nil
	}

	mapOp := &Operator{
		Name:  "list.map",
		Cost:  1,
		Arity: Arity1,
		Enum:  false,
		Eval: func(args []Value) (Value, bool) {
			return applyElementwise(elemExpr, args[0], target.Ty)
		},
	}
	return ex.Arena.Op1(mapOp, ex.Arena.Var(srcVar))
}

// flattenList concatenates a list-typed Value's rows, in order, into one
// scalar Value, giving the row-major per-element example vector the
// nested engine treats as its own independent examples set.
func flattenList(v Value) (Value, bool) {
	switch v.Ty {
	case TypeListStr:
		var out []string
		for _, row := range v.ListStrs {
			out = append(out, row...)
		}
		return StrValue(out), true
	case TypeListInt:
		var out []int64
		for _, row := range v.ListInts {
			out = append(out, row...)
		}
		return IntValue(out), true
	default:
		return Value{}, false
	}
}

// applyElementwise evaluates elemExpr once per flattened position of the
// input list argument, then regroups the results back into a list shaped
// like the argument, matching the row boundaries of the source list.
func applyElementwise(elemExpr *Expr, arg Value, outTy Type) (Value, bool) {
	lens := arg.InnerLengths()
	if lens == nil {
		return Value{}, false
	}
	flatIn, ok := flattenList(arg)
	if !ok {
		return Value{}, false
	}
	singleCtx := &Context{Inputs: []Value{flatIn}}
	flatOut, ok := Eval(elemExpr, singleCtx)
	if !ok {
		return Value{}, false
	}

	switch outTy {
	case TypeListStr:
		if flatOut.Ty != TypeStr {
			return Value{}, false
		}
		out := make([][]string, len(lens))
		pos := 0
		for i, n := range lens {
			out[i] = append([]string(nil), flatOut.Strs[pos:pos+n]...)
			pos += n
		}
		return ListStrValue(out), true
	case TypeListInt:
		if flatOut.Ty != TypeInt {
			return Value{}, false
		}
		out := make([][]int64, len(lens))
		pos := 0
		for i, n := range lens {
			out[i] = append([]int64(nil), flatOut.Ints[pos:pos+n]...)
			pos += n
		}
		return ListIntValue(out), true
	default:
		return Value{}, false
	}
}
