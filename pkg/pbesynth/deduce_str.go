package pbesynth

import (
	"context"
	"strings"
)

// StrDeducer implements spec §4.3's string decomposition strategies for
// string-typed non-terminals: split1 (try every already-enumerated
// row-wise prefix of the target as the left half, and deduce the
// remaining suffix as the right half, when the grammar has a str.++
// production), ite_concat (pick apart a target into a per-row "starts
// with delimiter d" predicate plus tail, when the grammar also has an ite
// production), join (try every candidate separator from
// candidateSeparators,
// split the target into a list along it, and deduce that list, when the
// grammar has a list.join production), and field extraction (search
// input columns and separators for a str.split(...)[k] that reproduces
// the target directly, when the grammar has a list.at(str.split(...), k)
// shape).
//
// Grounded on original_source/src/backward/str.rs's StrDeducer:
// split_once, ite_concat_split, and value_split.
type StrDeducer struct{}

func (d *StrDeducer) Deduce(ctx context.Context, ex *Executor, p Problem, cell *ValueCell) {
	target := p.Value
	if target.Ty != TypeStr {
		return
	}

	n := ex.Grammar.NonTerminals[p.Nt]
	concatRule, hasConcat := n.GetOp2("str.++")

	if hasConcat {
		d.trySplit1(ctx, ex, concatRule, target, cell)
		if _, ok := cell.TryGet(); ok {
			return
		}
	}
	if _, hasIte := n.GetOp3("ite"); hasConcat && hasIte {
		d.tryIteConcat(ctx, ex, p.Nt, concatRule, target, cell)
		if _, ok := cell.TryGet(); ok {
			return
		}
	}
	d.tryJoin(ctx, ex, p.Nt, target, cell)
	if _, ok := cell.TryGet(); ok {
		return
	}
	d.tryFieldExtract(ex, p.Nt, target, cell)
	if _, ok := cell.TryGet(); ok {
		return
	}
	d.tryFormat(ex, target, cell)
}

// defaultIteConcatThreshold is the minimum number of rows that must start
// with a candidate delimiter before trying it, matching spec §4.3's
// "ite_concat_threshold" grammar-shape knob (NTConfig key
// "ite_concat_threshold" overrides it per non-terminal).
const defaultIteConcatThreshold = 1

// tryFormat checks every registered FormattingOp (spec §4.6) against the
// non-terminals of the Type it renders from: if some already-enumerated
// Int or Float value, run through that operator's formatter, renders
// exactly the target on every row, the formatting application witnesses
// the target directly.
func (d *StrDeducer) tryFormat(ex *Executor, target Value, cell *ValueCell) {
	for srcTy, ops := range formattingOps {
		srcNT, ok := firstNTOfType(ex.Grammar, srcTy)
		if !ok {
			continue
		}
		candidates := ex.Data[srcNT].Size.All()
		for _, cand := range candidates {
			for _, op := range ops {
				v, ok := TryEval(op, []Value{cand.Value})
				if !ok || !v.Equal(target) {
					continue
				}
				e := ex.Arena.Op1(op, cand.Expr)
				if cell.Set(e) {
					return
				}
			}
		}
	}
}

// trySplit1 races every row-wise prefix already indexed in this
// non-terminal's PrefixIndex (spec §4.2: values that are, on every row, a
// prefix of the target) as a candidate left operand, deducing the
// matching right operand (the row-wise remainder) concurrently for each.
// The first split whose right half resolves wins.
func (d *StrDeducer) trySplit1(ctx context.Context, ex *Executor, r ProdRule, target Value, cell *ValueCell) {
	childA, childB := r.Children[0], r.Children[1]
	prefixIdx := ex.Data[childA].Prefix
	if prefixIdx == nil {
		return
	}
	candidates := prefixIdx.Prefixes(target)
	for _, cand := range candidates {
		cand := cand
		remainder, ok := rowWiseRemainder(target, cand.Value)
		if !ok {
			continue
		}
		go func() {
			task := ex.SpawnTask(ctx, childB, remainder)
			rhs, err := task.Await(ctx)
			if err != nil || rhs == nil {
				return
			}
			e := ex.Arena.Op2(r.Op, cand.Expr, rhs)
			cell.Set(e)
		}()
	}
}

// tryIteConcat implements spec §4.3 step 3's ite_concat decomposition:
// for each candidate delimiter d that at least ite_concat_threshold rows
// of target start with, split target into a per-row boolean "did this row
// start with d" and the per-row tail left after stripping d where it
// matched (or the row unchanged where it didn't, since ite then selects
// the empty branch). The boolean is deduced recursively at the ite rule's
// condition non-terminal and the tail at the concat rule's second child,
// both via the ordinary SpawnTask/cell machinery — no conditional-learning
// collaborator is involved, since the predicate here is a plain
// starts-with test reconstructible from target and d alone, not a
// discovered partition over disjoint example subsets.
//
// Grounded on original_source/src/backward/str.rs's ite_concat_split.
func (d *StrDeducer) tryIteConcat(ctx context.Context, ex *Executor, nt int, concatRule ProdRule, target Value, cell *ValueCell) {
	n := ex.Grammar.NonTerminals[nt]
	iteRule, ok := n.GetOp3("ite")
	if !ok {
		return
	}
	boolNT := iteRule.Children[0]
	tailNT := concatRule.Children[1]
	threshold := n.Config.GetInt("ite_concat_threshold", defaultIteConcatThreshold)

	for _, delim := range candidateSeparators(ex.Grammar, target) {
		delim := delim
		startCount := 0
		for _, s := range target.Strs {
			if strings.HasPrefix(s, delim) {
				startCount++
			}
		}
		if startCount < threshold {
			continue
		}

		cond := make([]bool, target.Len())
		tail := make([]string, target.Len())
		for i, s := range target.Strs {
			if strings.HasPrefix(s, delim) {
				cond[i] = true
				tail[i] = s[len(delim):]
			} else {
				cond[i] = false
				tail[i] = s
			}
		}
		condVal := BoolValue(cond)
		tailVal := StrValue(tail)

		go func() {
			condTask := ex.SpawnTask(ctx, boolNT, condVal)
			condExpr, err := condTask.Await(ctx)
			if err != nil || condExpr == nil {
				return
			}
			tailTask := ex.SpawnTask(ctx, tailNT, tailVal)
			tailExpr, err := tailTask.Await(ctx)
			if err != nil || tailExpr == nil {
				return
			}
			delimConst := ex.Arena.Const(BroadcastConst(TypeStr, target.Len(), delim))
			emptyConst := ex.Arena.Const(BroadcastConst(TypeStr, target.Len(), ""))
			iteExpr := ex.Arena.Op3(iteRule.Op, condExpr, delimConst, emptyConst)
			e := ex.Arena.Op2(concatRule.Op, iteExpr, tailExpr)
			cell.Set(e)
		}()
	}
}

// rowWiseRemainder strips prefix's row i off target's row i for every
// row, failing if any row isn't actually covered by prefix.
func rowWiseRemainder(target, prefix Value) (Value, bool) {
	if target.Ty != TypeStr || prefix.Ty != TypeStr || target.Len() != prefix.Len() {
		return Value{}, false
	}
	out := make([]string, target.Len())
	for i := range target.Strs {
		if !strings.HasPrefix(target.Strs[i], prefix.Strs[i]) {
			return Value{}, false
		}
		out[i] = target.Strs[i][len(prefix.Strs[i]):]
	}
	return StrValue(out), true
}

// tryJoin treats target as list.join(parts, sep) for some candidate
// separator sep (candidateSeparators): split every row of target along
// sep, and if every row contains sep, deduce the resulting list-of-parts
// value at this grammar's list.join child non-terminal. Every such
// separator is tried concurrently; the first list deduced wins, and no
// check is made for several separators fitting the same target.
// Matches original_source/src/backward/str.rs's value_split.
func (d *StrDeducer) tryJoin(ctx context.Context, ex *Executor, nt int, target Value, cell *ValueCell) {
	n := ex.Grammar.NonTerminals[nt]
	joinRule, ok := n.GetOp2("list.join")
	if !ok {
		return
	}
	listNT := joinRule.Children[0]

	seps := candidateSeparators(ex.Grammar, target)
	for _, sep := range seps {
		sep := sep
		parts, ok := splitConsistently(target, sep)
		if !ok {
			continue
		}
		go func() {
			listTask := ex.SpawnTask(ctx, listNT, parts)
			listExpr, err := listTask.Await(ctx)
			if err != nil || listExpr == nil {
				return
			}
			sepExpr := ex.Arena.Const(BroadcastConst(TypeStr, target.Len(), sep))
			e := ex.Arena.Op2(joinRule.Op, listExpr, sepExpr)
			cell.Set(e)
		}()
	}
}

// tryFieldExtract looks for a direct list.at(str.split(var, sep), k)
// witness: for every input column, every candidate separator, and every
// split index up to the widest row's field count, check whether that
// exact field reproduces target on every row. Unlike trySplit1 (which
// needs the left half to already be enumerable) this verifies the
// candidate expression against the target directly, so it can witness a
// field that is never itself adopted as a standalone value — e.g. the
// prefix before the first ":" in spec §8 S5, which str.++ alone can never
// enumerate since it only lengthens strings.
//
// Grounded on original_source/src/backward/str.rs's field-indexing search
// and the forward str.split/list.at operator pair of
// original_source/src/forward/operators.rs.
func (d *StrDeducer) tryFieldExtract(ex *Executor, nt int, target Value, cell *ValueCell) {
	n := ex.Grammar.NonTerminals[nt]
	atRule, ok := n.GetOp2("list.at")
	if !ok {
		return
	}
	listNT := ex.Grammar.NonTerminals[atRule.Children[0]]
	splitRule, ok := listNT.GetOp2("str.split")
	if !ok {
		return
	}

	for col, input := range ex.Context.Inputs {
		if input.Ty != TypeStr || input.Len() != target.Len() {
			continue
		}
		for _, sep := range candidateSeparators(ex.Grammar, target) {
			rows := make([][]string, input.Len())
			maxParts := 0
			for i, s := range input.Strs {
				parts := strings.Split(s, sep)
				rows[i] = parts
				if len(parts) > maxParts {
					maxParts = len(parts)
				}
			}
			for idx := 0; idx < maxParts; idx++ {
				matches := true
				for i, parts := range rows {
					if idx >= len(parts) || parts[idx] != target.Strs[i] {
						matches = false
						break
					}
				}
				if !matches {
					continue
				}
				varExpr := ex.Arena.Var(col)
				sepExpr := ex.Arena.Const(BroadcastConst(TypeStr, target.Len(), sep))
				splitExpr := ex.Arena.Op2(splitRule.Op, varExpr, sepExpr)
				idxExpr := ex.Arena.Const(BroadcastConst(TypeInt, target.Len(), int64(idx)))
				e := ex.Arena.Op2(atRule.Op, splitExpr, idxExpr)
				if cell.Set(e) {
					return
				}
			}
		}
	}
}

// candidateSeparators returns the separator strings worth trying: every
// string constant declared at the start non-terminal, plus a short list of common
// structural delimiters (spec §8's comma/date examples all split on one
// of these).
func candidateSeparators(g *Grammar, target Value) []string {
	seen := map[string]struct{}{",": {}, " ": {}, "-": {}, "/": {}, ":": {}}
	for c := range g.AllStringConstants() {
		seen[c] = struct{}{}
	}
	out := make([]string, 0, len(seen))
	for s := range seen {
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}

// splitConsistently splits every row of target on sep, failing if any row
// does not contain sep. It also re-checks that joining with sep
// reproduces the row; for a non-empty sep that always holds, so a row
// lacking sep is the only case rejected.
func splitConsistently(target Value, sep string) (Value, bool) {
	out := make([][]string, target.Len())
	for i, s := range target.Strs {
		if !strings.Contains(s, sep) {
			return Value{}, false
		}
		parts := strings.Split(s, sep)
		if strings.Join(parts, sep) != s {
			return Value{}, false
		}
		out[i] = parts
	}
	return ListStrValue(out), true
}
