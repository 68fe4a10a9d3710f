package pbesynth

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// TestEnumerateConstAndVarOnlyAtSizeOne confirms spec §4.1's Const/Var
// contract: both are emitted only at size 1, never offered again at
// larger sizes.
func TestEnumerateConstAndVarOnlyAtSizeOne(t *testing.T) {
	str := &NonTerminal{Name: "S", Type: TypeStr}
	str.Rules = []ProdRule{VarRule(0), ConstRule(TypeStr, "x")}
	g := mustGrammarNoErr(str)

	cctx := &Context{
		Inputs: []Value{StrValue([]string{"a", "b"})},
		Target: StrValue([]string{"a", "b"}),
	}
	ex, err := NewExecutor(cctx, g, DefaultExecutorConfig())
	require.NoError(t, err)

	ex.enumerateNT(0, 1)
	ex.Data[0].FlushSize(1)
	require.Len(t, ex.Data[0].Size.GetAll(1), 2)

	ex.enumerateNT(0, 2)
	ex.Data[0].FlushSize(2)
	require.Empty(t, ex.Data[0].Size.GetAll(2))
}

// TestEnumerateOp2PartitionsCostBudget confirms a binary rule at size k
// only ever combines children whose costs sum to k - opCost, each at
// least 1 (spec §4.1's "Binary op" contract).
func TestEnumerateOp2PartitionsCostBudget(t *testing.T) {
	ops := StdOperators()
	str := &NonTerminal{Name: "S", Type: TypeStr}
	str.Rules = []ProdRule{
		VarRule(0),
		ConstRule(TypeStr, "!"),
		Op2Rule(ops["str.++"], 0, 0),
	}
	g := mustGrammarNoErr(str)

	cctx := &Context{
		Inputs: []Value{StrValue([]string{"a"})},
		Target: StrValue([]string{"a!"}),
	}
	ex, err := NewExecutor(cctx, g, DefaultExecutorConfig())
	require.NoError(t, err)

	ex.enumerateNT(0, 1)
	ex.Data[0].FlushSize(1)

	// At size 2, cost budget for str.++ (cost 1) is 1, which can't split
	// into two sub-costs >= 1 each, so nothing new is offered yet.
	ex.enumerateNT(0, 2)
	ex.Data[0].FlushSize(2)
	require.Empty(t, ex.Data[0].Size.GetAll(2))

	// At size 3, budget 2 splits as 1+1: Var(0) ++ Const("!") and its
	// reverse both become reachable.
	ex.enumerateNT(0, 3)
	ex.Data[0].FlushSize(3)
	bucket := ex.Data[0].Size.GetAll(3)
	require.NotEmpty(t, bucket)

	found := false
	for _, ev := range bucket {
		if ev.Value.Ty == TypeStr && len(ev.Value.Strs) == 1 && ev.Value.Strs[0] == "a!" {
			found = true
		}
	}
	require.True(t, found, "expected \"a!\" to be reachable at size 3")
}

// TestEnumerateOp1SkipsWhenChildBudgetTooSmall confirms a unary rule with
// cost c only fires once a child bucket of size (k - c) exists.
func TestEnumerateOp1SkipsWhenChildBudgetTooSmall(t *testing.T) {
	ops := StdOperators()
	ints := &NonTerminal{Name: "I", Type: TypeInt}
	str := &NonTerminal{Name: "S", Type: TypeStr}
	str.Rules = []ProdRule{VarRule(0)}
	ints.Rules = []ProdRule{Op1Rule(ops["str.len"], 1)}
	g := mustGrammarNoErr(ints, str)

	cctx := &Context{
		Inputs: []Value{StrValue([]string{"ab"})},
		Target: IntValue([]int64{2}),
	}
	ex, err := NewExecutor(cctx, g, DefaultExecutorConfig())
	require.NoError(t, err)

	// At size 1, str.len's child (non-terminal 1, cost 1 budget) has no
	// published bucket yet, so nothing should be offered at nt 0.
	ex.enumerateNT(0, 1)
	ex.Data[0].FlushSize(1)
	require.Empty(t, ex.Data[0].Size.GetAll(1))

	ex.enumerateNT(1, 1)
	ex.Data[1].FlushSize(1)

	ex.enumerateNT(0, 2)
	ex.Data[0].FlushSize(2)
	bucket := ex.Data[0].Size.GetAll(2)
	require.Len(t, bucket, 1)
	require.Equal(t, IntValue([]int64{2}), bucket[0].Value)
}

// TestEnumerateOffersDeduplicateByObservationalEquivalence confirms that
// two rules producing the same Value at the same size only adopt the
// first into the size bucket (spec invariant 2).
func TestEnumerateOffersDeduplicateByObservationalEquivalence(t *testing.T) {
	str := &NonTerminal{Name: "S", Type: TypeStr}
	str.Rules = []ProdRule{
		ConstRule(TypeStr, "x"),
		ConstRule(TypeStr, "x"),
	}
	g := mustGrammarNoErr(str)

	cctx := &Context{
		Inputs: []Value{StrValue([]string{"a"})},
		Target: StrValue([]string{"x"}),
	}
	ex, err := NewExecutor(cctx, g, DefaultExecutorConfig())
	require.NoError(t, err)

	ex.enumerateNT(0, 1)
	ex.Data[0].FlushSize(1)
	require.Len(t, ex.Data[0].Size.GetAll(1), 1)
}
