package pbesynth

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestExprCostLeaves(t *testing.T) {
	require.Equal(t, 1, NewConst(IntValue([]int64{1})).Cost())
	require.Equal(t, 1, NewVar(0).Cost())
}

func TestExprCostOps(t *testing.T) {
	ops := StdOperators()
	e := NewOp2(ops["str.++"], NewVar(0), NewConst(StrValue([]string{"x"})))
	require.Equal(t, 3, e.Cost()) // 1 (op) + 1 (var) + 1 (const)

	e3 := NewOp3(ops["str.replace"], NewVar(0), NewVar(0), NewVar(0))
	require.Equal(t, 4, e3.Cost())
}

func TestExprString(t *testing.T) {
	ops := StdOperators()
	e := NewOp2(ops["str.++"], NewVar(0), NewConst(StrValue([]string{"!"})))
	require.Equal(t, `str.++(x0, "!")`, e.String())
}

func TestExprEvalViaTryEval(t *testing.T) {
	ops := StdOperators()
	e := NewOp2(ops["str.++"], NewConst(StrValue([]string{"a", "b"})), NewConst(StrValue([]string{"1", "2"})))
	v, ok := TryEval(e.Op, []Value{e.A.ConstVal, e.B.ConstVal})
	require.True(t, ok)
	require.Equal(t, StrValue([]string{"a1", "b2"}), v)
}
