package pbesynth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// TestIntDeducerLengthBridge witnesses an Int target as list.len(x)
// rather than waiting for arithmetic to reconstruct it, since the
// grammar below offers no integer constants or arithmetic at all.
func TestIntDeducerLengthBridge(t *testing.T) {
	ops := StdOperators()
	ints := &NonTerminal{Name: "I", Type: TypeInt}
	list := &NonTerminal{Name: "L", Type: TypeListStr}

	ints.Rules = []ProdRule{
		Op1Rule(ops["list.len"], 1),
	}
	list.Rules = []ProdRule{
		VarRule(0),
	}
	g := mustGrammar(t, []*NonTerminal{ints, list})

	cctx := &Context{
		Inputs: []Value{ListStrValue([][]string{{"a", "b"}, {"c"}})},
		Target: IntValue([]int64{2, 1}),
	}

	ex, err := NewExecutor(cctx, g, DefaultExecutorConfig())
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	e, _, err := ex.Run(ctx)
	require.NoError(t, err)
	require.NotNil(t, e)

	v, ok := Eval(e, cctx)
	require.True(t, ok)
	require.Equal(t, cctx.Target, v)
}

// TestIntDeducerRejectsNegativeTarget confirms the length-bridge declines
// rather than blocking forever when the target can't be a list length.
func TestIntDeducerRejectsNegativeTarget(t *testing.T) {
	d := &IntDeducer{}
	cell := NewValueCell()
	ex := &Executor{Grammar: mustGrammarNoErr(&NonTerminal{Name: "I", Type: TypeInt})}
	p := RootProblem(0, IntValue([]int64{-1}))

	d.Deduce(context.Background(), ex, p, cell)
	_, ok := cell.TryGet()
	require.False(t, ok)
}

func mustGrammarNoErr(nts ...*NonTerminal) *Grammar {
	g, err := NewGrammar(nts)
	if err != nil {
		panic(err)
	}
	return g
}
