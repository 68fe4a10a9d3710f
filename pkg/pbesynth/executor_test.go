package pbesynth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func mustGrammar(t *testing.T, nts []*NonTerminal) *Grammar {
	t.Helper()
	g, err := NewGrammar(nts)
	require.NoError(t, err)
	return g
}

func runScenario(t *testing.T, g *Grammar, cctx *Context) (*Expr, Stats) {
	t.Helper()
	ex, err := NewExecutor(cctx, g, DefaultExecutorConfig())
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	e, stats, err := ex.Run(ctx)
	require.NoError(t, err)
	require.NotNil(t, e)
	return e, stats
}

// TestScenarioS1PunctuationSwap mirrors spec §8's S1.
func TestScenarioS1PunctuationSwap(t *testing.T) {
	ops := StdOperators()
	str := &NonTerminal{Name: "S", Type: TypeStr}
	str.Rules = []ProdRule{
		VarRule(0),
		ConstRule(TypeStr, "-"),
		ConstRule(TypeStr, "."),
		Op3Rule(ops["str.replace"], 0, 0, 0),
	}
	g := mustGrammar(t, []*NonTerminal{str})

	cctx := &Context{
		Inputs: []Value{StrValue([]string{"938-242-504"})},
		Target: StrValue([]string{"938.242.504"}),
	}
	e, _ := runScenario(t, g, cctx)

	v, ok := Eval(e, cctx)
	require.True(t, ok)
	require.Equal(t, cctx.Target, v)
}

// TestScenarioS5SplitOnDelimiter mirrors spec §8's S5: the field before
// the first ":" on each row. "abc"/"ghi" are never enumerable by
// concatenation alone (str.++ only lengthens strings), so this exercises
// StrDeducer.tryFieldExtract's list.at(str.split(...)) witness search
// rather than trySplit1.
func TestScenarioS5SplitOnDelimiter(t *testing.T) {
	ops := StdOperators()
	str := &NonTerminal{Name: "S", Type: TypeStr}
	list := &NonTerminal{Name: "L", Type: TypeListStr}
	idx := &NonTerminal{Name: "I", Type: TypeInt}
	str.Rules = []ProdRule{
		VarRule(0),
		ConstRule(TypeStr, ":"),
		Op2Rule(ops["str.++"], 0, 0),
		Op2Rule(ops["list.at"], 1, 2),
	}
	list.Rules = []ProdRule{
		Op2Rule(ops["str.split"], 0, 0),
	}
	idx.Rules = []ProdRule{
		ConstRule(TypeInt, int64(0)),
	}
	g := mustGrammar(t, []*NonTerminal{str, list, idx})

	cctx := &Context{
		Inputs: []Value{StrValue([]string{"abc:def", "ghi:jkl:mno"})},
		Target: StrValue([]string{"abc", "ghi"}),
	}
	e, _ := runScenario(t, g, cctx)

	v, ok := Eval(e, cctx)
	require.True(t, ok)
	require.Equal(t, cctx.Target, v)
}

// TestScenarioS4ListMap mirrors spec §8's S4: ListDeducer's map-bridge
// discovers a per-element transformation via a nested Executor.
func TestScenarioS4ListMap(t *testing.T) {
	ops := StdOperators()
	list := &NonTerminal{Name: "L", Type: TypeListStr}
	str := &NonTerminal{Name: "S", Type: TypeStr}
	list.Rules = []ProdRule{VarRule(0)}
	str.Rules = []ProdRule{
		VarRule(0),
		ConstRule(TypeStr, "!"),
		Op2Rule(ops["str.++"], 1, 1),
	}
	g := mustGrammar(t, []*NonTerminal{list, str})

	cctx := &Context{
		Inputs: []Value{ListStrValue([][]string{{"a", "bb"}, {"c"}})},
		Target: ListStrValue([][]string{{"a!", "bb!"}, {"c!"}}),
	}
	e, _ := runScenario(t, g, cctx)

	v, ok := Eval(e, cctx)
	require.True(t, ok)
	require.Equal(t, cctx.Target, v)
}

// TestExecutorSizeLimitReached verifies spec §7's "enumeration exhausted"
// outcome when no witness exists within the configured size_limit.
func TestExecutorSizeLimitReached(t *testing.T) {
	str := &NonTerminal{Name: "S", Type: TypeStr}
	str.Rules = []ProdRule{VarRule(0)}
	g := mustGrammar(t, []*NonTerminal{str})

	cctx := &Context{
		Inputs: []Value{StrValue([]string{"a"})},
		Target: StrValue([]string{"unreachable"}),
	}
	cfg := DefaultExecutorConfig()
	cfg.SizeLimit = 2

	ex, err := NewExecutor(cctx, g, cfg)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, _, err = ex.Run(ctx)
	require.ErrorIs(t, err, errSizeLimitReached)
}
