package pbesynth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// TestStrDeducerJoinDecomposesOnComma exercises StrDeducer.tryJoin end to
// end: the target is reachable only by splitting each row on "," into a
// list.join(parts, ",") the grammar can express but forward enumeration
// alone could never reach (list.join's list non-terminal has no concat or
// other rule that could ever rebuild "a,b,c" directly).
func TestStrDeducerJoinDecomposesOnComma(t *testing.T) {
	ops := StdOperators()
	str := &NonTerminal{Name: "S", Type: TypeStr}
	list := &NonTerminal{Name: "L", Type: TypeListStr}
	str.Rules = []ProdRule{
		Op2Rule(ops["list.join"], 1, 0),
	}
	list.Rules = []ProdRule{
		VarRule(0),
	}
	g := mustGrammarNoErr(str, list)

	cctx := &Context{
		Inputs: []Value{ListStrValue([][]string{{"a", "b", "c"}, {"x", "y"}})},
		Target: StrValue([]string{"a,b,c", "x,y"}),
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

// TestStrDeducerIteConcatStripsOptionalPrefix mirrors spec §8's S6: rows
// that either are or aren't prefixed by "Dr. ". The target isn't reachable
// by trySplit1 (its own prefix is never a row-wise prefix on every row) or
// tryJoin, so this exercises StrDeducer.tryIteConcat's
// concat(ite(starts_with(d), d, ""), tail) decomposition, with the
// condition deduced recursively at a bool non-terminal via str.prefixof
// and the tail deduced directly off a second input column.
func TestStrDeducerIteConcatStripsOptionalPrefix(t *testing.T) {
	ops := StdOperators()
	str := &NonTerminal{Name: "S", Type: TypeStr}
	boolNT := &NonTerminal{Name: "B", Type: TypeBool}
	raw := &NonTerminal{Name: "Raw", Type: TypeStr}

	str.Rules = []ProdRule{
		VarRule(1),
		ConstRule(TypeStr, "Dr. "),
		ConstRule(TypeStr, ""),
		Op2Rule(ops["str.++"], 0, 0),
		Op3Rule(ops["ite"], 1, 0, 0),
	}
	boolNT.Rules = []ProdRule{
		Op2Rule(ops["str.prefixof"], 0, 2),
	}
	raw.Rules = []ProdRule{
		VarRule(0),
	}
	g := mustGrammarNoErr(str, boolNT, raw)

	cctx := &Context{
		Inputs: []Value{
			StrValue([]string{"Dr. Smith", "Jones"}),
			StrValue([]string{"Smith", "Jones"}),
		},
		Target: StrValue([]string{"Dr. Smith", "Jones"}),
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

// TestSplitConsistentlyRejectsMissingSeparator confirms a row lacking the
// candidate separator entirely is rejected rather than silently treated
// as a single-element split.
func TestSplitConsistentlyRejectsMissingSeparator(t *testing.T) {
	target := StrValue([]string{"a,b", "nodelim"})
	_, ok := splitConsistently(target, ",")
	require.False(t, ok)
}

// TestSplitConsistentlyAcceptsRoundTrippingSeparator confirms a separator
// present on every row, whose split/join round-trips exactly, is accepted.
func TestSplitConsistentlyAcceptsRoundTrippingSeparator(t *testing.T) {
	target := StrValue([]string{"a,b,c", "x,y"})
	parts, ok := splitConsistently(target, ",")
	require.True(t, ok)
	require.Equal(t, [][]string{{"a", "b", "c"}, {"x", "y"}}, parts.ListStrs)
}

// TestCandidateSeparatorsIncludesGrammarConstants confirms every string
// constant declared at the start non-terminal is offered as a join
// separator candidate alongside the built-in common delimiters.
func TestCandidateSeparatorsIncludesGrammarConstants(t *testing.T) {
	str := &NonTerminal{Name: "S", Type: TypeStr}
	str.Rules = []ProdRule{ConstRule(TypeStr, "::")}
	g := mustGrammarNoErr(str)

	seps := candidateSeparators(g, StrValue([]string{"a::b"}))
	require.Contains(t, seps, "::")
	require.Contains(t, seps, ",")
	require.NotContains(t, seps, "")
}

// TestRowWiseRemainderFailsWhenPrefixDoesNotCoverEveryRow confirms a
// candidate prefix that matches on some rows but not all is rejected
// outright rather than producing a partially-wrong remainder.
func TestRowWiseRemainderFailsWhenPrefixDoesNotCoverEveryRow(t *testing.T) {
	target := StrValue([]string{"abcdef", "xyz"})
	prefix := StrValue([]string{"abc", "qq"})
	_, ok := rowWiseRemainder(target, prefix)
	require.False(t, ok)
}

// TestRowWiseRemainderStripsPrefixOnEveryRow confirms the happy path.
func TestRowWiseRemainderStripsPrefixOnEveryRow(t *testing.T) {
	target := StrValue([]string{"abcdef", "abxyz"})
	prefix := StrValue([]string{"abc", "ab"})
	rem, ok := rowWiseRemainder(target, prefix)
	require.True(t, ok)
	require.Equal(t, []string{"def", "xyz"}, rem.Strs)
}

// TestStrDeducerIgnoresNonStringTarget confirms Deduce is a no-op (never
// calls cell.Set) when handed a Problem whose value isn't string-typed,
// since StrDeducer is only ever wired to string non-terminals.
func TestStrDeducerIgnoresNonStringTarget(t *testing.T) {
	d := &StrDeducer{}
	cell := NewValueCell()
	ex := &Executor{Grammar: mustGrammarNoErr(&NonTerminal{Name: "I", Type: TypeInt})}
	p := RootProblem(0, IntValue([]int64{1}))

	d.Deduce(context.Background(), ex, p, cell)
	_, ok := cell.TryGet()
	require.False(t, ok)
}
