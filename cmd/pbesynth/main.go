// Command pbesynth runs the synthesis engine against a handful of fixed
// example scenarios and prints the expression it found for each, the Go
// analogue of gokando's cmd/example demo walking through a fixed set of
// relational-programming scenarios one at a time.
package main

import (
	"context"
	"fmt"
	"time"

	"github.com/fatih/color"

	"github.com/gitrdm/pbesynth/pkg/pbesynth"
)

func main() {
	pbesynth.ConfigureLogging(2)

	color.Cyan("=== pbesynth scenarios ===")
	fmt.Println()

	scenarios := []struct {
		name string
		run  func() (*pbesynth.Expr, pbesynth.Stats, error)
	}{
		{"S1 phone-number punctuation swap", scenarioS1},
		{"S2 last-name extraction", scenarioS2},
		{"S5 first field before delimiter", scenarioS5},
	}

	for _, sc := range scenarios {
		fmt.Printf("%s\n", color.YellowString(sc.name))
		e, stats, err := sc.run()
		if err != nil {
			color.Red("  failed: %v (exprs tried: %d)", err, stats.ExprCount)
			fmt.Println()
			continue
		}
		color.Green("  found: %s", e.String())
		fmt.Printf("  size reached: %d, exprs tried: %d\n\n", stats.SizeReached, stats.ExprCount)
	}
}

func runWithTimeout(cctx *pbesynth.Context, g *pbesynth.Grammar) (*pbesynth.Expr, pbesynth.Stats, error) {
	ex, err := pbesynth.NewExecutor(cctx, g, pbesynth.DefaultExecutorConfig())
	if err != nil {
		return nil, pbesynth.Stats{}, err
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return ex.Run(ctx)
}

// scenarioS1 mirrors spec §8's S1: normalize "938-242-504" into
// "938.242.504" by replacing every "-" with ".".
func scenarioS1() (*pbesynth.Expr, pbesynth.Stats, error) {
	ops := pbesynth.StdOperators()
	str := &pbesynth.NonTerminal{Name: "S", Type: pbesynth.TypeStr}
	str.Rules = []pbesynth.ProdRule{
		pbesynth.VarRule(0),
		pbesynth.ConstRule(pbesynth.TypeStr, "-"),
		pbesynth.ConstRule(pbesynth.TypeStr, "."),
		pbesynth.Op3Rule(ops["str.replace"], 0, 0, 0),
	}
	g, err := pbesynth.NewGrammar([]*pbesynth.NonTerminal{str})
	if err != nil {
		return nil, pbesynth.Stats{}, err
	}
	cctx := &pbesynth.Context{
		Inputs: []pbesynth.Value{pbesynth.StrValue([]string{"938-242-504"})},
		Target: pbesynth.StrValue([]string{"938.242.504"}),
	}
	return runWithTimeout(cctx, g)
}

// scenarioS2 mirrors spec §8's S2: extract the surname from "John Smith".
func scenarioS2() (*pbesynth.Expr, pbesynth.Stats, error) {
	ops := pbesynth.StdOperators()
	ints := &pbesynth.NonTerminal{Name: "I", Type: pbesynth.TypeInt}
	str := &pbesynth.NonTerminal{Name: "S", Type: pbesynth.TypeStr}
	// g indexes str as non-terminal 0 and ints as non-terminal 1 (grammar
	// order below); child indices refer to that order.
	ints.Rules = []pbesynth.ProdRule{
		pbesynth.ConstRule(pbesynth.TypeInt, int64(0)),
		pbesynth.ConstRule(pbesynth.TypeInt, int64(1)),
		pbesynth.Op1Rule(ops["str.len"], 0),
		pbesynth.Op3Rule(ops["str.indexof"], 0, 0, 1),
		pbesynth.Op2Rule(ops["int.+"], 1, 1),
	}
	str.Rules = []pbesynth.ProdRule{
		pbesynth.VarRule(0),
		pbesynth.ConstRule(pbesynth.TypeStr, " "),
		pbesynth.Op3Rule(ops["str.substr"], 0, 1, 1),
	}
	g, err := pbesynth.NewGrammar([]*pbesynth.NonTerminal{str, ints})
	if err != nil {
		return nil, pbesynth.Stats{}, err
	}
	cctx := &pbesynth.Context{
		Inputs: []pbesynth.Value{pbesynth.StrValue([]string{"John Smith"})},
		Target: pbesynth.StrValue([]string{"Smith"}),
	}
	return runWithTimeout(cctx, g)
}

// scenarioS5 mirrors spec §8's S5: every row is "field1:field2[:...]"; the
// target is the text before the first ":". Concatenation alone cannot
// produce it, so the grammar carries list.at/str.split and
// StrDeducer.tryFieldExtract finds list.at(str.split(x0, ":"), 0).
func scenarioS5() (*pbesynth.Expr, pbesynth.Stats, error) {
	ops := pbesynth.StdOperators()
	str := &pbesynth.NonTerminal{Name: "S", Type: pbesynth.TypeStr}
	list := &pbesynth.NonTerminal{Name: "L", Type: pbesynth.TypeListStr}
	idx := &pbesynth.NonTerminal{Name: "I", Type: pbesynth.TypeInt}
	str.Rules = []pbesynth.ProdRule{
		pbesynth.VarRule(0),
		pbesynth.ConstRule(pbesynth.TypeStr, ":"),
		pbesynth.Op2Rule(ops["str.++"], 0, 0),
		pbesynth.Op2Rule(ops["list.at"], 1, 2),
	}
	list.Rules = []pbesynth.ProdRule{pbesynth.Op2Rule(ops["str.split"], 0, 0)}
	idx.Rules = []pbesynth.ProdRule{pbesynth.ConstRule(pbesynth.TypeInt, int64(0))}
	g, err := pbesynth.NewGrammar([]*pbesynth.NonTerminal{str, list, idx})
	if err != nil {
		return nil, pbesynth.Stats{}, err
	}
	cctx := &pbesynth.Context{
		Inputs: []pbesynth.Value{pbesynth.StrValue([]string{"abc:def", "ghi:jkl:mno"})},
		Target: pbesynth.StrValue([]string{"abc", "ghi"}),
	}
	return runWithTimeout(cctx, g)
}
