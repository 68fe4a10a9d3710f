package pbesynth

import (
	"regexp"
	"strconv"
	"strings"
)

// parseIntOp recognises an integer substring (spec §4.6's "integer with
// formatting") and converts it to Int.
var parseIntOp = &Operator{
	Name:  "parse.int",
	Cost:  1,
	Arity: Arity1,
	Enum:  false,
	Eval: func(args []Value) (Value, bool) {
		s := args[0]
		if s.Ty != TypeStr {
			return Value{}, false
		}
		out := make([]int64, s.Len())
		for i, x := range s.Strs {
			n, matched, ok := recognizeInt(x)
			if !ok || matched != x {
				return Value{}, false
			}
			out[i] = n
		}
		return IntValue(out), true
	},
}

// formatIntOp renders an Int value back to a decimal string, optionally
// zero-padded to a learnt width (spec §4.6's format "union" procedure,
// simplified here to "the minimal width that reproduces every row
// losslessly").
var formatIntOp = &Operator{
	Name:  "format.int",
	Cost:  1,
	Arity: Arity1,
	Enum:  false,
	Eval: func(args []Value) (Value, bool) {
		v := args[0]
		if v.Ty != TypeInt {
			return Value{}, false
		}
		width, ok := unionIntWidth(v.Ints, nil)
		if !ok {
			return Value{}, false
		}
		out := make([]string, v.Len())
		for i, n := range v.Ints {
			out[i] = formatIntWidth(n, width)
		}
		return StrValue(out), true
	},
}

var intPattern = regexp.MustCompile(`-?\d+`)

// recognizeInt returns the first integer occurrence in s, its matched
// substring, and whether one was found.
func recognizeInt(s string) (int64, string, bool) {
	loc := intPattern.FindString(s)
	if loc == "" {
		return 0, "", false
	}
	n, err := strconv.ParseInt(loc, 10, 64)
	if err != nil {
		return 0, "", false
	}
	return n, loc, true
}

// unionIntWidth finds the zero-padded width that reconstructs every row's
// original matched text, given an optional set of observed raw widths
// (when known from parsing); when raw is nil, width 0 is returned, so every
// value renders at its own natural width with no leading zeros.
func unionIntWidth(ns []int64, raw []string) (int, bool) {
	if raw == nil {
		return 0, true
	}
	width := 0
	for i := range ns {
		if w := len(strings.TrimPrefix(raw[i], "-")); w > width {
			width = w
		}
	}
	for i, n := range ns {
		if formatIntWidth(n, width) != raw[i] {
			return 0, false
		}
	}
	return width, true
}

func absInt64(n int64) int64 {
	if n < 0 {
		return -n
	}
	return n
}

func formatIntWidth(n int64, width int) string {
	neg := n < 0
	digits := strconv.FormatInt(absInt64(n), 10)
	for len(digits) < width {
		digits = "0" + digits
	}
	if neg {
		return "-" + digits
	}
	return digits
}

func init() {
	registerTextObjectSeeder(seedInt)
}

// seedInt offers Op1(parse.int, Var(col)) for every Str-typed input
// column whose every row contains exactly one integer occurrence spanning
// the entire row, matching spec §4.6's parsing side.
func seedInt(ex *Executor) []Seed {
	nt, ok := firstNTOfType(ex.Grammar, TypeInt)
	if !ok {
		return nil
	}
	var seeds []Seed
	for col, v := range ex.Context.Inputs {
		if v.Ty != TypeStr {
			continue
		}
		ns := make([]int64, v.Len())
		all := true
		for i, s := range v.Strs {
			n, matched, ok := recognizeInt(s)
			if !ok || matched != s {
				all = false
				break
			}
			ns[i] = n
		}
		if !all {
			continue
		}
		e := ex.Arena.Op1(parseIntOp, ex.Arena.Var(col))
		seeds = append(seeds, Seed{NT: nt, Expr: e, Value: IntValue(ns)})
	}
	return seeds
}
