package pbesynth

import "strings"

var monthLongNames = []string{
	"January", "February", "March", "April", "May", "June",
	"July", "August", "September", "October", "November", "December",
}
var monthShortNames = []string{
	"Jan", "Feb", "Mar", "Apr", "May", "Jun",
	"Jul", "Aug", "Sep", "Oct", "Nov", "Dec",
}

// parseMonthOp recognises a month name (long or abbreviated, case
// insensitive) and converts it to its 1-12 ordinal as Int (spec §4.6).
var parseMonthOp = &Operator{
	Name:  "parse.month",
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
			m, matched, _, ok := recognizeMonth(x)
			if !ok || matched != x {
				return Value{}, false
			}
			out[i] = int64(m)
		}
		return IntValue(out), true
	},
}

// formatMonthOp renders a 1-12 Int value as its long-form month name
// ("January") on every row; the abbreviated form is never produced, and
// any value outside 1-12 makes the whole evaluation fail.
var formatMonthOp = &Operator{
	Name:  "format.month",
	Cost:  1,
	Arity: Arity1,
	Enum:  false,
	Eval: func(args []Value) (Value, bool) {
		v := args[0]
		if v.Ty != TypeInt {
			return Value{}, false
		}
		long := true
		for _, n := range v.Ints {
			if n < 1 || n > 12 {
				return Value{}, false
			}
		}
		out := make([]string, v.Len())
		for i, n := range v.Ints {
			if long {
				out[i] = monthLongNames[n-1]
			} else {
				out[i] = monthShortNames[n-1]
			}
		}
		return StrValue(out), true
	},
}

// recognizeMonth returns (ordinal, matched substring, long-form?, found).
func recognizeMonth(s string) (int, string, bool, bool) {
	lower := strings.ToLower(s)
	for i, name := range monthLongNames {
		if idx := strings.Index(lower, strings.ToLower(name)); idx >= 0 {
			return i + 1, s[idx : idx+len(name)], true, true
		}
	}
	for i, name := range monthShortNames {
		if idx := strings.Index(lower, strings.ToLower(name)); idx >= 0 {
			return i + 1, s[idx : idx+len(name)], false, true
		}
	}
	return 0, "", false, false
}

func init() {
	registerTextObjectSeeder(seedMonth)
}

func seedMonth(ex *Executor) []Seed {
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
			m, matched, _, ok := recognizeMonth(s)
			if !ok || matched != s {
				all = false
				break
			}
			ns[i] = int64(m)
		}
		if !all {
			continue
		}
		e := ex.Arena.Op1(parseMonthOp, ex.Arena.Var(col))
		seeds = append(seeds, Seed{NT: nt, Expr: e, Value: IntValue(ns)})
	}
	return seeds
}
