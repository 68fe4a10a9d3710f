package pbesynth

import "strings"

var weekdayLongNames = []string{
	"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday",
}
var weekdayShortNames = []string{
	"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat",
}

// parseWeekdayOp recognises a weekday name and converts it to its 0-6
// ordinal (Sunday = 0) as Int, mirroring textobj_month.go's shape.
var parseWeekdayOp = &Operator{
	Name:  "parse.weekday",
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
			d, matched, ok := recognizeWeekday(x)
			if !ok || matched != x {
				return Value{}, false
			}
			out[i] = int64(d)
		}
		return IntValue(out), true
	},
}

// formatWeekdayOp renders a 0-6 Int value as a long-form weekday name.
var formatWeekdayOp = &Operator{
	Name:  "format.weekday",
	Cost:  1,
	Arity: Arity1,
	Enum:  false,
	Eval: func(args []Value) (Value, bool) {
		v := args[0]
		if v.Ty != TypeInt {
			return Value{}, false
		}
		for _, n := range v.Ints {
			if n < 0 || n > 6 {
				return Value{}, false
			}
		}
		out := make([]string, v.Len())
		for i, n := range v.Ints {
			out[i] = weekdayLongNames[n]
		}
		return StrValue(out), true
	},
}

func recognizeWeekday(s string) (int, string, bool) {
	lower := strings.ToLower(s)
	for i, name := range weekdayLongNames {
		if idx := strings.Index(lower, strings.ToLower(name)); idx >= 0 {
			return i, s[idx : idx+len(name)], true
		}
	}
	for i, name := range weekdayShortNames {
		if idx := strings.Index(lower, strings.ToLower(name)); idx >= 0 {
			return i, s[idx : idx+len(name)], true
		}
	}
	return 0, "", false
}

func init() {
	registerTextObjectSeeder(seedWeekday)
}

func seedWeekday(ex *Executor) []Seed {
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
			d, matched, ok := recognizeWeekday(s)
			if !ok || matched != s {
				all = false
				break
			}
			ns[i] = int64(d)
		}
		if !all {
			continue
		}
		e := ex.Arena.Op1(parseWeekdayOp, ex.Arena.Var(col))
		seeds = append(seeds, Seed{NT: nt, Expr: e, Value: IntValue(ns)})
	}
	return seeds
}
