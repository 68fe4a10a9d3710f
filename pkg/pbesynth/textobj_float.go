package pbesynth

import (
	"regexp"
	"strconv"
)

// parseFloatOp recognises a decimal-point numeric substring and converts
// it to Float (spec §4.6).
var parseFloatOp = &Operator{
	Name:  "parse.float",
	Cost:  1,
	Arity: Arity1,
	Enum:  false,
	Eval: func(args []Value) (Value, bool) {
		s := args[0]
		if s.Ty != TypeStr {
			return Value{}, false
		}
		out := make([]float64, s.Len())
		for i, x := range s.Strs {
			f, matched, ok := recognizeFloat(x)
			if !ok || matched != x {
				return Value{}, false
			}
			out[i] = f
		}
		return FloatValue(out), true
	},
}

// formatFloatOp renders a Float value to a fixed-precision decimal
// string, the precision learnt as the minimal one that round-trips every
// row.
var formatFloatOp = &Operator{
	Name:  "format.float",
	Cost:  1,
	Arity: Arity1,
	Enum:  false,
	Eval: func(args []Value) (Value, bool) {
		v := args[0]
		if v.Ty != TypeFloat {
			return Value{}, false
		}
		prec, ok := unionFloatPrecision(v.Floats)
		if !ok {
			return Value{}, false
		}
		out := make([]string, v.Len())
		for i, f := range v.Floats {
			out[i] = strconv.FormatFloat(f, 'f', prec, 64)
		}
		return StrValue(out), true
	},
}

var floatPattern = regexp.MustCompile(`-?\d+\.\d+`)

func recognizeFloat(s string) (float64, string, bool) {
	m := floatPattern.FindString(s)
	if m == "" {
		return 0, "", false
	}
	f, err := strconv.ParseFloat(m, 64)
	if err != nil {
		return 0, "", false
	}
	return f, m, true
}

// unionFloatPrecision finds the smallest decimal precision (0..6) that
// renders every row without residual rounding error, the float analogue
// of textobj_int.go's unionIntWidth.
func unionFloatPrecision(fs []float64) (int, bool) {
	for prec := 0; prec <= 6; prec++ {
		ok := true
		for _, f := range fs {
			rt, err := strconv.ParseFloat(strconv.FormatFloat(f, 'f', prec, 64), 64)
			if err != nil || rt != f {
				ok = false
				break
			}
		}
		if ok {
			return prec, true
		}
	}
	return 0, false
}

func init() {
	registerTextObjectSeeder(seedFloat)
}

func seedFloat(ex *Executor) []Seed {
	nt, ok := firstNTOfType(ex.Grammar, TypeFloat)
	if !ok {
		return nil
	}
	var seeds []Seed
	for col, v := range ex.Context.Inputs {
		if v.Ty != TypeStr {
			continue
		}
		fs := make([]float64, v.Len())
		all := true
		for i, s := range v.Strs {
			f, matched, ok := recognizeFloat(s)
			if !ok || matched != s {
				all = false
				break
			}
			fs[i] = f
		}
		if !all {
			continue
		}
		e := ex.Arena.Op1(parseFloatOp, ex.Arena.Var(col))
		seeds = append(seeds, Seed{NT: nt, Expr: e, Value: FloatValue(fs)})
	}
	return seeds
}
