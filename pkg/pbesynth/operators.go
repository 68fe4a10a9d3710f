package pbesynth

import (
	"strconv"
	"strings"
)

// Arity is the number of children an operator's Expr node carries.
type Arity int

const (
	Arity1 Arity = 1
	Arity2 Arity = 2
	Arity3 Arity = 3
)

// EvalFunc evaluates an operator over its already-evaluated children
// Values, returning (result, true) on success or (zero, false) for a
// type-mismatch or partial-operator failure (spec §7: both are "not an
// error", just a discarded candidate).
type EvalFunc func(args []Value) (Value, bool)

// Operator is a finite, closed tagged variant: its identity encodes the
// user-visible name, its unit cost, and its evaluation rule (spec §3).
// Per spec §1 this package treats per-operator evaluation semantics as a
// black-box dense dispatch table, not an exhaustively specified operator
// library: enough operators are implemented to drive the end-to-end
// scenarios of spec §8 and the round-trip property, matching
// original_source/src/expr/ops/op_impl.rs's shape without its full
// breadth.
type Operator struct {
	Name    string
	Cost    int
	Arity   Arity
	Enum    bool // whether enumerated directly (vs. only reachable by deduction)
	ReplCap int  // Replace's per-operator small constant on b/c sub-costs (0 = no cap)
	Eval    EvalFunc
}

// StdOperators returns the standard domain operator table named in spec §6.
func StdOperators() map[string]*Operator {
	ops := map[string]*Operator{}
	add := func(o *Operator) { ops[o.Name] = o }

	add(&Operator{Name: "str.++", Cost: 1, Arity: Arity2, Enum: true, Eval: evalConcat})
	add(&Operator{Name: "str.substr", Cost: 1, Arity: Arity3, Enum: true, Eval: evalSubstr})
	add(&Operator{Name: "str.replace", Cost: 1, Arity: Arity3, Enum: true, ReplCap: 3, Eval: evalReplace})
	add(&Operator{Name: "str.indexof", Cost: 1, Arity: Arity3, Enum: true, Eval: evalIndexOf})
	add(&Operator{Name: "str.at", Cost: 1, Arity: Arity2, Enum: true, Eval: evalAt})
	add(&Operator{Name: "str.len", Cost: 1, Arity: Arity1, Enum: true, Eval: evalStrLen})
	add(&Operator{Name: "str.to.int", Cost: 1, Arity: Arity1, Enum: true, Eval: evalStrToInt})
	add(&Operator{Name: "int.to.str", Cost: 1, Arity: Arity1, Enum: true, Eval: evalIntToStr})
	add(&Operator{Name: "int.+", Cost: 1, Arity: Arity2, Enum: true, Eval: evalIntAdd})
	add(&Operator{Name: "int.-", Cost: 1, Arity: Arity2, Enum: true, Eval: evalIntSub})
	add(&Operator{Name: "ite", Cost: 1, Arity: Arity3, Enum: false, Eval: evalIte})
	add(&Operator{Name: "=", Cost: 1, Arity: Arity2, Enum: true, Eval: evalEq})
	add(&Operator{Name: "list.join", Cost: 1, Arity: Arity2, Enum: true, Eval: evalListJoin})
	add(&Operator{Name: "list.at", Cost: 1, Arity: Arity2, Enum: true, Eval: evalListAt})
	add(&Operator{Name: "list.len", Cost: 1, Arity: Arity1, Enum: true, Eval: evalListLen})
	add(&Operator{Name: "str.split", Cost: 1, Arity: Arity2, Enum: true, Eval: evalSplit})
	add(&Operator{Name: "str.contains", Cost: 1, Arity: Arity2, Enum: true, Eval: evalContains})
	add(&Operator{Name: "str.prefixof", Cost: 1, Arity: Arity2, Enum: true, Eval: evalPrefixOf})
	add(&Operator{Name: "str.suffixof", Cost: 1, Arity: Arity2, Enum: true, Eval: evalSuffixOf})
	add(&Operator{Name: "date.month", Cost: 1, Arity: Arity1, Enum: true, Eval: evalDateMonth})
	add(&Operator{Name: "date.day", Cost: 1, Arity: Arity1, Enum: true, Eval: evalDateDay})

	return ops
}

// evalDateMonth extracts the 1-12 calendar month from an epoch-day Int
// value produced by parse.date (textobj_date.go), the field accessor
// spec scenario S3's date.parse/date.month decomposition needs.
func evalDateMonth(args []Value) (Value, bool) {
	v := args[0]
	if v.Ty != TypeInt {
		return Value{}, false
	}
	out := make([]int64, v.Len())
	for i, d := range v.Ints {
		out[i] = int64(dayToTime(d).Month())
	}
	return IntValue(out), true
}

// evalDateDay extracts the day-of-month from an epoch-day Int value.
func evalDateDay(args []Value) (Value, bool) {
	v := args[0]
	if v.Ty != TypeInt {
		return Value{}, false
	}
	out := make([]int64, v.Len())
	for i, d := range v.Ints {
		out[i] = int64(dayToTime(d).Day())
	}
	return IntValue(out), true
}

func zipStr2(a, b Value, f func(x, y string) (string, bool)) (Value, bool) {
	if a.Ty != TypeStr || b.Ty != TypeStr || a.Len() != b.Len() {
		return Value{}, false
	}
	out := make([]string, a.Len())
	for i := range a.Strs {
		r, ok := f(a.Strs[i], b.Strs[i])
		if !ok {
			return Value{}, false
		}
		out[i] = r
	}
	return StrValue(out), true
}

func evalConcat(args []Value) (Value, bool) {
	a, b := args[0], args[1]
	return zipStr2(a, b, func(x, y string) (string, bool) { return x + y, true })
}

func evalSubstr(args []Value) (Value, bool) {
	s, start, length := args[0], args[1], args[2]
	if s.Ty != TypeStr || start.Ty != TypeInt || length.Ty != TypeInt {
		return Value{}, false
	}
	n := s.Len()
	if n != start.Len() || n != length.Len() {
		return Value{}, false
	}
	out := make([]string, n)
	for i := 0; i < n; i++ {
		str := s.Strs[i]
		st := int(start.Ints[i])
		ln := int(length.Ints[i])
		// str.substr("abc", 10, 2) = "" (spec §8.9): clamp out-of-range
		// starts/lengths to empty rather than erroring.
		if st < 0 || st >= len(str) || ln <= 0 {
			out[i] = ""
			continue
		}
		end := st + ln
		if end > len(str) {
			end = len(str)
		}
		out[i] = str[st:end]
	}
	return StrValue(out), true
}

func evalReplace(args []Value) (Value, bool) {
	s, from, to := args[0], args[1], args[2]
	if s.Ty != TypeStr || from.Ty != TypeStr || to.Ty != TypeStr {
		return Value{}, false
	}
	n := s.Len()
	if n != from.Len() || n != to.Len() {
		return Value{}, false
	}
	out := make([]string, n)
	for i := 0; i < n; i++ {
		if from.Strs[i] == "" {
			// replacing the empty string is a partial-operator failure
			// (spec §7): discard the candidate rather than looping.
			return Value{}, false
		}
		out[i] = strings.Replace(s.Strs[i], from.Strs[i], to.Strs[i], 1)
	}
	return StrValue(out), true
}

func evalIndexOf(args []Value) (Value, bool) {
	s, sub, start := args[0], args[1], args[2]
	if s.Ty != TypeStr || sub.Ty != TypeStr || start.Ty != TypeInt {
		return Value{}, false
	}
	n := s.Len()
	if n != sub.Len() || n != start.Len() {
		return Value{}, false
	}
	out := make([]int64, n)
	for i := 0; i < n; i++ {
		st := int(start.Ints[i])
		str := s.Strs[i]
		// str.indexof with start beyond the string returns -1 (spec §8.10).
		if st < 0 || st > len(str) {
			out[i] = -1
			continue
		}
		idx := strings.Index(str[st:], sub.Strs[i])
		if idx < 0 {
			out[i] = -1
		} else {
			out[i] = int64(st + idx)
		}
	}
	return IntValue(out), true
}

func evalAt(args []Value) (Value, bool) {
	s, idx := args[0], args[1]
	if s.Ty != TypeStr || idx.Ty != TypeInt || s.Len() != idx.Len() {
		return Value{}, false
	}
	out := make([]string, s.Len())
	for i := range s.Strs {
		p := int(idx.Ints[i])
		if p < 0 || p >= len(s.Strs[i]) {
			return Value{}, false
		}
		out[i] = string(s.Strs[i][p])
	}
	return StrValue(out), true
}

func evalStrLen(args []Value) (Value, bool) {
	s := args[0]
	if s.Ty != TypeStr {
		return Value{}, false
	}
	out := make([]int64, s.Len())
	for i, x := range s.Strs {
		out[i] = int64(len(x))
	}
	return IntValue(out), true
}

func evalStrToInt(args []Value) (Value, bool) {
	s := args[0]
	if s.Ty != TypeStr {
		return Value{}, false
	}
	out := make([]int64, s.Len())
	for i, x := range s.Strs {
		n, err := strconv.ParseInt(strings.TrimSpace(x), 10, 64)
		if err != nil {
			return Value{}, false
		}
		out[i] = n
	}
	return IntValue(out), true
}

func evalIntToStr(args []Value) (Value, bool) {
	v := args[0]
	if v.Ty != TypeInt {
		return Value{}, false
	}
	out := make([]string, v.Len())
	for i, x := range v.Ints {
		out[i] = strconv.FormatInt(x, 10)
	}
	return StrValue(out), true
}

func evalIntAdd(args []Value) (Value, bool) {
	a, b := args[0], args[1]
	if a.Ty != TypeInt || b.Ty != TypeInt || a.Len() != b.Len() {
		return Value{}, false
	}
	out := make([]int64, a.Len())
	for i := range a.Ints {
		out[i] = a.Ints[i] + b.Ints[i]
	}
	return IntValue(out), true
}

func evalIntSub(args []Value) (Value, bool) {
	a, b := args[0], args[1]
	if a.Ty != TypeInt || b.Ty != TypeInt || a.Len() != b.Len() {
		return Value{}, false
	}
	out := make([]int64, a.Len())
	for i := range a.Ints {
		out[i] = a.Ints[i] - b.Ints[i]
	}
	return IntValue(out), true
}

func evalIte(args []Value) (Value, bool) {
	cond, then, els := args[0], args[1], args[2]
	if cond.Ty != TypeBool {
		return Value{}, false
	}
	n := cond.Len()
	if then.Ty != els.Ty || then.Len() != n || els.Len() != n {
		return Value{}, false
	}
	switch then.Ty {
	case TypeStr:
		out := make([]string, n)
		for i := range out {
			if cond.Bools[i] {
				out[i] = then.Strs[i]
			} else {
				out[i] = els.Strs[i]
			}
		}
		return StrValue(out), true
	case TypeInt:
		out := make([]int64, n)
		for i := range out {
			if cond.Bools[i] {
				out[i] = then.Ints[i]
			} else {
				out[i] = els.Ints[i]
			}
		}
		return IntValue(out), true
	default:
		return Value{}, false
	}
}

func evalEq(args []Value) (Value, bool) {
	a, b := args[0], args[1]
	if a.Ty != b.Ty || a.Len() != b.Len() {
		return Value{}, false
	}
	n := a.Len()
	out := make([]bool, n)
	for i := 0; i < n; i++ {
		switch a.Ty {
		case TypeInt:
			out[i] = a.Ints[i] == b.Ints[i]
		case TypeStr:
			out[i] = a.Strs[i] == b.Strs[i]
		case TypeBool:
			out[i] = a.Bools[i] == b.Bools[i]
		case TypeFloat:
			out[i] = a.Floats[i] == b.Floats[i]
		default:
			return Value{}, false
		}
	}
	return BoolValue(out), true
}

func evalListJoin(args []Value) (Value, bool) {
	list, sep := args[0], args[1]
	if list.Ty != TypeListStr || sep.Ty != TypeStr || list.Len() != sep.Len() {
		return Value{}, false
	}
	out := make([]string, list.Len())
	for i, parts := range list.ListStrs {
		out[i] = strings.Join(parts, sep.Strs[i])
	}
	return StrValue(out), true
}

func evalListAt(args []Value) (Value, bool) {
	list, idx := args[0], args[1]
	if idx.Ty != TypeInt || idx.Len() != list.Len() {
		return Value{}, false
	}
	switch list.Ty {
	case TypeListInt:
		out := make([]int64, list.Len())
		for i, xs := range list.ListInts {
			p := int(idx.Ints[i])
			// list.at([], 0) is not a result (spec §8.9): discard.
			if p < 0 || p >= len(xs) {
				return Value{}, false
			}
			out[i] = xs[p]
		}
		return IntValue(out), true
	case TypeListStr:
		out := make([]string, list.Len())
		for i, xs := range list.ListStrs {
			p := int(idx.Ints[i])
			if p < 0 || p >= len(xs) {
				return Value{}, false
			}
			out[i] = xs[p]
		}
		return StrValue(out), true
	default:
		return Value{}, false
	}
}

func evalListLen(args []Value) (Value, bool) {
	lens := args[0].InnerLengths()
	if lens == nil {
		return Value{}, false
	}
	out := make([]int64, len(lens))
	for i, n := range lens {
		out[i] = int64(n)
	}
	return IntValue(out), true
}

func evalSplit(args []Value) (Value, bool) {
	s, sep := args[0], args[1]
	if s.Ty != TypeStr || sep.Ty != TypeStr || s.Len() != sep.Len() {
		return Value{}, false
	}
	out := make([][]string, s.Len())
	for i := range s.Strs {
		out[i] = strings.Split(s.Strs[i], sep.Strs[i])
	}
	return ListStrValue(out), true
}

func evalContains(args []Value) (Value, bool) {
	a, b := args[0], args[1]
	if a.Ty != TypeStr || b.Ty != TypeStr || a.Len() != b.Len() {
		return Value{}, false
	}
	out := make([]bool, a.Len())
	for i := range a.Strs {
		out[i] = strings.Contains(a.Strs[i], b.Strs[i])
	}
	return BoolValue(out), true
}

func evalPrefixOf(args []Value) (Value, bool) {
	a, b := args[0], args[1]
	if a.Ty != TypeStr || b.Ty != TypeStr || a.Len() != b.Len() {
		return Value{}, false
	}
	out := make([]bool, a.Len())
	for i := range a.Strs {
		out[i] = strings.HasPrefix(b.Strs[i], a.Strs[i])
	}
	return BoolValue(out), true
}

func evalSuffixOf(args []Value) (Value, bool) {
	a, b := args[0], args[1]
	if a.Ty != TypeStr || b.Ty != TypeStr || a.Len() != b.Len() {
		return Value{}, false
	}
	out := make([]bool, a.Len())
	for i := range a.Strs {
		out[i] = strings.HasSuffix(b.Strs[i], a.Strs[i])
	}
	return BoolValue(out), true
}

// TryEval evaluates an operator's Eval against args, matching the
// try_eval(op, v) contract of spec §4.1.
func TryEval(op *Operator, args []Value) (Value, bool) {
	return op.Eval(args)
}
