package pbesynth

import "time"

// dateLayouts are the candidate date formats tried for both parsing and
// (by union) formatting, spanning the ISO, US, and European conventions
// spec §8's examples exercise.
var dateLayouts = []string{
	"2006-01-02",
	"01/02/2006",
	"02/01/2006",
	"Jan 2, 2006",
	"2 Jan 2006",
	"January 2, 2006",
}

const dateEpoch = "2006-01-02"

// parseDateOp recognises a date substring against dateLayouts and
// converts it to an Int day count since the Unix epoch (there is no
// dedicated Date Value type; spec §3's closed Type set has no calendar
// type, so dates are carried as Int ordinals the same way textobj_month.go
// carries month names as 1-12 ordinals).
var parseDateOp = &Operator{
	Name:  "parse.date",
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
			d, matched, ok := recognizeDate(x)
			if !ok || matched != x {
				return Value{}, false
			}
			out[i] = d
		}
		return IntValue(out), true
	},
}

// formatDateOp renders an epoch-day Int value back to a date string,
// using the single layout (out of dateLayouts) that reproduces every
// row, matching spec §4.6's union-across-rows contract.
var formatDateOp = &Operator{
	Name:  "format.date",
	Cost:  1,
	Arity: Arity1,
	Enum:  false,
	Eval: func(args []Value) (Value, bool) {
		v := args[0]
		if v.Ty != TypeInt {
			return Value{}, false
		}
		for _, layout := range dateLayouts {
			out := make([]string, v.Len())
			ok := true
			for i, d := range v.Ints {
				out[i] = dayToTime(d).Format(layout)
				reparsed, matched, rok := recognizeDateWith(layout, out[i])
				if !rok || matched != out[i] || reparsed != d {
					ok = false
					break
				}
			}
			if ok {
				return StrValue(out), true
			}
		}
		return Value{}, false
	},
}

func dayToTime(days int64) time.Time {
	return time.Unix(0, 0).UTC().AddDate(0, 0, int(days))
}

func timeToDay(t time.Time) int64 {
	return int64(t.Sub(time.Unix(0, 0).UTC()).Hours() / 24)
}

func recognizeDateWith(layout, s string) (int64, string, bool) {
	t, err := time.Parse(layout, s)
	if err != nil {
		return 0, "", false
	}
	return timeToDay(t), s, true
}

func recognizeDate(s string) (int64, string, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return timeToDay(t), s, true
		}
	}
	return 0, "", false
}

func init() {
	registerTextObjectSeeder(seedDate)
}

func seedDate(ex *Executor) []Seed {
	nt, ok := firstNTOfType(ex.Grammar, TypeInt)
	if !ok {
		return nil
	}
	var seeds []Seed
	for col, v := range ex.Context.Inputs {
		if v.Ty != TypeStr {
			continue
		}
		ds := make([]int64, v.Len())
		all := true
		for i, s := range v.Strs {
			d, matched, ok := recognizeDate(s)
			if !ok || matched != s {
				all = false
				break
			}
			ds[i] = d
		}
		if !all {
			continue
		}
		e := ex.Arena.Op1(parseDateOp, ex.Arena.Var(col))
		seeds = append(seeds, Seed{NT: nt, Expr: e, Value: IntValue(ds)})
	}
	return seeds
}
