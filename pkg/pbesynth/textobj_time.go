package pbesynth

import "time"

// timeLayouts are the candidate clock-time formats tried for parsing and
// formatting, spanning 24-hour and 12-hour-with-AM/PM conventions.
var timeLayouts = []string{
	"15:04:05",
	"15:04",
	"3:04 PM",
	"3:04:05 PM",
}

// parseTimeOp recognises a clock-time substring and converts it to an Int
// count of seconds since midnight, the same Int-ordinal encoding
// textobj_date.go uses for calendar dates.
var parseTimeOp = &Operator{
	Name:  "parse.time",
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
			secs, matched, ok := recognizeTime(x)
			if !ok || matched != x {
				return Value{}, false
			}
			out[i] = secs
		}
		return IntValue(out), true
	},
}

// formatTimeOp renders a seconds-since-midnight Int value back to a
// clock-time string, using the layout from timeLayouts that reproduces
// every row.
var formatTimeOp = &Operator{
	Name:  "format.time",
	Cost:  1,
	Arity: Arity1,
	Enum:  false,
	Eval: func(args []Value) (Value, bool) {
		v := args[0]
		if v.Ty != TypeInt {
			return Value{}, false
		}
		for _, layout := range timeLayouts {
			out := make([]string, v.Len())
			ok := true
			for i, secs := range v.Ints {
				if secs < 0 || secs >= 86400 {
					ok = false
					break
				}
				out[i] = secondsToTime(secs).Format(layout)
				reparsed, matched, rok := recognizeTimeWith(layout, out[i])
				if !rok || matched != out[i] || reparsed != secs {
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

func secondsToTime(secs int64) time.Time {
	return time.Date(0, 1, 1, 0, 0, 0, 0, time.UTC).Add(time.Duration(secs) * time.Second)
}

func timeToSeconds(t time.Time) int64 {
	return int64(t.Hour())*3600 + int64(t.Minute())*60 + int64(t.Second())
}

func recognizeTimeWith(layout, s string) (int64, string, bool) {
	t, err := time.Parse(layout, s)
	if err != nil {
		return 0, "", false
	}
	return timeToSeconds(t), s, true
}

func recognizeTime(s string) (int64, string, bool) {
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return timeToSeconds(t), s, true
		}
	}
	return 0, "", false
}

func init() {
	registerTextObjectSeeder(seedTime)
}

func seedTime(ex *Executor) []Seed {
	nt, ok := firstNTOfType(ex.Grammar, TypeInt)
	if !ok {
		return nil
	}
	var seeds []Seed
	for col, v := range ex.Context.Inputs {
		if v.Ty != TypeStr {
			continue
		}
		secs := make([]int64, v.Len())
		all := true
		for i, s := range v.Strs {
			sec, matched, ok := recognizeTime(s)
			if !ok || matched != s {
				all = false
				break
			}
			secs[i] = sec
		}
		if !all {
			continue
		}
		e := ex.Arena.Op1(parseTimeOp, ex.Arena.Var(col))
		seeds = append(seeds, Seed{NT: nt, Expr: e, Value: IntValue(secs)})
	}
	return seeds
}
