package pbesynth

// Seed is a latent expression that text-object recognition discovers
// ahead of the size-stratified enumeration loop reaching its natural
// cost, per spec §4.6: "every matched substring in every input row
// becomes a latent Op1(parse_x, ...) expression scheduled for future
// emission at size = current size + op cost."
//
// Grounded on original_source/src/forward/text_object/mod.rs's
// seed-and-schedule pattern.
type Seed struct {
	NT    int
	Expr  *Expr
	Value Value
}

// textObjectSeeders collects every textobj_*.go file's seeding function;
// each one is registered from that file's init(), the idiomatic Go
// analogue of original_source/src/forward/text_object/mod.rs's static
// registry of recognizers.
var textObjectSeeders []func(ex *Executor) []Seed

func registerTextObjectSeeder(f func(ex *Executor) []Seed) {
	textObjectSeeders = append(textObjectSeeders, f)
}

// collectSeeds runs every registered text-object recognizer against the
// current Context's input columns, grouping results by the cost their
// Expr carries so Run can offer each seed exactly when the outer
// enumeration loop reaches that size.
func (ex *Executor) collectSeeds() map[int][]Seed {
	out := map[int][]Seed{}
	for _, seeder := range textObjectSeeders {
		for _, s := range seeder(ex) {
			out[s.Expr.Cost()] = append(out[s.Expr.Cost()], s)
		}
	}
	return out
}

// formattingOps lists every FormattingOp of spec §4.6 available to
// StrDeducer.tryFormat, keyed by the Type of value they render from.
var formattingOps = map[Type][]*Operator{
	TypeInt:   {formatIntOp, formatMonthOp, formatWeekdayOp, formatDateOp, formatTimeOp},
	TypeFloat: {formatFloatOp},
}

// firstNTOfType returns the index of the first non-terminal of type ty,
// used by text-object seeders to decide which non-terminal a recognized
// constant belongs to.
func firstNTOfType(g *Grammar, ty Type) (int, bool) {
	for i, nt := range g.NonTerminals {
		if nt.Type == ty {
			return i, true
		}
	}
	return 0, false
}
