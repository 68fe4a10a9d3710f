package pbesynth

import (
	"fmt"
	"strings"

	"github.com/mitchellh/hashstructure"
)

// Type identifies the scalar or vector type a Value carries. Every Value is
// a vector of scalars of a single Type, one slot per example row.
type Type int

const (
	TypeInt Type = iota
	TypeBool
	TypeStr
	TypeFloat
	TypeListInt
	TypeListStr
)

func (t Type) String() string {
	switch t {
	case TypeInt:
		return "int"
	case TypeBool:
		return "bool"
	case TypeStr:
		return "str"
	case TypeFloat:
		return "float"
	case TypeListInt:
		return "list.int"
	case TypeListStr:
		return "list.str"
	default:
		return "unknown"
	}
}

// Value is a vector of scalars, one per example row, of a single Type.
// Values are compared and hashed by their full slot sequence: two
// expressions are observationally equivalent iff they produce equal Values
// on the example vector.
type Value struct {
	Ty       Type
	Ints     []int64
	Bools    []bool
	Strs     []string
	Floats   []float64
	ListInts [][]int64
	ListStrs [][]string

	hash     uint64
	hashOnce bool
}

// Len returns the number of example rows this Value carries.
func (v Value) Len() int {
	switch v.Ty {
	case TypeInt:
		return len(v.Ints)
	case TypeBool:
		return len(v.Bools)
	case TypeStr:
		return len(v.Strs)
	case TypeFloat:
		return len(v.Floats)
	case TypeListInt:
		return len(v.ListInts)
	case TypeListStr:
		return len(v.ListStrs)
	default:
		return 0
	}
}

// IntValue builds an Int-typed Value.
func IntValue(xs []int64) Value { return Value{Ty: TypeInt, Ints: xs} }

// BoolValue builds a Bool-typed Value.
func BoolValue(xs []bool) Value { return Value{Ty: TypeBool, Bools: xs} }

// StrValue builds a Str-typed Value.
func StrValue(xs []string) Value { return Value{Ty: TypeStr, Strs: xs} }

// FloatValue builds a Float-typed Value. NaNs are never generated by this
// engine; equality on Float values is bit-exact (no epsilon comparison).
func FloatValue(xs []float64) Value { return Value{Ty: TypeFloat, Floats: xs} }

// ListIntValue builds a ListInt-typed Value.
func ListIntValue(xs [][]int64) Value { return Value{Ty: TypeListInt, ListInts: xs} }

// ListStrValue builds a ListStr-typed Value.
func ListStrValue(xs [][]string) Value { return Value{Ty: TypeListStr, ListStrs: xs} }

// BroadcastConst builds a Value of n copies of a scalar constant, used when
// a Const or Var rule is emitted at size 1 (spec §4.1).
func BroadcastConst(ty Type, n int, scalar interface{}) Value {
	switch ty {
	case TypeInt:
		xs := make([]int64, n)
		s := scalar.(int64)
		for i := range xs {
			xs[i] = s
		}
		return IntValue(xs)
	case TypeBool:
		xs := make([]bool, n)
		s := scalar.(bool)
		for i := range xs {
			xs[i] = s
		}
		return BoolValue(xs)
	case TypeStr:
		xs := make([]string, n)
		s := scalar.(string)
		for i := range xs {
			xs[i] = s
		}
		return StrValue(xs)
	case TypeFloat:
		xs := make([]float64, n)
		s := scalar.(float64)
		for i := range xs {
			xs[i] = s
		}
		return FloatValue(xs)
	default:
		panic(fmt.Sprintf("pbesynth: cannot broadcast constant of type %v", ty))
	}
}

// Equal reports whether two Values carry the same Type and slot sequence.
func (v Value) Equal(o Value) bool {
	if v.Ty != o.Ty || v.Len() != o.Len() {
		return false
	}
	switch v.Ty {
	case TypeInt:
		for i := range v.Ints {
			if v.Ints[i] != o.Ints[i] {
				return false
			}
		}
	case TypeBool:
		for i := range v.Bools {
			if v.Bools[i] != o.Bools[i] {
				return false
			}
		}
	case TypeStr:
		for i := range v.Strs {
			if v.Strs[i] != o.Strs[i] {
				return false
			}
		}
	case TypeFloat:
		for i := range v.Floats {
			if v.Floats[i] != o.Floats[i] {
				return false
			}
		}
	case TypeListInt:
		for i := range v.ListInts {
			if len(v.ListInts[i]) != len(o.ListInts[i]) {
				return false
			}
			for j := range v.ListInts[i] {
				if v.ListInts[i][j] != o.ListInts[i][j] {
					return false
				}
			}
		}
	case TypeListStr:
		for i := range v.ListStrs {
			if len(v.ListStrs[i]) != len(o.ListStrs[i]) {
				return false
			}
			for j := range v.ListStrs[i] {
				if v.ListStrs[i][j] != o.ListStrs[i][j] {
					return false
				}
			}
		}
	}
	return true
}

// Key returns a stable, comparable key for use as an all-eq map key. It is
// computed via mitchellh/hashstructure over the slot sequence, the same
// approach go-mysql-server uses to key its own plan/row caches, rather than
// a hand-rolled string encoder.
func (v *Value) Key() uint64 {
	if v.hashOnce {
		return v.hash
	}
	h, err := hashstructure.Hash(v.rawSlots(), nil)
	if err != nil {
		// hashstructure only fails on unsupported types, which Value never
		// carries; a panic here indicates a new Type variant was added
		// without updating rawSlots.
		panic(fmt.Sprintf("pbesynth: hashing value: %v", err))
	}
	v.hash = h
	v.hashOnce = true
	return h
}

// rawSlots returns the concrete slot slice backing this Value, used only as
// the hashstructure input for Key.
func (v Value) rawSlots() interface{} {
	switch v.Ty {
	case TypeInt:
		return v.Ints
	case TypeBool:
		return v.Bools
	case TypeStr:
		return v.Strs
	case TypeFloat:
		return v.Floats
	case TypeListInt:
		return v.ListInts
	case TypeListStr:
		return v.ListStrs
	default:
		return nil
	}
}

func (v Value) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s[", v.Ty)
	switch v.Ty {
	case TypeInt:
		for i, x := range v.Ints {
			if i > 0 {
				b.WriteString(", ")
			}
			fmt.Fprintf(&b, "%d", x)
		}
	case TypeBool:
		for i, x := range v.Bools {
			if i > 0 {
				b.WriteString(", ")
			}
			fmt.Fprintf(&b, "%v", x)
		}
	case TypeStr:
		for i, x := range v.Strs {
			if i > 0 {
				b.WriteString(", ")
			}
			fmt.Fprintf(&b, "%q", x)
		}
	case TypeFloat:
		for i, x := range v.Floats {
			if i > 0 {
				b.WriteString(", ")
			}
			fmt.Fprintf(&b, "%g", x)
		}
	case TypeListInt:
		for i, x := range v.ListInts {
			if i > 0 {
				b.WriteString(", ")
			}
			fmt.Fprintf(&b, "%v", x)
		}
	case TypeListStr:
		for i, x := range v.ListStrs {
			if i > 0 {
				b.WriteString(", ")
			}
			fmt.Fprintf(&b, "%v", x)
		}
	}
	b.WriteString("]")
	return b.String()
}

// InnerLengths returns the per-row length vector of a list-typed Value,
// used by the len dispatcher (dispatch_len.go) and by IntDeducer's
// length-bridge.
func (v Value) InnerLengths() []int {
	switch v.Ty {
	case TypeListInt:
		lens := make([]int, len(v.ListInts))
		for i, x := range v.ListInts {
			lens[i] = len(x)
		}
		return lens
	case TypeListStr:
		lens := make([]int, len(v.ListStrs))
		for i, x := range v.ListStrs {
			lens[i] = len(x)
		}
		return lens
	default:
		return nil
	}
}

// lenKey turns an inner-length vector into a comparable map key.
func lenKey(lens []int) string {
	var b strings.Builder
	for i, n := range lens {
		if i > 0 {
			b.WriteByte(',')
		}
		fmt.Fprintf(&b, "%d", n)
	}
	return b.String()
}
