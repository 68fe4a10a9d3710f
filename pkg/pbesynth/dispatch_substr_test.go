package pbesynth

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSubstrIndexTryAtFindsIndexedOccurrence(t *testing.T) {
	idx := NewSubstrIndex([]string{"Dr. Alice Smith", "Bob Jones"})

	inner := StrValue([]string{"Alice Smith", "Bob Jones"})
	innerExpr := NewConst(StrValue([]string{"x"}))
	idx.Update(innerExpr, inner)

	var got []Value
	idx.TryAt(StrValue([]string{"Dr. Alice Smith", "Bob Jones"}), func(v Value, e *Expr) {
		got = append(got, v)
	})
	require.Len(t, got, 1)
	require.Equal(t, inner, got[0])
}

func TestSubstrIndexUpdateWakesWaiterRegisteredFirst(t *testing.T) {
	idx := NewSubstrIndex([]string{"Dr. Alice Smith"})

	var got Value
	var called bool
	idx.TryAt(StrValue([]string{"Dr. Alice Smith"}), func(v Value, e *Expr) {
		got = v
		called = true
	})
	require.False(t, called)

	inner := StrValue([]string{"Alice Smith"})
	idx.Update(NewConst(StrValue([]string{"x"})), inner)

	require.True(t, called)
	require.Equal(t, inner, got)
}

func TestSubstrIndexRejectsOutOfIntervalCandidate(t *testing.T) {
	idx := NewSubstrIndex([]string{"Dr. Alice Smith"})

	var got []Value
	idx.TryAt(StrValue([]string{"Alice"}), func(v Value, e *Expr) {
		got = append(got, v)
	})

	// "Smith" occurs in the row but outside the "Alice" interval.
	idx.Update(NewConst(StrValue([]string{"x"})), StrValue([]string{"Smith"}))
	require.Empty(t, got)
}
