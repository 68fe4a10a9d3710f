package pbesynth

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAllEqSetAdoptsFirstWitness(t *testing.T) {
	a := NewAllEq()
	v := StrValue([]string{"x"})

	e1 := NewVar(0)
	require.Same(t, e1, a.Set(v, e1))

	e2 := NewConst(v)
	require.Nil(t, a.Set(v, e2))

	got, ok := a.Get(v)
	require.True(t, ok)
	require.Same(t, e1, got)
}

func TestAllEqAcquireIsFirst(t *testing.T) {
	a := NewAllEq()
	v := IntValue([]int64{1, 2})

	_, first := a.AcquireIsFirst(v)
	require.True(t, first)

	_, first2 := a.AcquireIsFirst(v)
	require.False(t, first2)
}

// TestAllEqDistinguishesHashCollisions confirms two distinct Values that
// happen to share a hashstructure hash get distinct cells rather than
// being wrongly merged into one observational-equivalence class (spec §3:
// Values are compared by their full slot sequence, not by hash alone).
func TestAllEqDistinguishesHashCollisions(t *testing.T) {
	a := NewAllEq()
	v1 := StrValue([]string{"a"})

	c1, first1 := a.AcquireIsFirst(v1)
	require.True(t, first1)

	e1 := NewConst(v1)
	require.True(t, c1.Set(e1))

	v3 := StrValue([]string{"b"})
	v3.hash, v3.hashOnce = v1.Key(), true // collides with v1's hash, but not Equal

	c3, first3 := a.AcquireIsFirst(v3)
	require.True(t, first3, "a distinct Value sharing v1's hash must get its own cell")
	require.NotSame(t, c1, c3)

	got, ok := a.Get(v1)
	require.True(t, ok)
	require.Same(t, e1, got)

	_, ok = a.Get(v3)
	require.False(t, ok, "v3's cell was never Set")
}

func TestAllEqSetFulfilsPendingCell(t *testing.T) {
	a := NewAllEq()
	v := IntValue([]int64{7})

	cell, first := a.AcquireIsFirst(v)
	require.True(t, first)
	_, ready := cell.TryGet()
	require.False(t, ready)

	e := NewConst(v)
	require.Same(t, e, a.Set(v, e))

	got, ok := cell.TryGet()
	require.True(t, ok)
	require.Same(t, e, got)
}
