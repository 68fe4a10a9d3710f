package pbesynth

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValueEqual(t *testing.T) {
	a := IntValue([]int64{1, 2, 3})
	b := IntValue([]int64{1, 2, 3})
	c := IntValue([]int64{1, 2, 4})

	require.True(t, a.Equal(b))
	require.False(t, a.Equal(c))
	require.False(t, a.Equal(StrValue([]string{"1", "2", "3"})))
}

func TestValueLen(t *testing.T) {
	require.Equal(t, 3, IntValue([]int64{1, 2, 3}).Len())
	require.Equal(t, 2, StrValue([]string{"a", "b"}).Len())
	require.Equal(t, 2, ListStrValue([][]string{{"a"}, {"b", "c"}}).Len())
}

func TestValueInnerLengths(t *testing.T) {
	v := ListStrValue([][]string{{"a", "b"}, {"c"}, {}})
	require.Equal(t, []int{2, 1, 0}, v.InnerLengths())
	require.Nil(t, StrValue([]string{"a"}).InnerLengths())
}

func TestBroadcastConst(t *testing.T) {
	v := BroadcastConst(TypeStr, 3, "x")
	require.Equal(t, StrValue([]string{"x", "x", "x"}), v)
}

func TestValueKeyDistinguishesByType(t *testing.T) {
	intVal := IntValue([]int64{1})
	strVal := StrValue([]string{"1"})
	require.NotEqual(t, intVal.Key(), strVal.Key())
}
