package pbesynth

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPrefixIndexSuperfixesFindsRowWiseExtension(t *testing.T) {
	idx := NewPrefixIndex(2)
	expected := []string{"abc:def", "ghi:jkl"}

	abc := StrValue([]string{"abc", "ghi"})
	idx.Update(NewConst(abc), abc, expected)

	out := idx.Superfixes(StrValue([]string{"ab", "gh"}))
	require.Len(t, out, 1)
	require.Equal(t, abc, out[0].Value)
}

func TestPrefixIndexUpdateSkipsValuesNotInfixOfExpected(t *testing.T) {
	idx := NewPrefixIndex(1)
	expected := []string{"abc:def"}

	idx.Update(NewConst(StrValue([]string{"xyz"})), StrValue([]string{"xyz"}), expected)

	out := idx.Superfixes(StrValue([]string{"x"}))
	require.Empty(t, out)
}

func TestPrefixIndexPrefixesFindsRowWisePrefix(t *testing.T) {
	idx := NewPrefixIndex(2)
	expected := []string{"abc:def", "ghi:jkl"}

	ab := StrValue([]string{"ab", "gh"})
	idx.Update(NewConst(ab), ab, expected)

	out := idx.Prefixes(StrValue([]string{"abc", "ghi"}))
	require.Len(t, out, 1)
	require.Equal(t, ab, out[0].Value)
}
