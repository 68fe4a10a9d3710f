package pbesynth

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSizeIndexGetAllAndUnder(t *testing.T) {
	s := NewSizeIndex()
	v1 := ExprValue{Expr: NewVar(0), Value: IntValue([]int64{1})}
	v2 := ExprValue{Expr: NewConst(IntValue([]int64{2})), Value: IntValue([]int64{2})}

	s.Add(1, []ExprValue{v1})
	s.Add(2, []ExprValue{v2})

	require.Equal(t, []ExprValue{v1}, s.GetAll(1))
	require.Equal(t, []ExprValue{v2}, s.GetAll(2))
	require.Nil(t, s.GetAll(3))

	under := s.GetAllUnder(3)
	require.ElementsMatch(t, []ExprValue{v1, v2}, under)

	all := s.All()
	require.ElementsMatch(t, []ExprValue{v1, v2}, all)
}

func TestDataOfferAdoptsFirstAndFlushesBySize(t *testing.T) {
	d := NewData(0, TypeInt, 1, nil)

	e1 := NewVar(0)
	v := IntValue([]int64{1})
	require.Same(t, e1, d.Offer(e1, v))

	e2 := NewConst(v)
	require.Nil(t, d.Offer(e2, v))

	d.FlushSize(1)
	require.Len(t, d.Size.GetAll(1), 1)
	require.Same(t, e1, d.Size.GetAll(1)[0].Expr)
}
