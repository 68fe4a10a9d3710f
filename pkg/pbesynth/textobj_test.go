package pbesynth

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRecognizeIntRoundTrip(t *testing.T) {
	n, matched, ok := recognizeInt("42")
	require.True(t, ok)
	require.Equal(t, int64(42), n)
	require.Equal(t, "42", matched)

	v, ok := TryEval(formatIntOp, []Value{IntValue([]int64{42, -7})})
	require.True(t, ok)
	require.Equal(t, StrValue([]string{"42", "-7"}), v)
}

func TestUnionIntWidthZeroPad(t *testing.T) {
	width, ok := unionIntWidth([]int64{1, 23}, []string{"01", "23"})
	require.True(t, ok)
	require.Equal(t, 2, width)
	require.Equal(t, "01", formatIntWidth(1, width))
}

func TestRecognizeFloatRoundTrip(t *testing.T) {
	f, matched, ok := recognizeFloat("3.50")
	require.True(t, ok)
	require.Equal(t, 3.50, f)
	require.Equal(t, "3.50", matched)

	prec, ok := unionFloatPrecision([]float64{3.5, 1.25})
	require.True(t, ok)
	require.Equal(t, 2, prec)
}

func TestRecognizeMonth(t *testing.T) {
	m, matched, long, ok := recognizeMonth("January")
	require.True(t, ok)
	require.Equal(t, 1, m)
	require.True(t, long)
	require.Equal(t, "January", matched)

	m2, _, long2, ok2 := recognizeMonth("Dec")
	require.True(t, ok2)
	require.Equal(t, 12, m2)
	require.False(t, long2)
}

func TestFormatMonthOp(t *testing.T) {
	v, ok := TryEval(formatMonthOp, []Value{IntValue([]int64{1, 12})})
	require.True(t, ok)
	require.Equal(t, StrValue([]string{"January", "December"}), v)
}

func TestRecognizeWeekday(t *testing.T) {
	d, matched, ok := recognizeWeekday("Sunday")
	require.True(t, ok)
	require.Equal(t, 0, d)
	require.Equal(t, "Sunday", matched)
}

func TestDateParseFormatRoundTrip(t *testing.T) {
	d, matched, ok := recognizeDate("2024-01-02")
	require.True(t, ok)
	require.Equal(t, "2024-01-02", matched)

	v, ok := TryEval(formatDateOp, []Value{IntValue([]int64{d})})
	require.True(t, ok)
	require.Equal(t, StrValue([]string{"2024-01-02"}), v)
}

func TestDateMonthDayExtraction(t *testing.T) {
	d, _, ok := recognizeDate("2024-03-15")
	require.True(t, ok)

	month, ok := TryEval(opByName("date.month"), []Value{IntValue([]int64{d})})
	require.True(t, ok)
	require.Equal(t, IntValue([]int64{3}), month)

	day, ok := TryEval(opByName("date.day"), []Value{IntValue([]int64{d})})
	require.True(t, ok)
	require.Equal(t, IntValue([]int64{15}), day)
}

func TestTimeParseFormatRoundTrip(t *testing.T) {
	secs, matched, ok := recognizeTime("15:04:05")
	require.True(t, ok)
	require.Equal(t, "15:04:05", matched)

	v, ok := TryEval(formatTimeOp, []Value{IntValue([]int64{secs})})
	require.True(t, ok)
	require.Equal(t, StrValue([]string{"15:04:05"}), v)
}

func opByName(name string) *Operator {
	return StdOperators()[name]
}
