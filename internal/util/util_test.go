package util

import (
	"fmt"
	"testing"

	"github.com/mgijax/tabletools"
	"github.com/stretchr/testify/require"
)

func TestParseIntList(t *testing.T) {
	cols, err := ParseIntList([]string{"1,2 3", "4"})
	require.Nil(t, err)
	require.Equal(t, []int{1, 2, 3, 4}, cols)

	cols, err = ParseIntList(nil)
	require.Nil(t, err)
	require.Nil(t, cols)

	_, err = ParseIntList([]string{"1:2"})
	require.NotNil(t, err)
}

func TestParseDigitRuns(t *testing.T) {
	require.Equal(t, []int{1, 2, 3}, ParseDigitRuns([]string{"1:2|3", "2"}))
	require.Nil(t, ParseDigitRuns([]string{"abc"}))
}

func TestNomenCompare(t *testing.T) {
	require.Equal(t, -1, NomenCompare("Abc9", "Abc10"))
	require.Equal(t, -1, NomenCompare("Ren1", "ren2"))
	require.Equal(t, 0, NomenCompare("PAX6", "pax6"))
	require.Equal(t, -1, NomenCompare("1a", "a1"))
	require.Equal(t, -1, NomenCompare("Kit", "Kitl"))
	require.Equal(t, 1, NomenCompare("Hoxa10", "Hoxa9b"))
	require.Equal(t, -1, NomenCompare("", "a"))
}

func TestSafeGeneratorOperation(t *testing.T) {
	gen := SafeGeneratorOperation("IN[5]", func(out tabletools.Row, in ...tabletools.Row) (tabletools.Row, bool, error) {
		return append(out, in[0][5]), true, nil
	})
	_, ok, err := gen(tabletools.Row{"1"}, tabletools.Row{"1", "a"})
	require.False(t, ok)
	require.NotNil(t, err)
	require.Contains(t, err.Error(), "Expression Panic")
	require.Contains(t, err.Error(), "IN[5]")
	require.Contains(t, err.Error(), "[1 | a]")

	failing := SafeGeneratorOperation("x", func(out tabletools.Row, in ...tabletools.Row) (tabletools.Row, bool, error) {
		return nil, false, fmt.Errorf("boom")
	})
	_, _, err = failing(tabletools.Row{"1"})
	require.Contains(t, err.Error(), "Expression Error: boom")
}

func TestSafeFilterOperation(t *testing.T) {
	f := SafeFilterOperation(func(row tabletools.Row) (bool, error) {
		panic("bad row")
	})
	keep, err := f(tabletools.Row{"1"})
	require.False(t, keep)
	require.Contains(t, err.Error(), "Filter Panic: bad row")
}
