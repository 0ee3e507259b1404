package transform

import (
	stderrors "errors"
	"testing"

	"github.com/mgijax/tabletools"
	"github.com/mgijax/tabletools/accumulators"
	"github.com/mgijax/tabletools/errors"
	"github.com/mgijax/tabletools/internal/keyindex"
	"github.com/stretchr/testify/require"
)

func TestKeyBy(t *testing.T) {
	row := tabletools.Row{"1", "a", "b", "c"}
	key, err := KeyBy([]int{3, 1})(row)
	require.Nil(t, err)
	require.Equal(t, []string{"c", "a"}, key)

	_, err = KeyBy([]int{4})(row)
	var cie errors.ColumnIndexError
	require.True(t, stderrors.As(err, &cie))
	require.Equal(t, 4, cie.Column)

	key, err = KeyByNullable([]int{1, 2}, "-")(tabletools.Row{"1", "x", "-"})
	require.Nil(t, err)
	require.Nil(t, key)
}

func TestKeyFilters(t *testing.T) {
	set := keyindex.New[struct{}]()
	set.Put([]string{"b"}, struct{}{})
	in := KeyIn(KeyBy([]int{1}), set)
	notIn := KeyNotIn(KeyBy([]int{1}), set)

	keep, err := in(tabletools.Row{"1", "b"})
	require.Nil(t, err)
	require.True(t, keep)
	keep, err = notIn(tabletools.Row{"1", "b"})
	require.Nil(t, err)
	require.False(t, keep)
}

func TestExpand(t *testing.T) {
	s1, err := ParseExpandSpec("2")
	require.Nil(t, err)
	s2, err := ParseExpandSpec("3:|")
	require.Nil(t, err)
	rows, err := Expand([]ExpandSpec{s1, s2})(tabletools.Row{"4", "id", "[a,b,c]", "x|y"})
	require.Nil(t, err)
	require.Equal(t, []tabletools.Row{
		{"4", "id", "a", "x"},
		{"4", "id", "b", "y"},
		{"4", "id", "c", ""},
	}, rows)

	_, err = Expand([]ExpandSpec{s1})(tabletools.Row{"1", "id", "a,b"})
	var ese errors.ExpandSyntaxError
	require.True(t, stderrors.As(err, &ese))
	require.Equal(t, "a,b", ese.Value)
}

func TestSplitList(t *testing.T) {
	vals, err := SplitList("[]", accumulators.ParsePSS("[,]"))
	require.Nil(t, err)
	require.Equal(t, []string{""}, vals)
	vals, err = SplitList("(ab)", accumulators.ParsePSS("()"))
	require.Nil(t, err)
	require.Equal(t, []string{"ab"}, vals)
	_, err = SplitList("[", accumulators.ParsePSS("[,]"))
	require.NotNil(t, err)
}

func TestParseSortKey(t *testing.T) {
	for in, want := range map[string]SortKey{
		"3":    {Column: 3},
		"3r":   {Column: 3, Reverse: true},
		"3:r":  {Column: 3, Reverse: true},
		"2:nr": {Column: 2, Numeric: true, Reverse: true},
		"4s":   {Column: 4, Nomenclature: true},
	} {
		got, err := ParseSortKey(in)
		require.Nil(t, err, in)
		require.Equal(t, want, got, in)
	}
	for _, bad := range []string{"", "r", "0", "2:x", "2:ns"} {
		_, err := ParseSortKey(bad)
		require.NotNil(t, err, bad)
	}
}

func TestCompareAll(t *testing.T) {
	a := tabletools.Row{"1", "Kit", "10"}
	b := tabletools.Row{"2", "Kit", "9"}
	c, err := CompareAll([]SortKey{{Column: 1}, {Column: 2}}, a, b)
	require.Nil(t, err)
	require.Equal(t, -1, c)
	c, err = CompareAll([]SortKey{{Column: 1}, {Column: 2, Numeric: true}}, a, b)
	require.Nil(t, err)
	require.Equal(t, 1, c)
	c, err = CompareAll([]SortKey{{Column: 2, Numeric: true, Reverse: true}}, a, b)
	require.Nil(t, err)
	require.Equal(t, -1, c)
	c, err = CompareAll([]SortKey{{Column: 1, Nomenclature: true}}, tabletools.Row{"1", "Abc9"}, tabletools.Row{"2", "abc10"})
	require.Nil(t, err)
	require.Equal(t, -1, c)
}
