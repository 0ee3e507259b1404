package accumulators

import (
	"testing"

	"github.com/mgijax/tabletools"
	"github.com/mgijax/tabletools/errors"
	"github.com/stretchr/testify/require"
)

func feed(t *testing.T, acc tabletools.Accumulator, rows ...tabletools.Row) {
	for _, r := range rows {
		require.Nil(t, acc.Accumulate(r))
	}
}

var students = []tabletools.Row{
	{"1", "John", "M", "1", "3"},
	{"2", "Mary", "F", "2", "4"},
	{"3", "Jean", "F", "1", "2"},
	{"4", "Paul", "M", "3", "4"},
}

func TestCountAccumulators(t *testing.T) {
	c := Counter()
	feed(t, c, students...)
	require.Equal(t, "4", c.Result())

	d := DistinctCounter(2)()
	feed(t, d, students...)
	require.Equal(t, "2", d.Result())
}

func TestFirstLastList(t *testing.T) {
	f := Firster(1)()
	l := Laster(1)()
	ls := Lister(1, DefaultListPSS)()
	feed(t, f, students...)
	feed(t, l, students...)
	feed(t, ls, students...)
	require.Equal(t, "John", f.Result())
	require.Equal(t, "Paul", l.Result())
	require.Equal(t, "John,Mary,Jean,Paul", ls.Result())
}

func TestParsePSS(t *testing.T) {
	vals := []string{"a", "b"}
	require.Equal(t, "ab", ParsePSS("").Format(vals))
	require.Equal(t, "a|b", ParsePSS("|").Format(vals))
	require.Equal(t, "(ab)", ParsePSS("()").Format(vals))
	require.Equal(t, "[a;b]", ParsePSS("[;]").Format(vals))
	require.Equal(t, "a,b", ParsePSS("<;;>").Format(vals))
}

func TestStatistics(t *testing.T) {
	s := Statisticker(4)().(*Statistics)
	feed(t, s, students...)
	require.Equal(t, "13", s.ResultOf(FuncSum))
	require.Equal(t, "45", s.ResultOf(FuncSumSq))
	require.Equal(t, "2", s.ResultOf(FuncMin))
	require.Equal(t, "4", s.ResultOf(FuncMax))
	require.Equal(t, "3.25", s.ResultOf(FuncMean))
	require.Equal(t, "3.25", s.ResultOf(FuncAvg))
	v, err := s.Field(FuncVar)
	require.Nil(t, err)
	require.InDelta(t, 0.9166666, v, 1e-6)
	sd, err := s.Field(FuncSD)
	require.Nil(t, err)
	require.InDelta(t, 0.9574271, sd, 1e-6)

	one := Statisticker(4)().(*Statistics)
	feed(t, one, students[0])
	require.Equal(t, "0", one.ResultOf(FuncVar))
}

func TestStatisticsRejectsText(t *testing.T) {
	s := Statisticker(1)()
	err := s.Accumulate(students[2])
	require.Equal(t, errors.NotNumericError{Value: "Jean", Column: 1, Line: 3}, err)
}

func TestParseSpec(t *testing.T) {
	spec, err := ParseSpec("list:3:[;]")
	require.Nil(t, err)
	require.Equal(t, Spec{Func: FuncList, Column: 3, Xtra: "[;]", HasXtra: true}, spec)

	spec, err = ParseSpec("count")
	require.Nil(t, err)
	require.Equal(t, 0, spec.Column)

	_, err = ParseSpec("median:2")
	require.Equal(t, errors.UnknownAggregateError{Name: "median"}, err)
	_, err = ParseSpec("sum")
	require.NotNil(t, err)
	_, err = ParseSpec("sum:x")
	require.NotNil(t, err)
}

func TestPlanSharesStatistics(t *testing.T) {
	var specs []Spec
	for _, s := range []string{"count", "sum:4", "max:4", "count:2", "list:1:", "mean:3"} {
		spec, err := ParseSpec(s)
		require.Nil(t, err)
		specs = append(specs, spec)
	}
	plan := NewPlan(specs...)
	require.Equal(t, 6, plan.NumOutputs())
	// count, stats(4), distinct count, list, stats(3)
	require.Equal(t, 5, len(plan.factories))

	c := plan.Create()
	feed(t, c, students...)
	require.Equal(t, []string{"4", "13", "4", "2", "JohnMaryJeanPaul", "1.75"}, plan.Results(c))
}
