package accumulators

import (
	"math"
	"strconv"
	"strings"

	"github.com/mgijax/tabletools"
	"github.com/mgijax/tabletools/errors"
)

// Statistics field names, as used in aggregation specifiers
const (
	FuncSum   = "sum"
	FuncSumSq = "sumsq"
	FuncMin   = "min"
	FuncMax   = "max"
	FuncMean  = "mean"
	FuncAvg   = "avg"
	FuncVar   = "var"
	FuncSD    = "sd"
)

// IsStatistic returns true iff name is one of the Statistics fields
func IsStatistic(name string) bool {
	switch name {
	case FuncSum, FuncSumSq, FuncMin, FuncMax, FuncMean, FuncAvg, FuncVar, FuncSD:
		return true
	}
	return false
}

// Statisticker returns a factory for Statistics Accumulators over column col
func Statisticker(col int) tabletools.AccumulatorFactory {
	return func() tabletools.Accumulator {
		return &Statistics{col: col}
	}
}

// Statistics computes summary statistics over a numeric column. A single Statistics
// Accumulator serves every statistical aggregate of its column.
type Statistics struct {
	col   int
	n     int
	sum   float64
	sumsq float64
	min   float64
	max   float64
}

// Accumulate adds a row to this Accumulator
func (a *Statistics) Accumulate(row tabletools.Row) error {
	v, err := row.Col(a.col)
	if err != nil {
		return err
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil {
		return errors.NotNumericError{Value: v, Column: a.col, Line: row.Num()}
	}
	if a.n == 0 {
		a.min, a.max = f, f
	} else {
		a.min = math.Min(a.min, f)
		a.max = math.Max(a.max, f)
	}
	a.n++
	a.sum += f
	a.sumsq += f * f
	return nil
}

// GetMean returns the mean of the values seen, or 0 if there were none
func (a *Statistics) GetMean() float64 {
	if a.n == 0 {
		return 0
	}
	return a.sum / float64(a.n)
}

// GetVariance returns the sample variance of the values seen, or 0 for fewer than two values
func (a *Statistics) GetVariance() float64 {
	if a.n < 2 || a.min == a.max {
		return 0
	}
	n := float64(a.n)
	v := (n*a.sumsq - a.sum*a.sum) / (n * (n - 1))
	if v < 0 {
		return 0
	}
	return v
}

// Field returns a single statistic as a float
func (a *Statistics) Field(name string) (float64, error) {
	switch name {
	case FuncSum:
		return a.sum, nil
	case FuncSumSq:
		return a.sumsq, nil
	case FuncMin:
		return a.min, nil
	case FuncMax:
		return a.max, nil
	case FuncMean, FuncAvg:
		return a.GetMean(), nil
	case FuncVar:
		return a.GetVariance(), nil
	case FuncSD:
		return math.Sqrt(a.GetVariance()), nil
	}
	return 0, errors.UnknownAggregateError{Name: name}
}

// ResultOf returns a single statistic formatted as a table cell
func (a *Statistics) ResultOf(name string) string {
	f, err := a.Field(name)
	if err != nil {
		return ""
	}
	return tabletools.FormatFloat(f)
}

// Result returns the number of values seen
func (a *Statistics) Result() string {
	return strconv.Itoa(a.n)
}
