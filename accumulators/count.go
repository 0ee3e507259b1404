package accumulators

import (
	"strconv"

	"github.com/mgijax/tabletools"
)

// Counter returns a new Count Accumulator
func Counter() tabletools.Accumulator {
	return new(Count)
}

// Count counts records
type Count struct {
	count uint64
}

// Accumulate adds a row to this Accumulator
func (a *Count) Accumulate(row tabletools.Row) error {
	a.count++
	return nil
}

// Result returns the row count
func (a *Count) Result() string {
	return strconv.FormatUint(a.count, 10)
}

// DistinctCounter returns a factory for DistinctCount Accumulators over column col
func DistinctCounter(col int) tabletools.AccumulatorFactory {
	return func() tabletools.Accumulator {
		return &DistinctCount{col: col, values: make(map[string]struct{})}
	}
}

// DistinctCount counts the distinct values of a column
type DistinctCount struct {
	col    int
	values map[string]struct{}
}

// Accumulate adds a row to this Accumulator
func (a *DistinctCount) Accumulate(row tabletools.Row) error {
	v, err := row.Col(a.col)
	if err != nil {
		return err
	}
	a.values[v] = struct{}{}
	return nil
}

// Result returns the number of distinct values seen
func (a *DistinctCount) Result() string {
	return strconv.Itoa(len(a.values))
}
