package tabletools

// An Accumulator folds a sequence of Rows into a single summary value. TAggregate creates
// one set of Accumulators for every group-by partition of its input, and feeds each
// Accumulator the Rows of its partition in input order.
type Accumulator interface {
	Accumulate(row Row) error // Accumulate adds a row to this Accumulator
	Result() string           // Result returns the summary value, formatted as a table cell
}

// AccumulatorFactory is a function that produces a fresh Accumulator
type AccumulatorFactory func() Accumulator
