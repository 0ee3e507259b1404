package tabletools

// FilterOperation - A generic function for determining whether or not a Row should be retained
type FilterOperation func(row Row) (bool, error)

// KeyingOperation - A generic function for extracting a key from a Row
type KeyingOperation func(row Row) ([]string, error)

// FlatMapOperation - A generic function for turning a Row into zero or more Rows
type FlatMapOperation func(row Row) ([]Row, error)

// GeneratorOperation - A generic function which extends an output Row with columns computed from
// one or two input Rows. ok is false when the inputs were filtered out.
type GeneratorOperation func(out Row, in ...Row) (result Row, ok bool, err error)
