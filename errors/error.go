package errors

import (
	"fmt"
)

// ColumnIndexError occurs when a column number does not exist in a Row
type ColumnIndexError struct {
	Column int
	Width  int
	Line   int
}

// Error returns a textual representation of this ColumnIndexError
func (e ColumnIndexError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("column %d does not exist in line %d (row has %d columns)", e.Column, e.Line, e.Width)
	}
	return fmt.Sprintf("column %d does not exist (row has %d columns)", e.Column, e.Width)
}

// KeyArityError occurs when two key column lists which must be compared have different lengths
type KeyArityError struct {
	Left  int
	Right int
}

// Error returns a textual representation of this KeyArityError
func (e KeyArityError) Error() string {
	return fmt.Sprintf("same number of key columns must be specified for both tables (got %d and %d)", e.Left, e.Right)
}

// UnknownAggregateError occurs when an aggregation specifier names an unsupported function
type UnknownAggregateError struct{ Name string }

// Error returns a textual representation of this UnknownAggregateError
func (e UnknownAggregateError) Error() string {
	return fmt.Sprintf("unknown aggregation function %q", e.Name)
}

// NotNumericError occurs when a statistical aggregation encounters a value which is not a number
type NotNumericError struct {
	Value  string
	Column int
	Line   int
}

// Error returns a textual representation of this NotNumericError
func (e NotNumericError) Error() string {
	return fmt.Sprintf("value %q in column %d (row %d) is not a number", e.Value, e.Column, e.Line)
}

// ExpandSyntaxError occurs when a list-valued column does not carry the expected prefix or suffix
type ExpandSyntaxError struct {
	Value  string
	Prefix string
	Suffix string
}

// Error returns a textual representation of this ExpandSyntaxError
func (e ExpandSyntaxError) Error() string {
	return fmt.Sprintf("value %q is not a list of the form %s...%s", e.Value, e.Prefix, e.Suffix)
}

// UnrecognizedFormatError occurs when a file or output format name is not supported
type UnrecognizedFormatError struct{ Format string }

// Error returns a textual representation of this UnrecognizedFormatError
func (e UnrecognizedFormatError) Error() string {
	return fmt.Sprintf("unrecognized format %q", e.Format)
}

// UnresolvableError occurs when a configuration parameter cannot be resolved, usually because
// of a reference cycle
type UnresolvableError struct{ Name string }

// Error returns a textual representation of this UnresolvableError
func (e UnresolvableError) Error() string {
	return fmt.Sprintf("could not resolve parameter %s", e.Name)
}

// MissingKeyError occurs when a configuration lookup names a parameter which is not defined
type MissingKeyError struct{ Names []string }

// Error returns a textual representation of this MissingKeyError
func (e MissingKeyError) Error() string {
	return fmt.Sprintf("unknown configuration options: %v", e.Names)
}
