package util

import (
	"fmt"
	"strings"

	"github.com/mgijax/tabletools"
)

func rowsToString(rows []tabletools.Row) string {
	parts := make([]string, len(rows))
	for i, r := range rows {
		parts[i] = r.ToString()
	}
	return strings.Join(parts, "\n     ")
}

// SafeFilterOperation wraps a FilterOperation such that panics are recovered and nice error messages are constructed
func SafeFilterOperation(filterOp tabletools.FilterOperation) (safeFilterOp tabletools.FilterOperation) {
	return func(row tabletools.Row) (keep bool, err error) {
		defer func() {
			if r := recover(); r != nil {
				if anErr, ok := r.(error); ok {
					err = fmt.Errorf("Filter Panic: %w\nRow: %s\n%s", anErr, row.ToString(), GetTrace())
				} else {
					err = fmt.Errorf("Filter Panic: %v\nRow: %s\n%s", r, row.ToString(), GetTrace())
				}
			} else if err != nil {
				err = fmt.Errorf("Filter Error: %w\nRow: %s", err, row.ToString())
			}
		}()
		keep, err = filterOp(row)
		return
	}
}

// SafeFlatMapOperation wraps a FlatMapOperation such that panics are recovered and nice error messages are constructed
func SafeFlatMapOperation(flatMapOp tabletools.FlatMapOperation) (safeFlatMapOp tabletools.FlatMapOperation) {
	return func(row tabletools.Row) (result []tabletools.Row, err error) {
		defer func() {
			if r := recover(); r != nil {
				if anErr, ok := r.(error); ok {
					err = fmt.Errorf("FlatMap Panic: %w\nRow: %s\n%s", anErr, row.ToString(), GetTrace())
				} else {
					err = fmt.Errorf("FlatMap Panic: %v\nRow: %s\n%s", r, row.ToString(), GetTrace())
				}
			} else if err != nil {
				err = fmt.Errorf("FlatMap Error: %w\nRow: %s", err, row.ToString())
			}
		}()
		result, err = flatMapOp(row)
		return
	}
}

// SafeKeyingOperation wraps a KeyingOperation such that panics are recovered and nice error messages are constructed
func SafeKeyingOperation(keyingOp tabletools.KeyingOperation) (safeKeyingOp tabletools.KeyingOperation) {
	return func(row tabletools.Row) (key []string, err error) {
		defer func() {
			if r := recover(); r != nil {
				if anErr, ok := r.(error); ok {
					err = fmt.Errorf("Keying Panic: %w\nRow: %s\n%s", anErr, row.ToString(), GetTrace())
				} else {
					err = fmt.Errorf("Keying Panic: %v\nRow: %s\n%s", r, row.ToString(), GetTrace())
				}
			} else if err != nil {
				err = fmt.Errorf("Keying Error: %w\nRow: %s", err, row.ToString())
			}
		}()
		key, err = keyingOp(row)
		return
	}
}

// SafeGeneratorOperation wraps a GeneratorOperation such that panics are recovered and nice error messages are
// constructed. The expression text is included in the message, since generators are built from user input.
func SafeGeneratorOperation(source string, genOp tabletools.GeneratorOperation) (safeGenOp tabletools.GeneratorOperation) {
	return func(out tabletools.Row, in ...tabletools.Row) (result tabletools.Row, ok bool, err error) {
		defer func() {
			if r := recover(); r != nil {
				if anErr, ok := r.(error); ok {
					err = fmt.Errorf("Expression Panic: %w\nExpression: %s\nRow: %s\n%s", anErr, source, rowsToString(in), GetTrace())
				} else {
					err = fmt.Errorf("Expression Panic: %v\nExpression: %s\nRow: %s\n%s", r, source, rowsToString(in), GetTrace())
				}
			} else if err != nil {
				err = fmt.Errorf("Expression Error: %w\nExpression: %s\nRow: %s", err, source, rowsToString(in))
			}
		}()
		result, ok, err = genOp(out, in...)
		return
	}
}
