// Package expr compiles the filter and generator expressions passed to the table tools.
//
// Expressions are Go expressions, interpreted with https://github.com/traefik/yaegi. Unary tools
// bind IN (the current input row) and OUT (the output row built so far); binary tools bind IN1
// and IN2, with IN an alias of IN1. Element 0 of every row is its row number, so IN[1] is the
// first column. An expression prefixed with '?' is a filter and must be a bool; any other
// expression is a generator and appends its value(s) to OUT.
package expr
