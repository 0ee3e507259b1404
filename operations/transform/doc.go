// Package transform provides the row-level building blocks of the table tools: key
// extraction, key-set membership filters, list expansion and sort orders. Every operation
// returned by this package recovers from panics and annotates errors with the offending row.
package transform
