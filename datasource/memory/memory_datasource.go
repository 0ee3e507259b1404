// Package memory provides RowIterators over tables held in memory
package memory

import (
	"io"

	"github.com/mgijax/tabletools"
)

// Iterator is a RowIterator over an in-memory table
type Iterator struct {
	name  string
	data  [][]string
	idx   int
	ncols int
}

// CreateIterator is a factory for in-memory RowIterators. Rows are numbered from 1.
func CreateIterator(rows [][]string) *Iterator {
	return CreateNamedIterator("<memory>", rows)
}

// CreateNamedIterator is CreateIterator with a name for diagnostics
func CreateNamedIterator(name string, rows [][]string) *Iterator {
	return &Iterator{name: name, data: rows}
}

// Next returns the next Row, or io.EOF when there are none left
func (it *Iterator) Next() (tabletools.Row, error) {
	if it.idx >= len(it.data) {
		return nil, io.EOF
	}
	cols := it.data[it.idx]
	it.idx++
	if it.ncols == 0 {
		it.ncols = len(cols)
	}
	return tabletools.NewRow(it.idx, cols...), nil
}

// NCols returns the width of the first Row read
func (it *Iterator) NCols() int {
	return it.ncols
}

// LineNum returns the number of Rows read so far
func (it *Iterator) LineNum() int {
	return it.idx
}

// FileName returns the name of this table
func (it *Iterator) FileName() string {
	return it.name
}

// FileSize always returns -1
func (it *Iterator) FileSize() int64 {
	return -1
}

// Close discards the remaining Rows
func (it *Iterator) Close() error {
	it.idx = len(it.data)
	return nil
}
