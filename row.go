package tabletools

import (
	"strconv"
	"strings"

	"github.com/mgijax/tabletools/errors"
)

// Row is a single row of a table. Element 0 holds the row number (1-based, assigned
// by the RowIterator which produced the Row), and elements 1..n hold the column values.
// Columns are therefore addressed exactly as they are on the command line: the leftmost
// column of a table is column 1.
type Row []string

// NewRow builds a Row with the given row number and column values
func NewRow(num int, cols ...string) Row {
	row := make(Row, 0, len(cols)+1)
	row = append(row, strconv.Itoa(num))
	return append(row, cols...)
}

// NullRow builds a Row of ncols columns in which every element, including the row
// number, is the null string. Outer joins pad missing sides with NullRows.
func NullRow(ncols int, null string) Row {
	row := make(Row, ncols+1)
	for i := range row {
		row[i] = null
	}
	return row
}

// Num returns the row number of this Row, or 0 if it does not have one
func (r Row) Num() int {
	if len(r) == 0 {
		return 0
	}
	n, err := strconv.Atoi(r[0])
	if err != nil {
		return 0
	}
	return n
}

// Width returns the number of data columns in this Row (excluding the row number)
func (r Row) Width() int {
	if len(r) == 0 {
		return 0
	}
	return len(r) - 1
}

// Col returns the value of column i
func (r Row) Col(i int) (string, error) {
	if i < 0 || i >= len(r) {
		return "", errors.ColumnIndexError{Column: i, Width: r.Width()}
	}
	return r[i], nil
}

// Key returns the values of the given columns, in order
func (r Row) Key(cols []int) ([]string, error) {
	key := make([]string, len(cols))
	for i, c := range cols {
		v, err := r.Col(c)
		if err != nil {
			return nil, err
		}
		key[i] = v
	}
	return key, nil
}

// Data returns the column values of this Row, without the row number
func (r Row) Data() []string {
	if len(r) == 0 {
		return nil
	}
	return r[1:]
}

// Clone returns a copy of this Row which shares no storage with the original
func (r Row) Clone() Row {
	c := make(Row, len(r))
	copy(c, r)
	return c
}

// ToString returns a string representation of this Row
func (r Row) ToString() string {
	return "[" + strings.Join(r, " | ") + "]"
}
