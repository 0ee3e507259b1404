package tabletools

// RowIterator streams the Rows of a table. Implementations assign row numbers as they
// go, so Row[0] of the n-th Row returned is always n.
type RowIterator interface {
	Next() (Row, error) // Next returns the next Row, or io.EOF when there are none left
	NCols() int         // NCols returns the table width, fixed by the first Row read (0 before that)
	LineNum() int       // LineNum returns the number of input lines consumed so far, including skipped ones
	FileName() string   // FileName returns the name of the underlying file, or a placeholder such as <stdin>
	FileSize() int64    // FileSize returns the size in bytes of the underlying file, or -1 if it is unknown
	Close() error       // Close releases the underlying stream
}
