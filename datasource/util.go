package datasource

import (
	"io"
	"os"

	"github.com/mgijax/tabletools/internal/compress"
)

// StdinName is the name reported for tables read from standard input
const StdinName = "<stdin>"

// IsStdin returns true iff name designates standard input
func IsStdin(name string) bool {
	return name == "" || name == "-"
}

// Open opens a table for reading. An empty name or "-" designates stdin. Files ending in
// .lz4, .zst or .gz are decompressed transparently. The returned size is the size of the
// file on disk, or -1 for stdin.
func Open(name string, stdin io.Reader) (r io.ReadCloser, size int64, err error) {
	if IsStdin(name) {
		if stdin == nil {
			stdin = os.Stdin
		}
		return io.NopCloser(stdin), -1, nil
	}
	f, err := os.Open(name)
	if err != nil {
		return nil, 0, err
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, 0, err
	}
	rc, err := compress.NewReader(f, compress.ForFile(name))
	if err != nil {
		f.Close()
		return nil, 0, err
	}
	return rc, info.Size(), nil
}
