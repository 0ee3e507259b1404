// Package compress picks a (de)compressor for a table file from its extension.
package compress

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/hashicorp/go-multierror"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4"
)

// Codec identifies a compression format
type Codec int

const (
	// None indicates an uncompressed file
	None Codec = iota
	// LZ4 indicates an lz4 frame
	LZ4
	// Zstd indicates a zstandard frame
	Zstd
	// Gzip indicates a gzip stream
	Gzip
)

// String returns the conventional file extension of this Codec, without the dot
func (c Codec) String() string {
	switch c {
	case LZ4:
		return "lz4"
	case Zstd:
		return "zst"
	case Gzip:
		return "gz"
	default:
		return "none"
	}
}

// ForFile returns the Codec implied by a file name's extension
func ForFile(name string) Codec {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".lz4":
		return LZ4
	case ".zst", ".zstd":
		return Zstd
	case ".gz":
		return Gzip
	default:
		return None
	}
}

// readCloser closes the decompressor and then the underlying file
type readCloser struct {
	io.Reader
	closers []func() error
}

func (rc *readCloser) Close() error {
	var multierr *multierror.Error
	for _, c := range rc.closers {
		if err := c(); err != nil {
			multierr = multierror.Append(multierr, err)
		}
	}
	return multierr.ErrorOrNil()
}

// NewReader wraps r in a decompressor for codec. Closing the result closes r.
func NewReader(r io.ReadCloser, codec Codec) (io.ReadCloser, error) {
	switch codec {
	case None:
		return r, nil
	case LZ4:
		return &readCloser{Reader: lz4.NewReader(r), closers: []func() error{r.Close}}, nil
	case Zstd:
		dec, err := zstd.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("unable to initialize zstd decompressor: %w", err)
		}
		return &readCloser{Reader: dec, closers: []func() error{
			func() error { dec.Close(); return nil },
			r.Close,
		}}, nil
	case Gzip:
		gz, err := gzip.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("unable to initialize gzip decompressor: %w", err)
		}
		return &readCloser{Reader: gz, closers: []func() error{gz.Close, r.Close}}, nil
	}
	return nil, fmt.Errorf("unsupported codec %d", codec)
}

// writeCloser flushes and closes the compressor and then the underlying file
type writeCloser struct {
	io.Writer
	closers []func() error
}

func (wc *writeCloser) Close() error {
	var multierr *multierror.Error
	for _, c := range wc.closers {
		if err := c(); err != nil {
			multierr = multierror.Append(multierr, err)
		}
	}
	return multierr.ErrorOrNil()
}

// NewWriter wraps w in a compressor for codec. Closing the result flushes the compressor and closes w.
func NewWriter(w io.WriteCloser, codec Codec) (io.WriteCloser, error) {
	switch codec {
	case None:
		return w, nil
	case LZ4:
		lw := lz4.NewWriter(w)
		return &writeCloser{Writer: lw, closers: []func() error{lw.Close, w.Close}}, nil
	case Zstd:
		enc, err := zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedFastest))
		if err != nil {
			return nil, fmt.Errorf("unable to initialize zstd compressor: %w", err)
		}
		return &writeCloser{Writer: enc, closers: []func() error{enc.Close, w.Close}}, nil
	case Gzip:
		gz := gzip.NewWriter(w)
		return &writeCloser{Writer: gz, closers: []func() error{gz.Close, w.Close}}, nil
	}
	return nil, fmt.Errorf("unsupported codec %d", codec)
}
