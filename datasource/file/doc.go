// Package file provides RowIterators which read tables from files on disk or from stdin.
// The parser is picked by format: delimited text (tsv) or JSON lines (jsonl).
package file
