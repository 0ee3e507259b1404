// Package tabletools contains the core components of tabletools, a set of command-line
// operators for tabular data stored in delimited text files. This root package defines
// the types shared by every operator (Rows, RowIterators, Accumulators and operation
// functions), and is an excellent overview of the toolkit's key concepts.
//
// Every operator reads one or two tables and writes one table (or, for the partitioning
// operators, several). Rows are streamed where the operation allows it, and each output
// row can be filtered and reshaped by caller-supplied expressions (see package expr).
package tabletools
