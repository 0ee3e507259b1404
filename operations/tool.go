// Package operations implements the table tools. Each tool reads one or two tables, applies
// its relational operation, and passes every candidate output row through the caller's
// filter and generator expressions before writing it.
package operations

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/hashicorp/go-multierror"
	"github.com/mgijax/tabletools"
	"github.com/mgijax/tabletools/datasource"
	"github.com/mgijax/tabletools/datasource/file"
	"github.com/mgijax/tabletools/errors"
	"github.com/mgijax/tabletools/expr"
	"github.com/mgijax/tabletools/internal/stats"
	"github.com/mgijax/tabletools/output"
	log "github.com/sirupsen/logrus"
)

// Tool is a runnable table tool
type Tool interface {
	Run(ctx context.Context) error
}

// IOOptions configures the inputs, outputs and expressions shared by every tool
type IOOptions struct {
	File1      string   // Input table T1. Empty or "-" reads stdin.
	File2      string   // Input table T2 of binary tools. Empty or "-" reads stdin.
	Separator1 string   // Column separator of T1. Defaults to TAB.
	Separator2 string   // Column separator of T2. Defaults to TAB.
	Comment1   string   // Comment prefix of T1. Defaults to #.
	Comment2   string   // Comment prefix of T2. Defaults to #.
	Format1    string   // Format of T1: tsv (default) or jsonl
	Format2    string   // Format of T2: tsv (default) or jsonl
	Fields1    []string // gjson paths of T1's columns, for jsonl input
	Fields2    []string // gjson paths of T2's columns, for jsonl input
	OutFile    string   // Output file. Empty or "-" writes stdout.
	OutFormat  string   // Output format: tsv (default) or html
	HTML       output.HTMLOptions
	ExecFile   string   // Go source defining helpers for the expressions
	ExprFiles  []string // Files of expressions, evaluated before Exprs
	Exprs      []string // Filter and generator expressions
	NullString string   // Null value for outer joins and bucketizing

	Stdin  io.Reader  // Defaults to os.Stdin
	Stdout io.Writer  // Defaults to os.Stdout
	Logger *log.Entry // Defaults to the standard logrus logger
}

func (o *IOOptions) source(idx int) *file.Source {
	if idx == 0 {
		return &file.Source{Name: o.File1, Format: o.Format1, Separator: o.Separator1, Comment: o.Comment1, Fields: o.Fields1, Logger: o.Logger}
	}
	return &file.Source{Name: o.File2, Format: o.Format2, Separator: o.Separator2, Comment: o.Comment2, Fields: o.Fields2, Logger: o.Logger}
}

// toolConf describes the shape of a tool
type toolConf struct {
	name         string
	ninputs      int
	noDefaultOut bool // the tool manages its own outputs
	sharedStdin  bool // both inputs may name stdin, which is then read once
}

// tool holds the state common to every table tool
type tool struct {
	conf       toolConf
	opts       *IOOptions
	log        *log.Entry
	inputs     []tabletools.RowIterator
	selfJoin   bool
	out        output.Writer
	writers    []output.Writer
	prog       *expr.Program
	stats      stats.RunStatistics
	nOutput    int
	emptyInput tabletools.Row
}

func newTool(ctx context.Context, conf toolConf, opts *IOOptions) (result *tool, err error) {
	if opts.Logger == nil {
		opts.Logger = log.NewEntry(log.StandardLogger())
	}
	if opts.Stdin == nil {
		opts.Stdin = os.Stdin
	}
	if opts.Stdout == nil {
		opts.Stdout = os.Stdout
	}
	t := &tool{
		conf:       conf,
		opts:       opts,
		log:        opts.Logger.WithField("tool", conf.name),
		emptyInput: tabletools.Row{},
	}
	t.stats.Start(conf.ninputs)
	defer func() {
		if err != nil {
			t.Close()
		}
	}()

	if err = ctx.Err(); err != nil {
		return nil, err
	}
	if err = t.compile(); err != nil {
		return nil, err
	}

	for i := 0; i < conf.ninputs; i++ {
		src := opts.source(i)
		if i == 1 && datasource.IsStdin(opts.File1) && datasource.IsStdin(opts.File2) {
			if !conf.sharedStdin {
				return nil, fmt.Errorf("%s: T1 and T2 cannot both be read from stdin", conf.name)
			}
			t.selfJoin = true
			break
		}
		var it tabletools.RowIterator
		if it, err = src.Open(opts.Stdin); err != nil {
			return nil, err
		}
		t.inputs = append(t.inputs, it)
		t.stats.SetInputSize(i, it.FileSize())
	}

	if !conf.noDefaultOut {
		if t.out, err = t.createWriter(opts.OutFile); err != nil {
			return nil, err
		}
	}
	return t, nil
}

// compile loads the expression and exec files, then compiles every expression
func (t *tool) compile() error {
	var exprs []string
	for _, f := range t.opts.ExprFiles {
		fexprs, err := expr.LoadFile(f)
		if err != nil {
			return err
		}
		exprs = append(exprs, fexprs...)
	}
	exprs = append(exprs, t.opts.Exprs...)
	conf := expr.Options{Arity: 2}
	if t.conf.ninputs == 1 {
		conf.Arity = 1
	}
	if t.opts.ExecFile != "" {
		src, err := os.ReadFile(t.opts.ExecFile)
		if err != nil {
			return err
		}
		conf.ExecName, conf.ExecSrc = t.opts.ExecFile, string(src)
	}
	prog, err := expr.Compile(exprs, conf)
	if err != nil {
		return err
	}
	t.prog = prog
	return nil
}

// createWriter opens an output, which is closed along with the tool
func (t *tool) createWriter(name string) (output.Writer, error) {
	w, err := output.Create(name, output.Options{Format: t.opts.OutFormat, HTML: t.opts.HTML}, t.opts.Stdout)
	if err != nil {
		return nil, err
	}
	t.writers = append(t.writers, w)
	return w, nil
}

// next reads the next Row of input idx, returning io.EOF at the end
func (t *tool) next(ctx context.Context, idx int) (tabletools.Row, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	row, err := t.inputs[idx].Next()
	if err != nil {
		return nil, err
	}
	t.stats.RowRead(idx)
	return row, nil
}

// forEach calls fn for every remaining Row of input idx
func (t *tool) forEach(ctx context.Context, idx int, fn func(row tabletools.Row) error) error {
	for {
		row, err := t.next(ctx, idx)
		if err == io.EOF {
			return nil
		} else if err != nil {
			return err
		}
		if err := fn(row); err != nil {
			return t.annotate(idx, err)
		}
	}
}

// annotate adds the input position to an error
func (t *tool) annotate(idx int, err error) error {
	it := t.inputs[idx]
	return fmt.Errorf("%s, line %d: %w", it.FileName(), it.LineNum(), err)
}

// emit evaluates the expressions against in and writes the result to w. Only rows
// written to the main output advance the output row number.
func (t *tool) emit(w output.Writer, in ...tabletools.Row) error {
	out, ok, err := t.prog.Apply(t.nOutput+1, in...)
	if err != nil {
		return err
	}
	if !ok {
		t.stats.RowFiltered()
		return nil
	}
	if err := w.Write(out); err != nil {
		return err
	}
	if w == t.out {
		t.nOutput++
	}
	t.stats.RowWritten()
	return nil
}

// ncols returns the width of input idx
func (t *tool) ncols(idx int) int {
	return t.inputs[idx].NCols()
}

// finish closes the tool and logs statistics. It returns err, along with any error from closing.
func (t *tool) finish(err error) error {
	t.stats.Finish()
	if cerr := t.Close(); cerr != nil {
		err = multierror.Append(err, cerr).ErrorOrNil()
	}
	if err == nil {
		t.log.WithFields(t.stats.ToFields()).Debug("finished")
	}
	return err
}

// Close closes every input and output of the tool
func (t *tool) Close() error {
	var multierr *multierror.Error
	for _, it := range t.inputs {
		if err := it.Close(); err != nil {
			multierr = multierror.Append(multierr, err)
		}
	}
	for _, w := range t.writers {
		if err := w.Close(); err != nil {
			multierr = multierror.Append(multierr, fmt.Errorf("unable to close %s: %w", w.Name(), err))
		}
	}
	t.inputs, t.writers = nil, nil
	return multierr.ErrorOrNil()
}

func keyArity(k1, k2 []int) error {
	if len(k1) != len(k2) {
		return errors.KeyArityError{Left: len(k1), Right: len(k2)}
	}
	return nil
}

func itoa(i int) string {
	return strconv.Itoa(i)
}
