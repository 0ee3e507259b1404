package operations

import (
	"context"
	"fmt"
	"strings"

	"github.com/mgijax/tabletools"
	"github.com/mgijax/tabletools/output"
)

// PartitionOptions configures a Partition tool
type PartitionOptions struct {
	IOOptions
	Column  int    // Partition column. 0 routes every row to Pattern.
	Pattern string // Output file name; %s is replaced by the partition value. Defaults to "-" (stdout).
}

// Partition routes the rows of a table to output files named after a column value
type Partition struct {
	*tool
	column  int
	pattern string
	outputs map[string]output.Writer
}

// NewPartition creates a Partition tool
func NewPartition(ctx context.Context, opts *PartitionOptions) (*Partition, error) {
	pattern := opts.Pattern
	if pattern == "" {
		pattern = "-"
	}
	if opts.Column == 0 && strings.Contains(pattern, "%s") {
		return nil, fmt.Errorf("output pattern %q requires a partition column", pattern)
	}
	t, err := newTool(ctx, toolConf{name: "tp", ninputs: 1, noDefaultOut: true}, &opts.IOOptions)
	if err != nil {
		return nil, err
	}
	return &Partition{tool: t, column: opts.Column, pattern: pattern, outputs: make(map[string]output.Writer)}, nil
}

// writerFor returns the output for a file name, opening it on first use
func (p *Partition) writerFor(name string) (output.Writer, error) {
	if w, ok := p.outputs[name]; ok {
		return w, nil
	}
	w, err := p.createWriter(name)
	if err != nil {
		return nil, err
	}
	p.log.WithField("file", w.Name()).Debug("opened partition")
	p.outputs[name] = w
	return w, nil
}

// Run performs the partitioning
func (p *Partition) Run(ctx context.Context) error {
	return p.finish(p.forEach(ctx, 0, func(row tabletools.Row) error {
		name := p.pattern
		if p.column > 0 {
			val, err := row.Col(p.column)
			if err != nil {
				return err
			}
			name = strings.ReplaceAll(p.pattern, "%s", val)
		}
		w, err := p.writerFor(name)
		if err != nil {
			return err
		}
		return p.emit(w, row)
	}))
}
