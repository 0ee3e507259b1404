package operations

import (
	"context"

	"github.com/mgijax/tabletools"
)

// Filter applies the expressions to every row of a table
type Filter struct {
	*tool
}

// NewFilter creates a Filter tool
func NewFilter(ctx context.Context, opts *IOOptions) (*Filter, error) {
	t, err := newTool(ctx, toolConf{name: "tf", ninputs: 1}, opts)
	if err != nil {
		return nil, err
	}
	return &Filter{tool: t}, nil
}

// Run performs the filtering
func (f *Filter) Run(ctx context.Context) error {
	return f.finish(f.forEach(ctx, 0, func(row tabletools.Row) error {
		return f.emit(f.out, row)
	}))
}
