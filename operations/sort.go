package operations

import (
	"context"
	"sort"

	"github.com/mgijax/tabletools"
	"github.com/mgijax/tabletools/operations/transform"
)

// SortOptions configures a Sort tool
type SortOptions struct {
	IOOptions
	Keys []transform.SortKey // Sort keys, most significant first
}

// Sort loads a table into memory and writes it back out in key order. The sort is stable.
type Sort struct {
	*tool
	keys []transform.SortKey
}

// NewSort creates a Sort tool
func NewSort(ctx context.Context, opts *SortOptions) (*Sort, error) {
	t, err := newTool(ctx, toolConf{name: "ts", ninputs: 1}, &opts.IOOptions)
	if err != nil {
		return nil, err
	}
	return &Sort{tool: t, keys: opts.Keys}, nil
}

// Run performs the sort
func (s *Sort) Run(ctx context.Context) error {
	return s.finish(s.run(ctx))
}

func (s *Sort) run(ctx context.Context) error {
	var rows []tabletools.Row
	s.stats.StartPhase("load")
	if err := s.forEach(ctx, 0, func(row tabletools.Row) error {
		rows = append(rows, row)
		return nil
	}); err != nil {
		return err
	}

	s.stats.StartPhase("sort")
	var cmpErr error
	sort.SliceStable(rows, func(i, j int) bool {
		if cmpErr != nil {
			return false
		}
		c, err := transform.CompareAll(s.keys, rows[i], rows[j])
		if err != nil {
			cmpErr = err
			return false
		}
		return c < 0
	})
	if cmpErr != nil {
		return cmpErr
	}

	s.stats.StartPhase("output")
	for _, row := range rows {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := s.emit(s.out, row); err != nil {
			return err
		}
	}
	return nil
}
