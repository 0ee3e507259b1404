package operations

import (
	"context"

	"github.com/mgijax/tabletools"
	"github.com/mgijax/tabletools/accumulators"
	"github.com/mgijax/tabletools/internal/keyindex"
	iutil "github.com/mgijax/tabletools/internal/util"
	"github.com/mgijax/tabletools/operations/transform"
)

// AggregateOptions configures an Aggregate tool
type AggregateOptions struct {
	IOOptions
	GroupBy    []string // Group-by column lists; any run of non-digits separates columns
	Aggregates []string // Aggregation specifiers, FCN[:COL[:XTRA]]
}

// Aggregate groups the rows of a table by the group-by columns and summarizes each group
// with accumulators. Each group produces the row [group#, group values..., aggregates...],
// in order of first appearance.
type Aggregate struct {
	*tool
	groupBy []int
	plan    *accumulators.Plan
	nspecs  int
}

// NewAggregate creates an Aggregate tool
func NewAggregate(ctx context.Context, opts *AggregateOptions) (*Aggregate, error) {
	a := &Aggregate{groupBy: iutil.ParseDigitRuns(opts.GroupBy)}
	var specs []accumulators.Spec
	for _, s := range opts.Aggregates {
		spec, err := accumulators.ParseSpec(s)
		if err != nil {
			return nil, err
		}
		specs = append(specs, spec)
	}
	a.plan = accumulators.NewPlan(specs...)
	a.nspecs = len(specs)
	t, err := newTool(ctx, toolConf{name: "ta", ninputs: 1}, &opts.IOOptions)
	if err != nil {
		return nil, err
	}
	a.tool = t
	return a, nil
}

// Run performs the aggregation
func (a *Aggregate) Run(ctx context.Context) error {
	return a.finish(a.run(ctx))
}

func (a *Aggregate) run(ctx context.Context) error {
	// with neither groups nor aggregates there is nothing to output
	if len(a.groupBy) == 0 && a.nspecs == 0 {
		return a.forEach(ctx, 0, func(tabletools.Row) error { return nil })
	}
	keyfn := transform.KeyBy(a.groupBy)
	parts := keyindex.New[*accumulators.Composed]()
	a.stats.StartPhase("accumulate")
	err := a.forEach(ctx, 0, func(row tabletools.Row) error {
		key, err := keyfn(row)
		if err != nil {
			return err
		}
		acc, _ := parts.GetOrCreate(key, a.plan.Create)
		return (*acc).Accumulate(row)
	})
	if err != nil {
		return err
	}
	a.stats.StartPhase("output")
	n := 0
	return parts.ForEach(func(key []string, acc *accumulators.Composed) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		n++
		cols := append(append([]string{}, key...), a.plan.Results(acc)...)
		return a.emit(a.out, tabletools.NewRow(n, cols...))
	})
}
