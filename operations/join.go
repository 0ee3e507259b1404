package operations

import (
	"context"

	"github.com/mgijax/tabletools"
	"github.com/mgijax/tabletools/internal/keyindex"
	"github.com/mgijax/tabletools/operations/transform"
	log "github.com/sirupsen/logrus"
)

// JoinOptions configures a Join tool
type JoinOptions struct {
	KeyOptions
	LeftOuter  bool // Also output rows of T1 with no match in T2
	RightOuter bool // Also output rows of T2 with no match in T1
}

// Join performs a hashed equality join of two tables. The smaller table, by file size,
// is loaded into memory (the inner table) and the other one streamed past it.
type Join struct {
	*tool
	null string

	swapped  bool
	outerIdx int
	innerIdx int
	outerKey []int
	innerKey []int

	keepOuter bool // emit unmatched rows of the streamed table
	keepInner bool // emit unmatched rows of the loaded table

	innerRows  []tabletools.Row
	innerIndex *keyindex.Index[[]int]
	matched    []bool
}

// NewJoin creates a Join tool. When both inputs are stdin, the table is joined with itself.
func NewJoin(ctx context.Context, opts *JoinOptions) (*Join, error) {
	if err := keyArity(opts.K1, opts.K2); err != nil {
		return nil, err
	}
	t, err := newTool(ctx, toolConf{name: "tj", ninputs: 2, sharedStdin: true}, &opts.IOOptions)
	if err != nil {
		return nil, err
	}
	j := &Join{
		tool:       t,
		null:       opts.NullString,
		outerIdx:   0,
		innerIdx:   1,
		outerKey:   opts.K1,
		innerKey:   opts.K2,
		keepOuter:  opts.LeftOuter,
		keepInner:  opts.RightOuter,
		innerIndex: keyindex.New[[]int](),
	}
	if t.selfJoin {
		j.innerIdx = 0
		return j, nil
	}
	s1, s2 := t.inputs[0].FileSize(), t.inputs[1].FileSize()
	if s1 >= 0 && (s2 < 0 || s1 < s2) {
		j.swapped = true
		j.outerIdx, j.innerIdx = 1, 0
		j.outerKey, j.innerKey = opts.K2, opts.K1
		j.keepOuter, j.keepInner = opts.RightOuter, opts.LeftOuter
		t.log.WithFields(log.Fields{"t1_size": s1, "t2_size": s2}).
			Info("T1 is smaller than T2, loading T1 as the inner table")
	}
	return j, nil
}

// Run performs the join
func (j *Join) Run(ctx context.Context) error {
	return j.finish(j.run(ctx))
}

// pair orders an outer and an inner row as (T1, T2)
func (j *Join) pair(outer, inner tabletools.Row) (tabletools.Row, tabletools.Row) {
	if j.swapped {
		return inner, outer
	}
	return outer, inner
}

func (j *Join) load(ctx context.Context) error {
	keyfn := transform.KeyBy(j.innerKey)
	return j.forEach(ctx, j.innerIdx, func(row tabletools.Row) error {
		key, err := keyfn(row)
		if err != nil {
			return err
		}
		pos := len(j.innerRows)
		j.innerRows = append(j.innerRows, row)
		list, _ := j.innerIndex.GetOrCreate(key, func() []int { return nil })
		*list = append(*list, pos)
		return nil
	})
}

// probe joins one outer row with every matching inner row
func (j *Join) probe(keyfn tabletools.KeyingOperation, innerWidth int, row tabletools.Row) error {
	key, err := keyfn(row)
	if err != nil {
		return err
	}
	positions, _ := j.innerIndex.Get(key)
	if len(positions) == 0 {
		if j.keepOuter {
			return j.emitPair(row, tabletools.NullRow(innerWidth, j.null))
		}
		return nil
	}
	for _, pos := range positions {
		j.matched[pos] = true
		if err := j.emitPair(row, j.innerRows[pos]); err != nil {
			return err
		}
	}
	return nil
}

func (j *Join) emitPair(outer, inner tabletools.Row) error {
	t1, t2 := j.pair(outer, inner)
	return j.emit(j.out, t1, t2)
}

func (j *Join) run(ctx context.Context) error {
	j.stats.StartPhase("load")
	if err := j.load(ctx); err != nil {
		return err
	}
	j.matched = make([]bool, len(j.innerRows))
	innerWidth := j.ncols(j.innerIdx)

	j.stats.StartPhase("scan")
	keyfn := transform.KeyBy(j.outerKey)
	if j.selfJoin {
		for _, row := range j.innerRows {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := j.probe(keyfn, innerWidth, row); err != nil {
				return j.annotate(0, err)
			}
		}
	} else if err := j.forEach(ctx, j.outerIdx, func(row tabletools.Row) error {
		return j.probe(keyfn, innerWidth, row)
	}); err != nil {
		return err
	}

	if !j.keepInner {
		return nil
	}
	j.stats.StartPhase("outer")
	outerWidth := innerWidth
	if !j.selfJoin {
		outerWidth = j.ncols(j.outerIdx)
	}
	for pos, row := range j.innerRows {
		if j.matched[pos] {
			continue
		}
		if err := j.emitPair(tabletools.NullRow(outerWidth, j.null), row); err != nil {
			return err
		}
	}
	return nil
}
