package operations

import (
	"context"

	"github.com/mgijax/tabletools"
	"github.com/mgijax/tabletools/internal/keyindex"
	"github.com/mgijax/tabletools/operations/transform"
)

// SetOp selects the set operation of a SetOperation tool
type SetOp int

const (
	// Difference keeps rows of T1 whose key does not occur in T2
	Difference SetOp = iota
	// Intersection keeps rows of T1 whose key occurs in T2
	Intersection
	// Union keeps every row of T1, then rows of T2 whose key does not occur in T1
	Union
)

func (op SetOp) toolName() string {
	switch op {
	case Intersection:
		return "ti"
	case Union:
		return "tu"
	}
	return "td"
}

// KeyOptions configures the key columns of a binary tool
type KeyOptions struct {
	IOOptions
	K1 []int // Key columns of T1
	K2 []int // Key columns of T2
}

// SetOperation compares the key sets of two tables. Expressions see the selected row as
// IN1 and an empty row as IN2.
type SetOperation struct {
	*tool
	op     SetOp
	k1, k2 []int
}

// NewSetOperation creates a SetOperation tool
func NewSetOperation(ctx context.Context, op SetOp, opts *KeyOptions) (*SetOperation, error) {
	if err := keyArity(opts.K1, opts.K2); err != nil {
		return nil, err
	}
	t, err := newTool(ctx, toolConf{name: op.toolName(), ninputs: 2}, &opts.IOOptions)
	if err != nil {
		return nil, err
	}
	return &SetOperation{tool: t, op: op, k1: opts.K1, k2: opts.K2}, nil
}

// Run performs the set operation
func (s *SetOperation) Run(ctx context.Context) error {
	return s.finish(s.run(ctx))
}

// loadKeys reads every key of input idx
func (s *SetOperation) loadKeys(ctx context.Context, idx int, cols []int) (*keyindex.Index[struct{}], error) {
	keys := keyindex.New[struct{}]()
	keyfn := transform.KeyBy(cols)
	err := s.forEach(ctx, idx, func(row tabletools.Row) error {
		key, err := keyfn(row)
		if err != nil {
			return err
		}
		keys.Put(key, struct{}{})
		return nil
	})
	return keys, err
}

// scan emits the rows of input idx accepted by keep
func (s *SetOperation) scan(ctx context.Context, idx int, keep tabletools.FilterOperation, record *keyindex.Index[struct{}], cols []int) error {
	keyfn := transform.KeyBy(cols)
	return s.forEach(ctx, idx, func(row tabletools.Row) error {
		ok, err := keep(row)
		if err != nil || !ok {
			return err
		}
		if record != nil {
			key, err := keyfn(row)
			if err != nil {
				return err
			}
			record.Put(key, struct{}{})
		}
		return s.emit(s.out, row, s.emptyInput)
	})
}

func (s *SetOperation) run(ctx context.Context) error {
	switch s.op {
	case Union:
		seen := keyindex.New[struct{}]()
		s.stats.StartPhase("t1")
		all := transform.Filter(func(tabletools.Row) (bool, error) { return true, nil })
		if err := s.scan(ctx, 0, all, seen, s.k1); err != nil {
			return err
		}
		s.stats.StartPhase("t2")
		return s.scan(ctx, 1, transform.KeyNotIn(transform.KeyBy(s.k2), seen), nil, nil)
	default:
		s.stats.StartPhase("load")
		keys, err := s.loadKeys(ctx, 1, s.k2)
		if err != nil {
			return err
		}
		s.stats.StartPhase("scan")
		keep := transform.KeyNotIn(transform.KeyBy(s.k1), keys)
		if s.op == Intersection {
			keep = transform.KeyIn(transform.KeyBy(s.k1), keys)
		}
		return s.scan(ctx, 0, keep, nil, nil)
	}
}
