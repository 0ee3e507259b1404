package operations

import (
	"context"
	stderrors "errors"
	"fmt"

	"github.com/mgijax/tabletools"
	"github.com/mgijax/tabletools/errors"
	"github.com/mgijax/tabletools/operations/transform"
	log "github.com/sirupsen/logrus"
)

// What Expand does with a row whose list column is malformed
const (
	OnErrorFail = "fail" // abort the run
	OnErrorSkip = "skip" // drop the row with a warning
	OnErrorKeep = "keep" // pass the row through unexpanded, with a warning
)

// ExpandOptions configures an Expand tool
type ExpandOptions struct {
	IOOptions
	Specs   []transform.ExpandSpec // List-valued columns to expand in parallel
	OnError string                 // fail (default), skip or keep
}

// Expand turns each row with list-valued columns into one row per list element
type Expand struct {
	*tool
	expand  tabletools.FlatMapOperation
	onError string
}

// NewExpand creates an Expand tool
func NewExpand(ctx context.Context, opts *ExpandOptions) (*Expand, error) {
	onError := opts.OnError
	switch onError {
	case "":
		onError = OnErrorFail
	case OnErrorFail, OnErrorSkip, OnErrorKeep:
	default:
		return nil, fmt.Errorf("invalid --on-error value %q (expected fail, skip or keep)", onError)
	}
	t, err := newTool(ctx, toolConf{name: "tx", ninputs: 1}, &opts.IOOptions)
	if err != nil {
		return nil, err
	}
	return &Expand{tool: t, expand: transform.Expand(opts.Specs), onError: onError}, nil
}

// Run performs the expansion
func (x *Expand) Run(ctx context.Context) error {
	return x.finish(x.forEach(ctx, 0, func(row tabletools.Row) error {
		rows, err := x.expand(row)
		var syntaxErr errors.ExpandSyntaxError
		if err != nil && x.onError != OnErrorFail && stderrors.As(err, &syntaxErr) {
			x.log.WithFields(log.Fields{
				"file": x.inputs[0].FileName(),
				"line": x.inputs[0].LineNum(),
			}).Warn(syntaxErr.Error())
			if x.onError == OnErrorSkip {
				return nil
			}
			rows, err = []tabletools.Row{row}, nil
		}
		if err != nil {
			return err
		}
		for _, r := range rows {
			if err := x.emit(x.out, r); err != nil {
				return err
			}
		}
		return nil
	}))
}
