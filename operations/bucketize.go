package operations

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/mgijax/tabletools"
	"github.com/mgijax/tabletools/internal/graph"
	"github.com/mgijax/tabletools/operations/transform"
	"github.com/mgijax/tabletools/output"
	log "github.com/sirupsen/logrus"
)

// BucketizeOptions configures a Bucketize tool
type BucketizeOptions struct {
	KeyOptions
	OutputDir string // Directory of the bucket files
	Template  string // Bucket file name; %s is replaced by the bucket id. Empty writes stdout.
}

// Bucketize reads a table of associations between first IDs (K1) and second IDs (K2),
// finds the connected components of the bipartite association graph, and labels every
// row with its component id, member counts and bucket id.
type Bucketize struct {
	*tool
	k1, k2  []int
	null    string
	outputs map[string]output.Writer
}

// NewBucketize creates a Bucketize tool
func NewBucketize(ctx context.Context, opts *BucketizeOptions) (*Bucketize, error) {
	if err := keyArity(opts.K1, opts.K2); err != nil {
		return nil, err
	}
	t, err := newTool(ctx, toolConf{name: "tb", ninputs: 1, noDefaultOut: true}, &opts.IOOptions)
	if err != nil {
		return nil, err
	}
	b := &Bucketize{tool: t, k1: opts.K1, k2: opts.K2, null: opts.NullString, outputs: make(map[string]output.Writer)}
	if err := b.openOutputs(opts.OutputDir, opts.Template); err != nil {
		t.Close()
		return nil, err
	}
	return b, nil
}

// openOutputs maps every bucket id to a writer
func (b *Bucketize) openOutputs(dir, template string) error {
	if template == "" {
		w, err := b.createWriter("-")
		if err != nil {
			return err
		}
		for _, bid := range graph.Buckets {
			b.outputs[bid] = w
		}
		return nil
	}
	var single output.Writer
	for _, bid := range graph.Buckets {
		if !strings.Contains(template, "%s") {
			if single == nil {
				w, err := b.createWriter(filepath.Join(dir, template))
				if err != nil {
					return err
				}
				single = w
			}
			b.outputs[bid] = single
			continue
		}
		w, err := b.createWriter(filepath.Join(dir, strings.ReplaceAll(template, "%s", bid)))
		if err != nil {
			return err
		}
		b.outputs[bid] = w
	}
	return nil
}

type association struct {
	row  tabletools.Row
	a, b *graph.Node
}

func optionalNode(side graph.Side, key []string) *graph.Node {
	if key == nil {
		return nil
	}
	n := graph.NewNode(side, key)
	return &n
}

// Run performs the bucketizing
func (b *Bucketize) Run(ctx context.Context) error {
	return b.finish(b.run(ctx))
}

func (b *Bucketize) run(ctx context.Context) error {
	keyA := transform.KeyByNullable(b.k1, b.null)
	keyB := transform.KeyByNullable(b.k2, b.null)
	g := graph.New()
	var assocs []association

	b.stats.StartPhase("load")
	err := b.forEach(ctx, 0, func(row tabletools.Row) error {
		ka, err := keyA(row)
		if err != nil {
			return err
		}
		kb, err := keyB(row)
		if err != nil {
			return err
		}
		if ka == nil && kb == nil {
			b.log.WithFields(log.Fields{
				"file": b.inputs[0].FileName(),
				"line": b.inputs[0].LineNum(),
			}).Warn("both ids are null, skipping row")
			return nil
		}
		as := association{row: row, a: optionalNode(graph.SideA, ka), b: optionalNode(graph.SideB, kb)}
		g.Add(as.a, as.b)
		assocs = append(assocs, as)
		return nil
	})
	if err != nil {
		return err
	}

	b.stats.StartPhase("components")
	comps := g.Components()
	b.log.WithFields(log.Fields{"nodes": g.Len(), "rows": len(assocs)}).Debug("found components")

	b.stats.StartPhase("output")
	for _, as := range assocs {
		if err := ctx.Err(); err != nil {
			return err
		}
		node := as.a
		if node == nil {
			node = as.b
		}
		c := comps[*node]
		bid := c.BucketID()
		cols := append([]string{itoa(c.ID), c.Bucket(), bid}, as.row.Data()...)
		if err := b.emit(b.outputs[bid], tabletools.NewRow(as.row.Num(), cols...)); err != nil {
			return err
		}
	}
	return nil
}
