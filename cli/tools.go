package cli

import (
	iutil "github.com/mgijax/tabletools/internal/util"
	"github.com/mgijax/tabletools/operations"
	"github.com/mgijax/tabletools/operations/transform"
	"github.com/spf13/cobra"
)

const exprUsage = " [flags] [expression...]"

// addIOFlags registers the input, output and expression flags shared by every tool
func addIOFlags(cmd *cobra.Command, o *operations.IOOptions, ninputs int, defaultOut bool) {
	f := cmd.Flags()
	f.StringVarP(&o.File1, "file1", "1", "", "Input table `FILE` (default: stdin)")
	f.StringVarP(&o.File1, "f1", "f", "", "Same as --file1")
	_ = f.MarkHidden("f1")
	f.StringVarP(&o.Separator1, "separator", "s", "", "Column separator `STR` (default: TAB)")
	f.StringVarP(&o.Comment1, "comment", "c", "", "Lines beginning with `STR` are skipped (default: #)")
	f.StringVar(&o.Format1, "format", "", "Input format: tsv or jsonl (default: tsv)")
	f.StringSliceVar(&o.Fields1, "fields", nil, "gjson `PATHS` of the columns of jsonl input")
	if ninputs == 2 {
		f.StringVarP(&o.File2, "file2", "2", "", "Table T2 `FILE` (default: stdin)")
		f.StringVarP(&o.Separator2, "separator2", "S", "", "Column separator `STR` of T2 (default: TAB)")
		f.StringVarP(&o.Comment2, "comment2", "C", "", "Comment prefix `STR` of T2 (default: #)")
		f.StringVar(&o.Format2, "format2", "", "Format of T2: tsv or jsonl (default: tsv)")
		f.StringSliceVar(&o.Fields2, "fields2", nil, "gjson `PATHS` of the columns of jsonl T2")
	}
	if defaultOut {
		f.StringVarP(&o.OutFile, "out-file", "o", "", "Output `FILE` (default: stdout)")
	}
	f.StringVar(&o.OutFormat, "out-format", "", "Output format: tsv or html (default: tsv)")
	f.StringVar(&o.HTML.Title, "html-title", "", "Caption of html output")
	f.StringSliceVar(&o.HTML.Heading, "html-heading", nil, "Column `HEADINGS` of html output")
	f.StringSliceVar(&o.HTML.Colors, "html-colors", nil, "Row background `COLORS` of html output, cycled (default: #ffffff)")
	f.StringVar(&o.ExecFile, "exec-file", "", "Go source `FILE` defining functions for the expressions")
	f.StringArrayVar(&o.ExprFiles, "expr-file", nil, "Load expressions from `FILE`, evaluated before command line expressions (repeatable)")
}

// bind completes o with the invocation's streams, logger and expressions
func (a *app) bind(cmd *cobra.Command, o *operations.IOOptions, args []string) {
	o.Exprs = append(o.Exprs, args...)
	o.Stdin = a.env.Stdin
	o.Stdout = a.env.Stdout
	o.Logger = a.log(cmd)
}

func addKeyFlags(cmd *cobra.Command, k1, k2 *[]string, what string) {
	cmd.Flags().StringArrayVar(k1, "k1", nil, "`COLUMNS` of T1 "+what+" (repeatable)")
	cmd.Flags().StringArrayVar(k2, "k2", nil, "`COLUMNS` of T2 "+what+" (repeatable)")
}

func parseKeys(o *operations.KeyOptions, k1, k2 []string) (err error) {
	if o.K1, err = iutil.ParseIntList(k1); err != nil {
		return err
	}
	o.K2, err = iutil.ParseIntList(k2)
	return err
}

func toolCommands(a *app) []*cobra.Command {
	return []*cobra.Command{
		newAggregateCommand(a),
		newBucketizeCommand(a),
		newSetOpCommand(a, "td", operations.Difference, "Rows of T1 whose key is not in T2"),
		newFilterCommand(a),
		newSetOpCommand(a, "ti", operations.Intersection, "Rows of T1 whose key is in T2"),
		newJoinCommand(a),
		newPartitionCommand(a),
		newSortCommand(a),
		newSetOpCommand(a, "tu", operations.Union, "Rows of T1, then rows of T2 whose key is not in T1"),
		newExpandCommand(a),
	}
}

func newAggregateCommand(a *app) *cobra.Command {
	opts := &operations.AggregateOptions{}
	cmd := &cobra.Command{
		Use:   "ta" + exprUsage,
		Short: "Group rows and compute aggregates",
		RunE: func(cmd *cobra.Command, args []string) error {
			a.bind(cmd, &opts.IOOptions, args)
			t, err := operations.NewAggregate(cmd.Context(), opts)
			if err != nil {
				return err
			}
			return t.Run(cmd.Context())
		},
	}
	addIOFlags(cmd, &opts.IOOptions, 1, true)
	cmd.Flags().StringArrayVarP(&opts.GroupBy, "group-by", "g", nil, "Group-by `COLUMNS` (repeatable)")
	cmd.Flags().StringArrayVarP(&opts.Aggregates, "aggregate", "a", nil,
		"Aggregation `FCN[:COL[:XTRA]]` (repeatable); FCN is one of count, list, first, last, sum, sumsq, min, max, mean, avg, var, sd")
	return cmd
}

func newBucketizeCommand(a *app) *cobra.Command {
	opts := &operations.BucketizeOptions{}
	var k1, k2 []string
	cmd := &cobra.Command{
		Use:   "tb" + exprUsage,
		Short: "Classify associations by the connected components of their bipartite graph",
		RunE: func(cmd *cobra.Command, args []string) error {
			a.bind(cmd, &opts.IOOptions, args)
			if err := parseKeys(&opts.KeyOptions, k1, k2); err != nil {
				return err
			}
			t, err := operations.NewBucketize(cmd.Context(), opts)
			if err != nil {
				return err
			}
			return t.Run(cmd.Context())
		},
	}
	addIOFlags(cmd, &opts.IOOptions, 1, false)
	cmd.Flags().StringArrayVar(&k1, "k1", nil, "`COLUMNS` of the first id (repeatable)")
	cmd.Flags().StringArrayVar(&k2, "k2", nil, "`COLUMNS` of the second id (repeatable)")
	cmd.Flags().StringVarP(&opts.NullString, "null-string", "n", "", "`STR` marking a null id")
	cmd.Flags().StringVarP(&opts.OutputDir, "output-dir", "o", "", "Output `DIR` (default: current directory)")
	cmd.Flags().StringVarP(&opts.Template, "template", "t", "", "Output file name `TMPL`; %s is replaced by the bucket id (default: stdout)")
	return cmd
}

func newSetOpCommand(a *app, name string, op operations.SetOp, short string) *cobra.Command {
	opts := &operations.KeyOptions{}
	var k1, k2 []string
	cmd := &cobra.Command{
		Use:   name + exprUsage,
		Short: short,
		RunE: func(cmd *cobra.Command, args []string) error {
			a.bind(cmd, &opts.IOOptions, args)
			if err := parseKeys(opts, k1, k2); err != nil {
				return err
			}
			t, err := operations.NewSetOperation(cmd.Context(), op, opts)
			if err != nil {
				return err
			}
			return t.Run(cmd.Context())
		},
	}
	addIOFlags(cmd, &opts.IOOptions, 2, true)
	addKeyFlags(cmd, &k1, &k2, "key")
	return cmd
}

func newFilterCommand(a *app) *cobra.Command {
	opts := &operations.IOOptions{}
	cmd := &cobra.Command{
		Use:   "tf" + exprUsage,
		Short: "Filter and transform rows with expressions",
		RunE: func(cmd *cobra.Command, args []string) error {
			a.bind(cmd, opts, args)
			t, err := operations.NewFilter(cmd.Context(), opts)
			if err != nil {
				return err
			}
			return t.Run(cmd.Context())
		},
	}
	addIOFlags(cmd, opts, 1, true)
	return cmd
}

func newJoinCommand(a *app) *cobra.Command {
	opts := &operations.JoinOptions{}
	var k1, k2 []string
	cmd := &cobra.Command{
		Use:   "tj" + exprUsage,
		Short: "Join two tables on equal keys",
		RunE: func(cmd *cobra.Command, args []string) error {
			a.bind(cmd, &opts.IOOptions, args)
			if err := parseKeys(&opts.KeyOptions, k1, k2); err != nil {
				return err
			}
			t, err := operations.NewJoin(cmd.Context(), opts)
			if err != nil {
				return err
			}
			return t.Run(cmd.Context())
		},
	}
	addIOFlags(cmd, &opts.IOOptions, 2, true)
	addKeyFlags(cmd, &k1, &k2, "join key")
	cmd.Flags().BoolVar(&opts.LeftOuter, "left-outer", false, "Also output rows of T1 without a match")
	cmd.Flags().BoolVar(&opts.RightOuter, "right-outer", false, "Also output rows of T2 without a match")
	cmd.Flags().StringVarP(&opts.NullString, "null-string", "n", "", "`STR` filling the columns of a missing row")
	return cmd
}

func newPartitionCommand(a *app) *cobra.Command {
	opts := &operations.PartitionOptions{}
	cmd := &cobra.Command{
		Use:   "tp" + exprUsage,
		Short: "Route rows to files named after a column value",
		RunE: func(cmd *cobra.Command, args []string) error {
			a.bind(cmd, &opts.IOOptions, args)
			t, err := operations.NewPartition(cmd.Context(), opts)
			if err != nil {
				return err
			}
			return t.Run(cmd.Context())
		},
	}
	addIOFlags(cmd, &opts.IOOptions, 1, false)
	cmd.Flags().IntVarP(&opts.Column, "partition", "p", 0, "Partition `COLUMN`")
	cmd.Flags().StringVarP(&opts.Pattern, "output", "o", "-", "Output `FILE` or pattern; %s is replaced by the partition value")
	return cmd
}

func newSortCommand(a *app) *cobra.Command {
	opts := &operations.SortOptions{}
	var keys []string
	cmd := &cobra.Command{
		Use:   "ts" + exprUsage,
		Short: "Sort rows on one or more keys",
		RunE: func(cmd *cobra.Command, args []string) error {
			a.bind(cmd, &opts.IOOptions, args)
			opts.Keys = nil
			for _, k := range keys {
				sk, err := transform.ParseSortKey(k)
				if err != nil {
					return err
				}
				opts.Keys = append(opts.Keys, sk)
			}
			t, err := operations.NewSort(cmd.Context(), opts)
			if err != nil {
				return err
			}
			return t.Run(cmd.Context())
		},
	}
	addIOFlags(cmd, &opts.IOOptions, 1, true)
	cmd.Flags().StringArrayVarP(&keys, "key", "k", nil,
		"Sort key `COL[:FLAGS]` (repeatable, most significant first); FLAGS: r reverse, n numeric, s nomenclature")
	return cmd
}

func newExpandCommand(a *app) *cobra.Command {
	opts := &operations.ExpandOptions{}
	var specs []string
	cmd := &cobra.Command{
		Use:   "tx" + exprUsage,
		Short: "Expand list-valued columns into one row per element",
		RunE: func(cmd *cobra.Command, args []string) error {
			a.bind(cmd, &opts.IOOptions, args)
			opts.Specs = nil
			for _, s := range specs {
				spec, err := transform.ParseExpandSpec(s)
				if err != nil {
					return err
				}
				opts.Specs = append(opts.Specs, spec)
			}
			t, err := operations.NewExpand(cmd.Context(), opts)
			if err != nil {
				return err
			}
			return t.Run(cmd.Context())
		},
	}
	addIOFlags(cmd, &opts.IOOptions, 1, true)
	cmd.Flags().StringArrayVarP(&specs, "expand", "x", nil, "Expand `COL[:PSS]` (repeatable; default PSS [,])")
	cmd.Flags().StringVar(&opts.OnError, "on-error", operations.OnErrorFail, "What to do with a malformed list: fail, skip or keep")
	return cmd
}
