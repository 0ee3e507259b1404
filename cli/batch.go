package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/mgijax/tabletools/config"
	"github.com/mgijax/tabletools/dispatch"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// batchFile is the YAML job list read by the batch command
//
//	workers: 4
//	config: /usr/local/mgi/etc/tabletools.cfg
//	jobs:
//	  - name: join
//	    op: tj
//	    args: ["-1", "${DATADIR}/a.txt", "-2", "${DATADIR}/b.txt", "--k1", "1", "--k2", "1", "-o", "ab.txt"]
//	    timeout: 10m
//	  - name: count
//	    command: ["wc", "-l", "ab.txt"]
type batchFile struct {
	Workers int        `yaml:"workers"`
	Config  string     `yaml:"config"`
	Jobs    []batchJob `yaml:"jobs"`
}

type batchJob struct {
	Name    string   `yaml:"name"`
	Op      string   `yaml:"op"`
	Args    []string `yaml:"args"`
	Command []string `yaml:"command"`
	Timeout string   `yaml:"timeout"`
}

const defaultWorkers = 4

func parseBatch(r io.Reader) (*batchFile, error) {
	var b batchFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&b); err != nil && err != io.EOF {
		return nil, err
	}
	return &b, nil
}

func isInProcessOp(op string) bool {
	if op == "config" {
		return true
	}
	for _, t := range ToolNames {
		if op == t {
			return true
		}
	}
	return false
}

// specs validates the jobs and expands ${NAME} references in their arguments
func (b *batchFile) specs(cfg *config.Config) ([]dispatch.JobSpec, error) {
	expand := func(vals []string) ([]string, error) {
		if cfg == nil {
			return vals, nil
		}
		res := make([]string, len(vals))
		for i, v := range vals {
			var err error
			if res[i], err = cfg.Expand(v); err != nil {
				return nil, err
			}
		}
		return res, nil
	}
	var specs []dispatch.JobSpec
	for i, j := range b.Jobs {
		name := j.Name
		if name == "" {
			name = fmt.Sprintf("job%d", i+1)
		}
		spec := dispatch.JobSpec{Name: name, Op: j.Op}
		switch {
		case j.Op != "" && len(j.Command) > 0:
			return nil, fmt.Errorf("job %s: op and command are mutually exclusive", name)
		case j.Op != "" && !isInProcessOp(j.Op):
			return nil, fmt.Errorf("job %s: unknown op %q", name, j.Op)
		case j.Op == "" && len(j.Command) == 0:
			return nil, fmt.Errorf("job %s: either op or command is required", name)
		}
		var err error
		if spec.Args, err = expand(j.Args); err != nil {
			return nil, fmt.Errorf("job %s: %w", name, err)
		}
		if spec.Command, err = expand(j.Command); err != nil {
			return nil, fmt.Errorf("job %s: %w", name, err)
		}
		if j.Timeout != "" {
			if spec.Timeout, err = time.ParseDuration(j.Timeout); err != nil {
				return nil, fmt.Errorf("job %s: %w", name, err)
			}
		}
		specs = append(specs, spec)
	}
	return specs, nil
}

// runner runs in-process ops through a fresh command tree, and commands externally
func (a *app) runner(ctx context.Context, spec dispatch.JobSpec, stdout, stderr io.Writer) error {
	if len(spec.Command) > 0 {
		return dispatch.ExecRunner(ctx, spec, stdout, stderr)
	}
	args := append([]string{spec.Op}, spec.Args...)
	if a.verbose {
		args = append(args, "--verbose")
	}
	env := Env{Stdin: strings.NewReader(""), Stdout: stdout, Stderr: stderr}
	return Execute(ctx, env, args)
}

func newBatchCommand(a *app) *cobra.Command {
	var workers int
	var cfgPath string
	cmd := &cobra.Command{
		Use:   "batch FILE.yaml",
		Short: "Run a YAML list of table tool jobs and commands concurrently",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			b, err := parseBatch(f)
			f.Close()
			if err != nil {
				return fmt.Errorf("%s: %w", args[0], err)
			}
			if cmd.Flags().Changed("workers") || b.Workers == 0 {
				b.Workers = workers
			}
			if cfgPath != "" {
				b.Config = cfgPath
			}
			return a.runBatch(cmd, b)
		},
	}
	cmd.Flags().IntVarP(&workers, "workers", "w", defaultWorkers, "Maximum number of jobs to run at once")
	cmd.Flags().StringVar(&cfgPath, "config", "", "Configuration `FILE` used to expand ${NAME} in job arguments")
	return cmd
}

func (a *app) runBatch(cmd *cobra.Command, b *batchFile) error {
	logger := a.log(cmd)
	var cfg *config.Config
	if b.Config != "" {
		var err error
		if cfg, err = config.Cached(b.Config); err != nil {
			return err
		}
	}
	specs, err := b.specs(cfg)
	if err != nil {
		return err
	}

	d := dispatch.New(b.Workers, a.runner)
	d.SetLogger(logger)
	ids := make([]int, len(specs))
	for i, s := range specs {
		ids[i] = d.Schedule(s)
	}
	waitErr := d.Wait(cmd.Context())
	if waitErr != nil {
		d.Terminate()
		_ = d.Wait(context.Background())
	}

	var failures *multierror.Error
	failed := 0
	for i, id := range ids {
		io.WriteString(a.env.Stdout, d.Stdout(id))
		io.WriteString(a.env.Stderr, d.Stderr(id))
		fields := log.Fields{
			"job":     specs[i].Name,
			"run":     d.RunID(id),
			"exit":    d.ExitCode(id),
			"elapsed": d.Elapsed(id).Round(time.Millisecond).String(),
		}
		if err := d.Err(id); err != nil {
			logger.WithFields(fields).WithError(err).Error("job failed")
			failures = multierror.Append(failures, fmt.Errorf("%s: %w", specs[i].Name, err))
			failed++
			continue
		}
		logger.WithFields(fields).Info("job finished")
	}
	if waitErr != nil {
		failures = multierror.Append(failures, waitErr)
	}
	logger.WithFields(log.Fields{"jobs": len(ids), "failed": failed}).Info("batch finished")
	return failures.ErrorOrNil()
}
