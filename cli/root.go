// Package cli is the command-line interface of tabletools: one cobra command per table
// tool, plus the batch runner and the config file converter. Command trees are built per
// invocation, so several can run in-process at once.
package cli

import (
	"context"
	"io"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/mgijax/tabletools/logging"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// Env holds the standard streams of one invocation
type Env struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// StdEnv returns the process's own standard streams
func StdEnv() Env {
	return Env{Stdin: os.Stdin, Stdout: os.Stdout, Stderr: os.Stderr}
}

// app is the state shared by the commands of one tree
type app struct {
	env     Env
	logFile string
	verbose bool
	logger  *log.Logger
}

func (a *app) setupLogging(cmd *cobra.Command, args []string) error {
	level := logging.InfoLevel
	if a.verbose {
		level = logging.DebugLevel
	}
	a.logger = logging.New(logging.Options{Level: level, File: a.logFile, Stderr: a.env.Stderr})
	return nil
}

func (a *app) log(cmd *cobra.Command) *log.Entry {
	if a.logger == nil {
		a.logger = logging.New(logging.Options{Level: logging.InfoLevel, Stderr: a.env.Stderr})
	}
	return log.NewEntry(a.logger).WithField("cmd", cmd.Name())
}

// NewRootCommand builds the command tree for one invocation
func NewRootCommand(env Env) *cobra.Command {
	root, _ := newRoot(env)
	return root
}

func newRoot(env Env) (*cobra.Command, *app) {
	a := &app{env: env}
	root := &cobra.Command{
		Use:               "tabletools",
		Short:             "Relational operations on tab-delimited tables",
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setupLogging,
	}
	root.SetIn(env.Stdin)
	root.SetOut(env.Stdout)
	root.SetErr(env.Stderr)
	root.PersistentFlags().StringVarP(&a.logFile, "log-file", "l", "", "Append log messages to `FILE` (default: stderr)")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "Enable debug logging")

	for _, cmd := range toolCommands(a) {
		root.AddCommand(cmd)
	}
	root.AddCommand(newBatchCommand(a))
	root.AddCommand(newConfigCommand(a))
	return root, a
}

// ToolNames lists the table tool commands
var ToolNames = []string{"ta", "tb", "td", "tf", "ti", "tj", "tp", "ts", "tu", "tx"}

// Execute runs one command line (without the program name) in env
func Execute(ctx context.Context, env Env, args []string) error {
	root := NewRootCommand(env)
	root.SetArgs(args)
	return root.ExecuteContext(ctx)
}

// multiCallArgs prefixes args with the tool name when the binary was invoked through a
// link named after a tool, e.g. "tj -1 a.txt -2 b.txt"
func multiCallArgs(argv0 string, args []string) []string {
	name := filepath.Base(argv0)
	for _, t := range ToolNames {
		if name == t {
			return append([]string{t}, args...)
		}
	}
	return args
}

// Main runs the process command line and returns the exit status
func Main() int {
	env := StdEnv()
	args := multiCallArgs(os.Args[0], os.Args[1:])
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	root, a := newRoot(env)
	root.SetArgs(args)
	if cmd, err := root.ExecuteContextC(ctx); err != nil {
		a.log(cmd).Error(err)
		return 1
	}
	return 0
}
