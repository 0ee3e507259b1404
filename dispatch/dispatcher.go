package dispatch

import (
	"bytes"
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"os/exec"
	"sync"
	"time"

	"github.com/gofrs/uuid"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/semaphore"
)

// Status is the state of a job
type Status int

const (
	// Unknown is the status of an id which was never scheduled
	Unknown Status = iota
	// Waiting jobs have not started yet
	Waiting
	// Running jobs have started and not yet returned
	Running
	// Finished jobs have returned, failed, or been dropped by Terminate
	Finished
)

func (s Status) String() string {
	switch s {
	case Waiting:
		return "waiting"
	case Running:
		return "running"
	case Finished:
		return "finished"
	}
	return "unknown"
}

// ErrTerminated is the error of a job dropped by Terminate before it started
var ErrTerminated = stderrors.New("job terminated before it started")

// JobSpec describes one job. Which fields matter depends on the Runner.
type JobSpec struct {
	Name    string
	Command []string      // External command and arguments, for ExecRunner
	Op      string        // In-process operation name
	Args    []string      // In-process operation arguments
	Timeout time.Duration // Alarm. 0 means none.
}

// Runner executes a job, writing its output to stdout and stderr. It must return once
// ctx is done.
type Runner func(ctx context.Context, spec JobSpec, stdout, stderr io.Writer) error

// syncBuffer is a bytes.Buffer safe for one writer and concurrent readers
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

type job struct {
	id       int
	runID    uuid.UUID
	spec     JobSpec
	status   Status
	stdout   syncBuffer
	stderr   syncBuffer
	err      error
	exitCode int
	start    time.Time
	end      time.Time
	cancel   context.CancelFunc
	done     chan struct{}
}

// Dispatcher schedules jobs onto a bounded number of goroutines
type Dispatcher struct {
	run       Runner
	sem       *semaphore.Weighted
	log       *log.Entry
	mu        sync.Mutex
	jobs      []*job
	nextStart int
	hold      bool
	active    int
}

// New creates a Dispatcher running at most maxJobs jobs at once
func New(maxJobs int, run Runner) *Dispatcher {
	if maxJobs < 1 {
		maxJobs = 1
	}
	return &Dispatcher{
		run: run,
		sem: semaphore.NewWeighted(int64(maxJobs)),
		log: log.WithField("component", "dispatcher"),
	}
}

// SetLogger replaces the Dispatcher's logger
func (d *Dispatcher) SetLogger(l *log.Entry) {
	d.log = l
}

// Schedule queues a job and returns its id. Ids start at 1.
func (d *Dispatcher) Schedule(spec JobSpec) int {
	d.mu.Lock()
	defer d.mu.Unlock()
	j := &job{id: len(d.jobs) + 1, spec: spec, status: Waiting, exitCode: -1, done: make(chan struct{})}
	if id, err := uuid.NewV4(); err == nil {
		j.runID = id
	}
	d.jobs = append(d.jobs, j)
	d.log.WithFields(log.Fields{"job": j.id, "name": spec.Name}).Debug("scheduled")
	d.startWaiting()
	return j.id
}

// SetHold stops (true) or resumes (false) the starting of waiting jobs. Running jobs are
// not affected.
func (d *Dispatcher) SetHold(hold bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.hold = hold
	d.startWaiting()
}

// startWaiting starts waiting jobs, in order, while there is capacity. d.mu must be held.
func (d *Dispatcher) startWaiting() {
	for !d.hold && d.nextStart < len(d.jobs) {
		j := d.jobs[d.nextStart]
		if j.status != Waiting {
			d.nextStart++
			continue
		}
		if !d.sem.TryAcquire(1) {
			return
		}
		d.nextStart++
		d.start(j)
	}
}

// start launches j. d.mu must be held.
func (d *Dispatcher) start(j *job) {
	var ctx context.Context
	if j.spec.Timeout > 0 {
		ctx, j.cancel = context.WithTimeout(context.Background(), j.spec.Timeout)
	} else {
		ctx, j.cancel = context.WithCancel(context.Background())
	}
	j.status = Running
	j.start = time.Now()
	d.active++
	d.log.WithFields(log.Fields{"job": j.id, "name": j.spec.Name, "run": j.runID.String()}).Debug("started")
	go d.execute(ctx, j)
}

func (d *Dispatcher) execute(ctx context.Context, j *job) {
	err := d.run(ctx, j.spec, &j.stdout, &j.stderr)
	if stderrors.Is(ctx.Err(), context.DeadlineExceeded) {
		err = fmt.Errorf("alarm fired after %s: %w", j.spec.Timeout, context.DeadlineExceeded)
	}
	j.cancel()

	d.mu.Lock()
	defer d.mu.Unlock()
	j.end = time.Now()
	j.err = err
	j.exitCode = exitCode(err)
	j.status = Finished
	d.active--
	fields := log.Fields{"job": j.id, "name": j.spec.Name, "run": j.runID.String(), "elapsed": j.end.Sub(j.start).String()}
	if err != nil {
		d.log.WithFields(fields).WithError(err).Warn("failed")
	} else {
		d.log.WithFields(fields).Debug("finished")
	}
	close(j.done)
	d.sem.Release(1)
	d.startWaiting()
}

func exitCode(err error) int {
	if err == nil {
		return 0
	}
	var exitErr *exec.ExitError
	if stderrors.As(err, &exitErr) && exitErr.ExitCode() >= 0 {
		return exitErr.ExitCode()
	}
	return 1
}

func (d *Dispatcher) job(id int) *job {
	if id < 1 || id > len(d.jobs) {
		return nil
	}
	return d.jobs[id-1]
}

// Status returns the status of job id
func (d *Dispatcher) Status(id int) Status {
	d.mu.Lock()
	defer d.mu.Unlock()
	if j := d.job(id); j != nil {
		return j.status
	}
	return Unknown
}

// Stdout returns what job id has written to stdout so far
func (d *Dispatcher) Stdout(id int) string {
	d.mu.Lock()
	j := d.job(id)
	d.mu.Unlock()
	if j == nil {
		return ""
	}
	return j.stdout.String()
}

// Stderr returns what job id has written to stderr so far
func (d *Dispatcher) Stderr(id int) string {
	d.mu.Lock()
	j := d.job(id)
	d.mu.Unlock()
	if j == nil {
		return ""
	}
	return j.stderr.String()
}

// Err returns the error of a finished job
func (d *Dispatcher) Err(id int) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if j := d.job(id); j != nil {
		return j.err
	}
	return nil
}

// ExitCode returns the exit status of a finished job: 0 on success, the command's exit
// status for failed external commands, 1 for other failures, and -1 if the job has not
// finished
func (d *Dispatcher) ExitCode(id int) int {
	d.mu.Lock()
	defer d.mu.Unlock()
	if j := d.job(id); j != nil {
		return j.exitCode
	}
	return -1
}

// RunID returns the unique run id of job id, used to correlate log lines
func (d *Dispatcher) RunID(id int) string {
	d.mu.Lock()
	defer d.mu.Unlock()
	if j := d.job(id); j != nil {
		return j.runID.String()
	}
	return ""
}

// Elapsed returns how long job id has been running, or ran for
func (d *Dispatcher) Elapsed(id int) time.Duration {
	d.mu.Lock()
	defer d.mu.Unlock()
	j := d.job(id)
	if j == nil || j.start.IsZero() {
		return 0
	}
	if j.status == Running {
		return time.Since(j.start)
	}
	return j.end.Sub(j.start)
}

// ActiveCount returns the number of running jobs
func (d *Dispatcher) ActiveCount() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.active
}

// WaitingCount returns the number of jobs which have not started
func (d *Dispatcher) WaitingCount() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	n := 0
	for _, j := range d.jobs[d.nextStart:] {
		if j.status == Waiting {
			n++
		}
	}
	return n
}

// Wait blocks until the given jobs, or every job scheduled so far, have finished. Jobs
// held back by SetHold keep Wait blocked until they are released or ctx is done.
func (d *Dispatcher) Wait(ctx context.Context, ids ...int) error {
	d.mu.Lock()
	var pending []*job
	if len(ids) == 0 {
		pending = append(pending, d.jobs...)
	} else {
		for _, id := range ids {
			j := d.job(id)
			if j == nil {
				d.mu.Unlock()
				return fmt.Errorf("unknown job %d", id)
			}
			pending = append(pending, j)
		}
	}
	d.mu.Unlock()

	for _, j := range pending {
		select {
		case <-j.done:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return nil
}

// Terminate cancels every running job and drops every waiting one. The Dispatcher is left
// on hold.
func (d *Dispatcher) Terminate() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.hold = true
	now := time.Now()
	for _, j := range d.jobs {
		switch j.status {
		case Running:
			j.cancel()
			d.log.WithField("job", j.id).Debug("cancelled")
		case Waiting:
			j.status = Finished
			j.err = ErrTerminated
			j.exitCode = exitCode(ErrTerminated)
			j.start, j.end = now, now
			close(j.done)
		}
	}
}

// ExecRunner runs JobSpec.Command as an external process
func ExecRunner(ctx context.Context, spec JobSpec, stdout, stderr io.Writer) error {
	if len(spec.Command) == 0 {
		return fmt.Errorf("job %q has no command", spec.Name)
	}
	cmd := exec.CommandContext(ctx, spec.Command[0], spec.Command[1:]...)
	cmd.Stdout = stdout
	cmd.Stderr = stderr
	return cmd.Run()
}
