// Package runner executes a resolved plan: every command of every queued task,
// in order, stopping at the first failure.
package runner

import (
	"context"
	"io"
	"os"
	"sync"
	"time"

	"go.trai.ch/tasker/internal/core/domain"
	"go.trai.ch/tasker/internal/core/ports"
	"go.trai.ch/tasker/internal/engine/resolver"
	"go.trai.ch/zerr"
)

// Runner drives the execution of a resolved plan.
type Runner struct {
	executor  ports.Executor
	telemetry ports.Telemetry
	journal   ports.Journal
	logger    ports.Logger
	out       io.Writer
	now       func() time.Time

	mu            sync.RWMutex
	taskStatus    map[string]domain.Status
	commandStatus map[string][]domain.Status
}

// Option configures a Runner.
type Option func(*Runner)

// WithOutput sets the user-visible stream receiving headless command output.
// It defaults to os.Stdout.
func WithOutput(w io.Writer) Option {
	return func(r *Runner) {
		r.out = w
	}
}

// WithClock replaces the clock used to timestamp run records.
func WithClock(now func() time.Time) Option {
	return func(r *Runner) {
		r.now = now
	}
}

// NewRunner creates a new Runner.
func NewRunner(
	executor ports.Executor,
	telemetry ports.Telemetry,
	journal ports.Journal,
	logger ports.Logger,
	opts ...Option,
) *Runner {
	r := &Runner{
		executor:      executor,
		telemetry:     telemetry,
		journal:       journal,
		logger:        logger,
		out:           os.Stdout,
		now:           time.Now,
		taskStatus:    make(map[string]domain.Status),
		commandStatus: make(map[string][]domain.Status),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Execute runs the plan's tasks in queue order and, within a task, its
// commands in declaration order. The first failing command halts the run:
// neither the rest of its task nor any later task is started.
func (r *Runner) Execute(ctx context.Context, plan *resolver.Plan) error {
	r.initStatuses(plan)

	for task := range plan.Tasks() {
		if err := ctx.Err(); err != nil {
			return zerr.With(zerr.Wrap(err, "run canceled"), "task", task.Name)
		}
		if err := r.runTask(ctx, task); err != nil {
			return err
		}
	}
	return nil
}

// Status returns the state of a task in the current run, or pending if the
// task is not part of it.
func (r *Runner) Status(task string) domain.Status {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if s, ok := r.taskStatus[task]; ok {
		return s
	}
	return domain.StatusPending
}

// CommandStatus returns the state of the index-th command of a task.
func (r *Runner) CommandStatus(task string, index int) domain.Status {
	r.mu.RLock()
	defer r.mu.RUnlock()
	cmds := r.commandStatus[task]
	if index < 0 || index >= len(cmds) {
		return domain.StatusPending
	}
	return cmds[index]
}

// Close flushes the telemetry session.
func (r *Runner) Close() error {
	return r.telemetry.Close()
}

func (r *Runner) initStatuses(plan *resolver.Plan) {
	r.mu.Lock()
	defer r.mu.Unlock()

	clear(r.taskStatus)
	clear(r.commandStatus)
	for task := range plan.Tasks() {
		r.taskStatus[task.Name] = domain.StatusPending
		cmds := make([]domain.Status, len(task.Commands))
		for i := range cmds {
			cmds[i] = domain.StatusPending
		}
		r.commandStatus[task.Name] = cmds
	}
}

func (r *Runner) setTaskStatus(task string, s domain.Status) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.taskStatus[task] = s
}

func (r *Runner) setCommandStatus(task string, index int, s domain.Status) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if cmds := r.commandStatus[task]; index < len(cmds) {
		cmds[index] = s
	}
}

func (r *Runner) runTask(ctx context.Context, task domain.Task) error {
	r.setTaskStatus(task.Name, domain.StatusRunning)
	r.logger.Info("running task: " + task.Name)

	ctx, vertex := r.telemetry.Record(ctx, task.Name)
	record := domain.RunRecord{
		TaskName:  task.Name,
		Status:    domain.StatusRunning,
		Commands:  len(task.Commands),
		StartedAt: r.now(),
	}
	stdout := io.MultiWriter(r.out, vertex.Stdout())

	var runErr error
	for i, cmd := range task.Commands {
		r.setCommandStatus(task.Name, i, domain.StatusRunning)
		vertex.Log(domain.LogLevelInfo, cmd)

		if err := r.executor.Execute(ctx, cmd, stdout); err != nil {
			r.setCommandStatus(task.Name, i, domain.StatusFailed)
			runErr = zerr.With(err, "task", task.Name)
			break
		}
		r.setCommandStatus(task.Name, i, domain.StatusSucceeded)
	}

	record.FinishedAt = r.now()
	record.Fingerprint = Fingerprint(task.Commands)
	if runErr != nil {
		record.Status = domain.StatusFailed
		record.Error = runErr.Error()
		r.setTaskStatus(task.Name, domain.StatusFailed)
		vertex.Log(domain.LogLevelError, runErr.Error())
	} else {
		record.Status = domain.StatusSucceeded
		r.setTaskStatus(task.Name, domain.StatusSucceeded)
	}
	vertex.Complete(runErr)

	if err := r.journal.Put(record); err != nil {
		r.logger.Warn("failed to record run of task " + task.Name + ": " + err.Error())
	}
	return runErr
}
