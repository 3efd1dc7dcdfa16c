// Package app implements the application layer for tasker.
package app

import (
	"context"

	"go.trai.ch/tasker/internal/adapters/settings"
	"go.trai.ch/tasker/internal/core/domain"
	"go.trai.ch/tasker/internal/core/ports"
	"go.trai.ch/tasker/internal/engine/resolver"
	"go.trai.ch/tasker/internal/engine/runner"
	"go.trai.ch/zerr"
)

// App represents the main application logic.
type App struct {
	configLoader ports.ConfigLoader
	runner       *runner.Runner
	journal      ports.Journal
	logger       ports.Logger
	taskfile     string
}

// Option configures an App.
type Option func(*App)

// WithTaskfile sets the task file used when a call does not name one.
func WithTaskfile(path string) Option {
	return func(a *App) {
		if path != "" {
			a.taskfile = path
		}
	}
}

// New creates a new App instance.
func New(
	loader ports.ConfigLoader,
	run *runner.Runner,
	journal ports.Journal,
	logger ports.Logger,
	opts ...Option,
) *App {
	a := &App{
		configLoader: loader,
		runner:       run,
		journal:      journal,
		logger:       logger,
		taskfile:     settings.DefaultTaskfile,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// RunOptions configures a run.
type RunOptions struct {
	// Taskfile overrides the configured task file.
	Taskfile string
}

// Taskfile returns the task file a call with the given override reads.
func (a *App) Taskfile(override string) string {
	if override != "" {
		return override
	}
	return a.taskfile
}

// Load reads and parses the task file.
func (a *App) Load(taskfile string) (*domain.Document, error) {
	doc, err := a.configLoader.Load(a.Taskfile(taskfile))
	if err != nil {
		return nil, zerr.Wrap(err, "failed to load task file")
	}
	return doc, nil
}

// Plan loads the task file and resolves the execution queue of task without
// running anything.
func (a *App) Plan(taskfile, task string) (*resolver.Plan, error) {
	doc, err := a.Load(taskfile)
	if err != nil {
		return nil, err
	}
	return resolver.NewPlan(doc, task)
}

// Run resolves task and executes its queue.
func (a *App) Run(ctx context.Context, task string, opts RunOptions) error {
	plan, err := a.Plan(opts.Taskfile, task)
	if err != nil {
		return err
	}

	defer func() {
		if err := a.runner.Close(); err != nil {
			a.logger.Warn("failed to close telemetry: " + err.Error())
		}
	}()

	if err := a.runner.Execute(ctx, plan); err != nil {
		return zerr.Wrap(err, "task execution failed")
	}
	a.logger.Info("finished task: " + task)
	return nil
}

// List returns the declared tasks in declaration order.
func (a *App) List(taskfile string) ([]domain.Task, error) {
	doc, err := a.Load(taskfile)
	if err != nil {
		return nil, err
	}

	tasks := make([]domain.Task, 0, len(doc.Tasks))
	for _, t := range doc.Tasks {
		tasks = append(tasks, *t)
	}
	return tasks, nil
}

// Check resolves every declared task and every variable reference without
// executing anything, returning the number of tasks checked.
func (a *App) Check(taskfile string) (int, error) {
	doc, err := a.Load(taskfile)
	if err != nil {
		return 0, err
	}

	for _, v := range doc.Variables {
		if _, err := doc.Variable(v.Name); err != nil {
			return 0, err
		}
	}

	names := doc.TaskNames()
	for _, name := range names {
		if _, err := resolver.NewPlan(doc.Clone(), name); err != nil {
			return 0, zerr.With(err, "checking", name)
		}
	}
	return len(names), nil
}

// History returns the latest journal record of every task, or only the one
// of task when it is not empty.
func (a *App) History(task string) ([]domain.RunRecord, error) {
	if task == "" {
		records, err := a.journal.List()
		if err != nil {
			return nil, zerr.Wrap(err, "failed to read journal")
		}
		return records, nil
	}

	rec, err := a.journal.Get(task)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to read journal"), "task", task)
	}
	if rec == nil {
		return nil, nil
	}
	return []domain.RunRecord{*rec}, nil
}
