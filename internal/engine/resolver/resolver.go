// Package resolver turns a parsed document and a requested task name into an
// execution queue: dependencies first, each task once, variables substituted.
package resolver

import (
	"slices"
	"strings"

	"go.trai.ch/tasker/internal/core/domain"
	"go.trai.ch/zerr"
)

// Resolve returns the tasks needed to run name, ordered so that every task
// follows all of its dependencies. Tasks reachable through several branches
// appear once, at their first-encountered position.
//
// The returned slice holds pointers into doc.
func Resolve(doc *domain.Document, name string) ([]*domain.Task, error) {
	r := &dependencyWalk{
		doc:    doc,
		active: make(map[string]struct{}),
		queued: make(map[string]struct{}),
	}
	if err := r.visit(name); err != nil {
		return nil, err
	}
	return r.queue, nil
}

// dependencyWalk is local to one Resolve call.
type dependencyWalk struct {
	doc *domain.Document

	// active holds the tasks on the current recursion path.
	active map[string]struct{}
	// path mirrors active in visiting order, for error reporting.
	path []string

	queue  []*domain.Task
	queued map[string]struct{}
}

func (r *dependencyWalk) visit(name string) error {
	task, err := r.doc.Task(name)
	if err != nil {
		return err
	}

	if _, ok := r.active[task.Name]; ok {
		return r.cycleError(task)
	}
	r.active[task.Name] = struct{}{}
	r.path = append(r.path, task.Name)

	if task.HasDependencies() {
		for _, dep := range task.Dependencies {
			if err := r.doc.CheckDuplicateTask(dep); err != nil {
				return err
			}
			if _, ok := r.queued[dep]; ok {
				continue
			}
			if err := r.visit(dep); err != nil {
				return zerr.With(err, "required_by", task.Name)
			}
		}
	}

	if _, ok := r.queued[task.Name]; !ok {
		r.queued[task.Name] = struct{}{}
		r.queue = append(r.queue, task)
	}

	delete(r.active, task.Name)
	r.path = r.path[:len(r.path)-1]
	return nil
}

func (r *dependencyWalk) cycleError(task *domain.Task) error {
	start := slices.Index(r.path, task.Name)
	cycle := append(slices.Clone(r.path[start:]), task.Name)
	return zerr.With(
		zerr.With(domain.NewSyntaxError("cycle detected", task.Line), "task", task.Name),
		"cycle", strings.Join(cycle, " -> "),
	)
}
