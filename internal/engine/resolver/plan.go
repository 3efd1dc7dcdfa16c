package resolver

import (
	"iter"
	"slices"

	"go.trai.ch/tasker/internal/core/domain"
)

// Plan is a resolved execution queue whose commands have been substituted.
// Once built it is read-only: Tasks yields copies, so the executor cannot
// rewrite the document behind the resolver's back.
type Plan struct {
	target string
	queue  []*domain.Task
}

// NewPlan resolves the dependencies of target, then substitutes variables into
// the queued tasks. Substitution is the last write to those tasks.
func NewPlan(doc *domain.Document, target string) (*Plan, error) {
	queue, err := Resolve(doc, target)
	if err != nil {
		return nil, err
	}
	if err := ResolveVariables(doc, queue); err != nil {
		return nil, err
	}
	return &Plan{target: target, queue: queue}, nil
}

// Target returns the originally requested task name.
func (p *Plan) Target() string {
	return p.target
}

// Len returns the number of queued tasks.
func (p *Plan) Len() int {
	return len(p.queue)
}

// Names returns the queued task names in execution order.
func (p *Plan) Names() []string {
	names := make([]string, len(p.queue))
	for i, t := range p.queue {
		names[i] = t.Name
	}
	return names
}

// Tasks yields the queued tasks in execution order.
func (p *Plan) Tasks() iter.Seq[domain.Task] {
	return func(yield func(domain.Task) bool) {
		for _, t := range p.queue {
			task := *t
			task.Dependencies = slices.Clone(t.Dependencies)
			task.Commands = slices.Clone(t.Commands)
			if !yield(task) {
				return
			}
		}
	}
}
