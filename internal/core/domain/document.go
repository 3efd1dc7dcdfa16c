// Package domain contains the core models of a task-definition file: tokens,
// variables, tasks and the document that owns them.
package domain

import (
	"slices"

	"go.trai.ch/zerr"
)

// NullDependency is the literal a task header uses to declare no dependencies.
const NullDependency = "null"

// Variable is a named string value substitutable into commands.
type Variable struct {
	Name  string
	Value string
	Line  int
}

// Task is a named unit of work with dependencies and ordered shell commands.
type Task struct {
	Name         string
	Dependencies []string
	Commands     []string
	Line         int
}

// HasDependencies reports whether the task lists real dependency names.
// An empty list and the single sentinel "null" both mean "none".
func (t *Task) HasDependencies() bool {
	return len(t.Dependencies) > 0 &&
		(len(t.Dependencies) != 1 || t.Dependencies[0] != NullDependency)
}

// Document owns every variable and task parsed from one task-definition file.
// Resolvers and executors hold pointers into it, never copies.
type Document struct {
	Variables []*Variable
	Tasks     []*Task
}

// NewDocument creates an empty Document.
func NewDocument() *Document {
	return &Document{}
}

// AddVariable appends a variable. Duplicates are detected lazily on lookup.
func (d *Document) AddVariable(v *Variable) {
	d.Variables = append(d.Variables, v)
}

// AddTask appends a task. Duplicates are detected lazily on lookup.
func (d *Document) AddTask(t *Task) {
	d.Tasks = append(d.Tasks, t)
}

// Task returns the task with the given name.
// It fails with a syntax error if the name is declared more than once and
// with a user input error if it is not declared at all.
func (d *Document) Task(name string) (*Task, error) {
	if err := d.CheckDuplicateTask(name); err != nil {
		return nil, err
	}
	for _, t := range d.Tasks {
		if t.Name == name {
			return t, nil
		}
	}
	return nil, zerr.With(NewUserInputError("task not found"), "task", name)
}

// CheckDuplicateTask fails if two or more tasks share the given name.
// The error points at the first redeclaration.
func (d *Document) CheckDuplicateTask(name string) error {
	seen := false
	for _, t := range d.Tasks {
		if t.Name != name {
			continue
		}
		if seen {
			return zerr.With(NewSyntaxError("duplicate task name", t.Line), "task", name)
		}
		seen = true
	}
	return nil
}

// Variable returns the variable with the given name, with the same duplicate
// and not-found semantics as Task.
func (d *Document) Variable(name string) (*Variable, error) {
	var found *Variable
	for _, v := range d.Variables {
		if v.Name != name {
			continue
		}
		if found != nil {
			return nil, zerr.With(NewSyntaxError("duplicate variable name", v.Line), "variable", name)
		}
		found = v
	}
	if found == nil {
		return nil, zerr.With(NewUserInputError("variable not found"), "variable", name)
	}
	return found, nil
}

// TaskNames returns task names in declaration order, without duplicates.
func (d *Document) TaskNames() []string {
	names := make([]string, 0, len(d.Tasks))
	for _, t := range d.Tasks {
		if !slices.Contains(names, t.Name) {
			names = append(names, t.Name)
		}
	}
	return names
}

// Clone returns a deep copy of the document, so a resolution pass can
// substitute into commands without touching the original.
func (d *Document) Clone() *Document {
	c := &Document{
		Variables: make([]*Variable, len(d.Variables)),
		Tasks:     make([]*Task, len(d.Tasks)),
	}
	for i, v := range d.Variables {
		cp := *v
		c.Variables[i] = &cp
	}
	for i, t := range d.Tasks {
		cp := *t
		cp.Dependencies = slices.Clone(t.Dependencies)
		cp.Commands = slices.Clone(t.Commands)
		c.Tasks[i] = &cp
	}
	return c
}
