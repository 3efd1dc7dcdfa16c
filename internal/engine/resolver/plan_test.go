package resolver_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/tasker/internal/core/domain"
	"go.trai.ch/tasker/internal/engine/resolver"
)

func planDocument() *domain.Document {
	doc := domain.NewDocument()
	doc.AddVariable(&domain.Variable{Name: "OUT", Value: "bin", Line: 1})
	doc.AddTask(&domain.Task{Name: "deps", Commands: []string{"go mod download"}, Line: 2})
	doc.AddTask(&domain.Task{
		Name:         "build",
		Dependencies: []string{"deps"},
		Commands:     []string{"go build -o ${OUT}/app"},
		Line:         4,
	})
	return doc
}

func TestNewPlan(t *testing.T) {
	plan, err := resolver.NewPlan(planDocument(), "build")
	require.NoError(t, err)

	assert.Equal(t, "build", plan.Target())
	assert.Equal(t, 2, plan.Len())
	assert.Equal(t, []string{"deps", "build"}, plan.Names())

	var commands []string
	for task := range plan.Tasks() {
		commands = append(commands, task.Commands...)
	}
	assert.Equal(t, []string{"go mod download", "go build -o bin/app"}, commands)
}

func TestNewPlan_Errors(t *testing.T) {
	doc := planDocument()
	doc.AddTask(&domain.Task{Name: "bad", Commands: []string{"echo ${NOPE}"}, Line: 6})

	_, err := resolver.NewPlan(doc, "missing")
	assert.ErrorIs(t, err, domain.ErrUserInput)

	_, err = resolver.NewPlan(doc, "bad")
	assert.ErrorIs(t, err, domain.ErrUserInput)
}

func TestPlan_TasksYieldsCopies(t *testing.T) {
	plan, err := resolver.NewPlan(planDocument(), "build")
	require.NoError(t, err)

	for task := range plan.Tasks() {
		task.Commands[0] = "rm -rf /"
		task.Name = "changed"
	}

	assert.Equal(t, []string{"deps", "build"}, plan.Names())
	for task := range plan.Tasks() {
		assert.NotEqual(t, "rm -rf /", task.Commands[0])
	}
}

func TestPlan_TasksStopsEarly(t *testing.T) {
	plan, err := resolver.NewPlan(planDocument(), "build")
	require.NoError(t, err)

	var seen []string
	for task := range plan.Tasks() {
		seen = append(seen, task.Name)
		break
	}
	assert.Equal(t, []string{"deps"}, seen)
}
