package resolver_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/tasker/internal/core/domain"
	"go.trai.ch/tasker/internal/engine/resolver"
)

func docWithVariables(vars map[string]string, commands ...string) (*domain.Document, []*domain.Task) {
	doc := domain.NewDocument()
	line := 1
	for name, value := range vars {
		doc.AddVariable(&domain.Variable{Name: name, Value: value, Line: line})
		line++
	}
	task := &domain.Task{Name: "t", Commands: commands, Line: line}
	doc.AddTask(task)
	return doc, []*domain.Task{task}
}

func TestResolveVariables(t *testing.T) {
	tests := []struct {
		name     string
		vars     map[string]string
		commands []string
		want     []string
	}{
		{
			name:     "single placeholder",
			vars:     map[string]string{"OUT": "bin"},
			commands: []string{"echo ${OUT}/app"},
			want:     []string{"echo bin/app"},
		},
		{
			name:     "repeated and multiple placeholders",
			vars:     map[string]string{"OUT": "bin", "NAME": "app"},
			commands: []string{"mkdir ${OUT} && go build -o ${OUT}/${NAME}", "ls ${OUT}"},
			want:     []string{"mkdir bin && go build -o bin/app", "ls bin"},
		},
		{
			name:     "no placeholders",
			vars:     nil,
			commands: []string{"echo $HOME"},
			want:     []string{"echo $HOME"},
		},
		{
			name:     "substitution is not recursive",
			vars:     map[string]string{"AA": "${BB}", "BB": "x"},
			commands: []string{"echo ${AA}"},
			want:     []string{"echo ${BB}"},
		},
		{
			name:     "single-character names are not placeholders",
			vars:     map[string]string{"A": "nope"},
			commands: []string{"echo ${A}"},
			want:     []string{"echo ${A}"},
		},
		{
			name:     "empty value",
			vars:     map[string]string{"FLAGS": ""},
			commands: []string{"go build ${FLAGS}."},
			want:     []string{"go build ."},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, queue := docWithVariables(tt.vars, tt.commands...)
			require.NoError(t, resolver.ResolveVariables(doc, queue))
			assert.Equal(t, tt.want, queue[0].Commands)
		})
	}
}

func TestResolveVariables_MissingVariable(t *testing.T) {
	doc, queue := docWithVariables(map[string]string{"OUT": "bin"}, "echo ${OUT} ${MISSING}")

	err := resolver.ResolveVariables(doc, queue)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrUserInput)
	assert.Equal(t, []string{"echo ${OUT} ${MISSING}"}, queue[0].Commands, "no partial substitution")

	meta := metadata(t, err)
	assert.Equal(t, "MISSING", meta["variable"])
	assert.Equal(t, "t", meta["task"])
	assert.Equal(t, "echo ${OUT} ${MISSING}", meta["command"])
}

func TestResolveVariables_DuplicateVariable(t *testing.T) {
	doc := domain.NewDocument()
	doc.AddVariable(&domain.Variable{Name: "OUT", Value: "a", Line: 1})
	doc.AddVariable(&domain.Variable{Name: "OUT", Value: "b", Line: 2})
	task := &domain.Task{Name: "t", Commands: []string{"echo ${OUT}"}, Line: 3}
	doc.AddTask(task)

	err := resolver.ResolveVariables(doc, []*domain.Task{task})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrSyntax)

	line, ok := domain.LineOf(err)
	require.True(t, ok)
	assert.Equal(t, 2, line)
}

func TestResolveVariables_UnreferencedDuplicateIsIgnored(t *testing.T) {
	doc := domain.NewDocument()
	doc.AddVariable(&domain.Variable{Name: "OUT", Value: "a", Line: 1})
	doc.AddVariable(&domain.Variable{Name: "OUT", Value: "b", Line: 2})
	task := &domain.Task{Name: "t", Commands: []string{"echo hi"}, Line: 3}
	doc.AddTask(task)

	require.NoError(t, resolver.ResolveVariables(doc, []*domain.Task{task}))
}

func TestResolveVariables_NoCommands(t *testing.T) {
	doc := domain.NewDocument()
	task := &domain.Task{Name: "empty", Line: 1}
	doc.AddTask(task)

	err := resolver.ResolveVariables(doc, []*domain.Task{task})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInternal)
}
