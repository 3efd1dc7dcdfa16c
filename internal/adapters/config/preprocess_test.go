package config_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/tasker/internal/adapters/config"
)

func TestPreprocess(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "full-line comment becomes empty",
			in:   "# header\nbuild: null\n    go build",
			want: "\nbuild: null\n    go build",
		},
		{
			name: "indented comment becomes empty",
			in:   "build: null\n    # note\n    go build",
			want: "build: null\n\n    go build",
		},
		{
			name: "inline comment is stripped",
			in:   "set OUT = bin  # output dir\nbuild: null   # header\n    go build -o ${OUT} # compile",
			want: "set OUT = bin\nbuild: null\n    go build -o ${OUT}",
		},
		{
			name: "hash inside double quotes is kept",
			in:   `    echo "a # b" # trailing`,
			want: `    echo "a # b"`,
		},
		{
			name: "hash inside single quotes is kept",
			in:   `    echo 'a # b' # trailing`,
			want: `    echo 'a # b'`,
		},
		{
			name: "hash inside a word is kept",
			in:   "    curl http://host/page#anchor",
			want: "    curl http://host/page#anchor",
		},
		{
			name: "carriage returns are dropped",
			in:   "build: null\r\n    go build\r\n",
			want: "build: null\n    go build\n",
		},
		{
			name: "whitespace-only line becomes empty",
			in:   "a: null\n   \t\n    echo",
			want: "a: null\n\n    echo",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, config.Preprocess(tt.in))
		})
	}
}

func TestPreprocess_KeepsLineCount(t *testing.T) {
	in := "# one\n# two\nbuild: null # three\n    echo hi # four\n# five"
	out := config.Preprocess(in)
	assert.Equal(t, strings.Count(in, "\n"), strings.Count(out, "\n"))
}
