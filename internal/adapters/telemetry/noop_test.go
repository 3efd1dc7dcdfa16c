package telemetry_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/tasker/internal/adapters/telemetry"
	"go.trai.ch/tasker/internal/core/domain"
	"go.trai.ch/tasker/internal/core/ports"
)

func TestNoOp_Record(t *testing.T) {
	tel := telemetry.NewNoOp()

	ctx, vertex := tel.Record(context.Background(), "build")
	require.NotNil(t, vertex)

	fromCtx, ok := ports.VertexFromContext(ctx)
	require.True(t, ok)
	assert.Same(t, vertex, fromCtx)

	n, err := vertex.Stdout().Write([]byte("out"))
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	_, err = vertex.Stderr().Write([]byte("err"))
	require.NoError(t, err)

	vertex.Log(domain.LogLevelInfo, "msg")
	vertex.Complete(errors.New("ignored"))
	assert.NoError(t, tel.Close())
}
