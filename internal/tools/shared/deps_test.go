package shared

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"blogsmith/internal/agents/state"
	"blogsmith/pkg/errors"
)

func TestActiveRun(t *testing.T) {
	runs := state.NewRegistry()
	deps := Deps{Runs: runs}

	t.Run("resolves run from metadata", func(t *testing.T) {
		run := runs.Begin("run-1", "topic")
		ctx := WithInvocationMetadata(context.Background(), InvocationMetadata{RunID: "run-1", Topic: "topic"})

		got, err := deps.ActiveRun(ctx)
		require.NoError(t, err)
		assert.Same(t, run, got)
	})

	t.Run("no metadata", func(t *testing.T) {
		_, err := deps.ActiveRun(context.Background())
		assert.ErrorIs(t, err, errors.ErrInternal)
	})

	t.Run("unknown run", func(t *testing.T) {
		ctx := WithInvocationMetadata(context.Background(), InvocationMetadata{RunID: "gone"})
		_, err := deps.ActiveRun(ctx)
		assert.ErrorIs(t, err, errors.ErrInternal)
	})
}

func TestInvocationMetadataRoundTrip(t *testing.T) {
	_, ok := MetadataFromContext(context.Background())
	assert.False(t, ok)

	ctx := WithInvocationMetadata(context.Background(), InvocationMetadata{RunID: "r", Topic: "t"})
	meta, ok := MetadataFromContext(ctx)
	require.True(t, ok)
	assert.Equal(t, "r", meta.RunID)
	assert.Equal(t, "t", meta.Topic)
}
