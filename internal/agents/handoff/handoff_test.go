package handoff

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"blogsmith/pkg/errors"
)

func pipelineGraph() Graph {
	return NewGraph("SearchAgent", map[string][]string{
		"SearchAgent":      {"WritePostAgent"},
		"WritePostAgent":   {"SeoReviewerAgent"},
		"SeoReviewerAgent": {},
	})
}

func TestGraph_PipelineAdjacency(t *testing.T) {
	g := pipelineGraph()
	require.NoError(t, g.Validate())

	assert.Equal(t, []string{"WritePostAgent"}, g.AllowedTargets("SearchAgent"))
	assert.Equal(t, []string{"SeoReviewerAgent"}, g.AllowedTargets("WritePostAgent"))
	assert.Empty(t, g.AllowedTargets("SeoReviewerAgent"))
}

func TestGraph_Validate(t *testing.T) {
	t.Run("missing root", func(t *testing.T) {
		g := NewGraph("", map[string][]string{"A": {}})
		assert.ErrorIs(t, g.Validate(), errors.ErrWorkflowInvalid)
	})

	t.Run("undeclared root", func(t *testing.T) {
		g := NewGraph("Ghost", map[string][]string{"A": {}})
		assert.ErrorIs(t, g.Validate(), errors.ErrWorkflowInvalid)
	})

	t.Run("edge to undeclared agent", func(t *testing.T) {
		g := NewGraph("A", map[string][]string{"A": {"Ghost"}})
		assert.ErrorIs(t, g.Validate(), errors.ErrWorkflowInvalid)
	})

	t.Run("unreachable agent", func(t *testing.T) {
		g := NewGraph("A", map[string][]string{
			"A": {},
			"B": {"A"},
		})
		assert.ErrorIs(t, g.Validate(), errors.ErrWorkflowInvalid)
	})
}

func TestDecision_Validate(t *testing.T) {
	g := pipelineGraph()

	t.Run("legal continue", func(t *testing.T) {
		d, err := g.Decide("SearchAgent", Continue("WritePostAgent"))
		require.NoError(t, err)
		target, ok := d.Target()
		require.True(t, ok)
		assert.Equal(t, "WritePostAgent", target)
	})

	t.Run("out of set target rejected", func(t *testing.T) {
		_, err := g.Decide("SearchAgent", Continue("SeoReviewerAgent"))
		assert.ErrorIs(t, err, errors.ErrHandoffRejected)
	})

	t.Run("backward hand-off impossible by construction", func(t *testing.T) {
		_, err := g.Decide("WritePostAgent", Continue("SearchAgent"))
		assert.ErrorIs(t, err, errors.ErrHandoffRejected)
	})

	t.Run("terminal agent may terminate", func(t *testing.T) {
		d, err := g.Decide("SeoReviewerAgent", Terminate())
		require.NoError(t, err)
		assert.True(t, d.IsTerminate())
	})

	t.Run("terminal agent cannot continue", func(t *testing.T) {
		_, err := g.Decide("SeoReviewerAgent", Continue("SearchAgent"))
		assert.ErrorIs(t, err, errors.ErrHandoffRejected)
	})

	t.Run("non-terminal agent cannot terminate", func(t *testing.T) {
		_, err := g.Decide("SearchAgent", Terminate())
		assert.ErrorIs(t, err, errors.ErrHandoffRejected)
	})

	t.Run("empty target invalid", func(t *testing.T) {
		_, err := g.Decide("SearchAgent", Continue(""))
		assert.ErrorIs(t, err, errors.ErrInvalidInput)
	})

	t.Run("unknown agent", func(t *testing.T) {
		_, err := g.Decide("Ghost", Terminate())
		assert.ErrorIs(t, err, errors.ErrWorkflowInvalid)
	})
}
