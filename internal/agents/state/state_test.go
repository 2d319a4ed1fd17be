package state

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/adk/session"
)

func TestWorkflowState_FreshKeysEmpty(t *testing.T) {
	ws := NewWorkflowState()

	for _, key := range []string{KeySearchResults, KeyPostArticleContent, KeyImprovedPostArticle} {
		val, err := ws.Get(key)
		require.NoError(t, err, "key %s must exist on a fresh state", key)
		assert.Equal(t, "", val, "key %s must start empty", key)
	}

	assert.Equal(t, uint64(0), ws.Version())
}

func TestWorkflowState_OverwriteSemantics(t *testing.T) {
	ws := NewWorkflowState()

	require.NoError(t, SetSearchResults(ws, "first"))
	require.NoError(t, SetSearchResults(ws, "second"))

	assert.Equal(t, "second", GetSearchResults(ws))
	assert.Equal(t, uint64(2), ws.Version())
}

func TestWorkflowState_TypedHelpers(t *testing.T) {
	ws := NewWorkflowState()

	require.NoError(t, SetSearchResults(ws, "notes"))
	require.NoError(t, SetPostArticleContent(ws, "draft"))
	require.NoError(t, SetImprovedPostArticle(ws, "final"))

	assert.Equal(t, "notes", GetSearchResults(ws))
	assert.Equal(t, "draft", GetPostArticleContent(ws))
	assert.Equal(t, "final", GetImprovedPostArticle(ws))
}

func TestWorkflowState_UnknownKey(t *testing.T) {
	ws := NewWorkflowState()

	_, err := ws.Get("no_such_key")
	assert.ErrorIs(t, err, session.ErrStateKeyNotExist)
}

func TestWorkflowState_Snapshot(t *testing.T) {
	ws := NewWorkflowState()
	require.NoError(t, SetPostArticleContent(ws, "draft"))

	snap := ws.Snapshot()
	assert.Equal(t, "", snap[KeySearchResults])
	assert.Equal(t, "draft", snap[KeyPostArticleContent])

	// Mutating the snapshot must not touch the state.
	snap[KeyPostArticleContent] = "tampered"
	assert.Equal(t, "draft", GetPostArticleContent(ws))
}

func TestRegistry_FreshStatePerRun(t *testing.T) {
	reg := NewRegistry()

	first := reg.Begin("run-1", "microgrids")
	require.NoError(t, SetImprovedPostArticle(first.State, "final article"))
	reg.End("run-1")

	second := reg.Begin("run-2", "microgrids")
	assert.Equal(t, "", GetImprovedPostArticle(second.State), "state must not leak across runs")

	assert.Nil(t, reg.Get("run-1"))
	assert.Same(t, second, reg.Get("run-2"))
}

func TestStageTracker_Report(t *testing.T) {
	tracker := NewStageTracker()
	tracker.MarkSucceeded(StageSearch)
	tracker.MarkFailed(StageImprove, "tool error")

	report := tracker.Report()
	require.Len(t, report, 3)
	assert.Equal(t, StageSucceeded, report[0].Status)
	assert.Equal(t, StageSkipped, report[1].Status)
	assert.Equal(t, StageFailed, report[2].Status)
	assert.Equal(t, "tool error", report[2].Reason)
}

func TestStageTracker_Degraded(t *testing.T) {
	t.Run("improve missing after draft succeeded", func(t *testing.T) {
		tracker := NewStageTracker()
		tracker.MarkSucceeded(StageSearch)
		tracker.MarkSucceeded(StageDraft)
		assert.True(t, tracker.Degraded())
	})

	t.Run("full pipeline", func(t *testing.T) {
		tracker := NewStageTracker()
		tracker.MarkSucceeded(StageSearch)
		tracker.MarkSucceeded(StageDraft)
		tracker.MarkSucceeded(StageImprove)
		assert.False(t, tracker.Degraded())
	})

	t.Run("nothing ran", func(t *testing.T) {
		tracker := NewStageTracker()
		assert.False(t, tracker.Degraded())
	})
}
