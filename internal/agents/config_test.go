package agents

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"blogsmith/internal/tools"
)

func TestPipelineGraph(t *testing.T) {
	g := PipelineGraph()
	require.NoError(t, g.Validate())

	assert.Equal(t, NameSearchAgent, g.Root)
	assert.Equal(t, []string{NameWritePostAgent}, g.AllowedTargets(NameSearchAgent))
	assert.Equal(t, []string{NameSeoReviewerAgent}, g.AllowedTargets(NameWritePostAgent))
	assert.Empty(t, g.AllowedTargets(NameSeoReviewerAgent))
}

func TestDefaultAgentConfigs(t *testing.T) {
	require.Len(t, DefaultAgentConfigs, 3)

	search := DefaultAgentConfigs[AgentSearch]
	assert.Equal(t, NameSearchAgent, search.Name)
	assert.Equal(t, []string{tools.ToolWebSearch, tools.ToolRecordSearchResults}, search.Tools)

	writer := DefaultAgentConfigs[AgentWriter]
	assert.Equal(t, NameWritePostAgent, writer.Name)
	assert.Equal(t, []string{tools.ToolWritePost}, writer.Tools)

	seo := DefaultAgentConfigs[AgentSeoReviewer]
	assert.Equal(t, NameSeoReviewerAgent, seo.Name)
	assert.Equal(t, []string{tools.ToolImproveSeo}, seo.Tools)
	assert.Empty(t, seo.HandoffTargets)

	for _, agentType := range PipelineOrder {
		cfg, ok := DefaultAgentConfigs[agentType]
		require.True(t, ok)
		assert.NotEmpty(t, cfg.Instruction)
		assert.NotEmpty(t, cfg.Description)
	}
}
