package agents

import (
	"context"
	"iter"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	adkmodel "google.golang.org/adk/model"

	"blogsmith/internal/agents/state"
	"blogsmith/internal/tools"
	"blogsmith/internal/tools/shared"
)

type stubModel struct{}

func (stubModel) Name() string { return "stub-model" }

func (stubModel) GenerateContent(ctx context.Context, req *adkmodel.LLMRequest, stream bool) iter.Seq2[*adkmodel.LLMResponse, error] {
	return func(yield func(*adkmodel.LLMResponse, error) bool) {
		yield(&adkmodel.LLMResponse{TurnComplete: true}, nil)
	}
}

func stubToolRegistry() *tools.Registry {
	return tools.BuildRegistry(shared.Deps{Runs: state.NewRegistry()})
}

func TestNewFactory_RequiresDeps(t *testing.T) {
	_, err := NewFactory(FactoryDeps{ToolRegistry: stubToolRegistry()})
	assert.Error(t, err)

	_, err = NewFactory(FactoryDeps{Model: stubModel{}})
	assert.Error(t, err)
}

func TestFactory_CreateAgent(t *testing.T) {
	factory, err := NewFactory(FactoryDeps{Model: stubModel{}, ToolRegistry: stubToolRegistry()})
	require.NoError(t, err)

	ag, err := factory.CreateAgent(DefaultAgentConfigs[AgentSearch])
	require.NoError(t, err)
	assert.Equal(t, NameSearchAgent, ag.Name())
}

func TestFactory_CreateAgent_MissingTool(t *testing.T) {
	factory, err := NewFactory(FactoryDeps{Model: stubModel{}, ToolRegistry: tools.NewRegistry()})
	require.NoError(t, err)

	_, err = factory.CreateAgent(DefaultAgentConfigs[AgentSearch])
	assert.Error(t, err)
}

func TestFactory_CreatePipeline(t *testing.T) {
	factory, err := NewFactory(FactoryDeps{Model: stubModel{}, ToolRegistry: stubToolRegistry()})
	require.NoError(t, err)

	pipeline, err := factory.CreatePipeline()
	require.NoError(t, err)

	assert.Equal(t, NameSearchAgent, pipeline.Root.Name())
	require.NoError(t, pipeline.Graph.Validate())
}

func TestFactory_CreateDefaultRegistry(t *testing.T) {
	factory, err := NewFactory(FactoryDeps{Model: stubModel{}, ToolRegistry: stubToolRegistry()})
	require.NoError(t, err)

	reg, err := factory.CreateDefaultRegistry()
	require.NoError(t, err)

	for _, agentType := range PipelineOrder {
		ag, ok := reg.Get(agentType)
		require.True(t, ok, "missing agent %s", agentType)
		assert.Equal(t, DefaultAgentConfigs[agentType].Name, ag.Name())
	}
	assert.Len(t, reg.List(), 3)
}
