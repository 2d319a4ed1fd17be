package agents

import (
	"google.golang.org/adk/agent"
	"google.golang.org/adk/agent/llmagent"
	adkmodel "google.golang.org/adk/model"
	adktool "google.golang.org/adk/tool"

	"blogsmith/internal/agents/handoff"
	"blogsmith/internal/tools"
	agenttools "blogsmith/internal/tools/agents"
	"blogsmith/pkg/errors"
)

// FactoryDeps gathers external dependencies needed to instantiate agents.
type FactoryDeps struct {
	Model        adkmodel.LLM
	ToolRegistry *tools.Registry
}

// Factory creates configured agents and assembles the pipeline.
type Factory struct {
	model        adkmodel.LLM
	toolRegistry *tools.Registry
}

// NewFactory builds an agent factory with required dependencies.
func NewFactory(deps FactoryDeps) (*Factory, error) {
	if deps.Model == nil {
		return nil, errors.Wrap(errors.ErrInvalidInput, "model is required")
	}
	if deps.ToolRegistry == nil {
		return nil, errors.Wrap(errors.ErrInvalidInput, "tool registry is required")
	}
	return &Factory{model: deps.Model, toolRegistry: deps.ToolRegistry}, nil
}

// CreateAgent constructs a single ADK agent instance from a config. Agents
// with hand-off targets get a hand-off tool restricted to exactly that set.
func (f *Factory) CreateAgent(cfg AgentConfig, subAgents ...agent.Agent) (agent.Agent, error) {
	agentTools := make([]adktool.Tool, 0, len(cfg.Tools)+1)
	for _, toolName := range cfg.Tools {
		t, ok := f.toolRegistry.Get(toolName)
		if !ok {
			return nil, errors.Wrapf(errors.ErrNotFound, "tool not found: %s", toolName)
		}
		agentTools = append(agentTools, t)
	}

	if len(cfg.HandoffTargets) > 0 {
		agentTools = append(agentTools, agenttools.NewHandoffTool(cfg.Name, cfg.HandoffTargets))
	}

	return llmagent.New(llmagent.Config{
		Name:        cfg.Name,
		Description: cfg.Description,
		Model:       f.model,
		Tools:       agentTools,
		Instruction: cfg.Instruction,
		SubAgents:   subAgents,
	})
}

// Pipeline is the assembled agent tree plus the hand-off graph it was built
// against.
type Pipeline struct {
	Root  agent.Agent
	Graph handoff.Graph
}

// CreatePipeline builds the search, write, and SEO agents and wires them into
// a single tree rooted at the search agent. The graph is validated before any
// agent is constructed.
func (f *Factory) CreatePipeline() (*Pipeline, error) {
	graph := PipelineGraph()
	if err := graph.Validate(); err != nil {
		return nil, errors.Wrap(err, "pipeline graph")
	}

	seoReviewer, err := f.CreateAgent(DefaultAgentConfigs[AgentSeoReviewer])
	if err != nil {
		return nil, errors.Wrap(err, "create seo reviewer agent")
	}

	writer, err := f.CreateAgent(DefaultAgentConfigs[AgentWriter])
	if err != nil {
		return nil, errors.Wrap(err, "create writer agent")
	}

	search, err := f.CreateAgent(DefaultAgentConfigs[AgentSearch], writer, seoReviewer)
	if err != nil {
		return nil, errors.Wrap(err, "create search agent")
	}

	return &Pipeline{Root: search, Graph: graph}, nil
}

// CreateDefaultRegistry builds and registers the pipeline agents individually.
func (f *Factory) CreateDefaultRegistry() (*Registry, error) {
	reg := NewRegistry()

	for _, agentType := range PipelineOrder {
		cfg := DefaultAgentConfigs[agentType]
		ag, err := f.CreateAgent(cfg)
		if err != nil {
			return nil, err
		}
		reg.Register(cfg.Type, ag)
	}

	return reg, nil
}
