package agents

import (
	"blogsmith/internal/agents/handoff"
	"blogsmith/internal/tools"
)

// AgentConfig captures the static definition of one pipeline agent.
type AgentConfig struct {
	Type        AgentType
	Name        string
	Description string
	Instruction string
	Tools       []string

	// HandoffTargets is the agent's allowed hand-off set. Empty means the
	// agent is terminal and finishes the workflow.
	HandoffTargets []string
}

// DefaultAgentConfigs defines the three-stage article pipeline.
var DefaultAgentConfigs = map[AgentType]AgentConfig{
	AgentSearch: {
		Type:        AgentSearch,
		Name:        NameSearchAgent,
		Description: "Search the web for relevant information.",
		Instruction: "You are a search agent that finds relevant information about the given topic. " +
			"Use the web_search tool to gather material, then call record_search_results with your " +
			"collected notes. After collecting notes, hand off to WritePostAgent using the handoff tool.",
		Tools:          []string{tools.ToolWebSearch, tools.ToolRecordSearchResults},
		HandoffTargets: []string{NameWritePostAgent},
	},
	AgentWriter: {
		Type:        AgentWriter,
		Name:        NameWritePostAgent,
		Description: "Generate a blog post based on search results.",
		Instruction: "You are a writer agent that drafts a blog post in markdown format based on the " +
			"recorded search results. Store the draft with the write_post tool. When done, hand off " +
			"to SeoReviewerAgent for optimization using the handoff tool.",
		Tools:          []string{tools.ToolWritePost},
		HandoffTargets: []string{NameSeoReviewerAgent},
	},
	AgentSeoReviewer: {
		Type:        AgentSeoReviewer,
		Name:        NameSeoReviewerAgent,
		Description: "Review and improve SEO.",
		Instruction: "You are an SEO reviewer agent that improves the article's structure and SEO " +
			"quality. Store the final version with the improve_seo tool, then reply with the final article.",
		Tools:          []string{tools.ToolImproveSeo},
		HandoffTargets: nil,
	},
}

// PipelineOrder lists the agent types in pipeline order.
var PipelineOrder = []AgentType{AgentSearch, AgentWriter, AgentSeoReviewer}

// PipelineGraph builds the hand-off adjacency from the default configs.
func PipelineGraph() handoff.Graph {
	edges := make(map[string][]string, len(DefaultAgentConfigs))
	for _, cfg := range DefaultAgentConfigs {
		edges[cfg.Name] = cfg.HandoffTargets
	}
	return handoff.NewGraph(NameSearchAgent, edges)
}
