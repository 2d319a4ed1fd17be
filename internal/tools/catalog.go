package tools

// Tool names exposed to agents.
const (
	ToolWebSearch           = "web_search"
	ToolRecordSearchResults = "record_search_results"
	ToolWritePost           = "write_post"
	ToolImproveSeo          = "improve_seo"
	ToolHandoff             = "handoff"
)

// Definition describes a tool for prompt construction and introspection.
type Definition struct {
	Name        string
	Description string
}

// Definitions returns metadata for all known tools.
func Definitions() []Definition {
	return []Definition{
		{
			Name:        ToolWebSearch,
			Description: "Search the web for a given topic.",
		},
		{
			Name:        ToolRecordSearchResults,
			Description: "Record search results for later use.",
		},
		{
			Name:        ToolWritePost,
			Description: "Write a blog post based on search results.",
		},
		{
			Name:        ToolImproveSeo,
			Description: "Improve SEO of the blog post.",
		},
		{
			Name:        ToolHandoff,
			Description: "Hand control to the next agent in the pipeline.",
		},
	}
}
