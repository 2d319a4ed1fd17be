package tools

import (
	"blogsmith/internal/tools/editorial"
	"blogsmith/internal/tools/search"
	"blogsmith/internal/tools/shared"
)

// BuildRegistry constructs all shared tools against the given dependencies.
// The hand-off tool is not registered here; it is built per agent with that
// agent's allowed target set.
func BuildRegistry(deps shared.Deps) *Registry {
	r := NewRegistry()

	r.Register(ToolWebSearch, search.NewWebSearchTool(deps))
	r.Register(ToolRecordSearchResults, editorial.NewRecordSearchResultsTool(deps))
	r.Register(ToolWritePost, editorial.NewWritePostTool(deps))
	r.Register(ToolImproveSeo, editorial.NewImproveSeoTool(deps))

	return r
}
