package search

import (
	"google.golang.org/adk/tool"
	"google.golang.org/adk/tool/functiontool"

	"blogsmith/internal/metrics"
	"blogsmith/internal/tools/shared"
	"blogsmith/pkg/errors"
	"blogsmith/pkg/logger"
)

// NewWebSearchTool performs a live web search and returns the formatted
// results to the calling agent. It does not touch workflow state; recording
// is a separate, explicit step.
func NewWebSearchTool(deps shared.Deps) tool.Tool {
	t, _ := functiontool.New(
		functiontool.Config{
			Name:        "web_search",
			Description: "Search the web for a given topic and return the most relevant results.",
		},
		func(ctx tool.Context, args map[string]interface{}) (map[string]interface{}, error) {
			if deps.Search == nil {
				return nil, errors.Wrap(errors.ErrInternal, "web_search: search client not configured")
			}

			query, ok := args["query"].(string)
			if !ok || query == "" {
				if meta, found := shared.MetadataFromContext(ctx); found {
					query = meta.Topic
				}
			}
			if query == "" {
				metrics.ToolInvocations.WithLabelValues("web_search", "error").Inc()
				return nil, errors.Wrap(errors.ErrInvalidInput, "web_search: query is required")
			}

			resp, err := deps.Search.Search(ctx, query)
			if err != nil {
				metrics.ToolInvocations.WithLabelValues("web_search", "error").Inc()
				logger.Warnf("web_search failed for query %q: %v", query, err)
				return nil, errors.Wrap(err, "web_search")
			}

			metrics.ToolInvocations.WithLabelValues("web_search", "success").Inc()
			return map[string]interface{}{
				"query":   query,
				"count":   len(resp.Results),
				"results": resp.FormatResults(),
			}, nil
		})
	return t
}
