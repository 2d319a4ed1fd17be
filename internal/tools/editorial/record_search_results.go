package editorial

import (
	"google.golang.org/adk/tool"
	"google.golang.org/adk/tool/functiontool"

	"blogsmith/internal/agents/state"
	"blogsmith/internal/metrics"
	"blogsmith/internal/tools/shared"
	"blogsmith/pkg/errors"
)

// NewRecordSearchResultsTool stores the search agent's collected notes in the
// run state so the writer agent can read them.
func NewRecordSearchResultsTool(deps shared.Deps) tool.Tool {
	t, _ := functiontool.New(
		functiontool.Config{
			Name:        "record_search_results",
			Description: "Record the collected web search results so the next agent can use them.",
		},
		func(ctx tool.Context, args map[string]interface{}) (map[string]interface{}, error) {
			text, ok := args["search_results"].(string)
			if !ok {
				metrics.ToolInvocations.WithLabelValues("record_search_results", "error").Inc()
				return nil, errors.Wrap(errors.ErrInvalidInput, "record_search_results: search_results is required")
			}

			run, err := deps.ActiveRun(ctx)
			if err != nil {
				metrics.ToolInvocations.WithLabelValues("record_search_results", "error").Inc()
				return nil, errors.Wrap(err, "record_search_results")
			}

			if err := state.SetSearchResults(run.State, text); err != nil {
				metrics.ToolInvocations.WithLabelValues("record_search_results", "error").Inc()
				run.Stages.MarkFailed(state.StageSearch, err.Error())
				return nil, errors.Wrap(err, "record_search_results: store results")
			}

			run.Stages.MarkSucceeded(state.StageSearch)
			metrics.ToolInvocations.WithLabelValues("record_search_results", "success").Inc()
			return map[string]interface{}{
				"message": "Search results recorded.",
			}, nil
		})
	return t
}
