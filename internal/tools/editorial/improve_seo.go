package editorial

import (
	"google.golang.org/adk/tool"
	"google.golang.org/adk/tool/functiontool"

	"blogsmith/internal/agents/state"
	"blogsmith/internal/metrics"
	"blogsmith/internal/tools/shared"
	"blogsmith/pkg/errors"
)

// NewImproveSeoTool stores the SEO-improved final article in the run state.
// The draft stays untouched so a failed improvement can still fall back to it.
func NewImproveSeoTool(deps shared.Deps) tool.Tool {
	t, _ := functiontool.New(
		functiontool.Config{
			Name:        "improve_seo",
			Description: "Store the SEO-improved version of the blog post article.",
		},
		func(ctx tool.Context, args map[string]interface{}) (map[string]interface{}, error) {
			text, ok := args["article"].(string)
			if !ok {
				metrics.ToolInvocations.WithLabelValues("improve_seo", "error").Inc()
				return nil, errors.Wrap(errors.ErrInvalidInput, "improve_seo: article is required")
			}

			run, err := deps.ActiveRun(ctx)
			if err != nil {
				metrics.ToolInvocations.WithLabelValues("improve_seo", "error").Inc()
				return nil, errors.Wrap(err, "improve_seo")
			}

			if err := state.SetImprovedPostArticle(run.State, text); err != nil {
				metrics.ToolInvocations.WithLabelValues("improve_seo", "error").Inc()
				run.Stages.MarkFailed(state.StageImprove, err.Error())
				return nil, errors.Wrap(err, "improve_seo: store article")
			}

			run.Stages.MarkSucceeded(state.StageImprove)
			metrics.ToolInvocations.WithLabelValues("improve_seo", "success").Inc()
			return map[string]interface{}{
				"message": "SEO improved and final article stored.",
			}, nil
		})
	return t
}
