package editorial

import (
	"google.golang.org/adk/tool"
	"google.golang.org/adk/tool/functiontool"

	"blogsmith/internal/agents/state"
	"blogsmith/internal/metrics"
	"blogsmith/internal/tools/shared"
	"blogsmith/pkg/errors"
)

// NewWritePostTool stores the drafted article in the run state.
func NewWritePostTool(deps shared.Deps) tool.Tool {
	t, _ := functiontool.New(
		functiontool.Config{
			Name:        "write_post",
			Description: "Store the drafted blog post article.",
		},
		func(ctx tool.Context, args map[string]interface{}) (map[string]interface{}, error) {
			text, ok := args["article"].(string)
			if !ok {
				metrics.ToolInvocations.WithLabelValues("write_post", "error").Inc()
				return nil, errors.Wrap(errors.ErrInvalidInput, "write_post: article is required")
			}

			run, err := deps.ActiveRun(ctx)
			if err != nil {
				metrics.ToolInvocations.WithLabelValues("write_post", "error").Inc()
				return nil, errors.Wrap(err, "write_post")
			}

			if err := state.SetPostArticleContent(run.State, text); err != nil {
				metrics.ToolInvocations.WithLabelValues("write_post", "error").Inc()
				run.Stages.MarkFailed(state.StageDraft, err.Error())
				return nil, errors.Wrap(err, "write_post: store article")
			}

			run.Stages.MarkSucceeded(state.StageDraft)
			metrics.ToolInvocations.WithLabelValues("write_post", "success").Inc()
			return map[string]interface{}{
				"message": "Post article written.",
			}, nil
		})
	return t
}
