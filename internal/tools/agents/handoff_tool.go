package agents

import (
	"google.golang.org/adk/tool"
	"google.golang.org/adk/tool/functiontool"

	"blogsmith/internal/agents/handoff"
	"blogsmith/internal/metrics"
	"blogsmith/pkg/errors"
	"blogsmith/pkg/logger"
)

// NewHandoffTool creates the hand-off tool for one agent. The allowed target
// set is fixed at construction, so an agent can only ever transfer along its
// declared pipeline edge. Terminal agents get an empty set and finish the
// workflow by not calling the tool at all.
func NewHandoffTool(source string, allowed []string) tool.Tool {
	t, _ := functiontool.New(
		functiontool.Config{
			Name:        "handoff",
			Description: handoffDescription(allowed),
		},
		func(ctx tool.Context, args map[string]interface{}) (map[string]interface{}, error) {
			target, _ := args["target"].(string)

			decision := handoff.Continue(target)
			if err := decision.Validate(allowed); err != nil {
				metrics.HandoffsTotal.WithLabelValues(source, "rejected").Inc()
				logger.Warnf("hand-off rejected from %s to %q: %v", source, target, err)
				return nil, errors.Wrapf(err, "handoff from %s", source)
			}

			if actions := ctx.Actions(); actions != nil {
				actions.TransferToAgent = target
			}

			metrics.HandoffsTotal.WithLabelValues(source, "accepted").Inc()
			logger.Infof("hand-off accepted: %s -> %s", source, target)
			return map[string]interface{}{
				"transferred": true,
				"target":      target,
				"message":     "Control transferred to " + target + ".",
			}, nil
		})
	return t
}

func handoffDescription(allowed []string) string {
	if len(allowed) == 1 {
		return "Hand control to " + allowed[0] + " once your step is complete."
	}
	return "Hand control to the next agent in the pipeline once your step is complete."
}
