// Package handoff models agent-to-agent control transfer as explicit,
// validated decisions over a static adjacency set.
package handoff

import (
	"blogsmith/pkg/errors"
)

// Decision is an agent's choice to either continue the pipeline at a named
// peer or terminate the workflow. The zero value is invalid; construct via
// Continue or Terminate.
type Decision struct {
	target string
	end    bool
}

// Continue returns a decision to hand control to the named agent.
func Continue(target string) Decision {
	return Decision{target: target}
}

// Terminate returns a decision to end the workflow.
func Terminate() Decision {
	return Decision{end: true}
}

// IsTerminate reports whether the decision ends the workflow.
func (d Decision) IsTerminate() bool {
	return d.end
}

// Target returns the hand-off target when continuing.
func (d Decision) Target() (string, bool) {
	if d.end || d.target == "" {
		return "", false
	}
	return d.target, true
}

// Validate checks the decision against the acting agent's allowed-target
// set. Terminate is only legal for agents with no outgoing edges; Continue
// is only legal when the target is in the set.
func (d Decision) Validate(allowed []string) error {
	if d.end {
		if len(allowed) > 0 {
			return errors.Wrapf(errors.ErrHandoffRejected, "terminate not allowed, expected hand-off to one of %v", allowed)
		}
		return nil
	}

	if d.target == "" {
		return errors.Wrap(errors.ErrInvalidInput, "hand-off target is required")
	}

	for _, name := range allowed {
		if name == d.target {
			return nil
		}
	}
	return errors.Wrapf(errors.ErrHandoffRejected, "target %s not in allowed set %v", d.target, allowed)
}
