package handoff

import (
	"blogsmith/pkg/errors"
)

// Graph is the static hand-off adjacency over agent names: which agents
// exist, which agent starts, and who each agent may hand off to. An empty
// target list marks a terminal agent.
type Graph struct {
	Root  string
	Edges map[string][]string
}

// NewGraph constructs a hand-off graph.
func NewGraph(root string, edges map[string][]string) Graph {
	return Graph{Root: root, Edges: edges}
}

// AllowedTargets returns the hand-off targets for an agent.
func (g Graph) AllowedTargets(agent string) []string {
	return g.Edges[agent]
}

// Contains reports whether the agent is part of the graph.
func (g Graph) Contains(agent string) bool {
	_, ok := g.Edges[agent]
	return ok
}

// Validate checks structural invariants: the root is a known agent, every
// edge points at a known agent, and every agent is reachable from the root.
func (g Graph) Validate() error {
	if g.Root == "" {
		return errors.Wrap(errors.ErrWorkflowInvalid, "root agent is required")
	}
	if !g.Contains(g.Root) {
		return errors.Wrapf(errors.ErrWorkflowInvalid, "root agent %s not declared", g.Root)
	}

	for agent, targets := range g.Edges {
		for _, target := range targets {
			if !g.Contains(target) {
				return errors.Wrapf(errors.ErrWorkflowInvalid, "agent %s hands off to undeclared agent %s", agent, target)
			}
		}
	}

	reachable := map[string]bool{g.Root: true}
	frontier := []string{g.Root}
	for len(frontier) > 0 {
		current := frontier[0]
		frontier = frontier[1:]
		for _, target := range g.Edges[current] {
			if !reachable[target] {
				reachable[target] = true
				frontier = append(frontier, target)
			}
		}
	}

	for agent := range g.Edges {
		if !reachable[agent] {
			return errors.Wrapf(errors.ErrWorkflowInvalid, "agent %s unreachable from root", agent)
		}
	}

	return nil
}

// Decide validates a decision made by the named agent and returns it
// unchanged if legal.
func (g Graph) Decide(agent string, d Decision) (Decision, error) {
	if !g.Contains(agent) {
		return Decision{}, errors.Wrapf(errors.ErrWorkflowInvalid, "unknown agent %s", agent)
	}
	if err := d.Validate(g.AllowedTargets(agent)); err != nil {
		return Decision{}, err
	}
	return d, nil
}
