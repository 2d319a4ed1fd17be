package shared

import (
	"context"

	"blogsmith/internal/adapters/tavily"
	"blogsmith/internal/agents/state"
	"blogsmith/pkg/errors"
)

// Deps gathers the external dependencies tools need.
type Deps struct {
	Runs   *state.Registry
	Search *tavily.Client
}

// ActiveRun resolves the current run from the invocation metadata carried in
// the context.
func (d Deps) ActiveRun(ctx context.Context) (*state.Run, error) {
	meta, ok := MetadataFromContext(ctx)
	if !ok {
		return nil, errors.Wrap(errors.ErrInternal, "no invocation metadata in context")
	}

	run := d.Runs.Get(meta.RunID)
	if run == nil {
		return nil, errors.Wrapf(errors.ErrInternal, "no active run %s", meta.RunID)
	}

	return run, nil
}
