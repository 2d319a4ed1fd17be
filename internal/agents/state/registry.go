package state

import (
	"sync"
)

// Run bundles the per-run workflow state with its stage tracker.
type Run struct {
	ID     string
	Topic  string
	State  *WorkflowState
	Stages *StageTracker
}

// Registry holds in-flight runs keyed by run ID. Tools look their run up by
// the ID carried in the invocation context.
type Registry struct {
	mu   sync.RWMutex
	runs map[string]*Run
}

// NewRegistry creates an empty run registry.
func NewRegistry() *Registry {
	return &Registry{runs: make(map[string]*Run)}
}

// Begin creates and registers a fresh run. The state starts with all article
// keys empty regardless of any previous run for the same topic.
func (r *Registry) Begin(runID, topic string) *Run {
	run := &Run{
		ID:     runID,
		Topic:  topic,
		State:  NewWorkflowState(),
		Stages: NewStageTracker(),
	}

	r.mu.Lock()
	r.runs[runID] = run
	r.mu.Unlock()

	return run
}

// Get returns the run for the ID, or nil if unknown.
func (r *Registry) Get(runID string) *Run {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.runs[runID]
}

// End removes a finished run from the registry.
func (r *Registry) End(runID string) {
	r.mu.Lock()
	delete(r.runs, runID)
	r.mu.Unlock()
}
