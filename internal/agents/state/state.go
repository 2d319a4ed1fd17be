package state

import (
	"iter"
	"sync"

	"google.golang.org/adk/session"
)

// Workflow state keys written by the recording tools.
const (
	KeySearchResults       = "search_results"
	KeyPostArticleContent  = "post_article_content"
	KeyImprovedPostArticle = "improved_post_article"
)

// articleKeys in pipeline order.
var articleKeys = []string{KeySearchResults, KeyPostArticleContent, KeyImprovedPostArticle}

// WorkflowState is the shared mapping the pipeline stages write through.
// Each run gets its own instance, so nothing leaks between runs. Every write
// bumps the version; tool calls within a run are serialized by the engine,
// the lock covers readers on other goroutines (UI stream, tests).
type WorkflowState struct {
	mu      sync.RWMutex
	version uint64
	values  map[string]interface{}
}

// NewWorkflowState returns a state with all article keys set to "".
func NewWorkflowState() *WorkflowState {
	values := make(map[string]interface{}, len(articleKeys))
	for _, key := range articleKeys {
		values[key] = ""
	}
	return &WorkflowState{values: values}
}

// Get returns the value for key, or session.ErrStateKeyNotExist.
func (s *WorkflowState) Get(key string) (interface{}, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if val, ok := s.values[key]; ok {
		return val, nil
	}
	return nil, session.ErrStateKeyNotExist
}

// Set stores a value, overwriting any prior value (last write wins).
func (s *WorkflowState) Set(key string, val interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.values[key] = val
	s.version++
	return nil
}

// All iterates over a point-in-time copy of the state.
func (s *WorkflowState) All() iter.Seq2[string, interface{}] {
	s.mu.RLock()
	copied := make(map[string]interface{}, len(s.values))
	for k, v := range s.values {
		copied[k] = v
	}
	s.mu.RUnlock()

	return func(yield func(string, interface{}) bool) {
		for k, v := range copied {
			if !yield(k, v) {
				return
			}
		}
	}
}

// Version returns the number of writes applied so far.
func (s *WorkflowState) Version() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.version
}

// Snapshot returns a copy of the string-valued article fields.
func (s *WorkflowState) Snapshot() map[string]string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := make(map[string]string, len(articleKeys))
	for _, key := range articleKeys {
		if text, ok := s.values[key].(string); ok {
			snap[key] = text
		} else {
			snap[key] = ""
		}
	}
	return snap
}

// Ensure WorkflowState satisfies the engine's state contract.
var _ session.State = (*WorkflowState)(nil)
