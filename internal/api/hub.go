package api

import (
	"sync"

	"blogsmith/internal/agents"
)

// progressHub fans run progress events out to websocket subscribers. Events
// are kept per run so a subscriber that connects after the run started still
// sees the full history.
type progressHub struct {
	mu      sync.Mutex
	history map[string][]agents.ProgressEvent
	subs    map[string]map[chan agents.ProgressEvent]struct{}
	closed  map[string]bool
}

func newProgressHub() *progressHub {
	return &progressHub{
		history: make(map[string][]agents.ProgressEvent),
		subs:    make(map[string]map[chan agents.ProgressEvent]struct{}),
		closed:  make(map[string]bool),
	}
}

// Publish records the event and delivers it to current subscribers. Slow
// subscribers are skipped rather than blocking the run.
func (h *progressHub) Publish(event agents.ProgressEvent) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.history[event.RunID] = append(h.history[event.RunID], event)
	for ch := range h.subs[event.RunID] {
		select {
		case ch <- event:
		default:
		}
	}
}

// Subscribe returns a channel of events for the run, prefilled with history.
// The returned cancel func must be called when the subscriber goes away.
func (h *progressHub) Subscribe(runID string) (<-chan agents.ProgressEvent, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()

	ch := make(chan agents.ProgressEvent, 64)
	for _, event := range h.history[runID] {
		select {
		case ch <- event:
		default:
		}
	}

	if h.closed[runID] {
		close(ch)
		return ch, func() {}
	}

	if h.subs[runID] == nil {
		h.subs[runID] = make(map[chan agents.ProgressEvent]struct{})
	}
	h.subs[runID][ch] = struct{}{}

	cancel := func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		if _, ok := h.subs[runID][ch]; ok {
			delete(h.subs[runID], ch)
		}
	}
	return ch, cancel
}

// Finish closes all subscriber channels for the run and drops its state.
func (h *progressHub) Finish(runID string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.closed[runID] = true
	for ch := range h.subs[runID] {
		close(ch)
	}
	delete(h.subs, runID)
}

// Forget drops the run history once the result has been collected.
func (h *progressHub) Forget(runID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.history, runID)
	delete(h.closed, runID)
}
