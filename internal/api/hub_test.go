package api

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"blogsmith/internal/agents"
)

func TestProgressHub_PublishAndSubscribe(t *testing.T) {
	hub := newProgressHub()

	hub.Publish(agents.ProgressEvent{RunID: "r1", Kind: "started"})

	events, cancel := hub.Subscribe("r1")
	defer cancel()

	first := <-events
	assert.Equal(t, "started", first.Kind)

	hub.Publish(agents.ProgressEvent{RunID: "r1", Kind: "tool_call", Message: "web_search"})
	second := <-events
	assert.Equal(t, "tool_call", second.Kind)
	assert.Equal(t, "web_search", second.Message)
}

func TestProgressHub_RunIsolation(t *testing.T) {
	hub := newProgressHub()

	hub.Publish(agents.ProgressEvent{RunID: "r1", Kind: "started"})

	events, cancel := hub.Subscribe("r2")
	defer cancel()

	select {
	case ev := <-events:
		t.Fatalf("unexpected event for other run: %+v", ev)
	default:
	}
}

func TestProgressHub_FinishClosesSubscribers(t *testing.T) {
	hub := newProgressHub()

	events, cancel := hub.Subscribe("r1")
	defer cancel()

	hub.Publish(agents.ProgressEvent{RunID: "r1", Kind: "completed"})
	hub.Finish("r1")

	ev, ok := <-events
	require.True(t, ok)
	assert.Equal(t, "completed", ev.Kind)

	_, ok = <-events
	assert.False(t, ok)
}

func TestProgressHub_SubscribeAfterFinish(t *testing.T) {
	hub := newProgressHub()

	hub.Publish(agents.ProgressEvent{RunID: "r1", Kind: "started"})
	hub.Publish(agents.ProgressEvent{RunID: "r1", Kind: "completed"})
	hub.Finish("r1")

	events, cancel := hub.Subscribe("r1")
	defer cancel()

	var kinds []string
	for ev := range events {
		kinds = append(kinds, ev.Kind)
	}
	assert.Equal(t, []string{"started", "completed"}, kinds)
}
