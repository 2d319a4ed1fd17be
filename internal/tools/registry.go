package tools

import (
	"sync"

	"google.golang.org/adk/tool"
)

// Registry stores constructed tools by name.
type Registry struct {
	mu    sync.RWMutex
	tools map[string]tool.Tool
}

// NewRegistry creates an empty tool registry.
func NewRegistry() *Registry {
	return &Registry{tools: make(map[string]tool.Tool)}
}

// Register adds a tool under its name, replacing any existing entry.
func (r *Registry) Register(name string, t tool.Tool) {
	r.mu.Lock()
	r.tools[name] = t
	r.mu.Unlock()
}

// Get returns the tool for the name.
func (r *Registry) Get(name string) (tool.Tool, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.tools[name]
	return t, ok
}

// Names returns the registered tool names.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.tools))
	for name := range r.tools {
		names = append(names, name)
	}
	return names
}
