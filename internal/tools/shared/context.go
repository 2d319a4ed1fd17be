package shared

import (
	"context"
)

type contextKey struct{}

// InvocationMetadata carries run-scoped identifiers into tool handlers.
type InvocationMetadata struct {
	RunID string
	Topic string
}

// WithInvocationMetadata injects tool invocation metadata into a context.
func WithInvocationMetadata(ctx context.Context, meta InvocationMetadata) context.Context {
	return context.WithValue(ctx, contextKey{}, meta)
}

// MetadataFromContext extracts invocation metadata if present.
func MetadataFromContext(ctx context.Context) (InvocationMetadata, bool) {
	meta, ok := ctx.Value(contextKey{}).(InvocationMetadata)
	return meta, ok
}
