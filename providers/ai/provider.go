package ai

import "context"

// Provider is the contract every backend adapter implements against one
// vendor's wire protocol.
//
// StreamChatCompletion produces fragments incrementally as network data
// arrives; it never buffers the full response before yielding the first
// fragment when the transport supports incremental delivery. The returned
// stream always terminates: each request is bounded by the adapter's fixed
// timeout. Transport and protocol failures are not raised — the adapter
// terminates the stream after yielding exactly one human-readable fragment
// describing the failure.
//
// Adapters are stateless with respect to individual requests: no
// request-scoped mutable fields survive past the call, so a single adapter
// instance may serve concurrent requests.
type Provider interface {
	// Name returns the adapter's identifier (e.g. "gemini", "openrouter").
	Name() string

	// StreamChatCompletion performs a streaming chat request, returning a
	// ChatStream that yields text fragments as they arrive.
	StreamChatCompletion(ctx context.Context, request ChatRequest) *ChatStream
}
