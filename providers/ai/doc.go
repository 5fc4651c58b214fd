// Package ai defines the shared, provider-agnostic types and interfaces used
// across all LLM backend adapters (Gemini, OpenRouter, Fal). Each adapter's
// conversion layer is responsible for mapping these types to its own wire
// format, keeping the rest of the codebase decoupled from vendor-specific
// details.
//
// The central interface is [Provider]: a single streaming chat operation that
// yields text fragments through a [ChatStream]. Request data flows through
// [ChatRequest], which carries the caller's message, the resolved model
// entry, the conversation history, and an optional image.
//
// Failures that occur while a stream is in flight are never raised to the
// caller: adapters absorb them into the stream as one readable fragment and
// end the sequence, so the end user always receives text.
package ai
