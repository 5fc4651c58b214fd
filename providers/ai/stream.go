package ai

import (
	"iter"
	"strings"
)

// ChatStream wraps a lazy sequence of text fragments produced by a streaming
// chat request. It supports range-based iteration for real-time delivery and
// a convenience Collect() for callers who want the whole response.
//
// The sequence is finite and non-restartable: iterate it once. Callers must
// consume the stream, either by ranging over Iter() (breaking out early is
// fine) or by calling Collect(). The producing adapter may hold open
// resources, such as an HTTP response body, that are released only when the
// iterator completes or is abandoned via a loop break.
type ChatStream struct {
	iterator iter.Seq[string]
}

// NewChatStream creates a ChatStream from a raw fragment iterator. The
// iterator must be finite and must not panic; failures are expected to have
// been converted into readable fragments by the producer.
func NewChatStream(iterator iter.Seq[string]) *ChatStream {
	return &ChatStream{iterator: iterator}
}

// SingleFragmentStream wraps one fragment as a complete stream. Adapters use
// this for failure messages discovered before any network read, and backends
// without incremental delivery use it to return their whole response.
func SingleFragmentStream(fragment string) *ChatStream {
	return NewChatStream(func(yield func(string) bool) {
		yield(fragment)
	})
}

// Iter returns the underlying iterator for use with range-over-func loops.
//
// Example:
//
//	for fragment := range stream.Iter() {
//	    fmt.Print(fragment)
//	}
func (stream *ChatStream) Iter() iter.Seq[string] {
	return stream.iterator
}

// Collect consumes the entire stream and returns the concatenated text. This
// still benefits from streaming transport (lower time-to-first-byte) even
// though the caller only sees the final string.
func (stream *ChatStream) Collect() string {
	var builder strings.Builder
	for fragment := range stream.iterator {
		builder.WriteString(fragment)
	}
	return builder.String()
}
