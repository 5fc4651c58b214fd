// Package utils provides shared low-level helpers used throughout the
// modelgate internals. It covers the streaming HTTP POST helper used by every
// provider adapter, incremental decoders for the two wire framings the
// backends speak (newline-delimited JSON and Server-Sent Events), and small
// generic utilities.
//
// Key entry points: [DoPostStream] for opening a streaming JSON POST,
// [LineAssembler] for reassembling newline-delimited JSON objects from
// arbitrary network reads, [SSEScanner] for SSE event payloads, and
// [DecodeLenientJSON] for JSON parsing with a repair fallback.
package utils
