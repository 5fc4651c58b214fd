// Package openrouter implements the ai.Provider contract against the
// OpenRouter aggregator, which fronts OpenAI-, Anthropic-, and
// Perplexity-family models behind an OpenAI-compatible chat completions API.
// Responses stream as Server-Sent Events carrying delta objects, terminated
// by the [DONE] sentinel.
//
// Like every adapter, failures during streaming are absorbed into the stream
// as one readable fragment rather than raised to the caller.
package openrouter
