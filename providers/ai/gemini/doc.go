// Package gemini implements the ai.Provider contract against Google's Gemini
// API. It streams from the streamGenerateContent endpoint, decoding the
// newline-delimited JSON response body incrementally: bytes are accumulated
// in a line assembler because a single JSON object may be split across
// network reads and one read may carry several objects.
//
// The adapter selects a vision or text endpoint per request, normalizes
// conversation roles to Gemini's vocabulary (which has no system role), and
// absorbs every transport or vendor failure into a single readable fragment
// on the stream.
package gemini
