package utils

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/kaptinlin/jsonrepair"
)

// LineAssembler reassembles newline-delimited records from arbitrarily split
// byte chunks. A single JSON object's bytes may arrive spread across several
// network reads, and one read may carry several complete objects; the
// assembler keeps a persistent buffer so callers always see whole lines.
//
// The zero value is ready to use.
type LineAssembler struct {
	pending []byte
}

// Feed appends chunk to the internal buffer and returns every complete line
// now available, in order. Line terminators are stripped. Incomplete trailing
// data stays buffered for the next Feed call.
func (assembler *LineAssembler) Feed(chunk []byte) []string {
	assembler.pending = append(assembler.pending, chunk...)

	var lines []string
	for {
		newline := bytes.IndexByte(assembler.pending, '\n')
		if newline < 0 {
			break
		}
		line := assembler.pending[:newline]
		line = bytes.TrimSuffix(line, []byte("\r"))
		lines = append(lines, string(line))
		assembler.pending = assembler.pending[newline+1:]
	}
	return lines
}

// Rest returns whatever is buffered after the stream has ended, without a
// terminating newline ever arriving. The buffer is cleared. Vendors routinely
// omit the final newline, so callers should give this remainder one last
// parse attempt.
func (assembler *LineAssembler) Rest() string {
	rest := string(assembler.pending)
	assembler.pending = nil
	return rest
}

// DecodeLenientJSON unmarshals content into T. If strict unmarshaling fails,
// the content is run through jsonrepair once and parsing is retried; model
// APIs occasionally emit slightly malformed stream records that the repair
// pass recovers.
func DecodeLenientJSON[T any](content string) (*T, error) {
	var result T
	if err := json.Unmarshal([]byte(content), &result); err != nil {
		repaired, repairErr := jsonrepair.JSONRepair(content)
		if repairErr != nil {
			return nil, fmt.Errorf("failed to unmarshal content as %T and failed to repair JSON: unmarshal error: %w, repair error: %v", result, err, repairErr)
		}
		if err = json.Unmarshal([]byte(repaired), &result); err != nil {
			return nil, fmt.Errorf("failed to unmarshal repaired JSON as %T: %w", result, err)
		}
	}
	return &result, nil
}

// TruncateString shortens s to at most maxLen characters, appending a suffix
// that records the original total length so callers know data was omitted.
func TruncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return fmt.Sprintf("%s... (truncated, total: %d chars)", s[:maxLen], len(s))
}
