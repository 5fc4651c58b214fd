package utils

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// maxSSELineSize is the maximum size of a single SSE line (1 MB). The default
// bufio.Scanner limit is 64 KiB, which is too small for large SSE events such
// as long completions. If a line exceeds this limit the scanner returns a
// wrapped bufio.ErrTooLong via the Next() error path.
const maxSSELineSize = 1 * 1024 * 1024

// SSEScanner reads Server-Sent Events (SSE) from an io.Reader. It handles
// multi-line data fields, skips comments and empty lines, and detects the
// [DONE] sentinel used by OpenAI-compatible APIs such as OpenRouter.
type SSEScanner struct {
	scanner *bufio.Scanner
}

// NewSSEScanner creates an SSEScanner that reads SSE events from the given
// reader. Individual SSE lines up to maxSSELineSize are supported.
func NewSSEScanner(reader io.Reader) *SSEScanner {
	scanner := bufio.NewScanner(reader)
	scanner.Buffer(make([]byte, 0, 64*1024), maxSSELineSize)
	return &SSEScanner{
		scanner: scanner,
	}
}

// Next returns the next SSE data payload as a string. It skips empty lines
// and comment lines (starting with ':'). Returns io.EOF when no more events
// are available or when the [DONE] sentinel is encountered.
//
// Multi-line data fields (multiple consecutive "data:" lines) are joined
// with newlines into a single payload string.
func (sseScanner *SSEScanner) Next() (string, error) {
	var dataLines []string

	for sseScanner.scanner.Scan() {
		line := sseScanner.scanner.Text()

		// Empty line signals end of an event; flush accumulated data lines
		if line == "" {
			if len(dataLines) > 0 {
				payload := strings.Join(dataLines, "\n")
				return payload, nil
			}
			continue
		}

		// Skip SSE comments
		if strings.HasPrefix(line, ":") {
			continue
		}

		// Parse "data:" prefix
		if strings.HasPrefix(line, "data:") {
			data := strings.TrimPrefix(line, "data:")
			data = strings.TrimSpace(data)

			// Check for the [DONE] sentinel (OpenAI convention)
			if data == "[DONE]" {
				return "", io.EOF
			}

			dataLines = append(dataLines, data)
			continue
		}

		// Ignore other SSE fields (event:, id:, retry:) for now
	}

	// Check for scanner errors
	if err := sseScanner.scanner.Err(); err != nil {
		return "", fmt.Errorf("SSE scanner error: %w", err)
	}

	// If we have remaining data lines when the stream ends, return them
	if len(dataLines) > 0 {
		payload := strings.Join(dataLines, "\n")
		return payload, nil
	}

	return "", io.EOF
}
