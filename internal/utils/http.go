package utils

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
)

// maxErrorBodySize caps how much of a non-2xx response body is read for
// logging and error reporting, preventing unbounded memory allocation from
// rogue responses.
const maxErrorBodySize int64 = 64 * 1024

// HeaderOption is a custom header applied to an outgoing request. Options are
// applied after the defaults, so they can override Authorization when a
// vendor uses its own auth header.
type HeaderOption struct {
	Key   string
	Value string
}

// DoPostStream performs an HTTP POST with a JSON body and returns the raw
// response with the body left open for incremental reading. The caller owns
// the body and must close it (see [CloseWithLog]).
//
// Unlike a synchronous round-trip helper, DoPostStream does not treat non-2xx
// statuses as errors: provider adapters map vendor status codes to
// user-facing messages themselves, so they need the response either way. An
// error is returned only when the request could not be built or sent at all.
func DoPostStream(ctx context.Context, client *http.Client, url string, apiKey string, body any, headers ...HeaderOption) (*http.Response, error) {
	httpClient := client
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	jsonBody, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("error marshaling body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewReader(jsonBody))
	if err != nil {
		return nil, fmt.Errorf("error creating request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	if apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+apiKey)
	}
	for _, header := range headers {
		req.Header.Set(header.Key, header.Value)
	}

	response, err := httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error sending stream request: %w", err)
	}

	return response, nil
}

// ReadErrorBody drains up to maxErrorBodySize bytes of a response body for
// diagnostics. It never fails: a read error yields an empty string.
func ReadErrorBody(body io.Reader) string {
	data, err := io.ReadAll(io.LimitReader(body, maxErrorBodySize))
	if err != nil {
		return ""
	}
	return string(data)
}

// CloseWithLog closes the given closer and logs a warning if closing fails.
// Used for HTTP response bodies where a close error must not override the
// primary control flow.
func CloseWithLog(closer io.Closer) {
	if err := closer.Close(); err != nil {
		slog.Warn("failed to close response body", "error", err.Error())
	}
}
