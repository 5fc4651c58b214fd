package gemini

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/modelgate/modelgate/catalog"
	"github.com/modelgate/modelgate/internal/utils"
	"github.com/modelgate/modelgate/providers/ai"
)

const (
	defaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"

	// Endpoint paths used when the model entry does not encode a version token.
	defaultModelPath       = "models/gemini-pro"
	defaultVisionModelPath = "models/gemini-pro-vision"

	// requestTimeout bounds the whole request, connection establishment
	// through the last streamed byte.
	requestTimeout = 60 * time.Second
)

// User-facing messages for failures absorbed into the stream.
const (
	badRequestMessage = "Sorry, I couldn't process that request. It might contain content that can't be handled."
	authMessage       = "API access error. Please check your Gemini API key."
	rateLimitMessage  = "The Gemini API rate limit has been reached. Please try again later."
	networkMessage    = "Network error occurred while connecting to Gemini API."
	timeoutMessage    = "The request to Gemini API timed out. Please try again."
	unexpectedMessage = "An unexpected error occurred while processing your request."
)

// GeminiProvider implements the ai.Provider contract for Google's Gemini API.
type GeminiProvider struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

// New creates a Gemini provider for the given API key.
func New(apiKey string) *GeminiProvider {
	return &GeminiProvider{
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		client:  &http.Client{Timeout: requestTimeout},
	}
}

// WithBaseURL overrides the default API base URL.
func (provider *GeminiProvider) WithBaseURL(baseURL string) *GeminiProvider {
	provider.baseURL = baseURL
	return provider
}

// WithHTTPClient sets a custom HTTP client.
func (provider *GeminiProvider) WithHTTPClient(client *http.Client) *GeminiProvider {
	provider.client = client
	return provider
}

// Name implements ai.Provider.
func (provider *GeminiProvider) Name() string {
	return "gemini"
}

// StreamChatCompletion implements ai.Provider against the
// streamGenerateContent endpoint. Fragments are yielded as the
// newline-delimited JSON response arrives; any failure becomes exactly one
// readable fragment and ends the stream.
func (provider *GeminiProvider) StreamChatCompletion(ctx context.Context, request ai.ChatRequest) *ai.ChatStream {
	return ai.NewChatStream(func(yield func(string) bool) {
		logger := slog.With(
			"provider", "gemini",
			"stream_id", uuid.NewString(),
			"model", request.Model.Name,
		)

		useVision := request.Model.SupportsVision && len(request.Image) > 0
		modelPath := resolveModelPath(request.Model, useVision)
		payload := buildPayload(request, useVision)

		requestCtx, cancel := context.WithTimeout(ctx, requestTimeout)
		defer cancel()

		endpoint := fmt.Sprintf("%s/%s:streamGenerateContent?key=%s",
			provider.baseURL, modelPath, url.QueryEscape(provider.apiKey))

		response, err := utils.DoPostStream(requestCtx, provider.client, endpoint, "", payload)
		if err != nil {
			logger.Error("request failed", "error", err)
			yield(transportMessage(err))
			return
		}
		defer utils.CloseWithLog(response.Body)

		if response.StatusCode != http.StatusOK {
			body := utils.ReadErrorBody(response.Body)
			logger.Error("vendor rejected request",
				"status", response.StatusCode,
				"body", utils.TruncateString(body, 500),
			)
			yield(statusMessage(response.StatusCode))
			return
		}

		// Decode the body incrementally. A single JSON object's bytes may be
		// split across reads, and one read may carry several objects, so
		// bytes pass through the line assembler before parsing.
		var assembler utils.LineAssembler
		buffer := make([]byte, 32*1024)
		for {
			n, readErr := response.Body.Read(buffer)
			if n > 0 {
				for _, line := range assembler.Feed(buffer[:n]) {
					for _, fragment := range extractFragments(logger, line) {
						if !yield(fragment) {
							return
						}
					}
				}
			}
			if readErr == io.EOF {
				break
			}
			if readErr != nil {
				logger.Error("stream read failed", "error", readErr)
				yield(transportMessage(readErr))
				return
			}
		}

		// The final object often arrives without a trailing newline; give the
		// remainder one last parse attempt.
		if rest := assembler.Rest(); strings.TrimSpace(rest) != "" {
			for _, fragment := range extractFragments(logger, rest) {
				if !yield(fragment) {
					return
				}
			}
		}
	})
}

// resolveModelPath chooses the vendor endpoint path. When the model entry's
// identifier encodes a Gemini version token (e.g.
// "google/gemini-2.5-pro-preview-03-25"), that version is substituted into
// the path so different generations route to different URLs; otherwise the
// fixed default paths apply. useVision selects the vision-capable variant.
func resolveModelPath(entry catalog.ModelEntry, useVision bool) string {
	fallback := defaultModelPath
	if useVision {
		fallback = defaultVisionModelPath
	}

	variant := entry.VendorModelID
	if idx := strings.LastIndex(variant, "/"); idx >= 0 {
		variant = variant[idx+1:]
	}
	if !strings.Contains(strings.ToLower(variant), "gemini") {
		return fallback
	}

	tokens := strings.Split(variant, "-")
	if len(tokens) < 2 {
		return fallback
	}
	base := fmt.Sprintf("gemini-%s-pro", tokens[1])
	if useVision {
		base += "-vision"
	}
	return "models/" + base
}

// statusMessage maps a non-200 vendor status to the fixed user-facing
// vocabulary.
func statusMessage(status int) string {
	switch status {
	case http.StatusBadRequest:
		return badRequestMessage
	case http.StatusForbidden:
		return authMessage
	case http.StatusTooManyRequests:
		return rateLimitMessage
	default:
		return fmt.Sprintf("Error communicating with Gemini API (HTTP %d).", status)
	}
}

// transportMessage categorizes a transport-level failure into one readable
// message: timeout, network, or unexpected.
func transportMessage(err error) string {
	if errors.Is(err, context.DeadlineExceeded) {
		return timeoutMessage
	}
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		if urlErr.Timeout() {
			return timeoutMessage
		}
		return networkMessage
	}
	return unexpectedMessage
}

// extractFragments parses one complete line as a partial response object and
// returns its text fragments. Malformed lines are logged and skipped; they do
// not terminate the stream.
func extractFragments(logger *slog.Logger, line string) []string {
	if strings.TrimSpace(line) == "" {
		return nil
	}

	response, err := utils.DecodeLenientJSON[generateContentResponse](line)
	if err != nil {
		logger.Warn("skipping malformed stream line",
			"line", utils.TruncateString(line, 200),
			"error", err,
		)
		return nil
	}

	if len(response.Candidates) == 0 || response.Candidates[0].Content == nil {
		return nil
	}

	var fragments []string
	for _, candidatePart := range response.Candidates[0].Content.Parts {
		if candidatePart.Text != "" {
			fragments = append(fragments, candidatePart.Text)
		}
	}
	return fragments
}
