package openrouter

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/modelgate/modelgate/internal/utils"
	"github.com/modelgate/modelgate/providers/ai"
)

const (
	defaultBaseURL          = "https://openrouter.ai/api/v1"
	chatCompletionsEndpoint = "/chat/completions"

	// requestTimeout bounds the whole request, connection establishment
	// through the last streamed byte.
	requestTimeout = 60 * time.Second

	defaultTemperature = 0.7
)

// User-facing messages for failures absorbed into the stream.
const (
	badRequestMessage = "Sorry, I couldn't process that request. It might contain content that can't be handled."
	authMessage       = "API access error. Please check your OpenRouter API key."
	rateLimitMessage  = "The OpenRouter API rate limit has been reached. Please try again later."
	networkMessage    = "Network error occurred while connecting to OpenRouter API."
	timeoutMessage    = "The request to OpenRouter API timed out. Please try again."
	unexpectedMessage = "An unexpected error occurred while processing your request."
)

// OpenRouterProvider implements the ai.Provider contract for the OpenRouter
// aggregator. One instance serves every model family OpenRouter fronts; the
// vendor-qualified model identifier travels in the request body.
type OpenRouterProvider struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

// New creates an OpenRouter provider for the given API key.
func New(apiKey string) *OpenRouterProvider {
	return &OpenRouterProvider{
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		client:  &http.Client{Timeout: requestTimeout},
	}
}

// WithBaseURL overrides the default API base URL.
func (provider *OpenRouterProvider) WithBaseURL(baseURL string) *OpenRouterProvider {
	provider.baseURL = baseURL
	return provider
}

// WithHTTPClient sets a custom HTTP client.
func (provider *OpenRouterProvider) WithHTTPClient(client *http.Client) *OpenRouterProvider {
	provider.client = client
	return provider
}

// Name implements ai.Provider.
func (provider *OpenRouterProvider) Name() string {
	return "openrouter"
}

// StreamChatCompletion implements ai.Provider against the OpenAI-compatible
// chat completions endpoint with stream=true. Delta content from each SSE
// event is yielded as a fragment; any failure becomes exactly one readable
// fragment and ends the stream.
func (provider *OpenRouterProvider) StreamChatCompletion(ctx context.Context, request ai.ChatRequest) *ai.ChatStream {
	return ai.NewChatStream(func(yield func(string) bool) {
		logger := slog.With(
			"provider", "openrouter",
			"stream_id", uuid.NewString(),
			"model", request.Model.Name,
		)

		payload := buildPayload(request)

		requestCtx, cancel := context.WithTimeout(ctx, requestTimeout)
		defer cancel()

		endpoint := provider.baseURL + chatCompletionsEndpoint
		response, err := utils.DoPostStream(requestCtx, provider.client, endpoint, provider.apiKey, payload)
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

		scanner := utils.NewSSEScanner(response.Body)
		for {
			eventPayload, scanErr := scanner.Next()
			if scanErr == io.EOF {
				return
			}
			if scanErr != nil {
				logger.Error("stream read failed", "error", scanErr)
				yield(transportMessage(scanErr))
				return
			}

			chunk, parseErr := utils.DecodeLenientJSON[chatCompletionStreamChunk](eventPayload)
			if parseErr != nil {
				logger.Warn("skipping malformed stream event",
					"event", utils.TruncateString(eventPayload, 200),
					"error", parseErr,
				)
				continue
			}

			for _, choice := range chunk.Choices {
				if choice.Delta.Content == "" {
					continue
				}
				if !yield(choice.Delta.Content) {
					return
				}
			}
		}
	})
}

// buildPayload assembles the chat completions request: optional system
// prompt, normalized history, and the current turn with an inline image when
// the model's capability flag allows it.
func buildPayload(request ai.ChatRequest) *chatCompletionRequest {
	messages := leadingSystemPrompt(request)
	messages = append(messages, normalizeHistory(request.History)...)
	messages = append(messages, currentTurn(request))

	payload := &chatCompletionRequest{
		Model:       request.Model.VendorModelID,
		Messages:    messages,
		Temperature: utils.Ptr(defaultTemperature),
		Stream:      true,
	}
	if request.Model.MaxOutputTokens > 0 {
		payload.MaxTokens = utils.Ptr(request.Model.MaxOutputTokens)
	}
	return payload
}

// leadingSystemPrompt returns the configured system prompt as an opening
// system message, unless the history already opens with that same prompt.
func leadingSystemPrompt(request ai.ChatRequest) []chatMessage {
	prompt := request.Model.SystemPrompt
	if prompt == "" {
		return nil
	}
	if len(request.History) > 0 &&
		request.History[0].Role == ai.RoleSystem &&
		request.History[0].Content == prompt {
		return nil
	}
	return []chatMessage{{Role: string(ai.RoleSystem), Content: prompt}}
}

// normalizeHistory passes the conversation through in the API's native role
// vocabulary. Entries with an unrecognized role or empty/whitespace-only
// content are dropped.
func normalizeHistory(history []ai.Message) []chatMessage {
	var messages []chatMessage
	for _, message := range history {
		switch message.Role {
		case ai.RoleUser, ai.RoleAssistant, ai.RoleSystem:
		default:
			continue
		}
		if strings.TrimSpace(message.Content) == "" {
			continue
		}
		messages = append(messages, chatMessage{
			Role:    string(message.Role),
			Content: message.Content,
		})
	}
	return messages
}

// currentTurn builds the outgoing user message. When an image is present and
// the model supports vision, the message becomes multimodal with the image
// carried as a base64 data URL.
func currentTurn(request ai.ChatRequest) chatMessage {
	if request.Model.SupportsVision && len(request.Image) > 0 {
		parts := []contentPart{}
		if request.Message != "" {
			parts = append(parts, contentPart{Type: "text", Text: request.Message})
		}
		parts = append(parts, contentPart{
			Type: "image_url",
			ImageURL: &contentImageURL{
				URL: "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(request.Image),
			},
		})
		return chatMessage{Role: string(ai.RoleUser), Content: parts}
	}
	return chatMessage{Role: string(ai.RoleUser), Content: request.Message}
}

// statusMessage maps a non-200 vendor status to the fixed user-facing
// vocabulary. OpenRouter signals bad credentials with 401 as well as 403.
func statusMessage(status int) string {
	switch status {
	case http.StatusBadRequest:
		return badRequestMessage
	case http.StatusUnauthorized, http.StatusForbidden:
		return authMessage
	case http.StatusTooManyRequests:
		return rateLimitMessage
	default:
		return fmt.Sprintf("Error communicating with OpenRouter API (HTTP %d).", status)
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
