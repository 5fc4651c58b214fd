package gemini

import (
	"encoding/base64"
	"strings"

	"github.com/modelgate/modelgate/providers/ai"
)

const (
	roleUser  = "user"
	roleModel = "model"

	// systemPromptAck is the synthetic model turn appended after an injected
	// system prompt so the conversation opens with an established persona.
	systemPromptAck = "I understand and will follow these guidelines."

	// imageMimeType tags inline image attachments. Callers supply JPEG data.
	imageMimeType = "image/jpeg"
)

// Fixed generation parameters applied to every request.
const (
	defaultTemperature     = 0.7
	defaultTopP            = 0.95
	defaultTopK            = 40
	defaultMaxOutputTokens = 2048
)

// safetyCategories receive a uniform medium-and-above blocking threshold.
var safetyCategories = []string{
	"HARM_CATEGORY_HATE_SPEECH",
	"HARM_CATEGORY_SEXUALLY_EXPLICIT",
	"HARM_CATEGORY_DANGEROUS_CONTENT",
	"HARM_CATEGORY_HARASSMENT",
}

// buildPayload assembles the full request body: normalized history, optional
// injected system prompt, the current turn, fixed generation parameters, and
// the safety policy.
func buildPayload(request ai.ChatRequest, useVision bool) *generateContentRequest {
	contents := normalizeHistory(request.History)
	contents = injectSystemPrompt(contents, request.Model.SystemPrompt)
	contents = append(contents, currentTurn(request, useVision))

	maxOutputTokens := request.Model.MaxOutputTokens
	if maxOutputTokens <= 0 {
		maxOutputTokens = defaultMaxOutputTokens
	}

	return &generateContentRequest{
		Contents: contents,
		GenerationConfig: generationConfig{
			Temperature:     defaultTemperature,
			TopP:            defaultTopP,
			TopK:            defaultTopK,
			MaxOutputTokens: maxOutputTokens,
			StopSequences:   []string{},
		},
		SafetySettings: defaultSafetySettings(),
	}
}

// normalizeHistory translates conversation roles to Gemini's vocabulary.
// Entries with an unmapped role or empty/whitespace-only content are dropped.
func normalizeHistory(history []ai.Message) []content {
	var contents []content
	for _, message := range history {
		role, mapped := mapRole(message.Role)
		if !mapped {
			continue
		}
		if strings.TrimSpace(message.Content) == "" {
			continue
		}
		contents = append(contents, content{
			Role:  role,
			Parts: []part{{Text: message.Content}},
		})
	}
	return contents
}

// mapRole maps a generic role to Gemini's. Gemini has no system role, so
// system messages become user turns.
func mapRole(role ai.MessageRole) (string, bool) {
	switch role {
	case ai.RoleUser, ai.RoleSystem:
		return roleUser, true
	case ai.RoleAssistant:
		return roleModel, true
	default:
		return "", false
	}
}

// injectSystemPrompt prepends the configured system prompt as a synthetic
// user turn followed by a model acknowledgment, unless the history already
// opens with that same injected prompt.
func injectSystemPrompt(contents []content, prompt string) []content {
	if prompt == "" {
		return contents
	}
	if len(contents) > 0 &&
		contents[0].Role == roleUser &&
		len(contents[0].Parts) > 0 &&
		contents[0].Parts[0].Text == prompt {
		return contents
	}

	injected := []content{
		{Role: roleUser, Parts: []part{{Text: prompt}}},
		{Role: roleModel, Parts: []part{{Text: systemPromptAck}}},
	}
	return append(injected, contents...)
}

// currentTurn builds the outgoing turn from the caller's message and, when
// the request targets a vision-capable endpoint, the inline image attachment.
func currentTurn(request ai.ChatRequest, useVision bool) content {
	turn := content{Role: roleUser}
	if request.Message != "" {
		turn.Parts = append(turn.Parts, part{Text: request.Message})
	}
	if useVision && len(request.Image) > 0 {
		turn.Parts = append(turn.Parts, part{
			InlineData: &inlineData{
				MimeType: imageMimeType,
				Data:     base64.StdEncoding.EncodeToString(request.Image),
			},
		})
	}
	return turn
}

func defaultSafetySettings() []safetySetting {
	settings := make([]safetySetting, 0, len(safetyCategories))
	for _, category := range safetyCategories {
		settings = append(settings, safetySetting{
			Category:  category,
			Threshold: "BLOCK_MEDIUM_AND_ABOVE",
		})
	}
	return settings
}
