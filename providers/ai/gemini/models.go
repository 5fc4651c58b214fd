package gemini

/*
	GEMINI API - REQUEST TYPES
*/

// generateContentRequest represents the request to Gemini's
// streamGenerateContent endpoint.
type generateContentRequest struct {
	Contents         []content        `json:"contents"`
	GenerationConfig generationConfig `json:"generationConfig"`
	SafetySettings   []safetySetting  `json:"safetySettings"`
}

// content represents a conversation turn with role and parts.
type content struct {
	Role  string `json:"role,omitempty"` // "user" or "model"
	Parts []part `json:"parts"`
}

// part represents a content part: text or inline binary data.
type part struct {
	Text       string      `json:"text,omitempty"`
	InlineData *inlineData `json:"inline_data,omitempty"` // For multimodal content (images)
}

// inlineData represents inline base64-encoded binary data.
type inlineData struct {
	MimeType string `json:"mime_type"`
	Data     string `json:"data"`
}

// generationConfig represents generation parameters for Gemini. All fields
// are emitted explicitly, including the empty stopSequences list.
type generationConfig struct {
	Temperature     float64  `json:"temperature"`
	TopP            float64  `json:"topP"`
	TopK            int      `json:"topK"`
	MaxOutputTokens int      `json:"maxOutputTokens"`
	StopSequences   []string `json:"stopSequences"`
}

// safetySetting represents a safety setting for content filtering.
type safetySetting struct {
	Category  string `json:"category"`
	Threshold string `json:"threshold"`
}

/*
	GEMINI API - RESPONSE TYPES
*/

// generateContentResponse represents one streamed JSON object from the
// streamGenerateContent endpoint. Only the fields this adapter consumes are
// modeled.
type generateContentResponse struct {
	Candidates []candidate `json:"candidates,omitempty"`
}

// candidate represents a response candidate.
type candidate struct {
	Content      *content `json:"content,omitempty"`
	FinishReason string   `json:"finishReason,omitempty"`
}
