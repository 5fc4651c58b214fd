package openrouter

/*
	CHAT COMPLETIONS API - INPUT
*/

// chatCompletionRequest represents the /chat/completions request format.
// Only the fields this adapter sends are modeled.
type chatCompletionRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature *float64      `json:"temperature,omitempty"`
	MaxTokens   *int          `json:"max_tokens,omitempty"`
	Stream      bool          `json:"stream"`
}

// chatMessage is one conversation message. Content is either a plain string
// or a []contentPart slice for multimodal messages.
type chatMessage struct {
	Role    string `json:"role"` // system, user, assistant
	Content any    `json:"content"`
}

// contentPart is one element of a multimodal message.
type contentPart struct {
	Type     string           `json:"type"` // "text", "image_url"
	Text     string           `json:"text,omitempty"`
	ImageURL *contentImageURL `json:"image_url,omitempty"`
}

type contentImageURL struct {
	URL string `json:"url"`
}

/*
	CHAT COMPLETIONS API - OUTPUT (streaming)
*/

// chatCompletionStreamChunk represents one SSE data payload.
type chatCompletionStreamChunk struct {
	ID      string         `json:"id,omitempty"`
	Object  string         `json:"object,omitempty"` // "chat.completion.chunk"
	Choices []streamChoice `json:"choices,omitempty"`
}

type streamChoice struct {
	Index        int         `json:"index"`
	Delta        streamDelta `json:"delta"`
	FinishReason *string     `json:"finish_reason"`
}

type streamDelta struct {
	Role    string `json:"role,omitempty"`
	Content string `json:"content,omitempty"`
}
