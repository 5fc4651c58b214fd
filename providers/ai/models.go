package ai

import "github.com/modelgate/modelgate/catalog"

/*
	##### PROVIDER INPUT #####
*/

// MessageRole represents the role of a conversation message; compatible with string.
type MessageRole string

const (
	RoleSystem    MessageRole = "system"    // System instructions/configuration
	RoleUser      MessageRole = "user"      // End-user message
	RoleAssistant MessageRole = "assistant" // Model response
)

// Message represents a single message in a conversation. History is
// caller-owned and read-only to adapters.
type Message struct {
	Role    MessageRole `json:"role"`
	Content string      `json:"content,omitempty"`
}

// ChatRequest carries everything an adapter needs for one streaming chat
// call: the new user message, the resolved model entry (routing metadata,
// capability flags, token limits), the prior conversation, and an optional
// image payload for vision-capable models.
type ChatRequest struct {
	Message string             `json:"message"`
	Model   catalog.ModelEntry `json:"model"`
	History []Message          `json:"history,omitempty"`
	Image   []byte             `json:"-"`
}
