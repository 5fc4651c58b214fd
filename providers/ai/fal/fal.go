// Package fal reserves the provider slot for fal.ai image generation models.
// The fal.ai queue API is a submit-and-poll protocol rather than a chat
// stream, so this adapter does not generate yet; it satisfies the ai.Provider
// contract by yielding a single explanatory fragment. Routing for the fal-ai
// vendor family lands here so the registry stays total over the catalog.
package fal

import (
	"context"
	"log/slog"

	"github.com/modelgate/modelgate/providers/ai"
)

const unsupportedMessage = "Image generation through fal.ai is not supported yet."

// FalProvider is a placeholder implementation of the ai.Provider contract.
type FalProvider struct {
	apiKey string
}

// New creates a fal.ai provider for the given API key. The key is held for
// when generation is implemented; it is not used today.
func New(apiKey string) *FalProvider {
	return &FalProvider{apiKey: apiKey}
}

// Name implements ai.Provider.
func (provider *FalProvider) Name() string {
	return "fal"
}

// StreamChatCompletion implements ai.Provider with a single fragment
// explaining that generation is not available.
func (provider *FalProvider) StreamChatCompletion(ctx context.Context, request ai.ChatRequest) *ai.ChatStream {
	slog.Warn("fal.ai generation requested but not implemented", "model", request.Model.Name)
	return ai.SingleFragmentStream(unsupportedMessage)
}
