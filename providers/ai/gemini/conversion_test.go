package gemini

import (
	"encoding/base64"
	"testing"

	"github.com/modelgate/modelgate/catalog"
	"github.com/modelgate/modelgate/providers/ai"
)

// TestNormalizeHistory_RoleMapping verifies the role translation into
// Gemini's vocabulary: user stays user, assistant becomes model, and system
// becomes user since the vendor has no system role.
func TestNormalizeHistory_RoleMapping(t *testing.T) {
	contents := normalizeHistory([]ai.Message{
		{Role: ai.RoleUser, Content: "question"},
		{Role: ai.RoleAssistant, Content: "answer"},
		{Role: ai.RoleSystem, Content: "instructions"},
	})

	if len(contents) != 3 {
		t.Fatalf("expected 3 turns, got %d", len(contents))
	}
	wantRoles := []string{"user", "model", "user"}
	for i, want := range wantRoles {
		if contents[i].Role != want {
			t.Errorf("turn %d: expected role %q, got %q", i, want, contents[i].Role)
		}
	}
}

// TestNormalizeHistory_DropsInvalidEntries verifies entries with a missing or
// unrecognized role, or empty/whitespace-only content, are dropped.
func TestNormalizeHistory_DropsInvalidEntries(t *testing.T) {
	contents := normalizeHistory([]ai.Message{
		{Content: "hi"}, // missing role
		{Role: "tool", Content: "output"},
		{Role: ai.RoleUser, Content: "   "},
		{Role: ai.RoleUser, Content: ""},
		{Role: ai.RoleUser, Content: "kept"},
	})

	if len(contents) != 1 {
		t.Fatalf("expected 1 surviving turn, got %d", len(contents))
	}
	if contents[0].Parts[0].Text != "kept" {
		t.Errorf("unexpected surviving turn: %+v", contents[0])
	}
}

// TestInjectSystemPrompt verifies the prompt is prepended as a user turn
// followed by a model acknowledgment.
func TestInjectSystemPrompt(t *testing.T) {
	history := []content{{Role: roleUser, Parts: []part{{Text: "hello"}}}}

	contents := injectSystemPrompt(history, "Be helpful.")
	if len(contents) != 3 {
		t.Fatalf("expected 3 turns after injection, got %d", len(contents))
	}
	if contents[0].Role != roleUser || contents[0].Parts[0].Text != "Be helpful." {
		t.Errorf("expected injected prompt first, got %+v", contents[0])
	}
	if contents[1].Role != roleModel || contents[1].Parts[0].Text != systemPromptAck {
		t.Errorf("expected acknowledgment turn, got %+v", contents[1])
	}
	if contents[2].Parts[0].Text != "hello" {
		t.Errorf("expected original history last, got %+v", contents[2])
	}
}

// TestInjectSystemPrompt_AlreadyPresent verifies no double injection when the
// history already opens with the same injected prompt.
func TestInjectSystemPrompt_AlreadyPresent(t *testing.T) {
	history := []content{
		{Role: roleUser, Parts: []part{{Text: "Be helpful."}}},
		{Role: roleModel, Parts: []part{{Text: systemPromptAck}}},
	}

	contents := injectSystemPrompt(history, "Be helpful.")
	if len(contents) != 2 {
		t.Fatalf("expected no injection, got %d turns", len(contents))
	}
}

// TestInjectSystemPrompt_EmptyPrompt verifies nothing is injected when no
// prompt is configured.
func TestInjectSystemPrompt_EmptyPrompt(t *testing.T) {
	if contents := injectSystemPrompt(nil, ""); contents != nil {
		t.Errorf("expected nil contents, got %v", contents)
	}
}

// TestBuildPayload_ImageHandling verifies the image attachment is included
// only when the request targets a vision endpoint, and is carried base64
// encoded with its media type.
func TestBuildPayload_ImageHandling(t *testing.T) {
	image := []byte{0xFF, 0xD8, 0xFF}
	request := ai.ChatRequest{
		Message: "what is this?",
		Model:   catalog.ModelEntry{MaxOutputTokens: 1000},
		Image:   image,
	}

	withVision := buildPayload(request, true)
	turn := withVision.Contents[len(withVision.Contents)-1]
	if len(turn.Parts) != 2 {
		t.Fatalf("expected text+image parts, got %d", len(turn.Parts))
	}
	if turn.Parts[1].InlineData == nil {
		t.Fatal("expected inline image data")
	}
	if turn.Parts[1].InlineData.MimeType != imageMimeType {
		t.Errorf("expected mime type %q, got %q", imageMimeType, turn.Parts[1].InlineData.MimeType)
	}
	if turn.Parts[1].InlineData.Data != base64.StdEncoding.EncodeToString(image) {
		t.Error("image data not base64 encoded as expected")
	}

	withoutVision := buildPayload(request, false)
	turn = withoutVision.Contents[len(withoutVision.Contents)-1]
	if len(turn.Parts) != 1 {
		t.Fatalf("expected text part only, got %d parts", len(turn.Parts))
	}
	if turn.Parts[0].InlineData != nil {
		t.Error("expected no image attachment on text-only payload")
	}
}

// TestBuildPayload_GenerationConfig verifies the fixed sampling parameters,
// the per-model output token limit, and its default when the entry carries none.
func TestBuildPayload_GenerationConfig(t *testing.T) {
	request := ai.ChatRequest{
		Message: "hi",
		Model:   catalog.ModelEntry{MaxOutputTokens: 8192},
	}

	payload := buildPayload(request, false)
	cfg := payload.GenerationConfig
	if cfg.Temperature != defaultTemperature || cfg.TopP != defaultTopP || cfg.TopK != defaultTopK {
		t.Errorf("unexpected sampling parameters: %+v", cfg)
	}
	if cfg.MaxOutputTokens != 8192 {
		t.Errorf("expected 8192 max output tokens, got %d", cfg.MaxOutputTokens)
	}
	if cfg.StopSequences == nil || len(cfg.StopSequences) != 0 {
		t.Errorf("expected explicit empty stop sequences, got %v", cfg.StopSequences)
	}

	request.Model.MaxOutputTokens = 0
	payload = buildPayload(request, false)
	if payload.GenerationConfig.MaxOutputTokens != defaultMaxOutputTokens {
		t.Errorf("expected default %d, got %d", defaultMaxOutputTokens, payload.GenerationConfig.MaxOutputTokens)
	}
}

// TestBuildPayload_SafetySettings verifies all four harm categories are set
// to the medium-and-above blocking threshold.
func TestBuildPayload_SafetySettings(t *testing.T) {
	payload := buildPayload(ai.ChatRequest{Message: "hi"}, false)

	if len(payload.SafetySettings) != 4 {
		t.Fatalf("expected 4 safety settings, got %d", len(payload.SafetySettings))
	}
	seen := map[string]bool{}
	for _, setting := range payload.SafetySettings {
		if setting.Threshold != "BLOCK_MEDIUM_AND_ABOVE" {
			t.Errorf("category %s: expected BLOCK_MEDIUM_AND_ABOVE, got %s", setting.Category, setting.Threshold)
		}
		seen[setting.Category] = true
	}
	for _, category := range safetyCategories {
		if !seen[category] {
			t.Errorf("missing safety category %s", category)
		}
	}
}
