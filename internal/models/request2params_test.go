package models

import (
	"strings"
	"testing"

	"google.golang.org/adk/model"
	"google.golang.org/genai"
)

func TestBuildOpenAIParamsWithImage(t *testing.T) {
	req := &model.LLMRequest{
		Contents: []*genai.Content{
			genai.NewContentFromParts([]*genai.Part{
				genai.NewPartFromBytes([]byte("abc"), "image/jpeg"),
				genai.NewPartFromText("describe"),
			}, genai.RoleUser),
		},
		Config: &genai.GenerateContentConfig{
			SystemInstruction: genai.NewContentFromText("be a coach", genai.RoleUser),
		},
	}

	params := buildOpenAIParams(req, "grok-4-fast")
	if params.Model != "grok-4-fast" {
		t.Fatalf("expected fallback model name, got %q", params.Model)
	}
	if len(params.Messages) != 2 {
		t.Fatalf("expected system and user messages, got %d", len(params.Messages))
	}
	if params.Messages[0].OfSystem == nil {
		t.Fatalf("expected system message first")
	}
	user := params.Messages[1].OfUser
	if user == nil {
		t.Fatalf("expected user message second")
	}
	parts := user.Content.OfArrayOfContentParts
	if len(parts) != 2 {
		t.Fatalf("expected image and text parts, got %d", len(parts))
	}
	if parts[0].OfImageURL == nil || !strings.HasPrefix(parts[0].OfImageURL.ImageURL.URL, "data:image/jpeg;base64,YWJj") {
		t.Fatalf("expected data URL image part")
	}
	if parts[1].OfText == nil || parts[1].OfText.Text != "describe" {
		t.Fatalf("expected text part")
	}
}

func TestConvertContentsTextOnly(t *testing.T) {
	messages := convertContentsToMessages([]*genai.Content{
		genai.NewContentFromText("hi", genai.RoleUser),
		genai.NewContentFromText("hello", genai.RoleModel),
		nil,
	})
	if len(messages) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(messages))
	}
	if messages[0].OfUser == nil || messages[1].OfAssistant == nil {
		t.Fatalf("unexpected roles: %#v", messages)
	}
}

func TestDataURLDefaultsMime(t *testing.T) {
	if got := dataURL("", []byte("a")); got != "data:image/png;base64,YQ==" {
		t.Fatalf("unexpected data url: %s", got)
	}
}
