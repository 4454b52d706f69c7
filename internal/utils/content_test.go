package utils

import (
	"testing"

	"google.golang.org/genai"
)

func TestExtractContentText(t *testing.T) {
	content := genai.NewContentFromParts([]*genai.Part{
		genai.NewPartFromText("NAME: Ana\n"),
		genai.NewPartFromBytes([]byte{0x89, 0x50}, "image/png"),
		nil,
		genai.NewPartFromText("SUMMARY: hi"),
	}, genai.RoleModel)

	if got := ExtractContentText(content); got != "NAME: Ana\nSUMMARY: hi" {
		t.Fatalf("unexpected text: %q", got)
	}
	if got := ExtractContentText(nil); got != "" {
		t.Fatalf("expected empty text for nil content, got %q", got)
	}
}
