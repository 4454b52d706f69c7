package models

import (
	"context"

	"google.golang.org/adk/model"
	"google.golang.org/genai"
)

const grokBaseURL = "https://api.x.ai/v1"

// NewGrokModel creates a Grok model over the x.ai OpenAI-compatible endpoint.
//
// The modelName selects the Grok model to target (e.g., "grok-4-fast").
// Grok vision models accept the screenshot as an inline data URL.
func NewGrokModel(ctx context.Context, modelName string, cfg *genai.ClientConfig) (model.LLM, error) {
	return newCompatibleModel(modelName, cfg, grokBaseURL, "grok-go")
}
