package models

import (
	"context"
	"fmt"
	"iter"
	"log/slog"
	"strings"

	"google.golang.org/adk/model"
	"google.golang.org/genai"
)

// geminiModel calls the Gemini API through genai.Client.
// A response without candidates, such as a blocked prompt, is an empty answer rather than an error.
type geminiModel struct {
	client *genai.Client
	name   string
}

// NewGeminiModel creates a Gemini model. The Gemini API backend is used unless cfg selects another.
func NewGeminiModel(ctx context.Context, modelName string, cfg *genai.ClientConfig) (model.LLM, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, fmt.Errorf("API key is required")
	}
	if strings.TrimSpace(modelName) == "" {
		return nil, fmt.Errorf("model name cannot be empty")
	}
	if cfg.Backend == genai.BackendUnspecified {
		cfg.Backend = genai.BackendGeminiAPI
	}

	client, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}
	return &geminiModel{client: client, name: strings.TrimSpace(modelName)}, nil
}

func (m *geminiModel) Name() string {
	return m.name
}

// GenerateContent answers with one complete response; stream is accepted for interface compatibility.
func (m *geminiModel) GenerateContent(ctx context.Context, req *model.LLMRequest, stream bool) iter.Seq2[*model.LLMResponse, error] {
	return func(yield func(*model.LLMResponse, error) bool) {
		resp, err := m.generate(ctx, req)
		yield(resp, err)
	}
}

func (m *geminiModel) generate(ctx context.Context, req *model.LLMRequest) (*model.LLMResponse, error) {
	name := req.Model
	if name == "" {
		name = m.name
	}

	resp, err := m.client.Models.GenerateContent(ctx, name, req.Contents, req.Config)
	if err != nil {
		return nil, fmt.Errorf("failed to call gemini API: %w", err)
	}

	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0] == nil {
		if resp != nil && resp.PromptFeedback != nil {
			slog.Warn("gemini returned no candidates", "model", name, "block_reason", string(resp.PromptFeedback.BlockReason))
		}
		return &model.LLMResponse{TurnComplete: true}, nil
	}

	return &model.LLMResponse{
		Content:      resp.Candidates[0].Content,
		TurnComplete: true,
	}, nil
}
