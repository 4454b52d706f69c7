package models

import (
	"context"
	"fmt"

	"google.golang.org/adk/model"
	"google.golang.org/genai"

	"github.com/easeaico/chat-coach/internal/config"
)

// NewLLM builds the model selected by LLM_PROVIDER.
func NewLLM(ctx context.Context, cfg config.Config) (model.LLM, error) {
	clientCfg := &genai.ClientConfig{APIKey: cfg.APIKey}

	var (
		llm model.LLM
		err error
	)
	switch cfg.Provider {
	case config.ProviderGemini, "":
		clientCfg.Backend = genai.BackendGeminiAPI
		llm, err = NewGeminiModel(ctx, cfg.ChatModel, clientCfg)
	case config.ProviderOpenAI:
		llm, err = NewOpenAIModel(ctx, cfg.ChatModel, clientCfg)
	case config.ProviderGrok:
		llm, err = NewGrokModel(ctx, cfg.ChatModel, clientCfg)
	case config.ProviderOpenRouter:
		llm, err = NewOpenRouterModel(ctx, cfg.ChatModel, clientCfg)
	default:
		return nil, fmt.Errorf("unsupported provider %q", cfg.Provider)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create %s model: %w", cfg.Provider, err)
	}
	return llm, nil
}

// NewGateway wires the configured model into an LLMGateway.
func NewGateway(ctx context.Context, cfg config.Config) (*LLMGateway, error) {
	llm, err := NewLLM(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return NewLLMGateway(llm, cfg.RequestTimeout), nil
}
