package models

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"google.golang.org/adk/model"
	"google.golang.org/genai"

	"github.com/easeaico/chat-coach/internal/prompt"
	"github.com/easeaico/chat-coach/internal/utils"
)

// ErrServiceUnavailable wraps every failed remote call.
var ErrServiceUnavailable = errors.New("ai service unavailable")

// TranslationFailed is returned by TranslateToEnglish when the remote call fails.
const TranslationFailed = "Translation failed."

// LLMGateway sends coach requests to any ADK model.LLM.
type LLMGateway struct {
	llm     model.LLM
	timeout time.Duration
}

// NewLLMGateway returns a gateway over llm. A zero timeout disables the per-call deadline.
func NewLLMGateway(llm model.LLM, timeout time.Duration) *LLMGateway {
	return &LLMGateway{llm: llm, timeout: timeout}
}

// Analyze sends the screenshot with the composed instruction and returns the raw text.
// An empty string with a nil error means the model answered without text.
func (g *LLMGateway) Analyze(ctx context.Context, image []byte, mimeType string, ins prompt.Instruction) (string, error) {
	req := &model.LLMRequest{
		Model: g.llm.Name(),
		Contents: []*genai.Content{
			genai.NewContentFromParts([]*genai.Part{
				genai.NewPartFromBytes(image, mimeType),
				genai.NewPartFromText(ins.UserText),
			}, genai.RoleUser),
		},
		Config: &genai.GenerateContentConfig{
			SystemInstruction: genai.NewContentFromText(ins.System, genai.RoleUser),
		},
	}
	text, err := g.generate(ctx, req)
	if err != nil {
		return "", fmt.Errorf("failed to analyze conversation: %w", err)
	}
	return text, nil
}

// TranslateToEnglish never fails; remote errors yield TranslationFailed.
func (g *LLMGateway) TranslateToEnglish(ctx context.Context, text string) string {
	instruction := fmt.Sprintf("Translate the following text to English, keeping the meaning and tone the same. Provide only the translated text, with no extra explanation or labels.\n\nText to translate: \"%s\"", text)
	out, err := g.generate(ctx, textRequest(g.llm.Name(), instruction))
	if err != nil {
		slog.Warn("translation to english failed", "error", err.Error())
		return TranslationFailed
	}
	return out
}

// TranslateToLanguage translates English text; blank input returns "" without a remote call.
func (g *LLMGateway) TranslateToLanguage(ctx context.Context, text, languageName string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", nil
	}
	instruction := fmt.Sprintf("Translate the following English text to %s. Provide ONLY the translation, with no extra formatting, labels, or explanations.\n\nEnglish text: \"%s\"", languageName, text)
	out, err := g.generate(ctx, textRequest(g.llm.Name(), instruction))
	if err != nil {
		return "", fmt.Errorf("failed to translate to %s: %w", languageName, err)
	}
	return out, nil
}

func (g *LLMGateway) generate(ctx context.Context, req *model.LLMRequest) (string, error) {
	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	var sb strings.Builder
	for resp, err := range g.llm.GenerateContent(ctx, req, false) {
		if err != nil {
			slog.Error("llm request failed", "model", g.llm.Name(), "error", err.Error())
			return "", fmt.Errorf("%w: %v", ErrServiceUnavailable, err)
		}
		if resp == nil || resp.Partial {
			continue
		}
		sb.WriteString(utils.ExtractContentText(resp.Content))
	}
	return sb.String(), nil
}

func textRequest(modelName, text string) *model.LLMRequest {
	return &model.LLMRequest{
		Model:    modelName,
		Contents: []*genai.Content{genai.NewContentFromText(text, genai.RoleUser)},
		Config:   &genai.GenerateContentConfig{},
	}
}
