package models

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"google.golang.org/genai"

	"github.com/easeaico/chat-coach/internal/prompt"
)

type geminiServer struct {
	mu     sync.Mutex
	paths  []string
	status int
	body   string
}

func (s *geminiServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	s.paths = append(s.paths, r.URL.Path)
	s.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	if s.status != 0 {
		w.WriteHeader(s.status)
	}
	_, _ = w.Write([]byte(s.body))
}

func newGeminiGateway(t *testing.T, handler *geminiServer) *LLMGateway {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	llm, err := NewGeminiModel(context.Background(), "gemini-test", &genai.ClientConfig{
		APIKey:      "test-key",
		Backend:     genai.BackendGeminiAPI,
		HTTPOptions: genai.HTTPOptions{BaseURL: srv.URL + "/"},
	})
	if err != nil {
		t.Fatalf("failed to create gemini model: %v", err)
	}
	return NewLLMGateway(llm, 0)
}

var testInstruction = prompt.Instruction{System: "coach", UserText: prompt.UserTurnText}

func TestGeminiAnalyzeReturnsText(t *testing.T) {
	server := &geminiServer{body: `{"candidates":[{"content":{"role":"model","parts":[{"text":"NAME: Ana\n"},{"text":"SUMMARY: hi"}]},"finishReason":"STOP"}]}`}
	gw := newGeminiGateway(t, server)

	got, err := gw.Analyze(context.Background(), []byte("\x89PNG"), "image/png", testInstruction)
	if err != nil {
		t.Fatalf("analyze failed: %v", err)
	}
	if got != "NAME: Ana\nSUMMARY: hi" {
		t.Fatalf("unexpected text %q", got)
	}
	if len(server.paths) != 1 || !strings.Contains(server.paths[0], "gemini-test:generateContent") {
		t.Fatalf("unexpected request paths %v", server.paths)
	}
}

func TestGeminiBlockedPromptIsEmptyResult(t *testing.T) {
	gw := newGeminiGateway(t, &geminiServer{body: `{"promptFeedback":{"blockReason":"SAFETY"}}`})

	got, err := gw.Analyze(context.Background(), []byte("\x89PNG"), "image/png", testInstruction)
	if err != nil {
		t.Fatalf("blocked prompt must not be a service failure, got %v", err)
	}
	if got != "" {
		t.Fatalf("expected empty text, got %q", got)
	}
}

func TestGeminiHTTPErrorIsServiceUnavailable(t *testing.T) {
	gw := newGeminiGateway(t, &geminiServer{
		status: http.StatusBadRequest,
		body:   `{"error":{"code":400,"message":"bad request","status":"INVALID_ARGUMENT"}}`,
	})

	_, err := gw.Analyze(context.Background(), []byte("\x89PNG"), "image/png", testInstruction)
	if !errors.Is(err, ErrServiceUnavailable) {
		t.Fatalf("expected ErrServiceUnavailable, got %v", err)
	}
}

func TestNewGeminiModelValidatesInput(t *testing.T) {
	if _, err := NewGeminiModel(context.Background(), "gemini-test", &genai.ClientConfig{}); err == nil {
		t.Fatalf("expected error for missing API key")
	}
	if _, err := NewGeminiModel(context.Background(), " ", &genai.ClientConfig{APIKey: "k"}); err == nil {
		t.Fatalf("expected error for empty model name")
	}
}
