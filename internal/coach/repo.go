package coach

import (
	"context"

	"github.com/easeaico/chat-coach/internal/prompt"
	"github.com/easeaico/chat-coach/internal/types"
)

// SessionRepo persists chat sessions as one ordered collection, most recent first.
type SessionRepo interface {
	List(ctx context.Context) ([]types.ChatSession, error)
	Get(ctx context.Context, id string) (types.ChatSession, error)
	// Save replaces the session with the same id or prepends a new one.
	Save(ctx context.Context, session types.ChatSession) error
	Delete(ctx context.Context, id string) error
}

// Gateway is the remote model.
type Gateway interface {
	Analyze(ctx context.Context, image []byte, mimeType string, ins prompt.Instruction) (string, error)
	TranslateToEnglish(ctx context.Context, text string) string
	TranslateToLanguage(ctx context.Context, text, languageName string) (string, error)
}

// Composer builds the instruction for one analysis.
type Composer interface {
	Compose(in prompt.Input) (prompt.Instruction, error)
}
