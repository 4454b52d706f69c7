package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"

	"github.com/easeaico/chat-coach/internal/coach"
	"github.com/easeaico/chat-coach/internal/types"
)

// SessionsKey addresses the document holding every session, most recent first.
const SessionsKey = "datingCoachSessions"

// sessionRepo keeps all sessions in a single document and rewrites it on every mutation.
type sessionRepo struct {
	mu   sync.Mutex
	docs DocumentStore
	key  string
}

// NewSessionRepo returns a SessionRepo over docs.
func NewSessionRepo(docs DocumentStore) coach.SessionRepo {
	return &sessionRepo{docs: docs, key: SessionsKey}
}

func (r *sessionRepo) List(ctx context.Context) ([]types.ChatSession, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.load(ctx)
}

func (r *sessionRepo) Get(ctx context.Context, id string) (types.ChatSession, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	sessions, err := r.load(ctx)
	if err != nil {
		return types.ChatSession{}, err
	}
	for _, s := range sessions {
		if s.ID == id {
			return s, nil
		}
	}
	return types.ChatSession{}, fmt.Errorf("failed to get session %s: %w", id, types.ErrSessionNotFound)
}

// Save replaces the session with the same id in place, or prepends it when new.
func (r *sessionRepo) Save(ctx context.Context, session types.ChatSession) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	sessions, err := r.load(ctx)
	if err != nil {
		return err
	}
	replaced := false
	for i := range sessions {
		if sessions[i].ID == session.ID {
			sessions[i] = session
			replaced = true
			break
		}
	}
	if !replaced {
		sessions = append([]types.ChatSession{session}, sessions...)
	}
	return r.store(ctx, sessions)
}

func (r *sessionRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	sessions, err := r.load(ctx)
	if err != nil {
		return err
	}
	kept := sessions[:0]
	for _, s := range sessions {
		if s.ID != id {
			kept = append(kept, s)
		}
	}
	return r.store(ctx, kept)
}

// load reads the document. A corrupt document is logged and treated as empty.
func (r *sessionRepo) load(ctx context.Context) ([]types.ChatSession, error) {
	raw, ok, err := r.docs.Get(ctx, r.key)
	if err != nil {
		return nil, fmt.Errorf("failed to read sessions: %w", err)
	}
	if !ok || raw == "" {
		return []types.ChatSession{}, nil
	}
	var sessions []types.ChatSession
	if err := json.Unmarshal([]byte(raw), &sessions); err != nil {
		slog.Error("failed to decode stored sessions, starting empty", "key", r.key, "error", err.Error())
		return []types.ChatSession{}, nil
	}
	if sessions == nil {
		sessions = []types.ChatSession{}
	}
	return sessions, nil
}

func (r *sessionRepo) store(ctx context.Context, sessions []types.ChatSession) error {
	data, err := json.Marshal(sessions)
	if err != nil {
		return fmt.Errorf("failed to encode sessions: %w", err)
	}
	if err := r.docs.Put(ctx, r.key, string(data)); err != nil {
		return fmt.Errorf("failed to write sessions: %w", err)
	}
	return nil
}
