// Package coach runs the reply-coaching workflow: sessions, analyses and feedback.
package coach

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"

	"github.com/easeaico/chat-coach/internal/analysis"
	"github.com/easeaico/chat-coach/internal/prompt"
	"github.com/easeaico/chat-coach/internal/types"
)

const firstSessionContext = "I have not spent with a girl in the house for a week"

// Analysis is the outcome of one screenshot analysis.
type Analysis struct {
	Result   types.AnalysisResult `json:"result"`
	Degraded bool                 `json:"degraded"`
	Session  types.ChatSession    `json:"session"`
}

// NewSessionParams are fixed at session creation.
type NewSessionParams struct {
	IsBossMode bool
	Goal       types.Goal
	Language   string
}

// Service coordinates the store, the prompt composer and the model gateway.
type Service struct {
	repo          SessionRepo
	gateway       Gateway
	composer      Composer
	maxImageBytes int64

	nowFunc func() time.Time
	newID   func() string

	// mu serializes read-modify-write cycles on the session document.
	mu sync.Mutex

	seqMu  sync.Mutex
	latest map[string]uint64
}

// NewService returns a Service. maxImageBytes <= 0 disables the size check.
func NewService(repo SessionRepo, gateway Gateway, composer Composer, maxImageBytes int64) *Service {
	return &Service{
		repo:          repo,
		gateway:       gateway,
		composer:      composer,
		maxImageBytes: maxImageBytes,
		nowFunc:       time.Now,
		newID:         uuid.NewString,
		latest:        make(map[string]uint64),
	}
}

// Bootstrap seeds the example sessions whose contact names are missing from the store.
func (s *Service) Bootstrap(ctx context.Context) ([]types.ChatSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sessions, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	now := s.nowFunc()
	seeds := []types.ChatSession{
		{
			ID:              fmt.Sprintf("lilly-%d", now.UnixMilli()),
			ContactName:     "Lilly",
			History:         []string{},
			Goal:            types.GoalGetNumber,
			PersonalContext: "This is a new crush I want to get to know better.",
			Language:        "en",
			CreatedAt:       now,
		},
		{
			ID:              fmt.Sprintf("melros-%d", now.UnixMilli()),
			ContactName:     "Mel Ros",
			History:         []string{},
			Goal:            types.GoalRapport,
			PersonalContext: "This is a new crush who speaks Spanish. Please provide all replies in natural, casual Spanish.",
			Language:        "es",
			CreatedAt:       now,
		},
	}
	for _, seed := range seeds {
		if hasContact(sessions, seed.ContactName) {
			continue
		}
		if err := s.repo.Save(ctx, seed); err != nil {
			return nil, fmt.Errorf("failed to seed session %s: %w", seed.ContactName, err)
		}
		slog.Info("seeded example session", "contact", seed.ContactName, "id", seed.ID)
	}
	return s.repo.List(ctx)
}

// ListSessions returns every session, most recent first.
func (s *Service) ListSessions(ctx context.Context) ([]types.ChatSession, error) {
	return s.repo.List(ctx)
}

// GetSession returns one session.
func (s *Service) GetSession(ctx context.Context, id string) (types.ChatSession, error) {
	return s.repo.Get(ctx, id)
}

// NewSession creates a "New Chat" session. The very first session gets a default personal context.
func (s *Service) NewSession(ctx context.Context, params NewSessionParams) (types.ChatSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, err := s.repo.List(ctx)
	if err != nil {
		return types.ChatSession{}, fmt.Errorf("failed to list sessions: %w", err)
	}

	goal := params.Goal
	if goal != types.GoalGetNumber {
		goal = types.GoalRapport
	}
	language := params.Language
	if language == "" {
		language = types.DefaultLanguage
	}
	session := types.ChatSession{
		ID:          s.newID(),
		ContactName: types.NewChatName,
		History:     []string{},
		IsBossMode:  params.IsBossMode,
		Goal:        goal,
		Language:    language,
		CreatedAt:   s.nowFunc(),
	}
	if len(existing) == 0 {
		session.PersonalContext = firstSessionContext
	}
	if err := s.repo.Save(ctx, session); err != nil {
		return types.ChatSession{}, fmt.Errorf("failed to create session: %w", err)
	}
	return session, nil
}

// Analyze runs one screenshot through composer, gateway and parser, then reconciles the session.
// Non-image input returns ErrNotImage and changes nothing.
func (s *Service) Analyze(ctx context.Context, sessionID string, image []byte, toggles types.Toggles) (Analysis, error) {
	mimeType, err := s.detectImage(image)
	if err != nil {
		return Analysis{}, err
	}

	session, err := s.repo.Get(ctx, sessionID)
	if err != nil {
		return Analysis{}, err
	}

	seq := s.beginAnalysis(sessionID)

	ins, err := s.composer.Compose(prompt.Input{Session: &session, Toggles: toggles})
	if err != nil {
		return Analysis{}, fmt.Errorf("failed to compose instruction: %w", err)
	}

	raw, err := s.gateway.Analyze(ctx, image, mimeType, ins)
	if err != nil {
		slog.Error("analysis request failed", "session", sessionID, "error", err.Error())
		return Analysis{}, fmt.Errorf("%w: %v", ErrServiceUnavailable, err)
	}
	if raw == "" {
		return Analysis{}, ErrEmptyResult
	}
	if !s.isLatest(sessionID, seq) {
		slog.Info("discarding stale analysis", "session", sessionID, "seq", seq)
		return Analysis{}, ErrStaleAnalysis
	}

	parsed := analysis.Parse(raw)
	updated, err := s.ApplyAnalysis(ctx, sessionID, parsed.AnalysisResult)
	if err != nil {
		return Analysis{}, err
	}

	return Analysis{
		Result:   analysis.AnnotateRatings(parsed.AnalysisResult, &updated),
		Degraded: parsed.Degraded,
		Session:  updated,
	}, nil
}

// ApplyAnalysis adopts a detected name for "New Chat" sessions and appends the summary to history.
func (s *Service) ApplyAnalysis(ctx context.Context, sessionID string, result types.AnalysisResult) (types.ChatSession, error) {
	return s.update(ctx, sessionID, func(session *types.ChatSession) {
		if session.ContactName == types.NewChatName && adoptable(result.DetectedName) {
			session.ContactName = result.DetectedName
		}
		session.History = append(session.History, result.Summary)
	})
}

// RateReply records the rating of reply text; rating the same text again overwrites it.
func (s *Service) RateReply(ctx context.Context, sessionID, reply string, rating types.Rating) (types.ChatSession, error) {
	if rating != types.RatingPositive && rating != types.RatingNegative {
		return types.ChatSession{}, fmt.Errorf("invalid rating %q", rating)
	}
	return s.update(ctx, sessionID, func(session *types.ChatSession) {
		session.Rate(reply, rating)
	})
}

// UpdateContext replaces the session's personal context.
func (s *Service) UpdateContext(ctx context.Context, sessionID, text string) (types.ChatSession, error) {
	return s.update(ctx, sessionID, func(session *types.ChatSession) {
		session.PersonalContext = text
	})
}

// DeleteSession removes a session; confirmed must be true.
func (s *Service) DeleteSession(ctx context.Context, sessionID string, confirmed bool) error {
	if !confirmed {
		return ErrConfirmationRequired
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.repo.Delete(ctx, sessionID); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	s.seqMu.Lock()
	delete(s.latest, sessionID)
	s.seqMu.Unlock()
	return nil
}

// TranslateReply renders a suggested reply in English. It never fails.
func (s *Service) TranslateReply(ctx context.Context, text string) string {
	return s.gateway.TranslateToEnglish(ctx, text)
}

// Translate renders English text in the named target language.
func (s *Service) Translate(ctx context.Context, text, languageName string) (string, error) {
	out, err := s.gateway.TranslateToLanguage(ctx, text, languageName)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrServiceUnavailable, err)
	}
	return out, nil
}

func (s *Service) update(ctx context.Context, sessionID string, mutate func(*types.ChatSession)) (types.ChatSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, err := s.repo.Get(ctx, sessionID)
	if err != nil {
		return types.ChatSession{}, err
	}
	session = session.Clone()
	mutate(&session)
	if err := s.repo.Save(ctx, session); err != nil {
		return types.ChatSession{}, fmt.Errorf("failed to save session: %w", err)
	}
	return session, nil
}

func (s *Service) detectImage(image []byte) (string, error) {
	if len(image) == 0 {
		return "", ErrNotImage
	}
	if s.maxImageBytes > 0 && int64(len(image)) > s.maxImageBytes {
		return "", ErrImageTooLarge
	}
	mime := mimetype.Detect(image)
	if !strings.HasPrefix(mime.String(), "image/") {
		return "", fmt.Errorf("%w: detected %s", ErrNotImage, mime.String())
	}
	return mime.String(), nil
}

func (s *Service) beginAnalysis(sessionID string) uint64 {
	s.seqMu.Lock()
	defer s.seqMu.Unlock()
	s.latest[sessionID]++
	return s.latest[sessionID]
}

func (s *Service) isLatest(sessionID string, seq uint64) bool {
	s.seqMu.Lock()
	defer s.seqMu.Unlock()
	return s.latest[sessionID] == seq
}

// adoptable reports whether a detected name may replace the "New Chat" sentinel.
func adoptable(name string) bool {
	return name != types.UnknownName
}

func hasContact(sessions []types.ChatSession, name string) bool {
	for _, s := range sessions {
		if s.ContactName == name {
			return true
		}
	}
	return false
}
