// Package handler exposes the coach over a JSON HTTP API.
package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/easeaico/chat-coach/internal/coach"
	"github.com/easeaico/chat-coach/internal/types"
)

// Coach is the workflow the API drives.
type Coach interface {
	ListSessions(ctx context.Context) ([]types.ChatSession, error)
	GetSession(ctx context.Context, id string) (types.ChatSession, error)
	NewSession(ctx context.Context, params coach.NewSessionParams) (types.ChatSession, error)
	Analyze(ctx context.Context, sessionID string, image []byte, toggles types.Toggles) (coach.Analysis, error)
	RateReply(ctx context.Context, sessionID, reply string, rating types.Rating) (types.ChatSession, error)
	UpdateContext(ctx context.Context, sessionID, text string) (types.ChatSession, error)
	DeleteSession(ctx context.Context, sessionID string, confirmed bool) error
	TranslateReply(ctx context.Context, text string) string
	Translate(ctx context.Context, text, languageName string) (string, error)
}

var _ Coach = (*coach.Service)(nil)

// Handler serves the coach API.
type Handler struct {
	coach     Coach
	maxUpload int64
}

// NewHandler creates a Handler. maxUpload bounds multipart bodies.
func NewHandler(c Coach, maxUpload int64) *Handler {
	if maxUpload <= 0 {
		maxUpload = 10 << 20
	}
	return &Handler{coach: c, maxUpload: maxUpload}
}

// NewRouter mounts the API behind the standard middleware stack.
func NewRouter(h *Handler) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Heartbeat("/health"))
	r.Use(middleware.Timeout(2 * time.Minute))

	h.RegisterRoutes(r)
	return r
}

// RegisterRoutes registers the API routes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/api", func(r chi.Router) {
		r.Get("/languages", h.listLanguages)
		r.Post("/translate", h.translate)

		r.Route("/sessions", func(r chi.Router) {
			r.Get("/", h.listSessions)
			r.Post("/", h.createSession)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", h.getSession)
				r.Delete("/", h.deleteSession)
				r.Put("/context", h.updateContext)
				r.Post("/feedback", h.rateReply)
				r.Post("/analyze", h.analyze)
			})
		})
	})
}

// JSON writes a JSON response with the given status code.
func JSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, `{"error": "failed to encode response"}`, http.StatusInternalServerError)
	}
}

// Error writes a JSON error response.
func Error(w http.ResponseWriter, status int, message string) {
	JSON(w, status, map[string]string{"error": message})
}

func decode(r *http.Request, v interface{}) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(v)
}
