package handler

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/easeaico/chat-coach/internal/coach"
	"github.com/easeaico/chat-coach/internal/types"
)

type createSessionRequest struct {
	IsBossMode bool       `json:"isBossMode"`
	Goal       types.Goal `json:"goal"`
	Language   string     `json:"language"`
}

type contextRequest struct {
	PersonalContext string `json:"personalContext"`
}

type feedbackRequest struct {
	Reply  string       `json:"reply"`
	Rating types.Rating `json:"rating"`
}

func (h *Handler) listSessions(w http.ResponseWriter, r *http.Request) {
	sessions, err := h.coach.ListSessions(r.Context())
	if err != nil {
		slog.Error("failed to list sessions", "error", err)
		Error(w, http.StatusInternalServerError, "failed to list sessions")
		return
	}
	JSON(w, http.StatusOK, sessions)
}

func (h *Handler) createSession(w http.ResponseWriter, r *http.Request) {
	var req createSessionRequest
	if err := decode(r, &req); err != nil && !errors.Is(err, io.EOF) {
		Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	session, err := h.coach.NewSession(r.Context(), coach.NewSessionParams{
		IsBossMode: req.IsBossMode,
		Goal:       req.Goal,
		Language:   req.Language,
	})
	if err != nil {
		slog.Error("failed to create session", "error", err)
		Error(w, http.StatusInternalServerError, "failed to create session")
		return
	}
	JSON(w, http.StatusCreated, session)
}

func (h *Handler) getSession(w http.ResponseWriter, r *http.Request) {
	session, err := h.coach.GetSession(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeCoachError(w, err)
		return
	}
	JSON(w, http.StatusOK, session)
}

func (h *Handler) deleteSession(w http.ResponseWriter, r *http.Request) {
	confirmed, _ := strconv.ParseBool(r.URL.Query().Get("confirm"))
	if err := h.coach.DeleteSession(r.Context(), chi.URLParam(r, "id"), confirmed); err != nil {
		writeCoachError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) updateContext(w http.ResponseWriter, r *http.Request) {
	var req contextRequest
	if err := decode(r, &req); err != nil {
		Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	session, err := h.coach.UpdateContext(r.Context(), chi.URLParam(r, "id"), req.PersonalContext)
	if err != nil {
		writeCoachError(w, err)
		return
	}
	JSON(w, http.StatusOK, session)
}

func (h *Handler) rateReply(w http.ResponseWriter, r *http.Request) {
	var req feedbackRequest
	if err := decode(r, &req); err != nil || req.Reply == "" {
		Error(w, http.StatusBadRequest, "reply and rating are required")
		return
	}
	if req.Rating != types.RatingPositive && req.Rating != types.RatingNegative {
		Error(w, http.StatusBadRequest, "rating must be positive or negative")
		return
	}
	session, err := h.coach.RateReply(r.Context(), chi.URLParam(r, "id"), req.Reply, req.Rating)
	if err != nil {
		writeCoachError(w, err)
		return
	}
	JSON(w, http.StatusOK, session)
}

// analyze accepts a multipart form with an "image" file and optional toggle fields.
func (h *Handler) analyze(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUpload+1<<20)
	if err := r.ParseMultipartForm(h.maxUpload); err != nil {
		Error(w, http.StatusBadRequest, "expected multipart form with an image")
		return
	}
	file, _, err := r.FormFile("image")
	if err != nil {
		Error(w, http.StatusBadRequest, "image is required")
		return
	}
	defer file.Close()

	image, err := io.ReadAll(io.LimitReader(file, h.maxUpload+1))
	if err != nil {
		Error(w, http.StatusBadRequest, "failed to read image")
		return
	}

	toggles := types.Toggles{
		OutfitSent:     formBool(r, "outfitSent"),
		AskingLocation: formBool(r, "askingLocation"),
		AskingForPhoto: formBool(r, "askingForPhoto"),
	}
	result, err := h.coach.Analyze(r.Context(), chi.URLParam(r, "id"), image, toggles)
	if errors.Is(err, coach.ErrNotImage) {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	if err != nil {
		writeCoachError(w, err)
		return
	}
	JSON(w, http.StatusOK, result)
}

func formBool(r *http.Request, key string) bool {
	v, _ := strconv.ParseBool(r.FormValue(key))
	return v
}

func writeCoachError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, coach.ErrSessionNotFound):
		status = http.StatusNotFound
	case errors.Is(err, coach.ErrConfirmationRequired), errors.Is(err, coach.ErrStaleAnalysis):
		status = http.StatusConflict
	case errors.Is(err, coach.ErrImageTooLarge):
		status = http.StatusRequestEntityTooLarge
	case errors.Is(err, coach.ErrServiceUnavailable), errors.Is(err, coach.ErrEmptyResult):
		status = http.StatusBadGateway
	default:
		slog.Error("request failed", "error", err)
	}
	Error(w, status, coach.UserMessage(err))
}
