package handler

import (
	"net/http"
	"strings"

	"github.com/easeaico/chat-coach/internal/coach"
	"github.com/easeaico/chat-coach/internal/types"
)

type translateRequest struct {
	Text     string `json:"text"`
	Language string `json:"language"`
}

type translateResponse struct {
	Text     string `json:"text"`
	Language string `json:"language"`
}

type languagesResponse struct {
	Default   types.Language   `json:"default"`
	Languages []types.Language `json:"languages"`
}

func (h *Handler) listLanguages(w http.ResponseWriter, r *http.Request) {
	JSON(w, http.StatusOK, languagesResponse{
		Default:   types.DefaultTargetLanguage(),
		Languages: types.Languages,
	})
}

// translate renders a suggested reply into English when no language is given,
// otherwise sends the text to the named catalogue language.
func (h *Handler) translate(w http.ResponseWriter, r *http.Request) {
	var req translateRequest
	if err := decode(r, &req); err != nil {
		Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if strings.TrimSpace(req.Language) == "" {
		JSON(w, http.StatusOK, translateResponse{
			Text:     h.coach.TranslateReply(r.Context(), req.Text),
			Language: "English",
		})
		return
	}

	lang, ok := types.LookupLanguage(req.Language)
	if !ok {
		Error(w, http.StatusBadRequest, "unsupported language")
		return
	}
	out, err := h.coach.Translate(r.Context(), req.Text, lang.Name)
	if err != nil {
		Error(w, http.StatusBadGateway, coach.TranslateFailedMessage(lang.Name))
		return
	}
	JSON(w, http.StatusOK, translateResponse{Text: out, Language: lang.Name})
}
