package coach

import (
	"errors"
	"fmt"

	"github.com/easeaico/chat-coach/internal/types"
)

var (
	// ErrNotImage marks uploads that are not images; callers ignore them silently.
	ErrNotImage = errors.New("file is not an image")
	// ErrImageTooLarge marks uploads above the configured size limit.
	ErrImageTooLarge = errors.New("image exceeds size limit")
	// ErrServiceUnavailable marks any failed remote model call.
	ErrServiceUnavailable = errors.New("ai service unavailable")
	// ErrEmptyResult marks a successful model call that returned no text.
	ErrEmptyResult = errors.New("analysis returned an empty result")
	// ErrStaleAnalysis marks a response superseded by a newer analysis of the same session.
	ErrStaleAnalysis = errors.New("analysis superseded by a newer request")
	// ErrConfirmationRequired guards destructive operations.
	ErrConfirmationRequired = errors.New("confirmation required")
	// ErrSessionNotFound is returned for unknown session ids.
	ErrSessionNotFound = types.ErrSessionNotFound
)

// User-facing messages, one per failure context.
const (
	MessageAnalysisFailed = "Failed to analyze the conversation. Please check your image or try again later."
	MessageEmptyResult    = "The analysis returned an empty result. Please try again."
	MessageDeleteConfirm  = "Are you sure you want to delete this conversation?"
	MessageImageTooLarge  = "The image is too large. Please upload a smaller screenshot."
	MessageNotFound       = "Conversation not found."
	MessageStaleAnalysis  = "A newer analysis for this conversation is in progress."
)

// TranslateFailedMessage is shown when translation into languageName fails.
func TranslateFailedMessage(languageName string) string {
	return fmt.Sprintf("Failed to translate to %s.", languageName)
}

// UserMessage maps an analysis error to the text shown to the user.
func UserMessage(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrEmptyResult):
		return MessageEmptyResult
	case errors.Is(err, ErrImageTooLarge):
		return MessageImageTooLarge
	case errors.Is(err, ErrSessionNotFound):
		return MessageNotFound
	case errors.Is(err, ErrStaleAnalysis):
		return MessageStaleAnalysis
	case errors.Is(err, ErrConfirmationRequired):
		return MessageDeleteConfirm
	default:
		return MessageAnalysisFailed
	}
}
