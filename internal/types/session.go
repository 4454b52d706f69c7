package types

import "time"

// Goal is the objective the user pursues in one conversation.
type Goal string

const (
	// GoalRapport builds a text-based connection.
	GoalRapport Goal = "rapport"
	// GoalGetNumber steers the chat towards a WhatsApp number.
	GoalGetNumber Goal = "getNumber"
)

// Rating is the user's verdict on a suggested reply.
type Rating string

const (
	RatingPositive Rating = "positive"
	RatingNegative Rating = "negative"
)

// PersonaKind selects the coaching persona used to build the instruction.
type PersonaKind string

const (
	PersonaDefault    PersonaKind = "default"
	PersonaFormerBoss PersonaKind = "formerBoss"
)

const (
	// NewChatName is the contact name of a session whose counterpart is not yet detected.
	NewChatName = "New Chat"
	// UnknownName is reported by the model when it cannot read a name.
	UnknownName = "Unknown"
	// ErrorName marks a degraded analysis.
	ErrorName = "Error"
	// DefaultLanguage is the language code of new sessions.
	DefaultLanguage = "en"
)

// FeedbackEntry records the rating of one reply text.
type FeedbackEntry struct {
	Reply  string `json:"reply"`
	Rating Rating `json:"rating"`
}

// ChatSession is one conversation thread with a single counterpart.
type ChatSession struct {
	ID              string          `json:"id"`
	ContactName     string          `json:"contactName"`
	History         []string        `json:"history"`
	IsBossMode      bool            `json:"isBossMode"`
	Goal            Goal            `json:"goal"`
	PersonalContext string          `json:"personalContext,omitempty"`
	Language        string          `json:"language,omitempty"`
	FeedbackLog     []FeedbackEntry `json:"feedbackLog,omitempty"`
	CreatedAt       time.Time       `json:"createdAt,omitzero"`
}

// Persona derives the persona kind from the boss-mode flag.
func (s *ChatSession) Persona() PersonaKind {
	if s.IsBossMode {
		return PersonaFormerBoss
	}
	return PersonaDefault
}

// Rate stores rating for reply, overwriting an earlier rating of the same text in place.
func (s *ChatSession) Rate(reply string, rating Rating) {
	for i := range s.FeedbackLog {
		if s.FeedbackLog[i].Reply == reply {
			s.FeedbackLog[i].Rating = rating
			return
		}
	}
	s.FeedbackLog = append(s.FeedbackLog, FeedbackEntry{Reply: reply, Rating: rating})
}

// RatingFor returns the recorded rating of reply, if any.
func (s *ChatSession) RatingFor(reply string) (Rating, bool) {
	for _, entry := range s.FeedbackLog {
		if entry.Reply == reply {
			return entry.Rating, true
		}
	}
	return "", false
}

// NeedsTranslation reports whether replies are written in a language other than English.
func (s *ChatSession) NeedsTranslation() bool {
	return s.Language != "" && s.Language != DefaultLanguage
}

// Clone returns a deep copy so callers can mutate without touching stored state.
func (s ChatSession) Clone() ChatSession {
	out := s
	out.History = append([]string(nil), s.History...)
	out.FeedbackLog = append([]FeedbackEntry(nil), s.FeedbackLog...)
	return out
}

// Reply is one labeled reply suggestion.
type Reply struct {
	Title  string `json:"title"`
	Reply  string `json:"reply"`
	Rating Rating `json:"rating,omitempty"`
}

// AnalysisResult is the structured form of a model response.
type AnalysisResult struct {
	DetectedName string  `json:"detectedName"`
	Summary      string  `json:"summary"`
	Replies      []Reply `json:"replies"`
}

// Toggles are per-analysis situational flags; they are never persisted.
type Toggles struct {
	OutfitSent     bool `json:"outfitSent"`
	AskingLocation bool `json:"askingLocation"`
	AskingForPhoto bool `json:"askingForPhoto"`
}
