// Package prompt composes the system instruction sent with each screenshot.
package prompt

import (
	"fmt"
	"strings"
	"time"

	"github.com/easeaico/chat-coach/internal/types"
)

const feedbackExamples = 3

// Input contains all inputs for one instruction.
type Input struct {
	Session *types.ChatSession
	Toggles types.Toggles
}

// Instruction is the composed system text plus the fixed user turn.
type Instruction struct {
	System   string
	UserText string
}

// Composer assembles layered instructions from a persona and situational blocks.
type Composer struct {
	historyLimit int
	location     *time.Location
	nowFunc      func() time.Time
	personas     map[types.PersonaKind]string
}

// NewComposer renders the built-in personas and returns a Composer.
// historyLimit caps the summaries listed in the history block; 0 lists all of them.
func NewComposer(historyLimit int, location *time.Location) (*Composer, error) {
	if historyLimit < 0 {
		historyLimit = 0
	}
	if location == nil {
		location = time.Local
	}
	rendered := make(map[types.PersonaKind]string)
	for kind, persona := range Personas() {
		text, err := persona.Render()
		if err != nil {
			return nil, err
		}
		rendered[kind] = text
	}
	return &Composer{
		historyLimit: historyLimit,
		location:     location,
		nowFunc:      time.Now,
		personas:     rendered,
	}, nil
}

// Compose builds the instruction. Blocks are appended in a fixed order and absent blocks add nothing.
func (c *Composer) Compose(in Input) (Instruction, error) {
	if in.Session == nil {
		return Instruction{}, fmt.Errorf("session is required")
	}
	session := in.Session
	now := c.nowFunc().In(c.location)

	base, ok := c.personas[session.Persona()]
	if !ok {
		base = c.personas[types.PersonaDefault]
	}

	var sb strings.Builder
	sb.WriteString(base)

	dayBlock, christmas := dayContext(now)
	sb.WriteString(dayBlock)
	sb.WriteString(timeContext(TimeOfDay(now)))
	if christmas {
		sb.WriteString(holidayInstruction)
	}
	if session.Goal == types.GoalGetNumber {
		sb.WriteString(getNumberInstruction)
	}
	if session.PersonalContext != "" {
		sb.WriteString(personalContextBlock(session.PersonalContext))
	}
	if len(session.FeedbackLog) > 0 {
		sb.WriteString(feedbackBlock(session.FeedbackLog))
	}
	if in.Toggles.OutfitSent {
		sb.WriteString(outfitInstruction)
	}
	if in.Toggles.AskingLocation {
		sb.WriteString(askLocationInstruction)
	}
	if in.Toggles.AskingForPhoto {
		sb.WriteString(askForPhotoInstruction)
	}
	if len(session.History) > 0 {
		sb.WriteString(historyBlock(c.recentHistory(session.History)))
	}

	return Instruction{System: sb.String(), UserText: UserTurnText}, nil
}

func (c *Composer) recentHistory(history []string) []string {
	if c.historyLimit > 0 && len(history) > c.historyLimit {
		return history[len(history)-c.historyLimit:]
	}
	return history
}

// TimeOfDay buckets the hour: morning 5-11, afternoon 12-16, evening 17-20, night otherwise.
func TimeOfDay(t time.Time) string {
	switch hour := t.Hour(); {
	case hour >= 5 && hour < 12:
		return "morning"
	case hour >= 12 && hour < 17:
		return "afternoon"
	case hour >= 17 && hour < 21:
		return "evening"
	default:
		return "night"
	}
}

func dayContext(t time.Time) (string, bool) {
	if t.Month() == time.December && t.Day() == 25 {
		return "\n\nCURRENT DAY & STATUS (VERY IMPORTANT): Today is Christmas Day! Merry Christmas! I'm currently enjoying the holiday festivities at home.", true
	}
	day := t.Weekday().String()
	status := fmt.Sprintf("It's %s, and I'm likely at home after work.", day)
	if t.Weekday() == time.Saturday || t.Weekday() == time.Sunday {
		status = "It's the weekend, and I'm at home."
	}
	return fmt.Sprintf("\n\nCURRENT DAY & STATUS (VERY IMPORTANT): Today is %s. %s", day, status), false
}

func timeContext(tod string) string {
	return fmt.Sprintf("\n\nCURRENT TIME CONTEXT (VERY IMPORTANT): It is currently %s. Ensure all greetings and time-sensitive references in your replies are appropriate for the %s. For example, use 'Good evening' not 'Good afternoon' if it is evening.", tod, tod)
}

func personalContextBlock(text string) string {
	return "\n\nUSER'S PERSONAL CONTEXT:\n" + text + "\nUse this information to tailor your replies and make them more personal and relevant to the user's current situation."
}

func feedbackBlock(log []types.FeedbackEntry) string {
	var positive, negative []string
	for _, entry := range log {
		switch entry.Rating {
		case types.RatingPositive:
			positive = append(positive, entry.Reply)
		case types.RatingNegative:
			negative = append(negative, entry.Reply)
		}
	}

	var sb strings.Builder
	sb.WriteString("\n\nUSER FEEDBACK ON PREVIOUS SUGGESTIONS:")
	if len(positive) > 0 {
		sb.WriteString("\n- The user LIKED these styles of replies: ")
		sb.WriteString(strings.Join(lastN(positive, feedbackExamples), "; "))
	}
	if len(negative) > 0 {
		sb.WriteString("\n- The user DISLIKED these styles (avoid them): ")
		sb.WriteString(strings.Join(lastN(negative, feedbackExamples), "; "))
	}
	sb.WriteString("\nCalibrate your tone based on this feedback.")
	return sb.String()
}

func historyBlock(history []string) string {
	lines := make([]string, len(history))
	for i, summary := range history {
		lines[i] = "- " + summary
	}
	return "\n\nCONVERSATION HISTORY (SUMMARIES OF PREVIOUS TURNS):\n" + strings.Join(lines, "\n")
}

func lastN(items []string, n int) []string {
	if len(items) > n {
		return items[len(items)-n:]
	}
	return items
}
