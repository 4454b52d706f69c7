package types

import (
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func TestChatSessionJSONOmitsZeroCreatedAt(t *testing.T) {
	data, err := json.Marshal(ChatSession{ID: "a", ContactName: NewChatName, History: []string{}, Goal: GoalRapport})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if strings.Contains(string(data), "createdAt") {
		t.Fatalf("zero createdAt must be omitted: %s", data)
	}

	stamped := ChatSession{ID: "b", CreatedAt: time.Date(2025, time.June, 10, 14, 0, 0, 0, time.UTC)}
	data, err = json.Marshal(stamped)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !strings.Contains(string(data), `"createdAt":"2025-06-10T14:00:00Z"`) {
		t.Fatalf("createdAt missing: %s", data)
	}
}

func TestRateOverwritesPreviousRating(t *testing.T) {
	var s ChatSession
	s.Rate("hey", RatingPositive)
	s.Rate("hey", RatingNegative)

	if len(s.FeedbackLog) != 1 {
		t.Fatalf("expected one entry, got %d", len(s.FeedbackLog))
	}
	if got, ok := s.RatingFor("hey"); !ok || got != RatingNegative {
		t.Fatalf("expected last rating to win, got %q", got)
	}
}
