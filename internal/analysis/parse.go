// Package analysis turns the coach model's free-text answer into structured reply suggestions.
package analysis

import (
	"errors"
	"log/slog"
	"strings"

	"github.com/easeaico/chat-coach/internal/types"
)

const (
	// Marker prefixes every reply block title.
	Marker = "✅"
	// sectionMarker locates the first reply block.
	sectionMarker = Marker + " REPLY"

	namePrefix    = "NAME:"
	summaryPrefix = "SUMMARY:"

	missingSummary = "Could not generate summary."
	failedSummary  = "Could not parse AI response."
	rawReplyTitle  = "Raw AI Response (Please try again)"
)

var (
	errNoReplySection = errors.New("no replies found in the expected format")
	errNoValidReplies = errors.New("could not parse any valid replies")
)

// Result is a parsed analysis. Degraded results carry the raw text as their only reply.
type Result struct {
	types.AnalysisResult
	Degraded bool
	Reason   error
}

// Parse scans the header lines, then splits the reply section on the marker.
// It never fails: malformed input yields a degraded result.
func Parse(raw string) Result {
	result, err := scan(raw)
	if err != nil {
		slog.Warn("failed to parse analysis response", "error", err.Error(), "length", len(raw))
		return Result{
			AnalysisResult: types.AnalysisResult{
				DetectedName: types.ErrorName,
				Summary:      failedSummary,
				Replies:      []types.Reply{{Title: rawReplyTitle, Reply: raw}},
			},
			Degraded: true,
			Reason:   err,
		}
	}
	return Result{AnalysisResult: result}
}

func scan(raw string) (types.AnalysisResult, error) {
	lines := strings.Split(strings.TrimSpace(raw), "\n")

	result := types.AnalysisResult{
		DetectedName: types.UnknownName,
		Summary:      missingSummary,
	}
	if line, ok := findPrefixed(lines, namePrefix); ok {
		result.DetectedName = stripRunes(line, len(namePrefix))
	}
	if line, ok := findPrefixed(lines, summaryPrefix); ok {
		result.Summary = stripRunes(line, len(summaryPrefix))
	}

	start := -1
	for i, line := range lines {
		if strings.Contains(line, sectionMarker) {
			start = i
			break
		}
	}
	if start == -1 {
		return types.AnalysisResult{}, errNoReplySection
	}

	section := strings.Join(lines[start:], "\n")
	for _, part := range strings.Split(section, Marker) {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		title, body, _ := strings.Cut(part, "\n")
		title = strings.TrimSpace(title)
		body = strings.TrimSpace(body)
		if title == "" || body == "" {
			continue
		}
		result.Replies = append(result.Replies, types.Reply{
			Title: Marker + " " + title,
			Reply: body,
		})
	}
	if len(result.Replies) == 0 {
		return types.AnalysisResult{}, errNoValidReplies
	}
	return result, nil
}

// findPrefixed returns the first line whose upper-cased form starts with prefix.
func findPrefixed(lines []string, prefix string) (string, bool) {
	for _, line := range lines {
		if strings.HasPrefix(strings.ToUpper(line), prefix) {
			return line, true
		}
	}
	return "", false
}

// stripRunes drops a fixed number of leading characters and trims the rest.
func stripRunes(line string, n int) string {
	runes := []rune(line)
	if len(runes) <= n {
		return ""
	}
	return strings.TrimSpace(string(runes[n:]))
}

// AnnotateRatings copies recorded ratings from the session onto matching replies.
func AnnotateRatings(result types.AnalysisResult, session *types.ChatSession) types.AnalysisResult {
	if session == nil || len(session.FeedbackLog) == 0 {
		return result
	}
	replies := make([]types.Reply, len(result.Replies))
	copy(replies, result.Replies)
	for i := range replies {
		if rating, ok := session.RatingFor(replies[i].Reply); ok {
			replies[i].Rating = rating
		}
	}
	result.Replies = replies
	return result
}
