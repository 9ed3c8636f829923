package pipeline

import (
	"regexp"
	"strings"
)

// MaxInputLength is the maximum length of sanitized user input, in characters.
const MaxInputLength = 1000

var (
	markupPattern = regexp.MustCompile(`<[^>]+>`)
	scriptPattern = regexp.MustCompile(`(?i)javascript:`)

	// Instruction-like phrases commonly used in prompt injection attempts.
	injectionPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)ignore\s+(previous|above|all)\s+instructions?`),
		regexp.MustCompile(`(?i)disregard\s+(previous|above|all)`),
		regexp.MustCompile(`(?i)forget\s+(everything|all|previous)`),
		regexp.MustCompile(`(?i)you\s+are\s+now`),
		regexp.MustCompile(`(?i)system\s+prompt`),
		regexp.MustCompile(`(?i)reveal\s+(your|the)\s+prompt`),
	}
)

// Sanitize neutralizes prompt-injection attempts and bounds input size before
// any user text reaches a prompt template. It never fails; the result may be
// empty, in which case downstream non-empty checks reject the request.
func Sanitize(input string) string {
	s := markupPattern.ReplaceAllString(input, "")
	s = scriptPattern.ReplaceAllString(s, "")

	for _, p := range injectionPatterns {
		s = p.ReplaceAllString(s, "")
	}

	// Collapse whitespace runs to single spaces.
	s = strings.Join(strings.Fields(s), " ")

	// Truncate by characters, not bytes, so multi-byte input keeps its full
	// allowance and the cut never lands inside a rune.
	if runes := []rune(s); len(runes) > MaxInputLength {
		s = string(runes[:MaxInputLength])
	}

	return strings.TrimSpace(s)
}
