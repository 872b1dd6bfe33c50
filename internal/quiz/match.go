package quiz

import (
	"strings"

	"github.com/pmezard/go-difflib/difflib"
)

// DefaultThreshold is the similarity border a user answer must reach.
const DefaultThreshold = 0.9

// stripSet entries are deleted from the answer key wherever they occur.
var stripSet = []string{"...", `"`}

// cutSet entries truncate the answer key at their first occurrence,
// applied in this order against the already-truncated text.
var cutSet = []string{" - ", ". ", " ("}

// Normalize reduces a human-authored answer key to the form a user would
// actually type: editorial suffixes, clarifications in parentheses and
// quotation marks are removed. Idempotent; casing is left untouched.
func Normalize(raw string) string {
	for _, s := range stripSet {
		raw = strings.ReplaceAll(raw, s, "")
	}
	for _, c := range cutSet {
		if i := strings.Index(raw, c); i >= 0 {
			raw = raw[:i]
		}
	}
	return strings.TrimSpace(raw)
}

// Ratio computes the similarity of two strings in [0,1]: 2*M/T over the
// longest matching blocks of their rune sequences, difflib semantics.
func Ratio(a, b string) float64 {
	return difflib.NewMatcher(splitRunes(a), splitRunes(b)).Ratio()
}

// IsMatch reports whether a free-text user answer is close enough to the
// answer key. The key is normalized first, then both sides are compared
// case-insensitively.
func IsMatch(correctAnswer, userAnswer string, threshold float64) bool {
	normalized := strings.ToLower(Normalize(correctAnswer))
	user := strings.ToLower(userAnswer)
	return Ratio(normalized, user) >= threshold
}

func splitRunes(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, "")
}
