package solver

import (
	"regexp"
	"strings"
)

var (
	secretCodeIsPattern = regexp.MustCompile(`[Ss]ecret code\s+is\s+(\d+)`)
	integerPattern      = regexp.MustCompile(`\d+`)
)

// ExtractSecretCode pulls a secret code out of rendered page text. It prefers a line
// mentioning both "secret" and "code"; on that line "secret code is N" beats the first
// number. Failing that it takes the first number anywhere, and finally the whole text.
// The second return value names the heuristic that produced the code.
func ExtractSecretCode(text string) (string, string) {
	for _, line := range splitLines(text) {
		lower := strings.ToLower(line)
		if !strings.Contains(lower, "secret") || !strings.Contains(lower, "code") {
			continue
		}
		if m := secretCodeIsPattern.FindStringSubmatch(line); m != nil {
			return m[1], "secret-code-is"
		}
		if n := integerPattern.FindString(line); n != "" {
			return n, "first-number-on-line"
		}
	}

	if n := integerPattern.FindString(text); n != "" {
		return n, "first-number-in-page"
	}

	return strings.TrimSpace(text), "full-text"
}

func splitLines(text string) []string {
	return strings.FieldsFunc(text, func(r rune) bool {
		return r == '\n' || r == '\r'
	})
}
