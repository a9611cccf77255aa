package parsing

import (
	"net/url"
	"regexp"
	"strings"
)

// SubmitRule is one heuristic for finding the submission endpoint in page text.
// Extract is pure: it returns an absolute URL and true on a match.
type SubmitRule struct {
	Name    string
	Extract func(text string, base *url.URL) (string, bool)
}

var (
	// An absolute URL whose path ends in /submit, followed by whitespace, quote or punctuation
	absoluteSubmitPattern = regexp.MustCompile(`(https?://[^\s"'<>]+/submit)(?:[\s"'<>.,;:!?)\]]|$)`)
	postYourAnswerPattern = regexp.MustCompile(`(?i)Post your answer to\s+(https?://\S+)`)
	postToPattern         = regexp.MustCompile(`(?i)POST\s+(?:.*?\s+)?to\s+(\S+)`)
	scrapePattern         = regexp.MustCompile(`(?i)Scrape\s+(\S+)\s+\(relative to this page\)`)
	cutoffPattern         = regexp.MustCompile(`(?i)Cutoff:\s*(\d+)`)
)

// submitRules are tried in order; the first match wins.
var submitRules = []SubmitRule{
	{Name: "absolute-submit", Extract: extractAbsoluteSubmit},
	{Name: "post-your-answer", Extract: extractPostYourAnswer},
	{Name: "post-to", Extract: extractPostTo},
	{Name: "origin-fallback", Extract: extractOriginFallback},
}

// SubmitRules returns the submission endpoint rules in precedence order.
func SubmitRules() []SubmitRule {
	rules := make([]SubmitRule, len(submitRules))
	copy(rules, submitRules)
	return rules
}

func extractAbsoluteSubmit(text string, _ *url.URL) (string, bool) {
	m := absoluteSubmitPattern.FindStringSubmatch(text)
	if m == nil {
		return "", false
	}
	return resolve(nil, m[1])
}

func extractPostYourAnswer(text string, _ *url.URL) (string, bool) {
	m := postYourAnswerPattern.FindStringSubmatch(text)
	if m == nil {
		return "", false
	}
	return resolve(nil, m[1])
}

func extractPostTo(text string, base *url.URL) (string, bool) {
	m := postToPattern.FindStringSubmatch(text)
	if m == nil {
		return "", false
	}
	return resolve(base, m[1])
}

func extractOriginFallback(_ string, base *url.URL) (string, bool) {
	if base == nil {
		return "", false
	}
	origin := url.URL{Scheme: base.Scheme, Host: base.Host, Path: "/submit"}
	return origin.String(), true
}

// resolve turns token into an absolute http(s) URL, relative to base when base is non-nil.
func resolve(base *url.URL, token string) (string, bool) {
	token = trimToken(token)
	if token == "" {
		return "", false
	}

	ref, err := url.Parse(token)
	if err != nil {
		return "", false
	}
	if base != nil {
		ref = base.ResolveReference(ref)
	}
	if !isAbsoluteHTTP(ref) {
		return "", false
	}
	return ref.String(), true
}

// trimToken strips sentence punctuation and quotes that cling to a URL in prose.
func trimToken(token string) string {
	return strings.TrimRight(strings.TrimLeft(token, `"'(<`), `.,;:!?)"'>`)
}

func isAbsoluteHTTP(u *url.URL) bool {
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// parseBase parses the current page URL, returning nil if it is not an absolute http(s) URL.
func parseBase(currentURL string) *url.URL {
	u, err := url.Parse(strings.TrimSpace(currentURL))
	if err != nil || !isAbsoluteHTTP(u) {
		return nil
	}
	return u
}
