// Package parsing extracts quiz instructions from rendered page text.
package parsing

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/jonathan/quiz-solver/internal/types"
)

// ParseQuizPage extracts the submission endpoint, the optional scrape target and the
// optional CSV cutoff from the rendered text of the page at currentURL.
// It returns a *ParseError when no submission endpoint can be determined.
func ParseQuizPage(pageText, currentURL string) (*types.QuizInfo, error) {
	base := parseBase(currentURL)

	info := &types.QuizInfo{
		RawText:    pageText,
		CurrentURL: currentURL,
	}

	for _, rule := range submitRules {
		if submitURL, ok := rule.Extract(pageText, base); ok {
			info.SubmitURL = submitURL
			info.SubmitRule = rule.Name
			break
		}
	}
	if info.SubmitURL == "" {
		return nil, &ParseError{URL: currentURL, Message: "submit URL not found"}
	}

	if scrapeURL, ok := findScrapeURL(pageText, base); ok {
		info.ScrapeURL = &scrapeURL
	}

	info.CSVQuiz, info.CSVCutoff = findCSVTask(pageText)

	return info, nil
}

// findScrapeURL looks for "Scrape <token> (relative to this page)".
func findScrapeURL(text string, base *url.URL) (string, bool) {
	m := scrapePattern.FindStringSubmatch(text)
	if m == nil {
		return "", false
	}
	return resolve(base, m[1])
}

// findCSVTask reports whether the page mentions a CSV file and, if so, its cutoff.
func findCSVTask(text string) (bool, *int) {
	if !strings.Contains(strings.ToLower(text), "csv file") {
		return false, nil
	}

	m := cutoffPattern.FindStringSubmatch(text)
	if m == nil {
		return true, nil
	}
	cutoff, err := strconv.Atoi(m[1])
	if err != nil {
		// Too many digits for an int
		return true, nil
	}
	return true, &cutoff
}
