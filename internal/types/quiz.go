// Package types provides type definitions for structured data used throughout the quiz-solver system.
package types

import (
	"bytes"
	"encoding/json"
)

// QuizInfo is the parsed form of one rendered quiz page.
// It is built fresh for every iteration of a session and never persisted.
type QuizInfo struct {
	SubmitURL  string  `json:"submit_url"`
	SubmitRule string  `json:"submit_rule"` // Name of the heuristic that found SubmitURL
	ScrapeURL  *string `json:"scrape_url,omitempty"`
	CSVCutoff  *int    `json:"csv_cutoff,omitempty"`
	CSVQuiz    bool    `json:"csv_quiz"`
	RawText    string  `json:"-"`
	CurrentURL string  `json:"current_url"`
}

// HasScrapeTarget reports whether the page points at a secondary page to scrape.
func (q *QuizInfo) HasScrapeTarget() bool {
	return q.ScrapeURL != nil && *q.ScrapeURL != ""
}

// IsCSVTask reports whether the page is a CSV aggregation task.
// A page that mentions a CSV file but carries no cutoff is not treated as one.
func (q *QuizInfo) IsCSVTask() bool {
	return q.CSVQuiz && q.CSVCutoff != nil
}

// Identity is the caller identity sent along with every submission.
type Identity struct {
	Email  string
	Secret string
}

// SubmissionRequest is the JSON body POSTed to a submission endpoint.
type SubmissionRequest struct {
	Email  string `json:"email"`
	Secret string `json:"secret"`
	URL    string `json:"url"`
	Answer Answer `json:"answer"`
}

// SubmissionResult is the JSON response of a submission endpoint.
// Only URL drives the session. Correct and Reason are server-defined and may hold
// any JSON value; they are kept raw for logging.
type SubmissionResult struct {
	URL     *string         `json:"url"`
	Correct json.RawMessage `json:"correct,omitempty"`
	Reason  json.RawMessage `json:"reason,omitempty"`
}

// NextURL returns the next quiz URL, or "" when the session should end.
func (r *SubmissionResult) NextURL() string {
	if r == nil || r.URL == nil {
		return ""
	}
	return *r.URL
}

// CorrectText returns the correct field formatted for display, or "" when absent or null.
func (r *SubmissionResult) CorrectText() string {
	if r == nil {
		return ""
	}
	return rawText(r.Correct)
}

// ReasonText returns the reason field formatted for display, or "" when absent or null.
func (r *SubmissionResult) ReasonText() string {
	if r == nil {
		return ""
	}
	return rawText(r.Reason)
}

// rawText unquotes JSON strings and compacts everything else.
func rawText(raw json.RawMessage) string {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return ""
	}

	var s string
	if err := json.Unmarshal(trimmed, &s); err == nil {
		return s
	}

	var buf bytes.Buffer
	if err := json.Compact(&buf, trimmed); err != nil {
		return string(trimmed)
	}
	return buf.String()
}
