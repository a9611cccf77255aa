package observability

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	"github.com/jonathan/quiz-solver/internal/types"
	"github.com/stretchr/testify/assert"
)

func TestPrintQuizInfo(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	scrape := "https://quiz.example.com/data"
	cutoff := 12
	info := &types.QuizInfo{
		SubmitURL:  "https://quiz.example.com/submit",
		SubmitRule: "absolute-submit",
		ScrapeURL:  &scrape,
		CSVQuiz:    true,
		CSVCutoff:  &cutoff,
		RawText:    "Q1\n\nScrape the page\nPost your answer",
		CurrentURL: "https://quiz.example.com/q1",
	}

	p.PrintQuizInfo(1, info)
	output := buf.String()

	assert.Contains(t, output, "QUIZ PAGE #1")
	assert.Contains(t, output, "https://quiz.example.com/submit (absolute-submit)")
	assert.Contains(t, output, "Scrape:  https://quiz.example.com/data")
	assert.Contains(t, output, "cutoff 12")
	assert.Contains(t, output, "Scrape the page")
}

func TestPrintQuizInfo_LongText(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	var lines []string
	for i := 0; i < 10; i++ {
		lines = append(lines, fmt.Sprintf("line %d", i))
	}
	p.PrintQuizInfo(2, &types.QuizInfo{CSVQuiz: true, RawText: strings.Join(lines, "\n")})
	output := buf.String()

	assert.Contains(t, output, "no cutoff")
	assert.Contains(t, output, "line 5")
	assert.NotContains(t, output, "line 6")
	assert.Contains(t, output, "... and 4 more lines")
}

func TestPrintQuizInfo_Nil(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintQuizInfo(1, nil)
	assert.Empty(t, buf.String())
}

func TestPrintSubmission(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintSubmission(types.IntegerAnswer(40), &types.SubmissionResult{
		Correct: json.RawMessage(`false`),
		Reason:  json.RawMessage(`"Sum is off by 3"`),
	})
	output := buf.String()

	assert.Contains(t, output, "SUBMISSION")
	assert.Contains(t, output, "40 (integer)")
	assert.Contains(t, output, "Correct: false")
	assert.Contains(t, output, "Sum is off by 3")
	assert.Contains(t, output, "Next:    (none)")
}

func TestPrintSubmission_NextURL(t *testing.T) {
	var buf bytes.Buffer
	next := "https://quiz.example.com/q2"
	NewPrinter(&buf).PrintSubmission(types.StringAnswer("4821"), &types.SubmissionResult{URL: &next})

	assert.Contains(t, buf.String(), "Next:    https://quiz.example.com/q2")
}

func TestPrintSessionEnd(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintSessionEnd("abc-123", 3, "no-next-url")
	output := buf.String()

	assert.Contains(t, output, "SESSION COMPLETE")
	assert.Contains(t, output, "Iterations: 3")
	assert.Contains(t, output, "no-next-url")
}

func TestPrintBox_TruncatesLongLines(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).printBox("T", strings.Repeat("x", 200))

	assert.Contains(t, buf.String(), "...")
	assert.NotContains(t, buf.String(), strings.Repeat("x", 100))
}
