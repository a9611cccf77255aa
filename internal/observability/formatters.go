// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/quiz-solver/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 72
	// maxTextLines is how many lines of page text a box shows
	maxTextLines = 6
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintQuizInfo outputs what the parser extracted from a quiz page.
func (p *Printer) PrintQuizInfo(iteration int, info *types.QuizInfo) {
	if info == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Page:    %s\n", info.CurrentURL))
	sb.WriteString(fmt.Sprintf("Submit:  %s (%s)\n", info.SubmitURL, info.SubmitRule))
	if info.ScrapeURL != nil {
		sb.WriteString(fmt.Sprintf("Scrape:  %s\n", *info.ScrapeURL))
	}
	if info.CSVQuiz {
		if info.CSVCutoff != nil {
			sb.WriteString(fmt.Sprintf("CSV:     yes, cutoff %d\n", *info.CSVCutoff))
		} else {
			sb.WriteString("CSV:     yes, no cutoff\n")
		}
	}

	textLines := nonEmptyLines(info.RawText)
	if len(textLines) > 0 {
		sb.WriteString("\n")
		count := min(len(textLines), maxTextLines)
		for i := 0; i < count; i++ {
			sb.WriteString(fmt.Sprintf("  %s\n", textLines[i]))
		}
		if len(textLines) > maxTextLines {
			sb.WriteString(fmt.Sprintf("  ... and %d more lines\n", len(textLines)-maxTextLines))
		}
	}

	p.printBox(fmt.Sprintf("QUIZ PAGE #%d", iteration), strings.TrimSuffix(sb.String(), "\n"))
}

// PrintSubmission outputs the answer sent and the server's verdict.
func (p *Printer) PrintSubmission(answer types.Answer, result *types.SubmissionResult) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Answer:  %s (%s)\n", answer.String(), answer.Kind))

	if result != nil {
		if correct := result.CorrectText(); correct != "" {
			sb.WriteString(fmt.Sprintf("Correct: %s\n", correct))
		}
		if reason := result.ReasonText(); reason != "" {
			sb.WriteString(fmt.Sprintf("Reason:  %s\n", reason))
		}
		if next := result.NextURL(); next != "" {
			sb.WriteString(fmt.Sprintf("Next:    %s\n", next))
		} else {
			sb.WriteString("Next:    (none)\n")
		}
	}

	p.printBox("SUBMISSION", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintSessionEnd outputs the final state of a session.
func (p *Printer) PrintSessionEnd(sessionID string, iterations int, reason string) {
	content := fmt.Sprintf("Session:    %s\nIterations: %d\nEnded:      %s", sessionID, iterations, reason)
	p.printBox("SESSION COMPLETE", content)
}

func nonEmptyLines(text string) []string {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}
