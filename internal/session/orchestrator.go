// Package session drives a quiz chain from a starting URL until it ends or runs out of time.
package session

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/quiz-solver/internal/observability"
	"github.com/jonathan/quiz-solver/internal/parsing"
	"github.com/jonathan/quiz-solver/internal/types"
)

// EndReason describes why a session stopped without error.
type EndReason string

const (
	// EndNoNextURL means the last submission response carried no follow-up URL
	EndNoNextURL EndReason = "no-next-url"
	// EndDeadline means the deadline passed before the next page was started
	EndDeadline EndReason = "deadline"
)

// TextRenderer renders a page and returns its visible text.
type TextRenderer interface {
	RenderText(ctx context.Context, url string) (string, error)
}

// AnswerResolver computes the answer for a parsed page.
type AnswerResolver interface {
	Resolve(ctx context.Context, info *types.QuizInfo, id types.Identity) (types.Answer, error)
}

// Submitter posts an answer and returns the server's verdict.
type Submitter interface {
	Submit(ctx context.Context, submitURL string, id types.Identity, originalURL string, answer types.Answer) (*types.SubmissionResult, error)
}

// Summary reports how a finished session went.
type Summary struct {
	ID         uuid.UUID
	Iterations int
	EndReason  EndReason
	LastResult *types.SubmissionResult
}

// Orchestrator runs quiz sessions. It holds no per-session state and may be shared.
type Orchestrator struct {
	renderer  TextRenderer
	resolver  AnswerResolver
	submitter Submitter
	printer   *observability.Printer
	now       func() time.Time
}

// NewOrchestrator creates an Orchestrator. printer may be nil.
func NewOrchestrator(renderer TextRenderer, resolver AnswerResolver, submitter Submitter, printer *observability.Printer) *Orchestrator {
	return &Orchestrator{
		renderer:  renderer,
		resolver:  resolver,
		submitter: submitter,
		printer:   printer,
		now:       time.Now,
	}
}

// Run solves pages starting at startURL until a response has no next URL or the
// deadline has passed at the start of an iteration. An iteration already in
// progress is not interrupted by the deadline. Any failure aborts the session.
func (o *Orchestrator) Run(ctx context.Context, id types.Identity, startURL string, deadline time.Time) (*Summary, error) {
	summary := &Summary{ID: uuid.New()}
	currentURL := startURL

	log.Printf("[SESSION] %s starting at %s (deadline %s)", summary.ID, startURL, deadline.Format(time.RFC3339))

	for currentURL != "" {
		if !o.now().Before(deadline) {
			log.Printf("[SESSION] %s deadline reached after %d iterations", summary.ID, summary.Iterations)
			summary.EndReason = EndDeadline
			o.finish(summary)
			return summary, nil
		}

		iteration := summary.Iterations + 1
		result, err := o.step(ctx, iteration, id, currentURL)
		if err != nil {
			log.Printf("[SESSION] %s failed at iteration %d: %v", summary.ID, iteration, err)
			return summary, fmt.Errorf("iteration %d (%s): %w", iteration, currentURL, err)
		}

		summary.Iterations = iteration
		summary.LastResult = result
		currentURL = result.NextURL()
	}

	summary.EndReason = EndNoNextURL
	o.finish(summary)
	return summary, nil
}

// step runs one render, parse, resolve and submit cycle.
func (o *Orchestrator) step(ctx context.Context, iteration int, id types.Identity, pageURL string) (*types.SubmissionResult, error) {
	log.Printf("[SESSION] Iteration %d: %s", iteration, pageURL)

	text, err := o.renderer.RenderText(ctx, pageURL)
	if err != nil {
		return nil, fmt.Errorf("render failed: %w", err)
	}

	info, err := parsing.ParseQuizPage(text, pageURL)
	if err != nil {
		return nil, fmt.Errorf("parse failed: %w", err)
	}
	if o.printer != nil {
		o.printer.PrintQuizInfo(iteration, info)
	}

	answer, err := o.resolver.Resolve(ctx, info, id)
	if err != nil {
		return nil, fmt.Errorf("resolve failed: %w", err)
	}

	result, err := o.submitter.Submit(ctx, info.SubmitURL, id, pageURL, answer)
	if err != nil {
		return nil, fmt.Errorf("submit failed: %w", err)
	}
	if o.printer != nil {
		o.printer.PrintSubmission(answer, result)
	}

	if correct := result.CorrectText(); correct != "" {
		log.Printf("[SESSION] Iteration %d submitted, correct=%s", iteration, correct)
	}
	return result, nil
}

func (o *Orchestrator) finish(summary *Summary) {
	log.Printf("[SESSION] %s ended (%s) after %d iterations", summary.ID, summary.EndReason, summary.Iterations)
	if o.printer != nil {
		o.printer.PrintSessionEnd(summary.ID.String(), summary.Iterations, string(summary.EndReason))
	}
}
