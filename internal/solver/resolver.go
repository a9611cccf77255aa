// Package solver computes answers for parsed quiz pages.
package solver

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/jonathan/quiz-solver/internal/fetch"
	"github.com/jonathan/quiz-solver/internal/types"
)

// PageRenderer renders a URL in a JavaScript-capable browser.
type PageRenderer interface {
	RenderText(ctx context.Context, url string) (string, error)
	RenderHTML(ctx context.Context, url string) (string, error)
}

// Downloader fetches a raw resource body.
type Downloader interface {
	Download(ctx context.Context, url string) (*fetch.Result, error)
}

// Strategy names how an answer is computed.
type Strategy string

const (
	// StrategyScrape reads a secret code from a secondary page
	StrategyScrape Strategy = "scrape"
	// StrategyCommand echoes a fixed command line
	StrategyCommand Strategy = "command"
	// StrategyCSV sums a CSV column above a cutoff
	StrategyCSV Strategy = "csv"
	// StrategyPlaceholder returns the configured placeholder
	StrategyPlaceholder Strategy = "placeholder"
)

// commandTaskMarker and commandURLMarker identify the fixed-command task.
const (
	commandTaskMarker = "uv http get"
	commandURLMarker  = "project2-uv"
)

// Options configures the resolver's static answers.
type Options struct {
	CommandTargetURL  string
	PlaceholderAnswer string
	Verbose           bool
}

// Resolver picks and runs an answer strategy for each quiz page.
type Resolver struct {
	renderer   PageRenderer
	downloader Downloader
	opts       Options
}

// NewResolver creates a Resolver.
func NewResolver(renderer PageRenderer, downloader Downloader, opts Options) *Resolver {
	return &Resolver{
		renderer:   renderer,
		downloader: downloader,
		opts:       opts,
	}
}

// SelectStrategy returns the strategy for info. The order is a tie-break: a page that
// matches several conditions gets the first one listed here.
func SelectStrategy(info *types.QuizInfo) Strategy {
	switch {
	case info.HasScrapeTarget():
		return StrategyScrape
	case isCommandTask(info):
		return StrategyCommand
	case info.IsCSVTask():
		return StrategyCSV
	default:
		return StrategyPlaceholder
	}
}

func isCommandTask(info *types.QuizInfo) bool {
	return strings.Contains(strings.ToLower(info.RawText), commandTaskMarker) ||
		strings.Contains(info.CurrentURL, commandURLMarker)
}

// Resolve computes the answer for info. Render and download failures are returned as is.
func (r *Resolver) Resolve(ctx context.Context, info *types.QuizInfo, id types.Identity) (types.Answer, error) {
	strategy := SelectStrategy(info)
	log.Printf("[RESOLVE] Using %s strategy for %s", strategy, info.CurrentURL)

	switch strategy {
	case StrategyScrape:
		return r.resolveScrape(ctx, *info.ScrapeURL)
	case StrategyCommand:
		return types.StringAnswer(buildCommand(r.opts.CommandTargetURL, id.Email)), nil
	case StrategyCSV:
		return r.resolveCSV(ctx, info.CurrentURL, *info.CSVCutoff)
	case StrategyPlaceholder:
		return types.StringAnswer(r.opts.PlaceholderAnswer), nil
	default:
		return types.Answer{}, fmt.Errorf("unknown strategy %q", strategy)
	}
}

func (r *Resolver) resolveScrape(ctx context.Context, scrapeURL string) (types.Answer, error) {
	text, err := r.renderer.RenderText(ctx, scrapeURL)
	if err != nil {
		return types.Answer{}, fmt.Errorf("failed to render scrape page: %w", err)
	}

	if r.opts.Verbose {
		log.Printf("[RESOLVE] Scrape page snippet: %q", snippet(text, 500))
	}

	code, source := ExtractSecretCode(text)
	log.Printf("[RESOLVE] Secret code via %s: %q", source, snippet(code, 80))
	return types.StringAnswer(code), nil
}

func (r *Resolver) resolveCSV(ctx context.Context, pageURL string, cutoff int) (types.Answer, error) {
	html, err := r.renderer.RenderHTML(ctx, pageURL)
	if err != nil {
		return types.Answer{}, fmt.Errorf("failed to render CSV quiz page: %w", err)
	}

	csvURL, ok := FindCSVURL(html, pageURL)
	if !ok {
		log.Printf("[RESOLVE] No CSV link found on %s, answering \"0\"", pageURL)
		return types.StringAnswer("0"), nil
	}

	log.Printf("[RESOLVE] Downloading CSV from %s", csvURL)
	result, err := r.downloader.Download(ctx, csvURL)
	if err != nil {
		return types.Answer{}, fmt.Errorf("failed to download CSV: %w", err)
	}

	if r.opts.Verbose {
		log.Printf("[RESOLVE] CSV download: %d bytes, content type %q", len(result.Body), result.ContentType)
	}

	sum, err := SumAboveCutoff(result.Body, cutoff)
	if err != nil {
		return types.Answer{}, fmt.Errorf("failed to aggregate CSV from %s: %w", csvURL, err)
	}
	if sum.Column == "" {
		log.Printf("[RESOLVE] CSV from %s has no numeric column, answering 0", csvURL)
	} else {
		log.Printf("[RESOLVE] Sum of %q > %d over %d rows: %d", sum.Column, cutoff, sum.Rows, sum.Total)
	}

	return types.IntegerAnswer(sum.Total), nil
}

// snippet shortens s for logging.
func snippet(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
