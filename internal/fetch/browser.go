// Package fetch - browser.go provides headless browser rendering for quiz pages.
package fetch

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/chromedp/chromedp"
)

// RenderError reports a page that could not be loaded or read in the browser.
type RenderError struct {
	URL   string
	Cause error
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("render error for %s: %v", e.URL, e.Cause)
}

func (e *RenderError) Unwrap() error {
	return e.Cause
}

// BrowserRenderer renders pages in headless Chrome.
// Every call launches its own browser and closes it before returning; nothing is pooled.
// Requires Chrome/Chromium to be installed on the system.
type BrowserRenderer struct {
	timeout time.Duration
	settle  time.Duration
	verbose bool
}

// NewBrowserRenderer creates a renderer. settle is how long to wait after <body> is
// ready so that page scripts can fill in content.
func NewBrowserRenderer(timeout, settle time.Duration, verbose bool) *BrowserRenderer {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &BrowserRenderer{
		timeout: timeout,
		settle:  settle,
		verbose: verbose,
	}
}

// RenderText loads url with JavaScript enabled and returns the visible text of <body>.
func (r *BrowserRenderer) RenderText(ctx context.Context, url string) (string, error) {
	var text string
	if err := r.render(ctx, url, chromedp.Text("body", &text, chromedp.ByQuery)); err != nil {
		return "", err
	}

	if r.verbose {
		log.Printf("[BROWSER] Rendered text: %d bytes", len(text))
	}
	return text, nil
}

// RenderHTML loads url with JavaScript enabled and returns the full document HTML.
func (r *BrowserRenderer) RenderHTML(ctx context.Context, url string) (string, error) {
	var html string
	if err := r.render(ctx, url, chromedp.OuterHTML("html", &html, chromedp.ByQuery)); err != nil {
		return "", err
	}

	if r.verbose {
		log.Printf("[BROWSER] Rendered HTML: %d bytes", len(html))
	}
	return html, nil
}

func (r *BrowserRenderer) render(ctx context.Context, url string, extract chromedp.Action) error {
	if r.verbose {
		log.Printf("[BROWSER] Starting headless browser for: %s", url)
	}

	allocCtx, cancel := chromedp.NewExecAllocator(ctx,
		append(chromedp.DefaultExecAllocatorOptions[:],
			chromedp.Flag("headless", true),
			chromedp.Flag("disable-gpu", true),
			chromedp.Flag("no-sandbox", true),
			chromedp.Flag("disable-dev-shm-usage", true),
		)...,
	)
	defer cancel()

	browserCtx, cancel := chromedp.NewContext(allocCtx)
	defer cancel()

	browserCtx, cancel = context.WithTimeout(browserCtx, r.timeout)
	defer cancel()

	actions := []chromedp.Action{
		chromedp.Navigate(url),
		chromedp.WaitReady("body", chromedp.ByQuery),
	}
	if r.settle > 0 {
		actions = append(actions, chromedp.Sleep(r.settle))
	}
	actions = append(actions, extract)

	if err := chromedp.Run(browserCtx, actions...); err != nil {
		return &RenderError{URL: url, Cause: err}
	}
	return nil
}
