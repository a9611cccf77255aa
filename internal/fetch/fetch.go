// Package fetch provides the page renderer and plain HTTP downloads used while solving quizzes.
package fetch

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/go-resty/resty/v2"
)

// DefaultTimeout is the default render timeout.
const DefaultTimeout = 30 * time.Second

// DefaultDownloadTimeout is the default timeout for resource downloads such as CSV files.
const DefaultDownloadTimeout = 60 * time.Second

// DefaultUserAgent is the user agent string for HTTP requests.
const DefaultUserAgent = "Mozilla/5.0 (compatible; QuizAgent/1.0)"

// Result holds the body of a downloaded resource.
type Result struct {
	URL         string
	Body        string
	ContentType string
	StatusCode  int
}

// Error represents a network failure or non-success status while downloading.
type Error struct {
	URL        string
	Message    string
	StatusCode int
	Cause      error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("fetch error for %s: %s: %v", e.URL, e.Message, e.Cause)
	}
	return fmt.Sprintf("fetch error for %s: %s", e.URL, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Options configures the download behavior.
type Options struct {
	Timeout   time.Duration
	UserAgent string
	Headers   map[string]string
}

// CSVAccept is the Accept header sent when downloading quiz data files.
const CSVAccept = "text/csv, text/plain;q=0.9, */*;q=0.5"

// CSVOptions returns download options for quiz data files with the given timeout.
func CSVOptions(timeout time.Duration) *Options {
	opts := DefaultOptions()
	opts.Timeout = timeout
	opts.Headers = map[string]string{"Accept": CSVAccept}
	return opts
}

// DefaultOptions returns sensible defaults for downloading.
func DefaultOptions() *Options {
	return &Options{
		Timeout:   DefaultDownloadTimeout,
		UserAgent: DefaultUserAgent,
	}
}

// Downloader performs single-attempt GET requests.
type Downloader struct {
	client *resty.Client
}

// NewDownloader creates a Downloader. A nil opts uses DefaultOptions.
func NewDownloader(opts *Options) *Downloader {
	if opts == nil {
		opts = DefaultOptions()
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultDownloadTimeout
	}
	if opts.UserAgent == "" {
		opts.UserAgent = DefaultUserAgent
	}

	client := resty.New().
		SetTimeout(opts.Timeout).
		SetRetryCount(0).
		SetHeader("User-Agent", opts.UserAgent).
		SetHeaders(opts.Headers)

	return &Downloader{client: client}
}

// Download retrieves the body at urlStr.
// A non-2xx status is an error; the Result is still returned so callers can inspect it.
func (d *Downloader) Download(ctx context.Context, urlStr string) (*Result, error) {
	parsedURL, err := url.Parse(urlStr)
	if err != nil || parsedURL.Scheme == "" || parsedURL.Host == "" {
		return nil, &Error{
			URL:     urlStr,
			Message: "invalid URL",
			Cause:   err,
		}
	}

	resp, err := d.client.R().
		SetContext(ctx).
		Get(urlStr)
	if err != nil {
		return nil, &Error{
			URL:     urlStr,
			Message: "HTTP request failed",
			Cause:   err,
		}
	}

	result := &Result{
		URL:         urlStr,
		Body:        string(resp.Body()),
		ContentType: resp.Header().Get("Content-Type"),
		StatusCode:  resp.StatusCode(),
	}

	if !resp.IsSuccess() {
		return result, &Error{
			URL:        urlStr,
			Message:    fmt.Sprintf("HTTP status %d", resp.StatusCode()),
			StatusCode: resp.StatusCode(),
		}
	}

	return result, nil
}
