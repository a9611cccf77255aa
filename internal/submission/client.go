// Package submission posts computed answers to quiz submission endpoints.
package submission

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/jonathan/quiz-solver/internal/schemas"
	"github.com/jonathan/quiz-solver/internal/types"
)

// DefaultTimeout bounds a single submission request.
const DefaultTimeout = 30 * time.Second

// maxBodyInError caps how much of a response body is copied into an Error.
const maxBodyInError = 512

// Error represents a failed submission: transport failure, non-success status,
// or a response body that is not the expected JSON.
type Error struct {
	URL        string
	StatusCode int
	Message    string
	Body       string
	Cause      error
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("submission to %s failed: %s", e.URL, e.Message)
	if e.Cause != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Cause)
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Client submits answers. It makes exactly one attempt per call.
type Client struct {
	http    *resty.Client
	verbose bool
}

// NewClient creates a submission client with the given request timeout.
func NewClient(timeout time.Duration, verbose bool) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		http: resty.New().
			SetTimeout(timeout).
			SetRetryCount(0).
			SetHeader("Accept", "application/json"),
		verbose: verbose,
	}
}

// Submit POSTs {email, secret, url, answer} to submitURL and returns the parsed response.
func (c *Client) Submit(ctx context.Context, submitURL string, id types.Identity, originalURL string, answer types.Answer) (*types.SubmissionResult, error) {
	payload, err := json.Marshal(types.SubmissionRequest{
		Email:  id.Email,
		Secret: id.Secret,
		URL:    originalURL,
		Answer: answer,
	})
	if err != nil {
		return nil, &Error{URL: submitURL, Message: "failed to encode request", Cause: err}
	}

	if c.verbose {
		log.Printf("[SUBMIT] POST %s url=%s answer(%s)=%q", submitURL, originalURL, answer.Kind, answer.String())
	}

	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(payload).
		Post(submitURL)
	if err != nil {
		return nil, &Error{URL: submitURL, Message: "HTTP request failed", Cause: err}
	}

	body := resp.Body()
	if !resp.IsSuccess() {
		return nil, &Error{
			URL:        submitURL,
			StatusCode: resp.StatusCode(),
			Message:    fmt.Sprintf("HTTP status %d", resp.StatusCode()),
			Body:       truncate(string(body), maxBodyInError),
		}
	}

	if !json.Valid(body) {
		return nil, &Error{
			URL:        submitURL,
			StatusCode: resp.StatusCode(),
			Message:    "response is not valid JSON",
			Body:       truncate(string(body), maxBodyInError),
		}
	}

	if err := schemas.ValidateSubmissionResult(string(body)); err != nil {
		return nil, &Error{
			URL:        submitURL,
			StatusCode: resp.StatusCode(),
			Message:    "unexpected response shape",
			Body:       truncate(string(body), maxBodyInError),
			Cause:      err,
		}
	}

	var result types.SubmissionResult
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, &Error{URL: submitURL, StatusCode: resp.StatusCode(), Message: "failed to decode response", Cause: err}
	}

	if c.verbose {
		log.Printf("[SUBMIT] Response: %s", truncate(string(body), maxBodyInError))
	}

	return &result, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
