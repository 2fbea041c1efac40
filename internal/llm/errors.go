package llm

import (
	"errors"
	"fmt"
	"time"
)

type RateLimitError struct {
	RetryAfter time.Duration
}

func (e *RateLimitError) Error() string {
	if e.RetryAfter > 0 {
		return fmt.Sprintf("rate limited, retry after %s", e.RetryAfter)
	}
	return "rate limited"
}

type ProviderServerError struct {
	StatusCode int
	Message    string
}

func (e *ProviderServerError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("provider error (status %d): %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("provider unreachable: %s", e.Message)
}

// RequestError covers non-retryable 4xx responses: bad request, auth
// failure, model not found. Retrying cannot help.
type RequestError struct {
	StatusCode int
	Message    string
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("provider rejected request (status %d): %s", e.StatusCode, e.Message)
}

// ResponseParsingError means a successful call returned content that is not
// a JSON object. The model may self-correct, so one extra attempt is allowed.
type ResponseParsingError struct {
	Detail string
}

func (e *ResponseParsingError) Error() string {
	return "unparseable model response: " + e.Detail
}

// ExtractionError is the terminal error surfaced to callers once the retry
// loop has given up. Retryable is always false at that point: no further
// automatic action will help.
type ExtractionError struct {
	Retryable bool
	Err       error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("extraction failed (retryable=%t): %v", e.Retryable, e.Err)
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}

// Transient reports whether an error is worth retrying with backoff.
func Transient(err error) bool {
	var rl *RateLimitError
	var srv *ProviderServerError
	return errors.As(err, &rl) || errors.As(err, &srv)
}
