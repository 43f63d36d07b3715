package augur

import (
	"errors"
	"fmt"
)

// ErrDone is returned by OutputIterator.Next when the output sequence is
// complete and the job ended in a non-failed terminal state.
var ErrDone = errors.New("augur: no more output")

// ValidationError reports a malformed argument. It is always raised locally,
// before any network call is made.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return "augur: " + e.Message
}

// ModelError reports that a remote job reached the failed terminal state.
// It carries the error text reported by the model.
type ModelError struct {
	Message string
}

func (e *ModelError) Error() string {
	if e.Message == "" {
		return "augur: model failed"
	}
	return "augur: model failed: " + e.Message
}

// APIError is returned for non-2xx HTTP responses. Detail preserves the
// server-provided message verbatim so callers see exactly what the API said.
type APIError struct {
	StatusCode int
	Detail     string
	Body       []byte
}

func (e *APIError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("augur: API error (status %d): %s", e.StatusCode, e.Detail)
	}
	return fmt.Sprintf("augur: API error (status %d)", e.StatusCode)
}

// Retryable reports whether the response status indicates a transient
// condition worth retrying: rate limiting or a server-side failure.
func (e *APIError) Retryable() bool {
	return e.StatusCode == 429 || e.StatusCode >= 500
}
