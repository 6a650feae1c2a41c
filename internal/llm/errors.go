package llm

import (
	"errors"
	"fmt"
)

// ErrCredentialMissing means neither a per-request key nor the process-wide
// default was available. It is raised before any network call is made.
var ErrCredentialMissing = errors.New("llm: no API key provided and no default configured")

// ErrEmptyCompletion means the provider was reachable but returned no usable
// content. Kept distinct from CompletionError so callers can tell
// "unhelpful" apart from "unreachable".
var ErrEmptyCompletion = errors.New("llm: provider returned no completion content")

// CompletionError wraps any transport or provider-side failure of an
// outbound call. The original cause is carried for diagnostics; it is never
// formatted with the credential.
type CompletionError struct {
	Model      string
	StatusCode int
	Cause      error
}

func (e *CompletionError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("llm: completion failed (model=%s, status=%d): %v", e.Model, e.StatusCode, e.Cause)
	}
	return fmt.Sprintf("llm: completion failed (model=%s): %v", e.Model, e.Cause)
}

func (e *CompletionError) Unwrap() error { return e.Cause }

// AsCompletionError unwraps err into a *CompletionError if one is present.
func AsCompletionError(err error) (*CompletionError, bool) {
	var e *CompletionError
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}
