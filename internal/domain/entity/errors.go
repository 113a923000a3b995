package entity

import (
	"errors"
	"fmt"
)

// Standard domain errors
var (
	ErrEmptyResponse = errors.New("model returned an empty response")
	ErrUnknownAction = errors.New("unknown action")
)

// StatusHint is a coarse classification of a provider failure, derived from
// the provider's status code where available and from its message otherwise.
type StatusHint string

const (
	HintOverloaded  StatusHint = "overloaded"
	HintRateLimited StatusHint = "rate-limited"
	HintDeadline    StatusHint = "deadline-exceeded"
	HintInvalidKey  StatusHint = "invalid-key"
	HintBadRequest  StatusHint = "bad-request"
	HintUnknown     StatusHint = "unknown"
)

// AdapterError wraps a provider or network failure from a single model call.
type AdapterError struct {
	StatusCode int
	Hint       StatusHint
	Message    string
}

func (e *AdapterError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("provider error (status %d, %s): %s", e.StatusCode, e.Hint, e.Message)
	}
	return fmt.Sprintf("provider error (%s): %s", e.Hint, e.Message)
}

// DispatchError is the terminal failure of a dispatch: the retry budget and
// the fallback chain are both exhausted. Model is the last model attempted.
type DispatchError struct {
	Model string
	Err   error
}

func (e *DispatchError) Error() string {
	return fmt.Sprintf("dispatch failed on model %q: %v", e.Model, e.Err)
}

func (e *DispatchError) Unwrap() error {
	return e.Err
}
