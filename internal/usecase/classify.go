package usecase

import (
	"context"
	"errors"
	"strings"

	"rokufun-core/internal/domain/entity"
)

// FaultClass is the outcome of classifying a provider failure.
type FaultClass int

const (
	// FaultTransient failures are expected to resolve with time or a
	// different backend instance: overload, rate limiting, deadlines.
	FaultTransient FaultClass = iota
	// FaultFatal failures will not resolve by retrying the same model:
	// bad credential, malformed request, schema mismatch.
	FaultFatal
)

// Classify decides whether a failed attempt is worth retrying on the same
// model. Structured status information (the adapter's status hint and code)
// wins; substring heuristics on the message are the last resort.
func Classify(err error) FaultClass {
	if errors.Is(err, entity.ErrEmptyResponse) {
		// Indistinguishable from a transient provider hiccup.
		return FaultTransient
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return FaultTransient
	}

	var ae *entity.AdapterError
	if errors.As(err, &ae) {
		switch ae.Hint {
		case entity.HintOverloaded, entity.HintRateLimited, entity.HintDeadline:
			return FaultTransient
		case entity.HintInvalidKey, entity.HintBadRequest:
			return FaultFatal
		}
		switch ae.StatusCode {
		case 429, 500, 502, 503, 504:
			return FaultTransient
		}
		if ae.StatusCode >= 400 {
			return FaultFatal
		}
		return classifyMessage(ae.Message)
	}

	return classifyMessage(err.Error())
}

var transientMarkers = []string{
	"overloaded",
	"busy",
	"resource_exhausted",
	"rate limit",
	"quota",
	"deadline",
	"timeout",
	"429",
	"500",
	"503",
}

func classifyMessage(msg string) FaultClass {
	msg = strings.ToLower(msg)
	for _, marker := range transientMarkers {
		if strings.Contains(msg, marker) {
			return FaultTransient
		}
	}
	return FaultFatal
}
