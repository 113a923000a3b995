package usecase

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"rokufun-core/internal/domain/entity"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want FaultClass
	}{
		{"empty response", entity.ErrEmptyResponse, FaultTransient},
		{"wrapped empty response", fmt.Errorf("invoke: %w", entity.ErrEmptyResponse), FaultTransient},
		{"context deadline", context.DeadlineExceeded, FaultTransient},

		{"hint overloaded", &entity.AdapterError{Hint: entity.HintOverloaded}, FaultTransient},
		{"hint rate-limited", &entity.AdapterError{Hint: entity.HintRateLimited}, FaultTransient},
		{"hint deadline", &entity.AdapterError{Hint: entity.HintDeadline}, FaultTransient},
		{"hint invalid key", &entity.AdapterError{Hint: entity.HintInvalidKey}, FaultFatal},
		{"hint bad request", &entity.AdapterError{Hint: entity.HintBadRequest}, FaultFatal},

		{"status 429", &entity.AdapterError{StatusCode: 429, Hint: entity.HintUnknown}, FaultTransient},
		{"status 503", &entity.AdapterError{StatusCode: 503, Hint: entity.HintUnknown}, FaultTransient},
		{"status 500", &entity.AdapterError{StatusCode: 500, Hint: entity.HintUnknown}, FaultTransient},
		{"status 404", &entity.AdapterError{StatusCode: 404, Hint: entity.HintUnknown}, FaultFatal},

		{"message overloaded", errors.New("The model is overloaded. Please try again later."), FaultTransient},
		{"message 503", errors.New("got HTTP 503 from upstream"), FaultTransient},
		{"message resource exhausted", errors.New("RESOURCE_EXHAUSTED: quota exceeded"), FaultTransient},
		{"message timeout", errors.New("request timeout while waiting for response"), FaultTransient},
		{"message invalid argument", errors.New("invalid argument: contents must not be empty"), FaultFatal},
		{"message api key", errors.New("API key not valid"), FaultFatal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.err))
		})
	}
}
