package usecase

import (
	"context"
	"fmt"
	"time"

	"rokufun-core/internal/domain/entity"
	"rokufun-core/internal/domain/repository"
)

// Policy is the dispatcher's retry and fallback configuration. Fallbacks maps
// a model to the model tried after its retry budget is exhausted; the chain
// must not contain a cycle (configuration-time invariant).
type Policy struct {
	DefaultModel string
	Fallbacks    map[string]string
	MaxAttempts  int
	BaseDelay    time.Duration
}

const (
	defaultMaxAttempts = 3
	defaultBaseDelay   = 1500 * time.Millisecond
)

// Dispatcher wraps a ModelInvoker with bounded retries on transient faults
// and, on exhaustion, substitutes the configured fallback model with a fresh
// retry budget. Retries are sequential within one request; there is never
// more than one provider call in flight per dispatch.
type Dispatcher struct {
	invoker repository.ModelInvoker
	sink    repository.EventSink
	policy  Policy
	sleep   func(ctx context.Context, d time.Duration) error
}

func NewDispatcher(invoker repository.ModelInvoker, sink repository.EventSink, policy Policy) *Dispatcher {
	if policy.MaxAttempts <= 0 {
		policy.MaxAttempts = defaultMaxAttempts
	}
	if policy.BaseDelay <= 0 {
		policy.BaseDelay = defaultBaseDelay
	}
	if sink == nil {
		sink = nopSink{}
	}
	return &Dispatcher{
		invoker: invoker,
		sink:    sink,
		policy:  policy,
		sleep:   sleepCtx,
	}
}

// Dispatch runs the retry/fallback state machine and returns the first
// successful text, or the last failure once the whole chain is exhausted.
// Callers never see intermediate attempts.
func (d *Dispatcher) Dispatch(ctx context.Context, req entity.Request) (string, error) {
	if !req.Action.Known() {
		return "", fmt.Errorf("%w: %q", entity.ErrUnknownAction, req.Action)
	}

	model := d.policy.DefaultModel
	if req.Payload != nil && req.Payload.Model != "" {
		model = req.Payload.Model
	}

	attempt := 1
	for {
		text, err := d.invoker.Invoke(ctx, model, req)
		if err == nil {
			return text, nil
		}

		class := Classify(err)

		if class == FaultTransient && attempt < d.policy.MaxAttempts {
			d.sink.Log("WARN", fmt.Sprintf("Gemini失敗: %s (試行%d)", model, attempt), map[string]any{
				"error":  err.Error(),
				"action": string(req.Action),
			})
			// Linear backoff: the provider's overload windows are short,
			// so we favor fast fallback over long waits on one model.
			if serr := d.sleep(ctx, d.policy.BaseDelay*time.Duration(attempt)); serr != nil {
				return "", &entity.DispatchError{Model: model, Err: serr}
			}
			attempt++
			continue
		}

		d.sink.Log("ERROR", fmt.Sprintf("Gemini失敗: %s (試行%d)", model, attempt), map[string]any{
			"error":  err.Error(),
			"action": string(req.Action),
		})

		// Budget exhausted or fatal fault: move to the fallback model if one
		// is configured. The fallback gets its own full retry budget, and a
		// fatal fault falls back without the transient backoff wait.
		if next, ok := d.policy.Fallbacks[model]; ok && next != model {
			model = next
			attempt = 1
			continue
		}

		return "", &entity.DispatchError{Model: model, Err: err}
	}
}

type nopSink struct{}

func (nopSink) Log(level, message string, details map[string]any) {}
func (nopSink) SaveContent(contentType, title, content string)    {}

// sleepCtx waits for d or until the context is done, whichever comes first.
func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
