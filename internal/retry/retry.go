// Package retry wraps cenkalti/backoff with a predicate-based API: the
// caller decides which errors are worth another attempt, the package owns
// the exponential backoff schedule.
package retry

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"
)

type Options struct {
	// MaxRetries is the number of attempts after the first one.
	MaxRetries uint64
	BaseDelay  time.Duration
	Multiplier float64
	// Retryable reports whether an error should trigger another attempt.
	// A nil predicate retries everything until MaxRetries is exhausted.
	Retryable func(error) bool
	// DelayHint extracts a server-requested wait from an error. A hint
	// longer than the scheduled interval replaces it for that wait.
	DelayHint func(error) time.Duration
}

// Do runs op until it succeeds, the predicate rejects its error, MaxRetries
// is exhausted, or ctx is cancelled. No attempt starts after cancellation.
func Do(ctx context.Context, opts Options, op func(context.Context) error) error {
	b := backoff.NewExponentialBackOff()
	if opts.BaseDelay > 0 {
		b.InitialInterval = opts.BaseDelay
	}
	if opts.Multiplier > 0 {
		b.Multiplier = opts.Multiplier
	}
	b.MaxElapsedTime = 0
	b.Reset()

	var lastErr error
	wrapped := func() error {
		err := op(ctx)
		if err == nil {
			return nil
		}
		lastErr = err
		if opts.Retryable != nil && !opts.Retryable(err) {
			return backoff.Permanent(err)
		}
		return err
	}

	var bo backoff.BackOff = backoff.WithMaxRetries(b, opts.MaxRetries)
	if opts.DelayHint != nil {
		bo = &hintedBackOff{BackOff: bo, hint: func() time.Duration {
			if lastErr == nil {
				return 0
			}
			return opts.DelayHint(lastErr)
		}}
	}
	return backoff.Retry(wrapped, backoff.WithContext(bo, ctx))
}

// hintedBackOff stretches the next wait to a server-requested delay when the
// last error carried one. It never shortens the schedule and never overrides
// Stop.
type hintedBackOff struct {
	backoff.BackOff
	hint func() time.Duration
}

func (h *hintedBackOff) NextBackOff() time.Duration {
	next := h.BackOff.NextBackOff()
	if next == backoff.Stop {
		return next
	}
	if d := h.hint(); d > next {
		return d
	}
	return next
}
