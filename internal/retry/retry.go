// Package retry runs upstream calls a bounded number of times.
package retry

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/cenkalti/backoff/v4"
)

type Policy struct {
	// Attempts is the total number of calls, including the first one.
	Attempts    int
	Delay       time.Duration
	Exponential bool
	MaxDelay    time.Duration
}

// Permanent marks err as not worth retrying.
func Permanent(err error) error {
	return backoff.Permanent(err)
}

// Do calls op until it succeeds, returns a permanent error, the attempts run
// out or ctx is done. The last error is returned.
func Do(ctx context.Context, p Policy, name string, op func(ctx context.Context) error) error {
	attempt := 0
	operation := func() error {
		attempt++
		return op(ctx)
	}

	notify := func(err error, next time.Duration) {
		slog.Warn("Retrying", "operation", name, "attempt", attempt, "of", p.attempts(), "next_in", next, "error", err)
	}

	err := backoff.RetryNotify(operation, p.backOff(ctx), notify)
	if err != nil && !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded) {
		slog.Error("Giving up", "operation", name, "attempts", attempt, "error", err)
	}
	return err
}

func (p Policy) attempts() int {
	if p.Attempts < 1 {
		return 1
	}
	return p.Attempts
}

func (p Policy) backOff(ctx context.Context) backoff.BackOff {
	var b backoff.BackOff
	switch {
	case p.Delay <= 0:
		b = &backoff.ZeroBackOff{}
	case p.Exponential:
		eb := backoff.NewExponentialBackOff()
		eb.InitialInterval = p.Delay
		eb.RandomizationFactor = 0
		eb.MaxElapsedTime = 0
		if p.MaxDelay > 0 {
			eb.MaxInterval = p.MaxDelay
		}
		eb.Reset()
		b = eb
	default:
		b = backoff.NewConstantBackOff(p.Delay)
	}

	return backoff.WithContext(backoff.WithMaxRetries(b, uint64(p.attempts()-1)), ctx)
}
