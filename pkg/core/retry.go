package core

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/oneconcern/l10nsync/pkg/core/status"
	"github.com/oneconcern/l10nsync/pkg/errors"
)

const (
	// BaseDelay is the wait before the first retry. Each subsequent wait doubles.
	BaseDelay = time.Second

	// maxBackoffShift keeps the delay computation from overflowing
	maxBackoffShift = 32
)

// Sleeper waits for some delay, or until the context is done
type Sleeper interface {
	Sleep(context.Context, time.Duration) error
}

// SleepFunc adapts a plain function to a Sleeper
type SleepFunc func(context.Context, time.Duration) error

// Sleep for d
func (f SleepFunc) Sleep(ctx context.Context, d time.Duration) error { return f(ctx, d) }

// WallClock waits for real
var WallClock Sleeper = SleepFunc(func(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
})

// Backoff returns the delay before retry number attempt (starting at 0): BaseDelay * 2^attempt
func Backoff(attempt int) time.Duration {
	if attempt < 0 {
		attempt = 0
	}
	if attempt > maxBackoffShift {
		attempt = maxBackoffShift
	}
	return BaseDelay * time.Duration(uint64(1)<<uint(attempt))
}

// Retrier runs operations against the remote service, retrying them with an exponential backoff
// whenever they are rate limited.
//
// A Retrier holds no state between calls to Execute.
type Retrier struct {
	sleeper Sleeper
	l       *zap.Logger
}

// NewRetrier builds a Retrier. A nil sleeper waits for real.
func NewRetrier(sleeper Sleeper, l *zap.Logger) *Retrier {
	if sleeper == nil {
		sleeper = WallClock
	}
	if l == nil {
		l = zap.NewNop()
	}
	return &Retrier{sleeper: sleeper, l: l}
}

// Execute runs op, then retries it at most maxRetries times as long as it fails with status.ErrRateLimited.
//
// The description tells what is being attempted: it is used to annotate errors.
// Errors other than rate limiting are returned right away, annotated.
// When all retries fail, a *status.RetryExhaustedError is returned.
func (r *Retrier) Execute(ctx context.Context, description string, maxRetries int, op func(context.Context) error) error {
	if maxRetries < 0 {
		maxRetries = 0
	}
	for attempt := 0; ; attempt++ {
		err := op(ctx)
		if err == nil {
			return nil
		}
		if !errors.Is(err, status.ErrRateLimited) {
			return annotate(err, description)
		}
		if attempt >= maxRetries {
			r.l.Error("giving up after rate limiting",
				zap.String("operation", description),
				zap.Int("retries", maxRetries),
				zap.Error(err),
			)
			return &status.RetryExhaustedError{
				Operation: description,
				Retries:   maxRetries,
				Err:       err,
			}
		}
		delay := Backoff(attempt)
		r.l.Warn("rate limited, backing off",
			zap.String("operation", description),
			zap.Int("attempt", attempt+1),
			zap.Duration("delay", delay),
		)
		if err := r.sleeper.Sleep(ctx, delay); err != nil {
			return annotate(err, description)
		}
	}
}

// annotate adds context to an error, preserving its kind
func annotate(err error, description string) error {
	if e, ok := err.(*errors.Error); ok {
		return e.WithContext("%s", description)
	}
	return fmt.Errorf("%s: %w", description, err)
}
