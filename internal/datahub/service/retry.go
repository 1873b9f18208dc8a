package service

import (
	"context"
	"errors"
	"time"

	"github.com/pmn-sn/datahub/internal/datahub/store"
	"github.com/pmn-sn/datahub/pkg/slogx"
)

const (
	// readAttempts bounds the retry loop for transient read anomalies.
	readAttempts = 3
	// readRetryDelay is the fixed backoff between attempts.
	readRetryDelay = 1200 * time.Millisecond
)

// readWithRetry re-issues fn when it fails with store.ErrTransientRead, up
// to readAttempts attempts with a fixed delay. Any other error, or
// exhaustion, surfaces immediately. This is heuristic recovery for flaky
// reads, not a correctness mechanism; retries dispatch on the typed error,
// never on message content.
func readWithRetry[T any](ctx context.Context, fn func(context.Context) (T, error)) (T, error) {
	var zero T
	var err error

	for attempt := 1; attempt <= readAttempts; attempt++ {
		var v T
		v, err = fn(ctx)
		if err == nil {
			return v, nil
		}
		if !errors.Is(err, store.ErrTransientRead) {
			return zero, err
		}

		if attempt < readAttempts {
			slogx.FromContext(ctx).Warn("transient read anomaly, retrying",
				"attempt", attempt, "err", err)
			select {
			case <-time.After(readRetryDelay):
			case <-ctx.Done():
				return zero, ctx.Err()
			}
		}
	}

	return zero, err
}
