package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/trebuchet-org/govrelay/internal/config"
	"github.com/trebuchet-org/govrelay/internal/domain"
)

const (
	defaultReadRetries    = 3
	defaultReadRetryDelay = 250 * time.Millisecond
)

// readWithRetry retries an idempotent ledger read with a fixed backoff.
// Never use it for submissions.
func readWithRetry[T any](ctx context.Context, cfg *config.RuntimeConfig, read func(context.Context) (T, error)) (T, error) {
	attempts, delay := uint(defaultReadRetries), defaultReadRetryDelay
	if cfg != nil {
		if cfg.ReadRetries > 0 {
			attempts = cfg.ReadRetries
		}
		if cfg.ReadRetryDelay > 0 {
			delay = cfg.ReadRetryDelay
		}
	}

	return retry.DoWithData(
		func() (T, error) { return read(ctx) },
		retry.Context(ctx),
		retry.Attempts(attempts),
		retry.Delay(delay),
		retry.DelayType(retry.FixedDelay),
		retry.LastErrorOnly(true),
		retry.RetryIf(retryable),
	)
}

// retryable excludes answers the ledger will repeat verbatim
func retryable(err error) bool {
	return !errors.Is(err, domain.ErrProposalCountUnavailable) &&
		!errors.Is(err, domain.ErrProposalNotFound) &&
		!errors.Is(err, context.Canceled)
}
