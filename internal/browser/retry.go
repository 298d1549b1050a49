package browser

import (
	"context"
	"errors"
	"net"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// Retry policy for page interactions. Transient failures (slow loads,
// dropped websocket frames) get a small bounded budget; structural
// failures surface immediately so a selector mismatch is never masked by
// pointless waiting.
const (
	// maxAttempts is the total number of tries per interaction.
	maxAttempts = 3

	// retryBaseDelay is the initial backoff interval.
	retryBaseDelay = 500 * time.Millisecond
)

// transient reports whether an interaction error is worth retrying.
// Deadline expiry means the page was slow (element not attached yet,
// navigation still in flight); network errors mean the devtools transport
// hiccuped. Everything else, including cancellation of the run itself, is
// permanent.
func transient(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr)
}

// retryTransient runs op up to maxAttempts times with exponential backoff,
// stopping early on permanent errors or context cancellation.
func retryTransient(ctx context.Context, op func() error) error {
	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = retryBaseDelay
	bo.MaxElapsedTime = 0 // attempts are the budget, not elapsed time

	wrapped := func() error {
		err := op()
		if err == nil {
			return nil
		}
		if transient(err) {
			return err
		}
		return backoff.Permanent(err)
	}

	return backoff.Retry(wrapped, backoff.WithContext(backoff.WithMaxRetries(bo, maxAttempts-1), ctx))
}
