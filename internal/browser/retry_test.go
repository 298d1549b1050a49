package browser

import (
	"context"
	"errors"
	"testing"
)

func TestRetryTransient(t *testing.T) {
	t.Run("transient failures retried up to budget", func(t *testing.T) {
		calls := 0
		err := retryTransient(context.Background(), func() error {
			calls++
			return context.DeadlineExceeded
		})
		if err == nil {
			t.Fatal("expected error after exhausting retries")
		}
		if calls != maxAttempts {
			t.Errorf("expected %d attempts, got %d", maxAttempts, calls)
		}
	})

	t.Run("succeeds after transient failure", func(t *testing.T) {
		calls := 0
		err := retryTransient(context.Background(), func() error {
			calls++
			if calls < 2 {
				return context.DeadlineExceeded
			}
			return nil
		})
		if err != nil {
			t.Fatalf("expected success, got %v", err)
		}
		if calls != 2 {
			t.Errorf("expected 2 attempts, got %d", calls)
		}
	})

	t.Run("structural failures not retried", func(t *testing.T) {
		calls := 0
		structural := errors.New("could not find node")
		err := retryTransient(context.Background(), func() error {
			calls++
			return structural
		})
		if !errors.Is(err, structural) {
			t.Fatalf("expected structural error, got %v", err)
		}
		if calls != 1 {
			t.Errorf("structural failure should not be retried, got %d attempts", calls)
		}
	})

	t.Run("run cancellation is permanent", func(t *testing.T) {
		calls := 0
		err := retryTransient(context.Background(), func() error {
			calls++
			return context.Canceled
		})
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("expected context.Canceled, got %v", err)
		}
		if calls != 1 {
			t.Errorf("cancellation should not be retried, got %d attempts", calls)
		}
	})
}

func TestTransientClassification(t *testing.T) {
	if !transient(context.DeadlineExceeded) {
		t.Error("deadline expiry is transient")
	}
	if transient(context.Canceled) {
		t.Error("cancellation is not transient")
	}
	if transient(nil) {
		t.Error("nil is not transient")
	}
	if transient(errors.New("selector matched nothing")) {
		t.Error("unknown errors are structural")
	}
}
