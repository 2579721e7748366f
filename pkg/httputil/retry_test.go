package httputil

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestRetry(t *testing.T) {
	ctx := context.Background()

	t.Run("succeeds first try", func(t *testing.T) {
		calls := 0
		err := Retry(ctx, 3, time.Millisecond, func() error {
			calls++
			return nil
		})
		if err != nil {
			t.Fatalf("Retry: %v", err)
		}
		if calls != 1 {
			t.Errorf("calls = %d, want 1", calls)
		}
	})

	t.Run("retries transient failures", func(t *testing.T) {
		calls := 0
		err := Retry(ctx, 3, time.Millisecond, func() error {
			calls++
			if calls < 3 {
				return &RetryableError{Err: errors.New("503")}
			}
			return nil
		})
		if err != nil {
			t.Fatalf("Retry: %v", err)
		}
		if calls != 3 {
			t.Errorf("calls = %d, want 3", calls)
		}
	})

	t.Run("permanent errors return immediately", func(t *testing.T) {
		permanent := errors.New("404")
		calls := 0
		err := Retry(ctx, 3, time.Millisecond, func() error {
			calls++
			return permanent
		})
		if !errors.Is(err, permanent) {
			t.Errorf("error = %v, want %v", err, permanent)
		}
		if calls != 1 {
			t.Errorf("calls = %d, want 1", calls)
		}
	})

	t.Run("exhausted attempts return last error", func(t *testing.T) {
		calls := 0
		err := Retry(ctx, 3, time.Millisecond, func() error {
			calls++
			return &RetryableError{Err: errors.New("timeout")}
		})
		if err == nil || calls != 3 {
			t.Errorf("err = %v, calls = %d, want error after 3 calls", err, calls)
		}
	})

	t.Run("cancellation stops the backoff", func(t *testing.T) {
		ctx, cancel := context.WithCancel(ctx)
		cancel()
		err := Retry(ctx, 3, time.Minute, func() error {
			return &RetryableError{Err: errors.New("timeout")}
		})
		if !errors.Is(err, context.Canceled) {
			t.Errorf("error = %v, want context.Canceled", err)
		}
	})
}
