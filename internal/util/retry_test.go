package util

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestRetryWithContext_SuccessAfterRetries(t *testing.T) {
	calls := 0
	result, err := RetryWithContext(context.Background(), 3, time.Millisecond, func(ctx context.Context) (string, error) {
		calls++
		if calls < 3 {
			return "", errors.New("transient")
		}
		return "stored", nil
	})
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if result != "stored" {
		t.Fatalf("expected stored, got %q", result)
	}
	if calls != 3 {
		t.Fatalf("expected 3 calls, got %d", calls)
	}
}

func TestRetryWithContext_AllFail(t *testing.T) {
	calls := 0
	_, err := RetryWithContext(context.Background(), 3, 0, func(ctx context.Context) (int, error) {
		calls++
		return 0, errors.New("always fails")
	})
	if err == nil || err.Error() != "always fails" {
		t.Fatalf("expected last error, got %v", err)
	}
	if calls != 3 {
		t.Fatalf("expected 3 calls, got %d", calls)
	}
}

func TestRetryWithContext_ZeroTries(t *testing.T) {
	calls := 0
	_, _ = RetryWithContext(context.Background(), 0, 0, func(ctx context.Context) (int, error) {
		calls++
		return 0, errors.New("fail")
	})
	if calls != 1 {
		t.Fatalf("expected 1 call with maxTries=0, got %d", calls)
	}
}

func TestRetryWithContext_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	calls := 0
	_, err := RetryWithContext(ctx, 3, 0, func(ctx context.Context) (int, error) {
		calls++
		return 1, nil
	})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if calls != 0 {
		t.Fatalf("expected no calls, got %d", calls)
	}
}

func TestRetryWithContext_ContextErrorNotRetried(t *testing.T) {
	calls := 0
	_, err := RetryWithContext(context.Background(), 5, 0, func(ctx context.Context) (int, error) {
		calls++
		return 0, context.DeadlineExceeded
	})
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected context.DeadlineExceeded, got %v", err)
	}
	if calls != 1 {
		t.Fatalf("expected 1 call, got %d", calls)
	}
}

func TestRetryWithContext_CanceledDuringDelay(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	calls := 0
	_, err := RetryWithContext(ctx, 5, time.Hour, func(ctx context.Context) (int, error) {
		calls++
		return 0, errors.New("transient")
	})
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected context.DeadlineExceeded, got %v", err)
	}
	if calls != 1 {
		t.Fatalf("expected 1 call before the delay, got %d", calls)
	}
}

func TestRetryErrWithContext(t *testing.T) {
	calls := 0
	err := RetryErrWithContext(context.Background(), 2, 0, func(ctx context.Context) error {
		calls++
		if calls == 1 {
			return errors.New("transient")
		}
		return nil
	})
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if calls != 2 {
		t.Fatalf("expected 2 calls, got %d", calls)
	}
}
