package retry

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestDo_SucceedsFirstTry(t *testing.T) {
	calls := 0
	err := Do(context.Background(), Options{MaxRetries: 3, BaseDelay: time.Millisecond}, func(ctx context.Context) error {
		calls++
		return nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls != 1 {
		t.Fatalf("expected 1 call, got %d", calls)
	}
}

func TestDo_RetriesUpToMax(t *testing.T) {
	calls := 0
	wantErr := errors.New("transient")
	err := Do(context.Background(), Options{MaxRetries: 3, BaseDelay: time.Millisecond}, func(ctx context.Context) error {
		calls++
		return wantErr
	})
	if !errors.Is(err, wantErr) {
		t.Fatalf("expected transient error, got %v", err)
	}
	if calls != 4 {
		t.Fatalf("expected 4 calls (1 + 3 retries), got %d", calls)
	}
}

func TestDo_PredicateStopsRetries(t *testing.T) {
	calls := 0
	permanent := errors.New("permanent")
	err := Do(context.Background(), Options{
		MaxRetries: 5,
		BaseDelay:  time.Millisecond,
		Retryable:  func(err error) bool { return !errors.Is(err, permanent) },
	}, func(ctx context.Context) error {
		calls++
		return permanent
	})
	if !errors.Is(err, permanent) {
		t.Fatalf("expected permanent error, got %v", err)
	}
	if calls != 1 {
		t.Fatalf("predicate rejection must stop retries, got %d calls", calls)
	}
}

func TestDo_RecoversMidway(t *testing.T) {
	calls := 0
	err := Do(context.Background(), Options{MaxRetries: 5, BaseDelay: time.Millisecond}, func(ctx context.Context) error {
		calls++
		if calls < 3 {
			return errors.New("transient")
		}
		return nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls != 3 {
		t.Fatalf("expected 3 calls, got %d", calls)
	}
}

func TestDo_DelayHintStretchesWait(t *testing.T) {
	hinted := errors.New("slow down")
	calls := 0
	start := time.Now()
	err := Do(context.Background(), Options{
		MaxRetries: 2,
		BaseDelay:  time.Millisecond,
		DelayHint: func(err error) time.Duration {
			if errors.Is(err, hinted) {
				return 40 * time.Millisecond
			}
			return 0
		},
	}, func(ctx context.Context) error {
		calls++
		if calls == 1 {
			return hinted
		}
		return nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls != 2 {
		t.Fatalf("expected 2 calls, got %d", calls)
	}
	if elapsed := time.Since(start); elapsed < 35*time.Millisecond {
		t.Fatalf("hinted delay not honored, loop finished in %s", elapsed)
	}
}

func TestDo_DelayHintNeverShortensSchedule(t *testing.T) {
	calls := 0
	start := time.Now()
	err := Do(context.Background(), Options{
		MaxRetries: 2,
		BaseDelay:  30 * time.Millisecond,
		DelayHint:  func(error) time.Duration { return time.Nanosecond },
	}, func(ctx context.Context) error {
		calls++
		if calls == 1 {
			return errors.New("transient")
		}
		return nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if elapsed := time.Since(start); elapsed < 10*time.Millisecond {
		t.Fatalf("tiny hint must not shorten the scheduled wait, got %s", elapsed)
	}
}

func TestDo_CancellationStopsLoop(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	err := Do(ctx, Options{MaxRetries: 100, BaseDelay: 10 * time.Millisecond}, func(ctx context.Context) error {
		calls++
		cancel()
		return errors.New("transient")
	})
	if err == nil {
		t.Fatalf("expected an error after cancellation")
	}
	if calls != 1 {
		t.Fatalf("no attempt may start after cancellation, got %d calls", calls)
	}
}
