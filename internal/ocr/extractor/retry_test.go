package extractor

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/dkrish/GoOCR/pkg/logger_i"
)

func TestRetryDelay_Linear(t *testing.T) {
	base := 100 * time.Millisecond
	for attempt := 1; attempt <= 3; attempt++ {
		want := base * time.Duration(attempt)
		if got := retryDelay(base, attempt); got != want {
			t.Errorf("attempt %d: got %v, want %v", attempt, got, want)
		}
	}
}

func TestRunWithRetries_SucceedsAfterFailures(t *testing.T) {
	logger_i.Init()
	log := logger_i.NewLogger("retry-test")

	policy := RetryPolicy{MaxRetries: 3, BaseDelay: time.Millisecond, Timeout: time.Second}

	calls := 0
	result, err := runWithRetries(context.Background(), log, policy, func(ctx context.Context) (Extraction, error) {
		calls++
		if calls < 3 {
			return Extraction{}, errors.New("transient")
		}
		return Extraction{Text: "recovered"}, nil
	})

	if err != nil {
		t.Fatalf("Expected success on third attempt, got %v", err)
	}
	if calls != 3 {
		t.Errorf("Calls got %d, want 3", calls)
	}
	if result.Text != "recovered" {
		t.Errorf("Text got %q, want recovered", result.Text)
	}
}

func TestRunWithRetries_Exhaustion(t *testing.T) {
	logger_i.Init()
	log := logger_i.NewLogger("retry-test")

	policy := RetryPolicy{MaxRetries: 3, BaseDelay: time.Millisecond, Timeout: time.Second}

	calls := 0
	_, err := runWithRetries(context.Background(), log, policy, func(ctx context.Context) (Extraction, error) {
		calls++
		return Extraction{}, errors.New("model offline")
	})

	if err == nil {
		t.Fatal("Expected failure after exhausting retries")
	}
	if calls != 3 {
		t.Errorf("Calls got %d, want exactly MaxRetries", calls)
	}
	if !strings.Contains(err.Error(), "after 3 attempts") {
		t.Errorf("Error %q should report attempt count", err)
	}
	if !strings.Contains(err.Error(), "model offline") {
		t.Errorf("Error %q should wrap the last failure", err)
	}
}

func TestRunWithRetries_PerAttemptTimeout(t *testing.T) {
	logger_i.Init()
	log := logger_i.NewLogger("retry-test")

	policy := RetryPolicy{MaxRetries: 2, BaseDelay: time.Millisecond, Timeout: 10 * time.Millisecond}

	calls := 0
	_, err := runWithRetries(context.Background(), log, policy, func(ctx context.Context) (Extraction, error) {
		calls++
		<-ctx.Done() //each attempt gets its own deadline
		return Extraction{}, ctx.Err()
	})

	if err == nil {
		t.Fatal("Expected timeout failure")
	}
	if calls != 2 {
		t.Errorf("Calls got %d, want a fresh attempt after each timeout", calls)
	}
}

func TestRunWithRetries_CancelledBetweenAttempts(t *testing.T) {
	logger_i.Init()
	log := logger_i.NewLogger("retry-test")

	policy := RetryPolicy{MaxRetries: 3, BaseDelay: time.Minute, Timeout: time.Second}

	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	go func() {
		//cancel while the backoff wait is in flight
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()

	_, err := runWithRetries(ctx, log, policy, func(ctx context.Context) (Extraction, error) {
		calls++
		return Extraction{}, errors.New("always failing")
	})

	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Got %v, want context.Canceled during backoff", err)
	}
	if calls != 1 {
		t.Errorf("Calls got %d, want 1 before cancellation", calls)
	}
}
