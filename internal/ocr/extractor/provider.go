package extractor

import (
	"context"
	"fmt"
	"time"

	"github.com/dkrish/GoOCR/pkg/logger_i"
)

// Extraction is one page's worth of output from the vision endpoint.
type Extraction struct {
	Text  string
	Model string //model the endpoint actually used
}

// Provider turns one page image plus a prompt into text. Retry and
// per-attempt timeouts live here, not in the orchestrator: when Extract
// returns an error, the attempts are already exhausted and the page - and
// with it the job - is lost.
type Provider interface {
	Extract(ctx context.Context, imageB64 string, mimeType string, prompt string) (Extraction, error)
	CheckHealth(ctx context.Context) bool
	Model() string
	Name() string
}

type RetryPolicy struct {
	MaxRetries int
	BaseDelay  time.Duration
	Timeout    time.Duration //per attempt
}

// retryDelay is the wait before retry attempt+1: linear backoff.
func retryDelay(baseDelay time.Duration, attempt int) time.Duration {
	return baseDelay * time.Duration(attempt)
}

func runWithRetries(ctx context.Context, log *logger_i.Logger, policy RetryPolicy, call func(ctx context.Context) (Extraction, error)) (Extraction, error) {
	var lastErr error

	for attempt := 1; attempt <= policy.MaxRetries; attempt++ {
		attemptCtx, cancel := context.WithTimeout(ctx, policy.Timeout)
		result, err := call(attemptCtx)
		cancel()
		if err == nil {
			return result, nil
		}

		lastErr = err
		log.Warn("Extraction attempt failed", "attempt", attempt, "maxRetries", policy.MaxRetries, "error", err)

		if attempt < policy.MaxRetries {
			select {
			case <-time.After(retryDelay(policy.BaseDelay, attempt)):
			case <-ctx.Done():
				return Extraction{}, ctx.Err()
			}
		}
	}

	return Extraction{}, fmt.Errorf("failed to process image after %d attempts: %w", policy.MaxRetries, lastErr)
}
