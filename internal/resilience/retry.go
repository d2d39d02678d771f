// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package resilience

import (
	"context"
	"fmt"
	"math/rand"
	"time"
)

// RetryConfig holds retry configuration.
type RetryConfig struct {
	MaxRetries      int                          // Retries after the first attempt
	InitialInterval time.Duration                // Delay before the first retry
	MaxInterval     time.Duration                // Upper bound for a single delay
	Multiplier      float64                      // Growth factor between delays
	MaxElapsedTime  time.Duration                // Budget for all attempts; zero means none
	Jitter          bool                         // Add up to 25% random jitter
	OnRetry         func(attempt int, err error) // Called before each retry
}

// DefaultRetryConfig returns general-purpose retry settings.
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxRetries:      3,
		InitialInterval: 1 * time.Second,
		MaxInterval:     30 * time.Second,
		Multiplier:      2.0,
		MaxElapsedTime:  2 * time.Minute,
		Jitter:          true,
	}
}

// ClassifierRetryConfig returns retry configuration for the remote
// classification service. A negative maxRetries keeps the default.
func ClassifierRetryConfig(maxRetries int) RetryConfig {
	cfg := RetryConfig{
		MaxRetries:      3,
		InitialInterval: 500 * time.Millisecond,
		MaxInterval:     16 * time.Second,
		Multiplier:      2.0,
		MaxElapsedTime:  5 * time.Minute,
		Jitter:          true,
	}
	if maxRetries >= 0 {
		cfg.MaxRetries = maxRetries
	}
	return cfg
}

// Delay returns the wait before retry number attempt (1-based):
// InitialInterval * Multiplier^(attempt-1), capped at MaxInterval.
func (c RetryConfig) Delay(attempt int) time.Duration {
	delay := float64(c.InitialInterval)
	for i := 1; i < attempt; i++ {
		delay *= max(c.Multiplier, 1)
	}
	if c.Jitter {
		delay += delay * 0.25 * rand.Float64()
	}
	d := time.Duration(delay)
	if c.MaxInterval > 0 && d > c.MaxInterval {
		d = c.MaxInterval
	}
	return d
}

// RetryableOperation represents an operation that can be retried.
type RetryableOperation func(ctx context.Context) error

// RetryWithBackoff runs operation until it succeeds, returns an error that
// ClassifyError reports as non-retryable, or the retry budget is spent.
// The last error is returned in the latter cases.
func RetryWithBackoff(ctx context.Context, config RetryConfig, operation RetryableOperation) error {
	var deadline time.Time
	if config.MaxElapsedTime > 0 {
		deadline = time.Now().Add(config.MaxElapsedTime)
	}

	var lastErr error
	for attempt := 0; attempt <= config.MaxRetries; attempt++ {
		if attempt > 0 {
			wait := config.Delay(attempt)
			if !deadline.IsZero() && time.Now().Add(wait).After(deadline) {
				return fmt.Errorf("retry budget of %s exhausted: %w", config.MaxElapsedTime, lastErr)
			}

			if config.OnRetry != nil {
				config.OnRetry(attempt, lastErr)
			}

			timer := time.NewTimer(wait)
			select {
			case <-ctx.Done():
				timer.Stop()
				return ctx.Err()
			case <-timer.C:
			}
		}

		err := operation(ctx)
		if err == nil {
			return nil
		}
		lastErr = err
		if !IsRetryable(err) {
			return err
		}
	}

	return lastErr
}

// RetryWithResult is RetryWithBackoff for operations that return a value.
func RetryWithResult[T any](ctx context.Context, config RetryConfig, fn func(ctx context.Context) (T, error)) (T, error) {
	var result T
	err := RetryWithBackoff(ctx, config, func(ctx context.Context) error {
		var e error
		result, e = fn(ctx)
		return e
	})
	return result, err
}

// ExecuteWithRetry runs fn through cb, retrying retryable failures. Calls
// rejected by an open breaker are not retried.
func ExecuteWithRetry[T any](ctx context.Context, config RetryConfig, cb *CircuitBreaker, fn func(ctx context.Context) (T, error)) (T, error) {
	return RetryWithResult(ctx, config, func(ctx context.Context) (T, error) {
		var out T
		err := cb.Execute(ctx, func(ctx context.Context) error {
			var err error
			out, err = fn(ctx)
			return err
		})
		return out, err
	})
}

// IsRetryable reports whether an error should be retried.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}
	return ClassifyError(err).IsRetryable()
}
