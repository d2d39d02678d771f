// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package resilience

import (
	"context"
	"errors"
	"testing"
	"time"
)

func testBreaker(transitions *[]string) *CircuitBreaker {
	cfg := DefaultCircuitBreakerConfig("test")
	cfg.FailureThreshold = 2
	cfg.SuccessThreshold = 1
	cfg.Timeout = 20 * time.Millisecond
	cfg.OnStateChange = func(name string, from, to CircuitBreakerState) {
		*transitions = append(*transitions, from.String()+"->"+to.String())
	}
	return NewCircuitBreaker(cfg)
}

func TestCircuitBreaker_OpensAfterThreshold(t *testing.T) {
	var transitions []string
	cb := testBreaker(&transitions)
	fail := func(context.Context) error { return NewTransientError("down", nil) }

	for i := 0; i < 2; i++ {
		_ = cb.Execute(context.Background(), fail)
	}
	if cb.GetState() != StateOpen {
		t.Fatalf("expected open, got %s", cb.GetState())
	}

	calls := 0
	err := cb.Execute(context.Background(), func(context.Context) error {
		calls++
		return nil
	})
	if !IsCircuitBreakerError(err) {
		t.Fatalf("expected circuit breaker error, got %v", err)
	}
	if calls != 0 {
		t.Error("operation should not run while open")
	}
}

func TestCircuitBreaker_PermanentErrorsDoNotTrip(t *testing.T) {
	var transitions []string
	cb := testBreaker(&transitions)
	for i := 0; i < 5; i++ {
		_ = cb.Execute(context.Background(), func(context.Context) error {
			return NewPermanentError("unauthorized", nil)
		})
	}
	if cb.GetState() != StateClosed {
		t.Errorf("expected closed, got %s", cb.GetState())
	}
}

func TestCircuitBreaker_RecoversThroughHalfOpen(t *testing.T) {
	var transitions []string
	cb := testBreaker(&transitions)
	for i := 0; i < 2; i++ {
		_ = cb.Execute(context.Background(), func(context.Context) error {
			return errors.New("503 service unavailable")
		})
	}
	time.Sleep(40 * time.Millisecond)

	if err := cb.Execute(context.Background(), func(context.Context) error { return nil }); err != nil {
		t.Fatalf("expected probe to run, got %v", err)
	}
	if cb.GetState() != StateClosed {
		t.Errorf("expected closed after successful probe, got %s", cb.GetState())
	}
	if len(transitions) != 3 {
		t.Errorf("expected 3 transitions, got %v", transitions)
	}
}

func TestCircuitBreaker_Reset(t *testing.T) {
	var transitions []string
	cb := testBreaker(&transitions)
	for i := 0; i < 2; i++ {
		_ = cb.Execute(context.Background(), func(context.Context) error {
			return NewTransientError("down", nil)
		})
	}
	cb.Reset()
	stats := cb.GetStats()
	if stats.State != StateClosed || stats.FailureCount != 0 {
		t.Errorf("unexpected stats after reset: %+v", stats)
	}
}

func TestCircuitBreaker_IgnoresOutcomesFromPreviousState(t *testing.T) {
	clock := time.Unix(0, 0)
	cfg := DefaultCircuitBreakerConfig("stale")
	cfg.FailureThreshold = 1
	cfg.Timeout = time.Minute
	cb := NewCircuitBreaker(cfg)
	cb.now = func() time.Time { return clock }

	gen, err := cb.admit()
	if err != nil {
		t.Fatalf("admit: %v", err)
	}
	_ = cb.Execute(context.Background(), func(context.Context) error {
		return NewTransientError("down", nil)
	})
	if cb.GetState() != StateOpen {
		t.Fatalf("expected open, got %s", cb.GetState())
	}

	// A slow call admitted while closed finishes after the breaker opened.
	cb.record(gen, nil)
	if cb.GetState() != StateOpen {
		t.Errorf("stale success must not change state, got %s", cb.GetState())
	}

	var cbErr *CircuitBreakerError
	err = cb.Execute(context.Background(), func(context.Context) error { return nil })
	if !errors.As(err, &cbErr) || cbErr.RetryAfter != time.Minute {
		t.Fatalf("expected rejection with a minute to wait, got %v", err)
	}

	clock = clock.Add(time.Minute)
	if err := cb.Execute(context.Background(), func(context.Context) error { return nil }); err != nil {
		t.Fatalf("expected probe after timeout, got %v", err)
	}
	if cb.GetState() != StateHalfOpen {
		t.Errorf("one success of two should stay half-open, got %s", cb.GetState())
	}
}

func TestCircuitBreakerError_NotRetryable(t *testing.T) {
	err := &CircuitBreakerError{Name: "classifier", State: StateOpen, RetryAfter: time.Second}
	if IsRetryable(err) {
		t.Error("breaker rejections must not be retried")
	}
	if got := ClassifyError(err).Type; got != ErrorTypeServiceUnavailable {
		t.Errorf("expected ServiceUnavailable, got %s", got)
	}
}
