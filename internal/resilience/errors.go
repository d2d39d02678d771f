// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package resilience

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"syscall"
)

// ErrorType represents different types of errors for handling strategies
type ErrorType int

const (
	ErrorTypeUnknown            ErrorType = iota
	ErrorTypeTransient                    // connection resets, DNS hiccups
	ErrorTypePermanent                    // rejected key, unreadable input
	ErrorTypeTimeout                      // request or context deadline
	ErrorTypeRateLimit                    // 429 from the model API
	ErrorTypeQuotaExceeded                // account quota spent
	ErrorTypeServiceUnavailable           // 5xx or an open breaker
	ErrorTypeInvalidInput                 // 4xx other than auth and 404
	ErrorTypeResourceNotFound             // unknown model or endpoint
	ErrorTypeInvalidResponse              // reply failed schema validation
)

var errorTypeNames = [...]string{
	ErrorTypeUnknown:            "Unknown",
	ErrorTypeTransient:          "Transient",
	ErrorTypePermanent:          "Permanent",
	ErrorTypeTimeout:            "Timeout",
	ErrorTypeRateLimit:          "RateLimit",
	ErrorTypeQuotaExceeded:      "QuotaExceeded",
	ErrorTypeServiceUnavailable: "ServiceUnavailable",
	ErrorTypeInvalidInput:       "InvalidInput",
	ErrorTypeResourceNotFound:   "ResourceNotFound",
	ErrorTypeInvalidResponse:    "InvalidResponse",
}

func (et ErrorType) String() string {
	if et >= 0 && int(et) < len(errorTypeNames) {
		return errorTypeNames[et]
	}
	return fmt.Sprintf("ErrorType(%d)", int(et))
}

// ClassifiedError wraps an error with type information
type ClassifiedError struct {
	Original  error
	Type      ErrorType
	Message   string
	Retryable bool
}

func (e *ClassifiedError) Error() string {
	switch {
	case e.Message != "":
		return e.Message
	case e.Original != nil:
		return e.Original.Error()
	default:
		return e.Type.String() + " error"
	}
}

func (e *ClassifiedError) Unwrap() error {
	return e.Original
}

// IsRetryable returns whether this error should be retried
func (e *ClassifiedError) IsRetryable() bool {
	return e.Retryable
}

// messageRules map fragments of unclassified error text to a type. The
// first matching rule wins.
var messageRules = []struct {
	typ       ErrorType
	retryable bool
	prefix    string
	fragments []string
}{
	{ErrorTypeRateLimit, true, "rate limited", []string{"rate limit", "too many requests", "throttl"}},
	{ErrorTypeServiceUnavailable, true, "service unavailable", []string{"service unavailable", "internal server error", "bad gateway", "overloaded"}},
	{ErrorTypeQuotaExceeded, false, "quota exceeded", []string{"quota", "limit exceeded"}},
	{ErrorTypePermanent, false, "not authorised", []string{"unauthorized", "invalid api key", "incorrect api key", "forbidden", "access denied"}},
	{ErrorTypeResourceNotFound, false, "not found", []string{"not found", "does not exist"}},
	{ErrorTypeInvalidInput, false, "invalid input", []string{"invalid", "malformed", "bad request"}},
}

// ClassifyError categorizes an error for appropriate handling. Errors that
// already carry a classification are returned as is.
func ClassifyError(err error) *ClassifiedError {
	if err == nil {
		return nil
	}

	var classified *ClassifiedError
	if errors.As(err, &classified) {
		return classified
	}

	wrap := func(t ErrorType, retryable bool, prefix string) *ClassifiedError {
		return &ClassifiedError{Original: err, Type: t, Message: prefix + ": " + err.Error(), Retryable: retryable}
	}

	switch {
	case IsCircuitBreakerError(err):
		return &ClassifiedError{Original: err, Type: ErrorTypeServiceUnavailable, Message: err.Error()}
	case errors.Is(err, context.Canceled):
		return wrap(ErrorTypePermanent, false, "cancelled")
	case isTimeoutError(err):
		return wrap(ErrorTypeTimeout, true, "timeout")
	case isNetworkError(err):
		return wrap(ErrorTypeTransient, true, "network error")
	}

	msg := strings.ToLower(err.Error())
	for _, rule := range messageRules {
		for _, frag := range rule.fragments {
			if strings.Contains(msg, frag) {
				return wrap(rule.typ, rule.retryable, rule.prefix)
			}
		}
	}
	return wrap(ErrorTypeUnknown, false, "unclassified")
}

func isNetworkError(err error) bool {
	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return true
	}
	for _, errno := range []syscall.Errno{syscall.ECONNREFUSED, syscall.ECONNRESET, syscall.EHOSTUNREACH, syscall.ENETUNREACH, syscall.EPIPE} {
		if errors.Is(err, errno) {
			return true
		}
	}
	return false
}

func isTimeoutError(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "timeout") || strings.Contains(msg, "deadline exceeded")
}

// NewTransientError creates a new transient error
func NewTransientError(message string, cause error) *ClassifiedError {
	return &ClassifiedError{Original: cause, Type: ErrorTypeTransient, Message: message, Retryable: true}
}

// NewPermanentError creates a new permanent error
func NewPermanentError(message string, cause error) *ClassifiedError {
	return &ClassifiedError{Original: cause, Type: ErrorTypePermanent, Message: message}
}

// NewInvalidResponseError marks a response that could not be used, such as
// model output failing schema validation. A fresh attempt may succeed.
func NewInvalidResponseError(message string, cause error) *ClassifiedError {
	return &ClassifiedError{Original: cause, Type: ErrorTypeInvalidResponse, Message: message, Retryable: true}
}

// FromHTTPStatus classifies an error returned together with an HTTP status
// code by a remote service.
func FromHTTPStatus(status int, err error) *ClassifiedError {
	c := &ClassifiedError{Original: err, Message: fmt.Sprintf("HTTP %d: %v", status, err)}
	switch {
	case status == http.StatusTooManyRequests:
		c.Type, c.Retryable = ErrorTypeRateLimit, true
	case status == http.StatusRequestTimeout || status == http.StatusGatewayTimeout:
		c.Type, c.Retryable = ErrorTypeTimeout, true
	case status >= 500:
		c.Type, c.Retryable = ErrorTypeServiceUnavailable, true
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		c.Type = ErrorTypePermanent
	case status == http.StatusNotFound:
		c.Type = ErrorTypeResourceNotFound
	case status >= 400:
		c.Type = ErrorTypeInvalidInput
	default:
		c.Type = ErrorTypeUnknown
	}
	return c
}
