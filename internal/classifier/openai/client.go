// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package openai classifies judgment evidence with an OpenAI-compatible chat
// completion endpoint.
package openai

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"judgment-extract/internal/classifier"
	"judgment-extract/internal/logging"
	"judgment-extract/internal/record"
	"judgment-extract/internal/resilience"

	"github.com/google/uuid"
	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"go.uber.org/zap"
)

const (
	DefaultModel     = "gpt-4o-mini"
	DefaultAPIKeyEnv = "OPENAI_API_KEY"
	DefaultTimeout   = 60 * time.Second
)

// Config for the OpenAI classifier.
type Config struct {
	BaseURL string
	Model   string
	// APIKeyEnv names the environment variable holding the API key.
	APIKeyEnv   string
	Timeout     time.Duration
	Temperature float64
	// Retry controls attempts around each completion. Zero MaxRetries with a
	// zero InitialInterval selects resilience.ClassifierRetryConfig(3).
	Retry resilience.RetryConfig
	// FailureThreshold opens the circuit breaker after that many consecutive
	// retryable failures.
	FailureThreshold int
}

// Client implements classifier.Classifier.
type Client struct {
	cfg     Config
	client  openai.Client
	breaker *resilience.CircuitBreaker
	logger  *zap.Logger
}

var _ classifier.Classifier = (*Client)(nil)

// NewClient creates a classifier client. The API key is read from the
// environment variable named by cfg.APIKeyEnv; an empty key is an error.
func NewClient(cfg Config, logger *zap.Logger) (*Client, error) {
	if cfg.APIKeyEnv == "" {
		cfg.APIKeyEnv = DefaultAPIKeyEnv
	}
	apiKey := os.Getenv(cfg.APIKeyEnv)
	if apiKey == "" {
		return nil, fmt.Errorf("classifier: environment variable %s is not set", cfg.APIKeyEnv)
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.Temperature == 0 {
		cfg.Temperature = 0.3
	}
	if cfg.Retry.MaxRetries == 0 && cfg.Retry.InitialInterval == 0 {
		cfg.Retry = resilience.ClassifierRetryConfig(-1)
	}
	if cfg.FailureThreshold <= 0 {
		cfg.FailureThreshold = 5
	}
	logger = logging.OrNop(logger).With(zap.String("component", "openai_classifier"))

	opts := []option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithHTTPClient(&http.Client{Timeout: cfg.Timeout}),
		// retries are handled by resilience so they share the circuit breaker
		option.WithMaxRetries(0),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}

	breakerCfg := resilience.DefaultCircuitBreakerConfig("openai_classifier")
	breakerCfg.FailureThreshold = cfg.FailureThreshold
	breakerCfg.OnStateChange = func(name string, from, to resilience.CircuitBreakerState) {
		logger.Warn("circuit breaker state changed",
			zap.String("breaker", name),
			zap.String("from", from.String()),
			zap.String("to", to.String()))
	}

	retry := cfg.Retry
	retry.OnRetry = func(attempt int, err error) {
		logger.Info("retrying classification", zap.Int("attempt", attempt), zap.Error(err))
	}
	cfg.Retry = retry

	return &Client{
		cfg:     cfg,
		client:  openai.NewClient(opts...),
		breaker: resilience.NewCircuitBreaker(breakerCfg),
		logger:  logger,
	}, nil
}

// Classify sends the evidence to the model and returns normalized labels.
func (c *Client) Classify(ctx context.Context, ev classifier.Evidence) (classifier.Labels, error) {
	rid := uuid.New().String()
	start := time.Now()
	file := ev.Hints[record.FieldFileName]

	c.logger.Debug("classification started",
		zap.String("req_id", rid),
		zap.String("file", file),
		zap.String("model", c.cfg.Model))

	labels, err := resilience.ExecuteWithRetry(ctx, c.cfg.Retry, c.breaker, func(ctx context.Context) (classifier.Labels, error) {
		return c.complete(ctx, ev)
	})
	if err != nil {
		c.logger.Error("classification failed",
			zap.String("req_id", rid),
			zap.String("file", file),
			zap.Int64("elapsed_ms", time.Since(start).Milliseconds()),
			zap.Error(err))
		return classifier.UnknownLabels(), fmt.Errorf("classify %s: %w", file, err)
	}

	c.logger.Info("classification completed",
		zap.String("req_id", rid),
		zap.String("file", file),
		zap.String("judgment_result", labels.JudgmentResult),
		zap.Int64("elapsed_ms", time.Since(start).Milliseconds()))
	return labels, nil
}

func (c *Client) complete(ctx context.Context, ev classifier.Evidence) (classifier.Labels, error) {
	completion, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: c.cfg.Model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt),
			openai.UserMessage(buildPrompt(ev)),
		},
		ResponseFormat: openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONObject: &openai.ResponseFormatJSONObjectParam{},
		},
		Temperature:         openai.Float(c.cfg.Temperature),
		MaxCompletionTokens: openai.Int(1024),
	})
	if err != nil {
		return classifier.Labels{}, convertError(err)
	}
	if len(completion.Choices) == 0 {
		return classifier.Labels{}, resilience.NewInvalidResponseError("no choices in completion", nil)
	}

	content := strings.TrimSpace(completion.Choices[0].Message.Content)
	labels, err := classifier.ParseLabels(content)
	if err != nil {
		c.logger.Warn("unusable classifier response", zap.Error(err), zap.Int("bytes", len(content)))
		return classifier.Labels{}, resilience.NewInvalidResponseError("invalid classifier response", err)
	}
	return labels, nil
}

// convertError classifies API errors by status code so permanent failures
// such as a rejected key are not retried.
func convertError(err error) error {
	var apierr *openai.Error
	if errors.As(err, &apierr) {
		return resilience.FromHTTPStatus(apierr.StatusCode, err)
	}
	return err
}
