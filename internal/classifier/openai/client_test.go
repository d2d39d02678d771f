// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package openai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"judgment-extract/internal/classifier"
	"judgment-extract/internal/record"
	"judgment-extract/internal/resilience"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testKeyEnv = "JUDGMENT_EXTRACT_TEST_KEY"

func completionBody(content string) []byte {
	body, _ := json.Marshal(map[string]any{
		"id":      "chatcmpl-test",
		"object":  "chat.completion",
		"created": 0,
		"model":   "test-model",
		"choices": []map[string]any{{
			"index":         0,
			"finish_reason": "stop",
			"message":       map[string]any{"role": "assistant", "content": content},
		}},
	})
	return body
}

// server answers chat completions with the responses in order, repeating
// the last one.
func server(t *testing.T, calls *int32, responses ...func(w http.ResponseWriter)) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/chat/completions") {
			http.NotFound(w, r)
			return
		}
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		n := int(atomic.AddInt32(calls, 1)) - 1
		if n >= len(responses) {
			n = len(responses) - 1
		}
		responses[n](w)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func ok(content string) func(w http.ResponseWriter) {
	return func(w http.ResponseWriter) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(completionBody(content))
	}
}

func status(code int) func(w http.ResponseWriter) {
	return func(w http.ResponseWriter) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(code)
		_, _ = w.Write([]byte(`{"error":{"message":"upstream failure","type":"server_error"}}`))
	}
}

func newTestClient(t *testing.T, baseURL string) *Client {
	t.Helper()
	t.Setenv(testKeyEnv, "test-key")
	c, err := NewClient(Config{
		BaseURL:   baseURL + "/v1/",
		APIKeyEnv: testKeyEnv,
		Model:     "test-model",
		Timeout:   5 * time.Second,
		Retry: resilience.RetryConfig{
			MaxRetries:      2,
			InitialInterval: time.Millisecond,
			MaxInterval:     5 * time.Millisecond,
			Multiplier:      2.0,
		},
	}, nil)
	require.NoError(t, err)
	return c
}

var evidence = classifier.Evidence{
	JudgmentResult: "The appeal is dismissed with costs",
	Lawyer:         "Mr B, instructed by C & Co, for the respondent",
	Hints:          map[string]string{record.FieldFileName: "CACV000001_2023.pdf"},
}

const validContent = `{"case_type":"Appeal","judgment_result":"Appeal Dismissed",` +
	`"plaintiff_lawyer":"","defendant_lawyer":"Mr B (C & Co)","normalized_amount":"unknown"}`

func TestClassify(t *testing.T) {
	var calls int32
	srv := server(t, &calls, ok(validContent))

	labels, err := newTestClient(t, srv.URL).Classify(context.Background(), evidence)
	require.NoError(t, err)
	assert.Equal(t, "Appeal", labels.CaseType)
	assert.Equal(t, classifier.ResultAppealDismissed, labels.JudgmentResult)
	assert.Equal(t, "Mr B (C & Co)", labels.DefendantLawyer)
	assert.Equal(t, record.Unknown, labels.PlaintiffLawyer)
	assert.EqualValues(t, 1, atomic.LoadInt32(&calls))
}

func TestClassifyCoercesUnknownResult(t *testing.T) {
	var calls int32
	srv := server(t, &calls, ok(strings.Replace(validContent, "Appeal Dismissed", "Partly allowed", 1)))

	labels, err := newTestClient(t, srv.URL).Classify(context.Background(), evidence)
	require.NoError(t, err)
	assert.Equal(t, record.Unknown, labels.JudgmentResult)
}

func TestClassifyRetriesServerErrors(t *testing.T) {
	var calls int32
	srv := server(t, &calls, status(http.StatusServiceUnavailable), ok(validContent))

	labels, err := newTestClient(t, srv.URL).Classify(context.Background(), evidence)
	require.NoError(t, err)
	assert.Equal(t, classifier.ResultAppealDismissed, labels.JudgmentResult)
	assert.EqualValues(t, 2, atomic.LoadInt32(&calls))
}

func TestClassifyRetriesInvalidContent(t *testing.T) {
	var calls int32
	srv := server(t, &calls, ok(`{"case_type":"Appeal"}`), ok(validContent))

	_, err := newTestClient(t, srv.URL).Classify(context.Background(), evidence)
	require.NoError(t, err)
	assert.EqualValues(t, 2, atomic.LoadInt32(&calls))
}

func TestClassifyDoesNotRetryAuthFailure(t *testing.T) {
	var calls int32
	srv := server(t, &calls, status(http.StatusUnauthorized))

	labels, err := newTestClient(t, srv.URL).Classify(context.Background(), evidence)
	require.Error(t, err)
	assert.Equal(t, classifier.UnknownLabels(), labels)
	assert.EqualValues(t, 1, atomic.LoadInt32(&calls))
}

func TestClassifyGivesUpAfterRetries(t *testing.T) {
	var calls int32
	srv := server(t, &calls, status(http.StatusInternalServerError))

	_, err := newTestClient(t, srv.URL).Classify(context.Background(), evidence)
	require.Error(t, err)
	assert.EqualValues(t, 3, atomic.LoadInt32(&calls))
}

func TestNewClientRequiresKey(t *testing.T) {
	t.Setenv(testKeyEnv, "")
	_, err := NewClient(Config{APIKeyEnv: testKeyEnv}, nil)
	assert.Error(t, err)
}

func TestBuildPrompt(t *testing.T) {
	p := buildPrompt(evidence)
	assert.Contains(t, p, "Judgment Text: The appeal is dismissed with costs")
	assert.Contains(t, p, "Mr B, instructed by C & Co, for the respondent")
	assert.Contains(t, p, `"Plaintiff Withdrawn"`)

	assert.Contains(t, buildPrompt(classifier.Evidence{}), "(none found)")
}
