// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package classifier

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// LabelSchema is the JSON schema remote classifiers must answer with.
// judgment_result is not an enum here: out-of-vocabulary values are coerced
// to unknown by Labels.Normalize instead of failing the response.
var LabelSchema = map[string]any{
	"$schema": "http://json-schema.org/draft-07/schema#",
	"type":    "object",
	"required": []string{
		"case_type", "judgment_result", "plaintiff_lawyer", "defendant_lawyer", "normalized_amount",
	},
	"properties": map[string]any{
		"case_type":         map[string]any{"type": "string"},
		"judgment_result":   map[string]any{"type": "string"},
		"plaintiff_lawyer":  map[string]any{"type": "string"},
		"defendant_lawyer":  map[string]any{"type": "string"},
		"normalized_amount": map[string]any{"type": "string"},
	},
}

var (
	compileOnce sync.Once
	compiled    *jsonschema.Schema
	compileErr  error
)

func labelSchema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		b, err := json.Marshal(LabelSchema)
		if err != nil {
			compileErr = fmt.Errorf("marshal schema: %w", err)
			return
		}
		compiler := jsonschema.NewCompiler()
		if err := compiler.AddResource("labels.json", bytes.NewReader(b)); err != nil {
			compileErr = fmt.Errorf("add schema: %w", err)
			return
		}
		compiled, compileErr = compiler.Compile("labels.json")
	})
	return compiled, compileErr
}

// ParseLabels validates a model response against LabelSchema and decodes it.
// Markdown code fences around the JSON object are tolerated.
func ParseLabels(content string) (Labels, error) {
	data := []byte(extractJSON(content))

	schema, err := labelSchema()
	if err != nil {
		return Labels{}, err
	}
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return Labels{}, fmt.Errorf("unmarshal labels: %w", err)
	}
	if err := schema.Validate(v); err != nil {
		return Labels{}, fmt.Errorf("labels do not match schema: %w", err)
	}

	var out Labels
	if err := json.Unmarshal(data, &out); err != nil {
		return Labels{}, fmt.Errorf("decode labels: %w", err)
	}
	return out.Normalize(), nil
}

// extractJSON returns the outermost JSON object in s.
func extractJSON(s string) string {
	s = strings.TrimSpace(s)
	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start < 0 || end < start {
		return s
	}
	return s[start : end+1]
}
