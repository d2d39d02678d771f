// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package json

import (
	"encoding/json"
	"fmt"

	"judgment-extract/internal/formatters"
	"judgment-extract/internal/formatters/shared"
	"judgment-extract/internal/record"
)

// Formatter implements JSON output formatting
type Formatter struct{}

// NewFormatter creates a new JSON formatter
func NewFormatter() *Formatter {
	return &Formatter{}
}

func (f *Formatter) Name() string {
	return "json"
}

func (f *Formatter) Description() string {
	return "Structured JSON output for programmatic consumption"
}

func (f *Formatter) FileExtension() string {
	return ".json"
}

func (f *Formatter) Format(records []*record.Record, options formatters.FormatterOptions) ([]byte, error) {
	response, err := shared.ConvertRecords(records, options)
	if err != nil {
		return nil, err
	}

	var data []byte
	if options.Compact {
		data, err = json.Marshal(response)
	} else {
		data, err = json.MarshalIndent(response, "", "  ")
	}
	if err != nil {
		return nil, fmt.Errorf("formatting JSON: %w", err)
	}
	return append(data, '\n'), nil
}

// Register the formatter during package initialization
func init() {
	formatters.Register(NewFormatter())
}
