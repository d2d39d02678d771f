// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package csv

import (
	"strings"

	"judgment-extract/internal/formatters"
	"judgment-extract/internal/record"
)

// utf8BOM lets spreadsheet applications detect UTF-8 in files holding Chinese text.
const utf8BOM = "\uFEFF"

// Formatter implements CSV output formatting
type Formatter struct{}

// NewFormatter creates a new CSV formatter
func NewFormatter() *Formatter {
	return &Formatter{}
}

func (f *Formatter) Name() string {
	return "csv"
}

func (f *Formatter) Description() string {
	return "Comma-separated values for spreadsheet import"
}

func (f *Formatter) FileExtension() string {
	return ".csv"
}

// Format writes a header row followed by one row per record.
func (f *Formatter) Format(records []*record.Record, options formatters.FormatterOptions) ([]byte, error) {
	columns, err := formatters.Columns(options)
	if err != nil {
		return nil, err
	}

	var b strings.Builder
	b.WriteString(utf8BOM)
	f.writeRow(&b, columns)
	for _, row := range formatters.Rows(records, columns) {
		f.writeRow(&b, row)
	}
	return []byte(b.String()), nil
}

func (f *Formatter) writeRow(b *strings.Builder, fields []string) {
	for i, field := range fields {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(f.escapeCSVField(field))
	}
	b.WriteString("\r\n")
}

// escapeCSVField properly escapes a field for CSV format and prevents CSV injection
func (f *Formatter) escapeCSVField(field string) string {
	field = f.sanitizeFormulaInjection(field)

	if strings.ContainsAny(field, ",\"\n\r") {
		return "\"" + strings.ReplaceAll(field, "\"", "\"\"") + "\""
	}
	return field
}

// sanitizeFormulaInjection prefixes values that a spreadsheet would evaluate as a formula
func (f *Formatter) sanitizeFormulaInjection(field string) string {
	if len(field) == 0 {
		return field
	}

	switch field[0] {
	case '=', '+', '-', '@':
		return "'" + field
	}
	return field
}

// Register the formatter during package initialization
func init() {
	formatters.Register(NewFormatter())
}
