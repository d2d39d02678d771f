// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package formatters

import (
	"fmt"
	"sort"
	"strings"

	"judgment-extract/internal/record"
)

// FormatterOptions defines configuration options for formatters
type FormatterOptions struct {
	Fields  []string // Columns to emit, in order; empty means record.OutputFields
	Verbose bool     // Whether to display empty fields and untruncated evidence
	NoColor bool     // Whether to disable colored output
	Compact bool     // Whether to emit compact JSON
}

// Formatter interface defines methods that all output formatters must implement
type Formatter interface {
	// Format renders records in the formatter's output format
	Format(records []*record.Record, options FormatterOptions) ([]byte, error)

	// Name returns the name of the formatter (e.g., "json", "text", "csv")
	Name() string

	// Description returns a brief description of what this formatter outputs
	Description() string

	// FileExtension returns the recommended file extension for this format (e.g., ".json", ".csv")
	FileExtension() string
}

// Registry holds all registered formatters
type Registry struct {
	formatters map[string]Formatter
}

// NewRegistry creates a new formatter registry
func NewRegistry() *Registry {
	return &Registry{
		formatters: make(map[string]Formatter),
	}
}

// Register adds a formatter to the registry
func (r *Registry) Register(formatter Formatter) {
	r.formatters[formatter.Name()] = formatter
}

// Get retrieves a formatter by name
func (r *Registry) Get(name string) (Formatter, bool) {
	formatter, exists := r.formatters[strings.ToLower(name)]
	return formatter, exists
}

// List returns all registered formatter names, sorted
func (r *Registry) List() []string {
	names := make([]string, 0, len(r.formatters))
	for name := range r.formatters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// FormatInfo provides metadata about a formatter
type FormatInfo struct {
	Name        string
	Description string
	Extension   string
	MimeType    string
	Binary      bool
}

// DefaultRegistry is the global formatter registry
var DefaultRegistry = NewRegistry()

// Register is a convenience function to register a formatter with the default registry
func Register(formatter Formatter) {
	DefaultRegistry.Register(formatter)
}

// Get is a convenience function to get a formatter from the default registry
func Get(name string) (Formatter, bool) {
	return DefaultRegistry.Get(name)
}

// List is a convenience function to list all formatters in the default registry
func List() []string {
	return DefaultRegistry.List()
}

// Export renders records with the named formatter.
func Export(format string, records []*record.Record, options FormatterOptions) ([]byte, error) {
	formatter, exists := Get(format)
	if !exists {
		return nil, fmt.Errorf("unsupported format '%s'. Available formats: %s", format, strings.Join(List(), ", "))
	}
	if _, err := Columns(options); err != nil {
		return nil, err
	}
	return formatter.Format(records, options)
}

// GetFormatInfo returns metadata about a specific formatter
func GetFormatInfo(name string) FormatInfo {
	formatter, exists := Get(name)
	if !exists {
		return FormatInfo{}
	}

	info := FormatInfo{
		Name:        formatter.Name(),
		Description: formatter.Description(),
		Extension:   formatter.FileExtension(),
	}

	switch info.Name {
	case "json":
		info.MimeType = "application/json"
	case "csv":
		info.MimeType = "text/csv"
	case "yaml":
		info.MimeType = "application/x-yaml"
	case "text":
		info.MimeType = "text/plain"
	case "xlsx":
		info.MimeType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
		info.Binary = true
	default:
		info.MimeType = "application/octet-stream"
		info.Binary = true
	}

	return info
}

// GetSupportedFormats returns information about all available formatters
func GetSupportedFormats() []FormatInfo {
	var formats []FormatInfo
	for _, name := range List() {
		formats = append(formats, GetFormatInfo(name))
	}
	return formats
}

// Columns resolves the output columns for options. Requested fields keep
// their given order; duplicates are dropped.
func Columns(options FormatterOptions) ([]string, error) {
	if len(options.Fields) == 0 {
		out := make([]string, len(record.OutputFields))
		copy(out, record.OutputFields)
		return out, nil
	}
	seen := make(map[string]bool, len(options.Fields))
	out := make([]string, 0, len(options.Fields))
	var unknown []string
	for _, f := range options.Fields {
		f = strings.TrimSpace(f)
		if f == "" || seen[f] {
			continue
		}
		seen[f] = true
		if !record.IsField(f) {
			unknown = append(unknown, f)
			continue
		}
		out = append(out, f)
	}
	if len(unknown) > 0 {
		return nil, fmt.Errorf("unknown field(s): %s", strings.Join(unknown, ", "))
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("no output fields selected")
	}
	return out, nil
}

// Rows returns the values of columns for each non-nil record.
func Rows(records []*record.Record, columns []string) [][]string {
	rows := make([][]string, 0, len(records))
	for _, r := range records {
		if r == nil {
			continue
		}
		row := make([]string, len(columns))
		for i, c := range columns {
			row[i] = r.Get(c)
		}
		rows = append(rows, row)
	}
	return rows
}
