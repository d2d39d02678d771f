// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package text

import (
	"fmt"
	"strings"

	"judgment-extract/internal/formatters"
	"judgment-extract/internal/record"
	"judgment-extract/internal/rules"

	"github.com/fatih/color"
)

// maxValueRunes truncates long evidence fields outside verbose mode
const maxValueRunes = 160

// Formatter implements text-based output formatting
type Formatter struct{}

// NewFormatter creates a new text formatter
func NewFormatter() *Formatter {
	return &Formatter{}
}

func (f *Formatter) Name() string {
	return "text"
}

func (f *Formatter) Description() string {
	return "Human-readable text output with colors"
}

func (f *Formatter) FileExtension() string {
	return ".txt"
}

type palette struct {
	title   *color.Color
	meta    *color.Color
	label   *color.Color
	missing *color.Color
	summary *color.Color
}

func newPalette(noColor bool) palette {
	p := palette{
		title:   color.New(color.FgCyan, color.Bold),
		meta:    color.New(color.FgBlue),
		label:   color.New(color.FgMagenta),
		missing: color.New(color.FgYellow),
		summary: color.New(color.FgWhite, color.Bold),
	}
	if noColor {
		for _, c := range []*color.Color{p.title, p.meta, p.label, p.missing, p.summary} {
			c.DisableColor()
		}
	}
	return p
}

// Format writes one block per record. Empty fields are skipped and long
// values truncated unless options.Verbose is set.
func (f *Formatter) Format(records []*record.Record, options formatters.FormatterOptions) ([]byte, error) {
	columns, err := formatters.Columns(options)
	if err != nil {
		return nil, err
	}
	p := newPalette(options.NoColor)

	present := make([]*record.Record, 0, len(records))
	for _, r := range records {
		if r != nil {
			present = append(present, r)
		}
	}
	rows := formatters.Rows(present, columns)
	if len(rows) == 0 {
		return []byte("No judgments processed.\n"), nil
	}

	width := 0
	for _, c := range columns {
		width = max(width, len(c))
	}

	labels := make(map[string]bool, len(record.LabelFields))
	for _, l := range record.LabelFields {
		labels[l] = true
	}

	var b strings.Builder
	for i, row := range rows {
		r := present[i]
		b.WriteString(p.title.Sprintf("[%d] %s", i+1, displayName(r)))
		if lang, dt := r.Get(record.FieldLanguage), r.Get(record.FieldDocumentType); lang != "" || dt != "" {
			b.WriteString(" ")
			b.WriteString(p.meta.Sprintf("(%s, %s)", orDash(lang), orDash(dt)))
		}
		b.WriteString("\n")

		for c, name := range columns {
			value := row[c]
			if value == record.NotFound && !options.Verbose {
				continue
			}
			if !options.Verbose {
				value = rules.Truncate(value, maxValueRunes)
			}
			switch {
			case value == record.NotFound:
				value = p.missing.Sprint("-")
			case value == record.Unknown:
				value = p.missing.Sprint(value)
			case labels[name]:
				value = p.label.Sprint(value)
			}
			fmt.Fprintf(&b, "  %-*s : %s\n", width, name, value)
		}
		b.WriteString("\n")
	}

	b.WriteString(p.summary.Sprintf("Processed %d judgment(s)", len(rows)))
	b.WriteString("\n")
	return []byte(b.String()), nil
}

func displayName(r *record.Record) string {
	if name := r.Get(record.FieldFileName); name != "" {
		return name
	}
	if cn := r.Get(record.FieldCaseNumber); cn != "" {
		return cn
	}
	return "(unnamed)"
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

// Register the formatter during package initialization
func init() {
	formatters.Register(NewFormatter())
}
