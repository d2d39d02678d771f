// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package pdftext

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"judgment-extract/internal/logging"

	"github.com/ledongthuc/pdf"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// DefaultMaxPages bounds decoding time for very long judgments.
const DefaultMaxPages = 200

// paragraphGap is the vertical gap, in font sizes, that starts a new paragraph.
const paragraphGap = 1.8

// LedongthucDecoder extracts row-ordered text with github.com/ledongthuc/pdf.
type LedongthucDecoder struct {
	maxPages int
	logger   *zap.Logger
}

// NewLedongthucDecoder creates the primary PDF decoder.
func NewLedongthucDecoder(maxPages int, logger *zap.Logger) *LedongthucDecoder {
	if maxPages <= 0 {
		maxPages = DefaultMaxPages
	}
	return &LedongthucDecoder{
		maxPages: maxPages,
		logger:   logging.OrNop(logger).With(zap.String("component", "pdf_decoder")),
	}
}

func (d *LedongthucDecoder) Name() string { return BackendLedongthuc }

func (d *LedongthucDecoder) Supports(path string) bool { return extension(path) == ".pdf" }

// Decode extracts the text of up to maxPages pages, decoding pages in
// parallel. Pages that fail are skipped.
func (d *LedongthucDecoder) Decode(ctx context.Context, path string) (content *TextContent, err error) {
	content = &TextContent{Filename: filepath.Base(path), Backend: d.Name()}
	if !d.Supports(path) {
		return content, ErrUnsupported
	}

	// the reader panics on some malformed cross-reference tables
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("decode %s: %v", content.Filename, r)
		}
	}()

	f, r, err := pdf.Open(path)
	if err != nil {
		return content, fmt.Errorf("open PDF: %w", err)
	}
	defer f.Close()

	content.PageCount = r.NumPage()
	pages := min(content.PageCount, d.maxPages)
	if pages < content.PageCount {
		d.logger.Info("page limit reached",
			zap.String("file", content.Filename),
			zap.Int("pages", content.PageCount),
			zap.Int("decoded", pages))
	}

	texts := make([]string, pages+1)
	failed := make([]bool, pages+1)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())
	for i := 1; i <= pages; i++ {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			text, err := pageText(r, i)
			if err != nil {
				failed[i] = true
				return nil
			}
			texts[i] = text
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return content, err
	}

	var buf strings.Builder
	failedPages := 0
	for i := 1; i <= pages; i++ {
		if failed[i] {
			failedPages++
			continue
		}
		if buf.Len() > 0 {
			buf.WriteString("\n\n")
		}
		buf.WriteString(texts[i])
	}
	if failedPages > 0 {
		d.logger.Warn("pages could not be decoded",
			zap.String("file", content.Filename),
			zap.Int("failed", failedPages))
	}

	content.Text = cleanPreservingParagraphs(buf.String())
	return finish(content)
}

func pageText(r *pdf.Reader, n int) (text string, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("page %d: %v", n, rec)
		}
	}()
	p := r.Page(n)
	if p.V.IsNull() {
		return "", fmt.Errorf("page %d: null page", n)
	}
	rows, err := p.GetTextByRow()
	if err != nil {
		return p.GetPlainText(nil)
	}
	return joinRows(rows), nil
}

// joinRows orders rows top to bottom and inserts a blank line wherever the
// vertical gap suggests a paragraph break.
func joinRows(rows pdf.Rows) string {
	sorted := make([]*pdf.Row, 0, len(rows))
	for _, row := range rows {
		if row != nil && len(row.Content) > 0 {
			sorted = append(sorted, row)
		}
	}
	// PDF y grows upwards
	sort.SliceStable(sorted, func(i, j int) bool {
		return averageY(sorted[i].Content) > averageY(sorted[j].Content)
	})

	var buf bytes.Buffer
	prevY, prevSize := 0.0, 0.0
	for i, row := range sorted {
		text := reconstructRowText(row.Content)
		if strings.TrimSpace(text) == "" {
			continue
		}
		y := averageY(row.Content)
		if i > 0 && prevSize > 0 && prevY-y > prevSize*paragraphGap {
			buf.WriteString("\n")
		}
		buf.WriteString(text)
		buf.WriteString("\n")
		prevY, prevSize = y, fontSize(row.Content)
	}
	return buf.String()
}

func averageY(texts []pdf.Text) float64 {
	if len(texts) == 0 {
		return 0
	}
	var total float64
	for _, t := range texts {
		total += t.Y
	}
	return total / float64(len(texts))
}

func fontSize(texts []pdf.Text) float64 {
	for _, t := range texts {
		if t.FontSize > 0 {
			return t.FontSize
		}
	}
	return 12
}

// reconstructRowText joins the glyph runs of one row left to right,
// inserting a space where the horizontal gap exceeds a fifth of the font size.
func reconstructRowText(texts []pdf.Text) string {
	if len(texts) == 0 {
		return ""
	}
	sorted := make([]pdf.Text, len(texts))
	copy(sorted, texts)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].X < sorted[j].X })

	var buf bytes.Buffer
	for i, t := range sorted {
		buf.WriteString(t.S)
		if i == len(sorted)-1 {
			break
		}
		size := t.FontSize
		if size <= 0 {
			size = 12
		}
		if gap := sorted[i+1].X - (t.X + t.W); gap > size*0.2 {
			buf.WriteString(" ")
		}
	}
	return buf.String()
}

// cleanPreservingParagraphs trims lines and collapses runs of spaces and
// blank lines, keeping single blank lines as paragraph separators.
func cleanPreservingParagraphs(text string) string {
	lines := strings.Split(strings.ReplaceAll(text, "\t", " "), "\n")
	out := make([]string, 0, len(lines))
	blank := false
	for _, line := range lines {
		line = strings.Join(strings.Fields(line), " ")
		if line == "" {
			if len(out) > 0 && !blank {
				out = append(out, "")
			}
			blank = true
			continue
		}
		blank = false
		out = append(out, line)
	}
	for len(out) > 0 && out[len(out)-1] == "" {
		out = out[:len(out)-1]
	}
	return strings.Join(out, "\n")
}
