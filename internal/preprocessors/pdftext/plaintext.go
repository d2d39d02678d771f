// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package pdftext

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"
)

// maxTextFileSize guards against accidentally feeding huge logs to the extractors.
const maxTextFileSize = 50 * 1024 * 1024

// PlainTextDecoder reads judgments that were already converted to text.
type PlainTextDecoder struct{}

// NewPlainTextDecoder creates a PlainTextDecoder.
func NewPlainTextDecoder() *PlainTextDecoder {
	return &PlainTextDecoder{}
}

func (d *PlainTextDecoder) Name() string { return BackendPlainText }

func (d *PlainTextDecoder) Supports(path string) bool {
	switch extension(path) {
	case ".txt", ".text":
		return true
	}
	return false
}

// Decode reads a UTF-8 text file. A leading byte order mark is dropped.
func (d *PlainTextDecoder) Decode(ctx context.Context, path string) (*TextContent, error) {
	content := &TextContent{Filename: filepath.Base(path), Backend: d.Name(), PageCount: 1}
	if !d.Supports(path) {
		return content, ErrUnsupported
	}
	if err := ctx.Err(); err != nil {
		return content, err
	}

	info, err := os.Stat(path)
	if err != nil {
		return content, fmt.Errorf("stat %s: %w", path, err)
	}
	if info.Size() > maxTextFileSize {
		return content, fmt.Errorf("text file too large: %d bytes", info.Size())
	}

	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return content, fmt.Errorf("read %s: %w", path, err)
	}
	if !utf8.Valid(data) {
		return content, fmt.Errorf("%s is not valid UTF-8", content.Filename)
	}

	content.Text = strings.TrimPrefix(string(data), "\uFEFF")
	return finish(content)
}
