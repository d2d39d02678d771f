// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package pdftext decodes judgment files into plain text. Backends are tried
// in order by a Chain; a backend that produces no text counts as failed.
package pdftext

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"
)

// Backend names accepted by New.
const (
	BackendLedongthuc = "ledongthuc"
	BackendPlainText  = "plaintext"
)

var (
	// ErrUnsupported is returned for files a decoder cannot handle.
	ErrUnsupported = errors.New("unsupported file type")
	// ErrEmptyText is returned when decoding succeeds without producing text.
	ErrEmptyText = errors.New("no text extracted")
)

// TextContent is the decoded text of one file.
type TextContent struct {
	Filename  string
	Text      string
	PageCount int
	WordCount int
	CharCount int
	LineCount int
	// Backend names the decoder that produced Text.
	Backend string
}

// Decoder turns a file into text.
type Decoder interface {
	Name() string
	Supports(path string) bool
	Decode(ctx context.Context, path string) (*TextContent, error)
}

// Options configures New.
type Options struct {
	// Backends in the order they are tried.
	Backends []string
	// MaxPages limits the pages decoded per PDF. Zero means DefaultMaxPages.
	MaxPages int
	// Validate checks PDF structure with pdfcpu before decoding.
	Validate bool
}

// New builds a decoder chain from backend names.
func New(opts Options, logger *zap.Logger) (*Chain, error) {
	backends := opts.Backends
	if len(backends) == 0 {
		backends = []string{BackendLedongthuc, BackendPlainText}
	}
	var decoders []Decoder
	for _, name := range backends {
		var d Decoder
		switch strings.ToLower(strings.TrimSpace(name)) {
		case BackendLedongthuc:
			d = NewLedongthucDecoder(opts.MaxPages, logger)
			if opts.Validate {
				d = NewValidatingDecoder(d, logger)
			}
		case BackendPlainText:
			d = NewPlainTextDecoder()
		default:
			return nil, fmt.Errorf("unknown decoder backend %q", name)
		}
		decoders = append(decoders, d)
	}
	return NewChain(logger, decoders...), nil
}

func extension(path string) string {
	return strings.ToLower(filepath.Ext(path))
}

// finish fills the derived counts and rejects empty text.
func finish(content *TextContent) (*TextContent, error) {
	if strings.TrimSpace(content.Text) == "" {
		return content, ErrEmptyText
	}
	content.WordCount = len(strings.Fields(content.Text))
	content.CharCount = utf8.RuneCountInString(content.Text)
	content.LineCount = strings.Count(content.Text, "\n") + 1
	return content, nil
}
