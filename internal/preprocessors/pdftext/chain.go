// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package pdftext

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"judgment-extract/internal/logging"

	"go.uber.org/zap"
)

// Chain tries decoders in order and returns the first non-empty result.
type Chain struct {
	decoders []Decoder
	logger   *zap.Logger
}

// NewChain creates a chain over decoders.
func NewChain(logger *zap.Logger, decoders ...Decoder) *Chain {
	return &Chain{
		decoders: decoders,
		logger:   logging.OrNop(logger).With(zap.String("component", "decoder_chain")),
	}
}

// Supports reports whether any decoder in the chain handles path.
func (c *Chain) Supports(path string) bool {
	for _, d := range c.decoders {
		if d.Supports(path) {
			return true
		}
	}
	return false
}

// Decode returns the first successful decoding of path. When every decoder
// fails the errors are joined.
func (c *Chain) Decode(ctx context.Context, path string) (*TextContent, error) {
	var errs []error
	for _, d := range c.decoders {
		if !d.Supports(path) {
			continue
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		content, err := d.Decode(ctx, path)
		if err == nil {
			c.logger.Debug("decoded",
				zap.String("file", filepath.Base(path)),
				zap.String("backend", d.Name()),
				zap.Int("pages", content.PageCount),
				zap.Int("chars", content.CharCount))
			return content, nil
		}
		c.logger.Debug("decoder failed",
			zap.String("file", filepath.Base(path)),
			zap.String("backend", d.Name()),
			zap.Error(err))
		errs = append(errs, fmt.Errorf("%s: %w", d.Name(), err))
	}
	if len(errs) == 0 {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), ErrUnsupported)
	}
	return nil, fmt.Errorf("decode %s: %w", filepath.Base(path), errors.Join(errs...))
}
