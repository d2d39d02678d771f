// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package pdftext

import (
	"context"
	"fmt"
	"sync"

	"judgment-extract/internal/logging"
	"judgment-extract/internal/resilience"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"go.uber.org/zap"
)

var disableConfigDir sync.Once

// ValidatingDecoder checks PDF structure with pdfcpu before handing the file
// to the wrapped decoder, and reports the page count pdfcpu sees.
type ValidatingDecoder struct {
	next   Decoder
	conf   *model.Configuration
	logger *zap.Logger
}

// NewValidatingDecoder wraps next.
func NewValidatingDecoder(next Decoder, logger *zap.Logger) *ValidatingDecoder {
	// pdfcpu would otherwise create a config directory under the user's home
	disableConfigDir.Do(api.DisableConfigDir)

	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	return &ValidatingDecoder{
		next:   next,
		conf:   conf,
		logger: logging.OrNop(logger).With(zap.String("component", "pdf_validator")),
	}
}

func (d *ValidatingDecoder) Name() string { return d.next.Name() }

func (d *ValidatingDecoder) Supports(path string) bool { return d.next.Supports(path) }

// Decode validates path and then decodes it with the wrapped decoder. A file
// that fails validation is a permanent error for every PDF backend.
func (d *ValidatingDecoder) Decode(ctx context.Context, path string) (*TextContent, error) {
	if !d.Supports(path) {
		return &TextContent{Backend: d.Name()}, ErrUnsupported
	}
	if err := api.ValidateFile(path, d.conf); err != nil {
		d.logger.Warn("PDF failed validation", zap.String("file", path), zap.Error(err))
		return &TextContent{Backend: d.Name()}, resilience.NewPermanentError(fmt.Sprintf("invalid PDF %s", path), err)
	}

	content, err := d.next.Decode(ctx, path)
	if err != nil {
		return content, err
	}
	if pages, perr := api.PageCountFile(path); perr == nil && pages > 0 {
		content.PageCount = pages
	}
	return content, nil
}
