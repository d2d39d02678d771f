// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package extractors holds what the per-field extractor packages share.
package extractors

import (
	"judgment-extract/internal/logging"
	"judgment-extract/internal/observability"

	"go.uber.org/zap"
)

// Base carries the logger and observer every extractor uses.
type Base struct {
	name     string
	field    string
	logger   *zap.Logger
	observer *observability.StandardObserver
}

// NewBase names the component and binds the logger.
func NewBase(name, field string, logger *zap.Logger) Base {
	l := logging.OrNop(logger)
	return Base{name: name, field: field, logger: l.With(zap.String("component", name))}
}

// GetComponentName returns the component identifier
func (b *Base) GetComponentName() string { return b.name }

// Field is the record field the extractor fills.
func (b *Base) Field() string { return b.field }

// SetObserver sets the observability component
func (b *Base) SetObserver(observer *observability.StandardObserver) { b.observer = observer }

// Logger returns the component logger.
func (b *Base) Logger() *zap.Logger { return b.logger }

// Track starts timing one extraction and returns the function that finishes
// it with the produced value.
func (b *Base) Track(fileName string) func(value string) {
	var finish func(bool, map[string]interface{})
	if b.observer != nil {
		finish = b.observer.StartTiming(b.name, "extract", fileName)
	}
	return func(value string) {
		if value == "" {
			b.logger.Debug("field not found", zap.String("field", b.field), zap.String("file", fileName))
		}
		if finish != nil {
			finish(value != "", map[string]interface{}{"field": b.field, "length": len(value)})
		}
	}
}
