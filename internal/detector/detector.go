// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package detector

import (
	"judgment-extract/internal/language"
)

// Input is what every field extractor reads: the normalized document text
// plus the metadata detected up front.
type Input struct {
	Text     string
	Language language.Language
	DocType  string
	FileName string
}

// Chinese reports whether the document was detected as Chinese.
func (in Input) Chinese() bool {
	return in.Language == language.Chinese
}

// Extractor fills one record field. Implementations never fail: a field that
// cannot be found is returned as the empty string.
type Extractor interface {
	// Field is the record field name this extractor fills.
	Field() string
	// Extract returns the field value for the document.
	Extract(in Input) string
}

// ContextInfo stores the text surrounding a candidate match
type ContextInfo struct {
	// Text before and after the match
	BeforeText string
	AfterText  string

	// Window is BeforeText, the match and AfterText with whitespace collapsed
	Window string

	// Contextual keywords found near the match
	PositiveKeywords []string // Keywords that increase confidence
	NegativeKeywords []string // Keywords that decrease confidence

	// Impact on confidence score
	ConfidenceImpact float64
}

// Currency of a monetary candidate.
type Currency string

const (
	CurrencyHKD     Currency = "HK$"
	CurrencyUSD     Currency = "USD"
	CurrencyRMB     Currency = "RMB"
	CurrencyUnknown Currency = "$"
)

// Candidate is a monetary amount found in a document section.
type Candidate struct {
	Raw      string
	Value    float64
	Currency Currency
	// Position is the byte offset of Raw in the section it was found in.
	Position int
	// Relative is Position divided by the section length.
	Relative float64
	Context  ContextInfo
	Score    float64
}
