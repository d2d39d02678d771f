// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package language decides whether a judgment is written in English or Chinese.
package language

import "judgment-extract/internal/lexicon"

// Language of a judgment.
type Language string

const (
	English Language = "english"
	Chinese Language = "chinese"
)

const (
	// SampleRunes is how much of the document is inspected.
	SampleRunes = 1000
	// DefaultRatio is the CJK share above which a sample counts as Chinese.
	DefaultRatio = 0.1
	// MinKeywordHits is the number of legal keywords that alone decide Chinese.
	MinKeywordHits = 2
)

// Detector classifies text by CJK ratio and a legal-keyword vote.
type Detector struct {
	Ratio    float64
	keywords []string
}

// NewDetector returns a detector using ratio, or DefaultRatio when ratio <= 0.
func NewDetector(ratio float64) *Detector {
	if ratio <= 0 {
		ratio = DefaultRatio
	}
	return &Detector{Ratio: ratio, keywords: lexicon.Default().Language.ChineseKeywords}
}

// Detect uses a default detector.
func Detect(text string) Language {
	return NewDetector(DefaultRatio).Detect(text)
}

// Detect returns Chinese when the CJK ratio of the sample exceeds the
// threshold or enough Chinese legal keywords appear in it. Empty text is
// English.
func (d *Detector) Detect(text string) Language {
	if text == "" {
		return English
	}
	sample := text
	total, cjk := 0, 0
	for i, r := range text {
		if total == SampleRunes {
			sample = text[:i]
			break
		}
		total++
		if r >= 0x4e00 && r <= 0x9fff {
			cjk++
		}
	}
	if total == 0 {
		return English
	}
	if float64(cjk)/float64(total) > d.Ratio {
		return Chinese
	}
	if lexicon.CountAny(sample, d.keywords) >= MinKeywordHits {
		return Chinese
	}
	return English
}
