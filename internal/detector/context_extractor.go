// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package detector

import (
	"strings"
	"unicode/utf8"
)

// ContextExtractor cuts a character window around a match in a text
type ContextExtractor struct {
	// Number of characters before and after the match to consider
	ContextChars int
}

// NewContextExtractor creates a new context extractor with default settings
func NewContextExtractor() *ContextExtractor {
	return &ContextExtractor{
		ContextChars: 150,
	}
}

// WithContextChars sets the number of context characters
func (ce *ContextExtractor) WithContextChars(chars int) *ContextExtractor {
	ce.ContextChars = chars
	return ce
}

// ExtractContext returns the window around text[start:end]. Offsets are byte
// offsets; the window is measured in runes so it never splits a character.
func (ce *ContextExtractor) ExtractContext(text string, start, end int) ContextInfo {
	if start < 0 || end > len(text) || start > end {
		return ContextInfo{}
	}

	before := text[:start]
	for i, n := len(before), 0; i > 0; n++ {
		if n == ce.ContextChars {
			before = before[i:]
			break
		}
		_, size := utf8.DecodeLastRuneInString(before[:i])
		i -= size
	}

	after := text[end:]
	n := 0
	for i := range after {
		if n == ce.ContextChars {
			after = after[:i]
			break
		}
		n++
	}

	return ContextInfo{
		BeforeText: before,
		AfterText:  after,
		Window:     strings.Join(strings.Fields(before+text[start:end]+after), " "),
	}
}
