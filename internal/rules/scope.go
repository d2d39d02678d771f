// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package rules

import "unicode/utf8"

// Scope cuts the region of a document a rule reads. Offsets are counted in
// runes so English and Chinese documents get comparable regions.
type Scope func(text string) string

// All reads the whole text.
func All(text string) string { return text }

// Head reads the first n runes.
func Head(n int) Scope {
	return func(text string) string {
		return RuneSlice(text, 0, n)
	}
}

// Tail reads from max(frac*len, len-minRunes) to the end.
func Tail(frac float64, minRunes int) Scope {
	return func(text string) string {
		n := utf8.RuneCountInString(text)
		start := int(float64(n) * frac)
		if alt := n - minRunes; alt > start {
			start = alt
		}
		return RuneSlice(text, start, n)
	}
}

// Window reads the runes between two fractions of the text.
func Window(from, to float64) Scope {
	return func(text string) string {
		n := utf8.RuneCountInString(text)
		return RuneSlice(text, int(float64(n)*from), int(float64(n)*to))
	}
}

// RuneSlice returns text[start:end] with start and end counted in runes and
// clamped to the text.
func RuneSlice(text string, start, end int) string {
	if start < 0 {
		start = 0
	}
	if end <= start {
		return ""
	}
	bs, be := -1, len(text)
	i := 0
	for off := range text {
		if i == start {
			bs = off
		}
		if i == end {
			be = off
			break
		}
		i++
	}
	if bs < 0 {
		return ""
	}
	return text[bs:be]
}

// RuneLen is utf8.RuneCountInString.
func RuneLen(s string) int {
	return utf8.RuneCountInString(s)
}

// Prefix returns at most the first n runes of s.
func Prefix(s string, n int) string {
	return RuneSlice(s, 0, n)
}
