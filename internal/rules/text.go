// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package rules

import (
	"regexp"
	"strings"
)

var (
	spaceRun      = regexp.MustCompile(`\s+`)
	pageMarker    = regexp.MustCompile(`\s*-\s*\d+\s*-\s*`)
	underscoreRun = regexp.MustCompile(`\s*_{3,}\s*`)
	pageSuffix    = regexp.MustCompile(`(?i)\s*(?:page|頁)\s*\d+.*$`)
	paraNumber    = regexp.MustCompile(`^\s*(?:\d+\.\s*)?`)
	leadPunct     = regexp.MustCompile(`^[,;.:\s]+`)
	trailPunct    = regexp.MustCompile(`[.\s]+$`)
	blankLine     = regexp.MustCompile(`\n\s*\n`)
)

// CollapseSpace trims s and folds every whitespace run into one space.
func CollapseSpace(s string) string {
	return strings.TrimSpace(spaceRun.ReplaceAllString(s, " "))
}

// StripAffixes removes any leading and trailing runes found in cutset after
// trimming whitespace.
func StripAffixes(s, cutset string) string {
	return strings.Trim(strings.TrimSpace(s), cutset+" \t\r\n")
}

// CleanPassage normalizes an extracted paragraph: collapses whitespace,
// drops page markers, underscore rules and paragraph numbers, and strips
// stray punctuation at both ends.
func CleanPassage(s string) string {
	if s == "" {
		return ""
	}
	c := CollapseSpace(s)
	c = pageMarker.ReplaceAllString(c, " ")
	c = underscoreRun.ReplaceAllString(c, " ")
	c = pageSuffix.ReplaceAllString(c, "")
	c = paraNumber.ReplaceAllString(c, "")
	c = leadPunct.ReplaceAllString(c, "")
	c = trailPunct.ReplaceAllString(c, "")
	return strings.TrimSpace(c)
}

// Paragraphs splits text on blank lines.
func Paragraphs(text string) []string {
	return blankLine.Split(text, -1)
}

// DedupeByPrefix keeps the first of any parts sharing the same n-rune prefix.
// Empty parts are dropped.
func DedupeByPrefix(parts []string, n int) []string {
	seen := make(map[string]bool, len(parts))
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p == "" {
			continue
		}
		key := Prefix(p, n)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, p)
	}
	return out
}

// JoinCapped joins parts with " | " and truncates the result to max runes,
// ending in "..." when cut.
func JoinCapped(parts []string, max int) string {
	joined := strings.Join(parts, " | ")
	return Truncate(joined, max)
}

// Truncate shortens s to max runes, replacing the tail with "...".
func Truncate(s string, max int) string {
	if max <= 3 || RuneLen(s) <= max {
		return s
	}
	return Prefix(s, max-3) + "..."
}

// KeywordScore weights every keyword found in the lower-cased context by its
// length: +3 above ten runes, +2 above five, +1 otherwise.
func KeywordScore(context string, keywords []string) float64 {
	lc := strings.ToLower(context)
	score := 0.0
	for _, k := range keywords {
		if k == "" || !strings.Contains(lc, strings.ToLower(k)) {
			continue
		}
		switch n := RuneLen(k); {
		case n > 10:
			score += 3
		case n > 5:
			score += 2
		default:
			score++
		}
	}
	return score
}

// CountWords counts how many of words occur in the lower-cased context.
func CountWords(context string, words []string) int {
	lc := strings.ToLower(context)
	n := 0
	for _, w := range words {
		if w != "" && strings.Contains(lc, strings.ToLower(w)) {
			n++
		}
	}
	return n
}

// Lines splits text into lines without the trailing newline.
func Lines(text string) []string {
	return strings.Split(text, "\n")
}
