// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package textnorm removes PDF index-page noise ahead of field extraction.
package textnorm

import (
	"regexp"
	"strings"
	"unicode"

	"judgment-extract/internal/lexicon"
	"judgment-extract/internal/logging"

	"go.uber.org/zap"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const (
	guardLines      = 50
	minRun          = 10
	lookahead       = 20
	minPrimaryLen   = 200
	fallbackMinLine = 50
	fallbackSample  = 100
	fallbackRatio   = 0.3
	minFallbackLen  = 500
)

var singleLetterLine = regexp.MustCompile(`^[A-Z]\s*$`)

// Normalizer strips runs of single-letter index lines that some PDF
// decoders emit before the first real page.
type Normalizer struct {
	logger *zap.Logger
	lex    *lexicon.Lexicon
}

// NewNormalizer builds a Normalizer using the embedded lexicon.
func NewNormalizer(logger *zap.Logger) *Normalizer {
	return &Normalizer{logger: logging.OrNop(logger), lex: lexicon.Default()}
}

// Normalize is a convenience wrapper around a Normalizer without logging.
func Normalize(text string) string {
	return NewNormalizer(nil).Normalize(text)
}

// Normalize returns text with leading index noise dropped. When the first 50
// lines already carry a court or party marker the input is returned
// unchanged.
func (n *Normalizer) Normalize(text string) string {
	if text == "" {
		return text
	}
	lines := strings.Split(text, "\n")

	head := strings.Join(lines[:min(guardLines, len(lines))], "\n")
	if lexicon.ContainsAny(head, n.lex.Normalizer.CriticalKeywords, true) {
		n.logger.Debug("critical keyword in first lines, normalization skipped")
		return text
	}

	if start, run := n.primaryCut(lines); start > 0 {
		cleaned := strings.Join(lines[start:], "\n")
		if len(cleaned) > minPrimaryLen && lexicon.ContainsAny(cleaned, n.lex.Normalizer.VerifyKeywords, true) {
			n.logger.Info("index noise removed",
				zap.Int("dropped_lines", start),
				zap.Int("run_length", run),
				zap.Int("original_length", len(text)),
				zap.Int("cleaned_length", len(cleaned)))
			return cleaned
		}
	}

	if cleaned, ok := n.fallbackCut(lines); ok {
		return cleaned
	}
	return text
}

// primaryCut finds the longest run of single-letter lines of at least minRun
// lines that is followed, within lookahead lines, by a content line. It
// returns the index of that content line.
func (n *Normalizer) primaryCut(lines []string) (int, int) {
	run, best := 0, 0
	for i := 0; i < len(lines); i++ {
		s := strings.TrimSpace(lines[i])
		switch {
		case singleLetterLine.MatchString(s):
			run++
			best = max(best, run)
			continue
		case s == "":
			continue
		}
		if run >= minRun {
			end := min(len(lines), i+lookahead)
			for j := i; j < end; j++ {
				if lexicon.ContainsAny(lines[j], n.lex.Normalizer.ContentKeywords, true) {
					return j, best
				}
			}
		}
		run = 0
	}
	return -1, best
}

// fallbackCut handles documents where single letters are scattered rather
// than forming one run.
func (n *Normalizer) fallbackCut(lines []string) (string, bool) {
	if len(lines) <= fallbackMinLine {
		return "", false
	}
	sample := min(fallbackSample, len(lines))
	singles := 0
	for _, l := range lines[:sample] {
		if singleLetterLine.MatchString(strings.TrimSpace(l)) {
			singles++
		}
	}
	if float64(singles) <= fallbackRatio*float64(sample) {
		return "", false
	}
	for i, l := range lines {
		if lexicon.ContainsAny(l, n.lex.Normalizer.FallbackKeywords, true) {
			cleaned := strings.Join(lines[i:], "\n")
			if len(cleaned) > minFallbackLen {
				n.logger.Info("index noise removed by fallback",
					zap.Int("dropped_lines", i),
					zap.Int("single_letter_lines", singles))
				return cleaned, true
			}
			return "", false
		}
	}
	return "", false
}

// Canonicalize applies Unicode NFC, drops invisible format runes such as
// zero-width spaces and byte-order marks, and converts CRLF line endings.
// It is applied before Normalize and is not part of its no-op guarantee.
func Canonicalize(text string) string {
	if text == "" {
		return text
	}
	t := transform.Chain(runes.Remove(runes.In(unicode.Cf)), norm.NFC)
	out, _, err := transform.String(t, text)
	if err != nil {
		out = text
	}
	out = strings.ReplaceAll(out, "\r\n", "\n")
	return strings.ReplaceAll(out, "\r", "\n")
}
