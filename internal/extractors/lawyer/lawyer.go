// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package lawyer extracts the representation passage near the end of a
// judgment. It returns raw evidence text; parsing counsel and firm names is
// left to the classifier.
package lawyer

import (
	"regexp"
	"strings"

	"judgment-extract/internal/detector"
	"judgment-extract/internal/extractors"
	"judgment-extract/internal/lexicon"
	"judgment-extract/internal/record"
	"judgment-extract/internal/rules"

	"go.uber.org/zap"
)

const (
	// MaxSegments is the most passages returned for an English judgment.
	MaxSegments = 3
	// MaxChineseSegments is the most passages returned for a Chinese judgment.
	MaxChineseSegments = 2
	// MaxTotal caps the joined English output.
	MaxTotal = 600

	// DefaultTail is the share of the judgment searched first.
	DefaultTail = 0.2

	lastLines      = 10
	contextPadding = 100
	maxExtended    = 2
	widenBy        = 0.1
)

var (
	counselName = regexp.MustCompile(`\b(?i:mr|ms|miss)\.?\s+[A-Z][a-z]+`)

	representation = []*regexp.Regexp{
		regexp.MustCompile(`\b(?i:mr|ms|miss)\.?\s+[A-Z][a-z]+[^.]*?(?i:instructed\s+by)[^.]*?(?i:for\s+(?:the\s+)?(?:plaintiff|defendant))`),
		regexp.MustCompile(`(?i)instructed\s+by[^.]*?for\s+(?:the\s+)?(?:plaintiff|defendant)`),
		regexp.MustCompile(`(?i)counsel\s+for\s+(?:the\s+)?(?:plaintiff|defendant)[:\s]+[^\n.]+`),
		regexp.MustCompile(`(?i)(?:plaintiff|defendant).*?represented\s+by[^.]*?instructed\s+by`),
		regexp.MustCompile(`(?i:for\s+(?:the\s+)?(?:plaintiff|defendant))[:\s]+(?i:mr|ms|miss)\.?\s+[A-Z][a-z]+`),
		regexp.MustCompile(`\b(?i:mr|ms|miss)\.?\s+[A-Z][a-z]+.*?(?i:instructed\s+by|of\s+[A-Z][a-z]+.*?(?:chambers|solicitors?))`),
		regexp.MustCompile(`(?i)(?:leading\s+)?counsel.*?(?:instructed\s+by|for\s+(?:the\s+)?(?:plaintiff|defendant))`),
		regexp.MustCompile(`(?i)(?:the\s+)?(?:plaintiff|defendant).*?(?:was\s+)?not\s+represented`),
	}

	explicit = []*regexp.Regexp{
		regexp.MustCompile(`\b(?i:mr|ms|miss)\.?\s+[A-Z][a-z]+.*?(?i:instructed\s+by).*?(?i:for\s+(?:the\s+)?(?:plaintiff|defendant))`),
		regexp.MustCompile(`(?i:for\s+(?:the\s+)?(?:plaintiff|defendant))[:\s]+(?i:mr|ms|miss)\.?\s+[A-Z][a-z]+.*?(?i:instructed|chambers)`),
		regexp.MustCompile(`(?i)(?:the\s+)?(?:plaintiff|defendant).*?not\s+represented`),
		regexp.MustCompile(`(?i)(?:the\s+)?(?:plaintiff|defendant).*?did\s+not\s+appear`),
	}

	chineseRepresentation = []*regexp.Regexp{
		regexp.MustCompile(`委[托託]律[师師][：:]\s*[^\n]+`),
		regexp.MustCompile(`代理律[师師][：:]\s*[^\n]+`),
		regexp.MustCompile(`(?:原告|申請人|被告|被申請人).*?委託.*?代理`),
		regexp.MustCompile(`律[师師].*?(?:代表|代理)`),
	}
)

// Extractor finds the representation passage.
type Extractor struct {
	extractors.Base
	lex      *lexicon.Lexicon
	tail     rules.Scope
	extended rules.Scope
}

// NewExtractor creates a lawyer-segment extractor.
func NewExtractor(logger *zap.Logger) *Extractor {
	e := &Extractor{
		Base: extractors.NewBase("lawyer_extractor", record.FieldLawyer, logger),
		lex:  lexicon.Default(),
	}
	return e.WithTail(DefaultTail)
}

// WithTail sets the share of the document, counted from the end, that is
// searched first. The explicit-mention fallback reads a slightly wider tail.
func (e *Extractor) WithTail(frac float64) *Extractor {
	if frac <= 0 || frac > 1 {
		frac = DefaultTail
	}
	e.tail = rules.Window(1-frac, 1)
	e.extended = rules.Window(max(0, 1-frac-widenBy), 1)
	return e
}

// Extract implements detector.Extractor.
func (e *Extractor) Extract(in detector.Input) string {
	done := e.Track(in.FileName)
	var v string
	if in.Text != "" {
		if in.Chinese() {
			if v = e.chinese(e.tail(in.Text)); v == "" {
				e.Logger().Debug("widening lawyer search")
				v = e.chinese(e.extended(in.Text))
			}
		} else {
			v = e.english(in.Text)
		}
	}
	done(v)
	return v
}

func (e *Extractor) english(text string) string {
	section := e.tail(text)
	segments := e.paragraphs(section)
	if len(segments) == 0 {
		segments = e.closingLines(section)
	}
	if len(segments) == 0 {
		e.Logger().Debug("widening lawyer search")
		segments = explicitMentions(e.extended(text))
	}
	return combine(segments)
}

// paragraphs keeps paragraphs that match a representation pattern, or that
// mention a representation keyword next to a counsel name.
func (e *Extractor) paragraphs(section string) []string {
	var out []string
	for _, p := range rules.Paragraphs(section) {
		p = strings.TrimSpace(p)
		if len(p) < 30 {
			continue
		}
		if !matchesAny(p, representation) &&
			!(lexicon.ContainsAny(p, e.lex.Lawyer.EnglishKeywords, true) && counselName.MatchString(p)) {
			continue
		}
		if c := rules.CleanPassage(p); inRange(c, 15, 1000) {
			out = append(out, c)
		}
	}
	return out
}

// closingLines looks at the last lines of the section and returns the first
// keyword line with two lines of context either side.
func (e *Extractor) closingLines(section string) []string {
	lines := rules.Lines(section)
	if len(lines) > lastLines {
		lines = lines[len(lines)-lastLines:]
	}
	for i, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" || !lexicon.ContainsAny(line, e.lex.Lawyer.LineKeywords, true) {
			continue
		}
		var ctx []string
		for j := max(0, i-2); j < min(len(lines), i+3); j++ {
			if l := strings.TrimSpace(lines[j]); l != "" {
				ctx = append(ctx, l)
			}
		}
		if c := rules.CleanPassage(strings.Join(ctx, " ")); inRange(c, 15, 800) {
			return []string{c}
		}
	}
	return nil
}

// explicitMentions returns up to two unambiguous representation statements
// with some surrounding text.
func explicitMentions(section string) []string {
	var out []string
	for _, re := range explicit {
		for _, loc := range re.FindAllStringIndex(section, -1) {
			start := max(0, loc[0]-contextPadding)
			end := min(len(section), loc[1]+contextPadding)
			c := rules.CleanPassage(strings.ToValidUTF8(section[start:end], ""))
			if !inRange(c, 20, 600) {
				continue
			}
			out = append(out, c)
			if len(out) >= maxExtended {
				return out
			}
		}
	}
	return out
}

// combine dedupes segments, keeps at most MaxSegments and fits them into
// MaxTotal runes, truncating the last one when it still has room to say
// something.
func combine(segments []string) string {
	unique := rules.DedupeByPrefix(segments, 30)
	if len(unique) > MaxSegments {
		unique = unique[:MaxSegments]
	}
	var kept []string
	total := 0
	for _, s := range unique {
		n := rules.RuneLen(s)
		if total+n <= MaxTotal {
			kept = append(kept, s)
			total += n
			continue
		}
		if remaining := MaxTotal - total; remaining > 30 {
			kept = append(kept, rules.Truncate(s, remaining))
		}
		break
	}
	return strings.Join(kept, " | ")
}

func (e *Extractor) chinese(section string) string {
	var out []string
	for _, p := range rules.Paragraphs(section) {
		p = strings.TrimSpace(p)
		if rules.RuneLen(p) < 20 {
			continue
		}
		if !matchesAny(p, chineseRepresentation) && !lexicon.ContainsAny(p, e.lex.Lawyer.ChineseKeywords, false) {
			continue
		}
		if c := rules.CleanPassage(p); inRange(c, 15, 600) {
			out = append(out, c)
		}
		if len(out) == MaxChineseSegments {
			break
		}
	}
	return strings.Join(out, " | ")
}

func matchesAny(s string, patterns []*regexp.Regexp) bool {
	for _, re := range patterns {
		if re.MatchString(s) {
			return true
		}
	}
	return false
}

func inRange(s string, lo, hi int) bool {
	n := rules.RuneLen(s)
	return n >= lo && n <= hi
}
