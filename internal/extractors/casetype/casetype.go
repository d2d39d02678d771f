// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package casetype collects the passages that describe what a case is about.
// The output is evidence for the classifier, not a label.
package casetype

import (
	"regexp"
	"sort"

	"judgment-extract/internal/detector"
	"judgment-extract/internal/extractors"
	"judgment-extract/internal/lexicon"
	"judgment-extract/internal/record"
	"judgment-extract/internal/rules"

	"go.uber.org/zap"
)

const (
	// MaxParts is the most passages returned.
	MaxParts = 5
	// MaxEnglish and MaxChinese are the output budgets in runes.
	MaxEnglish = 3000
	MaxChinese = 2500

	// HeadRunes bounds how much of a long judgment is read.
	HeadRunes = 80000

	paragraphWeight = 2
	maxSegments     = 8
	dedupePrefix    = 30
)

// Segment is a weighted passage.
type Segment struct {
	Text   string
	Weight int
	Kind   string
}

func between(lo, hi int) func(string) bool {
	return func(s string) bool {
		n := rules.RuneLen(s)
		return n >= lo && n <= hi
	}
}

func section(name, pattern string, weight, lo, hi int) rules.PatternRule {
	return rules.PatternRule{
		Name:       name,
		Pattern:    regexp.MustCompile(pattern),
		Group:      1,
		Scope:      rules.Head(HeadRunes),
		Priority:   weight,
		MaxMatches: 2,
		Clean:      rules.CleanPassage,
		Validate:   between(lo, hi),
	}
}

var englishRunner = rules.NewRunner(
	section("introduction", `(?is)Introduction\s*[:.]?\s*\n((?:[^\n]+\n){3,20})`, 10, 50, 2000),
	section("background", `(?is)BACKGROUND\s*[:.]?\s*\n((?:[^\n]+\n){5,25})`, 9, 50, 2000),
	section("facts", `(?is)FACTS?\s*[:.]?\s*\n((?:[^\n]+\n){3,20})`, 8, 50, 2000),
	rules.PatternRule{
		Name:       "nature",
		Pattern:    regexp.MustCompile(`(?i)(?:This is|These are)\s+(?:an?\s+)?(action|application|proceeding|matter|case|appeal|motion|summons)([^\n.]{20,300})`),
		Build:      func(sub []string) string { return sub[1] + sub[2] },
		Scope:      rules.Head(HeadRunes),
		Priority:   7,
		MaxMatches: 2,
		Clean:      rules.CleanPassage,
		Validate:   between(50, 2000),
	},
	section("application", `(?i)(?:The|This)\s+(?:plaintiff|applicant|defendant|appellant)\s+(?:seeks?|applies?|brings?|claims?)\s+([^\n.]{30,400})`, 6, 50, 2000),
	section("order", `(?is)(?:ORDERS?|JUDGMENT|HELD|DISPOSITION)\s*[:.]?\s*\n((?:[^\n]+\n){2,15})`, 5, 30, 1500),
	section("conclusion", `(?is)(?:For (?:these reasons|the foregoing reasons)|Accordingly|In (?:conclusion|the result))\s*[,.]?\s*([^\n.]{50,500})`, 4, 30, 1500),
)

var chineseRunner = rules.NewRunner(
	section("background", `(?:背景|事實|案情|簡介)\s*[：:.]?\s*\n((?:[^\n]+\n){3,20})`, 10, 30, 1500),
	section("dispute", `(?:爭議|問題|焦點|糾紛)\s*[：:.]?\s*\n((?:[^\n]+\n){2,15})`, 9, 30, 1500),
	section("application", `(?:申請人|原告人?)\s*(?:申請|請求|要求|尋求|指稱)\s*([^\n。]{50,500})`, 8, 30, 1500),
	section("nature", `(?:本案|該案|此案)\s*(?:涉及|關於|係|為)\s*([^\n。]{30,400})`, 7, 30, 1500),
	section("order", `(?:命令|判令|裁定|判決)\s*[：:.]?\s*\n((?:[^\n]+\n){2,15})`, 6, 20, 1000),
	section("conclusion", `(?:綜上所述|因此|故此|據此)\s*[，,]?\s*([^\n。]{30,400})`, 5, 20, 1000),
)

// paragraphRule describes the low-weight fallback over unlabeled paragraphs.
type paragraphRule struct {
	rawMin, rawMax     int
	cleanMin, cleanMax int
	keywords           []string
	fold               bool
}

// Extractor collects case-type evidence.
type Extractor struct {
	extractors.Base
	lex *lexicon.Lexicon
}

// NewExtractor creates a case-type extractor.
func NewExtractor(logger *zap.Logger) *Extractor {
	return &Extractor{
		Base: extractors.NewBase("case_type_extractor", record.FieldCaseType, logger),
		lex:  lexicon.Default(),
	}
}

// Extract implements detector.Extractor.
func (e *Extractor) Extract(in detector.Input) string {
	done := e.Track(in.FileName)
	var v string
	if in.Text != "" {
		runner, budget := englishRunner, MaxEnglish
		para := paragraphRule{200, 2000, 100, 1500, e.lex.CaseType.EnglishKeywords, true}
		if in.Chinese() {
			runner, budget = chineseRunner, MaxChinese
			para = paragraphRule{150, 1500, 80, 1200, e.lex.CaseType.ChineseKeywords, false}
		}
		segments := e.sections(runner, in.Text)
		segments = append(segments, longParagraphs(rules.Head(HeadRunes)(in.Text), para, len(segments))...)
		e.Logger().Debug("case type segments", zap.Int("count", len(segments)))
		v = Combine(segments, budget)
	}
	done(v)
	return v
}

func (e *Extractor) sections(runner *rules.Runner, text string) []Segment {
	var out []Segment
	weights := make(map[string]int, len(runner.Rules()))
	for _, r := range runner.Rules() {
		weights[r.Name] = r.Priority
	}
	for _, res := range runner.Collect(text) {
		e.Logger().Debug("case type section", zap.String("rule", res.Rule), zap.Int("length", len(res.Value)))
		out = append(out, Segment{Text: res.Value, Weight: weights[res.Rule], Kind: res.Rule})
	}
	return out
}

// longParagraphs returns keyword-bearing paragraphs until the segment count
// reaches maxSegments.
func longParagraphs(text string, r paragraphRule, have int) []Segment {
	var out []Segment
	for _, p := range rules.Paragraphs(text) {
		if have+len(out) >= maxSegments {
			break
		}
		n := rules.RuneLen(p)
		if n < r.rawMin || n > r.rawMax || !lexicon.ContainsAny(p, r.keywords, r.fold) {
			continue
		}
		c := rules.CleanPassage(p)
		if between(r.cleanMin, r.cleanMax)(c) {
			out = append(out, Segment{Text: c, Weight: paragraphWeight, Kind: "long_paragraph"})
		}
	}
	return out
}

// Combine orders segments by weight, drops near duplicates and keeps at most
// MaxParts whose joined length fits budget.
func Combine(segments []Segment, budget int) string {
	sorted := make([]Segment, len(segments))
	copy(sorted, segments)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Weight > sorted[j].Weight })

	var parts []string
	seen := make(map[string]bool)
	total := 0
	for _, s := range sorted {
		if s.Text == "" {
			continue
		}
		key := rules.Prefix(s.Text, dedupePrefix)
		if seen[key] {
			continue
		}
		n := rules.RuneLen(s.Text)
		if total+n > budget {
			continue
		}
		seen[key] = true
		parts = append(parts, s.Text)
		total += n
		if len(parts) == MaxParts {
			break
		}
	}
	return rules.JoinCapped(parts, budget)
}
