// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package amount extracts evidence for the claimed and the awarded amounts.
//
// Each role is searched in three tiers of widening text regions with a
// falling score threshold. The first tier that accepts any candidate wins.
// The output is a numeric roll-up followed by the context windows of the
// best candidates, for a classifier to interpret.
package amount

import (
	"sort"

	"judgment-extract/internal/detector"
	"judgment-extract/internal/extractors"
	"judgment-extract/internal/lexicon"
	"judgment-extract/internal/record"
	"judgment-extract/internal/rules"

	"go.uber.org/zap"
)

const (
	// MaxOutput caps the returned evidence.
	MaxOutput = 3000
	// TopCandidates is how many context windows are returned per section.
	TopCandidates = 3

	minSectionRunes = 50
	dedupePrefix    = 50
)

// Tier is one search pass: the sections it reads and the score a candidate
// needs to be accepted.
type Tier struct {
	Name      string
	Threshold float64
	Sections  func(text string) []string
}

func runeLen(text string) float64 { return float64(rules.RuneLen(text)) }

// ClaimTiers: the opening and the close of the judgment, then the first half
// and the middle, then everything.
var ClaimTiers = []Tier{
	{Name: "precise", Threshold: 2.5, Sections: func(text string) []string {
		n := runeLen(text)
		front := min(int(n*0.3), 10000)
		back := max(int(n*0.7), int(n)-8000)
		return []string{rules.RuneSlice(text, 0, front), rules.RuneSlice(text, back, int(n))}
	}},
	{Name: "extended", Threshold: 2.0, Sections: func(text string) []string {
		n := runeLen(text)
		front := min(int(n*0.5), 15000)
		return []string{rules.RuneSlice(text, 0, front), rules.Window(0.3, 0.8)(text)}
	}},
	{Name: "loose", Threshold: 1.0, Sections: func(text string) []string { return []string{text} }},
}

// JudgmentTiers: the closing part, then the middle-to-late part, then
// everything.
var JudgmentTiers = []Tier{
	{Name: "precise", Threshold: 2.5, Sections: func(text string) []string {
		n := runeLen(text)
		start := max(int(n*0.6), int(n)-12000)
		return []string{rules.RuneSlice(text, start, int(n))}
	}},
	{Name: "extended", Threshold: 2.0, Sections: func(text string) []string {
		return []string{rules.Window(0.4, 0.9)(text)}
	}},
	{Name: "loose", Threshold: 1.0, Sections: func(text string) []string { return []string{text} }},
}

// Extractor finds amount evidence for one role.
type Extractor struct {
	extractors.Base
	role    Role
	tiers   []Tier
	lex     *lexicon.Lexicon
	context *detector.ContextExtractor
}

// NewExtractor creates an amount extractor for role.
func NewExtractor(role Role, logger *zap.Logger) *Extractor {
	field, tiers := record.FieldClaimAmount, ClaimTiers
	if role == Judgment {
		field, tiers = record.FieldJudgmentAmount, JudgmentTiers
	}
	return &Extractor{
		Base:    extractors.NewBase(role.String()+"_amount_extractor", field, logger),
		role:    role,
		tiers:   tiers,
		lex:     lexicon.Default(),
		context: detector.NewContextExtractor(),
	}
}

// Extract implements detector.Extractor.
func (e *Extractor) Extract(in detector.Input) string {
	done := e.Track(in.FileName)
	words := e.lex.AmountWordsFor(string(in.Language))

	var v string
	for _, tier := range e.tiers {
		var results []string
		for _, section := range tier.Sections(in.Text) {
			results = append(results, e.evaluate(section, in.Chinese(), words, tier.Threshold))
		}
		if v = rules.JoinCapped(rules.DedupeByPrefix(results, dedupePrefix), MaxOutput); v != "" {
			e.Logger().Debug("amount tier accepted", zap.String("role", e.role.String()), zap.String("tier", tier.Name))
			break
		}
	}
	done(v)
	return v
}

// evaluate scores every candidate in section and returns the roll-up and the
// best context windows, or "" when nothing reaches threshold.
func (e *Extractor) evaluate(section string, chinese bool, words lexicon.AmountWords, threshold float64) string {
	if rules.RuneLen(section) < minSectionRunes {
		return ""
	}
	var accepted []detector.Candidate
	for _, c := range FindCandidates(section, chinese, e.context) {
		c.Score = Score(c, e.role, words)
		if c.Score < threshold {
			continue
		}
		annotate(&c, e.role, words)
		e.Logger().Debug("amount candidate",
			zap.String("raw", c.Raw),
			zap.Float64("score", c.Score),
			zap.Strings("positive", c.Context.PositiveKeywords),
			zap.Strings("negative", c.Context.NegativeKeywords))
		accepted = append(accepted, c)
	}
	if len(accepted) == 0 {
		return ""
	}

	sort.SliceStable(accepted, func(i, j int) bool { return accepted[i].Score > accepted[j].Score })
	top := accepted
	if len(top) > TopCandidates {
		top = top[:TopCandidates]
	}
	windows := make([]string, len(top))
	for i, c := range top {
		windows[i] = c.Context.Window
	}
	evidence := rules.JoinCapped(windows, MaxOutput)
	if total := Rollup(accepted); total != "" {
		return total + " | " + evidence
	}
	return evidence
}
