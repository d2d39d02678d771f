// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package courtname extracts the name of the court from the judgment heading.
package courtname

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

// HeadRunes bounds the region searched for the court heading.
const HeadRunes = 15000

var (
	spacedHKSAR    = regexp.MustCompile(`香\s*港\s*特\s*別\s*行\s*政\s*區`)
	hksarGap       = regexp.MustCompile(`香港特別行政區\s+高等法院`)
	pageTail       = regexp.MustCompile(`\s*-\s*\d+\s*-.*$`)
	ruleTail       = regexp.MustCompile(`\s*_{5,}.*$`)
	englishTail    = regexp.MustCompile(`(?i)\s*(?:ACTION NO\.|PROCEEDING|BETWEEN).*$`)
	chineseTail    = regexp.MustCompile(`\s*(?:案件編號|民事訴訟案件|原告人|被告人).*$`)
	minLen, maxLen = 5, 200
)

// Extractor finds the court name.
type Extractor struct {
	extractors.Base
	lex     *lexicon.Lexicon
	english *rules.Runner
	chinese *rules.Runner
}

// NewExtractor creates a court-name extractor.
func NewExtractor(logger *zap.Logger) *Extractor {
	e := &Extractor{
		Base: extractors.NewBase("court_name_extractor", record.FieldCourtName, logger),
		lex:  lexicon.Default(),
	}

	en := func(name, pattern string) rules.PatternRule {
		return rules.PatternRule{
			Name:     name,
			Pattern:  regexp.MustCompile(`(?is)` + pattern),
			Group:    1,
			Scope:    rules.Head(HeadRunes),
			Clean:    Clean,
			Validate: func(s string) bool { return e.Valid(s, false) },
		}
	}
	e.english = rules.NewRunner(
		en("hksar_cfi", `IN THE\s+(HIGH COURT OF THE\s+HONG KONG SPECIAL ADMINISTRATIVE REGION\s+COURT OF FIRST INSTANCE)`),
		en("hksar_ca", `IN THE\s+(HIGH COURT OF THE\s+HONG KONG SPECIAL ADMINISTRATIVE REGION\s+COURT OF APPEAL)`),
		en("cfi_of_high_court", `IN THE\s+(COURT OF FIRST INSTANCE\s+OF THE HIGH COURT)`),
		en("wrapped_cfi", `IN THE\s+(HIGH COURT OF THE[^\n]*?\n[^\n]*?HONG KONG SPECIAL ADMINISTRATIVE REGION[^\n]*?\n[^\n]*?COURT OF FIRST INSTANCE)`),
		en("wrapped_ca", `IN THE\s+(HIGH COURT OF THE[^\n]*?\n[^\n]*?HONG KONG SPECIAL ADMINISTRATIVE REGION[^\n]*?\n[^\n]*?COURT OF APPEAL)`),
		en("any_cfi", `IN THE\s+(.*?COURT OF FIRST INSTANCE)`),
		en("any_ca", `IN THE\s+(.*?COURT OF APPEAL)`),
		en("hksar", `IN THE\s+(HIGH COURT OF THE\s+HONG KONG SPECIAL ADMINISTRATIVE REGION)`),
		en("district_court", `IN THE\s+(DISTRICT COURT OF THE\s+HONG KONG SPECIAL ADMINISTRATIVE REGION)`),
		en("high_court_before_parties", `IN THE\s+(.*?HIGH COURT.*?)(?:ACTION|PROCEEDING|BETWEEN)`),
		en("court_before_parties", `IN THE\s+(.*?COURT.*?)(?:ACTION|PROCEEDING|BETWEEN)`),
	)

	zh := func(name, pattern string) rules.PatternRule {
		return rules.PatternRule{
			Name:     name,
			Pattern:  regexp.MustCompile(pattern),
			Group:    1,
			Scope:    rules.Head(HeadRunes),
			Clean:    Clean,
			Validate: func(s string) bool { return e.Valid(s, true) },
		}
	}
	e.chinese = rules.NewRunner(
		zh("hksar_cfi", `(香港特別行政區高等法院原訟法庭)`),
		zh("hksar_high_court", `(香港特別行政區高等法院)`),
		zh("spaced_hksar_cfi", `(香\s*港\s*特\s*別\s*行\s*政\s*區\s*高等法院原訟法庭)`),
		zh("spaced_hksar", `(香\s*港\s*特\s*別\s*行\s*政\s*區\s*高等法院)`),
		zh("cfi", `(高等法院原訟法庭)`),
		zh("high_court_cfi", `(.*?高等法院.*?原訟法庭)`),
		zh("high_court_any", `(.*?高等法院.*?法庭)`),
	)
	return e
}

// Extract implements detector.Extractor.
func (e *Extractor) Extract(in detector.Input) string {
	done := e.Track(in.FileName)
	runner := e.english
	if in.Chinese() {
		runner = e.chinese
	}
	var v string
	if res, ok := runner.First(in.Text); ok {
		e.Logger().Debug("court name matched", zap.String("rule", res.Rule))
		v = res.Value
	}
	done(v)
	return v
}

// Clean collapses whitespace, joins spaced-out Chinese headings and cuts
// anything that follows the heading.
func Clean(s string) string {
	c := rules.CollapseSpace(s)
	c = spacedHKSAR.ReplaceAllString(c, "香港特別行政區")
	c = hksarGap.ReplaceAllString(c, "香港特別行政區高等法院")
	c = pageTail.ReplaceAllString(c, "")
	c = ruleTail.ReplaceAllString(c, "")
	c = englishTail.ReplaceAllString(c, "")
	c = chineseTail.ReplaceAllString(c, "")
	return strings.TrimSpace(c)
}

// Valid checks a cleaned court name against the lexicon for its language.
func (e *Extractor) Valid(name string, chinese bool) bool {
	n := rules.RuneLen(name)
	if n < minLen || n > maxLen {
		return false
	}
	lang := "english"
	if chinese {
		lang = "chinese"
	}
	words := e.lex.CourtWordsFor(lang)
	fold := !chinese

	if !lexicon.ContainsAny(name, words.Required, fold) {
		return false
	}
	if lexicon.ContainsAny(name, words.Bad, fold) {
		return false
	}
	if lexicon.ContainsAny(name, words.Good, fold) {
		return true
	}
	return n <= words.MaxLength
}
