// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package judge extracts the presiding judge, master or recorder.
package judge

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

// HeadRunes bounds the region searched for title and "Before:" forms.
// Signature blocks are searched in the whole text.
const HeadRunes = 15000

// Rule tiers. A lower tier is only consulted when every rule above it
// produced nothing.
const (
	tierFallback = iota + 1
	tierBefore
	tierSpecial
)

const (
	// fullName is two or more capitalized words on one line.
	fullName = `[A-Z][A-Za-z]+(?:[ \t]+[A-Z][A-Za-z]+)+`
	// anyName is one or more capitalized words on one line.
	anyName = `[A-Z][A-Za-z]+(?:[ \t]+[A-Z][A-Za-z]+)*`
	// nameEnd closes a titled name: "in Court", "in Chambers" or the line end.
	nameEnd = `(?:[ \t]+(?i:in[ \t]+(?:court|chambers))|[ \t]*(?:\n|$))`
)

var (
	shortToken = regexp.MustCompile(`^[A-Za-z]{1,2}$`)
	hasDigit   = regexp.MustCompile(`\d`)
	punctOnly  = regexp.MustCompile(`^[\pP\pS\s]+$`)
	roman      = regexp.MustCompile(`^[IVXLCDM]+$`)
	hasLetter  = regexp.MustCompile(`[A-Za-z]`)
	hasUpper   = regexp.MustCompile(`[A-Z]`)

	titleStrips = []*regexp.Regexp{
		regexp.MustCompile(`^\(|\)$`),
		regexp.MustCompile(`(?i)^(?:(?:mr|mrs|ms|madam)\.?\s+)?recorder\s+`),
		regexp.MustCompile(`(?i)^master\s+`),
		regexp.MustCompile(`(?i)^(?:deputy\s+(?:high\s+court\s+|district\s+)?judge|dhcj)\s+`),
		regexp.MustCompile(`(?i)^(?:the\s+)?(?:hon(?:ourable)?\.?\s+)?(?:(?:mr|mrs|ms|madam)\.?\s+)?justice\s+`),
		regexp.MustCompile(`(?i)(?:,\s*|\s+)SC$`),
		regexp.MustCompile(`\s+J\.?$`),
		regexp.MustCompile(`(?i)\s+(?:sitting\s+)?(?:in|at)\s+(?:court|chambers)$`),
		regexp.MustCompile(`(?i)^(?:the|hon\.?|honourable)\s+`),
	}

	zhTitles = regexp.MustCompile(`^(?:高等法院原訟法庭|高等法院上訴法庭|區域法院)?(?:暫委|特委|副)?(?:法官|聆案官|司法常務官)|(?:法官|聆案官)$`)
	zhName   = regexp.MustCompile(`^[\p{Han}·]{2,10}$`)
)

// Extractor finds the judge.
type Extractor struct {
	extractors.Base
	lex     *lexicon.Lexicon
	english *rules.Runner
	chinese *rules.Runner
}

// NewExtractor creates a judge extractor.
func NewExtractor(logger *zap.Logger) *Extractor {
	e := &Extractor{
		Base: extractors.NewBase("judge_extractor", record.FieldJudge, logger),
		lex:  lexicon.Default(),
	}

	rule := func(tier int, name, pattern string, scope rules.Scope) rules.PatternRule {
		return rules.PatternRule{
			Name:     name,
			Pattern:  regexp.MustCompile(pattern),
			Group:    1,
			Scope:    scope,
			Priority: tier,
			Clean:    e.Clean,
		}
	}
	head := rules.Head(HeadRunes)
	signature := func(name, pattern string) rules.PatternRule {
		r := rule(tierFallback, name, pattern, rules.All)
		r.Validate = func(s string) bool { return rules.RuneLen(s) >= 5 && strings.Contains(s, " ") }
		return r
	}

	e.english = rules.NewRunner(
		rule(tierSpecial, "recorder",
			`(?i:(?:mr|ms)\.?\s+)?(?i:recorder)\s+(`+fullName+`)(?:[ \t]*,?[ \t]*(?i:sc))?`+nameEnd, head),
		rule(tierSpecial, "master", `\b(?i:master)\s+(`+fullName+`)`+nameEnd, head),
		rule(tierSpecial, "counsel_bracket", `\(([A-Z][A-Za-z]{2,}(?:[ \t]+[A-Z][A-Za-z]+)*)[ \t]*,?[ \t]*(?i:sc)\)`, head),
		rule(tierSpecial, "deputy_judge", `(?i:deputy[ \t]+(?:high[ \t]+court[ \t]+)?judge|dhcj)[ \t]+(`+fullName+`)`+nameEnd, head),

		rule(tierBefore, "before_deputy", `(?i:before)\s*:\s*(?i:deputy\s+(?:high\s+court\s+)?judge)[ \t]+(`+anyName+`)`, head),
		rule(tierBefore, "before_honorific",
			`(?i:before)\s*:\s*(?i:(?:the[ \t]+)?(?:hon(?:ourable)?\.?[ \t]+)?(?:(?:mr|mrs|ms|madam)\.?[ \t]+)?(?:justice[ \t]+)?)(`+anyName+`)`, head),

		rule(tierFallback, "justice", `(?i:justice)[ \t]+(`+fullName+`)`, head),
		rule(tierFallback, "hon_j", `(?i:the[ \t]+hon(?:ourable)?\.?)[ \t]+(`+fullName+`)[ \t]+J\b`, head),
		signature("signature_judge", `\((`+fullName+`)\s*\)\s*(?i:(?:deputy\s+high\s+court\s+)?judge\s+of\s+the\s+court)`),
		signature("signature_recorder", `\((`+fullName+`)\s*\)\s*(?i:recorder\s+of\s+the\s+high\s+court)`),
	)

	zh := func(name, pattern string) rules.PatternRule {
		return rules.PatternRule{
			Name:     name,
			Pattern:  regexp.MustCompile(pattern),
			Group:    1,
			Scope:    head,
			Clean:    CleanChinese,
			Validate: zhName.MatchString,
		}
	}
	e.chinese = rules.NewRunner(
		zh("presiding", `主審法官[：:]\s*([^\n]+)`),
		zh("trial", `審訊法官[：:]\s*([^\n]+)`),
		zh("titled", `(?:高等法院原訟法庭法官|法官)[ \t]*([^\n\s]{2,10})`),
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
		e.Logger().Debug("judge matched", zap.String("rule", res.Rule))
		v = res.Value
	}
	done(v)
	return v
}

// Clean strips judicial titles from a captured English name and returns ""
// for anything that is not a plausible name.
func (e *Extractor) Clean(raw string) string {
	s := rules.CollapseSpace(raw)
	if e.rejected(s) {
		return ""
	}
	for _, re := range titleStrips {
		s = strings.TrimSpace(re.ReplaceAllString(s, ""))
	}
	if n := rules.RuneLen(s); n < 3 || n > 50 {
		return ""
	}
	if !hasLetter.MatchString(s) || !hasUpper.MatchString(s) || e.lex.IsInvalidJudgeName(s) {
		return ""
	}
	return s
}

func (e *Extractor) rejected(s string) bool {
	return s == "" ||
		shortToken.MatchString(s) ||
		hasDigit.MatchString(s) ||
		punctOnly.MatchString(s) ||
		roman.MatchString(s) ||
		e.lex.IsInvalidJudgeName(s)
}

// CleanChinese removes court and judicial titles around a Chinese name.
func CleanChinese(raw string) string {
	s := strings.Join(strings.Fields(raw), "")
	return zhTitles.ReplaceAllString(s, "")
}
