// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package judgmentresult collects the dispositive passages near the end of a
// judgment. Mapping them to an outcome label is the classifier's job.
package judgmentresult

import (
	"regexp"

	"judgment-extract/internal/detector"
	"judgment-extract/internal/extractors"
	"judgment-extract/internal/record"
	"judgment-extract/internal/rules"

	"go.uber.org/zap"
)

const (
	// MaxParts is the most passages returned.
	MaxParts = 4
	// MaxEnglish and MaxChinese cap the output in runes.
	MaxEnglish = 2500
	MaxChinese = 2000

	minSectionRunes = 100
)

// Section is the closing part of the judgment: the last 15%, or the last
// 5000 runes when that is shorter.
var Section = rules.Tail(0.85, 5000)

func between(lo, hi int) func(string) bool {
	return func(s string) bool {
		n := rules.RuneLen(s)
		return n >= lo && n <= hi
	}
}

const (
	orderPriority    = 2
	decisionPriority = 1
)

func rule(name, pattern string, priority, lo, hi int) rules.PatternRule {
	return rules.PatternRule{
		Name:       name,
		Pattern:    regexp.MustCompile(pattern),
		Group:      1,
		Priority:   priority,
		MaxMatches: 2,
		Clean:      rules.CleanPassage,
		Validate:   between(lo, hi),
	}
}

func order(name, pattern string) rules.PatternRule {
	return rule(name, pattern, orderPriority, 20, 1000)
}

func decision(name, pattern string) rules.PatternRule {
	return rule(name, pattern, decisionPriority, 15, 800)
}

var englishRunner = rules.NewRunner(
	order("order_heading", `(?is)(?:ORDERS?|JUDGMENT|CONCLUSION|DISPOSITION)\s*[:.]?\s*\n((?:[^\n]+\n?){2,12})`),
	order("court_orders", `(?is)(?:IT IS ORDERED|\bI ORDER|THE COURT ORDERS?)\s*[:.]?\s*((?:[^\n]+\n?){1,8})`),
	order("for_these_reasons", `(?is)(?:For (?:these reasons|the foregoing reasons)|Accordingly|Therefore)\s*[,.]?\s*([^\n.]{30,500})`),
	order("i_make_order", `(?is)(\bI (?:make an )?Order[^.]*?(?:that|in terms of)[^.]*?[.\n])`),
	order("i_grant", `(?is)(\bI (?:would )?(?:make|grant|allow|dismiss|refuse)[^.]*?(?:order|application|claim)[^.]*?[.\n])`),
	order("based_on_above", `(?is)(\bBased on the above[^.]*?Order[^.]*?[.\n])`),
	order("in_conclusion", `(?is)(\bIn conclusion[^.]*?(?:order|grant|dismiss|allow)[^.]*?[.\n])`),
	order("for_the_reasons", `(?is)(\bFor the (?:above )?reasons?[^.]*?(?:order|grant|dismiss|allow)[^.]*?[.\n])`),

	decision("disposition_verb", `(?i)((?:dismiss|grant|refuse|allow|upheld|affirmed).*?(?:application|claim|appeal|action))`),
	decision("judgment_entered", `(?i)(judgment\s+(?:be\s+)?entered\s+for[^.\n]*)`),
	decision("i_verb", `(?i)(\bI\s+(?:dismiss|grant|order|hold|refuse|allow)[^.\n]*)`),
	decision("application_is", `(?i)((?:The\s+)?(?:application|appeal|claim)\s+(?:is|shall be)\s+(?:granted|dismissed|refused|allowed)[^.\n]*)`),
	decision("defendant_pays", `(?i)((?:The\s+)?defendants?.*?(?:pay|liable|responsible)[^.]*?(?:costs|damages|compensation)[^.]*?[.\n])`),
	decision("plaintiff_entitled", `(?i)((?:The\s+)?plaintiffs?.*?(?:entitled|succeed)[^.]*?[.\n])`),
	decision("summary_judgment", `(?i)(summary judgment.*?(?:granted|entered|allowed)[^.]*?[.\n])`),
	decision("costs", `(?i)(costs.*?(?:assessed|taxed|awarded)[^.]*?[.\n])`),
	decision("interest", `(?i)(interest.*?(?:awarded|granted|payable)[^.]*?[.\n])`),
	decision("application_result", `(?i)(application.*?(?:granted|dismissed|refused|allowed)[^.]*?[.\n])`),
)

func zhOrder(name, pattern string) rules.PatternRule {
	return rule(name, pattern, orderPriority, 10, 800)
}

func zhDecision(name, pattern string) rules.PatternRule {
	return rule(name, pattern, decisionPriority, 8, 600)
}

var chineseRunner = rules.NewRunner(
	zhOrder("order_heading", `(?:命令|判令|裁定|判決|判决)\s*[：:.]?\s*\n((?:[^\n]+\n?){2,10})`),
	zhOrder("court_orders", `(?:本庭|法庭|法院)\s*(?:命令|判令|裁定|判決|判决)\s*([^\n。]{15,400})`),
	zhOrder("conclusion", `(?:綜上所述|因此|故此|據此)\s*[，,：:.]*\s*([^\n。]{20,400})`),

	zhDecision("disposition_verb", `((?:批准|拒絕|駁回|允許|准許|不准)[^\n]*?(?:申請|請求|上訴))`),
	zhDecision("outcome", `((?:勝訴|敗訴|得直|不得直)[^\n。]*)`),
	zhDecision("withdrawal", `((?:撤回|撤訴)[^\n。]*)`),
)

// Extractor collects judgment-result evidence.
type Extractor struct {
	extractors.Base
}

// NewExtractor creates a judgment-result extractor.
func NewExtractor(logger *zap.Logger) *Extractor {
	return &Extractor{Base: extractors.NewBase("judgment_result_extractor", record.FieldJudgmentResult, logger)}
}

// Extract implements detector.Extractor.
func (e *Extractor) Extract(in detector.Input) string {
	done := e.Track(in.FileName)
	var v string
	if section := Section(in.Text); rules.RuneLen(section) >= minSectionRunes {
		runner, prefix, limit := englishRunner, 30, MaxEnglish
		if in.Chinese() {
			runner, prefix, limit = chineseRunner, 20, MaxChinese
		}
		var parts []string
		for _, res := range runner.Collect(section) {
			parts = append(parts, res.Value)
		}
		parts = rules.DedupeByPrefix(parts, prefix)
		if len(parts) > MaxParts {
			parts = parts[:MaxParts]
		}
		e.Logger().Debug("judgment result passages", zap.Int("count", len(parts)))
		v = rules.JoinCapped(parts, limit)
	}
	done(v)
	return v
}
