// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package party extracts plaintiffs and defendants.
//
// English judgments list parties in a BETWEEN block, split into the
// plaintiff and defendant sections by the first AND. District Court civil
// judgments (DCCJ), and others printed without a BETWEEN block, often put
// each name directly above its role instead.
// Chinese judgments use either a narrative form ("原告人甲起訴第一被告人乙")
// or labelled lines.
package party

import (
	"regexp"
	"strings"

	"judgment-extract/internal/detector"
	"judgment-extract/internal/doctype"
	"judgment-extract/internal/extractors"
	"judgment-extract/internal/lexicon"
	"judgment-extract/internal/record"
	"judgment-extract/internal/rules"

	"go.uber.org/zap"
)

// Side selects which party an extractor looks for.
type Side int

const (
	Plaintiff Side = iota
	Defendant
)

var (
	betweenBlock = regexp.MustCompile(`(?ism)BETWEEN\s*(.*?)\s*(?:Before:|_{10}|^[ \t]*Date\b|主審)`)
	sectionSplit = regexp.MustCompile(`(?i)\s+AND\s+`)
	underscores  = regexp.MustCompile(`(?s)_{5,}.*$`)
	headingWord  = regexp.MustCompile(`(?i)^(?:BETWEEN|AND)\s+`)
	nonHanPrefix = regexp.MustCompile(`^[^\p{Han}]*`)
	colonPrefix  = regexp.MustCompile(`^\s*[：:]\s*`)
	onlyDigits   = regexp.MustCompile(`^\d+\s*$`)
	hanName      = regexp.MustCompile(`^[\p{Han}·]+$`)
	zhNumerals   = map[string]int{"一": 1, "二": 2, "三": 3, "四": 4, "五": 5, "六": 6, "七": 7, "八": 8, "九": 9, "十": 10}
)

// Extractor finds the parties on one side of the action.
type Extractor struct {
	extractors.Base
	side       Side
	role       string
	zhRole     string
	lex        *lexicon.Lexicon
	layers     []layer
	roleSuffix *regexp.Regexp
	adjacent   []*regexp.Regexp

	zhNarrative *rules.Runner
	zhOrdinal   *regexp.Regexp
	zhDirect    []*regexp.Regexp
	zhLabelled  *rules.Runner
}

// NewExtractor creates a party extractor for one side.
func NewExtractor(side Side, logger *zap.Logger) *Extractor {
	role, zhRole, field := "Plaintiff", "原告人", record.FieldPlaintiff
	if side == Defendant {
		role, zhRole, field = "Defendant", "被告人", record.FieldDefendant
	}
	x := &Extractor{
		Base:       extractors.NewBase(strings.ToLower(role)+"_extractor", field, logger),
		side:       side,
		role:       role,
		zhRole:     zhRole,
		lex:        lexicon.Default(),
		layers:     layersFor(role),
		roleSuffix: regexp.MustCompile(`(?i)\s*` + role + `\s*$`),
	}
	x.adjacent = []*regexp.Regexp{
		regexp.MustCompile(`(?m)([A-Z][A-Z\s&\.,\(\)]+?)\s*\n\s*` + role + `\s*(?:\n|$)`),
		regexp.MustCompile(`(?m)([A-Z][A-Z\s&\.,\(\)]+?)\s+` + role + `\s*(?:\n|$)`),
		regexp.MustCompile(`([A-Z][A-Z\s&\.,\(\)\-]+?)\s*\n\s*` + role),
		regexp.MustCompile(`([A-Z][A-Z\s&\.,\(\)\-]+?)\s+` + role),
	}
	if side == Plaintiff {
		x.buildChinesePlaintiff()
	} else {
		x.buildChineseDefendant()
	}
	return x
}

// Extract implements detector.Extractor.
func (x *Extractor) Extract(in detector.Input) string {
	done := x.Track(in.FileName)
	var v string
	if in.Chinese() {
		v = x.extractChinese(in.Text)
	} else {
		v = Format(x.Entities(in.Text, in.DocType))
	}
	done(v)
	return v
}

// Entities returns the English parties for this side.
func (x *Extractor) Entities(text, docType string) []Entity {
	if docType == doctype.DCCJ {
		if found := x.labelAdjacent(text); len(found) > 0 {
			x.Logger().Debug("label-adjacent parties", zap.Int("count", len(found)))
			return found
		}
	}
	section := x.section(text)
	if section == "" {
		if docType == doctype.Generic {
			return x.labelAdjacent(text)
		}
		return nil
	}
	if found := x.extractOrdinal(section); len(found) > 0 {
		return found
	}
	return x.simpleParty(section)
}

// section returns this side's part of the BETWEEN block.
func (x *Extractor) section(text string) string {
	m := betweenBlock.FindStringSubmatch(text)
	if m == nil {
		return ""
	}
	block := strings.TrimSpace(m[1])
	loc := sectionSplit.FindStringIndex(block)
	if loc == nil {
		return ""
	}
	if x.side == Plaintiff {
		return strings.TrimSpace(block[:loc[0]])
	}
	return strings.TrimSpace(underscores.ReplaceAllString(block[loc[1]:], ""))
}

// labelAdjacent collects names printed right before the bare role word.
func (x *Extractor) labelAdjacent(text string) []Entity {
	for _, re := range x.adjacent {
		var found []Entity
		for _, m := range re.FindAllStringSubmatch(text, -1) {
			name := rules.CollapseSpace(m[1])
			name = headingWord.ReplaceAllString(name, "")
			name = leadingAnd.ReplaceAllString(name, "")
			if n := rules.RuneLen(name); n > 3 && n < 100 && !x.lex.IsPartyStopword(name) {
				found = append(found, Entity{Name: name, Role: x.role})
			}
		}
		if len(found) > 0 {
			return uniqueNames(found)
		}
	}
	return nil
}

func (x *Extractor) buildChinesePlaintiff() {
	narrative := func(name, pattern string) rules.PatternRule {
		return rules.PatternRule{
			Name:    name,
			Pattern: regexp.MustCompile(pattern),
			Group:   1,
			Clean: func(s string) string {
				return strings.TrimSpace(nonHanPrefix.ReplaceAllString(rules.CollapseSpace(s), ""))
			},
			Validate: func(s string) bool { n := rules.RuneLen(s); return n >= 2 && n <= 50 },
		}
	}
	x.zhNarrative = rules.NewRunner(
		narrative("of_plaintiff_sues", `之原告人([^起訴\n]+?)(?:女士|先生)?起訴`),
		narrative("plaintiff_sues", `原告人([^起訴\n]+?)(?:女士|先生)?起訴`),
		narrative("applicant_applies", `申請人([^申請\n]+?)(?:女士|先生)?申請`),
	)
	x.zhLabelled = rules.NewRunner(
		x.labelled("latin_next_line", `原告人\s*\n\s*([A-Za-z\s,]+?)(?:\n|\s*及)`, 200),
		x.labelled("next_line", `原告人\s*\n\s*([^\n]+?)(?:\s*第|\s*被告|\s*_)`, 200),
		x.labelled("colon", `(?:第一原告人|原告人)\s*[：:]\s*([^\n第被]+)`, 200),
		x.labelled("latin_inline", `(?:第一原告人|原告人)\s*([A-Za-z\s,\.]+?)(?:\s*第|\s*被告|\s*及)`, 200),
		x.labelled("plaintiff", `原告[：:]\s*([^\n]+)`, 200),
		x.labelled("applicant", `申請人[：:]\s*([^\n]+)`, 200),
		x.labelled("appellant", `上訴人[：:]\s*([^\n]+)`, 200),
	)
}

func (x *Extractor) buildChineseDefendant() {
	x.zhOrdinal = regexp.MustCompile(`第([一二三四五六七八九十])被告人([^，、。第\n]+?)(?:女士|先生)?(?:[，、。\n]|$)`)
	for _, n := range []string{"一", "二", "三", "四"} {
		x.zhDirect = append(x.zhDirect, regexp.MustCompile(`第`+n+`被告人[：:\s]*([^，、。第\n]+?)(?:女士|先生)?(?:[，、。\n]|$)`))
	}
	x.zhLabelled = rules.NewRunner(
		x.labelled("latin_first", `第一被告人\s*\n?\s*([A-Za-z\s,]+?)(?:\s*第二被告人|\s*第三被告人|\s*_)`, 500),
		x.labelled("colon", `(?:第一被告人|被告人)\s*[：:]\s*([^\n第原]+)`, 500),
		x.labelled("defendant_or_respondent", `(?:被告|被申請人)\s*[：:]\s*([^\n]+)`, 500),
		x.labelled("respondent_on_appeal", `被上訴人[：:]\s*([^\n]+)`, 500),
		x.labelled("latin_inline", `(?:第一被告人|被告人)\s*([A-Za-z\s,]+?)(?:\n|第二|第三|原告|Before)`, 500),
	)
}

func (x *Extractor) labelled(name, pattern string, maxLen int) rules.PatternRule {
	return rules.PatternRule{
		Name:    name,
		Pattern: regexp.MustCompile(pattern),
		Group:   1,
		Clean: func(s string) string {
			return colonPrefix.ReplaceAllString(rules.CollapseSpace(s), "")
		},
		Validate: func(s string) bool {
			n := rules.RuneLen(s)
			if hanName.MatchString(s) {
				return n >= 2 && n <= 30
			}
			return n > 3 && n < maxLen && !onlyDigits.MatchString(s)
		},
	}
}

func (x *Extractor) extractChinese(text string) string {
	if x.side == Plaintiff {
		if res, ok := x.zhNarrative.First(text); ok {
			return res.Value
		}
	} else if found := x.chineseDefendants(text); len(found) > 0 {
		return Format(found)
	}
	if res, ok := x.zhLabelled.First(text); ok {
		return res.Value
	}
	return ""
}

// chineseDefendants reads "第N被告人" entries, first anywhere in the text and
// then through the fixed first-to-fourth patterns.
func (x *Extractor) chineseDefendants(text string) []Entity {
	var found []Entity
	for _, m := range x.zhOrdinal.FindAllStringSubmatch(text, -1) {
		if name := cleanChineseName(m[2], x.lex); name != "" {
			found = append(found, Entity{Name: name, Ordinal: zhNumerals[m[1]], Role: x.zhRole, Chinese: true})
		}
	}
	if len(found) == 0 {
		for i, re := range x.zhDirect {
			if m := re.FindStringSubmatch(text); m != nil {
				if name := cleanChineseName(m[1], x.lex); name != "" {
					found = append(found, Entity{Name: name, Ordinal: i + 1, Role: x.zhRole, Chinese: true})
				}
			}
		}
	}
	return Unique(found)
}
