// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package casenumber extracts the action number of a judgment.
package casenumber

import (
	"fmt"
	"regexp"
	"strings"

	"judgment-extract/internal/detector"
	"judgment-extract/internal/extractors"
	"judgment-extract/internal/record"
	"judgment-extract/internal/rules"

	"go.uber.org/zap"
)

// HeadRunes bounds the region searched in English documents.
const HeadRunes = 15000

var (
	splitNO      = regexp.MustCompile(`(?i)\bACTION\s+N\s*O\b`)
	dottedNO     = regexp.MustCompile(`(?i)\bNO\s*[.:]\s*`)
	splitYear    = regexp.MustCompile(`(?i)(\bOF\s+)(\d{2,3})\s+(\d{1,2})\b`)
	completeForm = regexp.MustCompile(`(?i)^((?:CIVIL\s+)?ACTION)\s+NO\s+(\d+[A-Z]?)\s+OF\s+(\d{4})\b`)
	yearToken    = regexp.MustCompile(`20\d{2}`)
	numberToken  = regexp.MustCompile(`(?i)\bNO\s*[.:]?\s*(\d+[A-Z]?)\b`)
)

// Extractor finds the case number.
type Extractor struct {
	extractors.Base
	english *rules.Runner
	chinese *rules.Runner
	span    *rules.Runner
}

// NewExtractor creates a case-number extractor.
func NewExtractor(logger *zap.Logger) *Extractor {
	e := &Extractor{Base: extractors.NewBase("case_number_extractor", record.FieldCaseNumber, logger)}

	e.english = rules.NewRunner(rules.PatternRule{
		Name:    "hca_slash",
		Pattern: regexp.MustCompile(`(?i)HCA\s*(\d+[A-Z]?)/(\d{4})`),
		Scope:   rules.Head(HeadRunes),
		Build:   func(sub []string) string { return canonical("ACTION", sub[1], sub[2]) },
	})

	e.span = rules.NewRunner(
		rules.PatternRule{Name: "appeal_year_number", Pattern: regexp.MustCompile(`民事上訴案件\s*\d{4}年第\s*[^號]+\s*號`), Clean: rules.CollapseSpace},
		rules.PatternRule{Name: "year_number", Pattern: regexp.MustCompile(`\d{4}年第\s*[^號]+\s*號`), Clean: rules.CollapseSpace},
		rules.PatternRule{Name: "labelled", Pattern: regexp.MustCompile(`案件編號[：:]\s*[^\n]+`), Clean: rules.CollapseSpace},
	)

	head := func(name, pattern string) rules.PatternRule {
		return rules.PatternRule{
			Name:    name,
			Pattern: regexp.MustCompile(pattern),
			Scope:   rules.Head(HeadRunes),
			Clean:   rules.CollapseSpace,
		}
	}
	e.chinese = rules.NewRunner(
		head("high_court_civil", `高院民事訴訟\s*\d+\s*年\s*第\s*\d+[A-Z]?\s*號`),
		head("civil_action", `(?:高院)?民事訴訟案件(?:編號)?\s*\d+\s*年\s*第\s*\d+[A-Z]?\s*號`),
		head("action_no", `ACTION NO\.?\s*\d+[A-Z]?\s+OF\s+\d{4}`),
		head("hca_compact", `HCA\d{6}[A-Z]?_\d{4}`),
		head("hca_slash", `HCA\s+\d+[A-Z]?/\d{4}`),
	)
	return e
}

// Extract implements detector.Extractor.
func (e *Extractor) Extract(in detector.Input) string {
	done := e.Track(in.FileName)
	var v string
	if in.Chinese() {
		v = e.extractChinese(in.Text)
	} else {
		v = e.extractEnglish(in.Text)
	}
	if v == "" {
		e.Logger().Info("case number not found", zap.String("file", in.FileName))
	}
	done(v)
	return v
}

func (e *Extractor) extractEnglish(text string) string {
	if v := e.fromActionLine(rules.Head(HeadRunes)(text)); v != "" {
		return v
	}
	if res, ok := e.english.First(text); ok {
		return res.Value
	}
	return ""
}

// fromActionLine walks lines starting with ACTION, repairing OCR damage.
func (e *Extractor) fromActionLine(text string) string {
	lines := rules.Lines(text)
	for i, raw := range lines {
		line := strings.TrimSpace(raw)
		upper := strings.ToUpper(line)
		if !strings.HasPrefix(upper, "ACTION") && !strings.HasPrefix(upper, "CIVIL ACTION") {
			continue
		}
		e.Logger().Debug("action line", zap.Int("line", i), zap.String("text", line))

		if v := Complete(Repair(line)); v != "" {
			return v
		}
		if i+1 < len(lines) {
			if v := Complete(Repair(line + " " + strings.TrimSpace(lines[i+1]))); v != "" {
				return v
			}
		}

		num := numberToken.FindStringSubmatch(Repair(line))
		if num == nil {
			continue
		}
		for j := max(0, i-3); j < min(len(lines), i+4); j++ {
			if year := yearToken.FindString(lines[j]); year != "" {
				return canonical("ACTION", num[1], year)
			}
		}
	}
	return ""
}

// Repair fixes OCR splits in an action line: "ACTION N O" becomes
// "ACTION NO", "NO ." becomes "NO " and a year split as "20 23" is joined.
func Repair(line string) string {
	s := rules.CollapseSpace(line)
	s = splitNO.ReplaceAllString(s, "ACTION NO")
	s = dottedNO.ReplaceAllString(s, "NO ")
	s = splitYear.ReplaceAllStringFunc(s, func(m string) string {
		sub := splitYear.FindStringSubmatch(m)
		if len(sub[2])+len(sub[3]) != 4 {
			return m
		}
		return sub[1] + sub[2] + sub[3]
	})
	return rules.CollapseSpace(s)
}

// Complete returns the canonical "ACTION NO <num> OF <year>" form when line
// starts with a complete action number, or "".
func Complete(line string) string {
	m := completeForm.FindStringSubmatch(line)
	if m == nil {
		return ""
	}
	return canonical(rules.CollapseSpace(m[1]), m[2], m[3])
}

func canonical(prefix, number, year string) string {
	return fmt.Sprintf("%s NO %s OF %s", strings.ToUpper(prefix), strings.ToUpper(number), year)
}

var (
	courtEnd = []*regexp.Regexp{
		regexp.MustCompile(`香港特別行政區.*?高等法院.*?上訴法庭`),
		regexp.MustCompile(`高等法院.*?原訟法庭`),
		regexp.MustCompile(`民事上訴案件`),
		regexp.MustCompile(`雜項案件`),
	}
	partyStart = regexp.MustCompile(`原告人|被告人|申請人|上訴人`)
)

func (e *Extractor) extractChinese(text string) string {
	if span := courtPartySpan(text); span != "" {
		if res, ok := e.span.First(span); ok {
			return res.Value
		}
	}
	if res, ok := e.chinese.First(text); ok {
		return res.Value
	}
	return ""
}

// courtPartySpan returns the text between the end of the court heading and
// the first party marker.
func courtPartySpan(text string) string {
	end := 0
	for _, re := range courtEnd {
		if loc := re.FindStringIndex(text); loc != nil && loc[1] > end {
			end = loc[1]
		}
	}
	if end == 0 {
		return ""
	}
	loc := partyStart.FindStringIndex(text[end:])
	if loc == nil {
		return ""
	}
	return text[end : end+loc[0]]
}
