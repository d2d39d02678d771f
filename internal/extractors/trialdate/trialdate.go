// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package trialdate extracts the hearing, trial or judgment date line.
package trialdate

import (
	"regexp"
	"strings"

	"judgment-extract/internal/detector"
	"judgment-extract/internal/extractors"
	"judgment-extract/internal/record"
	"judgment-extract/internal/rules"

	"go.uber.org/zap"
)

// HeadRunes bounds the region searched for the date line.
const HeadRunes = 15000

const maxDateLen = 150

// Trailing noise removed from a captured date, applied in order.
var cleanups = []*regexp.Regexp{
	regexp.MustCompile(`\s*-\s*\d+\s*-\s*`),
	regexp.MustCompile(`\s*第\s*\d+\s*[页頁].*$`),
	regexp.MustCompile(`(?i)\s+(?:and|&|及)\s*$`),
	regexp.MustCompile(`(?i)\s*(?:Date of|Before|Hon\.|\bJ\.|in Chambers?|in Court).*$`),
	regexp.MustCompile(`(?i)\s*(?:Reasons? for|REASONS).*$`),
	regexp.MustCompile(`(?i)\s*(?:DECISION|JUDGMENT|D E C I S I O N|J U D G M E N T).*$`),
	regexp.MustCompile(`\s*(?:原告人|被告人|判案書|主審法官).*$`),
	regexp.MustCompile(`\s*(?:進一步陳詞日期|最後書面陳詞日期).*$`),
	regexp.MustCompile(`\s*_{5,}.*$`),
	regexp.MustCompile(`(?i)\s*(?:Introduction|This is an? application|made by).*$`),
}

var (
	trailingSep  = regexp.MustCompile(`[,\s]+$`)
	leadingSep   = regexp.MustCompile(`^[,\s]+`)
	sentenceStop = regexp.MustCompile(`[.!?]\s+`)
	pageRef      = regexp.MustCompile(`(?i)page|頁|第.*號`)
	dateToken    = regexp.MustCompile(`\d{1,2}[-/]\d{1,2}[-/]\d{4}|\d{4}\s*年\s*\d{1,2}\s*月\s*\d{1,2}\s*日|\d{1,2}\s+\w+\s+\d{4}`)
)

// Extractor finds the trial date.
type Extractor struct {
	extractors.Base
	english *rules.Runner
	chinese *rules.Runner
}

// NewExtractor creates a trial-date extractor.
func NewExtractor(logger *zap.Logger) *Extractor {
	e := &Extractor{Base: extractors.NewBase("trial_date_extractor", record.FieldTrialDate, logger)}

	rule := func(name, pattern string, minLen int) rules.PatternRule {
		return rules.PatternRule{
			Name:     name,
			Pattern:  regexp.MustCompile(pattern),
			Group:    1,
			Scope:    rules.Head(HeadRunes),
			Clean:    Clean,
			Validate: func(s string) bool { return rules.RuneLen(s) > minLen },
		}
	}
	e.english = rules.NewRunner(
		rule("dates_of_hearing", `(?i)Dates of Hearing\s*:?\s*([^\n]+)`, 5),
		rule("date_of_decision", `(?i)Date of Decision\s*:?\s*([^\n]+)`, 5),
		rule("date_of_judgment", `(?i)Date of Judgment\s*:?\s*([^\n]+)`, 5),
		rule("date_of_trial", `(?i)Date of Trial\s*:?\s*([^\n]+)`, 5),
		rule("date_of_hearing", `(?i)Date of Hearing\s*:?\s*([^\n]+)`, 5),
		rule("hearing_date", `(?i)Hearing Date\s*:?\s*([^\n]+)`, 5),
		rule("date_of_any", `(?i)Date of (?:Hearing|Decision|Judgment|Trial|Decision on Costs)\s*:?\s*([^\n]+)`, 5),
	)
	e.chinese = rules.NewRunner(
		rule("hearing", `聆訊日期\s*[：:︰]\s*([^\n]+)`, 3),
		rule("judgment", `判決日期\s*[：:︰]\s*([^\n]+)`, 3),
		rule("reasons", `判案書日期\s*[：:︰]\s*([^\n]+)`, 3),
		rule("trial", `審訊日期\s*[：:︰]\s*([^\n]+)`, 3),
		rule("sitting", `開庭日期\s*[：:︰]\s*([^\n]+)`, 3),
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
		v = res.Value
	}
	done(v)
	return v
}

// Clean strips page markers, trailing headings and boilerplate from a
// captured date line. Overlong captures are cut to their first sentence, and
// a bare date is recovered when page references remain.
func Clean(s string) string {
	c := rules.CollapseSpace(s)
	for _, re := range cleanups {
		c = re.ReplaceAllString(c, "")
	}
	c = trailingSep.ReplaceAllString(c, "")
	c = leadingSep.ReplaceAllString(c, "")

	if rules.RuneLen(c) > maxDateLen {
		if first := sentenceStop.Split(c, 2)[0]; rules.RuneLen(first) > 10 {
			c = first
		} else {
			c = rules.Prefix(c, maxDateLen)
		}
	}
	if pageRef.MatchString(c) {
		if d := dateToken.FindString(c); d != "" {
			c = d
		}
	}
	return strings.TrimSpace(c)
}
