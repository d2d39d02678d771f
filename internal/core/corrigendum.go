// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package core

import (
	"fmt"
	"regexp"
	"strings"

	"judgment-extract/internal/lexicon"
)

// Fixed values written for corrigendum documents.
const (
	CorrigendumCaseType = "Corrigendum Document"
	CorrigendumResult   = "N/A - Corrigendum"

	maxCorrections = 2
)

// Summaries used when no explicit correction is quoted.
const (
	summaryNamesAdded = "添加律师姓名"
	summaryTextFix    = "文字更正"
	summaryGeneric    = "格式或内容更正"
)

var (
	originalDatePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)corrigendum in the (Judgment|Decision) dated (\d{1,2} \w+ \d{4})`),
		regexp.MustCompile(`(?i)in the (Judgment|Decision) dated (\d{1,2} \w+ \d{4})`),
	}
	corrigendumDate = regexp.MustCompile(`Date of Corrigendum:\s*(\d{1,2} \w+ \d{4})`)

	correctionPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?is)At page \d+.*?"([^"]+)" be corrected to "([^"]+)"`),
		regexp.MustCompile(`(?i)should read:?\s*"([^"]+)"`),
		regexp.MustCompile(`(?is)The names of.*?are added`),
		regexp.MustCompile(`(?i)corrected to\s*"([^"]+)"`),
	}
)

// CorrigendumDetails describes what a corrigendum corrects.
type CorrigendumDetails struct {
	CorrectedDocType string
	OriginalDate     string
	CorrigendumDate  string
	Summary          string
}

// IsCorrigendum reports whether text carries one of the corrigendum
// indicators. Matching is case-sensitive.
func IsCorrigendum(text string, lex *lexicon.Lexicon) bool {
	return lexicon.ContainsAny(text, lex.Corrigendum.Indicators, false)
}

// ExtractCorrigendumDetails reads the corrected document, its date, the
// corrigendum date and up to two quoted corrections.
func ExtractCorrigendumDetails(text string) CorrigendumDetails {
	var d CorrigendumDetails
	for _, re := range originalDatePatterns {
		if m := re.FindStringSubmatch(text); m != nil {
			d.CorrectedDocType, d.OriginalDate = m[1], m[2]
			break
		}
	}
	if m := corrigendumDate.FindStringSubmatch(text); m != nil {
		d.CorrigendumDate = m[1]
	}

	var corrections []string
	for _, re := range correctionPatterns {
		for _, m := range re.FindAllStringSubmatch(text, maxCorrections) {
			switch len(m) {
			case 3:
				corrections = append(corrections, fmt.Sprintf("%s → %s", m[1], m[2]))
			case 2:
				corrections = append(corrections, m[1])
			default:
				corrections = append(corrections, m[0])
			}
		}
	}

	if len(corrections) == 0 {
		lc := strings.ToLower(text)
		switch {
		case strings.Contains(lc, "names") && strings.Contains(lc, "added"):
			corrections = append(corrections, summaryNamesAdded)
		case strings.Contains(lc, "corrected"):
			corrections = append(corrections, summaryTextFix)
		default:
			corrections = append(corrections, summaryGeneric)
		}
	}
	if len(corrections) > maxCorrections {
		corrections = corrections[:maxCorrections]
	}
	d.Summary = strings.Join(corrections, "; ")
	return d
}
