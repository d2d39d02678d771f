// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package amount

import (
	"regexp"
	"strconv"
	"strings"

	"judgment-extract/internal/detector"
	"judgment-extract/internal/rules"
)

const number = `\d[\d,]*(?:\.\d+)?`

const scale = `(?:\s*(?:million|billion|thousand))?`

// Patterns with longer spans come first. A later pattern never yields a
// candidate overlapping one already found.
var englishPatterns = compile(
	`(?:the\s+)?sum of\s+HK\$`+number+scale,
	`principal sum of\s+HK\$`+number+scale,
	`outstanding balance of\s+USD?\s*`+number+scale,
	`(?:the\s+)?amount of\s+USD?\s*`+number+scale,
	`HK\$`+number+`\s+(?:plus|together with|and)\s+interest`,
	`\b(?:Hong Kong|US|United States)\s+Dollars?\s*`+number,
	`HK\$`+number+scale,
	`US\$`+number+scale,
	`\bUSD?\s*`+number+scale,
	`\bRMB\s*`+number+scale,
	number+`\s*(?:Hong Kong Dollars|US Dollars|USD|HKD)`,
	number+scale+`\s*(?:dollars?|USD|HKD)\b`,
	`\$`+number+scale,
	`\d{1,3}(?:,\d{3})+(?:\.\d+)?`,
)

var chinesePatterns = compile(
	`(?:港幣|港币|美金|美元|人民幣|人民币)\s*`+number+`(?:萬|万|億|亿)?`,
	number+`\s*(?:萬|万|億|亿)\s*(?:港元|美元|元)`,
	number+`\s*(?:港元|美元|人民币|人民幣)`,
)

func compile(patterns ...string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, len(patterns))
	for i, p := range patterns {
		out[i] = regexp.MustCompile(`(?i)` + p)
	}
	return out
}

var (
	numberToken = regexp.MustCompile(number)
	million     = regexp.MustCompile(`(?i)\bmillion\b`)
	billion     = regexp.MustCompile(`(?i)\bbillion\b`)
	thousand    = regexp.MustCompile(`(?i)\bthousand\b`)
)

// FindCandidates locates monetary amounts in section and attaches their
// context windows. Chinese documents are also searched with the Chinese
// currency forms.
func FindCandidates(section string, chinese bool, ce *detector.ContextExtractor) []detector.Candidate {
	patterns := englishPatterns
	if chinese {
		patterns = append(append([]*regexp.Regexp{}, chinesePatterns...), englishPatterns...)
	}
	total := rules.RuneLen(section)
	if total == 0 {
		return nil
	}

	var spans [][2]int
	overlaps := func(s, e int) bool {
		for _, sp := range spans {
			if s < sp[1] && e > sp[0] {
				return true
			}
		}
		return false
	}

	var out []detector.Candidate
	for _, re := range patterns {
		for _, loc := range re.FindAllStringIndex(section, -1) {
			if overlaps(loc[0], loc[1]) {
				continue
			}
			raw := section[loc[0]:loc[1]]
			value, currency, ok := Parse(raw)
			if !ok {
				continue
			}
			spans = append(spans, [2]int{loc[0], loc[1]})
			out = append(out, detector.Candidate{
				Raw:      raw,
				Value:    value,
				Currency: currency,
				Position: loc[0],
				Relative: float64(rules.RuneLen(section[:loc[0]])) / float64(total),
				Context:  ce.ExtractContext(section, loc[0], loc[1]),
			})
		}
	}
	return out
}

// Parse reads the currency and value of a matched amount, applying
// million/billion/thousand and 萬/億 multipliers.
func Parse(raw string) (float64, detector.Currency, bool) {
	num := numberToken.FindString(raw)
	if num == "" {
		return 0, "", false
	}
	value, err := strconv.ParseFloat(strings.ReplaceAll(num, ",", ""), 64)
	if err != nil || value <= 0 {
		return 0, "", false
	}

	switch {
	case million.MatchString(raw):
		value *= 1e6
	case billion.MatchString(raw):
		value *= 1e9
	case thousand.MatchString(raw):
		value *= 1e3
	case strings.ContainsAny(raw, "萬万"):
		value *= 1e4
	case strings.ContainsAny(raw, "億亿"):
		value *= 1e8
	}
	return value, currencyOf(raw), true
}

func currencyOf(raw string) detector.Currency {
	upper := strings.ToUpper(raw)
	switch {
	case strings.Contains(upper, "HK") || strings.Contains(raw, "港"):
		return detector.CurrencyHKD
	case strings.Contains(upper, "USD") || strings.Contains(upper, "US$") ||
		strings.Contains(upper, "US ") || strings.Contains(raw, "美"):
		return detector.CurrencyUSD
	case strings.Contains(upper, "RMB") || strings.Contains(raw, "人民"):
		return detector.CurrencyRMB
	}
	return detector.CurrencyUnknown
}

// Rollup summarizes candidates as one figure: the total when they all share
// a currency, otherwise the largest single amount. It returns "" for no
// candidates.
func Rollup(candidates []detector.Candidate) string {
	if len(candidates) == 0 {
		return ""
	}
	currencies := make(map[detector.Currency]bool)
	sum := 0.0
	largest := candidates[0]
	for _, c := range candidates {
		currencies[c.Currency] = true
		sum += c.Value
		if c.Value > largest.Value {
			largest = c
		}
	}
	if len(currencies) == 1 {
		return formatMoney(candidates[0].Currency, sum)
	}
	return formatMoney(largest.Currency, largest.Value)
}

// formatMoney renders value rounded to whole units with thousands separators.
func formatMoney(currency detector.Currency, value float64) string {
	digits := strconv.FormatFloat(value, 'f', 0, 64)
	var b strings.Builder
	b.WriteString(string(currency))
	for i, r := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	return b.String()
}
