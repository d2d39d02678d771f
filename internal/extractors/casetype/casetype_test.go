// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package casetype

import (
	"strings"
	"testing"

	"judgment-extract/internal/detector"
	"judgment-extract/internal/language"

	"github.com/stretchr/testify/assert"
)

func TestEnglishSections(t *testing.T) {
	text := "Introduction\n" +
		"This is an application by the plaintiff for summary judgment against the defendant.\n" +
		"The claim arises from a loan agreement made in 2019.\n" +
		"The defendant denies liability.\n\n"

	got := NewExtractor(nil).Extract(detector.Input{Text: text, Language: language.English})
	assert.Equal(t,
		"This is an application by the plaintiff for summary judgment against the defendant. "+
			"The claim arises from a loan agreement made in 2019. The defendant denies liability"+
			" | application by the plaintiff for summary judgment against the defendant",
		got)
}

func TestLongParagraphFallback(t *testing.T) {
	text := strings.Repeat("The parties were in dispute over the delivery terms. ", 5)

	got := NewExtractor(nil).Extract(detector.Input{Text: text, Language: language.English})
	assert.True(t, strings.HasPrefix(got, "The parties were in dispute"), got)
	assert.True(t, strings.HasSuffix(got, "delivery terms"), got)
	assert.NotContains(t, got, " | ")
}

func TestChineseSections(t *testing.T) {
	text := "背景：\n" +
		"原告人於二零一九年向被告人借出款項，雙方簽訂貸款協議。\n" +
		"被告人其後未有依期還款。\n" +
		"原告人遂入稟法院追討欠款及利息。\n\n"

	got := NewExtractor(nil).Extract(detector.Input{Text: text, Language: language.Chinese})
	assert.Equal(t, "原告人於二零一九年向被告人借出款項，雙方簽訂貸款協議。 被告人其後未有依期還款。 原告人遂入稟法院追討欠款及利息。", got)
}

func TestNothingFound(t *testing.T) {
	e := NewExtractor(nil)
	assert.Equal(t, "", e.Extract(detector.Input{Language: language.English}))
	assert.Equal(t, "", e.Extract(detector.Input{Text: "Short text.", Language: language.English}))
}

func TestCombine(t *testing.T) {
	segments := []Segment{
		{Text: "low weight passage", Weight: 2},
		{Text: "high weight passage about the loan agreement", Weight: 9},
		{Text: "high weight passage about the loan agreement, repeated", Weight: 5},
		{Text: "middle weight passage", Weight: 5},
	}
	assert.Equal(t,
		"high weight passage about the loan agreement | middle weight passage | low weight passage",
		Combine(segments, MaxEnglish))
}

func TestCombineBudgetSkipsOversized(t *testing.T) {
	segments := []Segment{
		{Text: strings.Repeat("a", 60), Weight: 10},
		{Text: strings.Repeat("b", 100), Weight: 9},
		{Text: strings.Repeat("c", 30), Weight: 8},
	}
	assert.Equal(t, strings.Repeat("a", 60)+" | "+strings.Repeat("c", 30), Combine(segments, 100))
}

func TestCombineMaxParts(t *testing.T) {
	var segments []Segment
	for _, s := range []string{"one", "two", "three", "four", "five", "six", "seven"} {
		segments = append(segments, Segment{Text: s, Weight: 1})
	}
	assert.Equal(t, "one | two | three | four | five", Combine(segments, MaxEnglish))
}
