// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package amount

import (
	"strings"

	"judgment-extract/internal/detector"
	"judgment-extract/internal/lexicon"
	"judgment-extract/internal/rules"
)

// Role is the kind of amount being looked for.
type Role int

const (
	// Claim is the sum the claimant asked for.
	Claim Role = iota
	// Judgment is the sum the court ordered.
	Judgment
)

func (r Role) String() string {
	if r == Judgment {
		return "judgment"
	}
	return "claim"
}

const (
	negativePenalty = 1.5
	positionBonus   = 1.0
)

func wordsFor(role Role, words lexicon.AmountWords) lexicon.RoleWords {
	if role == Judgment {
		return words.Judgment
	}
	return words.Claim
}

// Score rates how strongly a candidate's context window points at role.
// Role keywords add weight by length, generic context words add one each,
// keywords typical of the other role subtract, and a candidate in the part
// of the section where that role usually appears gets a bonus. The result is
// never negative.
func Score(c detector.Candidate, role Role, words lexicon.AmountWords) float64 {
	rw := wordsFor(role, words)
	window := c.Context.Window

	score := rules.KeywordScore(window, rw.Keywords)
	score += float64(rules.CountWords(window, rw.Context))

	lc := strings.ToLower(window)
	for _, neg := range rw.Negatives {
		if neg != "" && strings.Contains(lc, strings.ToLower(neg)) {
			score -= negativePenalty
		}
	}

	switch {
	case role == Judgment && c.Relative > 0.6:
		score += positionBonus
	case role == Claim && c.Relative < 0.4:
		score += positionBonus
	}
	return max(0, score)
}

// annotate records which keywords fired on the candidate's context, for
// debug output.
func annotate(c *detector.Candidate, role Role, words lexicon.AmountWords) {
	rw := wordsFor(role, words)
	lc := strings.ToLower(c.Context.Window)
	c.Context.PositiveKeywords = c.Context.PositiveKeywords[:0]
	c.Context.NegativeKeywords = c.Context.NegativeKeywords[:0]
	for _, k := range rw.Keywords {
		if k != "" && strings.Contains(lc, strings.ToLower(k)) {
			c.Context.PositiveKeywords = append(c.Context.PositiveKeywords, k)
		}
	}
	for _, k := range rw.Negatives {
		if k != "" && strings.Contains(lc, strings.ToLower(k)) {
			c.Context.NegativeKeywords = append(c.Context.NegativeKeywords, k)
		}
	}
	c.Context.ConfidenceImpact = c.Score
}
