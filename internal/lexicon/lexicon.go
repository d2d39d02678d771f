// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package lexicon holds the stop-word and keyword lists used by the
// extractors. The lists live in an embedded YAML file so they can be tuned
// without touching extraction code.
package lexicon

import (
	_ "embed"
	"fmt"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed data/lexicon.yaml
var lexiconYAML []byte

// RoleWords are the keyword sets for one amount role.
type RoleWords struct {
	Keywords  []string `yaml:"keywords"`
	Context   []string `yaml:"context"`
	Negatives []string `yaml:"negatives"`
}

// AmountWords holds claim and judgment keyword sets for one language.
type AmountWords struct {
	Claim    RoleWords `yaml:"claim"`
	Judgment RoleWords `yaml:"judgment"`
}

// CourtWords drives court-name validation for one language.
type CourtWords struct {
	Required  []string `yaml:"required"`
	Bad       []string `yaml:"bad"`
	Good      []string `yaml:"good"`
	MaxLength int      `yaml:"max_length"`
}

// Lexicon is the parsed word-list file.
type Lexicon struct {
	Language struct {
		ChineseKeywords []string `yaml:"chinese_keywords"`
	} `yaml:"language"`
	Normalizer struct {
		CriticalKeywords []string `yaml:"critical_keywords"`
		ContentKeywords  []string `yaml:"content_keywords"`
		VerifyKeywords   []string `yaml:"verify_keywords"`
		FallbackKeywords []string `yaml:"fallback_keywords"`
	} `yaml:"normalizer"`
	Party struct {
		Stopwords      []string `yaml:"stopwords"`
		ChineseRejects []string `yaml:"chinese_rejects"`
	} `yaml:"party"`
	Judge struct {
		Invalid []string `yaml:"invalid"`
	} `yaml:"judge"`
	Court struct {
		English CourtWords `yaml:"english"`
		Chinese CourtWords `yaml:"chinese"`
	} `yaml:"court"`
	Amount struct {
		English AmountWords `yaml:"english"`
		Chinese AmountWords `yaml:"chinese"`
	} `yaml:"amount"`
	Lawyer struct {
		EnglishKeywords []string `yaml:"english_keywords"`
		LineKeywords    []string `yaml:"line_keywords"`
		ChineseKeywords []string `yaml:"chinese_keywords"`
	} `yaml:"lawyer"`
	CaseType struct {
		EnglishKeywords []string `yaml:"english_keywords"`
		ChineseKeywords []string `yaml:"chinese_keywords"`
	} `yaml:"case_type"`
	Corrigendum struct {
		Indicators []string `yaml:"indicators"`
	} `yaml:"corrigendum"`

	partyStop    map[string]bool
	judgeInvalid map[string]bool
}

var (
	defaultLexicon *Lexicon
	loadOnce       sync.Once
	loadError      error
)

// Load parses the embedded lexicon once.
func Load() (*Lexicon, error) {
	loadOnce.Do(func() {
		defaultLexicon, loadError = Parse(lexiconYAML)
	})
	return defaultLexicon, loadError
}

// Default returns the embedded lexicon and panics if it is malformed, which
// can only happen when the embedded file itself is broken.
func Default() *Lexicon {
	l, err := Load()
	if err != nil {
		panic(err)
	}
	return l
}

// Parse decodes a lexicon document.
func Parse(data []byte) (*Lexicon, error) {
	var l Lexicon
	if err := yaml.Unmarshal(data, &l); err != nil {
		return nil, fmt.Errorf("failed to parse lexicon: %w", err)
	}
	if len(l.Party.Stopwords) == 0 || len(l.Amount.English.Claim.Keywords) == 0 {
		return nil, fmt.Errorf("lexicon is missing party stopwords or amount keywords")
	}
	l.partyStop = toSet(l.Party.Stopwords)
	l.judgeInvalid = toSet(l.Judge.Invalid)
	return &l, nil
}

func toSet(words []string) map[string]bool {
	m := make(map[string]bool, len(words))
	for _, w := range words {
		m[strings.ToLower(strings.TrimSpace(w))] = true
	}
	return m
}

// IsPartyStopword reports whether name is a bare stop-word rather than a party.
func (l *Lexicon) IsPartyStopword(name string) bool {
	return l.partyStop[strings.ToLower(strings.TrimSpace(name))]
}

// IsInvalidJudgeName reports whether name is a function word or legal term
// that the judge patterns sometimes capture.
func (l *Lexicon) IsInvalidJudgeName(name string) bool {
	return l.judgeInvalid[strings.ToLower(strings.TrimSpace(name))]
}

// AmountWordsFor returns the keyword sets for a language ("chinese" or
// anything else for English).
func (l *Lexicon) AmountWordsFor(language string) AmountWords {
	if language == "chinese" {
		return l.Amount.Chinese
	}
	return l.Amount.English
}

// CourtWordsFor returns court validation words for a language.
func (l *Lexicon) CourtWordsFor(language string) CourtWords {
	if language == "chinese" {
		return l.Court.Chinese
	}
	return l.Court.English
}

// ContainsAny reports whether s contains any of words. English comparisons
// are done on upper-cased text when fold is set.
func ContainsAny(s string, words []string, fold bool) bool {
	if fold {
		s = strings.ToUpper(s)
	}
	for _, w := range words {
		if fold {
			w = strings.ToUpper(w)
		}
		if w != "" && strings.Contains(s, w) {
			return true
		}
	}
	return false
}

// CountAny counts how many of words occur in s.
func CountAny(s string, words []string) int {
	n := 0
	for _, w := range words {
		if w != "" && strings.Contains(s, w) {
			n++
		}
	}
	return n
}
