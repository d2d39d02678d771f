// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package party

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"judgment-extract/internal/lexicon"
	"judgment-extract/internal/rules"
)

// Entity is one named party. Ordinal is zero when the party is unnumbered.
type Entity struct {
	Name    string
	Ordinal int
	Role    string
	Chinese bool
}

// Label renders the entity with its role, "Alice (1st Plaintiff)" or
// "李小明 (第1被告人)".
func (e Entity) Label() string {
	switch {
	case e.Chinese && e.Ordinal > 0:
		return fmt.Sprintf("%s (第%d%s)", e.Name, e.Ordinal, e.Role)
	case e.Chinese:
		return fmt.Sprintf("%s (%s)", e.Name, e.Role)
	case e.Ordinal > 0:
		return fmt.Sprintf("%s (%s %s)", e.Name, Ordinal(e.Ordinal), e.Role)
	default:
		return fmt.Sprintf("%s (%s)", e.Name, e.Role)
	}
}

// Ordinal returns n with its English suffix: 1st, 2nd, 3rd, 11th.
func Ordinal(n int) string {
	if m := n % 100; m >= 10 && m <= 13 {
		return fmt.Sprintf("%dth", n)
	}
	switch n % 10 {
	case 1:
		return fmt.Sprintf("%dst", n)
	case 2:
		return fmt.Sprintf("%dnd", n)
	case 3:
		return fmt.Sprintf("%drd", n)
	}
	return fmt.Sprintf("%dth", n)
}

// Format emits a single party as its bare name and several as labels
// joined by " | ".
func Format(entities []Entity) string {
	switch len(entities) {
	case 0:
		return ""
	case 1:
		return entities[0].Name
	}
	labels := make([]string, len(entities))
	for i, e := range entities {
		labels[i] = e.Label()
	}
	return strings.Join(labels, " | ")
}

// Unique keeps the first party for each name and each ordinal, and at most
// one unnumbered party, then orders by ordinal. Unnumbered parties sort
// first.
func Unique(entities []Entity) []Entity {
	names := make(map[string]bool, len(entities))
	ordinals := make(map[int]bool, len(entities))
	out := make([]Entity, 0, len(entities))
	for _, e := range entities {
		if names[e.Name] || ordinals[e.Ordinal] {
			continue
		}
		names[e.Name] = true
		ordinals[e.Ordinal] = true
		out = append(out, e)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Ordinal < out[j].Ordinal })
	return out
}

// uniqueNames drops repeated names only. Label-adjacent layouts list several
// unnumbered parties for one role.
func uniqueNames(entities []Entity) []Entity {
	seen := make(map[string]bool, len(entities))
	out := make([]Entity, 0, len(entities))
	for _, e := range entities {
		if !seen[e.Name] {
			seen[e.Name] = true
			out = append(out, e)
		}
	}
	return out
}

const namePattern = `([A-Z][A-Za-z\s,\.\(\)&\-'（）]+?(?:\([^)]*\))?(?:（[^）]*）)?)`

var (
	ordinalPattern = `(\d+)(?:st|nd|rd|th)`
	leadingDigit   = regexp.MustCompile(`^\s*\d`)
	leadingAnd     = regexp.MustCompile(`(?i)^(?:and|&)\s+`)
	trailingAnd    = regexp.MustCompile(`(?i)(?:^|\s+)(?:and|&)\s*$`)
	edgeCommas     = regexp.MustCompile(`^[,\s]+|[,\s]+$`)
	hasLetter      = regexp.MustCompile(`[A-Za-z]`)
	allDigits      = regexp.MustCompile(`^\d+$`)
)

// layer is one way of writing ordinal-labelled parties in a section.
type layer struct {
	pattern *regexp.Regexp
	name    int
	ordinal int
	// bare rejects a match immediately followed by a digit.
	bare bool
}

func layersFor(role string) []layer {
	r := regexp.QuoteMeta(role)
	return []layer{
		{pattern: regexp.MustCompile(`(?i)` + namePattern + `\s*\n\s*` + ordinalPattern + `\s+` + r), name: 1, ordinal: 2},
		{pattern: regexp.MustCompile(`(?i)` + namePattern + `\s+` + ordinalPattern + `\s+` + r), name: 1, ordinal: 2},
		{pattern: regexp.MustCompile(`(?i)` + ordinalPattern + `\s+` + r + `[ \t]*\n\s*([A-Z][A-Za-z ,\.\(\)&\-'（）]*)`), name: 2, ordinal: 1},
		{pattern: regexp.MustCompile(`(?i)` + namePattern + `\s+` + r), name: 1, bare: true},
	}
}

// extractOrdinal returns the parties found by the first layer that yields
// any valid name.
func (x *Extractor) extractOrdinal(section string) []Entity {
	for _, l := range x.layers {
		var found []Entity
		for _, loc := range l.pattern.FindAllStringSubmatchIndex(section, -1) {
			if l.bare && leadingDigit.MatchString(section[loc[1]:]) {
				continue
			}
			name := x.cleanName(section[loc[2*l.name]:loc[2*l.name+1]])
			if name == "" {
				continue
			}
			ord := 0
			if l.ordinal > 0 {
				ord, _ = strconv.Atoi(section[loc[2*l.ordinal]:loc[2*l.ordinal+1]])
			}
			found = append(found, Entity{Name: name, Ordinal: ord, Role: x.role})
		}
		if len(found) > 0 {
			return Unique(found)
		}
	}
	return nil
}

// simpleParty treats the whole section as one unnumbered party.
func (x *Extractor) simpleParty(section string) []Entity {
	s := rules.CollapseSpace(section)
	s = x.roleSuffix.ReplaceAllString(s, "")
	s = trailingAnd.ReplaceAllString(s, "")
	s = strings.TrimSpace(s)
	if !x.validName(s) {
		return nil
	}
	return []Entity{{Name: s, Role: x.role}}
}

func (x *Extractor) cleanName(raw string) string {
	s := rules.CollapseSpace(raw)
	s = leadingAnd.ReplaceAllString(s, "")
	s = trailingAnd.ReplaceAllString(s, "")
	s = edgeCommas.ReplaceAllString(s, "")
	if !x.validName(s) {
		return ""
	}
	return s
}

func (x *Extractor) validName(s string) bool {
	n := rules.RuneLen(s)
	if n < 2 || n > 200 {
		return false
	}
	if !hasLetter.MatchString(s) || allDigits.MatchString(s) {
		return false
	}
	return !x.lex.IsPartyStopword(s)
}

var (
	zhHonorific = regexp.MustCompile(`(?:女士|先生|小姐)$`)
	zhEdges     = regexp.MustCompile(`^(?:及|、|，|,|：|:|\s)+|(?:及|、|，|,|\s)+$`)
	zhNoise     = regexp.MustCompile(`^[\s\d，、,]+$`)
)

// cleanChineseName strips honorifics and separators from a Chinese party
// name and rejects representation notes.
func cleanChineseName(raw string, lex *lexicon.Lexicon) string {
	s := rules.CollapseSpace(raw)
	s = zhHonorific.ReplaceAllString(s, "")
	s = zhEdges.ReplaceAllString(s, "")
	if lexicon.ContainsAny(s, lex.Party.ChineseRejects, false) {
		return ""
	}
	if n := rules.RuneLen(s); n < 2 || n > 30 || zhNoise.MatchString(s) {
		return ""
	}
	return s
}
