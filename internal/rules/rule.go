// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package rules provides the pattern-rule table used by every field
// extractor: an ordered list of regular expressions, each with the text
// region it reads, a cleaner, a validator and a formatter, evaluated by a
// single first-match-wins runner.
package rules

import (
	"regexp"
	"sort"
)

// PatternRule is one candidate pattern for a field.
type PatternRule struct {
	// Name identifies the rule in debug logs.
	Name string
	// Pattern locates candidates.
	Pattern *regexp.Regexp
	// Group selects the submatch holding the value. Zero means the whole match.
	Group int
	// Scope narrows the text the pattern runs against. Nil reads everything.
	Scope Scope
	// Priority orders rules; higher runs first, ties keep table order.
	Priority int
	// MaxMatches limits how many matches are tried. Zero tries all.
	MaxMatches int
	// Build assembles the raw value from submatches, replacing Group.
	Build func(sub []string) string
	// Accept inspects the text following a match. Returning false skips the
	// match. It stands in for the lookahead assertions RE2 lacks.
	Accept func(rest string) bool
	// Clean normalizes the raw value before validation.
	Clean func(string) string
	// Validate rejects implausible values.
	Validate func(string) bool
	// Format shapes an accepted value for output.
	Format func(string) string
}

// Result is an accepted rule match.
type Result struct {
	Rule  string
	Value string
	// Start is the byte offset of the match within the scoped text.
	Start int
}

// Runner evaluates rules in priority order.
type Runner struct {
	rules []PatternRule
}

// NewRunner sorts rules by descending priority, keeping table order for ties.
func NewRunner(rules ...PatternRule) *Runner {
	sorted := make([]PatternRule, len(rules))
	copy(sorted, rules)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Priority > sorted[j].Priority
	})
	return &Runner{rules: sorted}
}

// Rules returns the rules in evaluation order.
func (r *Runner) Rules() []PatternRule {
	return r.rules
}

// First returns the first accepted value across all rules.
func (r *Runner) First(text string) (Result, bool) {
	for _, rule := range r.rules {
		if res := rule.apply(text, 1); len(res) > 0 {
			return res[0], true
		}
	}
	return Result{}, false
}

// FirstRule returns every accepted value produced by the first rule that
// yields anything. Later rules are not consulted.
func (r *Runner) FirstRule(text string) []Result {
	for _, rule := range r.rules {
		if res := rule.apply(text, 0); len(res) > 0 {
			return res
		}
	}
	return nil
}

// Collect returns accepted values from every rule, in rule order.
func (r *Runner) Collect(text string) []Result {
	var out []Result
	for _, rule := range r.rules {
		out = append(out, rule.apply(text, 0)...)
	}
	return out
}

// apply runs one rule and returns up to limit accepted values (0 = no limit).
func (rule PatternRule) apply(text string, limit int) []Result {
	if rule.Pattern == nil {
		return nil
	}
	scoped := text
	if rule.Scope != nil {
		scoped = rule.Scope(text)
	}
	if scoped == "" {
		return nil
	}

	n := -1
	if rule.MaxMatches > 0 {
		n = rule.MaxMatches
	}

	var out []Result
	for _, loc := range rule.Pattern.FindAllStringSubmatchIndex(scoped, n) {
		if rule.Accept != nil && !rule.Accept(scoped[loc[1]:]) {
			continue
		}
		sub := submatches(scoped, loc)
		var raw string
		switch {
		case rule.Build != nil:
			raw = rule.Build(sub)
		case rule.Group < len(sub):
			raw = sub[rule.Group]
		}
		if rule.Clean != nil {
			raw = rule.Clean(raw)
		}
		if raw == "" {
			continue
		}
		if rule.Validate != nil && !rule.Validate(raw) {
			continue
		}
		if rule.Format != nil {
			raw = rule.Format(raw)
		}
		out = append(out, Result{Rule: rule.Name, Value: raw, Start: loc[0]})
		if limit > 0 && len(out) >= limit {
			break
		}
	}
	return out
}

func submatches(s string, loc []int) []string {
	sub := make([]string, len(loc)/2)
	for i := range sub {
		if loc[2*i] >= 0 {
			sub[i] = s[loc[2*i]:loc[2*i+1]]
		}
	}
	return sub
}
