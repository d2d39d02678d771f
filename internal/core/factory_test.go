// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package core

import (
	"testing"

	"judgment-extract/internal/config"
	"judgment-extract/internal/record"
)

func TestParseFieldsToRun_All(t *testing.T) {
	cases := []struct {
		name  string
		input []string
	}{
		{"empty slice enables all", []string{}},
		{"explicit all enables all", []string{"all"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			result := ParseFieldsToRun(tc.input)
			if len(result) != len(record.ExtractedFields) {
				t.Fatalf("expected %d fields, got %d", len(record.ExtractedFields), len(result))
			}
			for k, v := range result {
				if !v {
					t.Errorf("expected field %q to be enabled, got false", k)
				}
			}
		})
	}
}

func TestParseFieldsToRun_Specific(t *testing.T) {
	result := ParseFieldsToRun([]string{"judge", "lawyer"})
	if !result[record.FieldJudge] {
		t.Error("judge should be enabled")
	}
	if !result[record.FieldLawyer] {
		t.Error("lawyer should be enabled")
	}
	if result[record.FieldCaseNumber] {
		t.Error("case_number should not be enabled")
	}
}

func TestParseFieldsToRun_UnknownFieldIgnored(t *testing.T) {
	result := ParseFieldsToRun([]string{"UNKNOWN_FIELD", "judge"})
	if !result[record.FieldJudge] {
		t.Error("judge should be enabled")
	}
	if _, ok := result["unknown_field"]; ok {
		t.Error("unknown field should not be in result")
	}
}

func TestParseFieldsToRun_WhitespaceAndCase(t *testing.T) {
	result := ParseFieldsToRun([]string{" Judge ", " TRIAL_DATE "})
	if !result[record.FieldJudge] {
		t.Error("judge should be enabled after trimming whitespace")
	}
	if !result[record.FieldTrialDate] {
		t.Error("trial_date should be enabled after trimming whitespace")
	}
}

func TestSplitFields(t *testing.T) {
	if got := SplitFields(""); got != nil {
		t.Errorf("expected nil for empty input, got %v", got)
	}
	if got := SplitFields("judge,lawyer"); len(got) != 2 {
		t.Errorf("expected 2 fields, got %v", got)
	}
}

func TestBuildExtractorSet_AllEnabled(t *testing.T) {
	extractors := BuildExtractorSet(ParseFieldsToRun([]string{"all"}), Options{}, nil)

	for _, name := range record.ExtractedFields {
		ex, ok := extractors[name]
		if !ok {
			t.Errorf("expected extractor %q to be present", name)
			continue
		}
		if ex.Field() != name {
			t.Errorf("extractor for %q reports field %q", name, ex.Field())
		}
	}
}

func TestBuildExtractorSet_Filtered(t *testing.T) {
	extractors := BuildExtractorSet(ParseFieldsToRun([]string{"judge", "claim_amount"}), Options{}, nil)

	if len(extractors) != 2 {
		t.Fatalf("expected 2 extractors, got %d", len(extractors))
	}
	if _, ok := extractors[record.FieldClaimAmount]; !ok {
		t.Error("claim_amount extractor should be present")
	}
	if _, ok := extractors[record.FieldJudgmentAmount]; ok {
		t.Error("judgment_amount extractor should not be present")
	}
}

func TestBuildExtractorSet_NoneEnabled(t *testing.T) {
	fields := map[string]bool{
		record.FieldJudge:  false,
		record.FieldLawyer: false,
	}
	if extractors := BuildExtractorSet(fields, Options{}, nil); len(extractors) != 0 {
		t.Errorf("expected empty extractor set, got %d extractors", len(extractors))
	}
}

func TestOptionsFromConfig(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Defaults.Fields = "judge,lawyer"
	cfg.Extraction.HeadRunes = 12000

	opts := OptionsFromConfig(cfg, nil)
	if len(opts.Fields) != 2 || opts.HeadRunes != 12000 {
		t.Errorf("unexpected options from config: %+v", opts)
	}

	profile := &config.Profile{
		Fields:     "case_number",
		Extraction: &config.ExtractionConfig{HeadRunes: 8000},
	}
	opts = OptionsFromConfig(cfg, profile)
	if len(opts.Fields) != 1 || opts.Fields[0] != "case_number" {
		t.Errorf("profile fields should override config, got %v", opts.Fields)
	}
	if opts.HeadRunes != 8000 {
		t.Errorf("profile head runes should override config, got %d", opts.HeadRunes)
	}
	if opts.ChineseRatio != cfg.Extraction.ChineseRatio {
		t.Errorf("chinese ratio should fall through from config, got %v", opts.ChineseRatio)
	}

	if opts := OptionsFromConfig(nil, nil); opts.HeadRunes != 0 || opts.Fields != nil {
		t.Errorf("expected zero options, got %+v", opts)
	}
}
