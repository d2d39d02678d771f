// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package core

import (
	"strings"

	"judgment-extract/internal/config"
	"judgment-extract/internal/detector"
	"judgment-extract/internal/extractors/amount"
	"judgment-extract/internal/extractors/casenumber"
	"judgment-extract/internal/extractors/casetype"
	"judgment-extract/internal/extractors/courtname"
	"judgment-extract/internal/extractors/judge"
	"judgment-extract/internal/extractors/judgmentresult"
	"judgment-extract/internal/extractors/lawyer"
	"judgment-extract/internal/extractors/party"
	"judgment-extract/internal/extractors/trialdate"
	"judgment-extract/internal/record"

	"go.uber.org/zap"
)

// BuildExtractorSet constructs the extractors for the enabled fields. Opts
// carries extractor tuning; its zero value uses the defaults.
func BuildExtractorSet(enabledFields map[string]bool, opts Options, logger *zap.Logger) map[string]detector.Extractor {
	result := make(map[string]detector.Extractor)

	if enabledFields[record.FieldCaseNumber] {
		result[record.FieldCaseNumber] = casenumber.NewExtractor(logger)
	}
	if enabledFields[record.FieldTrialDate] {
		result[record.FieldTrialDate] = trialdate.NewExtractor(logger)
	}
	if enabledFields[record.FieldCourtName] {
		result[record.FieldCourtName] = courtname.NewExtractor(logger)
	}
	if enabledFields[record.FieldPlaintiff] {
		result[record.FieldPlaintiff] = party.NewExtractor(party.Plaintiff, logger)
	}
	if enabledFields[record.FieldDefendant] {
		result[record.FieldDefendant] = party.NewExtractor(party.Defendant, logger)
	}
	if enabledFields[record.FieldJudge] {
		result[record.FieldJudge] = judge.NewExtractor(logger)
	}
	if enabledFields[record.FieldLawyer] {
		result[record.FieldLawyer] = lawyer.NewExtractor(logger).WithTail(opts.LawyerTail)
	}
	if enabledFields[record.FieldCaseType] {
		result[record.FieldCaseType] = casetype.NewExtractor(logger)
	}
	if enabledFields[record.FieldJudgmentResult] {
		result[record.FieldJudgmentResult] = judgmentresult.NewExtractor(logger)
	}
	if enabledFields[record.FieldClaimAmount] {
		result[record.FieldClaimAmount] = amount.NewExtractor(amount.Claim, logger)
	}
	if enabledFields[record.FieldJudgmentAmount] {
		result[record.FieldJudgmentAmount] = amount.NewExtractor(amount.Judgment, logger)
	}

	return result
}

// ParseFieldsToRun converts a slice of field names into an enabled-fields map.
// An empty slice or ["all"] enables every extracted field. Unknown names are
// ignored.
func ParseFieldsToRun(fields []string) map[string]bool {
	result := make(map[string]bool, len(record.ExtractedFields))
	for _, f := range record.ExtractedFields {
		result[f] = false
	}

	if len(fields) == 0 || (len(fields) == 1 && strings.TrimSpace(fields[0]) == "all") {
		for key := range result {
			result[key] = true
		}
		return result
	}

	for _, field := range fields {
		if name := strings.ToLower(strings.TrimSpace(field)); name != "" {
			if _, exists := result[name]; exists {
				result[name] = true
			}
		}
	}

	return result
}

// SplitFields splits a comma-separated -fields value.
func SplitFields(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return strings.Split(s, ",")
}

// OptionsFromConfig builds orchestrator options from the configuration file
// and an optional profile. Either may be nil.
func OptionsFromConfig(cfg *config.Config, profile *config.Profile) Options {
	var opts Options
	if cfg != nil {
		opts.Fields = SplitFields(cfg.Defaults.Fields)
		opts.HeadRunes = cfg.Extraction.HeadRunes
		opts.LawyerTail = cfg.Extraction.LawyerTail
		opts.ChineseRatio = cfg.Extraction.ChineseRatio
	}
	if profile != nil {
		if profile.Fields != "" {
			opts.Fields = SplitFields(profile.Fields)
		}
		if e := profile.Extraction; e != nil {
			if e.HeadRunes > 0 {
				opts.HeadRunes = e.HeadRunes
			}
			if e.LawyerTail > 0 {
				opts.LawyerTail = e.LawyerTail
			}
			if e.ChineseRatio > 0 {
				opts.ChineseRatio = e.ChineseRatio
			}
		}
	}
	return opts
}
