// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package classifier turns the raw evidence passages of an extraction record
// into normalized labels. The rule classifier is deterministic; remote
// classifiers live in subpackages and share the label vocabulary and response
// schema defined here.
package classifier

import (
	"context"
	"strings"

	"judgment-extract/internal/record"
)

// Judgment result labels. Anything else is coerced to record.Unknown.
const (
	ResultWin                = "Win"
	ResultLose               = "Lose"
	ResultAppealDismissed    = "Appeal Dismissed"
	ResultJudgmentAffirmed   = "Judgment Affirmed"
	ResultPlaintiffWithdrawn = "Plaintiff Withdrawn"
)

// ResultLabels is the closed set of judgment result labels.
var ResultLabels = []string{
	ResultWin, ResultLose, ResultAppealDismissed, ResultJudgmentAffirmed, ResultPlaintiffWithdrawn,
}

// CaseTypeLabels are the suggested case categories.
var CaseTypeLabels = []string{
	"Contract Dispute",
	"Trust Dispute",
	"Appeal",
	"Setting Aside Application",
	"Security for Costs Application",
	"Mareva Injunction Discharge Application",
	"Commercial Dispute",
	"Debt Recovery",
	"Amendment Application",
	"Miscellaneous Proceedings",
	"Civil Action",
}

// Evidence is what a classifier sees of one judgment.
type Evidence struct {
	CaseType       string
	JudgmentResult string
	Lawyer         string
	ClaimAmount    string
	JudgmentAmount string
	// Hints carries identifying fields such as the case number and parties.
	Hints map[string]string
}

// hintFields are copied from a record into Evidence.Hints.
var hintFields = []string{
	record.FieldCaseNumber, record.FieldPlaintiff, record.FieldDefendant,
	record.FieldJudge, record.FieldLanguage, record.FieldFileName,
}

// EvidenceFrom collects the evidence fields of rec.
func EvidenceFrom(rec *record.Record) Evidence {
	ev := Evidence{
		CaseType:       rec.Get(record.FieldCaseType),
		JudgmentResult: rec.Get(record.FieldJudgmentResult),
		Lawyer:         rec.Get(record.FieldLawyer),
		ClaimAmount:    rec.Get(record.FieldClaimAmount),
		JudgmentAmount: rec.Get(record.FieldJudgmentAmount),
		Hints:          make(map[string]string, len(hintFields)),
	}
	for _, f := range hintFields {
		if v := rec.Get(f); v != "" {
			ev.Hints[f] = v
		}
	}
	return ev
}

// Labels are the normalized classification outputs.
type Labels struct {
	CaseType         string `json:"case_type"`
	JudgmentResult   string `json:"judgment_result"`
	PlaintiffLawyer  string `json:"plaintiff_lawyer"`
	DefendantLawyer  string `json:"defendant_lawyer"`
	NormalizedAmount string `json:"normalized_amount"`
}

// UnknownLabels has every label set to record.Unknown.
func UnknownLabels() Labels {
	return Labels{
		CaseType:         record.Unknown,
		JudgmentResult:   record.Unknown,
		PlaintiffLawyer:  record.Unknown,
		DefendantLawyer:  record.Unknown,
		NormalizedAmount: record.Unknown,
	}
}

// Classifier assigns labels to evidence.
type Classifier interface {
	Classify(ctx context.Context, ev Evidence) (Labels, error)
}

// Normalize trims every label, maps blanks to record.Unknown and coerces a
// judgment result outside ResultLabels to record.Unknown. Result labels are
// matched case-insensitively.
func (l Labels) Normalize() Labels {
	clean := func(s string) string {
		s = strings.TrimSpace(s)
		if s == "" || strings.EqualFold(s, record.Unknown) || strings.EqualFold(s, "null") {
			return record.Unknown
		}
		return s
	}
	out := Labels{
		CaseType:         clean(l.CaseType),
		JudgmentResult:   record.Unknown,
		PlaintiffLawyer:  clean(l.PlaintiffLawyer),
		DefendantLawyer:  clean(l.DefendantLawyer),
		NormalizedAmount: clean(l.NormalizedAmount),
	}
	result := strings.TrimSpace(l.JudgmentResult)
	for _, label := range ResultLabels {
		if strings.EqualFold(result, label) {
			out.JudgmentResult = label
			break
		}
	}
	return out
}

// Apply returns a frozen copy of rec with the label fields set from labels.
// rec itself is not modified.
func Apply(rec *record.Record, labels Labels) *record.Record {
	labels = labels.Normalize()
	m := rec.Map()
	m[record.FieldCaseTypeLabel] = labels.CaseType
	m[record.FieldJudgmentResultLabel] = labels.JudgmentResult
	m[record.FieldPlaintiffLawyer] = labels.PlaintiffLawyer
	m[record.FieldDefendantLawyer] = labels.DefendantLawyer
	m[record.FieldNormalizedAmount] = labels.NormalizedAmount
	return record.FromMap(m)
}
