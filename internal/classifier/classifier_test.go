// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package classifier

import (
	"context"
	"testing"

	"judgment-extract/internal/record"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResultLabel(t *testing.T) {
	tests := []struct {
		text string
		want string
	}{
		{"the application for summary judgment is granted with costs to the plaintiff", ResultWin},
		{"Judgment entered for the plaintiff in the sum of HK$200,000", ResultWin},
		{"The appeal is dismissed with costs", ResultAppealDismissed},
		{"The application is dismissed", ResultLose},
		{"The decision below is affirmed", ResultJudgmentAffirmed},
		{"The action is discontinued by consent", ResultPlaintiffWithdrawn},
		{"本庭駁回原告的全部申請", ResultLose},
		{"駁回上訴", ResultAppealDismissed},
		{"", record.Unknown},
		{"adjourned to a date to be fixed", record.Unknown},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			assert.Equal(t, tt.want, ResultLabel(tt.text))
		})
	}
}

func TestCaseTypeLabel(t *testing.T) {
	assert.Equal(t, record.Unknown, CaseTypeLabel("  "))
	assert.Equal(t, "Appeal", CaseTypeLabel("This is an appeal against the decision of the Master"))
	assert.Equal(t, "Security for Costs Application", CaseTypeLabel("an application for security for costs"))
	assert.Equal(t, "Contract Dispute", CaseTypeLabel("The plaintiff claims for breach of a sale agreement"))
	assert.Equal(t, "Civil Action", CaseTypeLabel("The plaintiff sues in tort"))
}

func TestSplitCounsel(t *testing.T) {
	passage := "Mr John Lee, instructed by Messrs Wong & Co, for the plaintiff | " +
		"Ms Mary Chan, instructed by Baker LLP, for the 1st defendant"
	p, d := SplitCounsel(passage)
	assert.Equal(t, "Mr John Lee (Wong & Co)", p)
	assert.Equal(t, "Ms Mary Chan (Baker LLP)", d)

	p, d = SplitCounsel("Mr Peter Ho, instructed by ABC Solicitors, for the plaintiff. The defendant in person.")
	assert.Equal(t, "Mr Peter Ho (ABC Solicitors)", p)
	assert.Equal(t, "In person", d)

	p, d = SplitCounsel("張大文大律師代表原告")
	assert.Equal(t, "張大文大律師", p)
	assert.Equal(t, "", d)
}

func TestRuleClassifier(t *testing.T) {
	ev := Evidence{
		CaseType:       "The plaintiff claims repayment of a loan",
		JudgmentResult: "Judgment entered for the plaintiff",
		Lawyer:         "Mr John Lee, instructed by Messrs Wong & Co, for the plaintiff",
		JudgmentAmount: "HK$200,000 | the defendant shall pay HK$200,000",
	}
	labels, err := NewRuleClassifier(nil).Classify(context.Background(), ev)
	require.NoError(t, err)
	assert.Equal(t, Labels{
		CaseType:         "Debt Recovery",
		JudgmentResult:   ResultWin,
		PlaintiffLawyer:  "Mr John Lee (Wong & Co)",
		DefendantLawyer:  record.Unknown,
		NormalizedAmount: "HK$200,000",
	}, labels)
}

func TestLeadingAmountNeedsRollup(t *testing.T) {
	assert.Equal(t, record.Unknown, leadingAmount("the sum claimed | another window"))
	assert.Equal(t, record.Unknown, leadingAmount(""))
	assert.Equal(t, "USD300,000", leadingAmount("USD300,000 | evidence"))
}

func TestNormalize(t *testing.T) {
	got := Labels{
		CaseType:         " Appeal ",
		JudgmentResult:   "appeal dismissed",
		PlaintiffLawyer:  "",
		DefendantLawyer:  "null",
		NormalizedAmount: "Unknown",
	}.Normalize()
	assert.Equal(t, "Appeal", got.CaseType)
	assert.Equal(t, ResultAppealDismissed, got.JudgmentResult)
	assert.Equal(t, record.Unknown, got.PlaintiffLawyer)
	assert.Equal(t, record.Unknown, got.DefendantLawyer)
	assert.Equal(t, record.Unknown, got.NormalizedAmount)

	assert.Equal(t, record.Unknown, Labels{JudgmentResult: "Partial Win"}.Normalize().JudgmentResult)
}

func TestApplyReturnsFrozenCopy(t *testing.T) {
	rec := record.New()
	require.True(t, rec.Set(record.FieldCaseNumber, "HCA 1234/2023"))
	rec.Freeze()

	out := Apply(rec, Labels{JudgmentResult: ResultWin, CaseType: "Appeal"})
	assert.True(t, out.Frozen())
	assert.Equal(t, "HCA 1234/2023", out.Get(record.FieldCaseNumber))
	assert.Equal(t, ResultWin, out.Get(record.FieldJudgmentResultLabel))
	assert.Equal(t, "Appeal", out.Get(record.FieldCaseTypeLabel))
	assert.Equal(t, record.Unknown, out.Get(record.FieldPlaintiffLawyer))
	assert.Equal(t, record.Unknown, rec.Get(record.FieldJudgmentResultLabel))
}

func TestEvidenceFrom(t *testing.T) {
	rec := record.New()
	rec.Set(record.FieldLawyer, "Mr A, instructed by B, for the plaintiff")
	rec.Set(record.FieldCaseNumber, "HCA 1/2023")
	ev := EvidenceFrom(rec)
	assert.Equal(t, "Mr A, instructed by B, for the plaintiff", ev.Lawyer)
	assert.Equal(t, "HCA 1/2023", ev.Hints[record.FieldCaseNumber])
	_, ok := ev.Hints[record.FieldJudge]
	assert.False(t, ok)
}

func TestParseLabels(t *testing.T) {
	content := "```json\n{\"case_type\":\"Appeal\",\"judgment_result\":\"Appeal Dismissed\"," +
		"\"plaintiff_lawyer\":\"\",\"defendant_lawyer\":\"Mr B (C & Co)\",\"normalized_amount\":\"unknown\"," +
		"\"judgment_relationships\":\"(Appellant, pay costs to, Respondent, 100%)\"}\n```"
	labels, err := ParseLabels(content)
	require.NoError(t, err)
	assert.Equal(t, ResultAppealDismissed, labels.JudgmentResult)
	assert.Equal(t, "Mr B (C & Co)", labels.DefendantLawyer)
	assert.Equal(t, record.Unknown, labels.PlaintiffLawyer)

	_, err = ParseLabels(`{"case_type":"Appeal"}`)
	assert.Error(t, err)

	_, err = ParseLabels(`{"case_type":1,"judgment_result":"","plaintiff_lawyer":"","defendant_lawyer":"","normalized_amount":""}`)
	assert.Error(t, err)

	_, err = ParseLabels("not json at all")
	assert.Error(t, err)
}
