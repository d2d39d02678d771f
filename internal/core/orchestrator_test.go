// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package core

import (
	"testing"

	"judgment-extract/internal/detector"
	"judgment-extract/internal/record"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleJudgment = "IN THE HIGH COURT OF THE HONG KONG SPECIAL ADMINISTRATIVE REGION\n" +
	"Action No: HCA 1234/2023\n" +
	"BETWEEN\n" +
	"ABC LIMITED\n" +
	"Plaintiff\n" +
	"AND\n" +
	"XYZ LIMITED\n" +
	"Defendant\n" +
	"Before: Hon. Justice Smith\n" +
	"Date of Hearing: 12 May 2023"

func TestExtractEndToEnd(t *testing.T) {
	rec := New(Options{}, nil).Extract(record.RawDocument{Text: sampleJudgment, FileName: "/tmp/judgments/sample.pdf"})

	assert.Equal(t, "ABC LIMITED", rec.Get(record.FieldPlaintiff))
	assert.Equal(t, "XYZ LIMITED", rec.Get(record.FieldDefendant))
	assert.Contains(t, rec.Get(record.FieldJudge), "Smith")
	assert.Contains(t, rec.Get(record.FieldTrialDate), "12 May 2023")
	assert.Contains(t, rec.Get(record.FieldCourtName), "HIGH COURT")
	assert.Contains(t, rec.Get(record.FieldCaseNumber), "1234")
	assert.Equal(t, "english", rec.Get(record.FieldLanguage))
	assert.Equal(t, "GENERIC", rec.Get(record.FieldDocumentType))
	assert.Equal(t, "sample.pdf", rec.Get(record.FieldFileName))
	assert.Equal(t, "/tmp/judgments/sample.pdf", rec.Get(record.FieldFilePath))
	assert.True(t, rec.Frozen())
}

func TestExtractEveryFieldPresent(t *testing.T) {
	rec := New(Options{}, nil).Extract(record.RawDocument{Text: sampleJudgment})
	m := rec.Map()
	for _, f := range record.OutputFields {
		_, ok := m[f]
		assert.True(t, ok, f)
	}
	for _, f := range record.LabelFields {
		assert.Equal(t, record.Unknown, rec.Get(f))
	}
}

func TestExtractIdempotent(t *testing.T) {
	o := New(Options{}, nil)
	doc := record.RawDocument{Text: sampleJudgment, FileName: "HCA001234_2023.pdf"}
	assert.True(t, o.Extract(doc).Equal(o.Extract(doc)))
}

func TestExtractEmptyText(t *testing.T) {
	rec := New(Options{}, nil).Extract(record.RawDocument{Text: "  \n ", FileName: "DCCJ000001_2020.pdf"})

	for _, f := range record.ExtractedFields {
		assert.Equal(t, record.NotFound, rec.Get(f), f)
	}
	assert.Equal(t, "english", rec.Get(record.FieldLanguage))
	assert.Equal(t, "DCCJ", rec.Get(record.FieldDocumentType))
	assert.Equal(t, "DCCJ000001_2020.pdf", rec.Get(record.FieldFileName))
	assert.True(t, rec.Frozen())
}

func TestExtractFieldSelection(t *testing.T) {
	o := New(Options{Fields: []string{"judge"}}, nil)
	require.Equal(t, []string{record.FieldJudge}, o.Enabled())

	rec := o.Extract(record.RawDocument{Text: sampleJudgment})
	assert.Contains(t, rec.Get(record.FieldJudge), "Smith")
	assert.Equal(t, record.NotFound, rec.Get(record.FieldPlaintiff))
	assert.Equal(t, record.NotFound, rec.Get(record.FieldTrialDate))
}

type panicking struct{}

func (panicking) Field() string                  { return record.FieldJudge }
func (panicking) Extract(detector.Input) string { panic("boom") }

func TestExtractRecoversFromPanic(t *testing.T) {
	o := New(Options{}, nil)
	o.extractors[record.FieldJudge] = panicking{}

	rec := o.Extract(record.RawDocument{Text: sampleJudgment})
	assert.Equal(t, record.NotFound, rec.Get(record.FieldJudge))
	assert.Equal(t, "ABC LIMITED", rec.Get(record.FieldPlaintiff))
}

func TestExtractCorrigendum(t *testing.T) {
	text := "CORRIGENDUM\n" + sampleJudgment + "\n" +
		"Please note the following corrigendum in the Judgment dated 12 May 2023:\n" +
		"At page 3, line 4, \"Mr Chan\" be corrected to \"Mr Chen\".\n" +
		"Date of Corrigendum: 20 May 2023\n"

	rec := New(Options{}, nil).Extract(record.RawDocument{Text: text, FileName: "HCA001234A_2023.pdf"})

	assert.Equal(t, "Corrigendum", rec.Get(record.FieldDocumentType))
	assert.Equal(t, CorrigendumCaseType, rec.Get(record.FieldCaseType))
	assert.Equal(t, CorrigendumResult, rec.Get(record.FieldJudgmentResult))
	assert.Equal(t, "", rec.Get(record.FieldClaimAmount))
	assert.Equal(t, "", rec.Get(record.FieldJudgmentAmount))
	assert.Equal(t, "", rec.Get(record.FieldJudge))
	assert.Equal(t, "Judgment", rec.Get(record.FieldCorrectedDocType))
	assert.Equal(t, "12 May 2023", rec.Get(record.FieldOriginalDate))
	assert.Equal(t, "20 May 2023", rec.Get(record.FieldCorrigendumDate))
	assert.Equal(t, "Mr Chan → Mr Chen; Mr Chen", rec.Get(record.FieldCorrection))
	assert.Contains(t, rec.Get(record.FieldCaseNumber), "1234")
}

func TestCorrigendumSummaryDefaults(t *testing.T) {
	tests := []struct {
		text string
		want string
	}{
		{"The names of counsel are added.", "The names of counsel are added"},
		{"Counsel names were added.", "添加律师姓名"},
		{"A typographical error is corrected.", "文字更正"},
		{"Formatting amended.", "格式或内容更正"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractCorrigendumDetails(tt.text).Summary)
		})
	}
}
