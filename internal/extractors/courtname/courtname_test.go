// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package courtname

import (
	"testing"

	"judgment-extract/internal/detector"
	"judgment-extract/internal/language"

	"github.com/stretchr/testify/assert"
)

func TestExtractEnglish(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{
			name: "court of first instance wrapped",
			text: "IN THE HIGH COURT OF THE\nHONG KONG SPECIAL ADMINISTRATIVE REGION\nCOURT OF FIRST INSTANCE\nACTION NO 1 OF 2020",
			want: "HIGH COURT OF THE HONG KONG SPECIAL ADMINISTRATIVE REGION COURT OF FIRST INSTANCE",
		},
		{
			name: "court of appeal",
			text: "IN THE HIGH COURT OF THE HONG KONG SPECIAL ADMINISTRATIVE REGION\nCOURT OF APPEAL\nCIVIL APPEAL NO 5 OF 2021",
			want: "HIGH COURT OF THE HONG KONG SPECIAL ADMINISTRATIVE REGION COURT OF APPEAL",
		},
		{
			name: "high court only",
			text: "IN THE HIGH COURT OF THE HONG KONG SPECIAL ADMINISTRATIVE REGION\nAction No: HCA 1234/2023\nBETWEEN",
			want: "HIGH COURT OF THE HONG KONG SPECIAL ADMINISTRATIVE REGION",
		},
		{
			name: "district court",
			text: "IN THE DISTRICT COURT OF THE\nHONG KONG SPECIAL ADMINISTRATIVE REGION\nCIVIL ACTION NO 12 OF 2022",
			want: "DISTRICT COURT OF THE HONG KONG SPECIAL ADMINISTRATIVE REGION",
		},
		{
			name: "generic court before parties",
			text: "IN THE LABOUR TRIBUNAL COURT\nBETWEEN\nA\nAND\nB",
			want: "LABOUR TRIBUNAL COURT",
		},
		{
			name: "no heading",
			text: "JUDGMENT\nThis is an appeal.",
			want: "",
		},
	}
	e := NewExtractor(nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, e.Extract(detector.Input{Text: tt.text, Language: language.English}))
		})
	}
}

func TestExtractChinese(t *testing.T) {
	e := NewExtractor(nil)
	in := detector.Input{Text: "香 港 特 別 行 政 區\n高等法院原訟法庭\n民事訴訟案件2022年第342號", Language: language.Chinese}
	assert.Equal(t, "香港特別行政區高等法院原訟法庭", e.Extract(in))

	in.Text = "判案書\n原告人 陳大文"
	assert.Equal(t, "", e.Extract(in))
}

func TestValid(t *testing.T) {
	e := NewExtractor(nil)
	assert.True(t, e.Valid("HIGH COURT OF THE HKSAR", false))
	assert.False(t, e.Valid("COURT BETWEEN PLAINTIFF", false))
	assert.False(t, e.Valid("TRIBUNAL", false))
	assert.False(t, e.Valid("高等法院原告", true))
	assert.True(t, e.Valid("高等法院原訟法庭", true))
}
