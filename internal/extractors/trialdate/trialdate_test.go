// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package trialdate

import (
	"strings"
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
		{"hearing", "Before: Hon. Justice Smith\nDate of Hearing: 12 May 2023", "12 May 2023"},
		{"dates of hearing", "Dates of Hearing: 3, 4 and 5 June 2021\nDate of Judgment: 30 June 2021", "3, 4 and 5 June 2021"},
		{"decision with trailing heading", "Date of Decision: 1 March 2022 DECISION", "1 March 2022"},
		{"too short", "Date of Hearing: 2022", ""},
		{"missing", "No dates here", ""},
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
	in := detector.Input{Text: "主審法官：陳法官\n聆訊日期：2023年5月12日 判案書\n", Language: language.Chinese}
	assert.Equal(t, "2023年5月12日", e.Extract(in))
}

func TestClean(t *testing.T) {
	assert.Equal(t, "12 May 2023", Clean("12 May 2023 - 3 -"))
	assert.Equal(t, "12 May 2023", Clean("  12 May 2023 and "))
	assert.Equal(t, "12 May 2023", Clean("12 May 2023 ________ Before"))
	assert.Equal(t, "14 July 2020", Clean("14 July 2020 Page 3 of the bundle"))

	long := "The hearing took place on many days across the year. " + strings.Repeat("More words follow here ", 10)
	assert.Equal(t, "The hearing took place on many days across the year", Clean(long))
}
