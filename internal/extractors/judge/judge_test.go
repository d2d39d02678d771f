// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package judge

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
		{"honorific before line", "BETWEEN\nABC LIMITED\nPlaintiff\nBefore: Hon. Justice Smith\nDate of Hearing: 12 May 2023", "Smith"},
		{"trailing J", "Before: Hon Chan J in Court\nDate of Hearing: 1 June 2020", "Chan"},
		{"master", "Before: Master Lee in Chambers\n", "Lee"},
		{"deputy judge", "Before: Deputy High Court Judge Le Pichon\n", "Le Pichon"},
		{"recorder", "Before: Mr Recorder John Smith SC in Court\n", "John Smith"},
		{"signature block", "JUDGMENT\nThe claim is dismissed.\n(Mary Wong)\nDeputy High Court Judge of the Court of First Instance", "Mary Wong"},
		{"nothing plausible", "Before: the court\n", ""},
		{"none", "JUDGMENT\nThis is an appeal.", ""},
	}
	e := NewExtractor(nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, e.Extract(detector.Input{Text: tt.text, Language: language.English}))
		})
	}
}

func TestTitledNameNeedsLineEnd(t *testing.T) {
	e := NewExtractor(nil)
	tests := []struct {
		name string
		text string
		want string
	}{
		{"contract title", "Before: Hon. Justice Smith\nThe parties signed a Master Services Agreement in 2019.\n", "Smith"},
		{"place name", "Before: Hon. Justice Smith\nThe vessel was moored at Harbourmaster Bay Terminal.\n", "Smith"},
		{"deputy in prose", "Before: Hon. Justice Smith\nHe wrote to Deputy Judge Wong Kai about the stay.\n", "Smith"},
		{"master in chambers", "Coram: Master Vincent Leung in Chambers\n", "Vincent Leung"},
		{"deputy at line end", "Coram: Deputy Judge Wong Kai\n", "Wong Kai"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, e.Extract(detector.Input{Text: tt.text, Language: language.English}))
		})
	}
}

func TestClean(t *testing.T) {
	e := NewExtractor(nil)
	assert.Equal(t, "Raj", e.Clean("Raj"))
	assert.Equal(t, "Poon", e.Clean("Poon J."))
	assert.Equal(t, "", e.Clean("IV"))
	assert.Equal(t, "", e.Clean("Hearing"))
	assert.Equal(t, "", e.Clean("Room 12"))
	assert.Equal(t, "", e.Clean("smith"))
}

func TestExtractChinese(t *testing.T) {
	e := NewExtractor(nil)
	in := detector.Input{Text: "判案書\n主審法官：高等法院原訟法庭暫委法官陳大文\n", Language: language.Chinese}
	assert.Equal(t, "陳大文", e.Extract(in))

	in.Text = "原告人 陳大文\n主審法官：Deputy Judge 2\n"
	assert.Equal(t, "", e.Extract(in))
}
