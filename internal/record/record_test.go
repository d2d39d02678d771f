// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package record

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewRecordDefaults(t *testing.T) {
	r := New()
	for _, f := range ExtractedFields {
		assert.Equal(t, NotFound, r.Get(f), f)
	}
	for _, f := range LabelFields {
		assert.Equal(t, Unknown, r.Get(f), f)
	}
	assert.Len(t, r.Map(), len(OutputFields))
}

func TestFreeze(t *testing.T) {
	r := New()
	assert.True(t, r.Set(FieldJudge, "Smith"))
	r.Freeze()
	assert.False(t, r.Set(FieldJudge, "Jones"))
	assert.Equal(t, "Smith", r.Get(FieldJudge))
	assert.True(t, r.Frozen())
}

func TestSetRejectsUnknownField(t *testing.T) {
	r := New()
	assert.False(t, r.Set("colour", "red"))
	assert.False(t, IsField("colour"))
	assert.True(t, IsField(FieldCaseNumber))
}

func TestFromMapAndEqual(t *testing.T) {
	a := New()
	a.Set(FieldPlaintiff, "ABC LIMITED")
	a.SetTextLength(42)

	b := FromMap(map[string]string{
		FieldPlaintiff:  "ABC LIMITED",
		FieldTextLength: "42",
		"bogus":         "x",
	})
	// FromMap starts from New, so label fields are Unknown in both.
	assert.True(t, a.Equal(b))
	assert.True(t, b.Frozen())
	assert.False(t, a.Equal(nil))
}

func TestOutputFieldOrder(t *testing.T) {
	assert.Equal(t, FieldFileName, OutputFields[0])
	assert.Equal(t, FieldTextLength, OutputFields[len(OutputFields)-1])
	assert.Equal(t, OutputFields, New().Fields())
}
