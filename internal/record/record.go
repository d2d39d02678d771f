// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package record defines the flat extraction record produced for one judgment.
package record

import (
	"strconv"
	"sync"
)

const (
	// NotFound marks a field the extractors could not fill.
	NotFound = ""
	// Unknown marks a field deferred to semantic classification.
	Unknown = "unknown"
)

// Field names, in output order.
const (
	FieldFileName         = "file_name"
	FieldLanguage         = "language"
	FieldDocumentType     = "document_type"
	FieldCaseNumber       = "case_number"
	FieldTrialDate        = "trial_date"
	FieldCourtName        = "court_name"
	FieldPlaintiff        = "plaintiff"
	FieldDefendant        = "defendant"
	FieldJudge            = "judge"
	FieldLawyer           = "lawyer"
	FieldCaseType         = "case_type"
	FieldJudgmentResult   = "judgment_result"
	FieldClaimAmount      = "claim_amount"
	FieldJudgmentAmount   = "judgment_amount"
	FieldFilePath         = "file_path"
	FieldTextLength       = "text_length"
	FieldCorrectedDocType = "corrected_document_type"
	FieldOriginalDate     = "original_document_date"
	FieldCorrigendumDate  = "corrigendum_date"
	FieldCorrection       = "correction_summary"

	// Classifier outputs
	FieldCaseTypeLabel       = "case_type_label"
	FieldJudgmentResultLabel = "judgment_result_label"
	FieldPlaintiffLawyer     = "plaintiff_lawyer"
	FieldDefendantLawyer     = "defendant_lawyer"
	FieldNormalizedAmount    = "normalized_amount"
)

// ExtractedFields are the fields produced by the rule-based extractors.
var ExtractedFields = []string{
	FieldCaseNumber, FieldTrialDate, FieldCourtName, FieldPlaintiff, FieldDefendant,
	FieldJudge, FieldLawyer, FieldCaseType, FieldJudgmentResult,
	FieldClaimAmount, FieldJudgmentAmount,
}

// LabelFields are filled by a classifier and hold Unknown until then.
var LabelFields = []string{
	FieldCaseTypeLabel, FieldJudgmentResultLabel, FieldPlaintiffLawyer,
	FieldDefendantLawyer, FieldNormalizedAmount,
}

// CorrigendumFields only carry values for corrigendum documents.
var CorrigendumFields = []string{
	FieldCorrectedDocType, FieldOriginalDate, FieldCorrigendumDate, FieldCorrection,
}

// OutputFields is the column order used by every formatter.
var OutputFields = func() []string {
	out := []string{FieldFileName, FieldLanguage, FieldDocumentType}
	out = append(out, ExtractedFields...)
	out = append(out, CorrigendumFields...)
	out = append(out, LabelFields...)
	return append(out, FieldFilePath, FieldTextLength)
}()

var knownFields = func() map[string]bool {
	m := make(map[string]bool, len(OutputFields))
	for _, f := range OutputFields {
		m[f] = true
	}
	return m
}()

// IsField reports whether name is a record field.
func IsField(name string) bool {
	return knownFields[name]
}

// RawDocument is decoded judgment text plus the name of its source file.
type RawDocument struct {
	Text     string
	FileName string
	FilePath string
}

// Record holds every output field as a string. A zero Record is not usable;
// call New.
type Record struct {
	mu     sync.RWMutex
	values map[string]string
	frozen bool
}

// New returns a record with every field set to NotFound and classifier
// label fields set to Unknown.
func New() *Record {
	r := &Record{values: make(map[string]string, len(OutputFields))}
	for _, f := range OutputFields {
		r.values[f] = NotFound
	}
	for _, f := range LabelFields {
		r.values[f] = Unknown
	}
	return r
}

// FromMap rebuilds a frozen record from stored values. Unknown keys are dropped.
func FromMap(m map[string]string) *Record {
	r := New()
	for k, v := range m {
		if knownFields[k] {
			r.values[k] = v
		}
	}
	r.frozen = true
	return r
}

// Set assigns a field. It reports false when the record is frozen or the
// field does not exist.
func (r *Record) Set(name, value string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.frozen || !knownFields[name] {
		return false
	}
	r.values[name] = value
	return true
}

// SetTextLength stores the decoded text length in runes.
func (r *Record) SetTextLength(n int) bool {
	return r.Set(FieldTextLength, strconv.Itoa(n))
}

// Get returns a field value, or NotFound for unknown names.
func (r *Record) Get(name string) string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.values[name]
}

// Freeze makes the record read-only.
func (r *Record) Freeze() {
	r.mu.Lock()
	r.frozen = true
	r.mu.Unlock()
}

// Frozen reports whether Freeze has been called.
func (r *Record) Frozen() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.frozen
}

// Fields returns the field names in output order.
func (r *Record) Fields() []string {
	out := make([]string, len(OutputFields))
	copy(out, OutputFields)
	return out
}

// Values returns field values in output order.
func (r *Record) Values() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, len(OutputFields))
	for i, f := range OutputFields {
		out[i] = r.values[f]
	}
	return out
}

// Map returns a copy of all values.
func (r *Record) Map() map[string]string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make(map[string]string, len(r.values))
	for k, v := range r.values {
		out[k] = v
	}
	return out
}

// Equal reports whether both records hold the same values.
func (r *Record) Equal(other *Record) bool {
	if other == nil {
		return false
	}
	a, b := r.Values(), other.Values()
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
