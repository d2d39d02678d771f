// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package shared

import (
	"bytes"
	"encoding/json"

	"judgment-extract/internal/formatters"
	"judgment-extract/internal/record"

	"gopkg.in/yaml.v3"
)

// Response is the top-level structure for JSON/YAML output
type Response struct {
	Summary Summary         `json:"summary" yaml:"summary"`
	Records []OrderedRecord `json:"records" yaml:"records"`
}

// Summary counts the processed judgments
type Summary struct {
	Total          int            `json:"total" yaml:"total"`
	ByLanguage     map[string]int `json:"by_language,omitempty" yaml:"by_language,omitempty"`
	ByDocumentType map[string]int `json:"by_document_type,omitempty" yaml:"by_document_type,omitempty"`
}

// OrderedRecord is one record that marshals its fields in column order.
type OrderedRecord struct {
	Keys   []string
	Values []string
}

// MarshalJSON writes the record as an object with keys in column order.
func (o OrderedRecord) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range o.Keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(o.Values[i])
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// MarshalYAML returns a mapping node with keys in column order. Every value
// is tagged as a string so case numbers and dates are never re-typed.
func (o OrderedRecord) MarshalYAML() (interface{}, error) {
	node := &yaml.Node{Kind: yaml.MappingNode}
	for i, k := range o.Keys {
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: k},
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: o.Values[i]},
		)
	}
	return node, nil
}

// ConvertRecords builds the JSON/YAML response for records.
func ConvertRecords(records []*record.Record, options formatters.FormatterOptions) (Response, error) {
	columns, err := formatters.Columns(options)
	if err != nil {
		return Response{}, err
	}

	resp := Response{
		Summary: Summary{
			ByLanguage:     map[string]int{},
			ByDocumentType: map[string]int{},
		},
		Records: []OrderedRecord{},
	}
	for _, r := range records {
		if r == nil {
			continue
		}
		resp.Summary.Total++
		if lang := r.Get(record.FieldLanguage); lang != "" {
			resp.Summary.ByLanguage[lang]++
		}
		if dt := r.Get(record.FieldDocumentType); dt != "" {
			resp.Summary.ByDocumentType[dt]++
		}
	}
	for _, row := range formatters.Rows(records, columns) {
		resp.Records = append(resp.Records, OrderedRecord{Keys: columns, Values: row})
	}
	return resp, nil
}
