// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package doctype derives the document-type code from a judgment's file name.
package doctype

import (
	"path/filepath"
	"strings"
)

const (
	Generic     = "GENERIC"
	DCCJ        = "DCCJ"
	Corrigendum = "Corrigendum"
)

// Codes are tried in this order; the first substring hit wins. HCA always
// precedes HCAL, so HCAL files are reported as HCA and the HCAL entry never
// matches; it is listed only to document the known court codes.
var Codes = []string{"HCA", "HCAL", "CACC", "CAMP", "CACV", "DCCC", "DCMP", "DCCJ", "LD", "HC", "FCMC"}

// Classify returns the first code found in the upper-cased base name of
// fileName, or Generic.
func Classify(fileName string) string {
	if fileName == "" {
		return Generic
	}
	name := strings.ToUpper(filepath.Base(fileName))
	for _, c := range Codes {
		if strings.Contains(name, c) {
			return c
		}
	}
	return Generic
}
