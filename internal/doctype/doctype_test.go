// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package doctype

import "testing"

func TestClassify(t *testing.T) {
	tests := []struct {
		file string
		want string
	}{
		{"", Generic},
		{"HCA001234_2023.pdf", "HCA"},
		{"hcal000045_2021.pdf", "HCA"},
		{"HCAL000045_2021.pdf", "HCA"},
		{"/data/2023/DCCJ004512_2022.pdf", "DCCJ"},
		{"CACV000012_2020.txt", "CACV"},
		{"FCMC000001_2019.pdf", "FCMC"},
		{"judgment.pdf", Generic},
		{"/HCA/judgment.pdf", Generic},
	}
	for _, tt := range tests {
		t.Run(tt.file, func(t *testing.T) {
			if got := Classify(tt.file); got != tt.want {
				t.Errorf("Classify(%q) = %q, want %q", tt.file, got, tt.want)
			}
		})
	}
}
