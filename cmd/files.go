// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// SkippedFile is an input that will not be processed
type SkippedFile struct {
	Path   string
	Reason string
}

// ProcessingResult holds the discovered inputs
type ProcessingResult struct {
	FilesToProcess []string
	SkippedFiles   []SkippedFile
}

var supportedExtensions = map[string]bool{
	".pdf":  true,
	".txt":  true,
	".text": true,
}

func isSupported(path string) bool {
	return supportedExtensions[strings.ToLower(filepath.Ext(path))]
}

// getFilesToProcess returns the judgments to process for a file, directory
// or glob pattern. Results are sorted and free of duplicates.
func getFilesToProcess(inputPath string, recursive bool) (*ProcessingResult, error) {
	result := &ProcessingResult{}
	seen := make(map[string]bool)

	add := func(path string) {
		if seen[path] {
			return
		}
		seen[path] = true
		if isSupported(path) {
			result.FilesToProcess = append(result.FilesToProcess, path)
		} else {
			result.SkippedFiles = append(result.SkippedFiles, SkippedFile{Path: path, Reason: "unsupported file type"})
		}
	}

	// A path that exists is taken literally even if it contains glob characters
	info, err := os.Stat(inputPath)
	switch {
	case err == nil && info.Mode().IsRegular():
		add(inputPath)
	case err == nil && info.IsDir():
		if err := walkDirectory(inputPath, recursive, add); err != nil {
			return nil, err
		}
	case err == nil:
		return nil, fmt.Errorf("%s is not a regular file or directory", inputPath)
	default:
		matches, gerr := filepath.Glob(inputPath)
		if gerr != nil {
			return nil, fmt.Errorf("invalid pattern %s: %w", inputPath, gerr)
		}
		if len(matches) == 0 {
			return nil, fmt.Errorf("path does not exist or is not accessible: %w", err)
		}
		for _, m := range matches {
			mi, err := os.Stat(m)
			if err != nil || !mi.Mode().IsRegular() {
				continue
			}
			add(m)
		}
	}

	sort.Strings(result.FilesToProcess)
	return result, nil
}

func walkDirectory(root string, recursive bool, add func(string)) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path == root {
				return nil
			}
			if !recursive || strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if strings.HasPrefix(d.Name(), ".") || !d.Type().IsRegular() {
			return nil
		}
		add(path)
		return nil
	})
}
