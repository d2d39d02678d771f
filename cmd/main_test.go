// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"judgment-extract/internal/classifier"
	"judgment-extract/internal/config"
	"judgment-extract/internal/record"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func setFlags(names ...string) func(string) bool {
	set := map[string]bool{}
	for _, n := range names {
		set[n] = true
	}
	return func(name string) bool { return set[name] }
}

func TestResolveConfigurationPrecedence(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Defaults.Format = "csv"
	cfg.Defaults.Workers = 3
	cfg.Store.DSN = "file.db"

	final := resolveConfiguration(cfg, nil, &configFlags{}, setFlags())
	assert.Equal(t, "csv", final.format)
	assert.Equal(t, 3, final.workers)
	assert.Equal(t, "file.db", final.storeDSN)
	assert.False(t, final.classify)

	profile := cfg.GetProfile("full")
	require.NotNil(t, profile)
	final = resolveConfiguration(cfg, profile, &configFlags{}, setFlags())
	assert.Equal(t, "xlsx", final.format)
	assert.True(t, final.classify)

	flags := &configFlags{format: "JSON", classify: false, workers: 7, store: ""}
	final = resolveConfiguration(cfg, profile, flags, setFlags("format", "classify", "workers", "store"))
	assert.Equal(t, "json", final.format)
	assert.False(t, final.classify)
	assert.Equal(t, 7, final.workers)
	assert.Empty(t, final.storeDSN)
}

func TestHandleProfiles(t *testing.T) {
	cfg := config.DefaultConfig()
	var out bytes.Buffer

	_, done, err := handleProfiles(cfg, true, "", "", &out)
	require.NoError(t, err)
	assert.True(t, done)
	assert.Contains(t, out.String(), "fast")
	assert.Contains(t, out.String(), "full")

	p, done, err := handleProfiles(cfg, false, "fast", "", &out)
	require.NoError(t, err)
	assert.False(t, done)
	assert.Equal(t, "json", p.Format)

	_, _, err = handleProfiles(cfg, false, "missing", "", &out)
	assert.ErrorContains(t, err, "missing")
}

func TestOutputColumns(t *testing.T) {
	assert.Nil(t, outputColumns("all", true))
	assert.Nil(t, outputColumns("", false))

	cols := outputColumns("judge, case_number", false)
	assert.Equal(t, []string{record.FieldFileName, record.FieldLanguage, record.FieldDocumentType,
		record.FieldCaseNumber, record.FieldJudge}, cols)

	cols = outputColumns("judge", true)
	assert.Equal(t, record.LabelFields, cols[len(cols)-len(record.LabelFields):])
}

func TestBuildClassifierFallsBackWithoutKey(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Classifier.Provider = config.ProviderOpenAI
	cfg.Classifier.APIKeyEnv = "JUDGMENT_EXTRACT_UNSET_KEY"
	t.Setenv("JUDGMENT_EXTRACT_UNSET_KEY", "")

	assert.IsType(t, &classifier.RuleClassifier{}, buildClassifier(cfg, zap.NewNop()))
}

func TestReadTextInput(t *testing.T) {
	text, err := readTextInput("IN THE HIGH COURT", strings.NewReader("ignored"))
	require.NoError(t, err)
	assert.Equal(t, "IN THE HIGH COURT", text)

	text, err = readTextInput("-", strings.NewReader("區域法院"))
	require.NoError(t, err)
	assert.Equal(t, "區域法院", text)
}

func TestGetFilesToProcess(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b.pdf", "a.txt", "notes.docx", ".hidden.pdf", "sub/c.pdf", ".git/d.pdf"} {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
		require.NoError(t, os.WriteFile(path, []byte("x"), 0o600))
	}

	res, err := getFilesToProcess(dir, false)
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "a.txt"), filepath.Join(dir, "b.pdf")}, res.FilesToProcess)
	require.Len(t, res.SkippedFiles, 1)
	assert.Equal(t, filepath.Join(dir, "notes.docx"), res.SkippedFiles[0].Path)

	res, err = getFilesToProcess(dir, true)
	require.NoError(t, err)
	assert.Contains(t, res.FilesToProcess, filepath.Join(dir, "sub", "c.pdf"))
	assert.NotContains(t, res.FilesToProcess, filepath.Join(dir, ".git", "d.pdf"))

	res, err = getFilesToProcess(filepath.Join(dir, "*.pdf"), false)
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, ".hidden.pdf"), filepath.Join(dir, "b.pdf")}, res.FilesToProcess)

	_, err = getFilesToProcess(filepath.Join(dir, "missing.pdf"), false)
	assert.Error(t, err)
}

func TestWriteOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "records.json")
	require.NoError(t, writeOutput(path, []byte("{}")))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "{}", string(data))
}
