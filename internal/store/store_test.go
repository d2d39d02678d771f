// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package store

import (
	"context"
	"path/filepath"
	"testing"

	"judgment-extract/internal/record"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTemp(t *testing.T) *Store {
	t.Helper()
	s, err := Open(context.Background(), filepath.Join(t.TempDir(), "db", "judgments.db"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func frozen(path, lang, docType, caseNumber string) *record.Record {
	rec := record.New()
	rec.Set(record.FieldFilePath, path)
	rec.Set(record.FieldFileName, filepath.Base(path))
	rec.Set(record.FieldLanguage, lang)
	rec.Set(record.FieldDocumentType, docType)
	rec.Set(record.FieldCaseNumber, caseNumber)
	rec.Freeze()
	return rec
}

func TestSaveAndGet(t *testing.T) {
	s := openTemp(t)
	ctx := context.Background()
	rec := frozen("/data/HCA001234_2023.pdf", "english", "GENERIC", "HCA 1234/2023")

	require.NoError(t, s.Save(ctx, rec))

	got, err := s.Get(ctx, "/data/HCA001234_2023.pdf")
	require.NoError(t, err)
	assert.True(t, got.Frozen())
	assert.True(t, rec.Equal(got))
	assert.Equal(t, record.Unknown, got.Get(record.FieldJudgmentResultLabel))
}

func TestSaveUpserts(t *testing.T) {
	s := openTemp(t)
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, frozen("/data/a.pdf", "english", "GENERIC", "HCA 1/2023")))
	require.NoError(t, s.Save(ctx, frozen("/data/a.pdf", "english", "GENERIC", "HCA 2/2023")))

	all, err := s.List(ctx, ListOptions{})
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "HCA 2/2023", all[0].Get(record.FieldCaseNumber))
}

func TestSaveRejectsUnfrozen(t *testing.T) {
	s := openTemp(t)
	assert.ErrorIs(t, s.Save(context.Background(), record.New()), ErrNotFrozen)
	assert.ErrorIs(t, s.Save(context.Background(), nil), ErrNotFrozen)
}

func TestGetMissing(t *testing.T) {
	s := openTemp(t)
	_, err := s.Get(context.Background(), "/nope.pdf")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListFilters(t *testing.T) {
	s := openTemp(t)
	ctx := context.Background()
	require.NoError(t, s.Save(ctx, frozen("/data/a.pdf", "english", "GENERIC", "HCA 1/2023")))
	require.NoError(t, s.Save(ctx, frozen("/data/b.pdf", "chinese", "DCCJ", "DCCJ 2/2023")))
	require.NoError(t, s.Save(ctx, frozen("/data/c.pdf", "english", "DCCJ", "DCCJ 3/2023")))

	english, err := s.List(ctx, ListOptions{Language: "english"})
	require.NoError(t, err)
	require.Len(t, english, 2)
	assert.Equal(t, "/data/a.pdf", english[0].Get(record.FieldFilePath))

	dccj, err := s.List(ctx, ListOptions{Language: "english", DocumentType: "DCCJ"})
	require.NoError(t, err)
	require.Len(t, dccj, 1)
	assert.Equal(t, "DCCJ 3/2023", dccj[0].Get(record.FieldCaseNumber))

	limited, err := s.List(ctx, ListOptions{Limit: 1})
	require.NoError(t, err)
	assert.Len(t, limited, 1)
}

func TestOpenEmptyDSN(t *testing.T) {
	_, err := Open(context.Background(), "", nil)
	assert.Error(t, err)
}
