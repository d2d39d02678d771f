// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package store persists extraction records in SQLite.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"judgment-extract/internal/logging"
	"judgment-extract/internal/record"

	"go.uber.org/zap"
	_ "modernc.org/sqlite"
)

// ErrNotFound is returned by Get when no record is stored for a path.
var ErrNotFound = errors.New("record not found")

// ErrNotFrozen is returned by Save for records still being built.
var ErrNotFrozen = errors.New("record is not frozen")

const schema = `
CREATE TABLE IF NOT EXISTS judgments (
	file_path     TEXT PRIMARY KEY,
	file_name     TEXT NOT NULL,
	case_number   TEXT NOT NULL,
	language      TEXT NOT NULL,
	document_type TEXT NOT NULL,
	fields        TEXT NOT NULL,
	updated_at    TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_judgments_language ON judgments(language);
CREATE INDEX IF NOT EXISTS idx_judgments_document_type ON judgments(document_type);
`

var pragmas = []string{
	"PRAGMA journal_mode = WAL;",
	"PRAGMA synchronous = NORMAL;",
	"PRAGMA busy_timeout = 5000;",
}

// Store is a SQLite-backed record store. It is safe for concurrent use.
type Store struct {
	db     *sql.DB
	logger *zap.Logger
}

// ListOptions filters List. Zero values match everything.
type ListOptions struct {
	Language     string
	DocumentType string
	Limit        int
}

// Open opens or creates the database at dsn, which is a file path or
// ":memory:".
func Open(ctx context.Context, dsn string, logger *zap.Logger) (*Store, error) {
	logger = logging.OrNop(logger).With(zap.String("component", "store"))
	if dsn == "" {
		return nil, fmt.Errorf("store: empty dsn")
	}
	if dsn != ":memory:" && !strings.HasPrefix(dsn, "file:") {
		if err := os.MkdirAll(filepath.Dir(dsn), 0o755); err != nil {
			return nil, fmt.Errorf("create store dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", dsn, err)
	}
	// one writer; sqlite serializes writes anyway
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("exec pragma %s: %w", p, err)
		}
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	logger.Debug("store opened", zap.String("dsn", dsn))
	return &Store{db: db, logger: logger}, nil
}

// Save inserts rec or replaces the record stored under the same file path.
func (s *Store) Save(ctx context.Context, rec *record.Record) error {
	if rec == nil || !rec.Frozen() {
		return ErrNotFrozen
	}
	path := rec.Get(record.FieldFilePath)
	if path == "" {
		path = rec.Get(record.FieldFileName)
	}
	if path == "" {
		return fmt.Errorf("save record: no file path")
	}

	fields, err := json.Marshal(rec.Map())
	if err != nil {
		return fmt.Errorf("encode record: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
INSERT INTO judgments (file_path, file_name, case_number, language, document_type, fields, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(file_path) DO UPDATE SET
	file_name = excluded.file_name,
	case_number = excluded.case_number,
	language = excluded.language,
	document_type = excluded.document_type,
	fields = excluded.fields,
	updated_at = excluded.updated_at`,
		path,
		rec.Get(record.FieldFileName),
		rec.Get(record.FieldCaseNumber),
		rec.Get(record.FieldLanguage),
		rec.Get(record.FieldDocumentType),
		string(fields),
		time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	s.logger.Debug("record saved", zap.String("file", path))
	return nil
}

// Get loads the record stored for filePath.
func (s *Store) Get(ctx context.Context, filePath string) (*record.Record, error) {
	var fields string
	err := s.db.QueryRowContext(ctx, `SELECT fields FROM judgments WHERE file_path = ?`, filePath).Scan(&fields)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", filePath, err)
	}
	return decode(fields)
}

// List returns stored records ordered by file path.
func (s *Store) List(ctx context.Context, opts ListOptions) ([]*record.Record, error) {
	var (
		where []string
		args  []any
	)
	if opts.Language != "" {
		where = append(where, "language = ?")
		args = append(args, opts.Language)
	}
	if opts.DocumentType != "" {
		where = append(where, "document_type = ?")
		args = append(args, opts.DocumentType)
	}

	query := "SELECT fields FROM judgments"
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY file_path"
	if opts.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, opts.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list records: %w", err)
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			s.logger.Warn("closing rows", zap.Error(cerr))
		}
	}()

	var out []*record.Record
	for rows.Next() {
		var fields string
		if err := rows.Scan(&fields); err != nil {
			return nil, fmt.Errorf("scan record: %w", err)
		}
		rec, err := decode(fields)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list records: %w", err)
	}
	return out, nil
}

// Close releases the database.
func (s *Store) Close() error {
	return s.db.Close()
}

func decode(fields string) (*record.Record, error) {
	var m map[string]string
	if err := json.Unmarshal([]byte(fields), &m); err != nil {
		return nil, fmt.Errorf("decode record: %w", err)
	}
	return record.FromMap(m), nil
}
