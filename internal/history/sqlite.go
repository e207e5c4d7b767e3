package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/gurmatsinghsour/SweatHogChatBot/internal/domain"
)

// SQLiteStore implements the Store interface using SQLite.
type SQLiteStore struct {
	db     *sql.DB
	dbPath string
}

// NewSQLiteStore creates a new SQLite history store.
// It creates the database file and schema if they don't exist.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	// Ensure directory exists
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	// Open database
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Enable WAL mode for better concurrency
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to set WAL mode: %w", err)
	}

	// Create schema
	if err := createSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	return &SQLiteStore{
		db:     db,
		dbPath: dbPath,
	}, nil
}

// createSchema creates the database tables and indexes.
func createSchema(db *sql.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS assessments (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		session_id TEXT NOT NULL,
		risk_level TEXT NOT NULL,
		source TEXT NOT NULL,
		confidence_score REAL NOT NULL DEFAULT 0,
		risk_factors INTEGER NOT NULL DEFAULT 0,
		fields_provided INTEGER NOT NULL DEFAULT 0,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_session_id ON assessments(session_id);
	CREATE INDEX IF NOT EXISTS idx_created_at ON assessments(created_at);
	`

	_, err := db.Exec(schema)
	return err
}

// scanner is an interface for sql.Row and sql.Rows
type scanner interface {
	Scan(dest ...interface{}) error
}

// scanAssessment scans a row into an Assessment struct.
func scanAssessment(s scanner) (*domain.Assessment, error) {
	a := &domain.Assessment{}
	var risk string

	err := s.Scan(
		&a.ID, &a.SessionID, &risk, &a.Source,
		&a.ConfidenceScore, &a.RiskFactors, &a.FieldsProvided, &a.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	a.RiskLevel = domain.RiskLevel(risk)
	return a, nil
}

// Record stores one completed assessment.
func (s *SQLiteStore) Record(ctx context.Context, a *domain.Assessment) error {
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now()
	}

	result, err := s.db.ExecContext(ctx, `
		INSERT INTO assessments (
			session_id, risk_level, source,
			confidence_score, risk_factors, fields_provided, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?)
	`,
		a.SessionID,
		string(a.RiskLevel),
		a.Source,
		a.ConfidenceScore,
		a.RiskFactors,
		a.FieldsProvided,
		a.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get insert ID: %w", err)
	}
	a.ID = id

	return nil
}

// List returns assessments with pagination, newest first.
func (s *SQLiteStore) List(ctx context.Context, limit, offset int) ([]*domain.Assessment, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, session_id, risk_level, source,
			confidence_score, risk_factors, fields_provided, created_at
		FROM assessments
		ORDER BY created_at DESC
		LIMIT ? OFFSET ?
	`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query: %w", err)
	}
	defer rows.Close()

	var result []*domain.Assessment
	for rows.Next() {
		a, err := scanAssessment(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		result = append(result, a)
	}
	return result, rows.Err()
}

// Count returns the total number of stored assessments.
func (s *SQLiteStore) Count(ctx context.Context) (int64, error) {
	var count int64
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM assessments").Scan(&count)
	return count, err
}

// maxExportLimit is the maximum number of entries to export at once.
const maxExportLimit = 1000000

// ExportJSON exports all assessments to a JSON writer.
func (s *SQLiteStore) ExportJSON(ctx context.Context, writer io.Writer) error {
	all, err := s.List(ctx, maxExportLimit, 0)
	if err != nil {
		return fmt.Errorf("failed to list assessments: %w", err)
	}

	export := &Export{
		Version:     "1.0",
		ExportedAt:  time.Now(),
		Count:       len(all),
		Assessments: all,
	}

	encoder := json.NewEncoder(writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(export)
}

// Close closes the store and releases resources.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
