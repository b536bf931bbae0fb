package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Veraticus/homework-heap/internal/common"
	"github.com/Veraticus/homework-heap/internal/model"
	"github.com/google/uuid"
)

// SaveRun stores a completed run with its moved files and errors in one transaction.
// A record without an ID is assigned a new UUID.
func (s *SQLiteStorage) SaveRun(ctx context.Context, record model.RunRecord) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateRunRecord(&record); err != nil {
		return err
	}
	if record.ID == "" {
		record.ID = uuid.NewString()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO runs (id, started_at, duration_ms, provider, scan_root, target_folder,
			action_taken, total_count, classified_count)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		record.ID,
		record.StartedAt.UTC(),
		record.Duration.Milliseconds(),
		record.Provider,
		record.ScanRoot,
		record.Summary.TargetFolder,
		string(record.Summary.ActionTaken),
		record.Summary.TotalCount,
		record.Classified,
	)
	if err != nil {
		return fmt.Errorf("failed to insert run %s: %w", record.ID, err)
	}

	for i, name := range record.Summary.FilesMoved {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO run_files (run_id, position, filename) VALUES (?, ?, ?)`,
			record.ID, i, name); err != nil {
			return fmt.Errorf("failed to insert moved file: %w", err)
		}
	}

	for i, msg := range record.Errors {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO run_errors (run_id, position, message) VALUES (?, ?, ?)`,
			record.ID, i, msg); err != nil {
			return fmt.Errorf("failed to insert run error: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit run %s: %w", record.ID, err)
	}
	return nil
}

// ListRuns returns runs newest first. A limit of zero or less returns every run.
func (s *SQLiteStorage) ListRuns(ctx context.Context, limit int) ([]model.RunRecord, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = -1
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, started_at, duration_ms, provider, scan_root, target_folder,
			action_taken, total_count, classified_count
		FROM runs
		ORDER BY started_at DESC, id
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var records []model.RunRecord
	for rows.Next() {
		rec, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, *rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating runs: %w", err)
	}
	// Details are loaded after the cursor closes; the pool has a single connection.
	_ = rows.Close()

	for i := range records {
		if err := s.loadDetails(ctx, &records[i]); err != nil {
			return nil, err
		}
	}
	return records, nil
}

// GetRun returns one run by ID.
func (s *SQLiteStorage) GetRun(ctx context.Context, id string) (*model.RunRecord, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(id, "id"); err != nil {
		return nil, err
	}

	row := s.db.QueryRowContext(ctx, `
		SELECT id, started_at, duration_ms, provider, scan_root, target_folder,
			action_taken, total_count, classified_count
		FROM runs
		WHERE id = ?`, id)

	rec, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("run %s: %w", id, common.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}

	if err := s.loadDetails(ctx, rec); err != nil {
		return nil, err
	}
	return rec, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(row rowScanner) (*model.RunRecord, error) {
	var (
		rec        model.RunRecord
		durationMS int64
		action     string
	)
	err := row.Scan(
		&rec.ID,
		&rec.StartedAt,
		&durationMS,
		&rec.Provider,
		&rec.ScanRoot,
		&rec.Summary.TargetFolder,
		&action,
		&rec.Summary.TotalCount,
		&rec.Classified,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan run: %w", err)
	}
	rec.Duration = time.Duration(durationMS) * time.Millisecond
	rec.Summary.ActionTaken = model.CleanupAction(action)
	return &rec, nil
}

func (s *SQLiteStorage) loadDetails(ctx context.Context, rec *model.RunRecord) error {
	files, err := s.queryStrings(ctx,
		`SELECT filename FROM run_files WHERE run_id = ? ORDER BY position`, rec.ID)
	if err != nil {
		return fmt.Errorf("failed to load moved files for run %s: %w", rec.ID, err)
	}
	rec.Summary.FilesMoved = files

	errs, err := s.queryStrings(ctx,
		`SELECT message FROM run_errors WHERE run_id = ? ORDER BY position`, rec.ID)
	if err != nil {
		return fmt.Errorf("failed to load errors for run %s: %w", rec.ID, err)
	}
	rec.Errors = errs
	return nil
}

func (s *SQLiteStorage) queryStrings(ctx context.Context, query string, args ...any) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	values := []string{}
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, err
		}
		values = append(values, v)
	}
	return values, rows.Err()
}
