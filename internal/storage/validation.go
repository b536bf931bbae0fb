// Package storage provides the run history persistence layer backed by SQLite.
package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Veraticus/homework-heap/internal/model"
)

// Validation errors.
var (
	ErrNilContext       = errors.New("context cannot be nil")
	ErrEmptyString      = errors.New("string parameter cannot be empty")
	ErrInvalidRunRecord = errors.New("invalid run record")
)

// validateContext ensures the context is not nil.
func validateContext(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	return nil
}

// validateString ensures a string parameter is not empty.
func validateString(s string, paramName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s", ErrEmptyString, paramName)
	}
	return nil
}

// validateRunRecord checks the fields every stored run must have.
func validateRunRecord(rec *model.RunRecord) error {
	if rec.StartedAt.IsZero() {
		return fmt.Errorf("%w: missing start time", ErrInvalidRunRecord)
	}
	if strings.TrimSpace(rec.Summary.TargetFolder) == "" {
		return fmt.Errorf("%w: missing target folder", ErrInvalidRunRecord)
	}
	switch rec.Summary.ActionTaken {
	case model.ActionDeleted, model.ActionKept:
	default:
		return fmt.Errorf("%w: unknown action %q", ErrInvalidRunRecord, rec.Summary.ActionTaken)
	}
	if rec.Summary.TotalCount != len(rec.Summary.FilesMoved) {
		return fmt.Errorf("%w: total count %d does not match %d moved files",
			ErrInvalidRunRecord, rec.Summary.TotalCount, len(rec.Summary.FilesMoved))
	}
	return nil
}
