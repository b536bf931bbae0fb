// Package service defines the interfaces for all application services.
package service

import (
	"context"

	"github.com/Veraticus/homework-heap/internal/model"
)

// HistoryStore defines the contract for the run history persistence layer.
type HistoryStore interface {
	// SaveRun persists one completed run. Records are immutable once saved.
	SaveRun(ctx context.Context, record model.RunRecord) error
	// ListRuns returns the most recent runs first. A limit of zero or less returns all runs.
	ListRuns(ctx context.Context, limit int) ([]model.RunRecord, error)
	// GetRun returns a single run, or an error wrapping common.ErrNotFound.
	GetRun(ctx context.Context, id string) (*model.RunRecord, error)
	Close() error
}
