// Package report assembles and renders the final run summary.
package report

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/Veraticus/homework-heap/internal/model"
)

// Build assembles the summary from what actually happened during the run.
func Build(outcome model.MoveOutcome, cleanup model.CleanupResult, holding string) model.RunSummary {
	moved := make([]string, len(outcome.Moved))
	copy(moved, outcome.Moved)

	return model.RunSummary{
		FilesMoved:   moved,
		TotalCount:   outcome.Count,
		ActionTaken:  cleanup.Action,
		TargetFolder: holding,
	}
}

// Render writes the summary as indented JSON followed by a newline.
func Render(w io.Writer, summary model.RunSummary) error {
	if summary.FilesMoved == nil {
		summary.FilesMoved = []string{}
	}

	data, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode summary: %w", err)
	}
	if _, err := fmt.Fprintln(w, string(data)); err != nil {
		return fmt.Errorf("failed to write summary: %w", err)
	}
	return nil
}
