package engine

import (
	"context"

	"github.com/Veraticus/homework-heap/internal/model"
)

// Classifier defines the contract for picking school-related files out of the scan.
// Implementations never fail: degraded results carry warnings and zero matches.
type Classifier interface {
	Classify(ctx context.Context, filenames []string) model.ClassificationResult
}

// Prompter defines the contract for every interaction with the operator during a run.
type Prompter interface {
	ShowBanner(root string)
	ShowInfo(message string)
	ShowWarning(message string)
	ShowSuccess(message string)
	ReviewSelection(ctx context.Context, files []string) (model.SelectionDecision, error)
	ConfirmCleanup(ctx context.Context, folderName string) (string, error)
	ShowMoveResult(outcome model.MoveOutcome)
	ShowSummary(summary model.RunSummary) error
	MoveProgress(total int) func(name string, err error)
}
