package model

import "time"

// RunSummary is the final, immutable report of a completed run.
type RunSummary struct {
	FilesMoved   []string      `json:"files_moved"`
	TotalCount   int           `json:"total_count"`
	ActionTaken  CleanupAction `json:"action_taken"`
	TargetFolder string        `json:"target_folder"`
}

// RunStatus describes how a pipeline run ended.
type RunStatus string

// Run statuses.
const (
	StatusCompleted       RunStatus = "completed"
	StatusNoCandidates    RunStatus = "no_candidates"
	StatusNoMatches       RunStatus = "no_matches"
	StatusCancelled       RunStatus = "cancelled"
	StatusNothingSelected RunStatus = "nothing_selected"
	StatusDryRun          RunStatus = "dry_run"
)

// RunResult is returned by the pipeline. Summary is only set for completed runs.
type RunResult struct {
	Summary  *RunSummary
	Outcome  *MoveOutcome
	Status   RunStatus
	Selected []string
}

// RunRecord is a completed run as persisted in the history database.
type RunRecord struct {
	StartedAt  time.Time
	ID         string
	Provider   string
	ScanRoot   string
	Errors     []string
	Summary    RunSummary
	Duration   time.Duration
	Classified int
}
