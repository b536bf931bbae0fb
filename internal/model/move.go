package model

// MoveOutcome aggregates the results of one relocation batch.
type MoveOutcome struct {
	// Destinations maps each moved filename to its final name inside the holding folder.
	Destinations map[string]string
	// Moved lists original filenames that were relocated, in input order.
	Moved []string
	// Errors lists "<filename>: <reason>" strings for every file that was not moved.
	Errors []string
	Count  int
}

// CleanupAction records what happened to the holding folder.
type CleanupAction string

// Cleanup actions.
const (
	ActionDeleted CleanupAction = "deleted"
	ActionKept    CleanupAction = "kept"
)

// CleanupResult is produced by the cleanup manager once per run.
type CleanupResult struct {
	Err           error
	Action        CleanupAction
	Notice        string
	FolderExisted bool
}
