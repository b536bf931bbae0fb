// Package model defines the core domain models used throughout the application.
package model

// SelectionOutcome is the result of the one-shot review gate.
type SelectionOutcome string

// Selection outcomes.
const (
	OutcomeConfirmedAll    SelectionOutcome = "confirmed_all"
	OutcomeConfirmedSubset SelectionOutcome = "confirmed_subset"
	OutcomeCancelled       SelectionOutcome = "cancelled"
)

// SelectionDecision is the operator's single decision about which files to move.
type SelectionDecision struct {
	Outcome SelectionOutcome
	// Files holds the names approved for relocation, in original order.
	// Empty when the decision is cancelled.
	Files []string
	// Excluded holds the names the operator saved from relocation.
	Excluded []string
	// Notice is a human-readable explanation for fallbacks and reductions.
	Notice string
}

// Cancelled reports whether the run must stop without moving anything.
func (d SelectionDecision) Cancelled() bool {
	return d.Outcome == OutcomeCancelled
}
