// Package review turns the operator's one-line answer into a SelectionDecision.
//
// The gate has exactly three outcomes: move everything, move everything except the
// listed items, or cancel the run. Malformed answers never fail; they fall back to
// moving everything and carry a notice explaining why.
package review

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Veraticus/homework-heap/internal/model"
)

// DefaultCancelKeyword stops the whole run when entered at the review prompt.
const DefaultCancelKeyword = "STOP"

// Notices shown to the operator.
const (
	NoticeCancelled    = "Stopping execution. No files will be moved."
	NoticeNoValidIndex = "No valid numbers entered. Keeping all files."
	NoticeInvalidInput = "Invalid input. Keeping all files."
)

// Reviewer parses review answers against a fixed cancel keyword.
type Reviewer struct {
	cancelKeyword string
}

// New creates a Reviewer. An empty keyword selects DefaultCancelKeyword.
func New(cancelKeyword string) *Reviewer {
	cancelKeyword = strings.TrimSpace(cancelKeyword)
	if cancelKeyword == "" {
		cancelKeyword = DefaultCancelKeyword
	}
	return &Reviewer{cancelKeyword: cancelKeyword}
}

// CancelKeyword returns the keyword that cancels the run.
func (r *Reviewer) CancelKeyword() string {
	return r.cancelKeyword
}

// Parse applies one answer to the presented files.
func (r *Reviewer) Parse(input string, files []string) model.SelectionDecision {
	input = strings.TrimSpace(input)

	if input == "" {
		return confirmAll(files, "")
	}

	if strings.EqualFold(input, r.cancelKeyword) {
		return model.SelectionDecision{
			Outcome: model.OutcomeCancelled,
			Notice:  NoticeCancelled,
		}
	}

	indices, ok := parseIndices(input)
	if !ok {
		return confirmAll(files, NoticeInvalidInput)
	}

	excluded := make(map[int]struct{}, len(indices))
	for _, n := range indices {
		if n >= 1 && n <= len(files) {
			excluded[n-1] = struct{}{}
		}
	}
	if len(excluded) == 0 {
		return confirmAll(files, NoticeNoValidIndex)
	}

	decision := model.SelectionDecision{
		Outcome:  model.OutcomeConfirmedSubset,
		Files:    make([]string, 0, len(files)-len(excluded)),
		Excluded: make([]string, 0, len(excluded)),
	}
	for i, name := range files {
		if _, skip := excluded[i]; skip {
			decision.Excluded = append(decision.Excluded, name)
			continue
		}
		decision.Files = append(decision.Files, name)
	}
	decision.Notice = fmt.Sprintf("Removed %d file(s). %d file(s) will be moved.",
		len(decision.Excluded), len(decision.Files))

	return decision
}

// Parse applies one answer using DefaultCancelKeyword.
func Parse(input string, files []string) model.SelectionDecision {
	return New(DefaultCancelKeyword).Parse(input, files)
}

// parseIndices splits on commas and whitespace. Every token must be an integer.
func parseIndices(input string) ([]int, bool) {
	tokens := strings.Fields(strings.ReplaceAll(input, ",", " "))
	indices := make([]int, 0, len(tokens))
	for _, tok := range tokens {
		n, err := strconv.Atoi(tok)
		if err != nil {
			return nil, false
		}
		indices = append(indices, n)
	}
	return indices, true
}

func confirmAll(files []string, notice string) model.SelectionDecision {
	all := make([]string, len(files))
	copy(all, files)
	return model.SelectionDecision{
		Outcome: model.OutcomeConfirmedAll,
		Files:   all,
		Notice:  notice,
	}
}
