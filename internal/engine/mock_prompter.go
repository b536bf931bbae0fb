package engine

import (
	"context"
	"errors"
	"sync"

	"github.com/Veraticus/homework-heap/internal/model"
	"github.com/Veraticus/homework-heap/internal/review"
)

// ErrNoScriptedAnswer is returned when a MockPrompter runs out of answers.
var ErrNoScriptedAnswer = errors.New("no scripted answer")

// MockPrompter is a test implementation of the Prompter interface.
// It answers prompts from a script and records everything shown to the operator.
type MockPrompter struct {
	reviewAnswer   *string
	cleanupAnswer  *string
	summaries      []model.RunSummary
	moveOutcomes   []model.MoveOutcome
	infos          []string
	warnings       []string
	successes      []string
	reviewed       [][]string
	cleanupFolders []string
	progressTotals []int
	banner         string
	mu             sync.Mutex
}

// NewMockPrompter creates a mock that answers the review prompt with reviewAnswer
// and the cleanup prompt with cleanupAnswer.
func NewMockPrompter(reviewAnswer, cleanupAnswer string) *MockPrompter {
	return &MockPrompter{
		reviewAnswer:  &reviewAnswer,
		cleanupAnswer: &cleanupAnswer,
	}
}

// NewSilentMockPrompter creates a mock with no scripted answers. Any prompt fails
// with ErrNoScriptedAnswer, which makes an unexpected prompt visible in tests.
func NewSilentMockPrompter() *MockPrompter {
	return &MockPrompter{}
}

// ShowBanner records the banner.
func (m *MockPrompter) ShowBanner(root string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.banner = root
}

// ShowInfo records an informational message.
func (m *MockPrompter) ShowInfo(message string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.infos = append(m.infos, message)
}

// ShowWarning records a warning.
func (m *MockPrompter) ShowWarning(message string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.warnings = append(m.warnings, message)
}

// ShowSuccess records a success message.
func (m *MockPrompter) ShowSuccess(message string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.successes = append(m.successes, message)
}

// ReviewSelection parses the scripted review answer.
func (m *MockPrompter) ReviewSelection(_ context.Context, files []string) (model.SelectionDecision, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.reviewed = append(m.reviewed, append([]string(nil), files...))
	if m.reviewAnswer == nil {
		return model.SelectionDecision{}, ErrNoScriptedAnswer
	}
	return review.Parse(*m.reviewAnswer, files), nil
}

// ConfirmCleanup returns the scripted cleanup answer.
func (m *MockPrompter) ConfirmCleanup(_ context.Context, folderName string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.cleanupFolders = append(m.cleanupFolders, folderName)
	if m.cleanupAnswer == nil {
		return "", ErrNoScriptedAnswer
	}
	return *m.cleanupAnswer, nil
}

// ShowMoveResult records the move outcome.
func (m *MockPrompter) ShowMoveResult(outcome model.MoveOutcome) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.moveOutcomes = append(m.moveOutcomes, outcome)
}

// ShowSummary records the summary.
func (m *MockPrompter) ShowSummary(summary model.RunSummary) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.summaries = append(m.summaries, summary)
	return nil
}

// MoveProgress records the total and returns a no-op observer.
func (m *MockPrompter) MoveProgress(total int) func(name string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.progressTotals = append(m.progressTotals, total)
	return func(string, error) {}
}

// Infos returns every informational message shown.
func (m *MockPrompter) Infos() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.infos...)
}

// Warnings returns every warning shown.
func (m *MockPrompter) Warnings() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.warnings...)
}

// Successes returns every success message shown.
func (m *MockPrompter) Successes() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.successes...)
}

// Reviewed returns the lists presented at the review prompt.
func (m *MockPrompter) Reviewed() [][]string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([][]string(nil), m.reviewed...)
}

// CleanupPrompts returns the folder names the cleanup prompt asked about.
func (m *MockPrompter) CleanupPrompts() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.cleanupFolders...)
}

// Summaries returns every summary shown.
func (m *MockPrompter) Summaries() []model.RunSummary {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]model.RunSummary(nil), m.summaries...)
}

// Banner returns the root passed to ShowBanner.
func (m *MockPrompter) Banner() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.banner
}
