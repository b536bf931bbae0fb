package engine

import (
	"context"
	"strings"
	"sync"
)

// MockClassifier is a deterministic classification capability for tests. It has the
// same shape as llm.Client, so tests can wrap it in llm.NewClassifier and exercise
// the real sanitizing adapter.
type MockClassifier struct {
	err      error
	response []string
	calls    []MockLLMCall
	fixed    bool
	mu       sync.Mutex
}

// MockLLMCall records details of a classification request.
type MockLLMCall struct {
	Error     error
	Filenames []string
	Returned  []string
}

// NewMockClassifier creates a mock that picks filenames containing a school keyword.
func NewMockClassifier() *MockClassifier {
	return &MockClassifier{
		calls: make([]MockLLMCall, 0),
	}
}

// NewMockClassifierWithResponse creates a mock that always returns response, even
// names it was never shown.
func NewMockClassifierWithResponse(response ...string) *MockClassifier {
	m := NewMockClassifier()
	m.response = response
	m.fixed = true
	return m
}

// NewMockClassifierWithError creates a mock whose every call fails with err.
func NewMockClassifierWithError(err error) *MockClassifier {
	m := NewMockClassifier()
	m.err = err
	return m
}

// ClassifyFilenames returns the canned response or the keyword matches.
func (m *MockClassifier) ClassifyFilenames(_ context.Context, filenames []string) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	call := MockLLMCall{Filenames: append([]string(nil), filenames...)}
	defer func() { m.calls = append(m.calls, call) }()

	if m.err != nil {
		call.Error = m.err
		return nil, m.err
	}

	if m.fixed {
		call.Returned = append([]string(nil), m.response...)
		return call.Returned, nil
	}

	matched := make([]string, 0, len(filenames))
	for _, name := range filenames {
		lower := strings.ToLower(name)
		switch {
		case strings.Contains(lower, "essay"),
			strings.Contains(lower, "notes"),
			strings.Contains(lower, "homework"),
			strings.Contains(lower, "lecture"),
			strings.Contains(lower, "report"),
			strings.Contains(lower, "quiz"):
			matched = append(matched, name)
		}
	}
	call.Returned = matched
	return matched, nil
}

// GetCalls returns all classification calls made.
func (m *MockClassifier) GetCalls() []MockLLMCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	calls := make([]MockLLMCall, len(m.calls))
	copy(calls, m.calls)
	return calls
}
