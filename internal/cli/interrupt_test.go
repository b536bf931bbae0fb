package cli

import (
	"bytes"
	"context"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// syncBuffer provides thread-safe access to a bytes.Buffer.
type syncBuffer struct {
	buf bytes.Buffer
	mu  sync.Mutex
}

func (s *syncBuffer) Write(p []byte) (n int, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buf.Write(p)
}

func (s *syncBuffer) String() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buf.String()
}

func TestNewInterruptHandler(t *testing.T) {
	tests := []struct {
		writer io.Writer
		name   string
	}{
		{
			name:   "with custom writer",
			writer: &bytes.Buffer{},
		},
		{
			name:   "with nil writer",
			writer: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := NewInterruptHandler(tt.writer, "")
			assert.NotNil(t, handler)
			assert.NotNil(t, handler.writer)
			assert.False(t, handler.WasInterrupted())
		})
	}
}

func TestInterrupt_CancelsContext(t *testing.T) {
	output := &syncBuffer{}
	handler := NewInterruptHandler(output, "Old Schoolwork")

	ctx := handler.HandleInterrupts(context.Background())

	select {
	case <-ctx.Done():
		t.Fatal("context should not be canceled initially")
	default:
	}

	handler.interrupt()

	select {
	case <-ctx.Done():
	case <-time.After(time.Second):
		t.Fatal("context was not canceled by interrupt")
	}

	assert.True(t, handler.WasInterrupted())
	assert.Contains(t, output.String(), "Interrupted! No further files will be moved.")
	assert.Contains(t, output.String(), "Files already moved remain in 'Old Schoolwork'.")
}

func TestInterrupt_ParentCancelIsNotAnInterrupt(t *testing.T) {
	output := &syncBuffer{}
	handler := NewInterruptHandler(output, "")

	parent, cancel := context.WithCancel(context.Background())
	ctx := handler.HandleInterrupts(parent)
	cancel()

	<-ctx.Done()
	assert.False(t, handler.WasInterrupted())
	assert.Empty(t, output.String())
}

func TestStop(t *testing.T) {
	handler := NewInterruptHandler(io.Discard, "")
	ctx := handler.HandleInterrupts(context.Background())

	handler.Stop()

	select {
	case <-ctx.Done():
	case <-time.After(time.Second):
		t.Fatal("Stop did not cancel the context")
	}
	assert.False(t, handler.WasInterrupted())

	// Stop without HandleInterrupts is a no-op.
	NewInterruptHandler(io.Discard, "").Stop()
}

func TestMultipleInterrupts(t *testing.T) {
	output := &syncBuffer{}
	handler := NewInterruptHandler(output, "")
	_ = handler.HandleInterrupts(context.Background())

	handler.interrupt()
	handler.interrupt()

	count := strings.Count(output.String(), "Interrupted!")
	assert.Equal(t, 1, count, "interrupt message should only be shown once")
}

func TestShowInterruptMessage(t *testing.T) {
	tests := []struct {
		name        string
		holding     string
		expected    []string
		notExpected []string
	}{
		{
			name:     "with holding folder",
			holding:  "Old Schoolwork",
			expected: []string{"Interrupted!", "remain in 'Old Schoolwork'"},
		},
		{
			name:        "without holding folder",
			expected:    []string{"Interrupted!"},
			notExpected: []string{"remain in"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var output bytes.Buffer
			handler := &InterruptHandler{
				writer:  &output,
				holding: tt.holding,
			}

			handler.showInterruptMessage()

			outputStr := output.String()
			for _, expected := range tt.expected {
				assert.Contains(t, outputStr, expected)
			}
			for _, notExpected := range tt.notExpected {
				assert.NotContains(t, outputStr, notExpected)
			}
		})
	}
}
