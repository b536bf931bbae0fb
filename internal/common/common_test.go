package common

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInvalidPathError(t *testing.T) {
	err := NewInvalidPathError("/tmp/Downloads", "Path is not a directory")

	assert.Equal(t, "Path is not a directory: /tmp/Downloads", err.Error())
	assert.ErrorIs(t, err, ErrInvalidPath)
	assert.True(t, IsConfigError(fmt.Errorf("validate: %w", err)))

	var pathErr *InvalidPathError
	require.ErrorAs(t, err, &pathErr)
	assert.Equal(t, "/tmp/Downloads", pathErr.Path)
}

func TestIsConfigError(t *testing.T) {
	assert.True(t, IsConfigError(ErrRunInProgress))
	assert.True(t, IsConfigError(fmt.Errorf("wrap: %w", ErrMissingConfig)))
	assert.False(t, IsConfigError(ErrFileNotFound))
	assert.False(t, IsConfigError(errors.New("boom")))
}

func TestUserError(t *testing.T) {
	inner := errors.New("disk full")
	err := NewUserError("Could not save history", inner)

	assert.Equal(t, "Could not save history: disk full", err.Error())
	assert.ErrorIs(t, err, inner)
	assert.Equal(t, "just a message", NewUserError("just a message", nil).Error())
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input   string
		want    slog.Level
		wantErr bool
	}{
		{input: "debug", want: slog.LevelDebug},
		{input: "INFO", want: slog.LevelInfo},
		{input: "warn", want: slog.LevelWarn},
		{input: "warning", want: slog.LevelWarn},
		{input: "error", want: slog.LevelError},
		{input: "verbose", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseLevel(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrInvalidConfig)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger, err := NewLogger(&buf, slog.LevelInfo, "json")
	require.NoError(t, err)

	logger.Debug("hidden")
	logger.Info("visible", "count", 2)

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), `"msg":"visible"`)
	assert.Contains(t, buf.String(), `"count":2`)

	_, err = NewLogger(&buf, slog.LevelInfo, "xml")
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestCompilePatterns(t *testing.T) {
	patterns, err := CompilePatterns([]string{`^cs\d{3}_`, `worksheet`})
	require.NoError(t, err)

	assert.True(t, MatchAny(patterns, "CS101_intro.pdf"))
	assert.True(t, MatchAny(patterns, "Math WORKSHEET 4.pdf"))
	assert.False(t, MatchAny(patterns, "boarding_pass.pdf"))
	assert.False(t, MatchAny(nil, "anything.pdf"))

	_, err = CompilePatterns([]string{"("})
	assert.ErrorIs(t, err, ErrInvalidConfig)
}
