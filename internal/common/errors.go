// Package common provides shared utilities and types used across the application.
package common

import (
	"errors"
	"fmt"
)

// Common application errors.
var (
	// Configuration errors.
	ErrInvalidPath   = errors.New("invalid scan directory")
	ErrMissingConfig = errors.New("missing configuration")
	ErrInvalidConfig = errors.New("invalid configuration")
	ErrRunInProgress = errors.New("another run is already in progress")

	// Classification errors.
	ErrClassificationFailed = errors.New("classification failed")
	ErrMalformedResponse    = errors.New("malformed classifier response")

	// Relocation errors.
	ErrPathSeparator  = errors.New("filename contains a path separator")
	ErrFileNotFound   = errors.New("file not found")
	ErrNoFreeFilename = errors.New("no free destination filename")

	// History errors.
	ErrNotFound = errors.New("not found")
)

// InvalidPathError reports why a candidate scan directory was rejected.
type InvalidPathError struct {
	Path   string
	Reason string
}

func (e *InvalidPathError) Error() string {
	return fmt.Sprintf("%s: %s", e.Reason, e.Path)
}

// Unwrap lets errors.Is match ErrInvalidPath.
func (e *InvalidPathError) Unwrap() error {
	return ErrInvalidPath
}

// NewInvalidPathError creates a new InvalidPathError.
func NewInvalidPathError(path, reason string) error {
	return &InvalidPathError{
		Path:   path,
		Reason: reason,
	}
}

// UserError represents an error that should be shown to the user.
type UserError struct {
	Err         error
	UserMessage string
}

func (e *UserError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.UserMessage, e.Err)
	}
	return e.UserMessage
}

func (e *UserError) Unwrap() error {
	return e.Err
}

// NewUserError creates a new user-friendly error.
func NewUserError(userMessage string, err error) error {
	return &UserError{
		UserMessage: userMessage,
		Err:         err,
	}
}

// IsConfigError reports whether err stops the pipeline before any scan.
func IsConfigError(err error) bool {
	return errors.Is(err, ErrInvalidPath) ||
		errors.Is(err, ErrMissingConfig) ||
		errors.Is(err, ErrInvalidConfig) ||
		errors.Is(err, ErrRunInProgress)
}
