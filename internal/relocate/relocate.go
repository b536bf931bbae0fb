// Package relocate moves approved files into the holding folder without ever
// overwriting an existing file.
package relocate

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/Veraticus/homework-heap/internal/common"
	"github.com/Veraticus/homework-heap/internal/model"
)

// DefaultMaxSuffix bounds the _N counter used to find a free destination name.
const DefaultMaxSuffix = 9999

// Per-file failure reasons as shown in the error list.
const (
	ReasonPathSeparator = "Filename cannot contain path separators"
	ReasonNotFound      = "File not found"
	ReasonPermission    = "Permission denied"
)

// EnsureHoldingFolder creates the holding folder and any missing parents.
// Calling it when the folder already exists is a no-op.
func EnsureHoldingFolder(path string) error {
	if err := os.MkdirAll(path, 0o750); err != nil {
		return fmt.Errorf("failed to create holding folder: %w", err)
	}
	return nil
}

// Relocator moves files from a scan root into a holding folder.
type Relocator struct {
	logger *slog.Logger
	rename func(oldpath, newpath string) error
	// OnFile is called after each file is processed, successful or not.
	OnFile    func(name string, err error)
	maxSuffix int
}

// Option configures a Relocator.
type Option func(*Relocator)

// WithMaxSuffix overrides DefaultMaxSuffix.
func WithMaxSuffix(n int) Option {
	return func(r *Relocator) {
		if n > 0 {
			r.maxSuffix = n
		}
	}
}

// WithRename replaces os.Rename, for tests that simulate filesystem failures.
func WithRename(fn func(oldpath, newpath string) error) Option {
	return func(r *Relocator) {
		r.rename = fn
	}
}

// New creates a Relocator.
func New(logger *slog.Logger, opts ...Option) *Relocator {
	if logger == nil {
		logger = slog.Default()
	}
	r := &Relocator{
		logger:    logger,
		rename:    os.Rename,
		maxSuffix: DefaultMaxSuffix,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Move relocates names from root into holding, in order. A failure on one file is
// recorded and the batch continues with the next.
func (r *Relocator) Move(ctx context.Context, names []string, root, holding string) model.MoveOutcome {
	outcome := model.MoveOutcome{
		Moved:        make([]string, 0, len(names)),
		Errors:       make([]string, 0),
		Destinations: make(map[string]string, len(names)),
	}

	for _, name := range names {
		var dest string
		err := ctx.Err()
		if err == nil {
			dest, err = r.moveOne(name, root, holding)
		}

		if err != nil {
			outcome.Errors = append(outcome.Errors, fmt.Sprintf("%s: %s", name, reason(err)))
			r.logger.Warn("file not moved", "file", name, "error", err)
		} else {
			outcome.Moved = append(outcome.Moved, name)
			outcome.Destinations[name] = filepath.Base(dest)
			r.logger.Debug("file moved", "file", name, "destination", dest)
		}

		if r.OnFile != nil {
			r.OnFile(name, err)
		}
	}

	outcome.Count = len(outcome.Moved)
	return outcome
}

func (r *Relocator) moveOne(name, root, holding string) (string, error) {
	if strings.ContainsAny(name, `/\`) {
		return "", common.ErrPathSeparator
	}

	source := filepath.Join(root, name)
	info, err := os.Stat(source)
	if err != nil || !info.Mode().IsRegular() {
		return "", common.ErrFileNotFound
	}

	dest, err := UniqueTarget(holding, name, r.maxSuffix)
	if err != nil {
		return "", err
	}

	if err := r.rename(source, dest); err != nil {
		if !errors.Is(err, syscall.EXDEV) {
			return "", err
		}
		// Holding folder on another filesystem: copy, verify, then drop the source.
		if err := copyFileVerified(source, dest, info.Mode().Perm()); err != nil {
			return "", err
		}
		if err := os.Remove(source); err != nil {
			return "", fmt.Errorf("copied but could not remove source: %w", err)
		}
	}

	return dest, nil
}

// UniqueTarget returns holding/name if it is free, otherwise the first free
// holding/stem_N.ext for N in 1..maxSuffix.
func UniqueTarget(holding, name string, maxSuffix int) (string, error) {
	target := filepath.Join(holding, name)
	if !exists(target) {
		return target, nil
	}

	ext := filepath.Ext(name)
	stem := strings.TrimSuffix(name, ext)
	for n := 1; n <= maxSuffix; n++ {
		target = filepath.Join(holding, fmt.Sprintf("%s_%d%s", stem, n, ext))
		if !exists(target) {
			return target, nil
		}
	}

	return "", fmt.Errorf("%w after %d attempts", common.ErrNoFreeFilename, maxSuffix)
}

func exists(path string) bool {
	_, err := os.Lstat(path)
	return err == nil
}

func reason(err error) string {
	switch {
	case errors.Is(err, common.ErrPathSeparator):
		return ReasonPathSeparator
	case errors.Is(err, common.ErrFileNotFound):
		return ReasonNotFound
	case errors.Is(err, fs.ErrPermission):
		return ReasonPermission
	default:
		return err.Error()
	}
}
