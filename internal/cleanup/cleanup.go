// Package cleanup deletes the holding folder after an explicit affirmative answer.
package cleanup

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/Veraticus/homework-heap/internal/model"
)

// IsAffirmative reports whether answer is "yes" or "y", ignoring case and surrounding space.
// Everything else, including an empty answer, is negative.
func IsAffirmative(answer string) bool {
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "yes", "y":
		return true
	default:
		return false
	}
}

// Manager performs the only destructive step of a run.
type Manager struct {
	logger    *slog.Logger
	removeAll func(path string) error
}

// NewManager creates a cleanup manager.
func NewManager(logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.Default()
	}
	return &Manager{
		logger:    logger,
		removeAll: os.RemoveAll,
	}
}

// Run applies the operator's answer to the holding folder.
func (m *Manager) Run(answer, holding string) model.CleanupResult {
	name := filepath.Base(holding)

	if !IsAffirmative(answer) {
		return model.CleanupResult{
			Action:        model.ActionKept,
			FolderExisted: folderExists(holding),
			Notice:        fmt.Sprintf("Keeping the '%s' folder.", name),
		}
	}

	info, err := os.Stat(holding)
	if errors.Is(err, fs.ErrNotExist) {
		return model.CleanupResult{
			Action: model.ActionDeleted,
			Notice: fmt.Sprintf("Folder '%s' does not exist", name),
		}
	}
	if err == nil && !info.IsDir() {
		err = fmt.Errorf("%s is not a directory", holding)
	}
	if err == nil {
		err = m.removeAll(holding)
	}

	if err != nil {
		m.logger.Error("failed to delete holding folder", "path", holding, "error", err)
		return model.CleanupResult{
			Action:        model.ActionKept,
			FolderExisted: true,
			Err:           err,
			Notice:        fmt.Sprintf("Error deleting folder: %v", err),
		}
	}

	m.logger.Info("deleted holding folder", "path", holding)
	return model.CleanupResult{
		Action:        model.ActionDeleted,
		FolderExisted: true,
		Notice:        fmt.Sprintf("Successfully deleted folder: %s", name),
	}
}

func folderExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
