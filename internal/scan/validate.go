// Package scan validates the scan root and enumerates candidate files in it.
package scan

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/Veraticus/homework-heap/internal/common"
)

// DefaultFolderName is the well-known directory the tool is allowed to scan.
const DefaultFolderName = "Downloads"

// ValidateRoot confirms that root is exactly the folderName directory directly under home.
// All checks operate on the absolute, symlink-free form of both paths.
func ValidateRoot(root, home, folderName string) error {
	resolved, err := resolve(root)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return common.NewInvalidPathError(root, fmt.Sprintf("%s directory does not exist", folderName))
		}
		return common.NewInvalidPathError(root, fmt.Sprintf("cannot resolve path (%v)", err))
	}

	info, err := os.Stat(resolved)
	if err != nil {
		return common.NewInvalidPathError(root, fmt.Sprintf("%s directory does not exist", folderName))
	}
	if !info.IsDir() {
		return common.NewInvalidPathError(root, "path is not a directory")
	}

	if filepath.Base(resolved) != folderName {
		return common.NewInvalidPathError(root, fmt.Sprintf("path must be the %s directory", folderName))
	}

	resolvedHome, err := resolve(home)
	if err != nil {
		return common.NewInvalidPathError(home, fmt.Sprintf("cannot resolve home directory (%v)", err))
	}
	if filepath.Dir(resolved) != resolvedHome {
		return common.NewInvalidPathError(resolved,
			fmt.Sprintf("%s directory must be directly under the home directory (~/%s)", folderName, folderName))
	}

	return nil
}

// ResolveRoot returns the absolute, symlink-free form of a validated root.
func ResolveRoot(root string) (string, error) {
	resolved, err := resolve(root)
	if err != nil {
		return "", fmt.Errorf("failed to resolve %s: %w", root, err)
	}
	return resolved, nil
}

func resolve(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	return filepath.EvalSymlinks(abs)
}
