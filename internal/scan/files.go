package scan

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// DefaultExtension is the file extension the scanner looks for.
const DefaultExtension = ".pdf"

// ListFiles returns the names of regular files directly inside root whose extension
// matches ext case-insensitively. Subdirectories are not descended into.
// The order is the directory listing order, which os.ReadDir sorts by name.
func ListFiles(root, ext string) ([]string, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", root, err)
	}

	ext = NormalizeExtension(ext)
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if !strings.EqualFold(filepath.Ext(entry.Name()), ext) {
			continue
		}

		// Stat follows symlinks so a link to a regular file still counts.
		info, err := os.Stat(filepath.Join(root, entry.Name()))
		if err != nil || !info.Mode().IsRegular() {
			continue
		}
		names = append(names, entry.Name())
	}

	return names, nil
}

// NormalizeExtension lowercases ext and ensures it has a leading dot.
func NormalizeExtension(ext string) string {
	ext = strings.ToLower(strings.TrimSpace(ext))
	if ext == "" {
		return DefaultExtension
	}
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return ext
}
