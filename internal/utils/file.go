package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ValidateInputFile checks that filename names a readable regular file no
// larger than maxSize bytes. A maxSize of zero disables the size check.
func ValidateInputFile(filename string, maxSize int64) error {
	if filename == "" {
		return fmt.Errorf("filename cannot be empty")
	}

	info, err := os.Stat(filename)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("file does not exist: %s", filename)
		}
		return fmt.Errorf("cannot access file %s: %w", filename, err)
	}

	if info.IsDir() {
		return fmt.Errorf("path is a directory, not a file: %s", filename)
	}

	if maxSize > 0 && info.Size() > maxSize {
		return fmt.Errorf("file %s is %s, larger than the %s limit",
			filename, FormatFileSize(info.Size()), FormatFileSize(maxSize))
	}

	return nil
}

// EnsureParentDir creates the directory holding filename if needed.
func EnsureParentDir(filename string) error {
	dir := filepath.Dir(filename)
	if dir == "." {
		return nil
	}
	if err := os.MkdirAll(dir, 0750); err != nil {
		return fmt.Errorf("cannot create directory %s: %w", dir, err)
	}
	return nil
}

// IsJSONFile checks if the file has a .json extension
func IsJSONFile(filename string) bool {
	return strings.EqualFold(filepath.Ext(filename), ".json")
}

// FormatFileSize returns a human-readable file size
func FormatFileSize(size int64) string {
	const unit = 1024
	if size < unit {
		return fmt.Sprintf("%d B", size)
	}
	div, exp := int64(unit), 0
	for n := size / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(size)/float64(div), "KMGTPE"[exp])
}
